// Package storage uploads project images to a blob store and resolves the
// public URL a browser loads them from.
package storage

import (
	"context"
	"mime"
	"path/filepath"
	"strings"

	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/errs"
)

// Storage is a blob store keyed by uuid-prefixed sanitized filenames.
type Storage interface {
	// Upload stores data under key, replacing any previous object with that key.
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	// Delete removes the object stored under key. A missing object is not an error.
	Delete(ctx context.Context, key string) error
	// PublicURL returns the reference stored in Project.Image for key.
	PublicURL(key string) string
}

// New builds the backend selected by cfg.Backend.
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	var (
		store Storage
		err   error
	)

	switch strings.ToLower(cfg.Backend) {
	case "", "local":
		store, err = NewLocalStore(cfg.LocalDir, cfg.PublicBase)
	case "s3":
		store, err = NewS3Store(ctx, cfg)
	case "minio":
		store, err = NewMinioStore(ctx, cfg)
	case "supabase":
		store, err = NewSupabaseStore(cfg)
	default:
		return nil, errs.NewInvalidConfigError("STORAGE_BACKEND", "unknown backend "+cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

// ContentType prefers the declared type and falls back to the key's extension.
func ContentType(key, declared string) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(key))); byExt != "" {
		return byExt
	}
	return "application/octet-stream"
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}

package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	supastorage "github.com/supabase-community/storage-go"

	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/errs"
)

// SupabaseStore uploads into a public Supabase Storage bucket.
type SupabaseStore struct {
	client     *supastorage.Client
	bucket     string
	publicBase string
}

func NewSupabaseStore(cfg config.StorageConfig) (*SupabaseStore, error) {
	if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" || cfg.Bucket == "" {
		return nil, errs.NewInvalidConfigError("SUPABASE_URL", "url, service role key and bucket are required for the supabase backend")
	}

	baseURL := strings.TrimRight(cfg.SupabaseURL, "/")
	client := supastorage.NewClient(baseURL+"/storage/v1", cfg.SupabaseKey, nil)

	return &SupabaseStore{
		client:     client,
		bucket:     cfg.Bucket,
		publicBase: supabasePublicBase(cfg),
	}, nil
}

// Upload overwrites existing objects. The client library has no context support,
// so cancellation is only honoured before the request starts.
func (s *SupabaseStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ct := ContentType(key, contentType)
	upsert := true
	_, err := s.client.UploadFile(s.bucket, key, bytes.NewReader(data), supastorage.FileOptions{
		ContentType: &ct,
		Upsert:      &upsert,
	})
	if err != nil {
		return fmt.Errorf("upload %q: %w", key, err)
	}
	return nil
}

func (s *SupabaseStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.client.RemoveFile(s.bucket, []string{key}); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

func (s *SupabaseStore) PublicURL(key string) string {
	return joinURL(s.publicBase, key)
}

func supabasePublicBase(cfg config.StorageConfig) string {
	if cfg.PublicBase != "" {
		return strings.TrimRight(cfg.PublicBase, "/")
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s", strings.TrimRight(cfg.SupabaseURL, "/"), cfg.Bucket)
}

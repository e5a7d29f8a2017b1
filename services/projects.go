// Package services holds the admin gated project flows and the contact form
// flow. Handlers in package api are thin adapters around these.
package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/storage"
)

const (
	maxTitleLen      = 200
	maxProjectURLLen = 200

	msgRequired    = "This field is required."
	msgImagesOnly  = "Images only!"
	msgInvalidName = "Invalid file name."
)

var allowedImageExtensions = map[string]bool{"jpg": true, "jpeg": true, "png": true}

// ProjectStore is the record store behind the project flows.
type ProjectStore interface {
	FindAll(ctx context.Context) ([]*models.Project, error)
	FindByID(ctx context.Context, id uint) (*models.Project, error)
	Add(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uint) error
}

// ImageFile is an uploaded image as received from the client.
type ImageFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type UploadInput struct {
	Credential  string
	ProjectURL  string
	Title       string
	Description string
	Image       *ImageFile
}

type ProjectService struct {
	gate   auth.CredentialChecker
	store  ProjectStore
	blobs  storage.Storage
	newKey func(filename string) string
	logger zerolog.Logger
}

func NewProjectService(gate auth.CredentialChecker, store ProjectStore, blobs storage.Storage) *ProjectService {
	return &ProjectService{
		gate:   gate,
		store:  store,
		blobs:  blobs,
		newKey: uniqueKey,
		logger: log.With().Str("service", "projects").Logger(),
	}
}

// IsAdmin reports whether credential passes the admin gate. Read-only views use
// it to decide what to show.
func (s *ProjectService) IsAdmin(credential string) bool {
	return s.gate.IsAdmin(credential)
}

// List returns every project ordered by id.
func (s *ProjectService) List(ctx context.Context) ([]*models.Project, error) {
	projects, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "projects", err)
	}
	return projects, nil
}

// Upload stores the image and then creates the project pointing at it. Nothing is
// written unless the credential is valid and every field passes validation.
// If the insert fails the uploaded image is removed again.
func (s *ProjectService) Upload(ctx context.Context, in UploadInput) (*models.Project, error) {
	if !s.gate.IsAdmin(in.Credential) {
		return nil, errs.NewUnauthorizedError()
	}

	name, err := validateUpload(in)
	if err != nil {
		return nil, err
	}
	key := s.newKey(name)

	contentType := storage.ContentType(key, in.Image.ContentType)
	if err := s.blobs.Upload(ctx, key, in.Image.Data, contentType); err != nil {
		return nil, errs.NewStorageError("upload image", err)
	}

	project := &models.Project{
		ProjectURL:  in.ProjectURL,
		Title:       in.Title,
		Description: in.Description,
		Image:       s.blobs.PublicURL(key),
	}

	if err := s.store.Add(ctx, project); err != nil {
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			s.logger.Error().Err(delErr).Str("key", key).Msg("project insert failed; uploaded image left in storage")
		}
		return nil, errs.NewDatabaseError("create", "project", err)
	}

	s.logger.Info().Uint("projectID", project.ID).Str("image", project.Image).Msg("project created")
	return project, nil
}

// Delete removes the project with the given id. The uploaded image is not touched.
func (s *ProjectService) Delete(ctx context.Context, credential string, id uint) error {
	if !s.gate.IsAdmin(credential) {
		return errs.NewUnauthorizedError()
	}

	project, err := s.store.FindByID(ctx, id)
	if err != nil {
		return errs.NewDatabaseError("find", "project", err)
	}
	if project == nil {
		return errs.NewNotFound("project")
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errs.IsNotFound(err) {
			return errs.NewNotFound("project")
		}
		return errs.NewDatabaseError("delete", "project", err)
	}

	s.logger.Info().Uint("projectID", id).Msg("project deleted")
	return nil
}

// uniqueKey prefixes the sanitized filename so uploads never replace each other.
func uniqueKey(filename string) string {
	return uuid.NewString() + "-" + filename
}

// validateUpload collects every field problem and returns the sanitized filename.
func validateUpload(in UploadInput) (string, error) {
	v := errs.NewValidationError()
	requireText(v, "project_url", in.ProjectURL, maxProjectURLLen)
	requireText(v, "title", in.Title, maxTitleLen)
	requireText(v, "description", in.Description, 0)

	var key string
	switch {
	case in.Image == nil || len(in.Image.Data) == 0:
		v.Add("image", msgRequired)
	case !allowedImage(in.Image.Filename):
		v.Add("image", msgImagesOnly)
	default:
		key = storage.SecureFilename(in.Image.Filename)
		if key == "" || !allowedImage(key) {
			v.Add("image", msgInvalidName)
		}
	}

	if err := v.OrNil(); err != nil {
		return "", err
	}
	return key, nil
}

func requireText(v *errs.ValidationError, field, value string, maxLen int) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, msgRequired)
		return
	}
	if maxLen > 0 && utf8.RuneCountInString(value) > maxLen {
		v.Add(field, fmt.Sprintf("Field cannot be longer than %d characters.", maxLen))
	}
}

func allowedImage(filename string) bool {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	return allowedImageExtensions[strings.ToLower(ext)]
}

package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	v := NewValidationError()
	v.Add("title", "This field is required.")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", v, http.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError(), http.StatusForbidden},
		{"not found", NewNotFound("project"), http.StatusNotFound},
		{"storage", NewStorageError("upload image", errors.New("s3 down")), http.StatusInternalServerError},
		{"wrapped api error", fmt.Errorf("ctx: %w", NewNotFound("project")), http.StatusNotFound},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	assert.True(t, IsUnauthorized(NewUnauthorizedError()))
	assert.True(t, IsNotFound(NewNotFound("project")))
	assert.ErrorIs(t, NewStorageError("upload", nil), ErrStorage)
	assert.ErrorIs(t, NewDeliveryError("smtp", errors.New("dial tcp")), ErrDelivery)
	assert.False(t, IsNotFound(NewUnauthorizedError()))
}

func TestValidationError(t *testing.T) {
	v := NewValidationError()
	require.NoError(t, v.OrNil())

	v.Add("title", "This field is required.")
	v.Add("title", "ignored")
	v.Add("image", "Images only!")

	err := v.OrNil()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.True(t, v.Has("image"))
	assert.Equal(t, "This field is required.", v.Fields["title"])
	assert.Equal(t, "validation failed: image: Images only!; title: This field is required.", err.Error())
}

func TestNewDatabaseError(t *testing.T) {
	notFound := NewDatabaseError("delete", "project", fmt.Errorf("row gone: %w", ErrNotFound))
	assert.Equal(t, http.StatusNotFound, notFound.StatusCode)
	assert.True(t, IsNotFound(notFound))

	// driver text never changes the status: only a missing row is not a 500
	for _, cause := range []error{
		errors.New("dial tcp 10.0.0.5:5432: connect: connection refused"),
		errors.New("UNIQUE constraint failed: projects.id"),
		errors.New(`pq: duplicate key value violates unique constraint "projects_pkey"`),
	} {
		dbErr := NewDatabaseError("create", "project", cause)
		assert.Equal(t, http.StatusInternalServerError, dbErr.StatusCode, cause.Error())
		assert.Equal(t, http.StatusInternalServerError, StatusCode(dbErr), cause.Error())
	}

	generic := NewDatabaseError("create", "project", errors.New("disk I/O error"))
	assert.Equal(t, http.StatusInternalServerError, generic.StatusCode)
	assert.True(t, generic.Internal())
	assert.Equal(t, "database query failed: Failed to create project -> disk I/O error", generic.GetFullError())
}

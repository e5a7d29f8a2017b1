package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rs/zerolog"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteJSONStatus(w, http.StatusOK, data)
}

func (r Responder) WriteJSONStatus(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError maps err to its status code. Bodies of 5xx responses never carry
// internal details; those only go to the log.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	status := errs.StatusCode(err)

	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		r.WriteJSONStatus(w, status, ErrorResponse{
			Error:  "Validation error",
			Status: "validation_error",
			Fields: validationErr.Fields,
		})
		return
	}

	if errs.IsUnauthorized(err) {
		r.logger.Warn().Int("status", status).Msg("rejected request with invalid admin secret")
	}

	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.writeInternal(w, status)
		return
	}

	if apiErr.Internal() {
		r.logger.Error().
			Int("status", status).
			Str("details", apiErr.Details).
			Msg(apiErr.GetFullError())
		r.writeInternal(w, status)
		return
	}

	response := ErrorResponse{
		Error:   apiErr.Error(),
		Status:  "error",
		Field:   apiErr.Field,
		Details: apiErr.Details,
	}
	r.WriteJSONStatus(w, status, response)
}

func (r Responder) writeInternal(w http.ResponseWriter, status int) {
	r.WriteJSONStatus(w, status, ErrorResponse{
		Error:   "Internal Server Error",
		Status:  "error",
		Details: "An unexpected error occurred",
	})
}

package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/services"
)

// multipartMemory is how much of a multipart body is kept in memory before
// spilling to temp files.
const multipartMemory = 32 << 20

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  *services.ProjectService
	flashes   flashStore
	maxUpload int64
}

func newProjectHandler(projects *services.ProjectService, flashes flashStore, maxUpload int64) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
		flashes:   flashes,
		maxUpload: maxUpload,
	}
}

// home lists all projects
// @Summary Landing page data
// @Description Lists every project ordered by id, pending flashes and whether the admin parameter is valid
// @Tags Projects
// @Produce json
// @Param admin query string false "Admin secret"
// @Success 200 {object} HomeResponse
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching projects"
// @Router / [get]
func (h projectHandler) home() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projects.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, HomeResponse{
			Projects:    projects,
			CurrentYear: time.Now().Year(),
			IsAdmin:     h.projects.IsAdmin(adminParam(r)),
			Flashes:     h.flashes.pop(w, r),
			ContactForm: contactForm(nil, nil),
		})
	}
}

// adminForm returns the empty upload form
// @Summary Upload form
// @Tags Projects
// @Produce json
// @Param admin query string true "Admin secret"
// @Success 200 {object} FormResponse
// @Failure 403 {object} ErrorResponse "Forbidden - Unauthorized"
// @Router /admin [get]
func (h projectHandler) adminForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, FormResponse{
			Form:    uploadForm(nil, nil),
			IsAdmin: true,
			HideNav: true,
		})
	}
}

// createProject uploads the image and creates a project
// @Summary Create project
// @Description Multipart upload of project_url, title, description and a jpg/jpeg/png image
// @Tags Projects
// @Accept mpfd
// @Produce json
// @Param admin query string true "Admin secret"
// @Success 303 "Redirect to /"
// @Failure 400 {object} FormResponse "Bad Request - Form with field errors"
// @Failure 403 {object} ErrorResponse "Forbidden - Unauthorized"
// @Failure 413 {object} ErrorResponse "Request Entity Too Large"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error storing project"
// @Router /admin [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			h.writeParseError(w, err)
			return
		}
		if r.MultipartForm != nil {
			defer r.MultipartForm.RemoveAll()
		}

		image, err := h.readImage(r)
		if err != nil {
			h.writeParseError(w, err)
			return
		}

		in := services.UploadInput{
			Credential:  adminParam(r),
			ProjectURL:  r.PostFormValue("project_url"),
			Title:       r.PostFormValue("title"),
			Description: r.PostFormValue("description"),
			Image:       image,
		}

		project, err := h.projects.Upload(r.Context(), in)
		if err != nil {
			var validationErr *errs.ValidationError
			if errors.As(err, &validationErr) {
				values := map[string]string{
					"project_url": in.ProjectURL,
					"title":       in.Title,
					"description": in.Description,
				}
				h.responder.WriteJSONStatus(w, http.StatusBadRequest, FormResponse{
					Form:    uploadForm(values, validationErr.Fields),
					IsAdmin: true,
					HideNav: true,
				})
				return
			}
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Uint("projectID", project.ID).Msg("New project added to the database")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// deleteProject deletes a project by id
// @Summary Delete project
// @Tags Projects
// @Param admin query string true "Admin secret"
// @Param projectID path int true "Project ID"
// @Success 303 "Redirect to /"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 403 {object} ErrorResponse "Forbidden - Unauthorized"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error deleting project"
// @Router /delete/{projectID} [post]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := strconv.ParseUint(chi.URLParam(r, "projectID"), 10, 0)
		if err != nil || projectID == 0 {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		if err := h.projects.Delete(r.Context(), adminParam(r), uint(projectID)); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// readImage returns nil when the form has no image part.
func (h projectHandler) readImage(r *http.Request) (*services.ImageFile, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &services.ImageFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (h projectHandler) writeParseError(w http.ResponseWriter, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(maxBytesErr.Limit))
		return
	}
	// some multipart paths flatten the error to text
	if strings.Contains(err.Error(), "request body too large") {
		h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(h.maxUpload))
		return
	}
	h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart form", err))
}

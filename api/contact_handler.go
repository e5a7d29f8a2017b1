package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/services"
)

// maxContactBytes bounds the url-encoded contact form.
const maxContactBytes = 64 << 10

type contactHandler struct {
	responder Responder
	logger    zerolog.Logger
	contact   *services.ContactService
	flashes   flashStore
}

func newContactHandler(contact *services.ContactService, flashes flashStore) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder: NewResponder(logger),
		logger:    logger,
		contact:   contact,
		flashes:   flashes,
	}
}

// contactFormView returns the empty contact form
// @Summary Contact form
// @Tags Contact
// @Produce json
// @Success 200 {object} FormResponse
// @Router /contact_me [get]
func (h contactHandler) contactFormView() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, FormResponse{Form: contactForm(nil, nil)})
	}
}

// sendMessage forwards the contact form to the site owner
// @Summary Send contact message
// @Description On success redirects to / with a success flash. A delivery failure re-renders the form with a danger flash.
// @Tags Contact
// @Accept x-www-form-urlencoded
// @Produce json
// @Success 303 "Redirect to /"
// @Success 200 {object} FormResponse "Delivery failed"
// @Failure 400 {object} FormResponse "Bad Request - Form with field errors"
// @Router /contact_me [post]
func (h contactHandler) sendMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(maxBytesErr.Limit))
				return
			}
			h.responder.WriteError(w, errs.NewMalformedPayloadError("form", err))
			return
		}

		msg := models.ContactMessage{
			Name:    r.PostForm.Get("name"),
			Email:   r.PostForm.Get("email"),
			Message: r.PostForm.Get("message"),
		}
		values := map[string]string{"name": msg.Name, "email": msg.Email, "message": msg.Message}

		result, err := h.contact.Send(r.Context(), msg)
		if err != nil {
			var validationErr *errs.ValidationError
			if errors.As(err, &validationErr) {
				h.responder.WriteJSONStatus(w, http.StatusBadRequest, FormResponse{
					Form: contactForm(values, validationErr.Fields),
				})
				return
			}
			h.responder.WriteError(w, err)
			return
		}

		if !result.Sent {
			h.responder.WriteJSON(w, FormResponse{
				Form:    contactForm(values, nil),
				Flashes: []Flash{{Category: flashDanger, Message: result.Message}},
			})
			return
		}

		if err := h.flashes.add(w, r, Flash{Category: flashSuccess, Message: result.Message}); err != nil {
			h.logger.Error().Err(err).Msg("could not set flash cookie")
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

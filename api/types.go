package api

import "github.com/rpupo63/portfolio-backend/models"

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler projectHandler
	contactHandler contactHandler
	healthHandler  healthHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string            `json:"error" example:"Internal Server Error"`
	Status  string            `json:"status" example:"error"`
	Field   string            `json:"field,omitempty" example:"title"`
	Details string            `json:"details,omitempty" example:"Additional error details"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// HomeResponse is the data behind the landing page.
type HomeResponse struct {
	Projects    []*models.Project `json:"projects"`
	CurrentYear int               `json:"current_year"`
	IsAdmin     bool              `json:"is_admin"`
	Flashes     []Flash           `json:"flashes,omitempty"`
	ContactForm Form              `json:"contact_form"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	StartedAt string `json:"started_at"`
	Uptime    string `json:"uptime"`
}

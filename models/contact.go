package models

// ContactMessage is a visitor's contact form submission. It is never stored.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

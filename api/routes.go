package api

import (
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
)

const staticImagesPrefix = "/static/images/"

// setupRoutes mounts the public pages and the admin gated group
func setupRoutes(r chi.Router, handlers *routeHandlers, admin adminMiddleware, imageDir string) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/healthz", handlers.healthHandler.health())

		r.Get("/", handlers.projectHandler.home())
		r.Post("/", handlers.projectHandler.home())

		r.Get("/contact_me", handlers.contactHandler.contactFormView())
		r.With(limitBody(maxContactBytes)).Post("/contact_me", handlers.contactHandler.sendMessage())

		if imageDir != "" {
			r.Handle(staticImagesPrefix+"*", http.StripPrefix(staticImagesPrefix, http.FileServer(imageFS{http.Dir(imageDir)})))
		}

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(admin.authorize)
			r.Use(limitBody(handlers.projectHandler.maxUpload))

			r.Get("/admin", handlers.projectHandler.adminForm())
			r.Post("/admin", handlers.projectHandler.createProject())
			r.Post("/delete/{projectID}", handlers.projectHandler.deleteProject())
		})
	})
}

// imageFS serves regular files only. Directories and dot-files, including
// in-progress uploads, look missing so the image directory cannot be listed.
type imageFS struct {
	fs http.FileSystem
}

func (f imageFS) Open(name string) (http.File, error) {
	for _, part := range strings.Split(name, "/") {
		if strings.HasPrefix(part, ".") {
			return nil, os.ErrNotExist
		}
	}

	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}

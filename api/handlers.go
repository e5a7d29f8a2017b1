package api

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(svcs Services, rt router) *routeHandlers {
	flashes := newFlashStore(rt.config.SecretKey)

	return &routeHandlers{
		projectHandler: newProjectHandler(svcs.Projects, flashes, rt.config.MaxUploadBytes),
		contactHandler: newContactHandler(svcs.Contact, flashes),
		healthHandler:  newHealthHandler(rt.startupTime),
	}
}

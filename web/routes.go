package web

import (
	"scratch/web/api"

	"github.com/rohanthewiz/rweb"
)

// setupRoutes configures all application routes
func setupRoutes(s *rweb.Server) {
	// Pages - HTML responses driven by plain forms
	s.Get("/", homePage)
	s.Post("/replace", replaceSubmit)
	s.Get("/notes/new", newNotePage)
	s.Post("/notes", createNoteSubmit)
	s.Get("/login", loginPage)
	s.Post("/login", loginSubmit)
	s.Get("/register", registerPage)
	s.Post("/register", registerSubmit)
	s.Post("/logout", logoutSubmit)

	// API v1 - JSON responses
	s.Get("/api/v1/health", api.Health)
	s.Post("/api/v1/auth/register", api.Register)
	s.Post("/api/v1/auth/login", api.Login)
	s.Get("/api/v1/auth/me", api.GetCurrentUser)

	// Notes CRUD, scoped to the authenticated user
	s.Post("/api/v1/notes", api.CreateNote)
	s.Get("/api/v1/notes", api.ListNotes)
	s.Get("/api/v1/notes/:id", api.GetNote)
	s.Put("/api/v1/notes/:id", api.UpdateNote)
	s.Delete("/api/v1/notes/:id", api.DeleteNote)
}

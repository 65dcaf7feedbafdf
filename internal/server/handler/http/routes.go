package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/autoshop/console/internal/middleware"
)

// Handlers bundles the per-entity handlers mounted by NewRouter.
type Handlers struct {
	Auth       *AuthHandler
	Customers  *CustomerHandler
	Users      *UserHandler
	Receptions *ReceptionHandler
	Tasks      *TaskHandler
	Messages   *MessageHandler
}

// NewRouter constructs the HTTP handler serving the console API.
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") — rejects non-JSON bodies
//  2. WithRequestLogging(logger)           — logs incoming requests
//  3. SessionAuth(sessions)                — enforces the session token
//     (POST /api/login is exempt)
func NewRouter(h Handlers, sessions middleware.SessionSource, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Enforce session-token authentication
	r.Use(middleware.SessionAuth(sessions))

	r.Route("/api", func(r chi.Router) {
		// Public endpoint
		r.Post("/login", h.Auth.Login)

		r.Post("/logout", h.Auth.Logout)
		r.Get("/session", h.Auth.Session)
		r.Patch("/session/settings", h.Auth.UpdateSettings)

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", h.Customers.List)
			r.Post("/", h.Customers.Create)
			r.Get("/lookup", h.Customers.Lookup)
			r.Patch("/{id}", h.Customers.Update)
			r.Delete("/{id}", h.Customers.Delete)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.Users.List)
			r.Post("/", h.Users.Create)
			r.Patch("/{id}", h.Users.Update)
			r.Delete("/{id}", h.Users.Delete)
		})

		r.Route("/receptions", func(r chi.Router) {
			r.Get("/", h.Receptions.List)
			r.Post("/", h.Receptions.Create)
			r.Patch("/{id}", h.Receptions.Update)
			r.Delete("/{id}", h.Receptions.Delete)
			r.Get("/{id}/document", h.Receptions.Document)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", h.Tasks.List)
			r.Post("/", h.Tasks.Create)
			r.Patch("/{id}", h.Tasks.Update)
			r.Delete("/{id}", h.Tasks.Delete)
		})

		r.Route("/messages", func(r chi.Router) {
			r.Get("/", h.Messages.List)
			r.Post("/", h.Messages.Create)
			r.Get("/unread", h.Messages.Unread)
			r.Post("/{id}/read", h.Messages.MarkRead)
			r.Delete("/{id}", h.Messages.Delete)
		})
	})

	return r
}

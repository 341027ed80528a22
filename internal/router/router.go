package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"chat-gateway/internal/handlers"
	"chat-gateway/internal/middleware"
)

func New(
	chatHandler *handlers.ChatHandler,
	docsPath string,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	r.Get("/", handlers.Redirect(docsPath))
	r.Get("/health", handlers.Health)

	r.Post("/chat", chatHandler.Chat)

	return r
}

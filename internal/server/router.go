// Package server assembles the HTTP router and middleware chain.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/seclens/seclens/internal/handlers"
	"github.com/seclens/seclens/internal/middleware"
)

// NewRouter constructs a ServeMux with the chat API routes registered.
func NewRouter(h *handlers.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/chat", h.Chat)
	mux.HandleFunc("/api/v1/conversations", h.Conversations)
	mux.HandleFunc("/api/v1/events", h.Events)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", h.Health)

	cors := middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	})

	return middleware.RequestID(cors(mux))
}

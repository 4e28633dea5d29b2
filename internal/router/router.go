package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/Msrrhw/JalanJalan-ai/internal/api/chat"
	"github.com/Msrrhw/JalanJalan-ai/internal/api/itinerary"
)

// Config contains dependencies needed for the router setup.
type Config struct {
	ChatHandler      *chat.ChatHandler
	ItineraryHandler *itinerary.Handler
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) are expected to be
// applied before mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	// Conversational flow, same shape the chat frontend always used.
	r.Post("/chat", cfg.ChatHandler.HandleChatMessage)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/itinerary/generate", cfg.ItineraryHandler.GenerateItinerary)
	})

	return r
}

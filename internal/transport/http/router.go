package http

import (
	"net/http"
	"time"

	"golden-brain/internal/app"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// NewRouter exposes read-only spectator endpoints over the running game.
func NewRouter(game *app.Game, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	handler := NewHandler(game, log)
	wsHandler := NewWSHandler(game, log)

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", handler.Health)
	r.Get("/ws", wsHandler.ServeWS)

	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.Timeout(10 * time.Second))
		r.Get("/leaderboard/{category}", handler.Leaderboard)
		r.Get("/scoreboard", handler.Scoreboard)
		r.Get("/sessions", handler.Sessions)
	})
	return r
}

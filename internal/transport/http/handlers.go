package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"golden-brain/internal/app"
	"golden-brain/internal/domain"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the JSON spectator views.
type Handler struct {
	game *app.Game
	log  *zap.Logger
}

func NewHandler(game *app.Game, log *zap.Logger) *Handler {
	return &Handler{game: game, log: log}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"players": h.game.Registry().Len(),
	})
}

// Leaderboard ranks one category. Query param: limit (default all).
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	category, err := domain.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
	}
	respondJSON(w, http.StatusOK, h.game.Leaderboard(category, limit))
}

func (h *Handler) Scoreboard(w http.ResponseWriter, r *http.Request) {
	rows := h.game.Scoreboard()
	if rows == nil {
		rows = []domain.ScoreboardRow{}
	}
	respondJSON(w, http.StatusOK, rows)
}

func (h *Handler) Sessions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.game.ActiveSessions())
}

type errorPayload struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorPayload{Message: message})
}

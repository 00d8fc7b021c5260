package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/plaugmann/family-meal-planner/internal/observability"
	"github.com/plaugmann/family-meal-planner/internal/store"
)

type chatRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	household := householdFrom(r)
	payload, ok := parseJSON[chatRequest](r)
	if !ok || strings.TrimSpace(payload.Message) == "" {
		respondError(w, http.StatusBadRequest, CodeValidation, "Message is required.")
		return
	}

	favorites := true
	recipes, err := s.store.ListRecipes(r.Context(), household.ID, store.RecipeFilter{Favorites: &favorites})
	if err != nil {
		slog.Warn("failed to load favorites for chat", "error", err)
	}
	titles := make([]string, 0, len(recipes))
	for _, recipe := range recipes {
		titles = append(titles, recipe.Title)
	}

	reply, err := s.assist.SuggestDinner(r.Context(), payload.Message, titles)
	if err != nil {
		observability.IncError("assist", "chat")
		respondError(w, http.StatusBadGateway, CodeInternal, "Assistant is unavailable right now.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, observability.Snapshot())
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Dosada05/league-platform/services"
	"github.com/go-chi/chi/v5"
)

type LeaderboardHandler struct {
	skillService services.SkillService
}

func NewLeaderboardHandler(skillService services.SkillService) *LeaderboardHandler {
	return &LeaderboardHandler{skillService: skillService}
}

func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	season, err := strconv.Atoi(chi.URLParam(r, "season"))
	if err != nil || season < 1 {
		badRequestResponse(w, r, errors.New("invalid season"))
		return
	}

	board, err := h.skillService.Leaderboard(r.Context(), season)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"leaderboard": board}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RebuildSeason полностью пересчитывает рейтинги сезона. Операция
// административная и дорогая.
func (h *LeaderboardHandler) RebuildSeason(w http.ResponseWriter, r *http.Request) {
	season, err := strconv.Atoi(chi.URLParam(r, "season"))
	if err != nil || season < 1 {
		badRequestResponse(w, r, errors.New("invalid season"))
		return
	}

	if err := h.skillService.RebuildSeason(r.Context(), season); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "rebuilt"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

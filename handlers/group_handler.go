package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Dosada05/league-platform/middleware"
	"github.com/Dosada05/league-platform/models"
	"github.com/Dosada05/league-platform/services"
	"github.com/go-chi/chi/v5"
)

type GroupHandler struct {
	groupService services.GroupService
}

func NewGroupHandler(groupService services.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var input services.CreateGroupInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.CaptainID = currentUserID

	group, err := h.groupService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"group": group}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GroupHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.Atoi(chi.URLParam(r, "groupID"))
	if err != nil || groupID < 1 {
		badRequestResponse(w, r, errors.New("invalid group id"))
		return
	}

	group, err := h.groupService.GetByID(r.Context(), groupID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"group": group}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GroupHandler) ListLooking(w http.ResponseWriter, r *http.Request) {
	groupType := models.GroupType(r.URL.Query().Get("type"))
	season, err := strconv.Atoi(r.URL.Query().Get("season"))
	if err != nil || season < 1 {
		badRequestResponse(w, r, errors.New("valid season query parameter is required"))
		return
	}

	groups, err := h.groupService.ListLooking(r.Context(), groupType, season)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"groups": groups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GroupHandler) SetLooking(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.Atoi(chi.URLParam(r, "groupID"))
	if err != nil || groupID < 1 {
		badRequestResponse(w, r, errors.New("invalid group id"))
		return
	}

	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	if err := h.groupService.SetLooking(r.Context(), groupID, currentUserID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "looking"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GroupHandler) Merge(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.Atoi(chi.URLParam(r, "groupID"))
	if err != nil || groupID < 1 {
		badRequestResponse(w, r, errors.New("invalid group id"))
		return
	}

	var input struct {
		OtherGroupID int `json:"other_group_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.OtherGroupID < 1 {
		badRequestResponse(w, r, errors.New("other_group_id is required"))
		return
	}

	group, err := h.groupService.Merge(r.Context(), groupID, input.OtherGroupID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"group": group}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

package handlers

import (
	"net/http"
	"time"

	"github.com/shiftwise/Shiftwise_Backend/internal/auth"
	"github.com/shiftwise/Shiftwise_Backend/internal/constants"
	"github.com/shiftwise/Shiftwise_Backend/internal/models"
	"github.com/shiftwise/Shiftwise_Backend/internal/utils"
)

// ActivityHandler handles activity scheduling routes
type ActivityHandler struct {
	activityService ActivityServiceInterface
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityService ActivityServiceInterface) *ActivityHandler {
	if activityService == nil {
		panic("activityService cannot be nil")
	}
	return &ActivityHandler{
		activityService: activityService,
	}
}

// CreateActivity schedules a new activity on behalf of the caller
func (h *ActivityHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	createdBy, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	// Decode and validate the request body
	var req models.CreateActivityRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	activity, err := h.activityService.CreateActivity(r.Context(), createdBy, &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusCreated, activity)
}

// GetActivity retrieves an activity by ID
func (h *ActivityHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, constants.ParamActivityID)
	if !ok {
		utils.BadRequest(w, "Invalid activity ID", nil)
		return
	}

	activity, err := h.activityService.GetActivityByID(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, activity)
}

// ListActivities returns the activities visible to the caller, optionally
// narrowed to a time window via the from and to query parameters.
func (h *ActivityHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	from, ok := parseTimeParam(r, constants.QueryParamFrom)
	if !ok {
		utils.BadRequest(w, "Invalid from timestamp", nil)
		return
	}
	to, ok := parseTimeParam(r, constants.QueryParamTo)
	if !ok {
		utils.BadRequest(w, "Invalid to timestamp", nil)
		return
	}

	activities, err := h.activityService.ListVisibleForUser(r.Context(), userID, from, to)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if activities == nil {
		activities = []*models.Activity{}
	}

	utils.JSON(w, http.StatusOK, activities)
}

// UpdateActivity applies changes to a scheduled activity
func (h *ActivityHandler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, constants.ParamActivityID)
	if !ok {
		utils.BadRequest(w, "Invalid activity ID", nil)
		return
	}

	// Decode and validate the request body
	var req models.UpdateActivityRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	activity, err := h.activityService.UpdateActivity(r.Context(), id, &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, activity)
}

// DeleteActivity removes a scheduled activity
func (h *ActivityHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, constants.ParamActivityID)
	if !ok {
		utils.BadRequest(w, "Invalid activity ID", nil)
		return
	}

	if err := h.activityService.DeleteActivity(r.Context(), id); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.NoContent(w)
}

// parseTimeParam reads an optional RFC 3339 timestamp query parameter.
// A missing parameter yields a nil time with ok true.
func parseTimeParam(r *http.Request, name string) (*time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}

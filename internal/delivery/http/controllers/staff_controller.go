package controllers

import (
	"log/slog"
	"net/http"

	"conferencehub/internal/delivery/http/helpers"
	"conferencehub/internal/domain"
)

// ActivitiesSuccessResponse is the success response envelope for plain activity lists (200).
type ActivitiesSuccessResponse struct {
	Data  []*domain.Activity `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ModeratorAssignmentSuccessResponse is the success response envelope for POST /activities/{activityID}/moderator (201).
type ModeratorAssignmentSuccessResponse struct {
	Data  *domain.ModeratorAssignment `json:"data"`
	Error *helpers.APIError           `json:"error"`
}

// JuryAssignmentSuccessResponse is the success response envelope for POST /activities/{activityID}/jury (201).
type JuryAssignmentSuccessResponse struct {
	Data  *domain.JuryAssignment `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// StaffController serves moderator and jury self-assignment.
type StaffController struct {
	Logger  *slog.Logger
	Service domain.StaffService
}

func NewStaffController(logger *slog.Logger, svc domain.StaffService) *StaffController {
	return &StaffController{Logger: logger, Service: svc}
}

// listForEvent handles the event-scoped activity lists.
func (c *StaffController) listForEvent(w http.ResponseWriter, r *http.Request, list func(callerID, eventID string) ([]*domain.Activity, error)) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	p, ok := principal(w, r)
	if !ok {
		return
	}
	activities, err := list(p.UserID, eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, activities)
}

// AvailableForModeration godoc
// @Summary Activities I can moderate
// @Description Activities of the event the caller does not moderate yet.
// @Tags moderator
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.ActivitiesSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/moderation/available [get]
func (c *StaffController) AvailableForModeration(w http.ResponseWriter, r *http.Request) {
	c.listForEvent(w, r, func(callerID, eventID string) ([]*domain.Activity, error) {
		return c.Service.AvailableForModeration(r.Context(), callerID, eventID)
	})
}

// AssignModerator godoc
// @Summary Moderate an activity
// @Description Assigns the caller as the activity's moderator. An activity has at most one moderator.
// @Tags moderator
// @Produce json
// @Security BearerAuth
// @Param activityID path string true "Activity ID (UUID)"
// @Success 201 {object} controllers.ModeratorAssignmentSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already has a moderator)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /activities/{activityID}/moderator [post]
func (c *StaffController) AssignModerator(w http.ResponseWriter, r *http.Request) {
	activityID, ok := helpers.PathUUID(w, r, "activityID")
	if !ok {
		return
	}
	p, ok := principal(w, r)
	if !ok {
		return
	}
	a, err := c.Service.AssignModerator(r.Context(), p.UserID, activityID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, a)
}

// AvailableForJury godoc
// @Summary Activities I can judge
// @Description Activities of the event the caller is not a juror of.
// @Tags jury
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.ActivitiesSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/jury/available [get]
func (c *StaffController) AvailableForJury(w http.ResponseWriter, r *http.Request) {
	c.listForEvent(w, r, func(callerID, eventID string) ([]*domain.Activity, error) {
		return c.Service.AvailableForJury(r.Context(), callerID, eventID)
	})
}

// MyJuryActivities godoc
// @Summary My jury activities
// @Description Activities of the event the caller is a juror of.
// @Tags jury
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.ActivitiesSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/jury/mine [get]
func (c *StaffController) MyJuryActivities(w http.ResponseWriter, r *http.Request) {
	c.listForEvent(w, r, func(callerID, eventID string) ([]*domain.Activity, error) {
		return c.Service.MyJuryActivities(r.Context(), callerID, eventID)
	})
}

// JoinJury godoc
// @Summary Join an activity's jury
// @Tags jury
// @Produce json
// @Security BearerAuth
// @Param activityID path string true "Activity ID (UUID)"
// @Success 201 {object} controllers.JuryAssignmentSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already a juror)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /activities/{activityID}/jury [post]
func (c *StaffController) JoinJury(w http.ResponseWriter, r *http.Request) {
	activityID, ok := helpers.PathUUID(w, r, "activityID")
	if !ok {
		return
	}
	p, ok := principal(w, r)
	if !ok {
		return
	}
	a, err := c.Service.JoinJury(r.Context(), p.UserID, activityID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, a)
}

// LeaveJury godoc
// @Summary Leave an activity's jury
// @Tags jury
// @Produce json
// @Security BearerAuth
// @Param activityID path string true "Activity ID (UUID)"
// @Success 200 {object} controllers.StatusSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (not a juror)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /activities/{activityID}/jury [delete]
func (c *StaffController) LeaveJury(w http.ResponseWriter, r *http.Request) {
	activityID, ok := helpers.PathUUID(w, r, "activityID")
	if !ok {
		return
	}
	p, ok := principal(w, r)
	if !ok {
		return
	}
	if err := c.Service.LeaveJury(r.Context(), p.UserID, activityID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "removed"})
}

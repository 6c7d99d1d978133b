package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"conferencehub/internal/delivery/http/helpers"
	"conferencehub/internal/domain"
	"conferencehub/internal/schedule"
)

// ActivityRequest is the request body for POST /organizer/activities and PUT /organizer/activities/{activityID}.
type ActivityRequest struct {
	EventID     string `json:"event_id"`
	Day         int    `json:"day" example:"1"`
	StartTime   string `json:"start_time" example:"10:45"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate implements Validator.
func (a ActivityRequest) Validate() []string {
	var errs []string
	if a.EventID == "" {
		errs = append(errs, "event_id is required")
	} else if !helpers.IsUUID(a.EventID) {
		errs = append(errs, "event_id must be a valid UUID")
	}
	if a.Day < 1 {
		errs = append(errs, "day must be at least 1")
	}
	if _, err := schedule.ParseTimeOfDay(a.StartTime); err != nil {
		errs = append(errs, "start_time must be a time in HH:MM format")
	}
	if strings.TrimSpace(a.Name) == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

func (a ActivityRequest) toInput() domain.ActivityInput {
	start, _ := schedule.ParseTimeOfDay(a.StartTime)
	return domain.ActivityInput{
		EventID:     a.EventID,
		Day:         a.Day,
		StartTime:   start,
		Name:        strings.TrimSpace(a.Name),
		Description: a.Description,
	}
}

// SlotsSuccessResponse is the success response envelope for the slot query (200).
type SlotsSuccessResponse struct {
	Data  *domain.SlotAvailability `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// ListActivitiesSuccessResponse is the success response envelope for GET /organizer/activities (200).
type ListActivitiesSuccessResponse struct {
	Data  []*domain.ActivityView `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// ActivitySuccessResponse is the success response envelope for activity writes.
type ActivitySuccessResponse struct {
	Data  *domain.Activity  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type ActivityController struct {
	Logger  *slog.Logger
	Service domain.ActivityService
}

func NewActivityController(logger *slog.Logger, svc domain.ActivityService) *ActivityController {
	return &ActivityController{
		Logger:  logger,
		Service: svc,
	}
}

// AvailableSlots godoc
// @Summary Available start times for an event day
// @Description Free slots of the day. When exclude_activity_id names an activity of this event day, its own start stays available (edit mode).
// @Tags organizer
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param day path int true "Event day (1-based)"
// @Param exclude_activity_id query string false "Activity being edited (UUID)"
// @Success 200 {object} controllers.SlotsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizer/events/{eventID}/days/{day}/slots [get]
func (c *ActivityController) AvailableSlots(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	day, ok := helpers.PathInt(w, r, "day")
	if !ok {
		return
	}
	exclude, err := helpers.QueryUUID(r, "exclude_activity_id")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	p, ok := principal(w, r)
	if !ok {
		return
	}
	slots, err := c.Service.AvailableSlots(r.Context(), p.UserID, eventID, day, exclude)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slots)
}

// ListActivities godoc
// @Summary List my activities
// @Description Activities of the organizer's events ordered by event start date, day and start time.
// @Tags organizer
// @Produce json
// @Security BearerAuth
// @Param event_id query string false "Event ID (UUID)"
// @Param search query string false "Search over name and description"
// @Param sort query string false "asc (default) or desc"
// @Success 200 {object} controllers.ListActivitiesSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizer/activities [get]
func (c *ActivityController) ListActivities(w http.ResponseWriter, r *http.Request) {
	eventID, err := helpers.QueryUUID(r, "event_id")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	sort, err := domain.ParseSortOrder(r.URL.Query().Get("sort"))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	p, ok := principal(w, r)
	if !ok {
		return
	}
	list, err := c.Service.ListForOrganizer(r.Context(), domain.ActivityFilter{
		OrganizerID: p.UserID,
		EventID:     eventID,
		Search:      strings.TrimSpace(r.URL.Query().Get("search")),
		Sort:        sort,
	})
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}

// CreateActivity godoc
// @Summary Create an activity
// @Description Schedules an activity on one of the organizer's events. start_time must be one of the day's free slots.
// @Tags organizer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param activity body ActivityRequest true "Activity data"
// @Success 201 {object} controllers.ActivitySuccessResponse "data contains the created activity"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (slot not available)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizer/activities [post]
func (c *ActivityController) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req ActivityRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	p, ok := principal(w, r)
	if !ok {
		return
	}
	activity, err := c.Service.Create(r.Context(), p.UserID, req.toInput())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, activity)
}

// UpdateActivity godoc
// @Summary Update an activity
// @Description Replaces the activity fields. It keeps its own slot when unchanged and may move to another owned event or day.
// @Tags organizer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param activityID path string true "Activity ID (UUID)"
// @Param activity body ActivityRequest true "Activity data"
// @Success 200 {object} controllers.ActivitySuccessResponse "data contains the updated activity"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (slot not available)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizer/activities/{activityID} [put]
func (c *ActivityController) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	activityID, ok := helpers.PathUUID(w, r, "activityID")
	if !ok {
		return
	}
	var req ActivityRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	p, ok := principal(w, r)
	if !ok {
		return
	}
	activity, err := c.Service.Update(r.Context(), p.UserID, activityID, req.toInput())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, activity)
}

// DeleteActivity godoc
// @Summary Delete an activity
// @Description Removes the activity and its moderator assignment. Rejected once jury members are assigned.
// @Tags organizer
// @Produce json
// @Security BearerAuth
// @Param activityID path string true "Activity ID (UUID)"
// @Success 200 {object} controllers.StatusSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (jury assigned)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizer/activities/{activityID} [delete]
func (c *ActivityController) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	activityID, ok := helpers.PathUUID(w, r, "activityID")
	if !ok {
		return
	}
	p, ok := principal(w, r)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), p.UserID, activityID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "deleted"})
}

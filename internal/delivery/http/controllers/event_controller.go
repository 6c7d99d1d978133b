package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"conferencehub/internal/delivery/http/helpers"
	"conferencehub/internal/domain"
)

// EventRequest is the request body for POST /organizer/events and PUT /organizer/events/{eventID}.
type EventRequest struct {
	Name        string  `json:"name"`
	DirectionID string  `json:"direction_id"`
	CityID      string  `json:"city_id"`
	StartDate   string  `json:"start_date" example:"2025-06-01"`
	EndDate     string  `json:"end_date" example:"2025-06-03"`
	LogoPath    *string `json:"logo_path"`
	Description *string `json:"description"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (e EventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(e.Name) == "" {
		errs = append(errs, "name is required")
	}
	if e.DirectionID == "" {
		errs = append(errs, "direction_id is required")
	} else if !helpers.IsUUID(e.DirectionID) {
		errs = append(errs, "direction_id must be a valid UUID")
	}
	if e.CityID == "" {
		errs = append(errs, "city_id is required")
	} else if !helpers.IsUUID(e.CityID) {
		errs = append(errs, "city_id must be a valid UUID")
	}
	start, startErr := helpers.ParseDate(e.StartDate)
	if startErr != nil {
		errs = append(errs, "start_date must be a date in YYYY-MM-DD format")
	}
	end, endErr := helpers.ParseDate(e.EndDate)
	if endErr != nil {
		errs = append(errs, "end_date must be a date in YYYY-MM-DD format")
	}
	if startErr == nil && endErr == nil && end.Before(start) {
		errs = append(errs, "end_date must not be before start_date")
	}
	return errs
}

func (e EventRequest) toInput() domain.EventInput {
	start, _ := helpers.ParseDate(e.StartDate)
	end, _ := helpers.ParseDate(e.EndDate)
	return domain.EventInput{
		Name:        e.Name,
		DirectionID: e.DirectionID,
		CityID:      e.CityID,
		StartDate:   start,
		EndDate:     end,
		LogoPath:    e.LogoPath,
		Description: e.Description,
	}
}

// ListEventsResponse is the paginated payload of event listings.
type ListEventsResponse struct {
	Items      []*domain.EventView    `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListEventsSuccessResponse is the success response envelope for GET /events and GET /organizer/events (200).
type ListEventsSuccessResponse struct {
	Data  ListEventsResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// EventDetailSuccessResponse is the success response envelope for GET /events/{eventID} (200).
type EventDetailSuccessResponse struct {
	Data  *domain.EventDetail `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// CreateEventResponse is the payload of POST /organizer/events.
type CreateEventResponse struct {
	Event               *domain.Event `json:"event"`
	GeneratedActivities int           `json:"generated_activities"`
}

// CreateEventSuccessResponse is the success response envelope for POST /organizer/events (201).
type CreateEventSuccessResponse struct {
	Data  CreateEventResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// EventSuccessResponse is the success response envelope for PUT /organizer/events/{eventID} (200).
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// StatusResponse is the payload of delete endpoints.
type StatusResponse struct {
	Status string `json:"status"`
}

// StatusSuccessResponse is the success response envelope for delete endpoints (200).
type StatusSuccessResponse struct {
	Data  StatusResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// eventFilter reads the listing filters shared by the public and organizer lists.
func eventFilter(r *http.Request) (domain.EventFilter, []string) {
	var (
		f    domain.EventFilter
		errs []string
		err  error
	)
	if f.DirectionID, err = helpers.QueryUUID(r, "direction_id"); err != nil {
		errs = append(errs, err.Error())
	}
	if f.From, err = helpers.QueryDate(r, "from"); err != nil {
		errs = append(errs, err.Error())
	}
	if f.To, err = helpers.QueryDate(r, "to"); err != nil {
		errs = append(errs, err.Error())
	}
	f.Search = strings.TrimSpace(r.URL.Query().Get("search"))
	return f, errs
}

func (c *EventController) list(w http.ResponseWriter, r *http.Request, organizerID string) {
	filter, errs := eventFilter(r)
	params, pageErrs := helpers.ParsePagination(r)
	if errs = append(errs, pageErrs...); len(errs) > 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, strings.Join(errs, "; "))
		return
	}
	filter.OrganizerID = organizerID
	items, total, err := c.Service.List(r.Context(), filter, params)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	meta := helpers.NewPaginationMeta(params, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{Items: items, Pagination: meta})
}

// ListEvents godoc
// @Summary List events
// @Description Public event listing ordered by start date. Filters: direction, start_date >= from, end_date <= to, case-insensitive name search.
// @Tags events
// @Produce json
// @Param direction_id query string false "Direction ID (UUID)"
// @Param from query string false "Earliest start date (YYYY-MM-DD)"
// @Param to query string false "Latest end date (YYYY-MM-DD)"
// @Param search query string false "Name search"
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	c.list(w, r, "")
}

// ListMyEvents godoc
// @Summary List my events
// @Description Events owned by the authenticated organizer, with activity counts. Same filters as the public list.
// @Tags organizer
// @Produce json
// @Security BearerAuth
// @Param direction_id query string false "Direction ID (UUID)"
// @Param from query string false "Earliest start date (YYYY-MM-DD)"
// @Param to query string false "Latest end date (YYYY-MM-DD)"
// @Param search query string false "Name search"
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizer/events [get]
func (c *EventController) ListMyEvents(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	c.list(w, r, p.UserID)
}

// GetEvent godoc
// @Summary Get an event
// @Description Returns the event with its activities ordered by day and start time. Public.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventDetailSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	detail, err := c.Service.GetDetail(r.Context(), eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, detail)
}

// ExportCalendar godoc
// @Summary Export an event schedule
// @Description iCalendar document with one VEVENT per activity. Public.
// @Tags events
// @Produce text/calendar
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {string} string "iCalendar document"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/schedule.ics [get]
func (c *EventController) ExportCalendar(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	body, err := c.Service.ExportCalendar(r.Context(), eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+eventID+`.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event owned by the authenticated organizer and generates one activity for every free slot of every day.
// @Tags organizer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body EventRequest true "Event data"
// @Success 201 {object} controllers.CreateEventSuccessResponse "data contains the event and the number of generated activities"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizer/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	p, ok := principal(w, r)
	if !ok {
		return
	}
	event, generated, err := c.Service.Create(r.Context(), p.UserID, req.toInput())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, CreateEventResponse{Event: event, GeneratedActivities: generated})
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Replaces the event fields. Owner only. Rejected when existing activities fall on days beyond the new day count.
// @Tags organizer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param event body EventRequest true "Event data"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (activities beyond new day count)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizer/events/{eventID} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	p, ok := principal(w, r)
	if !ok {
		return
	}
	event, err := c.Service.Update(r.Context(), p.UserID, eventID, req.toInput())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Owner only. Rejected while the event still has activities.
// @Tags organizer
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.StatusSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (event has activities)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizer/events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	p, ok := principal(w, r)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), p.UserID, eventID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "deleted"})
}

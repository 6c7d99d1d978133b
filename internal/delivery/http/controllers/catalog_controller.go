package controllers

import (
	"log/slog"
	"net/http"

	"conferencehub/internal/delivery/http/helpers"
	"conferencehub/internal/domain"
)

// ListDirectionsSuccessResponse is the success response envelope for GET /directions (200).
type ListDirectionsSuccessResponse struct {
	Data  []*domain.Direction `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// ListCitiesSuccessResponse is the success response envelope for GET /cities (200).
type ListCitiesSuccessResponse struct {
	Data  []*domain.City    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type CatalogController struct {
	Logger  *slog.Logger
	Service domain.CatalogService
}

func NewCatalogController(logger *slog.Logger, svc domain.CatalogService) *CatalogController {
	return &CatalogController{Logger: logger, Service: svc}
}

// ListDirections godoc
// @Summary List directions
// @Description Event topics in alphabetical order. Public.
// @Tags catalog
// @Produce json
// @Success 200 {object} controllers.ListDirectionsSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /directions [get]
func (c *CatalogController) ListDirections(w http.ResponseWriter, r *http.Request) {
	list, err := c.Service.ListDirections(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}

// ListCities godoc
// @Summary List cities
// @Description Event cities in alphabetical order. Public.
// @Tags catalog
// @Produce json
// @Success 200 {object} controllers.ListCitiesSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /cities [get]
func (c *CatalogController) ListCities(w http.ResponseWriter, r *http.Request) {
	list, err := c.Service.ListCities(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}

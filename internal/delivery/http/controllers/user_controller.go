package controllers

import (
	"log/slog"
	"net/http"

	"conferencehub/internal/delivery/http/helpers"
	"conferencehub/internal/domain"
)

// UpdateMeRequest is the request body for PATCH /users/me. All fields optional; omitted fields are unchanged.
// The password fields are only used together.
type UpdateMeRequest struct {
	FullName        *string `json:"full_name"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	BirthDate       *string `json:"birth_date" example:"1990-04-21"`
	CurrentPassword string  `json:"current_password"`
	NewPassword     string  `json:"new_password"`
	ConfirmPassword string  `json:"confirm_password"`
}

// Validate implements Validator.
func (u UpdateMeRequest) Validate() []string {
	var errs []string
	if u.BirthDate != nil && *u.BirthDate != "" {
		if _, err := helpers.ParseDate(*u.BirthDate); err != nil {
			errs = append(errs, "birth_date must be a date in YYYY-MM-DD format")
		}
	}
	return errs
}

func (u UpdateMeRequest) toProfileUpdate() domain.ProfileUpdate {
	upd := domain.ProfileUpdate{
		FullName:        u.FullName,
		Email:           u.Email,
		Phone:           u.Phone,
		CurrentPassword: u.CurrentPassword,
		NewPassword:     u.NewPassword,
		ConfirmPassword: u.ConfirmPassword,
	}
	if u.BirthDate != nil && *u.BirthDate != "" {
		d, _ := helpers.ParseDate(*u.BirthDate)
		upd.BirthDate = &d
	}
	return upd
}

type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// GetMe godoc
// @Summary Get current user
// @Description Returns the authenticated user's profile including role.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.UserSuccessResponse "data contains the user"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me [get]
func (c *UserController) GetMe(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	user, err := c.Service.GetByID(r.Context(), p.UserID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// UpdateMe godoc
// @Summary Update current user
// @Description Updates the authenticated user's profile. A password change needs current_password, new_password and a matching confirm_password.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateMeRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.UserSuccessResponse "data contains the updated user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (email taken)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me [patch]
func (c *UserController) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req UpdateMeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	p, ok := principal(w, r)
	if !ok {
		return
	}
	user, err := c.Service.UpdateProfile(r.Context(), p.UserID, req.toProfileUpdate())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"conferencehub/internal/delivery/http/controllers"
	"conferencehub/internal/delivery/http/middleware"
	"conferencehub/internal/domain"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Auth     *controllers.AuthController
	User     *controllers.UserController
	Catalog  *controllers.CatalogController
	Event    *controllers.EventController
	Activity *controllers.ActivityController
	Staff    *controllers.StaffController
	Attendee *controllers.AttendeeController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(verifier, logger)
	as := func(roles ...domain.Role) func(http.HandlerFunc) http.HandlerFunc {
		only := middleware.RequireRole(roles...)
		return func(next http.HandlerFunc) http.HandlerFunc {
			return auth(only(next))
		}
	}
	organizer := as(domain.RoleOrganizer)
	moderator := as(domain.RoleModerator)
	jury := as(domain.RoleJury)
	participant := as(domain.RoleParticipant)
	staff := as(domain.RoleModerator, domain.RoleJury, domain.RoleOrganizer)

	// Public
	mux.HandleFunc("GET /directions", c.Catalog.ListDirections)
	mux.HandleFunc("GET /cities", c.Catalog.ListCities)
	mux.HandleFunc("GET /events", c.Event.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", c.Event.GetEvent)
	mux.HandleFunc("GET /events/{eventID}/schedule.ics", c.Event.ExportCalendar)

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Profile
	mux.HandleFunc("GET /users/me", auth(c.User.GetMe))
	mux.HandleFunc("PATCH /users/me", auth(c.User.UpdateMe))

	// Organizer
	mux.HandleFunc("POST /organizer/users", organizer(c.Auth.CreateAccount))
	mux.HandleFunc("GET /organizer/events", organizer(c.Event.ListMyEvents))
	mux.HandleFunc("POST /organizer/events", organizer(c.Event.CreateEvent))
	mux.HandleFunc("PUT /organizer/events/{eventID}", organizer(c.Event.UpdateEvent))
	mux.HandleFunc("DELETE /organizer/events/{eventID}", organizer(c.Event.DeleteEvent))
	mux.HandleFunc("GET /organizer/events/{eventID}/days/{day}/slots", organizer(c.Activity.AvailableSlots))
	mux.HandleFunc("GET /organizer/activities", organizer(c.Activity.ListActivities))
	mux.HandleFunc("POST /organizer/activities", organizer(c.Activity.CreateActivity))
	mux.HandleFunc("PUT /organizer/activities/{activityID}", organizer(c.Activity.UpdateActivity))
	mux.HandleFunc("DELETE /organizer/activities/{activityID}", organizer(c.Activity.DeleteActivity))

	// Moderator
	mux.HandleFunc("GET /events/{eventID}/moderation/available", moderator(c.Staff.AvailableForModeration))
	mux.HandleFunc("POST /activities/{activityID}/moderator", moderator(c.Staff.AssignModerator))

	// Jury
	mux.HandleFunc("GET /events/{eventID}/jury/available", jury(c.Staff.AvailableForJury))
	mux.HandleFunc("GET /events/{eventID}/jury/mine", jury(c.Staff.MyJuryActivities))
	mux.HandleFunc("POST /activities/{activityID}/jury", jury(c.Staff.JoinJury))
	mux.HandleFunc("DELETE /activities/{activityID}/jury", jury(c.Staff.LeaveJury))

	// Attendee
	mux.HandleFunc("POST /events/{eventID}/registrations", participant(c.Attendee.RegisterForEvent))
	mux.HandleFunc("GET /events/{eventID}/registrations/me", participant(c.Attendee.GetMyRegistration))
	mux.HandleFunc("DELETE /events/{eventID}/registrations/me", participant(c.Attendee.CancelRegistration))
	mux.HandleFunc("GET /users/me/registrations", participant(c.Attendee.ListMyRegisteredEvents))
	mux.HandleFunc("GET /events/{eventID}/participants", staff(c.Attendee.ListParticipants))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

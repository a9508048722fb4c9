package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/lukegvoigt/vnr-checkin/internal/delivery/http/controllers"
	"github.com/lukegvoigt/vnr-checkin/internal/delivery/http/middleware"
	"github.com/lukegvoigt/vnr-checkin/internal/domain"
)

// RouterConfig carries the controllers and cross-cutting pieces the router wires together.
type RouterConfig struct {
	Logger         *slog.Logger
	Verifier       domain.TokenVerifier
	AllowedOrigins []string

	CheckIn *controllers.CheckInController
	Sponsor *controllers.SponsorController
	Admin   *controllers.AdminController
}

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	station := middleware.RequireAuth(cfg.Verifier, domain.RoleStation, domain.RoleAdmin)
	sponsor := middleware.RequireAuth(cfg.Verifier, domain.RoleSponsor)
	admin := middleware.RequireAuth(cfg.Verifier, domain.RoleAdmin)

	// Check-in stations
	mux.HandleFunc("POST /checkin/login", cfg.CheckIn.Login)
	mux.HandleFunc("GET /checkin/attendees", station(cfg.CheckIn.Search))
	mux.HandleFunc("GET /checkin/attendees/{code}", station(cfg.CheckIn.Lookup))
	mux.HandleFunc("POST /checkin/attendees/{code}/checkin", station(cfg.CheckIn.CheckIn))

	// Sponsor portal
	mux.HandleFunc("POST /sponsor/login", cfg.Sponsor.Login)
	mux.HandleFunc("GET /sponsor/tickets", sponsor(cfg.Sponsor.ListTickets))
	mux.HandleFunc("POST /sponsor/tickets/{ticketID}/send", sponsor(cfg.Sponsor.SendTicket))
	mux.HandleFunc("POST /sponsor/tickets/{ticketID}/print", sponsor(cfg.Sponsor.PrintTicket))

	// Organizer admin
	mux.HandleFunc("GET /admin/sponsors", admin(cfg.Admin.ListSponsors))
	mux.HandleFunc("POST /admin/sponsors", admin(cfg.Admin.CreateSponsor))
	mux.HandleFunc("POST /admin/roster/import", admin(cfg.Admin.ImportRoster))
	mux.HandleFunc("GET /admin/export/attendees", admin(cfg.Admin.ExportAttendees))
	mux.HandleFunc("GET /admin/export/guests", admin(cfg.Admin.ExportGuests))
	mux.HandleFunc("POST /admin/reset-checkins", admin(cfg.Admin.ResetCheckIns))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(cfg.Logger, handler)
	handler = middleware.RequestID(handler)
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	return handler
}

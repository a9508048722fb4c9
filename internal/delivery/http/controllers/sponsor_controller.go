package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/lukegvoigt/vnr-checkin/internal/delivery/http/helpers"
	"github.com/lukegvoigt/vnr-checkin/internal/delivery/http/middleware"
	"github.com/lukegvoigt/vnr-checkin/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// SponsorController handles the sponsor portal endpoints.
type SponsorController struct {
	Logger   *slog.Logger
	Sponsors domain.SponsorService
	Tickets  domain.TicketService
}

// NewSponsorController creates a SponsorController with the given logger and services.
func NewSponsorController(logger *slog.Logger, sponsors domain.SponsorService, tickets domain.TicketService) *SponsorController {
	return &SponsorController{
		Logger:   logger,
		Sponsors: sponsors,
		Tickets:  tickets,
	}
}

// SponsorLoginRequest is the request body for POST /sponsor/login.
type SponsorLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate implements helpers.Validator.
func (r SponsorLoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Username) == "" {
		errs = append(errs, "username is required")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// SponsorLoginResponse is the response body for POST /sponsor/login.
type SponsorLoginResponse struct {
	Token          string          `json:"token"`
	TokenType      string          `json:"token_type"`
	Sponsor        *domain.Sponsor `json:"sponsor"`
	TicketsCreated int             `json:"tickets_created"`
}

// SponsorLoginSuccessResponse is the success response envelope for POST /sponsor/login (200).
type SponsorLoginSuccessResponse struct {
	Data  SponsorLoginResponse `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// Login godoc
// @Summary Log in to the sponsor portal
// @Description Authenticate with sponsor username and password. On first login the sponsor's ticket pool is created up to the purchased seat count; tickets_created reports how many were minted by this call.
// @Tags sponsor
// @Accept json
// @Produce json
// @Param body body SponsorLoginRequest true "Sponsor credentials"
// @Success 200 {object} controllers.SponsorLoginSuccessResponse "data contains token, sponsor, and tickets_created"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sponsor/login [post]
func (c *SponsorController) Login(w http.ResponseWriter, r *http.Request) {
	var req SponsorLoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Sponsors.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid credentials")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SponsorLoginResponse{
		Token:          result.Token,
		TokenType:      "Bearer",
		Sponsor:        result.Sponsor,
		TicketsCreated: result.TicketsCreated,
	})
}

// ListTicketsSuccessResponse is the success response envelope for GET /sponsor/tickets (200).
type ListTicketsSuccessResponse struct {
	Data  []*domain.SponsorTicket `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// ListTickets godoc
// @Summary List the sponsor's tickets
// @Description Returns every ticket in the authenticated sponsor's pool, assigned or not.
// @Tags sponsor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListTicketsSuccessResponse "data contains the tickets"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sponsor/tickets [get]
func (c *SponsorController) ListTickets(w http.ResponseWriter, r *http.Request) {
	sponsorID, ok := sponsorIDFromContext(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	tickets, err := c.Tickets.ListTickets(r.Context(), sponsorID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tickets)
}

// SendTicketRequest is the request body for POST /sponsor/tickets/{ticketID}/send.
type SendTicketRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate implements helpers.Validator.
func (r SendTicketRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	email := strings.TrimSpace(r.Email)
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	return errs
}

// SendTicketSuccessResponse is the success response envelope for POST /sponsor/tickets/{ticketID}/send (200).
type SendTicketSuccessResponse struct {
	Data  *domain.SponsorTicket `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// SendTicket godoc
// @Summary Assign a ticket and email it to the guest
// @Description Assigns the recipient to the ticket and emails it. Re-sending overwrites the recipient; it never creates another ticket.
// @Tags sponsor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ticketID path int true "Ticket ID"
// @Param body body SendTicketRequest true "Guest name and email"
// @Success 200 {object} controllers.SendTicketSuccessResponse "data contains the updated ticket"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sponsor/tickets/{ticketID}/send [post]
func (c *SponsorController) SendTicket(w http.ResponseWriter, r *http.Request) {
	sponsorID, ok := sponsorIDFromContext(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	ticketID, ok := parseTicketID(w, r)
	if !ok {
		return
	}
	var req SendTicketRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	ticket, err := c.Tickets.SendTicket(r.Context(), sponsorID, ticketID, req.Name, req.Email)
	if err != nil {
		c.writeTicketError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ticket)
}

// PrintTicketRequest is the request body for POST /sponsor/tickets/{ticketID}/print.
// Both fields are optional; a blank body prints the ticket unassigned.
type PrintTicketRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PrintTicketResponse is the response body for POST /sponsor/tickets/{ticketID}/print.
type PrintTicketResponse struct {
	Ticket *domain.SponsorTicket `json:"ticket"`
	HTML   string                `json:"html"`
}

// PrintTicketSuccessResponse is the success response envelope for POST /sponsor/tickets/{ticketID}/print (200).
type PrintTicketSuccessResponse struct {
	Data  PrintTicketResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// PrintTicket godoc
// @Summary Render a printable ticket
// @Description Returns the printable HTML ticket with its QR code. When a guest name is supplied the ticket is assigned on the way through; otherwise it prints with the guest left blank for walk-ups.
// @Tags sponsor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ticketID path int true "Ticket ID"
// @Param body body PrintTicketRequest false "Optional guest name and email"
// @Success 200 {object} controllers.PrintTicketSuccessResponse "data contains the ticket and rendered HTML"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sponsor/tickets/{ticketID}/print [post]
func (c *SponsorController) PrintTicket(w http.ResponseWriter, r *http.Request) {
	sponsorID, ok := sponsorIDFromContext(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	ticketID, ok := parseTicketID(w, r)
	if !ok {
		return
	}
	var req PrintTicketRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	ticket, html, err := c.Tickets.PrintTicket(r.Context(), sponsorID, ticketID, req.Name, req.Email)
	if err != nil {
		c.writeTicketError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PrintTicketResponse{Ticket: ticket, HTML: html})
}

func (c *SponsorController) writeTicketError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "ticket not found")
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "ticket belongs to another sponsor")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// sponsorIDFromContext reads the sponsor ID the auth middleware put in the
// context. Station tokens carry a non-numeric subject and are rejected.
func sponsorIDFromContext(r *http.Request) (int64, bool) {
	subject, ok := middleware.SubjectFromContext(r.Context())
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func parseTicketID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("ticketID"), 10, 64)
	if err != nil || id < 1 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid ticketID")
		return 0, false
	}
	return id, true
}

package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lukegvoigt/vnr-checkin/internal/delivery/http/helpers"
	"github.com/lukegvoigt/vnr-checkin/internal/domain"
)

// CheckInController handles the shared check-in station endpoints.
type CheckInController struct {
	Logger  *slog.Logger
	Service domain.CheckInService
}

// NewCheckInController creates a CheckInController with the given logger and service.
func NewCheckInController(logger *slog.Logger, svc domain.CheckInService) *CheckInController {
	return &CheckInController{
		Logger:  logger,
		Service: svc,
	}
}

// StationLoginRequest is the request body for POST /checkin/login.
type StationLoginRequest struct {
	Passphrase string `json:"passphrase"`
}

// Validate implements helpers.Validator.
func (r StationLoginRequest) Validate() []string {
	if strings.TrimSpace(r.Passphrase) == "" {
		return []string{"passphrase is required"}
	}
	return nil
}

// StationLoginResponse is the response body for POST /checkin/login.
type StationLoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

// StationLoginSuccessResponse is the success response envelope for POST /checkin/login (200).
type StationLoginSuccessResponse struct {
	Data  StationLoginResponse `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// Login godoc
// @Summary Open a check-in station session
// @Description Validates the shared station passphrase and returns a JWT for the check-in endpoints. When the event-date gate is enabled, logins outside event day are rejected with 403.
// @Tags checkin
// @Accept json
// @Produce json
// @Param body body StationLoginRequest true "Station passphrase"
// @Success 200 {object} controllers.StationLoginSuccessResponse "data contains token and token_type"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /checkin/login [post]
func (c *CheckInController) Login(w http.ResponseWriter, r *http.Request) {
	var req StationLoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, err := c.Service.Login(r.Context(), req.Passphrase)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid passphrase")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StationLoginResponse{Token: token, TokenType: "Bearer"})
}

// LookupSuccessResponse is the success response envelope for GET /checkin/attendees/{code} (200).
type LookupSuccessResponse struct {
	Data  *domain.AttendeeView `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// Lookup godoc
// @Summary Look up an attendee by scan code
// @Description Returns the attendee behind the scanned or typed code. The code must be numeric and inside the configured range.
// @Tags checkin
// @Produce json
// @Security BearerAuth
// @Param code path string true "Scan code"
// @Success 200 {object} controllers.LookupSuccessResponse "data contains the attendee"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /checkin/attendees/{code} [get]
func (c *CheckInController) Lookup(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	view, err := c.Service.Lookup(r.Context(), code)
	if err != nil {
		c.writeLookupError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}

// SearchSuccessResponse is the success response envelope for GET /checkin/attendees (200).
type SearchSuccessResponse struct {
	Data  []*domain.AttendeeView `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// AttendeeListResponse is the paginated attendee list for GET /checkin/attendees without a search term.
type AttendeeListResponse struct {
	Attendees  []*domain.AttendeeView `json:"attendees"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// Search godoc
// @Summary Search or list attendees
// @Description With ?search= returns attendees whose name contains the term (manual check-in fallback for unreadable codes). Without it, returns the paginated roster.
// @Tags checkin
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name substring"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.SearchSuccessResponse "data contains matching attendees"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /checkin/attendees [get]
func (c *CheckInController) Search(w http.ResponseWriter, r *http.Request) {
	if term := r.URL.Query().Get("search"); term != "" {
		views, err := c.Service.Search(r.Context(), term)
		if err != nil {
			c.writeLookupError(w, r, err)
			return
		}
		helpers.WriteJSONSuccess(w, http.StatusOK, views)
		return
	}

	p := helpers.ParsePagination(r)
	views, total, err := c.Service.ListAttendees(r.Context(), p)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AttendeeListResponse{
		Attendees:  views,
		Pagination: helpers.NewPaginationMeta(p.Page, p.PageSize, total),
	})
}

// CheckInRequest is the request body for POST /checkin/attendees/{code}/checkin.
// The body is optional; an empty body checks the attendee in alone.
type CheckInRequest struct {
	PlusOne bool `json:"plus_one"`
}

// CheckInSuccessResponse is the success response envelope for POST /checkin/attendees/{code}/checkin (200).
type CheckInSuccessResponse struct {
	Data  *domain.CheckInResult `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// CheckIn godoc
// @Summary Check an attendee in
// @Description Marks the attendee checked in. Idempotent: a repeat scan reports "already checked in" without changing anything. With plus_one true the attendee is checked in with their guest; attendees who did not RSVP a plus-one are rejected with 409.
// @Tags checkin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code path string true "Scan code"
// @Param body body CheckInRequest false "Check-in options"
// @Success 200 {object} controllers.CheckInSuccessResponse "data contains the result and message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /checkin/attendees/{code}/checkin [post]
func (c *CheckInController) CheckIn(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	var req CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}

	var (
		result *domain.CheckInResult
		err    error
	)
	if req.PlusOne {
		result, err = c.Service.CheckInWithPlusOne(r.Context(), code)
	} else {
		result, err = c.Service.CheckIn(r.Context(), code)
	}
	if err != nil {
		if errors.Is(err, domain.ErrPlusOneNotAllowed) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "attendee did not RSVP a plus-one")
			return
		}
		c.writeLookupError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

func (c *CheckInController) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "Attendee not found")
		return
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
}

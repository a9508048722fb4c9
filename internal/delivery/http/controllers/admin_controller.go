package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lukegvoigt/vnr-checkin/internal/delivery/http/helpers"
	"github.com/lukegvoigt/vnr-checkin/internal/domain"
)

// AdminController handles the organizer-only endpoints: sponsor accounts,
// roster import, exports, and the check-in reset.
type AdminController struct {
	Logger   *slog.Logger
	Sponsors domain.SponsorService
	Roster   domain.RosterService
}

// NewAdminController creates an AdminController with the given logger and services.
func NewAdminController(logger *slog.Logger, sponsors domain.SponsorService, roster domain.RosterService) *AdminController {
	return &AdminController{
		Logger:   logger,
		Sponsors: sponsors,
		Roster:   roster,
	}
}

// ListSponsorsSuccessResponse is the success response envelope for GET /admin/sponsors (200).
type ListSponsorsSuccessResponse struct {
	Data  []*domain.SponsorSummary `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// ListSponsors godoc
// @Summary List sponsors with ticket counts
// @Description Returns every sponsor for the current year with its ticket pool size and how many tickets are assigned.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListSponsorsSuccessResponse "data contains the sponsors"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/sponsors [get]
func (c *AdminController) ListSponsors(w http.ResponseWriter, r *http.Request) {
	summaries, err := c.Sponsors.ListSponsors(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, summaries)
}

// CreateSponsorRequest is the request body for POST /admin/sponsors.
type CreateSponsorRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	CompanyName string `json:"company_name"`
	Tier        string `json:"tier"`
	SeatCount   int    `json:"seat_count"`
	IsAdmin     bool   `json:"is_admin"`
}

// Validate implements helpers.Validator.
func (r CreateSponsorRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Username) == "" {
		errs = append(errs, "username is required")
	}
	if len(r.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	if strings.TrimSpace(r.CompanyName) == "" {
		errs = append(errs, "company_name is required")
	}
	if !domain.ValidTier(domain.SponsorTier(r.Tier)) {
		errs = append(errs, "tier must be one of Diamond, Platinum, Gold, Silver")
	}
	if r.SeatCount < 1 {
		errs = append(errs, "seat_count must be at least 1")
	}
	return errs
}

// CreateSponsorSuccessResponse is the success response envelope for POST /admin/sponsors (201).
type CreateSponsorSuccessResponse struct {
	Data  *domain.Sponsor   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateSponsor godoc
// @Summary Create a sponsor account
// @Description Creates a sponsor with a tier and seat count. The ticket pool is not created here; it materializes on the sponsor's first login.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateSponsorRequest true "Sponsor account"
// @Success 201 {object} controllers.CreateSponsorSuccessResponse "data contains the created sponsor"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/sponsors [post]
func (c *AdminController) CreateSponsor(w http.ResponseWriter, r *http.Request) {
	var req CreateSponsorRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	sponsor := &domain.Sponsor{
		Username:    req.Username,
		CompanyName: strings.TrimSpace(req.CompanyName),
		Tier:        domain.SponsorTier(req.Tier),
		SeatCount:   req.SeatCount,
		IsAdmin:     req.IsAdmin,
	}
	created, err := c.Sponsors.Create(r.Context(), sponsor, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "username already exists")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// ImportRosterResponse is the success response envelope for POST /admin/roster/import (200).
type ImportRosterResponse struct {
	Data  *domain.RosterImportResult `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// ImportRoster godoc
// @Summary Import the attendee roster
// @Description Reads a roster CSV from the request body and upserts attendees by scan code. Re-importing updates rows in place; it never duplicates attendees or disturbs check-in state recorded by the stations.
// @Tags admin
// @Accept text/csv
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ImportRosterResponse "data contains created/updated/skipped counts"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/roster/import [post]
func (c *AdminController) ImportRoster(w http.ResponseWriter, r *http.Request) {
	result, err := c.Roster.Import(r.Context(), r.Body)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// ExportAttendees godoc
// @Summary Export the attendee roster as CSV
// @Description Streams the full attendee table, including check-in state, in the roster column layout. The file re-imports cleanly.
// @Tags admin
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "CSV file"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/export/attendees [get]
func (c *AdminController) ExportAttendees(w http.ResponseWriter, r *http.Request) {
	c.writeCSV(w, r, "attendees", c.Roster.ExportAttendees)
}

// ExportGuests godoc
// @Summary Export the combined guest list as CSV
// @Description Streams attendees and assigned sponsor guests in one list for the caterer and the seating chart. Unassigned pool tickets are left out.
// @Tags admin
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "CSV file"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/export/guests [get]
func (c *AdminController) ExportGuests(w http.ResponseWriter, r *http.Request) {
	c.writeCSV(w, r, "guests", c.Roster.ExportGuests)
}

// ResetCheckInsResponse is the response body for POST /admin/reset-checkins.
type ResetCheckInsResponse struct {
	Reset int64 `json:"reset"`
}

// ResetCheckInsSuccessResponse is the success response envelope for POST /admin/reset-checkins (200).
type ResetCheckInsSuccessResponse struct {
	Data  ResetCheckInsResponse `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// ResetCheckIns godoc
// @Summary Reset all check-in state
// @Description Returns every attendee to not-checked-in. Used between rehearsals and before doors open.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ResetCheckInsSuccessResponse "data contains the number of rows reset"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/reset-checkins [post]
func (c *AdminController) ResetCheckIns(w http.ResponseWriter, r *http.Request) {
	n, err := c.Roster.ResetCheckIns(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ResetCheckInsResponse{Reset: n})
}

func (c *AdminController) writeCSV(w http.ResponseWriter, r *http.Request, name string, export func(context.Context, io.Writer) (int, error)) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".csv"))
	if _, err := export(r.Context(), w); err != nil {
		// Headers are already out; all we can do is log.
		c.Logger.ErrorContext(r.Context(), "export failed", "export", name, "err", err)
	}
}

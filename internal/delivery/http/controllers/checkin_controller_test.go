package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukegvoigt/vnr-checkin/internal/delivery/http/helpers"
	"github.com/lukegvoigt/vnr-checkin/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeCheckInService implements domain.CheckInService for handler tests.
type fakeCheckInService struct {
	token        string
	loginErr     error
	view         *domain.AttendeeView
	lookupErr    error
	searchViews  []*domain.AttendeeView
	searchErr    error
	listTotal    int
	result       *domain.CheckInResult
	checkInErr   error
	lastPlusOne  bool
	lastCode     string
}

func (f *fakeCheckInService) Login(ctx context.Context, passphrase string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.token, nil
}

func (f *fakeCheckInService) Lookup(ctx context.Context, code string) (*domain.AttendeeView, error) {
	f.lastCode = code
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.view, nil
}

func (f *fakeCheckInService) Search(ctx context.Context, nameSubstring string) ([]*domain.AttendeeView, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchViews, nil
}

func (f *fakeCheckInService) ListAttendees(ctx context.Context, p domain.PaginationParams) ([]*domain.AttendeeView, int, error) {
	return f.searchViews, f.listTotal, nil
}

func (f *fakeCheckInService) CheckIn(ctx context.Context, code string) (*domain.CheckInResult, error) {
	f.lastCode, f.lastPlusOne = code, false
	if f.checkInErr != nil {
		return nil, f.checkInErr
	}
	return f.result, nil
}

func (f *fakeCheckInService) CheckInWithPlusOne(ctx context.Context, code string) (*domain.CheckInResult, error) {
	f.lastCode, f.lastPlusOne = code, true
	if f.checkInErr != nil {
		return nil, f.checkInErr
	}
	return f.result, nil
}

func TestCheckInController_Login(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		fake         *fakeCheckInService
		wantStatus   int
		wantBodyCode string
	}{
		{
			name:       "success",
			body:       `{"passphrase":"dinner-2026"}`,
			fake:       &fakeCheckInService{token: "jwt-token"},
			wantStatus: http.StatusOK,
		},
		{
			name:         "missing passphrase",
			body:         `{"passphrase":""}`,
			fake:         &fakeCheckInService{},
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "wrong passphrase",
			body:         `{"passphrase":"guess"}`,
			fake:         &fakeCheckInService{loginErr: domain.ErrInvalidCredentials},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "outside event day",
			body:         `{"passphrase":"dinner-2026"}`,
			fake:         &fakeCheckInService{loginErr: domain.ErrForbidden},
			wantStatus:   http.StatusForbidden,
			wantBodyCode: helpers.ErrCodeForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewCheckInController(testLogger, tt.fake)

			req := httptest.NewRequest(http.MethodPost, "http://test/checkin/login", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			ctrl.Login(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				data := envelope.Data.(map[string]any)
				assert.Equal(t, "jwt-token", data["token"])
				assert.Equal(t, "Bearer", data["token_type"])
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
		})
	}
}

func TestCheckInController_Lookup(t *testing.T) {
	tests := []struct {
		name         string
		code         string
		fake         *fakeCheckInService
		wantStatus   int
		wantBodyCode string
		wantMessage  string
	}{
		{
			name:       "found",
			code:       "1000",
			fake:       &fakeCheckInService{view: &domain.AttendeeView{Name: "Dana Whitfield", ScanCode: "1000"}},
			wantStatus: http.StatusOK,
		},
		{
			name:         "not found",
			code:         "4999",
			fake:         &fakeCheckInService{lookupErr: domain.ErrNotFound},
			wantStatus:   http.StatusNotFound,
			wantBodyCode: helpers.ErrCodeNotFound,
			wantMessage:  "Attendee not found",
		},
		{
			name:         "out of range",
			code:         "99999",
			fake:         &fakeCheckInService{lookupErr: domain.ErrInvalidInput},
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "service error",
			code:         "1000",
			fake:         &fakeCheckInService{lookupErr: assert.AnError},
			wantStatus:   http.StatusInternalServerError,
			wantBodyCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewCheckInController(testLogger, tt.fake)

			req := httptest.NewRequest(http.MethodGet, "http://test/checkin/attendees/"+tt.code, nil)
			req.SetPathValue("code", tt.code)
			rr := httptest.NewRecorder()

			ctrl.Lookup(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.code, tt.fake.lastCode)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				data := envelope.Data.(map[string]any)
				assert.Equal(t, "Dana Whitfield", data["name"])
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, envelope.Error.Message)
			}
		})
	}
}

func TestCheckInController_Search(t *testing.T) {
	t.Run("with search term", func(t *testing.T) {
		fake := &fakeCheckInService{searchViews: []*domain.AttendeeView{
			{Name: "Dana Whitfield", ScanCode: "1000"},
		}}
		ctrl := NewCheckInController(testLogger, fake)

		req := httptest.NewRequest(http.MethodGet, "http://test/checkin/attendees?search=whit", nil)
		rr := httptest.NewRecorder()

		ctrl.Search(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var envelope helpers.APIResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		require.Nil(t, envelope.Error)
		assert.Len(t, envelope.Data, 1)
	})

	t.Run("without search term lists paginated", func(t *testing.T) {
		fake := &fakeCheckInService{searchViews: []*domain.AttendeeView{
			{Name: "Dana Whitfield"}, {Name: "Miguel Santos"},
		}, listTotal: 42}
		ctrl := NewCheckInController(testLogger, fake)

		req := httptest.NewRequest(http.MethodGet, "http://test/checkin/attendees?page=2&page_size=2", nil)
		rr := httptest.NewRecorder()

		ctrl.Search(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var envelope helpers.APIResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		data := envelope.Data.(map[string]any)
		pagination := data["pagination"].(map[string]any)
		assert.Equal(t, float64(2), pagination["page"])
		assert.Equal(t, float64(42), pagination["total"])
		assert.Equal(t, float64(21), pagination["total_pages"])
	})
}

func TestCheckInController_CheckIn(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		fake         *fakeCheckInService
		wantStatus   int
		wantBodyCode string
		wantPlusOne  bool
	}{
		{
			name: "plain check-in",
			body: "",
			fake: &fakeCheckInService{result: &domain.CheckInResult{
				Attendee: &domain.AttendeeView{Name: "Dana Whitfield"},
				Updated:  true,
				Message:  "Dana Whitfield checked in successfully",
			}},
			wantStatus: http.StatusOK,
		},
		{
			name: "plus one",
			body: `{"plus_one":true}`,
			fake: &fakeCheckInService{result: &domain.CheckInResult{
				Attendee: &domain.AttendeeView{Name: "Dana Whitfield"},
				Updated:  true,
			}},
			wantStatus:  http.StatusOK,
			wantPlusOne: true,
		},
		{
			name:         "plus one not allowed",
			body:         `{"plus_one":true}`,
			fake:         &fakeCheckInService{checkInErr: domain.ErrPlusOneNotAllowed},
			wantStatus:   http.StatusConflict,
			wantBodyCode: helpers.ErrCodeConflict,
			wantPlusOne:  true,
		},
		{
			name:         "unknown attendee",
			body:         "",
			fake:         &fakeCheckInService{checkInErr: domain.ErrNotFound},
			wantStatus:   http.StatusNotFound,
			wantBodyCode: helpers.ErrCodeNotFound,
		},
		{
			name:         "malformed body",
			body:         `{"plus_one":`,
			fake:         &fakeCheckInService{},
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewCheckInController(testLogger, tt.fake)

			req := httptest.NewRequest(http.MethodPost, "http://test/checkin/attendees/1000/checkin", bytes.NewBufferString(tt.body))
			req.SetPathValue("code", "1000")
			rr := httptest.NewRecorder()

			ctrl.CheckIn(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				assert.Equal(t, tt.wantPlusOne, tt.fake.lastPlusOne)
				assert.Equal(t, "1000", tt.fake.lastCode)
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
		})
	}
}

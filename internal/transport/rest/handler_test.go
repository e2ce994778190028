package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"churchcms/config"
	"churchcms/internal/domain"
	"churchcms/internal/service"
	"churchcms/internal/storage"
)

type testServer struct {
	router       *gin.Engine
	counsellors  *mockCounsellorService
	schedules    *mockScheduleService
	availability *mockAvailabilityService
	bookings     *mockBookingService
	auth         *mockAuthService
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Errors  []string        `json:"errors"`
}

func newTestServer(t *testing.T, bookingsPerMinute int) *testServer {
	gin.SetMode(gin.TestMode)

	s := &testServer{
		counsellors:  &mockCounsellorService{},
		schedules:    &mockScheduleService{},
		availability: &mockAvailabilityService{},
		bookings:     &mockBookingService{},
		auth:         &mockAuthService{},
	}
	t.Cleanup(func() {
		s.counsellors.AssertExpectations(t)
		s.schedules.AssertExpectations(t)
		s.availability.AssertExpectations(t)
		s.bookings.AssertExpectations(t)
		s.auth.AssertExpectations(t)
	})

	cfg := &config.Config{
		Name:      "churchcms",
		Version:   "test",
		RateLimit: config.RateLimitConfig{BookingsPerMinute: bookingsPerMinute, Burst: 1},
	}
	services := &service.Services{
		Counsellor:   s.counsellors,
		Schedule:     s.schedules,
		Availability: s.availability,
		Booking:      s.bookings,
		Auth:         s.auth,
	}

	s.router = gin.New()
	NewHandler(services, zap.NewNop(), cfg).InitRoutes(s.router)
	return s
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, testEnvelope) {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env testEnvelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func (s *testServer) asAdmin() map[string]string {
	s.auth.On("ParseToken", mock.Anything, "good-token").Return(int64(1), nil)
	return map[string]string{"Authorization": "Bearer good-token"}
}

func bookingForm() domain.BookingFormData {
	return domain.BookingFormData{
		CounsellorID:  "c1",
		BookingType:   domain.BookingTypeOnline,
		PreferredDate: "2025-03-10",
		PreferredTime: "09:00",
		FirstName:     "Jane",
		LastName:      "Doe",
		Email:         "jane@x.com",
		Phone:         "+233501234567",
		Country:       "GH",
		Topic:         "Grief & Loss",
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, 0)

	w, env := s.do(t, http.MethodGet, "/health", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"name":"churchcms","version":"test"}`, string(env.Data))
}

func TestGetCounsellors(t *testing.T) {
	s := newTestServer(t, 0)
	s.counsellors.On("List", mock.Anything, mock.MatchedBy(func(bt *domain.BookingType) bool {
		return bt != nil && *bt == domain.BookingTypeOnline
	})).Return([]domain.Counsellor{{ID: "c1", Name: "Pastor Ama", IsOnline: true}}, nil)

	w, env := s.do(t, http.MethodGet, "/api/counsellors?bookingType=online", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var data struct {
		Counsellors []domain.Counsellor `json:"counsellors"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Counsellors, 1)
	assert.Equal(t, "Pastor Ama", data.Counsellors[0].Name)
}

func TestGetCounsellors_InvalidType(t *testing.T) {
	s := newTestServer(t, 0)
	s.counsellors.On("List", mock.Anything, mock.Anything).
		Return(nil, &domain.ValidationError{Fields: map[string]string{"bookingType": "Booking type must be online or in-person"}})

	w, env := s.do(t, http.MethodGet, "/api/counsellors?bookingType=video", nil, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, []string{"Booking type must be online or in-person"}, env.Errors)
}

func TestGetAvailableSlots(t *testing.T) {
	s := newTestServer(t, 0)
	slots := []domain.TimeSlot{{ID: "c1-2025-03-10-0900", Date: "2025-03-10", StartTime: "09:00", EndTime: "10:00", IsAvailable: true}}
	s.availability.On("Slots", mock.Anything, "c1", domain.BookingTypeInPerson).Return(slots, nil)

	w, env := s.do(t, http.MethodGet, "/api/counselling?counsellorId=c1&bookingType=in-person", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var data struct {
		AvailableSlots []domain.TimeSlot `json:"availableSlots"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, slots, data.AvailableSlots)
}

func TestGetAvailableSlots_RequiresCounsellor(t *testing.T) {
	s := newTestServer(t, 0)

	w, env := s.do(t, http.MethodGet, "/api/counselling?bookingType=online", nil, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "counsellorId is required", env.Error)
}

func TestCreateBooking(t *testing.T) {
	s := newTestServer(t, 0)
	result := &domain.BookingResult{
		ConfirmationNumber: "CN-20250301-1A2B3C",
		Booking:            domain.Booking{ID: 1, ConfirmationNumber: "CN-20250301-1A2B3C", BookingFormData: bookingForm()},
		MeetingURL:         "https://meet.jit.si/room",
	}
	s.bookings.On("Create", mock.Anything, domain.CreateBookingRequest{
		BookingFormData: bookingForm(),
		IdempotencyKey:  "header-key",
	}).Return(result, nil)

	body := domain.CreateBookingRequest{BookingFormData: bookingForm(), IdempotencyKey: "body-key"}
	w, env := s.do(t, http.MethodPost, "/api/counselling", body, map[string]string{"Idempotency-Key": "header-key"})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	var data domain.BookingResult
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "CN-20250301-1A2B3C", data.ConfirmationNumber)
	assert.Equal(t, "https://meet.jit.si/room", data.MeetingURL)
}

func TestCreateBooking_BodyKeyWithoutHeader(t *testing.T) {
	s := newTestServer(t, 0)
	s.bookings.On("Create", mock.Anything, mock.MatchedBy(func(req domain.CreateBookingRequest) bool {
		return req.IdempotencyKey == "body-key"
	})).Return(&domain.BookingResult{ConfirmationNumber: "CN-20250301-AAAAAA"}, nil)

	w, _ := s.do(t, http.MethodPost, "/api/counselling", domain.CreateBookingRequest{BookingFormData: bookingForm(), IdempotencyKey: "body-key"}, nil)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateBooking_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
		wantErrors []string
	}{
		{
			name: "validation",
			err: &domain.ValidationError{Fields: map[string]string{
				"topic": "Please select a topic",
				"email": "Please enter a valid email address",
			}},
			wantStatus: http.StatusBadRequest,
			wantError:  "Validation failed",
			wantErrors: []string{"Please enter a valid email address", "Please select a topic"},
		},
		{name: "slot taken", err: domain.ErrSlotUnavailable, wantStatus: http.StatusConflict, wantError: "Slot no longer available"},
		{name: "unknown counsellor", err: domain.ErrCounsellorNotFound, wantStatus: http.StatusNotFound, wantError: "Counsellor not found"},
		{name: "modality", err: domain.ErrModalityUnsupported, wantStatus: http.StatusBadRequest, wantError: "Counsellor does not offer this session type"},
		{name: "unexpected", err: errors.New("db down"), wantStatus: http.StatusInternalServerError, wantError: "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, 0)
			s.bookings.On("Create", mock.Anything, mock.Anything).Return(nil, tt.err)

			w, env := s.do(t, http.MethodPost, "/api/counselling", domain.CreateBookingRequest{BookingFormData: bookingForm()}, nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantError, env.Error)
			assert.Equal(t, tt.wantErrors, env.Errors)
		})
	}
}

func TestCreateBooking_MalformedBody(t *testing.T) {
	s := newTestServer(t, 0)

	w, env := s.do(t, http.MethodPost, "/api/counselling", "{not json", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", env.Error)
}

func TestCreateBooking_RateLimited(t *testing.T) {
	s := newTestServer(t, 1)
	s.bookings.On("Create", mock.Anything, mock.Anything).Return(&domain.BookingResult{}, nil).Once()

	w, _ := s.do(t, http.MethodPost, "/api/counselling", domain.CreateBookingRequest{BookingFormData: bookingForm()}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	w, env := s.do(t, http.MethodPost, "/api/counselling", domain.CreateBookingRequest{BookingFormData: bookingForm()}, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.False(t, env.Success)
}

func TestGetBookingByConfirmationNumber(t *testing.T) {
	s := newTestServer(t, 0)
	s.bookings.On("GetByConfirmationNumber", mock.Anything, "CN-20250301-ZZZZZZ").Return(nil, domain.ErrNotFound)

	w, env := s.do(t, http.MethodGet, "/api/counselling/CN-20250301-ZZZZZZ", nil, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Booking not found", env.Error)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, 0)

	w, _ := s.do(t, http.MethodOptions, "/api/counselling", nil, map[string]string{"Origin": "https://church.example"})

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Idempotency-Key")
}

func TestAdminRoutes_RequireToken(t *testing.T) {
	s := newTestServer(t, 0)
	s.auth.On("ParseToken", mock.Anything, "bad").Return(int64(0), domain.ErrInvalidToken)

	w, env := s.do(t, http.MethodGet, "/api/admin/bookings", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Missing authorization header", env.Error)

	w, _ = s.do(t, http.MethodGet, "/api/admin/bookings", nil, map[string]string{"Authorization": "Token abc"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = s.do(t, http.MethodGet, "/api/admin/bookings", nil, map[string]string{"Authorization": "Bearer bad"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid or expired token", env.Error)
}

func TestAdminListBookings(t *testing.T) {
	s := newTestServer(t, 0)
	headers := s.asAdmin()
	s.bookings.On("List", mock.Anything, mock.MatchedBy(func(f domain.BookingFilter) bool {
		return f.Limit == 100 && f.Offset == 20 && f.Status != nil && *f.Status == domain.BookingStatusPending &&
			f.CounsellorID != nil && *f.CounsellorID == "c1" && f.StartDate != nil && *f.StartDate == "2025-03-01"
	})).Return([]domain.Booking{{ID: 1}}, 21, nil)

	w, env := s.do(t, http.MethodGet, "/api/admin/bookings?status=pending&counsellorId=c1&startDate=2025-03-01&limit=500&offset=20", nil, headers)

	require.Equal(t, http.StatusOK, w.Code)
	var data struct {
		Items  []domain.Booking `json:"items"`
		Total  int              `json:"total"`
		Limit  int              `json:"limit"`
		Offset int              `json:"offset"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data.Items, 1)
	assert.Equal(t, 21, data.Total)
	assert.Equal(t, 100, data.Limit)
}

func TestAdminUpdateBookingStatus(t *testing.T) {
	s := newTestServer(t, 0)
	headers := s.asAdmin()

	w, _ := s.do(t, http.MethodPatch, "/api/admin/bookings/1/status", `{"status":"archived"}`, headers)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodPatch, "/api/admin/bookings/abc/status", `{"status":"cancelled"}`, headers)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	s.bookings.On("UpdateStatus", mock.Anything, int64(1), domain.BookingStatusCancelled).Return(nil)
	w, _ = s.do(t, http.MethodPatch, "/api/admin/bookings/1/status", `{"status":"cancelled"}`, headers)
	assert.Equal(t, http.StatusNoContent, w.Code)

	s.bookings.On("UpdateStatus", mock.Anything, int64(2), domain.BookingStatusConfirmed).Return(domain.ErrSlotUnavailable)
	w, _ = s.do(t, http.MethodPatch, "/api/admin/bookings/2/status", `{"status":"confirmed"}`, headers)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAdminRenotifyBooking(t *testing.T) {
	s := newTestServer(t, 0)
	headers := s.asAdmin()
	s.bookings.On("Renotify", mock.Anything, int64(5)).Return(nil)

	w, env := s.do(t, http.MethodPost, "/api/admin/bookings/5/notify", nil, headers)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.True(t, env.Success)
}

func TestAdminCreateSchedule(t *testing.T) {
	s := newTestServer(t, 0)
	headers := s.asAdmin()
	dto := domain.CreateScheduleDTO{
		CounsellorID: "c1",
		Date:         "2025-03-10",
		StartTime:    "09:00",
		EndTime:      "12:00",
		SlotMinutes:  60,
		BookingType:  domain.BookingTypeBoth,
	}
	s.schedules.On("Create", mock.Anything, dto).Return(int64(9), nil)

	w, env := s.do(t, http.MethodPost, "/api/admin/schedules", dto, headers)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":9}`, string(env.Data))
}

func TestAdminGetSchedules_BadDate(t *testing.T) {
	s := newTestServer(t, 0)
	headers := s.asAdmin()

	w, env := s.do(t, http.MethodGet, "/api/admin/schedules?startDate=tomorrow", nil, headers)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "startDate must be in YYYY-MM-DD format", env.Error)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t, 0)
	s.auth.On("Login", mock.Anything, domain.LoginRequest{Email: "admin@church.org", Password: "wrong"}, mock.Anything, mock.Anything).
		Return(nil, domain.ErrInvalidCredentials)
	s.auth.On("Login", mock.Anything, domain.LoginRequest{Email: "admin@church.org", Password: "right"}, mock.Anything, mock.Anything).
		Return(&domain.Tokens{AccessToken: "a", RefreshToken: "r"}, nil)

	w, env := s.do(t, http.MethodPost, "/api/auth/login", `{"email":"admin@church.org","password":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", env.Error)

	w, env = s.do(t, http.MethodPost, "/api/auth/login", `{"email":"admin@church.org","password":"right"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"accessToken":"a"`)

	w, _ = s.do(t, http.MethodPost, "/api/auth/login", `{"email":"not-an-email","password":"x"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogout(t *testing.T) {
	s := newTestServer(t, 0)
	s.auth.On("Logout", mock.Anything, "r").Return(nil)

	w, _ := s.do(t, http.MethodPost, "/api/auth/logout", `{"refreshToken":"r"}`, nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func photoRequest(t *testing.T, path, filename string, content []byte) *http.Request {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("photo", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer good-token")
	return req
}

func TestAdminUploadCounsellorPhoto(t *testing.T) {
	s := newTestServer(t, 0)
	s.asAdmin()
	png := []byte("\x89PNG\r\n\x1a\n0000")
	s.counsellors.On("UploadPhoto", mock.Anything, "c1", png, "me.png").Return("https://cdn/counsellors/x.png", nil)
	s.counsellors.On("UploadPhoto", mock.Anything, "c1", []byte("hello"), "me.txt").Return("", storage.ErrNotImage)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, photoRequest(t, "/api/admin/counsellors/c1/photo", "me.png", png))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"photoUrl":"https://cdn/counsellors/x.png"`)

	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, photoRequest(t, "/api/admin/counsellors/c1/photo", "me.txt", []byte("hello")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "File must be an image"))
}

func TestAdminDeleteCounsellor_NotFound(t *testing.T) {
	s := newTestServer(t, 0)
	headers := s.asAdmin()
	s.counsellors.On("Delete", mock.Anything, "ghost").Return(domain.ErrCounsellorNotFound)

	w, env := s.do(t, http.MethodDelete, "/api/admin/counsellors/ghost", nil, headers)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Counsellor not found", env.Error)
}

func TestIPRateLimiter(t *testing.T) {
	assert.Nil(t, newIPRateLimiter(0, 5))

	l := newIPRateLimiter(60, 2)
	now := time.Now()
	assert.True(t, l.allow("1.1.1.1", now))
	assert.True(t, l.allow("1.1.1.1", now))
	assert.False(t, l.allow("1.1.1.1", now))
	assert.True(t, l.allow("2.2.2.2", now))
	assert.True(t, l.allow("1.1.1.1", now.Add(time.Second)))

	l.allow("3.3.3.3", now.Add(time.Hour))
	assert.NotContains(t, l.limiters, "2.2.2.2")
}

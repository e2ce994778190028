package rest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"churchcms/internal/domain"
	"churchcms/internal/service"
)

type mockCounsellorService struct{ mock.Mock }

var _ service.CounsellorService = (*mockCounsellorService)(nil)

func (m *mockCounsellorService) Create(ctx context.Context, dto domain.CreateCounsellorDTO) (*domain.Counsellor, error) {
	args := m.Called(ctx, dto)
	c, _ := args.Get(0).(*domain.Counsellor)
	return c, args.Error(1)
}

func (m *mockCounsellorService) GetByID(ctx context.Context, id string) (*domain.Counsellor, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*domain.Counsellor)
	return c, args.Error(1)
}

func (m *mockCounsellorService) Update(ctx context.Context, id string, dto domain.UpdateCounsellorDTO) error {
	return m.Called(ctx, id, dto).Error(0)
}

func (m *mockCounsellorService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCounsellorService) List(ctx context.Context, bookingType *domain.BookingType) ([]domain.Counsellor, error) {
	args := m.Called(ctx, bookingType)
	list, _ := args.Get(0).([]domain.Counsellor)
	return list, args.Error(1)
}

func (m *mockCounsellorService) ListAll(ctx context.Context) ([]domain.Counsellor, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]domain.Counsellor)
	return list, args.Error(1)
}

func (m *mockCounsellorService) UploadPhoto(ctx context.Context, id string, photo []byte, filename string) (string, error) {
	args := m.Called(ctx, id, photo, filename)
	return args.String(0), args.Error(1)
}

type mockScheduleService struct{ mock.Mock }

var _ service.ScheduleService = (*mockScheduleService)(nil)

func (m *mockScheduleService) Create(ctx context.Context, dto domain.CreateScheduleDTO) (int64, error) {
	args := m.Called(ctx, dto)
	id, _ := args.Get(0).(int64)
	return id, args.Error(1)
}

func (m *mockScheduleService) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*domain.Schedule)
	return s, args.Error(1)
}

func (m *mockScheduleService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockScheduleService) List(ctx context.Context, filter domain.ScheduleFilter) ([]domain.Schedule, int, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]domain.Schedule)
	return list, args.Int(1), args.Error(2)
}

type mockAvailabilityService struct{ mock.Mock }

var _ service.AvailabilityService = (*mockAvailabilityService)(nil)

func (m *mockAvailabilityService) Slots(ctx context.Context, counsellorID string, bookingType domain.BookingType) ([]domain.TimeSlot, error) {
	args := m.Called(ctx, counsellorID, bookingType)
	slots, _ := args.Get(0).([]domain.TimeSlot)
	return slots, args.Error(1)
}

func (m *mockAvailabilityService) FindSlot(ctx context.Context, counsellorID string, bookingType domain.BookingType, date, clock string) (*domain.TimeSlot, error) {
	args := m.Called(ctx, counsellorID, bookingType, date, clock)
	slot, _ := args.Get(0).(*domain.TimeSlot)
	return slot, args.Error(1)
}

type mockBookingService struct{ mock.Mock }

var _ service.BookingService = (*mockBookingService)(nil)

func (m *mockBookingService) Create(ctx context.Context, req domain.CreateBookingRequest) (*domain.BookingResult, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*domain.BookingResult)
	return r, args.Error(1)
}

func (m *mockBookingService) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *mockBookingService) GetByConfirmationNumber(ctx context.Context, number string) (*domain.Booking, error) {
	args := m.Called(ctx, number)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *mockBookingService) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]domain.Booking)
	return list, args.Int(1), args.Error(2)
}

func (m *mockBookingService) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockBookingService) Renotify(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockAuthService struct{ mock.Mock }

var _ service.AuthService = (*mockAuthService)(nil)

func (m *mockAuthService) Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error) {
	args := m.Called(ctx, dto, userAgent, ip)
	t, _ := args.Get(0).(*domain.Tokens)
	return t, args.Error(1)
}

func (m *mockAuthService) RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error) {
	args := m.Called(ctx, refreshToken, userAgent, ip)
	t, _ := args.Get(0).(*domain.Tokens)
	return t, args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

func (m *mockAuthService) ParseToken(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	id, _ := args.Get(0).(int64)
	return id, args.Error(1)
}

func (m *mockAuthService) EnsureAdmin(ctx context.Context, email, password, name string) error {
	return m.Called(ctx, email, password, name).Error(0)
}

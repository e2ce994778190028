// Package mocks holds testify mocks of the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"churchcms/internal/domain"
	"churchcms/internal/repository"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(m *mock.Mock, t testingT) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

type CounsellorRepository struct {
	mock.Mock
}

var _ repository.CounsellorRepository = (*CounsellorRepository)(nil)

func NewCounsellorRepository(t testingT) *CounsellorRepository {
	m := &CounsellorRepository{}
	register(&m.Mock, t)
	return m
}

func (m *CounsellorRepository) Create(ctx context.Context, counsellor domain.Counsellor) error {
	return m.Called(ctx, counsellor).Error(0)
}

func (m *CounsellorRepository) GetByID(ctx context.Context, id string) (*domain.Counsellor, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*domain.Counsellor)
	return c, args.Error(1)
}

func (m *CounsellorRepository) Update(ctx context.Context, id string, dto domain.UpdateCounsellorDTO) error {
	return m.Called(ctx, id, dto).Error(0)
}

func (m *CounsellorRepository) Deactivate(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *CounsellorRepository) List(ctx context.Context, filter domain.CounsellorFilter) ([]domain.Counsellor, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]domain.Counsellor)
	return list, args.Error(1)
}

func (m *CounsellorRepository) UpdatePhoto(ctx context.Context, id string, photoURL string) error {
	return m.Called(ctx, id, photoURL).Error(0)
}

type ScheduleRepository struct {
	mock.Mock
}

var _ repository.ScheduleRepository = (*ScheduleRepository)(nil)

func NewScheduleRepository(t testingT) *ScheduleRepository {
	m := &ScheduleRepository{}
	register(&m.Mock, t)
	return m
}

func (m *ScheduleRepository) Create(ctx context.Context, schedule domain.Schedule) (int64, error) {
	args := m.Called(ctx, schedule)
	id, _ := args.Get(0).(int64)
	return id, args.Error(1)
}

func (m *ScheduleRepository) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*domain.Schedule)
	return s, args.Error(1)
}

func (m *ScheduleRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ScheduleRepository) List(ctx context.Context, filter domain.ScheduleFilter) ([]domain.Schedule, int, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]domain.Schedule)
	return list, args.Int(1), args.Error(2)
}

func (m *ScheduleRepository) ListForRange(ctx context.Context, counsellorID string, from, to time.Time) ([]domain.Schedule, error) {
	args := m.Called(ctx, counsellorID, from, to)
	list, _ := args.Get(0).([]domain.Schedule)
	return list, args.Error(1)
}

type BookingRepository struct {
	mock.Mock
}

var _ repository.BookingRepository = (*BookingRepository)(nil)

func NewBookingRepository(t testingT) *BookingRepository {
	m := &BookingRepository{}
	register(&m.Mock, t)
	return m
}

func (m *BookingRepository) Create(ctx context.Context, b repository.NewBooking) (*domain.Booking, error) {
	args := m.Called(ctx, b)
	booking, _ := args.Get(0).(*domain.Booking)
	return booking, args.Error(1)
}

func (m *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	booking, _ := args.Get(0).(*domain.Booking)
	return booking, args.Error(1)
}

func (m *BookingRepository) GetByConfirmationNumber(ctx context.Context, number string) (*domain.Booking, error) {
	args := m.Called(ctx, number)
	booking, _ := args.Get(0).(*domain.Booking)
	return booking, args.Error(1)
}

func (m *BookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]domain.Booking)
	return list, args.Int(1), args.Error(2)
}

func (m *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *BookingRepository) UpdateNotification(ctx context.Context, id int64, meetingURL string, status domain.NotificationStatus) error {
	return m.Called(ctx, id, meetingURL, status).Error(0)
}

func (m *BookingRepository) MarkNotified(ctx context.Context, id int64, recipient domain.Recipient) error {
	return m.Called(ctx, id, recipient).Error(0)
}

func (m *BookingRepository) BookedTimes(ctx context.Context, counsellorID string, from, to time.Time) (map[string][]string, error) {
	args := m.Called(ctx, counsellorID, from, to)
	booked, _ := args.Get(0).(map[string][]string)
	return booked, args.Error(1)
}

type IdempotencyRepository struct {
	mock.Mock
}

var _ repository.IdempotencyRepository = (*IdempotencyRepository)(nil)

func NewIdempotencyRepository(t testingT) *IdempotencyRepository {
	m := &IdempotencyRepository{}
	register(&m.Mock, t)
	return m
}

func (m *IdempotencyRepository) Lookup(ctx context.Context, key string) (int64, bool, error) {
	args := m.Called(ctx, key)
	id, _ := args.Get(0).(int64)
	return id, args.Bool(1), args.Error(2)
}

func (m *IdempotencyRepository) CleanupExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

type AdminRepository struct {
	mock.Mock
}

var _ repository.AdminRepository = (*AdminRepository)(nil)

func NewAdminRepository(t testingT) *AdminRepository {
	m := &AdminRepository{}
	register(&m.Mock, t)
	return m
}

func (m *AdminRepository) Create(ctx context.Context, admin domain.Admin) (int64, error) {
	args := m.Called(ctx, admin)
	id, _ := args.Get(0).(int64)
	return id, args.Error(1)
}

func (m *AdminRepository) GetByID(ctx context.Context, id int64) (*domain.Admin, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*domain.Admin)
	return a, args.Error(1)
}

func (m *AdminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	args := m.Called(ctx, email)
	a, _ := args.Get(0).(*domain.Admin)
	return a, args.Error(1)
}

type SessionRepository struct {
	mock.Mock
}

var _ repository.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository(t testingT) *SessionRepository {
	m := &SessionRepository{}
	register(&m.Mock, t)
	return m
}

func (m *SessionRepository) Create(ctx context.Context, session domain.AdminSession) error {
	return m.Called(ctx, session).Error(0)
}

func (m *SessionRepository) GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.AdminSession, error) {
	args := m.Called(ctx, refreshToken)
	s, _ := args.Get(0).(*domain.AdminSession)
	return s, args.Error(1)
}

func (m *SessionRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

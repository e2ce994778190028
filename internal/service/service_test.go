package service

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"churchcms/internal/domain"
)

var testNow = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func strPtr(s string) *string { return &s }

type mockAvailability struct {
	mock.Mock
}

func (m *mockAvailability) Slots(ctx context.Context, counsellorID string, bookingType domain.BookingType) ([]domain.TimeSlot, error) {
	args := m.Called(ctx, counsellorID, bookingType)
	slots, _ := args.Get(0).([]domain.TimeSlot)
	return slots, args.Error(1)
}

func (m *mockAvailability) FindSlot(ctx context.Context, counsellorID string, bookingType domain.BookingType, date, clock string) (*domain.TimeSlot, error) {
	args := m.Called(ctx, counsellorID, bookingType, date, clock)
	slot, _ := args.Get(0).(*domain.TimeSlot)
	return slot, args.Error(1)
}

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Dispatch(ctx context.Context, bookingID int64) error {
	return m.Called(ctx, bookingID).Error(0)
}

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, b domain.Booking) (string, error) {
	args := m.Called(ctx, b)
	return args.String(0), args.Error(1)
}

type publishedEvent struct {
	subject string
	data    interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, subject string, data interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{subject: subject, data: data})
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) subjects() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.subject)
	}
	return out
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, bookingType string) ([]domain.Counsellor, bool) {
	args := m.Called(ctx, bookingType)
	list, _ := args.Get(0).([]domain.Counsellor)
	return list, args.Bool(1)
}

func (m *mockCache) Set(ctx context.Context, bookingType string, counsellors []domain.Counsellor) {
	m.Called(ctx, bookingType, counsellors)
}

func (m *mockCache) Invalidate(ctx context.Context) {
	m.Called(ctx)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) UploadFile(ctx context.Context, data []byte, filename string) (string, error) {
	args := m.Called(ctx, data, filename)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) DeleteFile(ctx context.Context, fileURL string) error {
	return m.Called(ctx, fileURL).Error(0)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"churchcms/internal/domain"
	"churchcms/internal/repository/mocks"
)

func day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func testSchedules() []domain.Schedule {
	return []domain.Schedule{
		{CounsellorID: "c1", Date: day("2025-03-10"), StartTime: "09:00", EndTime: "12:00", SlotMinutes: 60, BookingType: domain.BookingTypeOnline},
		{CounsellorID: "c1", Date: day("2025-03-11"), StartTime: "09:00", EndTime: "11:30", SlotMinutes: 60, BookingType: domain.BookingTypeBoth, ExcludeTimes: []string{"10:00"}},
		{CounsellorID: "c1", Date: day("2025-03-12"), StartTime: "09:00", EndTime: "10:00", SlotMinutes: 60, BookingType: domain.BookingTypeInPerson},
	}
}

func TestGenerateSlots(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC)
	booked := map[string][]string{"2025-03-10": {"11:00"}}

	slots := GenerateSlots("c1", domain.BookingTypeOnline, testSchedules(), booked, now)

	assert.Equal(t, []domain.TimeSlot{
		{ID: "c1-2025-03-10-0900", Date: "2025-03-10", StartTime: "09:00", EndTime: "10:00", IsAvailable: false},
		{ID: "c1-2025-03-10-1000", Date: "2025-03-10", StartTime: "10:00", EndTime: "11:00", IsAvailable: false},
		{ID: "c1-2025-03-10-1100", Date: "2025-03-10", StartTime: "11:00", EndTime: "12:00", IsAvailable: false},
		{ID: "c1-2025-03-11-0900", Date: "2025-03-11", StartTime: "09:00", EndTime: "10:00", IsAvailable: true},
	}, slots)
}

func TestGenerateSlots_InPersonAndOrdering(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	schedules := testSchedules()
	// Reverse input order; output must still be sorted.
	schedules[0], schedules[2] = schedules[2], schedules[0]

	slots := GenerateSlots("c1", domain.BookingTypeInPerson, schedules, nil, now)

	ids := make([]string, 0, len(slots))
	for _, s := range slots {
		ids = append(ids, s.ID)
		assert.True(t, s.IsAvailable)
	}
	assert.Equal(t, []string{"c1-2025-03-11-0900", "c1-2025-03-12-0900"}, ids)
}

func TestGenerateSlots_OverlappingSchedulesDoNotDuplicate(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	schedules := []domain.Schedule{
		{Date: day("2025-03-10"), StartTime: "09:00", EndTime: "10:00", SlotMinutes: 30, BookingType: domain.BookingTypeOnline},
		{Date: day("2025-03-10"), StartTime: "09:00", EndTime: "10:00", SlotMinutes: 30, BookingType: domain.BookingTypeBoth},
	}

	slots := GenerateSlots("c1", domain.BookingTypeOnline, schedules, nil, now)
	assert.Len(t, slots, 2)
}

func TestGenerateSlots_UsesScheduleTimeZone(t *testing.T) {
	eat := time.FixedZone("EAT", 3*60*60)
	// 06:30 UTC is 09:30 in the schedule's zone.
	now := time.Date(2025, 3, 10, 6, 30, 0, 0, time.UTC).In(eat)
	schedules := testSchedules()[:1]

	slots := GenerateSlots("c1", domain.BookingTypeOnline, schedules, nil, now)

	require.Len(t, slots, 3)
	assert.False(t, slots[0].IsAvailable)
	assert.True(t, slots[1].IsAvailable)
	assert.True(t, slots[2].IsAvailable)
}

func newAvailability(t *testing.T, now time.Time) (*AvailabilityServiceImpl, *mocks.CounsellorRepository, *mocks.ScheduleRepository, *mocks.BookingRepository) {
	counsellors := mocks.NewCounsellorRepository(t)
	schedules := mocks.NewScheduleRepository(t)
	bookings := mocks.NewBookingRepository(t)
	svc := NewAvailabilityService(counsellors, schedules, bookings, AvailabilityConfig{WindowDays: 28}, fixedClock(now), zap.NewNop())
	return svc, counsellors, schedules, bookings
}

func activeCounsellor() *domain.Counsellor {
	return &domain.Counsellor{ID: "c1", Name: "Pastor Ama", Email: "ama@church.org", IsOnline: true, IsInPerson: false, IsActive: true}
}

func TestAvailabilityService_Slots(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC)
	svc, counsellors, schedules, bookings := newAvailability(t, now)

	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 28)

	counsellors.On("GetByID", mock.Anything, "c1").Return(activeCounsellor(), nil)
	schedules.On("ListForRange", mock.Anything, "c1", from, to).Return(testSchedules(), nil)
	bookings.On("BookedTimes", mock.Anything, "c1", from, to).Return(map[string][]string{"2025-03-10": {"11:00"}}, nil)

	slots, err := svc.Slots(context.Background(), "c1", domain.BookingTypeOnline)

	require.NoError(t, err)
	assert.Len(t, slots, 4)
}

func TestAvailabilityService_Slots_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid booking type", func(t *testing.T) {
		svc, _, _, _ := newAvailability(t, testNow)
		_, err := svc.Slots(ctx, "c1", "phone")
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("unknown counsellor", func(t *testing.T) {
		svc, counsellors, _, _ := newAvailability(t, testNow)
		counsellors.On("GetByID", mock.Anything, "zz").Return(nil, domain.ErrCounsellorNotFound)
		_, err := svc.Slots(ctx, "zz", domain.BookingTypeOnline)
		assert.ErrorIs(t, err, domain.ErrCounsellorNotFound)
	})

	t.Run("inactive counsellor", func(t *testing.T) {
		svc, counsellors, _, _ := newAvailability(t, testNow)
		c := activeCounsellor()
		c.IsActive = false
		counsellors.On("GetByID", mock.Anything, "c1").Return(c, nil)
		_, err := svc.Slots(ctx, "c1", domain.BookingTypeOnline)
		assert.ErrorIs(t, err, domain.ErrCounsellorNotFound)
	})

	t.Run("unsupported modality yields no slots", func(t *testing.T) {
		svc, counsellors, _, _ := newAvailability(t, testNow)
		counsellors.On("GetByID", mock.Anything, "c1").Return(activeCounsellor(), nil)
		slots, err := svc.Slots(ctx, "c1", domain.BookingTypeInPerson)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})
}

func TestAvailabilityService_FindSlot(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC)
	ctx := context.Background()

	setup := func(t *testing.T) *AvailabilityServiceImpl {
		svc, counsellors, schedules, bookings := newAvailability(t, now)
		counsellors.On("GetByID", mock.Anything, "c1").Return(activeCounsellor(), nil)
		schedules.On("ListForRange", mock.Anything, "c1", mock.Anything, mock.Anything).Return(testSchedules(), nil)
		bookings.On("BookedTimes", mock.Anything, "c1", mock.Anything, mock.Anything).Return(map[string][]string{"2025-03-10": {"11:00"}}, nil)
		return svc
	}

	slot, err := setup(t).FindSlot(ctx, "c1", domain.BookingTypeOnline, "2025-03-11", "09:00")
	require.NoError(t, err)
	assert.Equal(t, "10:00", slot.EndTime)

	_, err = setup(t).FindSlot(ctx, "c1", domain.BookingTypeOnline, "2025-03-10", "11:00")
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable, "booked")

	_, err = setup(t).FindSlot(ctx, "c1", domain.BookingTypeOnline, "2025-03-10", "09:00")
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable, "past")

	_, err = setup(t).FindSlot(ctx, "c1", domain.BookingTypeOnline, "2025-03-11", "10:00")
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable, "excluded")
}

func TestSlotID(t *testing.T) {
	assert.Equal(t, "grace-1a2b3c-2025-03-10-0930", SlotID("grace-1a2b3c", "2025-03-10", "09:30"))
}

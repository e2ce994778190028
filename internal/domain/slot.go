package domain

import (
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// TimeSlot is one bookable unit for one counsellor and modality.
type TimeSlot struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
}

// Schedule describes one working day of a counsellor; slots are cut from it.
type Schedule struct {
	ID           int64       `json:"id"`
	CounsellorID string      `json:"counsellorId"`
	Date         time.Time   `json:"date"`
	StartTime    string      `json:"startTime"`
	EndTime      string      `json:"endTime"`
	SlotMinutes  int         `json:"slotMinutes"`
	BookingType  BookingType `json:"bookingType"`
	ExcludeTimes []string    `json:"excludeTimes"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Serves reports whether the schedule offers sessions of the given modality.
// A schedule stored with BookingTypeBoth serves both.
func (s Schedule) Serves(t BookingType) bool {
	return s.BookingType == BookingTypeBoth || s.BookingType == t
}

type CreateScheduleDTO struct {
	CounsellorID string      `json:"counsellorId" binding:"required"`
	Date         string      `json:"date" binding:"required"`
	StartTime    string      `json:"startTime" binding:"required"`
	EndTime      string      `json:"endTime" binding:"required"`
	SlotMinutes  int         `json:"slotMinutes" binding:"required"`
	BookingType  BookingType `json:"bookingType" binding:"required,oneof=online in-person both"`
	ExcludeTimes []string    `json:"excludeTimes,omitempty"`
}

type ScheduleFilter struct {
	CounsellorID *string    `json:"counsellorId"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Limit        int        `json:"limit"`
	Offset       int        `json:"offset"`
}

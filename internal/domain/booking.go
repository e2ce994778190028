package domain

import (
	"time"
)

// BookingType is the session modality.
type BookingType string

const (
	BookingTypeOnline   BookingType = "online"
	BookingTypeInPerson BookingType = "in-person"
	// BookingTypeBoth is only valid on schedules.
	BookingTypeBoth BookingType = "both"
)

func (t BookingType) IsValid() bool {
	return t == BookingTypeOnline || t == BookingTypeInPerson
}

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
)

// Recipient names one side of the booking notification.
type Recipient string

const (
	RecipientClient     Recipient = "client"
	RecipientCounsellor Recipient = "counsellor"
)

const DefaultSessionDuration = 60

// BookingFormData is the aggregate the booking wizard builds step by step and
// submits as one unit.
type BookingFormData struct {
	FirstName       string      `json:"firstName"`
	LastName        string      `json:"lastName"`
	Email           string      `json:"email"`
	Phone           string      `json:"phone"`
	Country         string      `json:"country"`
	City            string      `json:"city"`
	CounsellorID    string      `json:"counsellorId"`
	BookingType     BookingType `json:"bookingType"`
	PreferredDate   string      `json:"preferredDate"`
	PreferredTime   string      `json:"preferredTime"`
	SessionDuration int         `json:"sessionDuration"`
	Topic           string      `json:"topic"`
	Notes           string      `json:"notes"`
}

// CreateBookingRequest is the POST /counselling body. The idempotency key may
// also arrive as a header.
type CreateBookingRequest struct {
	BookingFormData
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}

type Booking struct {
	ID                 int64              `json:"id"`
	ConfirmationNumber string             `json:"confirmationNumber"`
	Status             BookingStatus      `json:"status"`
	MeetingURL         string             `json:"meetingUrl,omitempty"`
	NotificationStatus NotificationStatus `json:"notificationStatus"`
	ClientNotified     bool               `json:"clientNotified"`
	CounsellorNotified bool               `json:"counsellorNotified"`
	CounsellorName     string             `json:"counsellorName,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
	BookingFormData
}

func (b Booking) ClientName() string {
	return b.FirstName + " " + b.LastName
}

// BookingResult is returned once per successful submission.
type BookingResult struct {
	ConfirmationNumber string  `json:"confirmationNumber"`
	Booking            Booking `json:"booking"`
	MeetingURL         string  `json:"meetingUrl,omitempty"`
}

type UpdateBookingStatusDTO struct {
	Status BookingStatus `json:"status" binding:"required,oneof=pending confirmed cancelled completed"`
}

type BookingFilter struct {
	CounsellorID *string        `json:"counsellorId"`
	Status       *BookingStatus `json:"status"`
	StartDate    *string        `json:"startDate"`
	EndDate      *string        `json:"endDate"`
	Limit        int            `json:"limit"`
	Offset       int            `json:"offset"`
}

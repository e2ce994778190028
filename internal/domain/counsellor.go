package domain

import (
	"time"
)

type Counsellor struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Title             string    `json:"title"`
	IsOnline          bool      `json:"isOnline"`
	IsInPerson        bool      `json:"isInPerson"`
	Specializations   []string  `json:"specializations"`
	YearsOfExperience int       `json:"yearsOfExperience"`
	Rating            float64   `json:"rating"`
	ReviewCount       int       `json:"reviewCount"`
	Bio               string    `json:"bio"`
	Email             string    `json:"email"`
	PhotoURL          string    `json:"photoUrl,omitempty"`
	IsActive          bool      `json:"isActive"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Supports reports whether the counsellor takes sessions of the given modality.
func (c Counsellor) Supports(t BookingType) bool {
	switch t {
	case BookingTypeOnline:
		return c.IsOnline
	case BookingTypeInPerson:
		return c.IsInPerson
	default:
		return false
	}
}

type CreateCounsellorDTO struct {
	Name              string   `json:"name" binding:"required"`
	Title             string   `json:"title"`
	IsOnline          bool     `json:"isOnline"`
	IsInPerson        bool     `json:"isInPerson"`
	Specializations   []string `json:"specializations"`
	YearsOfExperience int      `json:"yearsOfExperience" binding:"min=0"`
	Rating            float64  `json:"rating" binding:"min=0,max=5"`
	ReviewCount       int      `json:"reviewCount" binding:"min=0"`
	Bio               string   `json:"bio"`
	Email             string   `json:"email" binding:"required,email"`
}

type UpdateCounsellorDTO struct {
	Name              *string   `json:"name"`
	Title             *string   `json:"title"`
	IsOnline          *bool     `json:"isOnline"`
	IsInPerson        *bool     `json:"isInPerson"`
	Specializations   *[]string `json:"specializations"`
	YearsOfExperience *int      `json:"yearsOfExperience" binding:"omitempty,min=0"`
	Rating            *float64  `json:"rating" binding:"omitempty,min=0,max=5"`
	ReviewCount       *int      `json:"reviewCount" binding:"omitempty,min=0"`
	Bio               *string   `json:"bio"`
	Email             *string   `json:"email" binding:"omitempty,email"`
	IsActive          *bool     `json:"isActive"`
}

type CounsellorFilter struct {
	BookingType *BookingType
	ActiveOnly  bool
}

// Package bookingflow drives a counselling booking from counsellor choice to
// confirmation: the slot index, the week navigator, the counsellor directory,
// the step-gated form wizard, and the HTTP client the wizard submits through.
package bookingflow

import (
	"churchcms/internal/domain"
	"churchcms/pkg/validator"
)

// Step is one state of the booking wizard.
type Step string

const (
	StepCounsellor Step = "counsellor"
	StepDateTime   Step = "datetime"
	StepDetails    Step = "details"
	StepConfirm    Step = "confirm"
	StepSuccess    Step = "success"
)

var stepOrder = []Step{StepCounsellor, StepDateTime, StepDetails, StepConfirm, StepSuccess}

func (s Step) index() int {
	for i, st := range stepOrder {
		if st == s {
			return i
		}
	}
	return -1
}

func (s Step) next() Step {
	i := s.index()
	if i < 0 || i+1 >= len(stepOrder) {
		return s
	}
	return stepOrder[i+1]
}

func (s Step) prev() Step {
	i := s.index()
	if i <= 0 {
		return s
	}
	return stepOrder[i-1]
}

// Before reports whether s comes earlier in the wizard than other.
func (s Step) Before(other Step) bool {
	return s.index() < other.index()
}

// Field names match the JSON keys of domain.BookingFormData.
type Field string

const (
	FieldFirstName       Field = "firstName"
	FieldLastName        Field = "lastName"
	FieldEmail           Field = "email"
	FieldPhone           Field = "phone"
	FieldCountry         Field = "country"
	FieldCity            Field = "city"
	FieldCounsellorID    Field = "counsellorId"
	FieldBookingType     Field = "bookingType"
	FieldPreferredDate   Field = "preferredDate"
	FieldPreferredTime   Field = "preferredTime"
	FieldSessionDuration Field = "sessionDuration"
	FieldTopic           Field = "topic"
	FieldNotes           Field = "notes"
)

// FieldOrder lists fields in the order the form presents them.
var FieldOrder = []Field{
	FieldCounsellorID, FieldBookingType, FieldPreferredDate, FieldPreferredTime,
	FieldFirstName, FieldLastName, FieldEmail, FieldPhone, FieldCountry, FieldCity,
	FieldTopic, FieldSessionDuration, FieldNotes,
}

// Validate returns the messages for every field the given step requires that
// is missing or malformed. Steps without required fields return nil.
func Validate(step Step, form domain.BookingFormData) map[Field]string {
	errs := make(map[Field]string)

	switch step {
	case StepCounsellor:
		if validator.IsBlank(form.CounsellorID) {
			errs[FieldCounsellorID] = "Please select a counsellor"
		}
	case StepDateTime:
		if validator.IsBlank(form.PreferredDate) {
			errs[FieldPreferredDate] = "Please select a date"
		}
		if validator.IsBlank(form.PreferredTime) {
			errs[FieldPreferredTime] = "Please select a time"
		}
	case StepDetails:
		if validator.IsBlank(form.FirstName) {
			errs[FieldFirstName] = "First name is required"
		}
		if validator.IsBlank(form.LastName) {
			errs[FieldLastName] = "Last name is required"
		}
		if validator.IsBlank(form.Email) {
			errs[FieldEmail] = "Email is required"
		} else if !validator.ValidateEmail(form.Email) {
			errs[FieldEmail] = "Please enter a valid email address"
		}
		if validator.IsBlank(form.Phone) {
			errs[FieldPhone] = "Phone number is required"
		}
		if validator.IsBlank(form.Country) {
			errs[FieldCountry] = "Country is required"
		}
		if validator.IsBlank(form.Topic) {
			errs[FieldTopic] = "Please select a topic"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// CanAdvance reports whether the "continue" affordance of step is available
// for the given form. The terminal step never advances.
func CanAdvance(step Step, form domain.BookingFormData) bool {
	if step == StepSuccess || step.index() < 0 {
		return false
	}
	return len(Validate(step, form)) == 0
}

// validateThrough collects the errors of every step up to and including last.
func validateThrough(last Step, form domain.BookingFormData) map[Field]string {
	var all map[Field]string
	for _, st := range stepOrder {
		for f, msg := range Validate(st, form) {
			if all == nil {
				all = make(map[Field]string)
			}
			all[f] = msg
		}
		if st == last {
			break
		}
	}
	return all
}

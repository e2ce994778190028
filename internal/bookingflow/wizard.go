package bookingflow

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"churchcms/internal/domain"
)

const DefaultAdvanceDelay = 300 * time.Millisecond

var (
	ErrStepIncomplete   = errors.New("required fields of the current step are missing or invalid")
	ErrFinished         = errors.New("booking already submitted; reset to start a new one")
	ErrNotConfirming    = errors.New("booking can only be submitted from the confirm step")
	ErrSubmitInProgress = errors.New("booking submission already in progress")
	ErrTermsNotAccepted = errors.New("terms must be accepted before submitting")
	ErrNoEarlierStep    = errors.New("target step is not before the current step")
	ErrUnknownField     = errors.New("unknown form field")
	ErrRunDiscarded     = errors.New("wizard was reset while the booking was being submitted")
)

type BookingSubmitter interface {
	CreateBooking(ctx context.Context, form domain.BookingFormData, idempotencyKey string) (*domain.BookingResult, error)
}

type Option func(*Wizard)

// WithAdvanceDelay sets how long SelectCounsellor waits before moving on.
// Zero advances immediately.
func WithAdvanceDelay(d time.Duration) Option {
	return func(w *Wizard) {
		w.advanceDelay = d
	}
}

// WithTermsRequired makes Submit refuse until AcceptTerms(true) was called.
func WithTermsRequired() Option {
	return func(w *Wizard) {
		w.termsRequired = true
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(w *Wizard) {
		w.logger = logger
	}
}

func WithKeyGenerator(gen func() string) Option {
	return func(w *Wizard) {
		w.newKey = gen
	}
}

// Wizard is the booking form state machine. It is safe for concurrent use;
// the delayed advance after a counsellor pick runs on its own goroutine.
type Wizard struct {
	mu sync.Mutex

	submitter     BookingSubmitter
	logger        *zap.Logger
	advanceDelay  time.Duration
	termsRequired bool
	newKey        func() string

	// run increases on every reset; a submission that finishes in a later
	// run is discarded.
	run            uint64
	step           Step
	form           domain.BookingFormData
	counsellor     *domain.Counsellor
	errors         map[Field]string
	termsAccepted  bool
	submitting     bool
	submitErr      error
	result         *domain.BookingResult
	idempotencyKey string
	advanceTimer   *time.Timer
}

func NewWizard(submitter BookingSubmitter, opts ...Option) *Wizard {
	w := &Wizard{
		submitter:    submitter,
		logger:       zap.NewNop(),
		advanceDelay: DefaultAdvanceDelay,
		newKey:       func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(w)
	}
	w.reset()
	return w
}

// NewFormData returns the blank aggregate every wizard run starts from.
// Modality and duration carry defaults so the first step can filter counsellors.
func NewFormData() domain.BookingFormData {
	return domain.BookingFormData{
		BookingType:     domain.BookingTypeOnline,
		SessionDuration: domain.DefaultSessionDuration,
	}
}

func (w *Wizard) reset() {
	if w.advanceTimer != nil {
		w.advanceTimer.Stop()
		w.advanceTimer = nil
	}
	w.run++
	w.step = StepCounsellor
	w.form = NewFormData()
	w.counsellor = nil
	w.errors = make(map[Field]string)
	w.termsAccepted = false
	w.submitting = false
	w.submitErr = nil
	w.result = nil
	w.idempotencyKey = w.newKey()
}

// Reset discards everything and starts a fresh run with a new idempotency key.
// A submission still in flight is abandoned; its response is ignored.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reset()
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) Form() domain.BookingFormData {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form
}

func (w *Wizard) Errors() map[Field]string {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make(map[Field]string, len(w.errors))
	for f, msg := range w.errors {
		out[f] = msg
	}
	return out
}

func (w *Wizard) IdempotencyKey() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.idempotencyKey
}

func (w *Wizard) Result() *domain.BookingResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.result
}

// SubmitError is the message of the last failed submission, or "".
func (w *Wizard) SubmitError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.submitErr == nil {
		return ""
	}
	return ErrorMessage(w.submitErr)
}

// editable reports why the form cannot change right now, if it cannot.
func (w *Wizard) editable() error {
	if w.step == StepSuccess {
		return ErrFinished
	}
	if w.submitting {
		return ErrSubmitInProgress
	}
	return nil
}

func (w *Wizard) Submitting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitting
}

// CanAdvance reports whether the current step's continue control is shown.
func (w *Wizard) CanAdvance() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return CanAdvance(w.step, w.form)
}

// SetField writes one text field and clears its error without re-validating.
func (w *Wizard) SetField(field Field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.editable(); err != nil {
		return err
	}

	f := &w.form
	switch field {
	case FieldFirstName:
		f.FirstName = value
	case FieldLastName:
		f.LastName = value
	case FieldEmail:
		f.Email = value
	case FieldPhone:
		f.Phone = value
	case FieldCountry:
		f.Country = value
	case FieldCity:
		f.City = value
	case FieldCounsellorID:
		if w.counsellor != nil && w.counsellor.ID != value {
			w.counsellor = nil
		}
		f.CounsellorID = value
	case FieldBookingType:
		w.setBookingType(domain.BookingType(value))
	case FieldPreferredDate:
		f.PreferredDate = value
	case FieldPreferredTime:
		f.PreferredTime = value
	case FieldTopic:
		f.Topic = value
	case FieldNotes:
		f.Notes = value
	case FieldSessionDuration:
		minutes, err := strconv.Atoi(value)
		if err != nil || minutes <= 0 {
			w.errors[field] = "Please choose a session length"
			return nil
		}
		f.SessionDuration = minutes
	default:
		return ErrUnknownField
	}

	delete(w.errors, field)
	return nil
}

// SetBookingType switches the modality. The chosen date and time are dropped,
// and so is the counsellor when they do not offer the new modality; the wizard
// steps back to the first step left incomplete. Callers re-fetch slots
// afterwards since online and in-person availability differ.
func (w *Wizard) SetBookingType(t domain.BookingType) error {
	return w.SetField(FieldBookingType, string(t))
}

func (w *Wizard) setBookingType(t domain.BookingType) {
	if w.form.BookingType == t {
		return
	}
	w.form.BookingType = t
	w.form.PreferredDate = ""
	w.form.PreferredTime = ""

	back := StepDateTime
	if w.counsellor != nil && !w.counsellor.Supports(t) {
		w.counsellor = nil
		w.form.CounsellorID = ""
		back = StepCounsellor
	}
	if back.Before(w.step) {
		if w.advanceTimer != nil {
			w.advanceTimer.Stop()
			w.advanceTimer = nil
		}
		w.step = back
	}
}

// SelectCounsellor records the choice and moves to the date step after the
// configured delay, unless the user has moved on or picked someone else.
func (w *Wizard) SelectCounsellor(c domain.Counsellor) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.editable(); err != nil {
		return err
	}

	selected := c
	w.counsellor = &selected
	w.form.CounsellorID = c.ID
	delete(w.errors, FieldCounsellorID)

	if w.step != StepCounsellor {
		return nil
	}

	if w.advanceTimer != nil {
		w.advanceTimer.Stop()
	}

	if w.advanceDelay <= 0 {
		w.step = StepDateTime
		return nil
	}

	id := c.ID
	w.advanceTimer = time.AfterFunc(w.advanceDelay, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.step == StepCounsellor && w.form.CounsellorID == id {
			w.step = StepDateTime
		}
	})
	return nil
}

// SelectSlot writes both the date and the start time of the chosen slot.
func (w *Wizard) SelectSlot(slot domain.TimeSlot) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.editable(); err != nil {
		return err
	}

	w.form.PreferredDate = slot.Date
	w.form.PreferredTime = slot.StartTime
	delete(w.errors, FieldPreferredDate)
	delete(w.errors, FieldPreferredTime)
	return nil
}

// AcceptTerms records the confirm-step checkbox. It is ignored while a
// submission is in flight.
func (w *Wizard) AcceptTerms(accepted bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.submitting {
		return
	}
	w.termsAccepted = accepted
}

func (w *Wizard) TermsAccepted() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.termsAccepted
}

// Next moves forward one step if the current step's fields are complete.
// Otherwise the missing fields get error messages and ErrStepIncomplete is
// returned. The confirm step only leaves through Submit.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.editable(); err != nil {
		return err
	}
	if w.step == StepConfirm {
		return ErrNotConfirming
	}

	if errs := Validate(w.step, w.form); len(errs) > 0 {
		for f, msg := range errs {
			w.errors[f] = msg
		}
		return ErrStepIncomplete
	}

	if w.advanceTimer != nil {
		w.advanceTimer.Stop()
		w.advanceTimer = nil
	}
	w.step = w.step.next()
	return nil
}

// Back returns to the previous step; entered data is kept.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.editable(); err != nil {
		return err
	}
	if w.step == StepCounsellor {
		return ErrNoEarlierStep
	}
	w.step = w.step.prev()
	return nil
}

// GoTo jumps back to any earlier step.
func (w *Wizard) GoTo(target Step) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.editable(); err != nil {
		return err
	}
	if target.index() < 0 || !target.Before(w.step) {
		return ErrNoEarlierStep
	}
	w.step = target
	return nil
}

// Submit sends the frozen form. On success the wizard moves to StepSuccess and
// keeps the result; on failure it stays on StepConfirm with the form intact
// and the error available through SubmitError.
func (w *Wizard) Submit(ctx context.Context) (*domain.BookingResult, error) {
	w.mu.Lock()
	if w.step == StepSuccess {
		w.mu.Unlock()
		return nil, ErrFinished
	}
	if w.step != StepConfirm {
		w.mu.Unlock()
		return nil, ErrNotConfirming
	}
	if w.submitting {
		w.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	if w.termsRequired && !w.termsAccepted {
		w.mu.Unlock()
		return nil, ErrTermsNotAccepted
	}
	if errs := validateThrough(StepConfirm, w.form); len(errs) > 0 {
		for f, msg := range errs {
			w.errors[f] = msg
		}
		w.mu.Unlock()
		return nil, ErrStepIncomplete
	}

	w.submitting = true
	w.submitErr = nil
	run := w.run
	form := w.form
	key := w.idempotencyKey
	w.mu.Unlock()

	result, err := w.submitter.CreateBooking(ctx, form, key)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.run != run {
		fields := []zap.Field{zap.String("counsellor_id", form.CounsellorID), zap.Error(err)}
		if result != nil {
			fields = append(fields, zap.String("confirmation_number", result.ConfirmationNumber))
		}
		w.logger.Warn("discarding submission response from an abandoned run", fields...)
		return nil, ErrRunDiscarded
	}
	w.submitting = false

	if err != nil {
		w.submitErr = err
		w.logger.Warn("booking submission failed",
			zap.String("counsellor_id", form.CounsellorID),
			zap.Error(err))
		return nil, err
	}

	w.result = result
	w.step = StepSuccess
	return result, nil
}

// ErrorMessage returns the text a form-level banner should show for err.
func ErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	if errors.Is(err, ErrUnavailable) {
		return ErrUnavailable.Error()
	}
	return err.Error()
}

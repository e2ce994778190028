package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrCounsellorNotFound  = errors.New("counsellor not found")
	ErrModalityUnsupported = errors.New("counsellor does not offer this session type")
	ErrSlotUnavailable     = errors.New("slot no longer available")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInactiveAccount     = errors.New("account is deactivated")
	ErrInvalidToken        = errors.New("invalid or expired token")

	// ErrDuplicateRequest means another request with the same idempotency
	// key committed first.
	ErrDuplicateRequest = errors.New("duplicate idempotency key")
)

// ValidationError carries field-level messages for a rejected request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// Messages returns the field messages in a stable order.
func (e *ValidationError) Messages(order []string) []string {
	out := make([]string, 0, len(e.Fields))
	seen := make(map[string]bool, len(e.Fields))
	for _, f := range order {
		if msg, ok := e.Fields[f]; ok {
			out = append(out, msg)
			seen[f] = true
		}
	}
	for f, msg := range e.Fields {
		if !seen[f] {
			out = append(out, msg)
		}
	}
	return out
}

package bookingflow

import (
	"context"
	"sync"

	"churchcms/internal/domain"
)

type CounsellorSource interface {
	ListCounsellors(ctx context.Context) ([]domain.Counsellor, error)
}

// Directory is the client's read-only copy of the counsellor list. It is
// fetched once; a failed fetch is kept in Err until Reload succeeds.
type Directory struct {
	mu          sync.RWMutex
	source      CounsellorSource
	counsellors []domain.Counsellor
	loaded      bool
	err         error
}

func NewDirectory(source CounsellorSource) *Directory {
	return &Directory{source: source}
}

// Load fetches the list unless a previous load succeeded.
func (d *Directory) Load(ctx context.Context) error {
	d.mu.RLock()
	done := d.loaded
	d.mu.RUnlock()
	if done {
		return nil
	}
	return d.Reload(ctx)
}

func (d *Directory) Reload(ctx context.Context) error {
	counsellors, err := d.source.ListCounsellors(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()

	if err != nil {
		d.err = err
		return err
	}
	d.counsellors = counsellors
	d.loaded = true
	d.err = nil
	return nil
}

func (d *Directory) Err() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.err
}

func (d *Directory) Loaded() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loaded
}

// ForModality returns the counsellors offering sessions of the given type.
func (d *Directory) ForModality(t domain.BookingType) []domain.Counsellor {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]domain.Counsellor, 0, len(d.counsellors))
	for _, c := range d.counsellors {
		if c.Supports(t) {
			out = append(out, c)
		}
	}
	return out
}

func (d *Directory) Find(id string) (domain.Counsellor, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, c := range d.counsellors {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Counsellor{}, false
}

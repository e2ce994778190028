package bookingflow

import (
	"context"
	"errors"
	"sort"
	"sync"

	"churchcms/internal/domain"
)

// ErrStaleResponse is returned by SlotLoader.Load when a newer load started
// before this one finished; its result has been discarded.
var ErrStaleResponse = errors.New("slot response superseded by a newer request")

// SlotIndex holds available slots keyed by ISO date, each day sorted by start time.
type SlotIndex map[string][]domain.TimeSlot

// GroupByDate drops unavailable slots and groups the rest under their own date.
func GroupByDate(slots []domain.TimeSlot) SlotIndex {
	index := make(SlotIndex)
	for _, slot := range slots {
		if !slot.IsAvailable {
			continue
		}
		index[slot.Date] = append(index[slot.Date], slot)
	}

	for date := range index {
		day := index[date]
		sort.SliceStable(day, func(i, j int) bool {
			return day[i].StartTime < day[j].StartTime
		})
	}

	return index
}

func (ix SlotIndex) HasAvailable(date string) bool {
	return len(ix[date]) > 0
}

// Times returns the slots of one date in start-time order.
func (ix SlotIndex) Times(date string) []domain.TimeSlot {
	return ix[date]
}

func (ix SlotIndex) Dates() []string {
	dates := make([]string, 0, len(ix))
	for d := range ix {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Find looks up the slot starting at clock on date.
func (ix SlotIndex) Find(date, clock string) (domain.TimeSlot, bool) {
	for _, s := range ix[date] {
		if s.StartTime == clock {
			return s, true
		}
	}
	return domain.TimeSlot{}, false
}

type SlotSource interface {
	ListSlots(ctx context.Context, counsellorID string, bookingType domain.BookingType) ([]domain.TimeSlot, error)
}

// SlotLoader fetches slots for a counsellor/modality pair. Every Load cancels
// the one before it, and a response that arrives after a newer Load started
// is discarded, so toggling the modality quickly never leaves stale slots.
type SlotLoader struct {
	mu     sync.Mutex
	source SlotSource
	seq    uint64
	cancel context.CancelFunc
	index  SlotIndex
	err    error
}

func NewSlotLoader(source SlotSource) *SlotLoader {
	return &SlotLoader{source: source}
}

func (l *SlotLoader) Load(ctx context.Context, counsellorID string, bookingType domain.BookingType) (SlotIndex, error) {
	l.mu.Lock()
	l.seq++
	id := l.seq
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()
	defer cancel()

	slots, err := l.source.ListSlots(ctx, counsellorID, bookingType)

	l.mu.Lock()
	defer l.mu.Unlock()

	if id != l.seq {
		return nil, ErrStaleResponse
	}
	l.cancel = nil

	if err != nil {
		l.index = nil
		l.err = err
		return nil, err
	}

	l.index = GroupByDate(slots)
	l.err = nil
	return l.index, nil
}

// Index returns the result of the latest completed load.
func (l *SlotLoader) Index() SlotIndex {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.index
}

func (l *SlotLoader) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

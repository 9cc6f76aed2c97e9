package datastore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"evplan/internal/domain"
	"evplan/internal/stats"
)

var (
	// ErrUnknownItem is returned when an allocation references an item the store does not hold.
	ErrUnknownItem = errors.New("unknown inventory item")
	// ErrUnknownEvent is returned when an allocation references an event the store does not hold.
	ErrUnknownEvent = errors.New("unknown event")
	// ErrUnknownPayment is returned when a status update references a milestone the store does not hold.
	ErrUnknownPayment = errors.New("unknown payment milestone")
)

// Source supplies immutable snapshots of the marketplace records.
// Returned slices are copies; callers may keep or modify them freely.
type Source interface {
	Items() []domain.InventoryItem
	Events() []domain.Event
	ActiveEvents() []domain.ActiveEvent
	ArchivedEvents() []domain.ArchivedEvent
	Payments() []domain.PaymentMilestone
}

// Store provides thread-safe, in-memory storage for one marketplace dataset.
//
// Reads take the shared lock and copy. Allocate serializes per item so two concurrent requests
// against the same item can never both pass the capacity check. Replace bumps the dataset
// generation; an allocation computed against an older generation is recomputed.
type Store struct {
	mu       sync.RWMutex
	gen      uint64
	items    []domain.InventoryItem
	itemIdx  map[string]int
	events   []domain.Event
	active   []domain.ActiveEvent
	archive  []domain.ArchivedEvent
	payments []domain.PaymentMilestone

	lockMu    sync.Mutex
	itemLocks map[string]*sync.Mutex

	saveMu sync.Mutex

	// beforeCommit runs between the capacity check and the write. Tests use it to interleave.
	beforeCommit func()
}

var _ Source = (*Store)(nil)

// NewStore creates a new empty Store.
func NewStore() *Store {
	return &Store{
		itemIdx:   make(map[string]int),
		itemLocks: make(map[string]*sync.Mutex),
	}
}

// Snapshot is the full dataset held by a Store.
type Snapshot struct {
	Items          []domain.InventoryItem
	Events         []domain.Event
	ActiveEvents   []domain.ActiveEvent
	ArchivedEvents []domain.ArchivedEvent
	Payments       []domain.PaymentMilestone
}

// Replace swaps the whole dataset. Items with a duplicate ID are dropped after the first.
func (s *Store) Replace(snap Snapshot) {
	items := make([]domain.InventoryItem, 0, len(snap.Items))
	idx := make(map[string]int, len(snap.Items))
	for _, item := range snap.Items {
		if _, dup := idx[item.ID]; dup {
			log.Warn().Str("item", item.ID).Msg("Skipping duplicate inventory item")
			continue
		}
		idx[item.ID] = len(items)
		items = append(items, item.Clone())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.items = items
	s.itemIdx = idx
	s.events = append([]domain.Event(nil), snap.Events...)
	s.active = append([]domain.ActiveEvent(nil), snap.ActiveEvents...)
	s.archive = append([]domain.ArchivedEvent(nil), snap.ArchivedEvents...)
	s.payments = append([]domain.PaymentMilestone(nil), snap.Payments...)
}

// Snapshot returns a copy of the whole dataset as it was loaded, without merging active events
// into the event list.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.InventoryItem, len(s.items))
	for i, item := range s.items {
		items[i] = item.Clone()
	}
	return Snapshot{
		Items:          items,
		Events:         append([]domain.Event(nil), s.events...),
		ActiveEvents:   append([]domain.ActiveEvent(nil), s.active...),
		ArchivedEvents: append([]domain.ArchivedEvent(nil), s.archive...),
		Payments:       append([]domain.PaymentMilestone(nil), s.payments...),
	}
}

func (s *Store) Items() []domain.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.InventoryItem, len(s.items))
	for i, item := range s.items {
		out[i] = item.Clone()
	}
	return out
}

// Item returns a copy of a single item.
func (s *Store) Item(id string) (domain.InventoryItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.itemIdx[id]
	if !ok {
		return domain.InventoryItem{}, false
	}
	return s.items[i].Clone(), true
}

// Events returns the allocatable events: the plain event list plus the events embedded in
// active records that are not already listed.
func (s *Store) Events() []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Event, 0, len(s.events)+len(s.active))
	seen := make(map[string]bool, len(s.events))
	for _, e := range s.events {
		seen[e.ID] = true
		out = append(out, e)
	}
	for _, a := range s.active {
		if !seen[a.ID] {
			seen[a.ID] = true
			out = append(out, a.Event)
		}
	}
	return out
}

func (s *Store) ActiveEvents() []domain.ActiveEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ActiveEvent(nil), s.active...)
}

func (s *Store) ArchivedEvents() []domain.ArchivedEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ArchivedEvent(nil), s.archive...)
}

func (s *Store) Payments() []domain.PaymentMilestone {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.PaymentMilestone(nil), s.payments...)
}

// Count returns the number of records per collection.
func (s *Store) Count() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]int{
		"items":    len(s.items),
		"events":   len(s.events),
		"active":   len(s.active),
		"archive":  len(s.archive),
		"payments": len(s.payments),
	}
}

// hasEventLocked reports whether id is a plain or active event. Callers hold s.mu.
func (s *Store) hasEventLocked(id string) bool {
	for _, e := range s.events {
		if e.ID == id {
			return true
		}
	}
	for _, a := range s.active {
		if a.ID == id {
			return true
		}
	}
	return false
}

// lookup returns a copy of the item and the dataset generation it was read from.
func (s *Store) lookup(itemID, eventID string) (domain.InventoryItem, uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasEventLocked(eventID) {
		return domain.InventoryItem{}, s.gen, fmt.Errorf("%w: %s", ErrUnknownEvent, eventID)
	}
	i, ok := s.itemIdx[itemID]
	if !ok {
		return domain.InventoryItem{}, s.gen, fmt.Errorf("%w: %s", ErrUnknownItem, itemID)
	}
	return s.items[i].Clone(), s.gen, nil
}

func (s *Store) itemLock(id string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()

	l, ok := s.itemLocks[id]
	if !ok {
		l = &sync.Mutex{}
		s.itemLocks[id] = l
	}
	return l
}

// Allocate commits qty units of an item to an event and returns the updated item.
// Unknown ids, non-positive quantities and requests above the available quantity are rejected
// without touching the stored item.
func (s *Store) Allocate(ctx context.Context, itemID, eventID string, qty int) (domain.InventoryItem, error) {
	l := s.itemLock(itemID)
	l.Lock()
	defer l.Unlock()

	for {
		if err := ctx.Err(); err != nil {
			return domain.InventoryItem{}, err
		}

		current, gen, err := s.lookup(itemID, eventID)
		if err != nil {
			return current, err
		}

		updated, err := stats.Allocate(current, eventID, qty)
		if err != nil {
			log.Debug().Err(err).Str("item", itemID).Str("event", eventID).Int("qty", qty).Msg("Allocation rejected")
			return current, err
		}

		if hook := s.beforeCommit; hook != nil {
			hook()
		}

		s.mu.Lock()
		if s.gen != gen {
			s.mu.Unlock()
			log.Debug().Str("item", itemID).Msg("Dataset replaced during allocation, retrying")
			continue
		}
		s.items[s.itemIdx[itemID]] = updated
		s.mu.Unlock()

		log.Info().
			Str("item", itemID).
			Str("event", eventID).
			Int("qty", qty).
			Int("available", stats.Available(updated)).
			Msg("Inventory allocated")
		return updated.Clone(), nil
	}
}

// UpdatePaymentStatus moves one milestone to a new settlement status and returns the updated copy.
func (s *Store) UpdatePaymentStatus(ctx context.Context, paymentID string, to domain.PaymentStatus, at time.Time) (domain.PaymentMilestone, error) {
	if err := ctx.Err(); err != nil {
		return domain.PaymentMilestone{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.payments {
		if p.ID != paymentID {
			continue
		}
		updated, err := domain.Transition(p, to, at)
		if err != nil {
			return p, err
		}
		s.payments[i] = updated
		log.Info().Str("payment", paymentID).Str("from", string(p.Status)).Str("to", string(to)).Msg("Payment status updated")
		return updated, nil
	}
	return domain.PaymentMilestone{}, fmt.Errorf("%w: %s", ErrUnknownPayment, paymentID)
}

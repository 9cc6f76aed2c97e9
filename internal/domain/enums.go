package domain

import "strings"

// Category is the closed set of inventory categories a vendor can list.
type Category string

const (
	Furniture   Category = "furniture"
	AudioVisual Category = "audio_visual"
	Lighting    Category = "lighting"
	Decor       Category = "decor"
	Tableware   Category = "tableware"
	Staging     Category = "staging"
)

// AllCategories returns the categories in their fixed display order.
func AllCategories() []Category {
	return []Category{Furniture, AudioVisual, Lighting, Decor, Tableware, Staging}
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	switch c {
	case Furniture, AudioVisual, Lighting, Decor, Tableware, Staging:
		return true
	default:
		return false
	}
}

// ParseCategory resolves a user-supplied token. Unknown tokens and "ALL" return ok=false.
func ParseCategory(s string) (Category, bool) {
	c := Category(normalizeToken(s))
	return c, c.Valid()
}

// EventType classifies an event.
type EventType string

const (
	Wedding    EventType = "wedding"
	Conference EventType = "conference"
	Meeting    EventType = "meeting"
	Incentive  EventType = "incentive"
	Exhibition EventType = "exhibition"
)

// AllEventTypes returns the event types in their fixed display order.
func AllEventTypes() []EventType {
	return []EventType{Wedding, Conference, Meeting, Incentive, Exhibition}
}

func (t EventType) Valid() bool {
	switch t {
	case Wedding, Conference, Meeting, Incentive, Exhibition:
		return true
	default:
		return false
	}
}

func ParseEventType(s string) (EventType, bool) {
	t := EventType(normalizeToken(s))
	return t, t.Valid()
}

// EventStatus is the lifecycle stage of an active or archived event.
type EventStatus string

const (
	// Active statuses
	Planning   EventStatus = "planning"
	Confirmed  EventStatus = "confirmed"
	InProgress EventStatus = "in_progress"

	// Archive statuses
	Completed EventStatus = "completed"
	Cancelled EventStatus = "cancelled"
)

func (s EventStatus) Valid() bool {
	switch s {
	case Planning, Confirmed, InProgress, Completed, Cancelled:
		return true
	default:
		return false
	}
}

// Archived reports whether the status is terminal.
func (s EventStatus) Archived() bool {
	return s == Completed || s == Cancelled
}

func ParseEventStatus(s string) (EventStatus, bool) {
	st := EventStatus(normalizeToken(s))
	return st, st.Valid()
}

// PaymentStatus is the settlement state of a payment milestone.
type PaymentStatus string

const (
	Released PaymentStatus = "released"
	Eligible PaymentStatus = "eligible"
	Pending  PaymentStatus = "pending"
	Overdue  PaymentStatus = "overdue"
)

// AllPaymentStatuses returns the statuses in their fixed display order.
func AllPaymentStatuses() []PaymentStatus {
	return []PaymentStatus{Released, Eligible, Pending, Overdue}
}

func (s PaymentStatus) Valid() bool {
	switch s {
	case Released, Eligible, Pending, Overdue:
		return true
	default:
		return false
	}
}

func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	st := PaymentStatus(normalizeToken(s))
	return st, st.Valid()
}

// ItemStatus is the capacity state derived from an item's allocations.
type ItemStatus string

const (
	ItemAvailable      ItemStatus = "available"
	ItemLowCapacity    ItemStatus = "low_capacity"
	ItemFullyAllocated ItemStatus = "fully_allocated"
	ItemOverallocated  ItemStatus = "overallocated"
)

func (s ItemStatus) Valid() bool {
	switch s {
	case ItemAvailable, ItemLowCapacity, ItemFullyAllocated, ItemOverallocated:
		return true
	default:
		return false
	}
}

func ParseItemStatus(s string) (ItemStatus, bool) {
	st := ItemStatus(normalizeToken(s))
	return st, st.Valid()
}

// normalizeToken folds "Audio Visual", "audio-visual" and "AUDIO_VISUAL" to "audio_visual".
func normalizeToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

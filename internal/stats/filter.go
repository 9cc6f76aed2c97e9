package stats

import (
	"strings"

	"evplan/internal/domain"
)

// FilterAll disables a categorical condition.
const FilterAll = "ALL"

// Searchable is implemented by every record listed with a search box and two dropdowns.
type Searchable interface {
	SearchFields() []string // name, code, client name...
	TypeKey() string
	StatusKey() string
}

// Filter AND-combines a case-insensitive substring query with exact type and status matches.
// An empty or "ALL" Type/Status disables that condition.
type Filter struct {
	Query  string `json:"query,omitempty"`
	Type   string `json:"type,omitempty"`
	Status string `json:"status,omitempty"`
}

// Matches reports whether r satisfies all three conditions.
func (f Filter) Matches(r Searchable) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		found := false
		for _, field := range r.SearchFields() {
			if strings.Contains(strings.ToLower(field), q) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if !isAll(f.Type) && r.TypeKey() != f.Type {
		return false
	}
	if !isAll(f.Status) && r.StatusKey() != f.Status {
		return false
	}
	return true
}

// Search returns the records matching f, keeping input order.
func Search[T Searchable](records []T, f Filter) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

func isAll(v string) bool {
	return v == "" || strings.EqualFold(v, FilterAll)
}

// InventoryFilter builds a Filter over ItemStats. Unknown category or status values mean ALL.
func InventoryFilter(query, category, status string) Filter {
	f := Filter{Query: query}
	if c, ok := domain.ParseCategory(category); ok {
		f.Type = string(c)
	}
	if s, ok := domain.ParseItemStatus(status); ok {
		f.Status = string(s)
	}
	return f
}

// ActiveEventFilter builds a Filter over active events. Archive-only statuses mean ALL.
func ActiveEventFilter(query, eventType, status string) Filter {
	f := Filter{Query: query}
	if t, ok := domain.ParseEventType(eventType); ok {
		f.Type = string(t)
	}
	if s, ok := domain.ParseEventStatus(status); ok && !s.Archived() {
		f.Status = string(s)
	}
	return f
}

// ArchiveFilter builds a Filter over archived events. Active-only statuses mean ALL.
func ArchiveFilter(query, eventType, status string) Filter {
	f := Filter{Query: query}
	if t, ok := domain.ParseEventType(eventType); ok {
		f.Type = string(t)
	}
	if s, ok := domain.ParseEventStatus(status); ok && s.Archived() {
		f.Status = string(s)
	}
	return f
}

// PaymentFilter builds a Filter over payment milestones.
func PaymentFilter(query, eventType, status string) Filter {
	f := Filter{Query: query}
	if t, ok := domain.ParseEventType(eventType); ok {
		f.Type = string(t)
	}
	if s, ok := domain.ParsePaymentStatus(status); ok {
		f.Status = string(s)
	}
	return f
}

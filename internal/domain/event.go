package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event is the minimal event record inventory is allocated against.
type Event struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       EventType `json:"type"`
	Date       time.Time `json:"date"`
	Location   string    `json:"location"`
	TotalSlots int       `json:"totalSlots"`
	UsedSlots  int       `json:"usedSlots"`
}

// ActiveEvent is an event still being planned or run by a host.
type ActiveEvent struct {
	Event
	Code       string          `json:"code"`
	ClientName string          `json:"clientName"`
	Status     EventStatus     `json:"status"`
	Attendees  int             `json:"attendees"`
	Progress   int             `json:"progress"` // 0-100
	Revenue    decimal.Decimal `json:"revenue"`
	Milestones []string        `json:"milestones,omitempty"`
	Notes      string          `json:"notes,omitempty"`
}

// ArchivedEvent is a completed or cancelled event kept for reporting.
type ArchivedEvent struct {
	Event
	Code       string          `json:"code"`
	ClientName string          `json:"clientName"`
	Status     EventStatus     `json:"status"`
	Attendees  int             `json:"attendees"`
	Revenue    decimal.Decimal `json:"revenue"`
	Rating     float64         `json:"rating,omitempty"` // 0-5
}

func (e ActiveEvent) SearchFields() []string { return []string{e.Name, e.Code, e.ClientName} }
func (e ActiveEvent) TypeKey() string        { return string(e.Type) }
func (e ActiveEvent) StatusKey() string      { return string(e.Status) }

func (e ArchivedEvent) SearchFields() []string { return []string{e.Name, e.Code, e.ClientName} }
func (e ArchivedEvent) TypeKey() string        { return string(e.Type) }
func (e ArchivedEvent) StatusKey() string      { return string(e.Status) }

package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidTransition is returned when a payment status change is not allowed.
var ErrInvalidTransition = errors.New("invalid payment status transition")

// PaymentMilestone is a scheduled or conditional payout tied to an event's progress.
type PaymentMilestone struct {
	ID         string          `json:"id"`
	EventID    string          `json:"eventId"`
	EventName  string          `json:"eventName"`
	EventType  EventType       `json:"eventType"`
	ClientName string          `json:"clientName,omitempty"`
	Milestone  string          `json:"milestone"`
	Amount     decimal.Decimal `json:"amount"`
	DueDate    time.Time       `json:"dueDate"`
	PaidDate   *time.Time      `json:"paidDate,omitempty"`
	Status     PaymentStatus   `json:"status"`
	InvoiceRef string          `json:"invoiceRef,omitempty"`
}

// paymentTransitions is the full set of allowed status moves.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	Pending:  {Eligible, Overdue},
	Eligible: {Released},
	Overdue:  {Released},
}

// CanTransition reports whether a payment may move from one status to another.
func CanTransition(from, to PaymentStatus) bool {
	for _, next := range paymentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition returns a copy of p moved to the target status. Releasing stamps PaidDate with at.
func Transition(p PaymentMilestone, to PaymentStatus, at time.Time) (PaymentMilestone, error) {
	if !CanTransition(p.Status, to) {
		return p, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.Status, to)
	}
	p.Status = to
	if to == Released && p.PaidDate == nil {
		paid := at
		p.PaidDate = &paid
	}
	return p, nil
}

func (p PaymentMilestone) SearchFields() []string {
	return []string{p.EventName, p.Milestone, p.ClientName, p.InvoiceRef}
}
func (p PaymentMilestone) TypeKey() string   { return string(p.EventType) }
func (p PaymentMilestone) StatusKey() string { return string(p.Status) }

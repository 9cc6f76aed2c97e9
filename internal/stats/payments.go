package stats

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"evplan/internal/domain"
)

// PaymentSummary totals milestone amounts by settlement status.
//
// PendingPct folds overdue amounts into the pending share so that Released, Eligible and
// Pending shares add up to 100. OverduePct is reported separately for display only.
type PaymentSummary struct {
	Released      decimal.Decimal              `json:"released"`
	Eligible      decimal.Decimal              `json:"eligible"`
	Pending       decimal.Decimal              `json:"pending"`
	Overdue       decimal.Decimal              `json:"overdue"`
	TotalExpected decimal.Decimal              `json:"totalExpected"`
	ReleasedPct   float64                      `json:"releasedPct"`
	EligiblePct   float64                      `json:"eligiblePct"`
	PendingPct    float64                      `json:"pendingPct"`
	OverduePct    float64                      `json:"overduePct"`
	Counts        map[domain.PaymentStatus]int `json:"counts"`
}

// SummarizePayments sums amounts per status. Milestones with a status outside the closed set
// are ignored.
func SummarizePayments(payments []domain.PaymentMilestone) PaymentSummary {
	s := PaymentSummary{
		Released:      decimal.Zero,
		Eligible:      decimal.Zero,
		Pending:       decimal.Zero,
		Overdue:       decimal.Zero,
		TotalExpected: decimal.Zero,
		Counts:        make(map[domain.PaymentStatus]int),
	}

	for _, p := range payments {
		switch p.Status {
		case domain.Released:
			s.Released = s.Released.Add(p.Amount)
		case domain.Eligible:
			s.Eligible = s.Eligible.Add(p.Amount)
		case domain.Pending:
			s.Pending = s.Pending.Add(p.Amount)
		case domain.Overdue:
			s.Overdue = s.Overdue.Add(p.Amount)
		default:
			continue
		}
		s.Counts[p.Status]++
	}

	s.TotalExpected = s.Released.Add(s.Eligible).Add(s.Pending).Add(s.Overdue)
	s.ReleasedPct = SharePercent(s.Released, s.TotalExpected)
	s.EligiblePct = SharePercent(s.Eligible, s.TotalExpected)
	s.PendingPct = SharePercent(s.Pending.Add(s.Overdue), s.TotalExpected)
	s.OverduePct = SharePercent(s.Overdue, s.TotalExpected)
	return s
}

// EventPayments is the ordered milestone list of one event.
type EventPayments struct {
	EventID   string                    `json:"eventId"`
	EventName string                    `json:"eventName"`
	Payments  []domain.PaymentMilestone `json:"payments"`
	Summary   PaymentSummary            `json:"summary"`
}

// GroupByEvent groups milestones by owning event. Groups appear in first-seen order and keep
// the input order of their milestones.
func GroupByEvent(payments []domain.PaymentMilestone) []EventPayments {
	index := make(map[string]int)
	var groups []EventPayments

	for _, p := range payments {
		i, ok := index[p.EventID]
		if !ok {
			i = len(groups)
			index[p.EventID] = i
			groups = append(groups, EventPayments{EventID: p.EventID, EventName: p.EventName})
		}
		groups[i].Payments = append(groups[i].Payments, p)
	}

	for i := range groups {
		groups[i].Summary = SummarizePayments(groups[i].Payments)
	}
	return groups
}

// Urgency levels for countdown displays.
const (
	UrgencyPaid     = "paid"
	UrgencyOverdue  = "overdue"
	UrgencyDueSoon  = "due_soon"
	UrgencyUpcoming = "upcoming"
)

// DueSoonDays is the horizon under which an unpaid milestone counts as due soon.
const DueSoonDays = 7

type PaymentCountdown struct {
	PaymentID string `json:"paymentId"`
	DaysLeft  int    `json:"daysLeft"` // negative once the due date has passed
	Urgency   string `json:"urgency"`
}

// PaymentUrgency measures whole calendar days from now to the due date.
func PaymentUrgency(p domain.PaymentMilestone, now time.Time) PaymentCountdown {
	today := SnapToStart(now, BucketDay)
	due := SnapToStart(p.DueDate.In(now.Location()), BucketDay)
	days := int(math.Round(due.Sub(today).Hours() / 24))

	c := PaymentCountdown{PaymentID: p.ID, DaysLeft: days}
	switch {
	case p.Status == domain.Released:
		c.Urgency = UrgencyPaid
	case p.Status == domain.Overdue || days < 0:
		c.Urgency = UrgencyOverdue
	case days <= DueSoonDays:
		c.Urgency = UrgencyDueSoon
	default:
		c.Urgency = UrgencyUpcoming
	}
	return c
}

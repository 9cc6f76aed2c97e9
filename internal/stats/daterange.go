package stats

import (
	"strconv"
	"strings"
	"time"

	"evplan/internal/domain"
)

// DateRange is a calendar interval parsed from a token such as "30 days" or "3 months".
type DateRange struct {
	Days, Months, Years int
}

// ParseDateRange understands "<n> day(s)|week(s)|month(s)|year(s)" and the compact forms
// "30d", "2w", "3m", "1y". "all", empty and unparsable tokens return ok=false.
func ParseDateRange(token string) (DateRange, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" || token == "all" {
		return DateRange{}, false
	}

	var numPart, unitPart string
	if fields := strings.Fields(token); len(fields) == 2 {
		numPart, unitPart = fields[0], fields[1]
	} else {
		i := strings.IndexFunc(token, func(r rune) bool { return r < '0' || r > '9' })
		if i <= 0 {
			return DateRange{}, false
		}
		numPart, unitPart = token[:i], token[i:]
	}

	n, err := strconv.Atoi(numPart)
	if err != nil || n <= 0 {
		return DateRange{}, false
	}

	switch strings.TrimSuffix(unitPart, "s") {
	case "d", "day":
		return DateRange{Days: n}, true
	case "w", "week":
		return DateRange{Days: 7 * n}, true
	case "m", "month":
		return DateRange{Months: n}, true
	case "y", "year":
		return DateRange{Years: n}, true
	default:
		return DateRange{}, false
	}
}

// Cutoff subtracts the interval from now and snaps to the start of that day.
func (r DateRange) Cutoff(now time.Time) time.Time {
	return SnapToStart(now.AddDate(-r.Years, -r.Months, -r.Days), BucketDay)
}

// FilterByDateRange keeps milestones due on or after now minus the range. Unknown tokens keep
// every milestone. now is always supplied by the caller.
func FilterByDateRange(payments []domain.PaymentMilestone, token string, now time.Time) []domain.PaymentMilestone {
	r, ok := ParseDateRange(token)
	if !ok {
		return payments
	}

	cutoff := r.Cutoff(now)
	var out []domain.PaymentMilestone
	for _, p := range payments {
		if !p.DueDate.Before(cutoff) {
			out = append(out, p)
		}
	}
	return out
}

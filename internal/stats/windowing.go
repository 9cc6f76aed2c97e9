package stats

import (
	"fmt"
	"time"
)

// Bucket sizes supported by AnalysisWindow.
const (
	BucketDay   = "day"
	BucketWeek  = "week"
	BucketMonth = "month"
)

// AnalysisWindow is the bucketed time range a trend is aggregated over.
type AnalysisWindow struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Bucket string    `json:"bucket"` // "day", "week", "month"
}

// NewAnalysisWindow snaps start and end outward to whole buckets. Unknown bucket sizes fall
// back to months.
func NewAnalysisWindow(start, end time.Time, bucket string) AnalysisWindow {
	switch bucket {
	case BucketDay, BucketWeek, BucketMonth:
	default:
		bucket = BucketMonth
	}
	return AnalysisWindow{
		Start:  SnapToStart(start, bucket),
		End:    SnapToEnd(end, bucket),
		Bucket: bucket,
	}
}

// next returns the start of the bucket following the one starting at t.
func next(t time.Time, bucket string) time.Time {
	switch bucket {
	case BucketMonth:
		return t.AddDate(0, 1, 0)
	case BucketWeek:
		return t.AddDate(0, 0, 7)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// SnapToStart returns midnight of the first day of t's bucket. Weeks start on Monday.
func SnapToStart(t time.Time, bucket string) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	switch bucket {
	case BucketMonth:
		d = 1
	case BucketWeek:
		d -= (int(t.Weekday()) + 6) % 7
	}
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SnapToEnd returns the last nanosecond of t's bucket.
func SnapToEnd(t time.Time, bucket string) time.Time {
	if t.IsZero() {
		return t
	}
	return next(SnapToStart(t, bucket), bucket).Add(-time.Nanosecond)
}

// IsPartial reports whether the bucket starting at bucketStart contains now.
func (w AnalysisWindow) IsPartial(bucketStart, now time.Time) bool {
	return !now.Before(bucketStart) && !now.After(SnapToEnd(bucketStart, w.Bucket))
}

// Subdivide lists the bucket start times inside the window.
func (w AnalysisWindow) Subdivide() []time.Time {
	var starts []time.Time
	for b := w.Start; b.Before(w.End); b = next(b, w.Bucket) {
		starts = append(starts, b)
	}
	return starts
}

// FindBucketIndex returns the position of t's bucket in Subdivide, or -1 outside the window.
// Day and week positions count calendar days, so 23 and 25 hour days around DST changes
// do not shift the result.
func (w AnalysisWindow) FindBucketIndex(t time.Time) int {
	b := SnapToStart(t, w.Bucket)
	if b.Before(w.Start) || b.After(w.End) {
		return -1
	}
	switch w.Bucket {
	case BucketMonth:
		return (b.Year()-w.Start.Year())*12 + int(b.Month()) - int(w.Start.Month())
	case BucketWeek:
		return calendarDays(w.Start, b) / 7
	default:
		return calendarDays(w.Start, b)
	}
}

// calendarDays counts the dates between from and to, ignoring clock time and offset changes.
func calendarDays(from, to time.Time) int {
	civil := func(t time.Time) time.Time {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return int(civil(to).Sub(civil(from)).Hours()) / 24
}

// GenerateLabel formats a bucket start for charts: "Mar 2026", "2026-W10" or "2026-03-02".
func (w AnalysisWindow) GenerateLabel(t time.Time) string {
	switch w.Bucket {
	case BucketMonth:
		return t.Format("Jan 2006")
	case BucketWeek:
		y, wk := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", y, wk)
	default:
		return t.Format("2006-01-02")
	}
}

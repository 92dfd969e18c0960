package analytics

import (
	"fmt"
	"time"
)

// Mode selects how the analysis window is derived from "now".
type Mode string

const (
	// ModeAll applies no time filtering.
	ModeAll Mode = "all"
	// ModeToday keeps messages from the same calendar day as now,
	// in now's location. Not a rolling 24h window.
	ModeToday Mode = "today"
	// ModeWeek keeps messages from a trailing rolling 7x24h window,
	// not a calendar week.
	ModeWeek Mode = "week"
	// ModeRange applies an explicit [start, end] date range. Both bounds
	// are optional and compared at day granularity, inclusive on both
	// sides: end means "through the end of that calendar day".
	ModeRange Mode = "range"
)

// Window is a transient selection applied to analytics only; it is never
// persisted and never affects the conversation view.
type Window struct {
	Mode  Mode
	Start *time.Time
	End   *time.Time
}

// dateFormat is the wire format for explicit range bounds.
const dateFormat = "2006-01-02"

// ParseWindow builds a Window from request inputs. Empty start/end mean
// "no bound on that side", never a failure.
func ParseWindow(mode, start, end string) (Window, error) {
	switch Mode(mode) {
	case ModeAll, "":
		return Window{Mode: ModeAll}, nil
	case ModeToday:
		return Window{Mode: ModeToday}, nil
	case ModeWeek:
		return Window{Mode: ModeWeek}, nil
	case ModeRange:
		w := Window{Mode: ModeRange}
		if start != "" {
			t, err := time.ParseInLocation(dateFormat, start, time.Local)
			if err != nil {
				return Window{}, fmt.Errorf("invalid start date %q: %w", start, err)
			}
			w.Start = &t
		}
		if end != "" {
			t, err := time.ParseInLocation(dateFormat, end, time.Local)
			if err != nil {
				return Window{}, fmt.Errorf("invalid end date %q: %w", end, err)
			}
			w.End = &t
		}
		return w, nil
	default:
		return Window{}, fmt.Errorf("unknown filter mode %q", mode)
	}
}

// Contains reports whether a message timestamped ts falls inside the
// window relative to now.
func (w Window) Contains(ts, now time.Time) bool {
	switch w.Mode {
	case ModeToday:
		return sameDay(ts, now)
	case ModeWeek:
		return !ts.Before(now.Add(-7 * 24 * time.Hour))
	case ModeRange:
		day := dayOf(ts, now.Location())
		if w.Start != nil && day.Before(dayOf(*w.Start, now.Location())) {
			return false
		}
		if w.End != nil && day.After(dayOf(*w.End, now.Location())) {
			return false
		}
		return true
	default:
		return true
	}
}

func sameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

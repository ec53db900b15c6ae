// Package schedule finds free appointment slots inside a clinic's
// working hours, given the busy intervals already booked for a
// practitioner.
package schedule

import (
	"sort"
	"time"
)

// Interval is a half-open [Start, End) time range.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two intervals share any time.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// WorkWeek describes the clinic's bookable hours.
type WorkWeek struct {
	// StartHour and EndHour bound each working day (e.g., 9 and 17).
	StartHour int
	EndHour   int

	// Days are the weekdays appointments can be booked on.
	Days []time.Weekday

	// DaysAhead is how far forward to search for a free slot.
	DaysAhead int
}

// DefaultWorkWeek returns the standard Mon-Fri 9-to-5 schedule with a
// 30-day search horizon.
func DefaultWorkWeek() WorkWeek {
	return WorkWeek{
		StartHour: 9,
		EndHour:   17,
		Days: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday,
		},
		DaysAhead: 30,
	}
}

// includes reports whether d is a working day.
func (w WorkWeek) includes(d time.Weekday) bool {
	for _, day := range w.Days {
		if day == d {
			return true
		}
	}
	return false
}

// Conflicts reports whether the proposed slot overlaps any busy interval.
func Conflicts(busy []Interval, slot Interval) bool {
	for _, b := range busy {
		if slot.Overlaps(b) {
			return true
		}
	}
	return false
}

// NextAvailableSlot returns the earliest start time at or after from
// where a slot of the given duration fits inside working hours without
// overlapping any busy interval. The boolean is false when no slot
// exists within the search horizon.
func NextAvailableSlot(busy []Interval, duration time.Duration, from time.Time, week WorkWeek) (time.Time, bool) {
	if duration <= 0 || week.EndHour <= week.StartHour {
		return time.Time{}, false
	}

	cursor := ceilMinute(from)

	for offset := 0; offset <= week.DaysAhead; offset++ {
		day := cursor.AddDate(0, 0, offset)
		if !week.includes(day.Weekday()) {
			continue
		}

		dayStart := time.Date(day.Year(), day.Month(), day.Day(), week.StartHour, 0, 0, 0, day.Location())
		dayEnd := time.Date(day.Year(), day.Month(), day.Day(), week.EndHour, 0, 0, 0, day.Location())

		candidate := dayStart
		if offset == 0 && cursor.After(dayStart) {
			candidate = cursor
		}

		// Busy time clipped to the working window, in start order.
		windowBusy := clipToWindow(busy, dayStart, dayEnd)

		for !candidate.Add(duration).After(dayEnd) {
			slot := Interval{Start: candidate, End: candidate.Add(duration)}

			blocked := false
			for _, b := range windowBusy {
				if slot.Overlaps(b) {
					candidate = ceilMinute(b.End)
					blocked = true
					break
				}
			}
			if blocked {
				continue
			}

			return candidate, true
		}
	}

	return time.Time{}, false
}

// clipToWindow returns the busy intervals that intersect the window,
// trimmed to its bounds and sorted by start.
func clipToWindow(busy []Interval, start, end time.Time) []Interval {
	var out []Interval
	for _, b := range busy {
		if !b.End.After(start) || !b.Start.Before(end) {
			continue
		}
		clipped := b
		if clipped.Start.Before(start) {
			clipped.Start = start
		}
		if clipped.End.After(end) {
			clipped.End = end
		}
		out = append(out, clipped)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// ceilMinute rounds t up to the next whole minute.
func ceilMinute(t time.Time) time.Time {
	if t.Second() == 0 && t.Nanosecond() == 0 {
		return t
	}
	return t.Truncate(time.Minute).Add(time.Minute)
}

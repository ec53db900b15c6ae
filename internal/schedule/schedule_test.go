package schedule

import (
	"testing"
	"time"
)

// mon is a Monday well inside the search horizon.
var mon = time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

func at(day time.Time, hour, min int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, day.Location())
}

func TestIntervalOverlaps(t *testing.T) {
	base := Interval{Start: at(mon, 10, 0), End: at(mon, 10, 30)}

	cases := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", base, true},
		{"contained", Interval{at(mon, 10, 10), at(mon, 10, 20)}, true},
		{"partial front", Interval{at(mon, 9, 45), at(mon, 10, 15)}, true},
		{"partial back", Interval{at(mon, 10, 15), at(mon, 10, 45)}, true},
		{"touching end", Interval{at(mon, 10, 30), at(mon, 11, 0)}, false},
		{"touching start", Interval{at(mon, 9, 30), at(mon, 10, 0)}, false},
		{"disjoint", Interval{at(mon, 14, 0), at(mon, 15, 0)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.Overlaps(tc.other); got != tc.want {
				t.Fatalf("Overlaps = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNextAvailableSlotEmptyDay(t *testing.T) {
	got, ok := NextAvailableSlot(nil, 30*time.Minute, at(mon, 6, 0), DefaultWorkWeek())
	if !ok {
		t.Fatal("expected a slot on an empty day")
	}
	if !got.Equal(at(mon, 9, 0)) {
		t.Fatalf("expected work start 09:00, got %v", got)
	}
}

func TestNextAvailableSlotStartsFromCursorMidDay(t *testing.T) {
	got, ok := NextAvailableSlot(nil, 30*time.Minute, at(mon, 11, 12), DefaultWorkWeek())
	if !ok {
		t.Fatal("expected a slot")
	}
	if !got.Equal(at(mon, 11, 12)) {
		t.Fatalf("expected 11:12, got %v", got)
	}
}

func TestNextAvailableSlotSkipsBusyIntervals(t *testing.T) {
	busy := []Interval{
		{at(mon, 9, 0), at(mon, 9, 30)},
		{at(mon, 9, 30), at(mon, 10, 15)},
	}

	got, ok := NextAvailableSlot(busy, 30*time.Minute, at(mon, 6, 0), DefaultWorkWeek())
	if !ok {
		t.Fatal("expected a slot")
	}
	if !got.Equal(at(mon, 10, 15)) {
		t.Fatalf("expected 10:15 after the booked block, got %v", got)
	}
}

func TestNextAvailableSlotRollsToNextDay(t *testing.T) {
	// The whole of Monday is booked.
	busy := []Interval{{at(mon, 9, 0), at(mon, 17, 0)}}

	got, ok := NextAvailableSlot(busy, 30*time.Minute, at(mon, 8, 0), DefaultWorkWeek())
	if !ok {
		t.Fatal("expected a slot on Tuesday")
	}
	tue := mon.AddDate(0, 0, 1)
	if !got.Equal(at(tue, 9, 0)) {
		t.Fatalf("expected Tuesday 09:00, got %v", got)
	}
}

func TestNextAvailableSlotSkipsWeekend(t *testing.T) {
	fri := mon.AddDate(0, 0, 4)

	// Friday has room only before a late afternoon block; a 2h slot
	// must wait until Monday.
	busy := []Interval{{at(fri, 10, 0), at(fri, 17, 0)}}

	got, ok := NextAvailableSlot(busy, 2*time.Hour, at(fri, 9, 30), DefaultWorkWeek())
	if !ok {
		t.Fatal("expected a slot")
	}
	nextMon := mon.AddDate(0, 0, 7)
	if !got.Equal(at(nextMon, 9, 0)) {
		t.Fatalf("expected next Monday 09:00, got %v", got)
	}
}

func TestNextAvailableSlotRespectsDayEnd(t *testing.T) {
	// 16:45 cursor leaves only 15 minutes; a 30-minute slot moves on.
	got, ok := NextAvailableSlot(nil, 30*time.Minute, at(mon, 16, 45), DefaultWorkWeek())
	if !ok {
		t.Fatal("expected a slot")
	}
	tue := mon.AddDate(0, 0, 1)
	if !got.Equal(at(tue, 9, 0)) {
		t.Fatalf("expected Tuesday 09:00, got %v", got)
	}
}

func TestNextAvailableSlotHorizonExhausted(t *testing.T) {
	week := DefaultWorkWeek()
	week.DaysAhead = 2

	busy := []Interval{
		{at(mon, 9, 0), at(mon, 17, 0)},
		{at(mon.AddDate(0, 0, 1), 9, 0), at(mon.AddDate(0, 0, 1), 17, 0)},
		{at(mon.AddDate(0, 0, 2), 9, 0), at(mon.AddDate(0, 0, 2), 17, 0)},
	}

	if _, ok := NextAvailableSlot(busy, time.Hour, at(mon, 8, 0), week); ok {
		t.Fatal("expected no slot inside the horizon")
	}
}

func TestConflicts(t *testing.T) {
	busy := []Interval{{at(mon, 10, 0), at(mon, 11, 0)}}

	if !Conflicts(busy, Interval{at(mon, 10, 30), at(mon, 11, 30)}) {
		t.Fatal("expected conflict with overlapping slot")
	}
	if Conflicts(busy, Interval{at(mon, 11, 0), at(mon, 12, 0)}) {
		t.Fatal("back-to-back slot must not conflict")
	}
}

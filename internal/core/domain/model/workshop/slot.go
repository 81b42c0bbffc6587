package workshop

import "time"

// Slot is a bookable interval [Start, End) with FreeSpace vehicles left.
type Slot struct {
	Start     time.Time
	End       time.Time
	FreeSpace int
}

// StartsAt compares instants, not locations.
func (s Slot) StartsAt(t time.Time) bool {
	return s.Start.Equal(t)
}

package model

// Slot is a (date, time) pair at which a visit may be scheduled.  The
// date is rendered in the long form ("25 December 2025") when produced by
// the next-slot search.
type Slot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// String renders the slot the way it is suggested to customers.
func (s Slot) String() string {
	return s.Date + ", " + s.Time
}

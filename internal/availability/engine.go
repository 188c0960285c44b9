// Package availability implements the admission-control half of the
// engine: per-slot occupancy aggregation over the order store, capacity
// checks against the city ceilings, the forward search for the next open
// slots, and the rate-annotated slot listing used by the intake surfaces.
package availability

import (
	"fmt"
	"time"

	"github.com/morozlab/holiday-visit-booking/internal/model"
)

// Capacity maps each configured city to the number of performer pairs
// available per slot.  Cities not listed here get DefaultCapacity, and
// order rows with an empty city column count against DefaultCity.
var Capacity = map[string]int{
	"Moscow":           50,
	"Saint Petersburg": 27,
}

// Cities lists the configured cities in display order.  Maps do not
// iterate deterministically, so keyboards use this slice.
var Cities = []string{"Moscow", "Saint Petersburg"}

const (
	DefaultCapacity = 50
	DefaultCity     = "Moscow"
)

// StandardHours are the bookable slot hours on an ordinary day.
var StandardHours = []int{14, 15, 16, 17, 18, 19, 20, 21}

// Next-slot search parameters: scan up to 7 days past the requested date
// and suggest at most 3 open slots.
const (
	searchWindowDays = 7
	maxSuggestions   = 3
)

// CeilingFor returns the slot capacity for a city.
func CeilingFor(city string) int {
	if n, ok := Capacity[city]; ok {
		return n
	}
	return DefaultCapacity
}

// OrderSource yields the full set of confirmed orders.  The order
// repository satisfies this; tests substitute fixed slices.
type OrderSource interface {
	LoadAll() ([]model.Order, error)
}

// Pricer annotates slot listings with prices.  The pricing engine
// satisfies this.
type Pricer interface {
	Price(date, timeStr string, tier model.Tier, now time.Time) int
}

// Engine answers capacity queries against the order store.  It keeps no
// state of its own: occupancy is recomputed from the full order set on
// every query, so the engine is always as fresh as the store.  The
// capacity check is advisory — between a check and the eventual write two
// sessions may both observe room and both book (see the booking service).
type Engine struct {
	orders OrderSource
	pricer Pricer
}

// NewEngine builds an Engine over the given order source and pricer.
func NewEngine(orders OrderSource, pricer Pricer) *Engine {
	return &Engine{orders: orders, pricer: pricer}
}

// Occupancy aggregates the order store into a per-slot, per-city count.
// The outer key is the exact "date time" string of each order; no
// normalisation is applied, by contract.  Rows missing a city count
// against DefaultCity.
func (e *Engine) Occupancy() (map[string]map[string]int, error) {
	orders, err := e.orders.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	booked := make(map[string]map[string]int)
	for _, o := range orders {
		city := o.City
		if city == "" {
			city = DefaultCity
		}
		key := o.SlotKey()
		if booked[key] == nil {
			booked[key] = make(map[string]int)
		}
		booked[key][city]++
	}
	return booked, nil
}

// IsAvailable reports whether the exact (date, time, city) slot still has
// capacity: true iff the occupancy count is strictly below the city's
// ceiling.
func (e *Engine) IsAvailable(date, timeStr, city string) (bool, error) {
	booked, err := e.Occupancy()
	if err != nil {
		return false, err
	}
	count := booked[date+" "+timeStr][city]
	return count < CeilingFor(city), nil
}

// FindNextSlots scans forward from the day after fromDate, up to 7 days,
// over the standard hours in ascending order, and returns the first 3
// (date, time) pairs with free capacity.  Fewer (possibly zero) slots are
// returned when the window is exhausted.  An unparsable fromDate falls
// back to today — a deliberate best-effort policy, the search never fails
// on input.
func (e *Engine) FindNextSlots(fromDate, city string) ([]model.Slot, error) {
	start, err := model.ParseVisitDate(fromDate)
	if err != nil {
		start = time.Now()
	}
	booked, err := e.Occupancy()
	if err != nil {
		return nil, err
	}
	ceiling := CeilingFor(city)

	var free []model.Slot
	for i := 1; i <= searchWindowDays; i++ {
		date := model.FormatVisitDate(start.AddDate(0, 0, i))
		for _, hour := range StandardHours {
			timeStr := fmt.Sprintf("%02d:00", hour)
			if booked[date+" "+timeStr][city] < ceiling {
				free = append(free, model.Slot{Date: date, Time: timeStr})
				if len(free) >= maxSuggestions {
					return free, nil
				}
			}
		}
	}
	return free, nil
}

// SlotInfo describes one bookable time bucket on a given date for the
// slot listing: the tier price, whether the bucket still has capacity,
// and how many pairs remain.  AvailableCount is clamped at zero for
// display even if a race pushed occupancy past the ceiling; Available
// reflects the true count.
type SlotInfo struct {
	Time           string `json:"time"`
	Price          int    `json:"price"`
	Available      bool   `json:"available"`
	AvailableCount int    `json:"available_count"`
}

// ListSlots enumerates the applicable hour buckets for a date — the
// standard eight, plus late-night buckets on December 31 and early-
// morning buckets on January 1 — and annotates each with the rate
// engine's price and the remaining capacity in the city.
func (e *Engine) ListSlots(date, city string, tier model.Tier, now time.Time) ([]SlotInfo, error) {
	booked, err := e.Occupancy()
	if err != nil {
		return nil, err
	}
	ceiling := CeilingFor(city)

	hours := HoursFor(date)
	slots := make([]SlotInfo, 0, len(hours))
	for _, hour := range hours {
		timeStr := fmt.Sprintf("%02d:00", hour)
		count := booked[date+" "+timeStr][city]
		remaining := ceiling - count
		if remaining < 0 {
			remaining = 0
		}
		slots = append(slots, SlotInfo{
			Time:           timeStr,
			Price:          e.pricer.Price(date, timeStr, tier, now),
			Available:      count < ceiling,
			AvailableCount: remaining,
		})
	}
	return slots, nil
}

// HoursFor returns the bookable hours for a date in ascending order.  On
// New Year's Eve the 22:00 and 23:00 buckets open up; on New Year's Day
// the midnight continuation buckets 00:00 and 01:00 precede the standard
// afternoon hours.  Dates that do not parse get the standard hours.
func HoursFor(date string) []int {
	day, err := model.ParseVisitDate(date)
	if err != nil {
		return StandardHours
	}
	switch {
	case day.Month() == time.December && day.Day() == 31:
		return append(append([]int{}, StandardHours...), 22, 23)
	case day.Month() == time.January && day.Day() == 1:
		return append([]int{0, 1}, StandardHours...)
	}
	return StandardHours
}

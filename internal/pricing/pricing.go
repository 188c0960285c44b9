// Package pricing implements the rate engine: a pure function from
// (visit date, visit time, service tier) to a price in whole rubles,
// evaluated against the fixed seasonal schedules in rates.go and an
// early-booking discount that is active before a cutoff date.
package pricing

import (
	"log"
	"math"
	"time"

	"github.com/morozlab/holiday-visit-booking/internal/model"
)

// Discount parameters for the season.  Prices resolved while the current
// time is strictly before the cutoff are multiplied by the discount and
// rounded to the nearest ruble; from the cutoff on, prices are full rate.
var (
	DiscountCutoff     = time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	DiscountMultiplier = 0.90
)

// Engine resolves prices from the seasonal rate schedules.  It never
// reads the order store and is deterministic for identical inputs.  The
// current time is an explicit argument to Price rather than process-start
// state, so a long-running server re-evaluates the discount cutoff on
// every call and tests can pin the clock.
type Engine struct {
	cutoff     time.Time
	multiplier float64
}

// NewEngine returns an Engine using the season's discount parameters.
func NewEngine() *Engine {
	return &Engine{cutoff: DiscountCutoff, multiplier: DiscountMultiplier}
}

// Price returns the price for a visit at the given date and time in the
// given tier, as of the moment now.  It is total: malformed dates or
// times are logged and priced at zero instead of returning an error.
// That fail-open fallback is a documented contract of the engine, not an
// accident.
func (e *Engine) Price(date, timeStr string, tier model.Tier, now time.Time) int {
	day, err := model.ParseVisitDate(date)
	if err != nil {
		log.Printf("pricing: %v", err)
		return 0
	}
	hour, err := model.ParseVisitTime(timeStr)
	if err != nil {
		log.Printf("pricing: %v", err)
		return 0
	}
	base := resolveBase(rulesFor(tier), day, hour)
	if now.Before(e.cutoff) {
		return int(math.Round(float64(base) * e.multiplier))
	}
	return base
}

// rulesFor selects the tier's schedule.  Unknown tiers price as Standard,
// mirroring how the intake surfaces default the tier.
func rulesFor(tier model.Tier) []rateRule {
	switch tier {
	case model.TierExpress:
		return expressRules
	case model.TierExtended:
		return extendedRules
	default:
		return standardRules
	}
}

// resolveBase walks the ordered rule list; the first rule whose guard
// matches the day decides the price.  The final catch-all rule guarantees
// a match.
func resolveBase(rules []rateRule, day time.Time, hour int) int {
	for _, r := range rules {
		if !r.Guard.matches(day) {
			continue
		}
		if len(r.Bands) == 0 {
			return r.Flat
		}
		for _, b := range r.Bands {
			if hour >= b.From && hour < b.To {
				return b.Price
			}
		}
		return r.BandDefault
	}
	return 0
}

func (g dateGuard) matches(day time.Time) bool {
	switch {
	case g.Before != "":
		return day.Before(mustDay(g.Before))
	case g.Through != "":
		return !day.After(mustDay(g.Through))
	case g.On != "":
		return day.Equal(mustDay(g.On))
	case g.MonthDay != [2]int{}:
		return int(day.Month()) == g.MonthDay[0] && day.Day() == g.MonthDay[1]
	case g.MDFrom != [2]int{}:
		md := [2]int{int(day.Month()), day.Day()}
		return !mdLess(md, g.MDFrom) && !mdLess(g.MDTo, md)
	}
	return true
}

func mdLess(a, b [2]int) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

// mustDay parses a schedule boundary.  The boundaries are compile-time
// constants in rates.go, so a parse failure is a programming error.
func mustDay(s string) time.Time {
	t, err := time.Parse(model.DateLayoutNumeric, s)
	if err != nil {
		panic("pricing: bad schedule boundary " + s)
	}
	return t
}

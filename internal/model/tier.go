package model

import "strings"

// Tier identifies one of the fixed service offerings.  Each tier has its
// own nominal duration and its own independently authored rate schedule;
// the schedules are not derived from one another.
type Tier string

const (
	TierExpress  Tier = "Express (15 min)"
	TierStandard Tier = "Standard (30 min)"
	TierExtended Tier = "Extended (60 min)"
)

// Tiers lists the offerings in display order.
var Tiers = []Tier{TierExpress, TierStandard, TierExtended}

// DurationMinutes returns the nominal visit length for the tier.
func (t Tier) DurationMinutes() int {
	switch t {
	case TierExpress:
		return 15
	case TierExtended:
		return 60
	default:
		return 30
	}
}

// ParseTier maps user input to a Tier.  It accepts the full display label
// as well as the bare tier name, case-insensitively.  The boolean reports
// whether the input named a known tier.
func ParseTier(s string) (Tier, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "express", "express (15 min)":
		return TierExpress, true
	case "standard", "standard (30 min)":
		return TierStandard, true
	case "extended", "extended (60 min)":
		return TierExtended, true
	}
	return "", false
}

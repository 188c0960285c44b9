package pricing

// This file is data, not logic: the 2025/26 season rate schedules for the
// three service tiers, encoded as ordered rule lists.  Evaluation walks a
// tier's rules top to bottom and the first matching rule wins, so the
// ordering here is load-bearing.  Each tier's schedule was authored
// independently; none is derived from another.

// hourBand prices the half-open hour range [From, To) on a banded day.
type hourBand struct {
	From, To int
	Price    int
}

// dateGuard selects the calendar days a rule applies to.  Exactly one of
// the match styles is set per rule:
//
//	Before   – strictly before the given day ("02.01.2006").
//	Through  – on or before the given day.
//	On       – exactly the given day.
//	MonthDay – the given month/day in any year.
//	MDFrom/MDTo – an inclusive month/day span in any year.
//
// A zero guard matches every date and serves as the catch-all.
type dateGuard struct {
	Before   string
	Through  string
	On       string
	MonthDay [2]int
	MDFrom   [2]int
	MDTo     [2]int
}

// rateRule yields either a flat price or an hour-banded price for the
// dates its guard matches.  Hours outside every band on a banded day fall
// through to BandDefault rather than erroring.
type rateRule struct {
	Guard       dateGuard
	Flat        int
	Bands       []hourBand
	BandDefault int
}

// Express (15 min) schedule.
var expressRules = []rateRule{
	{Guard: dateGuard{Before: "23.12.2025"}, Flat: 5600},
	{Guard: dateGuard{Through: "27.12.2025"}, Flat: 6400},
	{Guard: dateGuard{On: "28.12.2025"}, Flat: 7000},
	{Guard: dateGuard{On: "29.12.2025"}, Flat: 7300},
	{Guard: dateGuard{On: "30.12.2025"}, Flat: 6900},
	{Guard: dateGuard{MonthDay: [2]int{12, 31}}, BandDefault: 7000, Bands: []hourBand{
		{From: 9, To: 14, Price: 7700},
		{From: 14, To: 16, Price: 8150},
		{From: 16, To: 19, Price: 11975},
		{From: 19, To: 21, Price: 13800},
		{From: 21, To: 23, Price: 14925},
		{From: 23, To: 24, Price: 25200},
		{From: 0, To: 1, Price: 25200},
	}},
	{Guard: dateGuard{MonthDay: [2]int{1, 1}}, BandDefault: 7000, Bands: []hourBand{
		{From: 0, To: 1, Price: 25200},
		{From: 1, To: 6, Price: 9000},
	}},
	{Guard: dateGuard{MonthDay: [2]int{1, 2}}, Flat: 7000},
	{Guard: dateGuard{MDFrom: [2]int{1, 3}, MDTo: [2]int{1, 7}}, Flat: 5600},
	{Flat: 5600},
}

// Standard (30 min) schedule.
var standardRules = []rateRule{
	{Guard: dateGuard{Before: "23.12.2025"}, Flat: 7400},
	{Guard: dateGuard{Through: "27.12.2025"}, Flat: 8000},
	{Guard: dateGuard{On: "28.12.2025"}, Flat: 8400},
	{Guard: dateGuard{On: "29.12.2025"}, Flat: 8700},
	{Guard: dateGuard{On: "30.12.2025"}, Flat: 8200},
	{Guard: dateGuard{MonthDay: [2]int{12, 31}}, BandDefault: 8400, Bands: []hourBand{
		{From: 9, To: 14, Price: 8675},
		{From: 14, To: 16, Price: 9050},
		{From: 16, To: 19, Price: 13400},
		{From: 19, To: 21, Price: 15150},
		{From: 21, To: 23, Price: 16050},
		{From: 23, To: 24, Price: 26250},
		{From: 0, To: 1, Price: 26250},
	}},
	{Guard: dateGuard{MonthDay: [2]int{1, 1}}, BandDefault: 8500, Bands: []hourBand{
		{From: 0, To: 1, Price: 26250},
		{From: 1, To: 6, Price: 10200},
	}},
	{Guard: dateGuard{MonthDay: [2]int{1, 2}}, Flat: 8500},
	{Guard: dateGuard{MDFrom: [2]int{1, 3}, MDTo: [2]int{1, 7}}, Flat: 7400},
	{Flat: 7400},
}

// Extended (60 min) schedule.
var extendedRules = []rateRule{
	{Guard: dateGuard{Before: "23.12.2025"}, Flat: 10900},
	{Guard: dateGuard{Through: "27.12.2025"}, Flat: 11800},
	{Guard: dateGuard{On: "28.12.2025"}, Flat: 12500},
	{Guard: dateGuard{On: "29.12.2025"}, Flat: 12900},
	{Guard: dateGuard{On: "30.12.2025"}, Flat: 12200},
	{Guard: dateGuard{MonthDay: [2]int{12, 31}}, BandDefault: 12500, Bands: []hourBand{
		{From: 9, To: 14, Price: 12950},
		{From: 14, To: 16, Price: 13500},
		{From: 16, To: 19, Price: 19900},
		{From: 19, To: 21, Price: 22500},
		{From: 21, To: 23, Price: 23900},
		{From: 23, To: 24, Price: 38500},
		{From: 0, To: 1, Price: 38500},
	}},
	{Guard: dateGuard{MonthDay: [2]int{1, 1}}, BandDefault: 12600, Bands: []hourBand{
		{From: 0, To: 1, Price: 38500},
		{From: 1, To: 6, Price: 15200},
	}},
	{Guard: dateGuard{MonthDay: [2]int{1, 2}}, Flat: 12600},
	{Guard: dateGuard{MDFrom: [2]int{1, 3}, MDTo: [2]int{1, 7}}, Flat: 10900},
	{Flat: 10900},
}

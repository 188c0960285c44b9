package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morozlab/holiday-visit-booking/internal/model"
)

// fakeSource serves a fixed order slice.
type fakeSource struct{ orders []model.Order }

func (f *fakeSource) LoadAll() ([]model.Order, error) { return f.orders, nil }

// fixedPricer quotes the same price for every slot.
type fixedPricer struct{ price int }

func (p *fixedPricer) Price(string, string, model.Tier, time.Time) int { return p.price }

func booked(city, date, timeStr string, n int) []model.Order {
	orders := make([]model.Order, n)
	for i := range orders {
		orders[i] = model.Order{OrderID: "x", City: city, VisitDate: date, VisitTime: timeStr}
	}
	return orders
}

func TestOccupancyKeysAreExactStrings(t *testing.T) {
	src := &fakeSource{orders: []model.Order{
		{City: "Moscow", VisitDate: "24.12.2025", VisitTime: "18:00"},
		{City: "Moscow", VisitDate: "24.12.2025", VisitTime: "18:00"},
		// A differently written but equal date counts as a distinct slot.
		{City: "Moscow", VisitDate: "24 December 2025", VisitTime: "18:00"},
		// Rows with no city count against the default city.
		{City: "", VisitDate: "24.12.2025", VisitTime: "18:00"},
	}}
	e := NewEngine(src, &fixedPricer{})

	occ, err := e.Occupancy()
	require.NoError(t, err)
	assert.Equal(t, 3, occ["24.12.2025 18:00"]["Moscow"])
	assert.Equal(t, 1, occ["24 December 2025 18:00"]["Moscow"])
}

func TestIsAvailableStopsAtCeiling(t *testing.T) {
	const city = "Saint Petersburg"
	ceiling := CeilingFor(city)

	src := &fakeSource{orders: booked(city, "24.12.2025", "18:00", ceiling-1)}
	e := NewEngine(src, &fixedPricer{})

	free, err := e.IsAvailable("24.12.2025", "18:00", city)
	require.NoError(t, err)
	assert.True(t, free, "one pair left")

	src.orders = booked(city, "24.12.2025", "18:00", ceiling)
	free, err = e.IsAvailable("24.12.2025", "18:00", city)
	require.NoError(t, err)
	assert.False(t, free, "at the ceiling")

	// A full slot in one city does not block the other.
	free, err = e.IsAvailable("24.12.2025", "18:00", "Moscow")
	require.NoError(t, err)
	assert.True(t, free)
}

func TestFindNextSlotsStartsDayAfter(t *testing.T) {
	e := NewEngine(&fakeSource{}, &fixedPricer{})

	slots, err := e.FindNextSlots("24.12.2025", "Moscow")
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, model.Slot{Date: "25 December 2025", Time: "14:00"}, slots[0])
	assert.Equal(t, model.Slot{Date: "25 December 2025", Time: "15:00"}, slots[1])
	assert.Equal(t, model.Slot{Date: "25 December 2025", Time: "16:00"}, slots[2])
}

func TestFindNextSlotsSkipsFullSlots(t *testing.T) {
	const city = "Saint Petersburg"
	ceiling := CeilingFor(city)

	orders := booked(city, "25 December 2025", "14:00", ceiling)
	orders = append(orders, booked(city, "25 December 2025", "15:00", ceiling)...)
	e := NewEngine(&fakeSource{orders: orders}, &fixedPricer{})

	slots, err := e.FindNextSlots("24.12.2025", city)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, model.Slot{Date: "25 December 2025", Time: "16:00"}, slots[0])
}

func TestFindNextSlotsUnreadableDateFallsBackToToday(t *testing.T) {
	e := NewEngine(&fakeSource{}, &fixedPricer{})

	slots, err := e.FindNextSlots("whenever", "Moscow")
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	want := model.FormatVisitDate(time.Now().AddDate(0, 0, 1))
	assert.Equal(t, want, slots[0].Date)
}

func TestListSlotsStandardDay(t *testing.T) {
	e := NewEngine(&fakeSource{}, &fixedPricer{price: 8000})

	slots, err := e.ListSlots("24.12.2025", "Moscow", model.TierStandard, time.Now())
	require.NoError(t, err)
	require.Len(t, slots, 8)
	assert.Equal(t, "14:00", slots[0].Time)
	assert.Equal(t, "21:00", slots[7].Time)
	for _, s := range slots {
		assert.Equal(t, 8000, s.Price)
		assert.True(t, s.Available)
		assert.Equal(t, CeilingFor("Moscow"), s.AvailableCount)
	}
}

func TestListSlotsHolidayBuckets(t *testing.T) {
	e := NewEngine(&fakeSource{}, &fixedPricer{})

	eve, err := e.ListSlots("31.12.2025", "Moscow", model.TierStandard, time.Now())
	require.NoError(t, err)
	require.Len(t, eve, 10)
	assert.Equal(t, "22:00", eve[8].Time)
	assert.Equal(t, "23:00", eve[9].Time)

	day, err := e.ListSlots("01.01.2026", "Moscow", model.TierStandard, time.Now())
	require.NoError(t, err)
	require.Len(t, day, 10)
	assert.Equal(t, "00:00", day[0].Time)
	assert.Equal(t, "01:00", day[1].Time)
	assert.Equal(t, "14:00", day[2].Time)
}

func TestListSlotsClampsOverbookedCountForDisplay(t *testing.T) {
	const city = "Saint Petersburg"
	ceiling := CeilingFor(city)

	// A race can push occupancy past the ceiling; the listing must not
	// show a negative remainder.
	src := &fakeSource{orders: booked(city, "24.12.2025", "14:00", ceiling+2)}
	e := NewEngine(src, &fixedPricer{})

	slots, err := e.ListSlots("24.12.2025", city, model.TierStandard, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "14:00", slots[0].Time)
	assert.False(t, slots[0].Available)
	assert.Zero(t, slots[0].AvailableCount)
}

func TestHoursForUnreadableDate(t *testing.T) {
	assert.Equal(t, StandardHours, HoursFor("sometime in winter"))
}

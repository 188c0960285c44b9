package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morozlab/holiday-visit-booking/internal/availability"
	"github.com/morozlab/holiday-visit-booking/internal/booking"
	"github.com/morozlab/holiday-visit-booking/internal/model"
	"github.com/morozlab/holiday-visit-booking/internal/pricing"
	"github.com/morozlab/holiday-visit-booking/internal/repository"
)

// fixedOrders serves a fixed occupancy picture to the availability engine.
type fixedOrders struct{ orders []model.Order }

func (f *fixedOrders) LoadAll() ([]model.Order, error) { return f.orders, nil }

// testClock is after the early-booking cutoff, so quotes are full rate.
var testClock = time.Date(2025, time.December, 15, 12, 0, 0, 0, time.UTC)

func newMachine(t *testing.T, occupied []model.Order) *Machine {
	t.Helper()
	dir := t.TempDir()
	orders, err := repository.NewOrderRepo(filepath.Join(dir, "orders.xlsx"))
	require.NoError(t, err)
	pending, err := repository.NewPendingOrderRepo(filepath.Join(dir, "pending_orders.json"))
	require.NoError(t, err)
	supportRepo, err := repository.NewSupportRepo(dir, []string{"alice"})
	require.NoError(t, err)

	rates := pricing.NewEngine()
	avail := availability.NewEngine(&fixedOrders{orders: occupied}, rates)
	svc := booking.NewService(orders, pending, nil)

	m := NewMachine(avail, rates, svc, supportRepo)
	m.Now = func() time.Time { return testClock }
	return m
}

func step(t *testing.T, m *Machine, s *Session, input string) Reply {
	t.Helper()
	reply, err := m.Advance(context.Background(), s, input)
	require.NoError(t, err)
	return reply
}

func TestFullBookingConversation(t *testing.T) {
	m := newMachine(t, nil)
	s := &Session{ChatID: "chat-1"}

	reply := step(t, m, s, "/start")
	assert.Equal(t, availability.Cities, reply.Options)
	assert.Equal(t, StateSelectCity, s.State)

	reply = step(t, m, s, "Moscow")
	assert.Equal(t, StateSelectTier, s.State)
	assert.Len(t, reply.Options, 3)

	step(t, m, s, "Standard (30 min)")
	assert.Equal(t, StateSelectDate, s.State)
	assert.Equal(t, 30, s.Draft.DurationMin)

	reply = step(t, m, s, "24.12.2025")
	assert.Equal(t, StateSelectTime, s.State)
	require.Len(t, reply.Options, 8, "standard day offers eight buckets")
	assert.Contains(t, reply.Options[4], "18:00")

	// Tapping the annotated keyboard option selects the bare time.
	reply = step(t, m, s, "18:00 — 8000 ₽ (50 left)")
	assert.Equal(t, StateCollectAddress, s.State)
	assert.Equal(t, "18:00", s.Draft.VisitTime)
	assert.Equal(t, 8000, s.Draft.Price)

	step(t, m, s, "Tverskaya 7, apt 12")
	assert.Equal(t, StateCollectChildren, s.State)

	step(t, m, s, "2")
	assert.Equal(t, StateCollectChildName, s.State)

	step(t, m, s, "Masha")
	assert.Equal(t, StateCollectPhone, s.State)

	step(t, m, s, "+79991234567")
	assert.Equal(t, StateCollectComments, s.State)

	reply = step(t, m, s, "no")
	assert.Equal(t, StateReadyForPayment, s.State)
	require.NotEmpty(t, reply.OrderID)
	assert.Contains(t, reply.Text, "8000")
	assert.Contains(t, reply.Options, "Confirm order")
	assert.Equal(t, model.CommentsNone, s.Draft.Comments)

	// The pending order is linked to the chat for support routing.
	linked, err := m.Support.OrderForChat("chat-1")
	require.NoError(t, err)
	assert.Equal(t, reply.OrderID, linked)

	reply = step(t, m, s, "Confirm order")
	assert.True(t, reply.Done)

	confirmed, err := m.Booking.Orders.LoadAll()
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, reply.OrderID, confirmed[0].OrderID)
	assert.Equal(t, model.Invitee, confirmed[0].Invitee)
}

func TestInvalidInputReprompts(t *testing.T) {
	m := newMachine(t, nil)
	s := &Session{ChatID: "chat-2"}
	step(t, m, s, "/start")

	step(t, m, s, "Kazan")
	assert.Equal(t, StateSelectCity, s.State, "unknown city keeps the state")

	step(t, m, s, "Moscow")
	step(t, m, s, "deluxe")
	assert.Equal(t, StateSelectTier, s.State)

	step(t, m, s, "express")
	step(t, m, s, "next friday")
	assert.Equal(t, StateSelectDate, s.State)

	step(t, m, s, "24.12.2025")
	step(t, m, s, "half past six")
	assert.Equal(t, StateSelectTime, s.State)

	step(t, m, s, "18:00")
	step(t, m, s, "Tverskaya 7")
	step(t, m, s, "a few")
	assert.Equal(t, StateCollectChildren, s.State, "child count must be a number")

	step(t, m, s, "3")
	step(t, m, s, "Masha")
	step(t, m, s, "12345")
	assert.Equal(t, StateCollectPhone, s.State, "short phone is rejected")
}

func TestSoldOutSlotOffersAlternatives(t *testing.T) {
	full := make([]model.Order, availability.CeilingFor("Moscow"))
	for i := range full {
		full[i] = model.Order{City: "Moscow", VisitDate: "24.12.2025", VisitTime: "18:00"}
	}
	m := newMachine(t, full)
	s := &Session{ChatID: "chat-3"}

	step(t, m, s, "/start")
	step(t, m, s, "Moscow")
	step(t, m, s, "standard")
	step(t, m, s, "24.12.2025")

	reply := step(t, m, s, "18:00")
	assert.Equal(t, StateSelectTime, s.State, "a full slot does not advance")
	assert.Empty(t, s.Draft.VisitTime)
	assert.Contains(t, reply.Text, "Nearest open slots")

	// A free bucket on the same date still works.
	step(t, m, s, "19:00")
	assert.Equal(t, StateCollectAddress, s.State)
	assert.Equal(t, "19:00", s.Draft.VisitTime)
}

func TestRestartResetsFromAnyState(t *testing.T) {
	m := newMachine(t, nil)
	s := &Session{ChatID: "chat-4"}

	step(t, m, s, "/start")
	step(t, m, s, "Moscow")
	step(t, m, s, "extended")
	require.Equal(t, StateSelectDate, s.State)

	reply := step(t, m, s, "Start over")
	assert.Equal(t, StateSelectCity, s.State)
	assert.Equal(t, model.Order{}, s.Draft)
	assert.Equal(t, availability.Cities, reply.Options)
}

func TestConfirmExpiredOrder(t *testing.T) {
	m := newMachine(t, nil)
	s := &Session{ChatID: "chat-5", State: StateReadyForPayment}
	s.Draft.OrderID = "vanished"

	reply := step(t, m, s, "confirm")
	assert.Contains(t, reply.Text, "expired")
	assert.False(t, reply.Done)
}

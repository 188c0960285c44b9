package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/morozlab/holiday-visit-booking/internal/availability"
	"github.com/morozlab/holiday-visit-booking/internal/booking"
	"github.com/morozlab/holiday-visit-booking/internal/model"
	"github.com/morozlab/holiday-visit-booking/internal/pricing"
	"github.com/morozlab/holiday-visit-booking/internal/repository"
)

// Reply is what the machine sends back to the customer after one message:
// the prompt text, the selectable options for the next step (rendered as
// keyboard buttons by the transport), and, once a draft is materialised,
// the pending order id.  Done marks the end of the conversation.
type Reply struct {
	Text    string   `json:"reply"`
	Options []string `json:"options,omitempty"`
	OrderID string   `json:"order_id,omitempty"`
	Done    bool     `json:"done,omitempty"`
}

// Machine implements the intake state machine of the booking session.  It
// is transport-agnostic: any surface that can deliver a (chat id, text)
// pair can drive it.  All per-conversation state lives in the Session
// value passed in; the machine itself is stateless and safe for
// concurrent use across sessions.
type Machine struct {
	Avail   *availability.Engine
	Rates   *pricing.Engine
	Booking *booking.Service
	Support *repository.SupportRepo // optional; links chat to order for support routing
	Now     func() time.Time
}

// NewMachine wires the machine to the engines and the booking service.
func NewMachine(avail *availability.Engine, rates *pricing.Engine, svc *booking.Service, support *repository.SupportRepo) *Machine {
	return &Machine{Avail: avail, Rates: rates, Booking: svc, Support: support, Now: time.Now}
}

const (
	optionConfirm = "Confirm order"
	optionRestart = "Start over"
)

// Advance feeds one customer message into the session and mutates it in
// place.  Invalid input re-prompts without changing state; "/start" (or
// "restart") resets the flow from any state.  The caller persists the
// session afterwards, or deletes it when Done is set.
func (m *Machine) Advance(ctx context.Context, s *Session, input string) (Reply, error) {
	input = strings.TrimSpace(input)
	if s.State == "" || isRestart(input) {
		s.State = StateSelectCity
		s.Draft = model.Order{}
		s.UpdatedAt = m.Now()
		return Reply{
			Text:    "Welcome! Father Frost and the Snow Maiden are taking bookings. Which city?",
			Options: availability.Cities,
		}, nil
	}
	s.UpdatedAt = m.Now()

	switch s.State {
	case StateSelectCity:
		return m.selectCity(s, input)
	case StateSelectTier:
		return m.selectTier(s, input)
	case StateSelectDate:
		return m.selectDate(s, input)
	case StateSelectTime:
		return m.selectTime(s, input)
	case StateCollectAddress:
		return m.collectAddress(s, input)
	case StateCollectChildren:
		return m.collectChildren(s, input)
	case StateCollectChildName:
		return m.collectChildName(s, input)
	case StateCollectPhone:
		return m.collectPhone(s, input)
	case StateCollectComments:
		return m.collectComments(s, input)
	case StateReadyForPayment:
		return m.readyForPayment(ctx, s, input)
	}
	// Unknown state in the store; start over rather than wedging the chat.
	s.State = StateSelectCity
	s.Draft = model.Order{}
	return Reply{Text: "Let's start from the beginning. Which city?", Options: availability.Cities}, nil
}

func isRestart(input string) bool {
	switch strings.ToLower(input) {
	case "/start", "start", "restart", optionRestartLower:
		return true
	}
	return false
}

var optionRestartLower = strings.ToLower(optionRestart)

func (m *Machine) selectCity(s *Session, input string) (Reply, error) {
	for _, city := range availability.Cities {
		if strings.EqualFold(input, city) {
			s.Draft.City = city
			s.State = StateSelectTier
			return Reply{
				Text:    fmt.Sprintf("You picked %s. Which program?", city),
				Options: tierOptions(),
			}, nil
		}
	}
	return Reply{Text: "Please choose one of the listed cities.", Options: availability.Cities}, nil
}

func (m *Machine) selectTier(s *Session, input string) (Reply, error) {
	tier, ok := model.ParseTier(input)
	if !ok {
		return Reply{Text: "Please choose one of the listed programs.", Options: tierOptions()}, nil
	}
	s.Draft.Tier = tier
	s.Draft.DurationMin = tier.DurationMinutes()
	s.State = StateSelectDate
	return Reply{
		Text:    "On which date should we come? You can also type a date like 24.12.2025.",
		Options: m.dateOptions(),
	}, nil
}

func (m *Machine) selectDate(s *Session, input string) (Reply, error) {
	if _, err := model.ParseVisitDate(input); err != nil {
		return Reply{
			Text:    "I couldn't read that date. Try 24.12.2025 or 24 December 2025.",
			Options: m.dateOptions(),
		}, nil
	}
	s.Draft.VisitDate = input
	s.State = StateSelectTime
	opts, err := m.slotOptions(s)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: "What time works for you?", Options: opts}, nil
}

func (m *Machine) selectTime(s *Session, input string) (Reply, error) {
	// Accept a bare "18:00" or a tapped keyboard option like
	// "18:00 — 8000 ₽ (12 left)".
	timeStr := strings.TrimSpace(strings.SplitN(input, " ", 2)[0])
	if _, err := model.ParseVisitTime(timeStr); err != nil {
		opts, oErr := m.slotOptions(s)
		if oErr != nil {
			return Reply{}, oErr
		}
		return Reply{Text: "Please pick a time like 18:00.", Options: opts}, nil
	}
	free, err := m.Avail.IsAvailable(s.Draft.VisitDate, timeStr, s.Draft.City)
	if err != nil {
		return Reply{}, err
	}
	if !free {
		// The slot is full: stay in this state and offer alternatives.
		next, err := m.Avail.FindNextSlots(s.Draft.VisitDate, s.Draft.City)
		if err != nil {
			return Reply{}, err
		}
		text := fmt.Sprintf("All pairs are booked for %s at %s.", s.Draft.VisitDate, timeStr)
		if len(next) > 0 {
			lines := make([]string, 0, len(next))
			for _, slot := range next {
				lines = append(lines, "• "+slot.String())
			}
			text += "\nNearest open slots:\n" + strings.Join(lines, "\n")
		} else {
			text += " No open slots in the next week; please try another date."
		}
		opts, oErr := m.slotOptions(s)
		if oErr != nil {
			return Reply{}, oErr
		}
		return Reply{Text: text, Options: opts}, nil
	}
	s.Draft.VisitTime = timeStr
	s.Draft.Price = m.Rates.Price(s.Draft.VisitDate, timeStr, s.Draft.Tier, m.Now())
	s.State = StateCollectAddress
	return Reply{Text: fmt.Sprintf("Booked for %s. The price is %d ₽.\nWhat is the full event address?", timeStr, s.Draft.Price)}, nil
}

func (m *Machine) collectAddress(s *Session, input string) (Reply, error) {
	if input == "" {
		return Reply{Text: "Please enter the full event address."}, nil
	}
	s.Draft.Address = input
	s.State = StateCollectChildren
	return Reply{Text: "How many children will be at the event? (for example: 15)"}, nil
}

func (m *Machine) collectChildren(s *Session, input string) (Reply, error) {
	n, err := strconv.Atoi(input)
	if err != nil || n < 0 {
		return Reply{Text: "Please enter a number (for example: 12)."}, nil
	}
	s.Draft.ChildCount = n
	s.State = StateCollectChildName
	return Reply{Text: "What is the main child's name? (for personalisation)"}, nil
}

func (m *Machine) collectChildName(s *Session, input string) (Reply, error) {
	if input == "" {
		return Reply{Text: "Please enter the child's name."}, nil
	}
	s.Draft.ChildName = input
	s.State = StateCollectPhone
	return Reply{Text: "Your contact phone, with country code (for example: +79991234567)?"}, nil
}

func (m *Machine) collectPhone(s *Session, input string) (Reply, error) {
	phone := strings.TrimSpace(input)
	if len(phone) < 10 || !(strings.HasPrefix(phone, "+7") || strings.HasPrefix(phone, "8")) {
		return Reply{Text: "That phone doesn't look right. Use the format +79991234567."}, nil
	}
	s.Draft.Phone = phone
	s.State = StateCollectComments
	return Reply{Text: "Any wishes for the visit? (a favourite song, a story…)\nType \"no\" to skip."}, nil
}

func (m *Machine) collectComments(s *Session, input string) (Reply, error) {
	comments := input
	switch strings.ToLower(input) {
	case "no", "none", model.CommentsNone, "":
		comments = model.CommentsNone
	}
	s.Draft.Comments = comments
	s.Draft.OrderedAt = m.Now().Format(model.TimestampLayout)
	s.Draft.Invitee = model.Invitee

	orderID, err := m.Booking.CreatePending(s.Draft)
	if err != nil {
		return Reply{}, err
	}
	s.Draft.OrderID = orderID
	if m.Support != nil {
		if err := m.Support.LinkChatOrder(s.ChatID, orderID); err != nil {
			return Reply{}, err
		}
	}
	s.State = StateReadyForPayment
	return Reply{
		Text:    m.summary(s.Draft),
		Options: []string{optionConfirm, optionRestart},
		OrderID: orderID,
	}, nil
}

func (m *Machine) readyForPayment(ctx context.Context, s *Session, input string) (Reply, error) {
	switch strings.ToLower(input) {
	case "confirm", strings.ToLower(optionConfirm):
		o, err := m.Booking.Confirm(ctx, s.Draft.OrderID)
		if err != nil {
			if err == repository.ErrOrderNotFound {
				return Reply{Text: "This order has expired. Send /start to book again."}, nil
			}
			return Reply{}, err
		}
		return Reply{
			Text:    fmt.Sprintf("🎉 Order %s is confirmed! We will call you shortly.", o.OrderID),
			OrderID: o.OrderID,
			Done:    true,
		}, nil
	}
	return Reply{
		Text:    "Ready when you are — confirm the order or start over.",
		Options: []string{optionConfirm, optionRestart},
		OrderID: s.Draft.OrderID,
	}, nil
}

// summary renders the pending order for the customer to check before
// paying.  Payment itself is a stub link; confirmation stands in for a
// successful payment callback.
func (m *Machine) summary(o model.Order) string {
	return fmt.Sprintf(
		"🎄 Your order is ready to pay!\n\n"+
			"Invitee: %s\nCity: %s\nDate: %s\nTime: %s\nProgram: %s\nPrice: %d ₽\n"+
			"Address: %s\nChildren: %d\nChild's name: %s\nPhone: %s\nWishes: %s\n\n"+
			"Pay here: https://pay.example.com/%s — then confirm below.",
		o.Invitee, o.City, o.VisitDate, o.VisitTime, o.Tier, o.Price,
		o.Address, o.ChildCount, o.ChildName, o.Phone, o.Comments, o.OrderID,
	)
}

func tierOptions() []string {
	opts := make([]string, 0, len(model.Tiers))
	for _, t := range model.Tiers {
		opts = append(opts, string(t))
	}
	return opts
}

// dateOptions offers the next 14 days, mirroring the reference keyboard.
func (m *Machine) dateOptions() []string {
	now := m.Now()
	opts := make([]string, 0, 14)
	for i := 0; i < 14; i++ {
		opts = append(opts, model.FormatVisitDate(now.AddDate(0, 0, i)))
	}
	return opts
}

// slotOptions renders the rate-annotated time keyboard for the draft's
// date, city and tier.
func (m *Machine) slotOptions(s *Session) ([]string, error) {
	slots, err := m.Avail.ListSlots(s.Draft.VisitDate, s.Draft.City, s.Draft.Tier, m.Now())
	if err != nil {
		return nil, err
	}
	opts := make([]string, 0, len(slots))
	for _, sl := range slots {
		if sl.Available {
			opts = append(opts, fmt.Sprintf("%s — %d ₽ (%d left)", sl.Time, sl.Price, sl.AvailableCount))
		} else {
			opts = append(opts, fmt.Sprintf("%s — %d ₽ (sold out)", sl.Time, sl.Price))
		}
	}
	return opts, nil
}

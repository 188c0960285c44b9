// Package booking coordinates the order lifecycle: materialising pending
// orders and promoting them into the durable order store on confirmation.
package booking

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/morozlab/holiday-visit-booking/internal/model"
	"github.com/morozlab/holiday-visit-booking/internal/queue"
	"github.com/morozlab/holiday-visit-booking/internal/repository"
)

// Notifier publishes an event after an order is confirmed.  Publishing is
// best-effort: failures are logged and never fail the confirmation.
type Notifier func(ctx context.Context, ev queue.OrderConfirmedEvent) error

// Service owns the pending-to-confirmed order transition.  Both the chat
// session and the website API go through it, so the two intake surfaces
// share one backing store and one set of rules.
type Service struct {
	Orders  *repository.OrderRepo
	Pending *repository.PendingOrderRepo
	Notify  Notifier // optional
	Now     func() time.Time
}

// NewService builds a Service.  notify may be nil when no broker is
// configured.
func NewService(orders *repository.OrderRepo, pending *repository.PendingOrderRepo, notify Notifier) *Service {
	return &Service{Orders: orders, Pending: pending, Notify: notify, Now: time.Now}
}

// CreatePending assigns the draft a fresh order id and timestamp and
// stores it in the pending store, returning the id.  The draft is held
// there until confirmation; abandoned drafts are only removed by the
// optional janitor.
func (s *Service) CreatePending(o model.Order) (string, error) {
	o.OrderID = uuid.NewString()
	if o.OrderedAt == "" {
		o.OrderedAt = s.Now().Format(model.TimestampLayout)
	}
	if o.Invitee == "" {
		o.Invitee = model.Invitee
	}
	if o.DurationMin == 0 && o.Tier != "" {
		o.DurationMin = o.Tier.DurationMinutes()
	}
	if err := s.Pending.Set(o); err != nil {
		return "", err
	}
	return o.OrderID, nil
}

// Confirm moves the pending order with the given id into the order store
// verbatim — no re-validation, by contract — and removes it from the
// pending store.  It returns repository.ErrOrderNotFound when the id has
// no pending record.  On success the confirmation event is published in
// the background.
func (s *Service) Confirm(ctx context.Context, orderID string) (model.Order, error) {
	o, err := s.Pending.Get(orderID)
	if err != nil {
		return model.Order{}, err
	}
	if err := s.Orders.Append(o); err != nil {
		return model.Order{}, err
	}
	if err := s.Pending.Delete(orderID); err != nil {
		return model.Order{}, err
	}
	if s.Notify != nil {
		ev := queue.OrderConfirmedEvent{
			OrderID:     o.OrderID,
			City:        o.City,
			VisitDate:   o.VisitDate,
			VisitTime:   o.VisitTime,
			Tier:        string(o.Tier),
			Price:       o.Price,
			ChildName:   o.ChildName,
			Phone:       o.Phone,
			ConfirmedAt: s.Now().UTC().Format(time.RFC3339),
		}
		go func() {
			if err := s.Notify(context.WithoutCancel(ctx), ev); err != nil {
				log.Printf("booking: publish confirmation for %s failed: %v", o.OrderID, err)
			}
		}()
	}
	return o, nil
}

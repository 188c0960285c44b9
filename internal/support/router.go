// Package support relays free-text messages between customers who have an
// order and the pool of human operators.  Routing state (who handled
// which chat last) is persisted through the support repository; the
// messages themselves are short-lived and held in per-recipient inboxes
// until fetched.
package support

import (
	"sync"
	"time"

	"github.com/morozlab/holiday-visit-booking/internal/repository"
)

// Message is one relayed chat line.
type Message struct {
	From   string    `json:"from"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

// Router links customer chats to orders and shuttles messages to and from
// operators.  There are no threads or tickets: an operator's reply always
// goes to the chat they most recently received a message from, via the
// persisted last-contact pointer.
type Router struct {
	repo *repository.SupportRepo
	now  func() time.Time

	mu            sync.Mutex
	operatorInbox map[string][]Message // operator id -> undelivered messages
	customerInbox map[string][]Message // chat id -> undelivered replies
	nextOperator  int                  // round-robin cursor over the pool
}

// NewRouter builds a Router over the persisted routing state.
func NewRouter(repo *repository.SupportRepo) *Router {
	return &Router{
		repo:          repo,
		now:           time.Now,
		operatorInbox: make(map[string][]Message),
		customerInbox: make(map[string][]Message),
	}
}

// FromCustomer accepts a message from a customer chat and queues it for
// an operator, returning the operator it was routed to.  When orderID is
// non-empty the chat is (re)linked to that order; otherwise the chat must
// already be linked, or repository.ErrChatNotLinked is returned.
// Operators are assigned round-robin across the pool and the assignment
// is recorded as the operator's last contact.
func (r *Router) FromCustomer(chatID, orderID, text string) (string, error) {
	if orderID != "" {
		if err := r.repo.LinkChatOrder(chatID, orderID); err != nil {
			return "", err
		}
	} else if _, err := r.repo.OrderForChat(chatID); err != nil {
		return "", err
	}
	ops, err := r.repo.Operators()
	if err != nil {
		return "", err
	}
	if len(ops) == 0 {
		return "", repository.ErrNoOperators
	}

	r.mu.Lock()
	operator := ops[r.nextOperator%len(ops)]
	r.nextOperator++
	r.operatorInbox[operator] = append(r.operatorInbox[operator], Message{
		From:   chatID,
		Text:   text,
		SentAt: r.now(),
	})
	r.mu.Unlock()

	if err := r.repo.SetLastContact(operator, chatID); err != nil {
		return "", err
	}
	return operator, nil
}

// FromOperator accepts a reply from an operator and queues it for the
// chat the operator last handled, returning that chat id.  An operator
// who has not received any message yet has no destination, which is
// reported as repository.ErrChatNotLinked.
func (r *Router) FromOperator(operatorID, text string) (string, error) {
	chatID, ok, err := r.repo.LastContact(operatorID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", repository.ErrChatNotLinked
	}
	r.mu.Lock()
	r.customerInbox[chatID] = append(r.customerInbox[chatID], Message{
		From:   operatorID,
		Text:   text,
		SentAt: r.now(),
	})
	r.mu.Unlock()
	return chatID, nil
}

// OperatorInbox drains and returns the undelivered messages for an
// operator, oldest first.
func (r *Router) OperatorInbox(operatorID string) []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := r.operatorInbox[operatorID]
	delete(r.operatorInbox, operatorID)
	return msgs
}

// CustomerMessages drains and returns the undelivered operator replies
// for a chat, oldest first.
func (r *Router) CustomerMessages(chatID string) []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := r.customerInbox[chatID]
	delete(r.customerInbox, chatID)
	return msgs
}

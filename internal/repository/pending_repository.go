package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/morozlab/holiday-visit-booking/internal/model"
)

// PendingOrderRepo stores in-flight orders awaiting confirmation, keyed by
// their opaque order id.  The whole map is kept in one JSON file that is
// re-read and rewritten in full on each mutation; a mutex makes every such
// cycle a critical section.
type PendingOrderRepo struct {
	mu   sync.Mutex
	path string
}

// NewPendingOrderRepo opens the pending store at path, creating an empty
// file when none exists.
func NewPendingOrderRepo(path string) (*PendingOrderRepo, error) {
	r := &PendingOrderRepo{path: path}
	if _, err := os.Stat(path); err == nil {
		return r, nil
	}
	if err := r.write(map[string]model.Order{}); err != nil {
		return nil, err
	}
	return r, nil
}

// Set stores or replaces a pending order under its order id.
func (r *PendingOrderRepo) Set(o model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	orders, err := r.read()
	if err != nil {
		return err
	}
	orders[o.OrderID] = o
	return r.write(orders)
}

// Get returns the pending order with the given id, or ErrOrderNotFound.
func (r *PendingOrderRepo) Get(orderID string) (model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	orders, err := r.read()
	if err != nil {
		return model.Order{}, err
	}
	o, ok := orders[orderID]
	if !ok {
		return model.Order{}, ErrOrderNotFound
	}
	return o, nil
}

// Delete removes the pending order with the given id.  Deleting an id
// that is absent is not an error; confirmation races resolve in favour of
// whichever caller got there first.
func (r *PendingOrderRepo) Delete(orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	orders, err := r.read()
	if err != nil {
		return err
	}
	delete(orders, orderID)
	return r.write(orders)
}

// All returns a snapshot of every pending order.
func (r *PendingOrderRepo) All() (map[string]model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read()
}

// DeleteOlderThan removes pending orders whose OrderedAt timestamp is
// further in the past than ttl, returning how many were purged.  Records
// with an unparsable timestamp are left alone.  Used by the optional
// janitor; when the janitor is disabled, abandoned pending orders
// accumulate indefinitely, matching the reference behaviour.
func (r *PendingOrderRepo) DeleteOlderThan(ttl time.Duration, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	orders, err := r.read()
	if err != nil {
		return 0, err
	}
	purged := 0
	for id, o := range orders {
		at, err := time.Parse(model.TimestampLayout, o.OrderedAt)
		if err != nil {
			continue
		}
		if now.Sub(at) > ttl {
			delete(orders, id)
			purged++
		}
	}
	if purged == 0 {
		return 0, nil
	}
	return purged, r.write(orders)
}

func (r *PendingOrderRepo) read() (map[string]model.Order, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read pending store: %w", err)
	}
	orders := map[string]model.Order{}
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("decode pending store: %w", err)
	}
	return orders, nil
}

func (r *PendingOrderRepo) write(orders map[string]model.Order) error {
	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return fmt.Errorf("encode pending store: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write pending store: %w", err)
	}
	return nil
}

// Package session owns the conversational booking flow: the per-chat
// session state, the store it lives in, and the state machine that
// advances a session one customer message at a time.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/morozlab/holiday-visit-booking/internal/model"
)

// State names the current step of the intake flow.  States are strictly
// ordered; the machine never skips and never moves backwards except on an
// explicit restart.
type State string

const (
	StateSelectCity       State = "select_city"
	StateSelectTier       State = "select_tier"
	StateSelectDate       State = "select_date"
	StateSelectTime       State = "select_time"
	StateCollectAddress   State = "collect_address"
	StateCollectChildren  State = "collect_child_count"
	StateCollectChildName State = "collect_child_name"
	StateCollectPhone     State = "collect_phone"
	StateCollectComments  State = "collect_comments"
	StateReadyForPayment  State = "ready_for_payment"
)

// Session is the explicit per-chat state of one booking conversation.
// It is keyed by the customer's chat id and passed through every handler;
// there is no ambient per-chat memory anywhere else.
type Session struct {
	ChatID    string      `json:"chat_id"`
	State     State       `json:"state"`
	Draft     model.Order `json:"draft"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Store persists sessions between messages.  Each chat owns exactly one
// session; implementations serialise access per key.
type Store interface {
	Get(ctx context.Context, chatID string) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Delete(ctx context.Context, chatID string) error
}

// NewStore returns a Redis-backed store when a client is available and
// falls back to the in-process store otherwise, so the chat surface keeps
// working when Redis is down.
func NewStore(rdb *redis.Client) Store {
	if rdb != nil {
		return &RedisStore{rdb: rdb, ttl: 24 * time.Hour}
	}
	return NewMemoryStore()
}

// MemoryStore keeps sessions in a mutex-guarded map.  Used in tests and
// as the degraded mode when Redis is unreachable.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

// Get returns the chat's session or nil when none exists.
func (m *MemoryStore) Get(_ context.Context, chatID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[chatID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

// Put stores the session under its chat id.
func (m *MemoryStore) Put(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.sessions[s.ChatID] = &cp
	return nil
}

// Delete drops the chat's session.
func (m *MemoryStore) Delete(_ context.Context, chatID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, chatID)
	return nil
}

// RedisStore keeps sessions as JSON values with a sliding TTL, so an
// abandoned conversation eventually ages out of Redis even though no
// business-level expiry exists.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func sessionKey(chatID string) string { return "session:" + chatID }

// Get returns the chat's session or nil when none exists.
func (r *RedisStore) Get(ctx context.Context, chatID string) (*Session, error) {
	data, err := r.rdb.Get(ctx, sessionKey(chatID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	return &s, nil
}

// Put stores the session and refreshes its TTL.
func (r *RedisStore) Put(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := r.rdb.Set(ctx, sessionKey(s.ChatID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("session put: %w", err)
	}
	return nil
}

// Delete drops the chat's session.
func (r *RedisStore) Delete(ctx context.Context, chatID string) error {
	if err := r.rdb.Del(ctx, sessionKey(chatID)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

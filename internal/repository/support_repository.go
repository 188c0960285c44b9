package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// SupportRepo persists the support-routing state: the pool of operator
// identities, the link from a customer chat to its order, and each
// operator's last-contacted chat.  Every value lives in its own small JSON
// file under the data directory, rewritten in full on each mutation under
// a shared mutex.
type SupportRepo struct {
	mu            sync.Mutex
	operatorsPath string
	chatsPath     string
	contactsPath  string
}

// NewSupportRepo opens (and if necessary seeds) the support files under
// dir.  The operator pool file is seeded with the provided identities only
// when it does not exist yet, so a deployment can edit the file by hand.
func NewSupportRepo(dir string, seedOperators []string) (*SupportRepo, error) {
	r := &SupportRepo{
		operatorsPath: filepath.Join(dir, "operators.json"),
		chatsPath:     filepath.Join(dir, "chat_orders.json"),
		contactsPath:  filepath.Join(dir, "operator_contacts.json"),
	}
	if _, err := os.Stat(r.operatorsPath); err != nil {
		if seedOperators == nil {
			seedOperators = []string{}
		}
		if err := writeJSON(r.operatorsPath, seedOperators); err != nil {
			return nil, err
		}
	}
	for _, p := range []string{r.chatsPath, r.contactsPath} {
		if _, err := os.Stat(p); err != nil {
			if err := writeJSON(p, map[string]string{}); err != nil {
				return nil, err
			}
		}
	}
	return r, nil
}

// Operators returns the configured operator pool in file order.
func (r *SupportRepo) Operators() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ops []string
	if err := readJSON(r.operatorsPath, &ops); err != nil {
		return nil, err
	}
	return ops, nil
}

// IsOperator reports whether id is part of the operator pool.
func (r *SupportRepo) IsOperator(id string) (bool, error) {
	ops, err := r.Operators()
	if err != nil {
		return false, err
	}
	for _, op := range ops {
		if op == id {
			return true, nil
		}
	}
	return false, nil
}

// LinkChatOrder records that a customer chat belongs to an order.
func (r *SupportRepo) LinkChatOrder(chatID, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	links := map[string]string{}
	if err := readJSON(r.chatsPath, &links); err != nil {
		return err
	}
	links[chatID] = orderID
	return writeJSON(r.chatsPath, links)
}

// OrderForChat returns the order linked to a chat, or ErrChatNotLinked.
func (r *SupportRepo) OrderForChat(chatID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	links := map[string]string{}
	if err := readJSON(r.chatsPath, &links); err != nil {
		return "", err
	}
	orderID, ok := links[chatID]
	if !ok {
		return "", ErrChatNotLinked
	}
	return orderID, nil
}

// SetLastContact records the chat an operator most recently handled; a
// later reply from that operator is routed back to this chat.
func (r *SupportRepo) SetLastContact(operatorID, chatID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	contacts := map[string]string{}
	if err := readJSON(r.contactsPath, &contacts); err != nil {
		return err
	}
	contacts[operatorID] = chatID
	return writeJSON(r.contactsPath, contacts)
}

// LastContact returns the chat the operator last handled; ok is false
// when the operator has not handled any chat yet.
func (r *SupportRepo) LastContact(operatorID string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	contacts := map[string]string{}
	if err := readJSON(r.contactsPath, &contacts); err != nil {
		return "", false, err
	}
	chatID, ok := contacts[operatorID]
	return chatID, ok, nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

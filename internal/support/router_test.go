package support

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morozlab/holiday-visit-booking/internal/repository"
)

func newRouter(t *testing.T, operators []string) *Router {
	t.Helper()
	repo, err := repository.NewSupportRepo(t.TempDir(), operators)
	require.NoError(t, err)
	return NewRouter(repo)
}

func TestFromCustomerRoundRobin(t *testing.T) {
	r := newRouter(t, []string{"alice", "bob"})

	op1, err := r.FromCustomer("chat-1", "ord-1", "hello")
	require.NoError(t, err)
	op2, err := r.FromCustomer("chat-2", "ord-2", "hi there")
	require.NoError(t, err)
	op3, err := r.FromCustomer("chat-3", "ord-3", "hey")
	require.NoError(t, err)

	assert.Equal(t, "alice", op1)
	assert.Equal(t, "bob", op2)
	assert.Equal(t, "alice", op3, "assignment wraps around the pool")

	inbox := r.OperatorInbox("alice")
	require.Len(t, inbox, 2)
	assert.Equal(t, "chat-1", inbox[0].From)
	assert.Equal(t, "chat-3", inbox[1].From)
	assert.Empty(t, r.OperatorInbox("alice"), "inbox drains on read")
}

func TestFromCustomerRequiresLink(t *testing.T) {
	r := newRouter(t, []string{"alice"})

	_, err := r.FromCustomer("chat-1", "", "am I through?")
	assert.ErrorIs(t, err, repository.ErrChatNotLinked)

	// Once linked via the first message, later messages may omit the order.
	_, err = r.FromCustomer("chat-1", "ord-1", "first message")
	require.NoError(t, err)
	_, err = r.FromCustomer("chat-1", "", "follow-up")
	assert.NoError(t, err)
}

func TestFromCustomerEmptyPool(t *testing.T) {
	r := newRouter(t, []string{})
	_, err := r.FromCustomer("chat-1", "ord-1", "anyone?")
	assert.ErrorIs(t, err, repository.ErrNoOperators)
}

func TestFromOperatorRepliesToLastContact(t *testing.T) {
	r := newRouter(t, []string{"alice"})

	// No customer yet: the operator has nowhere to send a reply.
	_, err := r.FromOperator("alice", "hello?")
	assert.ErrorIs(t, err, repository.ErrChatNotLinked)

	_, err = r.FromCustomer("chat-1", "ord-1", "where is my order?")
	require.NoError(t, err)
	_, err = r.FromCustomer("chat-2", "ord-2", "question")
	require.NoError(t, err)

	// alice handled chat-2 last, so her reply lands there.
	chatID, err := r.FromOperator("alice", "on its way")
	require.NoError(t, err)
	assert.Equal(t, "chat-2", chatID)

	msgs := r.CustomerMessages("chat-2")
	require.Len(t, msgs, 1)
	assert.Equal(t, "alice", msgs[0].From)
	assert.Equal(t, "on its way", msgs[0].Text)
	assert.Empty(t, r.CustomerMessages("chat-2"))
}

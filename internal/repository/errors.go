package repository

import "errors"

// Sentinel errors returned by the repositories.  Handlers compare against
// these with errors.Is to pick the right HTTP status.
var (
	// ErrOrderNotFound is returned when a pending order id has no record.
	ErrOrderNotFound = errors.New("order not found")
	// ErrChatNotLinked is returned when a chat has no associated order.
	ErrChatNotLinked = errors.New("chat is not linked to an order")
	// ErrNoOperators is returned when the operator pool file is empty.
	ErrNoOperators = errors.New("no operators configured")
)

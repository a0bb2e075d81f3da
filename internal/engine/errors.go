package engine

import "errors"

// Failure taxonomy of the order path. All of these are recoverable at the
// request boundary; handlers map them onto 4xx responses.
var (
	ErrInvalidArgument      = errors.New("invalid order argument")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInsufficientPosition = errors.New("insufficient position")
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderNotPending      = errors.New("only pending orders can be cancelled")
	ErrPriceUnavailable     = errors.New("price unavailable")
)

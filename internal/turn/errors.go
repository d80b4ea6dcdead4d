package turn

import "errors"

var (
	// ErrBusy is returned while another round-trip is outstanding.
	ErrBusy              = errors.New("another request is in progress")
	ErrIllegalTransition = errors.New("action not allowed in the current state")
	ErrNoSession         = errors.New("no game in progress")
	ErrGameOver          = errors.New("game is over")

	ErrTargetOutOfRange   = errors.New("enemy index out of range")
	ErrCardOutOfRange     = errors.New("card index out of range")
	ErrSpadeKingProtected = errors.New("the spade king cannot be discarded")

	// ErrUnsolvable means the hand cannot reach the chosen enemy. It is a
	// normal outcome that returns the turn to Idle.
	ErrUnsolvable = errors.New("enemy cannot be defeated with the current hand")
	// ErrInvalidExpression wraps the reason the server gave for valid=false.
	ErrInvalidExpression = errors.New("expression rejected")
	ErrEmptyExpression   = errors.New("expression is empty")
	// ErrSuperseded is returned when a read answered after Cancel; the
	// answer is dropped.
	ErrSuperseded = errors.New("request superseded by cancel")
	// ErrInvalidSnapshot is returned when the server sent a snapshot that
	// breaks the session invariants. It is not applied.
	ErrInvalidSnapshot = errors.New("server returned an inconsistent snapshot")
)

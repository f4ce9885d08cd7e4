package holdem

import "fmt"

// Kind identifies a protocol violation surfaced at the engine boundary
// (spec.md §6/§7 category 1: the client did something disallowed given the
// current state; the engine state is left unchanged).
type Kind string

const (
	NotSeated         Kind = "NotSeated"
	NotStarted        Kind = "NotStarted"
	NotYourTurn       Kind = "NotYourTurn"
	AlreadyFolded     Kind = "AlreadyFolded"
	CannotCheck       Kind = "CannotCheck"
	InsufficientChips Kind = "InsufficientChips"
	BelowMinRaise     Kind = "BelowMinRaise"
	UnknownAction     Kind = "UnknownAction"
	InvalidAmount     Kind = "InvalidAmount"
	NotReady          Kind = "NotReady"
	RoomFull          Kind = "RoomFull"
	BuyInInProgress   Kind = "BuyInInProgress"
	MinPlayers        Kind = "MinPlayers"
)

// Error is a typed protocol violation. Use errors.As to recover the Kind.
type Error struct {
	Kind Kind
	msg  string
}

func (e *Error) Error() string {
	if e.msg == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

func newError(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, msg: fmt.Sprintf(format, args...)}
}

// NewError builds a typed protocol-violation error, for callers outside
// this package (notably the room package) that need to surface the same
// Kind vocabulary.
func NewError(k Kind, format string, args ...any) *Error {
	return newError(k, format, args...)
}

// InvalidStateError marks an internal invariant violation (spec.md §7
// category 2): the engine detected a contradiction rather than a client
// mistake. Callers should abort the hand rather than attempt recovery.
type InvalidStateError string

func (e InvalidStateError) Error() string { return "invalid engine state: " + string(e) }

func errInvalidState(format string, args ...any) error {
	return InvalidStateError(fmt.Sprintf(format, args...))
}

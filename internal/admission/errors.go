package admission

import (
	"errors"
	"fmt"
)

// Kind enumerates why the engine rejected an operation.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindMalformed
	KindUnknownFlight
	KindUnknownPassenger
	KindDuplicatePassenger
	KindInvalidClass
	KindInvalidBoost
	KindInvalidQuota
	KindFlightClosed
)

func (k Kind) String() string {
	switch k {
	case KindMalformed:
		return "malformed directive"
	case KindUnknownFlight:
		return "unknown flight"
	case KindUnknownPassenger:
		return "unknown passenger"
	case KindDuplicatePassenger:
		return "duplicate passenger"
	case KindInvalidClass:
		return "invalid seat class"
	case KindInvalidBoost:
		return "invalid priority boost"
	case KindInvalidQuota:
		return "invalid quota"
	case KindFlightClosed:
		return "flight closed"
	default:
		return "unknown error"
	}
}

// Error is returned by every failing engine operation. A rejected operation
// leaves the session unchanged.
type Error struct {
	Kind    Kind
	Subject string
}

func (e *Error) Error() string {
	if e.Subject == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Subject)
}

// Is matches any *Error of the same kind, so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrMalformed          = &Error{Kind: KindMalformed}
	ErrUnknownFlight      = &Error{Kind: KindUnknownFlight}
	ErrUnknownPassenger   = &Error{Kind: KindUnknownPassenger}
	ErrDuplicatePassenger = &Error{Kind: KindDuplicatePassenger}
	ErrInvalidClass       = &Error{Kind: KindInvalidClass}
	ErrInvalidBoost       = &Error{Kind: KindInvalidBoost}
	ErrInvalidQuota       = &Error{Kind: KindInvalidQuota}
	ErrFlightClosed       = &Error{Kind: KindFlightClosed}
)

func newError(kind Kind, subject string) error {
	return &Error{Kind: kind, Subject: subject}
}

// KindOf extracts the failure kind from err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

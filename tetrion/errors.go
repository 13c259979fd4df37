package tetrion

// Kind distinguishes the engine's typed failures. Only BlockOut and
// LockOut are ever surfaced past the driver as game-over; the rest are
// ordinary denials a caller is expected to swallow.
type Kind int

const (
	KindInvalidPlacement Kind = iota
	KindCannotMove
	KindCannotRotate
	KindCannotHold
	KindBlockOut
	KindLockOut
)

func (k Kind) String() string {
	switch k {
	case KindInvalidPlacement:
		return "invalid placement"
	case KindCannotMove:
		return "cannot move"
	case KindCannotRotate:
		return "cannot rotate"
	case KindCannotHold:
		return "cannot hold"
	case KindBlockOut:
		return "block out"
	case KindLockOut:
		return "lock out"
	default:
		return "unknown"
	}
}

// RuleError is the engine's single error type; callers match on Kind
// (directly, or with errors.Is against the sentinels below).
type RuleError struct {
	Kind Kind
}

func (e *RuleError) Error() string { return "tetrion: " + e.Kind.String() }

// Sentinels, one per Kind. The engine always returns these exact
// pointers, so plain == or errors.Is both work without wrapping.
var (
	ErrInvalidPlacement = &RuleError{KindInvalidPlacement}
	ErrCannotMove       = &RuleError{KindCannotMove}
	ErrCannotRotate     = &RuleError{KindCannotRotate}
	ErrCannotHold       = &RuleError{KindCannotHold}
	ErrBlockOut         = &RuleError{KindBlockOut}
	ErrLockOut          = &RuleError{KindLockOut}
)

// IsGameOver reports whether an error returned by a Tetrion operation
// is one of the two terminal kinds.
func IsGameOver(err error) bool {
	re, ok := err.(*RuleError)
	return ok && (re.Kind == KindBlockOut || re.Kind == KindLockOut)
}

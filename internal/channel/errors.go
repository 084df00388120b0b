package channel

import "errors"

// Result codes reported through Result.Error.
const (
	CodeIllegalArgument = "illegal_argument"
	CodeNullArgument    = "null_argument"
	CodeIllegalState    = "illegal_state"
	CodeError           = "error"
)

var (
	// ErrIllegalArgument marks an argument outside the accepted contract.
	ErrIllegalArgument = errors.New("illegal argument")
	// ErrNullArgument marks a missing required argument.
	ErrNullArgument = errors.New("required argument is null")
	// ErrIllegalState marks a call that is not valid in the current state.
	ErrIllegalState = errors.New("illegal state")
)

// CodeFor maps an error onto its result code.
func CodeFor(err error) string {
	switch {
	case errors.Is(err, ErrIllegalArgument):
		return CodeIllegalArgument
	case errors.Is(err, ErrNullArgument):
		return CodeNullArgument
	case errors.Is(err, ErrIllegalState):
		return CodeIllegalState
	default:
		return CodeError
	}
}

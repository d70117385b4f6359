package lr

import (
	"fmt"
	"strings"

	"github.com/ctlr-go/ctlr"
)

// Kind identifies one of the error categories the core defines: grammar
// intake, preprocessing, table construction and the parse driver all
// surface values of this taxonomy (see Error).
type Kind int

const (
	// UnknownSymbol: an identifier was referenced (as a rule's RHS symbol,
	// or at parse time as a token's symbol id) that was never declared.
	UnknownSymbol Kind = iota
	// DuplicatedSymbolID: two symbol declarations share an identifier.
	DuplicatedSymbolID
	// UnknownRule: a rule id was out of range. Always an internal error.
	UnknownRule
	// UnexpectedSymbol: a token's symbol id has no ACTION in the current
	// state, or a reducer's output symbol id did not match the rule's LHS.
	UnexpectedSymbol
	// UnexpectedEndOfStream: the token source was exhausted mid-parse.
	UnexpectedEndOfStream
	// ShiftReduceConflict: the grammar is not LR(k) for the requested k.
	ShiftReduceConflict
	// UnsupportedAlgorithm: a Mode outside of {LR0, LR1} was requested.
	UnsupportedAlgorithm
	// Custom: a user-domain failure raised by a reducer, propagated verbatim.
	Custom
)

func (k Kind) String() string {
	switch k {
	case UnknownSymbol:
		return "UnknownSymbol"
	case DuplicatedSymbolID:
		return "DuplicatedSymbolId"
	case UnknownRule:
		return "UnknownRule"
	case UnexpectedSymbol:
		return "UnexpectedSymbol"
	case UnexpectedEndOfStream:
		return "UnexpectedEndOfStream"
	case ShiftReduceConflict:
		return "ShiftReduceConflict"
	case UnsupportedAlgorithm:
		return "UnsupportedAlgorithm"
	case Custom:
		return "Custom"
	}
	return "Unknown"
}

// Error is the single error type surfaced by this module. It carries an
// optional source Position (always zero for build-time errors; populated
// by the driver from the offending token when available) plus kind-specific
// fields.
type Error struct {
	Kind     Kind
	Message  string
	Pos      ctlr.Position
	Got      string   // UnexpectedSymbol
	Expected []string // UnexpectedSymbol
	State    int      // ShiftReduceConflict
	OnSymbol string   // ShiftReduceConflict
	Actions  []Action // ShiftReduceConflict
	Inner    error    // Custom
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if !e.Pos.IsZero() {
		fmt.Fprintf(&b, " at %s", e.Pos)
	}
	switch e.Kind {
	case UnexpectedSymbol:
		fmt.Fprintf(&b, ": got %q, expecting %v", e.Got, e.Expected)
	case ShiftReduceConflict:
		fmt.Fprintf(&b, ": state %d, symbol %q, actions %v", e.State, e.OnSymbol, e.Actions)
	case Custom:
		fmt.Fprintf(&b, ": %v", e.Inner)
	default:
		if e.Message != "" {
			fmt.Fprintf(&b, ": %s", e.Message)
		}
	}
	return b.String()
}

// Unwrap exposes the wrapped user error for Custom, so callers can use
// errors.As/errors.Is against their own domain error types.
func (e *Error) Unwrap() error { return e.Inner }

func errUnknownSymbol(id string) *Error {
	return &Error{Kind: UnknownSymbol, Message: fmt.Sprintf("%q is not a declared symbol", id)}
}

func errDuplicatedSymbol(id string) *Error {
	return &Error{Kind: DuplicatedSymbolID, Message: fmt.Sprintf("%q declared more than once", id)}
}

func errUnknownRule(id int) *Error {
	return &Error{Kind: UnknownRule, Message: fmt.Sprintf("rule id %d out of range", id)}
}

func errUnsupportedAlgorithm(m Mode) *Error {
	return &Error{Kind: UnsupportedAlgorithm, Message: fmt.Sprintf("mode %v not in {LR0, LR1}", m)}
}

package pietree

import (
	"errors"
	"fmt"

	"github.com/halfpie/pietree/date"
)

// StructuralCode classifies structural errors returned by tree mutations.
type StructuralCode int

const (
	// NotFound means the operation referenced an id that does not resolve
	// to any node in the tree.
	NotFound StructuralCode = iota
	// InvalidTarget means the operation targeted a Position as if it were
	// an Allocation (e.g. adding a child under a holding).
	InvalidTarget
)

// StructuralError is returned to the immediate caller of a mutation
// operation. It never aborts valuation: reads are total functions.
type StructuralError struct {
	Code StructuralCode
	ID   string
}

func (e *StructuralError) Error() string {
	switch e.Code {
	case NotFound:
		return fmt.Sprintf("no node with id %q", e.ID)
	case InvalidTarget:
		return fmt.Sprintf("node %q is a position and cannot have children", e.ID)
	default:
		return fmt.Sprintf("structural error on node %q", e.ID)
	}
}

// IsNotFound reports whether err is a StructuralError with code NotFound.
func IsNotFound(err error) bool {
	var se *StructuralError
	return errors.As(err, &se) && se.Code == NotFound
}

// WarningCode classifies accounting anomalies. They are computed through to
// a flagged result rather than raised, so the rest of the portfolio still
// renders.
type WarningCode int

const (
	// Oversold flags a sell transaction executed while no shares were
	// held; the cost basis is left untouched in that case.
	Oversold WarningCode = iota
	// NegativeShares flags a position whose sells exceed its buys, a
	// data-entry error surfaced to the caller, not silently corrected.
	NegativeShares
)

func (c WarningCode) String() string {
	switch c {
	case Oversold:
		return "oversold"
	case NegativeShares:
		return "negative-shares"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal data-integrity flag attached to an accounting result.
type Warning struct {
	Code   WarningCode
	Symbol string
	Date   date.Date
}

func (w Warning) String() string {
	if w.Date.IsZero() {
		return fmt.Sprintf("%s: %s", w.Symbol, w.Code)
	}
	return fmt.Sprintf("%s: %s on %s", w.Symbol, w.Code, w.Date)
}

// SymbolError records a per-symbol fetch failure. Failures are isolated:
// the symbol contributes no observations and the reconstruction proceeds.
type SymbolError struct {
	Symbol string
	Err    error
}

func (e SymbolError) Error() string { return fmt.Sprintf("%s: %v", e.Symbol, e.Err) }
func (e SymbolError) Unwrap() error { return e.Err }

// ErrNoData is reported when a reconstruction was requested for a non-empty
// set of symbols and not a single one produced an observation. It lets the
// caller distinguish "empty portfolio" from "total fetch failure".
var ErrNoData = errors.New("no usable price data for any requested symbol")

package earlgrey

import (
	"fmt"

	"github.com/earlgrey-dsl/earlgrey/chart"
	"github.com/earlgrey-dsl/earlgrey/deriv"
	"github.com/earlgrey-dsl/earlgrey/diag"
	"github.com/earlgrey-dsl/earlgrey/grammar"
)

// GrammarError wraps a grammar.GrammarError surfaced while building an
// Engine: the supplied rules contain a nullable-cycle (§4.2).
type GrammarError struct {
	Cause *grammar.GrammarError
}

func (e *GrammarError) Error() string { return "earlgrey: " + e.Cause.Error() }
func (e *GrammarError) Unwrap() error { return e.Cause }

// ParseError reports that Parse's input was not recognized by the grammar:
// Detail is the structured failure report built by package diag (§4.6, §7).
type ParseError struct {
	Detail *diag.Unrecognized
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("earlgrey: parse error: %s", e.Detail.Error())
}
func (e *ParseError) Unwrap() error { return e.Detail }

// ResourceExhaustedError reports that recognition aborted after exceeding
// the engine's configured chart-item budget (§5, supplemented).
type ResourceExhaustedError struct {
	Cause *chart.ResourceExhaustedError
}

func (e *ResourceExhaustedError) Error() string { return "earlgrey: " + e.Cause.Error() }
func (e *ResourceExhaustedError) Unwrap() error { return e.Cause }

// InternalError wraps an invariant violation raised while reconstructing a
// derivation tree from an accepted chart — a recognizer/reconstructor
// disagreement that should never happen for a correct engine (§7).
type InternalError struct {
	Cause *deriv.BuildTreeBug
}

func (e *InternalError) Error() string { return "earlgrey: internal error: " + e.Cause.Error() }
func (e *InternalError) Unwrap() error { return e.Cause }

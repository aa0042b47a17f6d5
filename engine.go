package earlgrey

import (
	"context"

	"github.com/google/uuid"
	"github.com/npillmayer/schuko/tracing"

	"github.com/earlgrey-dsl/earlgrey/chart"
	"github.com/earlgrey-dsl/earlgrey/deriv"
	"github.com/earlgrey-dsl/earlgrey/diag"
	"github.com/earlgrey-dsl/earlgrey/grammar"
	"github.com/earlgrey-dsl/earlgrey/interp"
	"github.com/earlgrey-dsl/earlgrey/token"
	"github.com/earlgrey-dsl/earlgrey/value"
)

func tracer() tracing.Trace {
	return tracing.Select("earlgrey")
}

// Engine is a compiled grammar ready to recognize and interpret input
// (§4, §5). Build one with BuildEngine and reuse it across Parse calls —
// an Engine holds no per-parse state, so concurrent Parse calls on the
// same Engine are safe (§5 property: no shared mutable state across runs).
type Engine struct {
	grammar *grammar.Grammar

	maxChartItems int
	traceLevel    *tracing.TraceLevel
}

// BuildEngine expands rules into a grammar and validates it (nullable-cycle
// detection, §4.2), returning a reusable Engine (§5).
func BuildEngine(rules []grammar.Rule, opts ...Option) (*Engine, error) {
	productions, err := grammar.ExpandRules(rules)
	if err != nil {
		return nil, err
	}
	g, err := grammar.NewGrammar(productions)
	if err != nil {
		if ge, ok := err.(*grammar.GrammarError); ok {
			return nil, &GrammarError{Cause: ge}
		}
		return nil, err
	}

	e := &Engine{grammar: g}
	for _, opt := range opts {
		opt(e)
	}
	e.applyTraceLevel()
	return e, nil
}

// Grammar returns the validated grammar an Engine was built with, for
// debugging/introspection (e.g. printing grammar.Grammar.Dump()). It is
// immutable after BuildEngine returns, so sharing it across concurrent
// Parse calls is safe.
func (e *Engine) Grammar() *grammar.Grammar { return e.grammar }

// Parse tokenizes input, recognizes it against start, reconstructs the
// single accepted derivation, and interprets it into a value.Value (§4,
// §5). On failure it returns one of ParseError, ResourceExhaustedError, or
// InternalError, each wrapping its package-level cause so callers can
// errors.As/errors.Unwrap down to it; if ctx is done, ctx's own error is
// returned unwrapped.
//
// ctx is checked between chart positions only (§5 supplemented); a grammar
// with no pathological blowup will complete well within any reasonable
// deadline regardless.
func (e *Engine) Parse(ctx context.Context, input string, start string) (value.Value, error) {
	// corrID ties together every trace line this call emits, so a run
	// logged concurrently with other Parse calls on the same Engine can
	// still be followed in isolation.
	corrID := uuid.New().String()
	toks := token.Tokenize(input)
	tracer().Debugf("[%s] parsing %d tokens against %q", corrID, len(toks), start)

	r := chart.NewRecognizer(e.grammar, start)
	r.MaxItems = e.maxChartItems
	c, err := r.Run(ctx, toks)
	if err != nil {
		if re, ok := err.(*chart.ResourceExhaustedError); ok {
			return value.Value{}, &ResourceExhaustedError{Cause: re}
		}
		return value.Value{}, err
	}

	if !c.Accepted(start, e.grammar) {
		detail := diag.Diagnose(c, e.grammar)
		tracer().Debugf("[%s] parse rejected: %s", corrID, detail.Error())
		return value.Value{}, &ParseError{Detail: detail}
	}

	node, err := deriv.Find(c, e.grammar, start)
	if err != nil {
		if bt, ok := err.(*deriv.BuildTreeBug); ok {
			return value.Value{}, &InternalError{Cause: bt}
		}
		return value.Value{}, err
	}

	tracer().Debugf("[%s] parse accepted", corrID)
	return interp.Interpret(node)
}

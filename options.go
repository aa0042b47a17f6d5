package earlgrey

import "github.com/npillmayer/schuko/tracing"

// Option configures an Engine at build time.
type Option func(e *Engine)

// MaxChartItems bounds the total number of chart items a single Parse call
// may create before aborting with ResourceExhaustedError. Zero (the
// default) means unbounded (§5, supplemented).
func MaxChartItems(n int) Option {
	return func(e *Engine) { e.maxChartItems = n }
}

// TraceLevel sets the trace level for every package-level tracer used by
// the engine: the root "earlgrey" tracer plus token, grammar, chart, deriv,
// interp, and diag, mirroring the teacher's per-package tracing.Select
// convention.
func TraceLevel(level tracing.TraceLevel) Option {
	return func(e *Engine) { e.traceLevel = &level }
}

func (e *Engine) applyTraceLevel() {
	if e.traceLevel == nil {
		return
	}
	for _, name := range []string{
		"earlgrey",
		"earlgrey.token",
		"earlgrey.grammar",
		"earlgrey.chart",
		"earlgrey.deriv",
		"earlgrey.interp",
		"earlgrey.diag",
	} {
		tracing.Select(name).SetTraceLevel(*e.traceLevel)
	}
}

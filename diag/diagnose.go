package diag

import (
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/schuko/tracing"

	"github.com/earlgrey-dsl/earlgrey/chart"
	"github.com/earlgrey-dsl/earlgrey/grammar"
	"github.com/earlgrey-dsl/earlgrey/token"
)

func tracer() tracing.Trace {
	return tracing.Select("earlgrey.diag")
}

// Expectation describes one in-progress item at the failure position:
// the production it belongs to, how much of its rhs remains, and where
// its match began (§4.6).
type Expectation struct {
	LHS          string
	RemainingRHS []grammar.Symbol
	Start        int
}

// String renders an Expectation for human-readable diagnostics: the LHS,
// an elided matched prefix, and the remaining symbols, e.g.
// `Sum -> ... • "+" Product`. Start is not included.
func (e Expectation) String() string {
	s := e.LHS + " -> ... •"
	for _, sym := range e.RemainingRHS {
		s += " " + sym.String()
	}
	return s
}

// Unrecognized is the structured failure report produced when a chart
// does not accept the input (§4.6, §7).
type Unrecognized struct {
	Pos               int
	Found             *token.Token
	ExpectedTerminals []string
	InProgressRules   []Expectation
}

func (u *Unrecognized) Error() string {
	if u.Found != nil {
		return fmt.Sprintf("diag: unrecognized input at position %d", u.Pos)
	}
	return fmt.Sprintf("diag: unexpected end of input at position %d", u.Pos)
}

// Diagnose builds the failure report for a chart that did not accept its
// input: the furthest chart position with an in-progress item, the token
// found there (if any), and the deduplicated set of terminals that would
// have continued the parse (§4.6).
func Diagnose(c *chart.Chart, g *grammar.Grammar) *Unrecognized {
	firsts := FirstSets(g)

	furthest := 0
	for pos := range c.States {
		if hasInProgress(c, pos) {
			furthest = pos
		}
	}

	// Pos is reported as a byte offset into the original input, matching
	// Token spans, rather than a token-count chart index: the found
	// token's start, or the input's total length at end-of-input.
	var found *token.Token
	pos := inputByteLen(c.Tokens)
	if furthest < len(c.Tokens) {
		tok := c.Tokens[furthest]
		found = &tok
		pos = tok.Span.From()
	}

	firstMap := toFirstMap(firsts)
	expectedSet := treeset.NewWith(utils.StringComparator)
	var inProgress []Expectation
	for _, it := range c.ItemsAt(furthest) {
		if it.AtEnd() {
			continue
		}
		remaining := it.Production.RHS[it.Dot:]
		inProgress = append(inProgress, Expectation{
			LHS:          it.Production.LHS,
			RemainingRHS: remaining,
			Start:        it.Start,
		})
		dst := make(map[string]bool)
		addFirstOfSequence(remaining, g, firstMap, dst)
		for t := range dst {
			expectedSet.Add(t)
		}
	}

	expected := make([]string, 0, expectedSet.Size())
	for _, v := range expectedSet.Values() {
		expected = append(expected, v.(string))
	}

	tracer().Debugf("diagnose: furthest position %d, %d in-progress rules, %d expected terminals",
		furthest, len(inProgress), len(expected))

	return &Unrecognized{
		Pos:               pos,
		Found:             found,
		ExpectedTerminals: expected,
		InProgressRules:   inProgress,
	}
}

func inputByteLen(toks []token.Token) int {
	if len(toks) == 0 {
		return 0
	}
	return toks[len(toks)-1].Span.To()
}

func hasInProgress(c *chart.Chart, pos int) bool {
	for _, it := range c.ItemsAt(pos) {
		if !it.AtEnd() {
			return true
		}
	}
	return false
}

func toFirstMap(firsts map[string][]string) map[string]map[string]bool {
	out := make(map[string]map[string]bool, len(firsts))
	for name, list := range firsts {
		m := make(map[string]bool, len(list))
		for _, t := range list {
			m[t] = true
		}
		out[name] = m
	}
	return out
}

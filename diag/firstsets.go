// Package diag computes parse-failure diagnostics: the furthest chart
// position reached, the offending token, and the set of terminals that
// would have continued the parse there (§4.6).
package diag

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/earlgrey-dsl/earlgrey/grammar"
)

// FirstSets computes, for every nonterminal, the set of terminal literals
// that can begin a derivation of it: a fixed-point iteration over the
// production set, transitive through nullable symbols, the same shape as
// the nullable-analysis fixed point in package grammar.
func FirstSets(g *grammar.Grammar) map[string][]string {
	first := make(map[string]map[string]bool)
	for _, p := range g.Productions {
		if first[p.LHS] == nil {
			first[p.LHS] = make(map[string]bool)
		}
	}

	for {
		changed := false
		for _, p := range g.Productions {
			before := len(first[p.LHS])
			addFirstOfSequence(p.RHS, g, first, first[p.LHS])
			if len(first[p.LHS]) != before {
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	out := make(map[string][]string, len(first))
	for name, set := range first {
		out[name] = sortedKeys(set)
	}
	return out
}

// addFirstOfSequence walks rhs left to right, adding every terminal that
// can begin it into dst, stopping at the first non-nullable symbol.
func addFirstOfSequence(rhs []grammar.Symbol, g *grammar.Grammar, first map[string]map[string]bool, dst map[string]bool) {
	for _, sym := range rhs {
		switch sym.Kind {
		case grammar.Terminal:
			dst[sym.Literal] = true
			return
		case grammar.Placeholder:
			if grammar.IsBuiltinType(sym.Type) {
				// builtin placeholders are data-driven: no terminal
				// expectation, and they are never nullable, so the
				// sequence stops here (§4.6).
				return
			}
			for t := range first[sym.Type] {
				dst[t] = true
			}
			if !g.IsNullable(sym.Type) {
				return
			}
		case grammar.NonTerminal:
			for t := range first[sym.Name] {
				dst[t] = true
			}
			if !g.IsNullable(sym.Name) {
				return
			}
		}
	}
}

func sortedKeys(set map[string]bool) []string {
	ts := treeset.NewWith(utils.StringComparator)
	for k := range set {
		ts.Add(k)
	}
	out := make([]string, 0, ts.Size())
	for _, v := range ts.Values() {
		out = append(out, v.(string))
	}
	return out
}

package grammar

import (
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
)

// sortedStrings returns s deduplicated and sorted, via the same
// treeset-over-a-comparator idiom used for ordered iteration elsewhere in
// this module.
func sortedStrings(s []string) []string {
	set := treeset.NewWith(utils.StringComparator)
	for _, v := range s {
		set.Add(v)
	}
	out := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		out = append(out, v.(string))
	}
	return out
}

func tracer() tracing.Trace {
	return tracing.Select("earlgrey.grammar")
}

// GrammarError reports a structural defect discovered while building a
// Grammar, found before any recognition can start (§7).
type GrammarError struct {
	// InfiniteNullableLoop names a cycle of nonterminals each reachable from
	// the next by an all-nullable production (§4.2 edge case).
	InfiniteNullableLoop []string
}

func (e *GrammarError) Error() string {
	if e.InfiniteNullableLoop != nil {
		cyc := e.InfiniteNullableLoop
		if !gconf.GetBool("strict-nullable-cycles") && len(cyc) > 1 {
			cyc = cyc[:1]
		}
		return fmt.Sprintf("grammar: nullable cycle: %v", cyc)
	}
	return "grammar: invalid"
}

// Grammar is a validated, analyzed production set: an ordered production
// list, indexed by left-hand-side name, with nullable nonterminals computed
// up front (§4.2).
type Grammar struct {
	Productions []*Production
	byLHS       map[string][]*Production
	byID        map[int]*Production
	nullable    map[string]bool
}

// Rules returns the productions whose LHS is name, in declaration order.
func (g *Grammar) Rules(name string) []*Production {
	return g.byLHS[name]
}

// ByID returns the production with the given ID, or nil if none exists.
func (g *Grammar) ByID(id int) *Production {
	return g.byID[id]
}

// IsNullable reports whether the nonterminal name can derive the empty
// string (§4.2).
func (g *Grammar) IsNullable(name string) bool {
	return g.nullable[name]
}

// SymbolNullable reports whether a RHS symbol can be skipped by the Earley
// predictor's nullable-advancement rule (§4.3): a Placeholder/NonTerminal
// symbol is nullable iff its referenced nonterminal is nullable; a Terminal
// is never nullable.
func (g *Grammar) SymbolNullable(s Symbol) bool {
	name, ok := s.RefersToType()
	if !ok {
		return false
	}
	return g.nullable[name]
}

// NewGrammar validates productions and computes nullable nonterminals,
// rejecting a grammar whose nullable derivations loop forever (§4.2).
func NewGrammar(productions []*Production) (*Grammar, error) {
	g := &Grammar{
		Productions: productions,
		byLHS:       make(map[string][]*Production),
		byID:        make(map[int]*Production),
	}
	for _, p := range productions {
		g.byLHS[p.LHS] = append(g.byLHS[p.LHS], p)
		g.byID[p.ID] = p
	}

	g.nullable = computeNullable(productions)

	if cyc := findNullableCycle(productions, g.nullable); cyc != nil {
		return nil, &GrammarError{InfiniteNullableLoop: cyc}
	}

	tracer().Debugf("grammar: %d productions, %d nullable nonterminals", len(productions), len(g.nullable))
	return g, nil
}

// computeNullable runs the fixed-point closure of §4.2: a nonterminal is
// nullable iff some production of it has an RHS that is empty, or consists
// entirely of symbols that are themselves nullable (placeholders/
// nonterminals referencing a nullable nonterminal; terminals are never
// nullable so they block their production).
func computeNullable(productions []*Production) map[string]bool {
	nullable := make(map[string]bool)
	for {
		changed := false
		for _, p := range productions {
			if nullable[p.LHS] {
				continue
			}
			if productionAllNullable(p, nullable) {
				nullable[p.LHS] = true
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return nullable
}

func productionAllNullable(p *Production, nullable map[string]bool) bool {
	if len(p.RHS) == 0 {
		return true
	}
	for _, s := range p.RHS {
		name, ok := s.RefersToType()
		if !ok {
			// a Terminal or a builtin-typed Placeholder always consumes
			// input, so it can never be part of a nullable derivation.
			return false
		}
		if !nullable[name] {
			return false
		}
	}
	return true
}

// findNullableCycle builds the directed graph of nullable nonterminals (an
// edge A -> B iff A has an all-nullable production mentioning B) and
// returns the first cycle found via depth-first search, or nil if the
// graph is acyclic.
func findNullableCycle(productions []*Production, nullable map[string]bool) []string {
	edges := make(map[string]map[string]bool)
	for _, p := range productions {
		if !nullable[p.LHS] {
			continue
		}
		for _, s := range p.RHS {
			name, ok := s.RefersToType()
			if !ok || !nullable[name] {
				continue
			}
			if edges[p.LHS] == nil {
				edges[p.LHS] = make(map[string]bool)
			}
			edges[p.LHS][name] = true
		}
	}

	names := make([]string, 0, len(edges))
	for n := range edges {
		names = append(names, n)
	}
	names = sortedStrings(names) // deterministic cycle report across runs

	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int)
	var path []string

	var visit func(n string) []string
	visit = func(n string) []string {
		state[n] = visiting
		path = append(path, n)
		nexts := make([]string, 0, len(edges[n]))
		for m := range edges[n] {
			nexts = append(nexts, m)
		}
		nexts = sortedStrings(nexts)
		for _, m := range nexts {
			switch state[m] {
			case visiting:
				// found the cycle: slice path from m's first occurrence
				for i, v := range path {
					if v == m {
						cyc := append([]string{}, path[i:]...)
						return append(cyc, m)
					}
				}
			case unvisited:
				if cyc := visit(m); cyc != nil {
					return cyc
				}
			}
		}
		path = path[:len(path)-1]
		state[n] = done
		return nil
	}

	for _, n := range names {
		if state[n] == unvisited {
			if cyc := visit(n); cyc != nil {
				return cyc
			}
		}
	}
	return nil
}

// Dump renders the grammar's productions one per line, in declaration
// order, for debugging and log output.
func (g *Grammar) Dump() string {
	s := ""
	for _, p := range g.Productions {
		s += fmt.Sprintf("[%d] %s\n", p.ID, p.String())
	}
	return s
}

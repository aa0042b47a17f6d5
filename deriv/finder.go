package deriv

import (
	"fmt"

	"github.com/earlgrey-dsl/earlgrey/chart"
	"github.com/earlgrey-dsl/earlgrey/grammar"
	"github.com/earlgrey-dsl/earlgrey/token"
)

// placeholderTokenMatches mirrors chart.placeholderMatches (unexported in
// its package): a builtin Placeholder's declared type decides which token
// kinds it accepts.
func placeholderTokenMatches(typ string, tok token.Token) bool {
	switch grammar.NormalizeTypeName(typ) {
	case "int":
		return tok.Kind == token.Int
	case "float":
		return tok.Kind == token.Int || tok.Kind == token.Float
	case "string", "str":
		return tok.Kind == token.StringLit
	default:
		return false
	}
}

// BuildTreeBug reports an invariant violation during tree reconstruction:
// the chart claimed acceptance but no consistent derivation could be
// walked. This should never occur for a correct recognizer (§7).
type BuildTreeBug struct {
	Start  string
	Detail string
}

func (e *BuildTreeBug) Error() string {
	return fmt.Sprintf("deriv: build-tree invariant violated for %q: %s", e.Start, e.Detail)
}

// Find reconstructs the single derivation tree for an accepted chart,
// rooted at a production of the start nonterminal spanning the whole
// input (§4.4). Among several top-level productions (an ambiguous start)
// it picks the lowest rule_id, exactly as interior ties are broken.
func Find(c *chart.Chart, g *grammar.Grammar, start string) (*Node, error) {
	finish := len(c.Tokens)
	ec := buildEdgeChart(c)
	f := &finderState{chart: c, grammar: g, ec: ec}

	for _, e := range ec.byStart[0] {
		if e.Prod == TokenEdge || e.Finish != finish {
			continue
		}
		p := g.ByID(e.Prod)
		if p == nil || p.LHS != start {
			continue
		}
		node, ok := f.buildNode(e)
		if ok {
			return node, nil
		}
	}
	return nil, &BuildTreeBug{Start: start, Detail: "no consistent top-level derivation found"}
}

type finderState struct {
	chart   *chart.Chart
	grammar *grammar.Grammar
	ec      *edgeChart
}

// buildNode reconstructs the subtree for a chosen edge: a Token leaf for a
// TokenEdge, or an interior node whose children are found by walking the
// production's RHS from Start to Finish.
func (f *finderState) buildNode(e edge) (*Node, bool) {
	if e.Prod == TokenEdge {
		tok, ok := tokenText(f.chart.Tokens, e.Start)
		if !ok {
			return nil, false
		}
		return &Node{Token: &tok, Span: token.Span{e.Start, e.Finish}}, true
	}
	p := f.grammar.ByID(e.Prod)
	if p == nil {
		return nil, false
	}
	children, ok := f.matchRHS(p.RHS, e.Start, e.Finish)
	if !ok {
		return nil, false
	}
	return &Node{Production: p, Children: children, Span: token.Span{e.Start, e.Finish}}, true
}

// matchRHS finds a sequence of edges spanning [start, finish) that
// realizes rhs, by forward depth-first search: at each RHS symbol, try
// candidate edges at the current position in sorted order and recurse,
// backtracking on failure (§4.4: "the finder picks the first path it
// discovers").
func (f *finderState) matchRHS(rhs []grammar.Symbol, start, finish int) ([]*Node, bool) {
	if len(rhs) == 0 {
		if start == finish {
			return nil, true
		}
		return nil, false
	}
	return f.matchFrom(rhs, 0, start, finish)
}

func (f *finderState) matchFrom(rhs []grammar.Symbol, idx, pos, finish int) ([]*Node, bool) {
	if idx == len(rhs) {
		if pos == finish {
			return []*Node{}, true
		}
		return nil, false
	}
	sym := rhs[idx]
	for _, e := range f.ec.byStart[pos] {
		if !edgeMatchesSymbol(e, sym, f) {
			continue
		}
		// Match the rest of the rhs before descending into e: a
		// left-recursive production's own edge is a candidate for its first
		// child, and only the failing rest rules it out without recursing.
		rest, ok := f.matchFrom(rhs, idx+1, e.Finish, finish)
		if !ok {
			continue
		}
		child, ok := f.buildNode(e)
		if !ok {
			continue
		}
		return append([]*Node{child}, rest...), true
	}
	return nil, false
}

// edgeMatchesSymbol reports whether edge e is a valid way to satisfy RHS
// symbol sym: a Terminal matches a TokenEdge whose token text equals the
// literal; a builtin Placeholder matches a TokenEdge whose token kind
// satisfies the declared type; a NonTerminal or type-referencing
// Placeholder matches a completed production whose LHS equals the
// referenced name.
func edgeMatchesSymbol(e edge, sym grammar.Symbol, f *finderState) bool {
	switch sym.Kind {
	case grammar.Terminal:
		if e.Prod != TokenEdge {
			return false
		}
		tok, ok := tokenText(f.chart.Tokens, e.Start)
		return ok && tok.Text == sym.Literal
	case grammar.Placeholder:
		if grammar.IsBuiltinType(sym.Type) {
			if e.Prod != TokenEdge {
				return false
			}
			tok, ok := tokenText(f.chart.Tokens, e.Start)
			return ok && placeholderTokenMatches(sym.Type, tok)
		}
		if e.Prod == TokenEdge {
			return false
		}
		p := f.grammar.ByID(e.Prod)
		return p != nil && p.LHS == sym.Type
	case grammar.NonTerminal:
		if e.Prod == TokenEdge {
			return false
		}
		p := f.grammar.ByID(e.Prod)
		return p != nil && p.LHS == sym.Name
	default:
		return false
	}
}

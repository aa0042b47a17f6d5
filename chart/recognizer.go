package chart

import (
	"context"

	"github.com/npillmayer/schuko/tracing"

	"github.com/earlgrey-dsl/earlgrey/grammar"
	"github.com/earlgrey-dsl/earlgrey/token"
)

func tracer() tracing.Trace {
	return tracing.Select("earlgrey.chart")
}

// Chart holds the complete set of per-position item sets built by a
// recognition run: States[i] is the item set at chart position i, one more
// position than there are tokens (§4.3).
type Chart struct {
	States []*itemSet
	Tokens []token.Token
}

// ResourceExhaustedError reports that a recognition run was aborted
// because it exceeded a configured chart-item budget, guarding against
// pathological grammars blowing up memory (§5, supplemented).
type ResourceExhaustedError struct {
	MaxItems int
}

func (e *ResourceExhaustedError) Error() string {
	return "chart: exceeded maximum chart item budget"
}

// Recognizer runs the Earley predictor/scanner/completer loop (§4.3) over a
// grammar and a token stream, building a Chart. It never rejects a grammar
// itself — grammar.NewGrammar already validated nullable cycles — but it
// will abort with ResourceExhaustedError if MaxItems is exceeded.
type Recognizer struct {
	Grammar   *grammar.Grammar
	Start     string
	MaxItems  int // 0 means unbounded
}

// NewRecognizer builds a Recognizer for the given grammar and start
// nonterminal.
func NewRecognizer(g *grammar.Grammar, start string) *Recognizer {
	return &Recognizer{Grammar: g, Start: start}
}

// Run executes the recognizer over toks, producing the full Chart. ctx is
// checked once per chart position (never mid-position) so callers can
// cancel a pathologically slow parse without the recognizer paying for
// cancellation checks on every item (§5 supplemented: Parse accepts a
// context purely additively).
func (r *Recognizer) Run(ctx context.Context, toks []token.Token) (*Chart, error) {
	c := &Chart{
		States: make([]*itemSet, len(toks)+1),
		Tokens: toks,
	}
	c.States[0] = newItemSet()
	total := 0
	for _, p := range r.Grammar.Rules(r.Start) {
		total += addItem(c.States[0], startItem(p, 0))
	}

	for i := 0; i <= len(toks); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i > 0 && c.States[i] == nil {
			c.States[i] = newItemSet()
		}
		S := c.States[i]
		var tok *token.Token
		if i < len(toks) {
			tok = &toks[i]
		}
		var scanErr error
		S.forEachGrowing(func(item Item) {
			if scanErr != nil {
				return
			}
			n := r.step(c, i, item, tok)
			total += n
			if r.MaxItems > 0 && total > r.MaxItems {
				scanErr = &ResourceExhaustedError{MaxItems: r.MaxItems}
			}
		})
		if scanErr != nil {
			return nil, scanErr
		}
		dumpState(c.States, i)
	}

	tracer().Debugf("recognition over %d tokens produced %d chart positions, %d items total", len(toks), len(c.States), total)
	return c, nil
}

// step applies scan, predict and complete to one item at position i,
// returning the number of newly-added items (to S or S+1).
func (r *Recognizer) step(c *Chart, i int, item Item, tok *token.Token) int {
	n := 0
	sym, hasNext := item.PeekSymbol()
	if !hasNext {
		n += r.complete(c, i, item)
		return n
	}
	switch sym.Kind {
	case grammar.Terminal:
		n += r.scanTerminal(c, i, item, sym, tok)
	case grammar.Placeholder:
		if grammar.IsBuiltinType(sym.Type) {
			n += r.scanPlaceholder(c, i, item, sym, tok)
		} else {
			n += r.predict(c, i, item, sym.Type)
		}
	case grammar.NonTerminal:
		n += r.predict(c, i, item, sym.Name)
	}
	return n
}

// scanTerminal implements the Scanner step for a literal terminal: if the
// current token's text equals the literal, advance the item into S_{i+1}.
func (r *Recognizer) scanTerminal(c *Chart, i int, item Item, sym grammar.Symbol, tok *token.Token) int {
	if tok == nil || tok.Text != sym.Literal {
		return 0
	}
	return addItem(c.States[i+1], item.Advance())
}

// scanPlaceholder implements the Scanner step for a builtin-typed
// placeholder: any token whose Kind matches the declared type is consumed.
func (r *Recognizer) scanPlaceholder(c *Chart, i int, item Item, sym grammar.Symbol, tok *token.Token) int {
	if tok == nil || !placeholderMatches(sym.Type, *tok) {
		return 0
	}
	return addItem(c.States[i+1], item.Advance())
}

// placeholderMatches reports whether tok's kind satisfies the declared
// builtin placeholder type (§3, §4.1): int accepts an Int token, float
// accepts an Int or Float token (an Int also satisfies a float
// placeholder), string/str accept a StringLit token.
func placeholderMatches(typ string, tok token.Token) bool {
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

// predict implements the Predictor step: add a start item for every
// production of name to S_i, and if name is nullable, also advance item
// directly (§4.3, nullable-advancement rule).
func (r *Recognizer) predict(c *Chart, i int, item Item, name string) int {
	n := 0
	for _, p := range r.Grammar.Rules(name) {
		n += addItem(c.States[i], startItem(p, i))
	}
	if r.Grammar.IsNullable(name) {
		n += addItem(c.States[i], item.Advance())
	}
	return n
}

// complete implements the Completer step: for a finished item [A -> ... *, j]
// in S_i, find every item [B -> ... * A ..., k] in S_j and advance it into
// S_i.
func (r *Recognizer) complete(c *Chart, i int, item Item) int {
	n := 0
	Sj := c.States[item.Start]
	if Sj == nil {
		return 0
	}
	lhs := item.Production.LHS
	for _, cand := range Sj.items() {
		sym, ok := cand.PeekSymbol()
		if !ok {
			continue
		}
		name, refOK := sym.RefersToType()
		if !refOK || name != lhs {
			continue
		}
		n += addItem(c.States[i], cand.Advance())
	}
	return n
}

// Accepted reports whether the chart contains a completed item for the
// start nonterminal spanning the whole input.
func (c *Chart) Accepted(start string, g *grammar.Grammar) bool {
	last := c.States[len(c.States)-1]
	if last == nil {
		return false
	}
	for _, it := range last.items() {
		if it.AtEnd() && it.Production.LHS == start && it.Start == 0 {
			return true
		}
	}
	return false
}

// ItemsAt returns a snapshot of every item stored at chart position pos, in
// insertion order, or nil if pos is out of range or empty.
func (c *Chart) ItemsAt(pos int) []Item {
	if pos < 0 || pos >= len(c.States) || c.States[pos] == nil {
		return nil
	}
	return c.States[pos].items()
}

func addItem(s *itemSet, item Item) int {
	if s.Add(item) {
		return 1
	}
	return 0
}

// Package chart implements the Earley recognizer (§4.3): a chart of
// per-position item sets built by the predictor/scanner/completer loop,
// supporting arbitrary context-free grammars including left recursion,
// nullable productions and ambiguity.
package chart

import (
	"fmt"

	"github.com/earlgrey-dsl/earlgrey/grammar"
)

// ItemKey identifies a dotted item: production Prod, dot position Dot
// within its RHS, and Start, the chart position the item's match began at.
// Two items with the same key are the same item — the recognizer never
// stores duplicates (§4.3).
type ItemKey struct {
	Prod  int
	Dot   int
	Start int
}

// Item is a dotted item together with the production it refers to, kept
// alongside the key so scan/predict/complete never need a grammar lookup
// on the hot path.
type Item struct {
	ItemKey
	Production *grammar.Production
}

// AtEnd reports whether the dot has reached the end of the RHS — i.e. this
// item represents a completed recognition of Production starting at Start.
func (it Item) AtEnd() bool {
	return it.Dot >= len(it.Production.RHS)
}

// PeekSymbol returns the RHS symbol immediately after the dot, or false if
// the dot is already at the end.
func (it Item) PeekSymbol() (grammar.Symbol, bool) {
	if it.AtEnd() {
		return grammar.Symbol{}, false
	}
	return it.Production.RHS[it.Dot], true
}

// Advance returns the item with its dot moved one position to the right.
func (it Item) Advance() Item {
	return Item{ItemKey: ItemKey{Prod: it.Prod, Dot: it.Dot + 1, Start: it.Start}, Production: it.Production}
}

func (it Item) String() string {
	s := it.Production.LHS + " ->"
	for i, sym := range it.Production.RHS {
		if i == it.Dot {
			s += " •"
		}
		s += " " + sym.String()
	}
	if it.AtEnd() {
		s += " •"
	}
	return fmt.Sprintf("[%s, %d]", s, it.Start)
}

// startItem builds the dot-at-zero item for production p starting at
// position start.
func startItem(p *grammar.Production, start int) Item {
	return Item{ItemKey: ItemKey{Prod: p.ID, Dot: 0, Start: start}, Production: p}
}

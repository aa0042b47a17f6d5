package deriv

import (
	"sort"

	"github.com/earlgrey-dsl/earlgrey/chart"
	"github.com/earlgrey-dsl/earlgrey/token"
)

// TokenEdge is the sentinel production id used for an edge synthesized
// from a single-token match rather than a completed nonterminal (§4.4).
const TokenEdge = -1

// edge is one entry of the edge chart: a completed production (or a
// TokenEdge terminal match) spanning [Start, Finish).
type edge struct {
	Prod   int
	Start  int
	Finish int
}

// edgeChart is the edge chart of §4.4: every completed item and every
// single-token match, grouped by starting position and kept sorted by
// (rule_id ascending, finish ascending) within each group — the order the
// derivation finder walks in, making ambiguity resolution deterministic
// and first-match-wins.
type edgeChart struct {
	byStart map[int][]edge
}

func buildEdgeChart(c *chart.Chart) *edgeChart {
	var all []edge
	for finish := range c.States {
		for _, it := range c.ItemsAt(finish) {
			if !it.AtEnd() {
				continue
			}
			all = append(all, edge{Prod: it.Prod, Start: it.Start, Finish: finish})
		}
	}
	for i := range c.Tokens {
		all = append(all, edge{Prod: TokenEdge, Start: i, Finish: i + 1})
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Prod != all[j].Prod {
			return all[i].Prod < all[j].Prod
		}
		if all[i].Finish != all[j].Finish {
			return all[i].Finish < all[j].Finish
		}
		return all[i].Start < all[j].Start
	})

	ec := &edgeChart{byStart: make(map[int][]edge)}
	for _, e := range all {
		ec.byStart[e.Start] = append(ec.byStart[e.Start], e)
	}
	return ec
}

// tokenText returns the token at position i (false if i is out of range),
// used to match Terminal symbols against TokenEdge edges.
func tokenText(toks []token.Token, i int) (token.Token, bool) {
	if i < 0 || i >= len(toks) {
		return token.Token{}, false
	}
	return toks[i], true
}

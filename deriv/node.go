// Package deriv reconstructs a single concrete derivation tree from an
// accepted chart (§4.4). Unlike a general parse forest, it never retains
// ambiguity: exactly one child is chosen at every ambiguous completion,
// by a documented, deterministic rule.
package deriv

import (
	"github.com/earlgrey-dsl/earlgrey/grammar"
	"github.com/earlgrey-dsl/earlgrey/token"
)

// Node is one node of a derivation tree: either a Token leaf (Production
// is nil) or an interior node produced by reducing Production over
// Children. Span covers the token-index range this node's match spans
// (not a byte range — use Token.Span for that at a leaf).
type Node struct {
	Production *grammar.Production
	Children   []*Node
	Token      *token.Token
	Span       token.Span
}

// IsLeaf reports whether this node is a terminal token match.
func (n *Node) IsLeaf() bool {
	return n.Production == nil
}

package deriv

import "github.com/cnf/structhash"

// shape is a hashable projection of a Node: structhash needs plain data,
// not pointers, to produce a stable digest across distinct tree instances
// that describe the same derivation.
type shape struct {
	ProdID    int
	Start     int
	Finish    int
	TokenFrom int
	TokenTo   int
	Children  []shape
}

func toShape(n *Node) shape {
	s := shape{Start: n.Span.From(), Finish: n.Span.To()}
	if n.IsLeaf() {
		s.TokenFrom, s.TokenTo = n.Token.Span.From(), n.Token.Span.To()
		return s
	}
	s.ProdID = n.Production.ID
	s.Children = make([]shape, len(n.Children))
	for i, c := range n.Children {
		s.Children[i] = toShape(c)
	}
	return s
}

// Fingerprint returns a stable content hash of the derivation tree rooted
// at n: two trees built from the same input and grammar hash identically
// iff they are structurally the same derivation. Used to assert that
// repeated Find calls over the same chart reconstruct byte-for-byte the
// same tree (§4.4's determinism requirement), without comparing the full
// tree by hand.
func (n *Node) Fingerprint() string {
	h, err := structhash.Hash(toShape(n), 1)
	if err != nil {
		// structhash.Hash only errors on unsupported reflect kinds; shape
		// is built entirely from ints and slices of itself, so this is
		// unreachable.
		panic(err)
	}
	return h
}

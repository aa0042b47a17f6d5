package earlgrey

import "github.com/earlgrey-dsl/earlgrey/token"

// Span is the range type every token and derivation-tree node tracks its
// match against: a byte range for token.Token, a token-index range for
// deriv.Node. Defined in package token (a leaf package that imports
// nothing else from this module) and re-exported under its teacher-given
// name at this boundary.
type Span = token.Span

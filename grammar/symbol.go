// Package grammar implements the in-memory grammar model: symbols,
// productions, output specifications, nullable analysis, nullable-cycle
// detection, and the rule-intake types an external surface-syntax parser
// would hand to this core (§3, §4.2, §6 of the specification this package
// implements).
package grammar

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// SymKind discriminates the three shapes a Symbol can take.
type SymKind int

const (
	// Terminal matches exactly one token whose text equals Literal.
	Terminal SymKind = iota
	// NonTerminal names a rule by Name.
	NonTerminal
	// Placeholder matches either a builtin-typed token (if Type is one of
	// int|float|string|str, case-insensitive) or a derivation of the rule
	// named Type. Name is the field key the value is recorded under.
	Placeholder
)

func (k SymKind) String() string {
	switch k {
	case Terminal:
		return "Terminal"
	case NonTerminal:
		return "NonTerminal"
	case Placeholder:
		return "Placeholder"
	default:
		return "?"
	}
}

// Symbol is a tagged variant: Terminal(literal), NonTerminal(name), or
// Placeholder{name, type} (§3).
type Symbol struct {
	Kind    SymKind
	Literal string // Terminal
	Name    string // NonTerminal / Placeholder field name
	Type    string // Placeholder type (builtin name or nonterminal name)
}

// Lit constructs a Terminal symbol matching a single literal token text.
func Lit(literal string) Symbol { return Symbol{Kind: Terminal, Literal: literal} }

// NT constructs a NonTerminal symbol.
func NT(name string) Symbol { return Symbol{Kind: NonTerminal, Name: name} }

// PH constructs a Placeholder symbol.
func PH(name, typ string) Symbol { return Symbol{Kind: Placeholder, Name: name, Type: typ} }

func (s Symbol) String() string {
	switch s.Kind {
	case Terminal:
		return fmt.Sprintf("%q", s.Literal)
	case NonTerminal:
		return s.Name
	case Placeholder:
		return fmt.Sprintf("{%s:%s}", s.Name, s.Type)
	default:
		return "?"
	}
}

// caseFold normalizes a builtin type name the same way for every comparison
// site, via golang.org/x/text/cases rather than strings.EqualFold, so the
// ASCII-case-insensitive rule of §4.3/§9 has one authoritative home.
var caseFold = cases.Fold()

var builtinTypes = map[string]bool{
	"int":    true,
	"float":  true,
	"string": true,
	"str":    true,
}

// NormalizeTypeName folds name the same way for every builtin-type
// comparison site, so a Placeholder's declared Type string and a scanned
// token's kind are judged by one authoritative rule.
func NormalizeTypeName(name string) string {
	return caseFold.String(strings.TrimSpace(name))
}

// IsBuiltinType reports whether name (case-insensitively) names one of the
// builtin placeholder types int|float|string|str.
func IsBuiltinType(name string) bool {
	return builtinTypes[NormalizeTypeName(name)]
}

// RefersToType reports the nonterminal name a Placeholder/NonTerminal
// symbol's match depends on. For a Terminal it returns "", false.
func (s Symbol) RefersToType() (string, bool) {
	switch s.Kind {
	case NonTerminal:
		return s.Name, true
	case Placeholder:
		if IsBuiltinType(s.Type) {
			return "", false
		}
		return s.Type, true
	default:
		return "", false
	}
}

// PropagateType is the reserved resource-type literal that causes the
// interpreter to merge a child Resource's fields into its parent instead of
// nesting it under its own key (§4.5, §9).
const PropagateType = "__Propagate__"

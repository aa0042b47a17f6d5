package grammar

import "fmt"

// Rule, Pattern and RuleRhs are the grammar-intake shapes an (external)
// surface-syntax parser hands to this core (§6): an ordered list of Rule
// records. The surface parser has already decomposed a quoted pattern
// string into a symbol sequence — Pattern.Symbols — so this package never
// parses pattern text itself.
type Rule struct {
	LHS     string
	Pattern Pattern
	// Out is the rule's output specification. nil selects the default:
	// Res(LHS, nil) — a resource whose type equals the LHS, no static
	// fields (§6: "If the output is omitted, the default is Type(lhs)").
	Out *RuleRhs
}

// Pattern is either a Normal symbol sequence or a Disjunction over
// nonterminal names (§6).
type Pattern struct {
	Disjunction  bool
	Symbols      []Symbol // Normal
	Alternatives []string // Disjunction
}

// Normal builds a Normal pattern from a symbol sequence.
func Normal(symbols ...Symbol) Pattern { return Pattern{Symbols: symbols} }

// DisjunctionOf builds a Disjunction pattern over nonterminal names.
func DisjunctionOf(alternatives ...string) Pattern {
	return Pattern{Disjunction: true, Alternatives: alternatives}
}

// RuleRhs is the output specification as it would come from the surface
// syntax: `TypeName`, `TypeName{field: value, ...}`, `{field: value, ...}`
// (dictionary), or omitted (§6).
type RuleRhs struct {
	Dict         bool // true selects the untyped dictionary form
	Type         string
	StaticFields map[string]ValueSpec
}

// TypeOut builds a RuleRhs for the bare `TypeName` form.
func TypeOut(typeName string) *RuleRhs { return &RuleRhs{Type: typeName} }

// ResourceRhs builds a RuleRhs for the `TypeName{...}` form.
func ResourceRhs(typeName string, fields map[string]ValueSpec) *RuleRhs {
	return &RuleRhs{Type: typeName, StaticFields: fields}
}

// DictRhs builds a RuleRhs for the `{...}` dictionary form.
func DictRhs(fields map[string]ValueSpec) *RuleRhs {
	return &RuleRhs{Dict: true, StaticFields: fields}
}

// ExpandRules turns an ordered Rule list into the ordered Production list a
// Grammar is built from (§6): a Disjunction rule expands into one
// Transparent production per alternative, each with a single-symbol RHS; a
// Normal rule expands into exactly one production, with the default output
// Res(lhs, nil) when Out is omitted.
func ExpandRules(rules []Rule) ([]*Production, error) {
	prods := make([]*Production, 0, len(rules))
	id := 0
	for _, r := range rules {
		if r.Pattern.Disjunction {
			if r.Out != nil {
				return nil, fmt.Errorf("grammar: rule %q: a Disjunction rule may not carry an explicit output spec", r.LHS)
			}
			for _, alt := range r.Pattern.Alternatives {
				prods = append(prods, &Production{
					ID:  id,
					LHS: r.LHS,
					RHS: []Symbol{NT(alt)},
					Out: Transparent(),
				})
				id++
			}
			continue
		}
		out := ResourceOut2Spec(r.Out, r.LHS)
		prods = append(prods, &Production{
			ID:  id,
			LHS: r.LHS,
			RHS: r.Pattern.Symbols,
			Out: out,
		})
		id++
	}
	return prods, nil
}

// ResourceOut2Spec converts the surface RuleRhs shape into the core OutSpec
// shape, applying the "omitted -> Type(lhs)" default (§6).
func ResourceOut2Spec(rhs *RuleRhs, lhs string) OutSpec {
	if rhs == nil {
		return Res(lhs, nil)
	}
	if rhs.Dict {
		return Dict(rhs.StaticFields)
	}
	return Res(rhs.Type, rhs.StaticFields)
}

package grammar

// Builder accumulates Rule records for programmatic grammar construction,
// mirroring the fluent chain style of a grammar-builder (LHS -> symbols ->
// End), generalized here to this package's Placeholder/output-spec model.
type Builder struct {
	rules []Rule
	err   error
}

// NewBuilder starts an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// LHS starts a new rule with the given left-hand-side name.
func (b *Builder) LHS(name string) *RuleBuilder {
	return &RuleBuilder{b: b, lhs: name}
}

// Or appends a Disjunction rule: lhs matches any one of the named
// nonterminals, transparently (§6).
func (b *Builder) Or(lhs string, alternatives ...string) *Builder {
	b.rules = append(b.rules, Rule{LHS: lhs, Pattern: DisjunctionOf(alternatives...)})
	return b
}

// Build expands the accumulated rules into a Grammar.
func (b *Builder) Build() (*Grammar, error) {
	if b.err != nil {
		return nil, b.err
	}
	prods, err := ExpandRules(b.rules)
	if err != nil {
		return nil, err
	}
	return NewGrammar(prods)
}

// RuleBuilder accumulates one rule's RHS symbols before it is closed with
// End and appended to its parent Builder.
type RuleBuilder struct {
	b   *Builder
	lhs string
	rhs []Symbol
}

// T appends a Terminal symbol matching literal.
func (rb *RuleBuilder) T(literal string) *RuleBuilder {
	rb.rhs = append(rb.rhs, Lit(literal))
	return rb
}

// N appends a NonTerminal symbol referencing name.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.rhs = append(rb.rhs, NT(name))
	return rb
}

// P appends a Placeholder symbol with field name and type typ.
func (rb *RuleBuilder) P(name, typ string) *RuleBuilder {
	rb.rhs = append(rb.rhs, PH(name, typ))
	return rb
}

// End closes the rule with an explicit output spec (omit for the
// Type(lhs)-resource default) and returns to the parent Builder.
func (rb *RuleBuilder) End(out ...*RuleRhs) *Builder {
	var rhs *RuleRhs
	if len(out) > 0 {
		rhs = out[0]
	}
	rb.b.rules = append(rb.b.rules, Rule{LHS: rb.lhs, Pattern: Normal(rb.rhs...), Out: rhs})
	return rb.b
}

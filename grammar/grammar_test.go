package grammar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilderSimpleGrammar(t *testing.T) {
	g, err := NewBuilder().
		LHS("Sum").N("Sum").T("+").N("Product").End().
		LHS("Sum").N("Product").End().
		LHS("Product").P("n", "int").End().
		Build()
	require.NoError(t, err)
	require.Len(t, g.Rules("Sum"), 2)
	require.Len(t, g.Rules("Product"), 1)
}

func TestNullableDirect(t *testing.T) {
	// Opt -> (empty)
	// S -> Opt "x"
	prods := []*Production{
		{ID: 0, LHS: "Opt", RHS: nil, Out: Transparent()},
		{ID: 1, LHS: "S", RHS: []Symbol{NT("Opt"), Lit("x")}, Out: Res("S", nil)},
	}
	g, err := NewGrammar(prods)
	require.NoError(t, err)
	require.True(t, g.IsNullable("Opt"))
	require.False(t, g.IsNullable("S"))
}

func TestNullableTransitive(t *testing.T) {
	// A -> (empty)
	// B -> A
	// C -> B
	prods := []*Production{
		{ID: 0, LHS: "A", RHS: nil, Out: Transparent()},
		{ID: 1, LHS: "B", RHS: []Symbol{NT("A")}, Out: Transparent()},
		{ID: 2, LHS: "C", RHS: []Symbol{NT("B")}, Out: Transparent()},
	}
	g, err := NewGrammar(prods)
	require.NoError(t, err)
	require.True(t, g.IsNullable("A"))
	require.True(t, g.IsNullable("B"))
	require.True(t, g.IsNullable("C"))
}

func TestNullableBuiltinPlaceholderBlocksNullability(t *testing.T) {
	// S -> {n:int}  -- a builtin placeholder always consumes a token, so S
	// can never be nullable even though it is S's only RHS symbol.
	prods := []*Production{
		{ID: 0, LHS: "S", RHS: []Symbol{PH("n", "int")}, Out: Res("S", nil)},
	}
	g, err := NewGrammar(prods)
	require.NoError(t, err)
	require.False(t, g.IsNullable("S"))
}

func TestNullableCycleRejected(t *testing.T) {
	// A -> (empty)      -- A nullable directly
	// B -> A            -- B nullable via A
	// A -> B            -- A also derivable via B: the nullable graph now
	//                      has a cycle A -> B -> A, which could loop a
	//                      naive completer forever re-deriving empty spans.
	prods := []*Production{
		{ID: 0, LHS: "A", RHS: nil, Out: Transparent()},
		{ID: 1, LHS: "B", RHS: []Symbol{NT("A")}, Out: Transparent()},
		{ID: 2, LHS: "A", RHS: []Symbol{NT("B")}, Out: Transparent()},
	}
	_, err := NewGrammar(prods)
	require.Error(t, err)
	var gerr *GrammarError
	require.ErrorAs(t, err, &gerr)
	require.NotEmpty(t, gerr.InfiniteNullableLoop)
}

func TestExpandRulesDisjunction(t *testing.T) {
	prods, err := ExpandRules([]Rule{
		{LHS: "Expr", Pattern: DisjunctionOf("Sum", "Product")},
	})
	require.NoError(t, err)
	require.Len(t, prods, 2)
	for _, p := range prods {
		require.Equal(t, "Expr", p.LHS)
		require.Len(t, p.RHS, 1)
		require.Equal(t, TransparentOut, p.Out.Kind)
	}
	require.Equal(t, "Sum", prods[0].RHS[0].Name)
	require.Equal(t, "Product", prods[1].RHS[0].Name)
}

func TestExpandRulesDefaultOutput(t *testing.T) {
	prods, err := ExpandRules([]Rule{
		{LHS: "Thing", Pattern: Normal(PH("n", "int"))},
	})
	require.NoError(t, err)
	require.Len(t, prods, 1)
	require.Equal(t, ResourceOut, prods[0].Out.Kind)
	require.Equal(t, "Thing", prods[0].Out.ResourceType)
	require.Nil(t, prods[0].Out.StaticFields)
}

func TestExpandRulesDictOutput(t *testing.T) {
	prods, err := ExpandRules([]Rule{
		{LHS: "Thing", Pattern: Normal(PH("n", "int")), Out: DictRhs(map[string]ValueSpec{"tag": StringLit("x")})},
	})
	require.NoError(t, err)
	require.Equal(t, DictOut, prods[0].Out.Kind)
	require.Equal(t, "x", prods[0].Out.StaticFields["tag"].StringVal)
}

func TestIsBuiltinTypeCaseInsensitive(t *testing.T) {
	require.True(t, IsBuiltinType("Int"))
	require.True(t, IsBuiltinType("STR"))
	require.True(t, IsBuiltinType("  float "))
	require.False(t, IsBuiltinType("Damage"))
}

func TestGrammarErrorTruncatesCycleByDefault(t *testing.T) {
	// The "strict-nullable-cycles" gconf flag is unset here, so Error()
	// abbreviates the cycle to its first member rather than the full path.
	err := &GrammarError{InfiniteNullableLoop: []string{"A", "B", "A"}}
	require.Contains(t, err.Error(), "[A]")
	require.NotContains(t, err.Error(), "[A B A]")
}

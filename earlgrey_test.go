package earlgrey

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/earlgrey-dsl/earlgrey/grammar"
	"github.com/earlgrey-dsl/earlgrey/value"
)

// itemEffectRules builds the canonical worked grammar from the end-to-end
// scenarios:
//
//	ItemEffect: "deal {amount:Int} damage" -> Damage
//	ItemEffect: "heal for {amount:Int}"     -> Heal
//	ItemEffect: "to {target:Target} : {effect:ItemEffect}" -> TargetedEffect
//	Target: "self"     -> Target{kind:"self"}
//	Target: "an enemy" -> Target{kind:"enemy"}
func itemEffectRules() []grammar.Rule {
	lit := func(s string) []grammar.Symbol {
		syms := make([]grammar.Symbol, len(s))
		for i, r := range s {
			syms[i] = grammar.Lit(string(r))
		}
		return syms
	}
	seq := func(parts ...[]grammar.Symbol) []grammar.Symbol {
		var out []grammar.Symbol
		for _, p := range parts {
			out = append(out, p...)
		}
		return out
	}
	sym := func(s grammar.Symbol) []grammar.Symbol { return []grammar.Symbol{s} }

	return []grammar.Rule{
		{
			LHS: "ItemEffect",
			Pattern: grammar.Normal(seq(
				lit("deal "), sym(grammar.PH("amount", "Int")), lit(" damage"),
			)...),
			Out: grammar.TypeOut("Damage"),
		},
		{
			LHS: "ItemEffect",
			Pattern: grammar.Normal(seq(
				lit("heal for "), sym(grammar.PH("amount", "Int")),
			)...),
			Out: grammar.TypeOut("Heal"),
		},
		{
			LHS: "ItemEffect",
			Pattern: grammar.Normal(seq(
				lit("to "), sym(grammar.PH("target", "Target")), lit(" : "), sym(grammar.PH("effect", "ItemEffect")),
			)...),
			Out: grammar.TypeOut("TargetedEffect"),
		},
		{
			LHS:     "Target",
			Pattern: grammar.Normal(lit("self")...),
			Out:     grammar.ResourceRhs("Target", map[string]grammar.ValueSpec{"kind": grammar.StringLit("self")}),
		},
		{
			LHS:     "Target",
			Pattern: grammar.Normal(lit("an enemy")...),
			Out:     grammar.ResourceRhs("Target", map[string]grammar.ValueSpec{"kind": grammar.StringLit("enemy")}),
		},
	}
}

func TestS1HealResourceEndToEnd(t *testing.T) {
	e, err := BuildEngine(itemEffectRules())
	require.NoError(t, err)
	v, err := e.Parse(context.Background(), "heal for 7", "ItemEffect")
	require.NoError(t, err)
	require.Equal(t, "Heal", v.ResourceType)
	amount, ok := v.Field("amount")
	require.True(t, ok)
	require.EqualValues(t, 7, amount.IntVal)
}

func TestS2NestedTargetedEffectEndToEnd(t *testing.T) {
	e, err := BuildEngine(itemEffectRules())
	require.NoError(t, err)
	v, err := e.Parse(context.Background(), "to self : heal for 7", "ItemEffect")
	require.NoError(t, err)
	require.Equal(t, "TargetedEffect", v.ResourceType)
	target, ok := v.Field("target")
	require.True(t, ok)
	require.Equal(t, "Target", target.ResourceType)
	effect, ok := v.Field("effect")
	require.True(t, ok)
	require.Equal(t, "Heal", effect.ResourceType)
}

func TestS3DamageResourceEndToEnd(t *testing.T) {
	e, err := BuildEngine(itemEffectRules())
	require.NoError(t, err)
	v, err := e.Parse(context.Background(), "deal 7 damage", "ItemEffect")
	require.NoError(t, err)
	require.Equal(t, "Damage", v.ResourceType)
}

func TestS6ParseErrorAtEndOfInput(t *testing.T) {
	lit := func(s string) []grammar.Symbol {
		syms := make([]grammar.Symbol, len(s))
		for i, r := range s {
			syms[i] = grammar.Lit(string(r))
		}
		return syms
	}
	plusRHS := append([]grammar.Symbol{grammar.NT("Expr")}, append(lit("+"), grammar.NT("Expr"))...)
	rules := []grammar.Rule{
		{LHS: "Expr", Pattern: grammar.Normal(grammar.PH("n", "Int"))},
		{LHS: "Expr", Pattern: grammar.Normal(plusRHS...)},
	}
	e, err := BuildEngine(rules)
	require.NoError(t, err)

	_, err = e.Parse(context.Background(), "42+", "Expr")
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	require.Equal(t, len("42+"), perr.Detail.Pos)
	require.Nil(t, perr.Detail.Found)
}

func TestBuildEngineRejectsNullableCycle(t *testing.T) {
	rules := []grammar.Rule{
		{LHS: "A", Pattern: grammar.Normal()},
		{LHS: "B", Pattern: grammar.Normal(grammar.NT("A"))},
		{LHS: "A", Pattern: grammar.Normal(grammar.NT("B"))},
	}
	_, err := BuildEngine(rules)
	require.Error(t, err)
	var gerr *GrammarError
	require.True(t, errors.As(err, &gerr))
	require.NotEmpty(t, gerr.Cause.InfiniteNullableLoop)
}

func TestResourceExhaustedError(t *testing.T) {
	e, err := BuildEngine(itemEffectRules(), MaxChartItems(1))
	require.NoError(t, err)
	_, err = e.Parse(context.Background(), "heal for 7", "ItemEffect")
	require.Error(t, err)
	var rerr *ResourceExhaustedError
	require.True(t, errors.As(err, &rerr))
}

// TestConcurrentParseIsSafe exercises many goroutines calling Parse on the
// same Engine concurrently: Engine carries no mutable per-parse state, so
// this must never race or cross-contaminate results (§5).
func TestConcurrentParseIsSafe(t *testing.T) {
	e, err := BuildEngine(itemEffectRules())
	require.NoError(t, err)

	const n = 50
	var wg sync.WaitGroup
	results := make([]value.Value, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = e.Parse(context.Background(), "deal 7 damage", "ItemEffect")
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, "Damage", results[i].ResourceType)
	}
}

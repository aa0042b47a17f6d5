package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadEngineConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
max_chart_items = 5000
trace_level = "debug"
`), 0o644))

	cfg, err := LoadEngineConfig(path)
	require.NoError(t, err)
	require.Equal(t, 5000, cfg.MaxChartItems)
	require.Equal(t, "debug", cfg.TraceLevel)
}

func TestLoadRulesNormalAndDisjunction(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[rule]]
lhs = "Heal"
type = "Heal"

  [[rule.symbol]]
  kind = "terminal"
  literal = "h"

  [[rule.symbol]]
  kind = "placeholder"
  name = "amount"
  type = "Int"

[[rule]]
lhs = "Effect"
alternatives = ["Heal", "Damage"]
`), 0o644))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	require.Len(t, rules, 2)

	require.Equal(t, "Heal", rules[0].LHS)
	require.False(t, rules[0].Pattern.Disjunction)
	require.Len(t, rules[0].Pattern.Symbols, 2)
	require.Equal(t, "Heal", rules[0].Out.Type)

	require.Equal(t, "Effect", rules[1].LHS)
	require.True(t, rules[1].Pattern.Disjunction)
	require.Equal(t, []string{"Heal", "Damage"}, rules[1].Pattern.Alternatives)
}

func TestLoadRulesStaticFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[rule]]
lhs = "Target"
type = "Target"

  [[rule.symbol]]
  kind = "terminal"
  literal = "s"

  [rule.static_fields.kind]
  string = "self"
`), 0o644))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	require.Equal(t, "Target", rules[0].Out.Type)
	spec, ok := rules[0].Out.StaticFields["kind"]
	require.True(t, ok)
	require.Equal(t, "self", spec.StringVal)
}

func TestLoadRulesNumericLiteralField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[rule]]
lhs = "Flags"
type = "Flags"

  [[rule.symbol]]
  kind = "terminal"
  literal = "f"

  [rule.static_fields.mask]
  literal = "0x1F"
`), 0o644))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	spec, ok := rules[0].Out.StaticFields["mask"]
	require.True(t, ok)
	require.EqualValues(t, 0x1F, spec.IntVal)
}

func TestLoadRulesInvalidNumericLiteralField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[rule]]
lhs = "Flags"
type = "Flags"

  [[rule.symbol]]
  kind = "terminal"
  literal = "f"

  [rule.static_fields.mask]
  literal = "0x1G"
`), 0o644))

	_, err := LoadRules(path)
	require.Error(t, err)
}

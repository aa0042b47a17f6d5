// Package config decodes engine configuration and rule files from TOML
// (§5 of the specification this package implements).
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/earlgrey-dsl/earlgrey/grammar"
)

// EngineConfig holds the knobs an earlgrey.Engine can be built with: a
// chart-item budget and a trace level, both optional (§5).
type EngineConfig struct {
	MaxChartItems int    `toml:"max_chart_items"`
	TraceLevel    string `toml:"trace_level"`
}

// LoadEngineConfig decodes an EngineConfig from a TOML file at path.
func LoadEngineConfig(path string) (EngineConfig, error) {
	var cfg EngineConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: decoding %q: %w", path, err)
	}
	return cfg, nil
}

// ruleFile is the on-disk TOML shape a rule-list file decodes into: one
// [[rule]] table per grammar.Rule, with the Pattern and RuleRhs fields
// flattened for readability. This is intake-only plumbing — it never
// parses quoted pattern text itself (that surface syntax is out of
// scope, §6); Symbols must already be given as an explicit symbol list.
type ruleFile struct {
	Rule []ruleEntry `toml:"rule"`
}

type ruleEntry struct {
	LHS string `toml:"lhs"`

	// Normal pattern
	Symbols []symbolEntry `toml:"symbol"`

	// Disjunction pattern
	Alternatives []string `toml:"alternatives"`

	// Output spec, all optional; omitted selects grammar's "Type(lhs)"
	// default (§6).
	Dict         bool                  `toml:"dict"`
	Type         string                `toml:"type"`
	StaticFields map[string]valueEntry `toml:"static_fields"`
}

type symbolEntry struct {
	Kind    string `toml:"kind"` // "terminal" | "nonterminal" | "placeholder"
	Literal string `toml:"literal"`
	Name    string `toml:"name"`
	Type    string `toml:"type"`
}

type valueEntry struct {
	Identifier string   `toml:"identifier"`
	Int        *int64   `toml:"int"`
	Float      *float64 `toml:"float"`
	String     *string  `toml:"string"`
	Bool       *bool    `toml:"bool"`

	// Literal holds a signed numeric literal in source form (decimal,
	// 0b/0o/0x-prefixed, or float with an exponent, §6 "Field values"),
	// resolved through grammar.ParseNumericLiteral rather than decoded
	// directly by TOML. Lets a rule file spell out "-0x1F" or "1.5e3"
	// without committing to which Go type it decodes to.
	Literal string `toml:"literal"`
}

// LoadRules decodes a rule-list TOML file at path into the grammar.Rule
// slice that grammar.ExpandRules (and so earlgrey.BuildEngine) consumes.
func LoadRules(path string) ([]grammar.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rf ruleFile
	if err := toml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("config: decoding rule file %q: %w", path, err)
	}

	rules := make([]grammar.Rule, 0, len(rf.Rule))
	for _, re := range rf.Rule {
		rule, err := toGrammarRule(re)
		if err != nil {
			return nil, fmt.Errorf("config: rule %q: %w", re.LHS, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func toGrammarRule(re ruleEntry) (grammar.Rule, error) {
	if len(re.Alternatives) > 0 {
		return grammar.Rule{LHS: re.LHS, Pattern: grammar.DisjunctionOf(re.Alternatives...)}, nil
	}

	syms := make([]grammar.Symbol, 0, len(re.Symbols))
	for _, se := range re.Symbols {
		switch se.Kind {
		case "terminal":
			syms = append(syms, grammar.Lit(se.Literal))
		case "nonterminal":
			syms = append(syms, grammar.NT(se.Name))
		case "placeholder":
			syms = append(syms, grammar.PH(se.Name, se.Type))
		default:
			return grammar.Rule{}, fmt.Errorf("unknown symbol kind %q", se.Kind)
		}
	}

	var out *grammar.RuleRhs
	if re.Dict {
		fields, err := toValueSpecs(re.StaticFields)
		if err != nil {
			return grammar.Rule{}, err
		}
		out = grammar.DictRhs(fields)
	} else if re.Type != "" {
		fields, err := toValueSpecs(re.StaticFields)
		if err != nil {
			return grammar.Rule{}, err
		}
		if len(fields) == 0 {
			out = grammar.TypeOut(re.Type)
		} else {
			out = grammar.ResourceRhs(re.Type, fields)
		}
	}

	return grammar.Rule{LHS: re.LHS, Pattern: grammar.Normal(syms...), Out: out}, nil
}

func toValueSpecs(fields map[string]valueEntry) (map[string]grammar.ValueSpec, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	out := make(map[string]grammar.ValueSpec, len(fields))
	for k, v := range fields {
		switch {
		case v.Identifier != "":
			out[k] = grammar.Identifier(v.Identifier)
		case v.Int != nil:
			out[k] = grammar.IntLit(*v.Int)
		case v.Float != nil:
			out[k] = grammar.FloatLit(*v.Float)
		case v.String != nil:
			out[k] = grammar.StringLit(*v.String)
		case v.Bool != nil:
			out[k] = grammar.BoolLit(*v.Bool)
		case v.Literal != "":
			spec, err := grammar.ParseNumericLiteral(v.Literal)
			if err != nil {
				return nil, fmt.Errorf("static field %q: %w", k, err)
			}
			out[k] = spec
		default:
			return nil, fmt.Errorf("static field %q: no value set", k)
		}
	}
	return out, nil
}

// Package interp evaluates a derivation tree against its productions'
// output specifications, producing the final structured Value (§4.5).
package interp

import (
	"strconv"

	"github.com/npillmayer/schuko/tracing"

	"github.com/earlgrey-dsl/earlgrey/deriv"
	"github.com/earlgrey-dsl/earlgrey/grammar"
	"github.com/earlgrey-dsl/earlgrey/token"
	"github.com/earlgrey-dsl/earlgrey/value"
)

func tracer() tracing.Trace {
	return tracing.Select("earlgrey.interp")
}

// MissingPlaceholder is the placeholder string yielded when a Value(v)
// or static-field Identifier references a name with no matching sibling
// placeholder (§4.5).
const MissingPlaceholder = "<missing_placeholder>"

// Interpret evaluates node into a Value, following its production's (or,
// for a leaf, its token's) output specification.
func Interpret(node *deriv.Node) (value.Value, error) {
	if node.IsLeaf() {
		return leafValue(node), nil
	}
	p := node.Production
	switch p.Out.Kind {
	case grammar.ValueOut:
		return resolveValueSpec(p.Out.Value, p, node.Children), nil
	case grammar.ResourceOut:
		fields, err := scanFields(p, node.Children)
		if err != nil {
			return value.Value{}, err
		}
		overlayStaticFields(p, node.Children, fields)
		return value.Resource(p.Out.ResourceType, fields), nil
	case grammar.DictOut:
		fields, err := scanFields(p, node.Children)
		if err != nil {
			return value.Value{}, err
		}
		overlayStaticFields(p, node.Children, fields)
		return value.Dict(fields), nil
	case grammar.TransparentOut:
		return Interpret(node.Children[0])
	default:
		return value.Value{}, &UnknownOutKind{Kind: p.Out.Kind}
	}
}

// UnknownOutKind reports a production whose output-spec kind this
// interpreter does not recognize — an internal invariant violation, since
// grammar construction only ever produces the four known kinds.
type UnknownOutKind struct {
	Kind grammar.OutKind
}

func (e *UnknownOutKind) Error() string {
	return "interp: production carries an unrecognized output-spec kind"
}

func leafValue(node *deriv.Node) value.Value {
	tok := node.Token
	switch tok.Kind {
	case token.Int:
		n, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return value.String(tok.Text)
		}
		return value.Int(n)
	case token.Float:
		f, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return value.String(tok.Text)
		}
		return value.Float(f)
	case token.StringLit:
		return value.String(tok.Text)
	default: // Char
		return value.String(tok.Text)
	}
}

// scanFields builds the field map of §4.5's Resource/Dict rule by
// scanning the production's rhs in order: a Placeholder contributes its
// own value under its field name; a NonTerminal contributes its value
// under the nonterminal's name, unless that value is a Resource tagged
// __Propagate__, in which case its fields are merged into the parent
// instead.
func scanFields(p *grammar.Production, children []*deriv.Node) (map[string]value.Value, error) {
	fields := make(map[string]value.Value)
	for i, sym := range p.RHS {
		if i >= len(children) {
			break
		}
		switch sym.Kind {
		case grammar.Placeholder:
			v, err := Interpret(children[i])
			if err != nil {
				return nil, err
			}
			fields[sym.Name] = v
		case grammar.NonTerminal:
			v, err := Interpret(children[i])
			if err != nil {
				return nil, err
			}
			if v.Kind == value.ResourceKind && v.ResourceType == grammar.PropagateType {
				for _, k := range v.Fields() {
					fv, _ := v.Field(k)
					fields[k] = fv
				}
				continue
			}
			fields[sym.Name] = v
		case grammar.Terminal:
			// terminals are skipped (§4.5)
		}
	}
	return fields, nil
}

// overlayStaticFields applies a production's static_fields on top of the
// scanned field map, last-wins on key collision (§4.5, §9).
func overlayStaticFields(p *grammar.Production, children []*deriv.Node, fields map[string]value.Value) {
	for k, spec := range p.Out.StaticFields {
		fields[k] = resolveValueSpec(spec, p, children)
	}
}

// resolveValueSpec turns a grammar.ValueSpec into its value.Value: a
// scalar literal resolves directly; an Identifier resolves to the value
// of the sibling placeholder with that name, or MissingPlaceholder if no
// such placeholder exists in this production's rhs (§4.5).
func resolveValueSpec(spec grammar.ValueSpec, p *grammar.Production, children []*deriv.Node) value.Value {
	if !spec.IsIdentifier {
		switch spec.Scalar {
		case grammar.ScalarInt:
			return value.Int(spec.IntVal)
		case grammar.ScalarFloat:
			return value.Float(spec.FloatVal)
		case grammar.ScalarString:
			return value.String(spec.StringVal)
		case grammar.ScalarBool:
			return value.Bool(spec.BoolVal)
		}
		return value.Value{}
	}
	for i, sym := range p.RHS {
		if sym.Kind == grammar.Placeholder && sym.Name == spec.Identifier && i < len(children) {
			v, err := Interpret(children[i])
			if err != nil {
				tracer().Errorf("resolving identifier %q: %v", spec.Identifier, err)
				return value.String(MissingPlaceholder)
			}
			return v
		}
	}
	return value.String(MissingPlaceholder)
}

// Package value implements the output data model: the tagged Value a
// successful parse is interpreted into — a scalar, or a Resource/Dict
// carrying a field map (§3, §4.5).
package value

import (
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// Kind discriminates the shapes a Value can take.
type Kind int

const (
	IntKind Kind = iota
	FloatKind
	StringKind
	BoolKind
	ResourceKind
	DictKind
)

func (k Kind) String() string {
	switch k {
	case IntKind:
		return "Int"
	case FloatKind:
		return "Float"
	case StringKind:
		return "String"
	case BoolKind:
		return "Bool"
	case ResourceKind:
		return "Resource"
	case DictKind:
		return "Dict"
	default:
		return "?"
	}
}

// Value is the tagged union every production ultimately evaluates to.
type Value struct {
	Kind Kind

	IntVal    int64
	FloatVal  float64
	StringVal string
	BoolVal   bool

	// ResourceKind
	ResourceType string

	// ResourceKind / DictKind
	fields map[string]Value
}

// Int builds an IntKind scalar.
func Int(v int64) Value { return Value{Kind: IntKind, IntVal: v} }

// Float builds a FloatKind scalar.
func Float(v float64) Value { return Value{Kind: FloatKind, FloatVal: v} }

// String builds a StringKind scalar.
func String(v string) Value { return Value{Kind: StringKind, StringVal: v} }

// Bool builds a BoolKind scalar.
func Bool(v bool) Value { return Value{Kind: BoolKind, BoolVal: v} }

// Resource builds a ResourceKind value with the given type tag and fields.
func Resource(resourceType string, fields map[string]Value) Value {
	return Value{Kind: ResourceKind, ResourceType: resourceType, fields: fields}
}

// Dict builds a DictKind value with the given fields.
func Dict(fields map[string]Value) Value {
	return Value{Kind: DictKind, fields: fields}
}

// Field looks up a named field on a Resource or Dict value.
func (v Value) Field(name string) (Value, bool) {
	f, ok := v.fields[name]
	return f, ok
}

// Fields returns the value's field names in sorted order, so output is
// deterministic regardless of the map iteration order used to build it.
func (v Value) Fields() []string {
	if len(v.fields) == 0 {
		return nil
	}
	set := treeset.NewWith(utils.StringComparator)
	for k := range v.fields {
		set.Add(k)
	}
	out := make([]string, 0, set.Size())
	for _, k := range set.Values() {
		out = append(out, k.(string))
	}
	return out
}

// FieldMap returns a copy of the value's field map, for callers (e.g.
// MarshalJSON) that need to build on top of it without aliasing.
func (v Value) FieldMap() map[string]Value {
	out := make(map[string]Value, len(v.fields))
	for k, val := range v.fields {
		out[k] = val
	}
	return out
}

func (v Value) String() string {
	switch v.Kind {
	case IntKind:
		return fmt.Sprintf("%d", v.IntVal)
	case FloatKind:
		return fmt.Sprintf("%g", v.FloatVal)
	case StringKind:
		return fmt.Sprintf("%q", v.StringVal)
	case BoolKind:
		return fmt.Sprintf("%t", v.BoolVal)
	case ResourceKind:
		return fmt.Sprintf("%s%s", v.ResourceType, v.fieldsString())
	case DictKind:
		return v.fieldsString()
	default:
		return "?"
	}
}

func (v Value) fieldsString() string {
	s := "{"
	for i, k := range v.Fields() {
		if i > 0 {
			s += ", "
		}
		s += k + ": " + v.fields[k].String()
	}
	return s + "}"
}

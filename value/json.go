package value

import "encoding/json"

// MarshalJSON renders a Value as plain JSON: scalars as their native JSON
// type, Dict as a bare object, and Resource as an object carrying a
// reserved "$type" key alongside its fields — used by cmd/earlgreyctl to
// pretty-print a parse result.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case IntKind:
		return json.Marshal(v.IntVal)
	case FloatKind:
		return json.Marshal(v.FloatVal)
	case StringKind:
		return json.Marshal(v.StringVal)
	case BoolKind:
		return json.Marshal(v.BoolVal)
	case DictKind:
		return json.Marshal(v.FieldMap())
	case ResourceKind:
		m := make(map[string]interface{}, len(v.fields)+1)
		for k, f := range v.fields {
			m[k] = f
		}
		m["$type"] = v.ResourceType
		return json.Marshal(m)
	default:
		return []byte("null"), nil
	}
}

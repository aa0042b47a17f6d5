package value

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFieldsSortedDeterministic(t *testing.T) {
	v := Resource("Effect", map[string]Value{
		"zebra": Int(1),
		"alpha": Int(2),
		"mango": Int(3),
	})
	require.Equal(t, []string{"alpha", "mango", "zebra"}, v.Fields())
}

func TestResourceFieldLookup(t *testing.T) {
	v := Resource("Effect", map[string]Value{"kind": String("status")})
	f, ok := v.Field("kind")
	require.True(t, ok)
	require.Equal(t, "status", f.StringVal)
	_, ok = v.Field("missing")
	require.False(t, ok)
}

func TestMarshalJSONScalars(t *testing.T) {
	b, err := json.Marshal(Int(7))
	require.NoError(t, err)
	require.JSONEq(t, `7`, string(b))

	b, err = json.Marshal(String("burned"))
	require.NoError(t, err)
	require.JSONEq(t, `"burned"`, string(b))
}

func TestMarshalJSONResourceIncludesType(t *testing.T) {
	v := Resource("Effect", map[string]Value{"status": String("burned")})
	b, err := json.Marshal(v)
	require.NoError(t, err)
	require.JSONEq(t, `{"$type":"Effect","status":"burned"}`, string(b))
}

func TestMarshalJSONDict(t *testing.T) {
	v := Dict(map[string]Value{"status": String("burned")})
	b, err := json.Marshal(v)
	require.NoError(t, err)
	require.JSONEq(t, `{"status":"burned"}`, string(b))
}

func TestStringRendersResource(t *testing.T) {
	v := Resource("Effect", map[string]Value{"status": String("burned")})
	require.Equal(t, `Effect{status: "burned"}`, v.String())
}

package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentify(t *testing.T) {
	tests := []struct {
		tag  string
		want Language
	}{
		{"", Empty},
		{"rust", Rust},
		{"rs", Rust},
		{"swift", Swift},
		{"swift reds", Redscript},
		{"swift redscript", Redscript},
		{"cpp", Cpp},
		{"lua", Lua},
		{"yaml", YAML},
		{"yml", YAML},
		{"json", JSON},
		{"xml", XML},
		{"javascript", JavaScript},
		{"js", JavaScript},
		{"typescript", TypeScript},
		{"ts", TypeScript},
		{"csharp", CSharp},
		{"c#", CSharp},
		{"python", Unknown},
		{"Rust", Unknown},
		{"rust,ignore", Unknown},
		{"swift other", Unknown},
		{" rust", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.want, Identify(tt.tag))
			assert.Equal(t, !tt.want.IsSentinel(), IsRecognized(tt.tag))
		})
	}
}

func TestRegistryInvariants(t *testing.T) {
	seen := map[string]Language{}
	for _, l := range Supported() {
		require.NotEmpty(t, l.OptionKey(), "option key for %v", l)
		require.NotEmpty(t, l.Aliases(), "aliases for %v", l)
		require.NotEmpty(t, l.Label())
		require.NotEqual(t, "#", l.Link())
		require.NotEmpty(t, l.Icon())

		for _, alias := range l.Aliases() {
			prev, dup := seen[alias]
			require.False(t, dup, "alias %q registered for both %v and %v", alias, prev, l)
			seen[alias] = l
			assert.Equal(t, l, Identify(alias))
		}
	}
}

func TestSentinels(t *testing.T) {
	for _, l := range []Language{Empty, Unknown} {
		assert.True(t, l.IsSentinel())
		assert.Empty(t, l.OptionKey())
		assert.Empty(t, l.Aliases())
		assert.Equal(t, "#", l.Link())
		assert.Empty(t, l.Icon())
	}
	assert.Equal(t, "unknown", Unknown.Label())
	assert.Empty(t, Empty.Label())
}

func TestOptionKeys(t *testing.T) {
	keys := OptionKeys()
	require.Len(t, keys, len(Supported()))
	assert.Equal(t, "redscript", keys[0])
	assert.Contains(t, keys, "csharp")
	assert.NotContains(t, keys, "swift reds")

	for _, k := range keys {
		l, ok := FromOptionKey(k)
		require.True(t, ok)
		assert.Equal(t, k, l.OptionKey())
	}

	_, ok := FromOptionKey("icon")
	assert.False(t, ok)
}

func TestSupportedReturnsCopy(t *testing.T) {
	a := Supported()
	a[0] = Unknown
	assert.Equal(t, Redscript, Supported()[0])
}

package variables

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/erraggy/serverconf/scerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstitute(t *testing.T) {
	lookup := MapLookup{
		"dir":   "apps",
		"name":  "shop",
		"empty": "",
		"loop":  "${loop}",
		"ref":   "${dir}",
	}

	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "no placeholders", raw: "plain.war", expected: "plain.war"},
		{name: "single", raw: "${dir}/a.war", expected: "apps/a.war"},
		{name: "multiple", raw: "${dir}/${name}.war", expected: "apps/shop.war"},
		{name: "repeated", raw: "${name}-${name}", expected: "shop-shop"},
		{name: "unresolved kept", raw: "${missing}/a.war", expected: "${missing}/a.war"},
		{name: "empty value kept", raw: "${empty}/a.war", expected: "${empty}/a.war"},
		{name: "mixed", raw: "${dir}/${missing}", expected: "apps/${missing}"},
		{name: "not recursive", raw: "${ref}/a.war", expected: "${dir}/a.war"},
		{name: "self reference", raw: "${loop}", expected: "${loop}"},
		{name: "unterminated", raw: "${dir", expected: "${dir"},
		{name: "non greedy", raw: "${dir}}", expected: "apps}"},
		{name: "empty name", raw: "${}", expected: "${}"},
		{name: "dollar only", raw: "$dir", expected: "$dir"},
		{name: "empty string", raw: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Substitute(tt.raw, lookup))
		})
	}

	t.Run("nil lookup", func(t *testing.T) {
		assert.Equal(t, "${dir}", Substitute("${dir}", nil))
	})
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Placeholders("${a}/${b}/${a}"))
	assert.Nil(t, Placeholders("nothing here"))
	assert.Equal(t, []string{""}, Placeholders("${}"))
}

func TestUnresolved(t *testing.T) {
	lookup := MapLookup{"a": "1", "empty": ""}
	assert.Equal(t, []string{"empty", "b"}, Unresolved("${a}${empty}${b}", lookup))
	assert.Nil(t, Unresolved("${a}", lookup))
	assert.Equal(t, []string{"a"}, Unresolved("${a}", nil))
}

func TestFold(t *testing.T) {
	table := Fold(
		Tier{Name: TierServerEnv, Values: map[string]string{"a": "env", "b": "env"}},
		Tier{Name: TierBootstrap, Values: map[string]string{"b": "boot", "c": "boot"}},
		Tier{Name: TierInclude},
		Tier{Name: TierServerXML, Values: map[string]string{"c": "xml"}},
	)

	assert.Equal(t, map[string]string{"a": "env", "b": "boot", "c": "xml"}, table.Map())
	assert.Equal(t, []string{"a", "b", "c"}, table.Names())
	assert.Equal(t, 3, table.Len())

	t.Run("provenance", func(t *testing.T) {
		assert.Equal(t, map[string]string{"a": TierServerEnv, "b": TierBootstrap, "c": TierServerXML}, table.Provenance())
		origin, ok := table.Origin("c")
		assert.True(t, ok)
		assert.Equal(t, TierServerXML, origin)
		_, ok = table.Origin("missing")
		assert.False(t, ok)
	})

	t.Run("explain", func(t *testing.T) {
		assert.Equal(t, []Definition{
			{Tier: TierBootstrap, Value: "boot"},
			{Tier: TierServerXML, Value: "xml"},
		}, table.Explain("c"))
		assert.Empty(t, table.Explain("missing"))
	})

	t.Run("map is a copy", func(t *testing.T) {
		m := table.Map()
		m["a"] = "changed"
		v, _ := table.Lookup("a")
		assert.Equal(t, "env", v)
	})

	t.Run("later tier overwrites empty value", func(t *testing.T) {
		tb := Fold(
			Tier{Name: "first", Values: map[string]string{"x": "value"}},
			Tier{Name: "second", Values: map[string]string{"x": ""}},
		)
		v, ok := tb.Lookup("x")
		assert.True(t, ok)
		assert.Equal(t, "", v)
		assert.Equal(t, "${x}", Substitute("${x}", tb))
	})

	t.Run("empty", func(t *testing.T) {
		tb := Fold()
		assert.Equal(t, 0, tb.Len())
		assert.Equal(t, map[string]string{}, tb.Map())
	})

	t.Run("nil table", func(t *testing.T) {
		var tb *Table
		_, ok := tb.Lookup("a")
		assert.False(t, ok)
		assert.Equal(t, 0, tb.Len())
		assert.Equal(t, "${a}", Substitute("${a}", tb))
	})
}

func TestLoadProperties(t *testing.T) {
	content := `# comment
! another comment
plain=value
colon: spaced value
  indented = trimmed
multi = first \
        second
escaped=caf\u00e9
ref=${plain}
empty=
`
	m, err := LoadProperties(io.NopCloser(strings.NewReader(content)), "test.properties")
	require.NoError(t, err)

	assert.Equal(t, "value", m["plain"])
	assert.Equal(t, "spaced value", m["colon"])
	assert.Equal(t, "trimmed", m["indented"])
	assert.Equal(t, "first second", m["multi"])
	assert.Equal(t, "café", m["escaped"])
	assert.Equal(t, "${plain}", m["ref"], "expansion must stay disabled")
	v, ok := m["empty"]
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestLoadPropertiesFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("server.env style", func(t *testing.T) {
		path := filepath.Join(dir, "server.env")
		require.NoError(t, os.WriteFile(path, []byte("JAVA_HOME=/opt/java\nkeystore_password=secret\n"), 0o600))

		m, err := LoadPropertiesFile(path)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"JAVA_HOME": "/opt/java", "keystore_password": "secret"}, m)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadPropertiesFile(filepath.Join(dir, "missing.properties"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.ErrorIs(t, err, scerrors.ErrProperties)
	})

	t.Run("malformed escape", func(t *testing.T) {
		path := filepath.Join(dir, "bad.properties")
		require.NoError(t, os.WriteFile(path, []byte("key=\\uZZZZ\n"), 0o600))

		_, err := LoadPropertiesFile(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, scerrors.ErrProperties)
	})
}

package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedStylesLoad(t *testing.T) {
	for _, name := range []string{"Header", "TableHeader", "Cell", "Module", "Unclassified", "Error"} {
		_, ok := StyleRegistry[name]
		assert.True(t, ok, "style %s missing", name)
	}
}

func TestLoadStylesFromData(t *testing.T) {
	saved := StyleRegistry
	t.Cleanup(func() { StyleRegistry = saved })

	err := LoadStylesFromData([]byte(`
colors:
  red: {light: "#ff0000", dark: "#ff0000"}
styles:
  Alert:
    bold: true
    foreground: red
`))
	require.NoError(t, err)
	assert.True(t, Get("Alert").GetBold())
	assert.False(t, Get("Missing").GetBold())

	assert.Error(t, LoadStylesFromData([]byte("styles: [")))
}

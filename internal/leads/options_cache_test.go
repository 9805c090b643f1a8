package leads

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsCacheSharesFallbackEntry(t *testing.T) {
	c := newOptionsCache(DefaultCatalog())

	en, err := c.get("en")
	require.NoError(t, err)
	unknown, err := c.get("zz")
	require.NoError(t, err)
	assert.Equal(t, en, unknown)
	assert.Equal(t, 1, c.cache.Len())

	he, err := c.get("he")
	require.NoError(t, err)
	var view OptionsView
	require.NoError(t, json.Unmarshal(he, &view))
	assert.Equal(t, "he", view.Locale)
	assert.Equal(t, 2, c.cache.Len())
}

package leads

import (
	"encoding/json"

	lru "github.com/hashicorp/golang-lru/v2"
)

// optionsCache keeps the encoded options view per resolved locale. The
// catalog never changes after startup, so entries never go stale.
type optionsCache struct {
	catalog *Catalog
	cache   *lru.Cache[string, []byte]
}

func newOptionsCache(catalog *Catalog) *optionsCache {
	// One slot per captioned locale is all that can ever be requested.
	size := len(catalog.Captions)
	if size < 1 {
		size = 1
	}
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[string, []byte](size)
	return &optionsCache{catalog: catalog, cache: cache}
}

// get returns the JSON view for locale; unknown locales share the
// default locale's entry.
func (c *optionsCache) get(locale string) ([]byte, error) {
	if !c.catalog.HasLocale(locale) {
		locale = DefaultLocale
	}
	if body, ok := c.cache.Get(locale); ok {
		return body, nil
	}
	body, err := json.Marshal(c.catalog.Options(locale))
	if err != nil {
		return nil, err
	}
	c.cache.Add(locale, body)
	return body, nil
}

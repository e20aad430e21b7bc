package slugs

// Cache memoizes per-file slug lists for the duration of one scan. Keys must
// be canonical paths so that different spellings of the same file share one
// entry. Entries are inserted at most once per key and never invalidated; the
// scan assumes file contents do not change while it runs.
type Cache struct {
	entries map[string][]string
	loader  func(path string) ([]string, error)
}

// NewCache returns a cache backed by FromFile.
func NewCache() *Cache {
	return NewCacheWithLoader(FromFile)
}

// NewCacheWithLoader returns a cache with a custom slug loader. Tests use
// this to count how often slug extraction actually runs.
func NewCacheWithLoader(loader func(string) ([]string, error)) *Cache {
	return &Cache{entries: make(map[string][]string), loader: loader}
}

// Slugs returns the slug list for canonPath, invoking the loader on first
// access. Loader failures are not cached.
func (c *Cache) Slugs(canonPath string) ([]string, error) {
	if cached, ok := c.entries[canonPath]; ok {
		return cached, nil
	}
	loaded, err := c.loader(canonPath)
	if err != nil {
		return nil, err
	}
	c.entries[canonPath] = loaded
	return loaded, nil
}

// Len reports how many files have been loaded into the cache.
func (c *Cache) Len() int {
	return len(c.entries)
}

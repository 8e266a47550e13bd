package recruiting

// resumeCache holds extracted resume text for the duration of one
// pipeline run, keyed by file path. Empty extractions are never stored
// so a failed file is re-attempted on the next reference to it.
type resumeCache struct {
	entries map[string]string
}

func newResumeCache() *resumeCache {
	return &resumeCache{entries: make(map[string]string)}
}

// Get returns the cached text for a path, if present
func (c *resumeCache) Get(path string) (string, bool) {
	text, ok := c.entries[path]
	return text, ok
}

// Put stores extracted text for a path. Empty text is ignored.
func (c *resumeCache) Put(path, text string) {
	if text == "" {
		return
	}
	c.entries[path] = text
}

// Len returns the number of cached extractions
func (c *resumeCache) Len() int {
	return len(c.entries)
}

// Package classifier decides what happens to a single file during ingestion:
// whether it is ignored, which project subfolder it belongs to and what its
// name becomes under a naming convention. Everything here is a pure function
// of the configured tables; no filesystem access.
package classifier

import (
	"fmt"
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ignoreCacheSize bounds the memo of recent ShouldIgnore answers
const ignoreCacheSize = 4096

// IgnoreMatcher tests bare file and directory names against ignore patterns
type IgnoreMatcher struct {
	patterns []*regexp.Regexp
	cache    *lru.Cache[string, bool]
}

// NewIgnoreMatcher compiles the patterns. Each pattern is anchored at the
// start of the name, so "node_modules" matches "node_modules" and
// "node_modules_old" but not "my_node_modules".
func NewIgnoreMatcher(patterns []string) (*IgnoreMatcher, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(`^(?:` + p + `)`)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}

	cache, err := lru.New[string, bool](ignoreCacheSize)
	if err != nil {
		return nil, err
	}

	return &IgnoreMatcher{patterns: compiled, cache: cache}, nil
}

// ShouldIgnore reports whether name matches any ignore pattern.
// name must be a single path element, not a path.
func (m *IgnoreMatcher) ShouldIgnore(name string) bool {
	if m == nil {
		return false
	}
	if hit, ok := m.cache.Get(name); ok {
		return hit
	}

	ignored := false
	for _, re := range m.patterns {
		if re.MatchString(name) {
			ignored = true
			break
		}
	}

	m.cache.Add(name, ignored)
	return ignored
}

// Len returns the number of compiled patterns
func (m *IgnoreMatcher) Len() int {
	if m == nil {
		return 0
	}
	return len(m.patterns)
}

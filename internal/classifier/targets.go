package classifier

// AnySubcategory in a Target matches every subcategory of its category
const AnySubcategory = "*"

// Target maps a (category, subcategory) pair to a path relative to the
// project root. Flat categories use an empty Subcategory.
type Target struct {
	Category    string
	Subcategory string
	Path        string
}

// TargetMap resolves category pairs to project-relative target paths.
// Exact pairs win over AnySubcategory entries; among equal keys the last
// entry wins, so later (user) entries override earlier (default) ones.
type TargetMap struct {
	exact    map[targetKey]string
	wildcard map[string]string
}

type targetKey struct {
	category    string
	subcategory string
}

// NewTargetMap indexes targets
func NewTargetMap(targets []Target) *TargetMap {
	m := &TargetMap{
		exact:    make(map[targetKey]string, len(targets)),
		wildcard: make(map[string]string),
	}

	for _, t := range targets {
		if t.Subcategory == AnySubcategory {
			m.wildcard[t.Category] = t.Path
			continue
		}
		m.exact[targetKey{t.Category, t.Subcategory}] = t.Path
	}

	return m
}

// Lookup returns the target path for a category pair
func (m *TargetMap) Lookup(category, subcategory string) (string, bool) {
	if p, ok := m.exact[targetKey{category, subcategory}]; ok && p != "" {
		return p, true
	}
	if p, ok := m.wildcard[category]; ok && p != "" {
		return p, true
	}
	return "", false
}

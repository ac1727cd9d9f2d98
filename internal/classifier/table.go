package classifier

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrAmbiguousExtension is returned by NewTable when two rules claim the same extension
var ErrAmbiguousExtension = errors.New("extension claimed by more than one rule")

// Rule is one entry of the classification table
type Rule struct {
	Category    string
	Subcategory string
	Extensions  []string
	// Target is the project-relative destination; empty means the rule
	// is known but its files stay unclassified.
	Target string
}

// Name returns "category" or "category/subcategory"
func (r Rule) Name() string {
	if r.Subcategory == "" {
		return r.Category
	}
	return r.Category + "/" + r.Subcategory
}

// Table is the immutable extension → target lookup
type Table struct {
	rules []Rule
	index map[string]int
}

// NewTable builds the extension index. Extensions are normalized to
// lowercase with a leading dot. An extension listed by two different rules
// is rejected instead of silently depending on rule order.
func NewTable(rules []Rule) (*Table, error) {
	t := &Table{
		rules: make([]Rule, 0, len(rules)),
		index: make(map[string]int),
	}

	for _, r := range rules {
		normalized := Rule{
			Category:    r.Category,
			Subcategory: r.Subcategory,
			Target:      filepath.ToSlash(strings.Trim(r.Target, `/\`)),
			Extensions:  make([]string, 0, len(r.Extensions)),
		}

		pos := len(t.rules)
		for _, ext := range r.Extensions {
			ext = NormalizeExtension(ext)
			if ext == "" {
				continue
			}
			if prev, ok := t.index[ext]; ok {
				if prev == pos {
					continue
				}
				return nil, fmt.Errorf("%w: %s in %s and %s",
					ErrAmbiguousExtension, ext, t.rules[prev].Name(), normalized.Name())
			}
			t.index[ext] = pos
			normalized.Extensions = append(normalized.Extensions, ext)
		}

		t.rules = append(t.rules, normalized)
	}

	return t, nil
}

// CategoryFor returns the project-relative target folder for filename,
// or false when the file is unclassified.
func (t *Table) CategoryFor(filename string) (string, bool) {
	r, ok := t.RuleFor(filename)
	if !ok || r.Target == "" {
		return "", false
	}
	return filepath.FromSlash(r.Target), true
}

// RuleFor returns the rule owning the extension of filename
func (t *Table) RuleFor(filename string) (Rule, bool) {
	_, ext := SplitExt(filepath.Base(filename))
	if ext == "" {
		return Rule{}, false
	}

	pos, ok := t.index[strings.ToLower(ext)]
	if !ok {
		return Rule{}, false
	}
	return t.rules[pos], true
}

// Rules returns a copy of the normalized rules in configured order
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// NormalizeExtension lowercases ext and ensures a single leading dot
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	ext = strings.TrimLeft(ext, ".")
	if ext == "" {
		return ""
	}
	return "." + ext
}

// SplitExt splits name into base and extension. Leading dots belong to the
// base, so ".gitignore" has no extension while "archive.tar.gz" has ".gz".
func SplitExt(name string) (base, ext string) {
	trimmed := strings.TrimLeft(name, ".")
	ext = filepath.Ext(trimmed)
	return name[:len(name)-len(ext)], ext
}

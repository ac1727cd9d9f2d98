package classifier

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FormatterKind selects how a base name is rewritten
type FormatterKind string

const (
	FormatIdentity   FormatterKind = "identity"
	FormatSnakeCase  FormatterKind = "snake_case"
	FormatPascalCase FormatterKind = "pascal_case"
)

// ErrUnknownPattern is returned for a naming pattern that is not configured
var ErrUnknownPattern = errors.New("unknown naming pattern")

// ParseFormatterKind accepts the canonical kinds plus the spellings used in
// older config files ("PascalCase", "snake", "none").
func ParseFormatterKind(s string) (FormatterKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "identity", "none", "keep":
		return FormatIdentity, nil
	case "snake_case", "snake", "snakecase":
		return FormatSnakeCase, nil
	case "pascal_case", "pascal", "pascalcase":
		return FormatPascalCase, nil
	default:
		return "", fmt.Errorf("unknown formatter %q", s)
	}
}

func isNameSeparator(r rune) bool {
	return r == '-' || r == '_' || r == ' '
}

// Format applies kind to a base name (no extension). Separators are '-',
// '_' and space; empty tokens from repeated separators are dropped.
func Format(base string, kind FormatterKind) string {
	switch kind {
	case FormatSnakeCase:
		tokens := strings.FieldsFunc(base, isNameSeparator)
		for i, tok := range tokens {
			tokens[i] = strings.ToLower(tok)
		}
		return strings.Join(tokens, "_")

	case FormatPascalCase:
		var b strings.Builder
		for _, tok := range strings.FieldsFunc(base, isNameSeparator) {
			b.WriteString(capitalize(tok))
		}
		return b.String()

	default:
		return base
	}
}

// capitalize upper-cases the first rune and lower-cases the rest
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return strings.ToLower(s)
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// RenameFile formats the base of filename and keeps its extension as is.
// If formatting would leave an empty base the original name is kept.
func RenameFile(filename string, kind FormatterKind) string {
	base, ext := SplitExt(filename)
	formatted := Format(base, kind)
	if formatted == "" {
		return filename
	}
	return formatted + ext
}

// Namer resolves configured naming-pattern names to formatter kinds
type Namer struct {
	patterns map[string]FormatterKind
}

// NewNamer builds a Namer from pattern name → kind
func NewNamer(patterns map[string]FormatterKind) *Namer {
	m := make(map[string]FormatterKind, len(patterns))
	for name, kind := range patterns {
		m[name] = kind
	}
	return &Namer{patterns: m}
}

// Kind returns the formatter for pattern. The empty pattern means identity.
func (n *Namer) Kind(pattern string) (FormatterKind, error) {
	if pattern == "" {
		return FormatIdentity, nil
	}
	if n != nil {
		if kind, ok := n.patterns[pattern]; ok {
			return kind, nil
		}
	}
	return "", fmt.Errorf("%w: %q (available: %s)", ErrUnknownPattern, pattern, strings.Join(n.Names(), ", "))
}

// Names lists the configured pattern names, sorted
func (n *Namer) Names() []string {
	if n == nil {
		return nil
	}
	names := make([]string, 0, len(n.patterns))
	for name := range n.patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Rename applies the formatter registered for pattern to filename
func (n *Namer) Rename(filename, pattern string) (string, error) {
	kind, err := n.Kind(pattern)
	if err != nil {
		return "", err
	}
	return RenameFile(filename, kind), nil
}

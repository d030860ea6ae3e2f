package lang

import (
	"sort"
	"strings"
)

// Mode describes one language variant: its name, the file extensions it
// claims, and the word tables the colorizer consults. Tables are
// `|`-delimited lowercase word lists; a word matches only when flanked
// by `|` on both sides.
type Mode struct {
	Name       string
	Extensions []string // without the leading dot
	Keywords   string
	Types      string
}

// HasKeyword reports whether the folded word is in the keyword table.
func (m *Mode) HasKeyword(word string) bool {
	return hasWord(m.Keywords, word)
}

// HasType reports whether the folded word is in the type table.
func (m *Mode) HasType(word string) bool {
	return hasWord(m.Types, word)
}

// WordCount returns the number of words in a `|`-delimited table.
func WordCount(table string) int {
	n := strings.Count(table, "|")
	if n == 0 {
		return 0
	}
	return n - 1
}

// Table joins words into the `|`-delimited form the matcher expects.
// Words are folded to lowercase; empty input yields an empty table.
func Table(words []string) string {
	if len(words) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteByte('|')
	for _, w := range words {
		sb.WriteString(strings.ToLower(w))
		sb.WriteByte('|')
	}
	return sb.String()
}

func hasWord(table, word string) bool {
	if word == "" {
		return false
	}
	return strings.Contains(table, "|"+word+"|")
}

// Registry maps file extensions to registered modes. The host consumes
// it once at startup; registration order decides ties.
type Registry struct {
	modes []*Mode
	byExt map[string]*Mode
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]*Mode)}
}

// Register adds a mode and binds its extensions. The first mode to
// claim an extension keeps it.
func (r *Registry) Register(m *Mode) {
	r.modes = append(r.modes, m)
	for _, ext := range m.Extensions {
		if _, taken := r.byExt[ext]; !taken {
			r.byExt[ext] = m
		}
	}
}

// ForExtension returns the mode bound to ext (no leading dot).
func (r *Registry) ForExtension(ext string) (*Mode, bool) {
	m, ok := r.byExt[strings.TrimPrefix(ext, ".")]
	return m, ok
}

// ForName returns the mode with the given name, case-insensitively.
func (r *Registry) ForName(name string) (*Mode, bool) {
	for _, m := range r.modes {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return nil, false
}

// Modes returns the registered modes sorted by name.
func (r *Registry) Modes() []*Mode {
	out := make([]*Mode, len(r.modes))
	copy(out, r.modes)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

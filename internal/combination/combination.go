// Package combination models per-item trait selections and draws them at random.
package combination

import (
	"path/filepath"
	"strings"
)

// Pair is one category's chosen trait.
type Pair struct {
	Category string
	Trait    string
}

// Value is the trait's display value: its filename without the extension.
// Dotfiles such as ".png" have no extension and keep their full name.
func (p Pair) Value() string {
	base := strings.TrimSuffix(p.Trait, filepath.Ext(p.Trait))
	if strings.Trim(base, ".") == "" {
		return p.Trait
	}
	return base
}

// Combination holds one Pair per category, in category order.
type Combination []Pair

// Equal reports whether both combinations pick the same trait for every category.
func (c Combination) Equal(other Combination) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// Key encodes the combination as a string usable as a map key.
// NUL cannot appear in filenames, so distinct combinations never share a key.
func (c Combination) Key() string {
	var b strings.Builder
	for i, p := range c {
		if i > 0 {
			b.WriteByte(0)
		}
		b.WriteString(p.Category)
		b.WriteByte(0)
		b.WriteString(p.Trait)
	}
	return b.String()
}

// String renders the combination for logs, e.g. "background=A hat=X".
func (c Combination) String() string {
	parts := make([]string, len(c))
	for i, p := range c {
		parts[i] = p.Category + "=" + p.Value()
	}
	return strings.Join(parts, " ")
}

// Set records every combination accepted during a run.
type Set struct {
	seen map[string]struct{}
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{seen: make(map[string]struct{})}
}

// Contains reports whether c was added before.
func (s *Set) Contains(c Combination) bool {
	_, ok := s.seen[c.Key()]
	return ok
}

// Add registers c. It returns false if c was already present.
func (s *Set) Add(c Combination) bool {
	key := c.Key()
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}

// Len returns the number of combinations recorded.
func (s *Set) Len() int {
	return len(s.seen)
}

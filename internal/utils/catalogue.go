package utils

import (
	"strings"
)

// Catalogue is an ordered list of known names matched by case-insensitive substring.
// Order is scan order: on overlapping names the earlier entry wins.
type Catalogue struct {
	names []string
	lower []string
}

// NewCatalogue builds a catalogue from names in priority order
func NewCatalogue(names ...string) *Catalogue {
	c := &Catalogue{
		names: make([]string, 0, len(names)),
		lower: make([]string, 0, len(names)),
	}
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		c.names = append(c.names, trimmed)
		c.lower = append(c.lower, strings.ToLower(trimmed))
	}
	return c
}

// FirstIn returns the first catalogue entry contained in text
func (c *Catalogue) FirstIn(text string) (string, bool) {
	textLower := strings.ToLower(text)
	for i, name := range c.lower {
		if strings.Contains(textLower, name) {
			return c.names[i], true
		}
	}
	return "", false
}

// Lookup returns the canonical spelling of an exact (case-insensitive) entry
func (c *Catalogue) Lookup(name string) (string, bool) {
	nameLower := strings.ToLower(strings.TrimSpace(name))
	for i, entry := range c.lower {
		if entry == nameLower {
			return c.names[i], true
		}
	}
	return "", false
}

// Names returns a copy of the entries in scan order
func (c *Catalogue) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len returns the number of entries
func (c *Catalogue) Len() int {
	return len(c.names)
}

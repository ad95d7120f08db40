package catalog

import (
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/mculib/regbits/pkg/hw/mmio"
)

// matchName finds the one catalog name the given prefix identifies: a
// single prefix match wins, and an exact name wins over other names it
// is also a prefix of.
func matchName[V any](names map[string]V, match string) (string, error) {
	var matches []string
	for name := range names {
		if strings.HasPrefix(name, match) {
			matches = append(matches, name)
		}
	}

	if len(matches) == 1 {
		return matches[0], nil
	}
	if slices.Contains(matches, match) {
		return match, nil
	}

	return "", makeError(ErrUnknownName, "unable to identify '%v'", match)
}

// MatchBase resolves a peripheral base name from an unambiguous
// prefix.
func (c *Catalog) MatchBase(match string) (string, error) {
	return matchName(c.Bases, match)
}

// MatchRegister resolves a register name from an unambiguous prefix.
func (c *Catalog) MatchRegister(match string) (string, error) {
	return matchName(c.Registers, match)
}

// BaseNames returns every peripheral base name, sorted.
func (c *Catalog) BaseNames() []string {
	names := maps.Keys(c.Bases)
	slices.Sort(names)

	return names
}

// RegisterNames returns the sorted names of the peripheral's registers
// that have the given access width.
func (c *Catalog) RegisterNames(base string, w mmio.Width) []string {
	prefix := RegisterPrefix(base)

	var names []string
	for name := range c.Registers {
		if strings.HasPrefix(name, prefix) && RegisterWidth(name) == w {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	return names
}

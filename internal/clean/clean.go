// Package clean normalizes the noisy project names found in report exports.
package clean

import "strings"

// Cleaner holds the name-cleaning rules. Rules compose in a fixed order:
// an exact rename wins outright; otherwise suffix rules truncate, then
// substring rules delete, then whitespace is collapsed.
type Cleaner struct {
	// Renames maps an exact raw project name to its replacement. A renamed
	// project skips the suffix and substring rules entirely.
	Renames map[string]string

	// Suffixes lists markers that truncate the name: everything from the
	// first matching marker to the end is dropped. Useful for trailing
	// account codes ("NSF CAREER K302777" -> "NSF CAREER" via "K302").
	Suffixes []string

	// Substrings lists fragments removed wherever they occur.
	Substrings []string
}

// Merge returns a cleaner combining c with additional rules.
func (c Cleaner) Merge(other Cleaner) Cleaner {
	merged := Cleaner{
		Renames:    make(map[string]string, len(c.Renames)+len(other.Renames)),
		Suffixes:   append(append([]string{}, c.Suffixes...), other.Suffixes...),
		Substrings: append(append([]string{}, c.Substrings...), other.Substrings...),
	}
	for k, v := range c.Renames {
		merged.Renames[k] = v
	}
	for k, v := range other.Renames {
		merged.Renames[k] = v
	}
	return merged
}

// Clean applies the rules to one raw project name.
func (c Cleaner) Clean(name string) string {
	if replacement, ok := c.Renames[name]; ok {
		return replacement
	}

	for _, marker := range c.Suffixes {
		if marker == "" {
			continue
		}
		if idx := strings.Index(name, marker); idx >= 0 {
			name = name[:idx]
			break
		}
	}

	for _, sub := range c.Substrings {
		if sub == "" {
			continue
		}
		name = strings.ReplaceAll(name, sub, "")
	}

	return collapseSpaces(name)
}

// IsEmpty reports whether the cleaner has no rules at all.
func (c Cleaner) IsEmpty() bool {
	return len(c.Renames) == 0 && len(c.Suffixes) == 0 && len(c.Substrings) == 0
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

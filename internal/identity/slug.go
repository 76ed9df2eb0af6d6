// Package identity links college names across independently authored tables.
//
// Every component that needs a canonical key goes through Slugify so the
// resolver, the presentation layer and the CLI can never drift apart.
package identity

import "strings"

// Separator joins the alphanumeric runs of a slug.
const Separator = '_'

// Slugify lower-cases name, collapses every run of characters outside
// [a-z0-9] into a single Separator and trims separators at both ends.
// It is total: empty or symbol-only input yields "".
func Slugify(name string) string {
	lower := strings.ToLower(name)
	var b strings.Builder
	b.Grow(len(lower))
	pending := false
	for i := 0; i < len(lower); i++ {
		ch := lower[i]
		if (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte(Separator)
			}
			pending = false
			b.WriteByte(ch)
			continue
		}
		pending = true
	}
	return b.String()
}

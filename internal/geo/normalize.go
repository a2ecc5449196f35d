// Package geo loads administrative boundary geometry and joins district risk
// records into it by normalized place name.
package geo

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// adminSuffixes lists administrative labels boundary files append to bare
// place names ("GASABO DISTRICT" vs the survey's "Gasabo"). Compared after
// folding and stripping, so they are lowercase alphanumeric.
var adminSuffixes = []string{"district", "city"}

// Normalize canonicalizes a free-text place name into a matching key:
// Unicode NFKD decomposition, case fold, strip everything that is not an
// ASCII letter or digit (which drops the combining marks NFKD separated
// out), then trim a trailing administrative label. Idempotent, so both
// sides of a join can be keyed through it safely.
func Normalize(name string) string {
	folded := cases.Fold().String(norm.NFKD.String(name))

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	key := b.String()

	for _, suffix := range adminSuffixes {
		if len(key) > len(suffix) && strings.HasSuffix(key, suffix) {
			key = strings.TrimSuffix(key, suffix)
			break
		}
	}
	return key
}

// Package normalize provides the deterministic text canonicalization used
// for strain deduplication keys and effect taxonomy lookup keys.
//
// The two normalizers are intentionally separate: StrainKey produces a
// space-collapsed comparison key for fuzzy dedup, EffectKey produces a
// hyphenated lookup key matching the canonical effects taxonomy. They are
// not interchangeable.
package normalize

import "strings"

// StrainKey normalizes a strain name for deduplication.
//
// Lowercases, strips whitespace, removes periods (abbreviations like
// "O.G." become "og"), replaces hyphens, underscores, hash symbols,
// quotes, and parentheses with spaces, then collapses runs of whitespace.
// Idempotent: StrainKey(StrainKey(x)) == StrainKey(x).
func StrainKey(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch r {
		case '.':
			// drop
		case '-', '_', '#', '\'', '"', '(', ')':
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// EffectKey normalizes a raw effect label for taxonomy lookup.
//
// Lowercase, trim, spaces become hyphens: "Dry Mouth" -> "dry-mouth".
func EffectKey(label string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), " ", "-")
}

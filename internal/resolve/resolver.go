// Package resolve maps raw effect labels onto the canonical taxonomy.
//
// Resolution is a staged pipeline with strict precedence: length filter,
// exact canonical-name match, synonym match, fuzzy match. The first stage
// that matches wins. Labels nothing matches stay unmapped; an optional
// LLM fallback can classify the remainder afterwards.
package resolve

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hurttlocker/strainbase/internal/match"
	"github.com/hurttlocker/strainbase/internal/normalize"
	"github.com/hurttlocker/strainbase/internal/store"
	"github.com/hurttlocker/strainbase/internal/taxonomy"
)

// Resolution methods recorded on effect mappings.
const (
	MethodExact        = "exact"
	MethodSynonym      = "synonym"
	MethodFuzzy        = "fuzzy"
	MethodLengthFilter = "length_filter"
	MethodLLM          = "llm"
	MethodLLMJunk      = "llm_junk"
)

// Per-method confidence values.
const (
	ConfidenceExact   = 1.0
	ConfidenceSynonym = 0.95
	ConfidenceFuzzy   = 0.90
	ConfidenceLLM     = 0.85
)

// maxLabelLength is the cutoff for the junk length filter. Labels
// longer than this are sentence fragments from broken scrapes, not
// effect names.
const maxLabelLength = 40

// DefaultFuzzyCutoff is the minimum similarity for the fuzzy stage.
// Deliberately lower than the strain dedup threshold: the candidate set
// is only the 51 canonical names, so false positives are rare.
const DefaultFuzzyCutoff = 85

// Resolution is the outcome of resolving one raw label. CanonicalID is
// zero when the label was filtered as junk (length filter).
type Resolution struct {
	CanonicalID   int64
	CanonicalName string
	Category      string
	Method        string
	Confidence    float64
}

// Resolver resolves raw effect labels against an immutable taxonomy
// lookup. Safe for concurrent use.
type Resolver struct {
	lookup      *taxonomy.Lookup
	fuzzyCutoff int
}

// NewResolver creates a resolver. A non-positive cutoff falls back to
// DefaultFuzzyCutoff.
func NewResolver(lookup *taxonomy.Lookup, fuzzyCutoff int) *Resolver {
	if fuzzyCutoff <= 0 {
		fuzzyCutoff = DefaultFuzzyCutoff
	}
	return &Resolver{lookup: lookup, fuzzyCutoff: fuzzyCutoff}
}

// Resolve runs the staged pipeline over one raw label. The second
// return is false when no stage matched (the label stays unmapped).
//
// A label equal to a canonical name always resolves as exact, even when
// the same string appears in another effect's synonym list: canonical
// names take precedence when the lookup is built.
func (r *Resolver) Resolve(raw string) (*Resolution, bool) {
	if utf8.RuneCountInString(raw) > maxLabelLength {
		return &Resolution{Method: MethodLengthFilter, Confidence: 0.0}, true
	}

	// Hyphenated key: hits both canonical names and already-hyphenated
	// synonyms ("Dry Throat" resolves via the dry-throat synonym key).
	key := normalize.EffectKey(raw)
	if entry, ok := r.lookup.Get(key); ok {
		method := MethodSynonym
		confidence := ConfidenceSynonym
		if entry.CanonicalName == key {
			method = MethodExact
			confidence = ConfidenceExact
		}
		return resolution(entry, method, confidence), true
	}

	// Plain lowercased form catches multi-word synonyms stored with
	// spaces.
	lowered := strings.ToLower(strings.TrimSpace(raw))
	if entry, ok := r.lookup.Get(lowered); ok {
		return resolution(entry, MethodSynonym, ConfidenceSynonym), true
	}

	// Fuzzy stage runs against canonical names only, never synonyms.
	hits := match.BestMatches(key, r.lookup.CanonicalNames, r.fuzzyCutoff, 1)
	if len(hits) > 0 {
		if entry, ok := r.lookup.Get(hits[0].Candidate); ok {
			return resolution(entry, MethodFuzzy, ConfidenceFuzzy), true
		}
	}

	return nil, false
}

func resolution(entry taxonomy.Entry, method string, confidence float64) *Resolution {
	return &Resolution{
		CanonicalID:   entry.CanonicalID,
		CanonicalName: entry.CanonicalName,
		Category:      entry.Category,
		Method:        method,
		Confidence:    confidence,
	}
}

// RuleStats summarizes one rule-based classification pass.
type RuleStats struct {
	Exact          int `json:"exact"`
	Synonym        int `json:"synonym"`
	Fuzzy          int `json:"fuzzy"`
	LengthFiltered int `json:"length_filtered"`
	Unmatched      int `json:"unmatched"`
	Skipped        int `json:"skipped"`
}

// ClassifyRuleBased resolves every raw effect name that has no mapping
// yet and persists the outcomes. Unmatched labels get no mapping row so
// the LLM fallback can pick them up later. Empty or whitespace-only
// names are skipped and counted. Mappings are append-only, so re-running
// changes nothing for already-mapped names.
func ClassifyRuleBased(ctx context.Context, s store.Store, r *Resolver) (*RuleStats, error) {
	names, err := s.ListUnmappedEffectNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing unmapped effects: %w", err)
	}

	stats := &RuleStats{}
	for _, raw := range names {
		if strings.TrimSpace(raw) == "" {
			stats.Skipped++
			continue
		}

		res, ok := r.Resolve(raw)
		if !ok {
			stats.Unmatched++
			continue
		}

		var canonicalID *int64
		if res.Method != MethodLengthFilter {
			id := res.CanonicalID
			canonicalID = &id
		}
		if _, err := s.UpsertEffectMapping(ctx, raw, canonicalID, res.Confidence, res.Method); err != nil {
			return stats, fmt.Errorf("persisting mapping for %q: %w", raw, err)
		}

		switch res.Method {
		case MethodExact:
			stats.Exact++
		case MethodSynonym:
			stats.Synonym++
		case MethodFuzzy:
			stats.Fuzzy++
		case MethodLengthFilter:
			stats.LengthFiltered++
		}
	}
	return stats, nil
}

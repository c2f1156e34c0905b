package dedup

import (
	"context"
	"fmt"
	"strings"

	"github.com/hurttlocker/strainbase/internal/match"
	"github.com/hurttlocker/strainbase/internal/normalize"
	"github.com/hurttlocker/strainbase/internal/store"
)

// Matcher resolves external strain names (for example from lab results)
// against the existing strain table, creating new strains for names
// nothing matches.
//
// Fuzzy matching compares every unmatched name against every existing
// name. For large batches set Fuzzy to false to degrade to exact key
// lookups plus creation, which stays linear.
type Matcher struct {
	store     store.Store
	threshold int

	// Fuzzy enables similarity matching for names with no exact key hit.
	Fuzzy bool
}

// MatchStats summarizes one matching run.
type MatchStats struct {
	Matched      int `json:"matched"`
	FuzzyMatched int `json:"fuzzy_matched"`
	Created      int `json:"created"`
	Skipped      int `json:"skipped"`
}

// NewMatcher creates a matcher with fuzzy matching enabled.
func NewMatcher(s store.Store, threshold int) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{store: s, threshold: threshold, Fuzzy: true}
}

// MatchNames resolves each raw name: exact normalized-key hit counts as
// matched, then (when Fuzzy is on) a similarity hit at or above the
// threshold counts as matched, otherwise a new strain is created with
// the given source and unknown type. Empty names after normalization
// are skipped.
func (m *Matcher) MatchNames(ctx context.Context, rawNames []string, source string) (*MatchStats, error) {
	existing, err := m.store.ListDistinctNormalizedStrainNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing existing strains: %w", err)
	}
	known := make(map[string]bool, len(existing))
	for _, n := range existing {
		known[n] = true
	}

	stats := &MatchStats{}
	for _, raw := range rawNames {
		key := normalize.StrainKey(raw)
		if key == "" {
			stats.Skipped++
			continue
		}

		if known[key] {
			stats.Matched++
			continue
		}

		if m.Fuzzy && len(existing) > 0 {
			if hits := match.BestMatches(key, existing, m.threshold, 1); len(hits) > 0 {
				stats.FuzzyMatched++
				stats.Matched++
				continue
			}
		}

		_, created, err := m.store.UpsertStrain(ctx, &store.Strain{
			Name:           strings.TrimSpace(raw),
			NormalizedName: key,
			StrainType:     "unknown",
			Source:         source,
		})
		if err != nil {
			return stats, fmt.Errorf("creating strain %q: %w", key, err)
		}
		if created {
			stats.Created++
			known[key] = true
			existing = append(existing, key)
		} else {
			stats.Skipped++
		}
	}
	return stats, nil
}

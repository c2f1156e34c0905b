// Package taxonomy defines the fixed canonical effects taxonomy: 51
// effects across three categories (positive, negative, medical), each with
// a receptor pathway annotation and synonym mappings for normalizing messy
// effect names from scraped data sources.
//
// The taxonomy is immutable reference data. It is seeded into the store
// once and the synonym lookup is built explicitly by the orchestrator and
// passed by reference into the resolver; there is no hidden module-level
// cache.
package taxonomy

import (
	"context"
	"fmt"
	"strings"

	"github.com/hurttlocker/strainbase/internal/store"
)

// Effect is one canonical taxonomy entry before seeding (no ID yet).
type Effect struct {
	Name            string
	Category        string
	Description     string
	Synonyms        []string
	ReceptorPathway string
}

// Entry is a resolved lookup target carrying the canonical identity.
type Entry struct {
	CanonicalID   int64
	CanonicalName string
	Category      string
}

// Lookup is the immutable synonym table used by the effect resolver.
// Keys are case-folded canonical names and synonyms; CanonicalNames keeps
// the canonical-name keys in taxonomy order for fuzzy matching.
type Lookup struct {
	entries        map[string]Entry
	CanonicalNames []string
}

// Get returns the entry for a lookup key, if present.
func (l *Lookup) Get(key string) (Entry, bool) {
	e, ok := l.entries[key]
	return e, ok
}

// IsCanonical reports whether key is itself a canonical name.
func (l *Lookup) IsCanonical(key string) bool {
	e, ok := l.entries[key]
	return ok && e.CanonicalName == key
}

// Len returns the number of lookup keys (canonical names plus synonyms).
func (l *Lookup) Len() int {
	return len(l.entries)
}

// Seed inserts the full taxonomy into the store. Idempotent: existing
// entries are left untouched. Returns the number of newly created rows.
func Seed(ctx context.Context, s store.Store) (int, error) {
	created := 0
	for i := range Canonical {
		e := &Canonical[i]
		inserted, err := s.SeedCanonicalEffect(ctx, &store.CanonicalEffect{
			Name:            e.Name,
			Category:        e.Category,
			Description:     e.Description,
			Synonyms:        e.Synonyms,
			ReceptorPathway: e.ReceptorPathway,
		})
		if err != nil {
			return created, fmt.Errorf("seeding taxonomy: %w", err)
		}
		if inserted {
			created++
		}
	}
	return created, nil
}

// BuildLookup reads the seeded taxonomy back from the store and builds
// the synonym lookup table. Canonical names win over synonym collisions:
// a synonym key never shadows an existing canonical-name key.
func BuildLookup(ctx context.Context, s store.Store) (*Lookup, error) {
	effects, err := s.ListCanonicalEffects(ctx)
	if err != nil {
		return nil, fmt.Errorf("building effect lookup: %w", err)
	}

	l := &Lookup{
		entries:        make(map[string]Entry, len(effects)*5),
		CanonicalNames: make([]string, 0, len(effects)),
	}
	for _, e := range effects {
		entry := Entry{CanonicalID: e.ID, CanonicalName: e.Name, Category: e.Category}
		l.entries[e.Name] = entry
		l.CanonicalNames = append(l.CanonicalNames, e.Name)
	}
	for _, e := range effects {
		entry := Entry{CanonicalID: e.ID, CanonicalName: e.Name, Category: e.Category}
		for _, syn := range e.Synonyms {
			key := strings.ToLower(strings.TrimSpace(syn))
			if _, taken := l.entries[key]; !taken {
				l.entries[key] = entry
			}
		}
	}
	return l, nil
}

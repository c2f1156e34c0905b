// Package ingest imports scraped consumer effect data as report rows.
package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/hurttlocker/strainbase/internal/store"
	"github.com/hurttlocker/strainbase/internal/taxonomy"
)

// EffectObservation is one scraped effect for a strain, already resolved
// against the taxonomy.
type EffectObservation struct {
	CanonicalName string `json:"canonical_name"`
	Votes         int    `json:"votes"`
}

// CompositionObservation is one measured molecule percentage for a
// strain (terpene or cannabinoid).
type CompositionObservation struct {
	Molecule   string  `json:"molecule"`
	Percentage float64 `json:"percentage"`
}

// StrainReport is one strain's worth of scraped effect data from a
// single source.
type StrainReport struct {
	StrainID     int64                    `json:"strain_id"`
	Source       string                   `json:"source"`
	Effects      []EffectObservation      `json:"effects"`
	Compositions []CompositionObservation `json:"compositions,omitempty"`
}

// Stats summarizes one import run.
type Stats struct {
	StrainsProcessed     int `json:"strains_processed"`
	EffectsImported      int `json:"effects_imported"`
	CompositionsImported int `json:"compositions_imported"`
	Skipped              int `json:"skipped"`
}

// Importer writes effect reports keyed by the canonical taxonomy.
type Importer struct {
	store  store.Store
	lookup *taxonomy.Lookup
}

// NewImporter creates an importer over a built taxonomy lookup.
func NewImporter(s store.Store, lookup *taxonomy.Lookup) *Importer {
	return &Importer{store: s, lookup: lookup}
}

// ImportEffectsForStrain inserts report rows for one strain and source.
// Effect names must be canonical; anything else is skipped rather than
// polluting the effects table. Existing (strain, effect, source) rows
// are left untouched. Returns the number of rows inserted.
func (im *Importer) ImportEffectsForStrain(ctx context.Context, strainID int64, effects []EffectObservation, source string) (int, error) {
	inserted := 0
	for _, obs := range effects {
		name := strings.TrimSpace(obs.CanonicalName)
		entry, ok := im.lookup.Get(name)
		if !ok || entry.CanonicalName != name {
			continue
		}

		effectID, err := im.store.EnsureEffect(ctx, entry.CanonicalName, entry.Category)
		if err != nil {
			return inserted, fmt.Errorf("ensuring effect %q: %w", entry.CanonicalName, err)
		}

		created, err := im.store.UpsertEffectReport(ctx, &store.EffectReport{
			StrainID:    strainID,
			EffectID:    effectID,
			ReportCount: obs.Votes,
			Confidence:  1.0,
			Source:      source,
		})
		if err != nil {
			return inserted, fmt.Errorf("inserting report for strain %d effect %q: %w", strainID, entry.CanonicalName, err)
		}
		if created {
			inserted++
		}
	}
	return inserted, nil
}

// ImportBatch imports reports for multiple strains and records each
// source's contribution in the data source registry. Effects that were
// not inserted (duplicates or non-canonical names) count as skipped.
func (im *Importer) ImportBatch(ctx context.Context, batch []StrainReport) (*Stats, error) {
	stats := &Stats{}
	bySource := make(map[string]int)
	for _, item := range batch {
		count, err := im.ImportEffectsForStrain(ctx, item.StrainID, item.Effects, item.Source)
		if err != nil {
			return stats, err
		}
		stats.StrainsProcessed++
		stats.EffectsImported += count
		stats.Skipped += len(item.Effects) - count
		bySource[item.Source] += count

		for _, comp := range item.Compositions {
			molecule := strings.TrimSpace(comp.Molecule)
			if molecule == "" {
				stats.Skipped++
				continue
			}
			created, err := im.store.AddComposition(ctx, item.StrainID, molecule, comp.Percentage, item.Source)
			if err != nil {
				return stats, fmt.Errorf("adding composition %q for strain %d: %w", molecule, item.StrainID, err)
			}
			if created {
				stats.CompositionsImported++
				bySource[item.Source]++
			} else {
				stats.Skipped++
			}
		}
	}

	for source, count := range bySource {
		if source == "" || count == 0 {
			continue
		}
		if err := im.store.RecordDataSource(ctx, source, "consumer_reports", count); err != nil {
			return stats, fmt.Errorf("recording data source %q: %w", source, err)
		}
	}
	return stats, nil
}

// Package pipeline orchestrates the full data cleaning pass: taxonomy
// seeding, effect classification, strain dedup, report purging, and the
// confidence recompute.
package pipeline

import (
	"context"
	"fmt"

	"github.com/hurttlocker/strainbase/internal/confidence"
	"github.com/hurttlocker/strainbase/internal/dedup"
	"github.com/hurttlocker/strainbase/internal/llm"
	"github.com/hurttlocker/strainbase/internal/resolve"
	"github.com/hurttlocker/strainbase/internal/store"
	"github.com/hurttlocker/strainbase/internal/taxonomy"
)

// Config controls which stages run and how.
type Config struct {
	SkipLLM        bool
	SkipDedup      bool
	DedupThreshold int
	LimitPerQuery  int
	FuzzyCutoff    int
	LLMBatchSize   int

	// Provider handles the LLM fallback stage. Nil skips it, same as
	// SkipLLM.
	Provider llm.Provider
}

// Result collects the stats every stage reports.
type Result struct {
	EffectsSeeded     int                `json:"canonical_effects_seeded"`
	RuleBased         *resolve.RuleStats `json:"rule_based"`
	LLM               *resolve.LLMStats  `json:"llm,omitempty"`
	Dedup             *dedup.Stats       `json:"dedup,omitempty"`
	NullReportsPurged int64              `json:"null_reports_purged"`
	ReportsRescored   int                `json:"reports_rescored"`
	Summary           Summary            `json:"summary"`
}

// Summary is the post-run mapping census.
type Summary struct {
	TotalRawEffects   int64 `json:"total_raw_effects"`
	MappedToCanonical int64 `json:"mapped_to_canonical"`
	ClassifiedAsJunk  int64 `json:"classified_as_junk"`
	StillUnmapped     int64 `json:"still_unmapped"`
}

// Run executes the cleaning pipeline end to end. Every stage is
// idempotent, so re-running against an already clean database is a
// no-op apart from the confidence recompute.
func Run(ctx context.Context, s store.Store, cfg Config) (*Result, error) {
	result := &Result{}

	seeded, err := taxonomy.Seed(ctx, s)
	if err != nil {
		return result, fmt.Errorf("seeding taxonomy: %w", err)
	}
	result.EffectsSeeded = seeded

	lookup, err := taxonomy.BuildLookup(ctx, s)
	if err != nil {
		return result, fmt.Errorf("building lookup: %w", err)
	}

	resolver := resolve.NewResolver(lookup, cfg.FuzzyCutoff)
	ruleStats, err := resolve.ClassifyRuleBased(ctx, s, resolver)
	if err != nil {
		return result, fmt.Errorf("rule-based classification: %w", err)
	}
	result.RuleBased = ruleStats

	if !cfg.SkipLLM && cfg.Provider != nil {
		llmStats, err := resolve.ClassifyLLM(ctx, s, cfg.Provider, lookup, cfg.LLMBatchSize)
		if err != nil {
			return result, fmt.Errorf("llm classification: %w", err)
		}
		result.LLM = llmStats
	}

	if !cfg.SkipDedup {
		engine := dedup.NewEngine(s, cfg.DedupThreshold, cfg.LimitPerQuery)
		dedupStats, err := engine.Run(ctx)
		if err != nil {
			return result, fmt.Errorf("deduplication: %w", err)
		}
		result.Dedup = dedupStats
	}

	purged, err := s.PurgeNullEffectReports(ctx)
	if err != nil {
		return result, fmt.Errorf("purging null reports: %w", err)
	}
	result.NullReportsPurged = purged

	rescored, err := confidence.Recompute(ctx, s)
	if err != nil {
		return result, fmt.Errorf("recomputing confidence: %w", err)
	}
	result.ReportsRescored = rescored

	stats, err := s.Stats(ctx)
	if err != nil {
		return result, fmt.Errorf("collecting summary: %w", err)
	}
	mapped, junk, err := s.CountMappings(ctx)
	if err != nil {
		return result, fmt.Errorf("collecting mapping census: %w", err)
	}
	result.Summary = Summary{
		TotalRawEffects:   stats.EffectCount,
		MappedToCanonical: mapped,
		ClassifiedAsJunk:  junk,
		StillUnmapped:     stats.EffectCount - mapped - junk,
	}

	return result, nil
}

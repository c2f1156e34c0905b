// Package confidence recomputes per-report confidence scores from
// source agreement and vote volume.
//
// Confidence is a full recompute on every run, never incremental: each
// report's score is derived from the current global state (distinct
// source counts per strain-effect pair and the global vote maximum), so
// a partial update could leave stale scores behind.
package confidence

import (
	"context"
	"fmt"
	"math"

	"github.com/hurttlocker/strainbase/internal/store"
)

// Score weights. One source starts at the base; the second and third
// distinct sources each add a step; report volume adds up to voteWeight
// on a log scale against the global maximum.
const (
	baseConfidence = 0.4
	sourceStep     = 0.2
	maxSourceSteps = 2
	voteWeight     = 0.2
)

// Compute returns the confidence for a single report given its pair's
// distinct source count and the global vote maximum. The result is
// always in [0, 1].
func Compute(nSources, reportCount, maxVotes int) float64 {
	steps := nSources - 1
	if steps > maxSourceSteps {
		steps = maxSourceSteps
	}
	if steps < 0 {
		steps = 0
	}
	score := baseConfidence + float64(steps)*sourceStep

	if maxVotes > 0 && reportCount > 0 {
		score += math.Log(1+float64(reportCount)) / math.Log(1+float64(maxVotes)) * voteWeight
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// Recompute rescores every report row and persists the results. Returns
// the number of rows updated.
func Recompute(ctx context.Context, s store.Store) (int, error) {
	groups, err := s.ReportGroups(ctx)
	if err != nil {
		return 0, fmt.Errorf("grouping reports: %w", err)
	}

	maxVotes, err := s.MaxReportVotes(ctx)
	if err != nil {
		return 0, fmt.Errorf("finding max votes: %w", err)
	}

	reports, err := s.ListReports(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing reports: %w", err)
	}

	updated := 0
	for _, r := range reports {
		nSources := groups[store.ReportGroup{StrainID: r.StrainID, EffectID: r.EffectID}]
		score := Compute(nSources, r.ReportCount, maxVotes)
		if err := s.UpdateReportConfidence(ctx, r.ID, score); err != nil {
			return updated, fmt.Errorf("updating report %d: %w", r.ID, err)
		}
		updated++
	}
	return updated, nil
}

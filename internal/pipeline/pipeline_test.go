package pipeline

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hurttlocker/strainbase/internal/store"
)

func TestRun(t *testing.T) {
	s, err := store.NewStore(store.StoreConfig{DBPath: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer s.Close()
	ctx := context.Background()

	// Two near-duplicate strains plus raw effects in various states.
	s.UpsertStrain(ctx, &store.Strain{Name: "Blue Dream", NormalizedName: "blue dream", Source: "leafly"})
	richID, _, _ := s.UpsertStrain(ctx, &store.Strain{Name: "Blue Dream #1", NormalizedName: "blue dream 1", Source: "allbud"})
	s.AddComposition(ctx, richID, "THC", 19.0, "allbud")

	relaxedID, _ := s.EnsureEffect(ctx, "relaxed", "positive")
	s.EnsureEffect(ctx, "Cottonmouth", "other")
	s.EnsureEffect(ctx, "total nonsense label", "other")
	nullID, _ := s.EnsureEffect(ctx, "null", "other")

	s.UpsertEffectReport(ctx, &store.EffectReport{StrainID: richID, EffectID: relaxedID, Source: "leafly", ReportCount: 100})
	s.UpsertEffectReport(ctx, &store.EffectReport{StrainID: richID, EffectID: nullID, Source: "leafly", ReportCount: 5})

	result, err := Run(ctx, s, Config{SkipLLM: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.EffectsSeeded != 51 {
		t.Errorf("seeded = %d, want 51", result.EffectsSeeded)
	}
	if result.RuleBased == nil || result.RuleBased.Exact < 1 || result.RuleBased.Synonym < 1 {
		t.Errorf("rule-based stats = %+v", result.RuleBased)
	}
	if result.LLM != nil {
		t.Error("LLM stage should be skipped")
	}
	if result.Dedup == nil || result.Dedup.ClustersFound != 1 || result.Dedup.AliasesCreated != 1 {
		t.Errorf("dedup stats = %+v, want 1 cluster, 1 alias", result.Dedup)
	}
	if result.NullReportsPurged != 1 {
		t.Errorf("purged = %d, want 1", result.NullReportsPurged)
	}
	if result.ReportsRescored != 1 {
		t.Errorf("rescored = %d, want 1 surviving report", result.ReportsRescored)
	}
	if result.Summary.TotalRawEffects == 0 || result.Summary.MappedToCanonical < 2 {
		t.Errorf("summary = %+v", result.Summary)
	}

	// Second run is a no-op apart from rescoring.
	result, err = Run(ctx, s, Config{SkipLLM: true})
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if result.EffectsSeeded != 0 || result.Dedup.AliasesCreated != 0 || result.NullReportsPurged != 0 {
		t.Errorf("second run should change nothing: %+v", result)
	}
}

func TestRunSkipDedup(t *testing.T) {
	s, err := store.NewStore(store.StoreConfig{DBPath: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer s.Close()
	ctx := context.Background()

	s.UpsertStrain(ctx, &store.Strain{Name: "Blue Dream", NormalizedName: "blue dream", Source: "leafly"})
	s.UpsertStrain(ctx, &store.Strain{Name: "Blue Dream #1", NormalizedName: "blue dream 1", Source: "allbud"})

	result, err := Run(ctx, s, Config{SkipLLM: true, SkipDedup: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Dedup != nil {
		t.Errorf("dedup should be skipped, got %+v", result.Dedup)
	}
	if n, _ := s.CountAliases(ctx); n != 0 {
		t.Errorf("aliases = %d, want 0", n)
	}
}

package store

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	s, err := NewStore(StoreConfig{DBPath: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// seedCanonicalEffect inserts one taxonomy row and returns its ID, so
// tests referencing canonical_effects satisfy the foreign key.
func seedCanonicalEffect(t *testing.T, s Store, name, category string) int64 {
	t.Helper()
	ctx := context.Background()
	if _, err := s.SeedCanonicalEffect(ctx, &CanonicalEffect{Name: name, Category: category}); err != nil {
		t.Fatalf("SeedCanonicalEffect %q: %v", name, err)
	}
	effects, err := s.ListCanonicalEffects(ctx)
	if err != nil {
		t.Fatalf("ListCanonicalEffects: %v", err)
	}
	for _, e := range effects {
		if e.Name == name {
			return e.ID
		}
	}
	t.Fatalf("canonical effect %q missing after seed", name)
	return 0
}

func TestUpsertStrainIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id1, created, err := s.UpsertStrain(ctx, &Strain{
		Name:           "Blue Dream",
		NormalizedName: "blue dream",
		Source:         "leafly",
		StrainType:     "hybrid",
	})
	if err != nil {
		t.Fatalf("UpsertStrain: %v", err)
	}
	if !created {
		t.Error("first upsert should create")
	}

	id2, created, err := s.UpsertStrain(ctx, &Strain{
		Name:           "Blue Dream",
		NormalizedName: "blue dream",
		Source:         "leafly",
	})
	if err != nil {
		t.Fatalf("second UpsertStrain: %v", err)
	}
	if created {
		t.Error("second upsert should not create")
	}
	if id1 != id2 {
		t.Errorf("ids differ: %d vs %d", id1, id2)
	}

	// Same key, different source is a distinct row.
	id3, created, err := s.UpsertStrain(ctx, &Strain{
		Name:           "Blue Dream",
		NormalizedName: "blue dream",
		Source:         "allbud",
	})
	if err != nil {
		t.Fatalf("third UpsertStrain: %v", err)
	}
	if !created || id3 == id1 {
		t.Errorf("different source should create a new row (created=%v id=%d)", created, id3)
	}
}

func TestFindStrainByKey(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if st, err := s.FindStrainByKey(ctx, "og kush"); err != nil || st != nil {
		t.Fatalf("FindStrainByKey on empty db: st=%v err=%v", st, err)
	}

	idA, _, _ := s.UpsertStrain(ctx, &Strain{Name: "OG Kush", NormalizedName: "og kush", Source: "leafly"})
	s.UpsertStrain(ctx, &Strain{Name: "OG Kush", NormalizedName: "og kush", Source: "allbud"})

	st, err := s.FindStrainByKey(ctx, "og kush")
	if err != nil || st == nil {
		t.Fatalf("FindStrainByKey: st=%v err=%v", st, err)
	}
	if st.ID != idA {
		t.Errorf("expected lowest id %d, got %d", idA, st.ID)
	}
}

func TestListDistinctNormalizedStrainNames(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.UpsertStrain(ctx, &Strain{Name: "OG Kush", NormalizedName: "og kush", Source: "leafly"})
	s.UpsertStrain(ctx, &Strain{Name: "Blue Dream", NormalizedName: "blue dream", Source: "leafly"})
	s.UpsertStrain(ctx, &Strain{Name: "OG Kush", NormalizedName: "og kush", Source: "allbud"})
	names, err := s.ListDistinctNormalizedStrainNames(ctx)
	if err != nil {
		t.Fatalf("ListDistinctNormalizedStrainNames: %v", err)
	}
	want := []string{"blue dream", "og kush"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestRichnessAndClusterRanking(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	poorID, _, _ := s.UpsertStrain(ctx, &Strain{Name: "Blue Dream", NormalizedName: "blue dream", Source: "a"})
	richID, _, _ := s.UpsertStrain(ctx, &Strain{Name: "Blue Dream #1", NormalizedName: "blue dream 1", Source: "a"})

	if _, err := s.AddComposition(ctx, richID, "THC", 18.5, "a"); err != nil {
		t.Fatalf("AddComposition: %v", err)
	}
	if _, err := s.AddComposition(ctx, richID, "CBD", 0.5, "a"); err != nil {
		t.Fatalf("AddComposition: %v", err)
	}

	rich, err := s.StrainRichness(ctx, richID)
	if err != nil {
		t.Fatalf("StrainRichness: %v", err)
	}
	if rich != 2 {
		t.Errorf("richness = %d, want 2", rich)
	}

	ranks, err := s.ClusterRichness(ctx, []string{"blue dream", "blue dream 1"})
	if err != nil {
		t.Fatalf("ClusterRichness: %v", err)
	}
	if len(ranks) != 2 {
		t.Fatalf("got %d ranks, want 2", len(ranks))
	}
	if ranks[0].ID != richID {
		t.Errorf("richest first: got id %d, want %d", ranks[0].ID, richID)
	}
	if ranks[1].ID != poorID {
		t.Errorf("poorest last: got id %d, want %d", ranks[1].ID, poorID)
	}
}

func TestListPriorityStrains(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// tested: compositions plus a report, so not a priority.
	testedID, _, _ := s.UpsertStrain(ctx, &Strain{Name: "OG Kush", NormalizedName: "og kush", Source: "a"})
	// rich: two compositions, no reports.
	richID, _, _ := s.UpsertStrain(ctx, &Strain{Name: "Blue Dream", NormalizedName: "blue dream", Source: "a"})
	// thin: one composition, no reports.
	thinID, _, _ := s.UpsertStrain(ctx, &Strain{Name: "Gelato", NormalizedName: "gelato", Source: "a"})
	// bare: no data, no reports, not a candidate either.
	s.UpsertStrain(ctx, &Strain{Name: "Runtz", NormalizedName: "runtz", Source: "a"})

	for _, row := range []struct {
		id       int64
		molecule string
	}{
		{testedID, "THC"},
		{richID, "THC"},
		{richID, "CBD"},
		{thinID, "THC"},
	} {
		if _, err := s.AddComposition(ctx, row.id, row.molecule, 1.0, "a"); err != nil {
			t.Fatalf("AddComposition: %v", err)
		}
	}

	effectID, err := s.EnsureEffect(ctx, "relaxed", "positive")
	if err != nil {
		t.Fatalf("EnsureEffect: %v", err)
	}
	if _, err := s.UpsertEffectReport(ctx, &EffectReport{
		StrainID:    testedID,
		EffectID:    effectID,
		ReportCount: 10,
		Confidence:  1.0,
		Source:      "a",
	}); err != nil {
		t.Fatalf("UpsertEffectReport: %v", err)
	}

	priority, err := s.ListPriorityStrains(ctx, 0)
	if err != nil {
		t.Fatalf("ListPriorityStrains: %v", err)
	}
	if len(priority) != 2 {
		t.Fatalf("got %d priority strains, want 2", len(priority))
	}
	if priority[0].ID != richID || priority[1].ID != thinID {
		t.Errorf("order = [%d %d], want [%d %d]",
			priority[0].ID, priority[1].ID, richID, thinID)
	}

	limited, err := s.ListPriorityStrains(ctx, 1)
	if err != nil {
		t.Fatalf("ListPriorityStrains limit: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != richID {
		t.Errorf("limited = %v, want just strain %d", limited, richID)
	}
}

func TestUpsertAlias(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	aliasID, _, _ := s.UpsertStrain(ctx, &Strain{Name: "Blue Dream", NormalizedName: "blue dream", Source: "a"})
	canonID, _, _ := s.UpsertStrain(ctx, &Strain{Name: "Blue Dream #1", NormalizedName: "blue dream 1", Source: "a"})

	inserted, err := s.UpsertAlias(ctx, aliasID, canonID, 100.0)
	if err != nil {
		t.Fatalf("UpsertAlias: %v", err)
	}
	if !inserted {
		t.Error("first alias should insert")
	}

	inserted, err = s.UpsertAlias(ctx, aliasID, canonID, 100.0)
	if err != nil {
		t.Fatalf("second UpsertAlias: %v", err)
	}
	if inserted {
		t.Error("duplicate alias should not insert")
	}

	n, err := s.CountAliases(ctx)
	if err != nil {
		t.Fatalf("CountAliases: %v", err)
	}
	if n != 1 {
		t.Errorf("alias count = %d, want 1", n)
	}
}

func TestEffectMappingsAppendOnly(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	canonID := seedCanonicalEffect(t, s, "dry-mouth", "medical")
	inserted, err := s.UpsertEffectMapping(ctx, "Cottonmouth", &canonID, 0.95, "synonym")
	if err != nil {
		t.Fatalf("UpsertEffectMapping: %v", err)
	}
	if !inserted {
		t.Error("first mapping should insert")
	}

	other := seedCanonicalEffect(t, s, "relaxed", "positive")
	inserted, err = s.UpsertEffectMapping(ctx, "Cottonmouth", &other, 0.5, "fuzzy")
	if err != nil {
		t.Fatalf("second UpsertEffectMapping: %v", err)
	}
	if inserted {
		t.Error("existing mapping must not be overwritten")
	}

	m, err := s.GetEffectMapping(ctx, "Cottonmouth")
	if err != nil || m == nil {
		t.Fatalf("GetEffectMapping: m=%v err=%v", m, err)
	}
	if m.CanonicalID == nil || *m.CanonicalID != canonID {
		t.Errorf("mapping canonical id changed: %+v", m)
	}
	if m.Method != "synonym" || m.Confidence != 0.95 {
		t.Errorf("mapping fields changed: %+v", m)
	}

	// Junk mappings carry no canonical id.
	if _, err := s.UpsertEffectMapping(ctx, "asdfgh", nil, 0.0, "llm_junk"); err != nil {
		t.Fatalf("junk mapping: %v", err)
	}
	m, err = s.GetEffectMapping(ctx, "asdfgh")
	if err != nil || m == nil {
		t.Fatalf("GetEffectMapping junk: m=%v err=%v", m, err)
	}
	if m.CanonicalID != nil {
		t.Errorf("junk mapping should have nil canonical id, got %v", *m.CanonicalID)
	}
}

func TestUnmappedEffectNames(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	idA, err := s.EnsureEffect(ctx, "Relaxed", "positive")
	if err != nil {
		t.Fatalf("EnsureEffect: %v", err)
	}
	if _, err := s.EnsureEffect(ctx, "Sleepy", "positive"); err != nil {
		t.Fatalf("EnsureEffect: %v", err)
	}
	idA2, err := s.EnsureEffect(ctx, "Relaxed", "positive")
	if err != nil {
		t.Fatalf("EnsureEffect repeat: %v", err)
	}
	if idA != idA2 {
		t.Errorf("EnsureEffect not idempotent: %d vs %d", idA, idA2)
	}

	canonID := seedCanonicalEffect(t, s, "relaxed", "positive")
	if _, err := s.UpsertEffectMapping(ctx, "Relaxed", &canonID, 1.0, "exact"); err != nil {
		t.Fatalf("UpsertEffectMapping: %v", err)
	}

	names, err := s.ListUnmappedEffectNames(ctx)
	if err != nil {
		t.Fatalf("ListUnmappedEffectNames: %v", err)
	}
	if len(names) != 1 || names[0] != "Sleepy" {
		t.Errorf("unmapped = %v, want [Sleepy]", names)
	}
}

func TestReportGroupsAndVotes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	strainID, _, _ := s.UpsertStrain(ctx, &Strain{Name: "Blue Dream", NormalizedName: "blue dream", Source: "a"})
	effectID, _ := s.EnsureEffect(ctx, "relaxed", "positive")

	for _, src := range []string{"leafly", "allbud", "leafly"} {
		if _, err := s.UpsertEffectReport(ctx, &EffectReport{
			StrainID:    strainID,
			EffectID:    effectID,
			Source:      src,
			ReportCount: 150,
		}); err != nil {
			t.Fatalf("UpsertEffectReport: %v", err)
		}
	}

	groups, err := s.ReportGroups(ctx)
	if err != nil {
		t.Fatalf("ReportGroups: %v", err)
	}
	n, ok := groups[ReportGroup{StrainID: strainID, EffectID: effectID}]
	if !ok || n != 2 {
		t.Errorf("distinct sources = %d (ok=%v), want 2", n, ok)
	}

	maxVotes, err := s.MaxReportVotes(ctx)
	if err != nil {
		t.Fatalf("MaxReportVotes: %v", err)
	}
	if maxVotes != 150 {
		t.Errorf("maxVotes = %d, want 150", maxVotes)
	}
}

func TestPurgeNullEffectReports(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	strainID, _, _ := s.UpsertStrain(ctx, &Strain{Name: "OG Kush", NormalizedName: "og kush", Source: "a"})
	nullID, _ := s.EnsureEffect(ctx, "null", "other")
	goodID, _ := s.EnsureEffect(ctx, "relaxed", "positive")

	s.UpsertEffectReport(ctx, &EffectReport{StrainID: strainID, EffectID: nullID, Source: "a"})
	s.UpsertEffectReport(ctx, &EffectReport{StrainID: strainID, EffectID: goodID, Source: "a"})

	purged, err := s.PurgeNullEffectReports(ctx)
	if err != nil {
		t.Fatalf("PurgeNullEffectReports: %v", err)
	}
	if purged != 1 {
		t.Errorf("purged = %d, want 1", purged)
	}

	reports, err := s.ListReports(ctx)
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if len(reports) != 1 || reports[0].EffectID != goodID {
		t.Errorf("remaining reports = %+v", reports)
	}
}

func TestStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.UpsertStrain(ctx, &Strain{Name: "OG Kush", NormalizedName: "og kush", Source: "a"})
	s.EnsureEffect(ctx, "relaxed", "positive")
	if err := s.RecordDataSource(ctx, "leafly", "scrape", 1); err != nil {
		t.Fatalf("RecordDataSource: %v", err)
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.StrainCount != 1 || stats.EffectCount != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AliasCount != 0 || stats.ReportCount != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

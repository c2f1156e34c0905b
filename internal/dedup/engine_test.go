package dedup

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hurttlocker/strainbase/internal/store"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := store.NewStore(store.StoreConfig{DBPath: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUnionFind(t *testing.T) {
	uf := newUnionFind(5)
	uf.union(0, 1)
	uf.union(3, 4)
	uf.union(1, 3)

	if uf.find(0) != uf.find(4) {
		t.Error("0 and 4 should share a root after chained unions")
	}
	if uf.find(2) == uf.find(0) {
		t.Error("2 should remain in its own set")
	}
}

func TestFindClusters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, n := range []string{"blue dream", "blue dream 1", "og kush", "sour diesel"} {
		if _, _, err := s.UpsertStrain(ctx, &store.Strain{Name: n, NormalizedName: n, Source: "test"}); err != nil {
			t.Fatalf("UpsertStrain: %v", err)
		}
	}

	e := NewEngine(s, 90, 3)
	clusters, err := e.FindClusters(ctx)
	if err != nil {
		t.Fatalf("FindClusters: %v", err)
	}
	if len(clusters) != 1 {
		t.Fatalf("got %d clusters, want 1: %v", len(clusters), clusters)
	}
	got := clusters[0]
	if len(got) != 2 || got[0] != "blue dream" || got[1] != "blue dream 1" {
		t.Errorf("cluster = %v, want [blue dream, blue dream 1]", got)
	}
}

func TestFindClustersTransitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Adjacent pairs in the chain score exactly 90 while the extremes
	// score only 80, so union-find must connect all three transitively.
	for _, n := range []string{"aaaaaaaaaa", "aaaaaaaaab", "aaaaaaaabb", "zzzzzzzzzz"} {
		if _, _, err := s.UpsertStrain(ctx, &store.Strain{Name: n, NormalizedName: n, Source: "test"}); err != nil {
			t.Fatalf("UpsertStrain: %v", err)
		}
	}

	e := NewEngine(s, 90, 3)
	clusters, err := e.FindClusters(ctx)
	if err != nil {
		t.Fatalf("FindClusters: %v", err)
	}
	if len(clusters) != 1 || len(clusters[0]) != 3 {
		t.Fatalf("clusters = %v, want one cluster of 3", clusters)
	}
}

func TestFindClustersTooFew(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.UpsertStrain(ctx, &store.Strain{Name: "og kush", NormalizedName: "og kush", Source: "test"})

	e := NewEngine(s, 90, 3)
	clusters, err := e.FindClusters(ctx)
	if err != nil {
		t.Fatalf("FindClusters: %v", err)
	}
	if clusters != nil {
		t.Errorf("single name should yield no clusters, got %v", clusters)
	}
}

func TestMergeClusterPicksRichest(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	poorID, _, _ := s.UpsertStrain(ctx, &store.Strain{Name: "Blue Dream", NormalizedName: "blue dream", Source: "test"})
	richID, _, _ := s.UpsertStrain(ctx, &store.Strain{Name: "Blue Dream #1", NormalizedName: "blue dream 1", Source: "test"})
	if _, err := s.AddComposition(ctx, richID, "THC", 20.0, "test"); err != nil {
		t.Fatalf("AddComposition: %v", err)
	}

	e := NewEngine(s, 90, 3)
	canonical, created, err := e.MergeCluster(ctx, []string{"blue dream", "blue dream 1"})
	if err != nil {
		t.Fatalf("MergeCluster: %v", err)
	}
	if canonical != "blue dream 1" {
		t.Errorf("canonical = %q, want the member with composition data", canonical)
	}
	if created != 1 {
		t.Errorf("created = %d, want 1", created)
	}

	aliases, err := s.ListAliases(ctx)
	if err != nil {
		t.Fatalf("ListAliases: %v", err)
	}
	if len(aliases) != 1 {
		t.Fatalf("got %d aliases, want 1", len(aliases))
	}
	a := aliases[0]
	if a.AliasStrainID != poorID || a.CanonicalStrainID != richID {
		t.Errorf("alias = %+v, want %d -> %d", a, poorID, richID)
	}
	if a.MatchScore != 100.0 {
		t.Errorf("match score = %v, want 100.0", a.MatchScore)
	}
}

func TestMergeClusterTieBreaksByLowestID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	firstID, _, _ := s.UpsertStrain(ctx, &store.Strain{Name: "OG Kush", NormalizedName: "og kush", Source: "a"})
	s.UpsertStrain(ctx, &store.Strain{Name: "OG Kush 1", NormalizedName: "og kush 1", Source: "a"})

	e := NewEngine(s, 90, 3)
	canonical, _, err := e.MergeCluster(ctx, []string{"og kush", "og kush 1"})
	if err != nil {
		t.Fatalf("MergeCluster: %v", err)
	}
	if canonical != "og kush" {
		t.Errorf("canonical = %q, want lowest-id member on richness tie", canonical)
	}

	aliases, _ := s.ListAliases(ctx)
	if len(aliases) != 1 || aliases[0].CanonicalStrainID != firstID {
		t.Errorf("aliases = %+v, want canonical %d", aliases, firstID)
	}
}

func TestRunIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.UpsertStrain(ctx, &store.Strain{Name: "Blue Dream", NormalizedName: "blue dream", Source: "test"})
	richID, _, _ := s.UpsertStrain(ctx, &store.Strain{Name: "Blue Dream #1", NormalizedName: "blue dream 1", Source: "test"})
	s.AddComposition(ctx, richID, "THC", 20.0, "test")
	s.UpsertStrain(ctx, &store.Strain{Name: "OG Kush", NormalizedName: "og kush", Source: "test"})

	e := NewEngine(s, 90, 3)
	stats, err := e.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.ClustersFound != 1 || stats.AliasesCreated != 1 {
		t.Errorf("first run stats = %+v, want 1 cluster, 1 alias", stats)
	}

	stats, err = e.Run(ctx)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if stats.ClustersFound != 1 || stats.AliasesCreated != 0 {
		t.Errorf("second run stats = %+v, want 1 cluster, 0 new aliases", stats)
	}

	n, _ := s.CountAliases(ctx)
	if n != 1 {
		t.Errorf("alias count = %d, want 1", n)
	}
}

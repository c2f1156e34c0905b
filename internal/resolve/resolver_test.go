package resolve

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hurttlocker/strainbase/internal/store"
	"github.com/hurttlocker/strainbase/internal/taxonomy"
)

func newSeededStore(t *testing.T) store.Store {
	t.Helper()
	s, err := store.NewStore(store.StoreConfig{DBPath: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if _, err := taxonomy.Seed(context.Background(), s); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return s
}

func newTestResolver(t *testing.T, s store.Store) *Resolver {
	t.Helper()
	lookup, err := taxonomy.BuildLookup(context.Background(), s)
	if err != nil {
		t.Fatalf("BuildLookup: %v", err)
	}
	return NewResolver(lookup, DefaultFuzzyCutoff)
}

func TestResolveStages(t *testing.T) {
	s := newSeededStore(t)
	r := newTestResolver(t, s)

	cases := []struct {
		raw            string
		wantMethod     string
		wantCanonical  string
		wantConfidence float64
	}{
		{"relaxed", MethodExact, "relaxed", 1.0},
		{"RELAXED", MethodExact, "relaxed", 1.0},
		{"Dry Mouth", MethodExact, "dry-mouth", 1.0},
		{"Cottonmouth", MethodSynonym, "dry-mouth", 0.95},
		{"Dry Throat", MethodSynonym, "dry-mouth", 0.95},
		{"munchies", MethodSynonym, "hungry", 0.95},
		{"relaxd", MethodFuzzy, "relaxed", 0.90},
		{strings.Repeat("x", 41), MethodLengthFilter, "", 0.0},
	}
	for _, tc := range cases {
		res, ok := r.Resolve(tc.raw)
		if !ok {
			t.Errorf("Resolve(%q) did not match", tc.raw)
			continue
		}
		if res.Method != tc.wantMethod {
			t.Errorf("Resolve(%q) method = %q, want %q", tc.raw, res.Method, tc.wantMethod)
		}
		if res.CanonicalName != tc.wantCanonical {
			t.Errorf("Resolve(%q) canonical = %q, want %q", tc.raw, res.CanonicalName, tc.wantCanonical)
		}
		if res.Confidence != tc.wantConfidence {
			t.Errorf("Resolve(%q) confidence = %v, want %v", tc.raw, res.Confidence, tc.wantConfidence)
		}
	}
}

func TestResolveCanonicalBeatsSynonymCollision(t *testing.T) {
	// "anxiety" is both the medical canonical effect and a synonym of
	// the negative effect "anxious". The canonical entry must win with
	// method exact.
	s := newSeededStore(t)
	r := newTestResolver(t, s)

	res, ok := r.Resolve("anxiety")
	if !ok {
		t.Fatal("Resolve(anxiety) did not match")
	}
	if res.Method != MethodExact || res.CanonicalName != "anxiety" || res.Category != "medical" {
		t.Errorf("got %+v, want exact match on the medical canonical", res)
	}
}

func TestResolveUnmapped(t *testing.T) {
	s := newSeededStore(t)
	r := newTestResolver(t, s)

	if res, ok := r.Resolve("qwertyuiop"); ok {
		t.Errorf("nonsense label resolved to %+v", res)
	}
}

func TestClassifyRuleBased(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()
	r := newTestResolver(t, s)

	for _, name := range []string{"relaxed", "Cottonmouth", "relaxd", strings.Repeat("x", 45), "qwertyuiop", "   "} {
		if _, err := s.EnsureEffect(ctx, name, "other"); err != nil {
			t.Fatalf("EnsureEffect(%q): %v", name, err)
		}
	}

	stats, err := ClassifyRuleBased(ctx, s, r)
	if err != nil {
		t.Fatalf("ClassifyRuleBased: %v", err)
	}
	want := RuleStats{Exact: 1, Synonym: 1, Fuzzy: 1, LengthFiltered: 1, Unmatched: 1, Skipped: 1}
	if *stats != want {
		t.Errorf("stats = %+v, want %+v", *stats, want)
	}

	m, err := s.GetEffectMapping(ctx, "Cottonmouth")
	if err != nil || m == nil {
		t.Fatalf("GetEffectMapping: m=%v err=%v", m, err)
	}
	if m.Method != MethodSynonym || m.Confidence != 0.95 || m.CanonicalID == nil {
		t.Errorf("mapping = %+v", m)
	}

	// Length-filtered labels persist with no canonical id.
	m, err = s.GetEffectMapping(ctx, strings.Repeat("x", 45))
	if err != nil || m == nil {
		t.Fatalf("GetEffectMapping long: m=%v err=%v", m, err)
	}
	if m.Method != MethodLengthFilter || m.CanonicalID != nil {
		t.Errorf("length-filtered mapping = %+v", m)
	}

	// Unmatched labels stay unmapped for the LLM fallback.
	if m, _ := s.GetEffectMapping(ctx, "qwertyuiop"); m != nil {
		t.Errorf("unmatched label should have no mapping, got %+v", m)
	}

	// Re-running resolves only what is still unmapped.
	stats, err = ClassifyRuleBased(ctx, s, r)
	if err != nil {
		t.Fatalf("second ClassifyRuleBased: %v", err)
	}
	if stats.Exact != 0 || stats.Synonym != 0 || stats.Fuzzy != 0 || stats.LengthFiltered != 0 {
		t.Errorf("second run stats = %+v, want only unmatched labels left", stats)
	}
}

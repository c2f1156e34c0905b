// Package dedup clusters near-duplicate strain names and merges each
// cluster onto its richest member.
//
// Clustering runs over the distinct normalized names in lexicographic
// order. Each name is compared only against the names after it, so every
// pair is scored exactly once and results are deterministic for a given
// database state. Matches at or above the similarity threshold are
// unioned; clusters with two or more members are merged by aliasing
// every strain to the member with the most composition and report data.
package dedup

import (
	"context"
	"fmt"

	"github.com/hurttlocker/strainbase/internal/match"
	"github.com/hurttlocker/strainbase/internal/store"
)

const (
	// DefaultThreshold is the minimum similarity ratio (0-100) for two
	// names to be considered duplicates.
	DefaultThreshold = 90

	// DefaultLimitPerQuery caps how many matches each name contributes
	// during clustering. Transitive unions still connect larger groups.
	DefaultLimitPerQuery = 3

	// aliasMatchScore is recorded on alias rows created by a merge.
	// Cluster membership already implies the threshold was met.
	aliasMatchScore = 100.0
)

// Engine runs duplicate detection and merging against a store.
type Engine struct {
	store         store.Store
	threshold     int
	limitPerQuery int
}

// Stats summarizes one deduplication run.
type Stats struct {
	ClustersFound  int `json:"clusters_found"`
	AliasesCreated int `json:"aliases_created"`
}

// NewEngine creates an engine. Non-positive threshold or limit values
// fall back to the defaults.
func NewEngine(s store.Store, threshold, limitPerQuery int) *Engine {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if limitPerQuery <= 0 {
		limitPerQuery = DefaultLimitPerQuery
	}
	return &Engine{store: s, threshold: threshold, limitPerQuery: limitPerQuery}
}

// FindClusters groups similar normalized strain names. Each returned
// cluster has at least two members. Cluster order follows the first
// appearance of each cluster's earliest member; members within a
// cluster stay in lexicographic order.
func (e *Engine) FindClusters(ctx context.Context) ([][]string, error) {
	names, err := e.store.ListDistinctNormalizedStrainNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing strain names: %w", err)
	}
	if len(names) < 2 {
		return nil, nil
	}

	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}

	uf := newUnionFind(len(names))
	for i, name := range names {
		if i+1 >= len(names) {
			break
		}
		matches := match.BestMatches(name, names[i+1:], e.threshold, e.limitPerQuery)
		for _, m := range matches {
			uf.union(i, index[m.Candidate])
		}
	}

	members := make(map[int][]string)
	var roots []int
	for i, name := range names {
		root := uf.find(i)
		if _, seen := members[root]; !seen {
			roots = append(roots, root)
		}
		members[root] = append(members[root], name)
	}

	var clusters [][]string
	for _, root := range roots {
		if c := members[root]; len(c) >= 2 {
			clusters = append(clusters, c)
		}
	}
	return clusters, nil
}

// MergeCluster aliases every strain in the cluster to the member with
// the most composition and report data (ties broken by lowest id). It
// returns the canonical normalized name and the number of alias rows
// created. Re-merging an already merged cluster creates nothing.
func (e *Engine) MergeCluster(ctx context.Context, cluster []string) (string, int, error) {
	if len(cluster) < 2 {
		if len(cluster) == 1 {
			return cluster[0], 0, nil
		}
		return "", 0, nil
	}

	ranks, err := e.store.ClusterRichness(ctx, cluster)
	if err != nil {
		return "", 0, fmt.Errorf("ranking cluster: %w", err)
	}
	if len(ranks) == 0 {
		return "", 0, nil
	}

	canonical := ranks[0]
	created := 0
	for _, r := range ranks[1:] {
		inserted, err := e.store.UpsertAlias(ctx, r.ID, canonical.ID, aliasMatchScore)
		if err != nil {
			return canonical.NormalizedName, created, fmt.Errorf("aliasing strain %d: %w", r.ID, err)
		}
		if inserted {
			created++
		}
	}
	return canonical.NormalizedName, created, nil
}

// Run finds all duplicate clusters and merges each one.
func (e *Engine) Run(ctx context.Context) (*Stats, error) {
	clusters, err := e.FindClusters(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{ClustersFound: len(clusters)}
	for _, cluster := range clusters {
		_, created, err := e.MergeCluster(ctx, cluster)
		if err != nil {
			return stats, err
		}
		stats.AliasesCreated += created
	}
	return stats, nil
}

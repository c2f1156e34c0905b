// Package mcp provides a Model Context Protocol server for strainbase.
//
// It exposes the resolution engine (effect resolution, strain dedup,
// confidence recompute, stats) as MCP tools over stdio transport, plus
// a database statistics resource.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hurttlocker/strainbase/internal/confidence"
	"github.com/hurttlocker/strainbase/internal/dedup"
	"github.com/hurttlocker/strainbase/internal/match"
	"github.com/hurttlocker/strainbase/internal/normalize"
	"github.com/hurttlocker/strainbase/internal/resolve"
	"github.com/hurttlocker/strainbase/internal/store"
	"github.com/hurttlocker/strainbase/internal/taxonomy"
)

// ServerConfig holds configuration for the MCP server.
type ServerConfig struct {
	Store   store.Store
	Version string
}

// dbMu serializes all MCP tool calls that touch the database.
// The mcp-go library dispatches handlers concurrently via goroutines.
// SQLite (even with WAL) supports only one writer at a time, and
// concurrent reads during writes can return stale results. A global
// mutex ensures a dedup run completes before a stats call sees its
// aliases.
var dbMu sync.Mutex

// NewServer creates a configured MCP server with all strainbase tools
// and resources.
func NewServer(cfg ServerConfig) *server.MCPServer {
	ver := cfg.Version
	if ver == "" {
		ver = "dev"
	}

	s := server.NewMCPServer(
		"Strainbase",
		ver,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(true, false),
	)

	registerResolveEffectTool(s, cfg.Store)
	registerFindStrainTool(s, cfg.Store)
	registerDedupTool(s, cfg.Store)
	registerConfidenceTool(s, cfg.Store)
	registerStatsTool(s, cfg.Store)

	registerStatsResource(s, cfg.Store)

	return s
}

// --- Tools ---

func registerResolveEffectTool(s *server.MCPServer, st store.Store) {
	tool := mcp.NewTool("strainbase_resolve_effect",
		mcp.WithDescription("Resolve a raw effect label against the canonical taxonomy. Returns the canonical effect, category, resolution method, and confidence, or reports the label as unmapped."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("label",
			mcp.Required(),
			mcp.Description("Raw effect label to resolve (e.g. 'Cottonmouth')"),
		),
		mcp.WithNumber("fuzzy_cutoff",
			mcp.Description("Minimum similarity score for the fuzzy stage (default: 85)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		label, err := req.RequireString("label")
		if err != nil || strings.TrimSpace(label) == "" {
			return mcp.NewToolResultError("label is required"), nil
		}

		cutoff := resolve.DefaultFuzzyCutoff
		if v, err := req.RequireFloat("fuzzy_cutoff"); err == nil && int(v) > 0 {
			cutoff = int(v)
		}

		lookup, err := taxonomy.BuildLookup(ctx, st)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("building lookup: %v", err)), nil
		}
		if lookup.Len() == 0 {
			return mcp.NewToolResultError("taxonomy is empty; run the pipeline (or seed) first"), nil
		}

		resolver := resolve.NewResolver(lookup, cutoff)
		res, ok := resolver.Resolve(label)
		if !ok {
			data, _ := json.MarshalIndent(map[string]any{"label": label, "mapped": false}, "", "  ")
			return mcp.NewToolResultText(string(data)), nil
		}

		data, _ := json.MarshalIndent(map[string]any{
			"label":          label,
			"mapped":         res.Method != resolve.MethodLengthFilter,
			"canonical_name": res.CanonicalName,
			"category":       res.Category,
			"method":         res.Method,
			"confidence":     res.Confidence,
		}, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerFindStrainTool(s *server.MCPServer, st store.Store) {
	tool := mcp.NewTool("strainbase_find_strain",
		mcp.WithDescription("Look up a strain by name. The name is normalized before the lookup; when no exact key matches, the closest known name at or above the threshold is reported."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Strain name (e.g. 'Blue-Dream #1')"),
		),
		mcp.WithNumber("threshold",
			mcp.Description("Minimum similarity for the fuzzy fallback (default: 90)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		name, err := req.RequireString("name")
		if err != nil || strings.TrimSpace(name) == "" {
			return mcp.NewToolResultError("name is required"), nil
		}
		key := normalize.StrainKey(name)

		strain, err := st.FindStrainByKey(ctx, key)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("lookup error: %v", err)), nil
		}
		if strain != nil {
			data, _ := json.MarshalIndent(map[string]any{
				"found":           true,
				"id":              strain.ID,
				"name":            strain.Name,
				"normalized_name": strain.NormalizedName,
				"strain_type":     strain.StrainType,
				"source":          strain.Source,
			}, "", "  ")
			return mcp.NewToolResultText(string(data)), nil
		}

		threshold := dedup.DefaultThreshold
		if v, err := req.RequireFloat("threshold"); err == nil && int(v) > 0 {
			threshold = int(v)
		}
		known, err := st.ListDistinctNormalizedStrainNames(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("listing strains: %v", err)), nil
		}
		if hits := match.BestMatches(key, known, threshold, 1); len(hits) > 0 {
			data, _ := json.MarshalIndent(map[string]any{
				"found":         false,
				"closest_match": hits[0].Candidate,
				"score":         hits[0].Score,
			}, "", "  ")
			return mcp.NewToolResultText(string(data)), nil
		}

		data, _ := json.MarshalIndent(map[string]any{"found": false}, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerDedupTool(s *server.MCPServer, st store.Store) {
	tool := mcp.NewTool("strainbase_dedup",
		mcp.WithDescription("Run strain deduplication: cluster near-duplicate strain names and alias each cluster to its richest member. Idempotent."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithNumber("threshold",
			mcp.Description("Minimum similarity score for clustering (default: 90)"),
		),
		mcp.WithBoolean("dry_run",
			mcp.Description("Only report clusters without creating aliases (default: false)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		threshold := dedup.DefaultThreshold
		if v, err := req.RequireFloat("threshold"); err == nil && int(v) > 0 {
			threshold = int(v)
		}

		engine := dedup.NewEngine(st, threshold, dedup.DefaultLimitPerQuery)

		dryRun := false
		if v, err := req.RequireString("dry_run"); err == nil {
			dryRun = v == "true"
		}
		if dryRun {
			clusters, err := engine.FindClusters(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("finding clusters: %v", err)), nil
			}
			data, _ := json.MarshalIndent(map[string]any{
				"clusters_found": len(clusters),
				"clusters":       clusters,
			}, "", "  ")
			return mcp.NewToolResultText(string(data)), nil
		}

		stats, err := engine.Run(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("dedup error: %v", err)), nil
		}
		data, _ := json.MarshalIndent(stats, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerConfidenceTool(s *server.MCPServer, st store.Store) {
	tool := mcp.NewTool("strainbase_confidence",
		mcp.WithDescription("Recompute confidence for every effect report from source agreement and vote volume. Full recompute, not incremental."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		updated, err := confidence.Recompute(ctx, st)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("recompute error: %v", err)), nil
		}
		data, _ := json.MarshalIndent(map[string]int{"reports_rescored": updated}, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerStatsTool(s *server.MCPServer, st store.Store) {
	tool := mcp.NewTool("strainbase_stats",
		mcp.WithDescription("Return database row counts: strains, aliases, canonical effects, raw effects, mappings, reports."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		stats, err := st.Stats(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("stats error: %v", err)), nil
		}
		data, _ := json.MarshalIndent(stats, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

// --- Resources ---

func registerStatsResource(s *server.MCPServer, st store.Store) {
	resource := mcp.NewResource(
		"strainbase://stats",
		"Database Statistics",
		mcp.WithResourceDescription("Row counts for strains, aliases, canonical effects, raw effects, mappings, and reports."),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		stats, err := st.Stats(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting stats: %w", err)
		}

		data, _ := json.MarshalIndent(stats, "", "  ")
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}

// ServeStdio runs the server over stdio until the client disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

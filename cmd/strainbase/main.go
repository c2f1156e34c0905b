// Command strainbase is the CLI for the strain and effect resolution
// engine: taxonomy seeding, effect classification, strain dedup, report
// import, and confidence scoring over a local SQLite database.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hurttlocker/strainbase/internal/confidence"
	"github.com/hurttlocker/strainbase/internal/config"
	"github.com/hurttlocker/strainbase/internal/dedup"
	"github.com/hurttlocker/strainbase/internal/ingest"
	"github.com/hurttlocker/strainbase/internal/llm"
	"github.com/hurttlocker/strainbase/internal/mcp"
	"github.com/hurttlocker/strainbase/internal/pipeline"
	"github.com/hurttlocker/strainbase/internal/resolve"
	"github.com/hurttlocker/strainbase/internal/store"
	"github.com/hurttlocker/strainbase/internal/taxonomy"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(0)
	}

	var err error
	switch os.Args[1] {
	case "pipeline":
		err = runPipeline(os.Args[2:])
	case "seed":
		err = runSeed(os.Args[2:])
	case "map-effects":
		err = runMapEffects(os.Args[2:])
	case "dedup":
		err = runDedup(os.Args[2:])
	case "match":
		err = runMatch(os.Args[2:])
	case "import":
		err = runImport(os.Args[2:])
	case "confidence":
		err = runConfidence(os.Args[2:])
	case "stats":
		err = runStats(os.Args[2:])
	case "config":
		err = runConfig(os.Args[2:])
	case "mcp":
		err = runMCP(os.Args[2:])
	case "version", "--version", "-v":
		fmt.Printf("strainbase %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath    string
	dbPath        string
	llmFlag       string
	threshold     string
	limitPerQuery string
	fuzzy         string
	fuzzyCutoff   string
	rest          []string
}

// parseGlobalFlags strips the flags every command shares; unrecognized
// arguments are returned for the command to interpret.
func parseGlobalFlags(args []string) (globalFlags, error) {
	var g globalFlags
	for i := 0; i < len(args); i++ {
		arg := args[i]
		takeValue := func() (string, error) {
			if i+1 >= len(args) {
				return "", fmt.Errorf("flag %s requires a value", arg)
			}
			i++
			return args[i], nil
		}

		var err error
		switch arg {
		case "--config":
			g.configPath, err = takeValue()
		case "--db":
			g.dbPath, err = takeValue()
		case "--llm":
			g.llmFlag, err = takeValue()
		case "--threshold":
			g.threshold, err = takeValue()
		case "--limit-per-query":
			g.limitPerQuery, err = takeValue()
		case "--fuzzy":
			g.fuzzy = "true"
		case "--no-fuzzy":
			g.fuzzy = "false"
		case "--fuzzy-cutoff":
			g.fuzzyCutoff, err = takeValue()
		default:
			g.rest = append(g.rest, arg)
		}
		if err != nil {
			return g, err
		}
	}
	return g, nil
}

func resolveOptions(g globalFlags) config.ResolveOptions {
	return config.ResolveOptions{
		ConfigPath:       g.configPath,
		CLIDBPath:        g.dbPath,
		CLILLM:           g.llmFlag,
		CLIThreshold:     g.threshold,
		CLILimitPerQuery: g.limitPerQuery,
		CLIFuzzy:         g.fuzzy,
		CLIFuzzyCutoff:   g.fuzzyCutoff,
	}
}

func resolveAndOpen(g globalFlags) (config.ResolvedConfig, store.Store, error) {
	cfg, err := config.ResolveConfig(resolveOptions(g))
	if err != nil {
		return cfg, nil, err
	}

	s, err := store.NewStore(store.StoreConfig{DBPath: cfg.DBPath.Value})
	if err != nil {
		return cfg, nil, fmt.Errorf("opening store: %w", err)
	}
	return cfg, s, nil
}

func runPipeline(args []string) error {
	g, err := parseGlobalFlags(args)
	if err != nil {
		return err
	}

	skipLLM := false
	skipDedup := false
	for _, arg := range g.rest {
		switch arg {
		case "--skip-llm":
			skipLLM = true
		case "--skip-dedup":
			skipDedup = true
		default:
			return fmt.Errorf("unknown flag: %s", arg)
		}
	}

	cfg, s, err := resolveAndOpen(g)
	if err != nil {
		return err
	}
	defer s.Close()

	pcfg := pipeline.Config{
		SkipLLM:        skipLLM,
		SkipDedup:      skipDedup,
		DedupThreshold: config.IntValue(cfg.DedupThreshold, dedup.DefaultThreshold),
		LimitPerQuery:  config.IntValue(cfg.DedupLimitPerQuery, dedup.DefaultLimitPerQuery),
		FuzzyCutoff:    config.IntValue(cfg.EffectFuzzyCutoff, resolve.DefaultFuzzyCutoff),
	}

	if !skipLLM {
		provider, err := providerFromConfig(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "LLM fallback disabled: %v\n", err)
		} else {
			pcfg.Provider = provider
		}
	}

	result, err := pipeline.Run(context.Background(), s, pcfg)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func runSeed(args []string) error {
	g, err := parseGlobalFlags(args)
	if err != nil {
		return err
	}
	if len(g.rest) > 0 {
		return fmt.Errorf("unknown flag: %s", g.rest[0])
	}

	_, s, err := resolveAndOpen(g)
	if err != nil {
		return err
	}
	defer s.Close()

	created, err := taxonomy.Seed(context.Background(), s)
	if err != nil {
		return err
	}
	fmt.Printf("Seeded %d canonical effects (%d already present)\n",
		created, len(taxonomy.Canonical)-created)
	return nil
}

func runMapEffects(args []string) error {
	g, err := parseGlobalFlags(args)
	if err != nil {
		return err
	}

	withLLM := false
	for _, arg := range g.rest {
		switch arg {
		case "--with-llm":
			withLLM = true
		default:
			return fmt.Errorf("unknown flag: %s", arg)
		}
	}

	cfg, s, err := resolveAndOpen(g)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := context.Background()

	lookup, err := taxonomy.BuildLookup(ctx, s)
	if err != nil {
		return err
	}
	if lookup.Len() == 0 {
		return fmt.Errorf("taxonomy is empty; run `strainbase seed` first")
	}

	resolver := resolve.NewResolver(lookup, config.IntValue(cfg.EffectFuzzyCutoff, resolve.DefaultFuzzyCutoff))
	stats, err := resolve.ClassifyRuleBased(ctx, s, resolver)
	if err != nil {
		return err
	}
	if err := printJSON(stats); err != nil {
		return err
	}

	if withLLM {
		provider, err := providerFromConfig(cfg)
		if err != nil {
			return err
		}
		llmStats, err := resolve.ClassifyLLM(ctx, s, provider, lookup, resolve.DefaultLLMBatchSize)
		if err != nil {
			return err
		}
		return printJSON(llmStats)
	}
	return nil
}

func runDedup(args []string) error {
	g, err := parseGlobalFlags(args)
	if err != nil {
		return err
	}

	dryRun := false
	listAliases := false
	for _, arg := range g.rest {
		switch arg {
		case "--dry-run", "-n":
			dryRun = true
		case "--aliases":
			listAliases = true
		default:
			return fmt.Errorf("unknown flag: %s", arg)
		}
	}

	cfg, s, err := resolveAndOpen(g)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := context.Background()

	if listAliases {
		aliases, err := s.ListAliases(ctx)
		if err != nil {
			return err
		}
		if len(aliases) == 0 {
			fmt.Println("No aliases recorded")
			return nil
		}
		fmt.Printf("%d alias links:\n", len(aliases))
		for _, a := range aliases {
			fmt.Printf("  strain %d -> canonical %d (score %.1f)\n",
				a.AliasStrainID, a.CanonicalStrainID, a.MatchScore)
		}
		return nil
	}

	engine := dedup.NewEngine(s,
		config.IntValue(cfg.DedupThreshold, dedup.DefaultThreshold),
		config.IntValue(cfg.DedupLimitPerQuery, dedup.DefaultLimitPerQuery))

	if dryRun {
		clusters, err := engine.FindClusters(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Found %d clusters (dry run, no aliases created)\n", len(clusters))
		for _, cluster := range clusters {
			fmt.Printf("  %s\n", strings.Join(cluster, " | "))
		}
		return nil
	}

	stats, err := engine.Run(ctx)
	if err != nil {
		return err
	}
	return printJSON(stats)
}

func runMatch(args []string) error {
	g, err := parseGlobalFlags(args)
	if err != nil {
		return err
	}

	source := "lab"
	exact := false
	var names []string
	for i := 0; i < len(g.rest); i++ {
		switch g.rest[i] {
		case "--source":
			if i+1 >= len(g.rest) {
				return fmt.Errorf("flag --source requires a value")
			}
			i++
			source = g.rest[i]
		case "--exact":
			exact = true
		default:
			if strings.HasPrefix(g.rest[i], "-") {
				return fmt.Errorf("unknown flag: %s", g.rest[i])
			}
			names = append(names, g.rest[i])
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("usage: strainbase match [--source <name>] [--exact] <strain name>...")
	}

	cfg, s, err := resolveAndOpen(g)
	if err != nil {
		return err
	}
	defer s.Close()

	matcher := dedup.NewMatcher(s, config.IntValue(cfg.DedupThreshold, dedup.DefaultThreshold))
	if exact || !config.BoolValue(cfg.DedupFuzzy, true) {
		matcher.Fuzzy = false
	}

	stats, err := matcher.MatchNames(context.Background(), names, source)
	if err != nil {
		return err
	}
	return printJSON(stats)
}

func runImport(args []string) error {
	g, err := parseGlobalFlags(args)
	if err != nil {
		return err
	}

	for _, arg := range g.rest {
		if arg == "--priority" {
			return runImportPriority(g)
		}
	}
	if len(g.rest) != 1 {
		return fmt.Errorf("usage: strainbase import <reports.json> | strainbase import --priority [--limit <n>]")
	}

	raw, err := os.ReadFile(g.rest[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", g.rest[0], err)
	}
	var batch []ingest.StrainReport
	if err := json.Unmarshal(raw, &batch); err != nil {
		return fmt.Errorf("parsing %s: %w", g.rest[0], err)
	}

	_, s, err := resolveAndOpen(g)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := context.Background()

	lookup, err := taxonomy.BuildLookup(ctx, s)
	if err != nil {
		return err
	}
	if lookup.Len() == 0 {
		return fmt.Errorf("taxonomy is empty; run `strainbase seed` first")
	}

	stats, err := ingest.NewImporter(s, lookup).ImportBatch(ctx, batch)
	if err != nil {
		return err
	}
	return printJSON(stats)
}

// runImportPriority lists strains that have composition data but no
// effect reports, richest first. These are the next scraping targets.
func runImportPriority(g globalFlags) error {
	limit := 0
	for i := 0; i < len(g.rest); i++ {
		switch g.rest[i] {
		case "--priority":
		case "--limit":
			if i+1 >= len(g.rest) {
				return fmt.Errorf("flag --limit requires a value")
			}
			i++
			n, err := strconv.Atoi(g.rest[i])
			if err != nil {
				return fmt.Errorf("invalid --limit value %q", g.rest[i])
			}
			limit = n
		default:
			return fmt.Errorf("unknown flag: %s", g.rest[i])
		}
	}

	_, s, err := resolveAndOpen(g)
	if err != nil {
		return err
	}
	defer s.Close()

	strains, err := s.ListPriorityStrains(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(strains) == 0 {
		fmt.Println("No strains are waiting on effect reports")
		return nil
	}
	fmt.Printf("%d strains with composition data but no effect reports:\n", len(strains))
	for _, st := range strains {
		fmt.Printf("  %d\t%s\n", st.ID, st.Name)
	}
	return nil
}

func runConfidence(args []string) error {
	g, err := parseGlobalFlags(args)
	if err != nil {
		return err
	}
	if len(g.rest) > 0 {
		return fmt.Errorf("unknown flag: %s", g.rest[0])
	}

	_, s, err := resolveAndOpen(g)
	if err != nil {
		return err
	}
	defer s.Close()

	updated, err := confidence.Recompute(context.Background(), s)
	if err != nil {
		return err
	}
	fmt.Printf("Rescored %d reports\n", updated)
	return nil
}

func runStats(args []string) error {
	g, err := parseGlobalFlags(args)
	if err != nil {
		return err
	}

	_, s, err := resolveAndOpen(g)
	if err != nil {
		return err
	}
	defer s.Close()

	stats, err := s.Stats(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Strains:            %d\n", stats.StrainCount)
	fmt.Printf("Strain aliases:     %d\n", stats.AliasCount)
	fmt.Printf("Canonical effects:  %d\n", stats.CanonicalEffectCount)
	fmt.Printf("Raw effects:        %d\n", stats.EffectCount)
	fmt.Printf("Effect mappings:    %d\n", stats.MappingCount)
	fmt.Printf("Effect reports:     %d\n", stats.ReportCount)
	return nil
}

func runConfig(args []string) error {
	g, err := parseGlobalFlags(args)
	if err != nil {
		return err
	}

	cfg, err := config.ResolveConfig(resolveOptions(g))
	if err != nil {
		return err
	}
	return printJSON(cfg)
}

func runMCP(args []string) error {
	g, err := parseGlobalFlags(args)
	if err != nil {
		return err
	}

	_, s, err := resolveAndOpen(g)
	if err != nil {
		return err
	}
	defer s.Close()

	srv := mcp.NewServer(mcp.ServerConfig{Store: s, Version: version})
	return mcp.ServeStdio(srv)
}

func providerFromConfig(cfg config.ResolvedConfig) (llm.Provider, error) {
	llmCfg, err := llm.ParseLLMFlag(cfg.LLMProvider.Value)
	if err != nil {
		return nil, err
	}
	llmCfg.APIKey = cfg.LLMAPIKey.Value
	return llm.NewProvider(llmCfg)
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func printUsage() {
	fmt.Printf(`strainbase %s - strain and effect resolution engine

Usage:
  strainbase <command> [arguments]

Commands:
  pipeline            Run the full cleaning pipeline (seed, classify, dedup, rescore)
  seed                Seed the canonical effects taxonomy
  map-effects         Classify raw effect names against the taxonomy
  dedup               Cluster and merge near-duplicate strains
  match <name>...     Match external strain names, creating new strains as needed
  import <file>       Import effect reports from a JSON batch file
  import --priority   List strains with composition data but no reports
  confidence          Recompute report confidence scores
  stats               Show database row counts
  config              Show resolved configuration and value provenance
  mcp                 Serve the engine over the Model Context Protocol (stdio)
  version             Print version

Pipeline Flags:
  --skip-llm          Skip the LLM classification fallback
  --skip-dedup        Skip strain deduplication

Dedup Flags:
  -n, --dry-run       Report clusters without creating aliases
  --aliases           List existing alias links and exit

Match Flags:
  --source <name>     Source tag for created strains (default: lab)
  --exact             Disable fuzzy matching (exact key lookups only)

Global Flags:
  --config <path>     Config file (default: ~/.strainbase/config.yaml)
  --db <path>         Database path (default: ~/.strainbase/strainbase.db)
  --llm <p/m>         LLM provider/model (e.g. zai/glm-4.7)
  --threshold <n>     Dedup similarity threshold (default: 90)
  --limit-per-query <n>
                      Top matches considered per name while clustering (default: 3)
  --fuzzy, --no-fuzzy Enable or disable fuzzy matching for the match command
  --fuzzy-cutoff <n>  Effect fuzzy-match cutoff (default: 85)
  -h, --help          Show this help message
  -v, --version       Print version
`, version)
}

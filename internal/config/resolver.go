// Package config resolves layered configuration: YAML config file,
// then environment variables, then CLI flags, each layer overriding
// the previous one. Every resolved value remembers where it came from
// so `strainbase config` can show the provenance.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type ValueSource string

const (
	SourceUnknown ValueSource = "unknown"
	SourceConfig  ValueSource = "config"
	SourceEnv     ValueSource = "env"
	SourceCLI     ValueSource = "cli"
	SourceDefault ValueSource = "default"
)

type ResolvedValue struct {
	Value  string      `json:"value"`
	Source ValueSource `json:"source"`
	From   string      `json:"from,omitempty"`
}

type ResolveOptions struct {
	ConfigPath       string
	CLIDBPath        string
	CLILLM           string
	CLIThreshold     string
	CLILimitPerQuery string
	CLIFuzzy         string
	CLIFuzzyCutoff   string
}

type ResolvedConfig struct {
	ConfigPath string `json:"config_path"`

	DBPath ResolvedValue `json:"db_path"`

	DedupThreshold     ResolvedValue `json:"dedup_threshold"`
	DedupLimitPerQuery ResolvedValue `json:"dedup_limit_per_query"`
	DedupFuzzy         ResolvedValue `json:"dedup_fuzzy"`

	EffectFuzzyCutoff ResolvedValue `json:"effect_fuzzy_cutoff"`

	LLMProvider ResolvedValue `json:"llm_provider"`
	LLMAPIKey   ResolvedValue `json:"llm_api_key"`
}

type fileConfig struct {
	DBPath string `yaml:"db_path"`
	Dedup  struct {
		Threshold     string `yaml:"threshold"`
		LimitPerQuery string `yaml:"limit_per_query"`
		Fuzzy         string `yaml:"fuzzy"`
	} `yaml:"dedup"`
	Effects struct {
		FuzzyCutoff string `yaml:"fuzzy_cutoff"`
	} `yaml:"effects"`
	LLM struct {
		Provider string `yaml:"provider"`
		APIKey   string `yaml:"api_key"`
	} `yaml:"llm"`
}

func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".strainbase", "config.yaml")
}

func ResolveConfig(opts ResolveOptions) (ResolvedConfig, error) {
	path := strings.TrimSpace(opts.ConfigPath)
	if path == "" {
		path = DefaultConfigPath()
	}

	out := ResolvedConfig{ConfigPath: path}

	cfg, err := loadConfig(path)
	if err != nil {
		return out, err
	}

	if cfg != nil {
		apply(&out.DBPath, cfg.DBPath, SourceConfig, path)
		apply(&out.DedupThreshold, cfg.Dedup.Threshold, SourceConfig, path)
		apply(&out.DedupLimitPerQuery, cfg.Dedup.LimitPerQuery, SourceConfig, path)
		apply(&out.DedupFuzzy, cfg.Dedup.Fuzzy, SourceConfig, path)
		apply(&out.EffectFuzzyCutoff, cfg.Effects.FuzzyCutoff, SourceConfig, path)
		apply(&out.LLMProvider, cfg.LLM.Provider, SourceConfig, path)
		if key := strings.TrimSpace(cfg.LLM.APIKey); key != "" {
			out.LLMAPIKey = ResolvedValue{Value: key, Source: SourceConfig, From: path}
		}
	}

	applyEnv(&out.DBPath, "STRAINBASE_DB")
	applyEnv(&out.DBPath, "STRAINBASE_DB_PATH")
	applyEnv(&out.DedupThreshold, "STRAINBASE_DEDUP_THRESHOLD")
	applyEnv(&out.DedupLimitPerQuery, "STRAINBASE_DEDUP_LIMIT")
	applyEnv(&out.DedupFuzzy, "STRAINBASE_DEDUP_FUZZY")
	applyEnv(&out.EffectFuzzyCutoff, "STRAINBASE_EFFECT_FUZZY_CUTOFF")
	applyEnv(&out.LLMProvider, "STRAINBASE_LLM")
	applyEnv(&out.LLMAPIKey, "ZAI_API_KEY")
	applyEnv(&out.LLMAPIKey, "STRAINBASE_LLM_API_KEY")

	apply(&out.DBPath, opts.CLIDBPath, SourceCLI, "--db")
	apply(&out.LLMProvider, opts.CLILLM, SourceCLI, "--llm")
	apply(&out.DedupThreshold, opts.CLIThreshold, SourceCLI, "--threshold")
	apply(&out.DedupLimitPerQuery, opts.CLILimitPerQuery, SourceCLI, "--limit-per-query")
	apply(&out.DedupFuzzy, opts.CLIFuzzy, SourceCLI, "--fuzzy")
	apply(&out.EffectFuzzyCutoff, opts.CLIFuzzyCutoff, SourceCLI, "--fuzzy-cutoff")

	if out.DBPath.Value != "" {
		out.DBPath.Value = expandUserPath(out.DBPath.Value)
	}

	return out, nil
}

// IntValue parses a resolved value as an integer, falling back to def
// when it is unset or malformed.
func IntValue(v ResolvedValue, def int) int {
	s := strings.TrimSpace(v.Value)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// BoolValue parses a resolved value as a boolean, falling back to def
// when it is unset or malformed.
func BoolValue(v ResolvedValue, def bool) bool {
	s := strings.TrimSpace(v.Value)
	if s == "" {
		return def
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}

func apply(dst *ResolvedValue, raw string, source ValueSource, from string) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return
	}
	*dst = ResolvedValue{Value: v, Source: source, From: from}
}

func applyEnv(dst *ResolvedValue, envKey string) {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		*dst = ResolvedValue{Value: v, Source: SourceEnv, From: envKey}
	}
}

func loadConfig(path string) (*fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

func expandUserPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

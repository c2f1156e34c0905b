// Package store provides the SQLite storage layer for strainbase.
//
// All resolved data lives in a single SQLite database file, including:
// - Strains with normalized comparison keys and source provenance
// - Alias links from duplicate strains to their canonical strain
// - The canonical effects taxonomy and raw effect name mappings
// - Effect reports with multi-source confidence scores
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultDBPath is the default database location.
const DefaultDBPath = "~/.strainbase/strainbase.db"

// Strain is a canonical or not-yet-deduplicated strain entity.
type Strain struct {
	ID             int64
	Name           string
	NormalizedName string
	StrainType     string
	Description    string
	Source         string
	SourceID       string
	CreatedAt      time.Time
}

// StrainAlias links a duplicate strain to its canonical strain.
type StrainAlias struct {
	ID                int64
	AliasStrainID     int64
	CanonicalStrainID int64
	MatchScore        float64
}

// CanonicalEffect is one entry of the fixed effects taxonomy.
type CanonicalEffect struct {
	ID              int64
	Name            string
	Category        string
	Description     string
	Synonyms        []string
	ReceptorPathway string
}

// EffectMapping records how a raw effect label resolved against the
// taxonomy. CanonicalID is nil for junk/filtered labels.
type EffectMapping struct {
	ID          int64
	RawName     string
	CanonicalID *int64
	Confidence  float64
	Method      string
	CreatedAt   time.Time
}

// EffectReport is a (strain, effect, source) relationship row. The
// confidence aggregator recomputes Confidence; ReportCount is owned by
// ingestion and never mutated here.
type EffectReport struct {
	ID          int64
	StrainID    int64
	EffectID    int64
	ReportCount int
	Confidence  float64
	Source      string
}

// ReportGroup identifies a (strain, effect) pair for source counting.
type ReportGroup struct {
	StrainID int64
	EffectID int64
}

// StrainRank is a cluster member with its data richness, used by
// canonical selection.
type StrainRank struct {
	ID             int64
	NormalizedName string
	Richness       int
}

// StoreStats holds row counts for observability.
type StoreStats struct {
	StrainCount          int64 `json:"strain_count"`
	AliasCount           int64 `json:"alias_count"`
	CanonicalEffectCount int64 `json:"canonical_effect_count"`
	EffectCount          int64 `json:"effect_count"`
	MappingCount         int64 `json:"mapping_count"`
	ReportCount          int64 `json:"report_count"`
}

// StoreConfig holds configuration for NewStore.
type StoreConfig struct {
	DBPath string
}

// Store defines the persistence contract the resolution engine requires.
type Store interface {
	// Strains
	UpsertStrain(ctx context.Context, s *Strain) (int64, bool, error)
	FindStrainByKey(ctx context.Context, normalizedName string) (*Strain, error)
	ListDistinctNormalizedStrainNames(ctx context.Context) ([]string, error)
	StrainRichness(ctx context.Context, id int64) (int, error)
	ClusterRichness(ctx context.Context, keys []string) ([]StrainRank, error)
	ListPriorityStrains(ctx context.Context, limit int) ([]Strain, error)
	AddComposition(ctx context.Context, strainID int64, molecule string, percentage float64, source string) (bool, error)

	// Aliases
	UpsertAlias(ctx context.Context, aliasID, canonicalID int64, matchScore float64) (bool, error)
	CountAliases(ctx context.Context) (int64, error)
	ListAliases(ctx context.Context) ([]StrainAlias, error)

	// Effects taxonomy
	SeedCanonicalEffect(ctx context.Context, e *CanonicalEffect) (bool, error)
	ListCanonicalEffects(ctx context.Context) ([]CanonicalEffect, error)
	EnsureEffect(ctx context.Context, name, category string) (int64, error)
	ListUnmappedEffectNames(ctx context.Context) ([]string, error)

	// Effect mappings
	UpsertEffectMapping(ctx context.Context, rawName string, canonicalID *int64, confidence float64, method string) (bool, error)
	GetEffectMapping(ctx context.Context, rawName string) (*EffectMapping, error)
	CountMappings(ctx context.Context) (mapped, junk int64, err error)

	// Effect reports
	UpsertEffectReport(ctx context.Context, r *EffectReport) (bool, error)
	ReportGroups(ctx context.Context) (map[ReportGroup]int, error)
	MaxReportVotes(ctx context.Context) (int, error)
	ListReports(ctx context.Context) ([]EffectReport, error)
	UpdateReportConfidence(ctx context.Context, reportID int64, confidence float64) error
	PurgeNullEffectReports(ctx context.Context) (int64, error)

	// Observability
	Stats(ctx context.Context) (*StoreStats, error)
	RecordDataSource(ctx context.Context, name, sourceType string, recordCount int) error

	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewStore creates a new SQLite-backed Store.
// Pass ":memory:" for in-memory databases (testing).
func NewStore(cfg StoreConfig) (Store, error) {
	if cfg.DBPath == "" {
		cfg.DBPath = expandPath(DefaultDBPath)
	}

	if cfg.DBPath != ":memory:" {
		dir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	s := &SQLiteStore{db: db, dbPath: cfg.DBPath}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetDB returns the underlying *sql.DB for callers that need direct
// access (tests, one-off maintenance).
func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

// expandPath expands ~ to home directory.
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

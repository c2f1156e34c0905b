package store

import (
	"database/sql"
	"fmt"
	"time"
)

// migrate creates all tables if they don't exist and seeds metadata.
// Safe to run on every open: bootstrap state is tracked in the meta table.
func (s *SQLiteStore) migrate() error {
	bootstrapDone, err := s.isMetaFlagEnabled("schema_bootstrap_complete")
	if err != nil {
		return fmt.Errorf("checking bootstrap state: %w", err)
	}

	if !bootstrapDone {
		if err := s.runBootstrapDDL(); err != nil {
			return err
		}
	}

	if err := s.seedMeta(); err != nil {
		return fmt.Errorf("seeding metadata: %w", err)
	}

	if !bootstrapDone {
		if err := s.setMetaFlag("schema_bootstrap_complete"); err != nil {
			return fmt.Errorf("marking bootstrap complete: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) runBootstrapDDL() error {
	statements := []string{
		// Strains imported from various sources. normalized_name is a
		// comparison key, not an identity: the same key may appear for
		// multiple sources.
		`CREATE TABLE IF NOT EXISTS strains (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			name            TEXT NOT NULL,
			normalized_name TEXT NOT NULL,
			strain_type     TEXT CHECK(strain_type IN ('indica', 'sativa', 'hybrid', 'unknown')) DEFAULT 'unknown',
			description     TEXT DEFAULT '',
			source          TEXT DEFAULT '',
			source_id       TEXT DEFAULT '',
			created_at      DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(normalized_name, source)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_strains_normalized ON strains(normalized_name)`,

		// Alias links from duplicate strains to their canonical strain.
		// alias_strain_id is unique: a strain has at most one canonical
		// target, and canonical strains are never themselves aliased.
		`CREATE TABLE IF NOT EXISTS strain_aliases (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			alias_strain_id     INTEGER NOT NULL UNIQUE REFERENCES strains(id),
			canonical_strain_id INTEGER NOT NULL REFERENCES strains(id),
			match_score         REAL NOT NULL DEFAULT 100.0
		)`,

		`CREATE INDEX IF NOT EXISTS idx_strain_aliases_canonical ON strain_aliases(canonical_strain_id)`,

		// Strain chemical compositions (terpene/cannabinoid percentages).
		`CREATE TABLE IF NOT EXISTS strain_compositions (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			strain_id        INTEGER NOT NULL REFERENCES strains(id),
			molecule         TEXT NOT NULL,
			percentage       REAL NOT NULL,
			measurement_type TEXT CHECK(measurement_type IN ('lab_tested', 'reported', 'estimated')) DEFAULT 'reported',
			source           TEXT DEFAULT '',
			UNIQUE(strain_id, molecule, source)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_strain_compositions_strain ON strain_compositions(strain_id)`,

		// The fixed canonical effects taxonomy. Immutable reference data,
		// seeded once; synonyms stored as a JSON array.
		`CREATE TABLE IF NOT EXISTS canonical_effects (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			name             TEXT UNIQUE NOT NULL,
			category         TEXT CHECK(category IN ('positive', 'negative', 'medical')) NOT NULL,
			description      TEXT DEFAULT '',
			synonyms         TEXT DEFAULT '[]',
			receptor_pathway TEXT DEFAULT ''
		)`,

		// Effects observed in reports (canonical names only downstream of
		// resolution).
		`CREATE TABLE IF NOT EXISTS effects (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			name     TEXT UNIQUE NOT NULL,
			category TEXT CHECK(category IN ('positive', 'negative', 'medical', 'other')) DEFAULT 'other'
		)`,

		// Append-only record of how each distinct raw label resolved.
		`CREATE TABLE IF NOT EXISTS effect_mappings (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			raw_name     TEXT UNIQUE NOT NULL,
			canonical_id INTEGER REFERENCES canonical_effects(id),
			confidence   REAL NOT NULL DEFAULT 0.0,
			method       TEXT NOT NULL,
			created_at   DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Effect reports: how many users report an effect for a strain,
		// per source.
		`CREATE TABLE IF NOT EXISTS effect_reports (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			strain_id    INTEGER NOT NULL REFERENCES strains(id),
			effect_id    INTEGER NOT NULL REFERENCES effects(id),
			report_count INTEGER DEFAULT 0,
			confidence   REAL DEFAULT 1.0,
			source       TEXT DEFAULT '',
			UNIQUE(strain_id, effect_id, source)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_effect_reports_strain ON effect_reports(strain_id)`,
		`CREATE INDEX IF NOT EXISTS idx_effect_reports_effect ON effect_reports(effect_id)`,

		// Data source provenance tracking.
		`CREATE TABLE IF NOT EXISTS data_sources (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			name         TEXT UNIQUE NOT NULL,
			source_type  TEXT DEFAULT '',
			last_updated DATETIME,
			record_count INTEGER DEFAULT 0
		)`,

		// Metadata table
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT
		)`,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning migration transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing migration %q: %w", truncate(stmt, 80), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing migration: %w", err)
	}

	return nil
}

func (s *SQLiteStore) isMetaFlagEnabled(key string) (bool, error) {
	var exists int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='meta'`).Scan(&exists); err != nil {
		return false, err
	}
	if exists == 0 {
		return false, nil
	}

	var value string
	err := s.db.QueryRow("SELECT value FROM meta WHERE key = ?", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return value == "true", nil
}

func (s *SQLiteStore) setMetaFlag(key string) error {
	_, err := s.db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES (?, 'true')", key)
	return err
}

// seedMeta initializes the meta table with defaults if not already set.
func (s *SQLiteStore) seedMeta() error {
	defaults := map[string]string{
		"schema_version": "1",
		"created_at":     time.Now().UTC().Format(time.RFC3339),
	}

	for k, v := range defaults {
		_, err := s.db.Exec(
			"INSERT OR IGNORE INTO meta (key, value) VALUES (?, ?)", k, v,
		)
		if err != nil {
			return fmt.Errorf("seeding meta key %q: %w", k, err)
		}
	}
	return nil
}

// truncate shortens a string for error messages.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// SeedCanonicalEffect inserts one taxonomy entry if absent. Returns
// whether a new row was created. Existing entries are never overwritten:
// the taxonomy is immutable reference data.
func (s *SQLiteStore) SeedCanonicalEffect(ctx context.Context, e *CanonicalEffect) (bool, error) {
	synonymsJSON, err := json.Marshal(e.Synonyms)
	if err != nil {
		return false, fmt.Errorf("encoding synonyms for %q: %w", e.Name, err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO canonical_effects (name, category, description, synonyms, receptor_pathway)
		 VALUES (?, ?, ?, ?, ?)`,
		e.Name, e.Category, e.Description, string(synonymsJSON), e.ReceptorPathway,
	)
	if err != nil {
		return false, fmt.Errorf("seeding canonical effect %q: %w", e.Name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading canonical effect insert result: %w", err)
	}
	return affected == 1, nil
}

// ListCanonicalEffects returns the full taxonomy with decoded synonym
// lists, ordered by ID.
func (s *SQLiteStore) ListCanonicalEffects(ctx context.Context) ([]CanonicalEffect, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, category, description, COALESCE(synonyms, '[]'), receptor_pathway
		 FROM canonical_effects ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing canonical effects: %w", err)
	}
	defer rows.Close()

	effects := make([]CanonicalEffect, 0, 64)
	for rows.Next() {
		var e CanonicalEffect
		var synonymsRaw string
		if err := rows.Scan(&e.ID, &e.Name, &e.Category, &e.Description, &synonymsRaw, &e.ReceptorPathway); err != nil {
			return nil, fmt.Errorf("scanning canonical effect row: %w", err)
		}
		if err := json.Unmarshal([]byte(synonymsRaw), &e.Synonyms); err != nil {
			return nil, fmt.Errorf("decoding synonyms for %q: %w", e.Name, err)
		}
		effects = append(effects, e)
	}
	return effects, rows.Err()
}

// EnsureEffect returns the effects-table ID for name, inserting the row
// if needed.
func (s *SQLiteStore) EnsureEffect(ctx context.Context, name, category string) (int64, error) {
	if category == "" {
		category = "other"
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM effects WHERE name = ?`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("looking up effect %q: %w", name, err)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO effects (name, category) VALUES (?, ?)`, name, category,
	); err != nil {
		return 0, fmt.Errorf("inserting effect %q: %w", name, err)
	}

	if err := s.db.QueryRowContext(ctx, `SELECT id FROM effects WHERE name = ?`, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("re-reading effect %q: %w", name, err)
	}
	return id, nil
}

// ListUnmappedEffectNames returns effect names with no effect_mappings
// row yet, in insertion order. These are the candidates for rule-based
// and LLM classification.
func (s *SQLiteStore) ListUnmappedEffectNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT e.name FROM effects e
		 LEFT JOIN effect_mappings em ON e.name = em.raw_name
		 WHERE em.id IS NULL
		 ORDER BY e.id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing unmapped effect names: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0, 64)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning unmapped effect name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// UpsertEffectMapping records how rawName resolved. Append-only and
// idempotent by raw_name: the first mapping for a label wins and is never
// overwritten. Returns whether a new row was inserted.
func (s *SQLiteStore) UpsertEffectMapping(ctx context.Context, rawName string, canonicalID *int64, confidence float64, method string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO effect_mappings (raw_name, canonical_id, confidence, method)
		 VALUES (?, ?, ?, ?)`,
		rawName, canonicalID, confidence, method,
	)
	if err != nil {
		return false, fmt.Errorf("inserting effect mapping %q: %w", rawName, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading effect mapping insert result: %w", err)
	}
	return affected == 1, nil
}

// GetEffectMapping returns the mapping for rawName, or nil when absent.
func (s *SQLiteStore) GetEffectMapping(ctx context.Context, rawName string) (*EffectMapping, error) {
	m := &EffectMapping{}
	var canonicalID sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, raw_name, canonical_id, confidence, method, created_at
		 FROM effect_mappings WHERE raw_name = ?`,
		rawName,
	).Scan(&m.ID, &m.RawName, &canonicalID, &m.Confidence, &m.Method, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting effect mapping %q: %w", rawName, err)
	}
	if canonicalID.Valid {
		v := canonicalID.Int64
		m.CanonicalID = &v
	}
	return m, nil
}

// CountMappings returns how many effect mappings point at a canonical
// effect and how many were classified as junk (null canonical id).
func (s *SQLiteStore) CountMappings(ctx context.Context) (mapped, junk int64, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM effect_mappings WHERE canonical_id IS NOT NULL`,
	).Scan(&mapped)
	if err != nil {
		return 0, 0, fmt.Errorf("counting mapped effects: %w", err)
	}
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM effect_mappings WHERE canonical_id IS NULL`,
	).Scan(&junk)
	if err != nil {
		return 0, 0, fmt.Errorf("counting junk mappings: %w", err)
	}
	return mapped, junk, nil
}

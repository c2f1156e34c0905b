package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// UpsertStrain inserts a strain if no row exists for its
// (normalized_name, source) pair. Returns the strain ID and whether a new
// row was created. A duplicate is the expected idempotency signal, not an
// error.
func (s *SQLiteStore) UpsertStrain(ctx context.Context, st *Strain) (int64, bool, error) {
	if st.StrainType == "" {
		st.StrainType = "unknown"
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO strains (name, normalized_name, strain_type, description, source, source_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		st.Name, st.NormalizedName, st.StrainType, st.Description, st.Source, st.SourceID,
	)
	if err != nil {
		return 0, false, fmt.Errorf("inserting strain %q: %w", st.Name, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("reading strain insert result: %w", err)
	}
	if affected == 1 {
		id, err := res.LastInsertId()
		if err != nil {
			return 0, false, fmt.Errorf("reading strain insert id: %w", err)
		}
		st.ID = id
		return id, true, nil
	}

	var id int64
	err = s.db.QueryRowContext(ctx,
		`SELECT id FROM strains WHERE normalized_name = ? AND source = ?`,
		st.NormalizedName, st.Source,
	).Scan(&id)
	if err != nil {
		return 0, false, fmt.Errorf("looking up existing strain %q: %w", st.NormalizedName, err)
	}
	st.ID = id
	return id, false, nil
}

// FindStrainByKey returns the lowest-ID strain with the given normalized
// name, or nil when absent.
func (s *SQLiteStore) FindStrainByKey(ctx context.Context, normalizedName string) (*Strain, error) {
	st := &Strain{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, normalized_name, strain_type, description, source, source_id, created_at
		 FROM strains WHERE normalized_name = ? ORDER BY id ASC LIMIT 1`,
		normalizedName,
	).Scan(&st.ID, &st.Name, &st.NormalizedName, &st.StrainType, &st.Description,
		&st.Source, &st.SourceID, &st.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding strain by key %q: %w", normalizedName, err)
	}
	return st, nil
}

// ListDistinctNormalizedStrainNames returns every distinct normalized
// strain name in lexicographic order. The ordering is mandatory: the
// cluster engine's forward-only comparison depends on it for
// deterministic results.
func (s *SQLiteStore) ListDistinctNormalizedStrainNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT normalized_name FROM strains ORDER BY normalized_name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing normalized strain names: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0, 256)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning strain name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// StrainRichness returns a strain's data volume: composition rows plus
// effect report rows.
func (s *SQLiteStore) StrainRichness(ctx context.Context, id int64) (int, error) {
	var richness int
	err := s.db.QueryRowContext(ctx,
		`SELECT
			(SELECT COUNT(*) FROM strain_compositions WHERE strain_id = ?) +
			(SELECT COUNT(*) FROM effect_reports WHERE strain_id = ?)`,
		id, id,
	).Scan(&richness)
	if err != nil {
		return 0, fmt.Errorf("computing richness for strain %d: %w", id, err)
	}
	return richness, nil
}

// ClusterRichness returns every strain whose normalized name is in keys,
// ranked by richness descending with the strain ID as the deterministic
// tie-break.
func (s *SQLiteStore) ClusterRichness(ctx context.Context, keys []string) ([]StrainRank, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(keys))
	args := make([]interface{}, len(keys))
	for i, k := range keys {
		placeholders[i] = "?"
		args[i] = k
	}

	query := fmt.Sprintf(`
		SELECT s.id, s.normalized_name,
			COALESCE(comp.cnt, 0) + COALESCE(eff.cnt, 0) AS richness
		FROM strains s
		LEFT JOIN (
			SELECT strain_id, COUNT(*) AS cnt
			FROM strain_compositions
			GROUP BY strain_id
		) comp ON comp.strain_id = s.id
		LEFT JOIN (
			SELECT strain_id, COUNT(*) AS cnt
			FROM effect_reports
			GROUP BY strain_id
		) eff ON eff.strain_id = s.id
		WHERE s.normalized_name IN (%s)
		ORDER BY richness DESC, s.id ASC`,
		strings.Join(placeholders, ","),
	)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying cluster richness: %w", err)
	}
	defer rows.Close()

	ranks := make([]StrainRank, 0, len(keys))
	for rows.Next() {
		var r StrainRank
		if err := rows.Scan(&r.ID, &r.NormalizedName, &r.Richness); err != nil {
			return nil, fmt.Errorf("scanning cluster richness row: %w", err)
		}
		ranks = append(ranks, r)
	}
	return ranks, rows.Err()
}

// ListPriorityStrains returns strains that have composition data but no
// effect reports yet, ordered by composition count descending so the
// chemically richest strains come first. These are the best candidates
// for the next scraping run. A non-positive limit returns all of them.
func (s *SQLiteStore) ListPriorityStrains(ctx context.Context, limit int) ([]Strain, error) {
	query := `SELECT s.id, s.name, s.normalized_name, s.strain_type, s.description,
			s.source, s.source_id, s.created_at
		 FROM strains s
		 JOIN strain_compositions c ON c.strain_id = s.id
		 LEFT JOIN effect_reports r ON r.strain_id = s.id
		 WHERE r.id IS NULL
		 GROUP BY s.id
		 ORDER BY COUNT(c.id) DESC, s.id ASC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing priority strains: %w", err)
	}
	defer rows.Close()

	var strains []Strain
	for rows.Next() {
		var st Strain
		if err := rows.Scan(&st.ID, &st.Name, &st.NormalizedName, &st.StrainType,
			&st.Description, &st.Source, &st.SourceID, &st.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning priority strain: %w", err)
		}
		strains = append(strains, st)
	}
	return strains, rows.Err()
}

// AddComposition records a molecule percentage for a strain. Duplicate
// (strain, molecule, source) rows are ignored. Returns whether a row was
// inserted.
func (s *SQLiteStore) AddComposition(ctx context.Context, strainID int64, molecule string, percentage float64, source string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO strain_compositions (strain_id, molecule, percentage, source)
		 VALUES (?, ?, ?, ?)`,
		strainID, molecule, percentage, source,
	)
	if err != nil {
		return false, fmt.Errorf("inserting composition for strain %d: %w", strainID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading composition insert result: %w", err)
	}
	return affected == 1, nil
}

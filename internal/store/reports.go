package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// UpsertEffectReport inserts a report row unless the
// (strain, effect, source) triple already exists. Returns whether a new
// row was inserted. report_count is never updated here: the row is owned
// by whichever ingestion pass created it first.
func (s *SQLiteStore) UpsertEffectReport(ctx context.Context, r *EffectReport) (bool, error) {
	confidence := r.Confidence
	if confidence == 0 {
		confidence = 1.0
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO effect_reports (strain_id, effect_id, report_count, confidence, source)
		 VALUES (?, ?, ?, ?, ?)`,
		r.StrainID, r.EffectID, r.ReportCount, confidence, r.Source,
	)
	if err != nil {
		return false, fmt.Errorf("inserting effect report (%d,%d,%s): %w", r.StrainID, r.EffectID, r.Source, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading effect report insert result: %w", err)
	}
	if affected == 1 {
		id, err := res.LastInsertId()
		if err != nil {
			return false, fmt.Errorf("reading effect report insert id: %w", err)
		}
		r.ID = id
		return true, nil
	}
	return false, nil
}

// ReportGroups returns the number of distinct sources for every
// (strain, effect) pair with at least one report row.
func (s *SQLiteStore) ReportGroups(ctx context.Context) (map[ReportGroup]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT strain_id, effect_id, COUNT(DISTINCT source)
		 FROM effect_reports GROUP BY strain_id, effect_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("grouping effect reports: %w", err)
	}
	defer rows.Close()

	groups := make(map[ReportGroup]int, 256)
	for rows.Next() {
		var g ReportGroup
		var count int
		if err := rows.Scan(&g.StrainID, &g.EffectID, &count); err != nil {
			return nil, fmt.Errorf("scanning report group: %w", err)
		}
		groups[g] = count
	}
	return groups, rows.Err()
}

// MaxReportVotes returns the largest report_count across all rows with a
// positive count, or 0 when there are none.
func (s *SQLiteStore) MaxReportVotes(ctx context.Context) (int, error) {
	var max sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(report_count) FROM effect_reports WHERE report_count > 0`,
	).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("reading max report votes: %w", err)
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64), nil
}

// ListReports returns every effect report row ordered by ID.
func (s *SQLiteStore) ListReports(ctx context.Context) ([]EffectReport, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, strain_id, effect_id, report_count, confidence, source
		 FROM effect_reports ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing effect reports: %w", err)
	}
	defer rows.Close()

	reports := make([]EffectReport, 0, 256)
	for rows.Next() {
		var r EffectReport
		if err := rows.Scan(&r.ID, &r.StrainID, &r.EffectID, &r.ReportCount, &r.Confidence, &r.Source); err != nil {
			return nil, fmt.Errorf("scanning effect report row: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// UpdateReportConfidence writes a recomputed confidence onto one report.
func (s *SQLiteStore) UpdateReportConfidence(ctx context.Context, reportID int64, confidence float64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE effect_reports SET confidence = ? WHERE id = ?`,
		confidence, reportID,
	)
	if err != nil {
		return fmt.Errorf("updating confidence for report %d: %w", reportID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading confidence update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("report %d not found", reportID)
	}
	return nil
}

// PurgeNullEffectReports deletes reports that point at the literal "null"
// effect emitted by some scrapers. Returns the number of rows removed.
func (s *SQLiteStore) PurgeNullEffectReports(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM effect_reports WHERE effect_id IN
		 (SELECT id FROM effects WHERE name = 'null')`,
	)
	if err != nil {
		return 0, fmt.Errorf("purging null effect reports: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading purge result: %w", err)
	}
	return deleted, nil
}

// Stats returns row counts for the main tables.
func (s *SQLiteStore) Stats(ctx context.Context) (*StoreStats, error) {
	stats := &StoreStats{}
	counts := []struct {
		query string
		dst   *int64
	}{
		{`SELECT COUNT(*) FROM strains`, &stats.StrainCount},
		{`SELECT COUNT(*) FROM strain_aliases`, &stats.AliasCount},
		{`SELECT COUNT(*) FROM canonical_effects`, &stats.CanonicalEffectCount},
		{`SELECT COUNT(*) FROM effects`, &stats.EffectCount},
		{`SELECT COUNT(*) FROM effect_mappings`, &stats.MappingCount},
		{`SELECT COUNT(*) FROM effect_reports`, &stats.ReportCount},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("reading stats: %w", err)
		}
	}
	return stats, nil
}

// RecordDataSource tracks provenance for an ingestion source. The
// record count accumulates across imports.
func (s *SQLiteStore) RecordDataSource(ctx context.Context, name, sourceType string, recordCount int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO data_sources (name, source_type, last_updated, record_count)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			source_type = excluded.source_type,
			last_updated = excluded.last_updated,
			record_count = data_sources.record_count + excluded.record_count`,
		name, sourceType, time.Now().UTC(), recordCount,
	)
	if err != nil {
		return fmt.Errorf("recording data source %q: %w", name, err)
	}
	return nil
}

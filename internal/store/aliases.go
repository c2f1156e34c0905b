package store

import (
	"context"
	"fmt"
)

// UpsertAlias links aliasID to canonicalID with the given match score.
// Idempotent by alias_strain_id: re-running over the same cluster creates
// zero duplicate rows. Returns whether a new row was inserted.
func (s *SQLiteStore) UpsertAlias(ctx context.Context, aliasID, canonicalID int64, matchScore float64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO strain_aliases (alias_strain_id, canonical_strain_id, match_score)
		 VALUES (?, ?, ?)`,
		aliasID, canonicalID, matchScore,
	)
	if err != nil {
		return false, fmt.Errorf("inserting alias %d -> %d: %w", aliasID, canonicalID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading alias insert result: %w", err)
	}
	return affected == 1, nil
}

// CountAliases returns the total number of alias rows.
func (s *SQLiteStore) CountAliases(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM strain_aliases`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting aliases: %w", err)
	}
	return count, nil
}

// ListAliases returns all alias rows ordered by alias strain ID.
func (s *SQLiteStore) ListAliases(ctx context.Context) ([]StrainAlias, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, alias_strain_id, canonical_strain_id, match_score
		 FROM strain_aliases ORDER BY alias_strain_id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing aliases: %w", err)
	}
	defer rows.Close()

	aliases := make([]StrainAlias, 0, 64)
	for rows.Next() {
		var a StrainAlias
		if err := rows.Scan(&a.ID, &a.AliasStrainID, &a.CanonicalStrainID, &a.MatchScore); err != nil {
			return nil, fmt.Errorf("scanning alias row: %w", err)
		}
		aliases = append(aliases, a)
	}
	return aliases, rows.Err()
}

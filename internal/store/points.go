package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rewear-hq/rewear/internal/model"
)

// ListPointsHistory returns a user's points ledger, newest first.
func ListPointsHistory(ctx context.Context, db *sql.DB, userID string) ([]model.PointsEntry, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, user_id, amount, reason, reference, created_at
		 FROM points_ledger WHERE user_id = ?
		 ORDER BY created_at DESC, rowid DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing points history: %w", err)
	}
	defer rows.Close()

	var entries []model.PointsEntry
	for rows.Next() {
		var e model.PointsEntry
		var reference sql.NullString
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Reason, &reference, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning ledger entry: %w", err)
		}
		e.Reference = reference.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/rewear-hq/rewear/internal/errs"
	"github.com/rewear-hq/rewear/internal/model"
)

// SwapFilter narrows a swap request listing. Zero values are ignored.
type SwapFilter struct {
	UserID     string // matches either participant
	FromUserID string
	ToUserID   string
	ItemID     string // matches either item
	Status     string
}

// CreateSwapRequest inserts a pending proposal to exchange fromItem for
// toItem. The participants are derived from the items' uploaders. Both
// items must be available and free of other pending requests.
func CreateSwapRequest(ctx context.Context, db *sql.DB, fromItemID, toItemID, message string) (*model.SwapRequest, error) {
	if fromItemID == "" || toItemID == "" {
		return nil, fmt.Errorf("%w: both item ids required", errs.ErrInvalidInput)
	}
	if fromItemID == toItemID {
		return nil, fmt.Errorf("%w: cannot swap an item for itself", errs.ErrInvalidInput)
	}

	fromItem, err := GetItem(ctx, db, fromItemID)
	if err != nil {
		return nil, err
	}
	toItem, err := GetItem(ctx, db, toItemID)
	if err != nil {
		return nil, err
	}

	if fromItem.UploaderID == toItem.UploaderID {
		return nil, fmt.Errorf("%w: both items belong to the same user", errs.ErrInvalidInput)
	}
	if fromItem.Status != model.ItemStatusAvailable {
		return nil, fmt.Errorf("%w: item %s is %s", errs.ErrItemUnavailable, fromItem.ID, fromItem.Status)
	}
	if toItem.Status != model.ItemStatusAvailable {
		return nil, fmt.Errorf("%w: item %s is %s", errs.ErrItemUnavailable, toItem.ID, toItem.Status)
	}

	// An item may sit in at most one pending request at a time.
	var reserved int
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM swap_requests
		 WHERE status = ?
		   AND (from_item_id IN (?, ?) OR to_item_id IN (?, ?))`,
		model.SwapStatusPending, fromItemID, toItemID, fromItemID, toItemID,
	).Scan(&reserved)
	if err != nil {
		return nil, fmt.Errorf("checking reservations: %w", err)
	}
	if reserved > 0 {
		return nil, fmt.Errorf("%w: an item already has a pending request", errs.ErrItemUnavailable)
	}

	id := uuid.NewString()
	_, err = db.ExecContext(ctx,
		`INSERT INTO swap_requests (id, from_user_id, to_user_id, from_item_id, to_item_id, message)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, fromItem.UploaderID, toItem.UploaderID, fromItemID, toItemID, message,
	)
	if err != nil {
		return nil, fmt.Errorf("creating swap request: %w", err)
	}

	return GetSwapRequest(ctx, db, id)
}

const swapSelect = `
	SELECT s.id, s.from_user_id, s.to_user_id, s.from_item_id, s.to_item_id, s.message,
	       s.status, s.created_at, s.completed_at,
	       fi.title AS from_item_title, ti.title AS to_item_title,
	       fu.name AS from_user_name, tu.name AS to_user_name
	FROM swap_requests s
	LEFT JOIN items fi ON fi.id = s.from_item_id
	LEFT JOIN items ti ON ti.id = s.to_item_id
	LEFT JOIN users fu ON fu.id = s.from_user_id
	LEFT JOIN users tu ON tu.id = s.to_user_id`

// GetSwapRequest returns a swap request by ID with display names joined in.
func GetSwapRequest(ctx context.Context, db *sql.DB, id string) (*model.SwapRequest, error) {
	row := db.QueryRowContext(ctx, swapSelect+` WHERE s.id = ?`, id)
	req, err := scanSwapRow(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: swap request %s", errs.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting swap request: %w", err)
	}
	return req, nil
}

// ListSwapRequests returns swap requests matching the filter, newest first.
func ListSwapRequests(ctx context.Context, db *sql.DB, f SwapFilter) ([]model.SwapRequest, error) {
	query := swapSelect + ` WHERE 1=1`
	var args []any

	if f.UserID != "" {
		query += ` AND (s.from_user_id = ? OR s.to_user_id = ?)`
		args = append(args, f.UserID, f.UserID)
	}
	if f.FromUserID != "" {
		query += ` AND s.from_user_id = ?`
		args = append(args, f.FromUserID)
	}
	if f.ToUserID != "" {
		query += ` AND s.to_user_id = ?`
		args = append(args, f.ToUserID)
	}
	if f.ItemID != "" {
		query += ` AND (s.from_item_id = ? OR s.to_item_id = ?)`
		args = append(args, f.ItemID, f.ItemID)
	}
	if f.Status != "" {
		query += ` AND s.status = ?`
		args = append(args, f.Status)
	}

	query += ` ORDER BY s.created_at DESC, s.rowid DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing swap requests: %w", err)
	}
	defer rows.Close()

	var reqs []model.SwapRequest
	for rows.Next() {
		req, err := scanSwapRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning swap request: %w", err)
		}
		reqs = append(reqs, *req)
	}
	return reqs, rows.Err()
}

// UpdateSwapRequestStatus applies a status transition and its side
// effects in a single transaction:
//
//   - accepted: both participants earn the swap bonus
//   - completed: completed_at is set, both items become swapped and both
//     participants' swap counts increase; a request completed straight
//     from pending also earns the bonus, since it never passed through
//     the accepted step
//   - rejected: no side effects
func UpdateSwapRequestStatus(ctx context.Context, db *sql.DB, id, newStatus string) (*model.SwapRequest, error) {
	if !model.ValidSwapStatus(newStatus) {
		return nil, fmt.Errorf("%w: unknown status %q", errs.ErrInvalidInput, newStatus)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var fromUserID, toUserID, fromItemID, toItemID, current string
	err = tx.QueryRowContext(ctx,
		`SELECT from_user_id, to_user_id, from_item_id, to_item_id, status
		 FROM swap_requests WHERE id = ?`, id,
	).Scan(&fromUserID, &toUserID, &fromItemID, &toItemID, &current)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: swap request %s", errs.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting swap request: %w", err)
	}

	if !model.CanTransition(current, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", errs.ErrInvalidTransition, current, newStatus)
	}

	if newStatus == model.SwapStatusCompleted {
		_, err = tx.ExecContext(ctx,
			`UPDATE swap_requests SET status = ?, completed_at = CURRENT_TIMESTAMP WHERE id = ?`,
			newStatus, id,
		)
	} else {
		_, err = tx.ExecContext(ctx,
			`UPDATE swap_requests SET status = ? WHERE id = ?`,
			newStatus, id,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("updating swap request: %w", err)
	}

	awardBonus := newStatus == model.SwapStatusAccepted ||
		(newStatus == model.SwapStatusCompleted && current == model.SwapStatusPending)
	if awardBonus {
		for _, userID := range []string{fromUserID, toUserID} {
			if err := addPoints(ctx, tx, userID, model.SwapBonus, model.PointsReasonSwap, id); err != nil {
				return nil, err
			}
		}
	}

	if newStatus == model.SwapStatusCompleted {
		for _, itemID := range []string{fromItemID, toItemID} {
			if _, err := tx.ExecContext(ctx,
				`UPDATE items SET status = ? WHERE id = ?`,
				model.ItemStatusSwapped, itemID,
			); err != nil {
				return nil, fmt.Errorf("marking item swapped: %w", err)
			}
		}
		for _, userID := range []string{fromUserID, toUserID} {
			if _, err := tx.ExecContext(ctx,
				`UPDATE users SET total_swaps = total_swaps + 1 WHERE id = ?`,
				userID,
			); err != nil {
				return nil, fmt.Errorf("updating swap count: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transition: %w", err)
	}

	return GetSwapRequest(ctx, db, id)
}

// scanSwapRow scans a row produced by swapSelect.
func scanSwapRow(scan func(...any) error) (*model.SwapRequest, error) {
	req := &model.SwapRequest{}
	var message, fromItemTitle, toItemTitle, fromUserName, toUserName sql.NullString
	err := scan(&req.ID, &req.FromUserID, &req.ToUserID, &req.FromItemID, &req.ToItemID, &message,
		&req.Status, &req.CreatedAt, &req.CompletedAt,
		&fromItemTitle, &toItemTitle, &fromUserName, &toUserName)
	if err != nil {
		return nil, err
	}
	req.Message = message.String
	req.FromItemTitle = fromItemTitle.String
	req.ToItemTitle = toItemTitle.String
	req.FromUserName = fromUserName.String
	req.ToUserName = toUserName.String
	return req, nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rewear-hq/rewear/internal/errs"
	"github.com/rewear-hq/rewear/internal/model"
)

const itemColumns = `id, title, description, category, size, condition, image, brand,
	original_price, swap_value, likes, views, uploader_id, uploader_name, status, created_at, deleted_at`

// CreateItemParams carries the fields for a new item listing.
type CreateItemParams struct {
	Title         string
	Description   string
	Category      string
	Size          string
	Condition     string
	Image         string
	Brand         string
	OriginalPrice float64
	UploaderID    string
	UploaderName  string
}

// Item list sort orders.
const (
	SortNewest = "newest"
	SortLikes  = "likes"
	SortViews  = "views"
)

// ItemFilter narrows and orders an item listing. Zero values are ignored.
type ItemFilter struct {
	Status     string
	Category   string
	UploaderID string
	Search     string // case-insensitive title match
	Sort       string // newest (default), likes, views
}

// ItemUpdate holds optional fields for a partial item update. Nil fields
// are left unchanged. The swap value is never recomputed, even when the
// price or condition changes.
type ItemUpdate struct {
	Title         *string
	Description   *string
	Category      *string
	Size          *string
	Condition     *string
	Image         *string
	Brand         *string
	Status        *string
	OriginalPrice *float64
}

// CreateItem validates and inserts a new listing. The swap value is
// derived once from the original price and condition, and the uploader
// earns the listing bonus in the same transaction.
func CreateItem(ctx context.Context, db *sql.DB, p CreateItemParams) (*model.Item, error) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" || p.Size == "" || p.UploaderID == "" || p.UploaderName == "" {
		return nil, fmt.Errorf("%w: title, size and uploader required", errs.ErrInvalidInput)
	}
	if !model.ValidCategory(p.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", errs.ErrInvalidInput, p.Category)
	}
	if !model.ValidCondition(p.Condition) {
		return nil, fmt.Errorf("%w: unknown condition %q", errs.ErrInvalidInput, p.Condition)
	}
	if p.OriginalPrice < 0 {
		return nil, fmt.Errorf("%w: negative original price", errs.ErrInvalidInput)
	}

	if _, err := GetUser(ctx, db, p.UploaderID); err != nil {
		return nil, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	id := uuid.NewString()
	swapValue := model.SwapValue(p.OriginalPrice, p.Condition)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO items (id, title, description, category, size, condition, image, brand,
		                    original_price, swap_value, uploader_id, uploader_name)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.Title, p.Description, p.Category, p.Size, p.Condition, p.Image, p.Brand,
		p.OriginalPrice, swapValue, p.UploaderID, p.UploaderName,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	if err := addPoints(ctx, tx, p.UploaderID, model.UploadBonus, model.PointsReasonUpload, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing item: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an active item by ID.
func GetItem(ctx context.Context, db *sql.DB, id string) (*model.Item, error) {
	item := &model.Item{}
	var description, image, brand sql.NullString
	var price sql.NullFloat64
	err := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ? AND deleted_at IS NULL`, id,
	).Scan(&item.ID, &item.Title, &description, &item.Category, &item.Size, &item.Condition,
		&image, &brand, &price, &item.SwapValue, &item.Likes, &item.Views,
		&item.UploaderID, &item.UploaderName, &item.Status, &item.CreatedAt, &item.DeletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: item %s", errs.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	item.Description = description.String
	item.Image = image.String
	item.Brand = brand.String
	item.OriginalPrice = price.Float64
	return item, nil
}

// ListItems returns non-deleted items matching the filter, most recent first
// unless another sort order is requested.
func ListItems(ctx context.Context, db *sql.DB, f ItemFilter) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE deleted_at IS NULL`
	var args []any

	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, f.Status)
	}
	if f.Category != "" {
		query += ` AND category = ?`
		args = append(args, f.Category)
	}
	if f.UploaderID != "" {
		query += ` AND uploader_id = ?`
		args = append(args, f.UploaderID)
	}
	if f.Search != "" {
		query += ` AND title LIKE ? ESCAPE '\'`
		args = append(args, "%"+escapeLike(f.Search)+"%")
	}

	switch f.Sort {
	case SortLikes:
		query += ` ORDER BY likes DESC, created_at DESC`
	case SortViews:
		query += ` ORDER BY views DESC, created_at DESC`
	default:
		query += ` ORDER BY created_at DESC, rowid DESC`
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		var description, image, brand sql.NullString
		var price sql.NullFloat64
		if err := rows.Scan(&item.ID, &item.Title, &description, &item.Category, &item.Size, &item.Condition,
			&image, &brand, &price, &item.SwapValue, &item.Likes, &item.Views,
			&item.UploaderID, &item.UploaderName, &item.Status, &item.CreatedAt, &item.DeletedAt); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		item.Description = description.String
		item.Image = image.String
		item.Brand = brand.String
		item.OriginalPrice = price.Float64
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateItem merges the non-nil fields into an existing item.
func UpdateItem(ctx context.Context, db *sql.DB, id string, upd ItemUpdate) (*model.Item, error) {
	item, err := GetItem(ctx, db, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		if strings.TrimSpace(*upd.Title) == "" {
			return nil, fmt.Errorf("%w: title required", errs.ErrInvalidInput)
		}
		item.Title = strings.TrimSpace(*upd.Title)
	}
	if upd.Description != nil {
		item.Description = *upd.Description
	}
	if upd.Category != nil {
		if !model.ValidCategory(*upd.Category) {
			return nil, fmt.Errorf("%w: unknown category %q", errs.ErrInvalidInput, *upd.Category)
		}
		item.Category = *upd.Category
	}
	if upd.Size != nil {
		item.Size = *upd.Size
	}
	if upd.Condition != nil {
		if !model.ValidCondition(*upd.Condition) {
			return nil, fmt.Errorf("%w: unknown condition %q", errs.ErrInvalidInput, *upd.Condition)
		}
		item.Condition = *upd.Condition
	}
	if upd.Image != nil {
		item.Image = *upd.Image
	}
	if upd.Brand != nil {
		item.Brand = *upd.Brand
	}
	if upd.Status != nil {
		if !model.ValidItemStatus(*upd.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", errs.ErrInvalidInput, *upd.Status)
		}
		item.Status = *upd.Status
	}
	if upd.OriginalPrice != nil {
		if *upd.OriginalPrice < 0 {
			return nil, fmt.Errorf("%w: negative original price", errs.ErrInvalidInput)
		}
		item.OriginalPrice = *upd.OriginalPrice
	}

	_, err = db.ExecContext(ctx,
		`UPDATE items SET title = ?, description = ?, category = ?, size = ?, condition = ?,
		                  image = ?, brand = ?, original_price = ?, status = ?
		 WHERE id = ? AND deleted_at IS NULL`,
		item.Title, item.Description, item.Category, item.Size, item.Condition,
		item.Image, item.Brand, item.OriginalPrice, item.Status, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}

	return item, nil
}

// DeleteItem soft-deletes an item. Deletion is refused while a pending
// swap request references the item; terminal requests keep their item ids
// and may dangle.
func DeleteItem(ctx context.Context, db *sql.DB, id string) error {
	if _, err := GetItem(ctx, db, id); err != nil {
		return err
	}

	var pending int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM swap_requests
		 WHERE status = ? AND (from_item_id = ? OR to_item_id = ?)`,
		model.SwapStatusPending, id, id,
	).Scan(&pending)
	if err != nil {
		return fmt.Errorf("checking pending swaps: %w", err)
	}
	if pending > 0 {
		return fmt.Errorf("%w: item %s is referenced by a pending swap request", errs.ErrConflict, id)
	}

	_, err = db.ExecContext(ctx,
		`UPDATE items SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// IncrementItemViews bumps an item's view counter.
func IncrementItemViews(ctx context.Context, db *sql.DB, id string) error {
	return bumpCounter(ctx, db, id, `UPDATE items SET views = views + 1 WHERE id = ? AND deleted_at IS NULL`)
}

// LikeItem bumps an item's like counter.
func LikeItem(ctx context.Context, db *sql.DB, id string) error {
	return bumpCounter(ctx, db, id, `UPDATE items SET likes = likes + 1 WHERE id = ? AND deleted_at IS NULL`)
}

// UnlikeItem decrements an item's like counter, never below zero.
func UnlikeItem(ctx context.Context, db *sql.DB, id string) error {
	return bumpCounter(ctx, db, id, `UPDATE items SET likes = MAX(likes - 1, 0) WHERE id = ? AND deleted_at IS NULL`)
}

func bumpCounter(ctx context.Context, db *sql.DB, id, query string) error {
	res, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("updating counter: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: item %s", errs.ErrNotFound, id)
	}
	return nil
}

// escapeLike escapes LIKE wildcards in user-supplied search terms.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

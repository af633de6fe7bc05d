package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/rewear-hq/rewear/internal/db"
	"github.com/rewear-hq/rewear/internal/errs"
	"github.com/rewear-hq/rewear/internal/model"
)

func testUser(t *testing.T, database *sql.DB, name, email string) *model.User {
	t.Helper()
	user, err := CreateUser(context.Background(), database, name, email, "hash")
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", name, err)
	}
	return user
}

func testItem(t *testing.T, database *sql.DB, uploader *model.User, title string, price float64, condition string) *model.Item {
	t.Helper()
	item, err := CreateItem(context.Background(), database, CreateItemParams{
		Title:         title,
		Category:      model.CategoryShirts,
		Size:          "M",
		Condition:     condition,
		OriginalPrice: price,
		UploaderID:    uploader.ID,
		UploaderName:  uploader.Name,
	})
	if err != nil {
		t.Fatalf("CreateItem(%s): %v", title, err)
	}
	return item
}

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database, "Sarah", "sarah@example.com")

	item, err := CreateItem(ctx, database, CreateItemParams{
		Title:         "Vintage Denim Jacket",
		Description:   "Classic blue denim jacket from the 90s.",
		Category:      model.CategoryJackets,
		Size:          "M",
		Condition:     model.ConditionExcellent,
		Brand:         "Levi's",
		OriginalPrice: 120,
		UploaderID:    user.ID,
		UploaderName:  user.Name,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	if item.Status != model.ItemStatusAvailable {
		t.Errorf("expected status 'available', got %q", item.Status)
	}
	if item.SwapValue != 84 {
		t.Errorf("expected swap value 84, got %d", item.SwapValue)
	}
	if item.UploaderName != "Sarah" {
		t.Errorf("expected uploader name 'Sarah', got %q", item.UploaderName)
	}

	got, err := GetItem(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got.Title != "Vintage Denim Jacket" {
		t.Errorf("expected title to round-trip, got %q", got.Title)
	}
	if got.Brand != "Levi's" {
		t.Errorf("expected brand to round-trip, got %q", got.Brand)
	}
}

func TestCreateItemAwardsUploadBonus(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database, "Sarah", "sarah@example.com")
	item := testItem(t, database, user, "Denim Jacket", 100, model.ConditionGood)

	updated, _ := GetUser(ctx, database, user.ID)
	if updated.Points != model.UploadBonus {
		t.Errorf("expected %d points after upload, got %d", model.UploadBonus, updated.Points)
	}

	history, err := ListPointsHistory(ctx, database, user.ID)
	if err != nil {
		t.Fatalf("ListPointsHistory: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 ledger entry, got %d", len(history))
	}
	if history[0].Reason != model.PointsReasonUpload || history[0].Reference != item.ID {
		t.Errorf("unexpected ledger entry: %+v", history[0])
	}
}

func TestCreateItemValidation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database, "Sarah", "sarah@example.com")

	base := CreateItemParams{
		Title:         "Shirt",
		Category:      model.CategoryShirts,
		Size:          "M",
		Condition:     model.ConditionGood,
		OriginalPrice: 20,
		UploaderID:    user.ID,
		UploaderName:  user.Name,
	}

	blank := base
	blank.Title = "  "
	if _, err := CreateItem(ctx, database, blank); !errors.Is(err, errs.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for blank title, got %v", err)
	}

	badCategory := base
	badCategory.Category = "hats"
	if _, err := CreateItem(ctx, database, badCategory); !errors.Is(err, errs.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown category, got %v", err)
	}

	badCondition := base
	badCondition.Condition = "mint"
	if _, err := CreateItem(ctx, database, badCondition); !errors.Is(err, errs.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown condition, got %v", err)
	}

	negative := base
	negative.OriginalPrice = -5
	if _, err := CreateItem(ctx, database, negative); !errors.Is(err, errs.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for negative price, got %v", err)
	}
}

func TestCreateItemUnknownUploader(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	_, err := CreateItem(ctx, database, CreateItemParams{
		Title:        "Orphan",
		Category:     model.CategoryShirts,
		Size:         "M",
		Condition:    model.ConditionGood,
		UploaderID:   "nobody",
		UploaderName: "Nobody",
	})
	if !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown uploader, got %v", err)
	}

	// The failed create must leave the store unchanged.
	items, _ := ListItems(ctx, database, ItemFilter{})
	if len(items) != 0 {
		t.Errorf("expected 0 items after failed create, got %d", len(items))
	}
}

func TestListItemsNewestFirst(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database, "Sarah", "sarah@example.com")
	first := testItem(t, database, user, "First", 10, model.ConditionGood)
	second := testItem(t, database, user, "Second", 10, model.ConditionGood)
	third := testItem(t, database, user, "Third", 10, model.ConditionGood)

	items, err := ListItems(ctx, database, ItemFilter{})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].ID != third.ID || items[1].ID != second.ID || items[2].ID != first.ID {
		t.Errorf("expected newest-first order, got %s, %s, %s", items[0].Title, items[1].Title, items[2].Title)
	}
	if first.ID == second.ID || second.ID == third.ID {
		t.Error("expected distinct item ids")
	}
}

func TestListItemsFiltered(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	sarah := testUser(t, database, "Sarah", "sarah@example.com")
	emma := testUser(t, database, "Emma", "emma@example.com")

	testItem(t, database, sarah, "Denim Jacket", 100, model.ConditionGood)
	testItem(t, database, emma, "Summer Dress", 50, model.ConditionGood)

	dress, err := CreateItem(ctx, database, CreateItemParams{
		Title:        "Evening Dress",
		Category:     model.CategoryDresses,
		Size:         "S",
		Condition:    model.ConditionLikeNew,
		UploaderID:   emma.ID,
		UploaderName: emma.Name,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	byCategory, _ := ListItems(ctx, database, ItemFilter{Category: model.CategoryDresses})
	if len(byCategory) != 1 || byCategory[0].ID != dress.ID {
		t.Errorf("expected only the evening dress in 'dresses', got %d items", len(byCategory))
	}

	byUploader, _ := ListItems(ctx, database, ItemFilter{UploaderID: emma.ID})
	if len(byUploader) != 2 {
		t.Errorf("expected 2 items for Emma, got %d", len(byUploader))
	}

	bySearch, _ := ListItems(ctx, database, ItemFilter{Search: "dress"})
	if len(bySearch) != 2 {
		t.Errorf("expected 2 items matching 'dress', got %d", len(bySearch))
	}

	// LIKE wildcards in search terms must be treated literally.
	wildcard, _ := ListItems(ctx, database, ItemFilter{Search: "%"})
	if len(wildcard) != 0 {
		t.Errorf("expected no items matching literal %%, got %d", len(wildcard))
	}
}

func TestUpdateItemKeepsSwapValue(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database, "Sarah", "sarah@example.com")
	item := testItem(t, database, user, "Jacket", 100, model.ConditionGood)
	if item.SwapValue != 60 {
		t.Fatalf("expected swap value 60, got %d", item.SwapValue)
	}

	newPrice := 500.0
	newCondition := model.ConditionLikeNew
	updated, err := UpdateItem(ctx, database, item.ID, ItemUpdate{
		OriginalPrice: &newPrice,
		Condition:     &newCondition,
	})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	// The swap value is fixed at listing time.
	if updated.SwapValue != 60 {
		t.Errorf("expected swap value to stay 60, got %d", updated.SwapValue)
	}
	if updated.OriginalPrice != 500 {
		t.Errorf("expected price 500, got %v", updated.OriginalPrice)
	}
}

func TestUpdateItemValidation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database, "Sarah", "sarah@example.com")
	item := testItem(t, database, user, "Jacket", 100, model.ConditionGood)

	bad := "not-a-status"
	if _, err := UpdateItem(ctx, database, item.ID, ItemUpdate{Status: &bad}); !errors.Is(err, errs.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown status, got %v", err)
	}

	if _, err := UpdateItem(ctx, database, "missing", ItemUpdate{}); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing item, got %v", err)
	}
}

func TestDeleteItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database, "Sarah", "sarah@example.com")
	item := testItem(t, database, user, "Jacket", 100, model.ConditionGood)

	if err := DeleteItem(ctx, database, item.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	if _, err := GetItem(ctx, database, item.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	items, _ := ListItems(ctx, database, ItemFilter{})
	if len(items) != 0 {
		t.Errorf("expected 0 items after delete, got %d", len(items))
	}

	// A re-listed item with the same title gets a fresh identity.
	again := testItem(t, database, user, "Jacket", 100, model.ConditionGood)
	if again.ID == item.ID {
		t.Error("expected a new id for the re-listed item")
	}
}

func TestDeleteItemWithPendingSwap(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	sarah := testUser(t, database, "Sarah", "sarah@example.com")
	emma := testUser(t, database, "Emma", "emma@example.com")
	offered := testItem(t, database, sarah, "Jacket", 100, model.ConditionGood)
	wanted := testItem(t, database, emma, "Dress", 80, model.ConditionGood)

	if _, err := CreateSwapRequest(ctx, database, offered.ID, wanted.ID, ""); err != nil {
		t.Fatalf("CreateSwapRequest: %v", err)
	}

	if err := DeleteItem(ctx, database, offered.ID); !errors.Is(err, errs.ErrConflict) {
		t.Errorf("expected ErrConflict for item in a pending swap, got %v", err)
	}
	if err := DeleteItem(ctx, database, wanted.ID); !errors.Is(err, errs.ErrConflict) {
		t.Errorf("expected ErrConflict for requested item, got %v", err)
	}

	// Both items must still exist.
	if _, err := GetItem(ctx, database, offered.ID); err != nil {
		t.Errorf("expected offered item to survive, got %v", err)
	}
}

func TestItemCounters(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database, "Sarah", "sarah@example.com")
	item := testItem(t, database, user, "Jacket", 100, model.ConditionGood)

	IncrementItemViews(ctx, database, item.ID)
	IncrementItemViews(ctx, database, item.ID)
	LikeItem(ctx, database, item.ID)

	got, _ := GetItem(ctx, database, item.ID)
	if got.Views != 2 {
		t.Errorf("expected 2 views, got %d", got.Views)
	}
	if got.Likes != 1 {
		t.Errorf("expected 1 like, got %d", got.Likes)
	}

	// Likes never go below zero.
	UnlikeItem(ctx, database, item.ID)
	UnlikeItem(ctx, database, item.ID)
	got, _ = GetItem(ctx, database, item.ID)
	if got.Likes != 0 {
		t.Errorf("expected 0 likes after double unlike, got %d", got.Likes)
	}

	if err := LikeItem(ctx, database, "missing"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing item, got %v", err)
	}
}

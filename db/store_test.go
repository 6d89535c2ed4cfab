package db

import (
	"context"
	"errors"
	"testing"

	"github.com/yasunobu-co-ltd-coder/matip/deals"
	"github.com/yasunobu-co-ltd-coder/matip/models"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(setupTestDB(t))
	ctx := context.Background()

	created, err := store.CreateDeal(ctx, models.Deal{
		CreatedBy: "sato",
		Memo:      "store memo",
		DueDate:   "2025-02-01",
		Status:    models.StatusOpen,
	})
	if err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}

	list, err := store.ListDeals(ctx)
	if err != nil {
		t.Fatalf("ListDeals failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("Expected created deal in list, got %v", list)
	}

	status := models.StatusDone
	updated, err := store.UpdateDeal(ctx, created.ID, models.DealPatch{Status: &status})
	if err != nil {
		t.Fatalf("UpdateDeal failed: %v", err)
	}
	if updated.Status != models.StatusDone {
		t.Errorf("Expected done status, got %s", updated.Status)
	}

	ok, err := store.DeleteDeal(ctx, created.ID)
	if err != nil || !ok {
		t.Fatalf("DeleteDeal failed: ok=%v err=%v", ok, err)
	}
}

func TestStoreUpdateNotFound(t *testing.T) {
	store := NewStore(setupTestDB(t))

	status := models.StatusDone
	_, err := store.UpdateDeal(context.Background(), "missing", models.DealPatch{Status: &status})
	if !errors.Is(err, deals.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

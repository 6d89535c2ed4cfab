// ABOUTME: Tests for deal MCP tool handlers
// ABOUTME: Runs against a real SQLite store through the service layer
package handlers

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/yasunobu-co-ltd-coder/matip/db"
	"github.com/yasunobu-co-ltd-coder/matip/deals"
)

func setupTestService(t *testing.T) (*deals.Service, deals.Session) {
	t.Helper()
	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenDatabase failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	store := db.NewStore(database)
	service := deals.NewService(store, store)
	if err := service.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	return service, deals.Session{Me: "sato", Today: "2025-01-15"}
}

func TestCreateDealTool(t *testing.T) {
	service, session := setupTestService(t)
	handler := NewDealHandlers(service, session)

	_, out, err := handler.CreateDeal(context.Background(), nil, CreateDealInput{
		ClientName: "Acme Corp",
		Memo:       "quarterly renewal",
		Importance: "high",
	})
	if err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}

	if out.ID == "" {
		t.Error("ID was not set")
	}
	if out.Status != "open" {
		t.Errorf("Expected open status, got %s", out.Status)
	}
	if out.Importance != "high" {
		t.Errorf("Expected high importance, got %s", out.Importance)
	}
	if out.DueDate != "2025-01-15" {
		t.Errorf("Expected due date to default to today, got %s", out.DueDate)
	}
	if out.CreatedBy != "sato" {
		t.Errorf("Expected creator sato, got %s", out.CreatedBy)
	}
}

func TestCreateDealToolRequiresMemo(t *testing.T) {
	service, session := setupTestService(t)
	handler := NewDealHandlers(service, session)

	_, _, err := handler.CreateDeal(context.Background(), nil, CreateDealInput{ClientName: "Acme"})
	if err == nil {
		t.Error("Expected error for missing memo")
	}
}

func TestListDealsTool(t *testing.T) {
	service, session := setupTestService(t)
	handler := NewDealHandlers(service, session)

	for _, memo := range []string{"first deal", "second deal"} {
		if _, _, err := handler.CreateDeal(context.Background(), nil, CreateDealInput{Memo: memo}); err != nil {
			t.Fatalf("CreateDeal failed: %v", err)
		}
	}

	_, out, err := handler.ListDeals(context.Background(), nil, ListDealsInput{})
	if err != nil {
		t.Fatalf("ListDeals failed: %v", err)
	}
	if out.Count != 2 {
		t.Errorf("Expected 2 deals, got %d", out.Count)
	}

	_, out, err = handler.ListDeals(context.Background(), nil, ListDealsInput{Search: "second"})
	if err != nil {
		t.Fatalf("ListDeals failed: %v", err)
	}
	if out.Count != 1 {
		t.Errorf("Expected 1 match, got %d", out.Count)
	}
}

func TestListDealsToolRejectsBadTokens(t *testing.T) {
	service, session := setupTestService(t)
	handler := NewDealHandlers(service, session)

	if _, _, err := handler.ListDeals(context.Background(), nil, ListDealsInput{Tab: "archived"}); err == nil {
		t.Error("Expected error for unknown tab")
	}
	if _, _, err := handler.ListDeals(context.Background(), nil, ListDealsInput{Sort: "alphabetical"}); err == nil {
		t.Error("Expected error for unknown sort")
	}
}

func TestCompleteRestoreDeleteTools(t *testing.T) {
	service, session := setupTestService(t)
	handler := NewDealHandlers(service, session)

	_, created, err := handler.CreateDeal(context.Background(), nil, CreateDealInput{Memo: "lifecycle"})
	if err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}

	_, done, err := handler.CompleteDeal(context.Background(), nil, DealIDInput{ID: created.ID})
	if err != nil {
		t.Fatalf("CompleteDeal failed: %v", err)
	}
	if done.Status != "done" {
		t.Errorf("Expected done status, got %s", done.Status)
	}

	// Completing twice is an invalid transition.
	if _, _, err := handler.CompleteDeal(context.Background(), nil, DealIDInput{ID: created.ID}); err == nil {
		t.Error("Expected error completing a done deal")
	}

	_, restored, err := handler.RestoreDeal(context.Background(), nil, DealIDInput{ID: created.ID})
	if err != nil {
		t.Fatalf("RestoreDeal failed: %v", err)
	}
	if restored.Status != "open" {
		t.Errorf("Expected open status, got %s", restored.Status)
	}

	_, deleted, err := handler.DeleteDeal(context.Background(), nil, DealIDInput{ID: created.ID})
	if err != nil {
		t.Fatalf("DeleteDeal failed: %v", err)
	}
	if !deleted.Deleted {
		t.Error("Expected delete confirmation")
	}
}

func TestEditDealTool(t *testing.T) {
	service, session := setupTestService(t)
	handler := NewDealHandlers(service, session)

	_, created, err := handler.CreateDeal(context.Background(), nil, CreateDealInput{Memo: "original"})
	if err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}

	_, edited, err := handler.EditDeal(context.Background(), nil, EditDealInput{
		ID:      created.ID,
		Memo:    "revised",
		DueDate: "2025-03-01",
		Urgency: "high",
	})
	if err != nil {
		t.Fatalf("EditDeal failed: %v", err)
	}
	if edited.Memo != "revised" {
		t.Errorf("Expected revised memo, got %q", edited.Memo)
	}
	if edited.DueDate != "2025-03-01" {
		t.Errorf("Expected new due date, got %s", edited.DueDate)
	}
	if edited.Urgency != "high" {
		t.Errorf("Expected high urgency, got %s", edited.Urgency)
	}
}

package db

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yasunobu-co-ltd-coder/matip/deals"
	"github.com/yasunobu-co-ltd-coder/matip/models"
)

func TestRemoteStoreCreateDeal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/rest/v1/deals" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("apikey") != "anon-key" {
			t.Error("Expected apikey header")
		}
		if r.Header.Get("Authorization") != "Bearer anon-key" {
			t.Error("Expected bearer authorization")
		}
		if r.Header.Get("Prefer") != "return=representation" {
			t.Error("Expected representation preference")
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode body: %v", err)
		}
		if body["memo"] != "remote memo" {
			t.Errorf("Expected memo in payload, got %v", body["memo"])
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "deal-1", "memo": "remote memo", "status": "open"},
		})
	}))
	defer server.Close()

	store := NewRemoteStore(server.URL, "anon-key")
	created, err := store.CreateDeal(context.Background(), models.Deal{Memo: "remote memo", Status: models.StatusOpen})
	if err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}
	if created.ID != "deal-1" {
		t.Errorf("Expected server-assigned id, got %q", created.ID)
	}
}

func TestRemoteStoreListDeals(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("order") != "created_at.desc" {
			t.Errorf("Expected created_at.desc order, got %q", r.URL.Query().Get("order"))
		}
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "a", "memo": "first", "status": "open"},
			{"id": "b", "memo": "second", "status": "done"},
		})
	}))
	defer server.Close()

	store := NewRemoteStore(server.URL, "anon-key")
	list, err := store.ListDeals(context.Background())
	if err != nil {
		t.Fatalf("ListDeals failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 deals, got %d", len(list))
	}
}

func TestRemoteStoreUpdateDealFiltersByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("Expected PATCH, got %s", r.Method)
		}
		if r.URL.Query().Get("id") != "eq.deal-1" {
			t.Errorf("Expected id filter, got %q", r.URL.Query().Get("id"))
		}
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "deal-1", "status": "done"},
		})
	}))
	defer server.Close()

	store := NewRemoteStore(server.URL, "anon-key")
	status := models.StatusDone
	updated, err := store.UpdateDeal(context.Background(), "deal-1", models.DealPatch{Status: &status})
	if err != nil {
		t.Fatalf("UpdateDeal failed: %v", err)
	}
	if updated.Status != models.StatusDone {
		t.Errorf("Expected done status, got %s", updated.Status)
	}
}

func TestRemoteStoreUpdateDealNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode([]any{})
	}))
	defer server.Close()

	store := NewRemoteStore(server.URL, "anon-key")
	status := models.StatusDone
	_, err := store.UpdateDeal(context.Background(), "missing", models.DealPatch{Status: &status})
	if !errors.Is(err, deals.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestRemoteStoreServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"permission denied"}`, http.StatusForbidden)
	}))
	defer server.Close()

	store := NewRemoteStore(server.URL, "anon-key")
	_, err := store.ListDeals(context.Background())
	if !errors.Is(err, deals.ErrRepositoryFailure) {
		t.Errorf("Expected ErrRepositoryFailure, got %v", err)
	}
}

func TestRemoteStoreDeleteUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/rest/v1/users" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode([]map[string]any{{"id": "user-1", "name": "sato"}})
	}))
	defer server.Close()

	store := NewRemoteStore(server.URL, "anon-key")
	ok, err := store.DeleteUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}
	if !ok {
		t.Error("Expected delete to report success")
	}
}

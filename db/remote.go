// ABOUTME: Remote repository backed by a Supabase PostgREST endpoint
// ABOUTME: Same contract as the SQLite store, selected through configuration
package db

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yasunobu-co-ltd-coder/matip/deals"
	"github.com/yasunobu-co-ltd-coder/matip/models"
)

// RemoteStore talks to the hosted PostgREST tables. Every non-2xx response
// maps to the repository failure sentinel so callers keep local state
// unchanged.
type RemoteStore struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewRemoteStore(baseURL, apiKey string) *RemoteStore {
	return &RemoteStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (r *RemoteStore) CreateDeal(ctx context.Context, deal models.Deal) (*models.Deal, error) {
	body := struct {
		CreatedBy  string `json:"created_by"`
		ClientName string `json:"client_name"`
		Memo       string `json:"memo"`
		DueDate    string `json:"due_date"`
		Importance string `json:"importance"`
		Urgency    string `json:"urgency"`
		Profit     string `json:"profit"`
		Assignment string `json:"assignment_type"`
		Assignee   string `json:"assignee"`
		Status     string `json:"status"`
		ImageURL   string `json:"image_url"`
	}{
		CreatedBy:  deal.CreatedBy,
		ClientName: deal.ClientName,
		Memo:       deal.Memo,
		DueDate:    deal.DueDate,
		Importance: string(deal.Importance),
		Urgency:    string(deal.Urgency),
		Profit:     string(deal.Profit),
		Assignment: string(deal.Assignment),
		Assignee:   deal.Assignee,
		Status:     string(deal.Status),
		ImageURL:   deal.ImageURL,
	}

	var rows []models.Deal
	if err := r.do(ctx, http.MethodPost, "/rest/v1/deals", nil, body, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: insert returned no rows", deals.ErrRepositoryFailure)
	}
	return &rows[0], nil
}

func (r *RemoteStore) ListDeals(ctx context.Context) ([]models.Deal, error) {
	query := url.Values{"select": {"*"}, "order": {"created_at.desc"}}
	var rows []models.Deal
	if err := r.do(ctx, http.MethodGet, "/rest/v1/deals", query, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *RemoteStore) UpdateDeal(ctx context.Context, id string, patch models.DealPatch) (*models.Deal, error) {
	query := url.Values{"id": {"eq." + id}}
	var rows []models.Deal
	if err := r.do(ctx, http.MethodPatch, "/rest/v1/deals", query, patch, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, deals.ErrNotFound
	}
	return &rows[0], nil
}

func (r *RemoteStore) DeleteDeal(ctx context.Context, id string) (bool, error) {
	query := url.Values{"id": {"eq." + id}}
	var rows []models.Deal
	if err := r.do(ctx, http.MethodDelete, "/rest/v1/deals", query, nil, &rows); err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

func (r *RemoteStore) AddUser(ctx context.Context, name string) (*models.User, error) {
	body := struct {
		Name string `json:"name"`
	}{Name: name}

	var rows []models.User
	if err := r.do(ctx, http.MethodPost, "/rest/v1/users", nil, body, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: insert returned no rows", deals.ErrRepositoryFailure)
	}
	return &rows[0], nil
}

func (r *RemoteStore) ListUsers(ctx context.Context) ([]models.User, error) {
	query := url.Values{"select": {"*"}, "order": {"created_at.asc"}}
	var rows []models.User
	if err := r.do(ctx, http.MethodGet, "/rest/v1/users", query, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *RemoteStore) DeleteUser(ctx context.Context, id string) (bool, error) {
	query := url.Values{"id": {"eq." + id}}
	var rows []models.User
	if err := r.do(ctx, http.MethodDelete, "/rest/v1/users", query, nil, &rows); err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

func (r *RemoteStore) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := r.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: %v", deals.ErrRepositoryFailure, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", deals.ErrRepositoryFailure, err)
	}
	req.Header.Set("apikey", r.apiKey)
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Prefer", "return=representation")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", deals.ErrRepositoryFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s %s returned %d: %s",
			deals.ErrRepositoryFailure, method, path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: %v", deals.ErrRepositoryFailure, err)
		}
	}
	return nil
}

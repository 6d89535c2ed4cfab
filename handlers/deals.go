// ABOUTME: Deal MCP tool handlers
// ABOUTME: Implements create_deal, list_deals, lifecycle, and edit tools
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/yasunobu-co-ltd-coder/matip/deals"
	"github.com/yasunobu-co-ltd-coder/matip/models"
)

type DealHandlers struct {
	service *deals.Service
	session deals.Session
}

func NewDealHandlers(service *deals.Service, session deals.Session) *DealHandlers {
	return &DealHandlers{service: service, session: session}
}

type CreateDealInput struct {
	ClientName     string `json:"client_name,omitempty" jsonschema:"Client, company, or project name"`
	Memo           string `json:"memo" jsonschema:"Deal memo (required)"`
	DueDate        string `json:"due_date,omitempty" jsonschema:"Due date in YYYY-MM-DD format (defaults to today)"`
	Importance     string `json:"importance,omitempty" jsonschema:"Importance: high, medium, low (default medium)"`
	Urgency        string `json:"urgency,omitempty" jsonschema:"Urgency: high, medium, low (default medium)"`
	Profit         string `json:"profit,omitempty" jsonschema:"Profit outlook: high, medium, low (default medium)"`
	AssignmentType string `json:"assignment_type,omitempty" jsonschema:"Assignment: delegate or self (default delegate)"`
	Assignee       string `json:"assignee,omitempty" jsonschema:"Assignee name (ignored for self assignment)"`
	ImageURL       string `json:"image_url,omitempty" jsonschema:"Image URL to attach"`
}

type DealOutput struct {
	ID         string `json:"id"`
	CreatedAt  string `json:"created_at"`
	CreatedBy  string `json:"created_by"`
	ClientName string `json:"client_name,omitempty"`
	Memo       string `json:"memo"`
	DueDate    string `json:"due_date"`
	Importance string `json:"importance"`
	Urgency    string `json:"urgency"`
	Profit     string `json:"profit"`
	Assignment string `json:"assignment_type"`
	Assignee   string `json:"assignee,omitempty"`
	Status     string `json:"status"`
	ImageURL   string `json:"image_url,omitempty"`
}

func dealOutput(d models.Deal) DealOutput {
	return DealOutput{
		ID:         d.ID,
		CreatedAt:  d.CreatedAt.Format("2006-01-02 15:04:05"),
		CreatedBy:  d.CreatedBy,
		ClientName: d.ClientName,
		Memo:       d.Memo,
		DueDate:    d.DueDate,
		Importance: string(d.Importance),
		Urgency:    string(d.Urgency),
		Profit:     string(d.Profit),
		Assignment: string(d.Assignment),
		Assignee:   d.Assignee,
		Status:     string(d.Status),
		ImageURL:   d.ImageURL,
	}
}

func (h *DealHandlers) CreateDeal(ctx context.Context, _ *mcp.CallToolRequest, input CreateDealInput) (*mcp.CallToolResult, DealOutput, error) {
	if input.Memo == "" {
		return nil, DealOutput{}, fmt.Errorf("memo is required")
	}

	fields := models.DealFields{
		ClientName: input.ClientName,
		Memo:       input.Memo,
		DueDate:    input.DueDate,
		Importance: models.ParseTri(input.Importance),
		Urgency:    models.ParseTri(input.Urgency),
		Profit:     models.ParseTri(input.Profit),
		Assignment: models.ParseAssignment(input.AssignmentType),
		Assignee:   input.Assignee,
		ImageURL:   input.ImageURL,
	}

	created, err := h.service.Create(ctx, fields, h.session)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to create deal: %w", err)
	}
	return nil, dealOutput(*created), nil
}

type ListDealsInput struct {
	Tab    string `json:"tab,omitempty" jsonschema:"Status tab: open or done (default open)"`
	Search string `json:"search,omitempty" jsonschema:"Substring to match against client name and memo"`
	Filter string `json:"filter,omitempty" jsonschema:"Filter: all, mine, delegated, self, overdue (default all)"`
	Sort   string `json:"sort,omitempty" jsonschema:"Sort: due, importance, urgency, profit, newest, oldest (default due)"`
}

type ListDealsOutput struct {
	Deals []DealOutput `json:"deals"`
	Count int          `json:"count"`
}

func (h *DealHandlers) ListDeals(ctx context.Context, _ *mcp.CallToolRequest, input ListDealsInput) (*mcp.CallToolResult, ListDealsOutput, error) {
	tab, err := deals.ParseTab(input.Tab)
	if err != nil {
		return nil, ListDealsOutput{}, err
	}
	filter, err := deals.ParseFilter(input.Filter)
	if err != nil {
		return nil, ListDealsOutput{}, err
	}
	sortKey, err := deals.ParseSortKey(input.Sort)
	if err != nil {
		return nil, ListDealsOutput{}, err
	}

	if err := h.service.Refresh(ctx); err != nil {
		return nil, ListDealsOutput{}, fmt.Errorf("failed to refresh deals: %w", err)
	}

	view := h.service.View(deals.Query{Tab: tab, Search: input.Search, Filter: filter, Sort: sortKey}, h.session)
	out := ListDealsOutput{Deals: make([]DealOutput, 0, len(view)), Count: len(view)}
	for _, d := range view {
		out.Deals = append(out.Deals, dealOutput(d))
	}
	return nil, out, nil
}

type DealIDInput struct {
	ID string `json:"id" jsonschema:"Deal ID (required)"`
}

func (h *DealHandlers) CompleteDeal(ctx context.Context, _ *mcp.CallToolRequest, input DealIDInput) (*mcp.CallToolResult, DealOutput, error) {
	if input.ID == "" {
		return nil, DealOutput{}, fmt.Errorf("id is required")
	}
	updated, err := h.service.Complete(ctx, input.ID)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to complete deal: %w", err)
	}
	return nil, dealOutput(*updated), nil
}

func (h *DealHandlers) RestoreDeal(ctx context.Context, _ *mcp.CallToolRequest, input DealIDInput) (*mcp.CallToolResult, DealOutput, error) {
	if input.ID == "" {
		return nil, DealOutput{}, fmt.Errorf("id is required")
	}
	updated, err := h.service.Restore(ctx, input.ID)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to restore deal: %w", err)
	}
	return nil, dealOutput(*updated), nil
}

type DeleteDealOutput struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

func (h *DealHandlers) DeleteDeal(ctx context.Context, _ *mcp.CallToolRequest, input DealIDInput) (*mcp.CallToolResult, DeleteDealOutput, error) {
	if input.ID == "" {
		return nil, DeleteDealOutput{}, fmt.Errorf("id is required")
	}
	if err := h.service.Delete(ctx, input.ID); err != nil {
		return nil, DeleteDealOutput{}, fmt.Errorf("failed to delete deal: %w", err)
	}
	return nil, DeleteDealOutput{ID: input.ID, Deleted: true}, nil
}

type EditDealInput struct {
	ID         string `json:"id" jsonschema:"Deal ID (required)"`
	ClientName string `json:"client_name,omitempty" jsonschema:"New client name"`
	Memo       string `json:"memo,omitempty" jsonschema:"New memo"`
	DueDate    string `json:"due_date,omitempty" jsonschema:"New due date in YYYY-MM-DD format"`
	Importance string `json:"importance,omitempty" jsonschema:"New importance: high, medium, low"`
	Urgency    string `json:"urgency,omitempty" jsonschema:"New urgency: high, medium, low"`
	Profit     string `json:"profit,omitempty" jsonschema:"New profit outlook: high, medium, low"`
	ImageURL   string `json:"image_url,omitempty" jsonschema:"New image URL"`
}

func (h *DealHandlers) EditDeal(ctx context.Context, _ *mcp.CallToolRequest, input EditDealInput) (*mcp.CallToolResult, DealOutput, error) {
	if input.ID == "" {
		return nil, DealOutput{}, fmt.Errorf("id is required")
	}

	var patch models.DealPatch
	if input.ClientName != "" {
		patch.ClientName = &input.ClientName
	}
	if input.Memo != "" {
		patch.Memo = &input.Memo
	}
	if input.DueDate != "" {
		patch.DueDate = &input.DueDate
	}
	if input.Importance != "" {
		v := models.ParseTri(input.Importance)
		patch.Importance = &v
	}
	if input.Urgency != "" {
		v := models.ParseTri(input.Urgency)
		patch.Urgency = &v
	}
	if input.Profit != "" {
		v := models.ParseTri(input.Profit)
		patch.Profit = &v
	}
	if input.ImageURL != "" {
		patch.ImageURL = &input.ImageURL
	}

	updated, err := h.service.Edit(ctx, input.ID, patch)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to edit deal: %w", err)
	}
	return nil, dealOutput(*updated), nil
}

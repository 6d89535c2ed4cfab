// ABOUTME: User roster MCP tool handlers
// ABOUTME: Implements add_user, list_users, and remove_user tools
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/yasunobu-co-ltd-coder/matip/deals"
)

type UserHandlers struct {
	service *deals.Service
	session deals.Session
}

func NewUserHandlers(service *deals.Service, session deals.Session) *UserHandlers {
	return &UserHandlers{service: service, session: session}
}

type AddUserInput struct {
	Name string `json:"name" jsonschema:"User display name (required, must be unique)"`
}

type UserOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

func (h *UserHandlers) AddUser(ctx context.Context, _ *mcp.CallToolRequest, input AddUserInput) (*mcp.CallToolResult, UserOutput, error) {
	if input.Name == "" {
		return nil, UserOutput{}, fmt.Errorf("name is required")
	}
	created, err := h.service.AddUser(ctx, input.Name)
	if err != nil {
		return nil, UserOutput{}, fmt.Errorf("failed to add user: %w", err)
	}
	return nil, UserOutput{
		ID:        created.ID,
		Name:      created.Name,
		CreatedAt: created.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

type ListUsersInput struct{}

type ListUsersOutput struct {
	Users []UserOutput `json:"users"`
	Count int          `json:"count"`
}

func (h *UserHandlers) ListUsers(ctx context.Context, _ *mcp.CallToolRequest, _ ListUsersInput) (*mcp.CallToolResult, ListUsersOutput, error) {
	if err := h.service.Refresh(ctx); err != nil {
		return nil, ListUsersOutput{}, fmt.Errorf("failed to refresh users: %w", err)
	}

	users := h.service.Users()
	out := ListUsersOutput{Users: make([]UserOutput, 0, len(users)), Count: len(users)}
	for _, u := range users {
		out.Users = append(out.Users, UserOutput{
			ID:        u.ID,
			Name:      u.Name,
			CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return nil, out, nil
}

type RemoveUserInput struct {
	ID string `json:"id" jsonschema:"User ID (required)"`
}

type RemoveUserOutput struct {
	ID      string `json:"id"`
	Removed bool   `json:"removed"`
}

func (h *UserHandlers) RemoveUser(ctx context.Context, _ *mcp.CallToolRequest, input RemoveUserInput) (*mcp.CallToolResult, RemoveUserOutput, error) {
	if input.ID == "" {
		return nil, RemoveUserOutput{}, fmt.Errorf("id is required")
	}
	if err := h.service.RemoveUser(ctx, input.ID, h.session); err != nil {
		return nil, RemoveUserOutput{}, fmt.Errorf("failed to remove user: %w", err)
	}
	return nil, RemoveUserOutput{ID: input.ID, Removed: true}, nil
}

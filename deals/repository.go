// ABOUTME: Repository interfaces consumed by the deal service
// ABOUTME: Defines the remote store contract and its failure sentinel
package deals

import (
	"context"
	"errors"

	"github.com/yasunobu-co-ltd-coder/matip/models"
)

// ErrRepositoryFailure wraps any remote store rejection. Callers surface it
// to the user and leave local state unchanged.
var ErrRepositoryFailure = errors.New("repository operation failed")

// ErrNotFound is returned when an id does not resolve to a record.
var ErrNotFound = errors.New("record not found")

// Repository is the deal store. List returns records ordered by creation
// time descending.
type Repository interface {
	CreateDeal(ctx context.Context, deal models.Deal) (*models.Deal, error)
	ListDeals(ctx context.Context) ([]models.Deal, error)
	UpdateDeal(ctx context.Context, id string, patch models.DealPatch) (*models.Deal, error)
	DeleteDeal(ctx context.Context, id string) (bool, error)
}

// UserRepository is the user roster store. ListUsers returns records
// ordered by creation time ascending.
type UserRepository interface {
	AddUser(ctx context.Context, name string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id string) (bool, error)
}

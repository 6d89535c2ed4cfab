// ABOUTME: Repository adapter over the SQLite database
// ABOUTME: Maps driver errors onto the repository failure sentinel
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yasunobu-co-ltd-coder/matip/deals"
	"github.com/yasunobu-co-ltd-coder/matip/models"
)

// Store implements the deal and user repositories over a local SQLite
// database.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateDeal(_ context.Context, deal models.Deal) (*models.Deal, error) {
	if err := CreateDeal(s.db, &deal); err != nil {
		return nil, fmt.Errorf("%w: %v", deals.ErrRepositoryFailure, err)
	}
	return &deal, nil
}

func (s *Store) ListDeals(_ context.Context) ([]models.Deal, error) {
	list, err := ListDeals(s.db)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", deals.ErrRepositoryFailure, err)
	}
	return list, nil
}

func (s *Store) UpdateDeal(_ context.Context, id string, patch models.DealPatch) (*models.Deal, error) {
	deal, err := UpdateDeal(s.db, id, patch)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", deals.ErrRepositoryFailure, err)
	}
	if deal == nil {
		return nil, deals.ErrNotFound
	}
	return deal, nil
}

func (s *Store) DeleteDeal(_ context.Context, id string) (bool, error) {
	ok, err := DeleteDeal(s.db, id)
	if err != nil {
		return false, fmt.Errorf("%w: %v", deals.ErrRepositoryFailure, err)
	}
	return ok, nil
}

func (s *Store) AddUser(_ context.Context, name string) (*models.User, error) {
	user := models.User{Name: name}
	if err := CreateUser(s.db, &user); err != nil {
		return nil, fmt.Errorf("%w: %v", deals.ErrRepositoryFailure, err)
	}
	return &user, nil
}

func (s *Store) ListUsers(_ context.Context) ([]models.User, error) {
	list, err := ListUsers(s.db)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", deals.ErrRepositoryFailure, err)
	}
	return list, nil
}

func (s *Store) DeleteUser(_ context.Context, id string) (bool, error) {
	ok, err := DeleteUser(s.db, id)
	if err != nil {
		return false, fmt.Errorf("%w: %v", deals.ErrRepositoryFailure, err)
	}
	return ok, nil
}

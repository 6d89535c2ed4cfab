// ABOUTME: In-memory fake repositories for service tests
// ABOUTME: Configurable failure injection per operation
package deals

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yasunobu-co-ltd-coder/matip/models"
)

type fakeRepo struct {
	deals []models.Deal

	failCreate bool
	failList   bool
	failUpdate bool
	failDelete bool
}

func (f *fakeRepo) CreateDeal(_ context.Context, deal models.Deal) (*models.Deal, error) {
	if f.failCreate {
		return nil, fmt.Errorf("%w: create rejected", ErrRepositoryFailure)
	}
	deal.ID = uuid.New().String()
	deal.CreatedAt = time.Now()
	f.deals = append([]models.Deal{deal}, f.deals...)
	return &deal, nil
}

func (f *fakeRepo) ListDeals(_ context.Context) ([]models.Deal, error) {
	if f.failList {
		return nil, fmt.Errorf("%w: list rejected", ErrRepositoryFailure)
	}
	out := make([]models.Deal, len(f.deals))
	copy(out, f.deals)
	return out, nil
}

func (f *fakeRepo) UpdateDeal(_ context.Context, id string, patch models.DealPatch) (*models.Deal, error) {
	if f.failUpdate {
		return nil, fmt.Errorf("%w: update rejected", ErrRepositoryFailure)
	}
	for i := range f.deals {
		if f.deals[i].ID == id {
			patch.Apply(&f.deals[i])
			d := f.deals[i]
			return &d, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) DeleteDeal(_ context.Context, id string) (bool, error) {
	if f.failDelete {
		return false, fmt.Errorf("%w: delete rejected", ErrRepositoryFailure)
	}
	for i := range f.deals {
		if f.deals[i].ID == id {
			f.deals = append(f.deals[:i], f.deals[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeUserRepo struct {
	users []models.User

	failAdd    bool
	failList   bool
	failDelete bool
}

func (f *fakeUserRepo) AddUser(_ context.Context, name string) (*models.User, error) {
	if f.failAdd {
		return nil, fmt.Errorf("%w: add rejected", ErrRepositoryFailure)
	}
	u := models.User{ID: uuid.New().String(), Name: name, CreatedAt: time.Now()}
	f.users = append(f.users, u)
	return &u, nil
}

func (f *fakeUserRepo) ListUsers(_ context.Context) ([]models.User, error) {
	if f.failList {
		return nil, fmt.Errorf("%w: list rejected", ErrRepositoryFailure)
	}
	out := make([]models.User, len(f.users))
	copy(out, f.users)
	return out, nil
}

func (f *fakeUserRepo) DeleteUser(_ context.Context, id string) (bool, error) {
	if f.failDelete {
		return false, fmt.Errorf("%w: delete rejected", ErrRepositoryFailure)
	}
	for i := range f.users {
		if f.users[i].ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ABOUTME: Deal lifecycle service over the in-memory working set
// ABOUTME: Governs creation, complete/restore transitions, edits, and deletion
package deals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/yasunobu-co-ltd-coder/matip/models"
)

var (
	// ErrMemoRequired blocks creation when the memo is empty. The memo is
	// the only field whose absence blocks creation.
	ErrMemoRequired = errors.New("memo is required")

	// ErrInvalidTransition is returned for a complete on a done deal or a
	// restore on an open deal.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Service owns the session's working set of deals and users. The working
// set is refreshed from the repository and mutated only after the
// repository acknowledges a write; a failed remote write never changes
// local state. The mutex covers the working set and roster so concurrent
// boundaries (web handlers, TUI refresh) can share one service.
type Service struct {
	repo  Repository
	users UserRepository

	mu     sync.RWMutex
	deals  []models.Deal
	roster []models.User
}

func NewService(repo Repository, users UserRepository) *Service {
	return &Service{repo: repo, users: users}
}

// Refresh reloads the working set and roster from the repository.
func (s *Service) Refresh(ctx context.Context) error {
	deals, err := s.repo.ListDeals(ctx)
	if err != nil {
		return fmt.Errorf("failed to load deals: %w", err)
	}
	roster, err := s.users.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	s.mu.Lock()
	s.deals = deals
	s.roster = roster
	s.mu.Unlock()
	return nil
}

// WorkingSet returns a copy of the in-memory deals.
func (s *Service) WorkingSet() []models.Deal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Deal, len(s.deals))
	copy(out, s.deals)
	return out
}

// Users returns a copy of the in-memory roster.
func (s *Service) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, len(s.roster))
	copy(out, s.roster)
	return out
}

// UserNames returns roster display names in roster order.
func (s *Service) UserNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.roster))
	for _, u := range s.roster {
		names = append(names, u.Name)
	}
	return names
}

// View computes an ordered view of the working set.
func (s *Service) View(q Query, sess Session) []models.Deal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View(s.deals, q, sess)
}

// Create validates fields, persists a new open deal, and prepends it to the
// working set once the repository acknowledges it.
func (s *Service) Create(ctx context.Context, fields models.DealFields, sess Session) (*models.Deal, error) {
	if strings.TrimSpace(fields.Memo) == "" {
		return nil, ErrMemoRequired
	}
	if fields.Importance == "" {
		fields.Importance = models.TriMedium
	}
	if fields.Urgency == "" {
		fields.Urgency = models.TriMedium
	}
	if fields.Profit == "" {
		fields.Profit = models.TriMedium
	}
	if fields.Assignment == "" {
		fields.Assignment = models.AssignDelegate
	}
	if !models.ValidYMD(fields.DueDate) {
		fields.DueDate = sess.Today
	}
	if fields.Assignment == models.AssignSelf {
		// Self-assignment always points back at the creator.
		fields.Assignee = sess.Me
	}

	deal := models.Deal{
		CreatedBy:  sess.Me,
		ClientName: strings.TrimSpace(fields.ClientName),
		Memo:       strings.TrimSpace(fields.Memo),
		DueDate:    fields.DueDate,
		Importance: fields.Importance,
		Urgency:    fields.Urgency,
		Profit:     fields.Profit,
		Assignment: fields.Assignment,
		Assignee:   fields.Assignee,
		Status:     models.StatusOpen,
		ImageURL:   fields.ImageURL,
	}

	created, err := s.repo.CreateDeal(ctx, deal)
	if err != nil {
		return nil, fmt.Errorf("failed to create deal: %w", err)
	}

	// List order is creation descending, so new records go first.
	s.mu.Lock()
	s.deals = append([]models.Deal{*created}, s.deals...)
	s.mu.Unlock()
	return created, nil
}

// Complete transitions a deal from open to done.
func (s *Service) Complete(ctx context.Context, id string) (*models.Deal, error) {
	return s.transition(ctx, id, models.StatusOpen, models.StatusDone)
}

// Restore transitions a deal from done back to open.
func (s *Service) Restore(ctx context.Context, id string) (*models.Deal, error) {
	return s.transition(ctx, id, models.StatusDone, models.StatusOpen)
}

func (s *Service) transition(ctx context.Context, id string, from, to models.Status) (*models.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deal := s.find(id)
	if deal == nil {
		return nil, ErrNotFound
	}
	if deal.Status != from {
		return nil, fmt.Errorf("%w: %s is %s, not %s", ErrInvalidTransition, id, deal.Status, from)
	}

	status := to
	updated, err := s.repo.UpdateDeal(ctx, id, models.DealPatch{Status: &status})
	if err != nil {
		return nil, fmt.Errorf("failed to update deal status: %w", err)
	}

	s.replace(*updated)
	return updated, nil
}

// Edit updates the mutable field set of a deal. Editing is available in
// both states and never changes status or assignment.
func (s *Service) Edit(ctx context.Context, id string, patch models.DealPatch) (*models.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.find(id) == nil {
		return nil, ErrNotFound
	}

	// Status and assignment move through their dedicated operations only.
	patch.Status = nil
	patch.Assignment = nil
	patch.Assignee = nil

	if patch.DueDate != nil && !models.ValidYMD(*patch.DueDate) {
		return nil, fmt.Errorf("invalid due date: %s (use YYYY-MM-DD)", *patch.DueDate)
	}
	if patch.Memo != nil && strings.TrimSpace(*patch.Memo) == "" {
		return nil, ErrMemoRequired
	}

	updated, err := s.repo.UpdateDeal(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update deal: %w", err)
	}

	s.replace(*updated)
	return updated, nil
}

// Delete permanently removes a deal. This is irrevocable and allowed from
// either status; confirmation happens at the calling boundary.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.find(id) == nil {
		return ErrNotFound
	}

	ok, err := s.repo.DeleteDeal(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete deal: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: delete rejected for %s", ErrRepositoryFailure, id)
	}

	kept := s.deals[:0]
	for _, d := range s.deals {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	s.deals = kept
	return nil
}

// find and replace assume the caller holds the mutex.
func (s *Service) find(id string) *models.Deal {
	for i := range s.deals {
		if s.deals[i].ID == id {
			return &s.deals[i]
		}
	}
	return nil
}

func (s *Service) replace(deal models.Deal) {
	for i := range s.deals {
		if s.deals[i].ID == deal.ID {
			s.deals[i] = deal
			return
		}
	}
}

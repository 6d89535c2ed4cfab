// ABOUTME: User roster management with removal guards
// ABOUTME: Blocks removal of users with assigned deals, the last user, or the active user
package deals

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yasunobu-co-ltd-coder/matip/models"
)

var (
	// ErrUserExists is returned for a duplicate roster name.
	ErrUserExists = errors.New("user already exists")

	// ErrUserHasDeals blocks removal while any deal, open or done, names the
	// user as assignee.
	ErrUserHasDeals = errors.New("user has assigned deals")

	// ErrLastUser blocks removal of the only remaining user.
	ErrLastUser = errors.New("cannot remove the last user")

	// ErrActiveUser blocks removal of the user running the session.
	ErrActiveUser = errors.New("cannot remove the active user")
)

// AddUser registers a new roster name. Names are unique after trimming.
func (s *Service) AddUser(ctx context.Context, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("user name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.roster {
		if u.Name == name {
			return nil, fmt.Errorf("%w: %s", ErrUserExists, name)
		}
	}

	created, err := s.users.AddUser(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to add user: %w", err)
	}

	s.roster = append(s.roster, *created)
	return created, nil
}

// RemoveUser removes a user from the roster. All guards are checked before
// the repository is touched, so a guarded removal never reaches the store.
func (s *Service) RemoveUser(ctx context.Context, id string, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var target *models.User
	for i := range s.roster {
		if s.roster[i].ID == id {
			target = &s.roster[i]
			break
		}
	}
	if target == nil {
		return ErrNotFound
	}

	if target.Name == sess.Me {
		return fmt.Errorf("%w: %s", ErrActiveUser, target.Name)
	}
	if len(s.roster) == 1 {
		return fmt.Errorf("%w: %s", ErrLastUser, target.Name)
	}
	for _, d := range s.deals {
		if d.Assignee == target.Name {
			return fmt.Errorf("%w: %s", ErrUserHasDeals, target.Name)
		}
	}

	ok, err := s.users.DeleteUser(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to remove user: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: delete rejected for %s", ErrRepositoryFailure, id)
	}

	kept := s.roster[:0]
	for _, u := range s.roster {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	s.roster = kept
	return nil
}

// ABOUTME: Tests for the deal lifecycle service
// ABOUTME: Covers creation defaults, transitions, edits, deletes, and failure isolation
package deals

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yasunobu-co-ltd-coder/matip/models"
)

func newTestService(t *testing.T) (*Service, *fakeRepo, *fakeUserRepo) {
	t.Helper()
	repo := &fakeRepo{}
	users := &fakeUserRepo{}
	svc := NewService(repo, users)
	require.NoError(t, svc.Refresh(context.Background()))
	return svc, repo, users
}

func TestCreateDefaults(t *testing.T) {
	svc, _, _ := newTestService(t)
	sess := Session{Me: "sato", Today: "2025-01-15"}

	created, err := svc.Create(context.Background(), models.DealFields{Memo: "call about renewal"}, sess)
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "sato", created.CreatedBy)
	assert.Equal(t, models.StatusOpen, created.Status)
	assert.Equal(t, models.TriMedium, created.Importance)
	assert.Equal(t, models.TriMedium, created.Urgency)
	assert.Equal(t, models.TriMedium, created.Profit)
	assert.Equal(t, models.AssignDelegate, created.Assignment)
	assert.Equal(t, "2025-01-15", created.DueDate)
}

func TestCreateRequiresMemo(t *testing.T) {
	svc, repo, _ := newTestService(t)
	sess := Session{Me: "sato", Today: "2025-01-15"}

	_, err := svc.Create(context.Background(), models.DealFields{Memo: "   "}, sess)
	assert.ErrorIs(t, err, ErrMemoRequired)
	assert.Empty(t, repo.deals)
}

func TestCreateSelfAssignment(t *testing.T) {
	svc, _, _ := newTestService(t)
	sess := Session{Me: "sato", Today: "2025-01-15"}

	created, err := svc.Create(context.Background(), models.DealFields{
		Memo:       "inspect site",
		Assignment: models.AssignSelf,
		Assignee:   "tanaka",
	}, sess)
	require.NoError(t, err)

	// Self-assignment overrides whatever assignee came in.
	assert.Equal(t, "sato", created.Assignee)
}

func TestCreateFailureLeavesWorkingSetUntouched(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.failCreate = true
	sess := Session{Me: "sato", Today: "2025-01-15"}

	_, err := svc.Create(context.Background(), models.DealFields{Memo: "memo"}, sess)
	assert.ErrorIs(t, err, ErrRepositoryFailure)
	assert.Empty(t, svc.WorkingSet())
}

func TestCompleteAndRestore(t *testing.T) {
	svc, _, _ := newTestService(t)
	sess := Session{Me: "sato", Today: "2025-01-15"}

	created, err := svc.Create(context.Background(), models.DealFields{Memo: "memo"}, sess)
	require.NoError(t, err)

	done, err := svc.Complete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, done.Status)

	// Completing a done deal is rejected.
	_, err = svc.Complete(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	back, err := svc.Restore(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOpen, back.Status)

	_, err = svc.Restore(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionUnknownID(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Complete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransitionFailureKeepsLocalStatus(t *testing.T) {
	svc, repo, _ := newTestService(t)
	sess := Session{Me: "sato", Today: "2025-01-15"}

	created, err := svc.Create(context.Background(), models.DealFields{Memo: "memo"}, sess)
	require.NoError(t, err)

	repo.failUpdate = true
	_, err = svc.Complete(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrRepositoryFailure)

	set := svc.WorkingSet()
	require.Len(t, set, 1)
	assert.Equal(t, models.StatusOpen, set[0].Status)
}

func TestEditMutableFields(t *testing.T) {
	svc, _, _ := newTestService(t)
	sess := Session{Me: "sato", Today: "2025-01-15"}

	created, err := svc.Create(context.Background(), models.DealFields{Memo: "memo"}, sess)
	require.NoError(t, err)

	memo := "revised memo"
	due := "2025-03-01"
	imp := models.TriHigh
	status := models.StatusDone
	updated, err := svc.Edit(context.Background(), created.ID, models.DealPatch{
		Memo:       &memo,
		DueDate:    &due,
		Importance: &imp,
		Status:     &status,
	})
	require.NoError(t, err)

	assert.Equal(t, "revised memo", updated.Memo)
	assert.Equal(t, "2025-03-01", updated.DueDate)
	assert.Equal(t, models.TriHigh, updated.Importance)
	// Status edits are stripped; transitions go through Complete/Restore.
	assert.Equal(t, models.StatusOpen, updated.Status)
}

func TestEditRejectsBadDueDate(t *testing.T) {
	svc, _, _ := newTestService(t)
	sess := Session{Me: "sato", Today: "2025-01-15"}

	created, err := svc.Create(context.Background(), models.DealFields{Memo: "memo"}, sess)
	require.NoError(t, err)

	bad := "2025-2-30"
	_, err = svc.Edit(context.Background(), created.ID, models.DealPatch{DueDate: &bad})
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	svc, _, _ := newTestService(t)
	sess := Session{Me: "sato", Today: "2025-01-15"}

	created, err := svc.Create(context.Background(), models.DealFields{Memo: "memo"}, sess)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Empty(t, svc.WorkingSet())

	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID), ErrNotFound)
}

func TestRefreshFailureKeepsWorkingSet(t *testing.T) {
	svc, repo, _ := newTestService(t)
	sess := Session{Me: "sato", Today: "2025-01-15"}

	_, err := svc.Create(context.Background(), models.DealFields{Memo: "memo"}, sess)
	require.NoError(t, err)

	repo.failList = true
	assert.Error(t, svc.Refresh(context.Background()))
	assert.Len(t, svc.WorkingSet(), 1)
}

func TestConcurrentRefreshAndReads(t *testing.T) {
	svc, _, _ := newTestService(t)
	sess := Session{Me: "sato", Today: "2025-01-15"}

	_, err := svc.Create(context.Background(), models.DealFields{Memo: "memo"}, sess)
	require.NoError(t, err)

	// Web handlers and the TUI refresh goroutine share one service; reads
	// and refreshes must be safe to interleave.
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if (n+j)%2 == 0 {
					require.NoError(t, svc.Refresh(context.Background()))
				} else {
					svc.View(Query{Tab: TabOpen}, sess)
					svc.WorkingSet()
					svc.UserNames()
				}
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, svc.WorkingSet(), 1)
}

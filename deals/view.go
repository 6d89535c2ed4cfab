// ABOUTME: Retrieval engine computing filtered, searched, sorted deal views
// ABOUTME: Pure function of working set, query, and session context
package deals

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yasunobu-co-ltd-coder/matip/models"
)

// Tab selects the status partition of the working set.
type Tab int

const (
	TabOpen Tab = iota
	TabDone
)

// Filter is the category filter applied after the text search.
type Filter int

const (
	FilterAll Filter = iota
	FilterMine
	FilterDelegated
	FilterSelfAssigned
	FilterOverdue
)

// SortKey is a closed enumeration of the supported orderings.
type SortKey int

const (
	SortDueSoonest SortKey = iota
	SortImportance
	SortUrgency
	SortProfit
	SortNewest
	SortOldest
)

// Query bundles the view parameters.
type Query struct {
	Tab    Tab
	Search string
	Filter Filter
	Sort   SortKey
}

// View derives an ordered sequence from the working set. The input slice is
// never mutated; equal sort keys preserve input order.
func View(workingSet []models.Deal, q Query, sess Session) []models.Deal {
	wantStatus := models.StatusOpen
	if q.Tab == TabDone {
		wantStatus = models.StatusDone
	}

	out := make([]models.Deal, 0, len(workingSet))
	for _, d := range workingSet {
		if d.Status != wantStatus {
			continue
		}
		if q.Search != "" && !strings.Contains(d.ClientName, q.Search) && !strings.Contains(d.Memo, q.Search) {
			continue
		}
		if !matchFilter(d, q.Filter, sess) {
			continue
		}
		out = append(out, d)
	}

	less := lessFunc(q.Sort)
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out
}

func matchFilter(d models.Deal, f Filter, sess Session) bool {
	switch f {
	case FilterAll:
		return true
	case FilterMine:
		return d.Assignee == sess.Me
	case FilterDelegated:
		return d.Assignment == models.AssignDelegate
	case FilterSelfAssigned:
		return d.Assignment == models.AssignSelf
	case FilterOverdue:
		// Strictly before today, regardless of status. Lexical comparison
		// is valid because due dates are zero-padded YYYY-MM-DD.
		return d.DueDate < sess.Today
	default:
		return true
	}
}

// lessFunc returns a total ordering for the sort key. Each branch is a
// strict weak ordering over two deals.
func lessFunc(key SortKey) func(a, b models.Deal) bool {
	switch key {
	case SortImportance:
		return func(a, b models.Deal) bool { return a.Importance.Score() > b.Importance.Score() }
	case SortUrgency:
		return func(a, b models.Deal) bool { return a.Urgency.Score() > b.Urgency.Score() }
	case SortProfit:
		return func(a, b models.Deal) bool { return a.Profit.Score() > b.Profit.Score() }
	case SortNewest:
		return func(a, b models.Deal) bool { return a.CreatedAt.After(b.CreatedAt) }
	case SortOldest:
		return func(a, b models.Deal) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default: // SortDueSoonest
		return func(a, b models.Deal) bool { return a.DueDate < b.DueDate }
	}
}

// ParseTab maps a command-line token to a tab.
func ParseTab(s string) (Tab, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "open", "list":
		return TabOpen, nil
	case "done":
		return TabDone, nil
	default:
		return TabOpen, fmt.Errorf("unknown tab: %s (valid: open, done)", s)
	}
}

// ParseFilter maps a command-line token to a category filter.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "mine":
		return FilterMine, nil
	case "delegated":
		return FilterDelegated, nil
	case "self":
		return FilterSelfAssigned, nil
	case "overdue":
		return FilterOverdue, nil
	default:
		return FilterAll, fmt.Errorf("unknown filter: %s (valid: all, mine, delegated, self, overdue)", s)
	}
}

// ParseSortKey maps a command-line token to a sort key.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "due":
		return SortDueSoonest, nil
	case "importance":
		return SortImportance, nil
	case "urgency":
		return SortUrgency, nil
	case "profit":
		return SortProfit, nil
	case "newest":
		return SortNewest, nil
	case "oldest":
		return SortOldest, nil
	default:
		return SortDueSoonest, fmt.Errorf("unknown sort: %s (valid: due, importance, urgency, profit, newest, oldest)", s)
	}
}

func (f Filter) String() string {
	switch f {
	case FilterMine:
		return "mine"
	case FilterDelegated:
		return "delegated"
	case FilterSelfAssigned:
		return "self"
	case FilterOverdue:
		return "overdue"
	default:
		return "all"
	}
}

func (k SortKey) String() string {
	switch k {
	case SortImportance:
		return "importance"
	case SortUrgency:
		return "urgency"
	case SortProfit:
		return "profit"
	case SortNewest:
		return "newest"
	case SortOldest:
		return "oldest"
	default:
		return "due"
	}
}

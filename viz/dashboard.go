// ABOUTME: Terminal dashboard statistics and rendering
// ABOUTME: Provides an ASCII overview of the working set
package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yasunobu-co-ltd-coder/matip/models"
)

type DashboardStats struct {
	TotalDeals int
	OpenDeals  int
	DoneDeals  int
	Overdue    int

	OpenByImportance map[models.Tri]int
	OpenByAssignee   map[string]int
}

// GenerateDashboardStats summarizes the working set against the given date.
func GenerateDashboardStats(deals []models.Deal, today string) *DashboardStats {
	stats := &DashboardStats{
		OpenByImportance: make(map[models.Tri]int),
		OpenByAssignee:   make(map[string]int),
	}

	stats.TotalDeals = len(deals)
	for _, deal := range deals {
		if deal.Status == models.StatusDone {
			stats.DoneDeals++
			continue
		}
		stats.OpenDeals++
		stats.OpenByImportance[deal.Importance]++

		assignee := deal.Assignee
		if assignee == "" {
			assignee = "(unassigned)"
		}
		stats.OpenByAssignee[assignee]++

		if deal.DueDate < today {
			stats.Overdue++
		}
	}

	return stats
}

func RenderDashboard(stats *DashboardStats) string {
	var out strings.Builder

	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  MATIP DEAL DASHBOARD\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	out.WriteString("STATS\n")
	out.WriteString(fmt.Sprintf("  💼 %d deals  🔛 %d open  ✅ %d done\n\n",
		stats.TotalDeals, stats.OpenDeals, stats.DoneDeals))

	out.WriteString("OPEN BY IMPORTANCE\n")
	renderImportance(&out, stats.OpenByImportance)
	out.WriteString("\n")

	if len(stats.OpenByAssignee) > 0 {
		out.WriteString("OPEN BY ASSIGNEE\n")
		renderAssignees(&out, stats.OpenByAssignee)
		out.WriteString("\n")
	}

	if stats.Overdue > 0 {
		out.WriteString("NEEDS ATTENTION\n")
		out.WriteString(fmt.Sprintf("  ⚠️  %d open deals past their due date\n", stats.Overdue))
	}

	return out.String()
}

func renderImportance(out *strings.Builder, byImportance map[models.Tri]int) {
	levels := []models.Tri{models.TriHigh, models.TriMedium, models.TriLow}

	maxCount := 0
	for _, count := range byImportance {
		if count > maxCount {
			maxCount = count
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	for _, level := range levels {
		count := byImportance[level]
		barLength := (count * 10) / maxCount
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)
		out.WriteString(fmt.Sprintf("  %-8s %s  %2d\n", level, bar, count))
	}
}

func renderAssignees(out *strings.Builder, byAssignee map[string]int) {
	names := make([]string, 0, len(byAssignee))
	for name := range byAssignee {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		out.WriteString(fmt.Sprintf("  %-12s %d\n", name, byAssignee[name]))
	}
}

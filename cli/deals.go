// ABOUTME: Deal CLI commands
// ABOUTME: Human-friendly commands for listing and managing deals
package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/yasunobu-co-ltd-coder/matip/deals"
	"github.com/yasunobu-co-ltd-coder/matip/models"
)

// AddDealCommand adds a new deal.
func AddDealCommand(ctx context.Context, service *deals.Service, sess deals.Session, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	client := fs.String("client", "", "Client, company, or project name")
	memo := fs.String("memo", "", "Deal memo (required)")
	due := fs.String("due", "", "Due date YYYY-MM-DD (default today)")
	importance := fs.String("importance", "medium", "Importance (high, medium, low)")
	urgency := fs.String("urgency", "medium", "Urgency (high, medium, low)")
	profit := fs.String("profit", "medium", "Profit outlook (high, medium, low)")
	assignment := fs.String("assignment", "delegate", "Assignment (delegate, self)")
	assignee := fs.String("assignee", "", "Assignee name (ignored for self assignment)")
	image := fs.String("image", "", "Image URL to attach")
	_ = fs.Parse(args)

	if *memo == "" {
		return fmt.Errorf("--memo is required")
	}

	fields := models.DealFields{
		ClientName: *client,
		Memo:       *memo,
		DueDate:    *due,
		Importance: models.ParseTri(*importance),
		Urgency:    models.ParseTri(*urgency),
		Profit:     models.ParseTri(*profit),
		Assignment: models.ParseAssignment(*assignment),
		Assignee:   *assignee,
		ImageURL:   *image,
	}

	created, err := service.Create(ctx, fields, sess)
	if err != nil {
		return fmt.Errorf("failed to create deal: %w", err)
	}

	fmt.Printf("✓ Deal created: %s (ID: %s)\n", displayName(*created), created.ID)
	fmt.Printf("  Due: %s\n", created.DueDate)
	fmt.Printf("  Importance/Urgency/Profit: %s/%s/%s\n", created.Importance, created.Urgency, created.Profit)
	if created.Assignee != "" {
		fmt.Printf("  Assignee: %s\n", created.Assignee)
	}
	return nil
}

// ListDealsCommand prints a filtered, sorted view of the working set.
func ListDealsCommand(ctx context.Context, service *deals.Service, sess deals.Session, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	tab := fs.String("tab", "open", "Status tab (open, done)")
	search := fs.String("query", "", "Substring match against client name and memo")
	filter := fs.String("filter", "all", "Filter (all, mine, delegated, self, overdue)")
	sortKey := fs.String("sort", "due", "Sort (due, importance, urgency, profit, newest, oldest)")
	_ = fs.Parse(args)

	parsedTab, err := deals.ParseTab(*tab)
	if err != nil {
		return err
	}
	parsedFilter, err := deals.ParseFilter(*filter)
	if err != nil {
		return err
	}
	parsedSort, err := deals.ParseSortKey(*sortKey)
	if err != nil {
		return err
	}

	if err := service.Refresh(ctx); err != nil {
		return err
	}

	view := service.View(deals.Query{
		Tab:    parsedTab,
		Search: *search,
		Filter: parsedFilter,
		Sort:   parsedSort,
	}, sess)

	if len(view) == 0 {
		fmt.Println("No deals found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "CLIENT\tMEMO\tDUE\tIMP\tURG\tPROFIT\tASSIGNEE\tID")
	_, _ = fmt.Fprintln(w, "------\t----\t---\t---\t---\t------\t--------\t--")

	for _, deal := range view {
		due := deal.DueDate
		if deal.Status == models.StatusOpen && deal.DueDate < sess.Today {
			due += " ⚠"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			orDash(deal.ClientName), truncateMemo(deal.Memo), due,
			deal.Importance, deal.Urgency, deal.Profit,
			orDash(deal.Assignee), shortID(deal.ID))
	}
	_ = w.Flush()

	fmt.Printf("\nTotal: %d deal(s)\n", len(view))
	return nil
}

// DoneDealCommand marks an open deal as done.
func DoneDealCommand(ctx context.Context, service *deals.Service, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: deals done <id>")
	}

	updated, err := service.Complete(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("✓ Completed: %s\n", displayName(*updated))
	return nil
}

// RestoreDealCommand moves a done deal back to open.
func RestoreDealCommand(ctx context.Context, service *deals.Service, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: deals restore <id>")
	}

	updated, err := service.Restore(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("✓ Restored: %s\n", displayName(*updated))
	return nil
}

// DeleteDealCommand permanently removes a deal after confirmation.
func DeleteDealCommand(ctx context.Context, service *deals.Service, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Skip the confirmation prompt")
	_ = fs.Parse(args)

	if len(fs.Args()) != 1 {
		return fmt.Errorf("usage: deals delete [--yes] <id>")
	}
	id := fs.Arg(0)

	if !*yes && !confirm(fmt.Sprintf("Permanently delete deal %s?", shortID(id))) {
		fmt.Println("Aborted")
		return nil
	}

	if err := service.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted deal: %s\n", id)
	return nil
}

// EditDealCommand updates the mutable fields of a deal.
func EditDealCommand(ctx context.Context, service *deals.Service, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	client := fs.String("client", "", "New client name")
	memo := fs.String("memo", "", "New memo")
	due := fs.String("due", "", "New due date YYYY-MM-DD")
	importance := fs.String("importance", "", "New importance (high, medium, low)")
	urgency := fs.String("urgency", "", "New urgency (high, medium, low)")
	profit := fs.String("profit", "", "New profit outlook (high, medium, low)")
	image := fs.String("image", "", "New image URL")
	_ = fs.Parse(args)

	if len(fs.Args()) != 1 {
		return fmt.Errorf("usage: deals edit <id> [--memo ...] [--due ...]")
	}
	id := fs.Arg(0)

	var patch models.DealPatch
	if *client != "" {
		patch.ClientName = client
	}
	if *memo != "" {
		patch.Memo = memo
	}
	if *due != "" {
		patch.DueDate = due
	}
	if *importance != "" {
		v := models.ParseTri(*importance)
		patch.Importance = &v
	}
	if *urgency != "" {
		v := models.ParseTri(*urgency)
		patch.Urgency = &v
	}
	if *profit != "" {
		v := models.ParseTri(*profit)
		patch.Profit = &v
	}
	if *image != "" {
		patch.ImageURL = image
	}

	updated, err := service.Edit(ctx, id, patch)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Updated: %s\n", displayName(*updated))
	return nil
}

func displayName(d models.Deal) string {
	if d.ClientName != "" {
		return d.ClientName
	}
	return truncateMemo(d.Memo)
}

func truncateMemo(memo string) string {
	memo = strings.ReplaceAll(memo, "\n", " ")
	runes := []rune(memo)
	if len(runes) > 32 {
		return string(runes[:32]) + "…"
	}
	return memo
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

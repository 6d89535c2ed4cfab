// ABOUTME: Visualization CLI commands
// ABOUTME: Renders the priority matrix and the terminal dashboard
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/yasunobu-co-ltd-coder/matip/deals"
	"github.com/yasunobu-co-ltd-coder/matip/viz"
)

// VizMatrixCommand renders the urgency/importance matrix as graphviz xdot.
func VizMatrixCommand(ctx context.Context, service *deals.Service, args []string) error {
	fs := flag.NewFlagSet("matrix", flag.ExitOnError)
	output := fs.String("output", "", "Write the graph to a file instead of stdout")
	_ = fs.Parse(args)

	if err := service.Refresh(ctx); err != nil {
		return err
	}

	generator := viz.NewGraphGenerator(service.WorkingSet())
	graph, err := generator.GeneratePriorityMatrix()
	if err != nil {
		return err
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(graph), 0o644); err != nil {
			return fmt.Errorf("failed to write graph: %w", err)
		}
		fmt.Printf("✓ Matrix written to %s\n", *output)
		return nil
	}

	fmt.Println(graph)
	return nil
}

// VizDashboardCommand prints the terminal dashboard.
func VizDashboardCommand(ctx context.Context, service *deals.Service, sess deals.Session) error {
	if err := service.Refresh(ctx); err != nil {
		return err
	}

	stats := viz.GenerateDashboardStats(service.WorkingSet(), sess.Today)
	fmt.Print(viz.RenderDashboard(stats))
	return nil
}

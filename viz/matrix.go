// ABOUTME: Priority matrix graph generation for open deals
// ABOUTME: Plots deals into urgency x importance cells rendered with graphviz
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/yasunobu-co-ltd-coder/matip/models"
)

type GraphGenerator struct {
	deals []models.Deal
}

func NewGraphGenerator(deals []models.Deal) *GraphGenerator {
	return &GraphGenerator{deals: deals}
}

// GeneratePriorityMatrix lays open deals out in a 3x3 urgency/importance
// grid. Each cell is a node; deals hang off the cell they fall into.
func (g *GraphGenerator) GeneratePriorityMatrix() (string, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz: %w", err)
	}
	defer func() {
		if err := gv.Close(); err != nil {
			fmt.Printf("Error closing graphviz: %v\n", err)
		}
	}()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer func() {
		if err := graph.Close(); err != nil {
			fmt.Printf("Error closing graph: %v\n", err)
		}
	}()

	graph.SetLabel("Deal Priority Matrix (urgency x importance)")

	levels := []models.Tri{models.TriHigh, models.TriMedium, models.TriLow}
	cellNodes := make(map[string]*cgraph.Node)
	for _, urgency := range levels {
		for _, importance := range levels {
			key := cellKey(urgency, importance)
			node, err := graph.CreateNodeByName("cell_" + key)
			if err != nil {
				return "", fmt.Errorf("failed to create cell node: %w", err)
			}
			node.SetLabel(fmt.Sprintf("urgency: %s\nimportance: %s", urgency, importance))
			node.SetShape("box")
			node.SetStyle("filled")
			node.SetFillColor(cellColor(urgency, importance))
			cellNodes[key] = node
		}
	}

	for _, deal := range g.deals {
		if deal.Status != models.StatusOpen {
			continue
		}

		node, err := graph.CreateNodeByName(fmt.Sprintf("deal_%s", shortID(deal.ID)))
		if err != nil {
			return "", fmt.Errorf("failed to create deal node: %w", err)
		}
		label := deal.ClientName
		if label == "" {
			label = truncate(deal.Memo, 24)
		}
		node.SetLabel(fmt.Sprintf("%s\ndue %s", label, deal.DueDate))
		node.SetShape("ellipse")
		node.SetStyle("filled")
		node.SetFillColor("white")

		cell := cellNodes[cellKey(deal.Urgency, deal.Importance)]
		edge, err := graph.CreateEdgeByName("in_cell", cell, node)
		if err != nil {
			return "", fmt.Errorf("failed to create edge: %w", err)
		}
		edge.SetStyle("dashed")
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}
	return buf.String(), nil
}

func cellKey(urgency, importance models.Tri) string {
	return string(urgency) + "_" + string(importance)
}

// cellColor shades the hot corner red and the cold corner gray.
func cellColor(urgency, importance models.Tri) string {
	score := urgency.Score() + importance.Score()
	switch {
	case score >= 6:
		return "tomato"
	case score >= 5:
		return "orange"
	case score >= 4:
		return "lightyellow"
	default:
		return "lightgray"
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}

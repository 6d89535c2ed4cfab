// ABOUTME: MCP server subcommand
// ABOUTME: Exposes deal and user tools over stdio for assistant integration
package cli

import (
	"context"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/yasunobu-co-ltd-coder/matip/deals"
	"github.com/yasunobu-co-ltd-coder/matip/handlers"
)

// MCPCommand starts the MCP server on stdio
func MCPCommand(service *deals.Service, session deals.Session) error {
	log.Println("Starting deal tracker MCP server...")

	dealHandlers := handlers.NewDealHandlers(service, session)
	userHandlers := handlers.NewUserHandlers(service, session)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "matip",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_deal",
		Description: "Create a new deal with memo, due date, priority axes, and assignment",
	}, dealHandlers.CreateDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_deals",
		Description: "List deals filtered by tab, search text, category filter, and sort order",
	}, dealHandlers.ListDeals)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "complete_deal",
		Description: "Mark an open deal as done",
	}, dealHandlers.CompleteDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "restore_deal",
		Description: "Move a done deal back to open",
	}, dealHandlers.RestoreDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_deal",
		Description: "Permanently delete a deal",
	}, dealHandlers.DeleteDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "edit_deal",
		Description: "Edit a deal's client name, memo, due date, or priority axes",
	}, dealHandlers.EditDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_user",
		Description: "Add a user to the assignee roster",
	}, userHandlers.AddUser)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_users",
		Description: "List the assignee roster",
	}, userHandlers.ListUsers)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "remove_user",
		Description: "Remove a user from the roster (blocked while they have assigned deals)",
	}, userHandlers.RemoveUser)

	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}

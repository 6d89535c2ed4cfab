// ABOUTME: User roster CLI commands
// ABOUTME: Manages the shared list of assignable users
package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/yasunobu-co-ltd-coder/matip/deals"
)

// AddUserCommand registers a new roster user.
func AddUserCommand(ctx context.Context, service *deals.Service, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: users add <name>")
	}

	created, err := service.AddUser(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("✓ User added: %s (ID: %s)\n", created.Name, created.ID)
	return nil
}

// ListUsersCommand prints the roster.
func ListUsersCommand(ctx context.Context, service *deals.Service, args []string) error {
	if err := service.Refresh(ctx); err != nil {
		return err
	}

	users := service.Users()
	if len(users) == 0 {
		fmt.Println("No users registered")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tCREATED\tID")
	_, _ = fmt.Fprintln(w, "----\t-------\t--")
	for _, user := range users {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n",
			user.Name, user.CreatedAt.Format("2006-01-02"), shortID(user.ID))
	}
	_ = w.Flush()

	fmt.Printf("\nTotal: %d user(s)\n", len(users))
	return nil
}

// RemoveUserCommand removes a roster user, subject to the service guards.
func RemoveUserCommand(ctx context.Context, service *deals.Service, sess deals.Session, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: users remove <id>")
	}

	if err := service.RemoveUser(ctx, args[0], sess); err != nil {
		return err
	}
	fmt.Printf("✓ User removed: %s\n", args[0])
	return nil
}

// ABOUTME: PIN-gated login and logout commands
// ABOUTME: Persists the active user to the state file between invocations
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/yasunobu-co-ltd-coder/matip/config"
	"github.com/yasunobu-co-ltd-coder/matip/deals"
)

const pinAttempts = 3

// LoginCommand verifies the shared PIN, selects a roster user, and writes
// the login state.
func LoginCommand(ctx context.Context, service *deals.Service, cfg config.Config) error {
	if err := verifyPIN(cfg.PIN); err != nil {
		return err
	}

	if err := service.Refresh(ctx); err != nil {
		return err
	}

	users := service.Users()
	if len(users) == 0 {
		return fmt.Errorf("no users registered; add one with: users add <name>")
	}

	fmt.Println("Who are you?")
	for i, user := range users {
		fmt.Printf("  %d) %s\n", i+1, user.Name)
	}
	fmt.Print("Select: ")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read selection: %w", err)
	}
	choice, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || choice < 1 || choice > len(users) {
		return fmt.Errorf("invalid selection")
	}

	state := config.LoginState{UserName: users[choice-1].Name, LoggedInAt: time.Now()}
	if err := config.SaveState(cfg.StatePath, state); err != nil {
		return err
	}

	fmt.Printf("✓ Logged in as %s\n", state.UserName)
	return nil
}

// LogoutCommand clears the persisted login state.
func LogoutCommand(cfg config.Config) error {
	if err := config.ClearState(cfg.StatePath); err != nil {
		return err
	}
	fmt.Println("✓ Logged out")
	return nil
}

// ActiveSession loads the persisted login and builds a session for it.
func ActiveSession(cfg config.Config) (deals.Session, error) {
	state, err := config.LoadState(cfg.StatePath)
	if err != nil {
		return deals.Session{}, err
	}
	if state.UserName == "" {
		return deals.Session{}, fmt.Errorf("not logged in; run: login")
	}
	return deals.NewSession(state.UserName), nil
}

func verifyPIN(expected string) error {
	for attempt := 1; attempt <= pinAttempts; attempt++ {
		fmt.Print("PIN: ")
		entered, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			// No terminal; fall back to a plain line read.
			reader := bufio.NewReader(os.Stdin)
			line, readErr := reader.ReadString('\n')
			if readErr != nil {
				return fmt.Errorf("failed to read PIN: %w", readErr)
			}
			entered = []byte(strings.TrimSpace(line))
		}

		if string(entered) == expected {
			return nil
		}
		fmt.Println("Wrong PIN")
	}
	return fmt.Errorf("too many failed PIN attempts")
}

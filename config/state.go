// ABOUTME: Persisted login state under the XDG state directory
// ABOUTME: Tracks which roster user is active between invocations
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LoginState records the active roster user after a successful PIN entry.
type LoginState struct {
	UserName   string    `json:"user_name"`
	LoggedInAt time.Time `json:"logged_in_at"`
}

// SaveState writes the login state, creating parent directories as needed.
func SaveState(path string, state LoginState) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}

// LoadState reads the login state. A missing file returns an empty state
// with no error.
func LoadState(path string) (LoginState, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return LoginState{}, nil
	}
	if err != nil {
		return LoginState{}, fmt.Errorf("failed to read state: %w", err)
	}
	var state LoginState
	if err := json.Unmarshal(data, &state); err != nil {
		return LoginState{}, fmt.Errorf("failed to decode state: %w", err)
	}
	return state, nil
}

// ClearState removes the login state file if present.
func ClearState(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return nil
}

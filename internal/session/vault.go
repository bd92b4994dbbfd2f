package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// tokenEnvVar overrides the stored token when set. Useful for CI and for
// pointing the client at a second account without touching the token file.
const tokenEnvVar = "MENTORA_TOKEN"

// Vault persists the opaque bearer token under a fixed path, by default
// ~/.mentora/token. Reads and writes are synchronous; the TUI is the single
// writer so the file is never contended.
type Vault struct {
	path string
}

// NewVault returns a vault rooted in the user's home directory.
func NewVault() (*Vault, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("session.NewVault: get home dir: %w", err)
	}
	return &Vault{path: filepath.Join(home, ".mentora", "token")}, nil
}

// NewVaultAt returns a vault using an explicit token file path.
func NewVaultAt(path string) *Vault {
	return &Vault{path: path}
}

// Read returns the token using precedence: env var > file > empty.
func (v *Vault) Read() string {
	if tok := os.Getenv(tokenEnvVar); tok != "" {
		return tok
	}
	data, err := os.ReadFile(v.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Write stores the token with owner-only permissions.
func (v *Vault) Write(token string) error {
	if err := os.MkdirAll(filepath.Dir(v.path), 0700); err != nil {
		return fmt.Errorf("session.Vault.Write: %w", err)
	}
	if err := os.WriteFile(v.path, []byte(token), 0600); err != nil {
		return fmt.Errorf("session.Vault.Write: %w", err)
	}
	return nil
}

// Delete removes the stored token. A missing file is not an error.
func (v *Vault) Delete() error {
	if err := os.Remove(v.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session.Vault.Delete: %w", err)
	}
	return nil
}

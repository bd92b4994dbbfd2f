package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mentora/mentora/internal/config"
	"github.com/mentora/mentora/internal/i18n"
	"github.com/mentora/mentora/internal/session"
	"github.com/mentora/mentora/internal/tui"
	"github.com/mentora/mentora/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("mentora " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "logout":
			return runLogout(cfg.APIURL)
		case "locale":
			if len(os.Args) < 3 {
				return fmt.Errorf("usage: mentora locale <en|si>")
			}
			return runLocale(os.Args[2])
		default:
			return fmt.Errorf("unknown command %q, see 'mentora help'", os.Args[1])
		}
	}

	vault, err := session.NewVault()
	if err != nil {
		return fmt.Errorf("open token store: %w", err)
	}
	api := client.New(cfg.APIURL, "")
	store := session.NewStore(api, vault)
	loc := i18n.LoadPreference(cfg.Locale)

	app := tui.NewApp(store, api, loc)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runLogout(apiURL string) error {
	vault, err := session.NewVault()
	if err != nil {
		return err
	}
	token := vault.Read()
	if token == "" {
		fmt.Println("Already logged out.")
		return nil
	}
	// Best-effort backend notify; the local token is cleared regardless.
	api := client.New(apiURL, token)
	api.Logout(context.Background()) //nolint:errcheck
	if err := vault.Delete(); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	fmt.Println("Logged out.")
	return nil
}

func runLocale(code string) error {
	loc := i18n.Parse(code)
	if err := i18n.SavePreference(loc); err != nil {
		return fmt.Errorf("save locale: %w", err)
	}
	fmt.Printf("Locale set to %s.\n", loc)
	return nil
}

func printHelp() {
	fmt.Print(`mentora — future-ready learning, in your terminal

usage:
  mentora              launch the app
  mentora logout       clear the saved session
  mentora locale <c>   set the UI locale (en, si)
  mentora version      print the version

environment:
  MENTORA_API_URL      override the platform API endpoint
  MENTORA_TOKEN        use a fixed session token
  MENTORA_LOCALE       override the UI locale for this run
`)
}

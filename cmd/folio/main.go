package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"folio/internal/config"
	"folio/internal/prefs"
	"folio/internal/preview"
	"folio/internal/server"
	"folio/internal/site"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:           "folio",
	Short:         "Personal portfolio site: dev server, terminal preview, and tooling",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the development web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, content, err := loadEnvironment()
		if err != nil {
			return err
		}
		s, err := server.New(cfg, content)
		if err != nil {
			return err
		}
		defer s.Close()
		return s.Run(signalContext())
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview the site in this terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, content, err := loadEnvironment()
		if err != nil {
			return err
		}
		store, err := prefs.Open(cfg.DatabasePath())
		if err != nil {
			return fmt.Errorf("open preference store: %w", err)
		}
		defer store.Close()

		model := preview.New(store, content, lipgloss.HasDarkBackground)
		_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	},
}

var sshCmd = &cobra.Command{
	Use:   "ssh",
	Short: "Serve the terminal preview over SSH",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, content, err := loadEnvironment()
		if err != nil {
			return err
		}
		store, err := prefs.Open(cfg.DatabasePath())
		if err != nil {
			return fmt.Errorf("open preference store: %w", err)
		}
		defer store.Close()

		srv, err := preview.NewSSH(cfg, content, store)
		if err != nil {
			return err
		}
		return srv.Run(signalContext())
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration, site file checks, and visit totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFromEnv()
		if err != nil {
			return err
		}

		fmt.Printf("folio %s\n\n", version)
		fmt.Printf("  http:       %s (live reload %v)\n", cfg.Addr(), cfg.LiveReload)
		fmt.Printf("  ssh:        %s\n", cfg.SSHAddr())
		fmt.Printf("  site dir:   %s\n", cfg.SiteDir)
		fmt.Printf("  data dir:   %s\n", cfg.DataDir)
		fmt.Println()

		checkPath("templates", filepath.Join(cfg.SiteDir, "templates"))
		checkPath("static assets", cfg.StaticDir())
		if _, err := os.Stat(cfg.ContentPath()); err == nil {
			fmt.Printf("  ✓ content file: %s\n", cfg.ContentPath())
		} else {
			fmt.Printf("  - content file: %s absent, using built-in content\n", cfg.ContentPath())
		}

		content, err := site.Load(cfg.ContentPath())
		if err != nil {
			fmt.Printf("  ✗ content: %v\n", err)
			return nil
		}
		if err := content.PageModel().Validate(); err != nil {
			fmt.Printf("  ✗ page model: %v\n", err)
			return nil
		}
		fmt.Printf("  ✓ page model valid (%d sections, %d projects)\n",
			len(content.PageModel().Sections), len(content.Projects))

		if _, err := os.Stat(cfg.DatabasePath()); err != nil {
			fmt.Println("  - no visit data yet")
			return nil
		}
		visits, err := server.OpenVisitLog(cfg.DatabasePath())
		if err != nil {
			return fmt.Errorf("open visit log: %w", err)
		}
		defer visits.Close()
		stats, err := visits.Stats()
		if err != nil {
			return err
		}
		fmt.Printf("  ✓ visits: %d total, %d unique, %d this week\n",
			stats.TotalVisits, stats.UniqueVisitors, stats.VisitsThisWeek)
		return nil
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove derived data (visit log, preferences, host key)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFromEnv()
		if err != nil {
			return err
		}
		if err := os.RemoveAll(cfg.DataDir); err != nil {
			return fmt.Errorf("remove %s: %w", cfg.DataDir, err)
		}
		fmt.Printf("removed %s\n", cfg.DataDir)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the folio version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

func loadEnvironment() (config.Config, *site.Content, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return config.Config{}, nil, err
	}
	content, err := site.Load(cfg.ContentPath())
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, content, nil
}

func signalContext() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return ctx
}

func checkPath(label, path string) {
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("  ✓ %s: %s\n", label, path)
		return
	}
	fmt.Printf("  ✗ %s: %s missing\n", label, path)
}

func main() {
	rootCmd.AddCommand(serveCmd, previewCmd, sshCmd, statusCmd, cleanCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("folio: %v", err)
	}
}

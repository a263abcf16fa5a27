package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/BerylCAtieno/business-dashboard/internal/backend"
	"github.com/BerylCAtieno/business-dashboard/internal/config"
	"github.com/BerylCAtieno/business-dashboard/internal/form"
	"github.com/BerylCAtieno/business-dashboard/internal/logger"
	"github.com/BerylCAtieno/business-dashboard/internal/store"
	"github.com/BerylCAtieno/business-dashboard/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

var (
	backendURL string
	logFile    string
	timeout    time.Duration
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "dashboard-tui",
	Short: "Business dashboard in the terminal",
	Long: `Look up a business by name and location, see its rating, review count
and SEO headline, and regenerate the headline on demand.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	cfg := config.Load()

	rootCmd.Flags().StringVar(&backendURL, "backend-url", cfg.Backend.URL, "Base URL of the business data backend")
	rootCmd.Flags().StringVar(&logFile, "log-file", cfg.App.LogFilePath, "File to write logs to")
	rootCmd.Flags().DurationVar(&timeout, "timeout", cfg.Backend.RequestTimeout, "HTTP timeout for backend requests")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output")
}

func run(cmd *cobra.Command, args []string) error {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	appLogger := logger.NewIsolatedLogger(logFile, level)
	defer appLogger.Sync()

	client := backend.NewClient(backendURL, timeout, appLogger)
	dashboard := store.New(client, appLogger)
	model := tui.NewModel(context.Background(), dashboard, form.New(), appLogger)

	appLogger.Info("tui", "starting", map[string]interface{}{"backend_url": backendURL})

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main provides the CLI entrypoint for typetutor.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/typetutor/internal/config"
	"github.com/verte-zerg/typetutor/internal/lessons"
	"github.com/verte-zerg/typetutor/internal/logging"
	"github.com/verte-zerg/typetutor/internal/session"
	"github.com/verte-zerg/typetutor/internal/settings"
	"github.com/verte-zerg/typetutor/internal/store"
	"github.com/verte-zerg/typetutor/internal/tui"
)

var (
	rootDB       string
	rootLogLevel string

	practiceLesson string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typetutor",
		Short:         "Terminal typing tutor",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPracticeCmd,
	}

	rootCmd.PersistentFlags().StringVar(&rootDB, "db", "", "path to the SQLite database")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&practiceLesson, "lesson", "", "lesson id to start immediately")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLessonsCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newSettingsCmd())

	return rootCmd
}

// app bundles what every subcommand opens.
type app struct {
	cfg     config.App
	log     *zap.Logger
	store   *store.Store
	lessons *lessons.Service
}

func openApp(cmd *cobra.Command) (*app, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg, err := config.Resolve(fileCfg)
	if err != nil {
		return nil, err
	}
	applyStringConfig(cmd, "db", &rootDB, &cfg.DBPath)
	applyStringConfig(cmd, "log-level", &rootLogLevel, &cfg.LogLevel)
	cfg.DBPath = rootDB
	cfg.LogLevel = rootLogLevel

	log, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	a := &app{
		cfg:     cfg,
		log:     log,
		store:   st,
		lessons: lessons.NewService(st, log),
	}
	seeded, err := a.lessons.Seed(commandContext(cmd))
	if err != nil {
		a.close()
		return nil, err
	}
	if seeded > 0 {
		log.Info("seeded default lessons", zap.Int("count", seeded))
	}
	return a, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		logErrf("failed to close db: %v\n", err)
	}
	// Best-effort flush.
	_ = a.log.Sync()
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()
	applyStringConfig(cmd, "lesson", &practiceLesson, &a.cfg.Lesson)

	ctx := commandContext(cmd)
	all, err := a.lessons.List(ctx)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		return errors.New("no lessons available; add one with: typetutor lessons add")
	}
	prefs, err := settings.Load(ctx, a.store, a.log)
	if err != nil {
		logErrf("using default settings: %v\n", err)
	}

	engine := session.NewEngine(a.store, session.WithLogger(a.log.Named("session")))
	m := tui.NewModel(engine, all, prefs, a.store, a.log)
	if practiceLesson != "" {
		if err := m.StartLesson(practiceLesson); err != nil {
			return err
		}
	}
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typetutor configuration
# Uncomment a value to enable it. Environment variables override the file,
# CLI flags override both.

[practice]
# lesson = ""               # Lesson id to open instead of the picker ($%s)

[stats]
# curve-window = %d          # Moving average window for trend lines ($%s)
# last = 0                  # Limit reports to the last N sessions (0 = all)

[storage]
# db = %q  # ($%s)

[log]
# level = %q               # debug, info, warn or error ($%s)
# file = %q  # ($%s)
`,
		config.EnvLesson,
		config.DefaultCurveWindow, config.EnvWindow,
		config.DefaultDBPath(), config.EnvDB,
		config.DefaultLogLevel, config.EnvLogLevel,
		config.DefaultLogPath(), config.EnvLogFile,
	)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil || *value == "" {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

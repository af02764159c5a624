package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/typetutor/internal/model"
	"github.com/verte-zerg/typetutor/internal/stats"
	"github.com/verte-zerg/typetutor/internal/statsui"
)

var (
	statsPlain       bool
	statsLesson      string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsClear       bool
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the dashboard")
	cmd.Flags().StringVar(&statsLesson, "lesson", "", "lesson id filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", 0, "moving average window")
	cmd.Flags().BoolVar(&statsClear, "clear", false, "delete all recorded sessions")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := commandContext(cmd)
	if statsClear {
		n, err := a.store.ClearRecords(ctx)
		if err != nil {
			return fmt.Errorf("failed to clear stats: %w", err)
		}
		logErrf("Cleared %d session(s)\n", n)
		return nil
	}

	applyIntConfig(cmd, "curve-window", &statsCurveWindow, &a.cfg.CurveWindow)
	applyIntConfig(cmd, "last", &statsLast, &a.cfg.Last)
	if statsCurveWindow < 1 {
		return fmt.Errorf("--curve-window must be >= 1")
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	filter := model.StatsFilter{
		LessonID: statsLesson,
		Since:    sinceTime,
		Last:     statsLast,
	}

	if !statsPlain {
		m := statsui.NewModel(a.store, filter, statsCurveWindow)
		program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run stats TUI: %w", err)
		}
		return nil
	}

	records, err := a.store.ListRecords(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, records); err != nil {
		return err
	}
	if len(records) == 0 {
		logErrln("Complete a lesson with `typetutor` to start recording sessions.")
		return nil
	}
	if err := stats.RenderTrend(out, records, statsCurveWindow, stats.TerminalWidth()); err != nil {
		return err
	}
	if err := stats.RenderLessonTable(out, stats.LessonCounts(records)); err != nil {
		return err
	}
	return stats.RenderRecent(out, stats.Recent(records, stats.RecentLimit))
}

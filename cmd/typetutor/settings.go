package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/typetutor/internal/settings"
)

func newSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings [key value]",
		Short: "Print or change settings (theme, sound, keyboard, font-size)",
		Args:  cobra.RangeArgs(0, 2),
		RunE:  runSettingsCmd,
	}
}

func runSettingsCmd(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return errors.New("expected a key and a value, e.g. typetutor settings theme dark")
	}
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := commandContext(cmd)
	s, err := settings.Load(ctx, a.store, a.log)
	if err != nil {
		return err
	}
	if len(args) == 2 {
		if s, err = settings.Apply(s, args[0], args[1]); err != nil {
			return err
		}
		if err := settings.Save(ctx, a.store, s); err != nil {
			return err
		}
	}
	for _, key := range settings.Keys {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, settings.Value(s, key)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

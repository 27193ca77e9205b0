package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/internal/preset"
)

func newPresetCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Create and inspect preset files",
	}
	cmd.AddCommand(newPresetInitCommand(a), newPresetShowCommand())
	return cmd
}

func newPresetInitCommand(a *app) *cobra.Command {
	var (
		sf    *settingsFlags
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write a preset from the defaults and flags (stdout without file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sf.resolve("")
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return preset.Save(cmd.OutOrStdout(), s)
			}

			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s exists, use --force to overwrite", path)
			}
			if err := preset.SaveFile(path, s); err != nil {
				return err
			}
			a.logger.Info("preset written", "path", path)
			return nil
		},
	}
	sf = addSettingsFlags(cmd.Flags())
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newPresetShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <file>",
		Short: "Validate a preset and print its settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := preset.LoadFile(args[0])
			if err != nil {
				return err
			}
			printSettings(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

func printSettings(w io.Writer, s eq.Settings) {
	fmt.Fprintf(w, "low-cut   %8.1f Hz  %s\n", s.LowCutFreq, s.LowCutSlope)
	fmt.Fprintf(w, "peak      %8.1f Hz  %+.1f dB  Q %.2f\n", s.PeakFreq, s.PeakGainDB, s.PeakQuality)
	fmt.Fprintf(w, "high-cut  %8.1f Hz  %s\n", s.HighCutFreq, s.HighCutSlope)
}

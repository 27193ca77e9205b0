package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-eq/internal/config"
	"github.com/cwbudde/algo-eq/internal/logging"
)

// app carries the state shared by all subcommands once the root
// command has loaded the configuration.
type app struct {
	configFile string
	cfg        *config.Config
	logger     *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "peq",
		Short:         "Three-band parametric equalizer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default: ./peq.yaml or $HOME/.config/peq/peq.yaml)")
	pf.Float64("sample-rate", 0, "stream sample rate in Hz")
	pf.Int("block-size", 0, "maximum host block size in frames")
	pf.Int("channels", 0, "channel count of the live stream")
	pf.String("device", "", "capture device name (live)")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.String("log-format", "", "log format: text or json")

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return a.init(cmd)
	}

	root.AddCommand(
		newProcessCommand(a),
		newLiveCommand(a),
		newResponseCommand(a),
		newPresetCommand(a),
	)
	return root
}

// init loads configuration with flag overrides and builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	v := config.New()
	err := config.BindFlags(v, cmd.Root().PersistentFlags(), map[string]string{
		"sample-rate": "audio.sample_rate",
		"block-size":  "audio.block_size",
		"channels":    "audio.channels",
		"device":      "audio.device",
		"log-level":   "log.level",
		"log-format":  "log.format",
	})
	if err != nil {
		return err
	}

	cfg, err := config.Load(v, a.configFile)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

// Command peq runs the three-band parametric equalizer.
//
// Usage:
//
//	peq [global flags] <command> [flags]
//
// Commands:
//
//	process   filter a WAV file offline in host-sized blocks
//	live      filter a full-duplex sound card stream
//	response  print the magnitude response of a setting
//	preset    create and inspect preset files
//
// Examples:
//
//	peq process --peak-gain 6 --low-cut 80 --low-cut-slope 24 in.wav out.wav
//	peq response --preset vocal.yaml --measured
//	peq preset init --high-cut 12000 vocal.yaml
//	PEQ_AUDIO_DEVICE="USB Audio" peq live --preset vocal.yaml
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

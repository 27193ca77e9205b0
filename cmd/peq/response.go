package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/measure/response"
)

// measureLength is the impulse response length used by --measured.
const measureLength = 1 << 15

func newResponseCommand(a *app) *cobra.Command {
	var (
		sf       *settingsFlags
		points   int
		measured bool
		stages   bool
	)

	cmd := &cobra.Command{
		Use:   "response",
		Short: "Print the magnitude response of a setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sf.resolve(a.cfg.Preset)
			if err != nil {
				return err
			}
			return writeResponse(cmd.OutOrStdout(), s, a.cfg.Audio.SampleRate, points, measured, stages)
		},
	}

	sf = addSettingsFlags(cmd.Flags())
	cmd.Flags().IntVar(&points, "points", 31, "number of log-spaced frequencies")
	cmd.Flags().BoolVar(&measured, "measured", false, "add a column measured from the filtered impulse response")
	cmd.Flags().BoolVar(&stages, "stages", false, "add one column per stage")
	return cmd
}

func writeResponse(w io.Writer, s eq.Settings, sampleRate float64, points int, measured, stages bool) error {
	if points < 2 {
		return fmt.Errorf("points must be at least 2, got %d", points)
	}

	d := eq.NewDesign(s, sampleRate)
	freqs := eq.LogFrequencies(points, eq.MinFrequency, min(eq.MaxFrequency, sampleRate/2))
	curve := eq.ResponseCurve(nil, &d, freqs)

	var meas *response.Response
	if measured {
		path := eq.NewMonoPath()
		path.Prepare(core.ProcessorConfig{SampleRate: sampleRate, BlockSize: measureLength, Channels: 1})
		path.ApplyDesign(&d)

		an, err := response.NewAnalyzer(sampleRate, measureLength)
		if err != nil {
			return err
		}
		if meas, err = an.Measure(path); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "# %s\n", describe(s, sampleRate))

	fmt.Fprint(tw, "freq [Hz]\tgain [dB]\t")
	if measured {
		fmt.Fprint(tw, "measured [dB]\t")
	}
	if stages {
		for _, pos := range eq.Positions {
			fmt.Fprintf(tw, "%s [dB]\t", pos)
		}
	}
	fmt.Fprintln(tw)

	for i, f := range freqs {
		fmt.Fprintf(tw, "%.1f\t%.2f\t", f, curve[i])
		if measured {
			fmt.Fprintf(tw, "%.2f\t", meas.MagnitudeDB(f))
		}
		if stages {
			for _, pos := range eq.Positions {
				fmt.Fprintf(tw, "%.2f\t", core.LinearToDB(d.StageMagnitude(pos, f)))
			}
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func describe(s eq.Settings, sampleRate float64) string {
	return fmt.Sprintf("fs=%g Hz  low-cut %g Hz %s  peak %g Hz %+g dB Q=%g  high-cut %g Hz %s",
		sampleRate,
		s.LowCutFreq, s.LowCutSlope,
		s.PeakFreq, s.PeakGainDB, s.PeakQuality,
		s.HighCutFreq, s.HighCutSlope)
}

package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-eq/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(44100),
		core.WithBlockSize(256),
		core.WithChannels(1),
	)

	fmt.Printf("sampleRate=%.0f blockSize=%d channels=%d\n", cfg.SampleRate, cfg.BlockSize, cfg.Channels)

	// Output:
	// sampleRate=44100 blockSize=256 channels=1
}

func ExampleDeinterleave() {
	planar := core.NewPlanar(2, 2)
	frames := core.Deinterleave(planar, []float32{1, -1, 0.5, -0.5})
	fmt.Println(frames, planar[0], planar[1])

	// Output:
	// 2 [1 0.5] [-1 -0.5]
}

package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/coreman2200/funtimes-ledstudio/internal/pattern"
	"github.com/coreman2200/funtimes-ledstudio/internal/sink"
	"github.com/coreman2200/funtimes-ledstudio/internal/tui"
)

func newRenderCmd() *cobra.Command {
	var (
		start  int
		frames int
		hex    bool
		nrzOut string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print computed frames without running the clock",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			seed := cfg.Seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			eng := pattern.NewEngine(nil, rand.New(rand.NewSource(seed)))
			id := pattern.ID(cfg.Strip.Pattern)
			if _, ok := eng.Resolve(id); !ok {
				logger.Warn().Str("pattern", cfg.Strip.Pattern).Msg("unknown pattern, rendering solid white")
			}

			var out sink.Sink
			if nrzOut != "" {
				f, err := os.Create(nrzOut)
				if err != nil {
					return fmt.Errorf("nrz output: %w", err)
				}
				defer f.Close()
				nrz := sink.NewNRZ(f)
				defer nrz.Close()
				out = nrz
			}

			w := cmd.OutOrStdout()
			for f := start; f < start+frames; f++ {
				leds := eng.ComputeFrame(id, cfg.Strip.LEDCount, f, cfg.Strip.Brightness)
				if out != nil {
					if err := out.Write(leds); err != nil {
						return err
					}
				}
				if hex {
					fmt.Fprintf(w, "%d %s\n", f, tui.HexList(leds))
				} else {
					fmt.Fprintf(w, "%4d %s\n", f, tui.Swatches(leds, 0))
				}
			}
			logger.Debug().Int("frames", frames).Str("pattern", cfg.Strip.Pattern).Msg("rendered")
			return nil
		},
	}
	cmd.Flags().IntVar(&start, "start", 0, "first frame")
	cmd.Flags().IntVar(&frames, "frames", 1, "number of frames")
	cmd.Flags().BoolVar(&hex, "hex", false, "print hex codes instead of swatches")
	cmd.Flags().StringVar(&nrzOut, "nrz-out", "", "also record the WS2812 bitstream to this file")
	return cmd
}

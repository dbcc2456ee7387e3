package cmd

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/effects"
	"github.com/Zachkp/portfolio/internal/theme"
)

var (
	simFrames   int
	simTheme    string
	simPointer  bool
	simSeed     uint64
	simRealtime bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the background effects headless and report statistics",
	Long: `Runs the particle field and ripple layer for a number of frames without
drawing anything, then prints a summary of the scene. With --pointer a
cursor sweeps across the scene and leaves ripples behind it. With
--realtime frames are paced at the configured fps as in the browser, and
Ctrl-C stops early with the summary so far.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		th, err := sceneTheme(cfg, simTheme)
		if err != nil {
			return err
		}
		seed := cfg.Effects.Seed
		if simSeed != 0 {
			seed = simSeed
		}

		w, h := float64(cfg.Effects.Width), float64(cfg.Effects.Height)
		scene := effects.NewScene(w, h, th, effects.NewRand(seed))

		bar := progressbar.NewOptions(simFrames,
			progressbar.OptionSetDescription("Simulating "+string(th)),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionClearOnFinish(),
		)

		start := time.Now()
		spawned, i := 0, 0
		step := func() {
			if simPointer {
				x, y := sweep(i, w, h)
				if scene.PointerMove(x, y) {
					spawned++
				}
			}
			scene.Advance(1)
			_ = bar.Add(1)
			i++
		}
		if simRealtime {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()
			err := effects.Run(ctx, cfg.Effects.FPS, func() {
				step()
				if i >= simFrames {
					cancel()
				}
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
		} else {
			for i < simFrames {
				step()
			}
		}
		_ = bar.Finish()
		elapsed := time.Since(start)

		st := scene.Stats()
		fmt.Printf("Theme:          %s\n", st.Theme)
		fmt.Printf("Scene:          %.0fx%.0f\n", st.Width, st.Height)
		fmt.Printf("Frames:         %d (%s, %.0f fps)\n", st.Frames, elapsed.Round(time.Millisecond), float64(st.Frames)/elapsed.Seconds())
		fmt.Printf("Particles:      %d (%d outside bounds)\n", st.Particles, st.OutOfBounds)
		fmt.Printf("Connections:    %d\n", st.Connections)
		fmt.Printf("Ripples:        %d active, %d spawned\n", st.Ripples, spawned)
		return nil
	},
}

func init() {
	simulateCmd.Flags().IntVarP(&simFrames, "frames", "n", 600, "number of frames to simulate")
	simulateCmd.Flags().StringVar(&simTheme, "theme", "", "day or night (default: from config and clock)")
	simulateCmd.Flags().BoolVar(&simPointer, "pointer", false, "sweep a pointer across the scene")
	simulateCmd.Flags().Uint64Var(&simSeed, "seed", 0, "random seed (overrides config)")
	simulateCmd.Flags().BoolVar(&simRealtime, "realtime", false, "pace frames at the configured fps")
	rootCmd.AddCommand(simulateCmd)
}

// sceneTheme picks the theme for an offline scene: the flag, then the
// pinned config theme, then the schedule.
func sceneTheme(cfg *config.Config, flag string) (theme.Theme, error) {
	switch {
	case flag != "":
		return theme.Parse(flag)
	case cfg.Theme.Fixed != "":
		return theme.Parse(cfg.Theme.Fixed)
	}
	sched := theme.Schedule{NightStart: cfg.Theme.NightStart, NightEnd: cfg.Theme.NightEnd}
	return sched.At(time.Now()), nil
}

// sweep traces a Lissajous curve over the scene, one point per frame.
func sweep(frame int, w, h float64) (float64, float64) {
	t := float64(frame) / 60
	return w/2 + w/2.5*math.Sin(3*t), h/2 + h/2.5*math.Sin(2*t)
}

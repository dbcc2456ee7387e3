package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/effects"
	"github.com/Zachkp/portfolio/internal/effects/preview"
)

var previewTheme string

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Open a window showing the animated background",
	Long: `Renders the particle field and ripple layer in a desktop window. Moving
the cursor spawns ripples at night. Without --theme the scene follows the
configured schedule and switches live. Press Esc or Q to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		th, err := sceneTheme(cfg, previewTheme)
		if err != nil {
			return err
		}

		scene := effects.NewScene(float64(cfg.Effects.Width), float64(cfg.Effects.Height), th, effects.NewRand(cfg.Effects.Seed))
		if previewTheme == "" && cfg.Theme.Fixed == "" {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			attr, err := themeAttribute(ctx, cfg)
			if err != nil {
				return err
			}
			go scene.Watch(ctx, attr)
		}

		return preview.Run(scene, cfg.Effects.Width, cfg.Effects.Height, cfg.Effects.FPS)
	},
}

func init() {
	previewCmd.Flags().StringVar(&previewTheme, "theme", "", "day or night (default: follow the schedule)")
	rootCmd.AddCommand(previewCmd)
}

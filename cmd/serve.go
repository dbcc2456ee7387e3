package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/auth"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/db"
	"github.com/Zachkp/portfolio/internal/theme"
	"github.com/Zachkp/portfolio/internal/visitors"
	"github.com/Zachkp/portfolio/internal/web"
)

// maintenanceInterval spaces session purges and visitor cleanups.
const maintenanceInterval = 24 * time.Hour

var (
	servePort   int
	serveNoSeed bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the portfolio web server",
	Long: `Starts the public site, the admin dashboard and the admin API. The
server shuts down gracefully on SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort != 0 {
			cfg.Port = servePort
		}
		gin.SetMode(cfg.GinMode)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		database, err := db.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		store := content.NewStore(database)
		if !serveNoSeed {
			if err := store.SeedDefaults(ctx); err != nil {
				return fmt.Errorf("seeding content: %w", err)
			}
		}

		authSvc := auth.NewService(database)
		if _, err := authSvc.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
			return fmt.Errorf("creating admin user: %w", err)
		}

		tracker, err := visitors.NewTracker(database)
		if err != nil {
			return fmt.Errorf("creating visitor tracker: %w", err)
		}
		go maintain(ctx, authSvc, tracker)

		attr, err := themeAttribute(ctx, cfg)
		if err != nil {
			return err
		}

		srv, err := web.New(cfg, web.Deps{
			Store:   store,
			Auth:    authSvc,
			Tracker: tracker,
			Mailer:  contact.New(cfg.SMTP),
			Theme:   attr,
		})
		if err != nil {
			return fmt.Errorf("creating server: %w", err)
		}
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (overrides config)")
	serveCmd.Flags().BoolVar(&serveNoSeed, "no-seed", false, "do not fill an empty database with sample content")
	rootCmd.AddCommand(serveCmd)
}

// themeAttribute returns the pinned theme when one is configured, otherwise
// an attribute that follows the clock until ctx is done.
func themeAttribute(ctx context.Context, cfg *config.Config) (*theme.Attribute, error) {
	if cfg.Theme.Fixed != "" {
		th, err := theme.Parse(cfg.Theme.Fixed)
		if err != nil {
			return nil, err
		}
		return theme.NewAttribute(th), nil
	}
	sched := theme.Schedule{NightStart: cfg.Theme.NightStart, NightEnd: cfg.Theme.NightEnd}
	attr := theme.NewAttribute(sched.At(time.Now()))
	go theme.Follow(ctx, attr, sched, time.Now, time.Minute)
	return attr, nil
}

// maintain drops expired sessions and old visits at startup and then daily.
func maintain(ctx context.Context, a *auth.Service, t *visitors.Tracker) {
	run := func() {
		if n, err := a.PurgeExpired(ctx); err != nil {
			log.Printf("maintenance: purging sessions: %v", err)
		} else if n > 0 {
			log.Printf("maintenance: purged %d expired sessions", n)
		}
		if _, err := t.Cleanup(ctx); err != nil {
			log.Printf("maintenance: cleaning visitors: %v", err)
		}
	}

	run()
	ticker := time.NewTicker(maintenanceInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/admin"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/site"
)

var (
	adminURL      string
	adminUser     string
	adminPassword string
	adminYes      bool
	adminID       int64
	adminPicture  string
	adminResume   string
	adminAnimate  bool
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage portfolio content on a running server",
	Long: `Drives the admin API of a running portfolio server. Every command logs
in first; the password is taken from --password, then ADMIN_PASSWORD, then
an interactive prompt.`,
}

var adminLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Check admin credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := connect(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("Logged in to %s as %s\n", adminURL, adminUser)
		return nil
	},
}

var adminListCmd = &cobra.Command{
	Use:       "list <resource>",
	Short:     "List the records of a collection",
	Args:      cobra.ExactArgs(1),
	ValidArgs: resourceNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := content.ParseResource(args[0])
		if err != nil {
			return err
		}
		panel, err := openPanel(cmd.Context())
		if err != nil {
			return err
		}
		if err := panel.ShowTab(cmd.Context(), string(r)); err != nil {
			return fmt.Errorf("loading %s: %w", r.Label(), err)
		}
		printCards(panel.Cards(r))
		return nil
	},
}

var adminSaveCmd = &cobra.Command{
	Use:   "save <resource> [field=value...]",
	Short: "Create a record, or update one with --id",
	Example: `  portfolio admin save experience company=Acme position=Engineer start_date="Jan 2024" current=true
  portfolio admin save projects --id 3 featured=false`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		r, err := content.ParseResource(args[0])
		if err != nil {
			return err
		}
		fields, err := parseFields(args[1:])
		if err != nil {
			return err
		}
		panel, err := openPanel(ctx)
		if err != nil {
			return err
		}

		modal := panel.OpenCreate(r)
		if adminID != 0 {
			if modal, err = panel.OpenEdit(ctx, r, adminID); err != nil {
				return err
			}
			if modal == nil {
				return fmt.Errorf("%s %d not found", r.Label(), adminID)
			}
		}
		for k, v := range fields {
			modal.Values[k] = v
		}
		if modal.Editing() {
			modal.Values.Set("id", strconv.FormatInt(modal.ID, 10))
		}
		return panel.Submit(ctx, r, modal.Values)
	},
}

var adminDeleteCmd = &cobra.Command{
	Use:   "delete <resource> <id>",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := content.ParseResource(args[0])
		if err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[1])
		}
		panel, err := openPanel(cmd.Context())
		if err != nil {
			return err
		}
		sent, err := panel.Delete(cmd.Context(), r, id)
		if err != nil {
			return err
		}
		if !sent {
			fmt.Println("Cancelled")
		}
		return nil
	},
}

var adminProfileCmd = &cobra.Command{
	Use:   "profile [field=value...]",
	Short: "Show the profile, or update it",
	Example: `  portfolio admin profile
  portfolio admin profile name="Ada Lovelace" --picture me.png --resume cv.pdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		fields, err := parseFields(args)
		if err != nil {
			return err
		}
		panel, err := openPanel(ctx)
		if err != nil {
			return err
		}

		files := map[string]string{}
		if adminPicture != "" {
			files["profile_picture"] = adminPicture
		}
		if adminResume != "" {
			files["resume"] = adminResume
		}
		if len(fields) > 0 || len(files) > 0 {
			return panel.SaveProfile(ctx, fields, files)
		}

		values, err := panel.Profile(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, k := range profileFields {
			fmt.Fprintf(w, "%s\t%s\n", k, values.Get(k))
		}
		return w.Flush()
	},
}

var adminStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show visitor statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		stats, err := client.Stats(cmd.Context())
		if err != nil {
			return err
		}
		for _, line := range []struct {
			label string
			value int
		}{
			{"Total visits:", int(stats.TotalVisitors)},
			{"Unique:", int(stats.UniqueVisitors)},
			{"Today:", int(stats.VisitorsToday)},
			{"This week:", int(stats.VisitorsThisWeek)},
		} {
			if err := countUp(cmd.Context(), line.label, line.value); err != nil {
				return err
			}
		}
		if len(stats.TopPaths) > 0 {
			fmt.Println("\nTop pages:")
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, p := range stats.TopPaths {
				fmt.Fprintf(w, "  %s\t%d\n", p.Path, p.Visits)
			}
			w.Flush()
		}
		return nil
	},
}

// countUp prints a labelled total, stepping it up from zero with --animate.
func countUp(ctx context.Context, label string, n int) error {
	if !adminAnimate {
		fmt.Printf("%-16s%d\n", label, n)
		return nil
	}
	err := site.NewCounter(n).Animate(ctx, func(v int) {
		fmt.Printf("\r%-16s%d", label, v)
	})
	fmt.Println()
	return err
}

var profileFields = []string{"name", "title", "department", "bio", "email", "phone", "location"}

func init() {
	pf := adminCmd.PersistentFlags()
	pf.StringVar(&adminURL, "url", "http://localhost:8080", "base URL of the portfolio server")
	pf.StringVarP(&adminUser, "user", "u", "admin", "admin username")
	pf.StringVar(&adminPassword, "password", "", "admin password")

	adminSaveCmd.Flags().Int64Var(&adminID, "id", 0, "id of the record to update")
	adminDeleteCmd.Flags().BoolVarP(&adminYes, "yes", "y", false, "delete without asking")
	adminProfileCmd.Flags().StringVar(&adminPicture, "picture", "", "profile picture to upload")
	adminProfileCmd.Flags().StringVar(&adminResume, "resume", "", "resume to upload")
	adminStatsCmd.Flags().BoolVar(&adminAnimate, "animate", false, "count the totals up like the public page")

	adminCmd.AddCommand(adminLoginCmd, adminListCmd, adminSaveCmd, adminDeleteCmd, adminProfileCmd, adminStatsCmd)
	rootCmd.AddCommand(adminCmd)
}

func resourceNames() []string {
	names := make([]string, len(content.Resources))
	for i, r := range content.Resources {
		names[i] = string(r)
	}
	return names
}

// connect logs in to the server and returns the authenticated client.
func connect(ctx context.Context) (*admin.Client, error) {
	password, err := resolvePassword()
	if err != nil {
		return nil, err
	}
	client, err := admin.NewClient(adminURL)
	if err != nil {
		return nil, err
	}
	if err := client.Login(ctx, adminUser, password); err != nil {
		return nil, err
	}
	return client, nil
}

func openPanel(ctx context.Context) (*admin.Panel, error) {
	client, err := connect(ctx)
	if err != nil {
		return nil, err
	}
	return admin.NewPanel(client, confirmer(), admin.NotifyFunc(printBanner)), nil
}

func resolvePassword() (string, error) {
	if adminPassword != "" {
		return adminPassword, nil
	}
	if pw := os.Getenv("ADMIN_PASSWORD"); pw != "" {
		return pw, nil
	}
	prompt := promptui.Prompt{
		Label: "Password for " + adminUser,
		Mask:  '*',
	}
	pw, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("password prompt: %w", err)
	}
	return pw, nil
}

// confirmer asks on the terminal unless --yes was given.
func confirmer() admin.Confirmer {
	if adminYes {
		return admin.ConfirmFunc(func(string) bool { return true })
	}
	return admin.ConfirmFunc(func(question string) bool {
		prompt := promptui.Prompt{
			Label:     strings.TrimSuffix(question, "?"),
			IsConfirm: true,
		}
		_, err := prompt.Run()
		return err == nil
	})
}

func printBanner(b admin.Banner) {
	if b.Kind == admin.Failure {
		fmt.Fprintln(os.Stderr, promptui.IconBad, b.Text)
		return
	}
	fmt.Println(promptui.IconGood, b.Text)
}

func printCards(cards []admin.Card) {
	if len(cards) == 0 {
		fmt.Println("No entries")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tDETAILS\tDATE")
	for _, c := range cards {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.ID, c.Title, c.Subtitle, c.Date)
	}
	w.Flush()
}

// parseFields turns field=value arguments into form values.
func parseFields(args []string) (url.Values, error) {
	v := url.Values{}
	for _, arg := range args {
		k, val, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, errors.New("expected field=value, got " + strconv.Quote(arg))
		}
		v.Add(k, val)
	}
	return v, nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/db"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import portfolio content from a YAML file",
	Long: `Imports a YAML content document into the database. Records are
appended and the profile is replaced. Without --file the built-in sample
content is imported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		doc := content.SampleDocument()
		if seedFile != "" {
			f, err := os.Open(seedFile)
			if err != nil {
				return fmt.Errorf("opening %s: %w", seedFile, err)
			}
			doc, err = content.DecodeDocument(f)
			f.Close()
			if err != nil {
				return err
			}
		}

		database, err := db.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		bar := progressbar.NewOptions(doc.Len(),
			progressbar.OptionSetDescription("Importing"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWriter(os.Stderr),
		)
		res, err := content.NewStore(database).Import(cmd.Context(), doc, func() { _ = bar.Add(1) })
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("nothing imported: %w", err)
		}

		fmt.Printf("Imported %d records into %s", res.Records, cfg.Database)
		if res.Profile {
			fmt.Print(" and replaced the profile")
		}
		fmt.Println()
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML content document")
	rootCmd.AddCommand(seedCmd)
}

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var migrateDryRun bool

var migrateCmd = &cobra.Command{
	Use:   "migrate [path]",
	Short: "Import a legacy plain-text progress log",
	Long: `Import lines of the form "[YYYY-MM-DD HH:MM:SS] log text" into the journal.
Entries whose timestamp already exists are skipped, so running it twice is safe.
The default path is legacy_path from the config (~/.tpt/progress.txt).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "Show what would be imported without writing")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	path := a.cfg.LegacyPath
	if len(args) == 1 {
		path = args[0]
	}
	return migrateLegacy(a, path, migrateDryRun)
}

func migrateLegacy(a *app, path string, dryRun bool) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		a.out.Info("No legacy log found at %s, nothing to migrate.", path)
		return nil
	}

	suffix := ""
	if dryRun {
		suffix = " [dry-run]"
	}
	a.out.Println("Migrating legacy log " + path + " ..." + suffix)

	res, err := a.j.MigrateLegacy(path, dryRun)
	if err != nil {
		return fail(err)
	}

	a.out.Printf("\nSummary:\n  %d imported\n  %d skipped\n  %d malformed\n", res.Migrated, res.Duplicates, len(res.Malformed))
	return nil
}

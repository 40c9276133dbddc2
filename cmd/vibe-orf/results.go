package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/vibe-orf/internal/config"
	"github.com/inodb/vibe-orf/internal/duckdb"
)

// dbPath returns the --db flag value, falling back to the configured db.
func dbPath(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		path = viper.GetString(config.KeyDB)
	}
	if path == "" {
		return "", fmt.Errorf("no results database; pass --db or set %q in the config", config.KeyDB)
	}
	return path, nil
}

func newResultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "results <sequence-id>",
		Short:   "Show stored longest ORFs of a sequence across runs",
		Example: `  vibe-orf results MN123456.1:1-1200_Homo_sapiens --db results.duckdb`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := dbPath(cmd)
			if err != nil {
				return err
			}
			store, err := duckdb.Open(path)
			if err != nil {
				return err
			}
			defer store.Close()

			found, err := store.LookupSequence(args[0])
			if err != nil {
				return err
			}
			if len(found) == 0 {
				return fmt.Errorf("sequence %q not found in %s", args[0], path)
			}
			return printStoredResults(cmd.OutOrStdout(), found)
		},
	}
	cmd.Flags().String("db", "", "DuckDB results database")
	return cmd
}

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List translate runs recorded in a results database",
		Example: `  vibe-orf runs --db results.duckdb
  vibe-orf runs --db results.duckdb --clear   # delete all runs and results`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := dbPath(cmd)
			if err != nil {
				return err
			}
			store, err := duckdb.Open(path)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Runs()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if wipe, _ := cmd.Flags().GetBool("clear"); wipe {
				if err := store.ClearResults(); err != nil {
					return fmt.Errorf("clear results: %w", err)
				}
				fmt.Fprintf(out, "Cleared %d runs from %s\n", len(runs), path)
				return nil
			}

			fmt.Fprintln(out, "#Run\tStarted\tInput\tTable\tLenient\tRecords")
			for _, r := range runs {
				fmt.Fprintf(out, "%s\t%s\t%s\t%d\t%t\t%d\n",
					r.ID, r.StartedAt.Format(time.RFC3339), r.Input.Path, r.GeneticCode, r.Lenient, r.RecordCount)
			}
			return nil
		},
	}
	cmd.Flags().String("db", "", "DuckDB results database")
	cmd.Flags().Bool("clear", false, "Delete all recorded runs and results")
	return cmd
}

func printStoredResults(w io.Writer, results []duckdb.StoredResult) error {
	if _, err := fmt.Fprintln(w, "#Run\tIndex\tFrame\tORF_length\tORF"); err != nil {
		return err
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n", r.RunID, r.Index, r.Frame, len(r.ORF), r.ORF); err != nil {
			return err
		}
	}
	return nil
}

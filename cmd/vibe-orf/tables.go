package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inodb/vibe-orf/internal/geneticcode"
)

func newTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the available NCBI genetic code tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "#ID\tStops\tName")
			for _, id := range geneticcode.IDs() {
				t := geneticcode.MustLookup(id)
				marker := ""
				if id == geneticcode.Default {
					marker = " (default)"
				}
				fmt.Fprintf(out, "%d\t%s\t%s%s\n", t.ID, strings.Join(t.StopCodons(), ","), t.Name, marker)
			}
			return nil
		},
	}
}

package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"strata/internal/artifact"
)

// runSummary prints a per-kind count of artifacts in the store.
func runSummary(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	store := db.ArtifactStore()
	ctx := cmd.Context()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tARTIFACTS")
	for _, kind := range artifact.Kinds() {
		records, err := store.Find(ctx, kind, artifact.Filters{})
		if err != nil {
			return fmt.Errorf("counting %s artifacts: %w", kind, err)
		}
		fmt.Fprintf(w, "%s\t%d\n", kind, len(records))
	}
	return w.Flush()
}

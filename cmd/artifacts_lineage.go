package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"strata/internal/artifact"
)

var artifactsLineageCmd = &cobra.Command{
	Use:   "artifacts:lineage <kind> <id>",
	Short: "Show the dependency chain for an artifact",
	Long: `Show the full dependency chain for an artifact as JSON, starting at the
given record and walking dependencies down to the leaf.

Example:
  strata artifacts:lineage model 42`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := artifact.Kind(args[0])
		if !kind.IsValid() {
			return fmt.Errorf("unknown kind %q", args[0])
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid artifact id %q", args[1])
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		store := db.ArtifactStore()
		chain := make([]artifactDTO, 0)
		for {
			rec, err := store.FindByID(cmd.Context(), kind, id)
			if err != nil {
				return err
			}
			chain = append(chain, toDTO(rec))
			dep := rec.DependencyID()
			if dep == nil {
				break
			}
			depKind, ok := kind.Dependency()
			if !ok {
				break
			}
			kind = depKind
			id = *dep
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(chain)
	},
}

func init() {
	rootCmd.AddCommand(artifactsLineageCmd)
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"strata/internal/artifact"
)

var (
	listKind string
	listName string
)

// artifactDTO is the JSON shape for listed artifacts.
type artifactDTO struct {
	ID             int64  `json:"id"`
	GUID           string `json:"guid"`
	Kind           string `json:"kind"`
	Name           string `json:"name"`
	Version        int    `json:"version"`
	RegisteredName string `json:"registered_name"`
	Hash           string `json:"hash"`
	DependencyID   *int64 `json:"dependency_id,omitempty"`
	Author         string `json:"author"`
	CreatedAt      string `json:"created_at"`
}

var artifactsListCmd = &cobra.Command{
	Use:   "artifacts:list",
	Short: "List artifacts in the store",
	Long: `List artifacts in the store as JSON, newest version first.

Use --kind to restrict to one artifact kind and --name to a single lineage.

Examples:
  # List everything
  strata artifacts:list

  # All models
  strata artifacts:list --kind model

  # Every version of one dataset
  strata artifacts:list --kind raw_dataset --name housing

  # Parse specific fields with jq
  strata artifacts:list | jq '.[].hash'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		kinds := artifact.Kinds()
		if listKind != "" {
			kind := artifact.Kind(listKind)
			if !kind.IsValid() {
				return fmt.Errorf("unknown kind %q", listKind)
			}
			kinds = []artifact.Kind{kind}
		}

		store := db.ArtifactStore()
		dtos := make([]artifactDTO, 0)
		for _, kind := range kinds {
			records, err := store.Find(cmd.Context(), kind, artifact.Filters{Name: listName})
			if err != nil {
				return fmt.Errorf("listing %s artifacts: %w", kind, err)
			}
			for _, rec := range records {
				dtos = append(dtos, toDTO(rec))
			}
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(dtos)
	},
}

func toDTO(rec *artifact.Record) artifactDTO {
	return artifactDTO{
		ID:             rec.ID(),
		GUID:           rec.GUID(),
		Kind:           rec.Kind().String(),
		Name:           rec.Name(),
		Version:        rec.Version(),
		RegisteredName: rec.RegisteredName(),
		Hash:           rec.Hash(),
		DependencyID:   rec.DependencyID(),
		Author:         rec.Author(),
		CreatedAt:      rec.CreatedAt().Format(time.RFC3339),
	}
}

func init() {
	artifactsListCmd.Flags().StringVarP(&listKind, "kind", "k", "", "Filter by artifact kind (e.g., model)")
	artifactsListCmd.Flags().StringVarP(&listName, "name", "n", "", "Filter by artifact name")
	rootCmd.AddCommand(artifactsListCmd)
}

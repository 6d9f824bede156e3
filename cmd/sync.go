package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/application/dto"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run a one-off sync between the two databases",
}

var (
	syncBatchSize    int
	syncDryRun       bool
	syncSkipExisting bool
	syncStage        string
)

var syncFromMapCmd = &cobra.Command{
	Use:   "from-map",
	Short: "Sync MAP Tool molecules into ADAMO initial records",
	RunE: func(cmd *cobra.Command, _ []string) error {
		svcs := buildServices(cmd.Context(), cfg)

		response, err := svcs.Sync.SyncFromMapToAdamo(cmd.Context(), dto.SyncFromMapRequest{
			BatchSize:    syncBatchSize,
			DryRun:       syncDryRun,
			SkipExisting: &syncSkipExisting,
		})
		if err != nil {
			return err
		}
		return printJSON(response)
	},
}

var syncFromAdamoCmd = &cobra.Command{
	Use:   "from-adamo",
	Short: "Sync ADAMO sessions into MAP Tool assessments",
	RunE: func(cmd *cobra.Command, _ []string) error {
		svcs := buildServices(cmd.Context(), cfg)

		response, err := svcs.Sync.SyncFromAdamoToMap(cmd.Context(), dto.SyncFromAdamoRequest{
			BatchSize:    syncBatchSize,
			DryRun:       syncDryRun,
			SkipExisting: &syncSkipExisting,
			Stage:        syncStage,
		})
		if err != nil {
			return err
		}
		return printJSON(response)
	},
}

func printJSON(data any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func init() {
	syncCmd.PersistentFlags().IntVar(&syncBatchSize, "batch-size", 0, "Maximum records per run (0 = direction default)")
	syncCmd.PersistentFlags().BoolVar(&syncDryRun, "dry-run", false, "Report what would be synced without writing")
	syncCmd.PersistentFlags().BoolVar(&syncSkipExisting, "skip-existing", true, "Skip records already present at the destination")
	syncFromAdamoCmd.Flags().StringVar(&syncStage, "stage", "", "Only sync sessions with this stage")

	syncCmd.AddCommand(syncFromMapCmd)
	syncCmd.AddCommand(syncFromAdamoCmd)
	rootCmd.AddCommand(syncCmd)
}

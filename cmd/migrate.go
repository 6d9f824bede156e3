package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/application/dto"
)

var (
	migrateBatchSize   int
	migrateStageFilter string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run the one-shot bulk migration from ADAMO to MAP Tool",
	Long: `Run the one-shot bulk migration of a populated ADAMO database into MAP
Tool. Entity types are migrated in dependency order: odor families, odor
descriptors, molecules, sessions, odor characterizations, ignored
molecules.

Both features.enable_migration and features.enable_database_writes must
be on. Run only one migration at a time: concurrent runs racing on
existence checks could double-insert.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svcs := buildServices(cmd.Context(), cfg)

		result, err := svcs.Migration.MigrateAdamoToMapTool(cmd.Context(), dto.MigrationOptions{
			BatchSize:   migrateBatchSize,
			StageFilter: migrateStageFilter,
		})
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

func init() {
	migrateCmd.Flags().IntVar(&migrateBatchSize, "batch-size", 0, "Maximum records per entity type (0 = default)")
	migrateCmd.Flags().StringVar(&migrateStageFilter, "stage", "", "Only migrate sessions with this stage")
	rootCmd.AddCommand(migrateCmd)
}

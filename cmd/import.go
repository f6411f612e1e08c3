package cmd

import (
	"fmt"

	"techtree/core/config"
	"techtree/core/database"
	"techtree/core/logger"
	"techtree/feature/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	importMigrate bool
	importDryRun  bool
)

// importCmd runs the pipeline and writes the catalog into the database.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Parse game data and import the catalog into the database",
	Long: `Parse the four game data sources and replace the stored catalog with
the result, in one transaction. Every row carries the run id of the batch
that wrote it.

By default the destination schema is verified before any row is touched;
--migrate creates or updates the tables instead. --dry-run reports how the
fresh catalog differs from the stored one without writing anything.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		applySourceOverrides(cfg)

		log, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		defer log.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}
		if importMigrate {
			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("migrating schema: %w", err)
			}
		}
		if err := database.VerifyCatalogSchema(db); err != nil {
			return err
		}

		result, err := buildCatalog(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}

		if importDryRun {
			stored, err := database.LoadCatalog(cmd.Context(), db)
			if err != nil {
				return err
			}
			diff := catalog.DiffResults(stored, result)
			log.Info("dry run, nothing written",
				zap.String("stored_run_id", stored.RunID),
				zap.Strings("added_vehicles", diff.AddedVehicles),
				zap.Strings("removed_vehicles", diff.RemovedVehicles),
				zap.Strings("changed_vehicles", diff.ChangedVehicles),
				zap.Int("added_edges", len(diff.AddedEdges)),
				zap.Int("removed_edges", len(diff.RemovedEdges)),
				zap.Strings("changed_rank_requirements", diff.ChangedRankRequirements),
				zap.Bool("up_to_date", diff.Empty()))
			return nil
		}

		if err := database.ImportCatalog(cmd.Context(), db, result); err != nil {
			return err
		}

		log.Info("catalog imported",
			zap.String("run_id", result.RunID),
			zap.Int("vehicles", len(result.Vehicles)),
			zap.Int("edges", len(result.Edges)),
			zap.Int("rank_requirements", len(result.RankRequirements)))
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&parseShop, "shop", "", "structural tech tree source (path, URL or s3://)")
	importCmd.Flags().StringVar(&parseEconomy, "economy", "", "economics source (path, URL or s3://)")
	importCmd.Flags().StringVar(&parseRanks, "ranks", "", "rank gating source (path, URL or s3://)")
	importCmd.Flags().StringVar(&parseLocale, "locale", "", "localization sheet (path, URL or s3://)")
	importCmd.Flags().BoolVar(&importMigrate, "migrate", false, "create or update the destination tables first")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "diff against the stored catalog instead of writing")

	RootCmd.AddCommand(importCmd)
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"techtree/core/config"
	"techtree/core/logger"
	"techtree/feature/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	parseShop    string
	parseEconomy string
	parseRanks   string
	parseLocale  string
	parseOutDir  string
	parseStrict  bool
)

// parseCmd runs the pipeline and exports the catalog as CSV files.
var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse game data into CSV exports",
	Long: `Parse the four game data sources into a normalized catalog and write
vehicles.csv, dependencies.csv and rank_requirements.csv to the output
directory.

Source locations default to the configured ones; each can be overridden
with a flag and may be a local path, an http(s) URL or s3://bucket/key.

Examples:
  # Parse local files into ./out
  techtree parse --shop shop.blk --out out

  # Parse a bucket snapshot, failing on any diagnostic
  techtree parse --shop s3://gamedata/shop.blk --strict`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		applySourceOverrides(cfg)
		if parseStrict {
			cfg.Catalog.Strict = true
		}

		log, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		defer log.Sync()

		result, err := buildCatalog(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(parseOutDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		exports := []struct {
			name  string
			write func(f *os.File) error
		}{
			{"vehicles.csv", func(f *os.File) error { return catalog.WriteVehiclesCSV(f, result.Vehicles) }},
			{"dependencies.csv", func(f *os.File) error { return catalog.WriteEdgesCSV(f, result.Edges) }},
			{"rank_requirements.csv", func(f *os.File) error { return catalog.WriteRankRequirementsCSV(f, result.RankRequirements) }},
		}
		for _, exp := range exports {
			path := filepath.Join(parseOutDir, exp.name)
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating %s: %w", path, err)
			}
			if err := exp.write(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", path, err)
			}
			log.Info("export written", zap.String("file", path))
		}
		return nil
	},
}

// applySourceOverrides copies the non-empty source flags over the
// configured locations.
func applySourceOverrides(cfg *config.Config) {
	if parseShop != "" {
		cfg.Source.Shop = parseShop
	}
	if parseEconomy != "" {
		cfg.Source.Economy = parseEconomy
	}
	if parseRanks != "" {
		cfg.Source.Ranks = parseRanks
	}
	if parseLocale != "" {
		cfg.Source.Locale = parseLocale
	}
}

func init() {
	parseCmd.Flags().StringVar(&parseShop, "shop", "", "structural tech tree source (path, URL or s3://)")
	parseCmd.Flags().StringVar(&parseEconomy, "economy", "", "economics source (path, URL or s3://)")
	parseCmd.Flags().StringVar(&parseRanks, "ranks", "", "rank gating source (path, URL or s3://)")
	parseCmd.Flags().StringVar(&parseLocale, "locale", "", "localization sheet (path, URL or s3://)")
	parseCmd.Flags().StringVar(&parseOutDir, "out", ".", "output directory for the CSV exports")
	parseCmd.Flags().BoolVar(&parseStrict, "strict", false, "fail the run when any diagnostic is recorded")

	RootCmd.AddCommand(parseCmd)
}

package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"techtree/core/config"
	"techtree/core/database"
	"techtree/core/loader"
	"techtree/core/logger"
	"techtree/core/middleware/auth"
	"techtree/core/middleware/rayid"
	"techtree/feature/catalog"
	"techtree/feature/serve"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveFromDB bool

// serveCmd builds the catalog once and serves it over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the parsed catalog over HTTP",
	Long: `Builds the catalog from the configured sources once at startup and
serves it from memory over a JSON API. With --from-db the previously
imported catalog is loaded from the database instead of re-parsing the
sources.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		applySourceOverrides(cfg)

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Obtain the catalog; without data there is nothing to serve
		var result *catalog.Result
		if serveFromDB {
			db, err := database.Connect(cfg.Database)
			if err != nil {
				logg.Fatal("Failed to connect to database", zap.Error(err))
			}
			result, err = database.LoadCatalog(cmd.Context(), db)
			if err != nil {
				logg.Fatal("Failed to load stored catalog", zap.Error(err))
			}
			if len(result.Vehicles) == 0 {
				logg.Fatal("Stored catalog is empty, run import first")
			}
		} else {
			var err error
			result, err = buildCatalog(cmd.Context(), cfg, logg)
			if err != nil {
				logg.Fatal("Failed to build catalog", zap.Error(err))
			}
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// Middleware Registration
		// RayID must be first to trace everything
		app.Use(rayid.New())

		// Logging Middleware (Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Auth (protect the API when a key is configured)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 5. Load Features
		mgr := loader.NewManager()
		mgr.Register(serve.NewFeature(result, cfg.Server, logg))
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server",
				zap.String("port", cfg.Server.Port),
				zap.String("run_id", result.RunID),
				zap.Int("vehicles", len(result.Vehicles)))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	serveCmd.Flags().StringVar(&parseShop, "shop", "", "structural tech tree source (path, URL or s3://)")
	serveCmd.Flags().StringVar(&parseEconomy, "economy", "", "economics source (path, URL or s3://)")
	serveCmd.Flags().StringVar(&parseRanks, "ranks", "", "rank gating source (path, URL or s3://)")
	serveCmd.Flags().StringVar(&parseLocale, "locale", "", "localization sheet (path, URL or s3://)")
	serveCmd.Flags().BoolVar(&serveFromDB, "from-db", false, "serve the previously imported catalog from the database")

	RootCmd.AddCommand(serveCmd)
}

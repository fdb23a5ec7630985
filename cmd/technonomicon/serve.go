package main

import (
	"math/rand"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/ericogr/technonomicon/internal/api"
	"github.com/ericogr/technonomicon/internal/config"
	"github.com/ericogr/technonomicon/internal/constants"
	"github.com/ericogr/technonomicon/internal/logging"
	"github.com/ericogr/technonomicon/internal/service"
	"github.com/ericogr/technonomicon/internal/storage"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API for the host game loop.

Configuration comes from the environment:
  TECHNONOMICON_ADDR                 listen address (default :8080)
  TECHNONOMICON_CATALOG              catalog file, JSON or TOML (default: built-in)
  TECHNONOMICON_DB                   SQLite file for save slots (default technonomicon.db)
  TECHNONOMICON_SEED                 fixed RNG seed (0 means random per session)
  TECHNONOMICON_EVOLUTION_THRESHOLD  data needed per library version
  TECHNONOMICON_LOG_LEVEL            debug, info, warn or error
  GIN_MODE                           gin mode (default release)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServerConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Address = addr
			}
			if !cmd.Flags().Changed("log-level") {
				logging.SetLevel(logging.ParseLevel(cfg.LogLevel))
			}
			gin.SetMode(cfg.GinMode)

			lc, err := config.LoadCatalog(cfg.CatalogPath)
			if err != nil {
				logging.Fatal("Missing or invalid catalog", err, logging.Fields{constants.LogFieldPath: cfg.CatalogPath})
			}

			var repo storage.Repository
			if cfg.DBPath != "" {
				db, err := storage.OpenAndMigrate(cfg.DBPath)
				if err != nil {
					logging.Fatal("Failed to initialize database", err, logging.Fields{constants.LogFieldPath: cfg.DBPath})
				}
				repo = storage.NewSQLiteRepository(db)
			}

			manager := service.NewManager(lc, repo, func() service.Options {
				opts := service.Options{EvolutionThreshold: cfg.EvolutionThreshold}
				if cfg.Seed != 0 {
					opts.Rng = rand.New(rand.NewSource(cfg.Seed))
				}
				return opts
			})
			router := api.NewRouter(api.NewSessionHandler(manager, lc))

			logging.Info("Server started", logging.Fields{constants.LogFieldAddr: cfg.Address})
			if err := router.Run(cfg.Address); err != nil {
				logging.Fatal("Failed to start server", err, nil)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides TECHNONOMICON_ADDR")
	return cmd
}

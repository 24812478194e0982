package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/itemsearch/internal/config"
	dbRedis "github.com/kailas-cloud/itemsearch/internal/db/redis"
	logpkg "github.com/kailas-cloud/itemsearch/internal/logger"
	itemrepo "github.com/kailas-cloud/itemsearch/internal/repository/item"
	synonymrepo "github.com/kailas-cloud/itemsearch/internal/repository/synonym"
	"github.com/kailas-cloud/itemsearch/internal/version"
)

func main() {
	app := &app{connect: connectRedis}
	if err := app.rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// connectRedis opens the configured store and returns repositories over it.
func connectRedis(ctx context.Context, cfg config.Config) (*backend, func(), error) {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create database store: %w", err)
	}
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("database not ready: %w", err)
	}

	return &backend{
		items: itemrepo.New(store, itemrepo.Config{
			KeyPrefix:     cfg.Storage.KeyPrefix,
			PageSize:      cfg.Storage.PageSize,
			MaxCandidates: cfg.Storage.MaxCandidates,
		}),
		synonyms: synonymrepo.New(store, cfg.Storage.KeyPrefix),
	}, store.Close, nil
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "itemseed",
		Short: "Seed the itemsearch store with synonym groups and catalog items",
		Long: `itemseed loads YAML seed files into the itemsearch Redis store.

Examples:
  itemseed index                                   # Create the item search index
  itemseed synonyms --file config/synonyms.yaml    # Upsert system synonym groups
  itemseed items --file config/items.example.yaml  # Index and upsert catalog items`,
		Version:      version.String(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.env, "env", config.GetEnv(), "configuration environment (config/<env>.yaml)")

	root.AddCommand(a.indexCmd(), a.synonymsCmd(), a.itemsCmd())
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if a.cfg == nil {
		cfg, err := config.Load(a.env)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		a.cfg = &cfg
	}
	if a.logger == nil {
		logger, err := logpkg.NewLogger(a.env, a.cfg.Logging.Level, zap.String("service", "itemseed"))
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		a.logger = logger
	}
	cmd.SetContext(logpkg.ContextWithLogger(cmd.Context(), a.logger))
	return nil
}

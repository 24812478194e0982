package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/itemsearch/internal/config"
	"github.com/kailas-cloud/itemsearch/internal/domain/item"
	domsyn "github.com/kailas-cloud/itemsearch/internal/domain/synonym"
	"github.com/kailas-cloud/itemsearch/internal/seed"
)

// upsertBatch bounds the number of hashes written per pipeline.
const upsertBatch = 200

type itemWriter interface {
	EnsureIndex(ctx context.Context) error
	RecreateIndex(ctx context.Context) error
	Upsert(ctx context.Context, items ...item.Item) error
}

type synonymWriter interface {
	Upsert(ctx context.Context, groups ...domsyn.Group) error
}

type backend struct {
	items    itemWriter
	synonyms synonymWriter
}

type connectFunc func(ctx context.Context, cfg config.Config) (*backend, func(), error)

type app struct {
	env     string
	cfg     *config.Config
	logger  *zap.Logger
	connect connectFunc
}

func (a *app) withBackend(ctx context.Context, fn func(b *backend) error) error {
	b, closeFn, err := a.connect(ctx, *a.cfg)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(b)
}

func (a *app) indexCmd() *cobra.Command {
	var recreate bool
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Create the item search index if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withBackend(cmd.Context(), func(b *backend) error {
				if recreate {
					if err := b.items.RecreateIndex(cmd.Context()); err != nil {
						return fmt.Errorf("recreate index: %w", err)
					}
					a.logger.Info("Item index recreated")
					return nil
				}
				if err := b.items.EnsureIndex(cmd.Context()); err != nil {
					return fmt.Errorf("ensure index: %w", err)
				}
				a.logger.Info("Item index ready")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&recreate, "recreate", false, "drop and rebuild the index after a schema change")
	return cmd
}

func (a *app) synonymsCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "synonyms",
		Short: "Create or update the system synonym groups from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				file = a.cfg.Synonyms.SeedFile
			}
			if file == "" {
				return fmt.Errorf("--file is required (no synonyms.seed_file configured)")
			}
			groups, err := seed.LoadSynonyms(file)
			if err != nil {
				return err
			}
			return a.withBackend(cmd.Context(), func(b *backend) error {
				for start := 0; start < len(groups); start += upsertBatch {
					end := min(start+upsertBatch, len(groups))
					if err := b.synonyms.Upsert(cmd.Context(), groups[start:end]...); err != nil {
						return fmt.Errorf("upsert synonym groups: %w", err)
					}
				}
				a.logger.Info("Synonym groups seeded", zap.String("file", file), zap.Int("groups", len(groups)))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "synonym seed file (default: synonyms.seed_file from config)")
	return cmd
}

func (a *app) itemsCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Ensure the item index and upsert catalog items from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := seed.LoadItems(file)
			if err != nil {
				return err
			}
			return a.withBackend(cmd.Context(), func(b *backend) error {
				if err := b.items.EnsureIndex(cmd.Context()); err != nil {
					return fmt.Errorf("ensure index: %w", err)
				}
				for start := 0; start < len(items); start += upsertBatch {
					end := min(start+upsertBatch, len(items))
					if err := b.items.Upsert(cmd.Context(), items[start:end]...); err != nil {
						return fmt.Errorf("upsert items: %w", err)
					}
				}
				a.logger.Info("Items seeded", zap.String("file", file), zap.Int("items", len(items)))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "catalog seed file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

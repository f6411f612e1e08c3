package cmd

import (
	"context"

	"techtree/core/config"
	"techtree/core/source"
	"techtree/feature/catalog"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// buildCatalog fetches the four configured sources and runs the pipeline
// over them. Fetches are independent, so they fan out.
func buildCatalog(ctx context.Context, cfg *config.Config, log *zap.Logger) (*catalog.Result, error) {
	fetcher := source.NewFetcher(cfg.Source)

	in := catalog.Inputs{
		ShopFile:    cfg.Source.Shop,
		EconomyFile: cfg.Source.Economy,
		RankFile:    cfg.Source.Ranks,
		LocaleFile:  cfg.Source.Locale,
	}

	g, fetchCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		in.ShopRaw, err = fetcher.Fetch(fetchCtx, cfg.Source.Shop)
		return err
	})
	g.Go(func() error {
		var err error
		in.EconomyRaw, err = fetcher.Fetch(fetchCtx, cfg.Source.Economy)
		return err
	})
	g.Go(func() error {
		var err error
		in.RankRaw, err = fetcher.Fetch(fetchCtx, cfg.Source.Ranks)
		return err
	})
	g.Go(func() error {
		var err error
		in.LocaleRaw, err = fetcher.Fetch(fetchCtx, cfg.Source.Locale)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return catalog.Run(ctx, cfg.Catalog, in, log)
}

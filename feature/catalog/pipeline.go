package catalog

import (
	"context"
	"fmt"

	"techtree/core/blk"
	"techtree/feature/economy"
	"techtree/feature/locale"
	"techtree/feature/rank"
	"techtree/feature/shop"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Inputs carries the four raw source files of one run. File names are kept
// only for error reporting.
type Inputs struct {
	ShopFile string
	ShopRaw  []byte

	EconomyFile string
	EconomyRaw  []byte

	RankFile string
	RankRaw  []byte

	LocaleFile string
	LocaleRaw  []byte
}

// Run executes the full pipeline: parse the four sources, resolve
// identities, derive the dependency graph and merge everything into one
// catalog. Parsing and extraction of the sources is independent, so it
// fans out; identity resolution and merging are order sensitive and run
// sequentially afterwards.
func Run(ctx context.Context, cfg Config, in Inputs, log *zap.Logger) (*Result, error) {
	runID := uuid.NewString()
	log = log.With(zap.String("run_id", runID))

	var (
		structural []shop.Record
		econ       []economy.Record
		gates      []rank.Requirement
		names      *locale.Table
	)

	// gctx is cancelled when any sibling fails; each pass checks it
	// before starting since the parses themselves never block.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		root, err := blk.Parse(in.ShopFile, in.ShopRaw)
		if err != nil {
			return err
		}
		structural, err = shop.Extract(in.ShopFile, root)
		return err
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		root, err := blk.Parse(in.EconomyFile, in.EconomyRaw)
		if err != nil {
			return err
		}
		econ, err = economy.Extract(in.EconomyFile, root)
		return err
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		root, err := blk.Parse(in.RankFile, in.RankRaw)
		if err != nil {
			return err
		}
		gates, err = rank.Extract(in.RankFile, root)
		return err
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		var err error
		names, err = locale.Parse(in.LocaleFile, in.LocaleRaw)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Info("sources parsed",
		zap.Int("vehicles", len(structural)),
		zap.Int("economy_records", len(econ)),
		zap.Int("rank_gates", len(gates)),
		zap.Int("translations", names.Len()))

	res := NewResolver(cfg)
	canonical, raw := canonicalize(res, structural)
	canonical, diags, err := dedupeStructural(canonical)
	if err != nil {
		return nil, err
	}

	edges, err := BuildEdges(in.ShopFile, canonical)
	if err != nil {
		return nil, err
	}

	vehicles, mergeDiags := mergeVehicles(res, canonical, raw, econ, names)
	diags = append(diags, mergeDiags...)

	result := &Result{
		RunID:            runID,
		Vehicles:         vehicles,
		Edges:            edges,
		RankRequirements: mergeRankRequirements(gates),
		Diagnostics:      diags,
	}
	sortResult(result)

	for _, d := range result.Diagnostics {
		log.Warn("diagnostic",
			zap.String("kind", string(d.Kind)),
			zap.String("id", d.ID),
			zap.String("source", d.Source),
			zap.String("detail", d.Detail))
	}
	if cfg.Strict && len(result.Diagnostics) > 0 {
		return nil, fmt.Errorf("strict mode: run produced %d diagnostics", len(result.Diagnostics))
	}

	log.Info("catalog built",
		zap.Int("vehicles", len(result.Vehicles)),
		zap.Int("edges", len(result.Edges)),
		zap.Int("rank_requirements", len(result.RankRequirements)),
		zap.Int("diagnostics", len(result.Diagnostics)))
	return result, nil
}

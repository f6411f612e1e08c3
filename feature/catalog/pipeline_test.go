package catalog

import (
	"context"
	"testing"

	"techtree/core/blk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const pipelineShop = `
country_usa {
    rank {
        tier {
            us_p51 { image:t = "p51" }
            us_f80 { }
        }
    }
    rank {
        tier {
            us_f86 { reqAir:t = "us_f80" }
            us_f89 { gift:b = yes }
        }
    }
}
`

const pipelineEconomy = `
economicRankMax:i = 30
us_p51 { value:i = 10000 reqExp:i = 4000 economicRankHistorical:i = 8 }
us_f80 { value:i = 150000 reqExp:i = 0 economicRankHistorical:i = 17 }
us_f86 { value:i = 390000 reqExp:i = 99000 economicRankHistorical:i = 23 }
us_f89 { value:i = 400000 reqExp:i = 120000 economicRankHistorical:i = 24 }
`

const pipelineRanks = `
country_usa {
    rank { }
    rank { needVehicles:i = 2 }
}
`

const pipelineLocale = `"<ID|readonly|noverify>";"<English>";"<Russian>"
"us_p51_shop";"P-51 Mustang";"P-51 Мустанг"
"us_f80_shop";"F-80 Shooting Star";"F-80"
"us_f86_shop";"F-86 Sabre";"F-86 Сейбр"
"us_f89_shop";"F-89 Scorpion";"F-89 Скорпион"
`

func pipelineInputs() Inputs {
	return Inputs{
		ShopFile: "shop.blk", ShopRaw: []byte(pipelineShop),
		EconomyFile: "economy.blk", EconomyRaw: []byte(pipelineEconomy),
		RankFile: "ranks.blk", RankRaw: []byte(pipelineRanks),
		LocaleFile: "units.csv", LocaleRaw: []byte(pipelineLocale),
	}
}

func TestRunBuildsFullCatalog(t *testing.T) {
	res, err := Run(context.Background(), Config{}, pipelineInputs(), zap.NewNop())
	require.NoError(t, err)
	require.NotEmpty(t, res.RunID)
	require.Len(t, res.Vehicles, 4)

	byID := make(map[string]VehicleRecord, len(res.Vehicles))
	for _, v := range res.Vehicles {
		byID[v.InternalID] = v
	}

	p51 := byID["us_p51"]
	assert.Equal(t, 1, p51.Rank)
	assert.Equal(t, i64(4000), p51.ResearchCostRp)
	assert.Equal(t, i64(10000), p51.PurchaseCostSl)
	// economic rank 8 maps onto the 3.7 rating step
	assert.Equal(t, f64(3.7), p51.BattleRating)
	require.NotNil(t, p51.NameEn)
	assert.Equal(t, "P-51 Mustang", *p51.NameEn)

	// reqExp of zero means the vehicle is not researchable
	assert.Nil(t, byID["us_f80"].ResearchCostRp)

	// premium entries keep their rating but drop costs
	f89 := byID["us_f89"]
	assert.True(t, f89.Premium)
	assert.Nil(t, f89.ResearchCostRp)
	assert.Nil(t, f89.PurchaseCostSl)
	assert.NotNil(t, f89.BattleRating)

	assert.Equal(t, []DependencyEdge{
		{FromID: "us_f80", ToID: "us_f86"},
		{FromID: "us_f86", ToID: "us_f89"},
		{FromID: "us_p51", ToID: "us_f80"},
	}, res.Edges)

	require.Len(t, res.RankRequirements, 1)
	assert.Equal(t, 2, res.RankRequirements[0].Rank)
	assert.Equal(t, i64(2), res.RankRequirements[0].RequiredVehicles)

	assert.Empty(t, res.Diagnostics)
}

func TestRunIsIdempotent(t *testing.T) {
	first, err := Run(context.Background(), Config{}, pipelineInputs(), zap.NewNop())
	require.NoError(t, err)
	second, err := Run(context.Background(), Config{}, pipelineInputs(), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, first.Vehicles, second.Vehicles)
	assert.Equal(t, first.Edges, second.Edges)
	assert.Equal(t, first.RankRequirements, second.RankRequirements)
}

func TestRunSurfacesSyntaxErrors(t *testing.T) {
	in := pipelineInputs()
	in.ShopRaw = []byte("country_usa {")

	_, err := Run(context.Background(), Config{}, in, zap.NewNop())
	var syntaxErr *blk.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, "shop.blk", syntaxErr.File)
}

func TestRunHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Config{}, pipelineInputs(), zap.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunStrictModeFailsOnDiagnostics(t *testing.T) {
	in := pipelineInputs()
	// an economy entry nothing in the tree matches produces a diagnostic
	in.EconomyRaw = []byte(pipelineEconomy + "\nus_ghost { value:i = 1 }\n")

	res, err := Run(context.Background(), Config{}, in, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, DiagUnresolvedID, res.Diagnostics[0].Kind)

	_, err = Run(context.Background(), Config{Strict: true}, in, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strict mode")
}

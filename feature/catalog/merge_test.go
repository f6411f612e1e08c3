package catalog

import (
	"testing"

	"techtree/feature/economy"
	"techtree/feature/locale"
	"techtree/feature/rank"
	"techtree/feature/shop"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func i64(v int64) *int64     { return &v }
func f64(v float64) *float64 { return &v }

func localeTable(t *testing.T, sheet string) *locale.Table {
	t.Helper()
	table, err := locale.Parse("units.csv", []byte(sheet))
	require.NoError(t, err)
	return table
}

const mergeSheet = `"<ID|readonly|noverify>";"<English>";"<Russian>"
"us_p51_shop";"P-51 Mustang";"P-51 Мустанг"
"us_f80_shop";"F-80";""
`

func TestMergeVehiclesJoinsAllSources(t *testing.T) {
	res := NewResolver(Config{})
	structural, raw := canonicalize(res, []shop.Record{
		rec("us_p51", "usa", 1, 1, 1),
	})
	econ := []economy.Record{
		{ID: "us_p51", PurchaseCostSl: i64(10000), ResearchCostRp: i64(4000), BattleRating: f64(3.7)},
	}

	vehicles, diags := mergeVehicles(res, structural, raw, econ, localeTable(t, mergeSheet))
	require.Len(t, vehicles, 1)
	assert.Empty(t, diags)

	v := vehicles[0]
	assert.Equal(t, "us_p51", v.InternalID)
	assert.Equal(t, i64(10000), v.PurchaseCostSl)
	assert.Equal(t, i64(4000), v.ResearchCostRp)
	assert.Equal(t, f64(3.7), v.BattleRating)
	require.NotNil(t, v.NameEn)
	assert.Equal(t, "P-51 Mustang", *v.NameEn)
	require.NotNil(t, v.NameRu)
	assert.Equal(t, "P-51 Мустанг", *v.NameRu)
}

func TestMergeVehiclesPremiumCostsStayUnset(t *testing.T) {
	res := NewResolver(Config{})
	structural, raw := canonicalize(res, []shop.Record{
		{ID: "us_p51", Country: "usa", Rank: 1, TierRow: 1, TierColumn: 1, Premium: true},
	})
	econ := []economy.Record{
		{ID: "us_p51", PurchaseCostSl: i64(10000), ResearchCostRp: i64(4000), BattleRating: f64(3.7)},
	}

	vehicles, _ := mergeVehicles(res, structural, raw, econ, localeTable(t, mergeSheet))
	require.Len(t, vehicles, 1)
	assert.Nil(t, vehicles[0].PurchaseCostSl)
	assert.Nil(t, vehicles[0].ResearchCostRp)
	// the matchmaking value is unrelated to research costs
	assert.Equal(t, f64(3.7), vehicles[0].BattleRating)
}

func TestMergeVehiclesMissingEconomyIsExempt(t *testing.T) {
	res := NewResolver(Config{})
	structural, raw := canonicalize(res, []shop.Record{
		rec("us_p51", "usa", 1, 1, 1),
	})

	vehicles, diags := mergeVehicles(res, structural, raw, nil, localeTable(t, mergeSheet))
	require.Len(t, vehicles, 1)
	assert.Nil(t, vehicles[0].ResearchCostRp)
	require.Len(t, diags, 1)
	assert.Equal(t, DiagEconomyExempt, diags[0].Kind)
	assert.Equal(t, "us_p51", diags[0].ID)
}

func TestMergeVehiclesMissingTranslation(t *testing.T) {
	res := NewResolver(Config{})
	structural, raw := canonicalize(res, []shop.Record{
		rec("us_f80", "usa", 1, 1, 1),
	})
	econ := []economy.Record{{ID: "us_f80", BattleRating: f64(7.0)}}

	vehicles, diags := mergeVehicles(res, structural, raw, econ, localeTable(t, mergeSheet))
	require.Len(t, vehicles, 1)
	require.NotNil(t, vehicles[0].NameEn)
	assert.Nil(t, vehicles[0].NameRu)
	require.Len(t, diags, 1)
	assert.Equal(t, DiagMissingTranslation, diags[0].Kind)
}

func TestMergeVehiclesUnresolvedEconomyID(t *testing.T) {
	res := NewResolver(Config{})
	structural, raw := canonicalize(res, []shop.Record{
		rec("us_p51", "usa", 1, 1, 1),
	})
	econ := []economy.Record{
		{ID: "us_p51", BattleRating: f64(3.7)},
		{ID: "us_ghost", BattleRating: f64(1.0)},
	}

	_, diags := mergeVehicles(res, structural, raw, econ, localeTable(t, mergeSheet))
	require.Len(t, diags, 1)
	assert.Equal(t, DiagUnresolvedID, diags[0].Kind)
	assert.Equal(t, "us_ghost", diags[0].ID)
}

func TestDedupeStructuralDropsExactDuplicates(t *testing.T) {
	records := []shop.Record{
		rec("us_p51", "usa", 1, 1, 1),
		rec("us_p51", "usa", 1, 1, 1),
	}

	out, diags, err := dedupeStructural(records)
	require.NoError(t, err)
	assert.Len(t, out, 1)
	require.Len(t, diags, 1)
	assert.Equal(t, DiagDroppedCandidate, diags[0].Kind)
}

func TestDedupeStructuralConflictIsFatal(t *testing.T) {
	records := []shop.Record{
		rec("us_p51", "usa", 1, 1, 1),
		rec("us_p51", "usa", 2, 1, 1),
	}

	_, _, err := dedupeStructural(records)
	var integrity *IntegrityError
	require.ErrorAs(t, err, &integrity)
	assert.Contains(t, integrity.Reason, "us_p51")
}

func TestCanonicalizeFoldsReferences(t *testing.T) {
	res := NewResolver(Config{})
	out, raw := canonicalize(res, []shop.Record{
		rec("us_p51", "usa", 1, 1, 1),
		{ID: "US_F-80", Country: "usa", Rank: 1, TierRow: 1, TierColumn: 2, Req: strptr("US_P51")},
	})

	require.Len(t, out, 2)
	assert.Equal(t, "us_f_80", out[1].ID)
	require.NotNil(t, out[1].Req)
	assert.Equal(t, "us_p51", *out[1].Req)
	assert.Equal(t, "US_F-80", raw["us_f_80"])
}

func TestMergeRankRequirements(t *testing.T) {
	out := mergeRankRequirements([]rank.Requirement{
		{Country: "usa", Rank: 2, RequiredVehicles: i64(3)},
		{Country: "usa", Rank: 3, RequiredPoints: i64(11000)},
	})
	require.Len(t, out, 2)
	assert.Equal(t, i64(3), out[0].RequiredVehicles)
	assert.Nil(t, out[0].RequiredPoints)
	assert.Equal(t, i64(11000), out[1].RequiredPoints)
}

func TestSortResultIsDeterministic(t *testing.T) {
	r := &Result{
		Vehicles: []VehicleRecord{
			{InternalID: "b", Country: "usa", Rank: 1, TierRow: 2, TierColumn: 1},
			{InternalID: "a", Country: "usa", Rank: 1, TierRow: 1, TierColumn: 1},
			{InternalID: "x", Country: "germany", Rank: 1, TierRow: 1, TierColumn: 1},
		},
		Edges: []DependencyEdge{
			{FromID: "b", ToID: "c"},
			{FromID: "a", ToID: "b"},
		},
		RankRequirements: []RankRequirement{
			{Country: "usa", Rank: 3},
			{Country: "usa", Rank: 2},
		},
	}
	sortResult(r)

	assert.Equal(t, "x", r.Vehicles[0].InternalID)
	assert.Equal(t, "a", r.Vehicles[1].InternalID)
	assert.Equal(t, "b", r.Vehicles[2].InternalID)
	assert.Equal(t, "a", r.Edges[0].FromID)
	assert.Equal(t, 2, r.RankRequirements[0].Rank)
}

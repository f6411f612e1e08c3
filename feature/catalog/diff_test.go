package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffResultsIdenticalCatalogs(t *testing.T) {
	a := &Result{
		Vehicles: []VehicleRecord{
			{InternalID: "us_p51", Country: "usa", Rank: 1, TierRow: 1, TierColumn: 1, ResearchCostRp: i64(4000)},
		},
		Edges:            []DependencyEdge{{FromID: "us_p51", ToID: "us_f80"}},
		RankRequirements: []RankRequirement{{Country: "usa", Rank: 2, RequiredVehicles: i64(2)}},
	}
	b := &Result{
		Vehicles: []VehicleRecord{
			{InternalID: "us_p51", Country: "usa", Rank: 1, TierRow: 1, TierColumn: 1, ResearchCostRp: i64(4000)},
		},
		Edges:            []DependencyEdge{{FromID: "us_p51", ToID: "us_f80"}},
		RankRequirements: []RankRequirement{{Country: "usa", Rank: 2, RequiredVehicles: i64(2)}},
	}

	assert.True(t, DiffResults(a, b).Empty())
}

func TestDiffResultsDetectsChanges(t *testing.T) {
	stored := &Result{
		Vehicles: []VehicleRecord{
			{InternalID: "us_p51", Country: "usa", Rank: 1, TierRow: 1, TierColumn: 1, ResearchCostRp: i64(4000)},
			{InternalID: "us_f80", Country: "usa", Rank: 1, TierRow: 1, TierColumn: 2},
		},
		Edges:            []DependencyEdge{{FromID: "us_p51", ToID: "us_f80"}},
		RankRequirements: []RankRequirement{{Country: "usa", Rank: 2, RequiredVehicles: i64(2)}},
	}
	fresh := &Result{
		Vehicles: []VehicleRecord{
			// cost changed
			{InternalID: "us_p51", Country: "usa", Rank: 1, TierRow: 1, TierColumn: 1, ResearchCostRp: i64(5000)},
			// new vehicle, us_f80 gone
			{InternalID: "us_f86", Country: "usa", Rank: 1, TierRow: 1, TierColumn: 2},
		},
		Edges:            []DependencyEdge{{FromID: "us_p51", ToID: "us_f86"}},
		RankRequirements: []RankRequirement{{Country: "usa", Rank: 2, RequiredVehicles: i64(3)}},
	}

	d := DiffResults(stored, fresh)
	assert.False(t, d.Empty())
	assert.Equal(t, []string{"us_f86"}, d.AddedVehicles)
	assert.Equal(t, []string{"us_f80"}, d.RemovedVehicles)
	assert.Equal(t, []string{"us_p51"}, d.ChangedVehicles)
	assert.Equal(t, []DependencyEdge{{FromID: "us_p51", ToID: "us_f86"}}, d.AddedEdges)
	assert.Equal(t, []DependencyEdge{{FromID: "us_p51", ToID: "us_f80"}}, d.RemovedEdges)
	assert.Equal(t, []string{"usa/2"}, d.ChangedRankRequirements)
}

func TestDiffResultsNilVersusSetAttribute(t *testing.T) {
	stored := &Result{Vehicles: []VehicleRecord{
		{InternalID: "us_p51", Country: "usa", Rank: 1, TierRow: 1, TierColumn: 1},
	}}
	fresh := &Result{Vehicles: []VehicleRecord{
		{InternalID: "us_p51", Country: "usa", Rank: 1, TierRow: 1, TierColumn: 1, BattleRating: f64(3.7)},
	}}

	d := DiffResults(stored, fresh)
	assert.Equal(t, []string{"us_p51"}, d.ChangedVehicles)
}

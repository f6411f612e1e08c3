package catalog

import (
	"testing"

	"techtree/core/blk"
	"techtree/feature/shop"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func rec(id, country string, rank, row, col int) shop.Record {
	return shop.Record{ID: id, Country: country, Rank: rank, TierRow: row, TierColumn: col}
}

func TestBuildEdgesChainsByTreePosition(t *testing.T) {
	records := []shop.Record{
		rec("a", "usa", 1, 1, 1),
		rec("b", "usa", 1, 1, 2),
		rec("c", "usa", 1, 2, 1),
	}

	edges, err := BuildEdges("shop.blk", records)
	require.NoError(t, err)
	assert.Equal(t, []DependencyEdge{
		{FromID: "a", ToID: "b"},
		{FromID: "b", ToID: "c"},
	}, edges)
}

func TestBuildEdgesSourceOrderDoesNotMatter(t *testing.T) {
	// same records, shuffled: the chain follows (tier row, tier column)
	records := []shop.Record{
		rec("c", "usa", 1, 2, 1),
		rec("a", "usa", 1, 1, 1),
		rec("b", "usa", 1, 1, 2),
	}

	edges, err := BuildEdges("shop.blk", records)
	require.NoError(t, err)
	assert.Equal(t, []DependencyEdge{
		{FromID: "a", ToID: "b"},
		{FromID: "b", ToID: "c"},
	}, edges)
}

func TestBuildEdgesExplicitReferenceOverridesAdjacency(t *testing.T) {
	records := []shop.Record{
		rec("a", "usa", 1, 1, 1),
		rec("b", "usa", 1, 1, 2),
		{ID: "c", Country: "usa", Rank: 1, TierRow: 2, TierColumn: 1, Req: strptr("a")},
	}

	edges, err := BuildEdges("shop.blk", records)
	require.NoError(t, err)
	assert.Equal(t, []DependencyEdge{
		{FromID: "a", ToID: "b"},
		{FromID: "a", ToID: "c"},
	}, edges)
}

func TestBuildEdgesEmptyReferenceMeansFree(t *testing.T) {
	records := []shop.Record{
		rec("a", "usa", 1, 1, 1),
		{ID: "b", Country: "usa", Rank: 1, TierRow: 1, TierColumn: 2, Req: strptr("")},
		rec("c", "usa", 1, 1, 3),
	}

	edges, err := BuildEdges("shop.blk", records)
	require.NoError(t, err)
	// b has no predecessor, c still chains off its neighbour b
	assert.Equal(t, []DependencyEdge{
		{FromID: "b", ToID: "c"},
	}, edges)
}

func TestBuildEdgesCrossRankNeedsExplicitReference(t *testing.T) {
	records := []shop.Record{
		rec("a", "usa", 1, 1, 1),
		rec("b", "usa", 2, 1, 1),
	}

	_, err := BuildEdges("shop.blk", records)
	var shapeErr *blk.ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "usa/rank[2]/b", shapeErr.Path)
}

func TestBuildEdgesCrossRankWithReference(t *testing.T) {
	records := []shop.Record{
		rec("a", "usa", 1, 1, 1),
		{ID: "b", Country: "usa", Rank: 2, TierRow: 1, TierColumn: 1, Req: strptr("a")},
		rec("c", "usa", 2, 1, 2),
	}

	edges, err := BuildEdges("shop.blk", records)
	require.NoError(t, err)
	assert.Equal(t, []DependencyEdge{
		{FromID: "a", ToID: "b"},
		{FromID: "b", ToID: "c"},
	}, edges)
}

func TestBuildEdgesUnknownReference(t *testing.T) {
	records := []shop.Record{
		{ID: "a", Country: "usa", Rank: 1, TierRow: 1, TierColumn: 1, Req: strptr("ghost")},
	}

	_, err := BuildEdges("shop.blk", records)
	var integrity *IntegrityError
	require.ErrorAs(t, err, &integrity)
	assert.Contains(t, integrity.Reason, "ghost")
}

func TestBuildEdgesCycleIsFatal(t *testing.T) {
	records := []shop.Record{
		{ID: "a", Country: "usa", Rank: 1, TierRow: 1, TierColumn: 1, Req: strptr("b")},
		{ID: "b", Country: "usa", Rank: 1, TierRow: 1, TierColumn: 2, Req: strptr("a")},
	}

	_, err := BuildEdges("shop.blk", records)
	var integrity *IntegrityError
	require.ErrorAs(t, err, &integrity)
	assert.Contains(t, integrity.Reason, "cycle")
}

func TestBuildEdgesCountriesAreIndependent(t *testing.T) {
	records := []shop.Record{
		rec("a", "usa", 1, 1, 1),
		rec("x", "ussr", 1, 1, 1),
		rec("y", "ussr", 1, 1, 2),
	}

	edges, err := BuildEdges("shop.blk", records)
	require.NoError(t, err)
	assert.Equal(t, []DependencyEdge{
		{FromID: "x", ToID: "y"},
	}, edges)
}

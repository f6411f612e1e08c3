package shop

import (
	"errors"
	"testing"

	"techtree/core/blk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *blk.Node {
	t.Helper()
	root, err := blk.Parse("shop.blk", []byte(src))
	require.NoError(t, err)
	return root
}

func TestExtract_PositionsFromOrder(t *testing.T) {
	root := parse(t, `
country_usa {
    rank {
        tier {
            a { reqAir:t = "" }
            b { }
        }
        tier {
            c { reqAir:t = "b" }
        }
    }
}
`)
	recs, err := Extract("shop.blk", root)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	a, b, c := recs[0], recs[1], recs[2]

	assert.Equal(t, "a", a.ID)
	assert.Equal(t, "usa", a.Country)
	assert.Equal(t, 1, a.Rank)
	assert.Equal(t, 1, a.TierRow)
	assert.Equal(t, 1, a.TierColumn)
	require.NotNil(t, a.Req)
	assert.Empty(t, *a.Req)

	assert.Equal(t, 2, b.TierColumn)
	assert.Nil(t, b.Req)

	assert.Equal(t, 2, c.TierRow)
	assert.Equal(t, 1, c.TierColumn)
	require.NotNil(t, c.Req)
	assert.Equal(t, "b", *c.Req)
}

func TestExtract_ReorderingChangesCoordinates(t *testing.T) {
	recs, err := Extract("shop.blk", parse(t, `
country_usa { rank { tier { b { } a { } } } }
`))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "b", recs[0].ID)
	assert.Equal(t, 1, recs[0].TierColumn)
	assert.Equal(t, "a", recs[1].ID)
	assert.Equal(t, 2, recs[1].TierColumn)
}

func TestExtract_PremiumMarkers(t *testing.T) {
	recs, err := Extract("shop.blk", parse(t, `
country_germany {
    rank {
        tier {
            plain { }
            gifted { gift:t = "event_2024" }
            market { marketplaceItemdefId:i = 120 }
        }
    }
}
`))
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.False(t, recs[0].Premium)
	assert.True(t, recs[1].Premium)
	assert.True(t, recs[2].Premium)
}

func TestExtract_MultipleCountries(t *testing.T) {
	recs, err := Extract("shop.blk", parse(t, `
country_usa { rank { tier { a { } } } }
country_ussr { rank { tier { x { } } } rank { tier { y { } } } }
`))
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "usa", recs[0].Country)
	assert.Equal(t, "ussr", recs[1].Country)
	assert.Equal(t, 1, recs[1].Rank)
	assert.Equal(t, "y", recs[2].ID)
	assert.Equal(t, 2, recs[2].Rank)
}

func TestExtract_ShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		path string
	}{
		{"scalar at root", `version:i = 1`, "version"},
		{"scalar where rank expected", `country_usa { flag:t = "x" }`, "country_usa/flag"},
		{"scalar where tier expected", `country_usa { rank { n:i = 1 } }`, "country_usa/rank[1]/n"},
		{"scalar where vehicle expected", `country_usa { rank { tier { v:i = 2 } } }`, "country_usa/rank[1]/tier[1]/v"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract("shop.blk", parse(t, tt.src))
			require.Error(t, err)

			var serr *blk.ShapeError
			require.True(t, errors.As(err, &serr), "expected *blk.ShapeError, got %T", err)
			assert.Equal(t, "shop.blk", serr.File)
			assert.Equal(t, tt.path, serr.Path)
		})
	}
}

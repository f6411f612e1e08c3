package economy

import (
	"math"
	"strings"

	"techtree/core/blk"
)

// Record is the economic profile of one vehicle. All fields except the id
// are optional: a nil pointer means the source did not carry the value,
// which is distinct from a real zero cost.
type Record struct {
	// ID is the raw internal identifier from the block name.
	ID string
	// PurchaseCostSl is the silver lion purchase price.
	PurchaseCostSl *int64
	// ResearchCostRp is the research point cost. A source value of zero
	// means "not researchable" and is reported as unset.
	ResearchCostRp *int64
	// BattleRating is derived from the vehicle's historical economic rank.
	BattleRating *float64
}

// serviceKeyPrefix marks top level scalar entries that describe the economy
// table itself rather than a vehicle.
const serviceKeyPrefix = "economicRank"

// Extract projects the economics tree into per-vehicle records.
//
// The expected shape is a flat list of vehicle-id-named blocks carrying
// numeric keys. Top level scalars prefixed economicRank are table metadata
// and skipped; any other scalar at the top level is a shape violation.
func Extract(file string, root *blk.Node) ([]Record, error) {
	var out []Record
	for _, child := range root.Children {
		if !child.IsBlock() {
			if strings.HasPrefix(child.Name, serviceKeyPrefix) {
				continue
			}
			return nil, blk.ShapeErr(file, child.Name, "a vehicle block", child.Kind.String())
		}
		rec := Record{ID: child.Name}
		if sl, ok := child.Int("value"); ok {
			rec.PurchaseCostSl = &sl
		}
		if rp, ok := child.Int("reqExp"); ok && rp > 0 {
			rec.ResearchCostRp = &rp
		}
		if er, ok := child.Int("economicRankHistorical"); ok && er > 0 {
			br := BattleRating(er)
			rec.BattleRating = &br
		}
		out = append(out, rec)
	}
	return out, nil
}

// BattleRating converts an economic rank into the in-game battle rating.
// The raw value rank/3+1 is snapped to the nearest step of the X.0 / X.3 /
// X.7 ladder the game uses.
func BattleRating(economicRank int64) float64 {
	raw := float64(economicRank)/3 + 1
	base := math.Floor(raw)

	steps := [4]float64{base, base + 0.3, base + 0.7, base + 1}
	best := steps[0]
	for _, s := range steps[1:] {
		if math.Abs(s-raw) < math.Abs(best-raw) {
			best = s
		}
	}
	return best
}

package rank

import (
	"fmt"
	"strings"

	"techtree/core/blk"
)

// Requirement is the gate a player must pass to unlock a rank within one
// nation's progression. Exactly one of the two thresholds is set.
type Requirement struct {
	// Country is the nation id with the country_ prefix stripped.
	Country string
	// Rank is the 1-based ordinal of the rank block within its country.
	Rank int
	// RequiredVehicles is the number of researched vehicles needed in the
	// previous rank.
	RequiredVehicles *int64
	// RequiredPoints is the research point threshold variant of the gate.
	RequiredPoints *int64
}

// Extract projects the rank gating tree into requirements.
//
// The expected shape is root → country blocks → ordered rank blocks with
// needVehicles or needPoints scalars. Rank blocks without a positive gate
// value produce no requirement (the rank is open from the start).
func Extract(file string, root *blk.Node) ([]Requirement, error) {
	var out []Requirement
	for _, country := range root.Children {
		if !country.IsBlock() {
			return nil, blk.ShapeErr(file, country.Name, "a country block", country.Kind.String())
		}
		nation := strings.TrimPrefix(country.Name, "country_")
		ord := 0
		for _, rk := range country.Children {
			if !rk.IsBlock() {
				return nil, blk.ShapeErr(file,
					fmt.Sprintf("%s/%s", country.Name, rk.Name),
					"a rank block", rk.Kind.String())
			}
			ord++
			req := Requirement{Country: nation, Rank: ord}
			if v, ok := rk.Int("needVehicles"); ok && v > 0 {
				req.RequiredVehicles = &v
			}
			if p, ok := rk.Int("needPoints"); ok && p > 0 {
				req.RequiredPoints = &p
			}
			if req.RequiredVehicles == nil && req.RequiredPoints == nil {
				continue
			}
			out = append(out, req)
		}
	}
	return out, nil
}

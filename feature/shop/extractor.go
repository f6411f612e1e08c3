package shop

import (
	"fmt"
	"strings"

	"techtree/core/blk"
)

// Record is one vehicle entry projected out of the structural shop tree.
// Positions are 1-based ordinals taken directly from source order.
type Record struct {
	// ID is the raw internal identifier from the block name, not yet
	// canonicalized.
	ID string
	// Country is the nation id with the country_ prefix stripped.
	Country string
	// Rank is the ordinal of the rank block within its country.
	Rank int
	// TierRow is the ordinal of the tier block within its rank.
	TierRow int
	// TierColumn is the ordinal of the vehicle block within its tier.
	TierColumn int
	// Req is the explicit predecessor reference carried by the entry.
	// nil means the entry carries none and the unlock chain is derived
	// from tree position; an empty string means the entry is explicitly
	// free of prerequisites.
	Req *string
	// Premium marks reward/premium entries that are exempt from the
	// research economy.
	Premium bool
	// Image is the optional shop icon reference.
	Image string
}

// premiumMarkers are the entry keys whose mere presence marks a vehicle as
// premium/reward content.
var premiumMarkers = []string{
	"gift",
	"showOnlyWhenBought",
	"marketplaceItemdefId",
	"event",
	"isClanVehicle",
}

// Extract walks a parsed shop tree and flattens it into structural records.
//
// The expected shape is fixed: root holds country blocks, countries hold
// ordered rank blocks, ranks hold ordered tier blocks, tiers hold vehicle
// blocks. A scalar found at any of those levels means the upstream format
// changed and yields a *blk.ShapeError.
func Extract(file string, root *blk.Node) ([]Record, error) {
	var out []Record
	for _, country := range root.Children {
		if !country.IsBlock() {
			return nil, blk.ShapeErr(file, country.Name, "a country block", country.Kind.String())
		}
		nation := strings.TrimPrefix(country.Name, "country_")
		rankOrd := 0
		for _, rank := range country.Children {
			if !rank.IsBlock() {
				return nil, blk.ShapeErr(file, path(country.Name, rank.Name), "a rank block", rank.Kind.String())
			}
			rankOrd++
			tierOrd := 0
			for _, tier := range rank.Children {
				if !tier.IsBlock() {
					return nil, blk.ShapeErr(file, path(country.Name, ordinal(rank.Name, rankOrd), tier.Name), "a tier block", tier.Kind.String())
				}
				tierOrd++
				colOrd := 0
				for _, vehicle := range tier.Children {
					if !vehicle.IsBlock() {
						return nil, blk.ShapeErr(file,
							path(country.Name, ordinal(rank.Name, rankOrd), ordinal(tier.Name, tierOrd), vehicle.Name),
							"a vehicle block", vehicle.Kind.String())
					}
					colOrd++
					out = append(out, newRecord(vehicle, nation, rankOrd, tierOrd, colOrd))
				}
			}
		}
	}
	return out, nil
}

func newRecord(vehicle *blk.Node, nation string, rank, row, col int) Record {
	rec := Record{
		ID:         vehicle.Name,
		Country:    nation,
		Rank:       rank,
		TierRow:    row,
		TierColumn: col,
	}
	if req, ok := vehicle.Str("reqAir"); ok {
		rec.Req = &req
	}
	if img, ok := vehicle.Str("image"); ok {
		rec.Image = img
	}
	for _, marker := range premiumMarkers {
		if vehicle.Has(marker) {
			rec.Premium = true
			break
		}
	}
	return rec
}

func path(parts ...string) string {
	return strings.Join(parts, "/")
}

func ordinal(name string, n int) string {
	return fmt.Sprintf("%s[%d]", name, n)
}

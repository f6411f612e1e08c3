package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// CSV column layouts of the three export files. Optional attributes render
// as empty cells so a database import can map them to NULL.
var (
	vehicleColumns = []string{
		"internal_id", "country", "rank", "tier_row", "tier_column",
		"research_cost_rp", "purchase_cost_sl", "battle_rating",
		"premium", "name_ru", "name_en",
	}
	edgeColumns = []string{"from_id", "to_id"}
	rankColumns = []string{"country", "rank", "required_vehicles", "required_points"}
)

// WriteVehiclesCSV renders the merged vehicle set.
func WriteVehiclesCSV(w io.Writer, vehicles []VehicleRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(vehicleColumns); err != nil {
		return fmt.Errorf("writing vehicles csv: %w", err)
	}
	for _, v := range vehicles {
		row := []string{
			v.InternalID,
			v.Country,
			strconv.Itoa(v.Rank),
			strconv.Itoa(v.TierRow),
			strconv.Itoa(v.TierColumn),
			optInt(v.ResearchCostRp),
			optInt(v.PurchaseCostSl),
			optFloat(v.BattleRating),
			strconv.FormatBool(v.Premium),
			optStr(v.NameRu),
			optStr(v.NameEn),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing vehicles csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEdgesCSV renders the unlock dependency pairs.
func WriteEdgesCSV(w io.Writer, edges []DependencyEdge) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(edgeColumns); err != nil {
		return fmt.Errorf("writing dependencies csv: %w", err)
	}
	for _, e := range edges {
		if err := cw.Write([]string{e.FromID, e.ToID}); err != nil {
			return fmt.Errorf("writing dependencies csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRankRequirementsCSV renders the per-nation rank gates.
func WriteRankRequirementsCSV(w io.Writer, reqs []RankRequirement) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rankColumns); err != nil {
		return fmt.Errorf("writing rank requirements csv: %w", err)
	}
	for _, r := range reqs {
		row := []string{
			r.Country,
			strconv.Itoa(r.Rank),
			optInt(r.RequiredVehicles),
			optInt(r.RequiredPoints),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing rank requirements csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func optInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func optFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}

func optStr(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

package catalog

import (
	"sort"

	"techtree/feature/economy"
	"techtree/feature/locale"
	"techtree/feature/rank"
	"techtree/feature/shop"
)

// canonicalize rewrites structural ids and unlock references onto canonical
// ids. The structural source registers first, so its spellings become the
// canonical ones. The returned map remembers the original spelling of each
// canonical id for localization fallback lookups.
func canonicalize(res *Resolver, records []shop.Record) ([]shop.Record, map[string]string) {
	raw := make(map[string]string, len(records))
	out := make([]shop.Record, 0, len(records))
	for _, rec := range records {
		c, _ := res.Resolve(rec.ID)
		if _, seen := raw[c]; !seen {
			raw[c] = rec.ID
		}
		rec.ID = c
		if rec.Req != nil && *rec.Req != "" {
			ref, _ := res.Resolve(*rec.Req)
			rec.Req = &ref
		}
		out = append(out, rec)
	}
	return out, raw
}

// dedupeStructural collapses repeated canonical ids. An exact duplicate is
// dropped with a diagnostic; two entries claiming the same id with
// different placements contradict each other and fail the run.
func dedupeStructural(records []shop.Record) ([]shop.Record, []Diagnostic, error) {
	byID := make(map[string]shop.Record, len(records))
	out := records[:0]
	var diags []Diagnostic
	for _, rec := range records {
		prev, seen := byID[rec.ID]
		if !seen {
			byID[rec.ID] = rec
			out = append(out, rec)
			continue
		}
		if sameStructural(prev, rec) {
			diags = append(diags, Diagnostic{
				Kind:   DiagDroppedCandidate,
				ID:     rec.ID,
				Source: "shop",
				Detail: "exact duplicate entry dropped",
			})
			continue
		}
		return nil, nil, integrityErr("vehicle %q appears twice with conflicting placements", rec.ID)
	}
	return out, diags, nil
}

func sameStructural(a, b shop.Record) bool {
	if a.ID != b.ID || a.Country != b.Country || a.Rank != b.Rank ||
		a.TierRow != b.TierRow || a.TierColumn != b.TierColumn ||
		a.Premium != b.Premium || a.Image != b.Image {
		return false
	}
	switch {
	case a.Req == nil && b.Req == nil:
		return true
	case a.Req == nil || b.Req == nil:
		return false
	default:
		return *a.Req == *b.Req
	}
}

// mergeVehicles joins the structural skeleton with the economic and
// localized attributes. The structural source decides which vehicles exist;
// the other sources only decorate them.
func mergeVehicles(res *Resolver, structural []shop.Record, raw map[string]string,
	econ []economy.Record, names *locale.Table) ([]VehicleRecord, []Diagnostic) {

	var diags []Diagnostic

	econByID := make(map[string]economy.Record, len(econ))
	for _, e := range econ {
		c, ok := res.Known(e.ID)
		if !ok {
			diags = append(diags, Diagnostic{
				Kind:   DiagUnresolvedID,
				ID:     e.ID,
				Source: "economy",
				Detail: "no structural vehicle matches this id",
			})
			continue
		}
		if _, dup := econByID[c]; !dup {
			econByID[c] = e
		}
	}

	out := make([]VehicleRecord, 0, len(structural))
	for _, rec := range structural {
		v := VehicleRecord{
			InternalID: rec.ID,
			Country:    rec.Country,
			Rank:       rec.Rank,
			TierRow:    rec.TierRow,
			TierColumn: rec.TierColumn,
			Premium:    rec.Premium,
		}

		if e, ok := econByID[rec.ID]; ok {
			v.ResearchCostRp = e.ResearchCostRp
			v.PurchaseCostSl = e.PurchaseCostSl
			v.BattleRating = e.BattleRating
		} else {
			diags = append(diags, Diagnostic{
				Kind:   DiagEconomyExempt,
				ID:     rec.ID,
				Source: "economy",
				Detail: "vehicle absent from the economics source",
			})
		}
		if rec.Premium {
			// premium content sits outside the research economy; its
			// battle rating still applies
			v.ResearchCostRp = nil
			v.PurchaseCostSl = nil
		}

		n, ok := names.Lookup(rec.ID)
		if !ok {
			n, ok = names.Lookup(raw[rec.ID])
		}
		if ok && n.En != "" {
			en := n.En
			v.NameEn = &en
		}
		if ok && n.Ru != "" {
			ru := n.Ru
			v.NameRu = &ru
		}
		if v.NameEn == nil || v.NameRu == nil {
			diags = append(diags, Diagnostic{
				Kind:   DiagMissingTranslation,
				ID:     rec.ID,
				Source: "locale",
				Detail: "no localized name for at least one language",
			})
		}

		out = append(out, v)
	}
	return out, diags
}

// mergeRankRequirements maps the rank gates onto catalog records. No join
// is needed, the source is already keyed by (country, rank).
func mergeRankRequirements(reqs []rank.Requirement) []RankRequirement {
	out := make([]RankRequirement, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, RankRequirement{
			Country:          r.Country,
			Rank:             r.Rank,
			RequiredVehicles: r.RequiredVehicles,
			RequiredPoints:   r.RequiredPoints,
		})
	}
	return out
}

// sortResult orders every record set so repeated runs over the same inputs
// produce byte identical output.
func sortResult(res *Result) {
	sort.Slice(res.Vehicles, func(i, j int) bool {
		a, b := res.Vehicles[i], res.Vehicles[j]
		if a.Country != b.Country {
			return a.Country < b.Country
		}
		if a.Rank != b.Rank {
			return a.Rank < b.Rank
		}
		if a.TierRow != b.TierRow {
			return a.TierRow < b.TierRow
		}
		return a.TierColumn < b.TierColumn
	})
	sort.Slice(res.Edges, func(i, j int) bool {
		a, b := res.Edges[i], res.Edges[j]
		if a.FromID != b.FromID {
			return a.FromID < b.FromID
		}
		return a.ToID < b.ToID
	})
	sort.Slice(res.RankRequirements, func(i, j int) bool {
		a, b := res.RankRequirements[i], res.RankRequirements[j]
		if a.Country != b.Country {
			return a.Country < b.Country
		}
		return a.Rank < b.Rank
	})
}

package catalog

import "fmt"

// DiffSummary describes how a freshly built catalog differs from a stored
// one. It powers dry-run imports: operators can see what an import would
// change before any row is written.
type DiffSummary struct {
	AddedVehicles   []string
	RemovedVehicles []string
	ChangedVehicles []string

	AddedEdges   []DependencyEdge
	RemovedEdges []DependencyEdge

	ChangedRankRequirements []string
}

// Empty reports whether the two catalogs are identical.
func (d DiffSummary) Empty() bool {
	return len(d.AddedVehicles) == 0 && len(d.RemovedVehicles) == 0 &&
		len(d.ChangedVehicles) == 0 && len(d.AddedEdges) == 0 &&
		len(d.RemovedEdges) == 0 && len(d.ChangedRankRequirements) == 0
}

// DiffResults compares a stored catalog against a freshly built one.
// Both inputs are expected in canonical sort order, which every pipeline
// result and database load guarantees.
func DiffResults(stored, fresh *Result) DiffSummary {
	var d DiffSummary

	storedByID := make(map[string]VehicleRecord, len(stored.Vehicles))
	for _, v := range stored.Vehicles {
		storedByID[v.InternalID] = v
	}
	freshIDs := make(map[string]struct{}, len(fresh.Vehicles))
	for _, v := range fresh.Vehicles {
		freshIDs[v.InternalID] = struct{}{}
		prev, ok := storedByID[v.InternalID]
		switch {
		case !ok:
			d.AddedVehicles = append(d.AddedVehicles, v.InternalID)
		case !sameVehicle(prev, v):
			d.ChangedVehicles = append(d.ChangedVehicles, v.InternalID)
		}
	}
	for _, v := range stored.Vehicles {
		if _, ok := freshIDs[v.InternalID]; !ok {
			d.RemovedVehicles = append(d.RemovedVehicles, v.InternalID)
		}
	}

	storedEdges := make(map[DependencyEdge]struct{}, len(stored.Edges))
	for _, e := range stored.Edges {
		storedEdges[e] = struct{}{}
	}
	freshEdges := make(map[DependencyEdge]struct{}, len(fresh.Edges))
	for _, e := range fresh.Edges {
		freshEdges[e] = struct{}{}
		if _, ok := storedEdges[e]; !ok {
			d.AddedEdges = append(d.AddedEdges, e)
		}
	}
	for _, e := range stored.Edges {
		if _, ok := freshEdges[e]; !ok {
			d.RemovedEdges = append(d.RemovedEdges, e)
		}
	}

	storedGates := make(map[string]RankRequirement, len(stored.RankRequirements))
	for _, r := range stored.RankRequirements {
		storedGates[gateKey(r)] = r
	}
	freshGates := make(map[string]struct{}, len(fresh.RankRequirements))
	for _, r := range fresh.RankRequirements {
		key := gateKey(r)
		freshGates[key] = struct{}{}
		prev, ok := storedGates[key]
		if !ok || !sameGate(prev, r) {
			d.ChangedRankRequirements = append(d.ChangedRankRequirements, key)
		}
	}
	for _, r := range stored.RankRequirements {
		if _, ok := freshGates[gateKey(r)]; !ok {
			d.ChangedRankRequirements = append(d.ChangedRankRequirements, gateKey(r))
		}
	}

	return d
}

func gateKey(r RankRequirement) string {
	return fmt.Sprintf("%s/%d", r.Country, r.Rank)
}

func sameVehicle(a, b VehicleRecord) bool {
	return a.Country == b.Country && a.Rank == b.Rank &&
		a.TierRow == b.TierRow && a.TierColumn == b.TierColumn &&
		a.Premium == b.Premium &&
		eqInt64(a.ResearchCostRp, b.ResearchCostRp) &&
		eqInt64(a.PurchaseCostSl, b.PurchaseCostSl) &&
		eqFloat64(a.BattleRating, b.BattleRating) &&
		eqString(a.NameRu, b.NameRu) &&
		eqString(a.NameEn, b.NameEn)
}

func sameGate(a, b RankRequirement) bool {
	return eqInt64(a.RequiredVehicles, b.RequiredVehicles) &&
		eqInt64(a.RequiredPoints, b.RequiredPoints)
}

func eqInt64(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqFloat64(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

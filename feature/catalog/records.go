package catalog

// VehicleRecord is one vehicle's fully merged catalog entry. Pointer fields
// are optional attributes: nil means the source did not provide the value,
// which the exporters must keep distinguishable from a real zero.
type VehicleRecord struct {
	// InternalID is the canonical identifier, unique across the final set.
	InternalID string
	// Country, Rank, TierRow and TierColumn are the structural placement.
	Country    string
	Rank       int
	TierRow    int
	TierColumn int
	// ResearchCostRp and PurchaseCostSl come from the economics source.
	ResearchCostRp *int64
	PurchaseCostSl *int64
	// BattleRating is the matchmaking value derived from the economics
	// source.
	BattleRating *float64
	// NameRu and NameEn come from the localization sheet.
	NameRu *string
	NameEn *string
	// Premium marks reward/premium entries outside the research economy.
	Premium bool
}

// DependencyEdge is a directed unlock requirement: ToID needs FromID
// researched first.
type DependencyEdge struct {
	FromID string
	ToID   string
}

// RankRequirement is the gate for unlocking a rank within one nation's
// progression, keyed by (Country, Rank).
type RankRequirement struct {
	Country          string
	Rank             int
	RequiredVehicles *int64
	RequiredPoints   *int64
}

// Result is the output of one pipeline run: the three record sets plus the
// soft diagnostics collected along the way. All slices are sorted for
// deterministic, diff friendly output.
type Result struct {
	// RunID correlates log lines, diagnostics and database batches of one
	// invocation.
	RunID string

	Vehicles         []VehicleRecord
	Edges            []DependencyEdge
	RankRequirements []RankRequirement
	Diagnostics      []Diagnostic
}

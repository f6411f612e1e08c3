package database

import (
	"context"
	"fmt"

	"techtree/feature/catalog"

	"gorm.io/gorm"
)

// Vehicle is the vehicles table row.
type Vehicle struct {
	InternalID     string   `gorm:"column:internal_id;primaryKey;size:128"`
	Country        string   `gorm:"column:country;size:32;index"`
	Rank           int      `gorm:"column:rank"`
	TierRow        int      `gorm:"column:tier_row"`
	TierColumn     int      `gorm:"column:tier_column"`
	ResearchCostRp *int64   `gorm:"column:research_cost_rp"`
	PurchaseCostSl *int64   `gorm:"column:purchase_cost_sl"`
	BattleRating   *float64 `gorm:"column:battle_rating"`
	NameRu         *string  `gorm:"column:name_ru;size:256"`
	NameEn         *string  `gorm:"column:name_en;size:256"`
	Premium        bool     `gorm:"column:premium"`
	BatchID        string   `gorm:"column:batch_id;size:36"`
}

// TableName implements the gorm naming interface.
func (Vehicle) TableName() string { return "vehicles" }

// VehicleDependency is the vehicle_dependencies table row.
type VehicleDependency struct {
	FromID  string `gorm:"column:from_id;primaryKey;size:128"`
	ToID    string `gorm:"column:to_id;primaryKey;size:128"`
	BatchID string `gorm:"column:batch_id;size:36"`
}

func (VehicleDependency) TableName() string { return "vehicle_dependencies" }

// RankRequirement is the rank_requirements table row.
type RankRequirement struct {
	Country          string `gorm:"column:country;primaryKey;size:32"`
	Rank             int    `gorm:"column:rank;primaryKey"`
	RequiredVehicles *int64 `gorm:"column:required_vehicles"`
	RequiredPoints   *int64 `gorm:"column:required_points"`
	BatchID          string `gorm:"column:batch_id;size:36"`
}

func (RankRequirement) TableName() string { return "rank_requirements" }

// importBatchSize keeps the multi-row inserts below the default MySQL
// packet limit even for the full vehicle set.
const importBatchSize = 500

// Migrate creates or updates the catalog tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Vehicle{}, &VehicleDependency{}, &RankRequirement{})
}

// ImportCatalog replaces the stored catalog with the given pipeline result
// inside one transaction. Every inserted row carries the result's run id
// as its batch id, so a stored catalog can always be traced back to the
// run that produced it.
func ImportCatalog(ctx context.Context, db *gorm.DB, res *catalog.Result) error {
	vehicles := make([]Vehicle, 0, len(res.Vehicles))
	for _, v := range res.Vehicles {
		vehicles = append(vehicles, Vehicle{
			InternalID:     v.InternalID,
			Country:        v.Country,
			Rank:           v.Rank,
			TierRow:        v.TierRow,
			TierColumn:     v.TierColumn,
			ResearchCostRp: v.ResearchCostRp,
			PurchaseCostSl: v.PurchaseCostSl,
			BattleRating:   v.BattleRating,
			NameRu:         v.NameRu,
			NameEn:         v.NameEn,
			Premium:        v.Premium,
			BatchID:        res.RunID,
		})
	}
	edges := make([]VehicleDependency, 0, len(res.Edges))
	for _, e := range res.Edges {
		edges = append(edges, VehicleDependency{FromID: e.FromID, ToID: e.ToID, BatchID: res.RunID})
	}
	gates := make([]RankRequirement, 0, len(res.RankRequirements))
	for _, r := range res.RankRequirements {
		gates = append(gates, RankRequirement{
			Country:          r.Country,
			Rank:             r.Rank,
			RequiredVehicles: r.RequiredVehicles,
			RequiredPoints:   r.RequiredPoints,
			BatchID:          res.RunID,
		})
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// full replace: the pipeline output is the complete catalog, not
		// a delta
		for _, model := range []any{&VehicleDependency{}, &RankRequirement{}, &Vehicle{}} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		if len(vehicles) > 0 {
			if err := tx.CreateInBatches(vehicles, importBatchSize).Error; err != nil {
				return err
			}
		}
		if len(edges) > 0 {
			if err := tx.CreateInBatches(edges, importBatchSize).Error; err != nil {
				return err
			}
		}
		if len(gates) > 0 {
			if err := tx.CreateInBatches(gates, importBatchSize).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("importing catalog batch %s: %w", res.RunID, err)
	}
	return nil
}

// LoadCatalog reads the stored catalog back into a pipeline result shape,
// in the same canonical sort order the pipeline emits. The run id is the
// batch id of the stored rows (empty when the tables are empty).
func LoadCatalog(ctx context.Context, db *gorm.DB) (*catalog.Result, error) {
	var vehicles []Vehicle
	if err := db.WithContext(ctx).
		Order("country, `rank`, tier_row, tier_column").
		Find(&vehicles).Error; err != nil {
		return nil, fmt.Errorf("loading vehicles: %w", err)
	}
	var edges []VehicleDependency
	if err := db.WithContext(ctx).
		Order("from_id, to_id").
		Find(&edges).Error; err != nil {
		return nil, fmt.Errorf("loading dependencies: %w", err)
	}
	var gates []RankRequirement
	if err := db.WithContext(ctx).
		Order("country, `rank`").
		Find(&gates).Error; err != nil {
		return nil, fmt.Errorf("loading rank requirements: %w", err)
	}

	res := &catalog.Result{}
	for _, v := range vehicles {
		res.RunID = v.BatchID
		res.Vehicles = append(res.Vehicles, catalog.VehicleRecord{
			InternalID:     v.InternalID,
			Country:        v.Country,
			Rank:           v.Rank,
			TierRow:        v.TierRow,
			TierColumn:     v.TierColumn,
			ResearchCostRp: v.ResearchCostRp,
			PurchaseCostSl: v.PurchaseCostSl,
			BattleRating:   v.BattleRating,
			NameRu:         v.NameRu,
			NameEn:         v.NameEn,
			Premium:        v.Premium,
		})
	}
	for _, e := range edges {
		res.Edges = append(res.Edges, catalog.DependencyEdge{FromID: e.FromID, ToID: e.ToID})
	}
	for _, r := range gates {
		res.RankRequirements = append(res.RankRequirements, catalog.RankRequirement{
			Country:          r.Country,
			Rank:             r.Rank,
			RequiredVehicles: r.RequiredVehicles,
			RequiredPoints:   r.RequiredPoints,
		})
	}
	return res, nil
}

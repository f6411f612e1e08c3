package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo matches one row of SHOW COLUMNS.
type ColumnInfo struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string // NULL default is possible
	Extra   string
}

// GetTableColumns retrieves the column definitions for a given table.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo
	if db.Dialector.Name() == "sqlite" {
		// SQLite uses PRAGMA table_info
		type sqliteColumn struct {
			Cid        int
			Name       string
			Type       string
			Notnull    int
			DefaultVal *string
			Pk         int
		}
		var sqliteCols []sqliteColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&sqliteCols).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		for _, col := range sqliteCols {
			columns = append(columns, ColumnInfo{
				Field: strings.ToLower(col.Name),
				Type:  strings.ToLower(col.Type),
			})
		}
		return columns, nil
	}

	err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&columns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}
	for i := range columns {
		columns[i].Type = strings.ToLower(columns[i].Type)
		columns[i].Field = strings.ToLower(columns[i].Field)
	}
	return columns, nil
}

// requiredColumns lists, per catalog table, the columns an import writes.
var requiredColumns = map[string][]string{
	"vehicles": {
		"internal_id", "country", "rank", "tier_row", "tier_column",
		"research_cost_rp", "purchase_cost_sl", "battle_rating",
		"name_ru", "name_en", "premium", "batch_id",
	},
	"vehicle_dependencies": {"from_id", "to_id", "batch_id"},
	"rank_requirements":    {"country", "rank", "required_vehicles", "required_points", "batch_id"},
}

// VerifyCatalogSchema checks that the destination tables carry every column
// an import writes. It runs before the first row is touched so a schema
// drift fails the import cleanly instead of mid-transaction.
func VerifyCatalogSchema(db *gorm.DB) error {
	for table, required := range requiredColumns {
		columns, err := GetTableColumns(db, table)
		if err != nil {
			return err
		}
		present := make(map[string]struct{}, len(columns))
		for _, col := range columns {
			present[col.Field] = struct{}{}
		}
		var missing []string
		for _, name := range required {
			if _, ok := present[name]; !ok {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("table %s is missing columns: %s", table, strings.Join(missing, ", "))
		}
	}
	return nil
}

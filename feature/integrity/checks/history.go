package checks

import (
	"fmt"
	"reflect"
	"strings"

	"beammp-manager/core/database"
	"beammp-manager/core/history"

	"gorm.io/gorm"
)

// SchemaReport is the result of a history schema check.
type SchemaReport struct {
	Table          string   `json:"table"`
	Matched        bool     `json:"matched"`
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Errors         []string `json:"errors"`
}

// CheckHistorySchema verifies the lifecycle_events table against the
// history.Event model.
func CheckHistorySchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return checkSchema(db, history.Event{})
}

// checkSchema compares the gorm column and type tags of model with the live
// table.
func checkSchema(db *gorm.DB, model interface{ TableName() string }) (*SchemaReport, error) {
	report := &SchemaReport{
		Table:          model.TableName(),
		Matched:        true,
		MissingColumns: []string{},
		TypeMismatches: []string{},
	}

	actualCols, err := database.GetTableColumns(db, report.Table)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", report.Table, err))
		report.Matched = false
		return report, nil
	}

	actualMap := make(map[string]database.ColumnInfo, len(actualCols))
	for _, col := range actualCols {
		actualMap[col.Field] = col
	}

	t := reflect.TypeOf(model)
	for i := 0; i < t.NumField(); i++ {
		gormTag := t.Field(i).Tag.Get("gorm")
		colName := parseGormTag(gormTag, "column")
		if colName == "" {
			continue
		}

		actCol, exists := actualMap[colName]
		if !exists {
			report.MissingColumns = append(report.MissingColumns, colName)
			report.Matched = false
			continue
		}

		expType := strings.ToLower(parseGormTag(gormTag, "type"))
		if expType != "" && !strings.Contains(actCol.Type, expType) {
			report.TypeMismatches = append(report.TypeMismatches,
				fmt.Sprintf("%s: expected %s, got %s", colName, expType, actCol.Type))
			report.Matched = false
		}
	}

	return report, nil
}

func parseGormTag(tag, key string) string {
	for _, p := range strings.Split(tag, ";") {
		if v, ok := strings.CutPrefix(p, key+":"); ok {
			return v
		}
	}
	return ""
}

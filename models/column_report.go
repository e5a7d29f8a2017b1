package models

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"gorm.io/gorm"
)

/*
Column Mismatch Report Usage:

Lists database columns that no field of the corresponding Go model maps to,
which usually means a migration ran that the code does not know about yet.

1. Set the environment variable: GENERATE_COLUMN_REPORT=true
2. Run the application: go run .

Example output:
=== COLUMN MISMATCH REPORT ===
--- Table: projects ---
Found 1 columns not accounted for in model:
  - featured
=== SUMMARY ===
Total mismatched columns across all tables: 1
*/

// reportedModels maps table name -> model struct.
var reportedModels = map[string]interface{}{
	"projects": Project{},
}

// ColumnReport holds, per table, the columns missing from the model.
// A table that does not exist yet maps to a nil slice.
type ColumnReport map[string][]string

// GenerateColumnMismatchReport inspects every reported table through the gorm migrator.
func GenerateColumnMismatchReport(db *gorm.DB) (ColumnReport, error) {
	report := make(ColumnReport, len(reportedModels))

	for tableName, modelStruct := range reportedModels {
		if !db.Migrator().HasTable(tableName) {
			report[tableName] = nil
			continue
		}

		dbColumns, err := getTableColumns(db, tableName)
		if err != nil {
			return nil, err
		}

		report[tableName] = findColumnMismatches(dbColumns, getModelFields(modelStruct))
	}

	return report, nil
}

// Total counts mismatched columns across all tables.
func (r ColumnReport) Total() int {
	total := 0
	for _, cols := range r {
		total += len(cols)
	}
	return total
}

// Print writes the report in a human readable form.
func (r ColumnReport) Print(w io.Writer) {
	fmt.Fprintln(w, "=== COLUMN MISMATCH REPORT ===")

	tables := make([]string, 0, len(r))
	for table := range r {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	for _, table := range tables {
		fmt.Fprintf(w, "--- Table: %s ---\n", table)
		mismatches := r[table]
		switch {
		case mismatches == nil:
			fmt.Fprintln(w, "Table does not exist yet (run migrations first)")
		case len(mismatches) == 0:
			fmt.Fprintln(w, "All columns are accounted for in the model.")
		default:
			fmt.Fprintf(w, "Found %d columns not accounted for in model:\n", len(mismatches))
			for _, col := range mismatches {
				fmt.Fprintf(w, "  - %s\n", col)
			}
		}
	}

	fmt.Fprintln(w, "=== SUMMARY ===")
	fmt.Fprintf(w, "Total mismatched columns across all tables: %d\n", r.Total())
}

func getTableColumns(db *gorm.DB, tableName string) ([]string, error) {
	columnTypes, err := db.Migrator().ColumnTypes(tableName)
	if err != nil {
		return nil, fmt.Errorf("error reading columns for table %s: %w", tableName, err)
	}

	columns := make([]string, 0, len(columnTypes))
	for _, ct := range columnTypes {
		columns = append(columns, ct.Name())
	}
	return columns, nil
}

// getModelFields extracts column names from the gorm tags of a struct
func getModelFields(model interface{}) []string {
	var fields []string
	t := reflect.TypeOf(model)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous {
			continue
		}

		if columnName := extractColumnNameFromGormTag(field.Tag.Get("gorm")); columnName != "" {
			fields = append(fields, columnName)
		}
	}

	return fields
}

func extractColumnNameFromGormTag(gormTag string) string {
	for _, part := range strings.Split(gormTag, ";") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "column:") {
			return strings.TrimPrefix(part, "column:")
		}
	}
	return ""
}

// findColumnMismatches returns columns that exist in the database but not in the model.
// The result is never nil so callers can tell "no mismatch" from "no table".
func findColumnMismatches(dbColumns, modelFields []string) []string {
	modelFieldSet := make(map[string]bool, len(modelFields))
	for _, field := range modelFields {
		modelFieldSet[field] = true
	}

	mismatches := []string{}
	for _, col := range dbColumns {
		if !modelFieldSet[col] {
			mismatches = append(mismatches, col)
		}
	}

	return mismatches
}

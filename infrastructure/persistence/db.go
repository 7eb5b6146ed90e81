// Package persistence provides the GORM-backed survey schema and its stores.
package persistence

import (
	"fmt"
	"strings"

	"github.com/nsidc/usaon-vta-survey/internal/database"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates every survey table. GORM orders the models
// so referenced tables are created before the tables that point at them.
func AutoMigrate(db database.Database) error {
	if err := db.GORM().AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// allModels returns every GORM model that AutoMigrate manages.
func allModels() []any {
	return []any{
		&ResponseModel{},
		&SurveyModel{},
		&ObservingSystemModel{},
		&ObservingSystemObservationalModel{},
		&ObservingSystemResearchModel{},
		&DataProductModel{},
		&ApplicationModel{},
		&ObservingSystemDataProductModel{},
		&DataProductApplicationModel{},
		&SocietalBenefitAreaModel{},
		&SocietalBenefitSubAreaModel{},
		&SocietalBenefitKeyObjectiveModel{},
		&ApplicationSocietalBenefitAreaModel{},
	}
}

// TableNames returns the names of every survey table.
func TableNames() []string {
	return []string{
		TableSurvey,
		TableResponse,
		TableObservingSystem,
		TableObservingSystemObservational,
		TableObservingSystemResearch,
		TableDataProduct,
		TableApplication,
		TableObservingSystemDataProduct,
		TableDataProductApplication,
		TableApplicationSocietalBenefitArea,
		TableSocietalBenefitArea,
		TableSocietalBenefitSubArea,
		TableSocietalBenefitKeyObjective,
	}
}

// ValidateSchema verifies every table exists and every GORM model field has a
// corresponding column. Returns an error listing anything missing.
func ValidateSchema(db database.Database) error {
	gdb := db.GORM()
	migrator := gdb.Migrator()

	var missing []string
	for _, model := range allModels() {
		stmt := &gorm.Statement{DB: gdb}
		if err := stmt.Parse(model); err != nil {
			return fmt.Errorf("parse model schema: %w", err)
		}

		if !migrator.HasTable(stmt.Table) {
			missing = append(missing, stmt.Table)
			continue
		}

		columnTypes, err := migrator.ColumnTypes(model)
		if err != nil {
			return fmt.Errorf("get column types for %s: %w", stmt.Table, err)
		}

		actual := make(map[string]bool, len(columnTypes))
		for _, ct := range columnTypes {
			actual[ct.Name()] = true
		}

		for _, field := range stmt.Schema.Fields {
			if field.DBName == "" || field.DBName == "-" {
				continue
			}
			if !actual[field.DBName] {
				missing = append(missing, stmt.Table+"."+field.DBName)
			}
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("schema validation failed, missing: %s", strings.Join(missing, ", "))
	}
	return nil
}

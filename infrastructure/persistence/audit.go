package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/nsidc/usaon-vta-survey/internal/database"
	"golang.org/x/sync/errgroup"
)

// Audit check names.
const (
	CheckSubtypeConsistency = "subtype_consistency"
	CheckNameUniqueness     = "name_uniqueness"
	CheckTaxonomyParents    = "taxonomy_parents"
	CheckRatingRange        = "rating_range"
	CheckSameResponseLinks  = "same_response_links"
)

// DefaultAuditConcurrency bounds how many audit queries run at once.
const DefaultAuditConcurrency = 4

// Finding is one integrity violation found by the Auditor.
type Finding struct {
	check  string
	table  string
	detail string
}

// Check returns the name of the check that produced the finding.
func (f Finding) Check() string { return f.check }

// Table returns the table holding the offending rows.
func (f Finding) Table() string { return f.table }

// Detail describes the offending rows.
func (f Finding) Detail() string { return f.detail }

// String implements fmt.Stringer.
func (f Finding) String() string {
	return fmt.Sprintf("%s: %s: %s", f.check, f.table, f.detail)
}

// AuditReport collects the findings of one audit run.
type AuditReport struct {
	checks   []string
	findings []Finding
}

// Checks returns the names of the checks that ran.
func (r AuditReport) Checks() []string { return append([]string(nil), r.checks...) }

// Findings returns every violation found.
func (r AuditReport) Findings() []Finding { return append([]Finding(nil), r.findings...) }

// OK reports whether the audit found nothing.
func (r AuditReport) OK() bool { return len(r.findings) == 0 }

// auditQuery selects offending rows; every row becomes one finding.
type auditQuery struct {
	check string
	table string
	sql   string
}

// Auditor checks the stored rows against the integrity rules the schema
// cannot express as constraints, plus those it does, in case rows were
// written by other tooling.
type Auditor struct {
	db          database.Database
	concurrency int
}

// NewAuditor creates an Auditor.
func NewAuditor(db database.Database) Auditor {
	return Auditor{db: db, concurrency: DefaultAuditConcurrency}
}

// WithConcurrency returns a copy running at most n queries at once.
func (a Auditor) WithConcurrency(n int) Auditor {
	if n < 1 {
		n = 1
	}
	a.concurrency = n
	return a
}

// Run executes every check concurrently and returns the combined report.
// Queries run outside any transaction carried by ctx.
func (a Auditor) Run(ctx context.Context) (AuditReport, error) {
	queries := auditQueries()
	results := make([][]Finding, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, q := range queries {
		g.Go(func() error {
			findings, err := a.run(gctx, q)
			if err != nil {
				return err
			}
			results[i] = findings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return AuditReport{}, err
	}

	report := AuditReport{}
	seen := make(map[string]bool)
	for i, q := range queries {
		if !seen[q.check] {
			seen[q.check] = true
			report.checks = append(report.checks, q.check)
		}
		report.findings = append(report.findings, results[i]...)
	}
	return report, nil
}

func (a Auditor) run(ctx context.Context, q auditQuery) ([]Finding, error) {
	rows, err := a.db.GORM().WithContext(ctx).Raw(q.sql).Rows()
	if err != nil {
		return nil, fmt.Errorf("audit %s on %s: %w", q.check, q.table, err)
	}
	defer func() { _ = rows.Close() }()

	var findings []Finding
	for rows.Next() {
		var detail string
		if err := rows.Scan(&detail); err != nil {
			return nil, fmt.Errorf("audit %s on %s: scan: %w", q.check, q.table, err)
		}
		findings = append(findings, Finding{check: q.check, table: q.table, detail: detail})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("audit %s on %s: %w", q.check, q.table, err)
	}
	return findings, nil
}

// auditQueries builds the check queries. Each selects a single text column.
// String concatenation uses || which SQLite and PostgreSQL both support.
func auditQueries() []auditQuery {
	queries := []auditQuery{
		{
			check: CheckSubtypeConsistency,
			table: TableObservingSystem,
			sql: `SELECT 'id ' || os.id || ' type ' || os.type || ' lacks its ' || os.type || ' row'
				FROM ` + TableObservingSystem + ` os
				WHERE (os.type = 'observational' AND NOT EXISTS (
						SELECT 1 FROM ` + TableObservingSystemObservational + ` o WHERE o.response_observing_system_id = os.id))
				   OR (os.type = 'research' AND NOT EXISTS (
						SELECT 1 FROM ` + TableObservingSystemResearch + ` r WHERE r.response_observing_system_id = os.id))
				ORDER BY os.id`,
		},
		{
			check: CheckSubtypeConsistency,
			table: TableObservingSystemObservational,
			sql: `SELECT 'id ' || os.id || ' type ' || os.type || ' has an observational row'
				FROM ` + TableObservingSystem + ` os
				JOIN ` + TableObservingSystemObservational + ` o ON o.response_observing_system_id = os.id
				WHERE os.type <> 'observational'
				ORDER BY os.id`,
		},
		{
			check: CheckSubtypeConsistency,
			table: TableObservingSystemResearch,
			sql: `SELECT 'id ' || os.id || ' type ' || os.type || ' has a research row'
				FROM ` + TableObservingSystem + ` os
				JOIN ` + TableObservingSystemResearch + ` r ON r.response_observing_system_id = os.id
				WHERE os.type <> 'research'
				ORDER BY os.id`,
		},
		{
			check: CheckTaxonomyParents,
			table: TableSocietalBenefitSubArea,
			sql: `SELECT 'subarea ' || s.id || ' references missing area ' || s.societal_benefit_area_id
				FROM ` + TableSocietalBenefitSubArea + ` s
				LEFT JOIN ` + TableSocietalBenefitArea + ` a ON a.id = s.societal_benefit_area_id
				WHERE a.id IS NULL
				ORDER BY s.id`,
		},
		{
			check: CheckTaxonomyParents,
			table: TableSocietalBenefitKeyObjective,
			sql: `SELECT 'key objective ' || k.id || ' references missing subarea ' || k.societal_benefit_subarea_id
				FROM ` + TableSocietalBenefitKeyObjective + ` k
				LEFT JOIN ` + TableSocietalBenefitSubArea + ` s ON s.id = k.societal_benefit_subarea_id
				WHERE s.id IS NULL
				ORDER BY k.id`,
		},
		{
			check: CheckSameResponseLinks,
			table: TableObservingSystemDataProduct,
			sql: `SELECT 'observing system ' || l.response_observing_system_id || ' and data product ' || l.response_data_product_id || ' belong to different responses'
				FROM ` + TableObservingSystemDataProduct + ` l
				JOIN ` + TableObservingSystem + ` os ON os.id = l.response_observing_system_id
				JOIN ` + TableDataProduct + ` dp ON dp.id = l.response_data_product_id
				WHERE os.response_id <> dp.response_id
				ORDER BY l.response_observing_system_id, l.response_data_product_id`,
		},
		{
			check: CheckSameResponseLinks,
			table: TableDataProductApplication,
			sql: `SELECT 'data product ' || l.response_data_product_id || ' and application ' || l.response_application_id || ' belong to different responses'
				FROM ` + TableDataProductApplication + ` l
				JOIN ` + TableDataProduct + ` dp ON dp.id = l.response_data_product_id
				JOIN ` + TableApplication + ` app ON app.id = l.response_application_id
				WHERE dp.response_id <> app.response_id
				ORDER BY l.response_data_product_id, l.response_application_id`,
		},
	}

	for _, table := range []string{TableObservingSystem, TableDataProduct, TableApplication} {
		queries = append(queries, auditQuery{
			check: CheckNameUniqueness,
			table: table,
			sql: `SELECT 'name ' || name || ' appears ' || COUNT(*) || ' times in response ' || response_id
				FROM ` + table + `
				GROUP BY name, response_id
				HAVING COUNT(*) > 1
				ORDER BY response_id, name`,
		})
	}

	ratings := []struct {
		table   string
		columns []string
	}{
		{TableDataProduct, []string{"satisfaction_rating"}},
		{TableObservingSystemDataProduct, []string{"observing_system_contribution_to_data_product_rating", "satisfaction_rating"}},
		{TableDataProductApplication, []string{"data_product_contribution_to_application_rating", "satisfaction_rating"}},
	}
	for _, r := range ratings {
		for _, column := range r.columns {
			queries = append(queries, auditQuery{
				check: CheckRatingRange,
				table: r.table,
				sql: `SELECT '` + column + ` = ' || ` + column + ` || ' out of range'
					FROM ` + r.table + `
					WHERE ` + strings.Join([]string{column + " < 0", column + " > 100"}, " OR ") + `
					ORDER BY ` + column,
			})
		}
	}

	return queries
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/nsidc/usaon-vta-survey/infrastructure/persistence"
)

// Audit checks stored data against the rules the schema cannot enforce on its own.
type Audit struct {
	auditor persistence.Auditor
	closed  *atomic.Bool
	logger  *slog.Logger
}

// NewAudit creates a new Audit service. closed may be nil.
func NewAudit(auditor persistence.Auditor, closed *atomic.Bool, logger *slog.Logger) *Audit {
	return &Audit{auditor: auditor, closed: closed, logger: logger}
}

// Run executes every check and logs each finding.
func (s *Audit) Run(ctx context.Context) (persistence.AuditReport, error) {
	if err := checkOpen(s.closed); err != nil {
		return persistence.AuditReport{}, err
	}
	report, err := s.auditor.Run(ctx)
	if err != nil {
		return persistence.AuditReport{}, fmt.Errorf("run audit: %w", err)
	}

	for _, f := range report.Findings() {
		s.logger.WarnContext(ctx, "audit finding",
			slog.String("check", f.Check()),
			slog.String("table", f.Table()),
			slog.String("detail", f.Detail()),
		)
	}
	s.logger.InfoContext(ctx, "audit complete",
		slog.Int("checks", len(report.Checks())),
		slog.Int("findings", len(report.Findings())),
	)
	return report, nil
}

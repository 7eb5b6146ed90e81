// Package vtasurvey stores and validates responses to the USAON Value Tree
// Analysis survey.
//
// A response links observing systems to the data products they feed, data
// products to the applications that use them, and applications to societal
// benefit areas from a shared taxonomy.
//
// Basic usage:
//
//	client, err := vtasurvey.New(
//	    vtasurvey.WithSQLite("vta.db"),
//	    vtasurvey.WithTaxonomyFile("taxonomy.yaml"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	_, response, err := client.Submissions.Start(ctx, nil)
//	sst, err := client.Submissions.AddDataProduct(ctx, response.ID(), service.DataProductParams{
//	    Name:         "Sea surface temperature",
//	    Satisfaction: 80,
//	})
package vtasurvey

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/nsidc/usaon-vta-survey/application/service"
	"github.com/nsidc/usaon-vta-survey/infrastructure/persistence"
	"github.com/nsidc/usaon-vta-survey/infrastructure/taxonomy"
	"github.com/nsidc/usaon-vta-survey/internal/config"
	"github.com/nsidc/usaon-vta-survey/internal/database"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Client is the main entry point for the survey store.
//
// Access operations via struct fields:
//
//	client.Submissions.AddObservingSystem(ctx, responseID, params)
//	client.Responses.Delete(ctx, responseID)
//	client.Audit.Run(ctx)
type Client struct {
	Submissions *service.Submission
	Responses   *service.Responses
	Taxonomy    *service.Taxonomy
	Audit       *service.Audit

	db     database.Database
	logger *slog.Logger
	closed atomic.Bool
	mu     sync.Mutex
}

// New creates a new Client with the given options. The schema is migrated
// and validated before New returns.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.database == databaseUnset {
		return nil, ErrNoDatabase
	}

	logger := cfg.logger
	if logger == nil {
		logger = config.DefaultLogger()
	}

	ctx := context.Background()
	dbURL, err := buildDatabaseURL(cfg)
	if err != nil {
		return nil, fmt.Errorf("build database url: %w", err)
	}

	gormLogger := gormlogger.Default.LogMode(gormlogger.Silent)
	if cfg.logSQL {
		gormLogger = database.NewGormLogger(logger)
	}
	db, err := database.NewDatabaseWithConfig(ctx, dbURL, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if !db.IsSQLite() {
		pool := cfg.pool
		if err := db.ConfigurePool(pool.MaxOpen(), pool.MaxIdle(), pool.MaxLifetime()); err != nil {
			errClose := db.Close()
			return nil, errors.Join(fmt.Errorf("configure pool: %w", err), errClose)
		}
	}

	if err := persistence.AutoMigrate(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), errClose)
	}

	if err := persistence.ValidateSchema(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("validate schema: %w", err), errClose)
	}

	client := &Client{
		db:     db,
		logger: logger,
	}

	stores := service.Stores{
		Surveys:          persistence.NewSurveyStore(db),
		Responses:        persistence.NewResponseStore(db),
		ObservingSystems: persistence.NewObservingSystemStore(db),
		DataProducts:     persistence.NewDataProductStore(db),
		Applications:     persistence.NewApplicationStore(db),
		SystemProducts:   persistence.NewObservingSystemDataProductStore(db),
		ProductApps:      persistence.NewDataProductApplicationStore(db),
		ApplicationAreas: persistence.NewApplicationAreaStore(db),
		Taxonomy:         persistence.NewTaxonomyStore(db),
	}

	client.Submissions = service.NewSubmission(db, stores, &client.closed, logger)
	client.Responses = service.NewResponses(db, stores, &client.closed, logger)
	client.Taxonomy = service.NewTaxonomy(db, stores.Taxonomy, &client.closed, logger)
	auditor := persistence.NewAuditor(db)
	if cfg.auditWorkers > 0 {
		auditor = auditor.WithConcurrency(cfg.auditWorkers)
	}
	client.Audit = service.NewAudit(auditor, &client.closed, logger)

	if cfg.taxonomyFile != "" {
		tree, err := taxonomy.LoadFile(cfg.taxonomyFile)
		if err != nil {
			errClose := db.Close()
			return nil, errors.Join(fmt.Errorf("load taxonomy: %w", err), errClose)
		}
		if err := client.Taxonomy.Seed(ctx, tree); err != nil {
			errClose := db.Close()
			return nil, errors.Join(fmt.Errorf("seed taxonomy: %w", err), errClose)
		}
	}

	logger.Debug("vtasurvey client opened", slog.Bool("sqlite", db.IsSQLite()))
	return client, nil
}

// ValidateSchema checks that every table the survey needs exists.
func (c *Client) ValidateSchema() error {
	if c.closed.Load() {
		return ErrClientClosed
	}
	return persistence.ValidateSchema(c.db)
}

// Close releases all resources. A second call returns ErrClientClosed.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}

	c.logger.Debug("vtasurvey client closed")
	return nil
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

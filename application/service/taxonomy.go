package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/nsidc/usaon-vta-survey/domain/taxonomy"
	"github.com/nsidc/usaon-vta-survey/internal/database"
)

// Taxonomy seeds and reads the societal benefit taxonomy.
type Taxonomy struct {
	db     database.Database
	store  taxonomy.Store
	closed *atomic.Bool
	logger *slog.Logger
}

// NewTaxonomy creates a new Taxonomy service. closed may be nil.
func NewTaxonomy(db database.Database, store taxonomy.Store, closed *atomic.Bool, logger *slog.Logger) *Taxonomy {
	return &Taxonomy{db: db, store: store, closed: closed, logger: logger}
}

// Seed writes the tree in one transaction, parents before children.
// Seeding the same tree twice leaves the tables unchanged.
func (s *Taxonomy) Seed(ctx context.Context, tree taxonomy.Tree) error {
	if err := checkOpen(s.closed); err != nil {
		return err
	}
	if tree.IsEmpty() {
		return nil
	}
	err := database.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		if err := s.store.SaveAreas(ctx, tree.Areas()); err != nil {
			return fmt.Errorf("save areas: %w", err)
		}
		if err := s.store.SaveSubAreas(ctx, tree.SubAreas()); err != nil {
			return fmt.Errorf("save subareas: %w", err)
		}
		if err := s.store.SaveKeyObjectives(ctx, tree.KeyObjectives()); err != nil {
			return fmt.Errorf("save key objectives: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "taxonomy seeded",
		slog.Int("areas", len(tree.Areas())),
		slog.Int("subareas", len(tree.SubAreas())),
		slog.Int("key_objectives", len(tree.KeyObjectives())),
	)
	return nil
}

// Tree returns the stored taxonomy.
func (s *Taxonomy) Tree(ctx context.Context) (taxonomy.Tree, error) {
	if err := checkOpen(s.closed); err != nil {
		return taxonomy.Tree{}, err
	}
	return s.store.Tree(ctx)
}

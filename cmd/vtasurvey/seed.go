package main

import (
	"errors"
	"fmt"
	"log/slog"

	vtasurvey "github.com/nsidc/usaon-vta-survey"
	"github.com/nsidc/usaon-vta-survey/infrastructure/taxonomy"
	"github.com/spf13/cobra"
)

var errNoTaxonomyFile = errors.New("no taxonomy document: pass --file or set TAXONOMY_FILE")

func seedCmd(flags *globalFlags) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the societal benefit taxonomy",
		Long: `Load societal benefit areas, subareas and key objectives from a YAML or
JSON document. Entries already stored are left alone, so seeding twice is safe.
Without --file the TAXONOMY_FILE setting is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd, flags)
			if err != nil {
				return err
			}

			path := file
			if path == "" {
				path = env.cfg.TaxonomyFile()
			}
			if path == "" {
				return errNoTaxonomyFile
			}

			tree, err := taxonomy.LoadFile(path)
			if err != nil {
				return fmt.Errorf("load taxonomy: %w", err)
			}

			// The document is seeded below, not again by the client.
			client, err := openClient(env, vtasurvey.WithTaxonomyFile(""))
			if err != nil {
				return err
			}
			defer closeClient(env, client)

			if err := client.Taxonomy.Seed(env.ctx, tree); err != nil {
				return err
			}

			env.logger.Slog().InfoContext(env.ctx, "taxonomy loaded",
				slog.String("file", path),
				slog.Int("areas", len(tree.Areas())),
				slog.Int("subareas", len(tree.SubAreas())),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to the taxonomy document")

	return cmd
}

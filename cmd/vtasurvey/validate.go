package main

import (
	"fmt"

	"github.com/nsidc/usaon-vta-survey/infrastructure/persistence"
	"github.com/nsidc/usaon-vta-survey/internal/database"
	"github.com/spf13/cobra"
)

func validateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that the survey schema exists",
		Long: `Report missing survey tables without changing the database. Use migrate
to create them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd, flags)
			if err != nil {
				return err
			}

			db, err := database.NewDatabase(env.ctx, env.cfg.DBURL())
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer func() { _ = db.Close() }()

			if err := persistence.ValidateSchema(db); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "schema ok: %d tables\n", len(persistence.TableNames()))
			return nil
		},
	}
}

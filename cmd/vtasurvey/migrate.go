package main

import (
	"github.com/spf13/cobra"
)

func migrateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the survey schema",
		Long: `Create every survey table, constraint and index that is missing, then
check that the schema is complete. Existing rows are never modified.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd, flags)
			if err != nil {
				return err
			}

			// Opening the client migrates and validates.
			client, err := openClient(env)
			if err != nil {
				return err
			}
			defer closeClient(env, client)

			env.logger.Slog().InfoContext(env.ctx, "schema up to date")
			return nil
		},
	}
}

// Package main is the entry point for the vtasurvey CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errFindings makes the process exit non-zero after the findings were printed.
var errFindings = errors.New("integrity audit reported findings")

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	envFiles []string
	dbURL    string
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "vtasurvey",
		Short:         "USAON Value Tree Analysis survey store",
		Long:          `vtasurvey manages the database behind the USAON Value Tree Analysis survey: schema migration, taxonomy seeding and integrity audits.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringArrayVar(&flags.envFiles, "env-file", nil, "Path to a .env file; repeat to layer files, earlier files win (default ./.env if present)")
	cmd.PersistentFlags().StringVar(&flags.dbURL, "db-url", "", "Database URL (overrides DB_URL)")

	cmd.AddCommand(migrateCmd(flags))
	cmd.AddCommand(seedCmd(flags))
	cmd.AddCommand(auditCmd(flags))
	cmd.AddCommand(validateCmd(flags))
	cmd.AddCommand(versionCmd())

	return cmd
}

package main

import (
	"fmt"

	vtasurvey "github.com/nsidc/usaon-vta-survey"
	"github.com/nsidc/usaon-vta-survey/infrastructure/persistence"
	"github.com/spf13/cobra"
)

func auditCmd(flags *globalFlags) *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Check stored responses for integrity violations",
		Long: `Run every integrity check against the stored survey data and print one
line per finding. Exits non-zero when anything is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd, flags)
			if err != nil {
				return err
			}

			client, err := openClient(env, vtasurvey.WithAuditConcurrency(concurrency))
			if err != nil {
				return err
			}
			defer closeClient(env, client)

			report, err := client.Audit.Run(env.ctx)
			if err != nil {
				return err
			}

			printReport(cmd, report)
			if !report.OK() {
				return errFindings
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", persistence.DefaultAuditConcurrency, "maximum audit checks run at once")
	return cmd
}

func printReport(cmd *cobra.Command, report persistence.AuditReport) {
	out := cmd.OutOrStdout()
	for _, f := range report.Findings() {
		_, _ = fmt.Fprintln(out, f.String())
	}
	_, _ = fmt.Fprintf(out, "%d checks, %d findings\n", len(report.Checks()), len(report.Findings()))
}

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	repo "github.com/joseph-ayodele/report-filer/internal/repository"
)

func dbhealthCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "dbhealth",
		Short: "Ping the registry database and summarise its drops",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := e.openRegistry(ctx)
			if err != nil {
				return fmt.Errorf("opening DB: %w", err)
			}
			defer db.Close()

			if err := db.HealthCheck(ctx, time.Second); err != nil {
				return fmt.Errorf("DB health: FAIL (%w)", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DB health: OK")

			drops := repo.NewDropRepository(db, e.logger)
			if err := drops.EnsureSchema(ctx); err != nil {
				return err
			}
			counts, err := drops.CountByStatus(ctx)
			if err != nil {
				return fmt.Errorf("counting drops: %w", err)
			}
			for status, n := range counts {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s: %d\n", status, n)
			}
			return nil
		},
	}
}

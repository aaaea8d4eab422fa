package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/report-filer/internal/export"
	"github.com/joseph-ayodele/report-filer/internal/manifest"
	repo "github.com/joseph-ayodele/report-filer/internal/repository"
)

func exportCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the manifest, and the registry when reachable, to an XLSX workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			outPath, _ := cmd.Flags().GetString("out")
			fromStr, _ := cmd.Flags().GetString("from")
			toStr, _ := cmd.Flags().GetString("to")
			withRegistry, _ := cmd.Flags().GetBool("registry")

			from, err := parseDay(fromStr)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			to, err := parseDay(toStr)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}

			var drops repo.DropRepository
			if withRegistry {
				db, err := e.openRegistry(cmd.Context())
				if err != nil {
					return err
				}
				defer db.Close()
				drops = repo.NewDropRepository(db, e.logger)
				if err := drops.EnsureSchema(cmd.Context()); err != nil {
					return err
				}
			}

			svc := export.NewService(manifest.New(e.cfg.Paths.Manifest), drops, e.logger)
			b, err := svc.ExportXLSX(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, b, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", outPath, len(b))
			return nil
		},
	}
	cmd.Flags().StringP("out", "o", "manifest.xlsx", "Output workbook path")
	cmd.Flags().String("from", "", "First transcription day to include (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "Last transcription day to include (YYYY-MM-DD)")
	cmd.Flags().Bool("registry", true, "Add a sheet with every registry entry")
	return cmd
}

func parseDay(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/report-filer/internal/extract"
	"github.com/joseph-ayodele/report-filer/internal/rosters"
)

func rostersCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rosters",
		Short: "Show or check the roster vocabularies",
		RunE: func(cmd *cobra.Command, args []string) error {
			vocab, err := rosters.Load(e.cfg.Rosters.File)
			if err != nil {
				return err
			}
			source := e.cfg.Rosters.File
			if source == "" {
				source = "embedded defaults"
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "source: %s\n", source)
			for _, r := range []extract.Roster{vocab.Transcribers, vocab.Doctors, vocab.ExamTypes} {
				fmt.Fprintf(w, "%s (%d)\n", r.Name(), r.Len())
				for _, entry := range r.Entries() {
					fmt.Fprintf(w, "  %s %v\n", entry.Name, entry.Keywords)
				}
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "check FILE",
		Short: "Validate a roster file without loading it into a running filer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := rosters.Load(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: OK\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "defaults",
		Short: "Print the embedded roster document, a starting point for a custom file",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(rosters.DefaultJSON())
			return err
		},
	})
	return cmd
}

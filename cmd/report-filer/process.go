package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func processCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: "Inspect the inbox once and file the drop it holds",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, db, err := e.newFiler(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			out, err := f.Poll(cmd.Context())
			if out == nil && err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "inbox: nothing to file")
				return nil
			}
			if out != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tid=%d\t%s\n", out.Status, out.ManifestID, out.Folder)
				for _, p := range out.Files {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", p)
				}
			}
			return err
		},
	}
}

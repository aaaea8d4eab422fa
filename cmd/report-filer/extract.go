package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/report-filer/constants"
	"github.com/joseph-ayodele/report-filer/internal/async"
	"github.com/joseph-ayodele/report-filer/internal/extract"
)

func extractCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract PATH...",
		Short: "Print the metadata extracted from documents or folders of documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			asJSON, _ := cmd.Flags().GetBool("json")
			workers, _ := cmd.Flags().GetInt("workers")

			ex, err := e.newExtractor()
			if err != nil {
				return err
			}
			paths, err := expandDocuments(args)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			failed := 0
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			outcomes := async.ExtractAll(ctx, ex, paths, e.logger, async.WithWorkers(workers))
			for _, o := range outcomes {
				if o.Err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", o.Path, o.Err)
					continue
				}
				if asJSON {
					if err := writeJSON(w, o.Path, o.Result, verbose); err != nil {
						return err
					}
					continue
				}
				writeText(w, o.Path, o.Result, verbose)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents could not be read", failed, len(paths))
			}
			return nil
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "Also print every labelled field and the report body")
	cmd.Flags().Bool("json", false, "Print one JSON object per document")
	cmd.Flags().Int("workers", 4, "Documents read in parallel")
	return cmd
}

// expandDocuments replaces each directory argument by the documents directly
// inside it, sorted by name.
func expandDocuments(args []string) ([]string, error) {
	var out []string
	for _, a := range args {
		info, err := os.Stat(a)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, a)
			continue
		}
		entries, err := os.ReadDir(a)
		if err != nil {
			return nil, err
		}
		var found []string
		for _, ent := range entries {
			if ent.IsDir() || !constants.IsDocumentExt(filepath.Ext(ent.Name())) {
				continue
			}
			found = append(found, filepath.Join(a, ent.Name()))
		}
		sort.Strings(found)
		out = append(out, found...)
	}
	return out, nil
}

func writeText(w io.Writer, path string, res extract.Result, verbose bool) {
	fmt.Fprintf(w, "Processing file: %s\n", path)
	fmt.Fprintf(w, "  Patient Name: %s\n", res.PatientName)
	fmt.Fprintf(w, "  Creation Date: %s\n", res.CreationDate)
	fmt.Fprintf(w, "  Transcription Date: %s\n", res.TranscriptionDate)
	fmt.Fprintf(w, "  Transcriber: %s\n", res.Transcriber)
	fmt.Fprintf(w, "  Exam Type: %s\n", res.ExamType)
	fmt.Fprintf(w, "  Doctor: %s\n", res.Doctor)
	if verbose {
		for _, l := range extract.AllLabels {
			fmt.Fprintf(w, "  [%s] %s\n", l, res.Fields.Get(l))
		}
		fmt.Fprintf(w, "  Body:\n%s\n", res.Body)
	}
	fmt.Fprintln(w, "-----------------------------------")
}

func writeJSON(w io.Writer, path string, res extract.Result, verbose bool) error {
	out := map[string]any{
		"path":   path,
		"record": res.Record,
	}
	if verbose {
		out["fields"] = res.Fields
		out["body"] = res.Body
		out["paragraphs"] = res.Paragraphs
	}
	return json.NewEncoder(w).Encode(out)
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/report-filer/internal/common"
)

// env holds what every subcommand needs once the root has loaded config.
type env struct {
	cfg    *common.Config
	logger *slog.Logger
}

func main() {
	e := &env{}
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "report-filer",
		Short:         "File dictated medical reports and their audio by extracted metadata",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := common.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			e.cfg = cfg
			e.logger = newLogger(cmd.ErrOrStderr(), cfg.Log)
			slog.SetDefault(e.logger)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (default ./report-filer.yaml)")

	rootCmd.AddCommand(watchCmd(e))
	rootCmd.AddCommand(processCmd(e))
	rootCmd.AddCommand(extractCmd(e))
	rootCmd.AddCommand(exportCmd(e))
	rootCmd.AddCommand(rostersCmd(e))
	rootCmd.AddCommand(dbhealthCmd(e))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, cfg common.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.Level))); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

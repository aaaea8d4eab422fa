package main

import (
	"context"
	"net"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/joseph-ayodele/report-filer/internal/ingest"
)

func watchCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the inbox and file every drop that appears",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			f, db, err := e.newFiler(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			if addr := e.cfg.Health.GRPCAddr; addr != "" {
				srv, err := serveHealth(ctx, e, addr)
				if err != nil {
					return err
				}
				defer srv.GracefulStop()
			}

			signals, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
				Dir:          e.cfg.Paths.Inbox,
				InitialScan:  e.cfg.Watch.InitialScan,
				Debounce:     e.cfg.Watch.Debounce,
				PollInterval: e.cfg.Watch.PollInterval,
			}, e.logger)
			if err != nil {
				return err
			}
			go func() {
				for err := range errs {
					e.logger.Warn("watcher.error.forwarded", "error", err)
				}
			}()

			e.logger.Info("report-filer watching", "inbox", e.cfg.Paths.Inbox)
			return f.Run(ctx, signals)
		},
	}
}

// serveHealth exposes the standard gRPC health service until ctx is done.
func serveHealth(ctx context.Context, e *env, addr string) (*grpc.Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		e.logger.Error("failed to listen on address", "addr", addr, "error", err)
		return nil, err
	}
	srv := grpc.NewServer()
	hs := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, hs)
	hs.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	go func() {
		<-ctx.Done()
		hs.Shutdown()
	}()
	go func() {
		e.logger.Info("health endpoint listening", "addr", addr)
		if err := srv.Serve(lis); err != nil {
			e.logger.Error("gRPC serve error", "error", err)
		}
	}()
	return srv, nil
}

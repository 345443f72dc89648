package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/NCATS-Tangerine/rhea-beacon/internal/metrics"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(a *app, version string) *cobra.Command {
	var port int
	var preload bool
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		Short:   "Start the REST API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port > 0 {
				a.cfg.Server.Port = port
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			m := metrics.New(reg)

			svc, dm, err := buildBeacon(a.cfg, a.logger, m)
			if err != nil {
				return err
			}
			if preload {
				if err := dm.Preload(); err != nil {
					a.logger.Warn("some datasets failed to load; they will be retried on demand", zap.Error(err))
				}
			}

			srv := server.NewServer(svc, dm, server.Options{
				BasePath:    a.cfg.Server.BasePath,
				CORSOrigins: a.cfg.Server.CORSOrigins,
				Logger:      a.logger.Named("http"),
				Metrics:     m,
				Gatherer:    reg,
			})

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a.logger.Info("starting rhea-beacon",
				zap.String("version", version),
				zap.String("sparql", a.cfg.SPARQL.Endpoint),
				zap.String("data_dir", a.cfg.Data.Dir),
			)
			return srv.Run(ctx, fmt.Sprintf(":%d", a.cfg.Server.Port))
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides server.port)")
	cmd.Flags().BoolVar(&preload, "preload", true, "load the reference tables before serving")
	return cmd
}

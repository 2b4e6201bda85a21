package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/use-go/camdrv"
	"github.com/use-go/camdrv/internal/inspect"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the inspector API and metrics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Listen
		if listenAddr != "" {
			addr = listenAddr
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := inspect.NewMetrics(reg)

		drv, err := newDriver(camdrv.WithObserver(metrics.Observe))
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              addr,
			Handler:           inspect.NewRouter(drv, reg, log),
			ReadHeaderTimeout: 5 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errc := make(chan error, 1)
		go func() {
			log.Info().Str("addr", addr).Msg("[inspect] listen")
			errc <- srv.ListenAndServe()
		}()

		select {
		case err = <-errc:
			return err
		case <-ctx.Done():
		}

		log.Info().Msg("[inspect] shutdown")
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	},
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "listen address, overrides the config")
}

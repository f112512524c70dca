package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/gogpu/ggchart"
	"github.com/gogpu/ggchart/metrics"
)

func newRunCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "run [scenario.yaml]",
		Short: "Replay a scenario and print the resulting axes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScenario(args[0])
			if err != nil {
				return err
			}
			e, err := s.replay()
			if err != nil {
				return err
			}
			r, err := buildReport(e)
			if err != nil {
				return err
			}
			switch output {
			case "text":
				return writeText(cmd.OutOrStdout(), r)
			case "yaml":
				return writeYAML(cmd.OutOrStdout(), r)
			default:
				return fmt.Errorf("invalid output: %s (must be text or yaml)", output)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text or yaml")
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [scenario.yaml]",
		Short: "Check that a scenario parses and replays without errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScenario(args[0])
			if err != nil {
				return err
			}
			if _, err := s.replay(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d steps)\n", args[0], len(s.Steps))
			return nil
		},
	}
}

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve [scenario.yaml]",
		Short: "Replay a scenario and expose its diagnostics on /metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScenario(args[0])
			if err != nil {
				return err
			}
			e, err := s.replay()
			if err != nil {
				return err
			}
			if _, err := e.BuildAxes(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serveMetrics(ctx, addr, e)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":9464", "Listen address")
	return cmd
}

// serveMetrics serves the engine diagnostics until ctx is done. Scrapes
// run on server goroutines, so engine reads are serialized by mu.
func serveMetrics(ctx context.Context, addr string, e *ggchart.Engine) error {
	var mu sync.Mutex
	src := func() ggchart.Diagnostics {
		mu.Lock()
		defer mu.Unlock()
		return e.Diagnostics()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(metrics.NewCollector(src, nil))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() {
		ggchart.Logger().Info("chartlab: serving metrics", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

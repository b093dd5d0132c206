package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"tamperscan/internal/checks/probes"
	"tamperscan/internal/engine"
	"tamperscan/internal/flags"
	"tamperscan/internal/host"
	"tamperscan/internal/metrics"
	"tamperscan/internal/watcher"
)

// errCompromised stops the monitor loop when --fail-fast is set.
var errCompromised = errors.New("compromise detected")

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Run detection continuously and expose results",
	Long: `Run detection on an interval until interrupted.

Each cycle is a full detection run with the configured checks and output
sinks. Between cycles the monitor can watch the filesystem for suspicious
artifact paths appearing (--watch) and re-run immediately when one does, and
it can serve per-run Prometheus metrics (--metrics-addr).

The monitor keeps running across compromised verdicts so operators see state
transitions; --fail-fast stops at the first compromised run instead.

Exit codes:
	0 = stopped by signal, no fail-fast trip
	1 = stopped by --fail-fast on a compromised run
	3 = fatal error (monitor did not start)

Examples:
  # Every 5 minutes, metrics on :9464
  tamperscan monitor --metrics-addr :9464

  # React to artifact paths appearing between cycles
  tamperscan monitor --interval 1m --watch

  # Leave on first compromise with a machine-readable stream
  tamperscan monitor --fail-fast --no-console --emit ndjson
`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := applyConfigFile(cmd, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}
		os.Exit(runMonitor())
	},
}

func runMonitor() int {
	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng := engine.New(host.New(), logger)

	var mtr *metrics.Metrics
	if cfg.Monitor.MetricsAddr != "" {
		mtr = metrics.New("tamperscan")
	}

	g, gctx := errgroup.WithContext(ctx)

	if mtr != nil {
		serveMetrics(gctx, g, logger, mtr)
	}

	// Watch triggers are coalesced: one pending re-run at a time is enough,
	// a detection run re-reads all paths anyway.
	triggers := make(chan string, 1)
	if cfg.Monitor.Watch {
		pw, err := watcher.New(probes.WatchPaths(cfg.Checks.ExtraPaths), func(ctx context.Context, path string) {
			select {
			case triggers <- path:
			default:
			}
		}, logger)
		if err != nil {
			logger.WithError(err).Error("failed to start path watcher")
			return 3
		}
		pw.Start(gctx)
		defer func() {
			if err := pw.Stop(); err != nil {
				logger.WithError(err).Warn("failed to stop path watcher")
			}
		}()
	}

	g.Go(func() error {
		ticker := time.NewTicker(cfg.Monitor.Interval)
		defer ticker.Stop()
		for {
			verdict, code := eng.Run(gctx, cfg)
			if mtr != nil {
				mtr.Record(verdict, code == 2)
			}
			if code == 3 {
				return fmt.Errorf("detection run failed fatally")
			}
			if cfg.Monitor.FailFast && verdict.IsCompromised {
				return errCompromised
			}

			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-ticker.C:
			case path := <-triggers:
				logger.WithField("path", path).Info("watched path appeared, re-running detection")
			}
		}
	})

	err := g.Wait()
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return 0
	case errors.Is(err, errCompromised):
		logger.Error("stopping on compromised verdict (--fail-fast)")
		return 1
	default:
		logger.WithError(err).Error("monitor stopped with error")
		return 3
	}
}

// serveMetrics runs the Prometheus endpoint until the group context ends.
func serveMetrics(ctx context.Context, g *errgroup.Group, logger *logrus.Logger, mtr *metrics.Metrics) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", mtr.Handler())
	srv := &http.Server{Addr: cfg.Monitor.MetricsAddr, Handler: mux}

	g.Go(func() error {
		logger.WithField("addr", cfg.Monitor.MetricsAddr).Info("serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	addDetectionFlags(monitorCmd)

	monitorCmd.Flags().DurationVar(&cfg.Monitor.Interval, flags.FlagInterval, cfg.Monitor.Interval, "Interval between detection runs")
	monitorCmd.Flags().BoolVar(&cfg.Monitor.Watch, flags.FlagWatch, false, "Re-run immediately when a watched artifact path appears")
	monitorCmd.Flags().StringVar(&cfg.Monitor.MetricsAddr, flags.FlagMetricsAddr, "", "Serve Prometheus metrics on this address (e.g. :9464)")
	monitorCmd.Flags().BoolVar(&cfg.Monitor.FailFast, flags.FlagFailFast, false, "Stop at the first compromised verdict and exit 1")
}

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/upistack/upi-gateway/app/factory"
	"github.com/upistack/upi-gateway/app/service"
)

var workerMode bool

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the pending-payment auto-verification sweeper",
	Long:  "Scan pending payments and probabilistically promote eligible ones to paid, once or continuously with --worker.",
	Run:   runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)
	sweepCmd.Flags().BoolVar(&workerMode, "worker", false, "Run continuously using the configured interval")
}

func runSweep(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()

	sweeperLogger, logCloser, err := factory.NewSweeperLogger(cfg.Storage.DataDir)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to open sweeper log")
	}
	defer logCloser.Close()

	paymentService := mustCreatePaymentService(cfg, sweeperLogger)
	sweeperLogger.Info("Payment verification worker started")

	if workerMode {
		runWorker("auto_verify", cfg.Sweeper.Interval, sweeperLogger, paymentService)
		return
	}

	runJob("auto_verify", sweeperLogger, func() error {
		return paymentService.RunAutoVerifyBatch(context.Background())
	})
}

// runWorker drives the sweep on a ticker. Ticks are handled one at a time
// on this goroutine, so a slow batch simply delays the next one; sweeps
// never overlap.
func runWorker(name string, interval time.Duration, logger logrus.FieldLogger, paymentService *service.PaymentService) {
	if interval <= 0 {
		logger.WithField("job", name).Fatal("invalid worker interval")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	for {
		select {
		case <-quit:
			logger.WithField("job", name).Info("Worker shutdown requested")
			return
		case <-ticker.C:
			runJob(name, logger, func() error { return paymentService.RunAutoVerifyBatch(ctx) })
		}
	}
}

// runJob runs one batch and logs the outcome. Errors are logged and
// swallowed so a bad tick never takes the worker down.
func runJob(name string, logger logrus.FieldLogger, fn func() error) {
	start := time.Now()
	err := fn()
	latency := time.Since(start)
	if err != nil {
		logger.WithError(err).WithField("job", name).WithField("latency", latency.String()).Error("job_failed")
		return
	}
	logger.WithField("job", name).WithField("latency", latency.String()).Info("job_completed")
}

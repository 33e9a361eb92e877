package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/upistack/upi-gateway/app/qr"
	"github.com/upistack/upi-gateway/app/repository"
	"github.com/upistack/upi-gateway/app/service"
	"github.com/upistack/upi-gateway/config"
)

var rootCmd = &cobra.Command{
	Use:   "upi-gateway",
	Short: "UPI payment-intent gateway",
	Long:  "A UPI deep-link payment gateway with QR rendering, manual and admin verification, and a background auto-verification sweeper.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}
	return cfg
}

func configureLogging(cfg *config.Config) error {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	return nil
}

func mustCreatePaymentService(cfg *config.Config, logger logrus.FieldLogger) *service.PaymentService {
	store, err := repository.NewPaymentFileStore(cfg.Storage.DataDir)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize payment store")
	}

	return service.NewPaymentService(
		store,
		qr.NewPNGGenerator(0),
		cfg.UPI,
		cfg.Payments,
		cfg.Sweeper,
		logger,
	)
}

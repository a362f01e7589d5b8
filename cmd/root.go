package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"procure/internal/api"
	"procure/internal/config"
	"procure/internal/invoices"
	"procure/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "procure",
	Short: "Procure CLI - purchase invoices, payments and stock valuation",
	Long: `Procure CLI is a command-line client for a procurement/inventory
backend: it manages purchase invoices (company bills and multi-purchase-order
vendor bills), records payments, runs the backend's maintenance sync
operations, and produces printable stock valuation reports.

Required environment variables:
  PROCURE_API_BASE_URL - Base URL of the procurement backend
  PROCURE_API_TOKEN    - Bearer token for authenticated requests`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("Procure CLI executed")

		fmt.Println("Welcome to Procure CLI!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}

// newCommandContext creates a context with timeout and interrupt
// handling for one command invocation.
func newCommandContext(timeoutSecs int, log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSecs)*time.Second)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling operation")
			cancel()
		case <-ctx.Done():
			// Context completed normally
		}
	}()

	return ctx, cancel
}

// newInvoiceService builds the invoice service from environment
// configuration.
func newInvoiceService(log zerolog.Logger) (*invoices.Service, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("Configuration invalid")
		return nil, nil, fmt.Errorf("configuration invalid: %w\n"+
			"Please set PROCURE_API_BASE_URL (and PROCURE_API_TOKEN if the backend requires it)", err)
	}

	client, err := api.NewClient(cfg.APIBaseURL, cfg.APIToken, api.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create API client: %w", err)
	}

	return invoices.NewService(client), cfg, nil
}

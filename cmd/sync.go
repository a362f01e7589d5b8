package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"procure/internal/invoices"
	"procure/internal/logger"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run the backend's invoice maintenance operations",
	Long: `Trigger the backend's data reconciliation endpoints: payment status
resync, invoice number prefix backfill, and orphan payment reset. The
actual reconciliation logic runs server-side; these commands only
trigger it and report the outcome.`,
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Reconcile each invoice's payment status with its balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSingleSync(cmd, "status", func(ctx context.Context, s *invoices.Service) invoices.Result[invoices.SyncOutcome] {
			return s.SyncPaymentStatus(ctx)
		})
	},
}

var syncPrefixesCmd = &cobra.Command{
	Use:   "prefixes",
	Short: "Backfill invoice number prefixes on legacy records",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSingleSync(cmd, "prefixes", func(ctx context.Context, s *invoices.Service) invoices.Result[invoices.SyncOutcome] {
			return s.SyncInvoicePrefixes(ctx)
		})
	},
}

var syncOrphansCmd = &cobra.Command{
	Use:   "orphan-payments",
	Short: "Reset payments not covered by any vendor bill",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSingleSync(cmd, "orphan-payments", func(ctx context.Context, s *invoices.Service) invoices.Result[invoices.SyncOutcome] {
			return s.ResetOrphanPayments(ctx)
		})
	},
}

var syncAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Run all three maintenance operations sequentially",
	RunE:  runSyncAll,
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.AddCommand(syncStatusCmd, syncPrefixesCmd, syncOrphansCmd, syncAllCmd)
	syncCmd.PersistentFlags().Int("timeout", 120, "Request timeout in seconds")
}

func runSingleSync(cmd *cobra.Command, name string, op func(context.Context, *invoices.Service) invoices.Result[invoices.SyncOutcome]) error {
	log := logger.WithComponent("sync-" + name)

	service, _, err := newInvoiceService(log)
	if err != nil {
		return err
	}
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")
	ctx, cancel := newCommandContext(timeoutSecs, log)
	defer cancel()

	result := op(ctx, service)
	if !result.Success {
		return fmt.Errorf("%s", result.Error)
	}
	printSyncOutcome(name, result)
	return nil
}

func runSyncAll(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("sync-all")

	service, _, err := newInvoiceService(log)
	if err != nil {
		return err
	}
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")
	ctx, cancel := newCommandContext(timeoutSecs, log)
	defer cancel()

	report := service.RunAllSync(ctx)
	printSyncOutcome("status", report.PaymentStatus)
	printSyncOutcome("prefixes", report.Prefixes)
	printSyncOutcome("orphan-payments", report.OrphanPayments)

	if !report.PaymentStatus.Success || !report.Prefixes.Success || !report.OrphanPayments.Success {
		return fmt.Errorf("one or more maintenance operations failed")
	}
	return nil
}

func printSyncOutcome(name string, result invoices.Result[invoices.SyncOutcome]) {
	if !result.Success {
		fmt.Printf("%-16s FAILED: %s\n", name, result.Error)
		return
	}
	fmt.Printf("%-16s ok: %d updated, %d skipped", name, result.Data.Updated, result.Data.Skipped)
	if result.Data.Message != "" {
		fmt.Printf(" (%s)", result.Data.Message)
	}
	fmt.Println()
}

package invoices_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"procure/internal/api"
	"procure/internal/invoices"
)

// Example demonstrates basic usage of the invoice service.
func Example() {
	// Load .env file (using godotenv in main)
	// This should be done in your main() function:
	//
	// if err := godotenv.Load(); err != nil {
	//     log.Printf("Warning: Could not load .env file: %v", err)
	// }

	// Create transport - the token is sent as a bearer credential
	client, err := api.NewClient("https://erp.example.com/api", "api-token")
	if err != nil {
		log.Fatal(err)
	}

	service := invoices.NewService(client)

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// List overdue invoices - failures come back as the failure
	// variant, never as a Go error
	result := service.GetOverdue(ctx)
	if !result.Success {
		log.Fatalf("Failed to list overdue invoices: %s", result.Error)
	}

	for _, invoice := range result.Data {
		fmt.Printf("Invoice %s: %s outstanding, %d days overdue\n",
			invoice.InvoiceNumber,
			invoice.BalanceDue.StringFixed(3),
			invoices.DaysOverdue(invoice.DueDate, time.Now()))
	}
}

// ExampleService_RunAllSync demonstrates the maintenance operations.
func ExampleService_RunAllSync() {
	client, err := api.NewClient("https://erp.example.com/api", "api-token")
	if err != nil {
		log.Fatal(err)
	}
	service := invoices.NewService(client)

	ctx := context.Background()

	// Run all three reconciliation endpoints; each result stands alone
	report := service.RunAllSync(ctx)

	if !report.PaymentStatus.Success {
		fmt.Printf("payment status sync failed: %s\n", report.PaymentStatus.Error)
	}
	if !report.Prefixes.Success {
		fmt.Printf("prefix backfill failed: %s\n", report.Prefixes.Error)
	}
	if !report.OrphanPayments.Success {
		fmt.Printf("orphan payment reset failed: %s\n", report.OrphanPayments.Error)
	}
}

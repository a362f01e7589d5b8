package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"procure/internal/billing"
	"procure/internal/invoices"
	"procure/internal/logger"
	"procure/pkg/models"
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Manage purchase invoices (company and vendor bills)",
	Long: `Work with the backend's purchase invoices: list and inspect them,
create company bills against a purchase order or vendor bills covering
several unbilled purchase orders of one supplier, record payments, and
manage the per-invoice attachment slot.`,
}

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List purchase invoices matching the given filters",
	Example: `  # All invoices
  procure invoices list

  # Overdue vendor bills for one supplier
  procure invoices list --payment-status overdue --bill-type vendor --supplier SUP-7

  # Draft company bills, second page
  procure invoices list --bill-type company --bill-status draft --page 2 --limit 50`,
	RunE: runInvoicesList,
}

var invoicesGetCmd = &cobra.Command{
	Use:   "get [invoice-id]",
	Short: "Show one invoice as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoicesGet,
}

var invoicesCreateCmd = &cobra.Command{
	Use:   "create [purchase-order.json]",
	Short: "Create a company bill against a purchase order",
	Long: `Create a company bill for the purchase order described by the given
JSON file. The invoice amount is prefilled from the order's line items
(stated total price, else quantity times rate) or, when the order has no
items, from its stored total amount; pass --amount to override.`,
	Example: `  procure invoices create po-1042.json --number INV-2026-017
  procure invoices create po-1042.json --number INV-2026-017 --amount 1250.500 --due-date 2026-09-30`,
	Args: cobra.ExactArgs(1),
	RunE: runInvoicesCreate,
}

var invoicesCreateVendorCmd = &cobra.Command{
	Use:   "create-vendor [purchase-order.json]",
	Short: "Create a vendor bill covering several unbilled purchase orders",
	Long: `Create a vendor bill. The supplier's unbilled purchase orders are
fetched from the backend; each --select flag picks one of them. All
selected purchase orders must belong to the same supplier.`,
	Example: `  procure invoices create-vendor po-1042.json --number VB-2026-003 \
    --select PO-1042 --select PO-1055 --amount 8100.000`,
	Args: cobra.ExactArgs(1),
	RunE: runInvoicesCreateVendor,
}

var invoicesUpdateCmd = &cobra.Command{
	Use:   "update [invoice-id]",
	Short: "Replace an invoice's editable fields",
	Example: `  procure invoices update INV-17 --number INV-2026-017 --amount 1250.500
  procure invoices update INV-17 --due-date 2026-10-15 --notes "terms renegotiated"`,
	Args: cobra.ExactArgs(1),
	RunE: runInvoicesUpdate,
}

var invoicesPayCmd = &cobra.Command{
	Use:   "pay [invoice-id]",
	Short: "Record a payment against an invoice",
	Example: `  procure invoices pay INV-17 --amount 500 --method bank_transfer --reference TRX-991
  procure invoices pay INV-17 --amount 120.250 --method cheque --date 2026-08-28`,
	Args: cobra.ExactArgs(1),
	RunE: runInvoicesPay,
}

var invoicesAttachCmd = &cobra.Command{
	Use:   "attach [invoice-id] [file]",
	Short: "Upload a document into the invoice's attachment slot",
	Args:  cobra.ExactArgs(2),
	RunE:  runInvoicesAttach,
}

var invoicesDetachCmd = &cobra.Command{
	Use:   "detach [invoice-id]",
	Short: "Remove the invoice's attachment",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoicesDetach,
}

var invoicesDeleteCmd = &cobra.Command{
	Use:   "delete [invoice-id]",
	Short: "Delete an invoice",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoicesDelete,
}

var invoicesSetStatusCmd = &cobra.Command{
	Use:   "set-status [invoice-id] [draft|sent]",
	Short: "Move a company bill between draft and sent",
	Args:  cobra.ExactArgs(2),
	RunE:  runInvoicesSetStatus,
}

var invoicesUnbilledCmd = &cobra.Command{
	Use:   "unbilled",
	Short: "List purchase orders with no invoice issued against them",
	RunE:  runInvoicesUnbilled,
}

var invoicesUnlinkedCmd = &cobra.Command{
	Use:   "unlinked",
	Short: "List company bills not yet covered by a vendor bill",
	RunE:  runInvoicesUnlinked,
}

func init() {
	rootCmd.AddCommand(invoicesCmd)
	invoicesCmd.AddCommand(
		invoicesListCmd,
		invoicesGetCmd,
		invoicesCreateCmd,
		invoicesCreateVendorCmd,
		invoicesUpdateCmd,
		invoicesPayCmd,
		invoicesAttachCmd,
		invoicesDetachCmd,
		invoicesDeleteCmd,
		invoicesSetStatusCmd,
		invoicesUnbilledCmd,
		invoicesUnlinkedCmd,
	)

	invoicesCmd.PersistentFlags().Int("timeout", 60, "Request timeout in seconds")

	invoicesListCmd.Flags().String("search", "", "Free-text search")
	invoicesListCmd.Flags().String("supplier", "", "Filter by supplier id")
	invoicesListCmd.Flags().String("purchase-order", "", "Filter by purchase order id")
	invoicesListCmd.Flags().String("payment-status", "", "unpaid, partial, paid or overdue")
	invoicesListCmd.Flags().String("bill-status", "", "draft or sent (company bills)")
	invoicesListCmd.Flags().String("bill-type", "", "company or vendor")
	invoicesListCmd.Flags().String("from-date", "", "Invoice date lower bound (YYYY-MM-DD)")
	invoicesListCmd.Flags().String("to-date", "", "Invoice date upper bound (YYYY-MM-DD)")
	invoicesListCmd.Flags().Int("page", 0, "Result page")
	invoicesListCmd.Flags().Int("limit", 0, "Page size")
	invoicesListCmd.Flags().Bool("json", false, "Emit raw JSON instead of a table")

	for _, c := range []*cobra.Command{invoicesCreateCmd, invoicesCreateVendorCmd} {
		c.Flags().String("number", "", "Invoice number (required)")
		c.Flags().String("amount", "", "Invoice amount (default: computed from the order)")
		c.Flags().String("date", "", "Invoice date (YYYY-MM-DD)")
		c.Flags().String("due-date", "", "Due date (YYYY-MM-DD)")
		c.Flags().Int("terms", 30, "Payment terms in days")
		c.Flags().String("notes", "", "Free-text notes")
	}
	invoicesCreateVendorCmd.Flags().StringArray("select", nil, "Unbilled purchase order id to cover (repeatable)")

	invoicesUpdateCmd.Flags().String("number", "", "New invoice number")
	invoicesUpdateCmd.Flags().String("amount", "", "New invoice amount")
	invoicesUpdateCmd.Flags().String("date", "", "New invoice date (YYYY-MM-DD)")
	invoicesUpdateCmd.Flags().String("due-date", "", "New due date (YYYY-MM-DD)")
	invoicesUpdateCmd.Flags().Int("terms", 0, "New payment terms in days")
	invoicesUpdateCmd.Flags().String("notes", "", "New free-text notes")

	invoicesPayCmd.Flags().String("amount", "", "Payment amount (required)")
	invoicesPayCmd.Flags().String("method", models.PaymentMethodBankTransfer, "bank_transfer, cheque, cash or card")
	invoicesPayCmd.Flags().String("date", "", "Payment date (YYYY-MM-DD)")
	invoicesPayCmd.Flags().String("reference", "", "Payment reference")
	invoicesPayCmd.Flags().String("notes", "", "Free-text notes")

	invoicesUnbilledCmd.Flags().String("supplier", "", "Filter by supplier id")
	invoicesUnlinkedCmd.Flags().String("supplier", "", "Filter by supplier id")
	invoicesUnlinkedCmd.Flags().String("status", "", "Filter by bill status")
}

func runInvoicesList(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("invoices-list")

	service, cfg, err := newInvoiceService(log)
	if err != nil {
		return err
	}
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")
	ctx, cancel := newCommandContext(timeoutSecs, log)
	defer cancel()

	filters := invoices.Filters{ProjectID: cfg.ProjectID}
	filters.Search, _ = cmd.Flags().GetString("search")
	filters.SupplierID, _ = cmd.Flags().GetString("supplier")
	filters.PurchaseOrderID, _ = cmd.Flags().GetString("purchase-order")
	filters.PaymentStatus, _ = cmd.Flags().GetString("payment-status")
	filters.BillStatus, _ = cmd.Flags().GetString("bill-status")
	filters.BillType, _ = cmd.Flags().GetString("bill-type")
	filters.FromDate, _ = cmd.Flags().GetString("from-date")
	filters.ToDate, _ = cmd.Flags().GetString("to-date")
	filters.Page, _ = cmd.Flags().GetInt("page")
	filters.Limit, _ = cmd.Flags().GetInt("limit")

	result := service.GetAll(ctx, filters)
	if !result.Success {
		return fmt.Errorf("%s", result.Error)
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		return printJSON(result.Data)
	}
	return printInvoiceTable(result.Data)
}

func runInvoicesGet(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("invoices-get")

	service, _, err := newInvoiceService(log)
	if err != nil {
		return err
	}
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")
	ctx, cancel := newCommandContext(timeoutSecs, log)
	defer cancel()

	result := service.GetByID(ctx, args[0])
	if !result.Success {
		return fmt.Errorf("%s", result.Error)
	}
	return printJSON(result.Data)
}

func runInvoicesCreate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("invoices-create")

	order, err := loadPurchaseOrder(args[0])
	if err != nil {
		return err
	}
	service, _, err := newInvoiceService(log)
	if err != nil {
		return err
	}
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")
	ctx, cancel := newCommandContext(timeoutSecs, log)
	defer cancel()

	workspace := billing.NewWorkspace(service, *order)
	workspace.StartCreate()

	create, _ := workspace.Mode().(billing.CreateMode)
	form := create.Form
	form.InvoiceNumber, _ = cmd.Flags().GetString("number")
	if amount, _ := cmd.Flags().GetString("amount"); amount != "" {
		form.Amount = amount
	}
	form.InvoiceDate, _ = cmd.Flags().GetString("date")
	form.DueDate, _ = cmd.Flags().GetString("due-date")
	form.PaymentTermsDays, _ = cmd.Flags().GetInt("terms")
	form.Notes, _ = cmd.Flags().GetString("notes")
	workspace.UpdateCreateForm(form)

	if !workspace.SubmitCreate(ctx) {
		return fmt.Errorf("%s", workspace.Message())
	}

	log.Info().
		Str("order", order.OrderNumber).
		Str("invoice_number", form.InvoiceNumber).
		Msg("Company bill created")
	fmt.Printf("Company bill %s created for purchase order %s\n", form.InvoiceNumber, order.OrderNumber)
	return nil
}

func runInvoicesCreateVendor(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("invoices-create-vendor")

	order, err := loadPurchaseOrder(args[0])
	if err != nil {
		return err
	}
	service, _, err := newInvoiceService(log)
	if err != nil {
		return err
	}
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")
	ctx, cancel := newCommandContext(timeoutSecs, log)
	defer cancel()

	workspace := billing.NewWorkspace(service, *order)
	workspace.StartCreate()
	workspace.SetBillType(ctx, models.BillTypeVendor)
	if msg := workspace.Message(); msg != "" {
		return fmt.Errorf("%s", msg)
	}

	selected, _ := cmd.Flags().GetStringArray("select")
	for _, id := range selected {
		workspace.ToggleOrder(id)
	}

	create, _ := workspace.Mode().(billing.CreateMode)
	form := create.Form
	form.InvoiceNumber, _ = cmd.Flags().GetString("number")
	if amount, _ := cmd.Flags().GetString("amount"); amount != "" {
		form.Amount = amount
	}
	form.InvoiceDate, _ = cmd.Flags().GetString("date")
	form.DueDate, _ = cmd.Flags().GetString("due-date")
	form.PaymentTermsDays, _ = cmd.Flags().GetInt("terms")
	form.Notes, _ = cmd.Flags().GetString("notes")
	workspace.UpdateCreateForm(form)

	if !workspace.SubmitCreate(ctx) {
		return fmt.Errorf("%s", workspace.Message())
	}

	log.Info().
		Str("invoice_number", form.InvoiceNumber).
		Int("covered_orders", len(selected)).
		Msg("Vendor bill created")
	fmt.Printf("Vendor bill %s created covering %d purchase order(s)\n", form.InvoiceNumber, len(selected))
	return nil
}

func runInvoicesUpdate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("invoices-update")

	service, _, err := newInvoiceService(log)
	if err != nil {
		return err
	}
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")
	ctx, cancel := newCommandContext(timeoutSecs, log)
	defer cancel()

	// Start from the stored invoice so unset flags keep their values.
	detail := service.GetByID(ctx, args[0])
	if !detail.Success {
		return fmt.Errorf("%s", detail.Error)
	}
	current := detail.Data

	payload := models.NewPurchaseInvoice{
		InvoiceNumber:        current.InvoiceNumber,
		InvoiceAmount:        current.InvoiceAmount,
		PaymentTermsDays:     current.PaymentTermsDays,
		Notes:                current.Notes,
		BillType:             current.BillType,
		BillStatus:           current.BillStatus,
		PurchaseOrderID:      current.PurchaseOrderID,
		SupplierID:           current.SupplierID,
		CoversPurchaseOrders: current.CoversPurchaseOrders,
		CoversCompanyBills:   current.CoversCompanyBills,
	}
	if current.InvoiceDate != nil {
		payload.InvoiceDate = current.InvoiceDate.Format("2006-01-02")
	}
	if current.DueDate != nil {
		payload.DueDate = current.DueDate.Format("2006-01-02")
	}

	if number, _ := cmd.Flags().GetString("number"); number != "" {
		payload.InvoiceNumber = number
	}
	if raw, _ := cmd.Flags().GetString("amount"); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", raw, err)
		}
		payload.InvoiceAmount = amount
	}
	if date, _ := cmd.Flags().GetString("date"); date != "" {
		payload.InvoiceDate = date
	}
	if dueDate, _ := cmd.Flags().GetString("due-date"); dueDate != "" {
		payload.DueDate = dueDate
	}
	if cmd.Flags().Changed("terms") {
		payload.PaymentTermsDays, _ = cmd.Flags().GetInt("terms")
	}
	if cmd.Flags().Changed("notes") {
		payload.Notes, _ = cmd.Flags().GetString("notes")
	}

	result := service.Update(ctx, args[0], payload)
	if !result.Success {
		return fmt.Errorf("%s", result.Error)
	}
	fmt.Printf("Invoice %s updated\n", result.Data.InvoiceNumber)
	return nil
}

func runInvoicesPay(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("invoices-pay")

	service, _, err := newInvoiceService(log)
	if err != nil {
		return err
	}
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")
	ctx, cancel := newCommandContext(timeoutSecs, log)
	defer cancel()

	detail := service.GetByID(ctx, args[0])
	if !detail.Success {
		return fmt.Errorf("%s", detail.Error)
	}

	workspace := billing.NewWorkspace(service, models.PurchaseOrder{ID: detail.Data.PurchaseOrderID})
	workspace.StartPayment(*detail.Data)

	form := billing.PaymentForm{}
	form.Amount, _ = cmd.Flags().GetString("amount")
	form.Method, _ = cmd.Flags().GetString("method")
	form.PaymentDate, _ = cmd.Flags().GetString("date")
	form.Reference, _ = cmd.Flags().GetString("reference")
	form.Notes, _ = cmd.Flags().GetString("notes")
	workspace.UpdatePaymentForm(form)

	if !workspace.SubmitPayment(ctx) {
		return fmt.Errorf("%s", workspace.Message())
	}

	fmt.Printf("Payment of %s recorded against invoice %s (balance was %s)\n",
		form.Amount, detail.Data.InvoiceNumber, detail.Data.BalanceDue.StringFixed(3))
	return nil
}

func runInvoicesAttach(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("invoices-attach")

	service, _, err := newInvoiceService(log)
	if err != nil {
		return err
	}
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")
	ctx, cancel := newCommandContext(timeoutSecs, log)
	defer cancel()

	file, err := os.Open(args[1])
	if err != nil {
		return fmt.Errorf("failed to open attachment file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close attachment file")
		}
	}()

	result := service.UploadAttachment(ctx, args[0], filepath.Base(args[1]), file)
	if !result.Success {
		return fmt.Errorf("%s", result.Error)
	}
	fmt.Printf("Attachment stored at %s\n", result.Data.Attachment)
	return nil
}

func runInvoicesDetach(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("invoices-detach")

	service, _, err := newInvoiceService(log)
	if err != nil {
		return err
	}
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")
	ctx, cancel := newCommandContext(timeoutSecs, log)
	defer cancel()

	result := service.DeleteAttachment(ctx, args[0])
	if !result.Success {
		return fmt.Errorf("%s", result.Error)
	}
	fmt.Println("Attachment removed")
	return nil
}

func runInvoicesDelete(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("invoices-delete")

	service, _, err := newInvoiceService(log)
	if err != nil {
		return err
	}
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")
	ctx, cancel := newCommandContext(timeoutSecs, log)
	defer cancel()

	result := service.Delete(ctx, args[0])
	if !result.Success {
		return fmt.Errorf("%s", result.Error)
	}
	fmt.Printf("Invoice %s deleted\n", args[0])
	return nil
}

func runInvoicesSetStatus(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("invoices-set-status")

	status := args[1]
	if status != models.BillStatusDraft && status != models.BillStatusSent {
		return fmt.Errorf("invalid bill status %q: must be draft or sent", status)
	}

	service, _, err := newInvoiceService(log)
	if err != nil {
		return err
	}
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")
	ctx, cancel := newCommandContext(timeoutSecs, log)
	defer cancel()

	result := service.UpdateCompanyBillStatus(ctx, args[0], status)
	if !result.Success {
		return fmt.Errorf("%s", result.Error)
	}
	fmt.Printf("Invoice %s is now %s\n", args[0], status)
	return nil
}

func runInvoicesUnbilled(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("invoices-unbilled")

	service, _, err := newInvoiceService(log)
	if err != nil {
		return err
	}
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")
	ctx, cancel := newCommandContext(timeoutSecs, log)
	defer cancel()

	supplier, _ := cmd.Flags().GetString("supplier")
	result := service.GetUnbilledPurchaseOrders(ctx, supplier)
	if !result.Success {
		return fmt.Errorf("%s", result.Error)
	}
	return printJSON(result.Data)
}

func runInvoicesUnlinked(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("invoices-unlinked")

	service, _, err := newInvoiceService(log)
	if err != nil {
		return err
	}
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")
	ctx, cancel := newCommandContext(timeoutSecs, log)
	defer cancel()

	supplier, _ := cmd.Flags().GetString("supplier")
	status, _ := cmd.Flags().GetString("status")
	result := service.GetUnlinkedCompanyBills(ctx, supplier, status)
	if !result.Success {
		return fmt.Errorf("%s", result.Error)
	}
	return printInvoiceTable(result.Data)
}

// loadPurchaseOrder reads a purchase order from a JSON file.
func loadPurchaseOrder(path string) (*models.PurchaseOrder, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read purchase order file: %w", err)
	}
	var order models.PurchaseOrder
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("failed to parse purchase order file: %w", err)
	}
	return &order, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to create JSON output: %w", err)
	}
	_, err = os.Stdout.Write(append(data, '\n'))
	return err
}

func printInvoiceTable(list []models.PurchaseInvoice) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNUMBER\tTYPE\tAMOUNT\tPAID\tBALANCE\tSTATUS\tBADGE")
	for _, inv := range list {
		badge := billing.StatusBadge(inv.PaymentStatus)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s/%s\n",
			inv.ID,
			inv.InvoiceNumber,
			inv.BillType,
			inv.InvoiceAmount.StringFixed(3),
			inv.PaidAmount.StringFixed(3),
			inv.BalanceDue.StringFixed(3),
			inv.PaymentStatus,
			badge.Color, badge.Icon)
	}
	return w.Flush()
}

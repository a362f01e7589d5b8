package invoices

import "context"

// SyncOutcome is the backend's report for one maintenance run.
type SyncOutcome struct {
	Updated int    `json:"updated"`
	Skipped int    `json:"skipped"`
	Message string `json:"message,omitempty"`
}

// SyncReport aggregates the three maintenance operations run by
// RunAllSync. Each result stands alone; one failing does not stop the
// others.
type SyncReport struct {
	PaymentStatus  Result[SyncOutcome] `json:"paymentStatus"`
	Prefixes       Result[SyncOutcome] `json:"prefixes"`
	OrphanPayments Result[SyncOutcome] `json:"orphanPayments"`
}

// SyncPaymentStatus asks the backend to reconcile each invoice's
// payment status with its recorded balance.
func (s *Service) SyncPaymentStatus(ctx context.Context) Result[SyncOutcome] {
	return s.postSync(ctx, basePath+"/sync-status", "sync payment status")
}

// SyncInvoicePrefixes backfills invoice number prefixes on legacy
// records.
func (s *Service) SyncInvoicePrefixes(ctx context.Context) Result[SyncOutcome] {
	return s.postSync(ctx, basePath+"/sync-prefixes", "sync invoice prefixes")
}

// ResetOrphanPayments clears payments recorded against purchase orders
// that no vendor bill covers.
func (s *Service) ResetOrphanPayments(ctx context.Context) Result[SyncOutcome] {
	return s.postSync(ctx, basePath+"/reset-orphan-payments", "reset orphan payments")
}

// RunAllSync runs the three maintenance operations sequentially and
// collects every result.
func (s *Service) RunAllSync(ctx context.Context) SyncReport {
	s.log.Info().Msg("Running all invoice maintenance operations")
	return SyncReport{
		PaymentStatus:  s.SyncPaymentStatus(ctx),
		Prefixes:       s.SyncInvoicePrefixes(ctx),
		OrphanPayments: s.ResetOrphanPayments(ctx),
	}
}

func (s *Service) postSync(ctx context.Context, path, action string) Result[SyncOutcome] {
	var data SyncOutcome
	if err := s.client.Post(ctx, path, nil, &data); err != nil {
		s.log.Error().Err(err).Str("action", action).Msg("Maintenance request failed")
		return fail[SyncOutcome](err)
	}
	s.log.Info().
		Str("action", action).
		Int("updated", data.Updated).
		Int("skipped", data.Skipped).
		Msg("Maintenance operation completed")
	return ok(data)
}

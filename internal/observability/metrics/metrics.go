package metrics

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics exposes application-level instruments.
type Metrics struct {
	invoiceDerivations metric.Int64Counter
	balanceWalks       metric.Int64Counter
	tariffEvaluations  metric.Int64Counter
	tariffReloads      metric.Int64Counter
	readingsIngested   metric.Int64Counter
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "rentledger"
	}
	meter := provider.Meter(name)

	invoiceDerivations, err := meter.Int64Counter("rentledger_invoice_derivations_total")
	if err != nil {
		return nil, err
	}
	balanceWalks, err := meter.Int64Counter("rentledger_balance_walks_total")
	if err != nil {
		return nil, err
	}
	tariffEvaluations, err := meter.Int64Counter("rentledger_tariff_evaluations_total")
	if err != nil {
		return nil, err
	}
	tariffReloads, err := meter.Int64Counter("rentledger_tariff_reloads_total")
	if err != nil {
		return nil, err
	}
	readingsIngested, err := meter.Int64Counter("rentledger_meter_readings_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		invoiceDerivations: invoiceDerivations,
		balanceWalks:       balanceWalks,
		tariffEvaluations:  tariffEvaluations,
		tariffReloads:      tariffReloads,
		readingsIngested:   readingsIngested,
	}, nil
}

// RecordInvoiceDerivation counts invoice snapshot computations by status.
func (m *Metrics) RecordInvoiceDerivation(ctx context.Context, status string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("status", strings.TrimSpace(status)))
	m.invoiceDerivations.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordBalanceWalk counts cumulative balance computations.
func (m *Metrics) RecordBalanceWalk(ctx context.Context) {
	if m == nil {
		return
	}
	m.balanceWalks.Add(ctx, 1)
}

// RecordTariffEvaluation counts bracket cost computations by utility.
func (m *Metrics) RecordTariffEvaluation(ctx context.Context, utility string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("utility", strings.TrimSpace(utility)))
	m.tariffEvaluations.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordTariffReload counts tariff table hot reloads by outcome.
func (m *Metrics) RecordTariffReload(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("outcome", strings.TrimSpace(outcome)))
	m.tariffReloads.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordReadingIngested counts accepted meter readings.
func (m *Metrics) RecordReadingIngested(ctx context.Context) {
	if m == nil {
		return
	}
	m.readingsIngested.Add(ctx, 1)
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"status":      {},
	"utility":     {},
	"outcome":     {},
	"endpoint":    {},
	"status_code": {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}

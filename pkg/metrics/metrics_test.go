package metrics_test

import (
	"context"
	"testing"
	"time"

	infraeventbus "github.com/amirasaad/digitalbank/infra/eventbus"
	"github.com/amirasaad/digitalbank/pkg/domain/events"
	"github.com/amirasaad/digitalbank/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusCollector_Register(t *testing.T) {
	registry := prometheus.NewRegistry()
	pc := metrics.NewPrometheusCollector("test")
	require.NoError(t, pc.Register(registry))
	assert.Error(t, pc.Register(registry), "double registration must fail")
}

func TestPrometheusCollector_HTTP(t *testing.T) {
	registry := prometheus.NewRegistry()
	pc := metrics.NewPrometheusCollector("test")
	require.NoError(t, pc.Register(registry))

	pc.RecordHTTP("GET", "/accounts/:id", 200, 15*time.Millisecond)
	pc.RecordHTTP("GET", "/accounts/:id", 404, time.Millisecond)

	count, err := testutil.GatherAndCount(registry, "test_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	count, err = testutil.GatherAndCount(registry, "test_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSubscribe_CountsLedgerEventsOnce(t *testing.T) {
	registry := prometheus.NewRegistry()
	pc := metrics.NewPrometheusCollector("bank")
	require.NoError(t, pc.Register(registry))

	bus := infraeventbus.NewWithMemory(nil)
	metrics.Subscribe(bus, pc, nil)

	ctx := context.Background()
	dep := &events.MoneyDeposited{Meta: events.NewMeta(), Amount: decimal.RequireFromString("100.5")}
	require.NoError(t, bus.Emit(ctx, dep))
	require.NoError(t, bus.Emit(ctx, dep)) // redelivery
	require.NoError(t, bus.Emit(ctx, &events.MoneyDeposited{Meta: events.NewMeta(), Amount: decimal.RequireFromString("20")}))
	require.NoError(t, bus.Emit(ctx, &events.MoneyTransferred{Meta: events.NewMeta(), Amount: decimal.RequireFromString("7")}))

	ops, err := registry.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range ops {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			for _, l := range m.GetLabel() {
				key += "|" + l.GetValue()
			}
			values[key] = m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, 2.0, values["bank_ledger_operations_total|deposit"])
	assert.Equal(t, 120.5, values["bank_ledger_amount_total|deposit"])
	assert.Equal(t, 1.0, values["bank_ledger_operations_total|transfer"])
}

func TestNoOpCollector(t *testing.T) {
	var c metrics.Collector = metrics.NoOpCollector{}
	c.RecordOperation("deposit", decimal.NewFromInt(1))
	c.RecordHTTP("GET", "/", 200, time.Second)
}

// Package metrics collects ledger and HTTP metrics.
package metrics

import (
	"time"

	"github.com/shopspring/decimal"
)

// Collector defines the interface for recording metrics.
// Implementations can export to various backends; NoOpCollector discards everything.
type Collector interface {
	// RecordOperation counts a committed balance operation and its amount.
	RecordOperation(kind string, amount decimal.Decimal)
	// RecordHTTP observes a served request.
	RecordHTTP(method, route string, status int, duration time.Duration)
}

// Operation kinds recorded by the ledger subscriber.
const (
	OperationDeposit    = "deposit"
	OperationWithdrawal = "withdrawal"
	OperationTransfer   = "transfer"
	OperationOpen       = "account_opened"
)

// NoOpCollector is used when metrics are disabled.
type NoOpCollector struct{}

func (NoOpCollector) RecordOperation(string, decimal.Decimal) {}

func (NoOpCollector) RecordHTTP(string, string, int, time.Duration) {}

var _ Collector = NoOpCollector{}

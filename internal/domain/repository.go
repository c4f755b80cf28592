package domain

import (
	"context"
	"time"
)

// OrderRepository defines persistence for orders.
//
// Checkpoint must write all three parallel lists in one statement so a crash
// can never leave them with diverging lengths.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByOrderID(ctx context.Context, orderID string) (*Order, error)
	MarkPaid(ctx context.Context, orderID, paymentProvider, transactionID string) error

	SetProcessing(ctx context.Context, orderID string) error
	SetCompleted(ctx context.Context, orderID string) error
	SetFailed(ctx context.Context, orderID, lastError string) error
	// SetProcessingError records a retryable error while keeping the order in
	// processing so a later supervisor pass picks it up again.
	SetProcessingError(ctx context.Context, orderID, lastError string) error

	Checkpoint(ctx context.Context, orderID string, results, jobIDs []string, diags []Diagnostic) error
	SetResults(ctx context.Context, orderID string, results []string) error

	ListUnfinished(ctx context.Context) ([]Order, error)
	LastWithResults(ctx context.Context) (*Order, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ResultImageRepository stores finished image bytes so results survive
// redeploys and expiring provider URLs.
type ResultImageRepository interface {
	Save(ctx context.Context, orderID string, index int, contentType string, data []byte) error
	Get(ctx context.Context, orderID string, index int) (string, []byte, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// SourceImageRepository stores the customer's uploaded photo at order creation
// so fulfillment still has it after the upload directory is wiped.
type SourceImageRepository interface {
	Save(ctx context.Context, orderID, contentType string, data []byte) error
	Get(ctx context.Context, orderID string) (string, []byte, error)
	Exists(ctx context.Context, orderID string) (bool, error)
}

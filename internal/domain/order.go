package domain

import "time"

// OrderStatus enumerates order lifecycle states.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusFailed     OrderStatus = "failed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Terminal reports whether no further fulfillment work may happen for the status.
func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderStatusCompleted, OrderStatusFailed, OrderStatusCancelled:
		return true
	}
	return false
}

// Diagnostic is a best-effort snapshot of one provider job, stored per
// completed unit. It is informational only and never read back into control
// logic, so free-text fields are truncated before persisting.
type Diagnostic struct {
	JobID       string `json:"id"`
	Status      string `json:"status"`
	Error       string `json:"error,omitempty"`
	Provider    string `json:"provider,omitempty"`
	Model       string `json:"model,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	StartedAt   string `json:"started_at,omitempty"`
	CompletedAt string `json:"completed_at,omitempty"`
	ResultURL   string `json:"result_url,omitempty"`
	Logs        string `json:"logs,omitempty"`
}

// Order is the unit of billed work: one paid request for a set of stylized
// portraits, one output image per style reference.
type Order struct {
	ID      int64
	OrderID string
	Status  OrderStatus
	Email   string
	Locale  string

	StyleID      int
	StyleName    string
	PortraitMode string

	ImageURL       string
	StyleImageURL  string
	StyleImageURLs []string

	// ResultURLs, JobIDs and Diagnostics are parallel, append-only lists; one
	// entry each per completed unit, committed together in a single write.
	ResultURLs  []string
	JobIDs      []string
	Diagnostics []Diagnostic

	LastError string

	Amount               float64
	PaymentProvider      string
	PaymentTransactionID string

	CreatedAt   time.Time
	PaidAt      *time.Time
	CompletedAt *time.Time
	FailedAt    *time.Time
}

// TargetRefs returns the ordered style references this order owes one image
// per. Orders for a single style carry only StyleImageURL.
func (o *Order) TargetRefs() []string {
	if len(o.StyleImageURLs) > 0 {
		return o.StyleImageURLs
	}
	if o.StyleImageURL != "" {
		return []string{o.StyleImageURL}
	}
	return nil
}

// TargetCount is the number of output images the order owes.
func (o *Order) TargetCount() int {
	return len(o.TargetRefs())
}

// DoneCount is the number of units already produced and committed.
func (o *Order) DoneCount() int {
	return len(o.ResultURLs)
}

// Unfinished reports whether the order still owes output images.
func (o *Order) Unfinished() bool {
	target := o.TargetCount()
	return target > 0 && o.DoneCount() < target
}

package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"artify/internal/domain"
	"artify/internal/infra"
	"artify/internal/sqlinline"
)

// OrderRepositoryPG implements domain.OrderRepository using PostgreSQL.
type OrderRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewOrderRepository constructs a new order repository instance.
func NewOrderRepository(sql infra.SQLExecutor) *OrderRepositoryPG {
	return &OrderRepositoryPG{sql: sql}
}

// Create inserts a new order and fills in its generated id and creation time.
func (r *OrderRepositoryPG) Create(ctx context.Context, order *domain.Order) error {
	styleURLs, err := marshalStringList(order.StyleImageURLs)
	if err != nil {
		return fmt.Errorf("encode style refs: %w", err)
	}
	row := r.sql.QueryRow(ctx, sqlinline.QInsertOrder,
		order.OrderID,
		string(order.Status),
		order.Email,
		order.Locale,
		order.StyleID,
		order.StyleName,
		order.PortraitMode,
		order.ImageURL,
		nullable(order.StyleImageURL),
		styleURLs,
		order.Amount,
	)
	if err := row.Scan(&order.ID, &order.CreatedAt); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByOrderID loads one order by its external identifier.
func (r *OrderRepositoryPG) GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QGetOrderByID, orderID)
	order, err := scanOrder(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// MarkPaid transitions a pending order to paid and records payment metadata.
// Returns ErrOrderNotPayable when the order already left pending.
func (r *OrderRepositoryPG) MarkPaid(ctx context.Context, orderID, paymentProvider, transactionID string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QMarkOrderPaid, orderID, paymentProvider, transactionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotPayable
	}
	return nil
}

func (r *OrderRepositoryPG) SetProcessing(ctx context.Context, orderID string) error {
	_, err := r.sql.Exec(ctx, sqlinline.QSetOrderProcessing, orderID)
	return err
}

func (r *OrderRepositoryPG) SetCompleted(ctx context.Context, orderID string) error {
	_, err := r.sql.Exec(ctx, sqlinline.QSetOrderCompleted, orderID)
	return err
}

func (r *OrderRepositoryPG) SetFailed(ctx context.Context, orderID, lastError string) error {
	_, err := r.sql.Exec(ctx, sqlinline.QSetOrderFailed, orderID, lastError)
	return err
}

func (r *OrderRepositoryPG) SetProcessingError(ctx context.Context, orderID, lastError string) error {
	_, err := r.sql.Exec(ctx, sqlinline.QSetOrderProcessingError, orderID, lastError)
	return err
}

// Checkpoint persists the three parallel progress lists in a single UPDATE so
// they can never diverge in length under a crash.
func (r *OrderRepositoryPG) Checkpoint(ctx context.Context, orderID string, results, jobIDs []string, diags []domain.Diagnostic) error {
	if len(results) != len(jobIDs) || len(results) != len(diags) {
		return fmt.Errorf("checkpoint lists diverge: %d results, %d job ids, %d diagnostics",
			len(results), len(jobIDs), len(diags))
	}
	resultsJSON, err := marshalStringList(results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	jobIDsJSON, err := marshalStringList(jobIDs)
	if err != nil {
		return fmt.Errorf("encode job ids: %w", err)
	}
	diagsJSON, err := json.Marshal(diags)
	if err != nil {
		return fmt.Errorf("encode diagnostics: %w", err)
	}
	_, err = r.sql.Exec(ctx, sqlinline.QCheckpointOrderProgress, orderID, resultsJSON, jobIDsJSON, diagsJSON)
	return err
}

// SetResults overwrites the result list, used after durable persistence swaps
// provider URLs for permanent ones. Length and order are preserved by callers.
func (r *OrderRepositoryPG) SetResults(ctx context.Context, orderID string, results []string) error {
	resultsJSON, err := marshalStringList(results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	_, err = r.sql.Exec(ctx, sqlinline.QSetOrderResults, orderID, resultsJSON)
	return err
}

// ListUnfinished returns paid and processing orders, oldest first.
func (r *OrderRepositoryPG) ListUnfinished(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListUnfinishedOrders)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

// LastWithResults returns the most recent order holding at least one result.
func (r *OrderRepositoryPG) LastWithResults(ctx context.Context) (*domain.Order, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QLastOrderWithResults)
	order, err := scanOrder(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// DeleteOlderThan removes orders created before the cutoff.
func (r *OrderRepositoryPG) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteExpiredOrders, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		order      domain.Order
		status     string
		styleURLs  []byte
		resultURLs []byte
		jobIDs     []byte
		diags      []byte
	)
	err := row.Scan(
		&order.ID,
		&order.OrderID,
		&status,
		&order.Email,
		&order.Locale,
		&order.StyleID,
		&order.StyleName,
		&order.PortraitMode,
		&order.ImageURL,
		&order.StyleImageURL,
		&styleURLs,
		&resultURLs,
		&jobIDs,
		&diags,
		&order.LastError,
		&order.Amount,
		&order.PaymentProvider,
		&order.PaymentTransactionID,
		&order.CreatedAt,
		&order.PaidAt,
		&order.CompletedAt,
		&order.FailedAt,
	)
	if err != nil {
		return nil, err
	}
	order.Status = domain.OrderStatus(status)
	if order.StyleImageURLs, err = unmarshalStringList(styleURLs); err != nil {
		return nil, fmt.Errorf("decode style refs for %s: %w", order.OrderID, err)
	}
	if order.ResultURLs, err = unmarshalStringList(resultURLs); err != nil {
		return nil, fmt.Errorf("decode results for %s: %w", order.OrderID, err)
	}
	if order.JobIDs, err = unmarshalStringList(jobIDs); err != nil {
		return nil, fmt.Errorf("decode job ids for %s: %w", order.OrderID, err)
	}
	if len(diags) > 0 {
		if err := json.Unmarshal(diags, &order.Diagnostics); err != nil {
			return nil, fmt.Errorf("decode diagnostics for %s: %w", order.OrderID, err)
		}
	}
	return &order, nil
}

func marshalStringList(list []string) ([]byte, error) {
	if list == nil {
		list = []string{}
	}
	return json.Marshal(list)
}

func unmarshalStringList(data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var _ domain.OrderRepository = (*OrderRepositoryPG)(nil)

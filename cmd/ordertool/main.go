package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"artify/internal/adapter/repo"
	"artify/internal/domain"
	"artify/internal/infra"
)

// ordertool is the operator's escape hatch: inspect stuck orders and flip
// their status without touching SQL by hand.
func main() {
	var (
		listFlag   bool
		showFlag   string
		resumeFlag string
		failFlag   string
		reasonFlag string
	)

	flag.BoolVar(&listFlag, "list", false, "list unfinished orders (paid or processing)")
	flag.StringVar(&showFlag, "show", "", "print one order as JSON")
	flag.StringVar(&resumeFlag, "resume", "", "put a failed order back into processing so the supervisor retries it")
	flag.StringVar(&failFlag, "fail", "", "mark an order failed")
	flag.StringVar(&reasonFlag, "reason", "marked failed by operator", "error text recorded with -fail")
	flag.Parse()

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "ordertool").Logger()
	orders := repo.NewOrderRepository(infra.NewSQLRunner(pool, logger))

	switch {
	case listFlag:
		listUnfinished(ctx, orders)
	case showFlag != "":
		showOrder(ctx, orders, showFlag)
	case resumeFlag != "":
		resumeOrder(ctx, orders, resumeFlag)
	case failFlag != "":
		failOrder(ctx, orders, failFlag, reasonFlag)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func listUnfinished(ctx context.Context, orders domain.OrderRepository) {
	list, err := orders.ListUnfinished(ctx)
	if err != nil {
		exitWithError(err)
	}
	if len(list) == 0 {
		fmt.Println("no unfinished orders")
		return
	}
	for _, o := range list {
		fmt.Printf("%s  %-10s  %2d/%2d done  style=%d  created=%s  err=%s\n",
			o.OrderID, o.Status, o.DoneCount(), o.TargetCount(),
			o.StyleID, o.CreatedAt.Format(time.RFC3339), o.LastError)
	}
}

func showOrder(ctx context.Context, orders domain.OrderRepository, orderID string) {
	order, err := orders.GetByOrderID(ctx, orderID)
	if errors.Is(err, domain.ErrNotFound) {
		exitWithError(fmt.Errorf("order %s not found", orderID))
	}
	if err != nil {
		exitWithError(err)
	}
	out, err := json.MarshalIndent(order, "", "  ")
	if err != nil {
		exitWithError(err)
	}
	fmt.Println(string(out))
}

func resumeOrder(ctx context.Context, orders domain.OrderRepository, orderID string) {
	order, err := orders.GetByOrderID(ctx, orderID)
	if errors.Is(err, domain.ErrNotFound) {
		exitWithError(fmt.Errorf("order %s not found", orderID))
	}
	if err != nil {
		exitWithError(err)
	}
	switch order.Status {
	case domain.OrderStatusCompleted:
		exitWithError(fmt.Errorf("order %s is already completed", orderID))
	case domain.OrderStatusCancelled:
		exitWithError(fmt.Errorf("order %s is cancelled", orderID))
	case domain.OrderStatusPending:
		exitWithError(fmt.Errorf("order %s has not been paid", orderID))
	}
	if err := orders.SetProcessing(ctx, orderID); err != nil {
		exitWithError(err)
	}
	fmt.Printf("order %s set to processing, supervisor will pick it up (%d/%d units done)\n",
		orderID, order.DoneCount(), order.TargetCount())
}

func failOrder(ctx context.Context, orders domain.OrderRepository, orderID, reason string) {
	if err := orders.SetFailed(ctx, orderID, reason); err != nil {
		exitWithError(err)
	}
	fmt.Printf("order %s marked failed: %s\n", orderID, reason)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

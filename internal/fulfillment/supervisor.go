package fulfillment

import (
	"context"
	"time"
)

// Supervisor periodically re-drives unfinished orders. It is the only
// recovery path for orders stranded in processing by a killed worker, and it
// runs concurrently with request-triggered executor launches: the per-order
// lock makes the overlap harmless.
type Supervisor struct {
	service  *Service
	interval time.Duration
}

func NewSupervisor(service *Service, interval time.Duration) *Supervisor {
	if interval <= 0 {
		interval = 20 * time.Second
	}
	return &Supervisor{service: service, interval: interval}
}

// Run blocks until ctx is done. The first scan happens shortly after start so
// a restarted process picks up stranded orders without waiting a full tick.
func (s *Supervisor) Run(ctx context.Context) {
	startup := time.NewTimer(2 * time.Second)
	defer startup.Stop()
	select {
	case <-ctx.Done():
		return
	case <-startup.C:
		s.scan(ctx)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.scan(ctx)
		}
	}
}

func (s *Supervisor) scan(ctx context.Context) {
	orders, err := s.service.orders.ListUnfinished(ctx)
	if err != nil {
		s.service.logger.Error().Err(err).Msg("supervisor: list unfinished orders")
		return
	}
	for _, order := range orders {
		if !order.Unfinished() {
			continue
		}
		if s.service.Active(order.OrderID) {
			continue
		}
		s.service.logger.Info().
			Str("order_id", order.OrderID).
			Str("status", string(order.Status)).
			Int("done", order.DoneCount()).
			Int("target", order.TargetCount()).
			Msg("supervisor: re-driving order")
		go s.service.Process(ctx, order.OrderID)
	}
}

package fulfillment

import (
	"context"
	"time"

	"artify/internal/domain"
	"artify/internal/infra"
)

// Janitor deletes orders and stored result images past their retention
// window. Paid customers are told results stay available for a limited time,
// keeping them longer is a liability, not a feature.
type Janitor struct {
	orders       domain.OrderRepository
	resultImages domain.ResultImageRepository
	orderTTL     time.Duration
	imageTTL     time.Duration
	logger       *infra.Logger
}

func NewJanitor(orders domain.OrderRepository, resultImages domain.ResultImageRepository,
	orderTTL, imageTTL time.Duration, logger *infra.Logger) *Janitor {
	return &Janitor{
		orders:       orders,
		resultImages: resultImages,
		orderTTL:     orderTTL,
		imageTTL:     imageTTL,
		logger:       logger,
	}
}

// Run sweeps once at startup and then daily until ctx is done.
func (j *Janitor) Run(ctx context.Context) {
	j.sweep(ctx)
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *Janitor) sweep(ctx context.Context) {
	now := time.Now()
	if j.imageTTL > 0 {
		n, err := j.resultImages.DeleteOlderThan(ctx, now.Add(-j.imageTTL))
		if err != nil {
			j.logger.Error().Err(err).Msg("janitor: delete expired result images")
		} else if n > 0 {
			j.logger.Info().Int64("deleted", n).Msg("janitor: expired result images removed")
		}
	}
	if j.orderTTL > 0 {
		n, err := j.orders.DeleteOlderThan(ctx, now.Add(-j.orderTTL))
		if err != nil {
			j.logger.Error().Err(err).Msg("janitor: delete expired orders")
		} else if n > 0 {
			j.logger.Info().Int64("deleted", n).Msg("janitor: expired orders removed")
		}
	}
}

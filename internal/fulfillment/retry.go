package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"artify/internal/providers/style"
)

// unitOutcome is the result of driving one unit through the retry policy.
type unitOutcome struct {
	result   *style.Result
	provider style.Generator
	fallback bool
}

// generateUnit produces one result image, retrying the primary provider up to
// cfg.UnitAttempts times and then trying the fallback once with its own
// internal budget.
//
// Two error classes escape without any unit-level retry or fallback:
// rate limit exhaustion, which is terminal for the whole order since the
// provider client already burned its backoff budget, and permanent request
// errors, which no amount of retrying will fix.
func (s *Service) generateUnit(ctx context.Context, req style.Request) (*unitOutcome, error) {
	var lastErr error
	for attempt := 1; attempt <= s.cfg.UnitAttempts; attempt++ {
		result, err := s.primary.Transfer(ctx, req)
		if err == nil {
			return &unitOutcome{result: result, provider: s.primary}, nil
		}
		if errors.Is(err, style.ErrRateLimit) || errors.Is(err, style.ErrPermanent) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
		s.logger.Warn().
			Err(err).
			Str("order_id", req.OrderID).
			Int("unit", req.Unit).
			Int("attempt", attempt).
			Int("max_attempts", s.cfg.UnitAttempts).
			Str("provider", s.primary.Name()).
			Msg("unit attempt failed")
		if attempt < s.cfg.UnitAttempts {
			if err := s.sleep(ctx, s.cfg.UnitRetryWait); err != nil {
				return nil, err
			}
		}
	}

	if s.fallback == nil {
		return nil, fmt.Errorf("%s exhausted %d attempts: %w",
			s.primary.Name(), s.cfg.UnitAttempts, lastErr)
	}

	s.logger.Warn().
		Str("order_id", req.OrderID).
		Int("unit", req.Unit).
		Str("primary", s.primary.Name()).
		Str("fallback", s.fallback.Name()).
		Msg("primary exhausted, trying fallback provider")
	result, err := s.fallback.Transfer(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fallback %s failed: %v (primary %s: %w)",
			s.fallback.Name(), err, s.primary.Name(), lastErr)
	}
	return &unitOutcome{result: result, provider: s.fallback, fallback: true}, nil
}

// sleepCtx waits for d unless the context ends first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Package fulfillment drives paid orders through style transfer. Each order
// is a sequence of units, one per style reference, produced strictly in order
// with a durable checkpoint after every unit so a killed worker resumes where
// it stopped instead of regenerating anything.
package fulfillment

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"artify/internal/domain"
	"artify/internal/infra"
	"artify/internal/notify"
	"artify/internal/providers/style"
	"artify/internal/stylepack"
)

// SourceResolver yields the provider-facing source image URL for an order.
type SourceResolver interface {
	Resolve(ctx context.Context, order *domain.Order) string
}

// ResultPersister makes result images durable.
type ResultPersister interface {
	PersistUnit(ctx context.Context, orderID string, index int, contentType string, data []byte) (string, error)
	PersistBatch(ctx context.Context, orderID string, resultURLs []string) []string
}

// Config carries the executor tunables.
type Config struct {
	UnitAttempts  int
	UnitRetryWait time.Duration
	UnitPacing    time.Duration
	PublicBaseURL string
}

// Options wires a fulfillment Service.
type Options struct {
	Orders   domain.OrderRepository
	Sources  SourceResolver
	Results  ResultPersister
	Notifier notify.Notifier
	Lock     Locker
	Primary  style.Generator
	Fallback style.Generator
	Config   Config
	Logger   *infra.Logger
}

// Service runs resumable executor passes over orders.
type Service struct {
	orders   domain.OrderRepository
	sources  SourceResolver
	results  ResultPersister
	notifier notify.Notifier
	lock     Locker
	active   *activeSet
	primary  style.Generator
	fallback style.Generator
	cfg      Config
	logger   *infra.Logger

	// sleep is replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewService(opts Options) *Service {
	cfg := opts.Config
	if cfg.UnitAttempts <= 0 {
		cfg.UnitAttempts = 3
	}
	if cfg.UnitRetryWait <= 0 {
		cfg.UnitRetryWait = 10 * time.Second
	}
	if cfg.UnitPacing <= 0 {
		cfg.UnitPacing = 30 * time.Second
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Service{
		orders:   opts.Orders,
		sources:  opts.Sources,
		results:  opts.Results,
		notifier: notifier,
		lock:     opts.Lock,
		active:   newActiveSet(),
		primary:  opts.Primary,
		fallback: opts.Fallback,
		cfg:      cfg,
		logger:   logger,
		sleep:    sleepCtx,
	}
}

// Active reports whether an executor run for the order is live in this process.
func (s *Service) Active(orderID string) bool {
	return s.active.contains(orderID)
}

// Process runs one executor pass for an order. Safe to call concurrently and
// from multiple processes: the in-process active set and the cross-process
// advisory lock guarantee at most one live run per order, extra callers
// return without writing anything.
func (s *Service) Process(ctx context.Context, orderID string) {
	if !s.active.tryAdd(orderID) {
		return
	}
	defer s.active.remove(orderID)

	release, acquired := s.lock.TryAcquire(ctx, orderID)
	if !acquired {
		s.logger.Info().
			Str("order_id", orderID).
			Msg("order locked by another worker, skipping run")
		return
	}
	defer release()

	order, err := s.orders.GetByOrderID(ctx, orderID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID).Msg("load order failed")
		return
	}
	if order.Status == domain.OrderStatusCancelled {
		return
	}

	targets := order.TargetRefs()
	if len(targets) == 0 {
		// Validation failure from order creation, no point retrying and no
		// email: the customer never had a viable order.
		if err := s.orders.SetFailed(ctx, orderID, "missing style reference"); err != nil {
			s.logger.Error().Err(err).Str("order_id", orderID).Msg("mark failed")
		}
		return
	}

	done := order.DoneCount()
	if done >= len(targets) {
		s.finalize(ctx, order)
		return
	}

	if err := s.orders.SetProcessing(ctx, orderID); err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID).Msg("mark processing")
		return
	}

	sourceURL := s.sources.Resolve(ctx, order)
	s.logger.Info().
		Str("order_id", orderID).
		Int("done", done).
		Int("target", len(targets)).
		Str("provider", s.primary.Name()).
		Msg("executor run starting")

	progress := append([]string(nil), order.ResultURLs...)
	jobIDs := append([]string(nil), order.JobIDs...)
	diags := append([]domain.Diagnostic(nil), order.Diagnostics...)
	// The three ledgers advance together; trim any tail that outran progress.
	jobIDs = trimTo(jobIDs, done)
	diags = diags[:min(len(diags), done)]

	for i := done; i < len(targets); i++ {
		if i > done {
			if err := s.sleep(ctx, s.cfg.UnitPacing); err != nil {
				return
			}
		}
		req := style.Request{
			SourceImageURL: sourceURL,
			StyleImageURL:  s.absoluteRef(targets[i]),
			StylePrompt:    stylepack.PromptForRef(order.StyleID, targets[i]),
			OrderID:        orderID,
			Unit:           i,
		}
		if strings.EqualFold(order.PortraitMode, "artistic") {
			req.PromptSuffix = stylepack.ArtisticSuffix
		}

		outcome, err := s.generateUnit(ctx, req)
		if err != nil {
			s.handleUnitFailure(ctx, order, i, err)
			return
		}

		resultURL := outcome.result.URL
		if resultURL == "" {
			// Inline bytes are persisted right now, the ledger never holds
			// a placeholder that a crash could strand.
			resultURL, err = s.results.PersistUnit(ctx, orderID, i,
				outcome.result.ContentType, outcome.result.Data)
			if err != nil {
				s.logger.Error().Err(err).
					Str("order_id", orderID).
					Int("unit", i).
					Msg("unit persistence failed, leaving order processing")
				s.setProcessingError(ctx, orderID, err.Error())
				return
			}
		}

		diag := outcome.provider.Describe(ctx, outcome.result.JobID)
		if diag.ResultURL == "" {
			diag.ResultURL = resultURL
		}

		progress = append(progress, resultURL)
		jobIDs = append(jobIDs, outcome.result.JobID)
		diags = append(diags, diag)
		if err := s.orders.Checkpoint(ctx, orderID, progress, jobIDs, diags); err != nil {
			// Without the checkpoint this unit never happened as far as the
			// order is concerned. Stop here and let the supervisor re-drive.
			s.logger.Error().Err(err).
				Str("order_id", orderID).
				Int("unit", i).
				Msg("progress checkpoint failed")
			return
		}
		s.logger.Info().
			Str("order_id", orderID).
			Int("unit", i).
			Int("target", len(targets)).
			Str("provider", outcome.provider.Name()).
			Bool("fallback", outcome.fallback).
			Msg("unit completed")
	}

	order.ResultURLs = progress
	s.finalize(ctx, order)
}

// finalize makes every result durable and closes the order. Idempotent: a
// crash between persistence and the status flip just repeats both on the next
// run without regenerating or duplicate billing anything.
func (s *Service) finalize(ctx context.Context, order *domain.Order) {
	orderID := order.OrderID
	if order.Status == domain.OrderStatusCompleted {
		return
	}
	durable := s.results.PersistBatch(ctx, orderID, order.ResultURLs)
	if err := s.orders.SetResults(ctx, orderID, durable); err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID).Msg("store durable results")
		return
	}
	if err := s.orders.SetCompleted(ctx, orderID); err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID).Msg("mark completed")
		return
	}
	s.logger.Info().
		Str("order_id", orderID).
		Int("results", len(durable)).
		Msg("order completed")

	note := notify.ReadyNotification{
		OrderID:    orderID,
		Email:      order.Email,
		Locale:     order.Locale,
		StyleName:  order.StyleName,
		ResultURLs: durable,
		StatusURL:  s.statusURL(orderID),
	}
	if pack, ok := stylepack.ByID(order.StyleID); ok {
		note.Labels = pack.LabelsFor(len(durable))
	}
	if err := s.notifier.NotifyReady(ctx, note); err != nil {
		s.logger.Warn().Err(err).Str("order_id", orderID).Msg("ready notification failed")
	}
}

// handleUnitFailure classifies the escaped unit error and settles the order.
func (s *Service) handleUnitFailure(ctx context.Context, order *domain.Order, unit int, err error) {
	orderID := order.OrderID
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		// Shutdown mid-run. The checkpoint already holds everything finished
		// so far; the supervisor resumes from there.
		s.logger.Info().Str("order_id", orderID).Int("unit", unit).Msg("run interrupted")
		return
	}
	msg := err.Error()
	switch {
	case errors.Is(err, style.ErrRateLimit):
		s.logger.Error().Err(err).Str("order_id", orderID).Int("unit", unit).
			Msg("rate limit budget exhausted, failing order")
		if dberr := s.orders.SetFailed(ctx, orderID, "Rate limit: "+msg); dberr != nil {
			s.logger.Error().Err(dberr).Str("order_id", orderID).Msg("mark failed")
		}
	case isTransientSourceError(msg):
		s.logger.Warn().Err(err).Str("order_id", orderID).Int("unit", unit).
			Msg("transient source image error, order stays processing for retry")
		s.setProcessingError(ctx, orderID, msg)
	default:
		s.logger.Error().Err(err).Str("order_id", orderID).Int("unit", unit).
			Msg("unit failed terminally")
		if dberr := s.orders.SetFailed(ctx, orderID, msg); dberr != nil {
			s.logger.Error().Err(dberr).Str("order_id", orderID).Msg("mark failed")
		}
		if nerr := s.notifier.NotifyFailed(ctx, orderID, order.Email, msg); nerr != nil {
			s.logger.Warn().Err(nerr).Str("order_id", orderID).Msg("failure notification failed")
		}
	}
}

func (s *Service) setProcessingError(ctx context.Context, orderID, msg string) {
	if err := s.orders.SetProcessingError(ctx, orderID, msg); err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID).Msg("record processing error")
	}
}

// absoluteRef turns catalog-relative style paths into public URLs.
func (s *Service) absoluteRef(ref string) string {
	if strings.HasPrefix(ref, "/") && s.cfg.PublicBaseURL != "" {
		return strings.TrimRight(s.cfg.PublicBaseURL, "/") + ref
	}
	return ref
}

func (s *Service) statusURL(orderID string) string {
	if s.cfg.PublicBaseURL == "" {
		return ""
	}
	return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/order-status?order_id=" + orderID
}

// isTransientSourceError spots upstream image host hiccups that resolve on
// their own, a retry beats failing a paid order over a flaky CDN.
func isTransientSourceError(msg string) bool {
	if strings.Contains(msg, "504") && strings.Contains(msg, "Gateway Time-out") {
		return true
	}
	return strings.Contains(msg, "litter.catbox.moe")
}

func trimTo(list []string, n int) []string {
	if len(list) <= n {
		return list
	}
	return list[:n]
}

package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"artify/internal/domain"
	"artify/internal/notify"
	"artify/internal/stylepack"
)

// DebugLastOrder returns the most recent order that has any results, useful
// when checking a deployment without digging through the database.
func (a *App) DebugLastOrder(w http.ResponseWriter, r *http.Request) {
	order, err := a.Orders.LastWithResults(r.Context())
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "no orders with results")
		return
	}
	if err != nil {
		a.Logger.Error().Err(err).Msg("load last order")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load order")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"order_id":    order.OrderID,
		"status":      string(order.Status),
		"style_id":    order.StyleID,
		"result_urls": order.ResultURLs,
		"job_ids":     order.JobIDs,
		"last_error":  order.LastError,
	})
}

func (a *App) DebugLastOrderResults(w http.ResponseWriter, r *http.Request) {
	order, err := a.Orders.LastWithResults(r.Context())
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "no orders with results")
		return
	}
	if err != nil {
		a.Logger.Error().Err(err).Msg("load last order")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load order")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"order_id":    order.OrderID,
		"result_urls": order.ResultURLs,
		"diagnostics": order.Diagnostics,
	})
}

// ResumeOrder kicks fulfillment for an order that is stuck in paid or
// processing, e.g. after an operator fixed a provider outage.
func (a *App) ResumeOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := a.loadOrder(w, r)
	if !ok {
		return
	}
	if order.Status != domain.OrderStatusPaid && order.Status != domain.OrderStatusProcessing {
		a.error(w, http.StatusBadRequest, "bad_request", "order is not resumable in status "+string(order.Status))
		return
	}
	if a.Fulfillment.Active(order.OrderID) {
		a.json(w, http.StatusOK, map[string]string{"status": "already running", "order_id": order.OrderID})
		return
	}
	a.Logger.Info().Str("order_id", order.OrderID).Msg("manual resume requested")
	go a.Fulfillment.Process(context.Background(), order.OrderID)
	a.json(w, http.StatusOK, map[string]string{"status": "resumed", "order_id": order.OrderID})
}

// ResendReadyEmail re-sends the completion email for a finished order.
func (a *App) ResendReadyEmail(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	order, err := a.Orders.GetByOrderID(r.Context(), orderID)
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "order not found")
		return
	}
	if err != nil {
		a.Logger.Error().Err(err).Str("order_id", orderID).Msg("load order")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load order")
		return
	}
	if order.Status != domain.OrderStatusCompleted || len(order.ResultURLs) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "order has no finished results")
		return
	}
	var labels []stylepack.Label
	if pack, ok := stylepack.ByID(order.StyleID); ok {
		labels = pack.LabelsFor(len(order.ResultURLs))
	}
	n := notify.ReadyNotification{
		OrderID:    order.OrderID,
		Email:      order.Email,
		Locale:     order.Locale,
		StyleName:  order.StyleName,
		ResultURLs: order.ResultURLs,
		Labels:     labels,
		StatusURL:  a.Config.PublicBaseURL + "/order-status?order_id=" + order.OrderID,
	}
	if err := a.Notifier.NotifyReady(r.Context(), n); err != nil {
		a.Logger.Error().Err(err).Str("order_id", orderID).Msg("resend ready email")
		a.error(w, http.StatusInternalServerError, "internal", "failed to send email")
		return
	}
	a.json(w, http.StatusOK, map[string]string{"status": "sent", "order_id": orderID})
}

package handlers

import (
	"encoding/json"
	"net/http"

	"artify/internal/domain"
	"artify/internal/fulfillment"
	"artify/internal/infra"
	"artify/internal/notify"
	"artify/internal/storage"
)

// App carries the dependencies handlers need.
type App struct {
	Orders       domain.OrderRepository
	ResultImages domain.ResultImageRepository
	SourceImages domain.SourceImageRepository
	Fulfillment  *fulfillment.Service
	Notifier     notify.Notifier
	Files        *storage.FileStore
	Config       *infra.Config
	Logger       *infra.Logger
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, kind, message string) {
	a.json(w, code, map[string]any{
		"error":   kind,
		"message": message,
	})
}

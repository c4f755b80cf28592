package httpapi

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"artify/internal/http/handlers"
	"artify/internal/middleware"
)

// NewRouter wires the public API. Debug routes are only mounted outside
// production.
func NewRouter(app *handlers.App, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(logger),
		middleware.CORS([]string{app.Config.PublicBaseURL}),
		middleware.I18N("en"),
	)

	// Style reference images live under the static tree and must be
	// reachable by the generation providers over the public base URL.
	staticDir := http.Dir(filepath.Join(app.Config.StoragePath, "static"))
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(staticDir)))

	r.Get("/api/health", app.Health)
	r.Get("/api/styles", app.MarketingStyles)

	r.Route("/api/orders", func(r chi.Router) {
		r.With(middleware.RateLimit(app.Config.RateLimitPerMin, time.Minute)).
			Post("/", app.OrdersCreate)
		r.Get("/{orderID}", app.OrdersGet)
		r.Get("/{orderID}/status", app.OrdersStatus)
		r.With(middleware.RateLimit(app.Config.RateLimitPerMin, time.Minute)).
			Post("/{orderID}/pay", app.OrdersPay)
		r.Get("/{orderID}/result/{index}", app.OrderResultImage)
		r.Get("/{orderID}/source-image", app.OrderSourceImage)
		r.Get("/{orderID}/download-all", app.OrderDownloadAll)
	})

	r.With(middleware.RateLimit(app.Config.RateLimitPerMin, time.Minute)).
		Post("/api/upload", app.UploadImage)
	r.Get("/api/uploads/{uploadID}/{filename}", app.ServeUpload)

	if app.Config.AppEnv != "production" {
		r.Route("/api/debug", func(r chi.Router) {
			r.Get("/last-order", app.DebugLastOrder)
			r.Get("/last-order/results", app.DebugLastOrderResults)
			r.Post("/orders/{orderID}/resume", app.ResumeOrder)
			r.Post("/orders/{orderID}/resend-email", app.ResendReadyEmail)
		})
	}

	return r
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"artify/internal/domain"
	"artify/internal/middleware"
	"artify/internal/storage"
	"artify/internal/stylepack"
	ziputil "artify/pkg/zip"
)

// Style packs visible in the selector but not yet sellable.
var comingSoonPacks = map[int]bool{
	stylepack.IDAncientWorlds:      true,
	stylepack.IDEvolutionPortraits: true,
	stylepack.IDRoyaltyPortraits:   true,
}

type orderCreateRequest struct {
	Email        string `json:"email"`
	StyleID      int    `json:"style_id"`
	PackTier     int    `json:"pack_tier"`
	ImageURL     string `json:"image_url"`
	PortraitMode string `json:"portrait_mode"`
	Locale       string `json:"locale"`
}

type orderResponse struct {
	OrderID       string     `json:"order_id"`
	Status        string     `json:"status"`
	Email         string     `json:"email"`
	StyleID       int        `json:"style_id"`
	StyleName     string     `json:"style_name"`
	PortraitMode  string     `json:"portrait_mode"`
	ImageURL      string     `json:"image_url"`
	StyleImageURL string     `json:"style_image_url,omitempty"`
	Amount        float64    `json:"amount"`
	CreatedAt     time.Time  `json:"created_at"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	FailedAt      *time.Time `json:"failed_at,omitempty"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		OrderID:       o.OrderID,
		Status:        string(o.Status),
		Email:         o.Email,
		StyleID:       o.StyleID,
		StyleName:     o.StyleName,
		PortraitMode:  o.PortraitMode,
		ImageURL:      o.ImageURL,
		StyleImageURL: o.StyleImageURL,
		Amount:        o.Amount,
		CreatedAt:     o.CreatedAt,
		PaidAt:        o.PaidAt,
		CompletedAt:   o.CompletedAt,
		FailedAt:      o.FailedAt,
	}
}

func (a *App) OrdersCreate(w http.ResponseWriter, r *http.Request) {
	var req orderCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@") {
		a.error(w, http.StatusBadRequest, "bad_request", "a valid email is required")
		return
	}
	pack, ok := stylepack.ByID(req.StyleID)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "unknown style")
		return
	}
	if comingSoonPacks[req.StyleID] {
		a.error(w, http.StatusBadRequest, "bad_request",
			"Acest pachet de stiluri nu este disponibil momentan. Te rugăm să alegi alt stil.")
		return
	}
	if !strings.HasPrefix(strings.TrimSpace(req.ImageURL), "https://") {
		a.error(w, http.StatusBadRequest, "bad_request",
			"The uploaded photo URL must be a secure (HTTPS) link. Please upload your photo again.")
		return
	}

	tier := req.PackTier
	if tier != 5 && tier != 15 {
		tier = 5
	}
	amount := 9.99
	if tier == 15 {
		amount = 19.99
	}

	styleURLs := make([]string, 0, tier)
	for _, ref := range pack.Refs(tier) {
		styleURLs = append(styleURLs, a.resolveStyleURL(ref))
	}
	// Fail fast: providers need public HTTPS style references, a half
	// configured server must not accept money for orders it cannot fulfill.
	for _, u := range styleURLs {
		if !strings.HasPrefix(u, "https://") {
			a.Logger.Warn().Str("resolved", u).Msg("style url not https, PUBLIC_BASE_URL likely unset")
			a.error(w, http.StatusServiceUnavailable, "misconfigured",
				"Server configuration error: PUBLIC_BASE_URL must be set so we can process your artwork. "+
					"Please try again in a moment or contact support.")
			return
		}
	}

	mode := strings.ToLower(strings.TrimSpace(req.PortraitMode))
	if mode != "realistic" && mode != "artistic" {
		mode = "realistic"
	}
	locale := strings.TrimSpace(req.Locale)
	if locale == "" {
		locale = middleware.LocaleFromContext(r.Context())
	}

	order := &domain.Order{
		OrderID:        newOrderID(),
		Status:         domain.OrderStatusPending,
		Email:          strings.TrimSpace(req.Email),
		Locale:         locale,
		StyleID:        req.StyleID,
		StyleName:      pack.Name,
		PortraitMode:   mode,
		ImageURL:       strings.TrimSpace(req.ImageURL),
		StyleImageURL:  styleURLs[0],
		StyleImageURLs: styleURLs,
		Amount:         amount,
	}
	if err := a.Orders.Create(r.Context(), order); err != nil {
		a.Logger.Error().Err(err).Msg("create order")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create order")
		return
	}
	a.Logger.Info().
		Str("order_id", order.OrderID).
		Str("email", order.Email).
		Int("style_id", order.StyleID).
		Int("tier", tier).
		Msg("order created")

	a.persistSourceImage(r.Context(), order)

	a.json(w, http.StatusCreated, toOrderResponse(order))
}

// persistSourceImage copies the customer's upload into the database when it
// lives on our own upload endpoint, so fulfillment survives a redeploy that
// wipes the upload directory. Best effort: a miss only logs.
func (a *App) persistSourceImage(ctx context.Context, order *domain.Order) {
	uploadID, filename, ok := a.parseUploadURL(order.ImageURL)
	if !ok {
		return
	}
	data, err := a.Files.Read(ctx, "uploads/"+uploadID+"/"+filename)
	if err != nil {
		a.Logger.Warn().Err(err).
			Str("order_id", order.OrderID).
			Str("upload_id", uploadID).
			Msg("upload file missing, source image not persisted")
		return
	}
	if err := a.SourceImages.Save(ctx, order.OrderID, contentTypeForExt(path.Ext(filename)), data); err != nil {
		a.Logger.Warn().Err(err).Str("order_id", order.OrderID).Msg("could not persist source image")
		return
	}
	a.Logger.Info().
		Str("order_id", order.OrderID).
		Str("upload_id", uploadID).
		Msg("source image persisted")
}

func (a *App) parseUploadURL(imageURL string) (uploadID, filename string, ok bool) {
	base := strings.TrimRight(a.Config.PublicBaseURL, "/")
	if base == "" {
		return "", "", false
	}
	prefix := base + "/api/uploads/"
	u := strings.TrimSpace(imageURL)
	if !strings.HasPrefix(u, prefix) {
		return "", "", false
	}
	rest := strings.SplitN(strings.TrimPrefix(u, prefix), "/", 2)
	if len(rest) != 2 || rest[0] == "" || rest[1] == "" {
		return "", "", false
	}
	filename = strings.SplitN(rest[1], "?", 2)[0]
	if !allowedImageExt(path.Ext(filename)) {
		return "", "", false
	}
	return rest[0], filename, true
}

func (a *App) OrdersGet(w http.ResponseWriter, r *http.Request) {
	order, ok := a.loadOrder(w, r)
	if !ok {
		return
	}
	a.json(w, http.StatusOK, toOrderResponse(order))
}

type orderStatusResponse struct {
	OrderID         string              `json:"order_id"`
	Status          string              `json:"status"`
	ResultURLs      []string            `json:"result_urls,omitempty"`
	ResultLabels    []stylepack.Label   `json:"result_labels,omitempty"`
	StyleID         int                 `json:"style_id"`
	StyleName       string              `json:"style_name,omitempty"`
	InitialImageURL string              `json:"initial_image_url,omitempty"`
	StyleImageURLs  []string            `json:"style_image_urls,omitempty"`
	Diagnostics     []domain.Diagnostic `json:"prediction_details,omitempty"`
	Error           string              `json:"error,omitempty"`
}

func (a *App) OrdersStatus(w http.ResponseWriter, r *http.Request) {
	order, ok := a.loadOrder(w, r)
	if !ok {
		return
	}
	resp := orderStatusResponse{
		OrderID:         order.OrderID,
		Status:          string(order.Status),
		ResultURLs:      order.ResultURLs,
		StyleID:         order.StyleID,
		StyleName:       order.StyleName,
		InitialImageURL: order.ImageURL,
		StyleImageURLs:  order.StyleImageURLs,
		Diagnostics:     order.Diagnostics,
		Error:           order.LastError,
	}
	if order.Status == domain.OrderStatusCompleted && len(order.ResultURLs) > 0 {
		if pack, ok := stylepack.ByID(order.StyleID); ok {
			resp.ResultLabels = pack.LabelsFor(len(order.ResultURLs))
			if resp.StyleName == "" {
				resp.StyleName = pack.Name
			}
		}
		// Keep the 1:1 mapping between style refs and results.
		if len(resp.StyleImageURLs) > len(order.ResultURLs) {
			resp.StyleImageURLs = resp.StyleImageURLs[:len(order.ResultURLs)]
		}
	}
	a.json(w, http.StatusOK, resp)
}

type orderPayRequest struct {
	PaymentProvider string `json:"payment_provider"`
	TransactionID   string `json:"transaction_id"`
}

func (a *App) OrdersPay(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	var req orderPayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.PaymentProvider == "" {
		req.PaymentProvider = "stripe"
	}
	err := a.Orders.MarkPaid(r.Context(), orderID, req.PaymentProvider, req.TransactionID)
	switch {
	case errors.Is(err, domain.ErrOrderNotPayable):
		a.error(w, http.StatusBadRequest, "bad_request", "order already processed")
		return
	case err != nil:
		a.Logger.Error().Err(err).Str("order_id", orderID).Msg("mark paid")
		a.error(w, http.StatusInternalServerError, "internal", "failed to update order")
		return
	}
	a.Logger.Info().Str("order_id", orderID).Msg("order paid, processing started")
	go a.Fulfillment.Process(context.Background(), orderID)
	a.json(w, http.StatusOK, map[string]any{"status": "ok", "order_id": orderID})
}

// OrderResultImage serves one finished portrait: database first (it survives
// redeploys and has the retention window), disk as fallback.
func (a *App) OrderResultImage(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 1 || index > 20 {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid index")
		return
	}
	if !validOrderIDPath(orderID) {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid order id")
		return
	}
	contentType, data, err := a.ResultImages.Get(r.Context(), orderID, index)
	if err == nil {
		serveImage(w, contentType, data)
		return
	}
	if !errors.Is(err, domain.ErrNotFound) {
		a.Logger.Error().Err(err).Str("order_id", orderID).Int("index", index).Msg("load result image")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load image")
		return
	}
	for _, ct := range []string{"image/jpeg", "image/png", "image/webp"} {
		data, err := a.Files.Read(r.Context(), storage.ServeKey(orderID, index, ct))
		if err == nil {
			serveImage(w, ct, data)
			return
		}
	}
	a.error(w, http.StatusNotFound, "not_found", "image not available")
}

func (a *App) OrderSourceImage(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	if !validOrderIDPath(orderID) {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid order id")
		return
	}
	contentType, data, err := a.SourceImages.Get(r.Context(), orderID)
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "source image not available")
		return
	}
	if err != nil {
		a.Logger.Error().Err(err).Str("order_id", orderID).Msg("load source image")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load image")
		return
	}
	serveImage(w, contentType, data)
}

// OrderDownloadAll bundles every result into a zip.
func (a *App) OrderDownloadAll(w http.ResponseWriter, r *http.Request) {
	order, ok := a.loadOrder(w, r)
	if !ok {
		return
	}
	if len(order.ResultURLs) == 0 {
		a.error(w, http.StatusNotFound, "not_found", "no result images available yet")
		return
	}
	assets := make([]ziputil.Asset, 0, len(order.ResultURLs))
	for i := 1; i <= len(order.ResultURLs); i++ {
		contentType, data, err := a.ResultImages.Get(r.Context(), order.OrderID, i)
		if err != nil {
			contentType, data, err = a.fetchResult(r.Context(), order.ResultURLs[i-1])
			if err != nil {
				a.Logger.Warn().Err(err).
					Str("order_id", order.OrderID).
					Int("index", i).
					Msg("result unavailable for archive")
				continue
			}
		}
		assets = append(assets, ziputil.Asset{
			Filename: fmt.Sprintf("artify_%s_%02d%s", order.OrderID, i, extForContentType(contentType)),
			MIME:     contentType,
			Data:     data,
		})
	}
	if len(assets) == 0 {
		a.error(w, http.StatusNotFound, "not_found", "no result images available yet")
		return
	}
	archive := ziputil.ArchiveAssets(assets)
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", order.OrderID+"-artify-images.zip"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

func (a *App) fetchResult(ctx context.Context, url string) (string, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", nil, err
	}
	client := &http.Client{Timeout: 45 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, err
	}
	contentType := strings.SplitN(resp.Header.Get("Content-Type"), ";", 2)[0]
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return contentType, data, nil
}

func (a *App) loadOrder(w http.ResponseWriter, r *http.Request) (*domain.Order, bool) {
	orderID := chi.URLParam(r, "orderID")
	order, err := a.Orders.GetByOrderID(r.Context(), orderID)
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "order not found")
		return nil, false
	}
	if err != nil {
		a.Logger.Error().Err(err).Str("order_id", orderID).Msg("load order")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load order")
		return nil, false
	}
	return order, true
}

func (a *App) resolveStyleURL(ref string) string {
	if strings.HasPrefix(ref, "/") {
		return strings.TrimRight(a.Config.PublicBaseURL, "/") + ref
	}
	return ref
}

func newOrderID() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ART-%d-%s", time.Now().UnixMilli(), suffix)
}

func validOrderIDPath(orderID string) bool {
	if orderID == "" || orderID == "." || orderID == ".." {
		return false
	}
	return !strings.ContainsAny(orderID, "/\\")
}

func serveImage(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func allowedImageExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	}
	return false
}

func contentTypeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

func extForContentType(contentType string) string {
	switch {
	case strings.Contains(contentType, "png"):
		return ".png"
	case strings.Contains(contentType, "webp"):
		return ".webp"
	default:
		return ".jpg"
	}
}

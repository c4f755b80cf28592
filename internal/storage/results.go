package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"artify/internal/domain"
	"artify/internal/infra"
)

// ResultStore makes finished portraits durable. Provider URLs expire within
// hours, so every result is copied into the database and onto disk and served
// from our own endpoint afterwards.
type ResultStore struct {
	images        domain.ResultImageRepository
	files         *FileStore
	httpClient    *http.Client
	logger        *infra.Logger
	publicBaseURL string
}

// ResultStoreOptions configures a ResultStore.
type ResultStoreOptions struct {
	Images        domain.ResultImageRepository
	Files         *FileStore
	HTTPClient    *http.Client
	Logger        *infra.Logger
	PublicBaseURL string
}

func NewResultStore(opts ResultStoreOptions) *ResultStore {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 45 * time.Second}
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &ResultStore{
		images:        opts.Images,
		files:         opts.Files,
		httpClient:    httpClient,
		logger:        logger,
		publicBaseURL: strings.TrimRight(opts.PublicBaseURL, "/"),
	}
}

// ResultURL is the permanent serving URL for one result image. Serving
// indexes are 1-based; unit is the 0-based position in the progress list.
func (s *ResultStore) ResultURL(orderID string, unit int) string {
	return fmt.Sprintf("%s/api/orders/%s/result/%d", s.publicBaseURL, orderID, unit+1)
}

// PersistUnit stores inline result bytes for one unit and returns the
// permanent URL. Used by providers that return bytes instead of hosted URLs,
// the progress ledger must never hold a placeholder.
func (s *ResultStore) PersistUnit(ctx context.Context, orderID string, unit int, contentType string, data []byte) (string, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	if err := s.images.Save(ctx, orderID, unit+1, contentType, data); err != nil {
		return "", fmt.Errorf("persist result %s[%d]: %w", orderID, unit+1, err)
	}
	s.writeDiskCopy(ctx, orderID, unit+1, contentType, data)
	return s.ResultURL(orderID, unit), nil
}

// PersistBatch downloads every provider-hosted result and swaps it for a
// permanent URL. Already permanent entries are left alone, so the call is
// idempotent and safe to repeat on resume. A single failed download keeps its
// provider URL instead of failing the batch.
func (s *ResultStore) PersistBatch(ctx context.Context, orderID string, resultURLs []string) []string {
	out := make([]string, len(resultURLs))
	for i, url := range resultURLs {
		out[i] = url
		if url == "" || s.isPermanent(url) {
			continue
		}
		contentType, data, err := s.fetch(ctx, url)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("order_id", orderID).
				Int("index", i).
				Msg("result download failed, keeping provider url")
			continue
		}
		permanent, err := s.PersistUnit(ctx, orderID, i, contentType, data)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("order_id", orderID).
				Int("index", i).
				Msg("result persistence failed, keeping provider url")
			continue
		}
		out[i] = permanent
	}
	return out
}

// ServeKey returns the disk fallback key for one result image. index is the
// 1-based serving index.
func ServeKey(orderID string, index int, contentType string) string {
	return fmt.Sprintf("results/%s/%02d%s", orderID, index, extensionFor(contentType))
}

func (s *ResultStore) isPermanent(url string) bool {
	return s.publicBaseURL != "" && strings.HasPrefix(url, s.publicBaseURL+"/api/orders/")
}

func (s *ResultStore) writeDiskCopy(ctx context.Context, orderID string, index int, contentType string, data []byte) {
	if s.files == nil {
		return
	}
	key := ServeKey(orderID, index, contentType)
	if _, err := s.files.Write(ctx, key, data); err != nil {
		s.logger.Warn().
			Err(err).
			Str("order_id", orderID).
			Int("index", index).
			Msg("disk copy of result failed")
	}
}

func (s *ResultStore) fetch(ctx context.Context, url string) (string, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", nil, fmt.Errorf("build download request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("download result: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", nil, fmt.Errorf("download result: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("read result body: %w", err)
	}
	contentType := resp.Header.Get("Content-Type")
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return contentType, data, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}

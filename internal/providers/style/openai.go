package style

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"artify/internal/domain"
	"artify/internal/infra"
)

// ErrMissingOpenAIKey indicates the client was built without credentials.
var ErrMissingOpenAIKey = errors.New("openai: api key is required")

// OpenAIOptions configures the image edit client.
type OpenAIOptions struct {
	APIKey            string
	BaseURL           string
	Model             string
	Quality           string
	OutputFormat      string
	InputFidelity     string
	HTTPClient        *http.Client
	Logger            *infra.Logger
	RequestTimeout    time.Duration
	RateLimitRetries  int
	RateLimitBaseWait time.Duration
}

// OpenAIClient runs style transfers through the synchronous images/edits API.
// The style reference cannot be passed as an image, so the artistic direction
// travels entirely in the prompt. Results come back as inline base64 bytes.
type OpenAIClient struct {
	apiKey            string
	baseURL           string
	model             string
	quality           string
	outputFormat      string
	inputFidelity     string
	httpClient        *http.Client
	logger            *infra.Logger
	rateLimitRetries  int
	rateLimitBaseWait time.Duration

	// sleep is replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

type imageEditRequest struct {
	Images        []imageEditSource `json:"images"`
	Prompt        string            `json:"prompt"`
	Model         string            `json:"model"`
	Quality       string            `json:"quality"`
	OutputFormat  string            `json:"output_format"`
	InputFidelity string            `json:"input_fidelity"`
	Moderation    string            `json:"moderation"`
	N             int               `json:"n"`
	Size          string            `json:"size"`
}

type imageEditSource struct {
	ImageURL string `json:"image_url"`
}

type imageEditResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
		URL     string `json:"url"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewOpenAIClient constructs a client with sane defaults.
func NewOpenAIClient(opts OpenAIOptions) (*OpenAIClient, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 120 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "gpt-image-1.5"
	}
	quality := strings.TrimSpace(opts.Quality)
	if quality == "" {
		quality = "medium"
	}
	outputFormat := strings.TrimSpace(opts.OutputFormat)
	if outputFormat == "" {
		outputFormat = "jpeg"
	}
	fidelity := strings.TrimSpace(opts.InputFidelity)
	if fidelity == "" {
		fidelity = "high"
	}
	// gpt-image-1-mini rejects input_fidelity=high.
	if model == "gpt-image-1-mini" && fidelity == "high" {
		fidelity = "low"
	}
	retries := opts.RateLimitRetries
	if retries <= 0 {
		retries = 4
	}
	baseWait := opts.RateLimitBaseWait
	if baseWait <= 0 {
		baseWait = 15 * time.Second
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &OpenAIClient{
		apiKey:            strings.TrimSpace(opts.APIKey),
		baseURL:           baseURL,
		model:             model,
		quality:           quality,
		outputFormat:      outputFormat,
		inputFidelity:     fidelity,
		httpClient:        httpClient,
		logger:            logger,
		rateLimitRetries:  retries,
		rateLimitBaseWait: baseWait,
		sleep:             sleepCtx,
	}, nil
}

// Name identifies the provider in logs and diagnostics.
func (c *OpenAIClient) Name() string {
	return "openai"
}

// HasCredentials reports whether the client can perform remote calls.
func (c *OpenAIClient) HasCredentials() bool {
	return c.apiKey != ""
}

// Transfer runs one image edit call. Unlike poll based providers the call is
// synchronous and returns inline bytes that must be persisted before the job
// id is of any use.
func (c *OpenAIClient) Transfer(ctx context.Context, req Request) (*Result, error) {
	if !c.HasCredentials() {
		return nil, ErrMissingOpenAIKey
	}
	if !strings.HasPrefix(req.SourceImageURL, "https://") {
		return nil, fmt.Errorf("%w: openai needs a public https image url", ErrPermanent)
	}
	if strings.TrimSpace(req.StylePrompt) == "" {
		return nil, fmt.Errorf("%w: openai needs a style prompt", ErrPermanent)
	}
	prompt := req.StylePrompt
	if req.PromptSuffix != "" {
		prompt += " " + req.PromptSuffix
	}
	payload := imageEditRequest{
		Images:        []imageEditSource{{ImageURL: req.SourceImageURL}},
		Prompt:        prompt,
		Model:         c.model,
		Quality:       c.quality,
		OutputFormat:  c.outputFormat,
		InputFidelity: c.inputFidelity,
		// Portraits trip the default moderation too often.
		Moderation: "low",
		N:          1,
		Size:       "1024x1024",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("openai: encode request: %w", err)
	}

	endpoint := c.baseURL + "/v1/images/edits"
	for attempt := 0; attempt < c.rateLimitRetries; attempt++ {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("openai: build request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			if attempt == c.rateLimitRetries-1 {
				return nil, fmt.Errorf("openai: request failed after retries: %w", err)
			}
			wait := c.rateLimitBaseWait * (1 << attempt)
			c.logger.Warn().
				Err(err).
				Dur("wait", wait).
				Int("attempt", attempt+1).
				Msg("openai: network error, backing off")
			if err := c.sleep(ctx, wait); err != nil {
				return nil, err
			}
			continue
		}
		raw, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("openai: read response: %w", readErr)
		}
		if transientStatus(resp.StatusCode) {
			if attempt == c.rateLimitRetries-1 {
				if resp.StatusCode == http.StatusTooManyRequests {
					return nil, fmt.Errorf("%w: openai budget exhausted", ErrRateLimit)
				}
				return nil, fmt.Errorf("openai: transient error %d after retries: %s",
					resp.StatusCode, truncate(raw, 500))
			}
			wait := c.rateLimitBaseWait * (1 << attempt)
			c.logger.Warn().
				Int("status", resp.StatusCode).
				Dur("wait", wait).
				Int("attempt", attempt+1).
				Msg("openai: transient status, backing off")
			if err := c.sleep(ctx, wait); err != nil {
				return nil, err
			}
			continue
		}
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("openai: api error %d: %s", resp.StatusCode, truncate(raw, 500))
		}
		return c.decodeResult(ctx, raw, req)
	}
	return nil, fmt.Errorf("%w: openai budget exhausted", ErrRateLimit)
}

func (c *OpenAIClient) decodeResult(ctx context.Context, raw []byte, req Request) (*Result, error) {
	var decoded imageEditResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("openai: decode response: %w", err)
	}
	if len(decoded.Data) == 0 {
		msg := decoded.Error.Message
		if msg == "" {
			msg = truncate(raw, 200)
		}
		return nil, fmt.Errorf("openai: image edit failed: %s", msg)
	}
	// The edits endpoint has no job object, so synthesize a stable id for
	// diagnostics and the progress ledger.
	jobID := "oai-" + uuid.NewString()
	first := decoded.Data[0]
	if first.B64JSON != "" {
		data, err := base64.StdEncoding.DecodeString(first.B64JSON)
		if err != nil {
			return nil, fmt.Errorf("openai: decode image payload: %w", err)
		}
		c.logger.Info().
			Str("order_id", req.OrderID).
			Int("unit", req.Unit).
			Int("bytes", len(data)).
			Msg("openai: image edit completed")
		return &Result{Data: data, ContentType: c.contentType(), JobID: jobID}, nil
	}
	if first.URL != "" {
		data, contentType, err := c.fetch(ctx, first.URL)
		if err != nil {
			return nil, err
		}
		return &Result{Data: data, ContentType: contentType, JobID: jobID}, nil
	}
	return nil, errors.New("openai: response carries neither b64 payload nor url")
}

func (c *OpenAIClient) fetch(ctx context.Context, url string) ([]byte, string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("openai: build fetch request: %w", err)
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, "", fmt.Errorf("openai: fetch result image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, "", fmt.Errorf("openai: fetch result image: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("openai: read result image: %w", err)
	}
	contentType := resp.Header.Get("Content-Type")
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return data, contentType, nil
}

func (c *OpenAIClient) contentType() string {
	if c.outputFormat == "jpeg" {
		return "image/jpeg"
	}
	return "image/" + c.outputFormat
}

// Describe returns a minimal record: the edits endpoint is synchronous and
// keeps no job state to look up.
func (c *OpenAIClient) Describe(_ context.Context, jobID string) domain.Diagnostic {
	return domain.Diagnostic{
		JobID:    jobID,
		Provider: c.Name(),
		Model:    c.model,
		Status:   "succeeded",
	}
}

func transientStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func truncate(raw []byte, max int) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > max {
		s = s[:max]
	}
	return s
}

var _ Generator = (*OpenAIClient)(nil)

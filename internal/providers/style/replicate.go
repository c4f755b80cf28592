package style

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"artify/internal/domain"
	"artify/internal/infra"
)

// ErrMissingReplicateToken indicates the client was built without credentials.
var ErrMissingReplicateToken = errors.New("replicate: api token is required")

// styleTransferVersion pins the model. structure_image is the pose and face to
// keep, style_image carries the artistic style.
const styleTransferVersion = "fofr/style-transfer:f1023890703bc0a5a3a2c21b5e498833be5f6ef6e70e9daf6b9b3a4fd8309cf0"

const styleTransferPrompt = "Adapt the style of the style image to the structure image, keeping the brush strokes and brush details while emphasizing the features of the structure image, adapting them to the time period and style of the style image. Very important to keep the features in the structure image, so people are recognizable."

// ReplicateOptions configures the Replicate prediction client.
type ReplicateOptions struct {
	APIToken          string
	BaseURL           string
	HTTPClient        *http.Client
	Logger            *infra.Logger
	RequestTimeout    time.Duration
	PollInterval      time.Duration
	PollTimeout       time.Duration
	RateLimitRetries  int
	RateLimitBaseWait time.Duration
}

// ReplicateClient runs style transfers through the Replicate predictions API.
// Jobs are asynchronous: submit, then poll until a terminal status.
type ReplicateClient struct {
	apiToken          string
	baseURL           string
	httpClient        *http.Client
	logger            *infra.Logger
	pollInterval      time.Duration
	pollTimeout       time.Duration
	rateLimitRetries  int
	rateLimitBaseWait time.Duration

	// sleep is replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

type predictionRequest struct {
	Version string          `json:"version"`
	Input   predictionInput `json:"input"`
}

type predictionInput struct {
	StructureImage             string  `json:"structure_image"`
	StyleImage                 string  `json:"style_image"`
	Prompt                     string  `json:"prompt"`
	StructureDenoisingStrength float64 `json:"structure_denoising_strength"`
	OutputFormat               string  `json:"output_format"`
	OutputQuality              int     `json:"output_quality"`
	NumberOfImages             int     `json:"number_of_images"`
}

type predictionResponse struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	Output      json.RawMessage `json:"output"`
	Error       string          `json:"error"`
	Model       string          `json:"model"`
	Version     string          `json:"version"`
	CreatedAt   string          `json:"created_at"`
	StartedAt   string          `json:"started_at"`
	CompletedAt string          `json:"completed_at"`
	Logs        string          `json:"logs"`
}

// NewReplicateClient constructs a client with sane defaults.
func NewReplicateClient(opts ReplicateOptions) (*ReplicateClient, error) {
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
		baseURL = "https://api.replicate.com/v1"
	}
	pollInterval := opts.PollInterval
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	pollTimeout := opts.PollTimeout
	if pollTimeout <= 0 {
		pollTimeout = 300 * time.Second
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
	return &ReplicateClient{
		apiToken:          strings.TrimSpace(opts.APIToken),
		baseURL:           baseURL,
		httpClient:        httpClient,
		logger:            logger,
		pollInterval:      pollInterval,
		pollTimeout:       pollTimeout,
		rateLimitRetries:  retries,
		rateLimitBaseWait: baseWait,
		sleep:             sleepCtx,
	}, nil
}

// Name identifies the provider in logs and diagnostics.
func (c *ReplicateClient) Name() string {
	return "replicate"
}

// HasCredentials reports whether the client can perform remote calls.
func (c *ReplicateClient) HasCredentials() bool {
	return c.apiToken != ""
}

// Transfer submits one style transfer prediction and polls it to completion.
func (c *ReplicateClient) Transfer(ctx context.Context, req Request) (*Result, error) {
	if !c.HasCredentials() {
		return nil, ErrMissingReplicateToken
	}
	if !strings.HasPrefix(req.SourceImageURL, "https://") || !strings.HasPrefix(req.StyleImageURL, "https://") {
		return nil, fmt.Errorf("%w: replicate needs public https image urls", ErrPermanent)
	}
	jobID, err := c.submit(ctx, req)
	if err != nil {
		return nil, err
	}
	outputURL, err := c.poll(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return &Result{URL: outputURL, JobID: jobID}, nil
}

func (c *ReplicateClient) submit(ctx context.Context, req Request) (string, error) {
	prompt := req.StylePrompt
	if prompt == "" {
		prompt = styleTransferPrompt
	}
	if req.PromptSuffix != "" {
		prompt += " " + req.PromptSuffix
	}
	payload := predictionRequest{
		Version: styleTransferVersion,
		Input: predictionInput{
			StructureImage:             req.SourceImageURL,
			StyleImage:                 req.StyleImageURL,
			Prompt:                     prompt,
			StructureDenoisingStrength: 1,
			OutputFormat:               "webp",
			OutputQuality:              80,
			NumberOfImages:             1,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("replicate: encode request: %w", err)
	}
	endpoint := c.baseURL + "/predictions"
	for attempt := 0; attempt < c.rateLimitRetries; attempt++ {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("replicate: build request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+c.apiToken)

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return "", fmt.Errorf("replicate: submit prediction: %w", err)
		}
		raw, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return "", fmt.Errorf("replicate: read response: %w", readErr)
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			if attempt == c.rateLimitRetries-1 {
				break
			}
			wait := c.rateLimitBaseWait * (1 << attempt)
			c.logger.Warn().
				Dur("wait", wait).
				Int("attempt", attempt+1).
				Int("max", c.rateLimitRetries-1).
				Msg("replicate: rate limited, backing off")
			if err := c.sleep(ctx, wait); err != nil {
				return "", err
			}
			continue
		}
		if resp.StatusCode >= 400 {
			return "", fmt.Errorf("replicate: api error %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
		}
		var decoded predictionResponse
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return "", fmt.Errorf("replicate: decode response: %w", err)
		}
		if decoded.ID == "" {
			return "", errors.New("replicate: no prediction id returned")
		}
		c.logger.Info().
			Str("job_id", decoded.ID).
			Str("order_id", req.OrderID).
			Int("unit", req.Unit).
			Msg("replicate: style transfer submitted")
		return decoded.ID, nil
	}
	return "", fmt.Errorf("%w: replicate submit budget exhausted", ErrRateLimit)
}

func (c *ReplicateClient) poll(ctx context.Context, jobID string) (string, error) {
	endpoint := c.baseURL + "/predictions/" + jobID
	deadline := time.Now().Add(c.pollTimeout)
	for {
		if time.Now().After(deadline) {
			return "", fmt.Errorf("%w: prediction %s after %s", ErrPollTimeout, jobID, c.pollTimeout)
		}
		decoded, err := c.getPrediction(ctx, endpoint)
		if err != nil {
			return "", err
		}
		switch decoded.Status {
		case "succeeded":
			url, err := firstOutputURL(decoded.Output)
			if err != nil {
				return "", fmt.Errorf("replicate: prediction %s: %w", jobID, err)
			}
			return url, nil
		case "failed":
			msg := decoded.Error
			if msg == "" {
				msg = "unknown error"
			}
			return "", fmt.Errorf("%w: %s", ErrJobFailed, msg)
		case "canceled":
			return "", fmt.Errorf("%w: prediction was canceled", ErrJobFailed)
		}
		if err := c.sleep(ctx, c.pollInterval); err != nil {
			return "", err
		}
	}
}

func (c *ReplicateClient) getPrediction(ctx context.Context, endpoint string) (*predictionResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("replicate: build poll request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiToken)
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("replicate: poll prediction: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("replicate: read poll response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("replicate: poll error %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	var decoded predictionResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("replicate: decode poll response: %w", err)
	}
	return &decoded, nil
}

// Describe fetches diagnostics for a prediction. Lookup failures yield a
// sparse record rather than an error, status pages tolerate gaps.
func (c *ReplicateClient) Describe(ctx context.Context, jobID string) domain.Diagnostic {
	diag := domain.Diagnostic{JobID: jobID, Provider: c.Name()}
	if jobID == "" || !c.HasCredentials() {
		return diag
	}
	decoded, err := c.getPrediction(ctx, c.baseURL+"/predictions/"+jobID)
	if err != nil {
		c.logger.Debug().Err(err).Str("job_id", jobID).Msg("replicate: describe failed")
		diag.Status = "unknown"
		return diag
	}
	diag.Status = decoded.Status
	diag.Error = decoded.Error
	diag.Model = decoded.Model
	diag.CreatedAt = decoded.CreatedAt
	diag.StartedAt = decoded.StartedAt
	diag.CompletedAt = decoded.CompletedAt
	if tail := logTail(decoded.Logs, 500); tail != "" {
		diag.Logs = tail
	}
	if url, err := firstOutputURL(decoded.Output); err == nil {
		diag.ResultURL = url
	}
	return diag
}

// firstOutputURL normalizes the prediction output, which may be a list of
// strings, a list of objects with a url field, or a single string.
func firstOutputURL(output json.RawMessage) (string, error) {
	if len(output) == 0 || string(output) == "null" {
		return "", errors.New("empty output")
	}
	var asList []json.RawMessage
	if err := json.Unmarshal(output, &asList); err == nil {
		if len(asList) == 0 {
			return "", errors.New("empty output list")
		}
		var asString string
		if err := json.Unmarshal(asList[0], &asString); err == nil && asString != "" {
			return asString, nil
		}
		var asObject struct {
			URL string `json:"url"`
		}
		if err := json.Unmarshal(asList[0], &asObject); err == nil && asObject.URL != "" {
			return asObject.URL, nil
		}
		return "", fmt.Errorf("unexpected output format: %s", string(output))
	}
	var asString string
	if err := json.Unmarshal(output, &asString); err == nil && asString != "" {
		return asString, nil
	}
	return "", fmt.Errorf("unexpected output format: %s", string(output))
}

func logTail(logs string, max int) string {
	logs = strings.TrimSpace(logs)
	if len(logs) <= max {
		return logs
	}
	return logs[len(logs)-max:]
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var _ Generator = (*ReplicateClient)(nil)

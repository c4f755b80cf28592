package style

import (
	"context"
	"errors"

	"artify/internal/domain"
)

// Sentinel errors shared by all style providers. Callers use errors.Is to
// decide between retry, fallback and hard failure.
var (
	// ErrRateLimit means the provider refused the request after the client
	// exhausted its internal rate limit budget.
	ErrRateLimit = errors.New("style: rate limited")
	// ErrPollTimeout means a submitted job never reached a terminal state
	// within the polling window.
	ErrPollTimeout = errors.New("style: poll timeout")
	// ErrJobFailed means the provider reported the job as failed or canceled.
	ErrJobFailed = errors.New("style: job failed")
	// ErrPermanent marks request errors that will not succeed on retry.
	ErrPermanent = errors.New("style: permanent request error")
	// ErrTransient marks errors worth retrying at the unit level.
	ErrTransient = errors.New("style: transient error")
)

// Request carries everything a provider needs for one style transfer job.
type Request struct {
	SourceImageURL string
	StyleImageURL  string
	StylePrompt    string
	PromptSuffix   string
	OrderID        string
	Unit           int
}

// Result is the normalized outcome of one style transfer. Poll based
// providers return a hosted URL; synchronous providers return inline bytes
// and leave URL empty.
type Result struct {
	URL         string
	Data        []byte
	ContentType string
	JobID       string
}

// Generator is implemented by every style transfer backend.
type Generator interface {
	// Name identifies the provider in logs and diagnostics.
	Name() string
	// Transfer runs one style transfer job to completion.
	Transfer(ctx context.Context, req Request) (*Result, error)
	// Describe fetches best-effort diagnostics for a previously submitted
	// job. Never fails the caller; missing data yields a sparse record.
	Describe(ctx context.Context, jobID string) domain.Diagnostic
}

package style

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func newTestReplicate(t *testing.T, baseURL string) *ReplicateClient {
	t.Helper()
	c, err := NewReplicateClient(ReplicateOptions{
		APIToken:          "r8_test",
		BaseURL:           baseURL,
		PollInterval:      time.Millisecond,
		PollTimeout:       time.Second,
		RateLimitRetries:  3,
		RateLimitBaseWait: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	c.sleep = func(ctx context.Context, d time.Duration) error { return ctx.Err() }
	return c
}

func httpsRequest() Request {
	return Request{
		SourceImageURL: "https://shop.example/api/orders/ART-1/source-image",
		StyleImageURL:  "https://shop.example/styles/masters/masters-01.jpg",
		StylePrompt:    "in the style of Vermeer.",
		OrderID:        "ART-1",
		Unit:           0,
	}
}

func TestReplicateTransferSubmitsAndPolls(t *testing.T) {
	var mu sync.Mutex
	var submitted predictionRequest
	polls := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/predictions":
			if got := r.Header.Get("Authorization"); got != "Bearer r8_test" {
				t.Errorf("authorization = %q", got)
			}
			mu.Lock()
			if err := json.NewDecoder(r.Body).Decode(&submitted); err != nil {
				t.Errorf("decode submit: %v", err)
			}
			mu.Unlock()
			json.NewEncoder(w).Encode(map[string]any{"id": "pred-1", "status": "starting"})
		case r.Method == http.MethodGet && r.URL.Path == "/predictions/pred-1":
			mu.Lock()
			polls++
			n := polls
			mu.Unlock()
			if n < 3 {
				json.NewEncoder(w).Encode(map[string]any{"id": "pred-1", "status": "processing"})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"id":     "pred-1",
				"status": "succeeded",
				"output": []string{"https://replicate.delivery/out.webp"},
			})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := newTestReplicate(t, srv.URL)
	req := httpsRequest()
	req.PromptSuffix = "Make it painterly."

	result, err := c.Transfer(context.Background(), req)
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if result.URL != "https://replicate.delivery/out.webp" {
		t.Fatalf("result url = %q", result.URL)
	}
	if result.JobID != "pred-1" {
		t.Fatalf("job id = %q", result.JobID)
	}

	mu.Lock()
	defer mu.Unlock()
	if submitted.Version != styleTransferVersion {
		t.Fatalf("version = %q", submitted.Version)
	}
	in := submitted.Input
	if in.StructureImage != req.SourceImageURL || in.StyleImage != req.StyleImageURL {
		t.Fatalf("images = %q / %q", in.StructureImage, in.StyleImage)
	}
	if in.Prompt != "in the style of Vermeer. Make it painterly." {
		t.Fatalf("prompt = %q", in.Prompt)
	}
	if in.StructureDenoisingStrength != 1 || in.OutputFormat != "webp" ||
		in.OutputQuality != 80 || in.NumberOfImages != 1 {
		t.Fatalf("input tunables = %+v", in)
	}
}

func TestReplicateTransferRejectsNonHTTPSSources(t *testing.T) {
	c := newTestReplicate(t, "https://api.replicate.com/v1")
	req := httpsRequest()
	req.SourceImageURL = "http://localhost:3000/photo.jpg"

	_, err := c.Transfer(context.Background(), req)
	if !errors.Is(err, ErrPermanent) {
		t.Fatalf("err = %v, want ErrPermanent", err)
	}
}

func TestReplicateSubmitRateLimitBudget(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestReplicate(t, srv.URL)
	_, err := c.Transfer(context.Background(), httpsRequest())
	if !errors.Is(err, ErrRateLimit) {
		t.Fatalf("err = %v, want ErrRateLimit", err)
	}
	if attempts != 3 {
		t.Fatalf("submit attempts = %d, want full budget of 3", attempts)
	}
}

func TestReplicatePollFailedJob(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]any{"id": "pred-2", "status": "starting"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "pred-2",
			"status": "failed",
			"error":  "NSFW content detected",
		})
	}))
	defer srv.Close()

	c := newTestReplicate(t, srv.URL)
	_, err := c.Transfer(context.Background(), httpsRequest())
	if !errors.Is(err, ErrJobFailed) {
		t.Fatalf("err = %v, want ErrJobFailed", err)
	}
	if !strings.Contains(err.Error(), "NSFW content detected") {
		t.Fatalf("err lost the provider message: %v", err)
	}
}

func TestReplicatePollTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]any{"id": "pred-3", "status": "starting"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"id": "pred-3", "status": "processing"})
	}))
	defer srv.Close()

	c := newTestReplicate(t, srv.URL)
	c.pollTimeout = 20 * time.Millisecond

	_, err := c.Transfer(context.Background(), httpsRequest())
	if !errors.Is(err, ErrPollTimeout) {
		t.Fatalf("err = %v, want ErrPollTimeout", err)
	}
}

func TestReplicateDescribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id":           "pred-4",
			"status":       "succeeded",
			"model":        "fofr/style-transfer",
			"created_at":   "2026-01-02T10:00:00Z",
			"started_at":   "2026-01-02T10:00:01Z",
			"completed_at": "2026-01-02T10:00:20Z",
			"logs":         strings.Repeat("x", 600),
			"output":       []string{"https://replicate.delivery/out.webp"},
		})
	}))
	defer srv.Close()

	c := newTestReplicate(t, srv.URL)
	diag := c.Describe(context.Background(), "pred-4")
	if diag.Status != "succeeded" || diag.Provider != "replicate" {
		t.Fatalf("diag = %+v", diag)
	}
	if diag.ResultURL != "https://replicate.delivery/out.webp" {
		t.Fatalf("result url = %q", diag.ResultURL)
	}
	if len(diag.Logs) != 500 {
		t.Fatalf("logs len = %d, want tail of 500", len(diag.Logs))
	}
}

func TestFirstOutputURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"string list", `["https://a/out.webp","https://a/b.webp"]`, "https://a/out.webp", false},
		{"object list", `[{"url":"https://a/out.webp"}]`, "https://a/out.webp", false},
		{"bare string", `"https://a/out.webp"`, "https://a/out.webp", false},
		{"null", `null`, "", true},
		{"empty list", `[]`, "", true},
		{"numbers", `[42]`, "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := firstOutputURL(json.RawMessage(tc.raw))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("url = %q, want %q", got, tc.want)
			}
		})
	}
}

package style

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestOpenAI(t *testing.T, baseURL string) *OpenAIClient {
	t.Helper()
	c, err := NewOpenAIClient(OpenAIOptions{
		APIKey:            "sk-test",
		BaseURL:           baseURL,
		Quality:           "high",
		RateLimitRetries:  3,
		RateLimitBaseWait: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	c.sleep = func(ctx context.Context, d time.Duration) error { return ctx.Err() }
	return c
}

func TestOpenAITransferDecodesInlineBytes(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	var submitted imageEditRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/images/edits" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("authorization = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&submitted); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"b64_json": base64.StdEncoding.EncodeToString(payload)}},
		})
	}))
	defer srv.Close()

	c := newTestOpenAI(t, srv.URL)
	req := httpsRequest()
	req.PromptSuffix = "Make it painterly."

	result, err := c.Transfer(context.Background(), req)
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if string(result.Data) != string(payload) {
		t.Fatalf("decoded bytes mismatch")
	}
	if result.URL != "" {
		t.Fatalf("url should be empty for inline results, got %q", result.URL)
	}
	if result.ContentType != "image/jpeg" {
		t.Fatalf("content type = %q", result.ContentType)
	}
	if !strings.HasPrefix(result.JobID, "oai-") {
		t.Fatalf("job id = %q", result.JobID)
	}

	if submitted.Model != "gpt-image-1.5" || submitted.Quality != "high" {
		t.Fatalf("model/quality = %q/%q", submitted.Model, submitted.Quality)
	}
	if submitted.Moderation != "low" || submitted.N != 1 || submitted.Size != "1024x1024" {
		t.Fatalf("tunables = %+v", submitted)
	}
	if submitted.InputFidelity != "high" || submitted.OutputFormat != "jpeg" {
		t.Fatalf("fidelity/format = %q/%q", submitted.InputFidelity, submitted.OutputFormat)
	}
	if len(submitted.Images) != 1 || submitted.Images[0].ImageURL != req.SourceImageURL {
		t.Fatalf("images = %+v", submitted.Images)
	}
	if submitted.Prompt != "in the style of Vermeer. Make it painterly." {
		t.Fatalf("prompt = %q", submitted.Prompt)
	}
}

func TestOpenAITransferFetchesURLResults(t *testing.T) {
	imageBytes := []byte("webp-bytes")
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/v1/images/edits", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"url": srv.URL + "/result.webp"}},
		})
	})
	mux.HandleFunc("/result.webp", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/webp; charset=binary")
		w.Write(imageBytes)
	})

	c := newTestOpenAI(t, srv.URL)
	result, err := c.Transfer(context.Background(), httpsRequest())
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if string(result.Data) != string(imageBytes) {
		t.Fatalf("fetched bytes mismatch")
	}
	if result.ContentType != "image/webp" {
		t.Fatalf("content type = %q", result.ContentType)
	}
}

func TestOpenAITransferRequiresPromptAndHTTPS(t *testing.T) {
	c := newTestOpenAI(t, "https://api.openai.com")

	req := httpsRequest()
	req.StylePrompt = "  "
	if _, err := c.Transfer(context.Background(), req); !errors.Is(err, ErrPermanent) {
		t.Fatalf("missing prompt: err = %v, want ErrPermanent", err)
	}

	req = httpsRequest()
	req.SourceImageURL = "http://localhost/photo.jpg"
	if _, err := c.Transfer(context.Background(), req); !errors.Is(err, ErrPermanent) {
		t.Fatalf("plain http source: err = %v, want ErrPermanent", err)
	}
}

func TestOpenAITransferRateLimitBudget(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestOpenAI(t, srv.URL)
	_, err := c.Transfer(context.Background(), httpsRequest())
	if !errors.Is(err, ErrRateLimit) {
		t.Fatalf("err = %v, want ErrRateLimit", err)
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d, want full budget of 3", attempts)
	}
}

func TestOpenAITransferRetriesTransientStatuses(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"b64_json": base64.StdEncoding.EncodeToString([]byte("ok"))}},
		})
	}))
	defer srv.Close()

	c := newTestOpenAI(t, srv.URL)
	result, err := c.Transfer(context.Background(), httpsRequest())
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if string(result.Data) != "ok" {
		t.Fatalf("bytes = %q", result.Data)
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d, want 3", attempts)
	}
}

func TestOpenAITransferPermanentAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "invalid image", "type": "invalid_request_error"},
		})
	}))
	defer srv.Close()

	c := newTestOpenAI(t, srv.URL)
	_, err := c.Transfer(context.Background(), httpsRequest())
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrRateLimit) {
		t.Fatalf("400 must not classify as rate limit: %v", err)
	}
	if !strings.Contains(err.Error(), "api error 400") {
		t.Fatalf("err = %v", err)
	}
}

func TestOpenAIMiniModelLowersInputFidelity(t *testing.T) {
	c, err := NewOpenAIClient(OpenAIOptions{APIKey: "sk-test", Model: "gpt-image-1-mini"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if c.inputFidelity != "low" {
		t.Fatalf("input fidelity = %q, want low for the mini model", c.inputFidelity)
	}
}

func TestOpenAIDescribe(t *testing.T) {
	c := newTestOpenAI(t, "https://api.openai.com")
	diag := c.Describe(context.Background(), "oai-123")
	if diag.JobID != "oai-123" || diag.Provider != "openai" || diag.Status != "succeeded" {
		t.Fatalf("diag = %+v", diag)
	}
	if diag.Model != "gpt-image-1.5" {
		t.Fatalf("model = %q", diag.Model)
	}
}

func TestTransientStatus(t *testing.T) {
	for _, code := range []int{429, 500, 502, 503, 504} {
		if !transientStatus(code) {
			t.Fatalf("status %d should be transient", code)
		}
	}
	for _, code := range []int{200, 400, 401, 403, 404, 422} {
		if transientStatus(code) {
			t.Fatalf("status %d should not be transient", code)
		}
	}
}

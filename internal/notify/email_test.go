package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"artify/internal/stylepack"
)

type captureTransport struct {
	requests []*http.Request
	bodies   []resendRequest
	status   int
}

func (t *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.requests = append(t.requests, req)
	var decoded resendRequest
	if req.Body != nil {
		raw, _ := io.ReadAll(req.Body)
		_ = json.Unmarshal(raw, &decoded)
	}
	t.bodies = append(t.bodies, decoded)
	status := t.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(`{"id":"email-1"}`))),
		Header:     http.Header{},
	}, nil
}

func newTestNotifier(transport *captureTransport) *EmailNotifier {
	return NewEmailNotifier(EmailOptions{
		APIKey:     "re_test",
		FromEmail:  "orders@artify.example",
		FromName:   "Artify",
		HTTPClient: &http.Client{Transport: transport},
	})
}

func TestNotifyReadySendsCaptionedLinks(t *testing.T) {
	transport := &captureTransport{}
	n := newTestNotifier(transport)

	pack, _ := stylepack.ByID(stylepack.IDMasters)
	err := n.NotifyReady(context.Background(), ReadyNotification{
		OrderID:    "ART-1",
		Email:      "ana@example.com",
		Locale:     "en",
		StyleName:  "Masters",
		ResultURLs: []string{"https://shop.example/api/orders/ART-1/result/1", "https://shop.example/api/orders/ART-1/result/2"},
		Labels:     pack.LabelsFor(2),
		StatusURL:  "https://shop.example/order-status?order_id=ART-1",
	})
	if err != nil {
		t.Fatalf("notify ready: %v", err)
	}
	if len(transport.requests) != 1 {
		t.Fatalf("requests = %d", len(transport.requests))
	}
	req := transport.requests[0]
	if req.URL.String() != "https://api.resend.com/emails" {
		t.Fatalf("endpoint = %q", req.URL)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer re_test" {
		t.Fatalf("authorization = %q", got)
	}
	sent := transport.bodies[0]
	if sent.From != "Artify <orders@artify.example>" {
		t.Fatalf("from = %q", sent.From)
	}
	if len(sent.To) != 1 || sent.To[0] != "ana@example.com" {
		t.Fatalf("to = %v", sent.To)
	}
	if sent.Subject != "Your Artify Portraits are Ready!" {
		t.Fatalf("subject = %q", sent.Subject)
	}
	if !strings.Contains(sent.HTML, "Mona Lisa — Leonardo Da Vinci") {
		t.Fatalf("first caption missing: %q", sent.HTML)
	}
	if !strings.Contains(sent.HTML, "result/2") {
		t.Fatalf("second link missing: %q", sent.HTML)
	}
	if !strings.Contains(sent.HTML, "View Your Artwork") {
		t.Fatalf("status button missing: %q", sent.HTML)
	}
	if !strings.Contains(sent.HTML, "Order ID: ART-1") {
		t.Fatalf("order id missing: %q", sent.HTML)
	}
}

func TestNotifyReadyRomanianSubject(t *testing.T) {
	transport := &captureTransport{}
	n := newTestNotifier(transport)

	err := n.NotifyReady(context.Background(), ReadyNotification{
		OrderID:    "ART-2",
		Email:      "ana@example.com",
		Locale:     "ro-RO",
		ResultURLs: []string{"https://shop.example/api/orders/ART-2/result/1"},
	})
	if err != nil {
		t.Fatalf("notify ready: %v", err)
	}
	if got := transport.bodies[0].Subject; got != "Portretele tale Artify sunt gata!" {
		t.Fatalf("subject = %q", got)
	}
	// No labels supplied, captions fall back to numbered portraits.
	if !strings.Contains(transport.bodies[0].HTML, "Portrait 1") {
		t.Fatalf("fallback caption missing: %q", transport.bodies[0].HTML)
	}
}

func TestNotifyFailedIncludesReason(t *testing.T) {
	transport := &captureTransport{}
	n := newTestNotifier(transport)

	err := n.NotifyFailed(context.Background(), "ART-3", "ana@example.com", "provider exploded <badly>")
	if err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	sent := transport.bodies[0]
	if sent.Subject != "Artify – Issue With Your Order" {
		t.Fatalf("subject = %q", sent.Subject)
	}
	if !strings.Contains(sent.HTML, "ART-3") {
		t.Fatalf("order id missing: %q", sent.HTML)
	}
	if !strings.Contains(sent.HTML, "provider exploded &lt;badly&gt;") {
		t.Fatalf("reason not escaped: %q", sent.HTML)
	}
}

func TestSendWithoutAPIKeyDropsSilently(t *testing.T) {
	transport := &captureTransport{}
	n := NewEmailNotifier(EmailOptions{HTTPClient: &http.Client{Transport: transport}})

	err := n.NotifyFailed(context.Background(), "ART-4", "ana@example.com", "whatever")
	if err != nil {
		t.Fatalf("missing key must not error: %v", err)
	}
	if len(transport.requests) != 0 {
		t.Fatalf("requests = %d, want none without credentials", len(transport.requests))
	}
}

func TestSendSurfacesAPIErrors(t *testing.T) {
	transport := &captureTransport{status: http.StatusUnprocessableEntity}
	n := newTestNotifier(transport)

	err := n.NotifyFailed(context.Background(), "ART-5", "ana@example.com", "x")
	if err == nil {
		t.Fatal("expected error for 422 response")
	}
	if !strings.Contains(err.Error(), "422") {
		t.Fatalf("err = %v", err)
	}
}

func TestTitleCase(t *testing.T) {
	if got := titleCase("en", "van Gogh"); got != "Van Gogh" {
		t.Fatalf("en title case = %q", got)
	}
	if got := titleCase("ro", "Leonardo da Vinci"); got != "Leonardo Da Vinci" {
		t.Fatalf("ro title case = %q", got)
	}
}

func TestIsRomanian(t *testing.T) {
	for locale, want := range map[string]bool{
		"ro": true, "ro-RO": true, "RO": true, "en": false, "": false,
	} {
		if got := isRomanian(locale); got != want {
			t.Fatalf("isRomanian(%q) = %v, want %v", locale, got, want)
		}
	}
}

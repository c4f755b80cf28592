// Package notify delivers customer facing order emails.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"artify/internal/infra"
	"artify/internal/stylepack"
)

// Notifier sends lifecycle emails for an order. Implementations must never
// block fulfillment on delivery problems, a lost email is not a lost order.
type Notifier interface {
	NotifyReady(ctx context.Context, order ReadyNotification) error
	NotifyFailed(ctx context.Context, orderID, email, reason string) error
}

// ReadyNotification carries everything the completion email needs.
type ReadyNotification struct {
	OrderID    string
	Email      string
	Locale     string
	StyleName  string
	ResultURLs []string
	Labels     []stylepack.Label
	StatusURL  string
}

const resendEndpoint = "https://api.resend.com/emails"

// EmailNotifier delivers through the Resend transactional email API.
type EmailNotifier struct {
	apiKey     string
	fromEmail  string
	fromName   string
	httpClient *http.Client
	logger     *infra.Logger
}

// EmailOptions configures an EmailNotifier.
type EmailOptions struct {
	APIKey     string
	FromEmail  string
	FromName   string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

func NewEmailNotifier(opts EmailOptions) *EmailNotifier {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &EmailNotifier{
		apiKey:     strings.TrimSpace(opts.APIKey),
		fromEmail:  opts.FromEmail,
		fromName:   opts.FromName,
		httpClient: httpClient,
		logger:     logger,
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// NotifyReady sends the completion email with one caption per portrait.
func (n *EmailNotifier) NotifyReady(ctx context.Context, note ReadyNotification) error {
	subject := "Your Artify Portraits are Ready!"
	if isRomanian(note.Locale) {
		subject = "Portretele tale Artify sunt gata!"
	}
	return n.send(ctx, note.Email, subject, readyBody(note))
}

// NotifyFailed tells the customer the order could not be completed.
func (n *EmailNotifier) NotifyFailed(ctx context.Context, orderID, email, reason string) error {
	var body bytes.Buffer
	body.WriteString("<h2>We're sorry</h2>")
	fmt.Fprintf(&body, "<p>There was an issue processing your artwork (Order: %s).</p>", html.EscapeString(orderID))
	body.WriteString("<p>Our team has been notified and will look into it. Please contact support if you need assistance.</p>")
	if reason != "" {
		fmt.Fprintf(&body, "<p>Error details: %s</p>", html.EscapeString(reason))
	}
	return n.send(ctx, email, "Artify – Issue With Your Order", body.String())
}

func (n *EmailNotifier) send(ctx context.Context, to, subject, htmlBody string) error {
	if n.apiKey == "" {
		n.logger.Warn().
			Str("to", to).
			Str("subject", subject).
			Msg("no email provider configured, dropping message")
		return nil
	}
	payload := resendRequest{
		From:    fmt.Sprintf("%s <%s>", n.fromName, n.fromEmail),
		To:      []string{to},
		Subject: subject,
		HTML:    htmlBody,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("notify: encode email: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+n.apiKey)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notify: send email: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("notify: resend error %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	n.logger.Info().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}

func readyBody(note ReadyNotification) string {
	var body bytes.Buffer
	styleName := note.StyleName
	if styleName == "" {
		styleName = "a master artist"
	}
	body.WriteString("<h2>Your artwork is complete!</h2>")
	fmt.Fprintf(&body, "<p>Your portraits in the style of <strong>%s</strong> are ready.</p>", html.EscapeString(styleName))
	body.WriteString("<ul>")
	for i, url := range note.ResultURLs {
		caption := fmt.Sprintf("Portrait %d", i+1)
		if i < len(note.Labels) {
			label := note.Labels[i]
			caption = fmt.Sprintf("%s — %s", label.Title, titleCase(note.Locale, label.Artist))
		}
		fmt.Fprintf(&body, `<li><a href="%s">%s</a></li>`, html.EscapeString(url), html.EscapeString(caption))
	}
	body.WriteString("</ul>")
	if note.StatusURL != "" {
		fmt.Fprintf(&body,
			`<p><a href="%s" style="display:inline-block;padding:12px 24px;background:#1e3a5f;color:white;border-radius:8px;text-decoration:none;font-weight:600;">View Your Artwork</a></p>`,
			html.EscapeString(note.StatusURL))
	}
	fmt.Fprintf(&body, "<p>Order ID: %s</p>", html.EscapeString(note.OrderID))
	body.WriteString("<p>Thank you for choosing Artify!</p>")
	return body.String()
}

func titleCase(locale, s string) string {
	tag := language.English
	if isRomanian(locale) {
		tag = language.Romanian
	}
	return cases.Title(tag, cases.NoLower).String(s)
}

func isRomanian(locale string) bool {
	return strings.HasPrefix(strings.ToLower(locale), "ro")
}

// NopNotifier drops every notification. Used in tests and by the repair tool.
type NopNotifier struct{}

func (NopNotifier) NotifyReady(context.Context, ReadyNotification) error { return nil }

func (NopNotifier) NotifyFailed(context.Context, string, string, string) error { return nil }

var (
	_ Notifier = (*EmailNotifier)(nil)
	_ Notifier = NopNotifier{}
)

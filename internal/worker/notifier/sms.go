package notifier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/akrgroup/backoffice/internal/config"
)

// SMSSender delivers a short text message to a phone number
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}

// Phone number errors
var (
	ErrInvalidPhone       = errors.New("phone number cannot be normalized")
	ErrNoGatewayReachable = errors.New("no sms gateway endpoint reachable")
)

// ResponseInterpreter decides whether a gateway HTTP response means the
// message was accepted. Provider quirks live here, not in the transport loop.
type ResponseInterpreter interface {
	Interpret(statusCode int, body []byte) error
}

// DefaultInterpreter accepts 2xx responses whose body does not carry an
// error marker. The local gateways return 200 with "error" text on failure.
type DefaultInterpreter struct{}

func (DefaultInterpreter) Interpret(statusCode int, body []byte) error {
	if statusCode < 200 || statusCode >= 300 {
		return fmt.Errorf("gateway returned status %d: %s", statusCode, truncate(body, 200))
	}
	lower := strings.ToLower(string(body))
	if strings.Contains(lower, "error") || strings.Contains(lower, "failed") || strings.Contains(lower, "invalid") {
		return fmt.Errorf("gateway rejected message: %s", truncate(body, 200))
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// GatewayClient implements SMSSender against an HTTP SMS gateway with one or
// more candidate base URLs tried in order.
type GatewayClient struct {
	logger      *slog.Logger
	httpClient  *http.Client
	baseURLs    []string
	username    string
	password    string
	senderID    string
	countryCode string
	interpreter ResponseInterpreter
}

func NewGatewayClient(logger *slog.Logger, cfg *config.SMSConfig, interpreter ResponseInterpreter) *GatewayClient {
	var urls []string
	for _, u := range strings.Split(cfg.BaseURLs, ",") {
		if trimmed := strings.TrimSpace(u); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}

	if interpreter == nil {
		interpreter = DefaultInterpreter{}
	}

	return &GatewayClient{
		logger:      logger,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		baseURLs:    urls,
		username:    cfg.Username,
		password:    cfg.Password,
		senderID:    cfg.SenderID,
		countryCode: cfg.CountryCode,
		interpreter: interpreter,
	}
}

// Send normalizes the phone number and walks the candidate endpoints until
// one accepts the message.
func (c *GatewayClient) Send(ctx context.Context, phone, message string) error {
	to, err := NormalizePhone(phone, c.countryCode)
	if err != nil {
		return err
	}

	if len(c.baseURLs) == 0 {
		return ErrNoGatewayReachable
	}

	var lastErr error
	for _, baseURL := range c.baseURLs {
		err := c.sendVia(ctx, baseURL, to, message)
		if err == nil {
			c.logger.Info("SMS sent", "to", to, "gateway", baseURL)
			return nil
		}
		lastErr = err
		c.logger.Warn("SMS gateway attempt failed", "gateway", baseURL, "to", to, "error", err)
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return fmt.Errorf("all sms gateways failed for %s: %w", to, lastErr)
}

func (c *GatewayClient) sendVia(ctx context.Context, baseURL, to, message string) error {
	params := url.Values{}
	params.Set("username", c.username)
	params.Set("password", c.password)
	params.Set("src", c.senderID)
	params.Set("dst", to)
	params.Set("msg", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return err
	}

	return c.interpreter.Interpret(resp.StatusCode, body)
}

// NormalizePhone converts a local or international phone number to the digits
// form the gateway expects: country code followed by the subscriber number.
// "0771234567" becomes "94771234567" for country code "94".
func NormalizePhone(raw, countryCode string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == '+' || r == ' ' || r == '-' || r == '(' || r == ')':
			// separators and the plus prefix are dropped
		default:
			return "", fmt.Errorf("%w: %q", ErrInvalidPhone, raw)
		}
	}

	number := digits.String()
	switch {
	case strings.HasPrefix(number, "0") && len(number) == 10:
		number = countryCode + number[1:]
	case strings.HasPrefix(number, countryCode) && len(number) == len(countryCode)+9:
		// already in international form
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, raw)
	}
	return number, nil
}

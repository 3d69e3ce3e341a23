// Package google is a thin client for the Google Generative Language
// generateContent REST API.
package google

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// ErrMissingAPIKey is returned before any network I/O when no credential is
// available for the request.
var ErrMissingAPIKey = errors.New("google: API key not set (GOOGLE_API_KEY)")

type ObserverFunc func(endpoint string, status int, duration time.Duration)

type Option func(*Client)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	observer   ObserverFunc
}

// Error is a failed HTTP exchange with the API: a non-2xx status, the raw
// body (truncated), and the decoded JSON error document when the body parses.
type Error struct {
	StatusCode int
	Body       string
	Detail     map[string]any
}

func (e *Error) Error() string {
	if e.Detail != nil {
		detail, err := json.Marshal(e.Detail)
		if err == nil {
			return fmt.Sprintf("google API error: %s", detail)
		}
	}
	return fmt.Sprintf("google API error: status %d: %s", e.StatusCode, e.Body)
}

// Part is one entry of a content's ordered parts list. Exactly one field is
// set per part.
type Part struct {
	Text     string    `json:"text,omitempty"`
	FileData *FileData `json:"file_data,omitempty"`
}

type FileData struct {
	FileURI string `json:"file_uri"`
}

type Content struct {
	Parts []Part `json:"parts"`
}

type GenerateContentRequest struct {
	Contents []Content `json:"contents"`
}

// GenerateContentResponse keeps the raw response document; callers decide how
// much of its shape to trust.
type GenerateContentResponse struct {
	Raw json.RawMessage
}

// NewRequest builds the request document for one prompt against one media
// URL. Part order is fixed: the API is positionally sensitive, the text part
// must precede the file reference.
func NewRequest(promptText, fileURI string) GenerateContentRequest {
	return GenerateContentRequest{
		Contents: []Content{
			{
				Parts: []Part{
					{Text: promptText},
					{FileData: &FileData{FileURI: fileURI}},
				},
			},
		},
	}
}

func WithObserver(observer ObserverFunc) Option {
	return func(c *Client) {
		c.observer = observer
	}
}

func New(baseURL, apiKey string, httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: httpClient,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// GenerateContent performs one synchronous generateContent call. The
// credential travels as a query parameter, so transport errors are unwrapped
// before returning to keep the key out of error text.
func (c *Client) GenerateContent(ctx context.Context, model string, reqPayload GenerateContentRequest) (GenerateContentResponse, error) {
	started := time.Now()
	statusCode := 0
	defer func() { c.observe("generate_content", statusCode, time.Since(started)) }()

	apiKey := c.requestAPIKey(ctx)
	if apiKey == "" {
		return GenerateContentResponse{}, ErrMissingAPIKey
	}

	payload, err := json.Marshal(reqPayload)
	if err != nil {
		return GenerateContentResponse{}, err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, url.PathEscape(model), url.QueryEscape(apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return GenerateContentResponse{}, sanitizeURLError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return GenerateContentResponse{}, sanitizeURLError(err)
	}
	defer resp.Body.Close()
	statusCode = resp.StatusCode

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return GenerateContentResponse{}, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return GenerateContentResponse{}, newError(resp.StatusCode, respBody)
	}

	if !json.Valid(respBody) {
		return GenerateContentResponse{}, fmt.Errorf("google: invalid JSON in generateContent response")
	}
	return GenerateContentResponse{Raw: json.RawMessage(respBody)}, nil
}

// CheckModels probes the models-list endpoint, used as a readiness check.
func (c *Client) CheckModels(ctx context.Context) error {
	started := time.Now()
	statusCode := 0
	defer func() { c.observe("models", statusCode, time.Since(started)) }()

	apiKey := c.requestAPIKey(ctx)
	if apiKey == "" {
		return ErrMissingAPIKey
	}

	endpoint := fmt.Sprintf("%s/models?key=%s", c.baseURL, url.QueryEscape(apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return sanitizeURLError(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return sanitizeURLError(err)
	}
	defer resp.Body.Close()
	statusCode = resp.StatusCode

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return newError(resp.StatusCode, body)
	}
	return nil
}

func (c *Client) observe(endpoint string, status int, duration time.Duration) {
	if c.observer != nil {
		c.observer(endpoint, status, duration)
	}
}

func (c *Client) requestAPIKey(ctx context.Context) string {
	if key := RequestAPIKeyFromContext(ctx); key != "" {
		return key
	}
	return c.apiKey
}

type ctxKey string

const requestAPIKeyContext = ctxKey("google_api_key")

// WithRequestAPIKey overrides the client's configured credential for a single
// request.
func WithRequestAPIKey(ctx context.Context, apiKey string) context.Context {
	return context.WithValue(ctx, requestAPIKeyContext, strings.TrimSpace(apiKey))
}

func RequestAPIKeyFromContext(ctx context.Context) string {
	value, _ := ctx.Value(requestAPIKeyContext).(string)
	return value
}

func newError(status int, body []byte) *Error {
	apiErr := &Error{StatusCode: status, Body: truncateBody(string(body))}
	var detail map[string]any
	if err := json.Unmarshal(body, &detail); err == nil {
		apiErr.Detail = detail
	}
	return apiErr
}

// sanitizeURLError strips the request URL from transport errors; it carries
// the credential in its query string.
func sanitizeURLError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("google: %s request failed: %w", uerr.Op, uerr.Err)
	}
	return err
}

func truncateBody(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= 4096 {
		return s
	}
	return s[:4096] + "..."
}

package google

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateContentSendsKeyAndOrderedParts(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gemini-1.5-flash:generateContent" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Fatalf("unexpected key query param: %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Fatalf("unexpected content type: %q", got)
		}

		body, _ := io.ReadAll(r.Body)
		var req GenerateContentRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 2 {
			t.Fatalf("unexpected request shape: %s", body)
		}
		parts := req.Contents[0].Parts
		if parts[0].Text != "the prompt" || parts[0].FileData != nil {
			t.Fatalf("first part must be the prompt text, got %+v", parts[0])
		}
		if parts[1].FileData == nil || parts[1].FileData.FileURI != "https://youtu.be/abc" {
			t.Fatalf("second part must be the file reference, got %+v", parts[1])
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"hi"}]}}]}`)
	}))
	defer ts.Close()

	c := New(ts.URL, "test-key", ts.Client())
	resp, err := c.GenerateContent(context.Background(), "gemini-1.5-flash", NewRequest("the prompt", "https://youtu.be/abc"))
	if err != nil {
		t.Fatalf("GenerateContent() error = %v", err)
	}
	if !strings.Contains(string(resp.Raw), `"hi"`) {
		t.Fatalf("unexpected raw response: %s", resp.Raw)
	}
}

func TestGenerateContentMissingKeySkipsNetwork(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer ts.Close()

	c := New(ts.URL, "", ts.Client())
	_, err := c.GenerateContent(context.Background(), "m", NewRequest("p", "u"))
	if err != ErrMissingAPIKey {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if called {
		t.Fatal("no request must be sent without a credential")
	}
}

func TestGenerateContentUsesContextKeyOverride(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("key"); got != "override" {
			t.Fatalf("unexpected key: %q", got)
		}
		_, _ = io.WriteString(w, `{}`)
	}))
	defer ts.Close()

	c := New(ts.URL, "configured", ts.Client())
	ctx := WithRequestAPIKey(context.Background(), "override")
	if _, err := c.GenerateContent(ctx, "m", NewRequest("p", "u")); err != nil {
		t.Fatalf("GenerateContent() error = %v", err)
	}
}

func TestGenerateContentParsesJSONErrorBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"code":400,"message":"invalid argument"}}`)
	}))
	defer ts.Close()

	c := New(ts.URL, "test-key", ts.Client())
	_, err := c.GenerateContent(context.Background(), "m", NewRequest("p", "u"))
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status code: %d", apiErr.StatusCode)
	}
	if apiErr.Detail == nil {
		t.Fatalf("expected parsed JSON detail, got nil (body %q)", apiErr.Body)
	}
	if !strings.Contains(apiErr.Error(), "invalid argument") {
		t.Fatalf("error text should carry upstream detail: %q", apiErr.Error())
	}
}

func TestGenerateContentFallsBackToRawBodyOnNonJSONError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service melted", http.StatusBadGateway)
	}))
	defer ts.Close()

	c := New(ts.URL, "test-key", ts.Client())
	_, err := c.GenerateContent(context.Background(), "m", NewRequest("p", "u"))
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Detail != nil {
		t.Fatalf("expected no parsed detail for plain-text body, got %+v", apiErr.Detail)
	}
	if !strings.Contains(apiErr.Error(), "status 502") || !strings.Contains(apiErr.Error(), "service melted") {
		t.Fatalf("error should report status and raw body: %q", apiErr.Error())
	}
}

func TestTransportErrorDoesNotLeakCredential(t *testing.T) {
	c := New("http://127.0.0.1:1", "secret-key-value", &http.Client{})
	_, err := c.GenerateContent(context.Background(), "m", NewRequest("p", "u"))
	if err == nil {
		t.Fatal("expected transport error")
	}
	if strings.Contains(err.Error(), "secret-key-value") {
		t.Fatalf("error text leaks the credential: %q", err.Error())
	}
}

func TestCheckModels(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Fatalf("unexpected key: %q", got)
		}
		_, _ = io.WriteString(w, `{"models":[]}`)
	}))
	defer ts.Close()

	c := New(ts.URL, "test-key", ts.Client())
	if err := c.CheckModels(context.Background()); err != nil {
		t.Fatalf("CheckModels() error = %v", err)
	}
}

package main

import (
	"net/http"
	"testing"
	"time"

	"github.com/mnk-nasir/AutoTube-Transcript-Assistant/internal/generate"
	"github.com/mnk-nasir/AutoTube-Transcript-Assistant/internal/upstream/google"
)

// The validation failures below must short-circuit before the service is
// touched, so a nil service is deliberate: a network attempt would panic.

func TestRunOnceNoURLExitsOne(t *testing.T) {
	code := runOnce(runOptions{
		service:    nil,
		url:        "",
		promptType: "transcript",
		apiKey:     "key",
	})
	if code != exitUsageError {
		t.Fatalf("unexpected exit code: %d", code)
	}
}

func TestRunOnceUnknownPromptTypeExitsOne(t *testing.T) {
	code := runOnce(runOptions{
		service:    nil,
		url:        "https://youtu.be/abc",
		promptType: "poetry",
		apiKey:     "key",
	})
	if code != exitUsageError {
		t.Fatalf("unexpected exit code: %d", code)
	}
}

func TestRunOnceRemoteFailureExitsTwo(t *testing.T) {
	client := google.New("http://127.0.0.1:1", "key", &http.Client{Timeout: time.Second})
	service := generate.New(client, "gemini-1.5-flash", time.Second)

	code := runOnce(runOptions{
		service:    service,
		url:        "https://youtu.be/abc",
		promptType: "transcript",
		apiKey:     "key",
	})
	if code != exitRemoteErr {
		t.Fatalf("unexpected exit code: %d", code)
	}
}

func TestRunOnceMissingCredentialExitsOne(t *testing.T) {
	code := runOnce(runOptions{
		service:    nil,
		url:        "https://youtu.be/abc",
		promptType: "transcript",
		apiKey:     "   ",
	})
	if code != exitUsageError {
		t.Fatalf("unexpected exit code: %d", code)
	}
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mnk-nasir/AutoTube-Transcript-Assistant/internal/config"
	"github.com/mnk-nasir/AutoTube-Transcript-Assistant/internal/generate"
	"github.com/mnk-nasir/AutoTube-Transcript-Assistant/internal/httpapi"
	"github.com/mnk-nasir/AutoTube-Transcript-Assistant/internal/observability"
	"github.com/mnk-nasir/AutoTube-Transcript-Assistant/internal/output"
	"github.com/mnk-nasir/AutoTube-Transcript-Assistant/internal/prompt"
	"github.com/mnk-nasir/AutoTube-Transcript-Assistant/internal/upstream/google"
)

const (
	exitOK         = 0
	exitUsageError = 1
	exitRemoteErr  = 2
)

func main() {
	// .env is optional, matching the workflow this tool automates.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(exitUsageError)
	}

	youtubeURL := flag.String("youtube-url", cfg.YouTubeURL, "Public YouTube URL to analyze")
	promptType := flag.String("prompt-type", cfg.PromptType, "Prompt type: "+strings.Join(prompt.Names(), ", "))
	modelName := flag.String("model", cfg.DefaultModel, "Model name to call")
	apiKey := flag.String("api-key", cfg.GoogleAPIKey, "Google API key (overrides GOOGLE_API_KEY)")
	save := flag.Bool("save", false, "Save result under the output directory")
	outputDir := flag.String("output-dir", cfg.OutputDir, "Directory for saved outputs")
	serve := flag.Bool("serve", false, "Run the HTTP gateway instead of a one-shot CLI call")
	flag.Parse()

	logger := newLogger(cfg.LogLevel)
	metrics := observability.NewMetrics()

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 10 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	httpClient := &http.Client{Timeout: cfg.RequestTimeout, Transport: transport}
	client := google.New(cfg.GoogleBaseURL, *apiKey, httpClient, google.WithObserver(metrics.ObserveUpstream))
	service := generate.New(client, cfg.DefaultModel, cfg.RequestTimeout)

	if *serve {
		cfg.GoogleAPIKey = strings.TrimSpace(*apiKey)
		runServer(cfg, logger, service, client, metrics)
		return
	}

	os.Exit(runOnce(runOptions{
		service:    service,
		url:        *youtubeURL,
		promptType: *promptType,
		model:      *modelName,
		apiKey:     *apiKey,
		save:       *save,
		outputDir:  *outputDir,
	}))
}

type runOptions struct {
	service    *generate.Service
	url        string
	promptType string
	model      string
	apiKey     string
	save       bool
	outputDir  string
}

func runOnce(opts runOptions) int {
	if strings.TrimSpace(opts.url) == "" {
		fmt.Fprintln(os.Stderr, "Error: No YouTube URL provided. Use --youtube-url or set YOUTUBE_URL in .env.")
		return exitUsageError
	}

	selected, err := prompt.Parse(opts.promptType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsageError
	}

	if strings.TrimSpace(opts.apiKey) == "" {
		fmt.Fprintln(os.Stderr, "Error: Google API key not set (GOOGLE_API_KEY).")
		return exitUsageError
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Calling Google model=%s for prompt_type=%s on URL=%s...\n", opts.model, selected, opts.url)
	result, err := opts.service.Generate(ctx, generate.Input{
		PromptType: selected,
		VideoURL:   opts.url,
		Model:      opts.model,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error calling Google Generative API:")
		fmt.Fprintln(os.Stderr, err.Error())
		return exitRemoteErr
	}

	fmt.Println("\n--- Generated Output START ---")
	fmt.Println(result.Text.Value)
	fmt.Println("--- Generated Output END ---")

	if opts.save {
		path, err := output.Save(result.Text.Value, selected, opts.outputDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error saving output: %v\n", err)
			return exitUsageError
		}
		fmt.Printf("Saved output to: %s\n", path)
	}
	return exitOK
}

func runServer(cfg config.Config, logger *slog.Logger, service *generate.Service, client *google.Client, metrics *observability.Metrics) {
	handler := httpapi.NewServer(cfg, logger, httpapi.Dependencies{
		Generate:       service,
		Upstream:       client,
		Save:           output.Save,
		Metrics:        metrics,
		MetricsHandler: metrics.Handler(),
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Error("server exited", "error", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func newLogger(level string) *slog.Logger {
	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn", "warning":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel}))
}

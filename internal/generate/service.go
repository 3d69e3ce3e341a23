// Package generate orchestrates one prompt-plus-video request against the
// generative-language API and extracts the primary text from its response.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/mnk-nasir/AutoTube-Transcript-Assistant/internal/prompt"
	"github.com/mnk-nasir/AutoTube-Transcript-Assistant/internal/upstream/google"
)

var (
	ErrEmptyURL          = errors.New("generate: video URL is empty")
	ErrUnknownPromptType = errors.New("generate: unknown prompt type")
)

type Client interface {
	GenerateContent(ctx context.Context, model string, req google.GenerateContentRequest) (google.GenerateContentResponse, error)
}

type Service struct {
	client       Client
	defaultModel string
	timeout      time.Duration
}

type Input struct {
	PromptType prompt.Type
	VideoURL   string
	Model      string
}

type Result struct {
	Text       Text
	PromptType prompt.Type
	Model      string
}

// Text is the extracted output plus whether it came from the structured
// response path or the whole-document fallback dump.
type Text struct {
	Value        string
	UsedFallback bool
}

func New(client Client, defaultModel string, timeout time.Duration) *Service {
	return &Service{
		client:       client,
		defaultModel: strings.TrimSpace(defaultModel),
		timeout:      timeout,
	}
}

// BuildRequest maps a prompt type to its template and pairs it with the
// target URL. Pure; fails only on an unknown prompt type.
func BuildRequest(promptType prompt.Type, videoURL string) (google.GenerateContentRequest, error) {
	template, ok := promptType.Template()
	if !ok {
		return google.GenerateContentRequest{}, ErrUnknownPromptType
	}
	return google.NewRequest(template, videoURL), nil
}

func (s *Service) Generate(ctx context.Context, in Input) (Result, error) {
	videoURL := strings.TrimSpace(in.VideoURL)
	if videoURL == "" {
		return Result{}, ErrEmptyURL
	}

	model := strings.TrimSpace(in.Model)
	if model == "" {
		model = s.defaultModel
	}

	reqPayload, err := BuildRequest(in.PromptType, videoURL)
	if err != nil {
		return Result{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.GenerateContent(ctx, model, reqPayload)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Text:       ExtractText(resp.Raw),
		PromptType: in.PromptType,
		Model:      model,
	}, nil
}

// ExtractText selects candidates[0].content.parts[0].text from a response
// document. It is total: any structural mismatch along that path yields a
// pretty-printed dump of the whole document instead of an error. A present
// but empty text field counts as a match.
func ExtractText(raw json.RawMessage) Text {
	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text *string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil &&
		len(parsed.Candidates) > 0 &&
		len(parsed.Candidates[0].Content.Parts) > 0 &&
		parsed.Candidates[0].Content.Parts[0].Text != nil {
		return Text{Value: *parsed.Candidates[0].Content.Parts[0].Text}
	}
	return Text{Value: dumpDocument(raw), UsedFallback: true}
}

func dumpDocument(raw json.RawMessage) string {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return string(raw)
	}
	dump, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return string(raw)
	}
	return string(dump)
}

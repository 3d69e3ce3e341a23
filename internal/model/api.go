package model

type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error     APIError `json:"error"`
	RequestID string   `json:"request_id,omitempty"`
}

type HealthResponse struct {
	OK bool `json:"ok"`
}

type ReadyResponse struct {
	OK          bool   `json:"ok"`
	ServiceName string `json:"service_name,omitempty"`
}

type GenerateRequest struct {
	URL        string `json:"url"`
	PromptType string `json:"prompt_type"`
	Model      string `json:"model,omitempty"`
	Save       bool   `json:"save,omitempty"`
}

type GenerateResponse struct {
	Text         string `json:"text"`
	PromptType   string `json:"prompt_type"`
	Model        string `json:"model"`
	UsedFallback bool   `json:"used_fallback"`
	SavedPath    string `json:"saved_path,omitempty"`
}

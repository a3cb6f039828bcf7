package domain

import "errors"

var (
	MessageSuccessChat          = "assistant reply generated successfully"
	MessageSuccessSaveProvider  = "AI provider saved successfully"
	MessageSuccessGetProviders  = "AI providers retrieved successfully"
	MessageFailedChat           = "failed to generate assistant reply"
	MessageFailedSaveProvider   = "failed to save AI provider"
	MessageFailedGetProviders   = "failed to retrieve AI providers"
	MessageFailedNoProviderConf = "no enabled AI provider configured"

	ErrNoProviderConfigured = errors.New("no enabled AI provider configured")
	ErrProviderUnavailable  = errors.New("AI provider request failed")
)

type (
	ChatRequest struct {
		Message string `json:"message" validate:"required,max=4000"`
	}

	ChatResponse struct {
		Provider string `json:"provider"`
		Model    string `json:"model"`
		Reply    string `json:"reply"`
	}

	SaveProviderRequest struct {
		Provider  string `json:"provider" validate:"required,oneof=openai anthropic gemini"`
		Model     string `json:"model" validate:"required"`
		BaseURL   string `json:"base_url" validate:"omitempty,url"`
		APIKeyRef string `json:"api_key_ref" validate:"required"`
		Enabled   bool   `json:"enabled"`
	}

	ProviderResponse struct {
		Provider string `json:"provider"`
		Model    string `json:"model"`
		BaseURL  string `json:"base_url,omitempty"`
		Enabled  bool   `json:"enabled"`
	}
)

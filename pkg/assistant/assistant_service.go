package assistant

import (
	"EchoForge-Backend/domain"
	"EchoForge-Backend/entities"
	"EchoForge-Backend/internal/utils"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	AssistantService interface {
		SaveProvider(ctx context.Context, req domain.SaveProviderRequest) (*domain.ProviderResponse, error)
		GetProviders(ctx context.Context) ([]*domain.ProviderResponse, error)
		Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error)
	}

	assistantService struct {
		assistantRepository AssistantRepository
		httpClient          *http.Client
	}
)

const chatTimeout = 30 * time.Second

func NewAssistantService(assistantRepository AssistantRepository) AssistantService {
	return &assistantService{
		assistantRepository: assistantRepository,
		httpClient:          &http.Client{Timeout: chatTimeout},
	}
}

func (s *assistantService) SaveProvider(ctx context.Context, req domain.SaveProviderRequest) (*domain.ProviderResponse, error) {
	now := time.Now()
	provider := &entities.AIProvider{
		ID:        uuid.New(),
		Provider:  req.Provider,
		Model:     req.Model,
		BaseURL:   req.BaseURL,
		APIKeyRef: req.APIKeyRef,
		Enabled:   req.Enabled,
		Timestamp: entities.Timestamp{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.assistantRepository.UpsertProvider(ctx, provider); err != nil {
		return nil, err
	}

	return toProviderResponse(provider), nil
}

func (s *assistantService) GetProviders(ctx context.Context) ([]*domain.ProviderResponse, error) {
	providers, err := s.assistantRepository.GetProviders(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.ProviderResponse, 0, len(providers))
	for _, provider := range providers {
		result = append(result, toProviderResponse(provider))
	}
	return result, nil
}

func (s *assistantService) Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
	provider, err := s.assistantRepository.GetEnabledProvider(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoProviderConfigured
		}
		return nil, err
	}

	apiKey := utils.GetConfig(provider.APIKeyRef)
	if apiKey == "" {
		return nil, domain.ErrNoProviderConfigured
	}

	reply, err := s.complete(ctx, provider, apiKey, req.Message)
	if err != nil {
		return nil, err
	}

	return &domain.ChatResponse{
		Provider: provider.Provider,
		Model:    provider.Model,
		Reply:    reply,
	}, nil
}

// complete sends a single-turn chat completion to the configured
// provider. Each provider speaks its own dialect, so the request body
// and reply path are switched per provider.
func (s *assistantService) complete(ctx context.Context, provider *entities.AIProvider, apiKey, message string) (string, error) {
	var (
		url  string
		body map[string]any
	)

	switch provider.Provider {
	case "anthropic":
		url = baseOr(provider.BaseURL, "https://api.anthropic.com") + "/v1/messages"
		body = map[string]any{
			"model":      provider.Model,
			"max_tokens": 1024,
			"messages": []map[string]string{
				{"role": "user", "content": message},
			},
		}
	case "gemini":
		url = fmt.Sprintf("%s/v1beta/models/%s:generateContent",
			baseOr(provider.BaseURL, "https://generativelanguage.googleapis.com"), provider.Model)
		body = map[string]any{
			"contents": []map[string]any{
				{"parts": []map[string]string{{"text": message}}},
			},
		}
	default: // openai-compatible
		url = baseOr(provider.BaseURL, "https://api.openai.com") + "/v1/chat/completions"
		body = map[string]any{
			"model": provider.Model,
			"messages": []map[string]string{
				{"role": "user", "content": message},
			},
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	switch provider.Provider {
	case "anthropic":
		httpReq.Header.Set("x-api-key", apiKey)
		httpReq.Header.Set("anthropic-version", "2023-06-01")
	case "gemini":
		httpReq.Header.Set("x-goog-api-key", apiKey)
	default:
		httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return "", domain.ErrProviderUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", domain.ErrProviderUnavailable
	}

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", domain.ErrProviderUnavailable
	}

	reply := extractReply(provider.Provider, decoded)
	if reply == "" {
		return "", domain.ErrProviderUnavailable
	}
	return reply, nil
}

func extractReply(providerName string, decoded map[string]any) string {
	switch providerName {
	case "anthropic":
		content, _ := decoded["content"].([]any)
		if len(content) == 0 {
			return ""
		}
		block, _ := content[0].(map[string]any)
		text, _ := block["text"].(string)
		return text
	case "gemini":
		candidates, _ := decoded["candidates"].([]any)
		if len(candidates) == 0 {
			return ""
		}
		candidate, _ := candidates[0].(map[string]any)
		content, _ := candidate["content"].(map[string]any)
		parts, _ := content["parts"].([]any)
		if len(parts) == 0 {
			return ""
		}
		part, _ := parts[0].(map[string]any)
		text, _ := part["text"].(string)
		return text
	default:
		choices, _ := decoded["choices"].([]any)
		if len(choices) == 0 {
			return ""
		}
		choice, _ := choices[0].(map[string]any)
		msg, _ := choice["message"].(map[string]any)
		text, _ := msg["content"].(string)
		return text
	}
}

func baseOr(baseURL, fallback string) string {
	if baseURL != "" {
		return baseURL
	}
	return fallback
}

func toProviderResponse(provider *entities.AIProvider) *domain.ProviderResponse {
	return &domain.ProviderResponse{
		Provider: provider.Provider,
		Model:    provider.Model,
		BaseURL:  provider.BaseURL,
		Enabled:  provider.Enabled,
	}
}

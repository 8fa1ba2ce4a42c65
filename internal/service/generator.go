package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"petchat/internal/config"
	"petchat/internal/logger"
)

var (
	// ErrGeneratorDisabled is returned when no API key is configured
	ErrGeneratorDisabled = errors.New("generator is not enabled (missing API key)")
	// ErrEmptyGeneration is returned when the model produced no text
	ErrEmptyGeneration = errors.New("generator returned no text")
)

// GenerationParams controls one completion
type GenerationParams struct {
	MaxNewTokens int
	Truncation   bool // cut overlong prompts instead of sending them whole
}

// Generator is a best-effort text-completion service
type Generator interface {
	Generate(ctx context.Context, prompt string, params GenerationParams) (string, error)
}

// OpenAIClient talks to an OpenAI-compatible chat completions API
type OpenAIClient struct {
	config     *config.GeneratorConfig
	httpClient *http.Client
	log        *logger.Logger
}

// NewOpenAIClient creates a new OpenAI-compatible client
func NewOpenAIClient(cfg *config.GeneratorConfig, log *logger.Logger) *OpenAIClient {
	if log == nil {
		log = logger.Nop()
	}
	return &OpenAIClient{
		config: cfg,
		log:    log,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// IsEnabled returns whether the client is configured and ready
func (c *OpenAIClient) IsEnabled() bool {
	return c.config.Enabled
}

// ChatCompletionRequest represents a chat completion request
type ChatCompletionRequest struct {
	Model       string         `json:"model"`
	Messages    []ChatMessage  `json:"messages"`
	Temperature float64        `json:"temperature,omitempty"`
	TopP        float64        `json:"top_p,omitempty"`
	MaxTokens   int            `json:"max_tokens,omitempty"`
	ExtraBody   map[string]any `json:"extra_body,omitempty"`
}

// ChatMessage represents a single message in the conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionResponse represents the API response
type ChatCompletionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Generate sends the prompt as a single user message
func (c *OpenAIClient) Generate(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	if params.Truncation && c.config.MaxPromptChars > 0 {
		if runes := []rune(prompt); len(runes) > c.config.MaxPromptChars {
			prompt = string(runes[:c.config.MaxPromptChars])
		}
	}

	resp, err := c.ChatCompletion(ctx, ChatCompletionRequest{
		Messages:  []ChatMessage{{Role: "user", Content: prompt}},
		MaxTokens: params.MaxNewTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyGeneration
	}
	return resp.Choices[0].Message.Content, nil
}

// ChatCompletion performs a chat completion request
func (c *OpenAIClient) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	if !c.config.Enabled {
		return nil, ErrGeneratorDisabled
	}

	// Use configured model if not specified
	if req.Model == "" {
		req.Model = c.config.ChatModel
	}

	// Apply default parameters from config
	if req.Temperature == 0 && c.config.ChatTemperature > 0 {
		req.Temperature = c.config.ChatTemperature
	}
	if req.TopP == 0 && c.config.ChatTopP > 0 {
		req.TopP = c.config.ChatTopP
	}
	if req.MaxTokens == 0 && c.config.MaxNewTokens > 0 {
		req.MaxTokens = c.config.MaxNewTokens
	}

	if req.ExtraBody == nil && c.config.ChatExtraBody != "" {
		var extraBody map[string]any
		if err := json.Unmarshal([]byte(c.config.ChatExtraBody), &extraBody); err == nil {
			req.ExtraBody = extraBody
		} else {
			c.log.Warn("failed to parse OPENAI_CHAT_EXTRA_BODY", "error", err)
		}
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", c.config.APIBase)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &result, nil
}

// Ping checks that the API answers with the configured credentials
func (c *OpenAIClient) Ping(ctx context.Context) error {
	if !c.config.Enabled {
		return ErrGeneratorDisabled
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.APIBase+"/models", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to reach generator: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("generator ping failed with status %d", resp.StatusCode)
	}
	return nil
}

// CleanGeneration removes an echoed prompt from the output and makes sure the
// text ends with terminal punctuation. An empty result means nothing usable.
func CleanGeneration(output, prompt string) string {
	if prompt != "" {
		output = strings.ReplaceAll(output, prompt, "")
	}
	output = strings.TrimSpace(output)
	if output == "" {
		return ""
	}
	if !strings.ContainsAny(output[len(output)-1:], ".!?") {
		output += "."
	}
	return output
}

func truncate(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "..."
}

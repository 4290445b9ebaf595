package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ChatMessage is one turn of an OpenAI chat conversation.
type ChatMessage struct {
	Role         string        `json:"role"`
	Content      string        `json:"content"`
	Name         string        `json:"name,omitempty"`
	FunctionCall *FunctionCall `json:"function_call,omitempty"`
}

// FunctionCall is the model's request to invoke a declared function.
// Arguments is a JSON object encoded as a string.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// FunctionDef declares one callable function to the model.
type FunctionDef struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ChatChoice is one completion candidate.
type ChatChoice struct {
	FinishReason string      `json:"finish_reason"`
	Message      ChatMessage `json:"message"`
}

type chatRequest struct {
	Model        string        `json:"model"`
	Messages     []ChatMessage `json:"messages"`
	Functions    []FunctionDef `json:"functions,omitempty"`
	FunctionCall any           `json:"function_call,omitempty"`
}

type chatResponse struct {
	Choices []ChatChoice `json:"choices"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// OpenAIClient talks to the chat-completions API.
type OpenAIClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAIClient builds a client for the given model. baseURL may be empty
// for the public endpoint.
func NewOpenAIClient(apiKey, model, baseURL string) *OpenAIClient {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &OpenAIClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Chat runs one completion. functions and functionCall are optional.
func (c *OpenAIClient) Chat(ctx context.Context, messages []ChatMessage, functions []FunctionDef, functionCall any) (*ChatChoice, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	reqBody := chatRequest{
		Model:        c.model,
		Messages:     messages,
		Functions:    functions,
		FunctionCall: functionCall,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post request to openai failed: %w", err)
	}
	defer resp.Body.Close()

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response failed: %w", err)
	}

	if result.Error != nil {
		return nil, fmt.Errorf("openai api error: %s", result.Error.Message)
	}

	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}

	return &result.Choices[0], nil
}

// GenerateText satisfies TextGenerator with a single user message.
func (c *OpenAIClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	choice, err := c.Chat(ctx, []ChatMessage{{Role: "user", Content: prompt}}, nil, nil)
	if err != nil {
		return "", err
	}
	return choice.Message.Content, nil
}

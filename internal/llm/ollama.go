package llm

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

	apperrors "github.com/fredhopp/flip-flop-prompter/internal/errors"
	"github.com/fredhopp/flip-flop-prompter/internal/logger"
)

const (
	// DefaultBaseURL is the standard local Ollama endpoint.
	DefaultBaseURL = "http://localhost:11434"

	// refineTimeout bounds a single chat completion.
	refineTimeout = 30 * time.Second

	// probeTimeout bounds availability and model listing calls.
	probeTimeout = 5 * time.Second
)

// OllamaClient implements Refiner against a local Ollama server.
type OllamaClient struct {
	baseURL string
	client  *http.Client
	log     *logger.Logger
}

// NewOllamaClient creates a client for the given base URL. An empty
// URL falls back to the default local endpoint.
func NewOllamaClient(baseURL string, log *logger.Logger) *OllamaClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &OllamaClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: refineTimeout},
		log:     log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	MaxTokens   int     `json:"max_tokens"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  chatOptions   `json:"options"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Refine sends the chat completion request and returns the cleaned
// prompt text. Timeouts and connection failures come back as typed
// errors so callers can distinguish them from model errors.
func (c *OllamaClient) Refine(ctx context.Context, req Request) (string, error) {
	if req.Model == "" {
		return "", apperrors.RefinerUnavailableError("no refiner model selected")
	}

	payload := chatRequest{
		Model: req.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt(req)},
			{Role: "user", Content: userPrompt(req.Fields, req.TargetModel)},
		},
		Stream: false,
		Options: chatOptions{
			Temperature: 0.7,
			TopP:        0.9,
			MaxTokens:   500,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternalError, "Failed to encode refiner request")
	}

	c.log.Debug(logger.AreaOllama, "calling chat endpoint",
		"model", req.Model, "target", req.TargetModel, "rating", string(req.ContentRating))
	start := time.Now()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternalError, "Failed to build refiner request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			c.log.Warn(logger.AreaOllama, "chat request timed out", "model", req.Model)
			return "", apperrors.RefinerTimeoutError(req.Model, err)
		}
		c.log.Warn(logger.AreaOllama, "chat request failed", "error", err.Error())
		return "", apperrors.RefinerConnectionError(c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Warn(logger.AreaOllama, "chat endpoint returned error",
			"status", resp.StatusCode, "body", string(msg))
		return "", apperrors.NewAppError(apperrors.ErrCodeRefinerResponse,
			fmt.Sprintf("Refiner returned status %d", resp.StatusCode)).WithDetails(string(msg))
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeRefinerResponse, "Failed to decode refiner response")
	}

	cleaned := Clean(result.Message.Content)
	c.log.Debug(logger.AreaOllama, "chat completed",
		"model", req.Model, "elapsed", time.Since(start).String(), "length", len(cleaned))
	return cleaned, nil
}

// Available reports whether the Ollama server responds to /api/tags.
func (c *OllamaClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.log.Debug(logger.AreaOllama, "availability probe failed", "error", err.Error())
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Models lists the model names installed on the server.
func (c *OllamaClient) Models(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "Failed to build model listing request")
	}
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, apperrors.RefinerConnectionError(c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewAppError(apperrors.ErrCodeRefinerResponse,
			fmt.Sprintf("Model listing returned status %d", resp.StatusCode))
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeRefinerResponse, "Failed to decode model listing")
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		if m.Name != "" {
			names = append(names, m.Name)
		}
	}
	c.log.Debug(logger.AreaOllama, "listed models", "count", len(names))
	return names, nil
}

func isTimeout(err error) bool {
	var nerr interface{ Timeout() bool }
	if errors.As(err, &nerr) {
		return nerr.Timeout()
	}
	return false
}

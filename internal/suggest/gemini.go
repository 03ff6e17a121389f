package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"strconv"
	"strings"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.5-flash"

	prompt = "Generate a simple, specific, open-ended observation question that someone could ask themselves about their day. " +
		"The question should be something they can recall the specific answer to the next day. The goal is to improve memory. " +
		"Examples: 'What was the title of the first article I read today?' or 'What specific food did I have for lunch?'. " +
		"Provide just one question."

	// FallbackUnconfigured is returned when no API key is configured.
	FallbackUnconfigured = "What was the most interesting color you saw today?"
	// FallbackError is returned on any request or response failure.
	FallbackError = "What was the most unexpected thing that happened today?"
)

type (
	generateRequest struct {
		Contents []content `json:"contents"`
	}

	content struct {
		Parts []part `json:"parts"`
	}

	part struct {
		Text string `json:"text"`
	}

	generateResponse struct {
		Candidates []struct {
			Content content `json:"content"`
		} `json:"candidates"`
	}

	Client struct {
		apiKey  string
		baseURL string
		model   string
		client  *http.Client
		log     *slog.Logger
	}

	Option func(*Client)
)

func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

func NewClient(apiKey string, log *slog.Logger, opts ...Option) *Client {
	res := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		model:   defaultModel,
		client:  http.DefaultClient,
		log:     log,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// SuggestQuestion asks the model for one observation question. It never
// fails: any error resolves to a fixed fallback string.
func (c *Client) SuggestQuestion(ctx context.Context) string {
	if c.apiKey == "" {
		return FallbackUnconfigured
	}

	question, err := c.generate(ctx)
	if err != nil {
		c.log.ErrorContext(ctx, "failed to fetch suggested question", "error", err)
		return FallbackError
	}

	return question
}

func (c *Client) generate(ctx context.Context) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	marshal, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request body: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(marshal))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 { //nolint:mnd // ignore mnd
		tags := make([]any, 0, 4) //nolint:mnd // ignore mnd
		tags = append(tags, "status", strconv.Itoa(resp.StatusCode))
		if response, err := httputil.DumpResponse(resp, true); err != nil {
			c.log.DebugContext(ctx, "failed to dump response", "error", err)
		} else {
			tags = append(tags, "response", string(response))
		}
		c.log.ErrorContext(ctx, "unexpected response", tags...)
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var body generateResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(body.Candidates) == 0 || len(body.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response")
	}

	question := strings.TrimSpace(body.Candidates[0].Content.Parts[0].Text)
	if question == "" {
		return "", fmt.Errorf("empty question")
	}

	return question, nil
}

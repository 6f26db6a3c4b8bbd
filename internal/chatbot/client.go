// Package chatbot relays user messages to the conversational-AI service.
// The collaborator is opaque: one call per message, no retry, and any
// failure degrades to a fixed fallback string so the page-render path never
// crashes on it.
package chatbot

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/complaintdesk/triage/internal/logging"
	"github.com/complaintdesk/triage/internal/telemetry"
)

// FallbackResponse is returned verbatim whenever the external service
// fails, regardless of the failure mode.
const FallbackResponse = "Error processing your request. Please try again."

// lodgeComplaintLink is appended when the exchange is about lodging a
// complaint, pointing the user at the submission endpoint.
const lodgeComplaintLink = " <a href='/submit_complaint'>Click here to lodge a complaint</a>"

const systemPrompt = "You are the help-desk assistant for an internal employee " +
	"complaint system. Answer questions about complaint status, the review " +
	"process and how to lodge a complaint. Keep answers short and factual."

// Messenger sends one message and returns the response text.
type Messenger interface {
	Send(ctx context.Context, message, conversationKey string) (string, error)
}

// Client wraps a Messenger with the fallback contract.
type Client struct {
	messenger Messenger
	logger    logging.Logger
	metrics   *telemetry.Metrics
}

// Config holds chatbot configuration.
type Config struct {
	APIKey string `env:"ANTHROPIC_API_KEY" yaml:"api_key"`
	Model  string `yaml:"model"`
}

// DefaultModel is used when no model is configured.
const DefaultModel = "claude-sonnet-4-5-20250929"

// New creates a chatbot client backed by the Anthropic Messages API.
func New(cfg Config, logger logging.Logger, metrics *telemetry.Metrics) *Client {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		messenger: &anthropicMessenger{apiKey: cfg.APIKey, model: model},
		logger:    logger,
		metrics:   metrics,
	}
}

// NewWithMessenger creates a client over a custom messenger. Used in tests.
func NewWithMessenger(m Messenger, logger logging.Logger, metrics *telemetry.Metrics) *Client {
	return &Client{messenger: m, logger: logger, metrics: metrics}
}

// Process relays message and returns the response text. It never returns an
// error: every failure resolves to FallbackResponse and is logged for audit.
func (c *Client) Process(ctx context.Context, message, conversationKey string) string {
	if c.metrics != nil {
		c.metrics.ChatMessages.Inc()
	}

	response, err := c.messenger.Send(ctx, message, conversationKey)
	if err != nil {
		if c.metrics != nil {
			c.metrics.ChatbotFallbacks.Inc()
		}
		c.logger.Warn("chatbot call failed, returning fallback",
			logging.String("conversation_key", conversationKey),
			logging.Error(err),
		)
		return FallbackResponse
	}

	if wantsToLodge(message) {
		response += lodgeComplaintLink
	}
	return response
}

// wantsToLodge detects the lodge-complaint intent from the user's message.
func wantsToLodge(message string) bool {
	m := strings.ToLower(message)
	if !strings.Contains(m, "complaint") {
		return false
	}
	for _, verb := range []string{"lodge", "submit", "file", "raise", "new"} {
		if strings.Contains(m, verb) {
			return true
		}
	}
	return false
}

// anthropicMessenger calls the Anthropic Messages API.
type anthropicMessenger struct {
	apiKey string
	model  string
}

func (m *anthropicMessenger) Send(ctx context.Context, message, conversationKey string) (string, error) {
	client := anthropic.NewClient(option.WithAPIKey(m.apiKey))

	resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(m.model),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(message)),
		},
		Metadata: anthropic.MetadataParam{
			UserID: anthropic.String(conversationKey),
		},
	})
	if err != nil {
		return "", err
	}

	for _, block := range resp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", errors.New("no text content in response")
}

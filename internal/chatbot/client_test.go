package chatbot

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/complaintdesk/triage/internal/logging"
)

type fakeMessenger struct {
	response string
	err      error
	lastKey  string
}

func (m *fakeMessenger) Send(_ context.Context, _, conversationKey string) (string, error) {
	m.lastKey = conversationKey
	return m.response, m.err
}

func TestProcess_RelaysResponse(t *testing.T) {
	m := &fakeMessenger{response: "Your complaint is pending review."}
	c := NewWithMessenger(m, logging.NewNop(), nil)

	got := c.Process(context.Background(), "What is the status of my complaint?", "user-42")
	assert.Equal(t, "Your complaint is pending review.", got)
	assert.Equal(t, "user-42", m.lastKey)
}

func TestProcess_FailureDegradesToFallback(t *testing.T) {
	m := &fakeMessenger{err: errors.New("connection refused")}
	c := NewWithMessenger(m, logging.NewNop(), nil)

	got := c.Process(context.Background(), "hello", "user-42")
	assert.Equal(t, FallbackResponse, got)
}

func TestProcess_LodgeIntentAppendsLink(t *testing.T) {
	m := &fakeMessenger{response: "Sure, happy to help."}
	c := NewWithMessenger(m, logging.NewNop(), nil)

	got := c.Process(context.Background(), "How do I lodge a complaint?", "user-42")
	assert.Contains(t, got, "Sure, happy to help.")
	assert.Contains(t, got, "/submit_complaint")
}

func TestProcess_NoLinkOnFallback(t *testing.T) {
	m := &fakeMessenger{err: errors.New("timeout")}
	c := NewWithMessenger(m, logging.NewNop(), nil)

	got := c.Process(context.Background(), "How do I lodge a complaint?", "user-42")
	assert.Equal(t, FallbackResponse, got)
}

func TestWantsToLodge(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"How do I lodge a complaint?", true},
		{"I want to submit a complaint about the printer", true},
		{"file a complaint", true},
		{"raise a new complaint", true},
		{"What is the status of my complaint?", false},
		{"lodge", false},
		{"hello there", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, wantsToLodge(tt.message), "message %q", tt.message)
	}
}

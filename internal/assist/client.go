// Package assist is the dinner-idea chat helper. The interface keeps the
// provider pluggable: Gemini when an API key is configured, a canned mock
// otherwise.
package assist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

type Client interface {
	SuggestDinner(ctx context.Context, message string, favorites []string) (string, error)
}

// NewClient picks the provider from the configured API key.
func NewClient(ctx context.Context, geminiKey string) Client {
	if geminiKey == "" {
		slog.Info("assist: no GEMINI_API_KEY, using mock client")
		return NewMockClient()
	}
	client, err := NewGeminiClient(ctx, geminiKey)
	if err != nil {
		slog.Warn("assist: gemini init failed, using mock client", "error", err)
		return NewMockClient()
	}
	return client
}

// MockClient answers without any external service, rotating through the
// household favorites.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) SuggestDinner(_ context.Context, message string, favorites []string) (string, error) {
	if len(favorites) == 0 {
		return "How about a simple pasta night? Import a few recipes and I can suggest from your favorites.", nil
	}
	pick := favorites[len(message)%len(favorites)]
	return fmt.Sprintf("You could make %s again - it's one of your favorites. Want something new instead? Try searching %q on your whitelisted sites.",
		pick, strings.TrimSpace(message)), nil
}

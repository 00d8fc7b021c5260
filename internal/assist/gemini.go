package assist

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient suggests dinners through Google's Gemini API.
type GeminiClient struct {
	model *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	model := client.GenerativeModel("gemini-1.5-flash")
	model.SetMaxOutputTokens(400)
	return &GeminiClient{model: model}, nil
}

func (g *GeminiClient) SuggestDinner(ctx context.Context, message string, favorites []string) (string, error) {
	var b strings.Builder
	b.WriteString("You are a family meal planning assistant. Suggest weeknight dinners that are quick and family friendly. Answer in a short paragraph.\n")
	if len(favorites) > 0 {
		b.WriteString("The household's favorite recipes: ")
		b.WriteString(strings.Join(favorites, ", "))
		b.WriteString(".\n")
	}
	b.WriteString("Question: ")
	b.WriteString(message)

	resp, err := g.model.GenerateContent(ctx, genai.Text(b.String()))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response format from gemini")
	}
	return string(text), nil
}

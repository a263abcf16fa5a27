package headline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(apiKey, modelName string) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.9)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(64)

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (g *GeminiClient) Close() {
	g.client.Close()
}

func (g *GeminiClient) Generate(ctx context.Context, name, location string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(buildPrompt(name, location)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected part type %T", resp.Candidates[0].Content.Parts[0])
	}

	headline := cleanHeadline(string(text))
	if headline == "" {
		return "", fmt.Errorf("empty headline generated")
	}
	return headline, nil
}

// cleanHeadline keeps the first line and strips the quoting and markdown the
// model sometimes wraps it in.
func cleanHeadline(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	text = strings.Trim(text, "\"'*# ")
	return strings.TrimSpace(text)
}

func buildPrompt(name, location string) string {
	return fmt.Sprintf(`You are an expert local SEO copywriter. Write ONE catchy SEO headline for the business "%s" located in "%s".

The output MUST be a single line of plain text, at most 80 characters, without quotes, markdown, hashtags or any other text.

Example: Why Cake & Co is Mumbai's Sweetest Spot in 2025`, name, location)
}

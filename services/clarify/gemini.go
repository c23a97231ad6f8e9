// File: services/clarify/gemini.go
package clarify

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when GEMINI_MODEL is empty.
const DefaultGeminiModel = "gemini-1.5-flash"

type GeminiSummarizer struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiSummarizer(ctx context.Context, apiKey, modelName string) (*GeminiSummarizer, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.2)
	return &GeminiSummarizer{client: client, model: model}, nil
}

func (g *GeminiSummarizer) Summarize(ctx context.Context, notes string, pairs []QA) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(buildPrompt(notes, pairs)))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

func (g *GeminiSummarizer) Close() error {
	return g.client.Close()
}

func buildPrompt(notes string, pairs []QA) string {
	var sb strings.Builder
	sb.WriteString("Summarise this car fault report for a mobile mechanic in two short sentences. ")
	sb.WriteString("Do not invent details.\n\nCustomer description: ")
	sb.WriteString(notes)
	for _, p := range pairs {
		fmt.Fprintf(&sb, "\nQ: %s\nA: %s", p.Question, p.Answer)
	}
	return sb.String()
}

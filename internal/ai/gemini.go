// Package ai wraps the Gemini API for mood-based catalog recommendations.
// Callers never see a model failure as anything but an error to fall back
// from; the canned-fallback policy itself lives in the service layer.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"anubhav/internal/models"
)

type Config struct {
	APIKey      string
	Model       string
	Temperature float32
}

type Client struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewClient connects to the Gemini API. An empty API key is the caller's
// signal to run without a client at all (degraded mode), not an error here.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}, nil
}

// recommendationSchema constrains the model output structurally: both fields
// required, ids as a string array. The output still has to be parsed; the
// schema narrows failure modes, it does not remove them.
var recommendationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"reasoning": {
			Type:        genai.TypeString,
			Description: "One short sentence explaining why these experiences fit the mood",
		},
		"suggestedEventIds": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{"reasoning", "suggestedEventIds"},
}

// Recommend submits one structured-output request for the given mood against
// the candidate catalog and parses the ranked result.
func (c *Client) Recommend(ctx context.Context, mood string, events []models.Experience) (*models.AIRecommendation, error) {
	prompt := buildPrompt(mood, events)

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](c.temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   recommendationSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("generate recommendation: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	var rec models.AIRecommendation
	if err := json.Unmarshal([]byte(cleanJSONResponse(text)), &rec); err != nil {
		return nil, fmt.Errorf("parse recommendation: %w", err)
	}
	if len(rec.SuggestedEventIDs) == 0 {
		return nil, fmt.Errorf("model suggested no events")
	}

	return &rec, nil
}

func buildPrompt(mood string, events []models.Experience) string {
	var sb strings.Builder
	sb.WriteString("You are a recommendation engine for an experience booking app.\n")
	sb.WriteString("The user describes their current mood. Pick 1 to 3 experiences that either\n")
	sb.WriteString("match the mood or deliberately counter it, and give a one-line rationale.\n")
	sb.WriteString("Only use ids from the catalog below; keep your ranking order meaningful.\n\n")
	sb.WriteString(fmt.Sprintf("Mood: %s\n\nCatalog:\n", mood))
	for _, e := range events {
		sb.WriteString(fmt.Sprintf("- id: %s | title: %s | category: %s | description: %s\n",
			e.ID, e.Title, e.Category, e.Description))
	}
	return sb.String()
}

// extractText pulls the first text part out of the candidate list
func extractText(resp *genai.GenerateContentResponse) string {
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				return part.Text
			}
		}
	}
	return ""
}

// cleanJSONResponse strips markdown code fences the model sometimes wraps
// JSON in despite the response MIME type.
func cleanJSONResponse(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

package ai

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"anubhav/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), Config{Model: "gemini-2.0-flash"})

	assert.Error(t, err)
}

func TestCleanJSONResponse(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"reasoning":"x"}`, `{"reasoning":"x"}`},
		{"```json\n{\"reasoning\":\"x\"}\n```", `{"reasoning":"x"}`},
		{"```\n{\"reasoning\":\"x\"}\n```", `{"reasoning":"x"}`},
		{"  \n{\"reasoning\":\"x\"}\n  ", `{"reasoning":"x"}`},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, cleanJSONResponse(tc.in), "input %q", tc.in)
	}
}

func TestCleanJSONResponseOutputUnmarshals(t *testing.T) {
	fenced := "```json\n{\"reasoning\": \"Loud and live\", \"suggestedEventIds\": [\"a\", \"b\"]}\n```"

	var rec models.AIRecommendation
	err := json.Unmarshal([]byte(cleanJSONResponse(fenced)), &rec)

	assert.NoError(t, err)
	assert.Equal(t, "Loud and live", rec.Reasoning)
	assert.Equal(t, []string{"a", "b"}, rec.SuggestedEventIDs)
}

func TestBuildPromptListsCatalog(t *testing.T) {
	events := []models.Experience{
		{ID: "exp-1", Title: "Rage Room", Category: models.CategoryAdventure, Description: "Smash things"},
		{ID: "exp-2", Title: "Sound Bath", Category: models.CategoryWellness, Description: "Deep rest"},
	}

	prompt := buildPrompt("need to vent", events)

	assert.Contains(t, prompt, "Mood: need to vent")
	assert.Contains(t, prompt, "id: exp-1")
	assert.Contains(t, prompt, "id: exp-2")
	assert.True(t, strings.Index(prompt, "exp-1") < strings.Index(prompt, "exp-2"), "catalog order must be preserved")
}

package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain JSON untouched",
			input:    `{"subject": "hi"}`,
			expected: `{"subject": "hi"}`,
		},
		{
			name:     "json fenced block",
			input:    "```json\n{\"subject\": \"hi\"}\n```",
			expected: `{"subject": "hi"}`,
		},
		{
			name:     "generic fenced block",
			input:    "```\n{\"subject\": \"hi\"}\n```",
			expected: `{"subject": "hi"}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n```json\n{}\n```\n  ",
			expected: `{}`,
		},
		{
			name:     "fence with language identifier",
			input:    "```javascript\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestGetModel_FallbackToLite(t *testing.T) {
	cfg := &Config{Models: map[ModelTier]string{TierLite: "lite-model"}}
	assert.Equal(t, "lite-model", cfg.GetModel(TierStandard))
}

func TestWithModel_DoesNotMutateOriginal(t *testing.T) {
	cfg := DefaultConfig()
	override := cfg.WithModel(TierLite, "custom")

	assert.Equal(t, "custom", override.GetModel(TierLite))
	assert.NotEqual(t, "custom", cfg.GetModel(TierLite))
}

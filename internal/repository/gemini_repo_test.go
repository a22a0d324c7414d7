package repository

import (
	"testing"

	"hotstock/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiResponseWithText(text string) *dto.GeminiAPIResponse {
	return &dto.GeminiAPIResponse{
		Candidates: []dto.Candidate{
			{Content: dto.Content{Parts: []dto.Part{{Text: text}}}},
		},
	}
}

func TestGeminiClassifier_ParseResponse(t *testing.T) {
	r := &geminiClassifierRepository{}

	t.Run("plain json", func(t *testing.T) {
		var result dto.TagValidationResult
		raw, err := r.parseResponse(geminiResponseWithText(`{"is_valid": true, "reason": ""}`), &result)
		require.NoError(t, err)
		assert.True(t, result.IsValid)
		assert.NotEmpty(t, raw)
	})

	t.Run("markdown fenced json", func(t *testing.T) {
		var result dto.TagValidationResult
		_, err := r.parseResponse(
			geminiResponseWithText("```json\n{\"is_valid\": false, \"reason\": \"spam\"}\n```"),
			&result,
		)
		require.NoError(t, err)
		assert.False(t, result.IsValid)
		assert.Equal(t, "spam", result.Reason)
	})

	t.Run("sentiment payload round trips through raw", func(t *testing.T) {
		var result dto.SentimentResult
		raw, err := r.parseResponse(
			geminiResponseWithText(`{"sentiment_score": 0.4, "reason_tags": ["放量"], "summary": "偏多"}`),
			&result,
		)
		require.NoError(t, err)
		assert.InDelta(t, 0.4, result.SentimentScore, 1e-9)
		assert.JSONEq(t, `{"sentiment_score": 0.4, "reason_tags": ["放量"], "summary": "偏多"}`, string(raw))
	})

	t.Run("no candidates", func(t *testing.T) {
		var result dto.TagValidationResult
		_, err := r.parseResponse(&dto.GeminiAPIResponse{}, &result)
		require.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		var result dto.TagValidationResult
		_, err := r.parseResponse(geminiResponseWithText("not json at all"), &result)
		require.Error(t, err)
	})
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hotstock/config"
	"hotstock/internal/dto"
	"hotstock/pkg/httpclient"
	"hotstock/pkg/logger"
	"hotstock/pkg/ratelimit"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const maxSuggestedTags = 5

// ClassifierRepository is the external content classifier. Every call is
// bounded by the configured timeout; a malformed or missing response comes
// back as an error, never a crash.
type ClassifierRepository interface {
	ValidateTag(ctx context.Context, content string) (*dto.TagValidationResult, error)
	SuggestTags(ctx context.Context, symbol, name string) (*dto.TagSuggestionResult, error)
	AnalyzeSentiment(ctx context.Context, symbol string, headlines []string) (*dto.SentimentResult, json.RawMessage, error)
}

// geminiClassifierRepository implements ClassifierRepository against the
// Google Gemini API.
type geminiClassifierRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	tokenLimiter   *ratelimit.TokenLimiter
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
}

// NewGeminiClassifierRepository creates a new instance of geminiClassifierRepository.
func NewGeminiClassifierRepository(cfg *config.Config, log *logger.Logger) (ClassifierRepository, error) {
	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	tokenLimiter := ratelimit.NewTokenLimiter(cfg.Gemini.MaxTokenPerMinute)
	genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.Gemini.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiClassifierRepository{
		httpClient:     httpclient.New(cfg.Gemini.BaseURL, cfg.Gemini.Timeout),
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
		tokenLimiter:   tokenLimiter,
		genAiClient:    genAiClient,
	}, nil
}

func (r *geminiClassifierRepository) ValidateTag(ctx context.Context, content string) (*dto.TagValidationResult, error) {
	prompt := fmt.Sprintf(`Check if the following tag is appropriate for a stock sentiment platform. `+
		`It should not be illegal, advertising, spam, or contain personal contact info. Tag: %q. `+
		`Return a JSON object with: is_valid (boolean) and reason (string).`, content)

	response, err := r.sendRequest(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to validate tag: %w", err)
	}

	var result dto.TagValidationResult
	if _, err := r.parseResponse(response, &result); err != nil {
		r.logger.ErrorContext(ctx, "failed to parse tag validation response", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to parse tag validation response: %w", err)
	}

	return &result, nil
}

func (r *geminiClassifierRepository) SuggestTags(ctx context.Context, symbol, name string) (*dto.TagSuggestionResult, error) {
	prompt := fmt.Sprintf(`Predict the industry, theme, and concept tags for the stock %s (%s) based on market consensus. `+
		`Return a JSON object with: tags (array of strings, max %d).`, name, symbol, maxSuggestedTags)

	response, err := r.sendRequest(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest tags: %w", err)
	}

	var result dto.TagSuggestionResult
	if _, err := r.parseResponse(response, &result); err != nil {
		r.logger.ErrorContext(ctx, "failed to parse tag suggestion response", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to parse tag suggestion response: %w", err)
	}

	if len(result.Tags) > maxSuggestedTags {
		result.Tags = result.Tags[:maxSuggestedTags]
	}

	return &result, nil
}

func (r *geminiClassifierRepository) AnalyzeSentiment(ctx context.Context, symbol string, headlines []string) (*dto.SentimentResult, json.RawMessage, error) {
	prompt := fmt.Sprintf(`Analyze the sentiment for stock %s based on these news headlines: %s. `+
		`Return a JSON object with: sentiment_score (-1 to 1), reason_tags (array of strings), and a brief summary.`,
		symbol, strings.Join(headlines, ". "))

	response, err := r.sendRequest(ctx, prompt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to analyze sentiment: %w", err)
	}

	var result dto.SentimentResult
	raw, err := r.parseResponse(response, &result)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to parse sentiment response", logger.ErrorField(err))
		return nil, nil, fmt.Errorf("failed to parse sentiment response: %w", err)
	}

	return &result, raw, nil
}

func (r *geminiClassifierRepository) sendRequest(ctx context.Context, prompt string) (*dto.GeminiAPIResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Gemini.Timeout)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}
	geminiTokenResp, err := r.genAiClient.Models.CountTokens(ctx, r.cfg.Gemini.BaseModel, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count tokens: %w", err)
	}

	r.logger.Debug("Gemini token count",
		logger.IntField("total_tokens", int(geminiTokenResp.TotalTokens)),
		logger.IntField("remaining", r.tokenLimiter.GetRemaining()),
	)
	if err := r.tokenLimiter.Wait(ctx, int(geminiTokenResp.TotalTokens)); err != nil {
		return nil, fmt.Errorf("failed to wait for token gemini limit: %w", err)
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request gemini limit: %w", err)
	}

	payload := dto.GeminiAPIRequest{
		Contents:         []dto.Content{{Parts: []dto.Part{{Text: prompt}}}},
		GenerationConfig: &dto.GenerationConfig{ResponseMIMEType: "application/json"},
	}

	geminiAPIResponse := dto.GeminiAPIResponse{}

	apiURL := fmt.Sprintf("/%s:generateContent?key=%s", r.cfg.Gemini.BaseModel, r.cfg.Gemini.APIKey)

	geminiResp, err := r.httpClient.Post(ctx, apiURL, payload, nil, &geminiAPIResponse)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to gemini: %w", err)
	}

	if geminiResp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "failed to get data from gemini", logger.IntField("status_code", geminiResp.StatusCode))
		return nil, fmt.Errorf("failed to get data: %v", geminiResp.Body)
	}

	return &geminiAPIResponse, nil
}

func (r *geminiClassifierRepository) parseResponse(response *dto.GeminiAPIResponse, dest interface{}) (json.RawMessage, error) {
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("invalid response from Gemini API: no content found")
	}

	jsonString := response.Candidates[0].Content.Parts[0].Text
	jsonString = strings.Trim(jsonString, "`json\n`")

	if err := json.Unmarshal([]byte(jsonString), dest); err != nil {
		return nil, err
	}
	return json.RawMessage(jsonString), nil
}

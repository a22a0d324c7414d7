package dto

type GeminiAPIRequest struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

type GeminiAPIResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate is a candidate response from the Gemini API.
type Candidate struct {
	Content Content `json:"content"`
}

type Content struct {
	Parts []Part `json:"parts"`
}

type Part struct {
	Text string `json:"text"`
}

type GenerationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

// TagValidationResult is the classifier's verdict on proposed tag text.
type TagValidationResult struct {
	IsValid bool   `json:"is_valid"`
	Reason  string `json:"reason"`
}

// TagSuggestionResult carries up to five candidate tags for a stock.
type TagSuggestionResult struct {
	Tags []string `json:"tags"`
}

// SentimentResult is the classifier's attribution for a stock given a set of
// recent headlines.
type SentimentResult struct {
	SentimentScore float64  `json:"sentiment_score"`
	ReasonTags     []string `json:"reason_tags"`
	Summary        string   `json:"summary"`
}

package models

type EvaluateResponse struct {
	ID                  string   `json:"id,omitempty"`
	JDMatch             string   `json:"jd_match"`
	MissingKeywords     []string `json:"missing_keywords"`
	MissingKeywordsText string   `json:"missing_keywords_text"`
	ProfileSummary      string   `json:"profile_summary"`
	PageCount           int      `json:"page_count"`
	LatencyMs           int64    `json:"latency_ms"`
}

type ErrorResponse struct {
	Error       string  `json:"error"`
	Kind        string  `json:"kind"`
	Field       string  `json:"field,omitempty"`
	RawResponse *string `json:"raw_response,omitempty"`
}

type HistoryResponse struct {
	Evaluations []Evaluation `json:"evaluations"`
	Count       int          `json:"count"`
}

// NewEvaluateResponse shapes a result for display.
func NewEvaluateResponse(result *EvaluationResult) EvaluateResponse {
	keywords := result.MissingKeywords
	if keywords == nil {
		keywords = []string{}
	}

	return EvaluateResponse{
		JDMatch:             result.MatchPercentage,
		MissingKeywords:     keywords,
		MissingKeywordsText: result.MissingKeywordsText(),
		ProfileSummary:      result.ProfileSummary,
	}
}

package services

import (
	"strings"

	"github.com/tidwall/gjson"

	"smartats/ats-evaluator/internal/models"
)

// Normalize validates a raw model reply and word-wraps its profile summary.
// A reply is either fully accepted or rejected with an *EvaluationError; there is no partial result.
func Normalize(raw string, width int) (*models.EvaluationResult, error) {
	body := stripCodeFence(raw)

	if !gjson.Valid(body) {
		return nil, &EvaluationError{Kind: ErrMalformedJSON, Raw: raw}
	}

	parsed := gjson.Parse(body)
	if !parsed.IsObject() {
		return nil, &EvaluationError{Kind: ErrMalformedJSON, Raw: raw}
	}
	fields := parsed.Map()

	match, err := stringField(fields, KeyJDMatch, raw)
	if err != nil {
		return nil, err
	}

	keywords, err := stringListField(fields, KeyMissingKeywords, raw)
	if err != nil {
		return nil, err
	}

	summary, err := stringField(fields, KeyProfileSummary, raw)
	if err != nil {
		return nil, err
	}

	return &models.EvaluationResult{
		MatchPercentage: match,
		MissingKeywords: keywords,
		ProfileSummary:  WrapParagraph(summary, width),
	}, nil
}

func lookup(fields map[string]gjson.Result, key, raw string) (gjson.Result, error) {
	value, ok := fields[key]
	if !ok || value.Type == gjson.Null {
		return gjson.Result{}, &EvaluationError{Kind: ErrMissingField, Field: key, Raw: raw}
	}
	return value, nil
}

func stringField(fields map[string]gjson.Result, key, raw string) (string, error) {
	value, err := lookup(fields, key, raw)
	if err != nil {
		return "", err
	}
	if value.Type != gjson.String {
		return "", &EvaluationError{Kind: ErrInvalidField, Field: key, Raw: raw}
	}
	return value.String(), nil
}

func stringListField(fields map[string]gjson.Result, key, raw string) ([]string, error) {
	value, err := lookup(fields, key, raw)
	if err != nil {
		return nil, err
	}
	if !value.IsArray() {
		return nil, &EvaluationError{Kind: ErrInvalidField, Field: key, Raw: raw}
	}

	items := value.Array()
	list := make([]string, 0, len(items))
	for _, item := range items {
		if item.Type != gjson.String {
			return nil, &EvaluationError{Kind: ErrInvalidField, Field: key, Raw: raw}
		}
		list = append(list, item.String())
	}
	return list, nil
}

// stripCodeFence unwraps a reply that is entirely one ``` fenced block.
func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") || !strings.HasSuffix(trimmed, "```") || len(trimmed) < 6 {
		return trimmed
	}

	inner := strings.TrimSuffix(strings.TrimPrefix(trimmed, "```"), "```")
	newline := strings.IndexByte(inner, '\n')
	if newline < 0 {
		return strings.TrimSpace(inner)
	}

	// drop the info string, e.g. "json"
	if tag := strings.TrimSpace(inner[:newline]); tag == "" || !strings.ContainsAny(tag, "{[") {
		inner = inner[newline+1:]
	}
	return strings.TrimSpace(inner)
}

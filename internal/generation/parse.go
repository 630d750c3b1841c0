package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/akm592/coldreach/internal/llm"
	"github.com/akm592/coldreach/internal/types"
)

// draftSchema is the contract every generated draft must satisfy before it
// leaves the parse boundary.
const draftSchema = `{
	"type": "object",
	"required": ["subject", "body"],
	"properties": {
		"subject": {"type": "string", "minLength": 1},
		"body": {"type": "string", "minLength": 1}
	}
}`

// ParseError describes why generator output could not be parsed. Callers
// fall back to DefaultDraft rather than propagating it past the boundary.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generator output parse failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("generator output parse failed: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ParseDraft is the single boundary between raw generator output and typed
// drafts. It strips markdown fences, validates against the draft schema,
// and returns a typed draft or an explicit parse failure.
func ParseDraft(raw string) (types.Draft, error) {
	cleaned := llm.CleanJSONBlock(raw)
	if strings.TrimSpace(cleaned) == "" {
		return types.Draft{}, &ParseError{Message: "empty output"}
	}

	schemaLoader := gojsonschema.NewStringLoader(draftSchema)
	documentLoader := gojsonschema.NewStringLoader(cleaned)
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return types.Draft{}, &ParseError{Message: "not valid JSON", Cause: err}
	}
	if !result.Valid() {
		var parts []string
		for _, desc := range result.Errors() {
			parts = append(parts, desc.String())
		}
		return types.Draft{}, &ParseError{Message: strings.Join(parts, "; ")}
	}

	var draft types.Draft
	if err := json.Unmarshal([]byte(cleaned), &draft); err != nil {
		return types.Draft{}, &ParseError{Message: "unmarshal failed", Cause: err}
	}
	return draft, nil
}

// DefaultDraft is the fixed fallback used when generation produced no
// parseable content. It still carries the salutation placeholder so the
// gate's substitution applies uniformly.
func DefaultDraft(company string) types.Draft {
	return types.Draft{
		Subject: fmt.Sprintf("Inquiry regarding opportunities at %s", company),
		Body: fmt.Sprintf("<p>Dear %s,</p><p>I am writing to express my strong interest in potential roles at %s.</p>",
			RecipientPlaceholder, company),
	}
}

// ParseQualityScore extracts the overall score from a quality evaluation
// response. Unparseable output scores 0.
func ParseQualityScore(raw string) (float64, error) {
	cleaned := llm.CleanJSONBlock(raw)
	var payload struct {
		OverallScore float64 `json:"overall_score"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return 0, &ParseError{Message: "quality score unmarshal failed", Cause: err}
	}
	if payload.OverallScore < 0 || payload.OverallScore > 10 {
		return 0, &ParseError{Message: fmt.Sprintf("quality score %v out of range", payload.OverallScore)}
	}
	return payload.OverallScore, nil
}

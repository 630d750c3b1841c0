// Package generation holds the content generation gate: resume selection,
// template population, the safety/relevance check, and reply
// classification. All LLM output crosses the ParseDraft boundary before any
// caller sees it.
package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/akm592/coldreach/internal/llm"
	"github.com/akm592/coldreach/internal/types"
)

// ResumeAIML and ResumeFullstack are the two resume variants the chooser
// decides between. Anything unexpected defaults to Fullstack.
const (
	ResumeAIML      = "AI/ML"
	ResumeFullstack = "Fullstack"
)

// Request carries everything the generator needs for one contact. The
// recipient's name is deliberately absent from prompt inputs; the gate
// substitutes it after generation.
type Request struct {
	Company  string
	Title    string
	RoleType string
	Sender   SenderProfile
	Insights *types.InsightReport
	Resume   string
	Template TemplateInput
	FollowUp bool
}

// SenderProfile is the candidate identity woven into prompts.
type SenderProfile struct {
	Name              string
	Degree            string
	KeySkills         string
	ProjectExperience string
	GraduationDate    string
}

// TemplateInput is the skeleton the generator populates.
type TemplateInput struct {
	Name string
	Body string
}

// Generator produces drafts and classifications. Implementations must be
// pure functions of their inputs so results are cacheable.
type Generator interface {
	Draft(ctx context.Context, req Request) (types.Draft, error)
	ClassifySafety(ctx context.Context, subject, body string, req Request) (types.SafetyVerdict, error)
	ChooseTemplate(ctx context.Context, candidates []string, req Request) (string, error)
	ChooseResume(ctx context.Context, req Request) (string, error)
	ClassifyReply(ctx context.Context, text string) (types.ReplyClass, error)
	ScoreQuality(ctx context.Context, subject, body, resume string) (float64, error)
}

// GeminiGenerator implements Generator over the LLM client. Drafting uses
// the standard tier; classifications use the lite tier.
type GeminiGenerator struct {
	client llm.Client
}

// NewGeminiGenerator builds a generator over the given client.
func NewGeminiGenerator(client llm.Client) *GeminiGenerator {
	return &GeminiGenerator{client: client}
}

// Draft populates the template for the request and returns a parsed draft.
// Malformed model output degrades to the fixed default draft, never an
// error; the error return covers transport-level failure only.
func (g *GeminiGenerator) Draft(ctx context.Context, req Request) (types.Draft, error) {
	raw, err := g.client.GenerateJSON(ctx, draftPrompt(req), llm.TierStandard)
	if err != nil {
		return types.Draft{}, fmt.Errorf("draft generation: %w", err)
	}

	draft, err := ParseDraft(raw)
	if err != nil {
		draft = DefaultDraft(req.Company)
	}
	draft.TemplateUsed = req.Template.Name
	return draft, nil
}

// ClassifySafety runs the relevance/safety check on a finished draft.
// Anything other than an explicit APPROVE is treated as REJECT.
func (g *GeminiGenerator) ClassifySafety(ctx context.Context, subject, body string, req Request) (types.SafetyVerdict, error) {
	answer, err := g.client.GenerateContent(ctx, safetyPrompt(subject, body, req), llm.TierLite)
	if err != nil {
		return types.VerdictReject, fmt.Errorf("safety classification: %w", err)
	}
	if strings.Contains(strings.ToUpper(answer), string(types.VerdictApprove)) &&
		!strings.Contains(strings.ToUpper(answer), string(types.VerdictReject)) {
		return types.VerdictApprove, nil
	}
	return types.VerdictReject, nil
}

// ChooseTemplate picks one candidate template name for the context. An
// answer outside the candidate list falls back to the first candidate.
func (g *GeminiGenerator) ChooseTemplate(ctx context.Context, candidates []string, req Request) (string, error) {
	if len(candidates) == 0 {
		return "", fmt.Errorf("no template candidates")
	}
	answer, err := g.client.GenerateContent(ctx, templatePrompt(candidates, req), llm.TierLite)
	if err != nil {
		return candidates[0], fmt.Errorf("template choice: %w", err)
	}
	choice := strings.TrimSpace(answer)
	for _, c := range candidates {
		if strings.EqualFold(choice, c) || strings.Contains(choice, c) {
			return c, nil
		}
	}
	return candidates[0], nil
}

// ChooseResume decides which resume variant to attach. Unexpected answers
// default to Fullstack.
func (g *GeminiGenerator) ChooseResume(ctx context.Context, req Request) (string, error) {
	answer, err := g.client.GenerateContent(ctx, resumePrompt(req), llm.TierLite)
	if err != nil {
		return ResumeFullstack, fmt.Errorf("resume choice: %w", err)
	}
	switch strings.TrimSpace(answer) {
	case ResumeAIML:
		return ResumeAIML, nil
	case ResumeFullstack:
		return ResumeFullstack, nil
	}
	return ResumeFullstack, nil
}

// ClassifyReply classifies a detected reply body. Failures and unexpected
// answers classify as other; callers never halt a sequence on a shaky
// classification.
func (g *GeminiGenerator) ClassifyReply(ctx context.Context, text string) (types.ReplyClass, error) {
	answer, err := g.client.GenerateContent(ctx, replyPrompt(text), llm.TierLite)
	if err != nil {
		return types.ReplyOther, fmt.Errorf("reply classification: %w", err)
	}
	switch types.ReplyClass(strings.ToLower(strings.TrimSpace(answer))) {
	case types.ReplyHuman:
		return types.ReplyHuman, nil
	case types.ReplyAuto:
		return types.ReplyAuto, nil
	}
	return types.ReplyOther, nil
}

// ScoreQuality rates a finished email 0-10. A failed evaluation scores 0
// with an error; the score is advisory and never gates a send.
func (g *GeminiGenerator) ScoreQuality(ctx context.Context, subject, body, resume string) (float64, error) {
	raw, err := g.client.GenerateJSON(ctx, qualityPrompt(subject, body, resume), llm.TierLite)
	if err != nil {
		return 0, fmt.Errorf("quality scoring: %w", err)
	}
	return ParseQualityScore(raw)
}

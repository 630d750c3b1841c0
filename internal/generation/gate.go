package generation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/akm592/coldreach/internal/templates"
	"github.com/akm592/coldreach/internal/types"
)

// strongHistoryThreshold is the sample size at which the tracker's
// performance pick overrides the contextual template choice.
const strongHistoryThreshold = 10

// ErrResumeUnavailable marks a missing or empty resume text file. Callers
// skip the contact with a logged reason instead of marking it failed.
var ErrResumeUnavailable = errors.New("resume text unavailable")

// IsResumeUnavailable reports whether err is a missing-resume skip.
func IsResumeUnavailable(err error) bool {
	return errors.Is(err, ErrResumeUnavailable)
}

// ResumeSource provides generation context text per resume variant.
type ResumeSource interface {
	Text(variant string) (string, error)
}

// Gate runs the full compose-and-check sequence for one contact: resume
// choice, template selection, drafting, the recipient-name guardrail, and
// the safety verdict. It never sends; callers route on the verdict.
type Gate struct {
	gen       Generator
	tracker   *templates.Tracker
	signature string
}

// NewGate builds a gate. The signature is appended verbatim after name
// substitution.
func NewGate(gen Generator, tracker *templates.Tracker, signature string) *Gate {
	return &Gate{gen: gen, tracker: tracker, signature: signature}
}

// ComposeInput is one contact's generation context.
type ComposeInput struct {
	Company       string
	RecipientName string
	Title         string
	RoleType      string
	Sender        SenderProfile
	Insights      *types.InsightReport
	Resumes       ResumeSource

	// ResumeVariant pins the variant for follow-ups; initial composition
	// chooses its own.
	ResumeVariant string
}

// Result is a finalized draft plus its safety verdict.
type Result struct {
	Draft   types.Draft
	Verdict types.SafetyVerdict
}

// ComposeInitial produces a finalized first-touch email for the contact.
func (g *Gate) ComposeInitial(ctx context.Context, in ComposeInput) (*Result, error) {
	resumeChoice, err := g.gen.ChooseResume(ctx, Request{
		Company:  in.Company,
		Title:    in.Title,
		Insights: in.Insights,
	})
	if err != nil {
		log.Printf("[GATE] resume choice failed for %s, defaulting to %s: %v", in.Company, ResumeFullstack, err)
		resumeChoice = ResumeFullstack
	}

	resumeText, err := in.Resumes.Text(resumeChoice)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResumeUnavailable, err)
	}

	templateName, err := g.chooseTemplate(ctx, in)
	if err != nil {
		return nil, err
	}
	tmpl, ok := templates.Initial(templateName)
	if !ok {
		return nil, fmt.Errorf("unknown initial template %q", templateName)
	}

	result, err := g.compose(ctx, in, tmpl, resumeText, false)
	if err != nil {
		return nil, err
	}
	result.Draft.ResumeChoice = resumeChoice
	return result, nil
}

// ComposeFollowUp produces a finalized follow-up email for the given stage
// (0-based).
func (g *Gate) ComposeFollowUp(ctx context.Context, in ComposeInput, stage int) (*Result, error) {
	if stage < 0 || stage >= types.FollowUpStages {
		return nil, fmt.Errorf("follow-up stage %d out of range", stage)
	}
	tmpl, ok := templates.FollowUp(templates.StageTemplateName(stage))
	if !ok {
		return nil, fmt.Errorf("unknown follow-up template for stage %d", stage)
	}

	variant := in.ResumeVariant
	if variant == "" {
		variant = ResumeFullstack
	}
	resumeText, err := in.Resumes.Text(variant)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResumeUnavailable, err)
	}
	return g.compose(ctx, in, tmpl, resumeText, true)
}

// chooseTemplate combines the tracker's performance pick with the
// generator's contextual pick. The performance pick wins only once its
// cluster has enough sends to trust the rate.
func (g *Gate) chooseTemplate(ctx context.Context, in ComposeInput) (string, error) {
	candidates := templates.InitialNames()
	tracked := g.tracker.Select(candidates, in.Company)

	if record, ok := g.tracker.Record(tracked, in.Company); ok && record.Sent >= strongHistoryThreshold {
		log.Printf("[GATE] using tracked template %q for %s (%d sends, rate %.2f)",
			tracked, in.Company, record.Sent, record.SuccessRate)
		return tracked, nil
	}

	choice, err := g.gen.ChooseTemplate(ctx, candidates, Request{
		Company:  in.Company,
		Title:    in.Title,
		RoleType: in.RoleType,
		Insights: in.Insights,
	})
	if err != nil {
		log.Printf("[GATE] contextual template choice failed for %s, using %q: %v", in.Company, tracked, err)
		return tracked, nil
	}
	return choice, nil
}

func (g *Gate) compose(ctx context.Context, in ComposeInput, tmpl templates.Template, resumeText string, followUp bool) (*Result, error) {
	req := Request{
		Company:  in.Company,
		Title:    in.Title,
		RoleType: in.RoleType,
		Sender:   in.Sender,
		Insights: in.Insights,
		Resume:   resumeText,
		Template: TemplateInput{Name: tmpl.Name, Body: tmpl.Body},
		FollowUp: followUp,
	}

	draft, err := g.gen.Draft(ctx, req)
	if err != nil {
		return nil, err
	}
	draft.TemplateUsed = tmpl.Name

	draft.Body = g.FinalizeBody(draft.Body, in.RecipientName)

	if score, err := g.gen.ScoreQuality(ctx, draft.Subject, draft.Body, resumeText); err != nil {
		log.Printf("[GATE] quality scoring failed for %s: %v", in.Company, err)
	} else {
		draft.QualityScore = score
	}

	verdict, err := g.gen.ClassifySafety(ctx, draft.Subject, draft.Body, req)
	if err != nil {
		log.Printf("[GATE] safety check failed for %s, holding for review: %v", in.Company, err)
		verdict = types.VerdictReject
	}
	return &Result{Draft: draft, Verdict: verdict}, nil
}

// FinalizeBody applies the recipient-name guardrail and appends the
// signature. Raw newlines become <br> so the body stays valid HTML even
// when the model ignored the formatting instruction.
func (g *Gate) FinalizeBody(body, recipientName string) string {
	finalized := strings.ReplaceAll(body, "\n", "<br>")
	finalized = strings.ReplaceAll(finalized, RecipientPlaceholder, recipientName)
	// Single-brace variant the model sometimes emits.
	finalized = strings.ReplaceAll(finalized, "{recipient_name_placeholder}", recipientName)
	return finalized + g.signature
}

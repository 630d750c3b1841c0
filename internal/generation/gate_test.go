package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akm592/coldreach/internal/templates"
	"github.com/akm592/coldreach/internal/types"
)

// fakeGenerator returns canned values and records what it was asked.
type fakeGenerator struct {
	draft          types.Draft
	draftErr       error
	verdict        types.SafetyVerdict
	verdictErr     error
	templateChoice string
	templateErr    error
	resumeChoice   string
	resumeErr      error
	replyClass     types.ReplyClass
	quality        float64
	qualityErr     error

	draftReq     Request
	chooseCalled bool
}

func (f *fakeGenerator) Draft(_ context.Context, req Request) (types.Draft, error) {
	f.draftReq = req
	return f.draft, f.draftErr
}

func (f *fakeGenerator) ClassifySafety(_ context.Context, _, _ string, _ Request) (types.SafetyVerdict, error) {
	return f.verdict, f.verdictErr
}

func (f *fakeGenerator) ChooseTemplate(_ context.Context, candidates []string, _ Request) (string, error) {
	f.chooseCalled = true
	if f.templateErr != nil {
		return candidates[0], f.templateErr
	}
	return f.templateChoice, nil
}

func (f *fakeGenerator) ChooseResume(_ context.Context, _ Request) (string, error) {
	return f.resumeChoice, f.resumeErr
}

func (f *fakeGenerator) ClassifyReply(_ context.Context, _ string) (types.ReplyClass, error) {
	return f.replyClass, nil
}

func (f *fakeGenerator) ScoreQuality(_ context.Context, _, _, _ string) (float64, error) {
	return f.quality, f.qualityErr
}

type fakeRecordStore struct {
	records []types.TemplatePerformanceRecord
}

func (s *fakeRecordStore) LoadRecords(_ context.Context) ([]types.TemplatePerformanceRecord, error) {
	return s.records, nil
}

func (s *fakeRecordStore) SaveRecord(_ context.Context, _ types.TemplatePerformanceRecord) error {
	return nil
}

func newTestTracker(t *testing.T, records ...types.TemplatePerformanceRecord) *templates.Tracker {
	t.Helper()
	tracker, err := templates.NewTracker(context.Background(), &fakeRecordStore{records: records})
	require.NoError(t, err)
	return tracker
}

// fakeResumeSource serves fixed text, optionally failing for all variants.
type fakeResumeSource struct {
	err error
}

func (s *fakeResumeSource) Text(variant string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "resume text for " + variant, nil
}

func testInput() ComposeInput {
	return ComposeInput{
		Company:       "Acme",
		RecipientName: "Jordan Reyes",
		Title:         "Technical Recruiter",
		RoleType:      "Software Engineer",
		Sender:        SenderProfile{Name: "Ashish Kumar"},
		Resumes:       &fakeResumeSource{},
	}
}

func TestComposeInitialApproved(t *testing.T) {
	gen := &fakeGenerator{
		draft:          types.Draft{Subject: "Idea for Acme", Body: "<p>Hi " + RecipientPlaceholder + ",</p>"},
		verdict:        types.VerdictApprove,
		templateChoice: "skill_to_problem_match",
		resumeChoice:   ResumeAIML,
		quality:        8,
	}
	gate := NewGate(gen, newTestTracker(t), "<br>Best regards,<br>Ashish")

	result, err := gate.ComposeInitial(context.Background(), testInput())
	require.NoError(t, err)

	assert.Equal(t, types.VerdictApprove, result.Verdict)
	assert.Equal(t, ResumeAIML, result.Draft.ResumeChoice)
	assert.Equal(t, 8.0, result.Draft.QualityScore)

	// Guardrail: placeholder replaced, signature appended, name never in
	// the generator's inputs.
	assert.Contains(t, result.Draft.Body, "Jordan Reyes")
	assert.NotContains(t, result.Draft.Body, RecipientPlaceholder)
	assert.Contains(t, result.Draft.Body, "Best regards")
	assert.NotContains(t, gen.draftReq.Resume+gen.draftReq.Company+gen.draftReq.Template.Body, "Jordan Reyes")
	// The chosen variant's resume text feeds the draft prompt.
	assert.Equal(t, "resume text for AI/ML", gen.draftReq.Resume)
}

func TestComposeInitialResumeTextMissing(t *testing.T) {
	gen := &fakeGenerator{resumeChoice: ResumeFullstack}
	gate := NewGate(gen, newTestTracker(t), "")

	in := testInput()
	in.Resumes = &fakeResumeSource{err: errors.New("no such file")}

	_, err := gate.ComposeInitial(context.Background(), in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrResumeUnavailable))
}

func TestComposeInitialRejected(t *testing.T) {
	gen := &fakeGenerator{
		draft:          types.Draft{Subject: "S", Body: "<p>questionable</p>"},
		verdict:        types.VerdictReject,
		templateChoice: "project_showcase",
		resumeChoice:   ResumeFullstack,
	}
	gate := NewGate(gen, newTestTracker(t), "")

	result, err := gate.ComposeInitial(context.Background(), testInput())
	require.NoError(t, err)
	assert.Equal(t, types.VerdictReject, result.Verdict)
	// The draft survives verbatim for human review.
	assert.Equal(t, "S", result.Draft.Subject)
}

func TestComposeInitialSafetyErrorHoldsForReview(t *testing.T) {
	gen := &fakeGenerator{
		draft:          types.Draft{Subject: "S", Body: "B"},
		verdictErr:     errors.New("model unavailable"),
		templateChoice: "project_showcase",
		resumeChoice:   ResumeFullstack,
	}
	gate := NewGate(gen, newTestTracker(t), "")

	result, err := gate.ComposeInitial(context.Background(), testInput())
	require.NoError(t, err)
	assert.Equal(t, types.VerdictReject, result.Verdict)
}

func TestComposeInitialResumeErrorDefaultsFullstack(t *testing.T) {
	gen := &fakeGenerator{
		draft:          types.Draft{Subject: "S", Body: "B"},
		verdict:        types.VerdictApprove,
		templateChoice: "project_showcase",
		resumeErr:      errors.New("model unavailable"),
	}
	gate := NewGate(gen, newTestTracker(t), "")

	result, err := gate.ComposeInitial(context.Background(), testInput())
	require.NoError(t, err)
	assert.Equal(t, ResumeFullstack, result.Draft.ResumeChoice)
}

func TestChooseTemplatePerformanceOverride(t *testing.T) {
	// Strong history on one template: the tracker pick wins without
	// consulting the generator.
	rec := types.TemplatePerformanceRecord{
		Cluster: "Acme", Template: "brutally_direct_proof", Sent: 12, Replied: 6,
	}
	rec.Recompute()

	gen := &fakeGenerator{
		draft:          types.Draft{Subject: "S", Body: "B"},
		verdict:        types.VerdictApprove,
		templateChoice: "project_showcase",
		resumeChoice:   ResumeFullstack,
	}
	gate := NewGate(gen, newTestTracker(t, rec), "")

	result, err := gate.ComposeInitial(context.Background(), testInput())
	require.NoError(t, err)
	assert.Equal(t, "brutally_direct_proof", result.Draft.TemplateUsed)
	assert.False(t, gen.chooseCalled)
}

func TestChooseTemplateThinHistoryUsesContext(t *testing.T) {
	rec := types.TemplatePerformanceRecord{
		Cluster: "Acme", Template: "brutally_direct_proof", Sent: 3, Replied: 3,
	}
	rec.Recompute()

	gen := &fakeGenerator{
		draft:          types.Draft{Subject: "S", Body: "B"},
		verdict:        types.VerdictApprove,
		templateChoice: "skill_to_problem_match",
		resumeChoice:   ResumeFullstack,
	}
	gate := NewGate(gen, newTestTracker(t, rec), "")

	result, err := gate.ComposeInitial(context.Background(), testInput())
	require.NoError(t, err)
	assert.Equal(t, "skill_to_problem_match", result.Draft.TemplateUsed)
	assert.True(t, gen.chooseCalled)
}

func TestComposeFollowUpStages(t *testing.T) {
	gen := &fakeGenerator{
		draft:   types.Draft{Subject: "Following up", Body: "<p>Hi " + RecipientPlaceholder + "</p>"},
		verdict: types.VerdictApprove,
	}
	gate := NewGate(gen, newTestTracker(t), "")

	for stage := 0; stage < types.FollowUpStages; stage++ {
		result, err := gate.ComposeFollowUp(context.Background(), testInput(), stage)
		require.NoError(t, err)
		assert.True(t, gen.draftReq.FollowUp)
		assert.Equal(t, templates.StageTemplateName(stage), gen.draftReq.Template.Name)
		assert.Contains(t, result.Draft.Body, "Jordan Reyes")
	}

	_, err := gate.ComposeFollowUp(context.Background(), testInput(), types.FollowUpStages)
	assert.Error(t, err)
}

func TestFinalizeBody(t *testing.T) {
	gate := NewGate(&fakeGenerator{}, newTestTracker(t), "<br>-- sig")

	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			"double brace placeholder",
			"<p>Dear " + RecipientPlaceholder + ",</p>",
			"<p>Dear Sam,</p><br>-- sig",
		},
		{
			"single brace variant",
			"<p>Dear {recipient_name_placeholder},</p>",
			"<p>Dear Sam,</p><br>-- sig",
		},
		{
			"raw newlines become breaks",
			"line one\nline two",
			"line one<br>line two<br>-- sig",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, gate.FinalizeBody(tt.body, "Sam"))
		})
	}
}

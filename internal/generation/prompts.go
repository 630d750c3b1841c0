package generation

import (
	"fmt"
	"strings"

	"github.com/akm592/coldreach/internal/types"
)

// RecipientPlaceholder is the salutation token the model is required to
// emit instead of the recipient's real name. The gate substitutes it after
// generation so a hallucinated name can never reach a recipient.
const RecipientPlaceholder = "{{recipient_name_placeholder}}"

// insightSummary renders the ranked insight report as prompt context.
func insightSummary(report *types.InsightReport) string {
	if report == nil || len(report.PrimaryInsights) == 0 {
		return "No company research available."
	}

	var b strings.Builder
	for i, frag := range report.PrimaryInsights {
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, frag.SourceClass, frag.Data)
	}
	if report.Hooks.CongratulateOn != nil {
		fmt.Fprintf(&b, "Recent news hook: %s\n", report.Hooks.CongratulateOn.Data)
	}
	if report.Hooks.AlignWithValue != nil {
		fmt.Fprintf(&b, "Company values hook: %s\n", report.Hooks.AlignWithValue.Data)
	}
	fmt.Fprintf(&b, "Hiring urgency: %s\n", report.Actionable.HiringUrgency)
	if report.Actionable.ReferralPathway != "" {
		fmt.Fprintf(&b, "Referral pathway: %s\n", report.Actionable.ReferralPathway)
	}
	return b.String()
}

func draftPrompt(req Request) string {
	kind := "cold email"
	followUpRule := ""
	if req.FollowUp {
		kind = "follow-up email"
		followUpRule = "\n7. Briefly reference one specific research point to remind the recipient why you are interested. Do not repeat the entire first email."
	}

	return fmt.Sprintf(`You are a master copywriter specializing in professional emails. Take the template below and fill its placeholders to create a compelling %s.

**Company and Role Data:**
- Company Name: %s
- Specific Role (if any): %s
- Role Type: %s

**My Personal Details:**
- My Name: %s
- My Degree: %s
- My Key Skills: %s
- Relevant Project Experience: %s
- Graduation Timeline: %s

**Company Research (for context):**
%s

**My Resume Text (for deep analysis):**
%s

**Email Template to Populate:**
---
%s
---

**CRITICAL INSTRUCTIONS:**
1. Your primary source of truth for the candidate's skills is the resume text. Extract the most relevant project, skill, or achievement that aligns with the target company, and write the email around it.
2. For the salutation you MUST use the exact placeholder %s. Do NOT use the recipient's actual name.
3. Creatively fill in all other placeholders.
4. Format the body with simple HTML (<p> and <br>). Every paragraph break MUST be an HTML tag, never a raw newline.
5. Do NOT include a signature; it is appended separately.
6. Respond with a single valid JSON object with exactly two keys: "subject" and "body".%s`,
		kind,
		req.Company, req.Title, req.RoleType,
		req.Sender.Name, req.Sender.Degree, req.Sender.KeySkills,
		req.Sender.ProjectExperience, req.Sender.GraduationDate,
		insightSummary(req.Insights),
		req.Resume,
		req.Template.Body,
		RecipientPlaceholder,
		followUpRule)
}

func safetyPrompt(subject, body string, req Request) string {
	return fmt.Sprintf(`You are a safety and relevance reviewer for outbound job-search emails. Review the email below, written to %s.

Subject: %s

Body:
%s

Company research it was based on:
%s

Check for: fabricated claims not supported by the research, a remaining "%s" or other unfilled placeholder, an incorrect company name, an unprofessional or presumptuous tone, and content irrelevant to the company.

Respond with exactly one word: APPROVE if the email is safe to send as-is, or REJECT if a human should review it first.`,
		req.Company, subject, body, insightSummary(req.Insights), RecipientPlaceholder)
}

func templatePrompt(candidates []string, req Request) string {
	return fmt.Sprintf(`Choose the best email template for a cold outreach to %s (role: %s) given this research:

%s

Available templates: %s

Respond with exactly one template name from the list, nothing else.`,
		req.Company, req.RoleType, insightSummary(req.Insights), strings.Join(candidates, ", "))
}

func resumePrompt(req Request) string {
	return fmt.Sprintf(`Analyze the research and the recruiter's title. Should I send my "AI/ML" resume or my "Fullstack" resume?

Recruiter title: %s

Research:
%s

Respond with exactly one of:
- AI/ML
- Fullstack`,
		req.Title, insightSummary(req.Insights))
}

func replyPrompt(text string) string {
	return fmt.Sprintf(`Classify this email reply to a job-search cold email.

Reply:
%s

Categories:
- human: a real person read the email and responded
- auto-reply: an automated response (out of office, auto-acknowledgment, ticket system)
- other: bounce notices, newsletters, anything else

Respond with exactly one word: human, auto-reply, or other.`, text)
}

func qualityPrompt(subject, body, resume string) string {
	return fmt.Sprintf(`Evaluate this cold email for a fresh graduate.

**EMAIL:**
Subject: %s

%s

**RESUME CONTEXT:**
%s

Rate each aspect from 1-10: personalization, fresher positioning, technical credibility, business value, professionalism, call-to-action, length appropriateness (ideal 75-125 words).

Respond with a single JSON object: {"overall_score": <1-10 number>}`,
		subject, body, resume)
}

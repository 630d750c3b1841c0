// Package templates holds the outreach template catalog and the
// per-cluster template performance tracker.
package templates

// Template bodies carry {placeholder} slots that the content generator
// fills from research insights and sender details. The recipient salutation
// always uses {{recipient_name_placeholder}}, substituted by the gate after
// generation, never by the model.

// initialTemplates are the first-touch email skeletons, keyed by name.
var initialTemplates = map[string]Template{
	"project_showcase": {
		Name:        "project_showcase",
		Description: "Lead with the single most impressive project result.",
		Body: `Subject: Idea for {company_name}'s {specific_project_or_product}

Hi {{recipient_name_placeholder}},

I saw you're hiring for the {role_type} role.

In a recent project, I {headline_project_result}.

Given your focus on {company_focus_area}, I believe a similar approach could create significant value for your team.

My resume is attached, and my portfolio has the full project breakdown.

Are you the right person to chat with about this?`,
	},
	"skill_to_problem_match": {
		Name:        "skill_to_problem_match",
		Description: "Directly map one skill to a problem the company likely has.",
		Body: `Subject: Question about your {a_specific_technical_challenge}

Hi {{recipient_name_placeholder}},

Many companies struggle with {common_problem} when scaling their {technology_they_use}.

I recently focused on solving this: {relevant_achievement}.

If improving {metric_they_care_about} is a priority at {company_name}, I'm confident my skills can help.

My resume is attached for more details. Worth a quick chat?`,
	},
	"brutally_direct_proof": {
		Name:        "brutally_direct_proof",
		Description: "A short, direct email that uses a stat as the hook.",
		Body: `Subject: {headline_metric}

Hi {{recipient_name_placeholder}},

That subject line comes from {metric_context}.

I saw the {role_type} role requires {specific_skill_from_job_description}. My portfolio and resume (attached) show quantifiable results with these exact technologies.

Let me know if this looks like a potential fit.`,
	},
}

// followUpTemplates are the staged follow-up skeletons, indexed by stage.
var followUpTemplates = map[string]Template{
	"first_followup": {
		Name:        "first_followup",
		Description: "Gentle reminder referencing the initial research hook.",
		Body: `Subject: Following up on {company_name} opportunity

Dear {{recipient_name_placeholder}},

I hope you're having a great week. I'm writing to follow up on my previous email regarding my interest in {company_name}.

{personalized_line_based_on_research}

I'm still very excited about the possibility of contributing to your team.`,
	},
	"value_add_followup": {
		Name:        "value_add_followup",
		Description: "Share a relevant update instead of just nudging.",
		Body: `Subject: Thought you'd find this interesting - {relevant_topic}

Hi {{recipient_name_placeholder}},

I came across {relevant_article_or_trend} and thought it might interest you given {company_name}'s work in {company_focus_area}.

This relates to my experience with {relevant_project} where I {relevant_achievement}. Still excited about the {role_type} opportunity.`,
	},
	"final_followup": {
		Name:        "final_followup",
		Description: "Closing note with an explicit timeline.",
		Body: `Subject: Final note - {role_type} timeline

Hi {{recipient_name_placeholder}},

I wanted to reach out one last time about the {role_type} position.

My graduation timeline of {graduation_date} means I'm actively finalizing my career path. {company_name} remains high on my list because of {specific_company_reason}.

If the timing isn't right now, I'd appreciate staying connected for future opportunities.`,
	},
}

// stageTemplateNames maps follow-up stage index (0-based) to template name.
var stageTemplateNames = []string{"first_followup", "value_add_followup", "final_followup"}

// Template is one email skeleton in the catalog.
type Template struct {
	Name        string
	Description string
	Body        string
}

// Initial returns an initial-outreach template by name, with ok=false for
// unknown names.
func Initial(name string) (Template, bool) {
	t, ok := initialTemplates[name]
	return t, ok
}

// FollowUp returns a follow-up template by name.
func FollowUp(name string) (Template, bool) {
	t, ok := followUpTemplates[name]
	return t, ok
}

// InitialNames returns the initial template names in the caller-defined
// default order. The tracker falls back to the first of these when a
// cluster has no history, so the order is part of the selection contract.
func InitialNames() []string {
	return []string{"project_showcase", "skill_to_problem_match", "brutally_direct_proof"}
}

// StageTemplateName returns the template name for a follow-up stage
// (0-based). Panics on an out-of-range stage; callers gate on
// types.FollowUpStages.
func StageTemplateName(stage int) string {
	return stageTemplateNames[stage]
}

package types

import "time"

// Fragment is one scored piece of research text about a company.
type Fragment struct {
	Data        string    `json:"data"`
	SourceURL   string    `json:"sourceURL,omitempty"`
	SourceClass string    `json:"sourceClass"`
	CapturedAt  time.Time `json:"timestamp"`

	// SourceCredibility is static per source class, 0-1.
	SourceCredibility float64 `json:"sourceCredibilityScore"`
	// TemporalScore decays with age: 1.0 under 30 days, linear toward 0.2
	// by one year.
	TemporalScore float64 `json:"temporalScore"`
	// PersonalizationRelevance is 0-10, favoring entry-level/fresher signals.
	PersonalizationRelevance int `json:"personalizationRelevance"`
}

// MaxRelevance is the ceiling of the personalization relevance scale.
const MaxRelevance = 10

// FragmentCategory names one research category.
type FragmentCategory string

const (
	CategoryHiring   FragmentCategory = "hiringIntelligence"
	CategoryCulture  FragmentCategory = "peopleAndCulture"
	CategoryTech     FragmentCategory = "technicalProfile"
	CategoryBusiness FragmentCategory = "businessContext"
	CategoryNetwork  FragmentCategory = "networkMapping"
)

// Categories lists all fragment categories in canonical scan order. The
// insight ranker's stable sort depends on this order for tie-breaking.
func Categories() []FragmentCategory {
	return []FragmentCategory{
		CategoryHiring,
		CategoryCulture,
		CategoryTech,
		CategoryBusiness,
		CategoryNetwork,
	}
}

// CategorizedFragments groups fragments by research category. A missing
// category is an empty slice, never an error.
type CategorizedFragments struct {
	Hiring   []Fragment `json:"hiringIntelligence,omitempty"`
	Culture  []Fragment `json:"peopleAndCulture,omitempty"`
	Tech     []Fragment `json:"technicalProfile,omitempty"`
	Business []Fragment `json:"businessContext,omitempty"`
	Network  []Fragment `json:"networkMapping,omitempty"`
}

// ByCategory returns the fragment slice for the given category.
func (cf *CategorizedFragments) ByCategory(cat FragmentCategory) []Fragment {
	switch cat {
	case CategoryHiring:
		return cf.Hiring
	case CategoryCulture:
		return cf.Culture
	case CategoryTech:
		return cf.Tech
	case CategoryBusiness:
		return cf.Business
	case CategoryNetwork:
		return cf.Network
	}
	return nil
}

// Append adds a fragment to the given category.
func (cf *CategorizedFragments) Append(cat FragmentCategory, f Fragment) {
	switch cat {
	case CategoryHiring:
		cf.Hiring = append(cf.Hiring, f)
	case CategoryCulture:
		cf.Culture = append(cf.Culture, f)
	case CategoryTech:
		cf.Tech = append(cf.Tech, f)
	case CategoryBusiness:
		cf.Business = append(cf.Business, f)
	case CategoryNetwork:
		cf.Network = append(cf.Network, f)
	}
}

// Count returns the total number of fragments across all categories.
func (cf *CategorizedFragments) Count() int {
	n := 0
	for _, cat := range Categories() {
		n += len(cf.ByCategory(cat))
	}
	return n
}

// ResearchDocument is the structured research result for one company.
// Immutable once cached within its freshness window; a refresh supersedes
// rather than mutates it.
type ResearchDocument struct {
	Company    string               `json:"company"`
	Fragments  CategorizedFragments `json:"fragments"`
	CapturedAt time.Time            `json:"captured_at"`
}

// HiringUrgency values derived by the insight ranker.
const (
	UrgencyHigh = "High"
	UrgencyLow  = "Low"
)

// PersonalizationHooks are the best fragments for specific opening lines.
type PersonalizationHooks struct {
	// CongratulateOn is the first business-news fragment, if any.
	CongratulateOn *Fragment `json:"congratulateOn,omitempty"`
	// AlignWithValue is the culture/values fragment, if any.
	AlignWithValue *Fragment `json:"alignWithValue,omitempty"`
}

// ActionableIntelligence summarizes derived signals for the generator.
type ActionableIntelligence struct {
	HiringUrgency   string `json:"hiringUrgency"`
	ReferralPathway string `json:"referralPathway"`
}

// InsightReport is the ranked structure consumed by content generation.
type InsightReport struct {
	PrimaryInsights []Fragment             `json:"primaryInsights"`
	Hooks           PersonalizationHooks   `json:"personalizationHooks"`
	Actionable      ActionableIntelligence `json:"actionableIntelligence"`
	ConfidenceScore float64                `json:"confidenceScore"`
}

// Package insights converts raw research fragments into the prioritized,
// scored structure consumed by content generation.
package insights

import (
	"sort"

	"github.com/akm592/coldreach/internal/types"
)

// maxPrimaryInsights caps the ranked list handed to the generator.
const maxPrimaryInsights = 5

// Build derives the insight report from a research document: top fragments
// by (relevance, temporal, credibility), personalization hooks, hiring
// urgency, and an aggregate confidence score. Deterministic for identical
// inputs: the sort is stable, so ties keep category-scan order.
func Build(doc *types.ResearchDocument) *types.InsightReport {
	all := flatten(&doc.Fragments)

	ranked := make([]types.Fragment, len(all))
	copy(ranked, all)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := &ranked[i], &ranked[j]
		if a.PersonalizationRelevance != b.PersonalizationRelevance {
			return a.PersonalizationRelevance > b.PersonalizationRelevance
		}
		if a.TemporalScore != b.TemporalScore {
			return a.TemporalScore > b.TemporalScore
		}
		return a.SourceCredibility > b.SourceCredibility
	})

	if len(ranked) > maxPrimaryInsights {
		ranked = ranked[:maxPrimaryInsights]
	}

	report := &types.InsightReport{
		PrimaryInsights: ranked,
		Hooks:           buildHooks(&doc.Fragments),
		Actionable: types.ActionableIntelligence{
			HiringUrgency:   urgency(all),
			ReferralPathway: referralPathway(&doc.Fragments),
		},
		ConfidenceScore: confidence(all),
	}
	return report
}

// flatten collects all non-empty fragments in canonical category order.
// Empty categories contribute nothing and are never an error.
func flatten(cf *types.CategorizedFragments) []types.Fragment {
	var all []types.Fragment
	for _, cat := range types.Categories() {
		for _, f := range cf.ByCategory(cat) {
			if f.Data == "" {
				continue
			}
			all = append(all, f)
		}
	}
	return all
}

// buildHooks picks the opening-line fragments: the first business-news
// fragment for "congratulate on" and the first culture/values fragment for
// "align with value".
func buildHooks(cf *types.CategorizedFragments) types.PersonalizationHooks {
	var hooks types.PersonalizationHooks
	for i := range cf.Business {
		if cf.Business[i].Data != "" {
			f := cf.Business[i]
			hooks.CongratulateOn = &f
			break
		}
	}
	for i := range cf.Culture {
		if cf.Culture[i].Data != "" {
			f := cf.Culture[i]
			hooks.AlignWithValue = &f
			break
		}
	}
	return hooks
}

// urgency is High iff any fragment reaches the maximum relevance score.
func urgency(all []types.Fragment) string {
	for _, f := range all {
		if f.PersonalizationRelevance == types.MaxRelevance {
			return types.UrgencyHigh
		}
	}
	return types.UrgencyLow
}

// referralPathway surfaces a network-signal fragment when one exists.
func referralPathway(cf *types.CategorizedFragments) string {
	for _, f := range cf.Network {
		if f.Data != "" {
			return f.Data
		}
	}
	return "Unknown"
}

// confidence is the mean source credibility across all fragments, 0 when
// there are none.
func confidence(all []types.Fragment) float64 {
	if len(all) == 0 {
		return 0
	}
	sum := 0.0
	for _, f := range all {
		sum += f.SourceCredibility
	}
	return sum / float64(len(all))
}

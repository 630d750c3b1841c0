// Package research gathers and scores structured company intelligence from
// search, news, and company-page sources.
package research

import (
	"strings"
	"time"

	"github.com/akm592/coldreach/internal/types"
)

// Source classes assigned to fragments. Credibility is static per class.
const (
	SourceOfficialWebsite = "Official Website"
	SourceCareerPage      = "Official Career Page"
	SourceLinkedIn        = "LinkedIn"
	SourceEngineeringBlog = "Engineering Blog"
	SourceGlassdoor       = "Glassdoor"
	SourceNewsArticle     = "News Article"
	SourceGeneralSearch   = "General Search"
)

// credibilityScores assigns a predefined credibility score to each source
// class. Unknown classes default to 0.5.
var credibilityScores = map[string]float64{
	SourceOfficialWebsite: 1.0,
	SourceCareerPage:      1.0,
	SourceLinkedIn:        0.9,
	SourceEngineeringBlog: 0.9,
	SourceNewsArticle:     0.8,
	SourceGlassdoor:       0.7,
	SourceGeneralSearch:   0.6,
}

// SourceCredibility returns the static credibility score for a source class.
func SourceCredibility(sourceClass string) float64 {
	if score, ok := credibilityScores[sourceClass]; ok {
		return score
	}
	return 0.5
}

// Temporal decay constants: full weight under 30 days, linear decay to the
// floor by one year.
const (
	freshWindowDays    = 30
	staleHorizonDays   = 365
	temporalScoreFloor = 0.2
)

// TemporalScore scores information by age.
func TemporalScore(capturedAt, now time.Time) float64 {
	days := now.Sub(capturedAt).Hours() / 24
	switch {
	case days < freshWindowDays:
		return 1.0
	case days >= staleHorizonDays:
		return temporalScoreFloor
	default:
		span := float64(staleHorizonDays - freshWindowDays)
		return 1.0 - (days-freshWindowDays)/span*(1.0-temporalScoreFloor)
	}
}

// fresherSignals are phrases that make a fragment maximally useful for
// entry-level outreach personalization.
var fresherSignals = []string{
	"internship",
	"university hiring",
	"entry-level",
	"entry level",
	"new graduate",
	"graduate program",
}

// PersonalizationRelevance scores (0-10) how useful a piece of research is
// for a fresher's cold email. Keyworded heuristic favoring entry-level
// signals, on both the answer text and the query that produced it.
func PersonalizationRelevance(data, query string) int {
	lower := strings.ToLower(data)
	queryLower := strings.ToLower(query)

	score := 0
	for _, signal := range fresherSignals {
		if strings.Contains(lower, signal) {
			score = types.MaxRelevance
			break
		}
	}
	if score < 9 && strings.Contains(lower, "solves") && strings.Contains(lower, "project") {
		score = 9
	}
	if score == 0 && strings.Contains(lower, "ceo") && strings.Contains(lower, "interview") {
		score = 2
	}

	// Queries explicitly aimed at entry-level signals promote whatever
	// came back.
	if strings.Contains(queryLower, "entry level") || strings.Contains(queryLower, "new graduate") {
		score = types.MaxRelevance
	}
	return score
}

// NewFragment builds a fully scored fragment from raw answer text.
func NewFragment(data, sourceURL, sourceClass, query string, now time.Time) types.Fragment {
	return types.Fragment{
		Data:                     data,
		SourceURL:                sourceURL,
		SourceClass:              sourceClass,
		CapturedAt:               now,
		SourceCredibility:        SourceCredibility(sourceClass),
		TemporalScore:            TemporalScore(now, now),
		PersonalizationRelevance: PersonalizationRelevance(data, query),
	}
}

package research

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/akm592/coldreach/internal/types"
)

func TestSourceCredibility(t *testing.T) {
	tests := []struct {
		name        string
		sourceClass string
		expected    float64
	}{
		{"official website", SourceOfficialWebsite, 1.0},
		{"career page", SourceCareerPage, 1.0},
		{"linkedin", SourceLinkedIn, 0.9},
		{"engineering blog", SourceEngineeringBlog, 0.9},
		{"news article", SourceNewsArticle, 0.8},
		{"glassdoor", SourceGlassdoor, 0.7},
		{"general search", SourceGeneralSearch, 0.6},
		{"unknown class", "Carrier Pigeon", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SourceCredibility(tt.sourceClass))
		})
	}
}

func TestTemporalScore(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		ageDays  int
		expected float64
	}{
		{"captured today", 0, 1.0},
		{"inside fresh window", 29, 1.0},
		{"one year old", 365, 0.2},
		{"two years old", 730, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captured := now.AddDate(0, 0, -tt.ageDays)
			assert.InDelta(t, tt.expected, TemporalScore(captured, now), 1e-9)
		})
	}

	t.Run("decays linearly between window and horizon", func(t *testing.T) {
		at30 := TemporalScore(now.AddDate(0, 0, -30), now)
		at180 := TemporalScore(now.AddDate(0, 0, -180), now)
		at364 := TemporalScore(now.AddDate(0, 0, -364), now)

		assert.InDelta(t, 1.0, at30, 1e-9)
		assert.Greater(t, at30, at180)
		assert.Greater(t, at180, at364)
		assert.Greater(t, at364, 0.2)
	})
}

func TestPersonalizationRelevance(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		query    string
		expected int
	}{
		{
			"internship signal is maximal",
			"Acme opened its summer internship applications this week.",
			"careers at Acme",
			types.MaxRelevance,
		},
		{
			"new graduate signal is maximal",
			"The new graduate program starts in July.",
			"careers at Acme",
			types.MaxRelevance,
		},
		{
			"solving problems with projects",
			"Acme solves logistics routing; their open source project is popular.",
			"tech stack at Acme",
			9,
		},
		{
			"executive press is low value",
			"The CEO gave an interview about market strategy.",
			"latest news about Acme",
			2,
		},
		{
			"entry-level query promotes any answer",
			"Acme builds billing software.",
			"entry level software engineer openings at Acme",
			types.MaxRelevance,
		},
		{
			"generic text scores zero",
			"Acme is a company headquartered in Austin.",
			"main competitors of Acme",
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PersonalizationRelevance(tt.data, tt.query))
		})
	}
}

func TestNewFragment(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	frag := NewFragment("Acme internship program announced", "https://acme.example", SourceCareerPage, "careers at Acme", now)

	assert.Equal(t, SourceCareerPage, frag.SourceClass)
	assert.Equal(t, 1.0, frag.SourceCredibility)
	assert.Equal(t, 1.0, frag.TemporalScore)
	assert.Equal(t, types.MaxRelevance, frag.PersonalizationRelevance)
	assert.Equal(t, now, frag.CapturedAt)
}

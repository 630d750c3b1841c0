// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Default values applied by ApplyDefaults when the config file and flags
// leave a field unset.
const (
	DefaultCacheTTLHours     = 24
	DefaultSemanticThreshold = 0.85
	DefaultSendDelaySeconds  = 15
	DefaultNewsFeedTemplate  = "https://news.google.com/rss/search?q=%s"
	DefaultCredentialsFile   = "credentials.json"
	DefaultTokenFile         = "token.json"
	DefaultSheetRange        = "Sheet1!A:Z"
)

// DefaultFollowUpThresholds are the day gates for the three follow-up stages.
func DefaultFollowUpThresholds() [3]int { return [3]int{3, 7, 14} }

// Sender holds the campaign owner's identity used in generated emails.
type Sender struct {
	Name              string `json:"name,omitempty"`
	Email             string `json:"email,omitempty" validate:"omitempty,email"`
	Degree            string `json:"degree,omitempty"`
	KeySkills         string `json:"key_skills,omitempty"`
	ProjectExperience string `json:"project_experience,omitempty"`
	GraduationDate    string `json:"graduation_date,omitempty"`
	Signature         string `json:"signature,omitempty"`
}

// Config is the CLI configuration, loadable from a JSON file. All fields are
// optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	ContactsCSV     string `json:"contacts_csv,omitempty"`     // CSV of new contacts to ingest
	ResumeAIML      string `json:"resume_ai_ml,omitempty"`     // AI/ML resume attachment path
	ResumeFullstack string `json:"resume_fullstack,omitempty"` // Fullstack resume attachment path

	// Identity
	Sender Sender `json:"sender,omitempty"`

	// Credentials / endpoints
	APIKey          string `json:"api_key,omitempty"`          // Gemini API key
	SearchAPIKey    string `json:"search_api_key,omitempty"`   // research provider API key
	DatabaseURL     string `json:"database_url,omitempty"`     // PostgreSQL connection URL
	CredentialsFile string `json:"credentials_file,omitempty"` // Google OAuth client secret JSON
	TokenFile       string `json:"token_file,omitempty"`       // previously provisioned OAuth token
	SpreadsheetID   string `json:"spreadsheet_id,omitempty"`   // Google Sheet to mirror the contact table
	SheetRange      string `json:"sheet_range,omitempty"`      // e.g. "Sheet1!A:Z"

	// Research
	NewsFeedTemplate  string  `json:"news_feed_template,omitempty"` // fmt template, %s = company name
	CacheTTLHours     int     `json:"cache_ttl_hours,omitempty" validate:"gte=0"`
	SemanticCache     bool    `json:"semantic_cache,omitempty"`
	SemanticThreshold float64 `json:"semantic_threshold,omitempty" validate:"gte=0,lte=1"`

	// Scheduling
	FollowUpThresholds [3]int `json:"follow_up_thresholds,omitempty"` // days per stage
	SendDelaySeconds   int    `json:"send_delay_seconds,omitempty" validate:"gte=0"`

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // headless browser for SPA company sites
	Verbose    bool `json:"verbose,omitempty"`
}

var validate = validator.New()

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values. Required-field
// checks happen after flag merging, not here.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	for i, d := range c.FollowUpThresholds {
		if d < 0 {
			return fmt.Errorf("config error: follow_up_thresholds[%d] must be non-negative", i)
		}
	}

	// Validate file paths exist (if specified)
	for _, p := range []string{c.ResumeAIML, c.ResumeFullstack} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", p)
		}
	}

	return nil
}

// ApplyDefaults fills unset fields with package defaults. Thresholds are
// treated as unset only when all three are zero, so a deliberate
// zero-day first stage survives.
func (c *Config) ApplyDefaults() {
	if c.CacheTTLHours == 0 {
		c.CacheTTLHours = DefaultCacheTTLHours
	}
	if c.SemanticThreshold == 0 {
		c.SemanticThreshold = DefaultSemanticThreshold
	}
	if c.SendDelaySeconds == 0 {
		c.SendDelaySeconds = DefaultSendDelaySeconds
	}
	if c.NewsFeedTemplate == "" {
		c.NewsFeedTemplate = DefaultNewsFeedTemplate
	}
	if c.FollowUpThresholds == [3]int{} {
		c.FollowUpThresholds = DefaultFollowUpThresholds()
	}
	if c.CredentialsFile == "" {
		c.CredentialsFile = DefaultCredentialsFile
	}
	if c.TokenFile == "" {
		c.TokenFile = DefaultTokenFile
	}
	if c.SheetRange == "" {
		c.SheetRange = DefaultSheetRange
	}
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Used to apply config-file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.ContactsCSV == "" {
		result.ContactsCSV = defaults.ContactsCSV
	}
	if result.ResumeAIML == "" {
		result.ResumeAIML = defaults.ResumeAIML
	}
	if result.ResumeFullstack == "" {
		result.ResumeFullstack = defaults.ResumeFullstack
	}
	if result.Sender.Name == "" {
		result.Sender.Name = defaults.Sender.Name
	}
	if result.Sender.Email == "" {
		result.Sender.Email = defaults.Sender.Email
	}
	if result.Sender.Degree == "" {
		result.Sender.Degree = defaults.Sender.Degree
	}
	if result.Sender.KeySkills == "" {
		result.Sender.KeySkills = defaults.Sender.KeySkills
	}
	if result.Sender.ProjectExperience == "" {
		result.Sender.ProjectExperience = defaults.Sender.ProjectExperience
	}
	if result.Sender.GraduationDate == "" {
		result.Sender.GraduationDate = defaults.Sender.GraduationDate
	}
	if result.Sender.Signature == "" {
		result.Sender.Signature = defaults.Sender.Signature
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.SearchAPIKey == "" {
		result.SearchAPIKey = defaults.SearchAPIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.CredentialsFile == "" {
		result.CredentialsFile = defaults.CredentialsFile
	}
	if result.TokenFile == "" {
		result.TokenFile = defaults.TokenFile
	}
	if result.SpreadsheetID == "" {
		result.SpreadsheetID = defaults.SpreadsheetID
	}
	if result.SheetRange == "" {
		result.SheetRange = defaults.SheetRange
	}
	if result.NewsFeedTemplate == "" {
		result.NewsFeedTemplate = defaults.NewsFeedTemplate
	}
	if result.CacheTTLHours == 0 {
		result.CacheTTLHours = defaults.CacheTTLHours
	}
	if result.SemanticThreshold == 0 {
		result.SemanticThreshold = defaults.SemanticThreshold
	}
	if result.FollowUpThresholds == [3]int{} {
		result.FollowUpThresholds = defaults.FollowUpThresholds
	}
	if result.SendDelaySeconds == 0 {
		result.SendDelaySeconds = defaults.SendDelaySeconds
	}
	if !result.SemanticCache {
		result.SemanticCache = defaults.SemanticCache
	}
	if !result.UseBrowser {
		result.UseBrowser = defaults.UseBrowser
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}

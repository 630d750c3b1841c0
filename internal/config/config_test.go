package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfigFile(t, `{
		"contacts_csv": "contacts.csv",
		"sender": {"name": "Ada", "email": "ada@example.com"},
		"cache_ttl_hours": 48,
		"follow_up_thresholds": [1, 3, 7]
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "contacts.csv", cfg.ContactsCSV)
	assert.Equal(t, "Ada", cfg.Sender.Name)
	assert.Equal(t, 48, cfg.CacheTTLHours)
	assert.Equal(t, [3]int{1, 3, 7}, cfg.FollowUpThresholds)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfigFile(t, `{not json`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate_BadEmail(t *testing.T) {
	cfg := &Config{Sender: Sender{Email: "not-an-email"}}
	assert.Error(t, cfg.Validate())
}

func TestValidate_SemanticThresholdRange(t *testing.T) {
	cfg := &Config{SemanticThreshold: 1.5}
	assert.Error(t, cfg.Validate())

	cfg.SemanticThreshold = 0.85
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MissingResumeFile(t *testing.T) {
	cfg := &Config{ResumeAIML: filepath.Join(t.TempDir(), "missing.txt")}
	assert.Error(t, cfg.Validate())
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, DefaultCacheTTLHours, cfg.CacheTTLHours)
	assert.Equal(t, DefaultSemanticThreshold, cfg.SemanticThreshold)
	assert.Equal(t, DefaultSendDelaySeconds, cfg.SendDelaySeconds)
	assert.Equal(t, DefaultFollowUpThresholds(), cfg.FollowUpThresholds)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{CacheTTLHours: 6, FollowUpThresholds: [3]int{1, 2, 3}}
	cfg.ApplyDefaults()

	assert.Equal(t, 6, cfg.CacheTTLHours)
	assert.Equal(t, [3]int{1, 2, 3}, cfg.FollowUpThresholds)
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{APIKey: "flag-key"}
	defaults := Config{APIKey: "file-key", DatabaseURL: "postgres://localhost/outreach"}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "flag-key", merged.APIKey, "explicit value wins")
	assert.Equal(t, "postgres://localhost/outreach", merged.DatabaseURL, "default fills gap")
}

package resume

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akm592/coldreach/internal/generation"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestAttachmentPath(t *testing.T) {
	lib := NewLibrary("/resumes/aiml.pdf", "/resumes/fullstack.pdf")

	assert.Equal(t, "/resumes/aiml.pdf", lib.AttachmentPath(generation.ResumeAIML))
	assert.Equal(t, "/resumes/fullstack.pdf", lib.AttachmentPath(generation.ResumeFullstack))
	// Unknown variants resolve to Fullstack.
	assert.Equal(t, "/resumes/fullstack.pdf", lib.AttachmentPath("something else"))
}

func TestTextLoadsAndCaches(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "aiml.pdf")
	writeFile(t, pdf, "binary")
	writeFile(t, filepath.Join(dir, "aiml.txt"), "  ML engineer resume text  ")

	lib := NewLibrary(pdf, filepath.Join(dir, "fullstack.pdf"))

	text, err := lib.Text(generation.ResumeAIML)
	require.NoError(t, err)
	assert.Equal(t, "ML engineer resume text", text)

	// Cached: removing the file does not break subsequent reads.
	require.NoError(t, os.Remove(filepath.Join(dir, "aiml.txt")))
	text, err = lib.Text(generation.ResumeAIML)
	require.NoError(t, err)
	assert.Equal(t, "ML engineer resume text", text)
}

func TestTextMissingFile(t *testing.T) {
	dir := t.TempDir()
	lib := NewLibrary(filepath.Join(dir, "aiml.pdf"), filepath.Join(dir, "fullstack.pdf"))

	_, err := lib.Text(generation.ResumeFullstack)
	assert.Error(t, err)
}

func TestTextPathFor(t *testing.T) {
	tests := []struct {
		attachment string
		expected   string
	}{
		{"/r/resume.pdf", "/r/resume.txt"},
		{"/r/resume.txt", "/r/resume.txt"},
		{"/r/resume", "/r/resume"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, textPathFor(tt.attachment))
	}
}

// Package resume loads resume text used as generation context and resolves
// which attachment file accompanies a send.
package resume

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/akm592/coldreach/internal/generation"
)

// Library resolves resume variants to their attachment path and a plain-text
// rendition fed to the generator. Text files live next to the attachment
// with a .txt extension (resume.pdf -> resume.txt).
type Library struct {
	mu    sync.Mutex
	paths map[string]string // variant -> attachment path
	texts map[string]string // attachment path -> loaded text
}

// NewLibrary builds a library over the configured attachment paths.
func NewLibrary(aimlPath, fullstackPath string) *Library {
	return &Library{
		paths: map[string]string{
			generation.ResumeAIML:      aimlPath,
			generation.ResumeFullstack: fullstackPath,
		},
		texts: make(map[string]string),
	}
}

// AttachmentPath returns the file to attach for a resume variant. Unknown
// variants resolve to the Fullstack attachment.
func (l *Library) AttachmentPath(variant string) string {
	if p, ok := l.paths[variant]; ok && p != "" {
		return p
	}
	return l.paths[generation.ResumeFullstack]
}

// Text returns the plain-text resume for a variant, loading and caching it
// on first use. A missing text file is a per-contact skip reason, not a
// fatal error.
func (l *Library) Text(variant string) (string, error) {
	attachment := l.AttachmentPath(variant)
	if attachment == "" {
		return "", fmt.Errorf("no resume configured for variant %q", variant)
	}
	textPath := textPathFor(attachment)

	l.mu.Lock()
	defer l.mu.Unlock()

	if text, ok := l.texts[textPath]; ok {
		return text, nil
	}

	data, err := os.ReadFile(textPath)
	if err != nil {
		return "", fmt.Errorf("resume text %s: %w", textPath, err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("resume text %s is empty", textPath)
	}
	l.texts[textPath] = text
	return text, nil
}

// textPathFor swaps the attachment extension for .txt.
func textPathFor(attachment string) string {
	ext := filepath.Ext(attachment)
	if ext == "" || strings.EqualFold(ext, ".txt") {
		return attachment
	}
	return strings.TrimSuffix(attachment, ext) + ".txt"
}

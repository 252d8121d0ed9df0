// Package sanitize cleans file paths and URLs coming from configuration,
// theme metadata and request input.
package sanitize

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/a-h/templ"
)

// ErrOutsideRoot is returned when a joined path escapes its root directory.
var ErrOutsideRoot = errors.New("path escapes root directory")

var (
	disallowedURLChars = regexp.MustCompile(`[^a-zA-Z0-9\-~+_.?#=!&;,/:%@$|*'()\[\]\x{80}-\x{10FFFF}]`)
	encodedNewline     = regexp.MustCompile(`(?i)%0[ad]`)
)

// ThemeName validates a theme directory name: exactly one path element.
func ThemeName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errors.New("theme name must not be empty")
	case name == "." || name == "..":
		return fmt.Errorf("invalid theme name %q", name)
	case strings.ContainsAny(name, `/\`+"\x00"):
		return fmt.Errorf("theme name %q must not contain path separators", name)
	}
	return nil
}

// Filename returns a cleaned path using forward slashes.
func Filename(path string) string {
	if path == "" {
		return ""
	}
	return filepath.ToSlash(filepath.Clean(strings.ReplaceAll(path, `\`, "/")))
}

// Join builds a path below root and fails if the result leaves root.
func Join(root string, elem ...string) (string, error) {
	base := filepath.Clean(root)
	joined := filepath.Join(append([]string{base}, elem...)...)
	rel, err := filepath.Rel(base, joined)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOutsideRoot, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, Filename(joined))
	}
	return joined, nil
}

// URL strips characters that have no business in a URL and rejects
// dangerous protocols. It returns "" when nothing safe remains.
func URL(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return ""
	}
	cleaned = disallowedURLChars.ReplaceAllString(cleaned, "")
	for encodedNewline.MatchString(cleaned) {
		cleaned = encodedNewline.ReplaceAllString(cleaned, "")
	}
	if cleaned == "" {
		return ""
	}
	if templ.URL(cleaned) == templ.FailedSanitizationURL {
		return ""
	}
	return cleaned
}

package transmute

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// upstream cleanup: comments go away, double quotes become single quotes so
// that sliced fragments never carry a quote style the spell notation cannot
// hold
var commentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)

// ExpandPaths expands glob patterns into a list of existing regular files.
// Relative patterns are resolved against cwd.
func ExpandPaths(cwd string, patterns []string) ([]string, error) {
	var paths []string
	for _, pattern := range patterns {
		p := pattern
		if !filepath.IsAbs(p) {
			p = filepath.Join(cwd, p)
		}
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("bad file pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			fi, err := os.Stat(m)
			if err != nil {
				return nil, fmt.Errorf("unable to check %q: %w", m, err)
			}
			if fi.Mode().IsRegular() {
				paths = append(paths, m)
			}
		}
	}
	return paths, nil
}

// ReadAndCleanFiles concatenates the given CSS files with comments stripped
// and double quotes normalized to single quotes.
func ReadAndCleanFiles(paths []string) (string, error) {
	var sb strings.Builder
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("unable to read %q: %w", path, err)
		}
		sb.WriteString(strings.ReplaceAll(commentRe.ReplaceAllString(string(data), ""), `"`, "'"))
	}
	return sb.String(), nil
}

// CleanContent applies the same cleanup to literal CSS content.
func CleanContent(content string) string {
	return strings.ReplaceAll(commentRe.ReplaceAllString(content, ""), `"`, "'")
}

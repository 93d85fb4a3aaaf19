package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"botguard/internal/issue"
)

// FormatBlock renders the report as the text block written to the dated
// artifact and the audit log. Category counts appear in sorted order so
// identical runs produce identical blocks.
func FormatBlock(r Report) string {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("SECURITY REPORT %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05 UTC")))
	sb.WriteString(fmt.Sprintf("run: %s  environment: %s\n", r.RunID, r.Environment))
	sb.WriteString(strings.Repeat("-", 60) + "\n")

	for _, is := range r.Issues {
		if is.Path != "" {
			sb.WriteString(fmt.Sprintf("[%s] %s %s: %s\n", strings.ToUpper(string(is.Severity)), is.Category, is.Path, is.Detail))
		} else {
			sb.WriteString(fmt.Sprintf("[%s] %s: %s\n", strings.ToUpper(string(is.Severity)), is.Category, is.Detail))
		}
	}

	cats := make([]string, 0, len(r.Counts))
	for c := range r.Counts {
		cats = append(cats, string(c))
	}
	sort.Strings(cats)
	for _, c := range cats {
		sb.WriteString(fmt.Sprintf("  %s: %d\n", c, r.Counts[issue.Category(c)]))
	}

	sb.WriteString(fmt.Sprintf("total issues: %d  status: %s\n", r.Total, r.Status))
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	return sb.String()
}

// AppendArtifact appends the report block to the dated artifact, one file
// per calendar day; runs on the same day append to the same file. Returns
// the artifact path.
func AppendArtifact(dir string, r Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, fmt.Sprintf("security_report_%s.log", r.GeneratedAt.Format("2006-01-02")))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.WriteString(FormatBlock(r)); err != nil {
		return "", err
	}
	return path, nil
}

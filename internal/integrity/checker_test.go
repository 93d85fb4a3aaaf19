package integrity

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"botguard/internal/baseline"
	"botguard/internal/fsutil"
	"botguard/internal/issue"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func writeFile(t *testing.T, root, rel string, content []byte) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}
}

func entryFor(rel string, content []byte) baseline.Entry {
	return baseline.Entry{
		RelPath:    rel,
		Digest:     fsutil.HashBytes(content),
		RecordedAt: time.Now().UTC(),
	}
}

func TestMatchingFilesYieldNoIssues(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "config/settings.cfg", []byte("version=1"))
	writeFile(t, root, "wallets/registry.json", []byte("{}"))

	entries := []baseline.Entry{
		entryFor("config/settings.cfg", []byte("version=1")),
		entryFor("wallets/registry.json", []byte("{}")),
	}

	issues := Check(entries, root, fsutil.SHA256Hasher{})
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %+v", issues)
	}
}

func TestMutatedFileYieldsOneViolation(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "config/settings.cfg", []byte("version=2"))
	writeFile(t, root, "config/other.cfg", []byte("stable"))

	entries := []baseline.Entry{
		entryFor("config/settings.cfg", []byte("version=1")),
		entryFor("config/other.cfg", []byte("stable")),
	}

	issues := Check(entries, root, fsutil.SHA256Hasher{})
	if len(issues) != 1 {
		t.Fatalf("expected exactly 1 issue, got %d", len(issues))
	}
	if issues[0].Category != issue.IntegrityViolation {
		t.Errorf("category = %s, want %s", issues[0].Category, issue.IntegrityViolation)
	}
	if issues[0].Severity != issue.SeverityError {
		t.Errorf("severity = %s, want error", issues[0].Severity)
	}
	if issues[0].Path != "config/settings.cfg" {
		t.Errorf("path = %s", issues[0].Path)
	}
}

func TestDeletedFileYieldsFileMissingNeverViolation(t *testing.T) {
	root := t.TempDir()

	entries := []baseline.Entry{entryFor("gone.cfg", []byte("anything"))}

	issues := Check(entries, root, fsutil.SHA256Hasher{})
	if len(issues) != 1 {
		t.Fatalf("expected exactly 1 issue, got %d", len(issues))
	}
	if issues[0].Category != issue.FileMissing {
		t.Errorf("category = %s, want %s", issues[0].Category, issue.FileMissing)
	}
}

func TestIssuesFollowBaselineOrder(t *testing.T) {
	root := t.TempDir()

	entries := []baseline.Entry{
		entryFor("z.cfg", []byte("a")),
		entryFor("a.cfg", []byte("b")),
		entryFor("m.cfg", []byte("c")),
	}

	issues := Check(entries, root, fsutil.SHA256Hasher{})
	if len(issues) != 3 {
		t.Fatalf("expected 3 issues, got %d", len(issues))
	}
	for i, want := range []string{"z.cfg", "a.cfg", "m.cfg"} {
		if issues[i].Path != want {
			t.Errorf("issue %d path = %s, want %s", i, issues[i].Path, want)
		}
	}
}

func TestMalformedIssuesAreWarnings(t *testing.T) {
	malformed := []baseline.Malformed{
		{Line: 3, Text: "junk", Reason: "expected 3 colon-delimited fields, got 1"},
	}

	issues := MalformedIssues(malformed)
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}
	if issues[0].Severity != issue.SeverityWarning {
		t.Errorf("severity = %s, want warning", issues[0].Severity)
	}
	if issues[0].Category != issue.IntegrityViolation {
		t.Errorf("category = %s", issues[0].Category)
	}
}

// TestUnchangedTreeIsIdempotent verifies that for any file content, a file
// matching its baseline digest never produces an issue, no matter how many
// times it is checked.
func TestUnchangedTreeIsIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("matching content yields zero issues on every run", prop.ForAll(
		func(content string) bool {
			root, err := os.MkdirTemp("", "integrity-test-*")
			if err != nil {
				return false
			}
			defer os.RemoveAll(root)

			data := []byte(content)
			if err := os.WriteFile(filepath.Join(root, "f.cfg"), data, 0o600); err != nil {
				return false
			}
			entries := []baseline.Entry{entryFor("f.cfg", data)}

			first := Check(entries, root, fsutil.SHA256Hasher{})
			second := Check(entries, root, fsutil.SHA256Hasher{})
			return len(first) == 0 && len(second) == 0
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

// TestSingleByteMutationDetected verifies that appending any byte to a
// baselined file produces exactly one IntegrityViolation for that path.
func TestSingleByteMutationDetected(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("mutated content yields exactly one violation", prop.ForAll(
		func(content string, extra byte) bool {
			root, err := os.MkdirTemp("", "integrity-test-*")
			if err != nil {
				return false
			}
			defer os.RemoveAll(root)

			data := []byte(content)
			entries := []baseline.Entry{entryFor("f.cfg", data)}

			mutated := append(append([]byte{}, data...), extra)
			if err := os.WriteFile(filepath.Join(root, "f.cfg"), mutated, 0o600); err != nil {
				return false
			}

			issues := Check(entries, root, fsutil.SHA256Hasher{})
			return len(issues) == 1 &&
				issues[0].Category == issue.IntegrityViolation &&
				issues[0].Path == "f.cfg"
		},
		gen.AnyString(),
		gen.UInt8(),
	))

	properties.TestingRun(t)
}

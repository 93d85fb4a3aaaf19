package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAppendIsAppendOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "security_audit.log")

	log, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := log.Append("first"); err != nil {
		t.Fatal(err)
	}
	if err := log.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopening must preserve existing lines.
	log, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := log.Append("second"); err != nil {
		t.Fatal(err)
	}
	log.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), lines)
	}
	if !strings.HasSuffix(lines[0], "first") || !strings.HasSuffix(lines[1], "second") {
		t.Errorf("lines = %q", lines)
	}
	// Every appended line is timestamped.
	for _, line := range lines {
		if !strings.Contains(line, "T") || len(line) < 21 {
			t.Errorf("line missing timestamp: %q", line)
		}
	}
}

func TestAppendRawPreservesLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")

	log, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	raw := []string{"type=SYSCALL arch=c000003e", "type=PATH name=\"secrets/.env\""}
	if err := log.AppendRaw(raw); err != nil {
		t.Fatal(err)
	}
	log.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != raw[0]+"\n"+raw[1]+"\n" {
		t.Errorf("raw lines altered: %q", data)
	}
}

func TestLogFileIsOwnerOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")

	log, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	log.Close()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("audit log mode = %04o, want 0600", info.Mode().Perm())
	}
}

package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SHA-256 of the empty string, a fixed reference vector.
const emptyDigest = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

func TestHashFileKnownVector(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := SHA256Hasher{}.HashFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != emptyDigest {
		t.Errorf("HashFile = %s, want %s", got, emptyDigest)
	}
}

func TestHashFileMatchesHashBytes(t *testing.T) {
	content := []byte("version=1")
	path := filepath.Join(t.TempDir(), "settings.cfg")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	fromFile, err := SHA256Hasher{}.HashFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if fromFile != HashBytes(content) {
		t.Errorf("HashFile and HashBytes disagree: %s vs %s", fromFile, HashBytes(content))
	}
}

func TestHashFileMissingReturnsError(t *testing.T) {
	_, err := SHA256Hasher{}.HashFile(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestOSPermissionReaderMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(path, 0o640); err != nil {
		t.Fatal(err)
	}

	mode, err := OSPermissionReader{}.Mode(path)
	if err != nil {
		t.Fatal(err)
	}
	if mode.Perm() != 0o640 {
		t.Errorf("mode = %04o, want 0640", mode.Perm())
	}
}

func TestOSPermissionReaderOwnerOfOwnFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	usr, grp, err := OSPermissionReader{}.Owner(path)
	if err != nil {
		t.Fatal(err)
	}
	// A file we just created is owned by us; the names are host-specific
	// but must be non-empty.
	if usr == "" || grp == "" {
		t.Errorf("owner = %q:%q", usr, grp)
	}
}

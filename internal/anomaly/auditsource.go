package anomaly

import (
	"os/exec"
	"strings"
)

// AuditSource queries the OS access-control audit subsystem for recent
// events tagged with the given keys. It is an optional collaborator:
// callers hold a nil AuditSource on hosts without one.
type AuditSource interface {
	Recent(keys []string) ([]string, error)
}

// osAuditSource shells out to ausearch, the Linux auditd query tool.
type osAuditSource struct {
	bin string
}

// NewOSAuditSource probes for ausearch and returns nil when the host does
// not have it.
func NewOSAuditSource() AuditSource {
	bin, err := exec.LookPath("ausearch")
	if err != nil {
		return nil
	}
	return &osAuditSource{bin: bin}
}

// Recent collects event lines for each key. Query failures for a key are
// treated as no events for that key; the audit subsystem is best-effort.
func (a *osAuditSource) Recent(keys []string) ([]string, error) {
	var events []string

	for _, key := range keys {
		out, err := exec.Command(a.bin, "-k", key, "-ts", "recent").Output()
		if err != nil {
			continue
		}
		for _, line := range strings.Split(string(out), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.Contains(line, "<no matches>") {
				continue
			}
			events = append(events, line)
		}
	}

	return events, nil
}

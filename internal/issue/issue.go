// Package issue defines the deviation model shared by all checkers.
// Every checker returns a slice of Issues; the aggregator never sees
// anything else.
package issue

import "time"

// Category identifies what kind of deviation was detected.
type Category string

const (
	IntegrityViolation Category = "integrity_violation" // Baselined file digest differs
	FileMissing        Category = "file_missing"        // Baselined file absent or unreadable
	PermissionMismatch Category = "permission_mismatch" // Mode bits differ from policy
	OwnershipMismatch  Category = "ownership_mismatch"  // Owner identity differs from policy
	SuspiciousArtifact Category = "suspicious_artifact" // Executable-style file in a sensitive dir
	WorldWritable      Category = "world_writable"      // Regular file writable by group or other
	SuidSgid           Category = "suid_sgid"           // File with setuid/setgid bit
	DiskCritical       Category = "disk_critical"       // Filesystem usage at or above 90%
	DiskWarning        Category = "disk_warning"        // Filesystem usage 80-89%
	ProcessAnomaly     Category = "process_anomaly"     // Suspicious process or audit-event burst
)

// Severity grades an Issue for console coloring and triage.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
)

// Issue is one detected deviation. Issues are created once and never
// mutated; checkers append them in deterministic order.
type Issue struct {
	Category  Category  `json:"category"`
	Severity  Severity  `json:"severity"`
	Path      string    `json:"path,omitempty"`
	Detail    string    `json:"detail"`
	Timestamp time.Time `json:"timestamp"`
}

// New builds an Issue stamped with the current UTC time.
func New(cat Category, sev Severity, path, detail string) Issue {
	return Issue{
		Category:  cat,
		Severity:  sev,
		Path:      path,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	}
}

// CountByCategory tallies issues per category.
func CountByCategory(issues []Issue) map[Category]int {
	counts := make(map[Category]int)
	for _, is := range issues {
		counts[is.Category]++
	}
	return counts
}

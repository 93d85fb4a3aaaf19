package baseline

import "time"

// Entry is one trusted path -> content-digest record.
type Entry struct {
	RelPath    string    `json:"relPath"`    // Path relative to the project root
	Digest     string    `json:"digest"`     // SHA-256 content digest, bare hex
	RecordedAt time.Time `json:"recordedAt"` // When the baseline captured this file
}

// Malformed describes a baseline line the parser rejected. The run
// survives a half-edited baseline; rejected lines surface as warnings.
type Malformed struct {
	Line   int    // 1-based line number
	Text   string // Raw line content
	Reason string
}

package policy

import (
	"io/fs"

	"botguard/internal/config"
)

// ModeRule maps one path (relative to the project root) to its expected
// permission bits.
type ModeRule struct {
	Path string
	Mode fs.FileMode
}

// OwnerRule is the identity every sensitive file must be owned by.
type OwnerRule struct {
	User  string
	Group string
}

// Policy holds the environment-scoped expectations. Dirs and Files are
// ordered tables so every run audits, and reports, in the same order.
// Owner is nil for development: ownership is not enforced there.
type Policy struct {
	Environment config.Environment
	Dirs        []ModeRule
	Files       []ModeRule
	Owner       *OwnerRule
}

// Package config reifies the per-run configuration. Everything a checker
// needs to know about the deployment (environment, project root, derived
// paths) lives in one immutable Config built at startup and passed in
// explicitly; no checker reads ambient process state.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
)

// ErrUnknownEnvironment is returned for an unrecognized environment name.
var ErrUnknownEnvironment = errors.New("unknown environment")

// Environment selects which policy tables apply.
type Environment string

const (
	Production  Environment = "production"
	Staging     Environment = "staging"
	Development Environment = "development"
)

// ParseEnvironment validates an environment name. An empty string selects
// the default (production). Unknown names are rejected before any checker
// runs.
func ParseEnvironment(s string) (Environment, error) {
	switch s {
	case "":
		return Production, nil
	case string(Production):
		return Production, nil
	case string(Staging):
		return Staging, nil
	case string(Development):
		return Development, nil
	}
	return "", fmt.Errorf("%w: %q (expected production, staging or development)", ErrUnknownEnvironment, s)
}

// Config is the immutable per-run configuration.
type Config struct {
	Environment Environment
	Root        string // Project root, absolute or relative

	BaselinePath string // Trust baseline (integrity database)
	PolicyPath   string // Optional YAML policy override
	ReportsDir   string // Dated report artifacts
	AuditLogPath string // Append-only audit log

	SensitiveDirs []string // Relative dirs scanned for unexpected executables
	BotPattern    string   // Substring matched against process cmdlines for liveness
}

// New derives all paths from the environment and project root.
func New(env Environment, root string) Config {
	return Config{
		Environment:   env,
		Root:          root,
		BaselinePath:  filepath.Join(root, "config", "integrity.db"),
		PolicyPath:    filepath.Join(root, "config", "security_policy.yaml"),
		ReportsDir:    filepath.Join(root, "reports"),
		AuditLogPath:  filepath.Join(root, "logs", "security_audit.log"),
		SensitiveDirs: []string{"secrets", "wallets", "config"},
		BotPattern:    "trading_bot",
	}
}

// SensitiveFiles lists the relative paths whose ownership is enforced in
// non-development environments: the secrets files, the wallet registry,
// the integrity database and the audit log itself.
func (c Config) SensitiveFiles() []string {
	return []string{
		filepath.Join("secrets", ".env"),
		filepath.Join("secrets", ".env."+string(c.Environment)),
		filepath.Join("wallets", "registry.json"),
		filepath.Join("config", "integrity.db"),
		filepath.Join("logs", "security_audit.log"),
	}
}

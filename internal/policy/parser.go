// Package policy builds the typed, ordered permission and ownership tables
// for an environment. The tables come from a declarative YAML policy file
// when one exists, otherwise from the compiled-in defaults; either way they
// are built once at startup and never mutated.
package policy

import (
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"botguard/internal/config"

	"gopkg.in/yaml.v3"
)

// policyFile mirrors the YAML document structure.
type policyFile struct {
	Environments map[string]envEntry `yaml:"environments"`
}

type envEntry struct {
	Owner       string      `yaml:"owner,omitempty"`
	Directories []ruleEntry `yaml:"directories"`
	Files       []ruleEntry `yaml:"files"`
}

type ruleEntry struct {
	Path string `yaml:"path"`
	Mode string `yaml:"mode"`
}

// Parse decodes YAML policy content and extracts the table for env.
// An environment absent from the file is an error: a policy file that
// exists must cover the environment it is asked about.
func Parse(content []byte, env config.Environment) (Policy, error) {
	var pf policyFile
	if err := yaml.Unmarshal(content, &pf); err != nil {
		return Policy{}, fmt.Errorf("invalid YAML: %w", err)
	}

	entry, ok := pf.Environments[string(env)]
	if !ok {
		return Policy{}, fmt.Errorf("policy file has no entry for environment %q", env)
	}

	p := Policy{Environment: env}

	var err error
	if p.Dirs, err = parseRules(entry.Directories, "directories"); err != nil {
		return Policy{}, err
	}
	if p.Files, err = parseRules(entry.Files, "files"); err != nil {
		return Policy{}, err
	}

	// Development is exempt from ownership enforcement even when the
	// policy file names an owner.
	if entry.Owner != "" && env != config.Development {
		owner, err := parseOwner(entry.Owner)
		if err != nil {
			return Policy{}, err
		}
		p.Owner = &owner
	}

	return p, nil
}

// Load reads the policy file at path for env, falling back to Default when
// the file does not exist. A file that exists but does not parse is an
// error; bad trust data must not silently degrade to defaults.
func Load(path string, env config.Environment) (Policy, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(env), nil
		}
		return Policy{}, fmt.Errorf("failed to read policy file: %w", err)
	}

	p, err := Parse(content, env)
	if err != nil {
		return Policy{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func parseRules(entries []ruleEntry, section string) ([]ModeRule, error) {
	rules := make([]ModeRule, 0, len(entries))
	for i, e := range entries {
		if e.Path == "" {
			return nil, fmt.Errorf("%s entry %d: missing path", section, i)
		}
		mode, err := parseMode(e.Mode)
		if err != nil {
			return nil, fmt.Errorf("%s entry %q: %w", section, e.Path, err)
		}
		rules = append(rules, ModeRule{Path: e.Path, Mode: mode})
	}
	return rules, nil
}

func parseMode(s string) (fs.FileMode, error) {
	if s == "" {
		return 0, fmt.Errorf("missing mode")
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(s, "0o"), 8, 32)
	if err != nil || n > 0o7777 {
		return 0, fmt.Errorf("invalid octal mode %q", s)
	}
	return fs.FileMode(n), nil
}

func parseOwner(s string) (OwnerRule, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return OwnerRule{}, fmt.Errorf("invalid owner %q (expected user:group)", s)
	}
	return OwnerRule{User: parts[0], Group: parts[1]}, nil
}

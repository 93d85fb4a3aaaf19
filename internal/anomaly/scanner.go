// Package anomaly runs the heuristic detectors: unexpected executables in
// sensitive directories, world-writable files, setuid/setgid files,
// suspicious processes, and an optional OS audit-log correlation.
package anomaly

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"botguard/internal/config"
	"botguard/internal/issue"
	"botguard/internal/procs"
)

// executableExts are the extensions treated as executable-style artifacts
// when found under a sensitive directory.
var executableExts = map[string]bool{
	".sh":   true,
	".bash": true,
	".exe":  true,
	".bin":  true,
	".run":  true,
	".pl":   true,
}

// tunnelBinaries are process names that indicate a relay or tunnel
// co-resident with the bot.
var tunnelBinaries = map[string]bool{
	"nc":     true,
	"ncat":   true,
	"netcat": true,
	"socat":  true,
	"ngrok":  true,
	"chisel": true,
	"frpc":   true,
}

// auditKeys are the protected-resource categories queried against the OS
// audit subsystem when one is available.
var auditKeys = []string{"botguard_env", "botguard_wallets", "botguard_trades"}

// Scanner bundles the injected capabilities. Audit may be nil: the OS
// audit subsystem is an optional collaborator and its absence changes
// nothing.
type Scanner struct {
	Procs procs.ProcessLister
	Audit AuditSource
}

// Scan runs the sub-checks in fixed order. Each is independent and
// non-fatal; traversal errors are skipped rather than reported. The second
// return value carries raw audit events for verbatim appending to the
// audit log.
func (s Scanner) Scan(cfg config.Config) ([]issue.Issue, []string) {
	var issues []issue.Issue

	issues = append(issues, s.scanArtifacts(cfg)...)
	issues = append(issues, s.scanWorldWritable(cfg)...)
	issues = append(issues, s.scanSuidSgid(cfg)...)
	issues = append(issues, s.scanProcesses()...)

	auditIssues, events := s.queryAuditSource()
	issues = append(issues, auditIssues...)

	return issues, events
}

// scanArtifacts flags executable-style files under the sensitive dirs.
func (s Scanner) scanArtifacts(cfg config.Config) []issue.Issue {
	var issues []issue.Issue

	for _, dir := range cfg.SensitiveDirs {
		root := filepath.Join(cfg.Root, dir)
		filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if !executableExts[strings.ToLower(filepath.Ext(d.Name()))] {
				return nil
			}

			rel := relTo(cfg.Root, path)
			issues = append(issues, issue.New(
				issue.SuspiciousArtifact,
				issue.SeverityWarning,
				rel,
				fmt.Sprintf("executable-style file in sensitive directory %s", dir),
			))
			return nil
		})
	}

	return issues
}

// scanWorldWritable flags regular files writable by group or other.
func (s Scanner) scanWorldWritable(cfg config.Config) []issue.Issue {
	return s.walkFiles(cfg, func(rel string, mode fs.FileMode) *issue.Issue {
		if mode.Perm()&0o022 == 0 {
			return nil
		}
		is := issue.New(
			issue.WorldWritable,
			issue.SeverityError,
			rel,
			fmt.Sprintf("writable by group or other (mode %04o)", mode.Perm()),
		)
		return &is
	})
}

// scanSuidSgid flags files carrying the setuid or setgid bit.
func (s Scanner) scanSuidSgid(cfg config.Config) []issue.Issue {
	return s.walkFiles(cfg, func(rel string, mode fs.FileMode) *issue.Issue {
		if mode&(os.ModeSetuid|os.ModeSetgid) == 0 {
			return nil
		}
		is := issue.New(
			issue.SuidSgid,
			issue.SeverityWarning,
			rel,
			"setuid/setgid bit set",
		)
		return &is
	})
}

// scanProcesses matches the process table against the tunnel-binary list.
func (s Scanner) scanProcesses() []issue.Issue {
	list, err := s.Procs.Processes()
	if err != nil {
		return nil
	}

	var issues []issue.Issue
	for _, p := range list {
		if !tunnelBinaries[p.Name] {
			continue
		}
		issues = append(issues, issue.New(
			issue.ProcessAnomaly,
			issue.SeverityWarning,
			"",
			fmt.Sprintf("suspicious process %s (pid %d): %s", p.Name, p.PID, p.Cmdline),
		))
	}
	return issues
}

// queryAuditSource surfaces recent access-control events on the protected
// resource keys. A nil source means the host has no audit query tool;
// proceed without comment.
func (s Scanner) queryAuditSource() ([]issue.Issue, []string) {
	if s.Audit == nil {
		return nil, nil
	}

	events, err := s.Audit.Recent(auditKeys)
	if err != nil || len(events) == 0 {
		return nil, nil
	}

	is := issue.New(
		issue.ProcessAnomaly,
		issue.SeverityWarning,
		"",
		fmt.Sprintf("%d recent audit events on protected resources", len(events)),
	)
	return []issue.Issue{is}, events
}

// walkFiles applies check to every regular file under the project root,
// in sorted path order for deterministic reports.
func (s Scanner) walkFiles(cfg config.Config, check func(rel string, mode fs.FileMode) *issue.Issue) []issue.Issue {
	var issues []issue.Issue

	filepath.WalkDir(cfg.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if is := check(relTo(cfg.Root, path), info.Mode()); is != nil {
			issues = append(issues, *is)
		}
		return nil
	})

	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Path < issues[j].Path })
	return issues
}

func relTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

// Command botguard audits a trading bot deployment for drift and
// tampering: baseline integrity, permission and ownership policy, anomaly
// heuristics and resource headroom, aggregated into one report and a
// pass/fail exit code.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"botguard/internal/anomaly"
	"botguard/internal/audit"
	"botguard/internal/baseline"
	"botguard/internal/cli"
	"botguard/internal/config"
	"botguard/internal/fsutil"
	"botguard/internal/integrity"
	"botguard/internal/issue"
	"botguard/internal/ownership"
	"botguard/internal/perms"
	"botguard/internal/policy"
	"botguard/internal/procs"
	"botguard/internal/report"
	"botguard/internal/resource"
)

// Exit codes. Schedulers key off zero/nonzero; the distinct nonzero codes
// separate "issues found" from "could not run".
const (
	exitSecure = 0
	exitIssues = 1
	exitFatal  = 2
	exitUsage  = 3
)

// deps bundles the injected capabilities so tests can substitute fakes.
type deps struct {
	hasher fsutil.FileHasher
	reader fsutil.PermissionReader
	procs  procs.ProcessLister
	disk   resource.DiskUsager
	events anomaly.AuditSource
}

func osDeps() deps {
	return deps{
		hasher: fsutil.SHA256Hasher{},
		reader: fsutil.OSPermissionReader{},
		procs:  procs.OSProcessLister{},
		disk:   resource.GopsutilDisk{},
		events: anomaly.NewOSAuditSource(),
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, osDeps()))
}

// run orchestrates one monitoring pass and returns the exit code. It is
// separated from main to enable testing. Checkers run unconditionally, in
// fixed order; only an unreadable baseline aborts early, before any
// checker executes and before any artifact is written.
func run(args []string, stdout, stderr io.Writer, d deps) int {
	opts, err := cli.ParseArgs(args)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitUsage
	}

	env, err := config.ParseEnvironment(opts.Environment)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitUsage
	}

	cfg := config.New(env, opts.Root)
	if opts.ReportsDir != "" {
		cfg.ReportsDir = opts.ReportsDir
	}

	// Fail closed: no trust data, no run, no report.
	entries, malformed, err := baseline.NewStore(cfg.BaselinePath).Load()
	if err != nil {
		if errors.Is(err, baseline.ErrBaselineUnreadable) {
			fmt.Fprintln(stderr, "fatal:", err)
			return exitFatal
		}
		fmt.Fprintln(stderr, "fatal: loading baseline:", err)
		return exitFatal
	}

	pol, err := policy.Load(cfg.PolicyPath, env)
	if err != nil {
		fmt.Fprintln(stderr, "fatal:", err)
		return exitFatal
	}

	log, err := audit.Open(cfg.AuditLogPath)
	if err != nil {
		fmt.Fprintln(stderr, "fatal: opening audit log:", err)
		return exitFatal
	}
	defer log.Close()

	console := report.NewConsole(stdout, log, opts.NoColor)
	console.Info(fmt.Sprintf("security posture check, environment %s, root %s", env, cfg.Root))

	var counted []issue.Issue

	// Integrity.
	console.Section("file integrity")
	integrityIssues := integrity.MalformedIssues(malformed)
	integrityIssues = append(integrityIssues, integrity.Check(entries, cfg.Root, d.hasher)...)
	counted = append(counted, emit(console, integrityIssues, fmt.Sprintf("%d baselined files verified", len(entries)))...)

	// Permissions.
	console.Section("permissions")
	counted = append(counted, emit(console, perms.Audit(pol, cfg.Root, d.reader), "all policy paths match")...)

	// Ownership.
	console.Section("ownership")
	if pol.Owner == nil {
		console.Info("ownership not enforced in " + string(env))
	} else {
		counted = append(counted, emit(console, ownership.Audit(pol, cfg, d.reader), "all sensitive files owned by "+pol.Owner.User+":"+pol.Owner.Group)...)
	}

	// Anomalies.
	console.Section("anomalies")
	scanner := anomaly.Scanner{Procs: d.procs, Audit: d.events}
	anomalyIssues, events := scanner.Scan(cfg)
	counted = append(counted, emit(console, anomalyIssues, "no anomalous artifacts or processes")...)
	if len(events) > 0 {
		log.AppendRaw(events)
	}

	// Resources.
	console.Section("resources")
	res := resource.Check(cfg, d.procs, d.disk)
	console.Info(fmt.Sprintf("project size %d bytes, filesystem %.1f%% used", res.DirBytes, res.UsedPercent))
	counted = append(counted, emit(console, res.Issues, "disk headroom ok")...)
	if res.Liveness != nil {
		// Reported, never counted.
		console.Issue(*res.Liveness)
	}

	rep := report.Build(string(env), counted, res.Liveness)

	if path, err := report.AppendArtifact(cfg.ReportsDir, rep); err != nil {
		fmt.Fprintln(stderr, "Error: writing report artifact:", err)
	} else {
		console.Info("report appended to " + path)
	}
	log.Append(report.FormatBlock(rep))

	console.Banner(rep)

	if opts.JSONOutput {
		if data, err := rep.ToJSON(); err == nil {
			fmt.Fprintln(stdout, string(data))
		}
	}

	if rep.Passed() {
		return exitSecure
	}
	return exitIssues
}

// emit prints each issue as it is discovered, or an all-clear line when a
// checker found nothing, and returns the issues for counting.
func emit(console *report.Console, issues []issue.Issue, okMsg string) []issue.Issue {
	if len(issues) == 0 {
		console.OK(okMsg)
		return nil
	}
	for _, is := range issues {
		console.Issue(is)
	}
	return issues
}

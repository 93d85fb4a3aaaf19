// Package resource checks disk headroom and bot-process liveness.
package resource

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"botguard/internal/config"
	"botguard/internal/issue"
	"botguard/internal/procs"

	"github.com/shirou/gopsutil/v4/disk"
)

// Disk usage thresholds, in percent of the filesystem used.
const (
	criticalPercent = 90.0
	warningPercent  = 80.0
)

// DiskUsager reports the used-space percentage of the filesystem holding a
// path.
type DiskUsager interface {
	UsedPercent(path string) (float64, error)
}

// GopsutilDisk stats the real filesystem.
type GopsutilDisk struct{}

func (GopsutilDisk) UsedPercent(path string) (float64, error) {
	u, err := disk.Usage(path)
	if err != nil {
		return 0, err
	}
	return u.UsedPercent, nil
}

// Result separates what counts from what does not. Issues holds the disk
// issues, which count toward the run total. Liveness holds the
// bot-not-running warning, which is reported but never counted: liveness
// is informational, not a security deviation. DirBytes and UsedPercent are
// surfaced as console info lines.
type Result struct {
	Issues      []issue.Issue
	Liveness    *issue.Issue
	DirBytes    int64
	UsedPercent float64
}

// Check computes the project directory size, thresholds the filesystem
// usage and checks for a process matching the bot invocation pattern.
func Check(cfg config.Config, lister procs.ProcessLister, du DiskUsager) Result {
	res := Result{DirBytes: dirSize(cfg.Root)}

	pct, err := du.UsedPercent(cfg.Root)
	if err == nil {
		res.UsedPercent = pct
		switch {
		case pct >= criticalPercent:
			res.Issues = append(res.Issues, issue.New(
				issue.DiskCritical,
				issue.SeverityError,
				cfg.Root,
				fmt.Sprintf("filesystem %.1f%% used", pct),
			))
		case pct >= warningPercent:
			res.Issues = append(res.Issues, issue.New(
				issue.DiskWarning,
				issue.SeverityWarning,
				cfg.Root,
				fmt.Sprintf("filesystem %.1f%% used", pct),
			))
		}
	}

	if !botRunning(cfg, lister) {
		is := issue.New(
			issue.ProcessAnomaly,
			issue.SeverityWarning,
			"",
			fmt.Sprintf("no running process matches %q", cfg.BotPattern),
		)
		res.Liveness = &is
	}

	return res
}

// botRunning reports whether any process cmdline contains the bot pattern.
// A lister failure counts as running: liveness is informational and must
// not produce false alarms on a degraded host.
func botRunning(cfg config.Config, lister procs.ProcessLister) bool {
	list, err := lister.Processes()
	if err != nil {
		return true
	}
	for _, p := range list {
		if strings.Contains(p.Cmdline, cfg.BotPattern) {
			return true
		}
	}
	return false
}

// dirSize sums regular file sizes under root. Unreadable entries are
// skipped; the figure is informational only.
func dirSize(root string) int64 {
	var total int64
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.Type().IsRegular() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			total += info.Size()
		}
		return nil
	})
	return total
}

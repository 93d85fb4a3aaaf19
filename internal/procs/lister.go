// Package procs snapshots the process table. The anomaly scanner and the
// resource monitor share one ProcessLister capability; tests inject fakes.
package procs

import "github.com/shirou/gopsutil/v4/process"

// Process is one process-table entry.
type Process struct {
	PID     int32
	Name    string
	Cmdline string
}

// ProcessLister returns a point-in-time snapshot of running processes.
type ProcessLister interface {
	Processes() ([]Process, error)
}

// OSProcessLister reads the live process table via gopsutil.
type OSProcessLister struct{}

// Processes lists running processes. Entries whose name or cmdline cannot
// be read (racing exits, permission) are skipped, not errors.
func (OSProcessLister) Processes() ([]Process, error) {
	list, err := process.Processes()
	if err != nil {
		return nil, err
	}

	out := make([]Process, 0, len(list))
	for _, p := range list {
		name, err := p.Name()
		if err != nil {
			continue
		}
		cmdline, err := p.Cmdline()
		if err != nil {
			continue
		}
		out = append(out, Process{PID: p.Pid, Name: name, Cmdline: cmdline})
	}
	return out, nil
}

package report

import (
	"fmt"
	"io"

	"botguard/internal/audit"
	"botguard/internal/issue"

	"github.com/fatih/color"
)

// Console writes severity-colored lines to the terminal in real time and
// mirrors every line, uncolored, into the audit log.
type Console struct {
	out     io.Writer
	log     *audit.Log
	noColor bool

	red    *color.Color
	yellow *color.Color
	green  *color.Color
	cyan   *color.Color
}

// NewConsole builds a console writer. log may be nil in tests.
func NewConsole(out io.Writer, log *audit.Log, noColor bool) *Console {
	return &Console{
		out:     out,
		log:     log,
		noColor: noColor,
		red:     color.New(color.FgRed),
		yellow:  color.New(color.FgYellow),
		green:   color.New(color.FgGreen),
		cyan:    color.New(color.FgCyan),
	}
}

// Section announces a checker before its results stream out.
func (c *Console) Section(name string) {
	c.write(c.cyan, fmt.Sprintf("--- %s ---", name))
}

// Issue prints one issue line as it is discovered.
func (c *Console) Issue(is issue.Issue) {
	subject := is.Detail
	if is.Path != "" {
		subject = is.Path + ": " + is.Detail
	}
	line := fmt.Sprintf("%s %s", label(is.Severity), subject)
	c.write(colorFor(c, is.Severity), line)
}

// OK prints a green all-clear line for a checker.
func (c *Console) OK(msg string) {
	c.write(c.green, "[ OK ] "+msg)
}

// Info prints an informational line.
func (c *Console) Info(msg string) {
	c.write(c.cyan, "[INFO] "+msg)
}

// Banner prints the single final pass/fail line.
func (c *Console) Banner(r Report) {
	if r.Passed() {
		c.write(c.green, fmt.Sprintf("PASS: environment %s secure, 0 issues", r.Environment))
		return
	}
	c.write(c.red, fmt.Sprintf("FAIL: environment %s, %d issues found", r.Environment, r.Total))
}

func (c *Console) write(col *color.Color, line string) {
	if c.noColor {
		fmt.Fprintln(c.out, line)
	} else {
		col.Fprintln(c.out, line)
	}
	if c.log != nil {
		c.log.Append(line)
	}
}

func label(sev issue.Severity) string {
	switch sev {
	case issue.SeverityError:
		return "[FAIL]"
	case issue.SeverityWarning:
		return "[WARN]"
	case issue.SeveritySuccess:
		return "[ OK ]"
	default:
		return "[INFO]"
	}
}

func colorFor(c *Console, sev issue.Severity) *color.Color {
	switch sev {
	case issue.SeverityError:
		return c.red
	case issue.SeverityWarning:
		return c.yellow
	case issue.SeveritySuccess:
		return c.green
	default:
		return c.cyan
	}
}

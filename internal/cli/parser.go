// Package cli parses the command line: one optional positional environment
// argument plus a small set of flags.
package cli

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingFlagValue is returned when a flag requires a value but none follows.
var ErrMissingFlagValue = errors.New("flag requires a value")

// ErrTooManyArgs is returned when more than one positional argument is given.
var ErrTooManyArgs = errors.New("too many arguments: usage: botguard [flags] [environment]")

// Options represents the parsed CLI input.
type Options struct {
	Environment string // Positional; empty means the default environment

	Root       string // --root <dir>
	ReportsDir string // --reports <dir>, empty means <root>/reports
	NoColor    bool   // --no-color
	JSONOutput bool   // --json
}

// ParseArgs parses os.Args[1:]. Flags may appear before or after the
// environment argument.
func ParseArgs(args []string) (Options, error) {
	opts := Options{Root: "."}

	i := 0
	for i < len(args) {
		arg := args[i]

		if !strings.HasPrefix(arg, "--") {
			if opts.Environment != "" {
				return Options{}, ErrTooManyArgs
			}
			opts.Environment = arg
			i++
			continue
		}

		switch arg {
		case "--root":
			if i+1 >= len(args) {
				return Options{}, fmt.Errorf("%w: %s", ErrMissingFlagValue, arg)
			}
			opts.Root = args[i+1]
			i += 2
		case "--reports":
			if i+1 >= len(args) {
				return Options{}, fmt.Errorf("%w: %s", ErrMissingFlagValue, arg)
			}
			opts.ReportsDir = args[i+1]
			i += 2
		case "--no-color":
			opts.NoColor = true
			i++
		case "--json":
			opts.JSONOutput = true
			i++
		default:
			return Options{}, fmt.Errorf("unknown flag: %s", arg)
		}
	}

	return opts, nil
}

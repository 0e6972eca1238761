package cli

import (
	"errors"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/keebox/internal/keybox"
)

// Command defines the CLI command with unified help generation.
type Command struct {
	// Flags defines the command flags.
	Flags *flag.FlagSet

	// Usage is the freeform usage string shown after "keebox" in help.
	Usage string

	// Short is a one-line description.
	Short string

	// Long is the full description shown in help.
	// If empty, Short is used instead.
	Long string

	// Exec runs the command after flags are parsed.
	Exec func(o *IO, args []string) error
}

// PrintHelp prints the full help output to stdout.
func (c *Command) PrintHelp(o *IO) {
	c.printHelp(o.Println, o.Printf)
}

// printErrHelp prints the full help output to stderr.
func (c *Command) printErrHelp(o *IO) {
	c.printHelp(o.ErrPrintln, o.ErrPrintf)
}

func (c *Command) printHelp(writeln func(a ...any), writef func(format string, a ...any)) {
	writeln("Usage: keebox", c.Usage)
	writeln()

	desc := c.Long
	if desc == "" {
		desc = c.Short
	}

	writeln(desc)

	if c.Flags != nil && c.Flags.HasFlags() {
		writeln()
		writeln("Flags:")

		var buf strings.Builder
		c.Flags.SetOutput(&buf)
		c.Flags.PrintDefaults()
		writef("%s", buf.String())
	}
}

// Run parses flags and executes the command. Returns exit code.
// Handles error printing internally for consistent output ordering.
func (c *Command) Run(o *IO, args []string) int {
	c.Flags.SetOutput(&strings.Builder{}) // discard pflag output

	err := c.Flags.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(o)

			return 0
		}

		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		c.printErrHelp(o)

		return 1
	}

	err = c.Exec(o, c.Flags.Args())
	if err != nil {
		o.ErrPrintln("error:", err)

		if errors.Is(err, keybox.ErrUsage) {
			o.ErrPrintln()
			c.printErrHelp(o)
		}

		return 1
	}

	return o.Finish()
}

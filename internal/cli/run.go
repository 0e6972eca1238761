package cli

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/keebox/internal/fs"
	"github.com/calvinalkan/keebox/internal/keybox"
)

const positionalArgs = 2

const longHelp = `Print the value stored under <key> in the JSON keybox <file>.

If stdin is a terminal, nothing else happens. If stdin is piped:
  - empty input deletes <key>
  - any other input is trimmed and stored as the new value of <key>

The previous value is always printed first, without a trailing newline.
A missing key prints "other".

Config is read from $XDG_CONFIG_HOME/keebox/config.json
(or ~/.config/keebox/config.json) and from --config:
  {"indent": "  "}

Examples:
  keebox secrets.json api-token                  # read
  echo "new-token" | keebox secrets.json api-token  # replace
  keebox secrets.json api-token < /dev/null      # delete`

// Run is the main entry point. Returns exit code.
func Run(stdin io.Reader, stdout, stderr io.Writer, args []string, env map[string]string) int {
	return RunWithFS(fs.NewReal(), stdin, stdout, stderr, args, env)
}

// RunWithFS is [Run] with the filesystem injected.
func RunWithFS(fsys fs.FS, stdin io.Reader, stdout, stderr io.Writer, args []string, env map[string]string) int {
	o := NewIO(stdout, stderr)

	if len(args) > 0 {
		args = args[1:]
	}

	return newCommand(fsys, stdin, env).Run(o, args)
}

func newCommand(fsys fs.FS, stdin io.Reader, env map[string]string) *Command {
	flags := flag.NewFlagSet("keebox", flag.ContinueOnError)
	configPath := flags.StringP("config", "c", "", "Use specified config file")
	printConfig := flags.Bool("print-config", false, "Show resolved configuration and exit")

	return &Command{
		Flags: flags,
		Usage: "[flags] <file> <key>",
		Short: "Read, replace or delete one value in a JSON keybox",
		Long:  longHelp,
		Exec: func(o *IO, args []string) error {
			// Usage errors are reported before any file is touched.
			var file, key string

			if !*printConfig {
				var err error

				file, key, err = resolveArgs(args)
				if err != nil {
					return err
				}
			}

			cfg, err := keybox.LoadConfig(keybox.LoadConfigInput{
				FS:         fsys,
				ConfigPath: *configPath,
				Env:        env,
			})
			if err != nil {
				return err
			}

			if *printConfig {
				return execPrintConfig(o, cfg)
			}

			return execTransaction(o, fsys, cfg, file, key, newStdinInput(stdin))
		},
	}
}

// resolveArgs validates the positional arguments.
func resolveArgs(args []string) (string, string, error) {
	if len(args) > positionalArgs {
		return "", "", fmt.Errorf("%w: %w: %s", keybox.ErrUsage, keybox.ErrTooManyArgs, strings.Join(args[positionalArgs:], " "))
	}

	if len(args) < 1 || args[0] == "" {
		return "", "", fmt.Errorf("%w: %w", keybox.ErrUsage, keybox.ErrFileRequired)
	}

	if len(args) < positionalArgs || args[1] == "" {
		return "", "", fmt.Errorf("%w: %w", keybox.ErrUsage, keybox.ErrKeyRequired)
	}

	return args[0], args[1], nil
}

// execTransaction runs load, apply and save. The first failure aborts the
// remaining stages.
func execTransaction(o *IO, fsys fs.FS, cfg keybox.Config, file, key string, stdin keybox.Input) error {
	store := keybox.NewStore(fsys, file, keybox.StoreOptions{Indent: cfg.Indent})

	kb, err := store.Load()
	if err != nil {
		return err
	}

	_, hadKey := kb[key]

	outcome, err := keybox.Apply(kb, key, o.Out(), stdin)
	if err != nil {
		return err
	}

	if !outcome.Mutates() {
		return nil
	}

	err = store.Save(kb)
	if err != nil {
		return err
	}

	if outcome == keybox.Upsert && kb[key] == "" {
		o.Warn("input for %q was only whitespace, stored an empty value (pipe no bytes to delete the key)", key)
	}

	if outcome == keybox.Delete && !hadKey {
		o.Warn("key %q was not present, nothing deleted", key)
	}

	return nil
}

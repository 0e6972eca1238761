// Package main provides keebox, a minimal CLI to read, replace or delete one
// value in a JSON keybox file.
package main

import (
	"os"
	"strings"

	"github.com/calvinalkan/keebox/internal/cli"
)

func main() {
	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	exitCode := cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args, env)

	os.Exit(exitCode)
}

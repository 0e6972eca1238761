package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/calvinalkan/keebox/internal/fs"
)

// CLI provides a clean interface for running keebox in tests.
// It manages a temp directory and an isolated environment.
type CLI struct {
	t   *testing.T
	Dir string
	Env map[string]string

	// FS is the filesystem passed to [RunWithFS]. Defaults to [fs.Real].
	FS fs.FS
}

// NewCLI creates a new test CLI with a temp directory.
// XDG_CONFIG_HOME points into the temp directory so no user config is read.
func NewCLI(t *testing.T) *CLI {
	t.Helper()

	dir := t.TempDir()

	return &CLI{
		t:   t,
		Dir: dir,
		Env: map[string]string{"XDG_CONFIG_HOME": filepath.Join(dir, ".config")},
		FS:  fs.NewReal(),
	}
}

// Run executes keebox with an interactive (nil) stdin and returns stdout, stderr, and exit code.
// Args should not include "keebox" - it is added automatically.
func (r *CLI) Run(args ...string) (string, string, int) {
	return r.run(nil, args)
}

// RunWithInput executes keebox with piped stdin and returns stdout, stderr, and exit code.
// stdin must be a string, []byte or io.Reader; panics otherwise.
func (r *CLI) RunWithInput(stdin any, args ...string) (string, string, int) {
	var inReader io.Reader

	switch v := stdin.(type) {
	case string:
		inReader = strings.NewReader(v)
	case []byte:
		inReader = bytes.NewReader(v)
	case io.Reader:
		inReader = v
	default:
		panic(fmt.Sprintf("stdin must be string, []byte or io.Reader, got %T", stdin))
	}

	return r.run(inReader, args)
}

func (r *CLI) run(stdin io.Reader, args []string) (string, string, int) {
	var outBuf, errBuf bytes.Buffer

	fullArgs := append([]string{"keebox"}, args...)
	code := RunWithFS(r.FS, stdin, &outBuf, &errBuf, fullArgs, r.Env)

	return outBuf.String(), errBuf.String(), code
}

// MustRun executes keebox and fails the test if the command returns non-zero.
// Returns stdout unmodified.
func (r *CLI) MustRun(args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(args...)
	if code != 0 {
		r.t.Fatalf("command %v failed with exit code %d\nstderr: %s", args, code, stderr)
	}

	return stdout
}

// MustFail executes keebox and fails the test if the command succeeds.
// Returns trimmed stderr.
func (r *CLI) MustFail(args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(args...)
	if code == 0 {
		r.t.Fatalf("command %v should have failed but succeeded\nstdout: %s", args, stdout)
	}

	return strings.TrimSpace(stderr)
}

// KeyboxPath returns the path of the default test keybox file.
func (r *CLI) KeyboxPath() string {
	return filepath.Join(r.Dir, "keys.json")
}

// WriteKeybox writes content to the default test keybox file and returns its path.
func (r *CLI) WriteKeybox(content string) string {
	r.t.Helper()

	path := r.KeyboxPath()

	err := os.WriteFile(path, []byte(content), 0o600)
	if err != nil {
		r.t.Fatalf("failed to write keybox: %v", err)
	}

	return path
}

// ReadKeybox returns the content of the default test keybox file.
func (r *CLI) ReadKeybox() string {
	r.t.Helper()

	content, err := os.ReadFile(r.KeyboxPath())
	if err != nil {
		r.t.Fatalf("failed to read keybox: %v", err)
	}

	return string(content)
}

// WriteFile writes content to path, creating parent directories.
func (r *CLI) WriteFile(path, content string) {
	r.t.Helper()

	err := os.MkdirAll(filepath.Dir(path), 0o750)
	if err != nil {
		r.t.Fatalf("failed to create dir: %v", err)
	}

	err = os.WriteFile(path, []byte(content), 0o600)
	if err != nil {
		r.t.Fatalf("failed to write %s: %v", path, err)
	}
}

// WriteConfig writes content to the global config file.
func (r *CLI) WriteConfig(content string) string {
	r.t.Helper()

	path := filepath.Join(r.Env["XDG_CONFIG_HOME"], "keebox", "config.json")
	r.WriteFile(path, content)

	return path
}

// AssertContains fails the test if content doesn't contain substr.
func AssertContains(t *testing.T, content, substr string) {
	t.Helper()

	if !strings.Contains(content, substr) {
		t.Errorf("content should contain %q\ncontent:\n%s", substr, content)
	}
}

// AssertNotContains fails the test if content contains substr.
func AssertNotContains(t *testing.T, content, substr string) {
	t.Helper()

	if strings.Contains(content, substr) {
		t.Errorf("content should NOT contain %q\ncontent:\n%s", substr, content)
	}
}

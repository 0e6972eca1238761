package cli

import (
	"io"

	"github.com/mattn/go-isatty"

	"github.com/calvinalkan/keebox/internal/keybox"
)

// stdinInput adapts the process stdin to [keybox.Input].
type stdinInput struct {
	r io.Reader
}

// newStdinInput returns nil for a nil reader, which [keybox.Apply] treats as
// interactive.
func newStdinInput(r io.Reader) keybox.Input {
	if r == nil {
		return nil
	}

	return stdinInput{r: r}
}

func (s stdinInput) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

// Interactive reports whether stdin is a terminal. Readers without a file
// descriptor are always piped input.
func (s stdinInput) Interactive() bool {
	f, ok := s.r.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	fd := f.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

package cli

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStdinInput_NilIsNil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, newStdinInput(nil))
}

func TestStdinInput_ReaderIsPiped(t *testing.T) {
	t.Parallel()

	in := newStdinInput(strings.NewReader("value"))
	require.NotNil(t, in)
	assert.False(t, in.Interactive())

	data, err := io.ReadAll(in)
	require.NoError(t, err)
	assert.Equal(t, "value", string(data))
}

func TestStdinInput_PipeIsNotTerminal(t *testing.T) {
	t.Parallel()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})

	assert.False(t, newStdinInput(r).Interactive())
}

func TestStdinInput_RegularFileIsNotTerminal(t *testing.T) {
	t.Parallel()

	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)

	t.Cleanup(func() { _ = f.Close() })

	assert.False(t, newStdinInput(f).Interactive())
}

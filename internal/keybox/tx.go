package keybox

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Outcome is the effect a transaction had on the keybox.
type Outcome int

const (
	// ReadOnly means stdin was a terminal; the keybox was not touched.
	ReadOnly Outcome = iota
	// Delete means stdin was piped but empty; the key was removed.
	Delete
	// Upsert means stdin carried a value; the key was inserted or overwritten.
	Upsert
)

func (o Outcome) String() string {
	switch o {
	case ReadOnly:
		return "read-only"
	case Delete:
		return "delete"
	case Upsert:
		return "upsert"
	default:
		return "unknown"
	}
}

// Mutates reports whether the keybox must be persisted after this outcome.
func (o Outcome) Mutates() bool {
	return o == Delete || o == Upsert
}

// Input is the standard input of a transaction.
type Input interface {
	io.Reader

	// Interactive reports whether the input is attached to a terminal.
	// Interactive input is never read.
	Interactive() bool
}

// Apply runs the single-key transaction against kb.
//
// The current value of key (or [Placeholder]) is written to stdout first,
// unconditionally. Then:
//   - interactive stdin: [ReadOnly], stdin is not read
//   - piped stdin with zero bytes: [Delete], key is removed if present
//   - piped stdin with any bytes: [Upsert], key is set to the input with
//     leading and trailing whitespace trimmed
//
// The emptiness check runs on the raw bytes, so whitespace-only input stores
// an empty string rather than deleting the key.
//
// kb is mutated in place. On error kb is unchanged, but the current value
// has already been written to stdout.
func Apply(kb Keybox, key string, stdout io.Writer, stdin Input) (Outcome, error) {
	_, err := io.WriteString(stdout, kb.Lookup(key))
	if err != nil {
		return ReadOnly, &IOError{Op: "write", Path: StdoutName, Err: err}
	}

	if stdin == nil || stdin.Interactive() {
		return ReadOnly, nil
	}

	input, err := io.ReadAll(stdin)
	if err != nil {
		return ReadOnly, &IOError{Op: "read", Path: StdinName, Err: err}
	}

	if len(input) == 0 {
		delete(kb, key)

		return Delete, nil
	}

	if !utf8.Valid(input) {
		return ReadOnly, &FormatError{Reason: reasonInvalidInput, Err: ErrInvalidUTF8}
	}

	kb[key] = strings.TrimSpace(string(input))

	return Upsert, nil
}

// Package keybox implements a flat JSON string-to-string store kept in a
// single file, and the one-key transaction that reads, replaces or deletes a
// value in it.
//
// An invocation is a straight pipeline:
//
//	store := keybox.NewStore(fs.NewReal(), path, keybox.StoreOptions{})
//	kb, err := store.Load()
//	outcome, err := keybox.Apply(kb, key, stdout, stdin)
//	if outcome.Mutates() {
//	    err = store.Save(kb)
//	}
//
// Nothing is cached between invocations; the file is the only state.
package keybox

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// Keybox maps key names to values. Keys are unique; order carries no meaning.
type Keybox map[string]string

// DefaultIndent is the indentation used when encoding a keybox.
const DefaultIndent = "  "

// Placeholder is emitted for a key that is not in the keybox. It is not
// configurable.
const Placeholder = "other"

// Decode parses data as a single JSON object whose values are all strings.
//
// Errors wrap [ErrContentNotUTF8], [ErrNotObject] or [ErrNonStringValue] where
// applicable, or the [encoding/json] syntax error otherwise.
func Decode(data []byte) (Keybox, error) {
	// encoding/json would replace invalid bytes with U+FFFD, and a later
	// Encode would persist the replacement.
	if !utf8.Valid(data) {
		return nil, ErrContentNotUTF8
	}

	var raw map[string]json.RawMessage

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return nil, err
	}

	// "null" decodes into a nil map without error.
	if raw == nil {
		return nil, ErrNotObject
	}

	kb := make(Keybox, len(raw))

	for key, value := range raw {
		if len(value) == 0 || value[0] != '"' {
			return nil, fmt.Errorf("%w: key %q", ErrNonStringValue, key)
		}

		var s string

		unmarshalErr := json.Unmarshal(value, &s)
		if unmarshalErr != nil {
			return nil, fmt.Errorf("key %q: %w", key, unmarshalErr)
		}

		kb[key] = s
	}

	return kb, nil
}

// Encode renders kb as indented JSON with sorted keys and a trailing newline.
// HTML characters are written as-is. An empty indent means [DefaultIndent].
func Encode(kb Keybox, indent string) ([]byte, error) {
	if indent == "" {
		indent = DefaultIndent
	}

	// A nil map must still encode as an object.
	if kb == nil {
		kb = Keybox{}
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)

	err := enc.Encode(map[string]string(kb))
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Lookup returns the value stored under key, or [Placeholder] if key is absent.
func (kb Keybox) Lookup(key string) string {
	if value, ok := kb[key]; ok {
		return value
	}

	return Placeholder
}

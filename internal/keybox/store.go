package keybox

import (
	"github.com/calvinalkan/keebox/internal/fs"
)

// StoreOptions configures a [Store].
type StoreOptions struct {
	// Indent is the per-level indentation of the written file.
	// Empty means [DefaultIndent].
	Indent string
}

// Store loads and persists the keybox kept at one path.
type Store struct {
	fs     fs.FS
	path   string
	indent string
}

// NewStore returns a Store for the keybox file at path.
// Panics if fsys is nil.
func NewStore(fsys fs.FS, path string, opts StoreOptions) *Store {
	if fsys == nil {
		panic("fs is nil")
	}

	return &Store{fs: fsys, path: path, indent: opts.Indent}
}

// Load reads and decodes the keybox file.
//
// A missing or unreadable file is an [*IOError]; content that is not a UTF-8
// JSON object of strings is a [*FormatError].
func (s *Store) Load() (Keybox, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: s.path, Err: err}
	}

	kb, err := Decode(data)
	if err != nil {
		return nil, &FormatError{Reason: reasonMalformed, Path: s.path, Err: err}
	}

	return kb, nil
}

// Save replaces the keybox file with the encoded kb.
//
// The write is atomic: on error the previous file content is left as it was.
func (s *Store) Save(kb Keybox) error {
	data, err := Encode(kb, s.indent)
	if err != nil {
		return &FormatError{Reason: reasonSerialization, Err: err}
	}

	err = s.fs.WriteFileAtomic(s.path, data)
	if err != nil {
		return &IOError{Op: "write", Path: s.path, Err: err}
	}

	return nil
}

// Package fs provides the filesystem abstraction used by the keybox store.
//
// The main types are:
//   - [FS]: interface for the filesystem operations keebox performs
//   - [Real]: production implementation using [os] and atomic writes
//   - [Chaos]: testing implementation that injects failures
//
// Example usage:
//
//	fsys := fs.NewReal()
//	data, err := fsys.ReadFile("secrets.json")
//	if err != nil {
//	    return err
//	}
//
//	err = fsys.WriteFileAtomic("secrets.json", updated)
package fs

// FS defines the filesystem operations needed to load and persist a keybox.
//
// Two implementations are provided:
//   - [Real]: production use, wraps [os] package
//   - [Chaos]: testing use, injects failures
type FS interface {
	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// WriteFileAtomic replaces the contents of path with data.
	// Uses a temp file + rename, so readers observe either the old
	// or the new content, never a partial write. A symlinked path
	// replaces the link target and leaves the link in place.
	WriteFileAtomic(path string, data []byte) error

	// Exists reports whether a file or directory exists.
	// Returns (false, nil) if not found, (false, err) on other errors.
	Exists(path string) (bool, error)
}

package fs

import (
	"io/fs"
	"math/rand"
	"sync"
	"sync/atomic"
	"syscall"
)

// ChaosConfig controls fault injection probabilities.
// Each rate is a float64 from 0.0 (never) to 1.0 (always).
type ChaosConfig struct {
	ReadFailRate    float64 // Fail ReadFile entirely
	PartialReadRate float64 // Return truncated data from ReadFile
	WriteFailRate   float64 // Fail WriteFileAtomic before touching the target
	StatFailRate    float64 // Fail Exists
}

// PathState tracks the fault state of a path for consistent error injection.
type PathState int

const (
	// PathNormal means no persistent fault. Zero value, so untracked paths are normal.
	PathNormal PathState = iota
	// PathIOError is sticky: every operation on the path returns EIO.
	PathIOError
	// PathReadOnly is sticky for writes: WriteFileAtomic returns EROFS, reads still work.
	PathReadOnly
)

// ChaosMode controls how Chaos behaves.
type ChaosMode uint8

const (
	// ChaosModePassthrough behaves like the underlying FS and ignores sticky state.
	ChaosModePassthrough ChaosMode = iota

	// ChaosModeInject enables fault-rate injection and sticky path state.
	ChaosModeInject

	// ChaosModeStickyOnly applies only sticky path state. Fault rates are disabled.
	ChaosModeStickyOnly
)

// Chaos wraps an [FS] and injects failures for testing.
//
// All injected errors are real OS errors (syscall.Errno wrapped in
// *fs.PathError) so they behave like real filesystem errors under errors.Is.
// Use [IsInjected] to tell them apart from genuine failures.
//
// A failed WriteFileAtomic never modifies the target, matching the guarantee
// of [Real.WriteFileAtomic].
type Chaos struct {
	fs     FS
	rng    *rand.Rand
	config ChaosConfig
	mode   atomic.Uint32

	mu         sync.Mutex
	pathStates map[string]PathState

	readFails    atomic.Int64
	partialReads atomic.Int64
	writeFails   atomic.Int64
	statFails    atomic.Int64
}

// NewChaos creates a new Chaos filesystem wrapping the given [FS].
// The seed controls random fault injection for reproducibility.
// The returned Chaos starts in [ChaosModeInject].
func NewChaos(fsys FS, seed int64, config ChaosConfig) *Chaos {
	c := &Chaos{
		fs:         fsys,
		rng:        rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic test faults
		config:     config,
		pathStates: make(map[string]PathState),
	}
	c.SetMode(ChaosModeInject)

	return c
}

// SetMode switches between passthrough, injecting and sticky-only behavior.
func (c *Chaos) SetMode(m ChaosMode) { c.mode.Store(uint32(m)) }

// SetPathState marks path with a sticky fault.
func (c *Chaos) SetPathState(path string, state PathState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if state == PathNormal {
		delete(c.pathStates, path)
	} else {
		c.pathStates[path] = state
	}
}

// ChaosStats holds counters of injected faults.
type ChaosStats struct {
	ReadFails    int64
	PartialReads int64
	WriteFails   int64
	StatFails    int64
}

// Stats returns the number of faults injected so far.
func (c *Chaos) Stats() ChaosStats {
	return ChaosStats{
		ReadFails:    c.readFails.Load(),
		PartialReads: c.partialReads.Load(),
		WriteFails:   c.writeFails.Load(),
		StatFails:    c.statFails.Load(),
	}
}

func (c *Chaos) ReadFile(path string) ([]byte, error) {
	mode := ChaosMode(c.mode.Load())
	if mode == ChaosModePassthrough {
		return c.fs.ReadFile(path)
	}

	if c.getState(path) == PathIOError {
		c.readFails.Add(1)

		return nil, pathError("read", path, syscall.EIO)
	}

	if c.should(mode, c.config.ReadFailRate) {
		c.readFails.Add(1)

		return nil, pathError("read", path, c.pickRandom([]syscall.Errno{syscall.EIO, syscall.EACCES}))
	}

	data, err := c.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if c.should(mode, c.config.PartialReadRate) && len(data) > 1 {
		c.partialReads.Add(1)
		cutoff := c.randIntn(len(data)-1) + 1

		return data[:cutoff], nil
	}

	return data, nil
}

func (c *Chaos) WriteFileAtomic(path string, data []byte) error {
	mode := ChaosMode(c.mode.Load())
	if mode == ChaosModePassthrough {
		return c.fs.WriteFileAtomic(path, data)
	}

	switch c.getState(path) {
	case PathIOError:
		c.writeFails.Add(1)

		return pathError("write", path, syscall.EIO)
	case PathReadOnly:
		c.writeFails.Add(1)

		return pathError("write", path, syscall.EROFS)
	case PathNormal:
	}

	if c.should(mode, c.config.WriteFailRate) {
		c.writeFails.Add(1)

		return pathError("write", path, c.pickRandom([]syscall.Errno{syscall.EIO, syscall.ENOSPC, syscall.EACCES}))
	}

	return c.fs.WriteFileAtomic(path, data)
}

func (c *Chaos) Exists(path string) (bool, error) {
	mode := ChaosMode(c.mode.Load())
	if mode == ChaosModePassthrough {
		return c.fs.Exists(path)
	}

	if c.getState(path) == PathIOError || c.should(mode, c.config.StatFailRate) {
		c.statFails.Add(1)

		return false, pathError("stat", path, syscall.EIO)
	}

	return c.fs.Exists(path)
}

// should returns true with the given probability when chaos is injecting.
func (c *Chaos) should(mode ChaosMode, rate float64) bool {
	if mode != ChaosModeInject || rate <= 0 {
		return false
	}

	c.mu.Lock()
	result := c.rng.Float64()
	c.mu.Unlock()

	return result < rate
}

// randIntn returns a random int in [0, n) (thread-safe).
func (c *Chaos) randIntn(n int) int {
	c.mu.Lock()
	result := c.rng.Intn(n)
	c.mu.Unlock()

	return result
}

func (c *Chaos) pickRandom(errs []syscall.Errno) syscall.Errno {
	return errs[c.randIntn(len(errs))]
}

func (c *Chaos) getState(path string) PathState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.pathStates[path]
}

// pathError creates an *fs.PathError with the given operation, path, and errno.
// This matches what the real OS returns, so errors.Is() works correctly.
func pathError(op, path string, errno syscall.Errno) error {
	pe := &fs.PathError{Op: op, Path: path, Err: errno}
	markInjectedPathError(pe)

	return pe
}

// Compile-time interface check.
var _ FS = (*Chaos)(nil)

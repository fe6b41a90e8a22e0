// Package generr defines the error kinds the generation engine raises,
// distinguishing initialization failures (which abort before any record is
// emitted) from worker failures (which abort the run after the first one is
// observed) and InvalidRecord, which never escapes a worker.
package generr

import "fmt"

// ConfigError signals a malformed configuration: a missing key, an
// out-of-range scaling factor, a duplicate registration, or an unknown
// output type. Raised during initialization.
type ConfigError struct {
	Key    string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("config: %s", e.Reason)
	}
	return fmt.Sprintf("config: key %q: %s", e.Key, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func NewConfigError(key, reason string) *ConfigError {
	return &ConfigError{Key: key, Reason: reason}
}

// DataFormatError signals a histogram or enum-set file that violates its
// grammar. Line is 1-indexed; 0 means the error isn't tied to one line.
type DataFormatError struct {
	Path   string
	Line   int
	Reason string
}

func (e *DataFormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func NewDataFormatError(path string, line int, reason string) *DataFormatError {
	return &DataFormatError{Path: path, Line: line, Reason: reason}
}

// InvariantViolation signals probabilities that fail to normalise, an
// inverse requested on a non-invertible setter, a predicate bound twice, or
// a reference cycle detected via a missing inspector. It marks the
// originating worker task as failed.
type InvariantViolation struct {
	Reason string
}

func (e *InvariantViolation) Error() string { return "invariant violation: " + e.Reason }

func NewInvariantViolation(reason string) *InvariantViolation {
	return &InvariantViolation{Reason: reason}
}

// IoError signals that an output sink failed to open or write.
type IoError struct {
	Op   string
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("io: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }

func NewIoError(op, path string, err error) *IoError {
	return &IoError{Op: op, Path: path, Err: err}
}

// InvalidRecord is the non-fatal control-flow signal raised when a child
// sequence's evaluation finds its position in the "black" tail of a parent
// block (spec.md §4.6). It is returned, never panicked, and is recovered
// locally by the stage iterator via NextValidGenID — it must never escape a
// worker task.
type InvalidRecord struct {
	CurrentGenID      uint64
	MaxChildren       uint64
	CurrentPeriodSize uint64
	NextValidGenID    uint64
}

func (e *InvalidRecord) Error() string {
	return fmt.Sprintf("invalid record at gen_id %d (period size %d of %d); next valid gen_id %d",
		e.CurrentGenID, e.CurrentPeriodSize, e.MaxChildren, e.NextValidGenID)
}

// NewInvalidRecord computes NextValidGenID = ceil((currentGenID+1)/maxChildren) * maxChildren
// (spec.md §4.6).
func NewInvalidRecord(currentGenID, maxChildren, currentPeriodSize uint64) *InvalidRecord {
	next := ((currentGenID + 1 + maxChildren - 1) / maxChildren) * maxChildren
	return &InvalidRecord{
		CurrentGenID:      currentGenID,
		MaxChildren:       maxChildren,
		CurrentPeriodSize: currentPeriodSize,
		NextValidGenID:    next,
	}
}

// GenerationAborted is raised by the stage driver when any worker reports a
// fatal error; it carries the first error observed across all tasks.
type GenerationAborted struct {
	Stage string
	First error
}

func (e *GenerationAborted) Error() string {
	return fmt.Sprintf("generation aborted in stage %q: %v", e.Stage, e.First)
}

func (e *GenerationAborted) Unwrap() error { return e.First }

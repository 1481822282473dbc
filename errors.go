package fcweekly

import (
	"errors"
	"fmt"
)

// Sentinel errors callers branch on with errors.Is.
var (
	// ErrToolNotFound means no 7-Zip executable could be located.
	ErrToolNotFound = errors.New("7z executable not found")

	// ErrNoArchive means the download directory holds no matching archive.
	ErrNoArchive = errors.New("no matching archive")

	// ErrExecutableNotFound means no installed version provides the
	// expected executable entry point.
	ErrExecutableNotFound = errors.New("executable not found")
)

// InvalidVersionNameError is returned when a name does not contain exactly
// one well-formed YYYY.MM.DD date.
type InvalidVersionNameError struct {
	Name string
}

func (e *InvalidVersionNameError) Error() string {
	return fmt.Sprintf("%q does not contain exactly one YYYY.MM.DD date", e.Name)
}

// ExtractError is returned when the decompression engine fails. ExitCode is
// the engine's exit status, or -1 when it never ran.
type ExtractError struct {
	Archive  string
	ExitCode int
	Err      error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extracting %s failed (exit code %d): %v", e.Archive, e.ExitCode, e.Err)
}

func (e *ExtractError) Unwrap() error { return e.Err }

// RepairError is returned when flattening a nested extraction directory
// fails partway.
type RepairError struct {
	Dir string
	Err error
}

func (e *RepairError) Error() string {
	return fmt.Sprintf("repairing %s failed: %v", e.Dir, e.Err)
}

func (e *RepairError) Unwrap() error { return e.Err }

// ShortcutError is returned when writing the launcher shortcut fails. The
// orchestrator downgrades it to a warning.
type ShortcutError struct {
	Shortcut string
	Err      error
}

func (e *ShortcutError) Error() string {
	return fmt.Sprintf("writing shortcut %s failed: %v", e.Shortcut, e.Err)
}

func (e *ShortcutError) Unwrap() error { return e.Err }

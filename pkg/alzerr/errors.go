// Package alzerr classifies the ways opening or extracting an ALZ archive
// can fail. Parameterless failures are sentinel errors compared with
// errors.Is; failures carrying data (an offending byte, a CRC mismatch, a
// bad path) are small structs implementing error, unwrapping to an inner
// I/O error where one exists.
package alzerr

import (
	"errors"
	"fmt"
)

// Sentinel errors for the parameterless failure kinds.
var (
	// ErrNotAlzFile is returned when the first unrecognised signature is
	// seen before any ALZ\1 header has been read.
	ErrNotAlzFile = errors.New("alzkit: not an ALZ file")
	// ErrCorruptedFile covers an unrecognised signature after the ALZ\1
	// header, an impossible seek, or arithmetic overflow on a size field.
	ErrCorruptedFile = errors.New("alzkit: corrupted file")
	// ErrInvalidFilenameLength is returned when a local file entry's name
	// length is 0 or exceeds 4096 bytes.
	ErrInvalidFilenameLength = errors.New("alzkit: invalid filename length")
	// ErrPasswordNotSet is returned when an encrypted entry is extracted
	// without a password.
	ErrPasswordNotSet = errors.New("alzkit: password was not set")
	// ErrInvalidPassword is returned when the PKWARE header check fails.
	ErrInvalidPassword = errors.New("alzkit: invalid password")
)

// CantOpenFileError wraps an I/O failure opening a source volume file.
type CantOpenFileError struct {
	Path string
	Err  error
}

func (e *CantOpenFileError) Error() string {
	return fmt.Sprintf("alzkit: can't open archive file %q: %v", e.Path, e.Err)
}

func (e *CantOpenFileError) Unwrap() error { return e.Err }

// CantOpenDestFileError wraps an I/O failure writing to the extraction sink.
type CantOpenDestFileError struct {
	Path string
	Err  error
}

func (e *CantOpenDestFileError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("alzkit: can't write destination: %v", e.Err)
	}
	return fmt.Sprintf("alzkit: can't open dest file %q: %v", e.Path, e.Err)
}

func (e *CantOpenDestFileError) Unwrap() error { return e.Err }

// InvalidSizeFieldWidthError is returned when a descriptor byte's high
// nibble does not map to one of {0x00, 0x10, 0x20, 0x40, 0x80}.
type InvalidSizeFieldWidthError struct {
	Nibble byte
}

func (e *InvalidSizeFieldWidthError) Error() string {
	return fmt.Sprintf("alzkit: invalid size field width: 0x%02x", e.Nibble)
}

// UnknownCompressionMethodError is returned for a method byte outside
// {Store, BZip2, Deflate}.
type UnknownCompressionMethodError struct {
	Method byte
}

func (e *UnknownCompressionMethodError) Error() string {
	return fmt.Sprintf("alzkit: unknown compression method: %d", e.Method)
}

// InvalidFileCRCError is returned when the recomputed CRC-32 disagrees
// with the entry's declared value.
type InvalidFileCRCError struct {
	Expected uint32
	Got      uint32
}

func (e *InvalidFileCRCError) Error() string {
	return fmt.Sprintf("alzkit: invalid file CRC: expected %08x, got %08x", e.Expected, e.Got)
}

// InflateFailedError wraps a transitive DEFLATE decoder failure.
type InflateFailedError struct {
	Msg string
}

func (e *InflateFailedError) Error() string { return "alzkit: inflate failed: " + e.Msg }

// Bzip2FailedError wraps a transitive BZIP2 re-encode/decode failure other
// than the ignored fake block-CRC mismatch.
type Bzip2FailedError struct {
	Msg string
}

func (e *Bzip2FailedError) Error() string { return "alzkit: bzip2 decompress failed: " + e.Msg }

// PathTraversalError is raised by the extraction adapter, never by the
// core parser/extractor, when an entry name or symlink target would
// escape the destination root.
type PathTraversalError struct {
	Name string
}

func (e *PathTraversalError) Error() string {
	return fmt.Sprintf("alzkit: path traversal blocked: %q", e.Name)
}

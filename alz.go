// Package alzkit opens and extracts ALZ archives: a multi-volume, signature
// framed container format using PKWARE traditional encryption and a choice
// of Store, DEFLATE, or ALZ's own BZIP2 dialect for entry payloads.
package alzkit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bgrewell/alz-kit/pkg/alzerr"
	"github.com/bgrewell/alz-kit/pkg/container"
	"github.com/bgrewell/alz-kit/pkg/dostime"
	"github.com/bgrewell/alz-kit/pkg/entry"
	"github.com/bgrewell/alz-kit/pkg/extract"
	"github.com/bgrewell/alz-kit/pkg/logging"
	"github.com/bgrewell/alz-kit/pkg/multivolume"
	"github.com/bgrewell/alz-kit/pkg/pkware"
	"github.com/bgrewell/alz-kit/pkg/validation"
	"github.com/go-logr/logr"
)

// Options configures how an Archive is opened and extracted.
type Options struct {
	parseOnOpen bool
	strictCRC   bool
	logger      logr.Logger
}

// Option mutates Options; apply a set of them to Open/FromBytes.
type Option func(*Options)

// WithLogger sets the logr.Logger used for structured diagnostic output.
func WithLogger(logger logr.Logger) Option {
	return func(o *Options) { o.logger = logger }
}

// WithParseOnOpen sets whether Open/FromBytes scans the archive's records
// immediately. Defaults to true; set false to defer parsing to an explicit
// call to Archive.Parse.
func WithParseOnOpen(parseOnOpen bool) Option {
	return func(o *Options) { o.parseOnOpen = parseOnOpen }
}

// WithStrictCRC sets whether a CRC-32 mismatch on an extracted entry is
// treated as a fatal error (the default) or merely logged.
func WithStrictCRC(strict bool) Option {
	return func(o *Options) { o.strictCRC = strict }
}

// Archive is an opened ALZ archive: its volume chain, decoded entry list,
// and the encryption/data-descriptor flags observed while scanning it.
type Archive struct {
	reader      *multivolume.Reader
	entries     []entry.Entry
	isEncrypted bool
	isDataDescr bool
	options     Options
	logger      *logging.Logger
	parsed      bool
}

// Open opens the ALZ archive starting at path, discovering any additional
// volumes (.a00, .a01, ..., .b00, ...) that belong to it.
func Open(path string, opts ...Option) (*Archive, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	reader, err := multivolume.Open(path)
	if err != nil {
		return nil, err
	}

	a := &Archive{
		reader:  reader,
		options: options,
		logger:  logging.NewLogger(options.logger),
	}
	if options.parseOnOpen {
		if err := a.Parse(); err != nil {
			reader.Close()
			return nil, err
		}
	}
	return a, nil
}

// FromBytes opens a single-volume ALZ archive held entirely in memory,
// e.g. read from stdin.
func FromBytes(data []byte, opts ...Option) (*Archive, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	a := &Archive{
		reader:  multivolume.FromBytes(data),
		options: options,
		logger:  logging.NewLogger(options.logger),
	}
	if options.parseOnOpen {
		if err := a.Parse(); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func defaultOptions() Options {
	return Options{
		parseOnOpen: true,
		strictCRC:   true,
		logger:      logr.Discard(),
	}
}

// Close releases the underlying volume files.
func (a *Archive) Close() error {
	return a.reader.Close()
}

// Parse scans the archive's record stream, populating Entries. It is a
// no-op if the archive has already been parsed.
func (a *Archive) Parse() error {
	if a.parsed {
		return nil
	}
	tail := a.reader.Tail()
	res, err := container.Parse(a.reader, tail, a.logger)
	if err != nil {
		return err
	}
	a.entries = res.Entries
	a.isEncrypted = res.IsEncrypted
	a.isDataDescr = res.IsDataDescr
	a.parsed = true
	return nil
}

// Entries returns every entry the archive's record stream declared.
func (a *Archive) Entries() []entry.Entry {
	return a.entries
}

// IsEncrypted reports whether any entry in the archive is PKWARE
// encrypted.
func (a *Archive) IsEncrypted() bool { return a.isEncrypted }

// Find returns the entry with the given name, and whether it was found.
func (a *Archive) Find(name string) (entry.Entry, bool) {
	for _, e := range a.entries {
		if e.Name == name {
			return e, true
		}
	}
	return entry.Entry{}, false
}

// Extract decompresses e's payload to w, validating the password against
// the PKWARE encryption-check header first when e is encrypted, and
// verifying the result's CRC-32 against the value recorded in e.
func (a *Archive) Extract(e entry.Entry, w io.Writer, password string) (uint32, error) {
	var cipher *pkware.Cipher

	if e.DescriptorFlags.Encrypted {
		if password == "" {
			return 0, alzerr.ErrPasswordNotSet
		}
		if e.EncCheck == nil {
			return 0, alzerr.ErrPasswordNotSet
		}

		check := pkware.NewCipher([]byte(password))
		headerCopy := append([]byte(nil), e.EncCheck...)
		if !check.CheckHeader(headerCopy, e.CRC32, e.DateTimeRaw, e.DescriptorFlags.HasDataDescr) {
			return 0, alzerr.ErrInvalidPassword
		}

		// Re-derive the cipher and replay the header through it so its key
		// state is positioned for the ciphertext that follows, the same
		// two-pass validate-then-decrypt sequence the header check itself
		// performs.
		cipher = pkware.NewCipher([]byte(password))
		cipher.Decrypt(headerCopy)
	}

	if _, err := a.reader.Seek(e.PayloadOffset, io.SeekStart); err != nil {
		return 0, err
	}

	crc, err := extract.Extract(a.reader, w, e, cipher)
	if err != nil {
		return 0, err
	}

	if crc != e.CRC32 {
		if a.options.strictCRC {
			return crc, &alzerr.InvalidFileCRCError{Expected: e.CRC32, Got: crc}
		}
		a.logger.Debug("ignoring CRC-32 mismatch", "name", e.Name, "expected", e.CRC32, "got", crc)
	}
	return crc, nil
}

// ExtractAll extracts every entry into destDir, creating directories,
// regular files, and (on platforms that support them) symlinks, and
// rejecting any entry name or symlink target that would escape destDir.
func (a *Archive) ExtractAll(destDir, password string) error {
	for _, e := range a.entries {
		if err := a.ExtractEntry(destDir, e, password); err != nil {
			return fmt.Errorf("extracting %q: %w", e.Name, err)
		}
	}
	return nil
}

// ExtractEntry extracts a single entry into destDir: a directory, regular
// file, or (on platforms that support them) symlink, rejecting any entry
// name or symlink target that would escape destDir.
func (a *Archive) ExtractEntry(destDir string, e entry.Entry, password string) error {
	destPath, err := validation.ResolveWithinRoot(destDir, e.Name)
	if err != nil {
		return err
	}

	if e.IsDir() {
		return os.MkdirAll(destPath, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return &alzerr.CantOpenDestFileError{Path: destPath, Err: err}
	}

	if e.IsSymlink() {
		return a.extractSymlink(destPath, e, password)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return &alzerr.CantOpenDestFileError{Path: destPath, Err: err}
	}
	_, extractErr := a.Extract(e, f, password)
	closeErr := f.Close()
	if extractErr != nil {
		os.Remove(destPath)
		return extractErr
	}
	if closeErr != nil {
		return &alzerr.CantOpenDestFileError{Path: destPath, Err: closeErr}
	}

	if dt, ok := dostime.Decode(e.DateTimeRaw); ok {
		modTime := dt.Time()
		_ = os.Chtimes(destPath, modTime, modTime)
	}
	return nil
}

func (a *Archive) extractSymlink(destPath string, e entry.Entry, password string) error {
	var buf fixedBuffer
	if _, err := a.Extract(e, &buf, password); err != nil {
		return err
	}
	target := string(buf.data)
	if !validation.ValidSymlinkTarget(target) {
		return &alzerr.PathTraversalError{Name: target}
	}
	return symlinkOrWrite(target, destPath)
}

// fixedBuffer is a tiny io.Writer sink used to capture a symlink target's
// decompressed payload before it is validated.
type fixedBuffer struct {
	data []byte
}

func (b *fixedBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

// CantCreateSymlinkError wraps an I/O failure creating a symlink (or its
// non-Unix file fallback) during extraction.
type CantCreateSymlinkError struct {
	Path string
	Err  error
}

func (e *CantCreateSymlinkError) Error() string {
	return fmt.Sprintf("alzkit: can't create symlink %q: %v", e.Path, e.Err)
}

func (e *CantCreateSymlinkError) Unwrap() error { return e.Err }

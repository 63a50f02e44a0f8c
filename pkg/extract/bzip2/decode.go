package bzip2

import (
	"bytes"
	"hash/crc32"
	"io"
	"strings"

	"github.com/bgrewell/alz-kit/pkg/alzerr"
	"github.com/dsnet/compress/bzip2"
)

// Decode runs rewritten (the output of Rewrite) through a standard BZIP2
// decoder and writes the decompressed bytes to w, returning their CRC-32.
//
// dsnet/compress/bzip2's Reader checks a block's checksum only after it
// has already handed that block's decoded bytes back through Read, so the
// zero placeholder checksums Rewrite inserts surface as a "mismatching
// checksum" error strictly after all real output has been produced. That
// error is swallowed here rather than propagated, since it is an expected
// consequence of the dialect never carrying real per-block or stream
// CRC-32 values, not a sign of corrupted output.
func Decode(rewritten []byte, w io.Writer) (uint32, error) {
	zr, err := bzip2.NewReader(bytes.NewReader(rewritten), nil)
	if err != nil {
		return 0, &alzerr.Bzip2FailedError{Msg: err.Error()}
	}
	defer zr.Close()

	hasher := crc32.NewIEEE()
	n, err := io.Copy(io.MultiWriter(w, hasher), zr)
	if err != nil && !(n > 0 && isIgnorableChecksumError(err)) {
		return 0, &alzerr.Bzip2FailedError{Msg: err.Error()}
	}
	return hasher.Sum32(), nil
}

func isIgnorableChecksumError(err error) bool {
	return strings.Contains(err.Error(), "checksum")
}

// Package extract implements the three ALZ payload decoders (Store,
// DEFLATE, and the ALZ-BZIP2 dialect), each consuming an entry's
// compressed bytes and writing decompressed bytes to a destination while
// accumulating a CRC-32 checksum. An optional PKWARE cipher decrypts the
// compressed stream before decoding, composing io.Readers rather than
// following the reference extractor's manual buffer pump.
package extract

import (
	"hash/crc32"
	"io"

	"github.com/bgrewell/alz-kit/pkg/pkware"
)

// sourceReader builds the (possibly decrypted) io.Reader over exactly
// compressedSize bytes of r, the shape every extractor wraps further.
func sourceReader(r io.Reader, compressedSize int64, cipher *pkware.Cipher) io.Reader {
	limited := io.LimitReader(r, compressedSize)
	if cipher == nil {
		return limited
	}
	return pkware.NewDecryptingReader(limited, cipher)
}

// Store copies size bytes verbatim from r to w, optionally decrypting
// first, and returns their CRC-32.
func Store(r io.Reader, w io.Writer, compressedSize int64, cipher *pkware.Cipher) (uint32, error) {
	hasher := crc32.NewIEEE()
	src := sourceReader(r, compressedSize, cipher)
	if _, err := io.Copy(io.MultiWriter(w, hasher), src); err != nil {
		return 0, err
	}
	return hasher.Sum32(), nil
}

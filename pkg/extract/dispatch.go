package extract

import (
	"io"

	"github.com/bgrewell/alz-kit/pkg/alzerr"
	"github.com/bgrewell/alz-kit/pkg/consts"
	"github.com/bgrewell/alz-kit/pkg/entry"
	"github.com/bgrewell/alz-kit/pkg/extract/bzip2"
	"github.com/bgrewell/alz-kit/pkg/pkware"
)

// Extract decompresses one entry's payload from r (already positioned at
// the entry's PayloadOffset; Extract does not seek) to w, dispatching on the
// entry's compression method, and returns the CRC-32 of the decompressed
// bytes.
func Extract(r io.Reader, w io.Writer, e entry.Entry, cipher *pkware.Cipher) (uint32, error) {
	switch e.Method {
	case entry.MethodStore:
		return Store(r, w, int64(e.CompressedSize), cipher)
	case entry.MethodDeflate:
		return Deflate(r, w, int64(e.CompressedSize), cipher)
	case entry.MethodBzip2:
		return Bzip2(r, w, int64(e.CompressedSize), cipher)
	default:
		return 0, &alzerr.UnknownCompressionMethodError{Method: uint8(e.Method)}
	}
}

// Bzip2 buffers size bytes of ALZ-BZIP2 compressed data (optionally
// decrypting them first), re-encodes the dialect into a standard BZIP2
// stream, and decodes it to w, returning the CRC-32 of the decompressed
// bytes. Buffering is required because the bit-level re-encoder needs
// random access to the whole compressed payload.
func Bzip2(r io.Reader, w io.Writer, compressedSize int64, cipher *pkware.Cipher) (uint32, error) {
	if compressedSize > consts.BZip2MaxCompressedSize {
		return 0, alzerr.ErrCorruptedFile
	}

	src := sourceReader(r, compressedSize, cipher)
	buf := make([]byte, compressedSize)
	if _, err := io.ReadFull(src, buf); err != nil {
		return 0, err
	}

	rewritten, err := bzip2.Rewrite(buf)
	if err != nil {
		return 0, err
	}
	return bzip2.Decode(rewritten, w)
}

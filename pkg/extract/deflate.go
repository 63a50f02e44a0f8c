package extract

import (
	"hash/crc32"
	"io"

	"github.com/bgrewell/alz-kit/pkg/alzerr"
	"github.com/bgrewell/alz-kit/pkg/pkware"
	"github.com/klauspost/compress/flate"
)

// Deflate decompresses size bytes of raw (headerless) DEFLATE data from r,
// optionally decrypting first, writes the result to w, and returns its
// CRC-32.
func Deflate(r io.Reader, w io.Writer, compressedSize int64, cipher *pkware.Cipher) (uint32, error) {
	src := sourceReader(r, compressedSize, cipher)
	fr := flate.NewReader(src)
	defer fr.Close()

	hasher := crc32.NewIEEE()
	if _, err := io.Copy(io.MultiWriter(w, hasher), fr); err != nil {
		return 0, &alzerr.InflateFailedError{Msg: err.Error()}
	}
	return hasher.Sum32(), nil
}

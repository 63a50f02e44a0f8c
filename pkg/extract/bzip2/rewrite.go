package bzip2

import "github.com/bgrewell/alz-kit/pkg/alzerr"

// Standard BZIP2 stream/block constants (the full-size forms ALZ's
// storage-saving dialect strips down).
const (
	streamHeader uint64 = 0x425A6839     // "BZh9", 32 bits
	blockMagic48 uint64 = 0x314159265359 // 48 bits
	eosMagic48   uint64 = 0x177245385090 // 48 bits
)

// ALZ's shrunk 32-bit markers, replacing the 48-bit magics above.
const (
	markerBlock uint64 = 0x444C5A01 // "DLZ\x01"
	markerEOS   uint64 = 0x444C5A02 // "DLZ\x02"
)

// Rewrite reconstructs a standard BZIP2 byte stream from ALZ-BZIP2 data:
// it prepends the "BZh9" stream header, expands each DLZ\1/DLZ\2 marker
// back into its 48-bit magic, and inserts a zero placeholder block/stream
// CRC-32 (and, for a block, a zero randomisation bit) after each magic.
// Every other bit is copied through unchanged.
func Rewrite(data []byte) ([]byte, error) {
	br := &bitReader{data: data}
	bw := &bitWriter{}
	bw.writeBits(streamHeader, 32)

	sawBlock := false
	for {
		if v, ok := br.peekBits(32); ok && v == markerBlock {
			br.skip(32)
			bw.writeBits(blockMagic48, 48)
			bw.writeBits(0, 32) // placeholder block CRC-32
			bw.writeBit(0)      // not randomised
			sawBlock = true
			continue
		}
		if v, ok := br.peekBits(32); ok && v == markerEOS {
			br.skip(32)
			bw.writeBits(eosMagic48, 48)
			bw.writeBits(0, 32) // placeholder stream CRC-32
			return bw.bytes(), nil
		}

		bit, ok := br.readBit()
		if !ok {
			if !sawBlock {
				return nil, &alzerr.Bzip2FailedError{Msg: "truncated stream: no block marker found"}
			}
			return nil, &alzerr.Bzip2FailedError{Msg: "truncated stream: missing end-of-stream marker"}
		}
		bw.writeBit(bit)
	}
}

package bzip2

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitWriterReaderRoundTrip(t *testing.T) {
	bw := &bitWriter{}
	bw.writeBits(0x5, 3)   // 101
	bw.writeBit(1)         // 1
	bw.writeBits(0x2A, 8)  // 00101010
	data := bw.bytes()

	br := &bitReader{data: data}
	v, ok := br.peekBits(3)
	require.True(t, ok)
	require.Equal(t, uint64(0x5), v)

	br.skip(3)
	bit, ok := br.readBit()
	require.True(t, ok)
	require.Equal(t, byte(1), bit)

	v, ok = br.peekBits(8)
	require.True(t, ok)
	require.Equal(t, uint64(0x2A), v)
}

func TestBitReaderPeekBeyondEndFails(t *testing.T) {
	br := &bitReader{data: []byte{0xFF}}
	_, ok := br.peekBits(16)
	require.False(t, ok)
}

func TestBitReaderLen(t *testing.T) {
	br := &bitReader{data: []byte{0, 0}}
	require.Equal(t, 16, br.len())
	br.skip(5)
	require.Equal(t, 11, br.len())
}

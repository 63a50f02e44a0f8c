package bzip2

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// alzHelloWorld is ALZ-BZIP2 data for "hello world": standard bzip2 output
// with its stream header stripped, its block/end-of-stream magics replaced
// by the DLZ\x01/DLZ\x02 markers, and its per-block CRC and randomised bit
// removed, matching a minimal known-good fixture for the dialect.
var alzHelloWorld = []byte{
	0x44, 0x4c, 0x5a, 0x01, 0x00, 0x00, 0x03, 0x23, 0x00, 0x80, 0x00, 0x0c, 0x89, 0x21, 0x00,
	0x40, 0x00, 0x44, 0x06, 0x69, 0x08, 0x60, 0x43, 0x6d, 0x02, 0xa8, 0x4f, 0x44, 0x4c, 0x5a,
	0x02,
}

func TestRewriteProducesStandardStreamHeader(t *testing.T) {
	out, err := Rewrite(alzHelloWorld)
	require.NoError(t, err)
	require.Equal(t, []byte{0x42, 0x5A, 0x68, 0x39}, out[:4]) // "BZh9"
}

func TestRewriteAndDecodeHelloWorld(t *testing.T) {
	rewritten, err := Rewrite(alzHelloWorld)
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = Decode(rewritten, &out)
	require.NoError(t, err)
	require.Equal(t, "hello world", out.String())
}

func TestRewriteTruncatedStreamErrors(t *testing.T) {
	_, err := Rewrite(alzHelloWorld[:4])
	require.Error(t, err)
}

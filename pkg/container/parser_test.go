package container

import (
	"bytes"
	"testing"

	"github.com/bgrewell/alz-kit/pkg/alzerr"
	"github.com/stretchr/testify/require"
)

// buildSingleEntryArchive assembles a minimal ALZ record stream: a file
// header, one stored local file entry, and an end-of-central-directory
// marker, mirroring the T_ALZ fixture's record shape.
func buildSingleEntryArchive(t *testing.T, name string, payload []byte) []byte {
	t.Helper()
	var buf bytes.Buffer

	// "ALZ\1" file header + 4-byte version/ID body.
	buf.Write([]byte{0x41, 0x4C, 0x5A, 0x01})
	buf.Write([]byte{0, 0, 0, 0})

	// "BLZ\1" local file header.
	buf.Write([]byte{0x42, 0x4C, 0x5A, 0x01})
	buf.Write([]byte{byte(len(name)), byte(len(name) >> 8)}) // nameLen LE
	buf.WriteByte(0x20)                                      // attr: archive
	buf.Write([]byte{0, 0, 0, 0})                             // timeDate raw
	buf.WriteByte(0x10)                                       // descriptor: width nibble 1
	buf.WriteByte(0)                                          // reserved

	buf.WriteByte(0) // method: store
	buf.WriteByte(0) // unknown
	buf.Write([]byte{0, 0, 0, 0})          // crc32 (unchecked here)
	buf.WriteByte(byte(len(payload)))       // compressed size, width 1
	buf.WriteByte(byte(len(payload)))       // uncompressed size, width 1
	buf.WriteString(name)
	buf.Write(payload)

	// "CLZ\2" end of central directory.
	buf.Write([]byte{0x43, 0x4C, 0x5A, 0x02})

	return buf.Bytes()
}

func TestParseSingleStoredEntry(t *testing.T) {
	payload := []byte("HELLO!!!")
	data := buildSingleEntryArchive(t, "test.txt", payload)

	var tail [16]byte // comment size 0

	res, err := Parse(bytes.NewReader(data), tail, nil)
	require.NoError(t, err)
	require.False(t, res.IsEncrypted)
	require.False(t, res.IsDataDescr)
	require.Len(t, res.Entries, 1)

	e := res.Entries[0]
	require.Equal(t, "test.txt", e.Name)
	require.Equal(t, uint64(len(payload)), e.CompressedSize)
	require.Equal(t, uint64(len(payload)), e.UncompressedSize)
	require.False(t, e.IsDir())
	require.Equal(t, "Store", e.Method.String())

	// PayloadOffset should point exactly at the payload bytes.
	require.Equal(t, string(payload), string(data[e.PayloadOffset:int(e.PayloadOffset)+len(payload)]))
}

func TestParseUnknownSignatureBeforeHeaderIsNotAlz(t *testing.T) {
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	var tail [16]byte

	_, err := Parse(bytes.NewReader(data), tail, nil)
	require.ErrorIs(t, err, alzerr.ErrNotAlzFile)
}

func TestParseEncryptedEntryFlagsResult(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0x41, 0x4C, 0x5A, 0x01})
	buf.Write([]byte{0, 0, 0, 0})

	name := "secret.bin"
	buf.Write([]byte{0x42, 0x4C, 0x5A, 0x01})
	buf.Write([]byte{byte(len(name)), byte(len(name) >> 8)})
	buf.WriteByte(0x20)
	buf.Write([]byte{0, 0, 0, 0})
	buf.WriteByte(0x11) // width nibble 1 | encrypted bit
	buf.WriteByte(0)

	buf.WriteByte(0)
	buf.WriteByte(0)
	buf.Write([]byte{0, 0, 0, 0})
	payload := make([]byte, 12+4) // enc-check header + 4 bytes ciphertext
	buf.WriteByte(byte(len(payload) - 12))
	buf.WriteByte(byte(len(payload) - 12))
	buf.WriteString(name)
	buf.Write(make([]byte, 12)) // enc-check header
	buf.Write(make([]byte, 4))  // ciphertext

	buf.Write([]byte{0x43, 0x4C, 0x5A, 0x02})

	var tail [16]byte
	res, err := Parse(bytes.NewReader(buf.Bytes()), tail, nil)
	require.NoError(t, err)
	require.True(t, res.IsEncrypted)
	require.Len(t, res.Entries, 1)
	require.Len(t, res.Entries[0].EncCheck, 12)
}

package extract

import (
	"bytes"
	"hash/crc32"
	"testing"

	"github.com/bgrewell/alz-kit/pkg/pkware"
	"github.com/stretchr/testify/require"
)

func TestStorePlain(t *testing.T) {
	data := []byte("plain stored bytes")
	var out bytes.Buffer

	crc, err := Store(bytes.NewReader(data), &out, int64(len(data)), nil)
	require.NoError(t, err)
	require.Equal(t, data, out.Bytes())
	require.NotZero(t, crc)
}

// testEncrypt reproduces the PKWARE traditional cipher's keystream/key-update
// rule against a fresh pkware.Cipher, producing ciphertext for plain the way
// a compliant archiver would. pkware.Cipher itself only exposes Decrypt,
// which updates its key schedule from the decrypted plaintext byte — the
// same order this loop uses, just driven from the known plaintext side.
func testEncrypt(password, plain []byte) []byte {
	key := [3]uint32{0x12345678, 0x23456789, 0x34567890}
	update := func(b byte) {
		key[0] = crc32.IEEETable[byte(key[0])^b] ^ (key[0] >> 8)
		key[1] += key[0] & 0xff
		key[1] = key[1]*134775813 + 1
		key[2] = crc32.IEEETable[byte(key[2])^byte(key[1]>>24)] ^ (key[2] >> 8)
	}
	for _, b := range password {
		update(b)
	}

	out := make([]byte, len(plain))
	for i, b := range plain {
		temp := uint16(key[2]|2) & 0xffff
		keystream := byte((temp * (temp ^ 1)) >> 8)
		out[i] = b ^ keystream
		update(b)
	}
	return out
}

func TestStoreEncrypted(t *testing.T) {
	password := []byte("pw")
	plain := []byte("secret payload bytes")
	encrypted := testEncrypt(password, plain)

	var out bytes.Buffer
	dec := pkware.NewCipher(password)
	crc, err := Store(bytes.NewReader(encrypted), &out, int64(len(encrypted)), dec)
	require.NoError(t, err)
	require.Equal(t, plain, out.Bytes())
	require.NotZero(t, crc)
}

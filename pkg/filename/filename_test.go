package filename

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeUTF8Passthrough(t *testing.T) {
	require.Equal(t, "hello/world.txt", Decode([]byte("hello/world.txt")))
}

func TestDecodeCP949(t *testing.T) {
	// "가" (U+AC00) encoded as EUC-KR/CP949: 0xB0 0xA1.
	raw := []byte{0xB0, 0xA1}
	require.Equal(t, "가", Decode(raw))
}

func TestDecodeEmpty(t *testing.T) {
	require.Equal(t, "", Decode(nil))
}

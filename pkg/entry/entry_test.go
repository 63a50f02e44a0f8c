package entry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMethodString(t *testing.T) {
	require.Equal(t, "Store", MethodStore.String())
	require.Equal(t, "BZip2", MethodBzip2.String())
	require.Equal(t, "Deflate", MethodDeflate.String())
	require.Equal(t, "Unknown(9)", Method(9).String())
}

func TestAttributesSet(t *testing.T) {
	var a Attributes
	a.Set(0x10 | 0x40) // directory + symlink
	require.True(t, a.Directory)
	require.True(t, a.Symlink)
	require.False(t, a.ReadOnly)
	require.False(t, a.Hidden)
}

func TestDescriptorFlagsSet(t *testing.T) {
	var d DescriptorFlags
	d.Set(0x01 | 0x08 | 0x40)
	require.True(t, d.Encrypted)
	require.True(t, d.HasDataDescr)
	require.Equal(t, uint8(0x40), d.SizeWidthNibble)
}

func TestEntryIsDirAndSymlink(t *testing.T) {
	e := Entry{}
	e.Attributes.Set(0x10)
	require.True(t, e.IsDir())
	require.False(t, e.IsSymlink())
}

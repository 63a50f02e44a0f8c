// Package entry holds the decoded representation of a single ALZ local
// file entry: its name, attributes, descriptor flags, and the offsets
// needed to extract it.
package entry

import (
	"fmt"

	"github.com/bgrewell/alz-kit/pkg/consts"
)

// Method identifies the payload compression scheme.
type Method uint8

const (
	MethodStore   Method = Method(consts.MethodStore)
	MethodBzip2   Method = Method(consts.MethodBzip2)
	MethodDeflate Method = Method(consts.MethodDeflate)
)

// String renders the method name, or "Unknown(n)" for an unrecognised byte.
func (m Method) String() string {
	switch m {
	case MethodStore:
		return "Store"
	case MethodBzip2:
		return "BZip2"
	case MethodDeflate:
		return "Deflate"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(m))
	}
}

// Attributes decodes the DOS-style file attribute byte ALZ stores
// alongside each entry.
type Attributes struct {
	ReadOnly  bool
	Hidden    bool
	System    bool
	Directory bool
	Archive   bool
	Symlink   bool
}

// Set unpacks the raw attribute byte into the individual flags.
func (a *Attributes) Set(raw uint8) {
	a.ReadOnly = raw&consts.AttrReadOnly > 0
	a.Hidden = raw&consts.AttrHidden > 0
	a.System = raw&consts.AttrSystem > 0
	a.Directory = raw&consts.AttrDirectory > 0
	a.Archive = raw&consts.AttrArchive > 0
	a.Symlink = raw&consts.AttrSymlink > 0
}

func (a Attributes) String() string {
	return fmt.Sprintf("ReadOnly=%t, Hidden=%t, System=%t, Directory=%t, Archive=%t, Symlink=%t",
		a.ReadOnly, a.Hidden, a.System, a.Directory, a.Archive, a.Symlink)
}

// DescriptorFlags decodes the local file header's descriptor byte: the low
// nibble carries encryption/data-descriptor bits, the high nibble selects
// the size-field width used for this entry's compressed/uncompressed size
// fields (the CRC field is always 4 bytes).
type DescriptorFlags struct {
	Encrypted       bool
	HasDataDescr    bool
	SizeWidthNibble uint8
}

// Set unpacks the raw descriptor byte.
func (d *DescriptorFlags) Set(raw uint8) {
	d.Encrypted = raw&consts.DescEncrypted > 0
	d.HasDataDescr = raw&consts.DescDataDescriptor > 0
	d.SizeWidthNibble = raw & consts.DescSizeWidthMask
}

func (d DescriptorFlags) String() string {
	return fmt.Sprintf("Encrypted=%t, DataDescriptor=%t, SizeWidthNibble=0x%02x",
		d.Encrypted, d.HasDataDescr, d.SizeWidthNibble)
}

// Entry is a single file or directory record parsed from an ALZ archive's
// local file headers.
type Entry struct {
	Name             string
	Attributes       Attributes
	DescriptorFlags  DescriptorFlags
	Method           Method
	DateTimeRaw      uint32
	CompressedSize   uint64
	UncompressedSize uint64
	CRC32            uint32

	// EncCheck holds the 12-byte PKWARE encryption-check header when
	// DescriptorFlags.Encrypted is set, nil otherwise.
	EncCheck []byte

	// PayloadOffset is the absolute offset, within the logical concatenated
	// multi-volume stream, of this entry's first compressed payload byte,
	// i.e. immediately after EncCheck when the entry is encrypted.
	PayloadOffset int64
}

// IsDir reports whether the entry represents a directory.
func (e Entry) IsDir() bool { return e.Attributes.Directory }

// IsSymlink reports whether the entry represents a symbolic link.
func (e Entry) IsSymlink() bool { return e.Attributes.Symlink }

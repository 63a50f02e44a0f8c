// Package consts holds the wire-format constants for the ALZ container:
// record signatures, attribute/descriptor bit masks, and the structural
// limits the parser enforces.
package consts

const (
	// SigFileHeader is the "ALZ\x01" archive header signature.
	SigFileHeader uint32 = 0x015A4C41
	// SigLocalFileHeader is the "BLZ\x01" local file entry signature.
	SigLocalFileHeader uint32 = 0x015A4C42
	// SigCentralDirectory is the "CLZ\x01" central directory record signature.
	SigCentralDirectory uint32 = 0x015A4C43
	// SigEndOfCentralDirectory is the "CLZ\x02" terminator signature.
	SigEndOfCentralDirectory uint32 = 0x025A4C43
	// SigComment is the "ELZ\x01" comment section signature.
	SigComment uint32 = 0x015A4C45
	// SigSplitMarker is the "CLZ\x03" split-volume marker signature, no payload.
	SigSplitMarker uint32 = 0x035A4C43
)

// Central directory records carry a fixed 12-byte body the parser skips
// without interpretation.
const CentralDirectoryBodySize = 12

// File attribute bits (§6).
const (
	AttrReadOnly  uint8 = 0x01
	AttrHidden    uint8 = 0x02
	AttrSystem    uint8 = 0x04
	AttrDirectory uint8 = 0x10
	AttrArchive   uint8 = 0x20
	AttrSymlink   uint8 = 0x40
)

// Descriptor flag bits, low nibble (§6).
const (
	DescEncrypted      uint8 = 0x01
	DescDataDescriptor uint8 = 0x08
)

// DescSizeWidthMask isolates the high nibble of the descriptor byte, which
// selects the on-disk width of the compressed/uncompressed size fields.
const DescSizeWidthMask uint8 = 0xF0

// Compression method byte values.
const (
	MethodStore   uint8 = 0
	MethodBzip2   uint8 = 1
	MethodDeflate uint8 = 2
)

// EncCheckHeaderLen is the length of the PKWARE encryption-validation header
// that precedes an encrypted entry's ciphertext.
const EncCheckHeaderLen = 12

// FileNameMaxLength and FileNameMinLength bound a local file entry's name
// field (§3 invariants).
const (
	FileNameMinLength = 1
	FileNameMaxLength = 4096
)

// VolumeTailLength is the size of the end-info block trailing the first
// volume of an archive.
const VolumeTailLength = 16

// BZip2MaxCompressedSize bounds how large a single entry's ALZ-BZIP2
// payload may be, since the re-encoder buffers it whole in memory.
const BZip2MaxCompressedSize = 512 * 1024 * 1024

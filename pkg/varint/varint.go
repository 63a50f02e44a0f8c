// Package varint reads the variable-width little-endian size fields ALZ
// local file headers use: 0, 1, 2, 4, or 8 bytes selected by a descriptor
// nibble elsewhere in the header (§4.2, §6).
package varint

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Width is the on-disk byte width of a size field.
type Width int

const (
	Width0 Width = 0
	Width1 Width = 1
	Width2 Width = 2
	Width4 Width = 4
	Width8 Width = 8
)

// WidthFromNibble maps a descriptor high-nibble value to its field width.
// The nibble is expected pre-shifted into {0x00, 0x10, 0x20, 0x40, 0x80}.
func WidthFromNibble(nibble byte) (Width, error) {
	switch nibble {
	case 0x00:
		return Width0, nil
	case 0x10:
		return Width1, nil
	case 0x20:
		return Width2, nil
	case 0x40:
		return Width4, nil
	case 0x80:
		return Width8, nil
	default:
		return 0, fmt.Errorf("alzkit/varint: invalid width nibble 0x%02x", nibble)
	}
}

// Read decodes a little-endian unsigned integer of the given width from r.
// Width0 always yields 0 without consuming any bytes.
func Read(r io.Reader, w Width) (uint64, error) {
	switch w {
	case Width0:
		return 0, nil
	case Width1:
		var b [1]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}
		return uint64(b[0]), nil
	case Width2:
		var b [2]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}
		return uint64(binary.LittleEndian.Uint16(b[:])), nil
	case Width4:
		var b [4]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}
		return uint64(binary.LittleEndian.Uint32(b[:])), nil
	case Width8:
		var b [8]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint64(b[:]), nil
	default:
		return 0, fmt.Errorf("alzkit/varint: invalid width %d", w)
	}
}

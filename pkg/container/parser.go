// Package container scans an ALZ volume stream's record signatures and
// decodes the archive header, local file entries, central directory
// records, and comment section into a flat entry list. It is grounded on
// the reference extractor's linear signature-dispatch loop, restructured
// so each record kind's decoding lives in its own method keyed by
// signature.
package container

import (
	"encoding/binary"
	"io"

	"github.com/bgrewell/alz-kit/pkg/alzerr"
	"github.com/bgrewell/alz-kit/pkg/consts"
	"github.com/bgrewell/alz-kit/pkg/entry"
	"github.com/bgrewell/alz-kit/pkg/filename"
	"github.com/bgrewell/alz-kit/pkg/logging"
	"github.com/bgrewell/alz-kit/pkg/varint"
)

// ReadSeeker is the subset of multivolume.Reader the parser depends on.
type ReadSeeker interface {
	io.Reader
	io.Seeker
}

// Result holds everything the parser extracted from the record stream.
type Result struct {
	Entries         []entry.Entry
	IsEncrypted     bool
	IsDataDescr     bool
	CommentSkipSize int64
}

// Parser scans an ALZ record stream.
type Parser struct {
	r      ReadSeeker
	logger *logging.Logger
}

// NewParser returns a Parser reading records from r.
func NewParser(r ReadSeeker, logger *logging.Logger) *Parser {
	return &Parser{r: r, logger: logger}
}

// Parse reads the tail-derived comment size and scans records until the
// end-of-central-directory signature, per §4.2.
func Parse(r ReadSeeker, tail [16]byte, logger *logging.Logger) (*Result, error) {
	p := NewParser(r, logger)
	commentSize := int64(binary.LittleEndian.Uint32(tail[4:8]))
	return p.parse(commentSize)
}

func (p *Parser) parse(commentSectionSize int64) (*Result, error) {
	res := &Result{}
	seenHeader := false

	for {
		sig, err := p.readU32LE()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch sig {
		case consts.SigFileHeader:
			if err := p.readFileHeader(); err != nil {
				return nil, err
			}
			seenHeader = true
		case consts.SigLocalFileHeader:
			e, err := p.readLocalFileHeader()
			if err != nil {
				return nil, err
			}
			if e.DescriptorFlags.Encrypted {
				res.IsEncrypted = true
			}
			if e.DescriptorFlags.HasDataDescr {
				res.IsDataDescr = true
			}
			res.Entries = append(res.Entries, *e)
		case consts.SigCentralDirectory:
			if err := p.readCentralDirectory(); err != nil {
				return nil, err
			}
		case consts.SigEndOfCentralDirectory:
			return res, nil
		case consts.SigComment:
			if err := p.skipComment(commentSectionSize); err != nil {
				return nil, err
			}
		case consts.SigSplitMarker:
			// no payload
		default:
			if seenHeader {
				return nil, alzerr.ErrCorruptedFile
			}
			return nil, alzerr.ErrNotAlzFile
		}
	}

	return res, nil
}

// readFileHeader consumes the 4-byte version/ID body following "ALZ\1".
func (p *Parser) readFileHeader() error {
	var buf [4]byte
	_, err := io.ReadFull(p.r, buf[:])
	return err
}

// readCentralDirectory consumes the fixed 12-byte body following "CLZ\1".
func (p *Parser) readCentralDirectory() error {
	buf := make([]byte, consts.CentralDirectoryBodySize)
	_, err := io.ReadFull(p.r, buf)
	return err
}

// skipComment advances past the "ELZ\1" comment payload. totalSize
// includes the 4 signature bytes already consumed.
func (p *Parser) skipComment(totalSize int64) error {
	if totalSize <= 4 {
		return nil
	}
	_, err := p.r.Seek(totalSize-4, io.SeekCurrent)
	return err
}

// readLocalFileHeader decodes one "BLZ\1" record: the fixed 9-byte head,
// the optional method/CRC/size fields (present only when the size-width
// nibble is non-zero), the file name, and the optional encryption-check
// header, recording the payload's start offset before skipping over it.
func (p *Parser) readLocalFileHeader() (*entry.Entry, error) {
	var head [9]byte
	if _, err := io.ReadFull(p.r, head[:]); err != nil {
		return nil, err
	}

	nameLen := int(binary.LittleEndian.Uint16(head[0:2]))
	rawAttr := head[2]
	timeDate := binary.LittleEndian.Uint32(head[3:7])
	rawDescriptor := head[7]
	// head[8] is an unidentified reserved byte.

	e := &entry.Entry{DateTimeRaw: timeDate}
	e.Attributes.Set(rawAttr)
	e.DescriptorFlags.Set(rawDescriptor)

	width, err := varint.WidthFromNibble(rawDescriptor & consts.DescSizeWidthMask)
	if err != nil {
		return nil, &alzerr.InvalidSizeFieldWidthError{Nibble: rawDescriptor & consts.DescSizeWidthMask}
	}

	if width != varint.Width0 {
		var methodUnk [2]byte
		if _, err := io.ReadFull(p.r, methodUnk[:]); err != nil {
			return nil, err
		}
		e.Method = entry.Method(methodUnk[0])

		var crcBuf [4]byte
		if _, err := io.ReadFull(p.r, crcBuf[:]); err != nil {
			return nil, err
		}
		e.CRC32 = binary.LittleEndian.Uint32(crcBuf[:])

		compSize, err := varint.Read(p.r, width)
		if err != nil {
			return nil, err
		}
		e.CompressedSize = compSize

		uncompSize, err := varint.Read(p.r, width)
		if err != nil {
			return nil, err
		}
		e.UncompressedSize = uncompSize
	}

	if nameLen < consts.FileNameMinLength || nameLen > consts.FileNameMaxLength {
		return nil, alzerr.ErrInvalidFilenameLength
	}
	nameBuf := make([]byte, nameLen)
	if _, err := io.ReadFull(p.r, nameBuf); err != nil {
		return nil, err
	}
	e.Name = filename.Decode(nameBuf)

	if e.DescriptorFlags.Encrypted {
		check := make([]byte, consts.EncCheckHeaderLen)
		if _, err := io.ReadFull(p.r, check); err != nil {
			return nil, err
		}
		e.EncCheck = check
	}

	pos, err := p.r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	e.PayloadOffset = pos

	if e.CompressedSize > 1<<62 {
		return nil, alzerr.ErrCorruptedFile
	}
	if _, err := p.r.Seek(int64(e.CompressedSize), io.SeekCurrent); err != nil {
		return nil, err
	}

	if p.logger != nil {
		p.logger.Trace("parsed local file header", "name", e.Name, "method", e.Method.String(), "compressedSize", e.CompressedSize)
	}

	return e, nil
}

func (p *Parser) readU32LE() (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(p.r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

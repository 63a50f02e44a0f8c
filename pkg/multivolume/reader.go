// Package multivolume presents a chain of ALZ volume files (.alz, .a00,
// .a01, ..., .b00, ...) as a single virtual io.ReadSeeker, hiding the
// per-volume header/tail bookkeeping from the container parser above it.
// The volume-chain bookkeeping (discover-until-missing, per-volume
// data-window tracking, physical-seek-on-virtual-seek) follows the same
// shape as a RAR multi-volume reader's open/next/seek handling, applied to
// ALZ's split-naming scheme and fixed head/tail sizes.
package multivolume

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/bgrewell/alz-kit/pkg/alzerr"
)

const (
	maxVolumes     = 1000
	volumeHeadSize = 8
	volumeTailSize = 16
)

// volFile is the minimal surface a volume's backing store needs: a file on
// disk, or an in-memory buffer when reading from stdin or a []byte.
type volFile interface {
	io.ReadSeeker
	io.Closer
}

// memFile adapts a bytes.Reader to volFile with a no-op Close.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

// volume tracks one file in the chain plus the byte window within it that
// belongs to the logical archive data stream.
type volume struct {
	file       volFile
	fileSize   int64
	headerSize int64
	tailSize   int64
}

func (v *volume) dataSize() int64 {
	return v.fileSize - v.headerSize - v.tailSize
}

// Reader is a virtual io.ReadSeeker spanning every volume of a split ALZ
// archive. Reads and seeks operate on a single logical offset space that
// excludes each volume's header/tail bytes.
type Reader struct {
	volumes    []*volume
	curVolume  int
	virtualPos int64
	tail       [16]byte
}

// Open discovers and opens every volume belonging to the archive named by
// path, starting with path itself (the first volume). Later volumes are
// named by replacing path's final 3 characters with a/b-prefixed sequence
// numbers: a00, a01, ..., a99, b00, ....
func Open(path string) (*Reader, error) {
	if len(path) < 4 {
		return nil, &alzerr.CantOpenFileError{Path: path, Err: fmt.Errorf("path too short")}
	}
	prefix := path[:len(path)-3]

	var volumes []*volume
	for i := 0; i < maxVolumes; i++ {
		volPath := path
		if i > 0 {
			letter := byte('a') + byte((i-1)/100)
			num := (i - 1) % 100
			volPath = fmt.Sprintf("%s%c%02d", prefix, letter, num)
		}

		f, err := os.Open(volPath)
		if err != nil {
			if i == 0 {
				return nil, &alzerr.CantOpenFileError{Path: volPath, Err: err}
			}
			break
		}

		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, &alzerr.CantOpenFileError{Path: volPath, Err: err}
		}

		headerSize := int64(0)
		if i > 0 {
			headerSize = volumeHeadSize
		}
		volumes = append(volumes, &volume{
			file:       f,
			fileSize:   info.Size(),
			headerSize: headerSize,
			tailSize:   volumeTailSize,
		})
	}

	if len(volumes) == 0 {
		return nil, &alzerr.CantOpenFileError{Path: path, Err: fmt.Errorf("no volumes found")}
	}
	// The last volume carries no trailing end-info block.
	volumes[len(volumes)-1].tailSize = 0

	r := &Reader{volumes: volumes}
	first := volumes[0]
	if first.fileSize >= 16 {
		if _, err := first.file.Seek(first.fileSize-16, io.SeekStart); err != nil {
			r.Close()
			return nil, &alzerr.CantOpenFileError{Path: path, Err: err}
		}
		if _, err := io.ReadFull(first.file, r.tail[:]); err != nil {
			r.Close()
			return nil, &alzerr.CantOpenFileError{Path: path, Err: err}
		}
	}

	if err := r.seekToVirtual(0); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// FromBytes builds a single-volume Reader over in-memory data, for callers
// reading an archive from stdin rather than the filesystem.
func FromBytes(data []byte) *Reader {
	r := &Reader{
		volumes: []*volume{{
			file:     memFile{bytes.NewReader(data)},
			fileSize: int64(len(data)),
		}},
	}
	if len(data) >= 16 {
		copy(r.tail[:], data[len(data)-16:])
	}
	r.seekToVirtual(0)
	return r
}

// Tail returns the 16-byte end-info block trailing the first volume.
func (r *Reader) Tail() [16]byte { return r.tail }

// TotalSize returns the sum of every volume's logical data window.
func (r *Reader) TotalSize() int64 {
	var total int64
	for _, v := range r.volumes {
		total += v.dataSize()
	}
	return total
}

// Close closes every underlying volume file.
func (r *Reader) Close() error {
	var first error
	for _, v := range r.volumes {
		if v.file == nil {
			continue
		}
		if err := v.file.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// seekToVirtual positions the reader at the given virtual offset. An offset
// at or beyond TotalSize is accepted silently, per §4.1: the next Read then
// yields io.EOF rather than any error, matching ordinary seek-past-EOF
// semantics on a single file.
func (r *Reader) seekToVirtual(offset int64) error {
	r.virtualPos = offset
	remain := offset

	for i, v := range r.volumes {
		dataSize := v.dataSize()
		if remain <= dataSize {
			physPos := remain + v.headerSize
			if _, err := v.file.Seek(physPos, io.SeekStart); err != nil {
				return err
			}
			r.curVolume = i
			return nil
		}
		remain -= dataSize
	}

	r.curVolume = len(r.volumes)
	return nil
}

// Read implements io.Reader, transparently crossing volume boundaries.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.curVolume >= len(r.volumes) {
		return 0, io.EOF
	}

	var total int
	for total < len(p) && r.curVolume < len(r.volumes) {
		v := r.volumes[r.curVolume]
		physPos, err := v.file.Seek(0, io.SeekCurrent)
		if err != nil {
			return total, err
		}
		dataEnd := v.fileSize - v.tailSize
		avail := dataEnd - physPos
		if avail <= 0 {
			r.curVolume++
			if r.curVolume >= len(r.volumes) {
				break
			}
			next := r.volumes[r.curVolume]
			if _, err := next.file.Seek(next.headerSize, io.SeekStart); err != nil {
				return total, err
			}
			continue
		}

		toRead := len(p) - total
		if int64(toRead) > avail {
			toRead = int(avail)
		}
		n, err := v.file.Read(p[total : total+toRead])
		total += n
		r.virtualPos += int64(n)
		if err != nil && err != io.EOF {
			return total, err
		}
		if n == 0 {
			break
		}
	}

	if total == 0 {
		return 0, io.EOF
	}
	return total, nil
}

// Seek implements io.Seeker over the virtual, cross-volume offset space.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = r.virtualPos + offset
	case io.SeekEnd:
		newPos = r.TotalSize() + offset
	default:
		return 0, fmt.Errorf("alzkit/multivolume: invalid whence %d", whence)
	}
	if newPos < 0 {
		return 0, fmt.Errorf("alzkit/multivolume: negative seek position")
	}
	if err := r.seekToVirtual(newPos); err != nil {
		return 0, err
	}
	return r.virtualPos, nil
}

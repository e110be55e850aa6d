// Package cfb provides the minimal OLE Compound File Binary (CDF) reader
// this repo needs (spec §4.A): open a container, look up a named stream by
// its full buffered byte content. It wraps github.com/richardlehane/mscfb,
// which already implements the CFB sector/FAT walk; this package only adds
// the "find by name, return whole stream or None" contract the spec wants.
package cfb

import (
	"errors"
	"fmt"
	"io"

	"github.com/richardlehane/mscfb"
)

// ErrNotCompound is returned by Open when data is not a recognizable CFB
// container. Callers fall through to the degraded scan path (spec §7).
var ErrNotCompound = errors.New("cfb: not a compound file")

// maxStreamBytes bounds a single buffered stream read, mirroring the same
// defensive ceiling the PPT record walker applies to a single record (spec
// §5's "maximum single record length 100 MB").
const maxStreamBytes = 100 << 20

// Container exposes every named stream in a CFB file, pre-read into memory.
type Container struct {
	streams map[string][]byte
}

// Open parses data as a CFB container and buffers every stream it contains.
func Open(data []byte) (*Container, error) {
	r, err := mscfb.New(newReaderAt(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotCompound, err)
	}

	c := &Container{streams: make(map[string][]byte)}
	for entry, err := r.Next(); err == nil; entry, err = r.Next() {
		if entry == nil || entry.Name == "" {
			continue
		}
		lr := io.LimitReader(r, maxStreamBytes+1)
		buf, readErr := io.ReadAll(lr)
		if readErr != nil {
			continue
		}
		if int64(len(buf)) > maxStreamBytes {
			buf = buf[:maxStreamBytes]
		}
		c.streams[entry.Name] = buf
	}

	return c, nil
}

// Find returns the full buffered content of the named stream, or (nil,
// false) if it doesn't exist. Required stream names per spec §4.A:
// "PowerPoint Document", "Current User", "Pictures",
// "\x05SummaryInformation", "\x05DocumentSummaryInformation".
func (c *Container) Find(name string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	b, ok := c.streams[name]
	return b, ok
}

type readerAt struct {
	data []byte
}

func newReaderAt(data []byte) *readerAt {
	return &readerAt{data: data}
}

func (r *readerAt) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(r.data)) {
		return 0, io.EOF
	}
	n := copy(p, r.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

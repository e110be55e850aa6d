package cfb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
	"unicode/utf16"
)

const sectorSize = 512

// buildMinimalCFB hand-assembles a spec-minimal CFBv3 container with a
// single root storage and one stream entry, bypassing the Mini FAT by
// keeping the stream's size at or above the 4096-byte cutoff.
func buildMinimalCFB(t *testing.T, streamName string, content []byte) []byte {
	t.Helper()
	if len(content) < 4096 {
		t.Fatalf("test content must be >= 4096 bytes to avoid the Mini FAT, got %d", len(content))
	}

	numDataSectors := (len(content) + sectorSize - 1) / sectorSize

	header := make([]byte, 512)
	copy(header[0:8], []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1})
	binary.LittleEndian.PutUint16(header[24:26], 0x003E) // minor version
	binary.LittleEndian.PutUint16(header[26:28], 0x0003) // major version 3
	binary.LittleEndian.PutUint16(header[28:30], 0xFFFE) // byte order
	binary.LittleEndian.PutUint16(header[30:32], 0x0009) // sector shift: 512
	binary.LittleEndian.PutUint16(header[32:34], 0x0006) // mini sector shift: 64
	binary.LittleEndian.PutUint32(header[40:44], 0)       // num dir sectors (0 for v3)
	binary.LittleEndian.PutUint32(header[44:48], 1)       // num FAT sectors
	binary.LittleEndian.PutUint32(header[48:52], 1)       // first dir sector index
	binary.LittleEndian.PutUint32(header[56:60], 4096)    // mini stream cutoff
	binary.LittleEndian.PutUint32(header[60:64], 0xFFFFFFFE)
	binary.LittleEndian.PutUint32(header[68:72], 0xFFFFFFFE)
	for i := 0; i < 109; i++ {
		off := 76 + i*4
		if i == 0 {
			binary.LittleEndian.PutUint32(header[off:off+4], 0) // FAT lives at sector 0
		} else {
			binary.LittleEndian.PutUint32(header[off:off+4], 0xFFFFFFFF)
		}
	}

	fat := make([]byte, sectorSize)
	for i := range fat {
		fat[i] = 0xFF
	}
	binary.LittleEndian.PutUint32(fat[0:4], 0xFFFFFFFD)   // sector 0: this FAT sector
	binary.LittleEndian.PutUint32(fat[4:8], 0xFFFFFFFE)   // sector 1: directory, alone
	for i := 0; i < numDataSectors; i++ {
		sector := 2 + i
		var next uint32
		if i == numDataSectors-1 {
			next = 0xFFFFFFFE
		} else {
			next = uint32(sector + 1)
		}
		binary.LittleEndian.PutUint32(fat[sector*4:sector*4+4], next)
	}

	dirEntry := func(name string, objType byte, left, right, child uint32, startSector uint32, size uint64) []byte {
		e := make([]byte, 128)
		u := utf16.Encode([]rune(name))
		for i, c := range u {
			binary.LittleEndian.PutUint16(e[i*2:i*2+2], c)
		}
		binary.LittleEndian.PutUint16(e[64:66], uint16((len(u)+1)*2))
		e[66] = objType
		e[67] = 1
		binary.LittleEndian.PutUint32(e[68:72], left)
		binary.LittleEndian.PutUint32(e[72:76], right)
		binary.LittleEndian.PutUint32(e[76:80], child)
		binary.LittleEndian.PutUint32(e[116:120], startSector)
		binary.LittleEndian.PutUint64(e[120:128], size)
		return e
	}

	dir := make([]byte, sectorSize)
	copy(dir[0:128], dirEntry("Root Entry", 5, 0xFFFFFFFF, 0xFFFFFFFF, 1, 0xFFFFFFFE, 0))
	copy(dir[128:256], dirEntry(streamName, 2, 0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF, 2, uint64(len(content))))
	copy(dir[256:384], dirEntry("", 0, 0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFE, 0))
	copy(dir[384:512], dirEntry("", 0, 0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFE, 0))

	var buf bytes.Buffer
	buf.Write(header)
	buf.Write(fat)
	buf.Write(dir)

	remaining := content
	for i := 0; i < numDataSectors; i++ {
		sector := make([]byte, sectorSize)
		n := copy(sector, remaining)
		remaining = remaining[n:]
		buf.Write(sector)
	}

	return buf.Bytes()
}

func TestOpenRejectsNonCompoundData(t *testing.T) {
	_, err := Open([]byte("not a compound file at all"))
	if err == nil {
		t.Fatalf("expected error for non-CFB data")
	}
	if !errors.Is(err, ErrNotCompound) {
		t.Fatalf("expected ErrNotCompound, got %v", err)
	}
}

func TestOpenAndFindRoundTripsAStream(t *testing.T) {
	content := bytes.Repeat([]byte("PowerPoint stream payload. "), 200) // > 4096 bytes
	data := buildMinimalCFB(t, "PowerPoint Document", content)

	c, err := Open(data)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	got, ok := c.Find("PowerPoint Document")
	if !ok {
		t.Fatalf("expected to find PowerPoint Document stream")
	}
	if !bytes.Equal(got, content) {
		t.Fatalf("stream content mismatch: got %d bytes, want %d bytes", len(got), len(content))
	}
}

func TestFindReturnsFalseForMissingStream(t *testing.T) {
	content := bytes.Repeat([]byte("x"), 5000)
	data := buildMinimalCFB(t, "PowerPoint Document", content)

	c, err := Open(data)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if _, ok := c.Find("Current User"); ok {
		t.Fatalf("expected Current User stream to be absent")
	}
}

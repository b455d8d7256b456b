package icns

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Magic is the four-byte file signature.
const Magic = "icns"

const headerLen = 8

// Entry is one icon stored in a container.
type Entry struct {
	OSType string
	Data   []byte
}

// Container accumulates entries and serializes them in insertion order.
// Duplicate OSType codes are kept as given.
type Container struct {
	entries []Entry
}

// Append adds an entry. osType must be exactly four bytes.
func (c *Container) Append(osType string, data []byte) error {
	if len(osType) != 4 {
		return fmt.Errorf("icns: invalid OSType %q", osType)
	}
	c.entries = append(c.entries, Entry{OSType: osType, Data: data})
	return nil
}

// Len returns the number of entries.
func (c *Container) Len() int { return len(c.entries) }

// Size returns the serialized length in bytes.
func (c *Container) Size() int {
	n := headerLen
	for _, e := range c.entries {
		n += headerLen + len(e.Data)
	}
	return n
}

// WriteTo writes the serialized container to w.
func (c *Container) WriteTo(w io.Writer) (int64, error) {
	var hdr [headerLen]byte
	var written int64

	write := func(b []byte) error {
		n, err := w.Write(b)
		written += int64(n)
		return err
	}

	copy(hdr[:4], Magic)
	binary.BigEndian.PutUint32(hdr[4:], uint32(c.Size()))
	if err := write(hdr[:]); err != nil {
		return written, err
	}
	for _, e := range c.entries {
		copy(hdr[:4], e.OSType)
		binary.BigEndian.PutUint32(hdr[4:], uint32(headerLen+len(e.Data)))
		if err := write(hdr[:]); err != nil {
			return written, err
		}
		if err := write(e.Data); err != nil {
			return written, err
		}
	}
	return written, nil
}

// Bytes returns the serialized container.
func (c *Container) Bytes() []byte {
	var b bytes.Buffer
	b.Grow(c.Size())
	_, _ = c.WriteTo(&b)
	return b.Bytes()
}

// Parse reads a container, returning its entries in file order.
func Parse(data []byte) ([]Entry, error) {
	if len(data) < headerLen || string(data[:4]) != Magic {
		return nil, fmt.Errorf("icns: missing %q signature", Magic)
	}
	total := int(binary.BigEndian.Uint32(data[4:8]))
	if total != len(data) {
		return nil, fmt.Errorf("icns: header length %d, file length %d", total, len(data))
	}

	var entries []Entry
	for off := headerLen; off < total; {
		if total-off < headerLen {
			return nil, fmt.Errorf("icns: truncated entry header at offset %d", off)
		}
		n := int(binary.BigEndian.Uint32(data[off+4 : off+8]))
		if n < headerLen || off+n > total {
			return nil, fmt.Errorf("icns: bad entry length %d at offset %d", n, off)
		}
		entries = append(entries, Entry{
			OSType: string(data[off : off+4]),
			Data:   data[off+headerLen : off+n],
		})
		off += n
	}
	return entries, nil
}

// IsICNS reports whether data starts with the ICNS signature.
func IsICNS(data []byte) bool {
	return len(data) >= 4 && string(data[:4]) == Magic
}

package fgui

import (
	"encoding/binary"
	"fmt"
	"math"
)

// String-table sentinels used by ReadS.
const (
	stringNull  = 65534
	stringEmpty = 65533
)

// bufferError is the panic value raised by a failing read. Load and
// construction recover it with catchBufferError and return the wrapped error.
type bufferError struct {
	err error
}

func (e *bufferError) Error() string { return e.err.Error() }
func (e *bufferError) Unwrap() error { return e.err }

// catchBufferError converts a bufferError panic into *errp. Other panics are
// re-raised.
func catchBufferError(errp *error) {
	if r := recover(); r != nil {
		be, ok := r.(*bufferError)
		if !ok {
			panic(r)
		}
		*errp = be.err
	}
}

// ByteBuffer is a cursor over an immutable byte range of a package blob.
// Values are big-endian unless LittleEndian is set. Sub-buffers created by
// ReadBuffer share the backing array, string table and version.
type ByteBuffer struct {
	LittleEndian bool
	StringTable  []string
	Version      int

	data   []byte
	offset int
	length int
	pos    int
}

// NewByteBuffer wraps data. The slice is not copied and must not be mutated.
func NewByteBuffer(data []byte) *ByteBuffer {
	return &ByteBuffer{data: data, length: len(data)}
}

// Position returns the cursor, relative to the start of this buffer.
func (b *ByteBuffer) Position() int { return b.pos }

// SetPosition moves the cursor.
func (b *ByteBuffer) SetPosition(pos int) { b.pos = pos }

// Len returns the number of bytes addressable by this buffer.
func (b *ByteBuffer) Len() int { return b.length }

// BytesAvailable reports whether the cursor is before the end.
func (b *ByteBuffer) BytesAvailable() bool { return b.pos < b.length }

// Skip advances the cursor by n bytes and returns the new position.
func (b *ByteBuffer) Skip(n int) int {
	b.pos += n
	return b.pos
}

func (b *ByteBuffer) need(n int) []byte {
	if n < 0 || b.pos < 0 || b.pos+n > b.length {
		panic(&bufferError{fmt.Errorf("%w: need %d bytes at %d, length %d", ErrBufferOverrun, n, b.pos, b.length)})
	}
	start := b.offset + b.pos
	b.pos += n
	return b.data[start : start+n]
}

func (b *ByteBuffer) order() binary.ByteOrder {
	if b.LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// ReadByte reads one unsigned byte.
func (b *ByteBuffer) ReadByte() byte {
	return b.need(1)[0]
}

// ReadBool reads one byte; 1 is true.
func (b *ByteBuffer) ReadBool() bool {
	return b.need(1)[0] == 1
}

// ReadShort reads a signed 16-bit integer.
func (b *ByteBuffer) ReadShort() int16 {
	return int16(b.order().Uint16(b.need(2)))
}

// ReadUshort reads an unsigned 16-bit integer.
func (b *ByteBuffer) ReadUshort() uint16 {
	return b.order().Uint16(b.need(2))
}

// ReadInt reads a signed 32-bit integer.
func (b *ByteBuffer) ReadInt() int32 {
	return int32(b.order().Uint32(b.need(4)))
}

// ReadUint reads an unsigned 32-bit integer.
func (b *ByteBuffer) ReadUint() uint32 {
	return b.order().Uint32(b.need(4))
}

// ReadFloat reads an IEEE-754 single.
func (b *ByteBuffer) ReadFloat() float32 {
	return math.Float32frombits(b.order().Uint32(b.need(4)))
}

// ReadLong reads a signed 64-bit integer.
func (b *ByteBuffer) ReadLong() int64 {
	return int64(b.order().Uint64(b.need(8)))
}

// ReadDouble reads an IEEE-754 double.
func (b *ByteBuffer) ReadDouble() float64 {
	return math.Float64frombits(b.order().Uint64(b.need(8)))
}

// ReadString reads a ushort length followed by that many UTF-8 bytes.
func (b *ByteBuffer) ReadString() string {
	n := int(b.ReadUshort())
	return string(b.need(n))
}

// ReadStringN reads exactly n UTF-8 bytes.
func (b *ByteBuffer) ReadStringN(n int) string {
	return string(b.need(n))
}

// ReadBytes reads n raw bytes. The result aliases the buffer.
func (b *ByteBuffer) ReadBytes(n int) []byte {
	return b.need(n)
}

// ReadS reads a string-table reference. The null sentinel reads as "".
func (b *ByteBuffer) ReadS() string {
	s, _ := b.ReadSOK()
	return s
}

// ReadSOK reads a string-table reference; ok is false for the null sentinel.
func (b *ByteBuffer) ReadSOK() (s string, ok bool) {
	idx := int(b.ReadUshort())
	switch idx {
	case stringNull:
		return "", false
	case stringEmpty:
		return "", true
	}
	if idx >= len(b.StringTable) {
		panic(&bufferError{fmt.Errorf("%w: index %d, table size %d", ErrStringIndex, idx, len(b.StringTable))})
	}
	return b.StringTable[idx], true
}

// ReadSArray reads n string-table references.
func (b *ByteBuffer) ReadSArray(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = b.ReadS()
	}
	return out
}

// WriteS replaces the string-table entry referenced at the cursor.
// Sentinel references are left alone.
func (b *ByteBuffer) WriteS(value string) {
	idx := int(b.ReadUshort())
	if idx != stringNull && idx != stringEmpty && idx < len(b.StringTable) {
		b.StringTable[idx] = value
	}
}

// ReadColor reads four bytes r, g, b, a.
func (b *ByteBuffer) ReadColor() Color {
	p := b.need(4)
	return ColorFromRGBA8(p[0], p[1], p[2], p[3])
}

// ReadBuffer reads an int length and returns a sub-buffer over the next
// length bytes, sharing the string table and version.
func (b *ByteBuffer) ReadBuffer() *ByteBuffer {
	n := int(b.ReadInt())
	start := b.pos
	b.need(n)
	return &ByteBuffer{
		LittleEndian: b.LittleEndian,
		StringTable:  b.StringTable,
		Version:      b.Version,
		data:         b.data,
		offset:       b.offset + start,
		length:       n,
	}
}

// Seek moves the cursor to block blockIndex of the index table at
// indexTablePos. The table is a one-byte segment count, a one-byte width
// flag (1 = 16-bit offsets, otherwise 32-bit) and the offset array. A zero
// offset marks an absent block. On any failure the cursor is unchanged and
// Seek returns false.
func (b *ByteBuffer) Seek(indexTablePos, blockIndex int) bool {
	saved := b.pos
	b.pos = indexTablePos
	if b.pos < 0 || b.pos >= b.length {
		b.pos = saved
		return false
	}
	segCount := int(b.data[b.offset+b.pos])
	b.pos++
	if blockIndex >= segCount || b.pos >= b.length {
		b.pos = saved
		return false
	}
	useShort := b.data[b.offset+b.pos] == 1
	b.pos++

	var newPos int
	if useShort {
		b.pos += 2 * blockIndex
		if b.pos+2 > b.length {
			b.pos = saved
			return false
		}
		newPos = int(b.ReadShort())
	} else {
		b.pos += 4 * blockIndex
		if b.pos+4 > b.length {
			b.pos = saved
			return false
		}
		newPos = int(b.ReadInt())
	}
	if newPos <= 0 || indexTablePos+newPos > b.length {
		b.pos = saved
		return false
	}
	b.pos = indexTablePos + newPos
	return true
}

package util

import (
	"io"
)

// Buffer is a growable byte buffer with independent write and read cursors.
// Writes always append; reads consume from the read cursor and fail with
// ErrUnderflow instead of returning zero values when the buffer is exhausted.
//
// The zero value is an empty buffer ready to use.
type Buffer struct {
	buf []byte
	off int // read cursor
}

// NewBuffer returns a Buffer reading from b.
// The buffer takes ownership of b.
func NewBuffer(b []byte) *Buffer {
	return &Buffer{buf: b}
}

// Bytes returns exactly the written bytes, including already read ones.
func (b *Buffer) Bytes() []byte { return b.buf }

// Len returns the number of written bytes.
func (b *Buffer) Len() int { return len(b.buf) }

// Remaining returns the number of unread bytes.
func (b *Buffer) Remaining() int { return len(b.buf) - b.off }

// ReaderIndex returns the read cursor position.
func (b *Buffer) ReaderIndex() int { return b.off }

// Write implements io.Writer and never fails.
func (b *Buffer) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// WriteByte implements io.ByteWriter and never fails.
func (b *Buffer) WriteByte(c byte) error {
	b.buf = append(b.buf, c)
	return nil
}

// Read implements io.Reader.
func (b *Buffer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if b.off >= len(b.buf) {
		return 0, io.EOF
	}
	n := copy(p, b.buf[b.off:])
	b.off += n
	return n, nil
}

// ReadByte implements io.ByteReader.
func (b *Buffer) ReadByte() (byte, error) {
	if b.off >= len(b.buf) {
		return 0, io.EOF
	}
	c := b.buf[b.off]
	b.off++
	return c, nil
}

// Next returns the next n unread bytes and advances the read cursor.
func (b *Buffer) Next(n int) ([]byte, error) {
	if n < 0 || b.Remaining() < n {
		return nil, ErrUnderflow
	}
	p := b.buf[b.off : b.off+n]
	b.off += n
	return p, nil
}

func (b *Buffer) WriteVarInt(v int)       { _ = WriteVarInt(b, v) }
func (b *Buffer) WriteBool(v bool)        { _ = WriteBool(b, v) }
func (b *Buffer) WriteInt8(v int8)        { _ = WriteInt8(b, v) }
func (b *Buffer) WriteUint8(v uint8)      { _ = WriteUint8(b, v) }
func (b *Buffer) WriteInt16(v int16)      { _ = WriteInt16(b, v) }
func (b *Buffer) WriteUint16(v uint16)    { _ = WriteUint16(b, v) }
func (b *Buffer) WriteInt32(v int32)      { _ = WriteInt32(b, v) }
func (b *Buffer) WriteUint32(v uint32)    { _ = WriteUint32(b, v) }
func (b *Buffer) WriteInt64(v int64)      { _ = WriteInt64(b, v) }
func (b *Buffer) WriteUint64(v uint64)    { _ = WriteUint64(b, v) }
func (b *Buffer) WriteFloat32(v float32)  { _ = WriteFloat32(b, v) }
func (b *Buffer) WriteFloat64(v float64)  { _ = WriteFloat64(b, v) }
func (b *Buffer) WriteString(v string)    { _ = WriteString(b, v) }
func (b *Buffer) WriteStrings(v []string) { _ = WriteStrings(b, v) }
func (b *Buffer) WritePosition(x, y, z int) {
	b.WriteInt32(int32(x))
	b.WriteInt32(int32(y))
	b.WriteInt32(int32(z))
}

func (b *Buffer) ReadVarInt() (int, error)           { return ReadVarInt(b) }
func (b *Buffer) ReadBool() (bool, error)            { return ReadBool(b) }
func (b *Buffer) ReadInt8() (int8, error)            { return ReadInt8(b) }
func (b *Buffer) ReadUint8() (uint8, error)          { return ReadUint8(b) }
func (b *Buffer) ReadInt16() (int16, error)          { return ReadInt16(b) }
func (b *Buffer) ReadUint16() (uint16, error)        { return ReadUint16(b) }
func (b *Buffer) ReadInt32() (int32, error)          { return ReadInt32(b) }
func (b *Buffer) ReadUint32() (uint32, error)        { return ReadUint32(b) }
func (b *Buffer) ReadInt64() (int64, error)          { return ReadInt64(b) }
func (b *Buffer) ReadUint64() (uint64, error)        { return ReadUint64(b) }
func (b *Buffer) ReadFloat32() (float32, error)      { return ReadFloat32(b) }
func (b *Buffer) ReadFloat64() (float64, error)      { return ReadFloat64(b) }
func (b *Buffer) ReadString() (string, error)        { return ReadString(b) }
func (b *Buffer) ReadStringArray() ([]string, error) { return ReadStringArray(b) }

// ReadPosition reads three int32 coordinates.
func (b *Buffer) ReadPosition() (x, y, z int, err error) {
	var v [3]int32
	for i := range v {
		if v[i], err = b.ReadInt32(); err != nil {
			return 0, 0, 0, err
		}
	}
	return int(v[0]), int(v[1]), int(v[2]), nil
}

var (
	_ io.Reader     = (*Buffer)(nil)
	_ io.ByteReader = (*Buffer)(nil)
	_ io.Writer     = (*Buffer)(nil)
	_ io.ByteWriter = (*Buffer)(nil)
)

package util

import (
	"encoding/binary"
	"io"
	"math"
)

func WriteString(writer io.Writer, val string) (err error) {
	return WriteBytes(writer, []byte(val))
}

// WriteVarInt writes val in 7 bit groups, least significant group first.
// Negative values are written as their uint32 two's complement (5 bytes).
func WriteVarInt(writer io.Writer, val int) (err error) {
	uval := uint32(val)
	for uval >= 0x80 {
		err = WriteUint8(writer, byte(uval)|0x80)
		if err != nil {
			return
		}
		uval >>= 7
	}
	err = WriteUint8(writer, byte(uval))
	return
}

func WriteBool(writer io.Writer, val bool) (err error) {
	if val {
		err = WriteUint8(writer, 1)
	} else {
		err = WriteUint8(writer, 0)
	}
	return
}

// equal to WriteUint8
func WriteInt8(writer io.Writer, val int8) (err error) {
	return WriteUint8(writer, uint8(val))
}

func WriteUint8(writer io.Writer, val uint8) (err error) {
	if bw, ok := writer.(io.ByteWriter); ok {
		return bw.WriteByte(val)
	}
	var b [1]byte
	b[0] = val
	_, err = writer.Write(b[:1])
	return
}

func WriteInt16(writer io.Writer, val int16) (err error) {
	err = WriteUint16(writer, uint16(val))
	return
}

func WriteUint16(writer io.Writer, val uint16) (err error) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:2], val)
	_, err = writer.Write(b[:2])
	return
}

func WriteInt32(writer io.Writer, val int32) (err error) {
	err = WriteUint32(writer, uint32(val))
	return
}

func WriteUint32(writer io.Writer, val uint32) (err error) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:4], val)
	_, err = writer.Write(b[:4])
	return
}

func WriteInt64(writer io.Writer, val int64) (err error) {
	err = WriteUint64(writer, uint64(val))
	return
}

func WriteUint64(writer io.Writer, val uint64) (err error) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:8], val)
	_, err = writer.Write(b[:8])
	return
}

func WriteFloat32(writer io.Writer, val float32) (err error) {
	return WriteUint32(writer, math.Float32bits(val))
}

func WriteFloat64(writer io.Writer, val float64) (err error) {
	return WriteUint64(writer, math.Float64bits(val))
}

func WriteBytes(wr io.Writer, b []byte) (err error) {
	err = WriteVarInt(wr, len(b))
	if err != nil {
		return err
	}
	_, err = wr.Write(b)
	return err
}

func WriteStrings(wr io.Writer, a []string) error {
	err := WriteVarInt(wr, len(a))
	if err != nil {
		return err
	}
	for _, s := range a {
		err = WriteString(wr, s)
		if err != nil {
			return err
		}
	}
	return nil
}

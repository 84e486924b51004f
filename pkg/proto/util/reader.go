package util

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrUnderflow is returned when a read needs more bytes than are available.
var ErrUnderflow = errors.New("buffer underflow")

// ErrVarIntTooBig is returned when a VarInt is longer than 5 bytes.
var ErrVarIntTooBig = errors.New("decode: VarInt is too big")

func ReadString(rd io.Reader) (string, error) {
	return ReadStringMax(rd, bufio.MaxScanTokenSize)
}

func ReadStringMax(rd io.Reader, max int) (string, error) {
	length, err := ReadVarInt(rd)
	if err != nil {
		return "", err
	}
	if length < 0 {
		return "", fmt.Errorf("decode, string length is < 0: %d", length)
	}
	if length > max*4 { // *4 since UTF8 character has up to 4 bytes
		return "", fmt.Errorf("bad string length (got %d, max. %d)", length, max)
	}
	str := make([]byte, length)
	if err = readFull(rd, str); err != nil {
		return "", err
	}
	return string(str), nil
}

func ReadStringArray(rd io.Reader) ([]string, error) {
	length, err := ReadVarInt(rd)
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, fmt.Errorf("got negative-length string array (%d)", length)
	}
	a := make([]string, 0, min(length, 64))
	for i := 0; i < length; i++ {
		s, err := ReadString(rd)
		if err != nil {
			return nil, err
		}
		a = append(a, s)
	}
	return a, nil
}

func ReadVarInt(r io.Reader) (result int, err error) {
	var n uint32
	for i := 0; ; i++ {
		if i >= 5 {
			return 0, ErrVarIntTooBig
		}
		sec, err := ReadUint8(r)
		if err != nil {
			return 0, err
		}
		// The 5th byte only holds the 4 most significant bits.
		if i == 4 && sec&0x70 != 0 {
			return 0, ErrVarIntTooBig
		}
		n |= uint32(sec&0x7F) << uint32(7*i)
		if sec&0x80 == 0 {
			break
		}
	}
	return int(int32(n)), nil
}

func ReadBool(reader io.Reader) (val bool, err error) {
	uval, err := ReadUint8(reader)
	if err != nil {
		return
	}
	val = uval != 0
	return
}

func ReadInt8(reader io.Reader) (val int8, err error) {
	uval, err := ReadUint8(reader)
	val = int8(uval)
	return
}

func ReadUint8(reader io.Reader) (val uint8, err error) {
	if br, ok := reader.(io.ByteReader); ok {
		val, err = br.ReadByte()
		if errors.Is(err, io.EOF) {
			err = ErrUnderflow
		}
		return
	}
	var b [1]byte
	err = readFull(reader, b[:])
	val = b[0]
	return
}

func ReadInt16(reader io.Reader) (val int16, err error) {
	uval, err := ReadUint16(reader)
	val = int16(uval)
	return
}

func ReadUint16(reader io.Reader) (val uint16, err error) {
	var b [2]byte
	if err = readFull(reader, b[:]); err != nil {
		return
	}
	val = binary.BigEndian.Uint16(b[:])
	return
}

func ReadInt32(reader io.Reader) (val int32, err error) {
	uval, err := ReadUint32(reader)
	val = int32(uval)
	return
}

func ReadUint32(reader io.Reader) (val uint32, err error) {
	var b [4]byte
	if err = readFull(reader, b[:]); err != nil {
		return
	}
	val = binary.BigEndian.Uint32(b[:])
	return
}

func ReadInt64(reader io.Reader) (val int64, err error) {
	uval, err := ReadUint64(reader)
	val = int64(uval)
	return
}

func ReadUint64(reader io.Reader) (val uint64, err error) {
	var b [8]byte
	if err = readFull(reader, b[:]); err != nil {
		return
	}
	val = binary.BigEndian.Uint64(b[:])
	return
}

func ReadFloat32(reader io.Reader) (val float32, err error) {
	ival, err := ReadUint32(reader)
	val = math.Float32frombits(ival)
	return
}

func ReadFloat64(reader io.Reader) (val float64, err error) {
	ival, err := ReadUint64(reader)
	val = math.Float64frombits(ival)
	return
}

// readFull is io.ReadFull reporting short reads as ErrUnderflow.
func readFull(rd io.Reader, p []byte) error {
	_, err := io.ReadFull(rd, p)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrUnderflow
	}
	return err
}

package util

import (
	"bytes"
	"math"
	"testing"
)

// writeVarIntOld implements the traditional VarInt encoding for testing.
func writeVarIntOld(buf *bytes.Buffer, value int) {
	uvalue := uint32(value)
	for {
		if (uvalue & 0xFFFFFF80) == 0 {
			buf.WriteByte(byte(uvalue))
			return
		}
		buf.WriteByte(byte(uvalue&0x7F | 0x80))
		uvalue >>= 7
	}
}

// TestBytesWrittenAtBitBoundaries tests that our implementation matches traditional encoding.
func TestBytesWrittenAtBitBoundaries(t *testing.T) {
	for bit := 0; bit <= 31; bit++ {
		number := (1 << bit) - 1

		var bufNew Buffer
		bufNew.WriteVarInt(number)

		var bufOld bytes.Buffer
		writeVarIntOld(&bufOld, number)

		if !bytes.Equal(bufNew.Bytes(), bufOld.Bytes()) {
			t.Errorf("Encoding of %d was invalid: new=%v, old=%v", number, bufNew.Bytes(), bufOld.Bytes())
		}

		readNew, err := ReadVarInt(bytes.NewReader(bufOld.Bytes()))
		if err != nil {
			t.Fatalf("Failed to read VarInt %d: %v", number, err)
		}
		if readNew != number {
			t.Errorf("Read mismatch for %d: got %d", number, readNew)
		}
	}
}

// TestPositiveVarIntRoundtrip tests positive VarInt values with incremental steps.
func TestPositiveVarIntRoundtrip(t *testing.T) {
	for i := 0; i >= 0 && i < 1000000; i += 127 {
		b := new(Buffer)
		b.WriteVarInt(i)

		readValue, err := b.ReadVarInt()
		if err != nil {
			t.Fatalf("Failed to read VarInt %d: %v", i, err)
		}
		if readValue != i {
			t.Errorf("VarInt roundtrip failed for %d: got %d", i, readValue)
		}
		if i > math.MaxInt32-127 {
			break
		}
	}
}

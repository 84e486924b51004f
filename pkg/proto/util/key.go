package util

import (
	"io"

	"go.minekube.com/common/minecraft/key"

	"go.minekube.com/veinminer/pkg/veinminer"
)

func ReadKey(rd io.Reader) (key.Key, error) {
	s, err := ReadString(rd)
	if err != nil {
		return nil, err
	}
	return key.Parse(s)
}

func WriteKey(wr io.Writer, k key.Key) error {
	return WriteString(wr, veinminer.KeyString(k))
}

func (b *Buffer) WriteKey(k key.Key)        { _ = WriteKey(b, k) }
func (b *Buffer) ReadKey() (key.Key, error) { return ReadKey(b) }

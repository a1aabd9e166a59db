package utils

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// MaxVarBytesLen bounds the length prefix accepted by ReadVarBytes.
const MaxVarBytesLen = 1 << 20

type readByte struct {
	in   io.Reader
	read int
}

func (s *readByte) ReadByte() (byte, error) {
	var data [1]byte
	_, err := io.ReadFull(s.in, data[:])
	s.read++
	return data[0], err
}

// ReadVarInt reads a zig-zag varint and reports how many bytes it consumed.
func ReadVarInt(sr io.Reader) (num int64, n int64, err error) {
	rb := &readByte{in: sr}
	num, err = binary.ReadVarint(rb)
	return num, int64(rb.read), err
}

// ReadVarBytes reads a varint length prefix followed by that many bytes.
func ReadVarBytes(r io.Reader) (data []byte, varIntLen int, err error) {
	num, n, err := ReadVarInt(r)
	if err != nil {
		return nil, 0, errors.Wrap(err, "read length prefix")
	}
	if num < 0 || num > MaxVarBytesLen {
		return nil, int(n), errors.Errorf("invalid length prefix %d", num)
	}

	varIntLen = int(n)
	data = make([]byte, num)
	if _, err = io.ReadFull(r, data); err != nil {
		return nil, varIntLen, errors.Wrapf(err, "read %d bytes", num)
	}
	return data, varIntLen, nil
}

func writeVarNum(num int64, buf []byte) (data []byte) {
	if len(buf) < binary.MaxVarintLen64 {
		buf = make([]byte, binary.MaxVarintLen64)
	}
	n := binary.PutVarint(buf, num)
	data = buf[:n]
	return
}

// WriteVarBytes writes data prefixed by its varint length.
func WriteVarBytes(w io.Writer, data []byte) error {
	if err := WriteVarInt(w, int64(len(data))); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "write bytes")
	}
	return nil
}

// WriteVarInt writes num as a zig-zag varint.
func WriteVarInt(w io.Writer, num int64) error {
	if _, err := w.Write(writeVarNum(num, nil)); err != nil {
		return errors.Wrap(err, "write varint")
	}
	return nil
}

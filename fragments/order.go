package fragments

import (
	"encoding/binary"

	"golang.org/x/sys/cpu"
)

// A ByteOrder reads and writes multi-byte integers in message
// buffers.
type ByteOrder interface {
	byteOrder
	isBigEndian() bool
}

type byteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

type wrapStd struct {
	byteOrder
}

func (w wrapStd) isBigEndian() bool {
	switch w.byteOrder {
	case binary.BigEndian:
		return true
	case binary.LittleEndian:
		return false
	case binary.NativeEndian:
		return cpu.IsBigEndian
	default:
		panic("unknown ByteOrder, how did you manage to make one of those?")
	}
}

// Byte orders for message buffers. Messages on the wire are always
// LittleEndian.
var (
	BigEndian    = wrapStd{binary.BigEndian}
	LittleEndian = wrapStd{binary.LittleEndian}
	NativeEndian = wrapStd{binary.NativeEndian}
)

// IsNative reports whether ord matches the byte order of the running
// machine, in which case multi-byte values in a message can be used
// in place without swapping.
func IsNative(ord ByteOrder) bool {
	return ord.isBigEndian() == cpu.IsBigEndian
}

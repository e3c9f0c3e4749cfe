package fragments

import (
	"errors"
)

// An Encoder writes a wire format message into a fixed-capacity byte
// slice.
//
// Like [Decoder], objects are claimed in message order. Every claimed
// object is zero filled, including the padding that rounds it up to
// [Alignment], so bytes the caller does not explicitly write are
// always zero regardless of the previous contents of Out.
type Encoder struct {
	// Order is the byte order to use when writing multi-byte values.
	Order ByteOrder
	// Out is the output buffer. Its length is the capacity available
	// for the message.
	Out []byte

	// next is the offset of the first unclaimed byte. It is always a
	// multiple of Alignment.
	next uint32
}

// Primary claims the primary object of the message, of the given
// size, and returns its offset. Primary must be called exactly once,
// before any call to [Encoder.OutOfLine].
func (e *Encoder) Primary(size uint64) (uint32, error) {
	if e.next != 0 {
		return 0, errors.New("primary object already claimed")
	}
	return e.claim(size)
}

// OutOfLine claims the next out-of-line object of the given size,
// and returns its offset.
func (e *Encoder) OutOfLine(size uint64) (uint32, error) {
	return e.claim(size)
}

func (e *Encoder) claim(size uint64) (uint32, error) {
	off, end, err := claimRange(e.next, size, len(e.Out))
	if err != nil {
		return 0, err
	}
	e.Pad(off, end)
	e.next = end
	return off, nil
}

// Pad writes zero bytes to Out[from:to].
func (e *Encoder) Pad(from, to uint32) {
	clear(e.Out[from:to])
}

// Next returns the offset of the first unclaimed byte, which is also
// the length of the message encoded so far.
func (e *Encoder) Next() uint32 {
	return e.next
}

// Bytes returns the encoded message.
func (e *Encoder) Bytes() []byte {
	return e.Out[:e.next]
}

// Write writes bs as-is at offset off. It is the caller's
// responsibility to ensure the write falls within a claimed object.
func (e *Encoder) Write(off uint32, bs []byte) {
	copy(e.Out[off:], bs)
}

// Uint8 writes a uint8 at offset off.
func (e *Encoder) Uint8(off uint32, u8 uint8) {
	e.Out[off] = u8
}

// Uint16 writes a uint16 at offset off.
func (e *Encoder) Uint16(off uint32, u16 uint16) {
	e.Order.PutUint16(e.Out[off:], u16)
}

// Uint32 writes a uint32 at offset off.
func (e *Encoder) Uint32(off uint32, u32 uint32) {
	e.Order.PutUint32(e.Out[off:], u32)
}

// Uint64 writes a uint64 at offset off.
func (e *Encoder) Uint64(off uint32, u64 uint64) {
	e.Order.PutUint64(e.Out[off:], u64)
}

package fragments

import (
	"errors"
	"fmt"
	"math"
)

// ErrShortBuffer is returned when claiming an object would run past
// the end of a message buffer.
var ErrShortBuffer = errors.New("short buffer")

// Alignment is the alignment, in bytes, of every object in a
// message.
const Alignment = 8

// Align rounds n up to the next multiple of [Alignment].
func Align(n uint64) uint64 {
	return (n + Alignment - 1) &^ (Alignment - 1)
}

// A Decoder reads a wire format message from a byte slice.
//
// Objects must be claimed in the order they appear in the message:
// the primary object first with [Decoder.Primary], then each
// out-of-line object with [Decoder.OutOfLine]. Reads are only valid
// within claimed objects; the Decoder does not bounds check them
// beyond what the underlying slice does.
type Decoder struct {
	// Order is the byte order to use when reading multi-byte values.
	Order ByteOrder
	// In is the message to read. Its length is the declared length
	// of the message.
	In []byte

	// next is the offset of the first unclaimed byte. It is always a
	// multiple of Alignment.
	next uint32
}

// Primary claims the primary object of the message, of the given
// size, and returns its offset. Primary must be called exactly once,
// before any call to [Decoder.OutOfLine].
func (d *Decoder) Primary(size uint64) (uint32, error) {
	if d.next != 0 {
		return 0, errors.New("primary object already claimed")
	}
	return d.claim(size)
}

// OutOfLine claims the next out-of-line object of the given size,
// and returns its offset. The claimed region is rounded up to a
// multiple of [Alignment].
func (d *Decoder) OutOfLine(size uint64) (uint32, error) {
	return d.claim(size)
}

func (d *Decoder) claim(size uint64) (uint32, error) {
	off, end, err := claimRange(d.next, size, len(d.In))
	if err != nil {
		return 0, err
	}
	d.next = end
	return off, nil
}

// Next returns the offset of the first unclaimed byte, which is also
// the number of bytes of the message consumed so far.
func (d *Decoder) Next() uint32 {
	return d.next
}

// Remaining returns the number of bytes of the message that have not
// been claimed.
func (d *Decoder) Remaining() int {
	return len(d.In) - int(d.next)
}

// Read returns the n bytes at offset off, with no framing. The
// returned slice aliases the input buffer.
func (d *Decoder) Read(off uint32, n uint32) []byte {
	return d.In[off : off+n : off+n]
}

// Uint8 reads a uint8 at offset off.
func (d *Decoder) Uint8(off uint32) uint8 {
	return d.In[off]
}

// Uint16 reads a uint16 at offset off.
func (d *Decoder) Uint16(off uint32) uint16 {
	return d.Order.Uint16(d.In[off:])
}

// Uint32 reads a uint32 at offset off.
func (d *Decoder) Uint32(off uint32) uint32 {
	return d.Order.Uint32(d.In[off:])
}

// Uint64 reads a uint64 at offset off.
func (d *Decoder) Uint64(off uint32) uint64 {
	return d.Order.Uint64(d.In[off:])
}

// claimRange computes the object placed at next with the given size
// in a buffer of length limit. It returns the object's offset and
// the aligned end of the object.
func claimRange(next uint32, size uint64, limit int) (off, end uint32, err error) {
	if size > math.MaxUint32 {
		return 0, 0, fmt.Errorf("%w: object of %d bytes exceeds the maximum message size", ErrShortBuffer, size)
	}
	total := uint64(next) + Align(size)
	if total > uint64(limit) {
		return 0, 0, fmt.Errorf("%w: need %d bytes at offset %d, buffer has %d", ErrShortBuffer, Align(size), next, limit)
	}
	return next, uint32(total), nil
}

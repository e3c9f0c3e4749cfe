package transcode

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"

	"github.com/danderson/transcode/fragments"
)

// A Direction selects the source and destination encodings of a
// transform.
type Direction uint32

const (
	// LegacyToExtensible transforms legacy messages into the
	// extensible encoding.
	LegacyToExtensible Direction = iota + 1
	// ExtensibleToLegacy transforms extensible messages into the
	// legacy encoding.
	ExtensibleToLegacy
)

func (d Direction) String() string {
	switch d {
	case LegacyToExtensible:
		return "legacy-to-extensible"
	case ExtensibleToLegacy:
		return "extensible-to-legacy"
	default:
		return "Direction(0x" + strconv.FormatUint(uint64(d), 16) + ")"
	}
}

// ParseDirection parses the String form of a Direction.
func ParseDirection(s string) (Direction, error) {
	for _, d := range []Direction{LegacyToExtensible, ExtensibleToLegacy} {
		if s == d.String() {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q, want %q or %q", s, LegacyToExtensible, ExtensibleToLegacy)
}

// Encodings returns the source and destination encodings of the
// direction. ok is false if d is not a known direction.
func (d Direction) Encodings() (from, to Encoding, ok bool) {
	switch d {
	case LegacyToExtensible:
		return Legacy, Extensible, true
	case ExtensibleToLegacy:
		return Extensible, Legacy, true
	default:
		return 0, 0, false
	}
}

// MaxMessageSize is the largest message the transport carries, and
// the size of the buffer allocated by [Transcode].
const MaxMessageSize = 65536

// Presence markers for out-of-line objects and handles.
const (
	absent         = 0
	present        = math.MaxUint64
	handlePresent  = math.MaxUint32
	handleAbsent   = 0
	reservedOffset = 4
	envelopeOffset = 8
)

const debugTransforms = false

func debugTransform(msg string, args ...any) {
	if !debugTransforms {
		return
	}
	log.Printf(msg, args...)
}

// Transform rewrites the message src, a value of type typ, from one
// encoding to the other as selected by dir. The transformed message
// is written to dst, and Transform returns the prefix of dst that
// holds it.
//
// len(src) must be exactly the length of the message. len(dst) is
// the capacity available for the output; if it is insufficient,
// Transform fails with [ErrBufferOverflow] and the contents of dst are
// unspecified.
//
// Any error is an [*Error] wrapping one of the Err* kinds. There is no
// partial success.
func Transform(dir Direction, typ *Type, src, dst []byte) ([]byte, error) {
	from, to, ok := dir.Encodings()
	if !ok {
		return nil, transformErr(ErrUnsupportedTransformation, "unsupported transformation %#x", uint32(dir))
	}
	if typ == nil || typ.kind == Invalid {
		return nil, transformErr(ErrInvalidInput, "cannot transform a message of undefined type")
	}
	if len(src) > math.MaxUint32 {
		return nil, transformErr(ErrInvalidInput, "message of %d bytes is too large", len(src))
	}
	debugTransform("Transform(%s, %s, %d bytes, %d capacity)", dir, typ, len(src), len(dst))

	w := walker{
		from: from,
		to:   to,
		src: &fragments.Decoder{
			Order: fragments.LittleEndian,
			In:    src,
		},
		dst: &fragments.Encoder{
			Order: fragments.LittleEndian,
			Out:   dst,
		},
	}
	srcOff, err := w.src.Primary(uint64(typ.Size(from)))
	if err != nil {
		return nil, w.srcErr(err)
	}
	dstOff, err := w.dst.Primary(uint64(typ.Size(to)))
	if err != nil {
		return nil, w.dstErr(err)
	}
	if err := w.value(typ, srcOff, dstOff); err != nil {
		if typ.name != "" {
			err = withPath(err, typ.name)
		}
		return nil, err
	}
	if got := w.src.Next(); int(got) != len(src) {
		return nil, transformErr(ErrInvalidInput, "message declares %d bytes, but %s value occupies %d", len(src), typ, got)
	}
	return w.dst.Bytes(), nil
}

// Transcode is like [Transform], but allocates a destination buffer
// of [MaxMessageSize] bytes.
func Transcode(dir Direction, typ *Type, src []byte) ([]byte, error) {
	return Transform(dir, typ, src, make([]byte, MaxMessageSize))
}

// walker transforms one message. It makes a single forward pass over
// both buffers, visiting out-of-line objects depth-first in the order
// they appear, which is the same in both encodings.
type walker struct {
	from, to Encoding
	src      *fragments.Decoder
	dst      *fragments.Encoder
	// handles is the number of present handles visited so far. An
	// envelope's handle count is the growth of handles across the
	// envelope's payload.
	handles uint32
}

func (w *walker) srcErr(err error) error {
	if errors.Is(err, fragments.ErrShortBuffer) {
		return transformErr(ErrInvalidInput, "message truncated: %v", err)
	}
	return transformErr(ErrInvalidInput, "%v", err)
}

func (w *walker) dstErr(err error) error {
	return transformErr(ErrBufferOverflow, "destination buffer too small: %v", err)
}

// value transforms the value of type t at srcOff in the source to
// dstOff in the destination. Both offsets are inline positions within
// already claimed objects.
func (w *walker) value(t *Type, srcOff, dstOff uint32) error {
	switch t.kind {
	case Primitive:
		n := t.Size(w.from)
		w.dst.Write(dstOff, w.src.Read(srcOff, n))
		return nil
	case Struct, Array:
		if plan := planFor(t); plan.flat {
			for _, s := range plan.spans[w.from] {
				w.dst.Write(dstOff+s.dst, w.src.Read(srcOff+s.src, s.n))
			}
			return nil
		}
		if t.kind == Array {
			return w.array(t, srcOff, dstOff)
		}
		return w.structFields(t, srcOff, dstOff)
	case Vector, String:
		return w.vector(t, srcOff, dstOff)
	case Pointer:
		return w.pointer(t, srcOff, dstOff)
	case Handle:
		return w.handle(t, srcOff, dstOff)
	case Union:
		if w.from == Legacy {
			return w.unionToExtensible(t, srcOff, dstOff)
		}
		return w.unionToLegacy(t, srcOff, dstOff)
	case Table:
		return w.table(t, srcOff, dstOff)
	default:
		return transformErr(ErrInvalidInput, "cannot transform value of undefined type %s", t)
	}
}

func (w *walker) structFields(t *Type, srcOff, dstOff uint32) error {
	debugTransform("struct %s{} at %d -> %d", t, srcOff, dstOff)
	for _, f := range t.fields {
		if err := w.value(f.Type, srcOff+f.offset[w.from], dstOff+f.offset[w.to]); err != nil {
			return withPath(err, f.Name)
		}
	}
	return nil
}

func (w *walker) array(t *Type, srcOff, dstOff uint32) error {
	ss, ds := t.elem.Size(w.from), t.elem.Size(w.to)
	for i := range t.count {
		if err := w.value(t.elem, srcOff+i*ss, dstOff+i*ds); err != nil {
			return withPath(err, "["+strconv.FormatUint(uint64(i), 10)+"]")
		}
	}
	return nil
}

// presence reads and validates the presence marker at off in the
// source.
func (w *walker) presence(t *Type, off uint32) (bool, error) {
	switch p := w.src.Uint64(off); p {
	case present:
		return true, nil
	case absent:
		if !t.nullable {
			return false, transformErr(ErrInvalidInput, "non-nullable %s is absent", t)
		}
		return false, nil
	default:
		return false, transformErr(ErrInvalidInput, "invalid presence marker %#x for %s", p, t)
	}
}

func (w *walker) vector(t *Type, srcOff, dstOff uint32) error {
	count := w.src.Uint64(srcOff)
	ok, err := w.presence(t, srcOff+8)
	if err != nil {
		return err
	}
	if !ok {
		if count != 0 {
			return transformErr(ErrInvalidInput, "absent %s has nonzero count %d", t, count)
		}
		// The destination header is already zero.
		return nil
	}
	if t.count > 0 && count > uint64(t.count) {
		return transformErr(ErrInvalidInput, "%s has %d elements, exceeding the maximum of %d", t, count, t.count)
	}
	debugTransform("%s{%d} at %d -> %d", t, count, srcOff, dstOff)

	srcSize, dstSize, overflow := blockSizes(t.elem, w.from, w.to, count)
	if overflow {
		return transformErr(ErrInvalidInput, "%s with %d elements is larger than any message", t, count)
	}
	srcBlock, err := w.src.OutOfLine(srcSize)
	if err != nil {
		return w.srcErr(err)
	}
	dstBlock, err := w.dst.OutOfLine(dstSize)
	if err != nil {
		return w.dstErr(err)
	}

	if t.elem.kind == Primitive {
		w.dst.Write(dstBlock, w.src.Read(srcBlock, uint32(srcSize)))
	} else {
		ss, ds := t.elem.Size(w.from), t.elem.Size(w.to)
		for i := range uint32(count) {
			if err := w.value(t.elem, srcBlock+i*ss, dstBlock+i*ds); err != nil {
				return withPath(err, "["+strconv.FormatUint(uint64(i), 10)+"]")
			}
		}
	}

	w.dst.Uint64(dstOff, count)
	w.dst.Uint64(dstOff+8, present)
	return nil
}

// blockSizes returns the sizes of an out-of-line block of count
// elems in each encoding. overflow reports whether either size cannot
// be represented, which no valid message can contain.
func blockSizes(elem *Type, from, to Encoding, count uint64) (src, dst uint64, overflow bool) {
	ss, ds := uint64(elem.Size(from)), uint64(elem.Size(to))
	if count > math.MaxUint32 {
		return 0, 0, true
	}
	// count and sizes fit in 32 bits, so the products fit in 64.
	return count * ss, count * ds, false
}

func (w *walker) pointer(t *Type, srcOff, dstOff uint32) error {
	ok, err := w.presence(t, srcOff)
	if err != nil || !ok {
		return err
	}
	srcObj, err := w.src.OutOfLine(uint64(t.elem.Size(w.from)))
	if err != nil {
		return w.srcErr(err)
	}
	dstObj, err := w.dst.OutOfLine(uint64(t.elem.Size(w.to)))
	if err != nil {
		return w.dstErr(err)
	}
	if err := w.value(t.elem, srcObj, dstObj); err != nil {
		return err
	}
	w.dst.Uint64(dstOff, present)
	return nil
}

func (w *walker) handle(t *Type, srcOff, dstOff uint32) error {
	switch h := w.src.Uint32(srcOff); h {
	case handlePresent:
		w.handles++
	case handleAbsent:
		if !t.nullable {
			return transformErr(ErrInvalidInput, "non-nullable handle is absent")
		}
	default:
		return transformErr(ErrInvalidInput, "invalid handle marker %#x", h)
	}
	w.dst.Uint32(dstOff, w.src.Uint32(srcOff))
	return nil
}

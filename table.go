package transcode

import (
	"strconv"
)

// table transforms a table at srcOff to dstOff. Tables have the same
// frame in both encodings, a vector of envelopes indexed by ordinal,
// but the fields they carry may need transforming.
//
// Fields with ordinals unknown to the schema are copied verbatim,
// along with their handle count.
func (w *walker) table(t *Type, srcOff, dstOff uint32) error {
	count := w.src.Uint64(srcOff)
	if _, err := w.presence(t, srcOff+8); err != nil {
		return err
	}
	debugTransform("table %s{%d} at %d -> %d", t, count, srcOff, dstOff)

	size, _, overflow := blockSizes(envelopeType, w.from, w.to, count)
	if overflow {
		return transformErr(ErrInvalidInput, "table %s with %d envelopes is larger than any message", t, count)
	}
	srcEnvs, err := w.src.OutOfLine(size)
	if err != nil {
		return w.srcErr(err)
	}
	dstEnvs, err := w.dst.OutOfLine(size)
	if err != nil {
		return w.dstErr(err)
	}

	for i := range uint32(count) {
		ord := i + 1
		off := i * envelopeSize
		env, err := w.readEnvelope(srcEnvs + off)
		if err != nil {
			return withPath(err, "#"+strconv.FormatUint(uint64(ord), 10))
		}
		if !env.present {
			continue
		}
		f, known := t.TableField(ord)
		if !known {
			out, err := w.unknownEnvelope(env)
			if err != nil {
				return withPath(err, "#"+strconv.FormatUint(uint64(ord), 10))
			}
			w.writeEnvelope(dstEnvs+off, out)
			continue
		}

		out, err := w.tableField(f.Type, env)
		if err != nil {
			return withPath(err, f.Name)
		}
		w.writeEnvelope(dstEnvs+off, out)
	}

	w.dst.Uint64(dstOff, count)
	w.dst.Uint64(dstOff+8, present)
	return nil
}

// envelopeType is a stand-in for the layout of an envelope, used to
// size envelope vectors.
var envelopeType = ArrayOf(Uint64, envelopeSize/8)

// tableField transforms the payload of a known table field, which is
// out-of-line in both encodings.
func (w *walker) tableField(t *Type, env envelope) (envelope, error) {
	start, handles := w.src.Next(), w.handles
	srcOff, err := w.src.OutOfLine(uint64(t.Size(w.from)))
	if err != nil {
		return envelope{}, w.srcErr(err)
	}
	out, err := w.payloadToEnvelope(t, srcOff)
	if err != nil {
		return envelope{}, err
	}
	if got := w.src.Next() - start; got != env.numBytes {
		return envelope{}, transformErr(ErrSizeMismatch, "envelope declares %d bytes, but %s payload occupies %d", env.numBytes, t, got)
	}
	if got := w.handles - handles; got != env.numHandles {
		return envelope{}, transformErr(ErrInvalidInput, "envelope declares %d handles, but %s payload contains %d", env.numHandles, t, got)
	}
	return out, nil
}

// unknownEnvelope copies the payload of an envelope whose contents
// the schema does not describe.
func (w *walker) unknownEnvelope(env envelope) (envelope, error) {
	if env.numBytes%8 != 0 {
		return envelope{}, transformErr(ErrInvalidInput, "unknown envelope size %d is not a multiple of 8", env.numBytes)
	}
	srcOff, err := w.src.OutOfLine(uint64(env.numBytes))
	if err != nil {
		return envelope{}, w.srcErr(err)
	}
	dstOff, err := w.dst.OutOfLine(uint64(env.numBytes))
	if err != nil {
		return envelope{}, w.dstErr(err)
	}
	w.dst.Write(dstOff, w.src.Read(srcOff, env.numBytes))
	w.handles += env.numHandles
	return env, nil
}

package transcode

// An envelope is the header of an out-of-line payload in the
// extensible encoding.
type envelope struct {
	numBytes   uint32
	numHandles uint32
	present    bool
}

// readEnvelope reads and validates the envelope at off in the source.
func (w *walker) readEnvelope(off uint32) (envelope, error) {
	env := envelope{
		numBytes:   w.src.Uint32(off),
		numHandles: w.src.Uint32(off + 4),
	}
	switch p := w.src.Uint64(off + 8); p {
	case present:
		env.present = true
	case absent:
		if env.numBytes != 0 || env.numHandles != 0 {
			return envelope{}, transformErr(ErrInvalidInput, "absent envelope declares %d bytes and %d handles", env.numBytes, env.numHandles)
		}
	default:
		return envelope{}, transformErr(ErrInvalidInput, "invalid envelope presence marker %#x", p)
	}
	return env, nil
}

func (w *walker) writeEnvelope(off uint32, env envelope) {
	w.dst.Uint32(off, env.numBytes)
	w.dst.Uint32(off+4, env.numHandles)
	if env.present {
		w.dst.Uint64(off+8, present)
	} else {
		w.dst.Uint64(off+8, absent)
	}
}

// payloadToEnvelope transforms a value of type t into a new out-of-line object
// in the destination, reading from srcOff, and returns the envelope
// describing everything written for it.
func (w *walker) payloadToEnvelope(t *Type, srcOff uint32) (envelope, error) {
	start, handles := w.dst.Next(), w.handles
	dstOff, err := w.dst.OutOfLine(uint64(t.Size(w.to)))
	if err != nil {
		return envelope{}, w.dstErr(err)
	}
	if err := w.value(t, srcOff, dstOff); err != nil {
		return envelope{}, err
	}
	return envelope{
		numBytes:   w.dst.Next() - start,
		numHandles: w.handles - handles,
		present:    true,
	}, nil
}

// envelopeToPayload transforms the out-of-line payload described by
// env, a value of type t, writing it inline at dstOff. It verifies
// that env accurately describes the payload.
func (w *walker) envelopeToPayload(t *Type, env envelope, dstOff uint32) error {
	start, handles := w.src.Next(), w.handles
	srcOff, err := w.src.OutOfLine(uint64(t.Size(w.from)))
	if err != nil {
		return w.srcErr(err)
	}
	if err := w.value(t, srcOff, dstOff); err != nil {
		return err
	}
	if got := w.src.Next() - start; got != env.numBytes {
		return transformErr(ErrSizeMismatch, "envelope declares %d bytes, but %s payload occupies %d", env.numBytes, t, got)
	}
	if got := w.handles - handles; got != env.numHandles {
		return transformErr(ErrInvalidInput, "envelope declares %d handles, but %s payload contains %d", env.numHandles, t, got)
	}
	return nil
}

// unionToExtensible transforms a legacy union at srcOff into an
// extensible union at dstOff. The variant's payload is always placed
// out-of-line, however small.
func (w *walker) unionToExtensible(t *Type, srcOff, dstOff uint32) error {
	body := srcOff
	if t.nullable {
		ok, err := w.presence(t, srcOff)
		if err != nil {
			return err
		}
		if !ok {
			// Absent extensible unions are all zero, which the
			// destination already is.
			return nil
		}
		body, err = w.src.OutOfLine(uint64(t.object.size))
		if err != nil {
			return w.srcErr(err)
		}
	}

	tag := w.src.Uint32(body)
	v, ok := t.VariantByTag(tag)
	if !ok {
		return transformErr(ErrInvalidInput, "unknown tag %d for union %s", tag, t)
	}
	debugTransform("union %s{tag %d -> ordinal %d} at %d -> %d", t, tag, v.Ordinal, srcOff, dstOff)

	w.dst.Uint32(dstOff, v.Ordinal)
	w.dst.Uint32(dstOff+reservedOffset, 0)
	env, err := w.payloadToEnvelope(v.Type, body+t.dataOffset)
	if err != nil {
		return withPath(err, v.Name)
	}
	w.writeEnvelope(dstOff+envelopeOffset, env)
	return nil
}

// unionToLegacy transforms an extensible union at srcOff into a
// legacy union at dstOff.
func (w *walker) unionToLegacy(t *Type, srcOff, dstOff uint32) error {
	ord := w.src.Uint32(srcOff)
	env, err := w.readEnvelope(srcOff + envelopeOffset)
	if err != nil {
		return err
	}
	if !env.present {
		if !t.nullable {
			return transformErr(ErrInvalidInput, "non-nullable union %s is absent", t)
		}
		if ord != 0 {
			return transformErr(ErrInvalidInput, "absent union %s has nonzero ordinal %d", t, ord)
		}
		// Absent legacy unions are a zero pointer, which the
		// destination already is.
		return nil
	}

	v, ok := t.VariantByOrdinal(ord)
	if !ok {
		return transformErr(ErrInvalidInput, "unknown ordinal %d for union %s cannot be represented in the legacy encoding", ord, t)
	}
	debugTransform("union %s{ordinal %d -> tag %d} at %d -> %d", t, ord, v.Tag, srcOff, dstOff)

	body := dstOff
	if t.nullable {
		body, err = w.dst.OutOfLine(uint64(t.object.size))
		if err != nil {
			return w.dstErr(err)
		}
		w.dst.Uint64(dstOff, present)
	}
	w.dst.Uint32(body, v.Tag)
	// The claimed body is zero filled, so the padding after the tag
	// and after a payload smaller than the largest variant needs no
	// further writes.
	if err := w.envelopeToPayload(v.Type, env, body+t.dataOffset); err != nil {
		return withPath(err, v.Name)
	}
	return nil
}

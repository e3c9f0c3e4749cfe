package transcode

import (
	"fmt"
	"sync"
)

// cache is a concurrency-safe memo of values derived from Types.
type cache[V any] struct {
	m sync.Map
}

// Get returns the cached value for t, computing it with mk if
// needed. mk may be called more than once for the same type if
// multiple goroutines race, but only one result is kept.
func (c *cache[V]) Get(t *Type, mk func(*Type) V) V {
	if ent, ok := c.m.Load(t); ok {
		return ent.(V)
	}
	ent, _ := c.m.LoadOrStore(t, mk(t))
	if val, ok := ent.(V); ok {
		return val
	}
	panic(fmt.Sprintf("mystery value %v (%T) in cache", ent, ent))
}

// A span is a run of bytes copied verbatim from the source to the
// destination, at offsets relative to the start of a value.
type span struct {
	src, dst, n uint32
}

// A copyPlan describes how to transform a flat value: one made only
// of primitives, arrays and structs, which has the same bytes in both
// encodings, but possibly at different offsets and with different
// padding.
type copyPlan struct {
	flat bool
	// spans are the copies for each direction, indexed by the source
	// encoding.
	spans [2][]span
}

var copyPlans cache[*copyPlan]

func planFor(t *Type) *copyPlan {
	return copyPlans.Get(t, newCopyPlan)
}

func newCopyPlan(t *Type) *copyPlan {
	ret := &copyPlan{flat: isFlat(t)}
	if !ret.flat {
		return ret
	}
	for _, from := range []Encoding{Legacy, Extensible} {
		to := Extensible
		if from == Extensible {
			to = Legacy
		}
		ret.spans[from] = appendSpans(nil, t, from, to, 0, 0)
	}
	debugTransform("copy plan for %s: %d legacy spans, %d extensible spans", t, len(ret.spans[Legacy]), len(ret.spans[Extensible]))
	return ret
}

func isFlat(t *Type) bool {
	switch t.kind {
	case Primitive:
		return true
	case Array:
		return isFlat(t.elem)
	case Struct:
		for _, f := range t.fields {
			if !isFlat(f.Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// appendSpans appends the copies needed to transform a flat value of
// type t at the given offsets, merging adjacent copies.
func appendSpans(spans []span, t *Type, from, to Encoding, src, dst uint32) []span {
	switch t.kind {
	case Primitive:
		n := t.Size(from)
		if len(spans) > 0 {
			last := &spans[len(spans)-1]
			if last.src+last.n == src && last.dst+last.n == dst {
				last.n += n
				return spans
			}
		}
		return append(spans, span{src, dst, n})
	case Array:
		ss, ds := t.elem.Size(from), t.elem.Size(to)
		for i := range t.count {
			spans = appendSpans(spans, t.elem, from, to, src+i*ss, dst+i*ds)
		}
		return spans
	case Struct:
		for _, f := range t.fields {
			spans = appendSpans(spans, f.Type, from, to, src+f.offset[from], dst+f.offset[to])
		}
		return spans
	default:
		panic(fmt.Sprintf("appendSpans on non-flat type %s", t))
	}
}

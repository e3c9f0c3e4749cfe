// Package transcode rewrites wire-format messages between the legacy
// and extensible encodings of a schema.
//
// The two encodings differ only in how unions are laid out. In the
// legacy encoding, a union is a uint32 tag followed inline by the
// selected variant, padded to the size of the largest variant. In the
// extensible encoding, a union is a uint32 ordinal followed by an
// envelope describing an out-of-line payload:
//
//	struct {
//	    ordinal     uint32
//	    reserved    uint32
//	    num_bytes   uint32 // size of the payload and everything it references
//	    num_handles uint32 // present handles in the payload
//	    presence    uint64 // 0 if absent, all ones if present
//	}
//
// Because unions change size, every struct, array and out-of-line
// object that contains one, directly or indirectly, changes layout as
// well. Types without unions have the same bytes in both encodings,
// but may still move around.
//
// Messages are described by [Type] values, built with [StructOf],
// [UnionOf], [VectorOf] and friends, or loaded from schema files with
// package schema. A Type computes its layout in both encodings when
// it is constructed, and is immutable afterwards.
//
// [Transform] walks a message once, from its primary object through
// each out-of-line object in order, writing the transformed message
// into a caller-provided buffer. All multi-byte values are little
// endian. Destination padding is always written as zero, and padding
// in the source is never read.
//
// Recursive types are built with [Declare] and [Define]:
//
//	node := transcode.Declare("Node")
//	transcode.Define(node, transcode.StructOf("Node",
//	    transcode.Field{Name: "value", Type: transcode.Uint32},
//	    transcode.Field{Name: "children", Type: transcode.VectorOf(node, 0, false)},
//	))
package transcode

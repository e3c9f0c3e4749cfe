// Package transcodetest provides message types and paired legacy and
// extensible encodings of sample messages, for testing transformers
// and the tools built on them.
package transcodetest

import (
	tc "github.com/danderson/transcode"
)

func field(name string, t *tc.Type) tc.Field {
	return tc.Field{Name: name, Type: t}
}

func variant(name string, tag, ordinal uint32, t *tc.Type) tc.Variant {
	return tc.Variant{Name: name, Tag: tag, Ordinal: ordinal, Type: t}
}

// withHeader returns a struct type named name with a leading
// transaction header field followed by fields.
func withHeader(name string, fields ...tc.Field) *tc.Type {
	return tc.StructOf(name, append([]tc.Field{field("header", TransactionHeader)}, fields...)...)
}

// TransactionHeader is the fixed 16-byte header that precedes a
// request or response body. It is opaque to transformers and has the
// same layout in both encodings.
var TransactionHeader = tc.StructOf("TransactionHeader",
	field("txid", tc.Uint32),
	field("flags", tc.ArrayOf(tc.Uint8, 3)),
	field("magic", tc.Uint8),
	field("ordinal", tc.Uint64),
)

// Unions of various sizes and alignments, named after their legacy
// layout.
var (
	UnionSize8Aligned4 = tc.UnionOf("UnionSize8Aligned4",
		variant("unused1", 0, 1, tc.Uint8),
		variant("unused2", 1, 2, tc.Uint8),
		variant("variant", 2, 3, tc.Uint32),
	)

	UnionSize36Alignment4 = tc.UnionOf("UnionSize36Alignment4",
		variant("unused1", 0, 1, tc.Uint8),
		variant("unused2", 1, 2, tc.Uint8),
		variant("unused3", 2, 3, tc.Uint8),
		variant("variant", 3, 4, tc.ArrayOf(tc.Uint8, 32)),
	)

	StructSize16Alignment8 = tc.StructOf("StructSize16Alignment8",
		field("f1", tc.Uint64),
		field("f2", tc.Uint64),
	)

	UnionSize24Alignment8 = tc.UnionOf("UnionSize24Alignment8",
		variant("unused1", 0, 1, tc.Uint8),
		variant("unused2", 1, 2, tc.Uint8),
		variant("unused3", 2, 3, tc.Uint8),
		variant("variant", 3, 4, StructSize16Alignment8),
	)

	UnionOfUnion = tc.UnionOf("UnionOfUnion",
		variant("unused", 0, 1, tc.Uint8),
		variant("size8aligned4", 1, 2, UnionSize8Aligned4),
		variant("size16aligned4", 2, 3, tc.ArrayOf(tc.Uint32, 4)),
		variant("size24alignment8", 3, 4, UnionSize24Alignment8),
	)

	UnionWithVector = tc.UnionOf("UnionWithVector",
		variant("unused", 0, 1, tc.Uint8),
		variant("vector_of_uint8", 1, 2, tc.VectorOf(tc.Uint8, 0, false)),
		variant("s", 2, 3, tc.StringOf(0, false)),
		variant("vector_s3_a1", 3, 4, tc.VectorOf(tc.ArrayOf(tc.Uint8, 3), 0, false)),
		variant("vector_s3_a2", 4, 5, tc.VectorOf(tc.ArrayOf(tc.Uint16, 3), 0, false)),
		variant("handles", 5, 6, tc.VectorOf(tc.HandleOf(false), 3, false)),
	)

	// StringBoolUnion has variants whose payloads have different
	// alignments.
	StringBoolUnion = tc.UnionOf("StringBoolUnion",
		variant("s", 0, 1, tc.StringOf(0, false)),
		variant("b", 1, 2, tc.Bool),
	)
)

// Structs with unions in the middle.
var (
	Sandwich1 = tc.StructOf("Sandwich1",
		field("before", tc.Uint32),
		field("the_union", UnionSize8Aligned4),
		field("after", tc.Uint32),
	)

	Sandwich1Message = withHeader("Sandwich1Message",
		field("before", tc.Uint32),
		field("the_union", UnionSize8Aligned4),
		field("after", tc.Uint32),
	)

	Sandwich4Message = withHeader("Sandwich4Message",
		field("before", tc.Uint32),
		field("the_union", UnionSize36Alignment4),
		field("after", tc.Uint32),
	)

	Sandwich5Message = withHeader("Sandwich5Message",
		field("before", tc.Uint32),
		field("union_of_union", UnionOfUnion),
		field("after", tc.Uint32),
	)

	Sandwich6 = tc.StructOf("Sandwich6",
		field("before", tc.Uint32),
		field("the_union", UnionWithVector),
		field("after", tc.Uint32),
	)

	Sandwich7Message = withHeader("Sandwich7Message",
		field("before", tc.Uint32),
		field("opt_sandwich1", tc.PointerTo(Sandwich1)),
		field("after", tc.Uint32),
	)

	MixedFieldsMessage = withHeader("MixedFieldsMessage",
		field("before", tc.Uint32),
		field("first_union", UnionSize8Aligned4),
		field("middle_start", tc.Uint16),
		field("middle_end", tc.Uint64),
		field("second_union", UnionSize8Aligned4),
		field("after", tc.Uint32),
	)
)

// Regression5 is a struct of integers with assorted padding, which has
// the same encoding in both encodings.
var Regression5 = tc.StructOf("Regression5",
	field("f1", tc.Uint8),
	field("f2", tc.Uint32),
	field("f3", tc.Uint8),
	field("f4", tc.Uint16),
	field("f5", tc.Uint64),
	field("f6", tc.Uint8),
)

// StringUnionStructWrapperResponse carries a union and a nullable
// union of the same type.
var (
	StringUnionStruct = tc.StructOf("StringUnionStruct",
		field("u", StringBoolUnion),
		field("nullable_u", tc.NullableUnionOf("StringBoolUnion", StringBoolUnion.Variants()...)),
	)

	StringUnionStructWrapperResponse = withHeader("StringUnionStructWrapperResponse",
		field("sus", StringUnionStruct),
	)
)

// Regression9Response is a response whose result union carries a
// struct of unions.
var (
	Regression9Result = tc.UnionOf("Regression9Result",
		variant("response", 0, 1, StringUnionStruct),
		variant("err", 1, 2, tc.Uint32),
	)

	Regression9Response = withHeader("Regression9Response",
		field("result", Regression9Result),
	)
)

// LauncherCreateComponentRequest is a request with no unions at all,
// but with strings, absent vectors and pointers, and handles.
var (
	fileDescriptor = tc.StructOf("FileDescriptor",
		field("type0", tc.Int32),
		field("type1", tc.Int32),
		field("type2", tc.Int32),
		field("handle0", tc.HandleOf(true)),
		field("handle1", tc.HandleOf(true)),
		field("handle2", tc.HandleOf(true)),
	)

	flatNamespace = tc.StructOf("FlatNamespace",
		field("paths", tc.VectorOf(tc.StringOf(4096, false), 0, false)),
		field("directories", tc.VectorOf(tc.HandleOf(false), 0, false)),
	)

	serviceList = tc.StructOf("ServiceList",
		field("names", tc.VectorOf(tc.StringOf(0, false), 0, false)),
		field("provider", tc.HandleOf(true)),
		field("host_directory", tc.HandleOf(true)),
	)

	LaunchInfo = tc.StructOf("LaunchInfo",
		field("url", tc.StringOf(2083, false)),
		field("arguments", tc.VectorOf(tc.StringOf(0, false), 0, true)),
		field("out", tc.PointerTo(fileDescriptor)),
		field("err", tc.PointerTo(fileDescriptor)),
		field("directory_request", tc.HandleOf(true)),
		field("flat_namespace", tc.PointerTo(flatNamespace)),
		field("additional_services", tc.PointerTo(serviceList)),
	)

	LauncherCreateComponentRequest = withHeader("LauncherCreateComponentRequest",
		field("launch_info", LaunchInfo),
		field("controller", tc.HandleOf(true)),
	)
)

// SimpleTableArrayStruct is an array of tables, which have the same
// encoding in both encodings.
var (
	SimpleTable = tc.TableOf("SimpleTable",
		tc.TableField{Ordinal: 1, Name: "x", Type: tc.Int64},
		tc.TableField{Ordinal: 5, Name: "y", Type: tc.Int64},
	)

	SimpleTableArrayStruct = tc.StructOf("SimpleTableArrayStruct",
		field("the_array", tc.ArrayOf(SimpleTable, 2)),
	)
)

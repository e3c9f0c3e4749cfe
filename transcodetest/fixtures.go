package transcodetest

import (
	"bytes"

	tc "github.com/danderson/transcode"
)

// A Fixture is a message of Type, in both encodings.
type Fixture struct {
	Name       string
	Type       *tc.Type
	Legacy     []byte
	Extensible []byte
}

// Encoded returns the fixture's message in the given encoding.
func (f Fixture) Encoded(enc tc.Encoding) []byte {
	if enc == tc.Legacy {
		return f.Legacy
	}
	return f.Extensible
}

// Poison is the byte that [Poisoned] buffers are filled with.
const Poison = 0xcc

// Poisoned returns a buffer of n bytes filled with [Poison], to catch
// transformers that fail to write padding.
func Poisoned(n int) []byte {
	return bytes.Repeat([]byte{Poison}, n)
}

func cat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

var (
	fakeHeader = []byte{
		0xf0, 0xf1, 0xf2, 0xf3, // fake transaction header
		0xf4, 0xf5, 0xf6, 0xf7,
		0xf8, 0xf9, 0xfa, 0xfb,
		0xfc, 0xfd, 0xfe, 0xff,
	}
	zeroHeader = make([]byte, 16)
)

var sandwich1Legacy = []byte{
	0x01, 0x02, 0x03, 0x04, // before
	0x02, 0x00, 0x00, 0x00, // the_union.tag
	0x09, 0x0a, 0x0b, 0x0c, // the_union.variant
	0x05, 0x06, 0x07, 0x08, // after
}

var sandwich1Extensible = []byte{
	0x01, 0x02, 0x03, 0x04, // before
	0x00, 0x00, 0x00, 0x00, // (padding)
	0x03, 0x00, 0x00, 0x00, // the_union.ordinal
	0x00, 0x00, 0x00, 0x00, // the_union.reserved
	0x08, 0x00, 0x00, 0x00, // the_union.num_bytes
	0x00, 0x00, 0x00, 0x00, // the_union.num_handles
	0xff, 0xff, 0xff, 0xff, // the_union.presence
	0xff, 0xff, 0xff, 0xff,
	0x05, 0x06, 0x07, 0x08, // after
	0x00, 0x00, 0x00, 0x00, // (padding)

	0x09, 0x0a, 0x0b, 0x0c, // the_union.variant
	0x00, 0x00, 0x00, 0x00, // (padding)
}

var regression5 = []byte{
	0x01, 0x00, 0x00, 0x00, // f1, (padding)
	0x2f, 0x30, 0x31, 0x32, // f2
	0x08, 0x00, 0x15, 0x16, // f3, (padding), f4
	0x00, 0x00, 0x00, 0x00, // (padding)
	0x5d, 0x5e, 0x5f, 0x60, // f5
	0x61, 0x62, 0x63, 0x64,
	0x08, 0x00, 0x00, 0x00, // f6, (padding)
	0x00, 0x00, 0x00, 0x00,
}

var regression6 = []byte{
	0x01, 0x00, 0x00, 0x00, // f1, (padding)
	0x30, 0x00, 0x00, 0x03, // f2
	0x08, 0x00, 0x15, 0x16, // f3, (padding), f4
	0x00, 0x00, 0x00, 0x00, // (padding)
	0x5d, 0x5e, 0x5f, 0x60, // f5
	0x61, 0x62, 0x63, 0x64,
	0x08, 0x00, 0x00, 0x00, // f6, (padding)
	0x00, 0x00, 0x00, 0x00,
}

var simpleTableArrayStruct = []byte{
	0x01, 0x00, 0x00, 0x00, // the_array[0] envelope count
	0x00, 0x00, 0x00, 0x00,
	0xff, 0xff, 0xff, 0xff, // the_array[0] presence
	0xff, 0xff, 0xff, 0xff,
	0x01, 0x00, 0x00, 0x00, // the_array[1] envelope count
	0x00, 0x00, 0x00, 0x00,
	0xff, 0xff, 0xff, 0xff, // the_array[1] presence
	0xff, 0xff, 0xff, 0xff,

	0x08, 0x00, 0x00, 0x00, // the_array[0].x num_bytes
	0x00, 0x00, 0x00, 0x00, // the_array[0].x num_handles
	0xff, 0xff, 0xff, 0xff, // the_array[0].x presence
	0xff, 0xff, 0xff, 0xff,
	0xa0, 0xa1, 0xa2, 0xa3, // the_array[0].x
	0x00, 0x00, 0x00, 0x00,

	0x08, 0x00, 0x00, 0x00, // the_array[1].x num_bytes
	0x00, 0x00, 0x00, 0x00, // the_array[1].x num_handles
	0xff, 0xff, 0xff, 0xff, // the_array[1].x presence
	0xff, 0xff, 0xff, 0xff,
	0xb0, 0xb1, 0xb2, 0xb3, // the_array[1].x
	0x00, 0x00, 0x00, 0x00,
}

var launcherRequest = cat([]byte{
	0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x01, // header
	0x00, 0x00, 0x00, 0x00, 0x65, 0x29, 0x3f, 0x0d,
	0x84, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // url.count
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, // url.presence
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // arguments (absent)
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // out (absent)
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // err (absent)
	0xff, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00, 0x00, // directory_request, (padding)
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // flat_namespace (absent)
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // additional_services (absent)
	0xff, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00, 0x00, // controller, (padding)
}, []byte("fuchsia-pkg://fuchsia.com/fidl_compatibility_test_server_rust_write_xunion#meta/fidl_compatibility_test_server_rust_write_xunion.cmx"),
	[]byte{0x00, 0x00, 0x00, 0x00}, // url (padding)
)

// Fixtures are sample messages whose encodings are known to be
// correct.
var Fixtures = []Fixture{
	{
		Name:       "sandwich1",
		Type:       Sandwich1,
		Legacy:     sandwich1Legacy,
		Extensible: sandwich1Extensible,
	},
	{
		Name:       "sandwich1_with_header",
		Type:       Sandwich1Message,
		Legacy:     cat(fakeHeader, sandwich1Legacy),
		Extensible: cat(fakeHeader, sandwich1Extensible),
	},
	{
		Name: "sandwich4_with_header",
		Type: Sandwich4Message,
		Legacy: cat(zeroHeader, []byte{
			0x01, 0x02, 0x03, 0x04, // before
			0x03, 0x00, 0x00, 0x00, // the_union.tag
			0xa0, 0xa1, 0xa2, 0xa3, // the_union.variant
			0xa4, 0xa5, 0xa6, 0xa7,
			0xa8, 0xa9, 0xaa, 0xab,
			0xac, 0xad, 0xae, 0xaf,
			0xb0, 0xb1, 0xb2, 0xb3,
			0xb4, 0xb5, 0xb6, 0xb7,
			0xb8, 0xb9, 0xba, 0xbb,
			0xbc, 0xbd, 0xbe, 0xbf,
			0x05, 0x06, 0x07, 0x08, // after
			0x00, 0x00, 0x00, 0x00, // (padding)
		}),
		Extensible: cat(zeroHeader, []byte{
			0x01, 0x02, 0x03, 0x04, // before
			0x00, 0x00, 0x00, 0x00, // (padding)
			0x04, 0x00, 0x00, 0x00, // the_union.ordinal
			0x00, 0x00, 0x00, 0x00, // the_union.reserved
			0x20, 0x00, 0x00, 0x00, // the_union.num_bytes
			0x00, 0x00, 0x00, 0x00, // the_union.num_handles
			0xff, 0xff, 0xff, 0xff, // the_union.presence
			0xff, 0xff, 0xff, 0xff,
			0x05, 0x06, 0x07, 0x08, // after
			0x00, 0x00, 0x00, 0x00, // (padding)

			0xa0, 0xa1, 0xa2, 0xa3, // the_union.variant
			0xa4, 0xa5, 0xa6, 0xa7,
			0xa8, 0xa9, 0xaa, 0xab,
			0xac, 0xad, 0xae, 0xaf,
			0xb0, 0xb1, 0xb2, 0xb3,
			0xb4, 0xb5, 0xb6, 0xb7,
			0xb8, 0xb9, 0xba, 0xbb,
			0xbc, 0xbd, 0xbe, 0xbf,
		}),
	},
	{
		Name: "sandwich5_union_size8",
		Type: Sandwich5Message,
		Legacy: cat(fakeHeader, []byte{
			0x01, 0x02, 0x03, 0x04, // before
			0x00, 0x00, 0x00, 0x00, // (padding)
			0x01, 0x00, 0x00, 0x00, // union_of_union.tag
			0x00, 0x00, 0x00, 0x00, // (padding)
			0x02, 0x00, 0x00, 0x00, // union_of_union.size8aligned4.tag
			0x09, 0x0a, 0x0b, 0x0c, // union_of_union.size8aligned4.variant
			0x00, 0x00, 0x00, 0x00, // (padding)
			0x00, 0x00, 0x00, 0x00,
			0x00, 0x00, 0x00, 0x00,
			0x00, 0x00, 0x00, 0x00,
			0x05, 0x06, 0x07, 0x08, // after
			0x00, 0x00, 0x00, 0x00, // (padding)
		}),
		Extensible: cat(fakeHeader, []byte{
			0x01, 0x02, 0x03, 0x04, // before
			0x00, 0x00, 0x00, 0x00, // (padding)
			0x02, 0x00, 0x00, 0x00, // union_of_union.ordinal
			0x00, 0x00, 0x00, 0x00, // union_of_union.reserved
			0x20, 0x00, 0x00, 0x00, // union_of_union.num_bytes
			0x00, 0x00, 0x00, 0x00, // union_of_union.num_handles
			0xff, 0xff, 0xff, 0xff, // union_of_union.presence
			0xff, 0xff, 0xff, 0xff,
			0x05, 0x06, 0x07, 0x08, // after
			0x00, 0x00, 0x00, 0x00, // (padding)

			0x03, 0x00, 0x00, 0x00, // union_of_union.size8aligned4.ordinal
			0x00, 0x00, 0x00, 0x00, // union_of_union.size8aligned4.reserved
			0x08, 0x00, 0x00, 0x00, // union_of_union.size8aligned4.num_bytes
			0x00, 0x00, 0x00, 0x00, // union_of_union.size8aligned4.num_handles
			0xff, 0xff, 0xff, 0xff, // union_of_union.size8aligned4.presence
			0xff, 0xff, 0xff, 0xff,

			0x09, 0x0a, 0x0b, 0x0c, // union_of_union.size8aligned4.variant
			0x00, 0x00, 0x00, 0x00, // (padding)
		}),
	},
	{
		Name: "sandwich5_union_size24",
		Type: Sandwich5Message,
		Legacy: cat(fakeHeader, []byte{
			0x01, 0x02, 0x03, 0x04, // before
			0x00, 0x00, 0x00, 0x00, // (padding)
			0x03, 0x00, 0x00, 0x00, // union_of_union.tag
			0x00, 0x00, 0x00, 0x00, // (padding)
			0x03, 0x00, 0x00, 0x00, // union_of_union.size24alignment8.tag
			0x00, 0x00, 0x00, 0x00, // (padding)
			0xa0, 0xa1, 0xa2, 0xa3, // union_of_union.size24alignment8.variant
			0xa4, 0xa5, 0xa6, 0xa7,
			0xa8, 0xa9, 0xaa, 0xab,
			0xac, 0xad, 0xae, 0xaf,
			0x05, 0x06, 0x07, 0x08, // after
			0x00, 0x00, 0x00, 0x00, // (padding)
		}),
		Extensible: cat(fakeHeader, []byte{
			0x01, 0x02, 0x03, 0x04, // before
			0x00, 0x00, 0x00, 0x00, // (padding)
			0x04, 0x00, 0x00, 0x00, // union_of_union.ordinal
			0x00, 0x00, 0x00, 0x00, // union_of_union.reserved
			0x28, 0x00, 0x00, 0x00, // union_of_union.num_bytes
			0x00, 0x00, 0x00, 0x00, // union_of_union.num_handles
			0xff, 0xff, 0xff, 0xff, // union_of_union.presence
			0xff, 0xff, 0xff, 0xff,
			0x05, 0x06, 0x07, 0x08, // after
			0x00, 0x00, 0x00, 0x00, // (padding)

			0x04, 0x00, 0x00, 0x00, // union_of_union.size24alignment8.ordinal
			0x00, 0x00, 0x00, 0x00, // union_of_union.size24alignment8.reserved
			0x10, 0x00, 0x00, 0x00, // union_of_union.size24alignment8.num_bytes
			0x00, 0x00, 0x00, 0x00, // union_of_union.size24alignment8.num_handles
			0xff, 0xff, 0xff, 0xff, // union_of_union.size24alignment8.presence
			0xff, 0xff, 0xff, 0xff,

			0xa0, 0xa1, 0xa2, 0xa3, // union_of_union.size24alignment8.variant
			0xa4, 0xa5, 0xa6, 0xa7,
			0xa8, 0xa9, 0xaa, 0xab,
			0xac, 0xad, 0xae, 0xaf,
		}),
	},
	{
		Name: "sandwich6_vector_of_handles",
		Type: Sandwich6,
		Legacy: []byte{
			0x01, 0x02, 0x03, 0x04, // before
			0x00, 0x00, 0x00, 0x00, // (padding)
			0x05, 0x00, 0x00, 0x00, // the_union.tag
			0x00, 0x00, 0x00, 0x00, // (padding)
			0x03, 0x00, 0x00, 0x00, // the_union.handles.count
			0x00, 0x00, 0x00, 0x00,
			0xff, 0xff, 0xff, 0xff, // the_union.handles.presence
			0xff, 0xff, 0xff, 0xff,
			0x05, 0x06, 0x07, 0x08, // after
			0x00, 0x00, 0x00, 0x00, // (padding)

			0xff, 0xff, 0xff, 0xff, // the_union.handles[0]
			0xff, 0xff, 0xff, 0xff, // the_union.handles[1]
			0xff, 0xff, 0xff, 0xff, // the_union.handles[2]
			0x00, 0x00, 0x00, 0x00, // (padding)
		},
		Extensible: []byte{
			0x01, 0x02, 0x03, 0x04, // before
			0x00, 0x00, 0x00, 0x00, // (padding)
			0x06, 0x00, 0x00, 0x00, // the_union.ordinal
			0x00, 0x00, 0x00, 0x00, // the_union.reserved
			0x20, 0x00, 0x00, 0x00, // the_union.num_bytes
			0x03, 0x00, 0x00, 0x00, // the_union.num_handles
			0xff, 0xff, 0xff, 0xff, // the_union.presence
			0xff, 0xff, 0xff, 0xff,
			0x05, 0x06, 0x07, 0x08, // after
			0x00, 0x00, 0x00, 0x00, // (padding)

			0x03, 0x00, 0x00, 0x00, // the_union.handles.count
			0x00, 0x00, 0x00, 0x00,
			0xff, 0xff, 0xff, 0xff, // the_union.handles.presence
			0xff, 0xff, 0xff, 0xff,

			0xff, 0xff, 0xff, 0xff, // the_union.handles[0]
			0xff, 0xff, 0xff, 0xff, // the_union.handles[1]
			0xff, 0xff, 0xff, 0xff, // the_union.handles[2]
			0x00, 0x00, 0x00, 0x00, // (padding)
		},
	},
	{
		Name: "sandwich7_present",
		Type: Sandwich7Message,
		Legacy: cat(fakeHeader, []byte{
			0x11, 0x12, 0x13, 0x14, // before
			0x00, 0x00, 0x00, 0x00, // (padding)
			0xff, 0xff, 0xff, 0xff, // opt_sandwich1.presence
			0xff, 0xff, 0xff, 0xff,
			0x21, 0x22, 0x23, 0x24, // after
			0x00, 0x00, 0x00, 0x00, // (padding)
		}, sandwich1Legacy),
		Extensible: cat(fakeHeader, []byte{
			0x11, 0x12, 0x13, 0x14, // before
			0x00, 0x00, 0x00, 0x00, // (padding)
			0xff, 0xff, 0xff, 0xff, // opt_sandwich1.presence
			0xff, 0xff, 0xff, 0xff,
			0x21, 0x22, 0x23, 0x24, // after
			0x00, 0x00, 0x00, 0x00, // (padding)
		}, sandwich1Extensible),
	},
	{
		Name: "sandwich7_absent",
		Type: Sandwich7Message,
		Legacy: cat(fakeHeader, []byte{
			0x11, 0x12, 0x13, 0x14, // before
			0x00, 0x00, 0x00, 0x00, // (padding)
			0x00, 0x00, 0x00, 0x00, // opt_sandwich1.presence
			0x00, 0x00, 0x00, 0x00,
			0x21, 0x22, 0x23, 0x24, // after
			0x00, 0x00, 0x00, 0x00, // (padding)
		}),
		Extensible: cat(fakeHeader, []byte{
			0x11, 0x12, 0x13, 0x14, // before
			0x00, 0x00, 0x00, 0x00, // (padding)
			0x00, 0x00, 0x00, 0x00, // opt_sandwich1.presence
			0x00, 0x00, 0x00, 0x00,
			0x21, 0x22, 0x23, 0x24, // after
			0x00, 0x00, 0x00, 0x00, // (padding)
		}),
	},
	{
		Name:       "regression5",
		Type:       Regression5,
		Legacy:     regression5,
		Extensible: regression5,
	},
	{
		Name:       "regression6",
		Type:       Regression5,
		Legacy:     regression6,
		Extensible: regression6,
	},
	{
		Name: "mixed_fields",
		Type: MixedFieldsMessage,
		Legacy: cat(fakeHeader, []byte{
			0x01, 0x02, 0x03, 0x04, // before
			0x02, 0x00, 0x00, 0x00, // first_union.tag
			0x09, 0x0a, 0x0b, 0x0c, // first_union.variant
			0x0a, 0x0b, 0x00, 0x00, // middle_start, (padding)
			0x08, 0x07, 0x06, 0x05, // middle_end
			0x04, 0x03, 0x02, 0x01,
			0x02, 0x00, 0x00, 0x00, // second_union.tag
			0x90, 0xa0, 0xb0, 0xc0, // second_union.variant
			0x05, 0x06, 0x07, 0x08, // after
			0x00, 0x00, 0x00, 0x00, // (padding)
		}),
		Extensible: cat(fakeHeader, []byte{
			0x01, 0x02, 0x03, 0x04, // before
			0x00, 0x00, 0x00, 0x00, // (padding)
			0x03, 0x00, 0x00, 0x00, // first_union.ordinal
			0x00, 0x00, 0x00, 0x00, // first_union.reserved
			0x08, 0x00, 0x00, 0x00, // first_union.num_bytes
			0x00, 0x00, 0x00, 0x00, // first_union.num_handles
			0xff, 0xff, 0xff, 0xff, // first_union.presence
			0xff, 0xff, 0xff, 0xff,
			0x0a, 0x0b, 0x00, 0x00, // middle_start
			0x00, 0x00, 0x00, 0x00, // (padding)
			0x08, 0x07, 0x06, 0x05, // middle_end
			0x04, 0x03, 0x02, 0x01,
			0x03, 0x00, 0x00, 0x00, // second_union.ordinal
			0x00, 0x00, 0x00, 0x00, // second_union.reserved
			0x08, 0x00, 0x00, 0x00, // second_union.num_bytes
			0x00, 0x00, 0x00, 0x00, // second_union.num_handles
			0xff, 0xff, 0xff, 0xff, // second_union.presence
			0xff, 0xff, 0xff, 0xff,
			0x05, 0x06, 0x07, 0x08, // after
			0x00, 0x00, 0x00, 0x00, // (padding)

			0x09, 0x0a, 0x0b, 0x0c, // first_union.variant
			0x00, 0x00, 0x00, 0x00, // (padding)
			0x90, 0xa0, 0xb0, 0xc0, // second_union.variant
			0x00, 0x00, 0x00, 0x00, // (padding)
		}),
	},
	{
		Name:       "simple_table_array_struct",
		Type:       SimpleTableArrayStruct,
		Legacy:     simpleTableArrayStruct,
		Extensible: simpleTableArrayStruct,
	},
	{
		Name: "string_union_struct_wrapper_response",
		Type: StringUnionStructWrapperResponse,
		Legacy: []byte{
			0x00, 0x00, 0x00, 0x00, // header
			0x01, 0x00, 0x00, 0x01,
			0x00, 0x00, 0x00, 0x00,
			0x25, 0x32, 0xa0, 0x32,
			0x00, 0x00, 0x00, 0x00, // sus.u.tag
			0x00, 0x00, 0x00, 0x00, // (padding)
			0x05, 0x00, 0x00, 0x00, // sus.u.s.count
			0x00, 0x00, 0x00, 0x00,
			0xff, 0xff, 0xff, 0xff, // sus.u.s.presence
			0xff, 0xff, 0xff, 0xff,
			0xff, 0xff, 0xff, 0xff, // sus.nullable_u.presence
			0xff, 0xff, 0xff, 0xff,

			0x68, 0x65, 0x6c, 0x6c, // sus.u.s
			0x6f, 0x00, 0x00, 0x00, // (padding)

			0x01, 0x00, 0x00, 0x00, // sus.nullable_u.tag
			0x00, 0x00, 0x00, 0x00, // (padding)
			0x01, 0x00, 0x00, 0x00, // sus.nullable_u.b
			0x00, 0x00, 0x00, 0x00, // (padding)
			0x00, 0x00, 0x00, 0x00,
			0x00, 0x00, 0x00, 0x00,
		},
		Extensible: []byte{
			0x00, 0x00, 0x00, 0x00, // header
			0x01, 0x00, 0x00, 0x01,
			0x00, 0x00, 0x00, 0x00,
			0x25, 0x32, 0xa0, 0x32,
			0x01, 0x00, 0x00, 0x00, // sus.u.ordinal
			0x00, 0x00, 0x00, 0x00, // sus.u.reserved
			0x18, 0x00, 0x00, 0x00, // sus.u.num_bytes
			0x00, 0x00, 0x00, 0x00, // sus.u.num_handles
			0xff, 0xff, 0xff, 0xff, // sus.u.presence
			0xff, 0xff, 0xff, 0xff,
			0x02, 0x00, 0x00, 0x00, // sus.nullable_u.ordinal
			0x00, 0x00, 0x00, 0x00, // sus.nullable_u.reserved
			0x08, 0x00, 0x00, 0x00, // sus.nullable_u.num_bytes
			0x00, 0x00, 0x00, 0x00, // sus.nullable_u.num_handles
			0xff, 0xff, 0xff, 0xff, // sus.nullable_u.presence
			0xff, 0xff, 0xff, 0xff,

			0x05, 0x00, 0x00, 0x00, // sus.u.s.count
			0x00, 0x00, 0x00, 0x00,
			0xff, 0xff, 0xff, 0xff, // sus.u.s.presence
			0xff, 0xff, 0xff, 0xff,
			0x68, 0x65, 0x6c, 0x6c, // sus.u.s
			0x6f, 0x00, 0x00, 0x00, // (padding)

			0x01, 0x00, 0x00, 0x00, // sus.nullable_u.b
			0x00, 0x00, 0x00, 0x00, // (padding)
		},
	},
	{
		Name:       "launcher_create_component_request",
		Type:       LauncherCreateComponentRequest,
		Legacy:     launcherRequest,
		Extensible: launcherRequest,
	},
	{
		Name: "regression9_response",
		Type: Regression9Response,
		Legacy: []byte{
			0x01, 0x00, 0x00, 0x00, // header
			0x01, 0x00, 0x00, 0x01,
			0x00, 0x00, 0x00, 0x00,
			0x69, 0xc9, 0xcb, 0x56,
			0x00, 0x00, 0x00, 0x00, // result.tag
			0x00, 0x00, 0x00, 0x00, // (padding)
			0x00, 0x00, 0x00, 0x00, // result.response.u.tag
			0x00, 0x00, 0x00, 0x00, // (padding)
			0x20, 0x00, 0x00, 0x00, // result.response.u.s.count
			0x00, 0x00, 0x00, 0x00,
			0xff, 0xff, 0xff, 0xff, // result.response.u.s.presence
			0xff, 0xff, 0xff, 0xff,
			0xff, 0xff, 0xff, 0xff, // result.response.nullable_u.presence
			0xff, 0xff, 0xff, 0xff,

			0xf2, 0x87, 0xa3, 0xb4, // result.response.u.s
			0x4c, 0xf1, 0x9f, 0x9b,
			0x83, 0xf3, 0x86, 0xa9,
			0xa0, 0xf2, 0x93, 0xa4,
			0xab, 0xf0, 0xb4, 0x81,
			0xb9, 0xf0, 0xbb, 0x95,
			0xb7, 0xf1, 0xa7, 0x93,
			0xac, 0xe9, 0x95, 0x85,

			0x01, 0x00, 0x00, 0x00, // result.response.nullable_u.tag
			0x00, 0x00, 0x00, 0x00, // (padding)
			0x00, 0x00, 0x00, 0x00, // result.response.nullable_u.b
			0x00, 0x00, 0x00, 0x00, // (padding)
			0x00, 0x00, 0x00, 0x00,
			0x00, 0x00, 0x00, 0x00,
		},
		Extensible: []byte{
			0x01, 0x00, 0x00, 0x00, // header
			0x01, 0x00, 0x00, 0x01,
			0x00, 0x00, 0x00, 0x00,
			0x69, 0xc9, 0xcb, 0x56,
			0x01, 0x00, 0x00, 0x00, // result.ordinal
			0x00, 0x00, 0x00, 0x00, // result.reserved
			0x68, 0x00, 0x00, 0x00, // result.num_bytes
			0x00, 0x00, 0x00, 0x00, // result.num_handles
			0xff, 0xff, 0xff, 0xff, // result.presence
			0xff, 0xff, 0xff, 0xff,

			0x01, 0x00, 0x00, 0x00, // result.response.u.ordinal
			0x00, 0x00, 0x00, 0x00, // result.response.u.reserved
			0x30, 0x00, 0x00, 0x00, // result.response.u.num_bytes
			0x00, 0x00, 0x00, 0x00, // result.response.u.num_handles
			0xff, 0xff, 0xff, 0xff, // result.response.u.presence
			0xff, 0xff, 0xff, 0xff,
			0x02, 0x00, 0x00, 0x00, // result.response.nullable_u.ordinal
			0x00, 0x00, 0x00, 0x00, // result.response.nullable_u.reserved
			0x08, 0x00, 0x00, 0x00, // result.response.nullable_u.num_bytes
			0x00, 0x00, 0x00, 0x00, // result.response.nullable_u.num_handles
			0xff, 0xff, 0xff, 0xff, // result.response.nullable_u.presence
			0xff, 0xff, 0xff, 0xff,

			0x20, 0x00, 0x00, 0x00, // result.response.u.s.count
			0x00, 0x00, 0x00, 0x00,
			0xff, 0xff, 0xff, 0xff, // result.response.u.s.presence
			0xff, 0xff, 0xff, 0xff,
			0xf2, 0x87, 0xa3, 0xb4, // result.response.u.s
			0x4c, 0xf1, 0x9f, 0x9b,
			0x83, 0xf3, 0x86, 0xa9,
			0xa0, 0xf2, 0x93, 0xa4,
			0xab, 0xf0, 0xb4, 0x81,
			0xb9, 0xf0, 0xbb, 0x95,
			0xb7, 0xf1, 0xa7, 0x93,
			0xac, 0xe9, 0x95, 0x85,

			0x00, 0x00, 0x00, 0x00, // result.response.nullable_u.b
			0x00, 0x00, 0x00, 0x00, // (padding)
		},
	},
}

// Lookup returns the fixture with the given name.
func Lookup(name string) (Fixture, bool) {
	for _, f := range Fixtures {
		if f.Name == name {
			return f, true
		}
	}
	return Fixture{}, false
}

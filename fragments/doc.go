// Package fragments provides the low-level buffer cursors used to
// read and write wire-format messages.
//
// A message is a single primary object followed by zero or more
// out-of-line objects, each starting on an 8-byte boundary and
// packed in the order they were claimed. [Decoder] walks a received
// message of known length, [Encoder] builds a message into a buffer
// of fixed capacity.
//
// The cursors do not encode any schema semantics. It is the caller's
// responsibility to claim objects in the correct order and to read
// and write fields within the objects it has claimed.
package fragments

package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	tc "github.com/danderson/transcode"
)

type indenter struct {
	prefix     string
	indentNext bool
}

func (i *indenter) s(msg string) {
	io.WriteString(i, msg+"\n")
}

func (i *indenter) f(msg string, args ...any) {
	fmt.Fprintf(i, msg+"\n", args...)
}

func (i *indenter) Write(bs []byte) (int, error) {
	ret := 0
	for len(bs) > 0 {
		if i.indentNext {
			i.indentNext = false
			_, err := io.WriteString(os.Stdout, i.prefix)
			if err != nil {
				return ret, err
			}
		}

		wr := bs
		idx := bytes.IndexByte(bs, '\n')
		if idx >= 0 {
			i.indentNext = true
			wr, bs = bs[:idx+1], bs[idx+1:]
		} else {
			bs = nil
		}

		n, err := os.Stdout.Write(wr)
		ret += n
		if err != nil {
			return ret, err
		}
	}
	return ret, nil
}

func (i *indenter) indent(n int) {
	i.prefix = strings.Repeat("  ", n)
}

func growTo(s []string, n int) []string {
	for len(s) < n {
		s = append(s, "")
	}
	return s
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// readInput reads a message from path, or stdin if path is "-".
func readInput(path string, isHex bool) ([]byte, error) {
	var (
		bs  []byte
		err error
	)
	if path == "-" {
		bs, err = io.ReadAll(os.Stdin)
	} else {
		bs, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if !isHex {
		return bs, nil
	}
	ret, err := parseHex(string(bs))
	if err != nil {
		return nil, fmt.Errorf("parsing hex input: %w", err)
	}
	return ret, nil
}

// parseHex decodes hex text. Whitespace, commas, 0x prefixes and
// comments starting with # or // are ignored, so both hexDump output
// and Go byte slice literals are accepted.
func parseHex(s string) ([]byte, error) {
	var digits strings.Builder
	for _, line := range strings.Split(s, "\n") {
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		// Drop hexDump's offset column.
		if i := strings.IndexByte(line, ':'); i >= 0 {
			line = line[i+1:]
		}
		for _, f := range strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' || r == '\r' }) {
			digits.WriteString(strings.TrimPrefix(strings.TrimPrefix(f, "0x"), "0X"))
		}
	}
	return hex.DecodeString(digits.String())
}

// hexDump formats bs as lines of 8 bytes, the alignment of
// out-of-line objects, each prefixed with its offset.
func hexDump(bs []byte) string {
	var ret strings.Builder
	for off := 0; off < len(bs); off += 8 {
		line := bs[off:min(off+8, len(bs))]
		fmt.Fprintf(&ret, "%04x:", off)
		for _, b := range line {
			fmt.Fprintf(&ret, " %02x", b)
		}
		ret.WriteByte('\n')
	}
	return ret.String()
}

// describeType writes the layout of t in both encodings.
func describeType(out *indenter, t *tc.Type) {
	out.f("%s (%s)", t, t.Kind())
	out.indent(1)
	for _, enc := range []tc.Encoding{tc.Legacy, tc.Extensible} {
		out.f("%-10s size %d, align %d", enc.String()+":", t.Size(enc), t.Align(enc))
	}

	switch t.Kind() {
	case tc.Struct:
		out.s("fields:")
		out.indent(2)
		for _, f := range t.Fields() {
			out.f("%s %s  legacy @%d, extensible @%d", f.Name, f.Type, f.Offset(tc.Legacy), f.Offset(tc.Extensible))
		}
	case tc.Union:
		out.f("legacy body: size %d, payload @%d", t.ObjectSize(), t.DataOffset())
		out.s("variants:")
		out.indent(2)
		for _, v := range t.Variants() {
			out.f("%s %s  tag %d, ordinal %d", v.Name, v.Type, v.Tag, v.Ordinal)
		}
	case tc.Table:
		out.s("fields:")
		out.indent(2)
		for _, f := range t.TableFields() {
			out.f("%d: %s %s", f.Ordinal, f.Name, f.Type)
		}
	}
}

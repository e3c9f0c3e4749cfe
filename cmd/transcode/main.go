package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"regexp"
	"syscall"

	"github.com/creachadair/command"
	"github.com/creachadair/flax"
	"github.com/creachadair/mds/heapq"
	"github.com/creachadair/mds/slice"
	"github.com/kr/pretty"
	"go.uber.org/zap"

	tc "github.com/danderson/transcode"
	"github.com/danderson/transcode/fragments"
	"github.com/danderson/transcode/internal/descgen"
	"github.com/danderson/transcode/schema"
)

var globalArgs struct {
	Schema  string `flag:"schema,Schema file to load (.yaml, .yml or .json)"`
	Verbose bool   `flag:"verbose,Log progress to stderr"`
}

var logger = zap.NewNop()

func loadSchema() (*schema.Schema, error) {
	if globalArgs.Verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("creating logger: %w", err)
		}
		logger = l
	}
	if globalArgs.Schema == "" {
		return nil, errors.New("no schema file given, use --schema")
	}
	s, err := schema.Load(globalArgs.Schema)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded schema", zap.String("path", globalArgs.Schema), zap.Int("types", len(s.Types())))
	return s, nil
}

func lookupType(s *schema.Schema, name string) (*tc.Type, error) {
	t, ok := s.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("type %s is not declared in %s", name, globalArgs.Schema)
	}
	return t, nil
}

func main() {
	root := &command.C{
		Name:     "transcode",
		Usage:    "--schema file command args...",
		SetFlags: command.Flags(flax.MustBind, &globalArgs),
		Commands: []*command.C{
			{
				Name:  "convert",
				Usage: "convert type direction [input]",
				Help: `Convert a message between the legacy and extensible encodings.

direction is legacy-to-extensible or extensible-to-legacy. The message
is read from input, or from stdin if input is absent or "-".

The converted message is written to stdout, as a hex dump if stdout is
a terminal or --hex is set, and as raw bytes otherwise.`,
				SetFlags: command.Flags(flax.MustBind, &convertArgs),
				Run:      runConvert,
			},
			{
				Name:  "layout",
				Usage: "layout [type-regexp]",
				Help: `Show the wire layout of schema types in both encodings.

With no argument, every declared type is shown. Otherwise, only types
whose name matches the regexp.`,
				SetFlags: command.Flags(flax.MustBind, &layoutArgs),
				Run:      runLayout,
			},
			{
				Name:  "check",
				Usage: "check [type-regexp]",
				Help:  "Validate the schema and list the types it declares.",
				Run:   runCheck,
			},
			{
				Name:     "generate",
				Usage:    "generate",
				Help:     "Generate a Go package that declares the schema's type descriptors.",
				SetFlags: command.Flags(flax.MustBind, &generateArgs),
				Run:      command.Adapt(runGenerate),
			},
			command.HelpCommand(nil),
			command.VersionCommand(),
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	env := root.NewEnv(nil).SetContext(ctx)
	command.RunOrFail(env, os.Args[1:])
	logger.Sync()
}

var convertArgs struct {
	Out      string `flag:"out,Write the converted message to this file instead of stdout"`
	Hex      bool   `flag:"hex,Write a hex dump even if stdout is not a terminal"`
	HexIn    bool   `flag:"hex-in,Read the input as hex text rather than raw bytes"`
	Capacity int    `flag:"capacity,default=65536,Destination buffer capacity in bytes"`
}

func runConvert(env *command.Env) error {
	if len(env.Args) < 2 || len(env.Args) > 3 {
		return env.Usagef("convert takes a type, a direction, and an optional input file.")
	}
	s, err := loadSchema()
	if err != nil {
		return err
	}
	typ, err := lookupType(s, env.Args[0])
	if err != nil {
		return err
	}
	dir, err := tc.ParseDirection(env.Args[1])
	if err != nil {
		return err
	}
	if convertArgs.Capacity <= 0 {
		return env.Usagef("--capacity must be positive")
	}

	input := "-"
	if len(env.Args) == 3 {
		input = env.Args[2]
	}
	src, err := readInput(input, convertArgs.HexIn)
	if err != nil {
		return err
	}

	out, err := tc.Transform(dir, typ, src, make([]byte, convertArgs.Capacity))
	if err != nil {
		var terr *tc.Error
		if errors.As(err, &terr) {
			logger.Debug("transform failed", zap.NamedError("kind", terr.Kind), zap.String("path", terr.Path))
		}
		return fmt.Errorf("converting %s: %w", typ, err)
	}
	logger.Debug("converted message",
		zap.Stringer("direction", dir),
		zap.Stringer("type", typ),
		zap.Int("in", len(src)),
		zap.Int("out", len(out)))

	if convertArgs.Out != "" {
		if err := os.WriteFile(convertArgs.Out, out, 0644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		fmt.Printf("Wrote %d bytes to %s\n", len(out), convertArgs.Out)
		return nil
	}
	if convertArgs.Hex || stdoutIsTerminal() {
		_, err = io.WriteString(os.Stdout, hexDump(out))
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

var layoutArgs struct {
	Raw bool `flag:"raw,Also dump each type's schema declaration"`
}

func runLayout(env *command.Env) error {
	s, err := loadSchema()
	if err != nil {
		return err
	}
	names, err := matchTypes(s, growTo(env.Args, 1)[0])
	if err != nil {
		return err
	}
	if !fragments.IsNative(fragments.LittleEndian) {
		fmt.Println("note: this machine is big-endian, message values are byte swapped")
	}

	var out indenter
	for i, name := range names {
		if i > 0 {
			out.indent(0)
			out.s("")
		}
		t, _ := s.Lookup(name)
		out.indent(0)
		describeType(&out, t)
		if layoutArgs.Raw {
			d, _ := s.Decl(name)
			out.indent(1)
			out.f("%# v", pretty.Formatter(d))
		}
	}
	return nil
}

func runCheck(env *command.Env) error {
	s, err := loadSchema()
	if err != nil {
		return err
	}
	names, err := matchTypes(s, growTo(env.Args, 1)[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d types OK\n", globalArgs.Schema, len(s.Types()))
	for _, name := range names {
		d, _ := s.Decl(name)
		fmt.Printf("  %s %s\n", d.Kind, name)
	}
	return nil
}

// matchTypes returns the names of the types in s that match the
// regexp filter, sorted by name.
func matchTypes(s *schema.Schema, filter string) ([]string, error) {
	f, err := regexp.Compile(filter)
	if err != nil {
		return nil, err
	}
	sorted := heapq.New(cmp.Compare[string])
	for name := range slice.Select(s.Types(), f.MatchString) {
		sorted.Add(name)
	}
	var ret []string
	for !sorted.IsEmpty() {
		name, _ := sorted.Pop()
		ret = append(ret, name)
	}
	if len(ret) == 0 {
		return nil, fmt.Errorf("no types match %q", filter)
	}
	return ret, nil
}

var generateArgs struct {
	PackageName string `flag:"package,default=types,Package name to output"`
	OutFile     string `flag:"out,default=types.go,Output file path"`
}

func runGenerate(env *command.Env) error {
	s, err := loadSchema()
	if err != nil {
		return err
	}
	code, err := descgen.Package(generateArgs.PackageName, s)
	if err != nil {
		return fmt.Errorf("generating package: %w", err)
	}
	if err := os.WriteFile(generateArgs.OutFile, []byte(code), 0644); err != nil {
		return fmt.Errorf("writing generated code: %w", err)
	}
	logger.Debug("generated package", zap.String("package", generateArgs.PackageName), zap.Strings("order", s.DependencyOrder()))
	fmt.Printf("Wrote generated package to %s\n", generateArgs.OutFile)
	return nil
}

// Command jcodecfmt validates and pretty-prints a stream of JSON values
// using the jcodec library directly -- the Chunker to find top-level value
// boundaries, AnyValueDecoder/AnyValueEncoder to round-trip each one -- the
// way a real consumer would, rather than through encoding/json.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/xdg-go/jcodec"
)

func main() {
	var (
		indent   bool
		maxBits  int
		strict   bool
		maxBytes int
	)

	cmd := &cobra.Command{
		Use:   "jcodecfmt [file...]",
		Short: "Validate and pretty-print JSON values using the jcodec decoder",
		Long: `jcodecfmt reads one or more top-level JSON values -- from the named
files, or from stdin if none are given -- and re-emits each one, either
compactly or indented. A value that fails to decode is reported in red
with its full field/index breadcrumb and does not stop the remaining
values from being processed; a framing error (bytes that cannot start or
continue a JSON value) stops processing of that input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jcodec.ConfigureNumberMaxBits(maxBits)

			if len(args) == 0 {
				return run(cmd.OutOrStdout(), os.Stdin, indent, strict, maxBytes)
			}
			failed := false
			for _, path := range args {
				if err := runFile(cmd.OutOrStdout(), path, indent, strict, maxBytes); err != nil {
					failed = true
				}
			}
			if failed {
				return fmt.Errorf("one or more files failed to process")
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVar(&indent, "indent", true, "pretty-print with two-space indentation")
	flags.IntVar(&maxBits, "max-bits", 128, "bit-width cap for arbitrary-precision number parsing")
	flags.BoolVar(&strict, "strict", true, "treat an unterminated trailing value as an error")
	flags.IntVar(&maxBytes, "max-doc-bytes", 64*1024*1024, "maximum size in bytes of a single top-level value")

	if err := cmd.Execute(); err != nil {
		color.Error.Println(err)
		os.Exit(1)
	}
}

func runFile(out io.Writer, path string, indent, strict bool, maxBytes int) error {
	f, err := os.Open(path)
	if err != nil {
		color.Error.Printf("%s: %s\n", path, err)
		return err
	}
	defer f.Close()
	return run(out, f, indent, strict, maxBytes)
}

func run(out io.Writer, in io.Reader, indent, strict bool, maxBytes int) error {
	failed := false
	chunker := jcodec.NewChunker(maxBytes, strict, func(doc []byte) {
		v, err := jcodec.DecodeBytes(doc, jcodec.AnyValueDecoder)
		if err != nil {
			color.Danger.Printf("error: %s\n", err)
			failed = true
			return
		}
		text := jcodec.Encode(v, jcodec.AnyValueEncoder, indent)
		fmt.Fprintln(out, text)
	})

	r := bufio.NewReaderSize(in, 64*1024)
	buf := make([]byte, 64*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if accErr := chunker.Accept(buf[:n]); accErr != nil {
				color.Danger.Printf("error: %s\n", accErr)
				failed = true
				break
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			color.Error.Printf("read error: %s\n", err)
			return err
		}
	}
	if err := chunker.End(); err != nil {
		color.Danger.Printf("error: %s\n", err)
		failed = true
	}
	if failed {
		return fmt.Errorf("input contained invalid JSON")
	}
	return nil
}

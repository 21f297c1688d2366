// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/memschem/internal/options"
)

// schemExtension is the required extension of the output file. The writer
// produces this container format and nothing else, a different extension is
// almost always a mistyped argument.
const schemExtension = ".schem"

// ParseFlags parses the command line and returns the program options.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) != 2 {
		return opts, &UsageError{flags: flags}
	}

	opts.Input = args[0]
	opts.Output = args[1]

	if !strings.HasSuffix(opts.Output, schemExtension) {
		return opts, &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("output file %s does not have the %s extension", opts.Output, schemExtension),
		}
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: memschem [options] <memory file> <output %s file>\n\n", schemExtension)
	if e.flags != nil {
		e.flags.PrintDefaults()
		fmt.Println()
	}
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Layout, "c", "", "layout configuration file to adjust the generated schematic")
	flags.BoolVar(&opts.Strict, "strict", false, "reject memory images with short rom pages or a missing ram block instead of zero padding them")
	flags.BoolVar(&opts.WriteRAM, "ram", false, "emit the RAM write queue cards for nonzero ram cells")
	flags.BoolVar(&opts.Verify, "verify", false, "verify the written schematic by re-encoding and comparing it")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

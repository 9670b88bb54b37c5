package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

const version = "0.1.0"

var (
	versionOption = flag.Bool("version", false, "gqlir version")
	verboseOption = flag.Bool("v", false, "print progress to stderr")
	stdoutOption  = flag.Bool("stdout", false, "write the IR to stdout instead of files")
	flatOption    = flag.Bool("flat", false, "write the IR as a single document")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: gqlir [flags] [schema dir]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *versionOption {
		fmt.Printf("gqlir v%s", version)

		return
	}

	opts := options{
		dir:     ".",
		verbose: *verboseOption,
		stdout:  *stdoutOption,
		flat:    *flatOption,
	}
	if flag.NArg() > 0 {
		opts.dir = flag.Arg(0)
	}

	ctx := context.Background()
	if err := run(ctx, opts, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/peapod/errors"
	"github.com/wippyai/peapod/phenotype"
)

func main() {
	var (
		jsonFile    = flag.String("json", "", "WIT resolve JSON (from `wasm-tools component wit --json`), or - for stdin")
		typeName    = flag.String("type", "", "Only report this type")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		plain       = flag.Bool("plain", false, "Disable colours and borders")
		verbose     = flag.Bool("v", false, "Verbose logging to stderr")
	)
	flag.Parse()

	if *jsonFile == "" {
		fmt.Fprintf(os.Stderr, "Error: %v\n", errors.InvalidInput(errors.PhaseLoad, "missing -json input"))
		fmt.Fprintln(os.Stderr, "Usage: peapod-layout -json <file.json|-> [-type name] [-plain] [-v]")
		fmt.Fprintln(os.Stderr, "       peapod-layout -json <file.json|-> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = logger.Sync() }()
		phenotype.SetLogger(logger.Named("phenotype"))
	}

	layouts, err := load(*jsonFile, *typeName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(*jsonFile, layouts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	styled := !*plain && term.IsTerminal(int(os.Stdout.Fd()))
	fmt.Print(report(layouts, styled))
}

func load(path, typeName string) ([]phenotype.Layout, error) {
	var in io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidInput, err, "open "+path)
		}
		defer f.Close()
		in = f
	}

	res, err := phenotype.DecodeWIT(in)
	if err != nil {
		return nil, err
	}
	return selectLayouts(res, typeName)
}

func selectLayouts(res *wit.Resolve, typeName string) ([]phenotype.Layout, error) {
	if typeName == "" {
		return phenotype.Layouts(res), nil
	}
	td, err := phenotype.Lookup(res, typeName)
	if err != nil {
		return nil, err
	}
	_, l, err := phenotype.FromWIT(td)
	if err != nil {
		return nil, err
	}
	return []phenotype.Layout{l}, nil
}

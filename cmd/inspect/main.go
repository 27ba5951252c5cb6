package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	programinput "github.com/wippyai/program-input"
	"github.com/wippyai/program-input/engine"
	"github.com/wippyai/program-input/entrypoint"
	"github.com/wippyai/program-input/input"
	"github.com/wippyai/program-input/layout"
)

type options struct {
	in          string
	wasm        string
	limit       int
	noDup       bool
	interactive bool
	verbose     bool
}

func main() {
	var opts options
	flag.StringVar(&opts.in, "in", "", "Path to an input buffer file")
	flag.IntVar(&opts.limit, "limit", layout.MaxAccountLimit, "Maximum number of accounts to accept")
	flag.BoolVar(&opts.noDup, "no-dup", false, "Reject buffers containing duplicate accounts")
	flag.StringVar(&opts.wasm, "wasm", "", "Run this program against the buffer and show the changes")
	flag.BoolVar(&opts.interactive, "i", false, "Interactive mode with TUI")
	flag.BoolVar(&opts.verbose, "v", false, "Verbose logging")
	flag.Parse()

	if opts.in == "" {
		fmt.Fprintln(os.Stderr, "Usage: inspect -in <buffer.bin> [-limit N] [-no-dup] [-wasm prog.wasm] [-v]")
		fmt.Fprintln(os.Stderr, "       inspect -in <buffer.bin> -i  (interactive mode)")
		os.Exit(1)
	}

	if opts.verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync()
		engine.SetLogger(log.Named("engine"))
		entrypoint.SetLogger(log.Named("entrypoint"))
	}

	if err := run(context.Background(), os.Stdout, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// snapshot is a decoded buffer ready for display.
type snapshot struct {
	programID *programinput.Pubkey
	data      []byte
	accounts  []accountRow
}

func run(ctx context.Context, w io.Writer, opts options) error {
	if opts.interactive && !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("interactive mode needs a terminal")
	}

	buf, err := os.ReadFile(opts.in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	before, err := decode(buf, opts)
	if err != nil {
		return err
	}

	var after []accountRow
	if opts.wasm != "" {
		after, err = invoke(ctx, opts.wasm, buf, before.accounts)
		if err != nil {
			return err
		}
	}

	if opts.interactive {
		return runInteractive(opts.in, before, after)
	}

	fmt.Fprintf(w, "Buffer: %s (%d bytes)\n", opts.in, len(buf))
	printAccounts(w, before.accounts)
	printTrailer(w, before.data, before.programID)

	if opts.wasm != "" {
		fmt.Fprintf(w, "\nAfter %s:\n", opts.wasm)
		printAccounts(w, after)
		changes := diffRows(before.accounts, after)
		if len(changes) == 0 {
			fmt.Fprintln(w, "No changes")
		}
		for _, c := range changes {
			fmt.Fprintln(w, c)
		}
	}
	return nil
}

// decode checks the buffer's bounds before handing it to the decoder, which
// trusts its input.
func decode(buf []byte, opts options) (*snapshot, error) {
	if err := input.CheckBounds(buf); err != nil {
		return nil, err
	}

	dec, err := input.NewDecoder(opts.limit, nil)
	if err != nil {
		return nil, fmt.Errorf("decoder: %w", err)
	}

	if opts.noDup {
		in, err := dec.DecodeNoDup(buf)
		if err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		return &snapshot{
			accounts:  viewRows(in.Accounts),
			data:      in.InstructionData,
			programID: in.ProgramID,
		}, nil
	}

	in, err := dec.Decode(buf)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &snapshot{
		accounts:  inputRows(&in),
		data:      in.InstructionData,
		programID: in.ProgramID,
	}, nil
}

func invoke(ctx context.Context, path string, buf []byte, before []accountRow) ([]accountRow, error) {
	wasm, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read program: %w", err)
	}

	host, err := engine.NewHost(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create host: %w", err)
	}
	defer host.Close(ctx)

	prog, err := host.Load(ctx, wasm)
	if err != nil {
		return nil, fmt.Errorf("load program: %w", err)
	}

	res, err := prog.Invoke(ctx, buf)
	if err != nil {
		return nil, fmt.Errorf("invoke: %w", err)
	}
	return resultRows(res, before), nil
}

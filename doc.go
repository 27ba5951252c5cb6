// Package programinput decodes the input buffer an execution environment
// hands to a loaded program at invocation time.
//
// The buffer is one contiguous, fixed-layout region holding the declared
// accounts, the instruction data and the id of the program being invoked.
// Decoding produces zero-copy views over that region: reads and writes
// through a view go straight to the caller's bytes.
//
// # Architecture Overview
//
//	programinput/        Root package with the Pubkey key type
//	├── layout/          Byte offsets and strides of an account record
//	├── input/           Account views, stream decoder and orchestrator
//	├── entrypoint/      Program entry glue and return-code convention
//	├── encoder/         Host-side reference serializer for input buffers
//	├── engine/          wazero host invoking WASM programs with a buffer
//	├── errors/          Structured error types
//	└── cmd/inspect/     Buffer inspector CLI with interactive browser
//
// # Quick Start
//
// Decode a buffer inside a program:
//
//	dec, err := input.NewDecoder(64, input.WithinLimit(64))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	in, err := dec.Decode(buf)
//	if err != nil {
//	    return entrypoint.ErrorCode
//	}
//
//	for i, acc := range in.Accounts {
//	    if view, ok := acc.View(); ok {
//	        fmt.Println(i, view.Key(), view.Lamports())
//	    }
//	}
//
// # Buffer Layout
//
// All integers are little-endian. The first byte of the buffer is taken as
// 8-byte aligned and every alignment pad is relative to it.
//
//	u64            account count
//	per account:   full record | duplicate record
//	u64            instruction data length
//	[]byte         instruction data
//	[32]byte       program id
//
// # Preconditions
//
// The decoder performs no bounds validation of its own. The producer of the
// buffer must guarantee that every declared length lies within it; a
// malformed buffer panics on a slice bound instead of returning an error.
//
// # Thread Safety
//
// Views write directly into the buffer without synchronization. A buffer
// and everything decoded from it belongs to a single goroutine for the
// duration of one invocation.
package programinput

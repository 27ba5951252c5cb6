// Package engine runs programs compiled to WebAssembly against an input
// buffer using wazero.
//
// A program is a core module that exports its linear memory and an entry
// function:
//
//	(func (export "entrypoint") (param i32) (result i64))
//
// The host writes the buffer into a fresh instance, calls the entry
// function with the buffer's offset and reads the buffer back when the
// function returns 0. Any other return value, or a trap, fails the
// invocation and the program's writes are discarded.
//
// Basic usage:
//
//	host, err := engine.NewHost(ctx, nil)
//	if err != nil {
//	    return err
//	}
//	defer host.Close(ctx)
//
//	prog, err := host.Load(ctx, wasmBytes)
//	if err != nil {
//	    return err
//	}
//
//	res, err := prog.Run(ctx, params)
//	if err != nil {
//	    return err
//	}
//	view, _ := res.Account(0)
//	fmt.Println(view.Lamports())
//
// Each Invoke instantiates the program anew, so a Program can be invoked
// from several goroutines at once.
package engine

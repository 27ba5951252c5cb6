package engine

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/program-input/encoder"
	"github.com/wippyai/program-input/errors"
	"github.com/wippyai/program-input/input"
	"github.com/wippyai/program-input/layout"
)

// DefaultEntryPoint is the export a program must provide.
const DefaultEntryPoint = "entrypoint"

const pageSize = 1 << 16

// Config holds configuration for host creation
type Config struct {
	// EntryPoint names the exported function called with the input offset.
	// Empty means DefaultEntryPoint.
	EntryPoint string

	// MemoryLimitPages sets the maximum memory per instance in pages (64KB each).
	// 0 means default (65536 pages = 4GB).
	MemoryLimitPages uint32

	// InputOffset fixes where the buffer is placed in guest memory. It must
	// be a multiple of 8. 0 places the buffer past the guest's initial
	// memory, which is grown to fit, so it never overlaps guest data.
	InputOffset uint32
}

// Host runs programs compiled to WebAssembly core modules. A program
// exports its linear memory and an entry function taking the input offset
// (i32 or i64) and returning its exit code (i32 or i64).
//
// Host and Program are safe for concurrent use; every invocation gets a
// fresh instance.
type Host struct {
	runtime wazero.Runtime
	cfg     Config
}

// NewHost creates a host. A nil cfg uses defaults.
func NewHost(ctx context.Context, cfg *Config) (*Host, error) {
	var c Config
	if cfg != nil {
		c = *cfg
	}
	if c.EntryPoint == "" {
		c.EntryPoint = DefaultEntryPoint
	}
	if c.InputOffset%layout.Alignment != 0 {
		return nil, errors.InvalidInput(errors.PhaseLoad,
			fmt.Sprintf("input offset %d is not %d-byte aligned", c.InputOffset, layout.Alignment))
	}

	runtimeCfg := wazero.NewRuntimeConfig()
	if c.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(c.MemoryLimitPages)
	}

	return &Host{
		runtime: wazero.NewRuntimeWithConfig(ctx, runtimeCfg),
		cfg:     c,
	}, nil
}

// Close releases the runtime and every program loaded into it.
func (h *Host) Close(ctx context.Context) error {
	return h.runtime.Close(ctx)
}

// Load compiles a program and checks its exports.
func (h *Host) Load(ctx context.Context, wasm []byte) (*Program, error) {
	compiled, err := h.runtime.CompileModule(ctx, wasm)
	if err != nil {
		return nil, errors.Load("compile program", err)
	}

	if err := checkExports(compiled, h.cfg.EntryPoint); err != nil {
		_ = compiled.Close(ctx)
		return nil, err
	}

	Logger().Debug("program loaded",
		zap.String("entry", h.cfg.EntryPoint),
		zap.Int("size", len(wasm)))

	return &Program{host: h, compiled: compiled}, nil
}

func checkExports(compiled wazero.CompiledModule, entry string) error {
	if len(compiled.ExportedMemories()) == 0 {
		return errors.NotFound(errors.PhaseLoad, "memory export", "memory")
	}

	def, ok := compiled.ExportedFunctions()[entry]
	if !ok {
		return errors.NotFound(errors.PhaseLoad, "function export", entry)
	}

	params, results := def.ParamTypes(), def.ResultTypes()
	if len(params) != 1 || !isInt(params[0]) || len(results) != 1 || !isInt(results[0]) {
		return errors.New(errors.PhaseLoad, errors.KindInvalidData).
			Path(entry).
			Detail("signature %s -> %s, want (i32|i64) -> (i32|i64)",
				valueTypes(params), valueTypes(results)).
			Build()
	}
	return nil
}

func isInt(t api.ValueType) bool {
	return t == api.ValueTypeI32 || t == api.ValueTypeI64
}

func valueTypes(ts []api.ValueType) string {
	s := "("
	for i, t := range ts {
		if i > 0 {
			s += ", "
		}
		s += api.ValueTypeName(t)
	}
	return s + ")"
}

// Program is a compiled program ready to be invoked.
type Program struct {
	host     *Host
	compiled wazero.CompiledModule
}

// Close releases the compiled program.
func (p *Program) Close(ctx context.Context) error {
	return p.compiled.Close(ctx)
}

// Run encodes params and invokes the program with the resulting buffer.
func (p *Program) Run(ctx context.Context, params encoder.Params) (*Result, error) {
	buf, err := encoder.Encode(params)
	if err != nil {
		return nil, err
	}
	return p.Invoke(ctx, buf)
}

// Invoke copies buf into a fresh instance, calls the entry point with its
// offset and returns a copy of the buffer as the program left it. A trap or
// a non-zero exit code is an error and discards the program's writes.
//
// buf is checked with input.CheckBounds and its account count against
// MaxAccountLimit before any instance is created.
func (p *Program) Invoke(ctx context.Context, buf []byte) (*Result, error) {
	offsets, err := recordOffsets(buf)
	if err != nil {
		return nil, err
	}

	mod, err := p.host.runtime.InstantiateModule(ctx, p.compiled,
		wazero.NewModuleConfig().WithName("")) // anonymous for parallel instantiation
	if err != nil {
		return nil, errors.Instantiation(err)
	}
	defer mod.Close(ctx)

	mem := mod.Memory()
	offset, err := p.place(mem, len(buf))
	if err != nil {
		return nil, err
	}
	if !mem.Write(offset, buf) {
		return nil, errors.OutOfBounds(errors.PhaseRuntime, []string{"memory"}, int(offset)+len(buf), int(mem.Size()))
	}

	entry := p.host.cfg.EntryPoint
	Logger().Debug("invoking program",
		zap.String("entry", entry),
		zap.Uint32("offset", offset),
		zap.Int("input_size", len(buf)))

	results, err := mod.ExportedFunction(entry).Call(ctx, uint64(offset))
	if err != nil {
		Logger().Warn("program trapped", zap.String("entry", entry), zap.Error(err))
		return nil, errors.Wrap(errors.PhaseRuntime, errors.KindProgramFailed, err, "call "+entry)
	}

	code := results[0]
	if p.compiled.ExportedFunctions()[entry].ResultTypes()[0] == api.ValueTypeI32 {
		code = uint64(uint32(code))
	}
	if code != 0 {
		Logger().Debug("program failed", zap.String("entry", entry), zap.Uint64("code", code))
		return nil, errors.ProgramFailed(code)
	}

	view, ok := mem.Read(offset, uint32(len(buf)))
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseRuntime, []string{"memory"}, int(offset)+len(buf), int(mem.Size()))
	}

	// The view dies with the instance.
	out := make([]byte, len(view))
	copy(out, view)
	return &Result{Code: code, Output: out, offsets: offsets}, nil
}

// recordOffsets walks buf and returns the start of every account record.
func recordOffsets(buf []byte) ([]int, error) {
	if err := input.CheckBounds(buf); err != nil {
		return nil, err
	}

	off := 0
	count := input.ReadNumAccounts(buf, &off)
	if count > layout.MaxAccountLimit {
		return nil, errors.InvalidAccountCount(count)
	}

	offsets := make([]int, 0, count)
	stream := input.NewAccountStream(buf, off, count)
	for {
		start := stream.Offset()
		if _, ok := stream.Next(); !ok {
			return offsets, nil
		}
		offsets = append(offsets, start)
	}
}

// place picks the buffer's offset in guest memory and grows memory to fit.
func (p *Program) place(mem api.Memory, size int) (uint32, error) {
	offset := p.host.cfg.InputOffset
	if offset == 0 {
		offset = mem.Size()
	}

	need := uint64(offset) + uint64(size)
	if have := uint64(mem.Size()); need > have {
		pages := (need - have + pageSize - 1) / pageSize
		if _, ok := mem.Grow(uint32(pages)); !ok {
			return 0, errors.New(errors.PhaseRuntime, errors.KindOutOfBounds).
				Path("memory").
				Value(need).
				Detail("cannot grow memory by %d pages for a %d byte input", pages, size).
				Build()
		}
	}
	return offset, nil
}

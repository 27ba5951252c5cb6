// Package entrypoint wires a program's instruction processor to the input
// buffer.
//
// An Entrypoint is the single function the execution environment calls with
// the raw buffer. It reads and validates the account count, decodes the
// accounts, instruction data and program id, and hands them to the
// processor. The return value follows the environment's convention: Success
// (0) or ErrorCode (1) for any decode failure; processors may return other
// codes of their own.
package entrypoint

import (
	"go.uber.org/zap"

	programinput "github.com/wippyai/program-input"
	"github.com/wippyai/program-input/input"
)

// Return codes.
const (
	Success   uint64 = 0
	ErrorCode uint64 = 1
)

// Entrypoint is called once per invocation with the input buffer.
type Entrypoint func(buf []byte) uint64

// ProcessInstruction receives every account entry, duplicates included.
// The accounts slice is the entry point's decoder arena and is overwritten
// by the next invocation; copy it to keep it.
type ProcessInstruction func(accounts []input.ReadAccount, instructionData []byte, programID *programinput.Pubkey) uint64

// ProcessInstructionNoDup receives full records only. Like
// ProcessInstruction, the slice is reused by the next invocation.
type ProcessInstructionNoDup func(accounts []input.AccountView, instructionData []byte, programID *programinput.Pubkey) uint64

// New builds an entry point accepting up to limit accounts. validate may
// narrow the accepted counts further; nil accepts anything within limit.
// The returned function reuses one decoder and must not be called
// concurrently.
func New(process ProcessInstruction, validate input.CountValidator, limit int) (Entrypoint, error) {
	dec, err := input.NewDecoder(limit, guard(validate, limit))
	if err != nil {
		return nil, err
	}
	return func(buf []byte) uint64 {
		in, err := dec.Decode(buf)
		if err != nil {
			Logger().Debug("input rejected", zap.Error(err))
			return ErrorCode
		}
		return process(in.Accounts, in.InstructionData, in.ProgramID)
	}, nil
}

// NewNoDup is New for processors that never accept the same account twice.
// A duplicate record fails the invocation with ErrorCode.
func NewNoDup(process ProcessInstructionNoDup, validate input.CountValidator, limit int) (Entrypoint, error) {
	dec, err := input.NewDecoder(limit, guard(validate, limit))
	if err != nil {
		return nil, err
	}
	return func(buf []byte) uint64 {
		in, err := dec.DecodeNoDup(buf)
		if err != nil {
			Logger().Debug("input rejected", zap.Error(err))
			return ErrorCode
		}
		return process(in.Accounts, in.InstructionData, in.ProgramID)
	}, nil
}

// guard combines a caller policy with the arena limit so a permissive
// policy can never admit more accounts than the decoder holds.
func guard(validate input.CountValidator, limit int) input.CountValidator {
	within := input.WithinLimit(limit)
	if validate == nil {
		return within
	}
	return func(count uint64) bool {
		return within(count) && validate(count)
	}
}

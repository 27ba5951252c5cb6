package input

import (
	"fmt"

	programinput "github.com/wippyai/program-input"
	"github.com/wippyai/program-input/errors"
	"github.com/wippyai/program-input/layout"
)

// CountValidator decides whether a declared account count may be decoded.
// It runs once, before any account byte is read, and is the only guard
// against overflowing the decoder's arena.
type CountValidator func(count uint64) bool

// WithinLimit accepts counts up to limit.
func WithinLimit(limit int) CountValidator {
	return func(count uint64) bool {
		return count <= uint64(limit)
	}
}

// Input is a decoded buffer. Accounts are in declaration order.
type Input struct {
	Accounts        []ReadAccount
	InstructionData []byte
	ProgramID       *programinput.Pubkey
}

// Resolve returns the view for account i, following duplicate indices back
// to the full record they reference.
func (in *Input) Resolve(i int) (AccountView, bool) {
	for i >= 0 && i < len(in.Accounts) {
		acc := in.Accounts[i]
		idx, dup := acc.DuplicateIndex()
		if !dup {
			return acc.view, true
		}
		// Only backward references are meaningful.
		if int(idx) >= i {
			return AccountView{}, false
		}
		i = int(idx)
	}
	return AccountView{}, false
}

// NoDupInput is a decoded buffer whose accounts are all full records.
type NoDupInput struct {
	Accounts        []AccountView
	InstructionData []byte
	ProgramID       *programinput.Pubkey
}

// Decoder runs the count, accounts, instruction data, program id sequence
// over one buffer at a time. Its arenas are sized once at construction and
// reused: the result of one Decode is valid until the next call. A Decoder
// is not safe for concurrent use.
type Decoder struct {
	validate CountValidator
	accounts []ReadAccount
	views    []AccountView
}

// NewDecoder creates a decoder whose arena holds limit accounts. A nil
// validate uses WithinLimit(limit). A validator that admits more than limit
// accounts makes Decode panic on such a buffer.
func NewDecoder(limit int, validate CountValidator) (*Decoder, error) {
	if limit < 0 || limit > layout.MaxAccountLimit {
		return nil, errors.InvalidInput(errors.PhaseValidate,
			fmt.Sprintf("account limit %d outside [0, %d]", limit, layout.MaxAccountLimit))
	}
	if validate == nil {
		validate = WithinLimit(limit)
	}
	return &Decoder{
		validate: validate,
		accounts: make([]ReadAccount, limit),
		views:    make([]AccountView, limit),
	}, nil
}

// Limit returns the arena capacity.
func (d *Decoder) Limit() int {
	return len(d.accounts)
}

// Decode decodes buf. The only reported failure is a count rejected by the
// validator, in which case nothing past the count is read.
func (d *Decoder) Decode(buf []byte) (Input, error) {
	offset := 0
	count := ReadNumAccounts(buf, &offset)
	if !d.validate(count) {
		return Input{}, errors.InvalidAccountCount(count)
	}

	stream := NewAccountStream(buf, offset, count)
	n := 0
	for acc, ok := stream.Next(); ok; acc, ok = stream.Next() {
		d.accounts[n] = acc
		n++
	}
	offset = stream.Offset()

	return Input{
		Accounts:        d.accounts[:n],
		InstructionData: ReadInstructionData(buf, &offset),
		ProgramID:       ReadProgramID(buf, &offset),
	}, nil
}

// DecodeNoDup decodes buf for programs that never accept the same account
// twice. The first duplicate record fails the decode.
func (d *Decoder) DecodeNoDup(buf []byte) (NoDupInput, error) {
	offset := 0
	count := ReadNumAccounts(buf, &offset)
	if !d.validate(count) {
		return NoDupInput{}, errors.InvalidAccountCount(count)
	}

	stream := NewAccountStream(buf, offset, count)
	n := 0
	for acc, ok := stream.Next(); ok; acc, ok = stream.Next() {
		view, full := acc.View()
		if !full {
			return NoDupInput{}, errors.DuplicateAccount(n, acc.dup)
		}
		d.views[n] = view
		n++
	}
	offset = stream.Offset()

	return NoDupInput{
		Accounts:        d.views[:n],
		InstructionData: ReadInstructionData(buf, &offset),
		ProgramID:       ReadProgramID(buf, &offset),
	}, nil
}

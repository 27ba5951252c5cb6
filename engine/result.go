package engine

import (
	"github.com/wippyai/program-input/errors"
	"github.com/wippyai/program-input/input"
	"github.com/wippyai/program-input/layout"
)

// Result is the input buffer as a successful program left it.
type Result struct {
	// Output is a copy of the buffer read back from guest memory.
	Output []byte

	// Code is the program's exit code; always 0 on a returned Result.
	Code uint64

	offsets []int
}

// NumAccounts returns the number of account records in Output.
func (r *Result) NumAccounts() int {
	return len(r.offsets)
}

// Account returns a view of account i in Output, following a duplicate
// record to the record it names. Records stay where the host wrote them,
// so views remain valid after the program changed data lengths.
func (r *Result) Account(i int) (input.AccountView, bool) {
	if i < 0 || i >= len(r.offsets) {
		return input.AccountView{}, false
	}
	off := r.offsets[i]
	if marker := r.Output[off]; marker != layout.NonDupMarker {
		if int(marker) >= len(r.offsets) {
			return input.AccountView{}, false
		}
		off = r.offsets[marker]
	}
	return input.NewAccountView(r.Output, off), true
}

// Decode re-decodes Output. Strides follow the current data lengths, so
// the result is only meaningful if the program left every data length at
// its original value; use Account otherwise.
func (r *Result) Decode(dec *input.Decoder) (input.Input, error) {
	in, err := dec.Decode(r.Output)
	if err != nil {
		return input.Input{}, errors.Wrap(errors.PhaseRuntime, errors.KindInvalidData, err, "decode program output")
	}
	return in, nil
}

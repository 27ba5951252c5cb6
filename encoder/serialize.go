package encoder

import (
	programinput "github.com/wippyai/program-input"
	"github.com/wippyai/program-input/errors"
	"github.com/wippyai/program-input/layout"
)

// Serialize builds a buffer from an account list in which the same key may
// appear more than once. The first occurrence is encoded in full and later
// ones as duplicates of it, which is how a runtime presents an instruction
// that names one account several times.
func Serialize(accounts []Account, instructionData []byte, programID programinput.Pubkey) ([]byte, error) {
	entries, err := Dedup(accounts)
	if err != nil {
		return nil, err
	}
	return Encode(Params{
		Entries:         entries,
		InstructionData: instructionData,
		ProgramID:       programID,
	})
}

// Dedup converts accounts to entries, replacing repeated keys by duplicate
// references to their first position.
func Dedup(accounts []Account) ([]Entry, error) {
	entries := make([]Entry, len(accounts))
	first := make(map[programinput.Pubkey]int, len(accounts))
	for i, a := range accounts {
		if j, seen := first[a.Key]; seen {
			// A duplicate index is one byte with the marker value reserved.
			if j >= layout.NonDupMarker {
				return nil, errors.OutOfBounds(errors.PhaseEncode, []string{"accounts"}, j, layout.NonDupMarker)
			}
			entries[i] = Duplicate(uint8(j))
			continue
		}
		first[a.Key] = i
		entries[i] = Full(a)
	}
	return entries, nil
}

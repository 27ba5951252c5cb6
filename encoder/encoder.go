// Package encoder builds program input buffers on the host side.
//
// The output is byte-for-byte the layout the input package decodes. It is
// used to hand buffers to programs and to produce fixtures for tests and the
// inspector.
package encoder

import (
	"encoding/binary"
	"fmt"
	"math"

	programinput "github.com/wippyai/program-input"
	"github.com/wippyai/program-input/errors"
	"github.com/wippyai/program-input/layout"
)

// Account is the host's copy of one account handed to a program.
type Account struct {
	Data       []byte
	Lamports   uint64
	RentEpoch  uint64
	Key        programinput.Pubkey
	Owner      programinput.Pubkey
	IsSigner   bool
	IsWritable bool
	Executable bool
}

// Entry is one position in the account list: a full account or a
// back-reference to an earlier position.
type Entry struct {
	account Account
	dup     uint8
}

// Full encodes a as a full record.
func Full(a Account) Entry {
	return Entry{account: a, dup: layout.NonDupMarker}
}

// Duplicate references the account at an earlier position.
func Duplicate(index uint8) Entry {
	return Entry{dup: index}
}

func (e Entry) IsDuplicate() bool {
	return e.dup != layout.NonDupMarker
}

// Account returns the full account; ok is false for duplicates.
func (e Entry) Account() (Account, bool) {
	return e.account, !e.IsDuplicate()
}

// Params is everything that goes into one input buffer.
type Params struct {
	Entries         []Entry
	InstructionData []byte
	ProgramID       programinput.Pubkey
}

// Size returns the encoded length of p.
func Size(p Params) int {
	offset := layout.CountSize
	for _, e := range p.Entries {
		if e.IsDuplicate() {
			offset += layout.DuplicateRecordSize
			continue
		}
		offset += layout.FullRecordSize(offset, uint64(len(e.account.Data)))
	}
	return offset + layout.LengthSize + len(p.InstructionData) + layout.PubkeySize
}

// Offsets returns the start of each entry's record within the encoded
// buffer. Offsets stay valid after a program changes data lengths, which the
// decoder's strides do not.
func Offsets(p Params) []int {
	offsets := make([]int, len(p.Entries))
	offset := layout.CountSize
	for i, e := range p.Entries {
		offsets[i] = offset
		if e.IsDuplicate() {
			offset += layout.DuplicateRecordSize
			continue
		}
		offset += layout.FullRecordSize(offset, uint64(len(e.account.Data)))
	}
	return offsets
}

// Encode allocates and fills a buffer for p.
func Encode(p Params) ([]byte, error) {
	buf := make([]byte, Size(p))
	if _, err := EncodeTo(buf, p); err != nil {
		return nil, err
	}
	return buf, nil
}

// EncodeTo writes p into dst, which must be at least Size(p) bytes and is
// assumed to start 8-byte aligned. It returns the number of bytes written.
func EncodeTo(dst []byte, p Params) (int, error) {
	if err := validate(p); err != nil {
		return 0, err
	}
	size := Size(p)
	if len(dst) < size {
		return 0, errors.OutOfBounds(errors.PhaseEncode, []string{"buffer"}, size, len(dst))
	}
	buf := dst[:size]
	clear(buf)

	binary.LittleEndian.PutUint64(buf, uint64(len(p.Entries)))
	offset := layout.CountSize

	for _, e := range p.Entries {
		if e.IsDuplicate() {
			buf[offset] = e.dup
			offset += layout.DuplicateRecordSize
			continue
		}
		offset += putAccount(buf[offset:], offset, &e.account)
	}

	binary.LittleEndian.PutUint64(buf[offset:], uint64(len(p.InstructionData)))
	offset += layout.LengthSize
	offset += copy(buf[offset:], p.InstructionData)
	offset += copy(buf[offset:], p.ProgramID[:])

	return offset, nil
}

// putAccount writes a full record into rec, whose first byte sits at
// absolute offset start, and returns the record size.
func putAccount(rec []byte, start int, a *Account) int {
	rec[layout.DuplicateOffset] = layout.NonDupMarker
	rec[layout.IsSignerOffset] = boolByte(a.IsSigner)
	rec[layout.IsWritableOffset] = boolByte(a.IsWritable)
	rec[layout.ExecutableOffset] = boolByte(a.Executable)
	binary.LittleEndian.PutUint32(rec[layout.OriginalDataLenOffset:], uint32(len(a.Data)))
	copy(rec[layout.KeyOffset:], a.Key[:])
	copy(rec[layout.OwnerOffset:], a.Owner[:])
	binary.LittleEndian.PutUint64(rec[layout.LamportsOffset:], a.Lamports)
	binary.LittleEndian.PutUint64(rec[layout.DataLenOffset:], uint64(len(a.Data)))
	copy(rec[layout.DataOffset:], a.Data)

	size := layout.FullRecordSize(start, uint64(len(a.Data)))
	binary.LittleEndian.PutUint64(rec[size-layout.RentEpochSize:], a.RentEpoch)
	return size
}

func validate(p Params) error {
	for i, e := range p.Entries {
		if !e.IsDuplicate() {
			if uint64(len(e.account.Data)) > math.MaxUint32 {
				return errors.New(errors.PhaseEncode, errors.KindOverflow).
					Path("entries", fmt.Sprint(i)).
					Value(len(e.account.Data)).
					Detail("data length %d overflows u32", len(e.account.Data)).
					Build()
			}
			continue
		}
		idx := int(e.dup)
		path := []string{"entries", fmt.Sprint(i)}
		if idx >= i {
			return errors.InvalidData(errors.PhaseEncode, path,
				fmt.Sprintf("duplicate of account %d is not an earlier position", idx))
		}
		if p.Entries[idx].IsDuplicate() {
			return errors.InvalidData(errors.PhaseEncode, path,
				fmt.Sprintf("duplicate of account %d, itself a duplicate", idx))
		}
	}
	return nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

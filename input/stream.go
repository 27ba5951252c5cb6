package input

import (
	"encoding/binary"
	"iter"

	"github.com/wippyai/program-input/layout"
)

// ReadAccount is one decoded account entry: a view over a full record or
// the index of an earlier account this entry duplicates.
type ReadAccount struct {
	view AccountView
	dup  uint8
}

// IsDuplicate reports whether the entry is a back-reference.
func (a ReadAccount) IsDuplicate() bool {
	return a.dup != layout.NonDupMarker
}

// View returns the full record's view; ok is false for duplicates.
func (a ReadAccount) View() (AccountView, bool) {
	if a.IsDuplicate() {
		return AccountView{}, false
	}
	return a.view, true
}

// DuplicateIndex returns the referenced account's index; ok is false for full records.
func (a ReadAccount) DuplicateIndex() (uint8, bool) {
	if !a.IsDuplicate() {
		return 0, false
	}
	return a.dup, true
}

// ReadNumAccounts reads the u64 account count and advances offset past it.
func ReadNumAccounts(buf []byte, offset *int) uint64 {
	n := binary.LittleEndian.Uint64(buf[*offset:])
	*offset += layout.CountSize
	return n
}

// ReadAccountView decodes the record at offset and advances offset by its
// exact wire size.
func ReadAccountView(buf []byte, offset *int) ReadAccount {
	view := AccountView{buf: buf, off: *offset}

	// Duplicates are serialized as the marker plus padding; the caller maps
	// the index if it needs the earlier view.
	dup := view.Duplicate()
	if dup != layout.NonDupMarker {
		*offset += layout.DuplicateRecordSize
		return ReadAccount{dup: dup}
	}

	*offset += layout.FullRecordSize(*offset, view.DataLen())
	return ReadAccount{view: view, dup: layout.NonDupMarker}
}

// AccountStream lazily decodes a fixed number of account records.
// It is finite and cannot be restarted; decode again from offset 0 for a
// fresh pass.
type AccountStream struct {
	buf       []byte
	offset    int
	remaining uint64
	index     int
}

// NewAccountStream starts a stream of count records at offset, normally the
// offset just past the account count.
func NewAccountStream(buf []byte, offset int, count uint64) *AccountStream {
	return &AccountStream{
		buf:       buf,
		offset:    offset,
		remaining: count,
	}
}

// Next decodes the next record. ok is false once count records were produced.
func (s *AccountStream) Next() (ReadAccount, bool) {
	if s.remaining == 0 {
		return ReadAccount{}, false
	}
	acc := ReadAccountView(s.buf, &s.offset)
	s.remaining--
	s.index++
	return acc, true
}

// Offset is the cursor: the first byte not yet consumed.
func (s *AccountStream) Offset() int {
	return s.offset
}

func (s *AccountStream) Remaining() uint64 {
	return s.remaining
}

// All yields the remaining records with their position in the account list.
func (s *AccountStream) All() iter.Seq2[int, ReadAccount] {
	return func(yield func(int, ReadAccount) bool) {
		for {
			i := s.index
			acc, ok := s.Next()
			if !ok || !yield(i, acc) {
				return
			}
		}
	}
}

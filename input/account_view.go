package input

import (
	"encoding/binary"

	programinput "github.com/wippyai/program-input"
	"github.com/wippyai/program-input/errors"
	"github.com/wippyai/program-input/layout"
)

// AccountView is a zero-copy accessor over one full account record.
// It is valid for as long as the buffer it was decoded from.
type AccountView struct {
	buf []byte
	off int
}

// NewAccountView binds a view to the full record starting at offset.
func NewAccountView(buf []byte, offset int) AccountView {
	return AccountView{buf: buf, off: offset}
}

// Offset returns the record's start within the buffer.
func (v AccountView) Offset() int {
	return v.off
}

// Duplicate returns the record's marker byte; layout.NonDupMarker for a full record.
func (v AccountView) Duplicate() uint8 {
	return v.buf[v.off+layout.DuplicateOffset]
}

func (v AccountView) IsSigner() bool {
	return v.buf[v.off+layout.IsSignerOffset] != 0
}

func (v AccountView) IsWritable() bool {
	return v.buf[v.off+layout.IsWritableOffset] != 0
}

func (v AccountView) Executable() bool {
	return v.buf[v.off+layout.ExecutableOffset] != 0
}

// OriginalDataLen is the data length at the time the buffer was encoded.
func (v AccountView) OriginalDataLen() uint32 {
	return binary.LittleEndian.Uint32(v.buf[v.off+layout.OriginalDataLenOffset:])
}

// Key returns the account key, aliased into the buffer. Do not write through it.
func (v AccountView) Key() *programinput.Pubkey {
	o := v.off + layout.KeyOffset
	return (*programinput.Pubkey)(v.buf[o : o+layout.PubkeySize])
}

// Owner returns the owning program's key, aliased into the buffer. Do not write through it.
func (v AccountView) Owner() *programinput.Pubkey {
	o := v.off + layout.OwnerOffset
	return (*programinput.Pubkey)(v.buf[o : o+layout.PubkeySize])
}

func (v AccountView) Lamports() uint64 {
	return binary.LittleEndian.Uint64(v.buf[v.off+layout.LamportsOffset:])
}

func (v AccountView) SetLamports(lamports uint64) {
	binary.LittleEndian.PutUint64(v.buf[v.off+layout.LamportsOffset:], lamports)
}

func (v AccountView) DataLen() uint64 {
	return binary.LittleEndian.Uint64(v.buf[v.off+layout.DataLenOffset:])
}

// SetDataLen stores n without checking it. The caller keeps n <= MaxDataLen();
// anything larger runs the data slice into the next record.
func (v AccountView) SetDataLen(n uint64) {
	binary.LittleEndian.PutUint64(v.buf[v.off+layout.DataLenOffset:], n)
}

// MaxDataLen is the largest data length the record has room for.
func (v AccountView) MaxDataLen() uint64 {
	return uint64(v.OriginalDataLen()) + layout.MaxPermittedDataIncrease
}

// Resize is the checked form of SetDataLen. Bytes exposed by growing are zeroed.
func (v AccountView) Resize(n uint64) error {
	limit := v.MaxDataLen()
	if n > limit {
		return errors.DataLenOverflow(n, limit)
	}
	if old := v.DataLen(); n > old {
		o := v.off + layout.DataOffset
		clear(v.buf[o+int(old) : o+int(n)])
	}
	v.SetDataLen(n)
	return nil
}

// Data returns the account data, len == DataLen(). Writes land in the buffer.
// The slice's capacity ends at its length so append never spills into the
// growth reserve; use Resize to grow.
func (v AccountView) Data() []byte {
	o := v.off + layout.DataOffset
	end := o + int(v.DataLen())
	return v.buf[o:end:end]
}

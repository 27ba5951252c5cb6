package input

import (
	"encoding/binary"
	"fmt"

	"github.com/wippyai/program-input/errors"
	"github.com/wippyai/program-input/layout"
)

// CheckBounds walks buf the way the decoder does and reports the first
// length that runs past its end. The decoder itself trusts its input; hosts
// and tools handling buffers from elsewhere call this first. Counts above
// MaxAccountLimit are left for the count validator to reject.
func CheckBounds(buf []byte) error {
	off := layout.CountSize
	if len(buf) < off {
		return errors.OutOfBounds(errors.PhaseDecode, []string{"count"}, off, len(buf))
	}

	count := binary.LittleEndian.Uint64(buf)
	if count > layout.MaxAccountLimit {
		return nil
	}

	for i := range count {
		path := []string{"accounts", fmt.Sprint(i)}
		if off >= len(buf) {
			return errors.OutOfBounds(errors.PhaseDecode, path, off, len(buf))
		}

		if buf[off] != layout.NonDupMarker {
			off += layout.DuplicateRecordSize
			continue
		}

		if off+layout.DataOffset > len(buf) {
			return errors.OutOfBounds(errors.PhaseDecode, path, off+layout.DataOffset, len(buf))
		}
		dataLen := binary.LittleEndian.Uint64(buf[off+layout.DataLenOffset:])
		if dataLen > uint64(len(buf)) {
			return errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
				Path(path...).
				Value(dataLen).
				Detail("data length %d exceeds buffer length %d", dataLen, len(buf)).
				Build()
		}
		off += layout.FullRecordSize(off, dataLen)
	}

	if off+layout.LengthSize > len(buf) {
		return errors.OutOfBounds(errors.PhaseDecode, []string{"instruction_data"}, off+layout.LengthSize, len(buf))
	}
	n := binary.LittleEndian.Uint64(buf[off:])
	off += layout.LengthSize
	if n > uint64(len(buf)-off) {
		return errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
			Path("instruction_data").
			Value(n).
			Detail("length %d exceeds remaining %d bytes", n, len(buf)-off).
			Build()
	}
	off += int(n)

	if off+layout.PubkeySize > len(buf) {
		return errors.OutOfBounds(errors.PhaseDecode, []string{"program_id"}, off+layout.PubkeySize, len(buf))
	}
	return nil
}

package input

import (
	"encoding/binary"

	programinput "github.com/wippyai/program-input"
	"github.com/wippyai/program-input/layout"
)

// ReadInstructionData reads the length-prefixed instruction data that
// follows the last account and advances offset past it. The returned slice
// borrows from buf.
func ReadInstructionData(buf []byte, offset *int) []byte {
	n := int(binary.LittleEndian.Uint64(buf[*offset:]))
	*offset += layout.LengthSize
	data := buf[*offset : *offset+n : *offset+n]
	*offset += n
	return data
}

// ReadProgramID borrows the 32-byte program id at offset and advances past it.
func ReadProgramID(buf []byte, offset *int) *programinput.Pubkey {
	o := *offset
	*offset += layout.PubkeySize
	return (*programinput.Pubkey)(buf[o : o+layout.PubkeySize])
}

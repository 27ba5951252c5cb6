package layout

import "math"

// Field offsets within a full account record.
const (
	DuplicateOffset       = 0
	IsSignerOffset        = DuplicateOffset + 1
	IsWritableOffset      = IsSignerOffset + 1
	ExecutableOffset      = IsWritableOffset + 1
	OriginalDataLenOffset = ExecutableOffset + 1
	KeyOffset             = OriginalDataLenOffset + 4
	OwnerOffset           = KeyOffset + PubkeySize
	LamportsOffset        = OwnerOffset + PubkeySize
	DataLenOffset         = LamportsOffset + 8
	DataOffset            = DataLenOffset + 8
)

// Encoder-defined constants.
const (
	// NonDupMarker in the first byte of a record means "full record".
	// Any other value is the index of an earlier account.
	NonDupMarker = math.MaxUint8

	// MaxPermittedDataIncrease is the reserve following each account's
	// data so it can grow in place during an invocation.
	MaxPermittedDataIncrease = 10 * 1024

	// Alignment is the BPF alignment of u128.
	Alignment = 8

	PubkeySize    = 32
	CountSize     = 8
	LengthSize    = 8
	RentEpochSize = 8

	// DuplicateRecordSize is the marker byte rounded up to Alignment.
	DuplicateRecordSize = (1 + Alignment - 1) &^ (Alignment - 1)

	// MaxAccountLimit bounds the account arena. Duplicate indices are a
	// single byte with NonDupMarker reserved, so no deployment may declare
	// more accounts than this.
	MaxAccountLimit = NonDupMarker
)

// AlignTo rounds offset up to the next multiple of align (a power of two).
func AlignTo(offset, align int) int {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

// FullRecordSize returns the wire size of a full record starting at start
// whose data_len is dataLen. Alignment is absolute within the buffer, so the
// size depends on where the record begins.
func FullRecordSize(start int, dataLen uint64) int {
	end := start + DataOffset + int(dataLen) + MaxPermittedDataIncrease
	end = AlignTo(end, Alignment)
	return end + RentEpochSize - start
}

// Package input decodes a program input buffer into zero-copy account views.
//
// Decoding is a single forward pass:
//
//	ReadNumAccounts      u64 count at offset 0
//	CountValidator       caller policy; rejection stops before any account byte
//	AccountStream        one ReadAccount per declared account
//	ReadInstructionData  u64 length + borrowed bytes
//	ReadProgramID        borrowed 32-byte key
//
// Decoder drives the whole sequence and fills a pre-sized account arena.
// The lower-level functions are exported for programs that want to stop
// early or walk accounts lazily.
//
// # Views
//
// An AccountView is a buffer plus the offset of a full record. Field reads
// and writes go straight to the buffer. Lamports, data length and the data
// bytes may be written; everything else is read-only by contract.
//
// # Duplicates
//
// A record whose first byte is not layout.NonDupMarker is a back-reference
// to an earlier account. The decoder reports the index as is; Input.Resolve
// follows it for consumers that need the view.
//
// # Preconditions
//
// Nothing here checks declared lengths against len(buf). The buffer producer
// guarantees them; a violation surfaces as a slice-bounds panic, and an
// account count that slipped past the validator overflows the arena the
// same way.
//
// Strides follow the current data_len, so a buffer whose data lengths were
// changed by a program cannot be decoded again from offset 0. Hosts read
// results back through the record offsets they encoded (see
// encoder.Offsets and NewAccountView).
package input

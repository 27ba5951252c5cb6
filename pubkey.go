package programinput

import (
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/wippyai/program-input/layout"
)

// PubkeySize is the width of an account key on the wire.
const PubkeySize = layout.PubkeySize

// Pubkey is a 32-byte account or program key.
type Pubkey [PubkeySize]byte

// ParsePubkey decodes a base58 key.
func ParsePubkey(s string) (Pubkey, error) {
	var pk Pubkey
	b, err := base58.Decode(s)
	if err != nil {
		return pk, fmt.Errorf("parse pubkey: %w", err)
	}
	if len(b) != PubkeySize {
		return pk, fmt.Errorf("parse pubkey: decoded %d bytes, want %d", len(b), PubkeySize)
	}
	copy(pk[:], b)
	return pk, nil
}

// MustParsePubkey is ParsePubkey for constants; it panics on error.
func MustParsePubkey(s string) Pubkey {
	pk, err := ParsePubkey(s)
	if err != nil {
		panic(err)
	}
	return pk
}

// String returns the base58 form.
func (pk Pubkey) String() string {
	return base58.Encode(pk[:])
}

// IsZero reports whether every byte is zero.
func (pk Pubkey) IsZero() bool {
	return pk == Pubkey{}
}

func (pk Pubkey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

func (pk *Pubkey) UnmarshalText(text []byte) error {
	parsed, err := ParsePubkey(string(text))
	if err != nil {
		return err
	}
	*pk = parsed
	return nil
}

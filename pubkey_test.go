package programinput

import (
	"strings"
	"testing"
)

func TestPubkey_RoundTrip(t *testing.T) {
	var pk Pubkey
	for i := range pk {
		pk[i] = byte(i + 1)
	}

	s := pk.String()
	parsed, err := ParsePubkey(s)
	if err != nil {
		t.Fatalf("ParsePubkey(%q) failed: %v", s, err)
	}
	if parsed != pk {
		t.Errorf("parsed %x, want %x", parsed, pk)
	}
}

func TestPubkey_Zero(t *testing.T) {
	var pk Pubkey
	if !pk.IsZero() {
		t.Error("zero key should report IsZero")
	}
	// 32 zero bytes encode as 32 leading '1' characters in base58
	if got := pk.String(); got != strings.Repeat("1", 32) {
		t.Errorf("String() = %q", got)
	}
	pk[31] = 1
	if pk.IsZero() {
		t.Error("non-zero key reported IsZero")
	}
}

func TestParsePubkey_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"invalid alphabet", "0OIl"},
		{"too short", "11111111"},
		{"empty", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParsePubkey(tc.in); err == nil {
				t.Errorf("ParsePubkey(%q) should fail", tc.in)
			}
		})
	}
}

func TestPubkey_Text(t *testing.T) {
	var pk Pubkey
	pk[0] = 0xAB
	text, err := pk.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}

	var out Pubkey
	if err := out.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if out != pk {
		t.Errorf("got %x, want %x", out, pk)
	}
}

func TestMustParsePubkey_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParsePubkey should panic on bad input")
		}
	}()
	MustParsePubkey("not-base58-0")
}

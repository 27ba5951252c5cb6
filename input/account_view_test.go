package input

import (
	"bytes"
	"encoding/binary"
	stderrors "errors"
	"testing"

	programinput "github.com/wippyai/program-input"
	"github.com/wippyai/program-input/errors"
	"github.com/wippyai/program-input/layout"
)

// rawRecord lays out a full record by hand at the start of a buffer that
// begins at absolute offset 8, mirroring the count prefix.
func rawRecord(key, owner byte, lamports uint64, data []byte) []byte {
	size := layout.FullRecordSize(8, uint64(len(data)))
	buf := make([]byte, 8+size)
	rec := buf[8:]
	rec[0] = layout.NonDupMarker
	rec[1] = 1
	rec[2] = 1
	rec[3] = 0
	binary.LittleEndian.PutUint32(rec[4:], uint32(len(data)))
	for i := 0; i < 32; i++ {
		rec[8+i] = key
		rec[40+i] = owner
	}
	binary.LittleEndian.PutUint64(rec[72:], lamports)
	binary.LittleEndian.PutUint64(rec[80:], uint64(len(data)))
	copy(rec[88:], data)
	return buf
}

func TestAccountView_Fields(t *testing.T) {
	buf := rawRecord(0x01, 0x02, 100, []byte{7, 8, 9})
	v := NewAccountView(buf, 8)

	if v.Offset() != 8 {
		t.Errorf("Offset = %d", v.Offset())
	}
	if v.Duplicate() != layout.NonDupMarker {
		t.Errorf("Duplicate = %d", v.Duplicate())
	}
	if !v.IsSigner() || !v.IsWritable() || v.Executable() {
		t.Errorf("flags = %v %v %v", v.IsSigner(), v.IsWritable(), v.Executable())
	}
	if v.OriginalDataLen() != 3 {
		t.Errorf("OriginalDataLen = %d", v.OriginalDataLen())
	}
	var wantKey, wantOwner programinput.Pubkey
	for i := range wantKey {
		wantKey[i] = 0x01
		wantOwner[i] = 0x02
	}
	if *v.Key() != wantKey {
		t.Errorf("Key = %x", v.Key())
	}
	if *v.Owner() != wantOwner {
		t.Errorf("Owner = %x", v.Owner())
	}
	if v.Lamports() != 100 {
		t.Errorf("Lamports = %d", v.Lamports())
	}
	if v.DataLen() != 3 {
		t.Errorf("DataLen = %d", v.DataLen())
	}
	if !bytes.Equal(v.Data(), []byte{7, 8, 9}) {
		t.Errorf("Data = %v", v.Data())
	}
	if v.MaxDataLen() != 3+layout.MaxPermittedDataIncrease {
		t.Errorf("MaxDataLen = %d", v.MaxDataLen())
	}
}

func TestAccountView_ZeroCopy(t *testing.T) {
	buf := rawRecord(0x01, 0x02, 0, []byte{1})
	v := NewAccountView(buf, 8)

	buf[8+layout.KeyOffset] = 0xEE
	if v.Key()[0] != 0xEE {
		t.Error("Key does not alias the buffer")
	}

	v.Data()[0] = 0x42
	if buf[8+layout.DataOffset] != 0x42 {
		t.Error("Data does not alias the buffer")
	}
}

func TestAccountView_Mutation(t *testing.T) {
	buf := rawRecord(0x01, 0x02, 100, []byte{1, 2, 3, 4})
	v := NewAccountView(buf, 8)

	v.SetLamports(12345)
	if v.Lamports() != 12345 {
		t.Errorf("Lamports = %d after SetLamports", v.Lamports())
	}
	if got := binary.LittleEndian.Uint64(buf[8+layout.LamportsOffset:]); got != 12345 {
		t.Errorf("buffer lamports = %d", got)
	}

	v.SetDataLen(2)
	if v.DataLen() != 2 || len(v.Data()) != 2 {
		t.Errorf("DataLen = %d, len(Data) = %d", v.DataLen(), len(v.Data()))
	}

	// a second view over the same bytes sees the write
	if NewAccountView(buf, 8).DataLen() != 2 {
		t.Error("write not visible through a fresh view")
	}
}

func TestAccountView_DataCapacity(t *testing.T) {
	buf := rawRecord(0x01, 0x02, 0, []byte{1, 2})
	v := NewAccountView(buf, 8)

	data := v.Data()
	if cap(data) != len(data) {
		t.Errorf("cap = %d, len = %d", cap(data), len(data))
	}
	_ = append(data, 0xFF)
	if buf[8+layout.DataOffset+2] != 0 {
		t.Error("append wrote into the growth reserve")
	}
}

func TestAccountView_Resize(t *testing.T) {
	t.Run("grow zeroes new bytes", func(t *testing.T) {
		buf := rawRecord(0x01, 0x02, 0, []byte{1, 2, 3})
		v := NewAccountView(buf, 8)

		// leave garbage in the reserve to prove Resize clears it
		buf[8+layout.DataOffset+3] = 0xAB
		buf[8+layout.DataOffset+4] = 0xCD

		if err := v.Resize(5); err != nil {
			t.Fatalf("Resize failed: %v", err)
		}
		if !bytes.Equal(v.Data(), []byte{1, 2, 3, 0, 0}) {
			t.Errorf("Data = %v", v.Data())
		}
	})

	t.Run("shrink keeps prefix", func(t *testing.T) {
		buf := rawRecord(0x01, 0x02, 0, []byte{1, 2, 3})
		v := NewAccountView(buf, 8)
		if err := v.Resize(1); err != nil {
			t.Fatalf("Resize failed: %v", err)
		}
		if !bytes.Equal(v.Data(), []byte{1}) {
			t.Errorf("Data = %v", v.Data())
		}
	})

	t.Run("up to the bound", func(t *testing.T) {
		buf := rawRecord(0x01, 0x02, 0, []byte{1, 2, 3})
		v := NewAccountView(buf, 8)
		if err := v.Resize(v.MaxDataLen()); err != nil {
			t.Fatalf("Resize to MaxDataLen failed: %v", err)
		}
		if v.DataLen() != 3+layout.MaxPermittedDataIncrease {
			t.Errorf("DataLen = %d", v.DataLen())
		}
	})

	t.Run("past the bound", func(t *testing.T) {
		buf := rawRecord(0x01, 0x02, 0, []byte{1, 2, 3})
		v := NewAccountView(buf, 8)
		err := v.Resize(v.MaxDataLen() + 1)
		if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseRuntime, Kind: errors.KindOverflow}) {
			t.Fatalf("unexpected error: %v", err)
		}
		if v.DataLen() != 3 {
			t.Errorf("DataLen changed to %d", v.DataLen())
		}
	})
}

package entrypoint

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	programinput "github.com/wippyai/program-input"
	"github.com/wippyai/program-input/encoder"
	"github.com/wippyai/program-input/input"
)

func encode(t *testing.T, entries ...encoder.Entry) []byte {
	t.Helper()
	buf, err := encoder.Encode(encoder.Params{
		Entries:         entries,
		InstructionData: []byte{0x01, 0x02},
		ProgramID:       programinput.Pubkey{0x99},
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	return buf
}

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	prev := Logger()
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(prev) })
	return logs
}

func TestNew_Success(t *testing.T) {
	var called bool
	ep, err := New(func(accounts []input.ReadAccount, data []byte, programID *programinput.Pubkey) uint64 {
		called = true
		if len(accounts) != 2 {
			t.Errorf("accounts = %d, want 2", len(accounts))
		}
		if !accounts[1].IsDuplicate() {
			t.Error("account 1 should be a duplicate")
		}
		if len(data) != 2 || data[0] != 0x01 {
			t.Errorf("instruction data = %v", data)
		}
		if programID[0] != 0x99 {
			t.Errorf("program id = %x", programID)
		}
		return Success
	}, nil, 4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	code := ep(encode(t, encoder.Full(encoder.Account{Lamports: 1}), encoder.Duplicate(0)))
	if code != Success {
		t.Errorf("code = %d, want %d", code, Success)
	}
	if !called {
		t.Error("processor not called")
	}
}

func TestNew_ProcessorCode(t *testing.T) {
	ep, err := New(func([]input.ReadAccount, []byte, *programinput.Pubkey) uint64 {
		return 42
	}, nil, 1)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if code := ep(encode(t)); code != 42 {
		t.Errorf("code = %d, want 42", code)
	}
}

func TestNew_RejectedCount(t *testing.T) {
	logs := observe(t)

	ep, err := New(func([]input.ReadAccount, []byte, *programinput.Pubkey) uint64 {
		t.Error("processor called for rejected input")
		return Success
	}, func(n uint64) bool { return n == 0 }, 4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if code := ep(encode(t, encoder.Full(encoder.Account{}))); code != ErrorCode {
		t.Errorf("code = %d, want %d", code, ErrorCode)
	}
	if logs.FilterMessage("input rejected").Len() != 1 {
		t.Errorf("expected one rejection log, got %v", logs.All())
	}
}

func TestNew_LimitOverridesPermissiveValidator(t *testing.T) {
	ep, err := New(func([]input.ReadAccount, []byte, *programinput.Pubkey) uint64 {
		return Success
	}, func(uint64) bool { return true }, 1)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	buf := encode(t, encoder.Full(encoder.Account{}), encoder.Full(encoder.Account{}))
	if code := ep(buf); code != ErrorCode {
		t.Errorf("code = %d, want %d", code, ErrorCode)
	}
}

func TestNew_InvalidLimit(t *testing.T) {
	if _, err := New(nil, nil, 256); err == nil {
		t.Error("New accepted limit 256")
	}
	if _, err := NewNoDup(nil, nil, -1); err == nil {
		t.Error("NewNoDup accepted limit -1")
	}
}

func TestNewNoDup(t *testing.T) {
	process := func(accounts []input.AccountView, _ []byte, _ *programinput.Pubkey) uint64 {
		for _, a := range accounts {
			a.SetLamports(a.Lamports() + 1)
		}
		return Success
	}

	t.Run("full records", func(t *testing.T) {
		ep, err := NewNoDup(process, nil, 4)
		if err != nil {
			t.Fatalf("NewNoDup failed: %v", err)
		}
		buf := encode(t, encoder.Full(encoder.Account{Lamports: 10}))
		if code := ep(buf); code != Success {
			t.Fatalf("code = %d", code)
		}
		if v := input.NewAccountView(buf, 8); v.Lamports() != 11 {
			t.Errorf("Lamports = %d, want 11", v.Lamports())
		}
	})

	t.Run("duplicate", func(t *testing.T) {
		logs := observe(t)
		ep, err := NewNoDup(process, nil, 4)
		if err != nil {
			t.Fatalf("NewNoDup failed: %v", err)
		}
		buf := encode(t, encoder.Full(encoder.Account{Lamports: 10}), encoder.Duplicate(0))
		if code := ep(buf); code != ErrorCode {
			t.Errorf("code = %d, want %d", code, ErrorCode)
		}
		if v := input.NewAccountView(buf, 8); v.Lamports() != 10 {
			t.Errorf("processor ran: Lamports = %d", v.Lamports())
		}
		if logs.Len() != 1 {
			t.Errorf("logs = %v", logs.All())
		}
	})
}

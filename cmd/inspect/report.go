package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	programinput "github.com/wippyai/program-input"
	"github.com/wippyai/program-input/engine"
	"github.com/wippyai/program-input/input"
	"github.com/wippyai/program-input/layout"
)

const previewBytes = 16

// accountRow is one account as printed, with duplicates resolved.
type accountRow struct {
	key        string
	owner      string
	preview    string
	invalid    string
	data       []byte
	lamports   uint64
	dataLen    uint64
	index      int
	dup        int // -1 for a full record
	signer     bool
	writable   bool
	executable bool
}

func (r accountRow) flags() string {
	b := []byte("---")
	if r.signer {
		b[0] = 's'
	}
	if r.writable {
		b[1] = 'w'
	}
	if r.executable {
		b[2] = 'x'
	}
	return string(b)
}

func (r accountRow) label() string {
	if r.dup >= 0 {
		return fmt.Sprintf("%d -> %d", r.index, r.dup)
	}
	return fmt.Sprint(r.index)
}

func rowFromView(index, dup int, v input.AccountView) accountRow {
	data := v.Data()
	return accountRow{
		index:      index,
		dup:        dup,
		key:        v.Key().String(),
		owner:      v.Owner().String(),
		signer:     v.IsSigner(),
		writable:   v.IsWritable(),
		executable: v.Executable(),
		lamports:   v.Lamports(),
		dataLen:    v.DataLen(),
		data:       data,
		preview:    hexPreview(data),
	}
}

// inputRows resolves every entry of in, duplicates included.
func inputRows(in *input.Input) []accountRow {
	rows := make([]accountRow, 0, len(in.Accounts))
	for i, acc := range in.Accounts {
		dup := -1
		if idx, ok := acc.DuplicateIndex(); ok {
			dup = int(idx)
		}
		view, ok := in.Resolve(i)
		if !ok {
			rows = append(rows, accountRow{index: i, dup: dup, key: "?", owner: "?"})
			continue
		}
		rows = append(rows, rowFromView(i, dup, view))
	}
	return rows
}

func viewRows(views []input.AccountView) []accountRow {
	rows := make([]accountRow, len(views))
	for i, v := range views {
		rows[i] = rowFromView(i, -1, v)
	}
	return rows
}

// resultRows reads the accounts back from a program's output, keeping the
// duplicate structure and the positions of before.
func resultRows(res *engine.Result, before []accountRow) []accountRow {
	return outputRows(res.NumAccounts(), res.Account, len(res.Output), before)
}

func outputRows(n int, account func(int) (input.AccountView, bool), size int, before []accountRow) []accountRow {
	rows := make([]accountRow, n)
	for i := range n {
		dup := -1
		if i < len(before) {
			dup = before[i].dup
		}
		view, ok := account(i)
		if !ok {
			rows[i] = accountRow{index: i, dup: dup, key: "?", owner: "?", invalid: "unreadable"}
			continue
		}
		rows[i] = outputRow(i, dup, view, size)
	}
	return rows
}

// outputRow is rowFromView for a buffer a program wrote: data_len is not
// trusted to stay within the record's reserve or the buffer.
func outputRow(index, dup int, v input.AccountView, size int) accountRow {
	n := v.DataLen()
	limit := v.MaxDataLen()
	if avail := max(size-v.Offset()-layout.DataOffset, 0); uint64(avail) < limit {
		limit = uint64(avail)
	}
	if n <= limit {
		return rowFromView(index, dup, v)
	}
	return accountRow{
		index:      index,
		dup:        dup,
		key:        v.Key().String(),
		owner:      v.Owner().String(),
		signer:     v.IsSigner(),
		writable:   v.IsWritable(),
		executable: v.Executable(),
		lamports:   v.Lamports(),
		dataLen:    n,
		invalid:    fmt.Sprintf("data_len %d exceeds %d", n, limit),
		preview:    fmt.Sprintf("(data_len %d exceeds %d)", n, limit),
	}
}

func hexPreview(data []byte) string {
	if len(data) <= previewBytes {
		return hex.EncodeToString(data)
	}
	return hex.EncodeToString(data[:previewBytes]) + "..."
}

func printAccounts(w io.Writer, rows []accountRow) {
	fmt.Fprintf(w, "Accounts: %d\n", len(rows))
	for _, r := range rows {
		fmt.Fprintf(w, "  [%s] %s\n", r.label(), r.key)
		fmt.Fprintf(w, "      owner:    %s\n", r.owner)
		fmt.Fprintf(w, "      flags:    %s\n", r.flags())
		fmt.Fprintf(w, "      lamports: %d\n", r.lamports)
		fmt.Fprintf(w, "      data:     %d bytes %s\n", r.dataLen, r.preview)
	}
}

func printTrailer(w io.Writer, data []byte, programID *programinput.Pubkey) {
	fmt.Fprintf(w, "Instruction data: %d bytes %s\n", len(data), hexPreview(data))
	fmt.Fprintf(w, "Program id: %s\n", programID)
}

// diffRows describes every lamport and data change between two snapshots.
// Duplicates are skipped; their full record reports the change.
func diffRows(before, after []accountRow) []string {
	var out []string
	for i := range min(len(before), len(after)) {
		b, a := before[i], after[i]
		if b.dup >= 0 {
			continue
		}
		if a.invalid != "" {
			out = append(out, fmt.Sprintf("[%d] %s", i, a.invalid))
			continue
		}
		var parts []string
		if b.lamports != a.lamports {
			parts = append(parts, fmt.Sprintf("lamports %d -> %d (%+d)",
				b.lamports, a.lamports, int64(a.lamports-b.lamports)))
		}
		if b.dataLen != a.dataLen {
			parts = append(parts, fmt.Sprintf("data_len %d -> %d", b.dataLen, a.dataLen))
		} else if string(b.data) != string(a.data) {
			parts = append(parts, "data modified")
		}
		if len(parts) > 0 {
			out = append(out, fmt.Sprintf("[%d] %s", i, strings.Join(parts, ", ")))
		}
	}
	return out
}

package layout

import "testing"

func TestOffsets(t *testing.T) {
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"duplicate", DuplicateOffset, 0},
		{"is_signer", IsSignerOffset, 1},
		{"is_writable", IsWritableOffset, 2},
		{"executable", ExecutableOffset, 3},
		{"original_data_len", OriginalDataLenOffset, 4},
		{"key", KeyOffset, 8},
		{"owner", OwnerOffset, 40},
		{"lamports", LamportsOffset, 72},
		{"data_len", DataLenOffset, 80},
		{"data", DataOffset, 88},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("offset: got %d, want %d", tc.got, tc.want)
			}
		})
	}
}

func TestConstants(t *testing.T) {
	if NonDupMarker != 255 {
		t.Errorf("NonDupMarker = %d, want 255", NonDupMarker)
	}
	if DuplicateRecordSize != 8 {
		t.Errorf("DuplicateRecordSize = %d, want 8", DuplicateRecordSize)
	}
	if MaxPermittedDataIncrease != 10240 {
		t.Errorf("MaxPermittedDataIncrease = %d, want 10240", MaxPermittedDataIncrease)
	}
}

func TestAlignTo(t *testing.T) {
	tests := []struct {
		offset, align, want int
	}{
		{0, 8, 0},
		{1, 8, 8},
		{7, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{13, 4, 16},
		{5, 0, 5},
		{5, 1, 5},
	}

	for _, tc := range tests {
		if got := AlignTo(tc.offset, tc.align); got != tc.want {
			t.Errorf("AlignTo(%d, %d) = %d, want %d", tc.offset, tc.align, got, tc.want)
		}
	}
}

func TestFullRecordSize(t *testing.T) {
	tests := []struct {
		name    string
		start   int
		dataLen uint64
		want    int
	}{
		// 8 + 88 + 0 + 10240 = 10336, already aligned, + 8
		{"empty data at 8", 8, 0, 88 + 10240 + 8},
		// 8 + 88 + 3 + 10240 = 10339 -> 10344, + 8 - 8
		{"three bytes at 8", 8, 3, 88 + 3 + 10240 + 5 + 8},
		{"eight bytes at 8", 8, 8, 88 + 8 + 10240 + 8},
		// 16 + 88 + 1 + 10240 = 10345 -> 10352
		{"one byte at 16", 16, 1, 88 + 1 + 10240 + 7 + 8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FullRecordSize(tc.start, tc.dataLen)
			if got != tc.want {
				t.Errorf("FullRecordSize(%d, %d) = %d, want %d", tc.start, tc.dataLen, got, tc.want)
			}
			if (tc.start+got)%Alignment != 0 {
				t.Errorf("record end %d not aligned", tc.start+got)
			}
		})
	}
}

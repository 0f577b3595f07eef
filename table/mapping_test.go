package table

import "testing"

func TestDetectSurrenderColumns(t *testing.T) {
	tbl := &RawTable{
		Page: 2,
		Rows: [][]string{
			{
				"保单年度 Policy Year", "年龄 Age", "累积保费 Total Premiums Paid",
				"保证现金价值 (A)", "复归红利 (B)", "终期红利 (C)", "特别红利 #",
				"退保总额 (E)",
			},
			{"1", "41", "1,000", "800", "10", "0", "0", "810"},
		},
	}
	m := DetectSurrenderColumns(tbl, 1)

	want := map[Field]int{
		FieldYear:                0,
		FieldAge:                 1,
		FieldCumulativePremium:   2,
		FieldGuaranteedCashValue: 3,
		FieldReversionaryBonus:   4,
		FieldTerminalDividend:    5,
		FieldSpecialDividend:     6,
		FieldTotalSurrender:      7,
	}
	for f, wantIdx := range want {
		idx, ok := m.Index(f)
		if !ok {
			t.Errorf("field %s not detected", f)
			continue
		}
		if idx != wantIdx {
			t.Errorf("field %s = column %d, want %d", f, idx, wantIdx)
		}
	}
}

func TestDetectSurrenderColumnsShuffled(t *testing.T) {
	// Detection follows labels, not positions.
	tbl := &RawTable{
		Page: 2,
		Rows: [][]string{
			{"Policy Year", "Age", "退保总额 (E)", "保证现金价值 (A)", "累积保费", "终期红利 (C)"},
			{"1", "41", "810", "800", "1,000", "0"},
		},
	}
	m := DetectSurrenderColumns(tbl, 1)

	tests := []struct {
		field Field
		want  int
	}{
		{FieldTotalSurrender, 2},
		{FieldGuaranteedCashValue, 3},
		{FieldCumulativePremium, 4},
		{FieldTerminalDividend, 5},
	}
	for _, tt := range tests {
		if idx, ok := m.Index(tt.field); !ok || idx != tt.want {
			t.Errorf("field %s = (%d, %v), want %d", tt.field, idx, ok, tt.want)
		}
	}
}

func TestDetectColumnsFirstMatchWins(t *testing.T) {
	// A later column matching an already-mapped field is ignored rather
	// than reassigned.
	tbl := &RawTable{
		Page: 2,
		Rows: [][]string{
			{"年度", "年龄", "保费", "保证现金价值 (A)", "保证现金价值 (A)", "f", "g", "h"},
			{"1", "41", "1,000", "800", "800", "", "", ""},
		},
	}
	m := DetectSurrenderColumns(tbl, 1)

	if idx, ok := m.Index(FieldGuaranteedCashValue); !ok || idx != 3 {
		t.Errorf("guaranteed cash value = (%d, %v), want column 3", idx, ok)
	}
	if idx, ok := m.Index(FieldReversionaryBonus); ok {
		t.Errorf("reversionary bonus detected at column %d, want unmapped", idx)
	}
}

func TestDetectWithdrawalColumns(t *testing.T) {
	tbl := &RawTable{
		Page: 4,
		Rows: [][]string{
			{
				"保单年度", "年龄", "基准金额", "每年可提取金额 (2)", "提取年期 (1)",
				"保证现金价值 (A)", "复归红利 (B)", "终期红利 (C)", "特别红利 #",
				"退保总额",
			},
			{"1", "41", "-", "0", "-", "800", "10", "0", "0", "810"},
		},
	}
	m := DetectWithdrawalColumns(tbl, 1)

	tests := []struct {
		field Field
		want  int
	}{
		{FieldYear, 0},
		{FieldAge, 1},
		{FieldWithdrawalAmount, 3},
		{FieldRemainingGuaranteed, 5},
		{FieldRemainingBonus, 6},
		{FieldRemainingTerminal, 7},
		{FieldRemainingSpecial, 8},
		{FieldRemainingTotal, 9},
	}
	for _, tt := range tests {
		if idx, ok := m.Index(tt.field); !ok || idx != tt.want {
			t.Errorf("field %s = (%d, %v), want %d", tt.field, idx, ok, tt.want)
		}
	}
}

func TestMappingIndexOr(t *testing.T) {
	var m Mapping
	if !m.Empty() {
		t.Error("zero mapping should be empty")
	}
	if got := m.IndexOr(FieldCumulativePremium, 2); got != 2 {
		t.Errorf("IndexOr on empty mapping = %d, want default 2", got)
	}

	tbl := &RawTable{
		Page: 2,
		Rows: [][]string{
			{"年度", "年龄", "累积保费", "d", "e", "f"},
			{"1", "41", "1,000", "", "", ""},
		},
	}
	m = DetectSurrenderColumns(tbl, 1)
	if m.Empty() {
		t.Fatal("detected mapping should not be empty")
	}
	// Detected assignment wins over the positional default.
	if got := m.IndexOr(FieldCumulativePremium, 5); got != 2 {
		t.Errorf("IndexOr(detected) = %d, want 2", got)
	}
	// Undetected field falls back to the default.
	if got := m.IndexOr(FieldTotalSurrender, -1); got != -1 {
		t.Errorf("IndexOr(undetected) = %d, want -1", got)
	}
}

func TestMappingFullWidthLabels(t *testing.T) {
	tbl := &RawTable{
		Page: 2,
		Rows: [][]string{
			{"年度", "年龄", "保费", "金额（Ａ）", "金额（Ｂ）", "f", "g", "h"},
			{"1", "41", "1,000", "800", "10", "", "", ""},
		},
	}
	m := DetectSurrenderColumns(tbl, 1)
	if idx, ok := m.Index(FieldGuaranteedCashValue); !ok || idx != 3 {
		t.Errorf("guaranteed cash value = (%d, %v), want column 3", idx, ok)
	}
	if idx, ok := m.Index(FieldReversionaryBonus); !ok || idx != 4 {
		t.Errorf("reversionary bonus = (%d, %v), want column 4", idx, ok)
	}
}

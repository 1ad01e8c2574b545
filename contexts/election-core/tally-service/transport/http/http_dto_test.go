package http

import (
	"encoding/json"
	"testing"
)

func TestPercentageMarshalsTwoDecimals(t *testing.T) {
	cases := []struct {
		count int64
		total int64
		want  string
	}{
		{100, 150, `"66.67"`},
		{50, 150, `"33.33"`},
		{1, 300, `"0.33"`},
		{150, 150, `"100.00"`},
		{0, 150, `"0.00"`},
	}
	for _, tc := range cases {
		raw, err := json.Marshal(Percentage{Count: tc.count, Total: tc.total})
		if err != nil {
			t.Fatalf("marshal %d/%d failed: %v", tc.count, tc.total, err)
		}
		if string(raw) != tc.want {
			t.Fatalf("percentage %d/%d: got %s, want %s", tc.count, tc.total, raw, tc.want)
		}
	}
}

func TestPercentageZeroTotalIsNumberZero(t *testing.T) {
	raw, err := json.Marshal(Percentage{Count: 0, Total: 0})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(raw) != "0" {
		t.Fatalf("zero total must serialize as the number 0, got %s", raw)
	}
}

func TestTallyRowItemEmbedsPercentage(t *testing.T) {
	raw, err := json.Marshal(TallyRowItem{
		OptionID:   11,
		Label:      "Lista 15",
		Color:      "rojo",
		Count:      100,
		Percentage: Percentage{Count: 100, Total: 150},
	})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if decoded["percentage"] != "66.67" {
		t.Fatalf("expected percentage string, got %v", decoded["percentage"])
	}
}

func TestPercentageRoundsRowsIndependently(t *testing.T) {
	// 1/3 splits that do not sum to exactly 100.00 are fine; each row is
	// formatted on its own.
	total := int64(3)
	shares := []int64{1, 1, 1}
	for _, share := range shares {
		raw, err := json.Marshal(Percentage{Count: share, Total: total})
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if string(raw) != `"33.33"` {
			t.Fatalf("expected independent rounding to 33.33, got %s", raw)
		}
	}
}

package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"1", "1"},
		{"1.23", "1.23"},
		{"1,23", "1.23"},
		{" 2.50 ", "2.5"},
		{"-5", "-5"},
		{"", "0"},
		{"   ", "0"},
		{"abc", "0"},
		{"1.2.3", "0"},
	}
	for _, tc := range cases {
		got := ParseAmount(tc.in)
		if got.String() != tc.out {
			t.Fatalf("ParseAmount(%q) = %s, want %s", tc.in, got, tc.out)
		}
	}
}

func TestSumAmounts(t *testing.T) {
	rows := []Row{
		{ID: "a", Name: "Rent", Amount: "500"},
		{ID: "b", Name: "Food", Amount: "120.50"},
		{ID: "c", Name: "Empty", Amount: ""},
		{ID: "d", Name: "Garbage", Amount: "n/a"},
	}
	if got := SumAmounts(rows); got.String() != "620.5" {
		t.Fatalf("SumAmounts = %s, want 620.5", got)
	}
	if got := SumAmounts(nil); !got.IsZero() {
		t.Fatalf("SumAmounts(nil) = %s, want 0", got)
	}
}

package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"1.0", "1", true},
		{"1.23", "1.23", true},
		{"1,23", "", false},
		{"1,000", "", false},
		{"10,000", "", false},
		{"1,00,000", "", false},
		{"1,000.50", "", false},
		{"1000", "1000", true},
		{"0.01", "0.01", true},
		{"1.005", "1.005", true}, // full precision kept
		{" 2.50 ", "2.5", true},
		{"-1", "", false},
		{"+1", "", false},
		{"0", "", false},
		{"1e3", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || !got.Equal(dec(tc.out)) {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestParseRate(t *testing.T) {
	got, err := ParseRate("")
	if err != nil || !got.IsZero() {
		t.Fatalf("empty rate should be zero, got %s (err=%v)", got, err)
	}
	got, err = ParseRate("12.5")
	if err != nil || !got.Equal(dec("12.5")) {
		t.Fatalf("expected 12.5, got %s (err=%v)", got, err)
	}
	if _, err := ParseRate("12,5"); err == nil {
		t.Fatalf("comma rate should fail")
	}
	if _, err := ParseRate("-3"); err == nil {
		t.Fatalf("negative rate should fail")
	}
}

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney("₹", dec("1100")); got != "₹1100.00" {
		t.Fatalf("unexpected format %q", got)
	}
	if got := FormatMoney("", dec("0.005")); got != "0.01" {
		t.Fatalf("unexpected format %q", got)
	}
}

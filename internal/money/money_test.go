package money

import "testing"

func TestFormat(t *testing.T) {
	cases := []struct {
		minor int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{123456, "1234.56"},
		{-2500, "-25.00"},
	}
	for _, tc := range cases {
		if got := Format(tc.minor); got != tc.want {
			t.Errorf("Format(%d) = %q, want %q", tc.minor, got, tc.want)
		}
	}
}

func TestParse(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cases := []struct {
			in   string
			want int64
		}{
			{"0", 0},
			{"1234.56", 123456},
			{"0.05", 5},
			{"100", 10000},
		}
		for _, tc := range cases {
			got, ok := Parse(tc.in)
			if !ok {
				t.Errorf("Parse(%q) failed", tc.in)
				continue
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %d, want %d", tc.in, got, tc.want)
			}
		}
	})

	t.Run("rejected", func(t *testing.T) {
		for _, in := range []string{"", "abc", "1.234"} {
			if _, ok := Parse(in); ok {
				t.Errorf("Parse(%q) should fail", in)
			}
		}
	})
}

package core

import "testing"

func TestExtractAmount(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		ok    bool
	}{
		{"gastei 25 no mercado", 2500, true},
		{"gastei 12,50 na farmácia", 1250, true},
		{"paguei 30.75 de uber", 3075, true},
		{"gastei 25 itens por 30 reais", 2500, true}, // first number wins
		{"100", 10000, true},
		{"oi, como vai?", 0, false},
		{"", 0, false},
		{"gastei zero reais", 0, false},
	}
	for _, tc := range cases {
		got, ok := ExtractAmount(tc.in)
		if ok != tc.ok {
			t.Fatalf("ExtractAmount(%q) ok=%v, want %v", tc.in, ok, tc.ok)
		}
		if ok && got.Cents != tc.cents {
			t.Fatalf("ExtractAmount(%q) = %d cents, want %d", tc.in, got.Cents, tc.cents)
		}
	}
}

func TestExtractAmountAlwaysPositive(t *testing.T) {
	for _, in := range []string{"gastei 0 no mercado", "0,00", "paguei 0.004"} {
		if m, ok := ExtractAmount(in); ok {
			t.Fatalf("ExtractAmount(%q) accepted non-positive amount %d", in, m.Cents)
		}
	}
}

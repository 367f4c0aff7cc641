package engine

import (
	"math"
	"testing"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   float64
		wantOK bool
	}{
		{"plain integer", "2", 2, true},
		{"plain float", "1.5", 1.5, true},
		{"count suffix", "2개", 2, true},
		{"mass suffix", "300g", 300, true},
		{"fraction", "1/2", 0.5, true},
		{"fraction with unit", "1/2컵", 0.5, true},
		{"fraction with spaces", "1 / 4", 0.25, true},
		{"to taste", "적당량", 0, false},
		{"empty", "", 0, false},
		{"whitespace only", "   ", 0, false},
		{"no digits", "약간", 0, false},
		{"leading text", "약 3", 3, true},
		// 分母為零時分數解析失敗，退回去除非數字字元的解析
		{"zero denominator", "1/0", 10, true},
		{"double dot unparsable", "1.2.3", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseQuantity(tt.amount)
			if ok != tt.wantOK {
				t.Fatalf("ParseQuantity(%q) ok = %v, want %v", tt.amount, ok, tt.wantOK)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseQuantity(%q) = %v, want %v", tt.amount, got, tt.want)
			}
		})
	}
}

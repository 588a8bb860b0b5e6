package units

import (
	"errors"
	"math"
	"testing"
)

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"3.5", 3.5},
		{"12", 12},
		{".5", 0.5},
		{"3.5 m", 3.5},
		{"3.5m", 3.5},
		{"2 km", 2000},
		{"10 ft", 3.0479999},
		{"6\"", 0.1524},
		{"5'", 1.524},
		{"12'6\"", 3.81},
		{"12' 6\"", 3.81},
		{"  7  ", 7},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLength(tt.in)
			if err != nil {
				t.Fatalf("ParseLength(%q) error: %v", tt.in, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseLength(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseLength_Malformed(t *testing.T) {
	for _, in := range []string{"", "tall", "m 3", "3 storeys", "-2", "1.2.3"} {
		got, err := ParseLength(in)
		if !errors.Is(err, ErrMalformedLength) {
			t.Errorf("ParseLength(%q) error = %v, want ErrMalformedLength", in, err)
		}
		if got != 0 {
			t.Errorf("ParseLength(%q) = %v, want 0 on failure", in, got)
		}
	}
}

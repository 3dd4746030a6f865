package domain

import (
	"errors"
	"testing"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"2", 2, false},
		{" 3 ", 3, false},
		{"2.0", 2, false},
		{"0", 0, false},
		{"1.5", 0, true},
		{"-1", 0, true},
		{"deux", 0, true},
		{"18446744073709551617", 0, true},
		{"9223372036854775808.0", 0, true},
		{"-18446744073709551617", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseQuantity(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseQuantity(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got.Value() != tt.want {
				t.Errorf("ParseQuantity(%q) = %d, want %d", tt.input, got.Value(), tt.want)
			}
		})
	}
}

func TestQuantity_Add(t *testing.T) {
	q := MustNewQuantity(2).Add(MustNewQuantity(3))
	if q.Value() != 5 {
		t.Errorf("Add = %d, want 5", q.Value())
	}
	if !MustNewQuantity(0).IsZero() {
		t.Error("zero quantity should be IsZero")
	}
}

func TestMustNewQuantity_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNewQuantity(-1) should panic")
		}
	}()
	MustNewQuantity(-1)
}

func TestParseQuantity_OutOfRange(t *testing.T) {
	for _, input := range []string{"18446744073709551617", "1e30", "2.5"} {
		if _, err := ParseQuantity(input); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("ParseQuantity(%q) error = %v, want ErrInvalidQuantity", input, err)
		}
	}
}

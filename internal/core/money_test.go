package core

import (
	"errors"
	"testing"
	"time"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"0", 0, true},
		{"1.0", 100, true},
		{"12.50", 1250, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half away from zero
		{"1.004", 100, true},
		{"-1", 0, false},
		{"-0.01", 0, false},
		{"abc", 0, false},
		{"12abc", 0, false},
		{"1.2.3", 0, false},
		{"1,50", 0, false},
		{"", 0, false},
		{"1e2", 10000, true},
		{"0e999999999", 0, true},
		{"1e-999999999", 0, true},
		{"0.0004", 0, true},
		{"0.005", 1, true},
		{"92233720368547758.07", 9223372036854775807, true},
		{"92233720368547758.08", 0, false},
		{"100000000000000000", 0, false},
		{"1e999999999", 0, false},
		{"-1e999999999", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got.Cents, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestParseAmount_HugeExponentReturnsPromptly(t *testing.T) {
	done := make(chan error, 1)
	go func() {
		_, err := ParseAmount("1e999999999")
		done <- err
	}()

	select {
	case err := <-done:
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ParseAmount did not return for a huge exponent")
	}
}

func TestMoneyString(t *testing.T) {
	cases := map[int64]string{
		0:      "0.00",
		5:      "0.05",
		1000:   "10.00",
		123456: "1234.56",
	}
	for cents, want := range cases {
		if got := (Money{Cents: cents}).String(); got != want {
			t.Fatalf("%d: expected %s, got %s", cents, want, got)
		}
	}
}

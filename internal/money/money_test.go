package money

import "testing"

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{54.999999, 55.00},
		{55.004, 55.00},
		{55.005, 55.01},
		{0, 0},
		{10.1, 10.1},
	}

	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestEqual2_ToleratesRepresentationError(t *testing.T) {
	if !Equal2(55.00, 54.999999) {
		t.Errorf("expected 55.00 and 54.999999 to be equal at 2 decimals")
	}
	if !Equal2(0.1+0.2, 0.3) {
		t.Errorf("expected 0.1+0.2 and 0.3 to be equal at 2 decimals")
	}
	if Equal2(55.00, 55.01) {
		t.Errorf("expected 55.00 and 55.01 to differ")
	}
}

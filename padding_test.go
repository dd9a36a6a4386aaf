package stun

import "testing"

func TestNearestPaddedValueLength(t *testing.T) {
	cases := map[int]int{
		0:  0,
		1:  4,
		2:  4,
		3:  4,
		4:  4,
		5:  8,
		7:  8,
		8:  8,
		9:  12,
		16: 16,
	}
	for in, want := range cases {
		if got := nearestPaddedValueLength(in); got != want {
			t.Errorf("nearestPaddedValueLength(%d) = %d, want %d", in, got, want)
		}
	}
}

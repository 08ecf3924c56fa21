package random

import "testing"

func TestNew_IsDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 50; i++ {
		if x, y := a.IntN(3), b.IntN(3); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestDefault_InRange(t *testing.T) {
	src := Default()
	for i := 0; i < 200; i++ {
		if v := src.IntN(3); v < 0 || v >= 3 {
			t.Fatalf("IntN(3)=%d out of range", v)
		}
	}
}

func TestFixed(t *testing.T) {
	cases := []struct {
		values []int
		n      int
		want   []int
	}{
		{[]int{0, 1, 2}, 3, []int{0, 1, 2, 0}},
		{[]int{5}, 3, []int{2, 2}},
		{[]int{-1}, 3, []int{2}},
		{nil, 10, []int{0}},
	}
	for _, c := range cases {
		s := Fixed(c.values...)
		for i, want := range c.want {
			if got := s.IntN(c.n); got != want {
				t.Fatalf("Fixed(%v) draw %d = %d, want %d", c.values, i, got, want)
			}
		}
		if s.Draws() != len(c.want) {
			t.Fatalf("Draws()=%d, want %d", s.Draws(), len(c.want))
		}
	}
}

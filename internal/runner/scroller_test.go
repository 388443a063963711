package runner

import "testing"

func TestScrollerStartsAtEntry(t *testing.T) {
	s := NewScroller(testConfig())
	if s.X() != 128 {
		t.Errorf("X() = %d, expected 128", s.X())
	}
}

func TestScrollerNext(t *testing.T) {
	s := NewScroller(testConfig())

	tests := []struct {
		name     string
		p        int
		expected int
	}{
		{"right edge", 128, 126},
		{"mid screen", 40, 38},
		{"zero", 0, -2},
		{"one step before exit", -6, -8},
		{"just past exit", -7, -9},
		{"at exit wraps", -8, 128},
		{"below exit wraps", -9, 128},
		{"far below exit wraps", -500, 128},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.Next(tc.p); got != tc.expected {
				t.Errorf("Next(%d) = %d, expected %d", tc.p, got, tc.expected)
			}
		})
	}
}

func TestScrollerAdvanceWrapsAtExit(t *testing.T) {
	s := NewScroller(testConfig())

	// 128 -> -8 takes 68 advances
	for i := 0; i < 68; i++ {
		if s.Advance() {
			t.Fatalf("Advance() #%d wrapped early at x=%d", i, s.X())
		}
	}
	if s.X() != -8 {
		t.Fatalf("X() = %d after 68 advances, expected -8", s.X())
	}

	if !s.Advance() {
		t.Error("Advance() at -8 should report a wrap")
	}
	if s.X() != 128 {
		t.Errorf("X() = %d after wrap, expected 128", s.X())
	}
}

func TestScrollerDriftNeverWraps(t *testing.T) {
	s := NewScroller(testConfig())
	s.x = -6

	s.Drift()
	if s.X() != -8 {
		t.Fatalf("Drift() from -6 = %d, expected -8", s.X())
	}

	for i := 0; i < 30; i++ {
		s.Drift()
	}
	if s.X() != -8 {
		t.Errorf("Drift() at exit moved the obstacle to %d", s.X())
	}
}

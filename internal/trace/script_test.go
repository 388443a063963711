package trace

import (
	"errors"
	"testing"
)

func TestParseScript(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		segments []Segment
		repeat   bool
	}{
		{"single hold", "hold 10", []Segment{{true, 10}}, false},
		{"hold then release", "hold 3 release 1", []Segment{{true, 3}, {false, 1}}, false},
		{"repeat", "release 1 hold 5 repeat", []Segment{{false, 1}, {true, 5}}, true},
		{"merges runs", "hold 2 hold 3 release 1", []Segment{{true, 5}, {false, 1}}, false},
		{"case and comments", "HOLD 4 # warm up\nRelease 2", []Segment{{true, 4}, {false, 2}}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := ParseScript(tc.src)
			if err != nil {
				t.Fatalf("ParseScript(%q) returned error: %v", tc.src, err)
			}
			if s.Repeat != tc.repeat {
				t.Errorf("Repeat = %v, expected %v", s.Repeat, tc.repeat)
			}
			if len(s.Segments) != len(tc.segments) {
				t.Fatalf("Segments = %+v, expected %+v", s.Segments, tc.segments)
			}
			for i := range tc.segments {
				if s.Segments[i] != tc.segments[i] {
					t.Errorf("Segments[%d] = %+v, expected %+v", i, s.Segments[i], tc.segments[i])
				}
			}
		})
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := []string{
		"",
		"# only a comment",
		"jump 3",
		"hold",
		"hold x",
		"hold 0",
		"release -1",
		"hold 2 repeat hold 1",
		`hold "3`,
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			_, err := ParseScript(src)
			if !errors.Is(err, ErrScript) {
				t.Errorf("ParseScript(%q) error = %v, expected ErrScript", src, err)
			}
		})
	}
}

func TestScriptInputReplays(t *testing.T) {
	s, err := ParseScript("hold 2 release 1")
	if err != nil {
		t.Fatalf("ParseScript() returned error: %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", s.Len())
	}

	in := s.Input()
	expected := []bool{true, true, false, true, true}
	for i, want := range expected {
		if got := in.Sample(); got != want {
			t.Errorf("sample %d = %v, expected %v", i, got, want)
		}
		if i == 2 && !in.Done() {
			t.Error("Done() should be true after the last segment")
		}
	}
	if in.Samples() != len(expected) {
		t.Errorf("Samples() = %d, expected %d", in.Samples(), len(expected))
	}
}

func TestScriptInputRepeats(t *testing.T) {
	s, err := ParseScript("release 1 hold 1 repeat")
	if err != nil {
		t.Fatalf("ParseScript() returned error: %v", err)
	}

	in := s.Input()
	for i := 0; i < 10; i++ {
		if got, want := in.Sample(), i%2 == 1; got != want {
			t.Errorf("sample %d = %v, expected %v", i, got, want)
		}
	}
	if in.Done() {
		t.Error("repeating script should never be done")
	}
}

func TestScriptString(t *testing.T) {
	s, err := ParseScript("  hold   3\trelease 1 ")
	if err != nil {
		t.Fatalf("ParseScript() returned error: %v", err)
	}
	if s.String() != "hold 3 release 1" {
		t.Errorf("String() = %q, expected %q", s.String(), "hold 3 release 1")
	}
}

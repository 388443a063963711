// Package trace drives the runner headless from an input script and records
// every present into the trace store.
package trace

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/shlex"
)

// ErrScript is wrapped by every script parse failure.
var ErrScript = errors.New("invalid input script")

// Segment holds the control in one state for a number of samples.
type Segment struct {
	Held    bool
	Samples int
}

// Script is a parsed input script such as "hold 10 release 1 repeat".
//
// Grammar (whitespace separated, '#' starts a comment):
//
//	hold N     control asserted for N samples
//	release N  control released for N samples (each one is a full jump)
//	repeat     loop back to the first segment; must be last
type Script struct {
	Segments []Segment
	Repeat   bool
	source   string
}

// ParseScript parses an input script.
func ParseScript(src string) (*Script, error) {
	words, err := shlex.Split(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScript, err)
	}

	s := &Script{source: strings.Join(words, " ")}
	for i := 0; i < len(words); i++ {
		word := strings.ToLower(words[i])
		if s.Repeat {
			return nil, fmt.Errorf("%w: %q after repeat", ErrScript, words[i])
		}

		switch word {
		case "repeat":
			s.Repeat = true
			continue
		case "hold", "release":
		default:
			return nil, fmt.Errorf("%w: unknown word %q", ErrScript, words[i])
		}

		if i+1 >= len(words) {
			return nil, fmt.Errorf("%w: %s needs a count", ErrScript, word)
		}
		i++
		n, err := strconv.Atoi(words[i])
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: bad count %q for %s", ErrScript, words[i], word)
		}
		s.append(word == "hold", n)
	}

	if len(s.Segments) == 0 {
		return nil, fmt.Errorf("%w: no segments", ErrScript)
	}
	return s, nil
}

// append adds a segment, merging it into the previous one when the state matches.
func (s *Script) append(held bool, n int) {
	if last := len(s.Segments) - 1; last >= 0 && s.Segments[last].Held == held {
		s.Segments[last].Samples += n
		return
	}
	s.Segments = append(s.Segments, Segment{Held: held, Samples: n})
}

// Len returns the number of samples in one pass of the script.
func (s *Script) Len() int {
	n := 0
	for _, seg := range s.Segments {
		n += seg.Samples
	}
	return n
}

// String returns the normalised source.
func (s *Script) String() string {
	return s.source
}

// Input returns a fresh core.Input that replays the script from the start.
func (s *Script) Input() *ScriptInput {
	return &ScriptInput{script: s}
}

// ScriptInput replays a Script one sample at a time. Once a non-repeating
// script is exhausted the control stays held, so the runner idles.
type ScriptInput struct {
	script  *Script
	seg     int
	used    int
	samples int
}

// Sample implements core.Input.
func (in *ScriptInput) Sample() bool {
	in.samples++
	segs := in.script.Segments

	if in.seg >= len(segs) {
		if !in.script.Repeat {
			return true
		}
		in.seg = 0
	}

	seg := segs[in.seg]
	in.used++
	if in.used >= seg.Samples {
		in.seg++
		in.used = 0
	}
	return seg.Held
}

// Samples returns how many times Sample has been called.
func (in *ScriptInput) Samples() int {
	return in.samples
}

// Done reports whether a non-repeating script has been fully consumed.
func (in *ScriptInput) Done() bool {
	return !in.script.Repeat && in.seg >= len(in.script.Segments)
}

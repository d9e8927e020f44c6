package synthesis

import (
	"fmt"
	"strings"
)

// NormalizeError reports a candidate set that could not be repaired into the
// canonical three-tone shape.
type NormalizeError struct {
	Reason string
}

func (e *NormalizeError) Error() string {
	return fmt.Sprintf("unusable candidate set: %s", e.Reason)
}

// Normalize repairs a raw candidate set into exactly three candidates in
// canonical tone order. Stars are clamped to [1, 5], the rating ordering
// enthusiastic >= balanced >= critical is enforced by pulling lower tones
// down, and each candidate gets its sentiment band. Extra candidates of a
// tone are dropped; a missing tone or empty body is unrecoverable.
func Normalize(raw []Candidate) ([]Candidate, error) {
	byTone := make(map[Tone]Candidate, len(ToneOrder))
	for _, c := range raw {
		tone := Tone(strings.ToLower(strings.TrimSpace(string(c.Tone))))
		if _, taken := byTone[tone]; taken {
			continue
		}
		c.Tone = tone
		byTone[tone] = c
	}

	out := make([]Candidate, 0, len(ToneOrder))
	for _, tone := range ToneOrder {
		c, ok := byTone[tone]
		if !ok {
			return nil, &NormalizeError{Reason: fmt.Sprintf("missing %s candidate", tone)}
		}
		if strings.TrimSpace(c.Body) == "" {
			return nil, &NormalizeError{Reason: fmt.Sprintf("%s candidate has empty body", tone)}
		}
		c.Stars = clampStars(c.Stars)
		out = append(out, c)
	}

	// Ratings must not rise as tone turns negative.
	if out[1].Stars > out[0].Stars {
		out[1].Stars = out[0].Stars
	}
	if out[2].Stars > out[1].Stars {
		out[2].Stars = out[1].Stars
	}

	for i := range out {
		out[i].Band = BandForStars(out[i].Stars)
	}
	return out, nil
}

func clampStars(s int) int {
	if s < 1 {
		return 1
	}
	if s > 5 {
		return 5
	}
	return s
}

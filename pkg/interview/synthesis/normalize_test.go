package synthesis

import (
	"errors"
	"testing"
)

func cand(tone Tone, stars int) Candidate {
	return Candidate{Tone: tone, Title: "t", Body: "a real body", Stars: stars}
}

func TestNormalizeCanonicalOrder(t *testing.T) {
	raw := []Candidate{
		cand(ToneCritical, 2),
		cand(ToneEnthusiastic, 5),
		cand(ToneBalanced, 3),
	}
	got, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("want 3 candidates, got %d", len(got))
	}
	for i, tone := range ToneOrder {
		if got[i].Tone != tone {
			t.Errorf("index %d: want %s, got %s", i, tone, got[i].Tone)
		}
	}
}

func TestNormalizeEnforcesRatingOrdering(t *testing.T) {
	raw := []Candidate{
		cand(ToneEnthusiastic, 3),
		cand(ToneBalanced, 5),
		cand(ToneCritical, 4),
	}
	got, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[1].Stars > got[0].Stars {
		t.Errorf("balanced %d exceeds enthusiastic %d", got[1].Stars, got[0].Stars)
	}
	if got[2].Stars > got[1].Stars {
		t.Errorf("critical %d exceeds balanced %d", got[2].Stars, got[1].Stars)
	}
}

func TestNormalizeClampsStars(t *testing.T) {
	raw := []Candidate{
		cand(ToneEnthusiastic, 11),
		cand(ToneBalanced, 0),
		cand(ToneCritical, -3),
	}
	got, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range got {
		if c.Stars < 1 || c.Stars > 5 {
			t.Errorf("%s stars out of range: %d", c.Tone, c.Stars)
		}
	}
}

func TestNormalizeAssignsBands(t *testing.T) {
	raw := []Candidate{
		cand(ToneEnthusiastic, 5),
		cand(ToneBalanced, 3),
		cand(ToneCritical, 1),
	}
	got, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Band{BandGood, BandOkay, BandBad}
	for i, c := range got {
		if c.Band != want[i] {
			t.Errorf("%s: want band %s, got %s", c.Tone, want[i], c.Band)
		}
	}
}

func TestNormalizeMissingToneFails(t *testing.T) {
	raw := []Candidate{
		cand(ToneEnthusiastic, 5),
		cand(ToneBalanced, 3),
	}
	_, err := Normalize(raw)
	var ne *NormalizeError
	if !errors.As(err, &ne) {
		t.Fatalf("want NormalizeError, got %v", err)
	}
}

func TestNormalizeDropsDuplicateTones(t *testing.T) {
	raw := []Candidate{
		cand(ToneEnthusiastic, 5),
		cand(ToneEnthusiastic, 4),
		cand(ToneBalanced, 3),
		cand(ToneCritical, 2),
	}
	got, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("want 3 candidates, got %d", len(got))
	}
	if got[0].Stars != 5 {
		t.Errorf("first occurrence should win, got %d stars", got[0].Stars)
	}
}

func TestNormalizeToneCaseInsensitive(t *testing.T) {
	raw := []Candidate{
		cand(Tone("Enthusiastic"), 5),
		cand(Tone(" BALANCED "), 3),
		cand(ToneCritical, 2),
	}
	got, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Tone != ToneEnthusiastic || got[1].Tone != ToneBalanced {
		t.Errorf("tones not canonicalized: %v, %v", got[0].Tone, got[1].Tone)
	}
}

func TestNormalizeEmptyBodyFails(t *testing.T) {
	raw := []Candidate{
		{Tone: ToneEnthusiastic, Stars: 5},
		cand(ToneBalanced, 3),
		cand(ToneCritical, 2),
	}
	_, err := Normalize(raw)
	var ne *NormalizeError
	if !errors.As(err, &ne) {
		t.Fatalf("want NormalizeError, got %v", err)
	}
}

func TestBandForStars(t *testing.T) {
	tests := []struct {
		stars int
		want  Band
	}{
		{5, BandGood},
		{4, BandGood},
		{3, BandOkay},
		{2, BandBad},
		{1, BandBad},
	}
	for _, tt := range tests {
		if got := BandForStars(tt.stars); got != tt.want {
			t.Errorf("stars=%d: want %s, got %s", tt.stars, tt.want, got)
		}
	}
}

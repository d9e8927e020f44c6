package synthesis

import "strings"

// Tone labels one of the three candidate framings.
type Tone string

const (
	ToneEnthusiastic Tone = "enthusiastic"
	ToneBalanced     Tone = "balanced"
	ToneCritical     Tone = "critical"
)

// ToneOrder is the canonical presentation order. Candidate index 0 is always
// enthusiastic, 1 balanced, 2 critical.
var ToneOrder = []Tone{ToneEnthusiastic, ToneBalanced, ToneCritical}

// Band is the coarse sentiment bucket derived from a star rating.
type Band string

const (
	BandGood Band = "good"
	BandOkay Band = "okay"
	BandBad  Band = "bad"
)

// BandForStars buckets a rating: 4 and up reads good, 3 reads okay,
// anything lower reads bad.
func BandForStars(stars int) Band {
	switch {
	case stars >= 4:
		return BandGood
	case stars >= 3:
		return BandOkay
	default:
		return BandBad
	}
}

// ParseBand canonicalizes a band label. The second return reports whether the
// input named a known band at all.
func ParseBand(s string) (Band, bool) {
	switch Band(strings.ToLower(strings.TrimSpace(s))) {
	case BandGood:
		return BandGood, true
	case BandOkay:
		return BandOkay, true
	case BandBad:
		return BandBad, true
	}
	return "", false
}

// OverallBand derives the session-level sentiment from the mean candidate
// rating: a mean of 4 or better reads good, 2.5 or better okay, else bad.
func OverallBand(candidates []Candidate) Band {
	if len(candidates) == 0 {
		return BandOkay
	}
	total := 0
	for _, c := range candidates {
		total += c.Stars
	}
	mean := float64(total) / float64(len(candidates))
	switch {
	case mean >= 4:
		return BandGood
	case mean >= 2.5:
		return BandOkay
	default:
		return BandBad
	}
}

// Candidate is one synthesized review draft. Highlights are the short
// pull-quote phrases the model extracted from the interview.
type Candidate struct {
	Tone       Tone     `json:"tone"`
	Title      string   `json:"title"`
	Body       string   `json:"body"`
	Highlights []string `json:"highlights,omitempty"`
	Stars      int      `json:"stars"`
	Band       Band     `json:"band"`
}

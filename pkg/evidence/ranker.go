package evidence

import (
	"math"
	"sort"
	"time"
)

const (
	recencyHalfLifeDays = 180.0
	qualityLowerChars   = 100
	qualityUpperChars   = 300
)

// RecencyScore decays exponentially with a 180-day half life. An item written
// today scores 1.0, a 180-day-old item 0.5, a year-old item roughly 0.25.
// Timestamps in the future clamp to 1.0 rather than rewarding clock skew.
func RecencyScore(createdAt, now time.Time) float64 {
	ageDays := now.Sub(createdAt).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	return math.Pow(0.5, ageDays/recencyHalfLifeDays)
}

// QualityScore maps body length to [0.3, 1.0] in three buckets. Short bodies
// start at 0.3 and climb to 0.7 at 100 chars, mid-length bodies climb to 1.0
// at 300 chars, and everything longer saturates at 1.0.
func QualityScore(body string) float64 {
	n := len(body)
	switch {
	case n < qualityLowerChars:
		return 0.3 + float64(n)/100*0.4
	case n < qualityUpperChars:
		return 0.7 + float64(n-qualityLowerChars)/200*0.3
	default:
		return 1.0
	}
}

// DiversityScore rewards items whose star rating sits far from the running
// mean of the already-selected set. The first pick always scores 0; later
// picks score the absolute distance from the mean, capped at 1.0.
func DiversityScore(stars int, selected []Item) float64 {
	if len(selected) == 0 {
		return 0
	}
	var sum float64
	for _, it := range selected {
		sum += float64(it.Stars)
	}
	mean := sum / float64(len(selected))
	d := math.Abs(float64(stars) - mean)
	if d > 1.0 {
		d = 1.0
	}
	return d
}

// Score combines the four component scores with the path's weight row.
func Score(item Item, path Path, selected []Item, now time.Time) float64 {
	w := WeightsFor(path)
	return w.Recency*RecencyScore(item.CreatedAt, now) +
		w.Quality*QualityScore(item.Body) +
		w.Similarity*item.Similarity +
		w.Diversity*DiversityScore(item.Stars, selected)
}

// SelectTopK greedily picks k items, re-scoring the remaining pool each round
// because the diversity term depends on what is already selected. Ties break
// toward the more recent item so the result is deterministic for a fixed now.
func SelectTopK(items []Item, path Path, k int, now time.Time) []Item {
	if k <= 0 || len(items) == 0 {
		return nil
	}
	if k > len(items) {
		k = len(items)
	}

	remaining := make([]Item, len(items))
	copy(remaining, items)
	selected := make([]Item, 0, k)

	for len(selected) < k {
		bestIdx := 0
		bestScore := Score(remaining[0], path, selected, now)
		for i := 1; i < len(remaining); i++ {
			s := Score(remaining[i], path, selected, now)
			if s > bestScore || (s == bestScore && remaining[i].CreatedAt.After(remaining[bestIdx].CreatedAt)) {
				bestIdx = i
				bestScore = s
			}
		}
		selected = append(selected, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	return selected
}

// Rank orders the full set by score without the greedy diversity feedback,
// useful when the caller wants every item back in priority order.
func Rank(items []Item, path Path, now time.Time) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		si := Score(out[i], path, nil, now)
		sj := Score(out[j], path, nil, now)
		if si != sj {
			return si > sj
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

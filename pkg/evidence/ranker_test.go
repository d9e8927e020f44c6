package evidence

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func item(stars, bodyLen, ageDays int, similarity float64) Item {
	return Item{
		Title:      "t",
		Body:       strings.Repeat("x", bodyLen),
		Stars:      stars,
		CreatedAt:  now.AddDate(0, 0, -ageDays),
		Similarity: similarity,
	}
}

func TestRecencyScore(t *testing.T) {
	assert.InDelta(t, 1.0, RecencyScore(now, now), 0.0001)
	assert.InDelta(t, 0.5, RecencyScore(now.AddDate(0, 0, -180), now), 0.0001)
	assert.InDelta(t, 0.25, RecencyScore(now.AddDate(0, 0, -360), now), 0.0001)
}

func TestRecencyScoreFutureTimestampClamped(t *testing.T) {
	assert.InDelta(t, 1.0, RecencyScore(now.AddDate(0, 0, 30), now), 0.0001)
}

func TestQualityScoreSaturates(t *testing.T) {
	tests := []struct {
		bodyLen int
		want    float64
	}{
		{0, 0.3},
		{50, 0.5},
		{100, 0.7},
		{200, 0.85},
		{300, 1.0},
		{5000, 1.0},
	}
	for _, tt := range tests {
		got := QualityScore(strings.Repeat("a", tt.bodyLen))
		assert.InDelta(t, tt.want, got, 0.0001, "len=%d", tt.bodyLen)
	}
}

func TestDiversityScore(t *testing.T) {
	assert.Equal(t, 0.0, DiversityScore(5, nil))

	selected := []Item{item(5, 100, 0, 0), item(5, 100, 0, 0)}
	assert.InDelta(t, 1.0, DiversityScore(1, selected), 0.0001, "distance capped at 1.0")
	assert.InDelta(t, 0.0, DiversityScore(5, selected), 0.0001)
	assert.InDelta(t, 1.0, DiversityScore(4, selected), 0.0001)
}

func TestWeightsSumToOne(t *testing.T) {
	for path, w := range weightsByPath {
		sum := w.Recency + w.Quality + w.Similarity + w.Diversity
		assert.InDelta(t, 1.0, sum, 0.0001, "path=%s", path)
	}
}

func TestSelectTopKDeterministic(t *testing.T) {
	items := []Item{
		item(5, 250, 10, 0),
		item(1, 250, 10, 0),
		item(3, 50, 400, 0),
		item(4, 150, 30, 0),
	}
	a := SelectTopK(items, PathDirect, 3, now)
	b := SelectTopK(items, PathDirect, 3, now)
	assert.Equal(t, a, b)
}

func TestSelectTopKPrefersRecentOnDirectPath(t *testing.T) {
	recent := item(4, 150, 5, 0)
	old := item(4, 150, 500, 0)
	got := SelectTopK([]Item{old, recent}, PathDirect, 1, now)
	require.Len(t, got, 1)
	assert.Equal(t, recent.CreatedAt, got[0].CreatedAt)
}

func TestSelectTopKSimilarityDominatesAnalogousPath(t *testing.T) {
	close := item(3, 100, 300, 0.95)
	far := item(5, 300, 5, 0.10)
	got := SelectTopK([]Item{far, close}, PathAnalogous, 1, now)
	require.Len(t, got, 1)
	assert.InDelta(t, 0.95, got[0].Similarity, 0.0001)
}

func TestSelectTopKDiversityPullsSpread(t *testing.T) {
	items := []Item{
		item(5, 300, 5, 0),
		item(5, 300, 6, 0),
		item(5, 300, 7, 0),
		item(1, 280, 20, 0),
	}
	got := SelectTopK(items, PathDirect, 3, now)
	require.Len(t, got, 3)
	foundContrarian := false
	for _, it := range got {
		if it.Stars == 1 {
			foundContrarian = true
		}
	}
	assert.True(t, foundContrarian, "diversity term should pull in the 1-star review")
}

func TestSelectTopKTieBreaksMoreRecentFirst(t *testing.T) {
	a := item(4, 200, 10, 0)
	b := item(4, 200, 40, 0)
	got := Rank([]Item{b, a}, PathDirect, now)
	require.Len(t, got, 2)
	assert.True(t, got[0].CreatedAt.After(got[1].CreatedAt))
}

func TestSelectTopKBounds(t *testing.T) {
	items := []Item{item(4, 100, 10, 0), item(3, 100, 20, 0)}
	assert.Nil(t, SelectTopK(items, PathDirect, 0, now))
	assert.Nil(t, SelectTopK(nil, PathDirect, 3, now))
	assert.Len(t, SelectTopK(items, PathDirect, 10, now), 2)
}

func TestChoosePath(t *testing.T) {
	tests := []struct {
		name      string
		direct    int
		analogous int
		want      Path
	}{
		{"direct wins", 3, 5, PathDirect},
		{"analogous fallback", 0, 5, PathAnalogous},
		{"sparse fallback", 0, 0, PathSparse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChoosePath(tt.direct, tt.analogous))
		})
	}
}

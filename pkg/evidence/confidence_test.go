package evidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectConfidence(t *testing.T) {
	tests := []struct {
		reviews int
		want    float64
	}{
		{0, 0.70},
		{10, 0.80},
		{25, 0.95},
		{500, 0.95},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, DirectConfidence(tt.reviews), 0.001, "reviews=%d", tt.reviews)
	}
}

func TestAnalogousConfidenceStaysInBand(t *testing.T) {
	assert.InDelta(t, 0.55, AnalogousConfidence(0, 0), 0.001)
	assert.InDelta(t, 0.80, AnalogousConfidence(3, 20), 0.001, "both bonuses capped")
	assert.InDelta(t, 0.6667, AnalogousConfidence(1, 10), 0.001)

	c := AnalogousConfidence(50, 1000)
	assert.GreaterOrEqual(t, c, 0.55)
	assert.LessOrEqual(t, c, 0.80)

	c = AnalogousConfidence(1, 20)
	assert.GreaterOrEqual(t, c, 0.55)
	assert.LessOrEqual(t, c, 0.80)
}

func TestSparseConfidence(t *testing.T) {
	tests := []struct {
		name    string
		profile SparseProfile
		want    float64
	}{
		{"nothing", SparseProfile{}, 0.40},
		{"everything", SparseProfile{HasDescription: true, HasPrice: true, HasRating: true}, 0.50},
		{"description only", SparseProfile{HasDescription: true}, 0.45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SparseConfidence(tt.profile), 0.001)
		})
	}
}

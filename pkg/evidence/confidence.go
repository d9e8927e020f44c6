package evidence

// DirectConfidence grows with first-party review volume, starting at 0.70 and
// capping at 0.95 once a hundred reviews are on record.
func DirectConfidence(reviewCount int) float64 {
	bonus := float64(reviewCount) / 100
	if bonus > 0.25 {
		bonus = 0.25
	}
	return 0.70 + bonus
}

// AnalogousConfidence starts at 0.55 and earns two independent bonuses: up to
// 0.15 for the number of similar subjects found and up to 0.10 for the volume
// of borrowed reviews. Caps at 0.80.
func AnalogousConfidence(similarCount, reviewCount int) float64 {
	simBonus := float64(similarCount) / 20
	if simBonus > 0.15 {
		simBonus = 0.15
	}
	revBonus := float64(reviewCount) / 150
	if revBonus > 0.10 {
		revBonus = 0.10
	}
	return 0.55 + simBonus + revBonus
}

// SparseProfile records which descriptive fields were present when no review
// evidence existed at all.
type SparseProfile struct {
	HasDescription bool
	HasPrice       bool
	HasRating      bool
}

// SparseConfidence starts at the 0.40 floor and adds small bumps per field,
// topping out at 0.50.
func SparseConfidence(p SparseProfile) float64 {
	c := 0.40
	if p.HasDescription {
		c += 0.05
	}
	if p.HasPrice {
		c += 0.02
	}
	if p.HasRating {
		c += 0.03
	}
	return c
}

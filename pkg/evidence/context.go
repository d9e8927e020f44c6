package evidence

// ProductContext is the distilled product-side picture handed to the question
// generator. Confidence reflects how much evidence backed it, banded by Path.
type ProductContext struct {
	KeyFeatures    []string `json:"key_features"`
	MajorConcerns  []string `json:"major_concerns"`
	Pros           []string `json:"pros"`
	Cons           []string `json:"cons"`
	CommonUseCases []string `json:"common_use_cases"`
	Path           Path     `json:"path"`
	Confidence     float64  `json:"confidence"`
}

// CustomerContext is the customer-side counterpart, built from the customer's
// own review history or borrowed from similar customers.
type CustomerContext struct {
	PurchasePatterns []string `json:"purchase_patterns"`
	Expectations     []string `json:"expectations"`
	PrimaryConcerns  []string `json:"primary_concerns"`
	PainPoints       []string `json:"pain_points"`
	Path             Path     `json:"path"`
	Confidence       float64  `json:"confidence"`
}

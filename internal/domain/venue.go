package domain

// Venue is a restaurant record as persisted in the venue store.
type Venue struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Cuisines    []string `json:"cuisine" yaml:"cuisines"`
	Rating      float64  `json:"rating" yaml:"rating"`
	Capacity    int      `json:"capacity" yaml:"capacity"`
	PriceTier   int      `json:"price_tier" yaml:"price_tier"` // 1-4 scale
	City        string   `json:"city" yaml:"city"`
	Address     string   `json:"address,omitempty" yaml:"address"`
	Image       string   `json:"image,omitempty" yaml:"image"`
	Tags        []string `json:"tags,omitempty" yaml:"tags"`
	Phone       string   `json:"phone,omitempty" yaml:"phone"`
	Description string   `json:"description,omitempty" yaml:"description"`
	Active      bool     `json:"-" yaml:"active"`
}

// VenueSummary is the structured-payload shape delivered to the UI.
// ID is an internal handle for programmatic use by the caller and is
// never surfaced in natural-language text.
type VenueSummary struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Cuisines   []string `json:"cuisine"`
	Rating     float64  `json:"rating"`
	Capacity   int      `json:"capacity"`
	PriceTier  int      `json:"price_tier"`
	City       string   `json:"city"`
	Image      string   `json:"image,omitempty"`
	Tags       []string `json:"tags"`
	DistanceKM float64  `json:"distance_km"`
	Score      float64  `json:"score"`
}

// Summary converts a venue to its UI-facing summary form.
// Distance and score are placeholders until geo ranking lands.
func (v Venue) Summary() VenueSummary {
	tags := v.Tags
	if tags == nil {
		tags = []string{}
	}
	return VenueSummary{
		ID:         v.ID,
		Name:       v.Name,
		Cuisines:   v.Cuisines,
		Rating:     v.Rating,
		Capacity:   v.Capacity,
		PriceTier:  v.PriceTier,
		City:       v.City,
		Image:      v.Image,
		Tags:       tags,
		DistanceKM: 2.5,
		Score:      0.9,
	}
}

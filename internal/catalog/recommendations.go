package catalog

// Recommendation is a suggested product for a skin type, shown after a
// booking. Prices are in main currency units (KSH).
type Recommendation struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

var recommendations = map[string][]Recommendation{
	"oily": {
		{Name: "Oil-Free Foundation", Description: "Matte finish foundation for oily skin", Price: 3900.0},
		{Name: "Mattifying Primer", Description: "Controls oil and shine all day", Price: 2600.0},
		{Name: "Clay Face Mask", Description: "Deep cleansing clay mask", Price: 1950.0},
	},
	"dry": {
		{Name: "Hydrating Foundation", Description: "Moisturizing foundation for dry skin", Price: 4550.0},
		{Name: "Hydrating Primer", Description: "Adds moisture and smooths skin", Price: 2925.0},
		{Name: "Moisturizing Face Mask", Description: "Intensive hydration mask", Price: 2275.0},
	},
	"combination": {
		{Name: "Balancing Foundation", Description: "Perfect for combination skin", Price: 4225.0},
		{Name: "Dual-Zone Primer", Description: "Controls oil in T-zone, hydrates cheeks", Price: 2795.0},
		{Name: "Balancing Toner", Description: "Balances skin pH", Price: 1625.0},
	},
	"sensitive": {
		{Name: "Gentle Foundation", Description: "Hypoallergenic formula for sensitive skin", Price: 4875.0},
		{Name: "Soothing Primer", Description: "Calms and protects sensitive skin", Price: 3250.0},
		{Name: "Gentle Cleanser", Description: "Mild, fragrance-free cleanser", Price: 1950.0},
	},
	"normal": {
		{Name: "All-Day Foundation", Description: "Perfect coverage for normal skin", Price: 3900.0},
		{Name: "Smoothing Primer", Description: "Creates perfect base", Price: 2600.0},
		{Name: "Vitamin C Serum", Description: "Brightens and protects", Price: 3250.0},
	},
}

// Recommendations returns the product suggestions for a skin type,
// falling back to the normal-skin set for unknown types.
func Recommendations(skinType string) []Recommendation {
	if recs, ok := recommendations[skinType]; ok {
		return recs
	}
	return recommendations["normal"]
}

// Package listing filters and sorts the small in-memory lists behind the
// browse pages, and keeps a profile's favorites.
package listing

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"food-storefront/models"
)

// RestaurantFilter is bound from the /restaurants query string.
type RestaurantFilter struct {
	Search             string  `form:"search"`
	Cuisine            string  `form:"cuisine"`
	Location           string  `form:"location"`
	MinRating          float64 `form:"rating"`
	PriceRange         string  `form:"priceRange"`
	MaxDeliveryMinutes int     `form:"deliveryTime"`
	Offers             bool    `form:"offers"`
	Veg                bool    `form:"isVeg"`
	SortBy             string  `form:"sortBy"`
}

const (
	SortRating       = "rating"
	SortDeliveryTime = "deliveryTime"
	SortPrice        = "price"
	SortDistance     = "distance"
)

func FilterRestaurants(rs []models.Restaurant, f RestaurantFilter) []models.Restaurant {
	out := make([]models.Restaurant, 0, len(rs))
	for _, r := range rs {
		if f.matches(r) {
			out = append(out, r)
		}
	}

	switch f.SortBy {
	case SortDeliveryTime:
		slices.SortStableFunc(out, func(a, b models.Restaurant) int {
			return cmp.Compare(leadingInt(a.DeliveryTime), leadingInt(b.DeliveryTime))
		})
	case SortPrice:
		slices.SortStableFunc(out, func(a, b models.Restaurant) int {
			return a.AvgCost.Cmp(b.AvgCost)
		})
	case SortDistance:
		slices.SortStableFunc(out, func(a, b models.Restaurant) int {
			return cmp.Compare(leadingFloat(a.Distance), leadingFloat(b.Distance))
		})
	default:
		slices.SortStableFunc(out, func(a, b models.Restaurant) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	}
	return out
}

func (f RestaurantFilter) matches(r models.Restaurant) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		hit := contains(r.Name, q) || contains(r.Cuisine, q) ||
			slices.ContainsFunc(r.Specialities, func(s string) bool { return contains(s, q) })
		if !hit {
			return false
		}
	}
	if f.Cuisine != "" && !contains(r.Cuisine, strings.ToLower(f.Cuisine)) {
		return false
	}
	if f.Location != "" && !contains(r.Location, strings.ToLower(f.Location)) {
		return false
	}
	if f.MinRating > 0 && r.Rating < f.MinRating {
		return false
	}
	if f.PriceRange != "" && r.PriceRange != f.PriceRange {
		return false
	}
	if f.MaxDeliveryMinutes > 0 && leadingInt(r.DeliveryTime) > f.MaxDeliveryMinutes {
		return false
	}
	if f.Offers && len(r.Offers) == 0 {
		return false
	}
	if f.Veg && !r.IsVeg {
		return false
	}
	return true
}

func Featured(rs []models.Restaurant) []models.Restaurant {
	var out []models.Restaurant
	for _, r := range rs {
		if r.Featured {
			out = append(out, r)
		}
	}
	return out
}

// Greeting picks the home page greeting for an hour of the day.
func Greeting(hour int) string {
	switch {
	case hour < 12:
		return "Good Morning!"
	case hour < 17:
		return "Good Afternoon!"
	default:
		return "Good Evening!"
	}
}

func contains(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}

// leadingInt reads "25-35 mins" as 25. Strings without a leading number
// sort last.
func leadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return n
}

// leadingFloat reads "2.1 km" as 2.1.
func leadingFloat(s string) float64 {
	field, _, _ := strings.Cut(strings.TrimSpace(s), " ")
	v, err := strconv.ParseFloat(strings.TrimSuffix(field, "km"), 64)
	if err != nil {
		return 1e18
	}
	return v
}

package catalog

import (
	"context"
	"fmt"

	"food-storefront/models"
)

// Static serves the sample restaurants. Every restaurant shares the sample
// menu, stamped with the restaurant's id and name.
type Static struct {
	restaurants []models.Restaurant
	menu        []models.MenuItem
}

func NewStatic() *Static {
	return &Static{restaurants: sampleRestaurants(), menu: sampleMenu()}
}

func (s *Static) Restaurants(context.Context) ([]models.Restaurant, error) {
	out := make([]models.Restaurant, len(s.restaurants))
	copy(out, s.restaurants)
	return out, nil
}

func (s *Static) Restaurant(_ context.Context, id string) (models.Restaurant, error) {
	for _, r := range s.restaurants {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Restaurant{}, fmt.Errorf("restaurant %s: %w", id, ErrNotFound)
}

func (s *Static) Menu(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	r, err := s.Restaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	out := make([]models.MenuItem, len(s.menu))
	for i, m := range s.menu {
		m.RestaurantID = r.ID
		m.Restaurant = r.Name
		out[i] = m
	}
	return out, nil
}

func (s *Static) MenuItem(ctx context.Context, restaurantID, itemID string) (models.MenuItem, error) {
	items, err := s.Menu(ctx, restaurantID)
	if err != nil {
		return models.MenuItem{}, err
	}
	for _, m := range items {
		if m.ID == itemID {
			return m, nil
		}
	}
	return models.MenuItem{}, fmt.Errorf("menu item %s: %w", itemID, ErrNotFound)
}

func sampleRestaurants() []models.Restaurant {
	return []models.Restaurant{
		{
			ID: "1", Name: "Spice Symphony", Cuisine: "Indian Fusion",
			Image:  "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?w=400&h=300&fit=crop",
			Rating: 4.8, ReviewCount: 1250, DeliveryTime: "25-35 mins",
			Location: "RS Puram, Coimbatore", Distance: "2.1 km",
			Offers: []string{"30% OFF", "Free Delivery"}, IsOpen: true,
			Specialities: []string{"Biryani", "Tandoor", "Curries"},
			PriceRange:   "mid", AvgCost: models.Amount(450), DeliveryFee: models.Amount(0), MinOrder: models.Amount(199),
			Description: "Authentic Indian flavors with a modern twist", Featured: true,
		},
		{
			ID: "2", Name: "Urban Bites", Cuisine: "Continental",
			Image:  "https://images.unsplash.com/photo-1555396273-367ea4eb4db5?w=400&h=300&fit=crop",
			Rating: 4.6, ReviewCount: 890, DeliveryTime: "30-40 mins",
			Location: "Race Course, Coimbatore", Distance: "1.8 km",
			Offers: []string{"25% OFF"}, IsOpen: true,
			Specialities: []string{"Pizza", "Pasta", "Steaks"},
			PriceRange:   "high", AvgCost: models.Amount(750), DeliveryFee: models.Amount(50), MinOrder: models.Amount(299),
			Description: "Fine dining continental cuisine", Featured: true,
		},
		{
			ID: "3", Name: "Green Garden", Cuisine: "Healthy & Organic",
			Image:  "https://images.unsplash.com/photo-1414235077428-338989a2e8c0?w=400&h=300&fit=crop",
			Rating: 4.7, ReviewCount: 650, DeliveryTime: "20-30 mins",
			Location: "Gandhipuram, Coimbatore", Distance: "3.2 km",
			Offers: []string{"20% OFF", "Healthy Choice"}, IsOpen: true, IsVeg: true,
			Specialities: []string{"Salads", "Smoothies", "Quinoa Bowls"},
			PriceRange:   "low", AvgCost: models.Amount(350), DeliveryFee: models.Amount(30), MinOrder: models.Amount(149),
			Description: "Fresh, healthy, and organic meals", Featured: true,
		},
		{
			ID: "4", Name: "Street Food Junction", Cuisine: "Street Food",
			Image:  "https://images.unsplash.com/photo-1565958011703-44f9829ba187?w=400&h=300&fit=crop",
			Rating: 4.4, ReviewCount: 2100, DeliveryTime: "15-25 mins",
			Location: "Peelamedu, Coimbatore", Distance: "4.5 km",
			Offers: []string{"Buy 1 Get 1"}, IsOpen: true,
			Specialities: []string{"Chaat", "Pav Bhaji", "Dosa"},
			PriceRange:   "low", AvgCost: models.Amount(180), DeliveryFee: models.Amount(25), MinOrder: models.Amount(99),
			Description: "Authentic street food experience",
		},
		{
			ID: "5", Name: "Sushi Zen", Cuisine: "Japanese",
			Image:  "https://images.unsplash.com/photo-1559339352-11d035aa65de?w=400&h=300&fit=crop",
			Rating: 4.9, ReviewCount: 420, DeliveryTime: "35-45 mins",
			Location: "Saibaba Colony, Coimbatore", Distance: "5.1 km",
			Offers: []string{"Premium Experience"}, IsOpen: false,
			Specialities: []string{"Sushi", "Ramen", "Tempura"},
			PriceRange:   "high", AvgCost: models.Amount(1100), DeliveryFee: models.Amount(80), MinOrder: models.Amount(499),
			Description: "Authentic Japanese cuisine experience",
		},
		{
			ID: "6", Name: "Dessert Paradise", Cuisine: "Desserts & Bakery",
			Image:  "https://images.unsplash.com/photo-1571167530149-c72f2b2c3f44?w=400&h=300&fit=crop",
			Rating: 4.5, ReviewCount: 780, DeliveryTime: "20-30 mins",
			Location: "Singanallur, Coimbatore", Distance: "2.8 km",
			Offers: []string{"Sweet Deals"}, IsOpen: true, IsVeg: true,
			Specialities: []string{"Cakes", "Ice Cream", "Pastries"},
			PriceRange:   "mid", AvgCost: models.Amount(280), DeliveryFee: models.Amount(40), MinOrder: models.Amount(149),
			Description: "Heavenly desserts and fresh bakery items",
		},
	}
}

func sampleMenu() []models.MenuItem {
	return []models.MenuItem{
		{ID: "1", Name: "Chef's Special Biryani", Category: "Signature Dishes", Price: models.Amount(350),
			Description: "Aromatic basmati rice with tender chicken, saffron, and secret spices",
			Image:       "https://images.unsplash.com/photo-1563379091339-03246963d96c?w=300&h=200&fit=crop",
			IsAvailable: true},
		{ID: "2", Name: "Truffle Mushroom Pizza", Category: "Signature Dishes", Price: models.Amount(480), IsVeg: true,
			Description: "Wood-fired pizza with truffle oil, wild mushrooms, and mozzarella",
			Image:       "https://images.unsplash.com/photo-1604382354936-07c5d9983bd3?w=300&h=200&fit=crop",
			IsAvailable: true},
		{ID: "3", Name: "Quinoa Buddha Bowl", Category: "Healthy Options", Price: models.Amount(280), IsVeg: true,
			Description: "Nutritious bowl with quinoa, avocado, roasted vegetables, and tahini dressing",
			Image:       "https://images.unsplash.com/photo-1546793665-c74683f339c1?w=300&h=200&fit=crop",
			IsAvailable: true},
		{ID: "4", Name: "Grilled Salmon Salad", Category: "Healthy Options", Price: models.Amount(420),
			Description: "Fresh Atlantic salmon with mixed greens, cherry tomatoes, and lemon vinaigrette",
			Image:       "https://images.unsplash.com/photo-1467003909585-2f8a72700288?w=300&h=200&fit=crop",
			IsAvailable: true},
		{ID: "5", Name: "Mumbai Pav Bhaji", Category: "Street Food", Price: models.Amount(120), IsVeg: true,
			Description: "Spicy vegetable curry served with buttered bread rolls",
			Image:       "https://images.unsplash.com/photo-1606491956689-2ea866880c84?w=300&h=200&fit=crop",
			IsAvailable: true},
		{ID: "6", Name: "Chocolate Lava Cake", Category: "Desserts", Price: models.Amount(180), IsVeg: true,
			Description: "Warm chocolate cake with molten center, served with vanilla ice cream",
			Image:       "https://images.unsplash.com/photo-1571167530149-c72f2b2c3f44?w=300&h=200&fit=crop",
			IsAvailable: true},
		{ID: "7", Name: "Fresh Lime Mojito", Category: "Beverages", Price: models.Amount(80), IsVeg: true,
			Description: "Refreshing mint and lime drink with soda",
			Image:       "https://images.unsplash.com/photo-1571934811356-5cc061b6821f?w=300&h=200&fit=crop",
			IsAvailable: true},
	}
}

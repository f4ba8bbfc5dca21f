package listing

import (
	"context"
	"testing"

	"food-storefront/catalog"
	"food-storefront/config"
	"food-storefront/models"
	"food-storefront/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) []models.Restaurant {
	t.Helper()
	rs, err := catalog.NewStatic().Restaurants(context.Background())
	require.NoError(t, err)
	return rs
}

func names(rs []models.Restaurant) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name
	}
	return out
}

func TestFilterRestaurants(t *testing.T) {
	tests := []struct {
		name   string
		filter RestaurantFilter
		want   []string
	}{
		{"default sorts by rating", RestaurantFilter{},
			[]string{"Sushi Zen", "Spice Symphony", "Green Garden", "Urban Bites", "Dessert Paradise", "Street Food Junction"}},
		{"search matches specialities", RestaurantFilter{Search: "pav bhaji"},
			[]string{"Street Food Junction"}},
		{"search matches cuisine", RestaurantFilter{Search: "JAPANESE"},
			[]string{"Sushi Zen"}},
		{"location", RestaurantFilter{Location: "race course"},
			[]string{"Urban Bites"}},
		{"veg only", RestaurantFilter{Veg: true},
			[]string{"Green Garden", "Dessert Paradise"}},
		{"min rating and price range", RestaurantFilter{MinRating: 4.6, PriceRange: "high"},
			[]string{"Sushi Zen", "Urban Bites"}},
		{"delivery time cap", RestaurantFilter{MaxDeliveryMinutes: 20, SortBy: SortDeliveryTime},
			[]string{"Street Food Junction", "Green Garden", "Dessert Paradise"}},
		{"sort by price", RestaurantFilter{SortBy: SortPrice, PriceRange: "low"},
			[]string{"Street Food Junction", "Green Garden"}},
		{"sort by distance", RestaurantFilter{SortBy: SortDistance},
			[]string{"Urban Bites", "Spice Symphony", "Dessert Paradise", "Green Garden", "Street Food Junction", "Sushi Zen"}},
		{"cuisine and offers", RestaurantFilter{Cuisine: "street", Offers: true},
			[]string{"Street Food Junction"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(FilterRestaurants(sample(t), tt.filter)))
		})
	}
}

func TestFeatured(t *testing.T) {
	assert.Equal(t, []string{"Spice Symphony", "Urban Bites", "Green Garden"}, names(Featured(sample(t))))
}

func TestGreeting(t *testing.T) {
	assert.Equal(t, "Good Morning!", Greeting(8))
	assert.Equal(t, "Good Afternoon!", Greeting(12))
	assert.Equal(t, "Good Evening!", Greeting(21))
}

func TestFilterMenu(t *testing.T) {
	items, err := catalog.NewStatic().Menu(context.Background(), "1")
	require.NoError(t, err)

	assert.Equal(t, []string{"Signature Dishes", "Healthy Options", "Street Food", "Desserts", "Beverages"}, Categories(items))

	got := FilterMenu(items, MenuFilter{Veg: VegOnly, Category: "Signature Dishes"})
	require.Len(t, got, 1)
	assert.Equal(t, "Truffle Mushroom Pizza", got[0].Name)

	got = FilterMenu(items, MenuFilter{Veg: NonVegOnly})
	assert.Len(t, got, 2)

	got = FilterMenu(items, MenuFilter{Search: "mint"})
	require.Len(t, got, 1)
	assert.Equal(t, "Fresh Lime Mojito", got[0].Name)

	assert.Len(t, FilterMenu(items, MenuFilter{Veg: VegAll}), 7)
}

func TestFilterOrdersAndBookings(t *testing.T) {
	orders := []models.Order{{ID: "1", Status: models.StatusPending}, {ID: "2", Status: models.StatusDelivered}}
	assert.Len(t, FilterOrders(orders, "all"), 2)
	assert.Len(t, FilterOrders(orders, ""), 2)
	got := FilterOrders(orders, "delivered")
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
	assert.Empty(t, FilterOrders(orders, "cancelled"))

	bookings := []models.Booking{{ID: "b1", Status: models.BookingConfirmed}, {ID: "b2", Status: models.BookingCancelled}}
	assert.Len(t, FilterBookings(bookings, "confirmed"), 1)
}

func TestToggleFavorite(t *testing.T) {
	db, err := config.InitDB(":memory:")
	require.NoError(t, err)
	sess := storage.NewSession(storage.NewGormStore(db), "p1")
	ctx := context.Background()

	ids, err := Favorites(ctx, sess, storage.KeyFavorites)
	require.NoError(t, err)
	assert.Empty(t, ids)

	ids, on, err := ToggleFavorite(ctx, sess, storage.KeyFavorites, "6")
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, []string{"6"}, ids)

	_, _, err = ToggleFavorite(ctx, sess, storage.KeyFavorites, "2")
	require.NoError(t, err)
	ids, on, err = ToggleFavorite(ctx, sess, storage.KeyFavorites, "6")
	require.NoError(t, err)
	assert.False(t, on)
	assert.Equal(t, []string{"2"}, ids)

	restaurants, err := Favorites(ctx, sess, storage.KeyRestaurantFavorites)
	require.NoError(t, err)
	assert.Empty(t, restaurants)
}

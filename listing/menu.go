package listing

import (
	"strings"

	"food-storefront/models"
)

const (
	VegAll    = "all"
	VegOnly   = "veg"
	NonVegOnly = "non-veg"
)

type MenuFilter struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	Veg      string `form:"veg"`
}

func FilterMenu(items []models.MenuItem, f MenuFilter) []models.MenuItem {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.MenuItem, 0, len(items))
	for _, m := range items {
		if f.Category != "" && m.Category != f.Category {
			continue
		}
		if q != "" && !contains(m.Name, q) && !contains(m.Description, q) {
			continue
		}
		switch f.Veg {
		case VegOnly:
			if !m.IsVeg {
				continue
			}
		case NonVegOnly:
			if m.IsVeg {
				continue
			}
		}
		out = append(out, m)
	}
	return out
}

// Categories lists menu categories in the order they first appear.
func Categories(items []models.MenuItem) []string {
	var out []string
	seen := map[string]bool{}
	for _, m := range items {
		if m.Category == "" || seen[m.Category] {
			continue
		}
		seen[m.Category] = true
		out = append(out, m.Category)
	}
	return out
}

// FilterOrders keeps orders with the given status; "" and "all" keep every
// order.
func FilterOrders(orders []models.Order, status string) []models.Order {
	if status == "" || status == "all" {
		return orders
	}
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if string(o.Status) == status {
			out = append(out, o)
		}
	}
	return out
}

func FilterBookings(bookings []models.Booking, status string) []models.Booking {
	if status == "" || status == "all" {
		return bookings
	}
	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if string(b.Status) == status {
			out = append(out, b)
		}
	}
	return out
}

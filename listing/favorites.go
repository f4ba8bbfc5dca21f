package listing

import (
	"context"
	"slices"

	"food-storefront/storage"
)

// Favorites returns the ids stored under key (storage.KeyFavorites or
// storage.KeyRestaurantFavorites).
func Favorites(ctx context.Context, sess *storage.Session, key string) ([]string, error) {
	ids, _, err := storage.Lookup[[]string](ctx, sess, key)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// ToggleFavorite adds id to the list under key, or removes it if present.
// It reports whether id is a favorite afterwards.
func ToggleFavorite(ctx context.Context, sess *storage.Session, key, id string) ([]string, bool, error) {
	ids, err := Favorites(ctx, sess, key)
	if err != nil {
		return nil, false, err
	}
	on := !slices.Contains(ids, id)
	if on {
		ids = append(ids, id)
	} else {
		ids = slices.DeleteFunc(ids, func(v string) bool { return v == id })
	}
	if err := sess.SetJSON(ctx, key, ids); err != nil {
		return nil, false, err
	}
	return ids, on, nil
}

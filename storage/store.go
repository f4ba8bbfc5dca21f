// Package storage is the key-value persistence behind every browser profile:
// login state, cart, favorites and the last placed order.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys written by the storefront. Values are JSON documents.
const (
	KeyToken               = "token"
	KeyUser                = "user"
	KeyCart                = "cart"
	KeyFavorites           = "favorites"
	KeyRestaurantFavorites = "restaurantFavorites"
	KeyLastOrder           = "lastOrder"
	KeyCheckout            = "checkout"
)

var ErrNotFound = errors.New("storage: key not found")

// Store reads and writes raw values per profile. Writes are last-write-wins.
type Store interface {
	Get(ctx context.Context, profile, key string) ([]byte, error)
	Set(ctx context.Context, profile, key string, value []byte) error
	Delete(ctx context.Context, profile, key string) error
}

// Session binds a Store to a single profile.
type Session struct {
	store   Store
	profile string
}

func NewSession(store Store, profile string) *Session {
	return &Session{store: store, profile: profile}
}

func (s *Session) Profile() string { return s.profile }

// GetJSON decodes the value under key into v. It returns ErrNotFound when the
// key has never been written.
func (s *Session) GetJSON(ctx context.Context, key string, v any) error {
	raw, err := s.store.Get(ctx, s.profile, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *Session) SetJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.store.Set(ctx, s.profile, key, raw)
}

// Delete removes every given key; missing keys are ignored.
func (s *Session) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		if err := s.store.Delete(ctx, s.profile, k); err != nil {
			return fmt.Errorf("delete %s: %w", k, err)
		}
	}
	return nil
}

// Lookup is GetJSON that reports a missing key as ok=false instead of an error.
func Lookup[T any](ctx context.Context, s *Session, key string) (T, bool, error) {
	var v T
	err := s.GetJSON(ctx, key, &v)
	if errors.Is(err, ErrNotFound) {
		return v, false, nil
	}
	if err != nil {
		return v, false, err
	}
	return v, true, nil
}

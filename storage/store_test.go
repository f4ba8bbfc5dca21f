package storage_test

import (
	"bytes"
	"context"
	"log"
	"testing"
	"time"

	"food-storefront/config"
	"food-storefront/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newGormStore(t *testing.T) storage.Store {
	db, err := config.InitDB(":memory:")
	require.NoError(t, err)
	return storage.NewGormStore(db)
}

func newRedisStore(t *testing.T) storage.Store {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return storage.NewRedisStore(client, 0)
}

func TestStores(t *testing.T) {
	drivers := map[string]func(*testing.T) storage.Store{
		"sqlite": newGormStore,
		"redis":  newRedisStore,
	}
	for name, open := range drivers {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := open(t)

			_, err := store.Get(ctx, "p1", storage.KeyCart)
			assert.ErrorIs(t, err, storage.ErrNotFound)

			require.NoError(t, store.Set(ctx, "p1", storage.KeyCart, []byte(`{"items":[]}`)))
			require.NoError(t, store.Set(ctx, "p1", storage.KeyCart, []byte(`{"items":[1]}`)))
			got, err := store.Get(ctx, "p1", storage.KeyCart)
			require.NoError(t, err)
			assert.JSONEq(t, `{"items":[1]}`, string(got))

			// profiles are isolated
			_, err = store.Get(ctx, "p2", storage.KeyCart)
			assert.ErrorIs(t, err, storage.ErrNotFound)

			require.NoError(t, store.Delete(ctx, "p1", storage.KeyCart))
			_, err = store.Get(ctx, "p1", storage.KeyCart)
			assert.ErrorIs(t, err, storage.ErrNotFound)

			// deleting a missing key is not an error
			assert.NoError(t, store.Delete(ctx, "p1", storage.KeyCart))
		})
	}
}

func TestGormStoreMissingKeyIsQuiet(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.New(log.New(&buf, "", 0), logger.Config{LogLevel: logger.Warn}),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	store := storage.NewGormStore(db)
	require.NoError(t, store.Migrate())

	for i := 0; i < 3; i++ {
		_, err := store.Get(ctx, "p1", storage.KeyLastOrder)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	}
	assert.Empty(t, buf.String())
}

func TestRedisStoreTTL(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	store := storage.NewRedisStore(client, time.Hour)

	require.NoError(t, store.Set(ctx, "p1", storage.KeyToken, []byte(`"abc"`)))
	assert.True(t, mr.Exists("storefront:p1:token"))

	mr.FastForward(2 * time.Hour)
	_, err := store.Get(ctx, "p1", storage.KeyToken)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSessionJSON(t *testing.T) {
	ctx := context.Background()
	sess := storage.NewSession(newGormStore(t), "profile-1")

	fav, ok, err := storage.Lookup[[]string](ctx, sess, storage.KeyFavorites)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, fav)

	require.NoError(t, sess.SetJSON(ctx, storage.KeyFavorites, []string{"1", "7"}))
	fav, ok, err = storage.Lookup[[]string](ctx, sess, storage.KeyFavorites)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"1", "7"}, fav)

	require.NoError(t, sess.Delete(ctx, storage.KeyFavorites, storage.KeyUser))
	_, ok, err = storage.Lookup[[]string](ctx, sess, storage.KeyFavorites)
	require.NoError(t, err)
	assert.False(t, ok)
}

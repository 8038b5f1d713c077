package localstore

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Record{}))
	return NewStore(db)
}

func TestStoreRoundTrip(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	// empty before first write
	payload, err := store.Get(ctx, "device-1", CollectionClients)
	require.NoError(t, err)
	assert.Empty(t, payload)

	require.NoError(t, store.Put(ctx, "device-1", CollectionClients, `[{"name":"Acme"}]`))
	payload, err = store.Get(ctx, "device-1", CollectionClients)
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"Acme"}]`, payload)

	// overwrite
	require.NoError(t, store.Put(ctx, "device-1", CollectionClients, `[]`))
	payload, err = store.Get(ctx, "device-1", CollectionClients)
	require.NoError(t, err)
	assert.Equal(t, `[]`, payload)
}

func TestStoreIsolatesDevicesAndCollections(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "device-1", CollectionCurrency, `{"code":"USD"}`))
	require.NoError(t, store.Put(ctx, "device-2", CollectionCurrency, `{"code":"EUR"}`))

	payload, err := store.Get(ctx, "device-1", CollectionCurrency)
	require.NoError(t, err)
	assert.Equal(t, `{"code":"USD"}`, payload)

	payload, err = store.Get(ctx, "device-1", CollectionInvoices)
	require.NoError(t, err)
	assert.Empty(t, payload)
}

func TestStoreRejectsUnknownCollection(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "device-1", "settings")
	assert.ErrorIs(t, err, ErrUnknownCollection)

	err = store.Put(ctx, "device-1", "settings", `{}`)
	assert.ErrorIs(t, err, ErrUnknownCollection)
}

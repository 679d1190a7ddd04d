package address_test

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/huum-shop/storefront-api/internal/address"
)

func newStore(t *testing.T) *address.Store {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return address.NewStore(client)
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	ctx := context.Background()
	form := address.Form{
		FullName:   "Maria da Silva",
		Email:      "maria@example.com",
		Phone:      "81999990000",
		CEP:        "54100060",
		Number:     "120",
		Complement: "Apto 301",
	}
	require.NoError(t, store.Save(ctx, form.CEP, form))

	got, err := store.Get(ctx, "54100060")
	require.NoError(t, err)
	require.Equal(t, form, got)
}

func TestGetUnknownZip(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	_, err := store.Get(context.Background(), "01001000")
	require.ErrorIs(t, err, address.ErrNotFound)
}

func TestSaveOverwrites(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	ctx := context.Background()
	form := address.Form{FullName: "Maria", CEP: "54100060", Number: "120"}
	require.NoError(t, store.Save(ctx, form.CEP, form))

	form.FullName = "Maria da Silva"
	require.NoError(t, store.Save(ctx, form.CEP, form))

	got, err := store.Get(ctx, form.CEP)
	require.NoError(t, err)
	require.Equal(t, "Maria da Silva", got.FullName)
}

func TestLastZipDefaultsEmpty(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	ctx := context.Background()

	zip, err := store.LastZip(ctx)
	require.NoError(t, err)
	require.Empty(t, zip)

	require.NoError(t, store.SetLastZip(ctx, "50030230"))
	zip, err = store.LastZip(ctx)
	require.NoError(t, err)
	require.Equal(t, "50030230", zip)
}

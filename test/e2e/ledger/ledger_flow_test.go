package ledger_test

import (
	"fmt"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/tabledger/pkg/ledgersdk"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// TestRegisterAndTrack walks a tenant from registration through its ledger.
func TestRegisterAndTrack(t *testing.T) {
	client := ledgersdk.NewSDKClient(setupLedgerContainer(t, relaxedLimits))
	admin := adminSession(t, client)

	created, err := admin.RegisterClient(t.Context(), ledgersdk.RegisterClientRequest{
		ID:                  "0b5e7a4c-2d8f-4c1b-9a3e-6f0d2c8b1e74",
		DataStore:           testDataStore(),
		AllowSelfSignedData: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.Secret)
	require.Len(t, created.DataStore.Entity.SigningKeys, 2)
	require.Equal(t, created.Signer.KeyID, created.DataStore.Policy.SigningKeys[1].Kid)

	_, err = admin.RegisterClient(t.Context(), ledgersdk.RegisterClientRequest{
		ID:        created.ID,
		DataStore: testDataStore(),
	})
	require.ErrorIs(t, err, ledgersdk.ErrAlreadyExists)

	tenant := client.Tenant(created.ID, created.Secret)
	huge := new(big.Int).Lsh(big.NewInt(1), 255)
	rate := decimal.RequireFromString("0.00000000000000000001")
	when := time.Date(2025, 1, 2, 3, 4, 5, 0, time.FixedZone("ACST", 9*3600+1800))

	tr, err := tenant.Track(t.Context(), ledgersdk.TrackTransferRequest{
		ChainID:   "eip155:1",
		Amount:    ledgersdk.AmountString(huge),
		Rates:     map[string]*decimal.Decimal{"fiat:USD": &rate, "fiat:AUD": nil},
		CreatedAt: &when,
	})
	require.NoError(t, err)

	got, ok := tr.AmountBig()
	require.True(t, ok)
	require.Equal(t, 0, got.Cmp(huge))
	require.True(t, tr.Rates["fiat:USD"].Equal(rate))
	require.Nil(t, tr.Rates["fiat:AUD"])
	require.True(t, tr.CreatedAt.Equal(when))

	list, err := tenant.ListTransfers(t.Context())
	require.NoError(t, err)
	require.Len(t, list.Transfers, 1)
	require.Equal(t, tr.ID, list.Transfers[0].ID)
}

// TestConcurrentTracks checks that parallel ingestion neither drops nor
// duplicates rows.
func TestConcurrentTracks(t *testing.T) {
	client := ledgersdk.NewSDKClient(setupLedgerContainer(t, relaxedLimits))

	created, err := adminSession(t, client).RegisterClient(t.Context(), ledgersdk.RegisterClientRequest{
		ID:        "high-volume",
		DataStore: testDataStore(),
	})
	require.NoError(t, err)
	tenant := client.Tenant(created.ID, created.Secret)

	const n = 200
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := tenant.Track(t.Context(), ledgersdk.TrackTransferRequest{
				ID:      fmt.Sprintf("hv-%04d", i),
				ChainID: "eip155:137",
				Amount:  fmt.Sprint(i),
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	list, err := tenant.ListTransfers(t.Context())
	require.NoError(t, err)
	require.Len(t, list.Transfers, n)

	seen := make(map[string]bool, n)
	for _, tr := range list.Transfers {
		require.False(t, seen[tr.ID], "transfer %s listed twice", tr.ID)
		seen[tr.ID] = true
	}
}

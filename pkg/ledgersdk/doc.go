/*
Package ledgersdk provides a client SDK for the tabledger service.

# Overview

The service has two kinds of caller and the SDK mirrors that split:

  - AdminSession: operator calls authenticated with a bearer JWT (register
    and inspect tenants)
  - TenantSession: tenant calls authenticated with the x-client-id and
    x-client-secret header pair (record and list transfers)

Both are created from an SDKClient, which also exposes the health checks:

	client := ledgersdk.NewSDKClient("https://ledger.example.com")

	health, err := client.GetLiveness(ctx)

	admin := client.Admin(token)
	created, err := admin.RegisterClient(ctx, ledgersdk.RegisterClientRequest{
		ID:        "2b0c7d1e-8a51-4a3f-9d0e-55d8a1f3c2aa",
		DataStore: dataStore,
	})

	tenant := client.Tenant(created.ID, created.Secret)
	transfer, err := tenant.Track(ctx, ledgersdk.TrackTransferRequest{
		ChainID: "eip155:1",
		Amount:  ledgersdk.AmountString(big.NewInt(1_000_000)),
	})

# Amounts

Amounts travel as base-10 integer strings so that values beyond the range of
float64 and int64 survive intact. Use AmountString to encode and
TransferResponse.AmountBig to decode. Rates are shopspring decimals, and a
nil rate is an explicit JSON null that the service stores and returns as is.

# Errors

Every non-2xx response becomes an *APIError. Compare against the predefined
errors with errors.Is, which matches on the error code:

	if errors.Is(err, ledgersdk.ErrAlreadyExists) {
		// the tenant id is taken
	}
*/
package ledgersdk

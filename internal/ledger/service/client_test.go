package service_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/tabledger/internal/ledger/service"
	"github.com/aussiebroadwan/tabledger/pkg/cryptox"
	"github.com/aussiebroadwan/tabledger/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newClientService(t *testing.T) *service.ClientService {
	return &service.ClientService{Store: newStore(t), Sealer: newSealer(t)}
}

func TestRegisterReturnsSecretOnce(t *testing.T) {
	svc := newClientService(t)

	reg, err := svc.Register(ctx, service.RegisterClientInput{
		ID:        "tenant-a",
		Secret:    strPtr("s1"),
		DataStore: dataStore(),
	})
	require.NoError(t, err)
	require.Equal(t, "tenant-a", reg.ID)
	require.Equal(t, "s1", reg.Secret)
	require.Equal(t, cryptox.AlgorithmEdDSA, reg.Signer.Algorithm)
	require.Equal(t, reg.Signer.KeyID, reg.Signer.PublicKey.Kid)
	require.NoError(t, reg.Signer.PublicKey.Validate())
	require.Len(t, reg.DataStore.Entity.SigningKeys, 1)

	// The stored row only has the hash and the sealed private key
	row, err := svc.Store.Clients().GetClientByID(ctx, "tenant-a")
	require.NoError(t, err)
	require.NotContains(t, row.SecretHash, "s1")
	require.True(t, strings.HasPrefix(row.SecretHash, "$argon2id$"))
	require.NoError(t, cryptox.VerifySecret("s1", row.SecretHash))

	pemKey, err := svc.Sealer.Open(row.Signer.PrivateKeyEncrypted, []byte("tenant-a"))
	require.NoError(t, err)
	signer, err := jwtx.NewSigner(row.Signer.Algorithm, row.Signer.KeyID, pemKey)
	require.NoError(t, err)
	require.Equal(t, reg.Signer.PublicKey, signer.PublicJWK())

	_, err = svc.Sealer.Open(row.Signer.PrivateKeyEncrypted, []byte("tenant-b"))
	require.Error(t, err)

	view, err := svc.GetClient(ctx, "tenant-a")
	require.NoError(t, err)
	require.Equal(t, reg.ClientView, view)
}

func TestRegisterGeneratesSecret(t *testing.T) {
	svc := newClientService(t)
	svc.SignerAlgorithm = cryptox.AlgorithmES256

	reg, err := svc.Register(ctx, service.RegisterClientInput{ID: "tenant-gen", DataStore: dataStore()})
	require.NoError(t, err)
	require.Len(t, reg.Secret, 43)
	require.Equal(t, "EC", reg.Signer.PublicKey.Kty)

	ok, err := svc.VerifySecret(ctx, "tenant-gen", reg.Secret)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRegisterSelfSignedDataAppendsSignerKey(t *testing.T) {
	svc := newClientService(t)

	reg, err := svc.Register(ctx, service.RegisterClientInput{
		ID:                  "tenant-self",
		DataStore:           dataStore(),
		AllowSelfSignedData: true,
	})
	require.NoError(t, err)

	for _, src := range [][]jwtx.JWK{reg.DataStore.Entity.SigningKeys, reg.DataStore.Policy.SigningKeys} {
		require.Len(t, src, 2)
		require.Equal(t, "tenant-key", src[0].Kid)
		require.Equal(t, reg.Signer.PublicKey, src[1])
	}
}

func TestRegisterTwiceSequentially(t *testing.T) {
	svc := newClientService(t)
	in := service.RegisterClientInput{ID: "A", Secret: strPtr("s1"), DataStore: dataStore()}

	_, err := svc.Register(ctx, in)
	require.NoError(t, err)

	in.Secret = strPtr("s2")
	_, err = svc.Register(ctx, in)
	require.ErrorIs(t, err, service.ErrAlreadyExists)

	// First registration is untouched
	ok, err := svc.VerifySecret(ctx, "A", "s1")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = svc.VerifySecret(ctx, "A", "s2")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRegisterConcurrentHasExactlyOneWinner(t *testing.T) {
	svc := newClientService(t)

	const n = 20
	var wins, dups atomic.Int64
	var wg sync.WaitGroup
	start := make(chan struct{})
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.Register(ctx, service.RegisterClientInput{ID: "contended", DataStore: dataStore()})
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, service.ErrAlreadyExists):
				dups.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	require.EqualValues(t, 1, wins.Load())
	require.EqualValues(t, n-1, dups.Load())

	count, err := svc.Store.Clients().CountClientsByID(ctx, "contended")
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestRegisterValidation(t *testing.T) {
	svc := newClientService(t)

	noKeys := dataStore()
	noKeys.Policy.SigningKeys = nil

	badLocation := dataStore()
	badLocation.Entity.Location = "not a url"

	cases := map[string]service.RegisterClientInput{
		"empty id":      {ID: "", DataStore: dataStore()},
		"spaced id":     {ID: "a b", DataStore: dataStore()},
		"long id":       {ID: strings.Repeat("x", 256), DataStore: dataStore()},
		"empty secret":  {ID: "a", Secret: strPtr(""), DataStore: dataStore()},
		"no policy key": {ID: "a", DataStore: noKeys},
		"bad location":  {ID: "a", DataStore: badLocation},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Register(ctx, in)
			require.ErrorIs(t, err, service.ErrInvalidRequest)
		})
	}

	count, err := svc.Store.Clients().CountClientsByID(ctx, "a")
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestVerifySecretUnknownTenantLooksLikeMismatch(t *testing.T) {
	svc := newClientService(t)
	_, err := svc.Register(ctx, service.RegisterClientInput{ID: "known", Secret: strPtr("right"), DataStore: dataStore()})
	require.NoError(t, err)

	wrong, errWrong := svc.VerifySecret(ctx, "known", "wrong")
	unknown, errUnknown := svc.VerifySecret(ctx, "unknown", "right")
	require.NoError(t, errWrong)
	require.NoError(t, errUnknown)
	require.False(t, wrong)
	require.False(t, unknown)
}

func TestVerifySecretRejectsOversizedSecret(t *testing.T) {
	svc := newClientService(t)
	limit := strings.Repeat("s", cryptox.MaxSecretLength)
	_, err := svc.Register(ctx, service.RegisterClientInput{ID: "known", Secret: &limit, DataStore: dataStore()})
	require.NoError(t, err)

	ok, err := svc.VerifySecret(ctx, "known", limit)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.VerifySecret(ctx, "known", limit+"s")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestGetClientNotFound(t *testing.T) {
	svc := newClientService(t)
	_, err := svc.GetClient(ctx, "nope")
	require.ErrorIs(t, err, service.ErrClientNotFound)
}

func TestStoreUnavailable(t *testing.T) {
	svc := newClientService(t)

	expired, cancel := context.WithDeadline(ctx, time.Now().Add(-time.Second))
	defer cancel()

	_, err := svc.Register(expired, service.RegisterClientInput{ID: "late", DataStore: dataStore()})
	require.ErrorIs(t, err, service.ErrStoreUnavailable)

	_, err = svc.VerifySecret(expired, "late", "x")
	require.ErrorIs(t, err, service.ErrStoreUnavailable)
}

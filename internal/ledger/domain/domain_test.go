package domain_test

import (
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"testing"

	"github.com/aussiebroadwan/tabledger/internal/ledger/domain"
	"github.com/aussiebroadwan/tabledger/pkg/jwtx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	max256 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

	valid := []string{"0", "-1", "1", strconv.FormatInt(math.MaxInt64, 10), max256.String(), "-" + max256.String()}
	for _, s := range valid {
		a, err := domain.ParseAmount(s)
		require.NoError(t, err, s)
		require.Equal(t, s, a.String())
	}

	require.Equal(t, "7", domain.MustParseAmount("+7").String())

	invalid := []string{"", " 1", "1.5", "1e3", "abc", "0x10", "NaN"}
	for _, s := range invalid {
		_, err := domain.ParseAmount(s)
		require.ErrorIs(t, err, domain.ErrInvalidAmount, s)
	}
}

func TestAmountJSON(t *testing.T) {
	var a domain.Amount
	require.NoError(t, json.Unmarshal([]byte(`"-12345678901234567890123456789"`), &a))
	require.Equal(t, "-12345678901234567890123456789", a.String())

	// Bare integer literal beyond float64 precision survives
	require.NoError(t, json.Unmarshal([]byte(`9007199254740993`), &a))
	require.Equal(t, "9007199254740993", a.String())

	out, err := json.Marshal(a)
	require.NoError(t, err)
	require.JSONEq(t, `"9007199254740993"`, string(out))

	require.Error(t, json.Unmarshal([]byte(`1.5`), &a))
	require.Error(t, json.Unmarshal([]byte(`"1e10"`), &a))

	var unset domain.Amount
	require.NoError(t, json.Unmarshal([]byte(`null`), &unset))
	require.False(t, unset.IsSet())
}

func TestAmountEqual(t *testing.T) {
	require.True(t, domain.NewAmount(0).Equal(domain.MustParseAmount("-0")))
	require.False(t, domain.NewAmount(1).Equal(domain.NewAmount(2)))
	require.False(t, domain.NewAmount(0).Equal(domain.Amount{}))
	require.True(t, domain.Amount{}.Equal(domain.Amount{}))

	b := big.NewInt(5)
	a := domain.AmountFromBig(b)
	b.SetInt64(6)
	require.Equal(t, "5", a.String())
}

func TestRatesRoundTrip(t *testing.T) {
	usd := decimal.RequireFromString("1.000000000000000000000000000001")
	eth := decimal.RequireFromString("-0.5")
	in := domain.Rates{
		"fiat:USD":   &usd,
		"crypto:ETH": &eth,
		"fiat:AUD":   nil,
	}

	s, err := domain.EncodeRates(in)
	require.NoError(t, err)

	out, err := domain.DecodeRates(s)
	require.NoError(t, err)
	require.True(t, in.Equal(out))

	v, ok := out["fiat:AUD"]
	require.True(t, ok, "null entry must survive")
	require.Nil(t, v)
	require.Equal(t, "1.000000000000000000000000000001", out["fiat:USD"].String())

	empty, err := domain.EncodeRates(nil)
	require.NoError(t, err)
	require.Equal(t, "{}", empty)

	_, err = domain.DecodeRates(`{"fiat:USD":"one"}`)
	require.Error(t, err)
}

func TestRatesKeepValueNotScale(t *testing.T) {
	scaled := decimal.RequireFromString("1.50")
	s, err := domain.EncodeRates(domain.Rates{"fiat:USD": &scaled})
	require.NoError(t, err)
	require.JSONEq(t, `{"fiat:USD":"1.5"}`, s)

	out, err := domain.DecodeRates(s)
	require.NoError(t, err)
	require.True(t, out["fiat:USD"].Equal(scaled))
}

func TestRatesValidate(t *testing.T) {
	require.NoError(t, domain.Rates{"fiat:USD": nil}.Validate())
	require.Error(t, domain.Rates{" ": nil}.Validate())
}

func testJWK() jwtx.JWK {
	return jwtx.JWK{Kty: "OKP", Crv: "Ed25519", Kid: "k", X: "11qYAYKxCrfVS_7TyWQHOg7hcvPapiMlrwIaaPcHURo"}
}

func TestDataStoreValidate(t *testing.T) {
	good := domain.DataSource{Type: "http", Location: "https://data.example.com/entities", SigningKeys: []jwtx.JWK{testJWK()}}
	require.NoError(t, domain.DataStore{Entity: good, Policy: good}.Validate())

	cases := map[string]domain.DataSource{
		"no type":     {Location: good.Location, SigningKeys: good.SigningKeys},
		"relative":    {Type: "http", Location: "/entities", SigningKeys: good.SigningKeys},
		"no keys":     {Type: "http", Location: good.Location},
		"invalid key": {Type: "http", Location: good.Location, SigningKeys: []jwtx.JWK{{Kty: "oct"}}},
	}
	for name, bad := range cases {
		t.Run(name, func(t *testing.T) {
			require.Error(t, domain.DataStore{Entity: good, Policy: bad}.Validate())
		})
	}
}

func TestWithSigningKeyDoesNotAlias(t *testing.T) {
	keys := make([]jwtx.JWK, 1, 4)
	keys[0] = testJWK()
	src := domain.DataSource{SigningKeys: keys}

	a := src.WithSigningKey(jwtx.JWK{Kid: "a"})
	b := src.WithSigningKey(jwtx.JWK{Kid: "b"})
	require.Equal(t, "a", a.SigningKeys[1].Kid)
	require.Equal(t, "b", b.SigningKeys[1].Kid)
	require.Len(t, src.SigningKeys, 1)
}

package ledgersdk

import (
	"math/big"
	"time"

	"github.com/aussiebroadwan/tabledger/pkg/jwtx"
	"github.com/shopspring/decimal"
)

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the JSON body of every error the service returns.
type ErrorResponse struct {
	// Error is the machine readable code (e.g. "already_exists")
	Error string `json:"error" example:"already_exists"`

	// Message is a human readable description
	Message string `json:"message" example:"Client already exist"`

	// Code repeats the HTTP status
	Code int `json:"code" example:"400"`
}

// ============================================================================
// Client Types
// ============================================================================

// DataSource locates one kind of tenant data and lists the keys that may
// sign it.
type DataSource struct {
	Type        string     `json:"type" example:"http"`
	Location    string     `json:"location" example:"https://data.example.com/entities"`
	SigningKeys []jwtx.JWK `json:"signingKeys"`
}

// DataStore pairs the entity and policy sources of a tenant.
type DataStore struct {
	Entity DataSource `json:"entity"`
	Policy DataSource `json:"policy"`
}

// RegisterClientRequest registers a tenant. The POST /v1/clients body.
type RegisterClientRequest struct {
	// ID is the caller chosen tenant id, usually UUID shaped
	ID string `json:"id" example:"2b0c7d1e-8a51-4a3f-9d0e-55d8a1f3c2aa"`

	// Secret is optional; the service generates one when omitted
	Secret *string `json:"secret,omitempty"`

	DataStore DataStore `json:"dataStore"`

	// AllowSelfSignedData adds the generated signer key to both key sets
	AllowSelfSignedData bool `json:"allowSelfSignedData,omitempty"`
}

// SignerResponse is the public half of a tenant's signer.
type SignerResponse struct {
	Algorithm string   `json:"algorithm" example:"EdDSA"`
	KeyID     string   `json:"keyId"`
	PublicKey jwtx.JWK `json:"publicKey"`
}

// ClientResponse describes a tenant. Secret is only ever set in the
// response to the registration that created it.
type ClientResponse struct {
	ID        string         `json:"id"`
	Secret    string         `json:"secret,omitempty"`
	Signer    SignerResponse `json:"signer"`
	DataStore DataStore      `json:"dataStore"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// ============================================================================
// Transfer Types
// ============================================================================

// TrackTransferRequest records one approved transfer. The POST /v1/transfers
// body. The service also accepts a bare JSON integer for amount.
type TrackTransferRequest struct {
	// ID is optional; a ULID is generated when omitted
	ID string `json:"id,omitempty"`

	// ClientID is optional and must match the authenticated tenant when set
	ClientID string `json:"clientId,omitempty"`

	ChainID string `json:"chainId" example:"eip155:1"`

	// Amount is a base-10 integer, possibly negative, of any size
	Amount string `json:"amount" example:"115792089237316195423570985008687907853269984665640564039457584007913129639935"`

	// Rates maps a currency pair to its rate; a nil entry is sent as null
	Rates map[string]*decimal.Decimal `json:"rates,omitempty" swaggertype:"object"`

	// CreatedAt is optional and defaults to the time the service records it
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// TransferResponse is a recorded transfer.
type TransferResponse struct {
	ID        string                      `json:"id"`
	ClientID  string                      `json:"clientId"`
	ChainID   string                      `json:"chainId"`
	Amount    string                      `json:"amount"`
	Rates     map[string]*decimal.Decimal `json:"rates" swaggertype:"object"`
	CreatedAt time.Time                   `json:"createdAt"`
}

// AmountBig parses Amount. ok is false when the server sent something that
// is not a base-10 integer.
func (t TransferResponse) AmountBig() (v *big.Int, ok bool) {
	return new(big.Int).SetString(t.Amount, 10)
}

// AmountString encodes an amount for TrackTransferRequest.
func AmountString(v *big.Int) string {
	if v == nil {
		return ""
	}
	return v.String()
}

// TransfersResponse lists a tenant's transfers, oldest first.
type TransfersResponse struct {
	Transfers []TransferResponse `json:"transfers"`
}

// TrackBatchRequest is the POST /v1/transfers/batch body.
type TrackBatchRequest struct {
	Transfers []TrackTransferRequest `json:"transfers"`
}

// BatchItemResult is the outcome of one batch item. Exactly one of
// Transfer and Error is set.
type BatchItemResult struct {
	Index    int               `json:"index"`
	Transfer *TransferResponse `json:"transfer,omitempty"`
	Error    *ErrorResponse    `json:"error,omitempty"`
}

// TrackBatchResponse holds one result per request item, in request order.
type TrackBatchResponse struct {
	Results []BatchItemResult `json:"results"`
}

// ============================================================================
// Health Check Types
// ============================================================================

// HealthResponse represents a health check response from /livez or /readyz.
type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Version string        `json:"version,omitempty" example:"v0.1.0"`
	Uptime  string        `json:"uptime,omitempty" example:"3h12m5s"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the dependencies /readyz looks at.
type HealthChecks struct {
	Store     string `json:"store" example:"ok"`
	AdminKeys string `json:"admin_keys" example:"ok"`
}

package ledgersdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the tabledger service. It makes the
// unauthenticated calls itself and hands out sessions for the rest.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new ledger service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Admin returns a session for operator calls signed with the given bearer
// token.
func (c *SDKClient) Admin(token string) *AdminSession {
	return &AdminSession{client: c, token: token}
}

// Tenant returns a session for a registered tenant.
func (c *SDKClient) Tenant(clientID, secret string) *TenantSession {
	return &TenantSession{client: c, clientID: clientID, secret: secret}
}

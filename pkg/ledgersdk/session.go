package ledgersdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Header names of the tenant credential pair.
const (
	HeaderClientID     = "x-client-id"
	HeaderClientSecret = "x-client-secret"
)

// AdminSession makes operator calls. The token is sent as is; minting and
// refreshing it is up to the caller.
type AdminSession struct {
	client *SDKClient
	token  string
}

// TenantSession makes calls on behalf of one tenant.
type TenantSession struct {
	client   *SDKClient
	clientID string
	secret   string
}

// ClientID returns the tenant this session acts for.
func (s *TenantSession) ClientID() string { return s.clientID }

func (s *AdminSession) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	headers := map[string]string{"Authorization": "Bearer " + s.token}
	if body != nil {
		headers["Content-Type"] = "application/json"
	}
	return s.client.doRequest(ctx, method, path, body, headers)
}

func (s *TenantSession) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	if s.clientID == "" || s.secret == "" {
		return nil, fmt.Errorf("ledgersdk: tenant session needs a client id and secret")
	}
	headers := map[string]string{
		HeaderClientID:     s.clientID,
		HeaderClientSecret: s.secret,
	}
	if body != nil {
		headers["Content-Type"] = "application/json"
	}
	return s.client.doRequest(ctx, method, path, body, headers)
}

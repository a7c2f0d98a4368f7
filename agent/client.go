// Package agent defines the collaborator surface for the credential-issuance
// session workflow. The orchestration itself (sequential REST calls, polling,
// timeouts) lives outside this SDK; this package only supplies the interface
// it implements, the dual-key gate it must pass before an encrypted-content
// exchange, and an instrumented HTTP client for implementations to use.
package agent

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/pilacorp/go-longform-did/did"
)

// SessionClient is implemented by the credential-issuance service client.
// Payloads are opaque to this SDK.
type SessionClient interface {
	// StartSession opens an issuance session for the identifier.
	StartSession(ctx context.Context, didString string) (sessionID string, err error)

	// IssueCredential submits an encrypted payload within a session and
	// returns the service response.
	IssueCredential(ctx context.Context, sessionID string, payload []byte) ([]byte, error)
}

// RequireDualKey verifies the identifier carries both keys needed for an
// encrypted-content exchange before a session is opened.
func RequireDualKey(didString string, opts ...did.ParseOption) error {
	pair, err := did.ExtractKeyPairForSensitiveOperations(didString, opts...)
	if err != nil {
		return err
	}
	if !pair.Complete {
		return fmt.Errorf("identifier is missing an authentication or key-agreement key")
	}
	return nil
}

// NewHTTPClient returns an HTTP client with request tracing for
// SessionClient implementations.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

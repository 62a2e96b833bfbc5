package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"murmur/internal/sns"

	"github.com/google/uuid"
)

// ErrorKind classifies transport failures.
type ErrorKind int

const (
	// KindNetwork means the server was unreachable or the request never
	// completed.
	KindNetwork ErrorKind = iota
	// KindRemote means the server answered with a non-2xx status.
	KindRemote
	// KindDecode means the response body was not JSON at all.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindRemote:
		return "remote"
	case KindDecode:
		return "decode"
	}
	return "unknown"
}

// TransportError is the failure taxonomy of the RPC transport. Status and
// Body are only set for KindRemote.
type TransportError struct {
	Kind      ErrorKind
	Status    int
	Body      []byte
	Procedure string
	Err       error
}

func (e *TransportError) Error() string {
	switch e.Kind {
	case KindRemote:
		return fmt.Sprintf("%s: remote error %d: %s", e.Procedure, e.Status, strings.TrimSpace(string(e.Body)))
	case KindDecode:
		return fmt.Sprintf("%s: decode error: %v", e.Procedure, e.Err)
	default:
		return fmt.Sprintf("%s: network error: %v", e.Procedure, e.Err)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Transport performs sns.v1 RPC calls. It is stateless apart from the shared
// HTTP client: no retry, no dedup, safe to share between synchronizers.
type Transport struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// TransportOption customizes a Transport.
type TransportOption func(*Transport)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) TransportOption {
	return func(t *Transport) { t.http = c }
}

// WithLogger replaces the structured logger.
func WithLogger(l *slog.Logger) TransportOption {
	return func(t *Transport) { t.logger = l }
}

// NewTransport creates a transport for the given base URL.
func NewTransport(baseURL string, opts ...TransportOption) *Transport {
	t := &Transport{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Call performs one RPC: POST {baseURL}/{procedure} with a JSON body. The
// decode is permissive: absent fields deserialize to zero values, shape
// validation is the caller's job.
func (t *Transport) Call(ctx context.Context, id Identity, procedure string, req, res any) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return &TransportError{Kind: KindDecode, Procedure: procedure, Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		t.baseURL+"/"+procedure, bytes.NewReader(payload))
	if err != nil {
		return &TransportError{Kind: KindNetwork, Procedure: procedure, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(sns.HeaderProtocolVersion, sns.ProtocolVersion)
	httpReq.Header.Set(sns.HeaderTenant, id.Tenant)
	httpReq.Header.Set(sns.HeaderUser, id.User)
	httpReq.Header.Set(sns.HeaderRequestID, uuid.NewString())

	httpResp, err := t.http.Do(httpReq)
	if err != nil {
		return &TransportError{Kind: KindNetwork, Procedure: procedure, Err: err}
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return &TransportError{Kind: KindNetwork, Procedure: procedure, Err: err}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return &TransportError{
			Kind:      KindRemote,
			Status:    httpResp.StatusCode,
			Body:      body,
			Procedure: procedure,
		}
	}

	if res == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, res); err != nil {
		return &TransportError{Kind: KindDecode, Procedure: procedure, Err: err}
	}
	return nil
}

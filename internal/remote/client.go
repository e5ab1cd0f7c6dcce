// Package remote adapts the dashboard to the remote tagged-record store
// and compute trigger.
package remote

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"SignalDeck/internal/domain/repository"
	"SignalDeck/internal/remote/wire"
	xhttp "SignalDeck/pkg/http"
)

const (
	scanPath   = "/v1/scan"
	invokePath = "/v1/invoke"

	// The trigger is acknowledged without waiting for completion.
	invocationFireAndForget = "fire-and-forget"
)

// Credentials is the pair of opaque secrets used to sign requests.
type Credentials struct {
	AccessKey string
	SecretKey string
}

// Client implements repository.RemoteStore over the HTTP wire protocol.
// It is constructed once per successful promotion to live mode and reused
// for the page lifetime; it holds no cache.
type Client struct {
	endpoint string
	creds    Credentials
	http     *xhttp.Client
}

// NewClient builds a store client. It fails with ErrUnavailable when the
// endpoint or either credential is absent, and with a construction error
// when the endpoint does not parse; the mode controller treats both as a
// demotion to demo, not as fatal.
func NewClient(endpoint string, creds Credentials, timeout time.Duration) (*Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint not configured: %w", ErrUnavailable)
	}
	if creds.AccessKey == "" || creds.SecretKey == "" {
		return nil, fmt.Errorf("credentials missing: %w", ErrUnavailable)
	}
	u, err := url.ParseRequestURI(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("endpoint scheme %q not supported", u.Scheme)
	}

	c := &Client{endpoint: endpoint, creds: creds}
	c.http = xhttp.NewClient(
		xhttp.WithTimeout(timeout),
		xhttp.WithRequestHook(c.sign),
	)
	return c, nil
}

type scanBody struct {
	Table  string `json:"table"`
	Limit  int    `json:"limit,omitempty"`
	Filter string `json:"filter,omitempty"`
}

type scanResponse struct {
	Items []wire.Record `json:"items"`
	Count int           `json:"count"`
}

// ScanTable fetches raw tagged records. Errors are returned as-is; the
// signal pipeline owns the fallback policy.
func (c *Client) ScanTable(ctx context.Context, req repository.ScanRequest) ([]wire.Record, error) {
	var out scanResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.endpoint + scanPath,
		Body: scanBody{
			Table:  req.Table,
			Limit:  req.Limit,
			Filter: req.Filter,
		},
	}, &out)
	if err != nil {
		return nil, opError("scan", err)
	}
	return out.Items, nil
}

type invokeBody struct {
	FunctionName   string `json:"function_name"`
	InvocationMode string `json:"invocation_mode"`
	Payload        string `json:"payload"`
}

// InvokeTrigger fires the remote compute job and returns its opaque
// acknowledgement.
func (c *Client) InvokeTrigger(ctx context.Context, req repository.TriggerRequest) (repository.Ack, error) {
	payload, err := json.Marshal(req.Payload)
	if err != nil {
		return repository.Ack{}, opError("invoke", err)
	}

	var ack repository.Ack
	err = c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.endpoint + invokePath,
		Body: invokeBody{
			FunctionName:   req.FunctionName,
			InvocationMode: invocationFireAndForget,
			Payload:        string(payload),
		},
	}, &ack)
	if err != nil {
		return repository.Ack{}, opError("invoke", err)
	}
	return ack, nil
}

func (c *Client) sign(req *http.Request, body []byte) {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	mac := hmac.New(sha256.New, []byte(c.creds.SecretKey))
	mac.Write([]byte(ts))
	mac.Write(body)

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Access-Key", c.creds.AccessKey)
	req.Header.Set("X-Request-Time", ts)
	req.Header.Set("X-Signature", hex.EncodeToString(mac.Sum(nil)))
}

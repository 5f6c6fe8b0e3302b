package tron

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// DefaultTimeout bounds each HTTP request to the node or event server.
const DefaultTimeout = 10 * time.Second

const apiKeyHeader = "TRON-PRO-API-KEY"

// Client talks to a TRON full node and, optionally, an event server over
// their JSON HTTP APIs. It implements Provider.
type Client struct {
	node    string
	events  string
	apiKey  string
	timeout time.Duration
	log     *zap.Logger

	http      *resty.Client
	eventHTTP *resty.Client

	defaultAddress Address
	defaultKey     string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithEventServer sets the event server base URL, enabling the watch path.
func WithEventServer(url string) ClientOption {
	return func(c *Client) {
		c.events = strings.TrimRight(url, "/")
	}
}

// WithAPIKey attaches the TronGrid API key header to every request.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(log *zap.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// WithDefaultPrivateKey sets the signing key used when invocation options
// carry none. The key's address becomes the default sender.
func WithDefaultPrivateKey(hexKey string) ClientOption {
	return func(c *Client) {
		c.defaultKey = hexKey
	}
}

// WithDefaultAddress sets the default sender for the query path without
// configuring a signing key.
func WithDefaultAddress(addr Address) ClientOption {
	return func(c *Client) {
		c.defaultAddress = addr
	}
}

// NewClient builds a client for the node at nodeURL.
func NewClient(nodeURL string, opts ...ClientOption) (*Client, error) {
	c := &Client{
		node:    strings.TrimRight(nodeURL, "/"),
		timeout: DefaultTimeout,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.node == "" {
		return nil, errors.New("tron: node URL is required")
	}
	if c.defaultKey != "" {
		acct, err := NewAccount(c.defaultKey)
		if err != nil {
			return nil, err
		}
		if c.defaultAddress.IsZero() {
			c.defaultAddress = acct.Address()
		}
	}

	c.http = resty.New().SetBaseURL(c.node).SetTimeout(c.timeout)
	if c.apiKey != "" {
		c.http.SetHeader(apiKeyHeader, c.apiKey)
	}
	if c.events != "" {
		c.eventHTTP = resty.New().SetBaseURL(c.events).SetTimeout(c.timeout)
		if c.apiKey != "" {
			c.eventHTTP.SetHeader(apiKeyHeader, c.apiKey)
		}
	}
	return c, nil
}

// DefaultAddress returns the configured default sender.
func (c *Client) DefaultAddress() Address {
	return c.defaultAddress
}

// DefaultPrivateKey returns the configured default signing key.
func (c *Client) DefaultPrivateKey() string {
	return c.defaultKey
}

// HasEventServer reports whether an event server is configured.
func (c *Client) HasEventServer() bool {
	return c.eventHTTP != nil
}

// post sends one JSON request to the node and decodes the body into out.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	resp, err := c.http.R().SetContext(ctx).SetBody(body).SetResult(out).Post(path)
	if err != nil {
		return &TransportError{Endpoint: path, Err: err}
	}
	c.log.Debug("node request",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode()),
	)
	if resp.IsError() {
		return &TransportError{Endpoint: path, Status: resp.StatusCode(), Body: resp.Body()}
	}
	return nil
}

// TriggerConstantContract executes a constant contract call on the node.
func (c *Client) TriggerConstantContract(ctx context.Context, req *TriggerRequest) (*TriggerResponse, error) {
	var out TriggerResponse
	if err := c.post(ctx, "/wallet/triggerconstantcontract", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TriggerSmartContract builds an unsigned state-changing transaction.
func (c *Client) TriggerSmartContract(ctx context.Context, req *TriggerRequest) (*TriggerResponse, error) {
	var out TriggerResponse
	if err := c.post(ctx, "/wallet/triggersmartcontract", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BroadcastTransaction submits a signed transaction to the network.
func (c *Client) BroadcastTransaction(ctx context.Context, tx *Transaction) (*BroadcastResult, error) {
	var out BroadcastResult
	if err := c.post(ctx, "/wallet/broadcasttransaction", tx, &out); err != nil {
		return nil, err
	}
	c.log.Debug("broadcast transaction",
		zap.String("txid", tx.TxID),
		zap.Bool("result", out.Result),
	)
	return &out, nil
}

// TransactionInfo fetches the receipt for a transaction id. An unconfirmed
// transaction yields a receipt whose Empty method reports true.
func (c *Client) TransactionInfo(ctx context.Context, txID string) (*TransactionInfo, error) {
	var out TransactionInfo
	body := map[string]string{"value": txID}
	if err := c.post(ctx, "/wallet/gettransactioninfobyid", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetContract fetches the on-chain record of a deployed contract.
func (c *Client) GetContract(ctx context.Context, addr Address) (*ContractInfo, error) {
	var out ContractInfo
	body := map[string]string{"value": addr.Hex()}
	if err := c.post(ctx, "/wallet/getcontract", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type eventsResponse struct {
	Data    []EventRecord `json:"data"`
	Success bool          `json:"success"`
	Error   string        `json:"error,omitempty"`
}

// ContractEvents fetches the currently available events for one contract
// and event name from the event server.
func (c *Client) ContractEvents(ctx context.Context, contract Address, eventName string) ([]EventRecord, error) {
	if c.eventHTTP == nil {
		return nil, ErrNoEventServer
	}
	endpoint := "/v1/contracts/{address}/events"
	var out eventsResponse
	resp, err := c.eventHTTP.R().
		SetContext(ctx).
		SetPathParam("address", contract.String()).
		SetQueryParams(map[string]string{
			"event_name": eventName,
			"order_by":   "block_timestamp,desc",
			"limit":      "200",
		}).
		SetResult(&out).
		Get(endpoint)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	if resp.IsError() {
		return nil, &TransportError{Endpoint: endpoint, Status: resp.StatusCode(), Body: resp.Body()}
	}
	if !out.Success && out.Error != "" {
		c.log.Warn("event server error",
			zap.String("contract", contract.String()),
			zap.String("event", eventName),
			zap.String("error", out.Error),
		)
		return nil, &TransportError{Endpoint: endpoint, Status: resp.StatusCode(), Body: []byte(out.Error)}
	}
	c.log.Debug("fetched events",
		zap.String("contract", contract.String()),
		zap.String("event", eventName),
		zap.Int("count", len(out.Data)),
	)
	return out.Data, nil
}

var _ Provider = (*Client)(nil)

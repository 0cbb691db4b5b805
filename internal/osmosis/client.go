// Package osmosis owns the connection to the Osmosis RPC endpoint: address
// validation, paginated transaction history fetches, and single-transaction
// detail lookups.
package osmosis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kislikjeka/osmotax/internal/classify"
	"github.com/kislikjeka/osmotax/pkg/logger"
)

const (
	defaultBaseURL  = "https://rpc.osmosis.zone"
	explorerBaseURL = "https://www.mintscan.io/osmosis/txs/"
	requestTimeout  = 30 * time.Second
	defaultPageSize = 100
)

// connection is the live handle established by Connect. Holding it as an
// explicit value (rather than a nullable flag) keeps the connected/
// disconnected states distinct.
type connection struct {
	network     string
	connectedAt time.Time
}

// Client talks to the Osmosis RPC endpoint. A Client holds a single stateful
// connection handle; fetches for different addresses on the same instance
// must be serialized by the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
	conn       *connection
}

// NewClient creates a client for the given RPC base URL. An empty baseURL
// falls back to the public Osmosis RPC endpoint.
func NewClient(baseURL string, log *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		logger: log.WithField("component", "osmosis"),
	}
}

// Connect establishes the RPC connection by probing the node's status
// endpoint. Calling Connect on an already-connected client is a no-op and
// must not reconnect.
func (c *Client) Connect(ctx context.Context) error {
	if c.conn != nil {
		return nil
	}

	body, err := c.doRequest(ctx, c.baseURL+"/status", nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.baseURL, err)
	}

	var status statusResponse
	if err := json.Unmarshal(body, &status); err != nil {
		return fmt.Errorf("failed to decode node status: %w", err)
	}

	c.conn = &connection{
		network:     status.NodeInfo.Network,
		connectedAt: time.Now(),
	}
	c.logger.Info("connected to osmosis rpc", "url", c.baseURL, "network", c.conn.network)
	return nil
}

// Connected reports whether the client holds a live connection handle.
func (c *Client) Connected() bool {
	return c.conn != nil
}

// Disconnect drops the connection handle. Safe to call repeatedly or on a
// client that was never connected.
func (c *Client) Disconnect() {
	if c.conn != nil {
		c.logger.Debug("disconnected from osmosis rpc")
	}
	c.conn = nil
}

// FetchTransactions pages through the search endpoint and returns the
// normalized transaction history for an address.
//
// Connection and address preconditions fail fast. A page request failure
// mid-pagination does NOT: it halts pagination and the accumulated partial
// results are returned as success, flagged via FetchResult.Incomplete.
func (c *Client) FetchTransactions(ctx context.Context, address string, opts FetchOptions) (*FetchResult, error) {
	if c.conn == nil {
		return nil, ErrNotConnected
	}
	if !ValidateAddress(address) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	query := fmt.Sprintf("message.sender='%s' OR transfer.recipient='%s'", address, address)
	fetchStart := time.Now()

	result := &FetchResult{Transactions: []Transaction{}}
	for page := 1; ; page++ {
		records, err := c.searchPage(ctx, query, page, pageSize)
		if err != nil {
			// Deliberate asymmetry with the precondition checks above: a
			// failed page terminates pagination with partial results.
			c.logger.Warn("transaction page fetch failed, returning partial history",
				"address", address, "page", page, "error", err)
			result.Incomplete = true
			result.Reason = err.Error()
			return result, nil
		}

		for _, rec := range records {
			tx := c.normalize(rec, address)
			if !withinRange(tx.Timestamp, opts.StartDate, opts.EndDate) {
				continue
			}
			result.Transactions = append(result.Transactions, tx)
			if opts.Limit > 0 && len(result.Transactions) >= opts.Limit {
				c.logger.Info("transaction fetch reached limit",
					"address", address, "count", len(result.Transactions))
				return result, nil
			}
		}

		// A short page means the search has no further pages
		if len(records) < pageSize {
			break
		}
	}

	c.logger.Info("transactions fetched",
		"address", address,
		"count", len(result.Transactions),
		"duration_ms", time.Since(fetchStart).Milliseconds())
	return result, nil
}

// GetTransactionDetails resolves a single transaction by hash, including the
// raw gas and log fields the search endpoint omits.
func (c *Client) GetTransactionDetails(ctx context.Context, hash string) (*TransactionDetail, error) {
	if c.conn == nil {
		return nil, ErrNotConnected
	}

	params := url.Values{}
	params.Set("hash", hash)

	body, err := c.doRequest(ctx, c.baseURL+"/tx", params)
	if err != nil {
		if reqErr, ok := err.(*requestError); ok && reqErr.statusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrTxNotFound, hash)
		}
		return nil, fmt.Errorf("failed to fetch transaction %s: %w", hash, err)
	}

	var rec TxRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode transaction %s: %w", hash, err)
	}
	if rec.Hash == "" {
		return nil, fmt.Errorf("%w: %s", ErrTxNotFound, hash)
	}

	return &TransactionDetail{
		Transaction: c.normalize(rec, ""),
		BlockHeight: parseInt64(rec.Height),
		GasUsed:     parseInt64(rec.GasUsed),
		GasWanted:   parseInt64(rec.GasWanted),
		RawLog:      rec.RawLog,
		Messages:    rec.Tx.Body.Messages,
	}, nil
}

// ExplorerURL returns the block explorer page for a transaction hash. Pure
// string template, no network call.
func (c *Client) ExplorerURL(hash string) string {
	return explorerBaseURL + hash
}

// searchPage fetches one page of raw search records.
func (c *Client) searchPage(ctx context.Context, query string, page, pageSize int) ([]TxRecord, error) {
	params := url.Values{}
	params.Set("query", fmt.Sprintf("%q", query))
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(pageSize))

	body, err := c.doRequest(ctx, c.baseURL+"/tx_search", params)
	if err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return resp.Txs, nil
}

// normalize maps one raw record into a Transaction via the classifier.
func (c *Client) normalize(rec TxRecord, address string) Transaction {
	parsed := classify.ParseMessages(rec.Tx.Body.Messages, address)
	return Transaction{
		Hash:      rec.Hash,
		Timestamp: timestampForHeight(parseInt64(rec.Height)),
		Type:      parsed.Type,
		Status:    statusFromCode(rec.Code),
		Amounts:   parsed.Amounts,
		Fee:       classify.ParseFee(rec.Tx.AuthInfo.Fee),
		Memo:      rec.Tx.Body.Memo,
	}
}

// withinRange applies the optional date filters to one record.
func withinRange(ts time.Time, start, end *time.Time) bool {
	if start != nil && ts.Before(*start) {
		return false
	}
	if end != nil && ts.After(*end) {
		return false
	}
	return true
}

// requestError carries the HTTP status of a failed request so callers can
// distinguish not-found from transport failures.
type requestError struct {
	statusCode int
	body       string
}

func (e *requestError) Error() string {
	return fmt.Sprintf("rpc error: status %d, body: %s", e.statusCode, e.body)
}

// doRequest performs a GET against the RPC endpoint and returns the body.
func (c *Client) doRequest(ctx context.Context, reqURL string, params url.Values) ([]byte, error) {
	if len(params) > 0 {
		reqURL = reqURL + "?" + params.Encode()
	}

	c.logger.Debug("rpc request", "url", reqURL)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &requestError{statusCode: resp.StatusCode, body: string(body)}
	}

	c.logger.Debug("rpc response", "status_code", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())
	return body, nil
}

package osmosis_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kislikjeka/osmotax/internal/classify"
	"github.com/kislikjeka/osmotax/internal/osmosis"
	"github.com/kislikjeka/osmotax/pkg/logger"
)

const testAddr = "osmo1abcdefghijklmnopqrstuvwxyz0123456789xy"

func testLogger() *logger.Logger {
	return logger.New("development", io.Discard)
}

func writeStatus(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"node_info": {"network": "osmosis-1"}}`))
}

// sendRecord builds a raw MsgSend record with the given hash and height.
func sendRecord(hash string, height int64, code int) osmosis.TxRecord {
	msg := json.RawMessage(`{
		"@type": "/cosmos.bank.v1beta1.MsgSend",
		"amount": [{"denom": "uosmo", "amount": "5000000"}]
	}`)
	return osmosis.TxRecord{
		Hash:   hash,
		Height: strconv.FormatInt(height, 10),
		Code:   code,
		Tx: osmosis.RawTx{
			Body: osmosis.TxBody{Messages: []json.RawMessage{msg}},
			AuthInfo: osmosis.AuthInfo{
				Fee: &classify.Fee{Amount: []classify.Coin{{Denom: "uosmo", Amount: "5000"}}},
			},
		},
	}
}

// newConnectedClient spins up a client already connected to the test server.
func newConnectedClient(t *testing.T, serverURL string) *osmosis.Client {
	t.Helper()
	client := osmosis.NewClient(serverURL, testLogger())
	require.NoError(t, client.Connect(context.Background()))
	return client
}

func TestClient_Connect_Idempotent(t *testing.T) {
	statusCalls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/status" {
			statusCalls++
			writeStatus(w)
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := osmosis.NewClient(server.URL, testLogger())
	require.NoError(t, client.Connect(context.Background()))
	require.NoError(t, client.Connect(context.Background()))
	require.NoError(t, client.Connect(context.Background()))

	// A second Connect on a live client must not reconnect
	assert.Equal(t, 1, statusCalls)
	assert.True(t, client.Connected())
}

func TestClient_Connect_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := osmosis.NewClient(server.URL, testLogger())
	err := client.Connect(context.Background())
	assert.Error(t, err)
	assert.False(t, client.Connected())
}

func TestClient_Disconnect_Idempotent(t *testing.T) {
	client := osmosis.NewClient("http://localhost:1", testLogger())
	// Never connected: Disconnect must still be safe
	client.Disconnect()
	client.Disconnect()
	assert.False(t, client.Connected())
}

func TestClient_FetchTransactions_NotConnected(t *testing.T) {
	client := osmosis.NewClient("http://localhost:1", testLogger())
	_, err := client.FetchTransactions(context.Background(), testAddr, osmosis.FetchOptions{})
	assert.ErrorIs(t, err, osmosis.ErrNotConnected)
}

func TestClient_FetchTransactions_InvalidAddress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w)
	}))
	defer server.Close()

	client := newConnectedClient(t, server.URL)
	_, err := client.FetchTransactions(context.Background(), "cosmos1notanosmoaddress", osmosis.FetchOptions{})
	assert.ErrorIs(t, err, osmosis.ErrInvalidAddress)
	assert.Contains(t, err.Error(), "cosmos1notanosmoaddress")
}

func TestClient_FetchTransactions_Pagination(t *testing.T) {
	// Two full pages of 2, then a short page of 1
	pages := [][]osmosis.TxRecord{
		{sendRecord("AAA", 100, 0), sendRecord("BBB", 200, 0)},
		{sendRecord("CCC", 300, 0), sendRecord("DDD", 400, 0)},
		{sendRecord("EEE", 500, 0)},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/status" {
			writeStatus(w)
			return
		}
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		assert.Equal(t, "2", r.URL.Query().Get("per_page"))
		require.LessOrEqual(t, page, len(pages))
		json.NewEncoder(w).Encode(osmosis.SearchResponse{Txs: pages[page-1]})
	}))
	defer server.Close()

	client := newConnectedClient(t, server.URL)
	result, err := client.FetchTransactions(context.Background(), testAddr, osmosis.FetchOptions{PageSize: 2})
	require.NoError(t, err)

	assert.False(t, result.Incomplete)
	require.Len(t, result.Transactions, 5)
	hashes := make([]string, 0, 5)
	for _, tx := range result.Transactions {
		hashes = append(hashes, tx.Hash)
	}
	// Concatenation of all pages, in the order received, no duplicates
	assert.Equal(t, []string{"AAA", "BBB", "CCC", "DDD", "EEE"}, hashes)
}

func TestClient_FetchTransactions_QueryFiltersSenderOrRecipient(t *testing.T) {
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/status" {
			writeStatus(w)
			return
		}
		query = r.URL.Query().Get("query")
		json.NewEncoder(w).Encode(osmosis.SearchResponse{})
	}))
	defer server.Close()

	client := newConnectedClient(t, server.URL)
	_, err := client.FetchTransactions(context.Background(), testAddr, osmosis.FetchOptions{})
	require.NoError(t, err)

	assert.Contains(t, query, "message.sender='"+testAddr+"'")
	assert.Contains(t, query, "transfer.recipient='"+testAddr+"'")
}

func TestClient_FetchTransactions_MidPaginationFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/status" {
			writeStatus(w)
			return
		}
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page == 1 {
			json.NewEncoder(w).Encode(osmosis.SearchResponse{
				Txs: []osmosis.TxRecord{sendRecord("AAA", 100, 0), sendRecord("BBB", 200, 0)},
			})
			return
		}
		http.Error(w, "node overloaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newConnectedClient(t, server.URL)
	result, err := client.FetchTransactions(context.Background(), testAddr, osmosis.FetchOptions{PageSize: 2})

	// A failed page is swallowed: partial results, no error
	require.NoError(t, err)
	assert.True(t, result.Incomplete)
	assert.NotEmpty(t, result.Reason)
	require.Len(t, result.Transactions, 2)
	assert.Equal(t, "AAA", result.Transactions[0].Hash)
}

func TestClient_FetchTransactions_NormalizesRecords(t *testing.T) {
	rec := sendRecord("AAA", 1000, 0)
	rec.Tx.Body.Memo = "rent payment"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/status" {
			writeStatus(w)
			return
		}
		json.NewEncoder(w).Encode(osmosis.SearchResponse{Txs: []osmosis.TxRecord{rec}})
	}))
	defer server.Close()

	client := newConnectedClient(t, server.URL)
	result, err := client.FetchTransactions(context.Background(), testAddr, osmosis.FetchOptions{})
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)

	tx := result.Transactions[0]
	assert.Equal(t, classify.TxTypeTransfer, tx.Type)
	assert.Equal(t, osmosis.StatusSuccess, tx.Status)
	assert.Equal(t, "rent payment", tx.Memo)
	assert.Equal(t, "0.005", tx.Fee.Value)
	assert.Equal(t, "OSMO", tx.Fee.Symbol)
	require.Len(t, tx.Amounts, 1)
	assert.Equal(t, "5", tx.Amounts[0].Value)

	// Height 1000 at a 6s interval from genesis
	expected := time.Date(2021, time.June, 18, 17, 0, 0, 0, time.UTC).Add(1000 * 6 * time.Second)
	assert.Equal(t, expected, tx.Timestamp)
}

func TestClient_FetchTransactions_FailedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/status" {
			writeStatus(w)
			return
		}
		json.NewEncoder(w).Encode(osmosis.SearchResponse{Txs: []osmosis.TxRecord{sendRecord("AAA", 100, 5)}})
	}))
	defer server.Close()

	client := newConnectedClient(t, server.URL)
	result, err := client.FetchTransactions(context.Background(), testAddr, osmosis.FetchOptions{})
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, osmosis.StatusFailed, result.Transactions[0].Status)
}

func TestClient_FetchTransactions_MissingFeeDefaultsToZero(t *testing.T) {
	rec := sendRecord("AAA", 100, 0)
	rec.Tx.AuthInfo.Fee = nil
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/status" {
			writeStatus(w)
			return
		}
		json.NewEncoder(w).Encode(osmosis.SearchResponse{Txs: []osmosis.TxRecord{rec}})
	}))
	defer server.Close()

	client := newConnectedClient(t, server.URL)
	result, err := client.FetchTransactions(context.Background(), testAddr, osmosis.FetchOptions{})
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "0", result.Transactions[0].Fee.Value)
	assert.Equal(t, "uosmo", result.Transactions[0].Fee.Denom)
}

func TestClient_FetchTransactions_DateFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/status" {
			writeStatus(w)
			return
		}
		json.NewEncoder(w).Encode(osmosis.SearchResponse{Txs: []osmosis.TxRecord{
			sendRecord("OLD", 100, 0),
			sendRecord("MID", 100000, 0),
			sendRecord("NEW", 10000000, 0),
		}})
	}))
	defer server.Close()

	client := newConnectedClient(t, server.URL)

	// Window around height 100000 only
	start := time.Date(2021, time.June, 19, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, time.July, 1, 0, 0, 0, 0, time.UTC)
	result, err := client.FetchTransactions(context.Background(), testAddr, osmosis.FetchOptions{
		StartDate: &start,
		EndDate:   &end,
	})
	require.NoError(t, err)

	// Out-of-range records are excluded per record, the page is not truncated
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "MID", result.Transactions[0].Hash)
	assert.False(t, result.Incomplete)
}

func TestClient_FetchTransactions_OverallLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/status" {
			writeStatus(w)
			return
		}
		// Always a full page: without the cap pagination would not stop
		json.NewEncoder(w).Encode(osmosis.SearchResponse{Txs: []osmosis.TxRecord{
			sendRecord("AAA", 100, 0),
			sendRecord("BBB", 200, 0),
		}})
	}))
	defer server.Close()

	client := newConnectedClient(t, server.URL)
	result, err := client.FetchTransactions(context.Background(), testAddr, osmosis.FetchOptions{
		PageSize: 2,
		Limit:    3,
	})
	require.NoError(t, err)
	assert.Len(t, result.Transactions, 3)
}

func TestClient_GetTransactionDetails(t *testing.T) {
	rec := sendRecord("ABC123", 5000, 0)
	rec.GasUsed = "85000"
	rec.GasWanted = "120000"
	rec.RawLog = `[{"events": []}]`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/status":
			writeStatus(w)
		case "/tx":
			assert.Equal(t, "ABC123", r.URL.Query().Get("hash"))
			json.NewEncoder(w).Encode(rec)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := newConnectedClient(t, server.URL)
	detail, err := client.GetTransactionDetails(context.Background(), "ABC123")
	require.NoError(t, err)

	assert.Equal(t, "ABC123", detail.Hash)
	assert.Equal(t, int64(5000), detail.BlockHeight)
	assert.Equal(t, int64(85000), detail.GasUsed)
	assert.Equal(t, int64(120000), detail.GasWanted)
	assert.Equal(t, `[{"events": []}]`, detail.RawLog)
	assert.Equal(t, classify.TxTypeTransfer, detail.Type)
	require.Len(t, detail.Messages, 1)
}

func TestClient_GetTransactionDetails_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/status" {
			writeStatus(w)
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := newConnectedClient(t, server.URL)
	_, err := client.GetTransactionDetails(context.Background(), "MISSING")
	assert.ErrorIs(t, err, osmosis.ErrTxNotFound)
	assert.Contains(t, err.Error(), "MISSING")
}

func TestClient_GetTransactionDetails_NotConnected(t *testing.T) {
	client := osmosis.NewClient("http://localhost:1", testLogger())
	_, err := client.GetTransactionDetails(context.Background(), "ABC")
	assert.ErrorIs(t, err, osmosis.ErrNotConnected)
}

func TestClient_ExplorerURL(t *testing.T) {
	client := osmosis.NewClient("http://localhost:1", testLogger())
	url := client.ExplorerURL("ABC123")
	assert.Equal(t, "https://www.mintscan.io/osmosis/txs/ABC123", url)
}

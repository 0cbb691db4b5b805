package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kislikjeka/osmotax/internal/export"
	"github.com/kislikjeka/osmotax/internal/osmosis"
)

// LedgerServiceInterface defines the interface for ledger history operations
type LedgerServiceInterface interface {
	FetchTransactions(ctx context.Context, address string, opts osmosis.FetchOptions) (*osmosis.FetchResult, error)
	GetTransactionDetails(ctx context.Context, hash string) (*osmosis.TransactionDetail, error)
	ExplorerURL(hash string) string
}

// TransactionHandler handles transaction history HTTP requests
type TransactionHandler struct {
	ledger   LedgerServiceInterface
	pageSize int
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(ledger LedgerServiceInterface, pageSize int) *TransactionHandler {
	return &TransactionHandler{
		ledger:   ledger,
		pageSize: pageSize,
	}
}

// ValidateAddressRequest represents the address validation request
type ValidateAddressRequest struct {
	Address string `json:"address"`
}

// ValidateAddressResponse represents the address validation response
type ValidateAddressResponse struct {
	Address string `json:"address"`
	Valid   bool   `json:"valid"`
}

// TransactionsResponse represents the transaction history response
type TransactionsResponse struct {
	Address      string                `json:"address"`
	Transactions []osmosis.Transaction `json:"transactions"`
	Count        int                   `json:"count"`
	Incomplete   bool                  `json:"incomplete"`
	Reason       string                `json:"reason,omitempty"`
}

// TransactionDetailResponse wraps a detail lookup with its explorer link
type TransactionDetailResponse struct {
	*osmosis.TransactionDetail
	ExplorerURL string `json:"explorer_url"`
}

// ValidateAddress handles POST /addresses/validate
func (h *TransactionHandler) ValidateAddress(w http.ResponseWriter, r *http.Request) {
	var req ValidateAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	respondWithJSON(w, http.StatusOK, ValidateAddressResponse{
		Address: req.Address,
		Valid:   osmosis.ValidateAddress(req.Address),
	})
}

// GetTransactions handles GET /transactions
func (h *TransactionHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		respondWithError(w, http.StatusBadRequest, "address query parameter is required")
		return
	}
	if !osmosis.ValidateAddress(address) {
		respondWithError(w, http.StatusBadRequest, "invalid osmosis address format")
		return
	}

	opts, err := h.fetchOptions(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.ledger.FetchTransactions(r.Context(), address, opts)
	if err != nil {
		respondFetchError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, TransactionsResponse{
		Address:      address,
		Transactions: result.Transactions,
		Count:        len(result.Transactions),
		Incomplete:   result.Incomplete,
		Reason:       result.Reason,
	})
}

// GetTransaction handles GET /transactions/{hash}
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "hash")

	detail, err := h.ledger.GetTransactionDetails(r.Context(), hash)
	if err != nil {
		if errors.Is(err, osmosis.ErrTxNotFound) {
			respondWithError(w, http.StatusNotFound, "transaction not found")
			return
		}
		respondFetchError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, TransactionDetailResponse{
		TransactionDetail: detail,
		ExplorerURL:       h.ledger.ExplorerURL(hash),
	})
}

// ExportTransactions handles GET /transactions/export
// Streams the history as a CSV attachment
func (h *TransactionHandler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		respondWithError(w, http.StatusBadRequest, "address query parameter is required")
		return
	}
	if !osmosis.ValidateAddress(address) {
		respondWithError(w, http.StatusBadRequest, "invalid osmosis address format")
		return
	}

	opts, err := h.fetchOptions(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.ledger.FetchTransactions(r.Context(), address, opts)
	if err != nil {
		respondFetchError(w, err)
		return
	}

	doc, err := export.ExportCSV(result.Transactions)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("failed to build report: %v", err))
		return
	}

	filename := export.Filename(address, time.Now())
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if result.Incomplete {
		w.Header().Set("X-Incomplete-History", "true")
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc))
}

// fetchOptions builds FetchOptions from query parameters
func (h *TransactionHandler) fetchOptions(r *http.Request) (osmosis.FetchOptions, error) {
	opts := osmosis.FetchOptions{PageSize: h.pageSize}

	if v := r.URL.Query().Get("page_size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size <= 0 {
			return opts, fmt.Errorf("invalid page_size: %s", v)
		}
		opts.PageSize = size
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return opts, fmt.Errorf("invalid limit: %s", v)
		}
		opts.Limit = limit
	}

	start, err := parseDateParam(r, "start_date", false)
	if err != nil {
		return opts, err
	}
	opts.StartDate = start

	end, err := parseDateParam(r, "end_date", true)
	if err != nil {
		return opts, err
	}
	opts.EndDate = end

	return opts, nil
}

// parseDateParam parses a YYYY-MM-DD query parameter. End-of-range dates
// are widened to the last instant of that day so the filter is inclusive.
func parseDateParam(r *http.Request, name string, endOfDay bool) (*time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}

	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s, expected YYYY-MM-DD: %s", name, v)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// respondFetchError maps ledger errors to HTTP statuses
func respondFetchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, osmosis.ErrNotConnected):
		respondWithError(w, http.StatusServiceUnavailable, "ledger connection is not established")
	case errors.Is(err, osmosis.ErrInvalidAddress):
		respondWithError(w, http.StatusBadRequest, "invalid osmosis address format")
	default:
		respondWithError(w, http.StatusBadGateway, fmt.Sprintf("failed to fetch transactions: %v", err))
	}
}

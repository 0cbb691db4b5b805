package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kislikjeka/osmotax/internal/addressbook"
	"github.com/kislikjeka/osmotax/internal/osmosis"
)

// AddressBookInterface defines the interface for address book operations
type AddressBookInterface interface {
	List(ctx context.Context) ([]addressbook.Entry, error)
	Add(ctx context.Context, address, label string) (addressbook.Entry, error)
	UpdateLabel(ctx context.Context, id uuid.UUID, label string) (addressbook.Entry, error)
	Touch(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AddressBookHandler handles saved-address HTTP requests
type AddressBookHandler struct {
	book AddressBookInterface
}

// NewAddressBookHandler creates a new address book handler
func NewAddressBookHandler(book AddressBookInterface) *AddressBookHandler {
	return &AddressBookHandler{book: book}
}

// SaveAddressRequest represents the save request
type SaveAddressRequest struct {
	Address string `json:"address"`
	Label   string `json:"label"`
}

// UpdateLabelRequest represents the label update request
type UpdateLabelRequest struct {
	Label string `json:"label"`
}

// EntriesResponse represents the response for listing entries
type EntriesResponse struct {
	Entries []addressbook.Entry `json:"entries"`
}

// ListEntries handles GET /addressbook
func (h *AddressBookHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.book.List(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("failed to load address book: %v", err))
		return
	}

	respondWithJSON(w, http.StatusOK, EntriesResponse{Entries: entries})
}

// SaveEntry handles POST /addressbook
func (h *AddressBookHandler) SaveEntry(w http.ResponseWriter, r *http.Request) {
	var req SaveAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !osmosis.ValidateAddress(req.Address) {
		respondWithError(w, http.StatusBadRequest, "invalid osmosis address format")
		return
	}

	entry, err := h.book.Add(r.Context(), req.Address, req.Label)
	if err != nil {
		if errors.Is(err, addressbook.ErrDuplicateAddress) {
			respondWithError(w, http.StatusConflict, "address already saved")
			return
		}
		if errors.Is(err, addressbook.ErrStorageFull) {
			respondWithError(w, http.StatusInsufficientStorage, "address book storage is full, entry not saved")
			return
		}
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("failed to save address: %v", err))
		return
	}

	respondWithJSON(w, http.StatusCreated, entry)
}

// UpdateEntry handles PUT /addressbook/{id}
func (h *AddressBookHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid entry ID")
		return
	}

	var req UpdateLabelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.book.UpdateLabel(r.Context(), id, req.Label)
	if err != nil {
		if errors.Is(err, addressbook.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "entry not found")
			return
		}
		if errors.Is(err, addressbook.ErrStorageFull) {
			respondWithError(w, http.StatusInsufficientStorage, "address book storage is full, entry not saved")
			return
		}
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("failed to update entry: %v", err))
		return
	}

	respondWithJSON(w, http.StatusOK, entry)
}

// MarkViewed handles POST /addressbook/{id}/viewed
func (h *AddressBookHandler) MarkViewed(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid entry ID")
		return
	}

	if err := h.book.Touch(r.Context(), id); err != nil {
		if errors.Is(err, addressbook.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "entry not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("failed to mark entry viewed: %v", err))
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DeleteEntry handles DELETE /addressbook/{id}
func (h *AddressBookHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid entry ID")
		return
	}

	if err := h.book.Delete(r.Context(), id); err != nil {
		if errors.Is(err, addressbook.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "entry not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("failed to delete entry: %v", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package book

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"booktracker/internal/httpx"
)

const (
	defaultPageLimit  = 10
	defaultPageOffset = 0
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type bookRequest struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	Rating *int   `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Notes  string `json:"notes"`
}

// List handles GET /books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		httpx.JSONError(r, w, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(r, w, http.StatusOK, collection(books), nil)
}

// ListPaginated handles GET /books/paginated
func (h *HTTPHandler) ListPaginated(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit, err := strconv.Atoi(query.Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultPageLimit
	}
	offset, err := strconv.Atoi(query.Get("offset"))
	if err != nil || offset < 0 {
		offset = defaultPageOffset
	}

	books, err := h.service.ListPage(r.Context(), limit, offset)
	if err != nil {
		httpx.JSONError(r, w, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(r, w, http.StatusOK, collection(books), map[string]any{
		"limit":  limit,
		"offset": offset,
	})
}

// ListSorted handles GET /books/sorted
func (h *HTTPHandler) ListSorted(w http.ResponseWriter, r *http.Request) {
	sortBy := r.URL.Query().Get("sortBy")

	books, err := h.service.ListSorted(r.Context(), sortBy)
	if err != nil {
		httpx.JSONError(r, w, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(r, w, http.StatusOK, collection(books), nil)
}

// GetByID handles GET /books/{id}
func (h *HTTPHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(r, w, http.StatusNotFound, "not_found", "Book not found", nil)
		return
	}

	b, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.JSONSuccess(r, w, http.StatusOK, b, nil)
}

// Create handles POST /books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}

	b, err := h.service.Create(r.Context(), NewBook{
		Title:  req.Title,
		Author: req.Author,
		Rating: req.Rating,
		Notes:  req.Notes,
	})
	if err != nil {
		httpx.JSONError(r, w, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(r, w, http.StatusCreated, b, nil)
}

// Update handles PUT /books/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(r, w, http.StatusNotFound, "not_found", "Book not found", nil)
		return
	}

	req, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}

	b, err := h.service.Update(r.Context(), id, NewBook{
		Title:  req.Title,
		Author: req.Author,
		Rating: req.Rating,
		Notes:  req.Notes,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.JSONSuccess(r, w, http.StatusOK, b, nil)
}

// Delete handles DELETE /books/{id}. The response carries the removed
// record's prior state as confirmation.
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(r, w, http.StatusNotFound, "not_found", "Book not found", nil)
		return
	}

	b, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.JSONSuccess(r, w, http.StatusOK, b, nil)
}

func (h *HTTPHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request) (bookRequest, bool) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "bad_request", "Invalid request body", nil)
		return bookRequest{}, false
	}

	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "validation_failed", "Validation failed", details)
		return bookRequest{}, false
	}
	return req, true
}

func (h *HTTPHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrNotFound) {
		httpx.JSONError(r, w, http.StatusNotFound, "not_found", "Book not found", nil)
		return
	}
	httpx.JSONError(r, w, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// collection guards against a nil slice so empty lists serialize as [].
func collection(books []Book) []Book {
	if books == nil {
		return []Book{}
	}
	return books
}

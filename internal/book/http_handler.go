package book

import (
	"encoding/json"
	"errors"
	"net/http"

	"bookshelf/internal/httpx"
	"bookshelf/internal/store"

	"github.com/rs/zerolog/log"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type bookReq struct {
	Title      string  `json:"title" validate:"required,max=300"`
	Author     string  `json:"author" validate:"required,max=200"`
	Genre      string  `json:"genre" validate:"max=100"`
	Rating     float64 `json:"rating" validate:"gte=0,lte=5"`
	Summary    string  `json:"summary" validate:"max=5000"`
	CoverImage string  `json:"coverImage" validate:"omitempty,url"`
}

type createBookReq struct {
	Title      string  `json:"title" validate:"required,max=300"`
	Author     string  `json:"author" validate:"required,max=200"`
	Genre      string  `json:"genre" validate:"max=100"`
	Rating     float64 `json:"rating" validate:"gte=0,lte=5"`
	Summary    string  `json:"summary" validate:"max=5000"`
	CoverImage string  `json:"coverImage" validate:"omitempty,url"`
	UserEmail  string  `json:"userEmail" validate:"required,email"`
}

func (req createBookReq) book() Book {
	return Book{
		Title:      req.Title,
		Author:     req.Author,
		Genre:      req.Genre,
		Rating:     req.Rating,
		Summary:    req.Summary,
		CoverImage: req.CoverImage,
		UserEmail:  req.UserEmail,
	}
}

func (req bookReq) update() Update {
	return Update{
		Title:      req.Title,
		Author:     req.Author,
		Genre:      req.Genre,
		Rating:     req.Rating,
		Summary:    req.Summary,
		CoverImage: req.CoverImage,
	}
}

// List handles GET /books
// @Summary List books
// @Tags books
// @Produce json
// @Success 200 {array} Book
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, r, err, "list books")
		return
	}
	writeBooks(w, books)
}

// Get handles GET /books/{id}. An unknown id answers success with a null
// result.
// @Summary Get book by id
// @Tags books
// @Produce json
// @Param id path string true "Book id"
// @Success 200 {object} httpx.ResultResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err, "get book")
		return
	}
	if b == nil {
		httpx.JSONResult(w, nil)
		return
	}
	httpx.JSONResult(w, b)
}

// Create handles POST /books
// @Summary Create book
// @Description The userEmail field must match the verified identity.
// @Tags books
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body createBookReq true "Book"
// @Success 200 {object} httpx.ResultResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := httpx.IdentityFrom(r)

	body, ok := httpx.ReadBody(w, r)
	if !ok {
		return
	}
	// Ownership is settled before the field types are checked.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	var owner string
	if err := json.Unmarshal(fields["userEmail"], &owner); err != nil || owner != identity {
		httpx.JSONError(w, r, http.StatusForbidden, "FORBIDDEN", "forbidden access", nil)
		return
	}

	var req createBookReq
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	result, err := h.service.Create(r.Context(), identity, req.book())
	if err != nil {
		h.writeError(w, r, err, "create book")
		return
	}
	httpx.JSONResult(w, result)
}

// ListMine handles GET /my-books?email=
// @Summary List the caller's books
// @Tags books
// @Produce json
// @Security Bearer
// @Param email query string true "Owner email, must match the verified identity"
// @Success 200 {array} Book
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /my-books [get]
func (h *HTTPHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.ListByOwner(r.Context(), httpx.IdentityFrom(r), r.URL.Query().Get("email"))
	if err != nil {
		h.writeError(w, r, err, "list books by owner")
		return
	}
	writeBooks(w, books)
}

// Delete handles DELETE /books/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Delete(r.Context(), httpx.IdentityFrom(r), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err, "delete book")
		return
	}
	httpx.JSONResult(w, result)
}

// Update handles PUT /books/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req bookReq
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	modified, err := h.service.Update(r.Context(), httpx.IdentityFrom(r), r.PathValue("id"), req.update())
	if err != nil {
		h.writeError(w, r, err, "update book")
		return
	}
	if modified {
		httpx.JSONMessage(w, true, "Book updated successfully")
		return
	}
	httpx.JSONMessage(w, false, "No changes made")
}

// Latest handles GET /latest-books
func (h *HTTPHandler) Latest(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.Latest(r.Context())
	if err != nil {
		h.writeError(w, r, err, "list latest books")
		return
	}
	writeBooks(w, books)
}

// SortByRating handles GET /books/sort/{order}
func (h *HTTPHandler) SortByRating(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.SortedByRating(r.Context(), r.PathValue("order"))
	if err != nil {
		h.writeError(w, r, err, "sort books by rating")
		return
	}
	writeBooks(w, books)
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error, op string) {
	switch {
	case errors.Is(err, ErrForbidden):
		httpx.JSONError(w, r, http.StatusForbidden, "FORBIDDEN", "forbidden access", nil)
	case errors.Is(err, store.ErrInvalidID):
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_ID", "Invalid book id", nil)
	default:
		log.Error().Err(err).Str("request_id", httpx.RequestIDFrom(r)).Msg(op)
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Server error", nil)
	}
}

func writeBooks(w http.ResponseWriter, books []Book) {
	if books == nil {
		books = []Book{}
	}
	httpx.JSON(w, http.StatusOK, books)
}

package comment

import (
	"encoding/json"
	"net/http"

	"bookshelf/internal/httpx"

	"github.com/rs/zerolog/log"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type createCommentReq struct {
	BookID    string `json:"bookId" validate:"required,max=100"`
	Text      string `json:"text" validate:"required,max=2000"`
	UserName  string `json:"userName" validate:"max=200"`
	UserEmail string `json:"userEmail" validate:"omitempty,email"`
}

// Create handles POST /comments
// @Summary Add a comment to a book
// @Tags comments
// @Accept json
// @Produce json
// @Param request body createCommentReq true "Comment"
// @Success 200 {object} store.InsertResult
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /comments [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, ok := httpx.ReadBody(w, r)
	if !ok {
		return
	}
	var req createCommentReq
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	extra, extraDetails, err := extraFields(body)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := append(httpx.ValidateStruct(req), extraDetails...); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	result, err := h.service.Create(r.Context(), Comment{
		BookID:    req.BookID,
		Text:      req.Text,
		UserName:  req.UserName,
		UserEmail: req.UserEmail,
		Extra:     extra,
	})
	if err != nil {
		h.writeError(w, r, err, "create comment")
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

// ListByBook handles GET /comments/{bookId}
func (h *HTTPHandler) ListByBook(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.ListByBook(r.Context(), r.PathValue("bookId"))
	if err != nil {
		h.writeError(w, r, err, "list comments")
		return
	}
	if comments == nil {
		comments = []Comment{}
	}
	httpx.JSON(w, http.StatusOK, comments)
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error, op string) {
	log.Error().Err(err).Str("request_id", httpx.RequestIDFrom(r)).Msg(op)
	httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Server error", nil)
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/service"
	"library-backend/internal/shared/response"
)

type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(svc service.ServiceInterface) *BookHandler {
	return &BookHandler{service: svc}
}

// List handles GET /books with optional search, genre, year range and sort
// parameters.
func (h *BookHandler) List(c *gin.Context) {
	filter := &model.BookFilter{
		Search:    c.Query("search"),
		Genre:     c.Query("genre"),
		SortBy:    c.DefaultQuery("sort_by", "title"),
		SortOrder: c.DefaultQuery("sort_order", "ASC"),
	}

	if v := c.Query("year_min"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			filter.YearMin = year
		}
	}
	if v := c.Query("year_max"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			filter.YearMax = year
		}
	}

	books, err := h.service.ListBooks(c.Request.Context(), filter)
	if model.HandleBookError(c, err) {
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, books, &response.Meta{Total: len(books)})
}

func (h *BookHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	book, err := h.service.GetBook(c.Request.Context(), id)
	if model.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, book)
}

func (h *BookHandler) Create(c *gin.Context) {
	var req model.BookPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	id, err := h.service.CreateBook(c.Request.Context(), req)
	if model.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"book_id": id})
}

func (h *BookHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req model.BookPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.service.UpdateBook(c.Request.Context(), id, req)
	if model.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"book_id": id})
}

func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	err := h.service.DeleteBook(c.Request.Context(), id)
	if model.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"book_id": id})
}

// parseID reads a positive integer path parameter or writes a 400.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/copy/model"
	"library-backend/internal/domains/copy/service"
	"library-backend/internal/shared/response"
)

type CopyHandler struct {
	service service.ServiceInterface
}

func NewCopyHandler(svc service.ServiceInterface) *CopyHandler {
	return &CopyHandler{service: svc}
}

// ListByBook handles GET /books/:id/copies.
func (h *CopyHandler) ListByBook(c *gin.Context) {
	bookID, ok := parseID(c, "id")
	if !ok {
		return
	}

	copies, err := h.service.ListCopies(c.Request.Context(), bookID)
	if model.HandleCopyError(c, err) {
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, copies, &response.Meta{Total: len(copies)})
}

func (h *CopyHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	copy, err := h.service.GetCopy(c.Request.Context(), id)
	if model.HandleCopyError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, copy)
}

// Create handles POST /books/:id/copies.
func (h *CopyHandler) Create(c *gin.Context) {
	bookID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req model.CopyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	id, err := h.service.AddCopy(c.Request.Context(), bookID, req)
	if model.HandleCopyError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"copy_id": id})
}

func (h *CopyHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req model.CopyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.service.UpdateCopy(c.Request.Context(), id, req)
	if model.HandleCopyError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"copy_id": id})
}

func (h *CopyHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	err := h.service.DeleteCopy(c.Request.Context(), id)
	if model.HandleCopyError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"copy_id": id})
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}

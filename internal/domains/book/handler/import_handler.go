package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/book/service"
	"library-backend/internal/shared/response"
)

type ImportHandler struct {
	service service.ImportServiceInterface
}

func NewImportHandler(svc service.ImportServiceInterface) *ImportHandler {
	return &ImportHandler{service: svc}
}

// Import handles POST /books/import. The upload must be a CSV whose header
// uses only the recognized catalog columns; row failures are reported
// per-row, not as a request failure.
func (h *ImportHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Missing CSV file upload")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Unable to open uploaded file")
		return
	}
	defer file.Close()

	result, err := h.service.ImportBooks(c.Request.Context(), file)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, result)
}

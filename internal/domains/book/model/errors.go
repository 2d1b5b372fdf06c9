package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-backend/internal/shared"
	"library-backend/internal/shared/response"
)

var (
	ErrBookNotFound  = errors.New("book not found")
	ErrDuplicateBook = errors.New("failed to save book: duplicate or invalid data")
)

var bookErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrBookNotFound: {
		Status:  http.StatusNotFound,
		Code:    "BOOK_NOT_FOUND",
		Message: "The specified book does not exist",
	},
	ErrDuplicateBook: {
		Status:  http.StatusConflict,
		Code:    "DUPLICATE_BOOK",
		Message: "Duplicate or invalid book data",
	},
}

// HandleBookError maps domain errors to HTTP responses. Returns true when
// the error was handled (i.e. err was non-nil).
func HandleBookError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var verrs shared.ValidationErrors
	if errors.As(err, &verrs) {
		response.UnprocessableEntity(c, "Book data failed validation", verrs.Messages())
		return true
	}

	for sentinel, cfg := range bookErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, cfg.Status, cfg.Code, cfg.Message)
			return true
		}
	}

	log.Error().Err(err).Msg("Unhandled book error")
	response.InternalServerError(c, "Internal server error")
	return true
}

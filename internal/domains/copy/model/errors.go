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
	ErrCopyNotFound = errors.New("copy not found")

	// ErrDuplicateCopyNumber is the pre-emptive check's friendlier message;
	// ErrDuplicateCopy is the reactive translation of the storage constraint.
	ErrDuplicateCopyNumber = errors.New("copy number already exists for this book")
	ErrDuplicateCopy       = errors.New("failed to save copy: duplicate or invalid data")
)

var copyErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrCopyNotFound: {
		Status:  http.StatusNotFound,
		Code:    "COPY_NOT_FOUND",
		Message: "The specified copy does not exist",
	},
	ErrDuplicateCopyNumber: {
		Status:  http.StatusConflict,
		Code:    "DUPLICATE_COPY_NUMBER",
		Message: "Copy number already exists for this book",
	},
	ErrDuplicateCopy: {
		Status:  http.StatusConflict,
		Code:    "DUPLICATE_COPY",
		Message: "Duplicate or invalid copy data",
	},
}

func HandleCopyError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var verrs shared.ValidationErrors
	if errors.As(err, &verrs) {
		response.UnprocessableEntity(c, "Copy data failed validation", verrs.Messages())
		return true
	}

	for sentinel, cfg := range copyErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, cfg.Status, cfg.Code, cfg.Message)
			return true
		}
	}

	log.Error().Err(err).Msg("Unhandled copy error")
	response.InternalServerError(c, "Internal server error")
	return true
}

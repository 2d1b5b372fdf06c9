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
	ErrMemberNotFound       = errors.New("member not found")
	ErrMemberExists         = errors.New("member number or email already exists")
	ErrMemberHasActiveLoans = errors.New("cannot delete member with active loans")
)

var memberErrorMap = map[error]struct {
	status  int
	code    string
	message string
}{
	ErrMemberNotFound:       {http.StatusNotFound, "MEM_001", "Member not found"},
	ErrMemberExists:         {http.StatusConflict, "MEM_002", "Member number or email already exists"},
	ErrMemberHasActiveLoans: {http.StatusConflict, "MEM_003", "Cannot delete member with active loans"},
}

// HandleMemberError resolves a service error to an HTTP response. Returns
// true when the error was handled.
func HandleMemberError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var verrs shared.ValidationErrors
	if errors.As(err, &verrs) {
		response.UnprocessableEntity(c, "Validation failed", verrs.Messages())
		return true
	}

	for sentinel, mapped := range memberErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, mapped.status, mapped.code, mapped.message)
			return true
		}
	}

	log.Error().Err(err).Msg("Unhandled member error")
	response.InternalServerError(c, "Internal server error")
	return true
}

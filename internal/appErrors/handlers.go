package appErrors

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the envelope written for every failed request.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError writes err and aborts the gin chain.
func HandleError(c *gin.Context, err *AppError) {
	if err.HTTPCode == 0 {
		err = InternalError(err)
	}
	c.AbortWithStatusJSON(err.HTTPCode, ErrorResponse{Error: err})
}

// FromError converts any error into an AppError, hiding internals.
func FromError(err error) *AppError {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr
	}
	return InternalError(err)
}

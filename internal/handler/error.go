package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/founderhub/founder-api/pkg/errors"
)

// Error writes the response for a service error. Application errors carry
// their own status and a client-safe message; anything else becomes a 500.
// The error is also attached to the context so the error middleware logs it.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)

	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		c.JSON(appErr.StatusCode(), NewErrorResponse(appErr.Message))
		return
	}

	c.JSON(http.StatusInternalServerError, NewErrorResponse("internal server error"))
}

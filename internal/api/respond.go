package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/innovatefest/hackathon-api/internal/errors"
)

// errorBody is the JSON body of every failed request
func errorBody(err error) gin.H {
	return gin.H{
		"error": apperrors.Message(err),
		"code":  apperrors.Code(err),
	}
}

// respondError writes err with the status of its code. Server-side
// failures are attached to the context so the request logger records the
// cause, which the client never sees.
func respondError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= 500 {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, errorBody(err))
}

func badRequest(c *gin.Context, message string, cause error) {
	respondError(c, apperrors.InvalidInput(message, cause))
}

// requestContext bounds a handler's work by the request and a timeout
func requestContext(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/mahfuzul873/m873/internal/middleware"
	"github.com/mahfuzul873/m873/internal/pkg/errcode"
	appErr "github.com/mahfuzul873/m873/internal/pkg/errors"
	"github.com/mahfuzul873/m873/internal/pkg/response"
)

func getUserID(c *gin.Context) string {
	value, _ := c.Get(middleware.ContextUserIDKey)
	userID, _ := value.(string)
	return userID
}

func handleError(c *gin.Context, err error) {
	switch err {
	case nil:
		return
	case appErr.ErrUnauthorized:
		response.Error(c, errcode.ErrUnauthorized, "unauthorized")
	case appErr.ErrForbidden:
		response.Error(c, errcode.ErrForbidden, "forbidden")
	case appErr.ErrNotFound:
		response.Error(c, errcode.ErrNotFound, "not found")
	case appErr.ErrInvalid:
		response.Error(c, errcode.ErrInvalid, "invalid request")
	case appErr.ErrConflict:
		response.Error(c, errcode.ErrConflict, "conflict")
	case appErr.ErrTooMany:
		response.Error(c, errcode.ErrTooMany, "too many requests")
	case appErr.ErrOTPUnavailable:
		response.Error(c, errcode.ErrOTPUnavailable, "otp service unavailable")
	default:
		logutil.GetLogger(c.Request.Context()).Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		response.Error(c, errcode.ErrInternal, "internal error")
	}
}

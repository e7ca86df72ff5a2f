// Package response shapes every API reply into the single JSON envelope the
// marketing site and admin panel consume: proxyutil's {code, message, data}
// with HTTP 200 on business errors, so the frontend branches on code alone.
package response

import (
	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/webapi/proxyutil"
)

// codeErr satisfies proxyutil's coded-error contract; the code ends up in the
// envelope, the message in its message field. Codes live in pkg/errcode.
type codeErr struct {
	code uint32
	msg  string
}

func (e codeErr) Error() string {
	return e.msg
}

func (e codeErr) Code() uint32 {
	return e.code
}

func AsCodeErr(code uint32, msg string) error {
	return codeErr{code: code, msg: msg}
}

func Success(c *gin.Context, data interface{}) {
	proxyutil.SuccessJson(c, data)
}

// Error writes a business failure. The transport status stays 200; auth
// middleware and handlers signal failure through the errcode value.
func Error(c *gin.Context, code int, message string) {
	proxyutil.FailJson(c, 200, AsCodeErr(uint32(code), message))
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mahfuzul873/m873/internal/pkg/errcode"
	"github.com/mahfuzul873/m873/internal/pkg/response"
	"github.com/mahfuzul873/m873/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type ownerLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type requestOTPRequest struct {
	Email string `json:"email"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// Login is the password step. On success an OTP is mailed to the owner; the
// response carries only the expiry so the client can show a countdown.
func (h *AuthHandler) Login(c *gin.Context) {
	var req ownerLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if req.Email == "" || req.Password == "" {
		response.Error(c, errcode.ErrInvalid, "email and password required")
		return
	}
	issue, err := h.auth.StartLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"otp_sent": true, "expires_at": issue.ExpiresAt})
}

// RequestOTP re-issues the code for the resend button.
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req requestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if req.Email == "" {
		response.Error(c, errcode.ErrInvalid, "email required")
		return
	}
	issue, err := h.auth.ResendOTP(c.Request.Context(), req.Email)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"otp_sent": true, "expires_at": issue.ExpiresAt})
}

// VerifyOTP completes the login. Invalid and expired codes produce the same
// unauthorized answer as a wrong password.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	user, token, err := h.auth.CompleteLogin(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"token": token,
		"user":  gin.H{"id": user.ID, "email": user.Email},
	})
}

// Logout exists for the client flow; sessions are stateless JWTs so there is
// nothing to revoke server side.
func (h *AuthHandler) Logout(c *gin.Context) {
	response.Success(c, gin.H{"ok": true})
}

// Me reports the session identity and whether it holds the owner role.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := getUserID(c)
	user, err := h.auth.GetUser(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	isOwner, err := h.auth.IsOwner(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"id": user.ID, "email": user.Email, "is_owner": isOwner})
}

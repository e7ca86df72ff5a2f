package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mahfuzul873/m873/internal/middleware"
)

type RouterDeps struct {
	Auth          *AuthHandler
	Features      *FeatureHandler
	Chat          *ChatHandler
	Roles         middleware.RoleChecker
	JWTSecret     []byte
	OTPRateWindow time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	otpLimited := middleware.RateLimit(deps.OTPRateWindow)
	api.POST("/auth/owner/login", otpLimited, deps.Auth.Login)
	api.POST("/auth/owner/request-otp", otpLimited, deps.Auth.RequestOTP)
	api.POST("/auth/owner/verify-otp", deps.Auth.VerifyOTP)
	api.POST("/auth/logout", deps.Auth.Logout)

	api.GET("/features", deps.Features.ListPublic)

	api.POST("/chat/ask", deps.Chat.Ask)
	api.GET("/chat/search", deps.Chat.Search)
	api.GET("/chat/stats", deps.Chat.Stats)

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))
	authGroup.GET("/auth/me", deps.Auth.Me)

	adminGroup := authGroup.Group("/admin")
	adminGroup.Use(middleware.OwnerOnly(deps.Roles))
	adminGroup.GET("/features", deps.Features.List)
	adminGroup.POST("/features", deps.Features.Create)
	adminGroup.PUT("/features/:id", deps.Features.Update)
	adminGroup.DELETE("/features/:id", deps.Features.Delete)
}

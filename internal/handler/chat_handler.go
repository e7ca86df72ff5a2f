package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mahfuzul873/m873/internal/chatbot"
	"github.com/mahfuzul873/m873/internal/pkg/errcode"
	"github.com/mahfuzul873/m873/internal/pkg/response"
	"github.com/mahfuzul873/m873/internal/service"
)

type ChatHandler struct {
	chat *service.ChatService
}

func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type askRequest struct {
	Question string `json:"question"`
}

func (h *ChatHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if req.Question == "" {
		response.Error(c, errcode.ErrInvalid, "question required")
		return
	}
	response.Success(c, h.chat.Ask(c.Request.Context(), req.Question))
}

func (h *ChatHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.Error(c, errcode.ErrInvalid, "q required")
		return
	}
	lang := chatbot.Tag(c.Query("lang"))
	response.Success(c, h.chat.Search(query, lang))
}

func (h *ChatHandler) Stats(c *gin.Context) {
	response.Success(c, h.chat.Stats())
}

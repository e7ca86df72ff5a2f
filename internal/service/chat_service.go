package service

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/mahfuzul873/m873/internal/ai"
	"github.com/mahfuzul873/m873/internal/chatbot"
)

// ChatService fronts the matcher. When an LLM generator is configured it may
// upgrade a generic reply; the matcher's canned and dataset answers are never
// overridden.
type ChatService struct {
	matcher    *chatbot.Matcher
	llm        ai.IGenerator
	llmTimeout time.Duration
}

func NewChatService(matcher *chatbot.Matcher, llm ai.IGenerator, llmTimeout time.Duration) *ChatService {
	if llmTimeout <= 0 {
		llmTimeout = 15 * time.Second
	}
	return &ChatService{matcher: matcher, llm: llm, llmTimeout: llmTimeout}
}

func (s *ChatService) Ask(ctx context.Context, question string) chatbot.Reply {
	reply := s.matcher.Answer(question)
	if reply.Source != chatbot.SourceGeneric || s.llm == nil {
		return reply
	}
	llmCtx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	defer cancel()
	content, err := s.llm.Generate(llmCtx, chatPrompt(question))
	if err != nil || content == "" {
		if err != nil {
			logutil.GetLogger(ctx).Warn("llm fallback failed, keeping generic reply", zap.Error(err))
		}
		return reply
	}
	reply.Content = content
	reply.Confidence = 0.8
	reply.Source = chatbot.SourceLLM
	return reply
}

func (s *ChatService) Search(query string, lang chatbot.Tag) []chatbot.QARecord {
	return s.matcher.Search(query, lang)
}

func (s *ChatService) Stats() chatbot.Stats {
	return s.matcher.Stats()
}

func chatPrompt(question string) string {
	return "You are M873 Assistant, the helpful AI companion for the M873 platform " +
		"created by Md. Mahfuzul Islam. Answer the following user question briefly and, " +
		"where natural, relate it to the M873 platform.\n\nQuestion: " + question
}

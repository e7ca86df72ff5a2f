package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mahfuzul873/m873/internal/chatbot"
	"github.com/mahfuzul873/m873/internal/service"
)

type fakeGenerator struct {
	reply string
	err   error
	calls int
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func chatMatcher() *chatbot.Matcher {
	return chatbot.NewMatcher([]chatbot.QARecord{
		{Question: "How does the security of M873 work?", Answer: "dataset answer", Language: chatbot.LangEN},
	})
}

func TestChatAskWithoutLLM(t *testing.T) {
	svc := service.NewChatService(chatMatcher(), nil, 0)
	reply := svc.Ask(context.Background(), "purple elephants dancing")
	require.Equal(t, chatbot.SourceGeneric, reply.Source)
}

func TestChatAskLLMUpgradesGenericOnly(t *testing.T) {
	gen := &fakeGenerator{reply: "llm answer"}
	svc := service.NewChatService(chatMatcher(), gen, 0)

	reply := svc.Ask(context.Background(), "purple elephants dancing")
	require.Equal(t, chatbot.SourceLLM, reply.Source)
	require.Equal(t, "llm answer", reply.Content)
	require.Equal(t, 0.8, reply.Confidence)

	// canned and dataset replies must never reach the generator
	reply = svc.Ask(context.Background(), "How does the security of M873 work?")
	require.Equal(t, chatbot.SourceDataset, reply.Source)
	reply = svc.Ask(context.Background(), "hello")
	require.Equal(t, chatbot.SourceCanned, reply.Source)
	require.Equal(t, 1, gen.calls)
}

func TestChatAskLLMFailureKeepsGeneric(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	svc := service.NewChatService(chatMatcher(), gen, 0)

	reply := svc.Ask(context.Background(), "purple elephants dancing")
	require.Equal(t, chatbot.SourceGeneric, reply.Source)
	require.Equal(t, 0.7, reply.Confidence)
	require.NotEmpty(t, reply.Content)
}

func TestChatAskLLMEmptyReplyKeepsGeneric(t *testing.T) {
	gen := &fakeGenerator{reply: ""}
	svc := service.NewChatService(chatMatcher(), gen, 0)

	reply := svc.Ask(context.Background(), "purple elephants dancing")
	require.Equal(t, chatbot.SourceGeneric, reply.Source)
}

func TestChatSearchAndStats(t *testing.T) {
	svc := service.NewChatService(chatMatcher(), nil, 0)
	require.Len(t, svc.Search("security", ""), 1)
	require.Equal(t, 1, svc.Stats().Total)
}

package chatbot

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func testMatcher() *Matcher {
	return NewMatcher([]QARecord{
		{Question: "How does the security of M873 work?", Answer: "Owner access requires a password plus a one-time code sent by email.", Language: LangEN},
		{Question: "What features does M873 offer?", Answer: "M873 offers secure owner access and a bilingual chatbot assistant.", Language: LangEN},
		{Question: "M873 এর নিরাপত্তা কিভাবে কাজ করে?", Answer: "মালিক অ্যাক্সেসের জন্য পাসওয়ার্ড এবং একটি ওয়ান-টাইম কোড প্রয়োজন।", Language: LangBN},
	})
}

func TestAnswerCannedGreeting(t *testing.T) {
	m := testMatcher()
	reply := m.Answer("Hello")
	require.Equal(t, SourceCanned, reply.Source)
	require.Equal(t, 1.0, reply.Confidence)
	require.Equal(t, LangEN, reply.Language)
	require.Contains(t, reply.Content, "M873 Assistant")
}

func TestAnswerCannedGreetingBengali(t *testing.T) {
	m := testMatcher()
	reply := m.Answer("হ্যালো")
	require.Equal(t, SourceCanned, reply.Source)
	require.Equal(t, LangBN, reply.Language)
	require.Contains(t, reply.Content, "সহকারী")
}

func TestAnswerCannedWinsOverCorpus(t *testing.T) {
	// canned categories are checked before the corpus even when the corpus
	// holds the identical question
	m := NewMatcher([]QARecord{
		{Question: "What is M873?", Answer: "corpus answer", Language: LangEN},
	})
	reply := m.Answer("what is m873")
	require.Equal(t, SourceCanned, reply.Source)
	require.NotEqual(t, "corpus answer", reply.Content)
}

func TestAnswerBroadPlatformQuestionHitsCorpus(t *testing.T) {
	m := NewMatcher([]QARecord{
		{Question: "What is M873?", Answer: "M873 is a platform.", Language: LangEN},
	})
	reply := m.Answer("Tell me about M873 platform")
	require.Equal(t, SourceDataset, reply.Source)
	require.Equal(t, 0.9, reply.Confidence)
	require.Equal(t, "M873 is a platform.", reply.Content)
}

func TestAnswerCannedWorksWithoutCorpus(t *testing.T) {
	m := NewMatcher(nil)
	reply := m.Answer("hello there")
	require.Equal(t, SourceCanned, reply.Source)
	require.Equal(t, 1.0, reply.Confidence)
}

func TestAnswerDatasetMatch(t *testing.T) {
	m := testMatcher()
	reply := m.Answer("How does the security of M873 work?")
	require.Equal(t, SourceDataset, reply.Source)
	require.Equal(t, 0.9, reply.Confidence)
	require.Equal(t, "Owner access requires a password plus a one-time code sent by email.", reply.Content)
}

func TestAnswerCrossLanguageWiden(t *testing.T) {
	// only a BN record exists for this question; an EN phrasing with shared
	// tokens should still reach it once same-language search comes up empty
	m := NewMatcher([]QARecord{
		{Question: "M873 security overview", Answer: "shared answer", Language: LangBN},
	})
	reply := m.Answer("m873 security overview")
	require.Equal(t, SourceDataset, reply.Source)
	require.Equal(t, "shared answer", reply.Content)
	require.Equal(t, LangEN, reply.Language)
}

func TestAnswerZeroOverlapNeverDataset(t *testing.T) {
	m := testMatcher()
	reply := m.Answer("zzz qqq xxx")
	require.NotEqual(t, SourceDataset, reply.Source)

	// even past the relevance gate the threshold holds
	record, score := m.bestMatch("zzz qqq xxx", LangEN)
	if record != nil {
		require.LessOrEqual(t, score, 0.2)
	}
}

func TestAnswerIrrelevantNeverHitsCorpus(t *testing.T) {
	m := testMatcher()
	reply := m.Answer("weather forecast for tomorrow")
	require.Equal(t, SourceGeneric, reply.Source)
	require.Equal(t, 0.7, reply.Confidence)
	require.Contains(t, reply.Content, "weather")
}

func TestAnswerGenericDefaultBlurb(t *testing.T) {
	m := testMatcher()
	reply := m.Answer("purple elephants dancing")
	require.Equal(t, SourceGeneric, reply.Source)
	require.Equal(t, 0.7, reply.Confidence)
	require.NotEmpty(t, reply.Content)
	require.Equal(t, LangEN, reply.Language)
}

func TestAnswerConcurrentUse(t *testing.T) {
	// the corpus is immutable and the generic path draws from the shared
	// top-level rand, so parallel Answer calls must be safe under -race
	m := testMatcher()
	questions := []string{
		"purple elephants dancing",
		"what's the weather today",
		"hello",
		"How does the security of M873 work?",
	}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(q string) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				reply := m.Answer(q)
				if reply.Source == "" {
					t.Error("empty source")
					return
				}
			}
		}(questions[i%len(questions)])
	}
	wg.Wait()
}

func TestAnswerEmptyCorpusNeverPanics(t *testing.T) {
	m := NewMatcher(nil)
	for _, q := range []string{"", "weather", "m873 security", "ধন্যবাদ"} {
		reply := m.Answer(q)
		require.NotEmpty(t, reply.Source)
	}
}

func TestSearch(t *testing.T) {
	m := testMatcher()

	results := m.Search("security", "")
	require.Len(t, results, 1)

	// answers are searched too
	results = m.Search("bilingual", "")
	require.Len(t, results, 1)
	require.Equal(t, "What features does M873 offer?", results[0].Question)

	results = m.Search("M873", LangBN)
	require.Len(t, results, 1)
	require.Equal(t, LangBN, results[0].Language)

	require.Empty(t, m.Search("nonexistent", ""))
}

func TestStats(t *testing.T) {
	stats := testMatcher().Stats()
	require.Equal(t, 3, stats.Total)
	require.Equal(t, 2, stats.CountPrimary)
	require.Equal(t, 1, stats.CountSecondary)
}

func TestDetectLanguage(t *testing.T) {
	require.Equal(t, LangEN, DetectLanguage("hello"))
	require.Equal(t, LangBN, DetectLanguage("হ্যালো"))
	require.Equal(t, LangBN, DetectLanguage("what about ঢাকা"))
	require.Equal(t, LangEN, DetectLanguage(""))
}

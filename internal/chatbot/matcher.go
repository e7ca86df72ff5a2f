package chatbot

import (
	"strings"
)

const (
	SourceCanned  = "canned"
	SourceDataset = "dataset"
	SourceGeneric = "generic"
	SourceLLM     = "llm"
)

// datasetThreshold is the minimum similarity score for a corpus answer to win.
const datasetThreshold = 0.2

type Reply struct {
	Content    string  `json:"content"`
	Language   Tag     `json:"language"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

type Stats struct {
	Total          int `json:"total"`
	CountPrimary   int `json:"count_primary"`
	CountSecondary int `json:"count_secondary"`
}

// Matcher answers free-text questions from a fixed corpus. The corpus is
// immutable after construction and the matcher holds no other mutable state,
// so Answer is safe for concurrent use.
type Matcher struct {
	records []QARecord
}

func NewMatcher(records []QARecord) *Matcher {
	return &Matcher{records: records}
}

func NewMatcherFromText(corpus string) *Matcher {
	return NewMatcher(ParseCorpus(corpus))
}

// Terms that mark a question as being about the platform at all. Questions
// without any of these never reach the corpus search.
var relevanceKeywords = []string{
	"m873", "mahfuzul", "islam", "m873 platform", "m873 website", "m873 owner",
	"northern university", "eee", "electrical electronic engineering", "dhaka",
	"bangladesh", "m873 features", "m873 ai", "m873 solutions", "simple ai",
	"ai platform", "ai learning", "ai training", "m873 simple ai solutions",
}

func (m *Matcher) Answer(question string) Reply {
	lang := DetectLanguage(question)
	lowered := strings.ToLower(strings.TrimSpace(question))

	for i := range cannedCategories {
		if cannedCategories[i].matches(lowered) {
			return Reply{
				Content:    cannedCategories[i].response(lang),
				Language:   lang,
				Confidence: 1.0,
				Source:     SourceCanned,
			}
		}
	}

	if m.isRelevant(lowered) {
		if record, score := m.bestMatch(lowered, lang); record != nil && score > datasetThreshold {
			return Reply{
				Content:    record.Answer,
				Language:   lang,
				Confidence: 0.9,
				Source:     SourceDataset,
			}
		}
	}

	return m.genericReply(lowered, lang)
}

func (m *Matcher) isRelevant(lowered string) bool {
	for _, keyword := range relevanceKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// bestMatch prefers records in the question's language; only when nothing
// there clears the threshold does it widen to the other languages, keeping
// the best score seen overall.
func (m *Matcher) bestMatch(lowered string, lang Tag) (*QARecord, float64) {
	var best *QARecord
	bestScore := 0.0
	for i := range m.records {
		if m.records[i].Language != lang {
			continue
		}
		score := similarity(lowered, strings.ToLower(m.records[i].Question))
		if score > bestScore {
			bestScore = score
			best = &m.records[i]
		}
	}
	if best == nil || bestScore < datasetThreshold {
		for i := range m.records {
			if m.records[i].Language == lang {
				continue
			}
			score := similarity(lowered, strings.ToLower(m.records[i].Question))
			if score > bestScore {
				bestScore = score
				best = &m.records[i]
			}
		}
	}
	return best, bestScore
}

func (m *Matcher) Search(query string, lang Tag) []QARecord {
	lowered := strings.ToLower(query)
	results := make([]QARecord, 0)
	for _, record := range m.records {
		if lang != "" && record.Language != lang {
			continue
		}
		if strings.Contains(strings.ToLower(record.Question), lowered) ||
			strings.Contains(strings.ToLower(record.Answer), lowered) {
			results = append(results, record)
		}
	}
	return results
}

func (m *Matcher) Stats() Stats {
	stats := Stats{Total: len(m.records)}
	for _, record := range m.records {
		if record.Language == PrimaryLang {
			stats.CountPrimary++
		} else {
			stats.CountSecondary++
		}
	}
	return stats
}

func (m *Matcher) Records() []QARecord {
	return m.records
}

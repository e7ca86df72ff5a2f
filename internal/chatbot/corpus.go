package chatbot

import (
	"regexp"
	"strings"
)

// QARecord is one parsed question/answer pair. The corpus is built once and
// read-only afterwards.
type QARecord struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Language Tag    `json:"language"`
}

var (
	questionRe     = buildQuestionRe()
	answerPrefixRe = buildAnswerPrefixRe()
	headerMarkers  = []string{"CHATBOT DATASET", "Owner:", "Site:"}
)

func buildQuestionRe() *regexp.Regexp {
	return regexp.MustCompile(`^Q\d+[a-z]?\s*\((` + tagAlternation() + `)\):\s*(.+)$`)
}

func buildAnswerPrefixRe() *regexp.Regexp {
	return regexp.MustCompile(`^(` + tagAlternation() + `):\s*(.+)$`)
}

func tagAlternation() string {
	tags := knownTags()
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, regexp.QuoteMeta(string(tag)))
	}
	return strings.Join(parts, "|")
}

// ParseCorpus turns the raw dataset text into records. A question marker line
// starts a record, a literal "A:" line starts answer accumulation, later
// non-empty lines join the answer with spaces. Records without both a question
// and at least one answer line are dropped; malformed lines are skipped, never
// fatal.
func ParseCorpus(content string) []QARecord {
	records := make([]QARecord, 0)
	var current QARecord
	var answerLines []string
	collecting := false

	flush := func() {
		if current.Question != "" && len(answerLines) > 0 {
			current.Answer = strings.TrimSpace(strings.Join(answerLines, " "))
			records = append(records, current)
		}
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isHeaderLine(trimmed) {
			continue
		}
		if match := questionRe.FindStringSubmatch(trimmed); match != nil {
			flush()
			current = QARecord{Question: strings.TrimSpace(match[2]), Language: Tag(match[1])}
			answerLines = nil
			collecting = false
			continue
		}
		if trimmed == "A:" {
			collecting = true
			continue
		}
		if collecting {
			if match := answerPrefixRe.FindStringSubmatch(trimmed); match != nil {
				answerLines = append(answerLines, match[2])
				continue
			}
			answerLines = append(answerLines, trimmed)
		}
	}
	flush()
	return records
}

func isHeaderLine(line string) bool {
	for _, marker := range headerMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

package chatbot

import "strings"

// Terms that carry disproportionate weight when matching questions against the
// corpus. Each token containing one of these that also appears inside some
// token of the other side adds a 0.1 bonus.
var keyTerms = []string{
	"owner", "features", "m873", "platform", "creator", "developer",
	"design", "access", "security",
}

// similarity scores how close a user question is to a stored one. The rule is
// deliberately asymmetric: exact matches weigh 1.0, partial matches
// (containment either way or edit distance <= 2) weigh 0.5, both counted over
// tokens of the first string and divided by the larger token count, then the
// key-term bonus is added and the result capped at 1.0.
func similarity(a, b string) float64 {
	wordsA := tokenize(a)
	wordsB := tokenize(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	exact := 0
	partial := 0
	for _, wa := range wordsA {
		for _, wb := range wordsB {
			if wa == wb {
				exact++
				break
			}
		}
		for _, wb := range wordsB {
			if strings.Contains(wa, wb) || strings.Contains(wb, wa) || levenshtein(wa, wb) <= 2 {
				partial++
				break
			}
		}
	}

	keyTermBonus := 0.0
	for _, wa := range wordsA {
		if !containsKeyTerm(wa) {
			continue
		}
		for _, wb := range wordsB {
			if strings.Contains(wb, wa) {
				keyTermBonus += 0.1
				break
			}
		}
	}

	maxLen := len(wordsA)
	if len(wordsB) > maxLen {
		maxLen = len(wordsB)
	}
	score := (float64(exact)*1.0+float64(partial)*0.5)/float64(maxLen) + keyTermBonus
	if score > 1.0 {
		return 1.0
	}
	return score
}

func tokenize(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	words := make([]string, 0, len(fields))
	for _, field := range fields {
		if len(field) > 2 {
			words = append(words, field)
		}
	}
	return words
}

func containsKeyTerm(word string) bool {
	for _, term := range keyTerms {
		if strings.Contains(word, term) {
			return true
		}
	}
	return false
}

// levenshtein is the standard dynamic-programming edit distance with unit
// costs for insert, delete and substitute.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	prev := make([]int, len(ra)+1)
	cur := make([]int, len(ra)+1)
	for i := 0; i <= len(ra); i++ {
		prev[i] = i
	}
	for j := 1; j <= len(rb); j++ {
		cur[0] = j
		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[i] = minInt(cur[i-1]+1, prev[i]+1, prev[i-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(ra)]
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

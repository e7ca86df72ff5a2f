package chatbot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimilarityIdentical(t *testing.T) {
	require.Equal(t, 1.0, similarity("what features does m873 offer", "what features does m873 offer"))
}

func TestSimilarityDisjoint(t *testing.T) {
	require.Equal(t, 0.0, similarity("zzzzzz qqqqqq xxxxxx", "bilingual chatbot assistant"))
}

func TestSimilarityEmptyAfterTokenize(t *testing.T) {
	// tokens of length <= 2 are dropped entirely
	require.Equal(t, 0.0, similarity("a b c", "what is m873"))
	require.Equal(t, 0.0, similarity("", "anything"))
}

func TestSimilarityPartialMatches(t *testing.T) {
	// "platforms" contains "platform": partial only, no exact match
	score := similarity("platforms", "platform overview")
	require.Greater(t, score, 0.0)
	require.Less(t, score, 1.0)
}

func TestSimilarityKeyTermBonus(t *testing.T) {
	withBonus := similarity("m873 pricing", "m873 details")
	without := similarity("zzzq pricing", "zzzq details")
	require.Greater(t, withBonus, without)
}

func TestSimilarityCapped(t *testing.T) {
	// exact + partial + key-term bonus would exceed 1.0 without the cap
	require.LessOrEqual(t, similarity("m873 platform owner security", "m873 platform owner security"), 1.0)
}

func TestSimilarityStable(t *testing.T) {
	// the function is asymmetric by construction; what must hold is that the
	// same inputs always produce the same score
	a, b := "how does the security of m873 work", "what features does m873 offer"
	first := similarity(a, b)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, similarity(a, b))
	}
}

func TestLevenshtein(t *testing.T) {
	require.Equal(t, 0, levenshtein("same", "same"))
	require.Equal(t, 3, levenshtein("kitten", "sitting"))
	require.Equal(t, 4, levenshtein("", "four"))
	require.Equal(t, 1, levenshtein("color", "colour"))
}

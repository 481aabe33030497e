package game

import (
	"duel-service/domain"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_SameSeedSameContent(t *testing.T) {
	settings := Settings{RoundCount: 6}
	a, err := NewGenerator(99).GenerateRoundContent(SpeedMathDuel, settings)
	require.NoError(t, err)
	b, err := NewGenerator(99).GenerateRoundContent(SpeedMathDuel, settings)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerator_SpeedMath(t *testing.T) {
	items, err := NewGenerator(1).GenerateRoundContent(SpeedMathDuel, Settings{RoundCount: 9})
	require.NoError(t, err)
	require.Len(t, items, 9)

	for i, it := range items {
		assert.Equal(t, i+1, it.ID)
		assert.Equal(t, kindMath, it.Kind)
		assert.Len(t, it.Options, mathOptionCount)
		assert.Contains(t, it.Options, it.Answer)

		parts := strings.Fields(it.Prompt)
		require.Len(t, parts, 3)
		a, _ := strconv.Atoi(parts[0])
		b, _ := strconv.Atoi(parts[2])
		want := map[string]int{"+": a + b, "-": a - b, "x": a * b}[parts[1]]
		assert.Equal(t, strconv.Itoa(want), it.Answer, it.Prompt)
	}
	assert.Contains(t, items[0].Prompt, "+")
	assert.Contains(t, items[8].Prompt, "x")
}

func TestGenerator_RiddlesDoNotRepeatWithinBank(t *testing.T) {
	items, err := NewGenerator(5).GenerateRoundContent(RiddleArena, Settings{RoundCount: len(riddleBank)})
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, it := range items {
		assert.False(t, seen[it.Prompt], "riddle repeated: %s", it.Prompt)
		seen[it.Prompt] = true
		assert.NotEmpty(t, it.Answer)
	}
}

func TestGenerator_RiddleDeckIsPerRoom(t *testing.T) {
	g := NewGenerator(11)
	for range 5 {
		items, err := g.GenerateRoundContent(RiddleArena, Settings{RoundCount: 12})
		require.NoError(t, err)

		seen := map[string]bool{}
		for _, it := range items {
			assert.False(t, seen[it.Prompt], "riddle repeated: %s", it.Prompt)
			seen[it.Prompt] = true
		}
	}
}

func TestGenerator_RiddleRoundsCappedByBank(t *testing.T) {
	_, err := NewGenerator(1).GenerateRoundContent(RiddleArena, Settings{RoundCount: len(riddleBank) + 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGenerator_MemoryLayouts(t *testing.T) {
	items, err := NewGenerator(3).GenerateRoundContent(MemoryMatch, Settings{RoundCount: 6})
	require.NoError(t, err)

	for i, it := range items {
		pairs := min(memoryBasePairs+i, memoryMaxPairs)
		require.Len(t, it.Cards, pairs*2)

		counts := map[string]int{}
		for _, c := range it.Cards {
			counts[c]++
		}
		assert.Len(t, counts, pairs)
		for card, n := range counts {
			assert.Equal(t, 2, n, "card %s", card)
		}
	}
}

func TestGenerator_Errors(t *testing.T) {
	g := NewGenerator(1)
	_, err := g.GenerateRoundContent(GameType("poker"), Settings{RoundCount: 1})
	assert.ErrorIs(t, err, domain.ErrUnknownGameType)

	_, err = g.GenerateRoundContent(SpeedMathDuel, Settings{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseGameType(t *testing.T) {
	gt, err := ParseGameType("  Speed_Math_Duel ")
	require.NoError(t, err)
	assert.Equal(t, SpeedMathDuel, gt)

	_, err = ParseGameType("checkers")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

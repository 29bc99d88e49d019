package quiz_test

import (
	"testing"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/quiz"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnswers(t *testing.T) {
	tests := []struct {
		name string
		text string
		want quiz.Answers
	}{
		{"compact", "1A 2C 3B", quiz.Answers{1: "A", 2: "C", 3: "B"}},
		{"colon", "1:A 2:C", quiz.Answers{1: "A", 2: "C"}},
		{"dash paren dot", "1-A 2)C 3.D", quiz.Answers{1: "A", 2: "C", 3: "D"}},
		{"lower case and spaces", "  1 : a\n2 -  b ", quiz.Answers{1: "A", 2: "B"}},
		{"canonical form", "1:A,2:C,10:D", quiz.Answers{1: "A", 2: "C", 10: "D"}},
		{"later duplicate wins", "1A 1B", quiz.Answers{1: "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := quiz.ParseAnswers(tt.text)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("should reject text without pairs", func(t *testing.T) {
		for _, text := range []string{"", "hello", "1E 2F", "ABCD"} {
			_, err := quiz.ParseAnswers(text)

			require.ErrorIs(t, err, quiz.ErrAnswersNotRecognized, text)
		}
	})
}

func TestAnswers_String(t *testing.T) {
	answers := quiz.Answers{10: "D", 2: "C", 1: "A"}

	assert.Equal(t, "1:A,2:C,10:D", answers.String())
	assert.Equal(t, []int{1, 2, 10}, answers.Questions())
}

func TestParseAnswerKey(t *testing.T) {
	t.Run("default key has twenty questions", func(t *testing.T) {
		key, err := quiz.ParseAnswerKey(quiz.DefaultAnswerKey)

		require.NoError(t, err)
		assert.Equal(t, 20, key.Total())
		c, ok := key.Expected(10)
		assert.True(t, ok)
		assert.Equal(t, quiz.ChoiceC, c)
		_, ok = key.Expected(21)
		assert.False(t, ok)
	})

	t.Run("should reject empty key", func(t *testing.T) {
		_, err := quiz.ParseAnswerKey("   ")

		require.Error(t, err)
	})

	t.Run("should reject invalid choices", func(t *testing.T) {
		_, err := quiz.NewAnswerKey(map[int]quiz.Choice{1: "E"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "question 1")
	})
}

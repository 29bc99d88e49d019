package telegram_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/casper4088/quiz-bot/internal/adapters/in/telegram"
	"github.com/casper4088/quiz-bot/internal/core/application/usecases/commands"
	"github.com/casper4088/quiz-bot/internal/core/application/usecases/queries"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/conversation"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/quiz"
	"github.com/casper4088/quiz-bot/internal/core/domain/services"
	"github.com/casper4088/quiz-bot/internal/pkg/metrics"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	quizID        = "quiz_001"
	student int64 = 501
	admin   int64 = 900
)

var now = time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC)

type quizFixture struct {
	bot         *fakeBot
	sessions    *memorySessions
	submit      *submitMock
	leaderboard *leaderboardMock
	export      *exportMock
	router      *telegram.QuizRouter
}

func newQuizFixture(t *testing.T) *quizFixture {
	t.Helper()
	f := &quizFixture{
		bot:         &fakeBot{},
		sessions:    newMemorySessions(),
		submit:      &submitMock{},
		leaderboard: &leaderboardMock{},
		export:      &exportMock{},
	}
	router, err := telegram.NewQuizRouter(telegram.QuizRouterDeps{
		Bot:         f.bot,
		Sessions:    f.sessions,
		Submit:      f.submit,
		Leaderboard: f.leaderboard,
		Export:      f.export,
		QuizID:      quizID,
		Total:       3,
		Admins:      []kernel.UserID{kernel.UserID(admin)},
		Clock:       kernel.FixedClock(now),
		Metrics:     metrics.NewBotMetrics(prometheus.NewRegistry()),
		Logger:      discard,
	})
	require.NoError(t, err)
	f.router = router
	return f
}

// gradedAttempt grades text against "1A 2B 3C" the same way the submit
// handler does.
func gradedAttempt(t *testing.T, userID int64, text string) commands.SubmitQuizAnswersResult {
	t.Helper()
	key, err := quiz.ParseAnswerKey("1A 2B 3C")
	require.NoError(t, err)
	answers, err := quiz.ParseAnswers(text)
	require.NoError(t, err)
	participant, err := quiz.NewParticipant(kernel.UserID(userID), "Aziz Karimov", "aziz")
	require.NoError(t, err)

	grade := services.NewAnswerGrader().Grade(key, answers)
	sub, err := quiz.NewSubmission(kernel.NewUUID(), participant, quizID, answers, grade, now)
	require.NoError(t, err)
	return commands.SubmitQuizAnswersResult{Submission: sub, Grade: grade}
}

func TestNewQuizRouter(t *testing.T) {
	_, err := telegram.NewQuizRouter(telegram.QuizRouterDeps{})
	require.Error(t, err)

	_, err = telegram.NewQuizRouter(telegram.QuizRouterDeps{
		Bot:         &fakeBot{},
		Sessions:    newMemorySessions(),
		Submit:      &submitMock{},
		Leaderboard: &leaderboardMock{},
		Export:      &exportMock{},
		QuizID:      quizID,
	})
	require.Error(t, err, "total must be positive")
}

func TestQuizRouter_StartAndHelp(t *testing.T) {
	f := newQuizFixture(t)

	f.router.HandleUpdate(context.Background(), command(student, student, "/start"))
	f.router.HandleUpdate(context.Background(), command(student, student, "/help"))

	texts := f.bot.texts()
	require.Len(t, texts, 2)
	assert.Contains(t, texts[0], "Hello!")
	assert.Contains(t, texts[1], "/test")
	assert.Contains(t, texts[1], "Questions: 1 to 3.")
}

func TestQuizRouter_TestCommandArmsSession(t *testing.T) {
	f := newQuizFixture(t)

	f.router.HandleUpdate(context.Background(), command(student, student, "/test"))

	assert.Equal(t, conversation.StepAwaitingQuizAnswers, f.sessions.step(student))
	assert.Contains(t, f.bot.lastText(), "Quiz started")
}

func TestQuizRouter_IgnoresTextWithoutQuiz(t *testing.T) {
	f := newQuizFixture(t)

	f.router.HandleUpdate(context.Background(), textMessage(student, student, "1A 2B 3C"))

	assert.Empty(t, f.bot.sent)
	f.submit.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestQuizRouter_RejectsUnrecognizedAnswers(t *testing.T) {
	f := newQuizFixture(t)
	f.router.HandleUpdate(context.Background(), command(student, student, "/test"))

	f.router.HandleUpdate(context.Background(), textMessage(student, student, "no idea"))

	assert.Contains(t, f.bot.lastText(), "Answers are not recognized")
	assert.Equal(t, conversation.StepAwaitingQuizAnswers, f.sessions.step(student))
	f.submit.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestQuizRouter_SubmitsAndRanks(t *testing.T) {
	f := newQuizFixture(t)
	result := gradedAttempt(t, student, "1A 2B 3D")
	board := services.NewLeaderboardRanker().Rank([]*quiz.Submission{result.Submission})

	f.submit.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SubmitQuizAnswersCommand) bool {
		return cmd.QuizID() == quizID &&
			cmd.Text() == "1A 2B 3D" &&
			cmd.Participant().UserID == kernel.UserID(student) &&
			cmd.Participant().FullName == "Aziz Karimov"
	})).Return(result, nil).Once()
	f.leaderboard.On("Handle", mock.Anything, mock.Anything).Return(board, nil).Once()

	f.router.HandleUpdate(context.Background(), command(student, student, "/test"))
	f.router.HandleUpdate(context.Background(), textMessage(student, student, "1A 2B 3D"))

	reply := f.bot.lastText()
	assert.Contains(t, reply, "Score: 2/3")
	assert.Contains(t, reply, "3:D ❌ (correct: C)")
	assert.Contains(t, reply, "👥 Participants: 1")
	assert.Contains(t, reply, "1) Aziz Karimov (@aziz) - 2/3")
	assert.Contains(t, reply, "🏁 Your place: 1/1 - 2/3")
	assert.Equal(t, conversation.StepIdle, f.sessions.step(student))
	f.submit.AssertExpectations(t)
	f.leaderboard.AssertExpectations(t)

	// a second message is not graded again
	f.router.HandleUpdate(context.Background(), textMessage(student, student, "1A 2B 3C"))
	f.submit.AssertNumberOfCalls(t, "Handle", 1)
}

func TestQuizRouter_GroupChatKeepsSessionsPerMember(t *testing.T) {
	const group int64 = -100123
	const bystander int64 = 777
	f := newQuizFixture(t)
	result := gradedAttempt(t, student, "1A 2B 3C")
	board := services.NewLeaderboardRanker().Rank([]*quiz.Submission{result.Submission})
	f.submit.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SubmitQuizAnswersCommand) bool {
		return cmd.Participant().UserID == kernel.UserID(student)
	})).Return(result, nil).Once()
	f.leaderboard.On("Handle", mock.Anything, mock.Anything).Return(board, nil).Once()

	f.router.HandleUpdate(context.Background(), command(group, student, "/test"))
	require.Equal(t, conversation.StepAwaitingQuizAnswers,
		f.sessions.stepOf(conversation.Key{ChatID: group, UserID: student}))

	sentBefore := len(f.bot.sent)
	f.router.HandleUpdate(context.Background(), textMessage(group, bystander, "1D 2D 3D"))

	assert.Len(t, f.bot.sent, sentBefore, "a bystander's message is not graded")
	f.submit.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	assert.Equal(t, conversation.StepAwaitingQuizAnswers,
		f.sessions.stepOf(conversation.Key{ChatID: group, UserID: student}))

	f.router.HandleUpdate(context.Background(), textMessage(group, student, "1A 2B 3C"))

	assert.Contains(t, f.bot.lastText(), "Score: 3/3")
	assert.Equal(t, conversation.StepIdle,
		f.sessions.stepOf(conversation.Key{ChatID: group, UserID: student}))
	f.submit.AssertExpectations(t)
}

func TestQuizRouter_Stats(t *testing.T) {
	t.Run("should refuse non admins", func(t *testing.T) {
		f := newQuizFixture(t)

		f.router.HandleUpdate(context.Background(), command(student, student, "/stats"))

		assert.Contains(t, f.bot.lastText(), "admins only")
		f.leaderboard.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should report empty leaderboard", func(t *testing.T) {
		f := newQuizFixture(t)
		f.leaderboard.On("Handle", mock.Anything, mock.Anything).Return(services.Leaderboard{}, nil)

		f.router.HandleUpdate(context.Background(), command(admin, admin, "/stats"))

		assert.Equal(t, "No results yet.", f.bot.lastText())
	})

	t.Run("should summarize best results", func(t *testing.T) {
		f := newQuizFixture(t)
		first := gradedAttempt(t, student, "1A 2B 3C")
		second := gradedAttempt(t, 502, "1A")
		board := services.NewLeaderboardRanker().Rank([]*quiz.Submission{first.Submission, second.Submission})
		f.leaderboard.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetLeaderboardQuery) bool {
			return q.QuizID() == quizID
		})).Return(board, nil)

		f.router.HandleUpdate(context.Background(), command(admin, admin, "/stats"))

		reply := f.bot.lastText()
		assert.Contains(t, reply, "Participants: 2")
		assert.Contains(t, reply, "Average score: 2.00/3")
		assert.Contains(t, reply, "1st place: Aziz Karimov (@aziz) - 3/3")
	})
}

func TestQuizRouter_Export(t *testing.T) {
	t.Run("should send workbook as document", func(t *testing.T) {
		f := newQuizFixture(t)
		f.export.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ExportCommand) bool {
			return cmd.Limit() == commands.DefaultExportLimit
		}), mock.Anything).Run(func(args mock.Arguments) {
			_, _ = io.WriteString(args.Get(2).(io.Writer), "xlsx-bytes")
		}).Return(7, nil)

		f.router.HandleUpdate(context.Background(), command(admin, admin, "/export"))

		require.Len(t, f.bot.sent, 1)
		doc, ok := f.bot.sent[0].(tgbotapi.DocumentConfig)
		require.True(t, ok)
		assert.Equal(t, admin, doc.ChatID)
		assert.Contains(t, doc.Caption, "7 rows")
		file, ok := doc.File.(tgbotapi.FileBytes)
		require.True(t, ok)
		assert.Equal(t, "results.xlsx", file.Name)
		assert.Equal(t, []byte("xlsx-bytes"), file.Bytes)
	})

	t.Run("should say when there is nothing to export", func(t *testing.T) {
		f := newQuizFixture(t)
		f.export.On("Handle", mock.Anything, mock.Anything, mock.Anything).Return(0, commands.ErrNothingToExport)

		f.router.HandleUpdate(context.Background(), command(admin, admin, "/export"))

		assert.Equal(t, "No results yet, nothing to export.", f.bot.lastText())
	})

	t.Run("should refuse non admins", func(t *testing.T) {
		f := newQuizFixture(t)

		f.router.HandleUpdate(context.Background(), command(student, student, "/export"))

		assert.Contains(t, f.bot.lastText(), "admins only")
		f.export.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything, mock.Anything)
	})
}

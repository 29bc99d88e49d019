package telegram

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/casper4088/quiz-bot/internal/core/application/usecases/commands"
	"github.com/casper4088/quiz-bot/internal/core/application/usecases/queries"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/conversation"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/quiz"
	"github.com/casper4088/quiz-bot/internal/core/domain/services"
	"github.com/casper4088/quiz-bot/internal/core/ports"
	"github.com/casper4088/quiz-bot/internal/pkg/errs"
	"github.com/casper4088/quiz-bot/internal/pkg/metrics"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	quizBotName = "quiz"
	exportName  = "results.xlsx"
	topListSize = 5
)

type SubmitAnswersHandler interface {
	Handle(ctx context.Context, cmd commands.SubmitQuizAnswersCommand) (commands.SubmitQuizAnswersResult, error)
}

type LeaderboardHandler interface {
	Handle(ctx context.Context, query queries.GetLeaderboardQuery) (services.Leaderboard, error)
}

type ExportHandler interface {
	Handle(ctx context.Context, cmd commands.ExportCommand, w io.Writer) (int, error)
}

// QuizRouterDeps wires a QuizRouter.
type QuizRouterDeps struct {
	Bot         BotAPI
	Sessions    ports.ConversationStore
	Submit      SubmitAnswersHandler
	Leaderboard LeaderboardHandler
	Export      ExportHandler
	QuizID      string
	Total       int
	Admins      []kernel.UserID
	Clock       kernel.Clock
	Metrics     *metrics.BotMetrics
	Logger      *slog.Logger
}

// QuizRouter answers quiz bot messages.
type QuizRouter struct {
	bot         BotAPI
	sessions    ports.ConversationStore
	submit      SubmitAnswersHandler
	leaderboard LeaderboardHandler
	export      ExportHandler
	quizID      string
	total       int
	admins      map[kernel.UserID]struct{}
	clock       kernel.Clock
	metrics     *metrics.BotMetrics
	logger      *slog.Logger
}

func NewQuizRouter(deps QuizRouterDeps) (*QuizRouter, error) {
	if deps.Bot == nil {
		return nil, errs.NewValueIsRequiredError("bot")
	}
	if deps.Sessions == nil {
		return nil, errs.NewValueIsRequiredError("sessions")
	}
	if deps.Submit == nil || deps.Leaderboard == nil || deps.Export == nil {
		return nil, errs.NewValueIsRequiredError("quiz handlers")
	}
	if deps.QuizID == "" {
		return nil, errs.NewValueIsRequiredError("quiz id")
	}
	if deps.Total <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("total", deps.Total, 1, math.MaxInt32)
	}
	if deps.Clock == nil {
		deps.Clock = kernel.RealClock()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	return &QuizRouter{
		bot:         deps.Bot,
		sessions:    deps.Sessions,
		submit:      deps.Submit,
		leaderboard: deps.Leaderboard,
		export:      deps.Export,
		quizID:      deps.QuizID,
		total:       deps.Total,
		admins:      userSet(deps.Admins),
		clock:       deps.Clock,
		metrics:     deps.Metrics,
		logger:      deps.Logger.With("bot", quizBotName),
	}, nil
}

func (r *QuizRouter) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	r.metrics.IncUpdate(quizBotName, updateKind(update))

	var err error
	switch {
	case msg.IsCommand():
		err = r.handleCommand(ctx, msg)
	case msg.Text != "":
		err = r.handleText(ctx, msg)
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to handle message",
			"chat_id", msg.Chat.ID, "user_id", msg.From.ID, "error", err)
		r.reply(ctx, msg.Chat.ID, textSomethingWentWrong)
	}
}

func (r *QuizRouter) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		r.reply(ctx, chatID, quizGreeting(r.total))
	case "help":
		r.reply(ctx, chatID, quizHelp(r.total))
	case "test":
		session := conversation.NewSession(sessionKey(msg), r.clock.Now())
		session.StartQuiz(r.clock.Now())
		if err := r.sessions.Save(ctx, session); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		r.reply(ctx, chatID, quizStarted(r.total))
	case "stats":
		if !r.isAdmin(msg.From) {
			r.reply(ctx, chatID, textAdminOnly)
			return nil
		}
		return r.sendStats(ctx, chatID)
	case "export":
		if !r.isAdmin(msg.From) {
			r.reply(ctx, chatID, textAdminOnly)
			return nil
		}
		return r.sendExport(ctx, chatID)
	default:
		r.reply(ctx, chatID, quizHelp(r.total))
	}
	return nil
}

// handleText grades the message when its sender is waiting for answers in
// this chat and ignores it otherwise.
func (r *QuizRouter) handleText(ctx context.Context, msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID

	session, err := r.sessions.Get(ctx, sessionKey(msg))
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if session.Step() != conversation.StepAwaitingQuizAnswers {
		return nil
	}

	if _, err = session.Apply(conversation.TextInput(msg.Text), r.clock.Now()); err != nil {
		if errors.Is(err, quiz.ErrAnswersNotRecognized) {
			r.reply(ctx, chatID, quizFormatError(r.total))
			return nil
		}
		return err
	}

	participant, err := quiz.NewParticipant(kernel.UserID(msg.From.ID), fullName(msg.From), msg.From.UserName)
	if err != nil {
		return err
	}
	cmd, err := commands.NewSubmitQuizAnswersCommand(kernel.NewUUID(), participant, r.quizID, msg.Text)
	if err != nil {
		return err
	}
	result, err := r.submit.Handle(ctx, cmd)
	if err != nil {
		return fmt.Errorf("submit answers: %w", err)
	}
	r.metrics.IncSubmission(r.quizID)

	if err = r.sessions.Delete(ctx, session.Key()); err != nil {
		r.logger.WarnContext(ctx, "failed to close quiz session", "session", session.Key().String(), "error", err)
	}

	board, err := r.loadLeaderboard(ctx)
	if err != nil {
		return err
	}
	r.reply(ctx, chatID, quizResult(result.Grade, board, participant.UserID))
	return nil
}

func (r *QuizRouter) sendStats(ctx context.Context, chatID int64) error {
	board, err := r.loadLeaderboard(ctx)
	if err != nil {
		return err
	}
	r.reply(ctx, chatID, quizStats(board.Stats(), r.total))
	return nil
}

func (r *QuizRouter) sendExport(ctx context.Context, chatID int64) error {
	cmd, err := commands.NewExportCommand(commands.DefaultExportLimit)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	rows, err := r.export.Handle(ctx, cmd, &buf)
	if errors.Is(err, commands.ErrNothingToExport) {
		r.reply(ctx, chatID, textNothingToExport)
		return nil
	}
	if err != nil {
		return fmt.Errorf("export results: %w", err)
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: exportName, Bytes: buf.Bytes()})
	doc.Caption = fmt.Sprintf("📁 Results (%s, %d rows)", exportName, rows)
	if _, err = r.bot.Send(doc); err != nil {
		return fmt.Errorf("send export: %w", err)
	}
	return nil
}

func (r *QuizRouter) loadLeaderboard(ctx context.Context) (services.Leaderboard, error) {
	query, err := queries.NewGetLeaderboardQuery(r.quizID)
	if err != nil {
		return services.Leaderboard{}, err
	}
	board, err := r.leaderboard.Handle(ctx, query)
	if err != nil {
		return services.Leaderboard{}, fmt.Errorf("load leaderboard: %w", err)
	}
	return board, nil
}

func (r *QuizRouter) isAdmin(u *tgbotapi.User) bool {
	_, ok := r.admins[kernel.UserID(u.ID)]
	return ok
}

func (r *QuizRouter) reply(ctx context.Context, chatID int64, text string) {
	if _, err := r.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		r.logger.WarnContext(ctx, "failed to send reply", "chat_id", chatID, "error", err)
	}
}

package telegram

import (
	"fmt"
	"strings"

	outbound "github.com/casper4088/quiz-bot/internal/adapters/out/telegram"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/conversation"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/quiz"
	"github.com/casper4088/quiz-bot/internal/core/domain/services"
)

const (
	textSomethingWentWrong = "⚠️ Something went wrong, please try again."
	textAdminOnly          = "⛔ This command is for admins only."
	textNothingToExport    = "No results yet, nothing to export."
	textNoResults          = "No results yet."
	textNoRanking          = "No ranking yet."
)

func quizHelp(total int) string {
	return "📝 Quiz bot\n\n" +
		"Commands:\n" +
		"  /test - start the quiz\n" +
		"  /help - show this help\n\n" +
		"Admin commands:\n" +
		"  /export - results as Excel (.xlsx)\n" +
		"  /stats - statistics\n\n" +
		"Send answers in one message:\n" +
		"  1A 2C 3B 4D ...\n" +
		"or\n" +
		"  1:A 2:C 3:B ...\n" +
		fmt.Sprintf("Questions: 1 to %d.\n", total)
}

func quizGreeting(total int) string {
	return "Hello!\n\n" + quizHelp(total)
}

func quizStarted(total int) string {
	return "✅ Quiz started.\n\n" +
		"Send all answers in one message.\n" +
		fmt.Sprintf("For example: 1A 2B 3C 4D ... (1 to %d)\n\n", total) +
		"I will check them as soon as they arrive."
}

func quizFormatError(total int) string {
	return "❗ Answers are not recognized.\n" +
		fmt.Sprintf("For example: 1A 2B 3C 4D ... (1 to %d)\n", total) +
		"Please send them again."
}

func topList(entries []services.LeaderboardEntry) string {
	if len(entries) == 0 {
		return textNoRanking
	}
	lines := make([]string, 0, len(entries))
	for i, e := range entries {
		lines = append(lines, fmt.Sprintf("%d) %s - %d/%d", i+1, e.Participant.DisplayName(), e.BestScore, e.Total))
	}
	return strings.Join(lines, "\n")
}

func quizResult(grade quiz.GradeResult, board services.Leaderboard, user kernel.UserID) string {
	var b strings.Builder
	b.WriteString("✅ Checked!\n\n")
	fmt.Fprintf(&b, "Score: %d/%d\n\n", grade.Score, grade.Total)
	b.WriteString(grade.Report())
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "👥 Participants: %d\n", board.Len())
	fmt.Fprintf(&b, "🏆 Top %d:\n%s\n\n", topListSize, topList(board.Top(topListSize)))

	if rank, entry, ok := board.RankOf(user); ok {
		fmt.Fprintf(&b, "🏁 Your place: %d/%d - %d/%d", rank, board.Len(), entry.BestScore, entry.Total)
	} else {
		b.WriteString("🏁 Your place: not ranked yet.")
	}
	return b.String()
}

func quizStats(stats services.LeaderboardStats, total int) string {
	if stats.Participants == 0 || stats.Leader == nil {
		return textNoResults
	}
	return "📊 Statistics (best results)\n\n" +
		fmt.Sprintf("Participants: %d\n", stats.Participants) +
		fmt.Sprintf("Average score: %.2f/%d\n", stats.AverageBestScore, total) +
		fmt.Sprintf("1st place: %s - %d/%d",
			stats.Leader.Participant.DisplayName(), stats.Leader.BestScore, stats.Leader.Total)
}

const (
	labelConfirm = "✅ Confirm"
	labelCancel  = "❌ Cancel"

	textNoOpenOrder   = "Send /order to create a service request."
	textOrderCanceled = "Order canceled."
	textTryAgain      = "⚠️ That does not look right."
	textStaleButton   = "This button is no longer valid."
)

func serviceHelp(isAgent bool) string {
	text := "🛠 Service bot\n\n" +
		"Commands:\n" +
		"  /order - create a service request\n" +
		"  /cancel - drop the request in progress\n" +
		"  /help - show this help"
	if isAgent {
		text += "\n\nYou are an agent: new orders arrive here. Press \"Take\" to claim one."
	}
	return text
}

func stepPrompt(step conversation.Step, draft conversation.Draft) string {
	switch step {
	case conversation.StepAwaitingServiceType:
		return "Choose the service type:"
	case conversation.StepAwaitingName:
		return "What is your name?"
	case conversation.StepAwaitingPhone:
		return "Your phone number? Share the contact or type it."
	case conversation.StepAwaitingProblem:
		return "Describe the problem."
	case conversation.StepAwaitingAddress:
		return "Address? Type it or share your location."
	case conversation.StepAwaitingConfirmation:
		return draftSummary(draft)
	default:
		return textNoOpenOrder
	}
}

func draftSummary(d conversation.Draft) string {
	var b strings.Builder
	b.WriteString("Please check your request:\n\n")
	fmt.Fprintf(&b, "Service: %s\n", outbound.ServiceTypeLabel(d.ServiceType))
	fmt.Fprintf(&b, "Name: %s\n", d.Name)
	fmt.Fprintf(&b, "Phone: %s\n", d.Phone)
	fmt.Fprintf(&b, "Problem: %s\n", d.Problem)
	if d.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", d.Address)
	}
	if d.Location != nil {
		fmt.Fprintf(&b, "Location: %s\n", d.Location.MapURL())
	}
	b.WriteString("\nConfirm?")
	return b.String()
}

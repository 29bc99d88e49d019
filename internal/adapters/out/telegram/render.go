package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/order"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func StatusLabel(s order.Status) string {
	switch s {
	case order.New:
		return "🆕 New"
	case order.InProgress:
		return "🔧 In progress"
	case order.Done:
		return "✅ Done"
	default:
		return s.String()
	}
}

func ServiceTypeLabel(st order.ServiceType) string {
	s := st.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// OrderCard is the plain-text card shown to agents.
func OrderCard(o *order.Order) string {
	d := o.Details()

	var b strings.Builder
	fmt.Fprintf(&b, "📋 Order #%s\n", o.ID().Short())
	fmt.Fprintf(&b, "Status: %s\n", StatusLabel(o.Status()))
	fmt.Fprintf(&b, "Service: %s\n", ServiceTypeLabel(d.ServiceType()))
	fmt.Fprintf(&b, "Name: %s\n", d.Name())
	fmt.Fprintf(&b, "Phone: %s\n", d.Phone())
	fmt.Fprintf(&b, "Problem: %s\n", d.Problem())
	if d.Address() != "" {
		fmt.Fprintf(&b, "Address: %s\n", d.Address())
	}
	if loc := d.Location(); loc != nil {
		fmt.Fprintf(&b, "Location: %s\n", loc.MapURL())
	}
	fmt.Fprintf(&b, "Created: %s UTC\n", o.CreatedAt().UTC().Format("2006-01-02 15:04"))

	if agent := o.AssignedTo(); agent != nil {
		fmt.Fprintf(&b, "Agent: %s\n", agent)
	} else {
		b.WriteString("Agent: not assigned\n")
	}
	if r := o.Rating(); r != nil {
		fmt.Fprintf(&b, "Rating: %s\n", stars(r.Int()))
	}

	return strings.TrimRight(b.String(), "\n")
}

// AgentKeyboard returns the buttons the card shows in chatID: take while the
// order is unclaimed, status moves on the assignee's copy, nothing otherwise.
func AgentKeyboard(o *order.Order, chatID int64) *tgbotapi.InlineKeyboardMarkup {
	if !o.IsAssigned() {
		markup := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🙋 Take", TakeCallback(o.ID()).Data()),
		))
		return &markup
	}
	if !o.IsAssignedTo(kernel.UserID(chatID)) {
		return nil
	}

	row := make([]tgbotapi.InlineKeyboardButton, 0, len(order.Statuses()))
	for _, action := range o.AvailableActions() {
		status, ok := action.TargetStatus()
		if !ok {
			continue
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			StatusLabel(status), StatusCallback(o.ID(), status).Data()))
	}
	if len(row) == 0 {
		return nil
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(row)
	return &markup
}

// RatingKeyboard offers scores 1..5 to the requester.
func RatingKeyboard(o *order.Order) tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, order.RatingMax)
	for score := order.RatingMin; score <= order.RatingMax; score++ {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			strconv.Itoa(score)+"⭐", RateCallback(o.ID(), score).Data()))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

func stars(score int) string {
	return strings.Repeat("⭐", score) + fmt.Sprintf(" (%d/%d)", score, order.RatingMax)
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// BotMetrics counts chat traffic and order lifecycle events.
type BotMetrics struct {
	updates       *prometheus.CounterVec
	orderEvents   *prometheus.CounterVec
	submissions   *prometheus.CounterVec
	notifyFailure *prometheus.CounterVec
}

func NewBotMetrics(reg prometheus.Registerer) *BotMetrics {
	if reg == nil {
		return &BotMetrics{}
	}
	updates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_updates_total",
		Help: "Chat updates handled, by bot and update kind.",
	}, []string{"bot", "kind"})
	orderEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_events_total",
		Help: "Order lifecycle notifications dispatched, by event.",
	}, []string{"event"})
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quiz_submissions_total",
		Help: "Graded quiz submissions, by quiz.",
	}, []string{"quiz"})
	notifyFailure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notification_failures_total",
		Help: "Chat messages that could not be sent or edited, by operation.",
	}, []string{"op"})
	reg.MustRegister(updates, orderEvents, submissions, notifyFailure)
	return &BotMetrics{
		updates:       updates,
		orderEvents:   orderEvents,
		submissions:   submissions,
		notifyFailure: notifyFailure,
	}
}

func (m *BotMetrics) IncUpdate(bot, kind string) {
	if m == nil || m.updates == nil {
		return
	}
	m.updates.WithLabelValues(normalizeLabel(bot), normalizeLabel(kind)).Inc()
}

func (m *BotMetrics) IncOrderEvent(event string) {
	if m == nil || m.orderEvents == nil {
		return
	}
	m.orderEvents.WithLabelValues(normalizeLabel(event)).Inc()
}

func (m *BotMetrics) IncSubmission(quizID string) {
	if m == nil || m.submissions == nil {
		return
	}
	m.submissions.WithLabelValues(normalizeLabel(quizID)).Inc()
}

// IncNotifyFailure counts a failed "send" or "edit".
func (m *BotMetrics) IncNotifyFailure(op string) {
	if m == nil || m.notifyFailure == nil {
		return
	}
	m.notifyFailure.WithLabelValues(normalizeLabel(op)).Inc()
}

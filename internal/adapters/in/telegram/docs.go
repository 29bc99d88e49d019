// Package telegram drives both bots from Telegram updates.
//
// Poll reads updates with long polling and hands each one to a router.
// QuizRouter serves the quiz bot and ServiceRouter serves the service-order
// bot. Routers translate messages and button presses into commands and
// queries; they never touch storage directly except for the per-chat
// conversation session.
package telegram

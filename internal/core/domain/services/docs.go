// Package services provides domain services for the quiz side of the bot:
// logic that works over many values rather than inside one aggregate.
//
// The package includes:
//   - AnswerGrader: grades parsed answers against an answer key
//   - LeaderboardRanker: ranks participants by their best submission
package services

// Package quiz models multiple-choice quiz submissions.
//
// The package includes:
//   - Choice and Answers: a participant's parsed answers keyed by question
//   - AnswerKey: the correct choice for every graded question
//   - GradeResult: score, total and per-question verdicts with a text report
//   - Participant: who submitted, with the display name used in rankings
//   - Submission: one stored attempt
//
// Answers are parsed tolerantly from free text. A participant may submit any
// number of times; ranking is done by services.LeaderboardRanker.
package quiz

package services

import (
	"cmp"
	"slices"
	"time"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/quiz"
)

// LeaderboardEntry is the standing of one participant: the best score over
// all of their attempts and the earliest moment that score was reached.
type LeaderboardEntry struct {
	Participant quiz.Participant
	BestScore   int
	Total       int
	BestAt      time.Time
	Attempts    int
}

// LeaderboardStats summarizes a leaderboard for the admin statistics view.
type LeaderboardStats struct {
	Participants     int
	AverageBestScore float64
	Leader           *LeaderboardEntry
}

// Leaderboard is an immutable ranking, best first.
type Leaderboard struct {
	entries []LeaderboardEntry
}

func (l Leaderboard) Len() int {
	return len(l.entries)
}

func (l Leaderboard) Entries() []LeaderboardEntry {
	return slices.Clone(l.entries)
}

// Top returns at most n leading entries.
func (l Leaderboard) Top(n int) []LeaderboardEntry {
	if n <= 0 {
		return nil
	}
	return slices.Clone(l.entries[:min(n, len(l.entries))])
}

// RankOf returns the 1-based rank of user, or false when the user never
// submitted.
func (l Leaderboard) RankOf(user kernel.UserID) (int, LeaderboardEntry, bool) {
	for i, e := range l.entries {
		if e.Participant.UserID == user {
			return i + 1, e, true
		}
	}
	return 0, LeaderboardEntry{}, false
}

func (l Leaderboard) Stats() LeaderboardStats {
	if len(l.entries) == 0 {
		return LeaderboardStats{}
	}

	sum := 0
	for _, e := range l.entries {
		sum += e.BestScore
	}
	leader := l.entries[0]

	return LeaderboardStats{
		Participants:     len(l.entries),
		AverageBestScore: float64(sum) / float64(len(l.entries)),
		Leader:           &leader,
	}
}

// LeaderboardRanker builds a Leaderboard from the full submission history of
// a quiz.
//
// Ranking rules:
//   - one entry per participant, scored by their best attempt
//   - a higher best score ranks first
//   - equal best scores are ordered by who reached that score first
//   - remaining ties are ordered by user id so the result is deterministic
//
// Names shown for a participant are the latest non-empty ones they submitted
// with, since chat names change over time.
type LeaderboardRanker struct{}

func NewLeaderboardRanker() LeaderboardRanker {
	return LeaderboardRanker{}
}

func (LeaderboardRanker) Rank(submissions []*quiz.Submission) Leaderboard {
	type standing struct {
		entry      LeaderboardEntry
		fullNameAt time.Time
		usernameAt time.Time
	}

	byUser := make(map[kernel.UserID]*standing)
	for _, s := range submissions {
		if s.Validate() != nil {
			continue
		}
		p := s.Participant()

		st, ok := byUser[p.UserID]
		if !ok {
			st = &standing{entry: LeaderboardEntry{
				Participant: quiz.Participant{UserID: p.UserID},
				BestScore:   s.Score(),
				BestAt:      s.CreatedAt(),
			}}
			byUser[p.UserID] = st
		}

		e := &st.entry
		e.Attempts++
		e.Total = max(e.Total, s.Total())

		switch {
		case s.Score() > e.BestScore:
			e.BestScore = s.Score()
			e.BestAt = s.CreatedAt()
		case s.Score() == e.BestScore && s.CreatedAt().Before(e.BestAt):
			e.BestAt = s.CreatedAt()
		}

		if p.FullName != "" && !s.CreatedAt().Before(st.fullNameAt) {
			e.Participant.FullName = p.FullName
			st.fullNameAt = s.CreatedAt()
		}
		if p.Username != "" && !s.CreatedAt().Before(st.usernameAt) {
			e.Participant.Username = p.Username
			st.usernameAt = s.CreatedAt()
		}
	}

	entries := make([]LeaderboardEntry, 0, len(byUser))
	for _, st := range byUser {
		entries = append(entries, st.entry)
	}
	slices.SortFunc(entries, func(a, b LeaderboardEntry) int {
		if c := cmp.Compare(b.BestScore, a.BestScore); c != 0 {
			return c
		}
		if c := a.BestAt.Compare(b.BestAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Participant.UserID, b.Participant.UserID)
	})

	return Leaderboard{entries: entries}
}

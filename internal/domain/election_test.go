package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestElectionStatusAt(t *testing.T) {
	startsAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	endsAt := time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC)
	election := Election{
		StartsAt: startsAt,
		EndsAt:   endsAt,
	}

	tests := []struct {
		name string
		now  time.Time
		want ElectionStatus
	}{
		{
			name: "before the window opens",
			now:  startsAt.Add(-time.Hour),
			want: StatusUpcoming,
		},
		{
			name: "one second before start",
			now:  startsAt.Add(-time.Second),
			want: StatusUpcoming,
		},
		{
			name: "exactly at start",
			now:  startsAt,
			want: StatusActive,
		},
		{
			name: "mid window",
			now:  startsAt.Add(48 * time.Hour),
			want: StatusActive,
		},
		{
			name: "one second before end",
			now:  endsAt.Add(-time.Second),
			want: StatusActive,
		},
		{
			name: "exactly at end",
			now:  endsAt,
			want: StatusCompleted,
		},
		{
			name: "long after the window",
			now:  endsAt.Add(240 * time.Hour),
			want: StatusCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, election.StatusAt(tt.now))
		})
	}
}

func TestElectionStatusAtNeverMovesBackwards(t *testing.T) {
	election := Election{
		StartsAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC),
	}

	rank := map[ElectionStatus]int{
		StatusUpcoming:  0,
		StatusActive:    1,
		StatusCompleted: 2,
	}

	now := election.StartsAt.Add(-24 * time.Hour)
	previous := election.StatusAt(now)
	for i := 0; i < 24*10; i++ {
		now = now.Add(time.Hour)
		current := election.StatusAt(now)
		assert.GreaterOrEqual(t, rank[current], rank[previous], "status regressed at %v", now)
		previous = current
	}
}

func TestVoteShare(t *testing.T) {
	tests := []struct {
		name  string
		count int
		total int
		want  int
	}{
		{"zero total yields zero", 3, 0, 0},
		{"zero count", 0, 10, 0},
		{"exact half", 5, 10, 50},
		{"thirty percent", 3, 10, 30},
		{"twenty percent", 2, 10, 20},
		{"rounds up", 1, 3, 33},
		{"rounds to nearest", 2, 3, 67},
		{"all votes", 7, 7, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VoteShare(tt.count, tt.total))
		})
	}
}

func TestVoteShareSplitAcrossCandidates(t *testing.T) {
	// 10 votes split 5/3/2 must report 50/30/20.
	total := 10
	assert.Equal(t, 50, VoteShare(5, total))
	assert.Equal(t, 30, VoteShare(3, total))
	assert.Equal(t, 20, VoteShare(2, total))
}

func TestCandidacyApplicationIsDecided(t *testing.T) {
	assert.False(t, CandidacyApplication{Status: ApplicationPending}.IsDecided())
	assert.True(t, CandidacyApplication{Status: ApplicationApproved}.IsDecided())
	assert.True(t, CandidacyApplication{Status: ApplicationRejected}.IsDecided())
}

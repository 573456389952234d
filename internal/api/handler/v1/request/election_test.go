package request

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyRequestStatementLength(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		wantErr   bool
	}{
		{"nine characters fails", strings.Repeat("a", 9), true},
		{"ten characters passes", strings.Repeat("a", 10), false},
		{"empty fails", "", true},
		{"long statement passes", strings.Repeat("a", 500), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := ApplyRequest{RoleID: 1, Statement: tt.statement}
			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateElectionRequestTimestamps(t *testing.T) {
	valid := CreateElectionRequest{
		Title:    "Spring Board",
		ClubID:   1,
		StartsAt: "2026-03-01T09:00:00Z",
		EndsAt:   "2026-03-08T09:00:00Z",
	}
	require.NoError(t, valid.Validate())

	startsAt, endsAt, err := valid.Window()
	require.NoError(t, err)
	assert.True(t, endsAt.After(startsAt))

	badFormat := valid
	badFormat.StartsAt = "01/03/2026"
	assert.Error(t, badFormat.Validate())

	missingEnd := valid
	missingEnd.EndsAt = ""
	assert.Error(t, missingEnd.Validate())
}

func TestReviewApplicationRequestDecision(t *testing.T) {
	assert.NoError(t, (&ReviewApplicationRequest{Decision: "approve"}).Validate())
	assert.NoError(t, (&ReviewApplicationRequest{Decision: "reject"}).Validate())
	assert.Error(t, (&ReviewApplicationRequest{Decision: "maybe"}).Validate())
	assert.Error(t, (&ReviewApplicationRequest{}).Validate())
}

func TestCastVoteRequest(t *testing.T) {
	assert.NoError(t, (&CastVoteRequest{CandidateID: 5}).Validate())
	assert.Error(t, (&CastVoteRequest{}).Validate())
}

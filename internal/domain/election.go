package domain

import (
	"math"
	"time"
)

type ElectionStatus string

const (
	StatusUpcoming  ElectionStatus = "upcoming"
	StatusActive    ElectionStatus = "active"
	StatusCompleted ElectionStatus = "completed"
)

type Election struct {
	ID          uint           `json:"id"`
	ClubID      uint           `json:"club_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	StartsAt    time.Time      `json:"starts_at"`
	EndsAt      time.Time      `json:"ends_at"`
	Status      ElectionStatus `json:"status"`
	Roles       []Role         `json:"roles,omitempty"`
	Candidates  []Candidate    `json:"candidates,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// StatusAt derives the election status from the clock alone. It is the only
// authority on status; nothing is stored and there are no forced transitions.
func (e Election) StatusAt(now time.Time) ElectionStatus {
	switch {
	case now.Before(e.StartsAt):
		return StatusUpcoming
	case now.Before(e.EndsAt):
		return StatusActive
	default:
		return StatusCompleted
	}
}

type Role struct {
	ID          uint      `json:"id"`
	ElectionID  uint      `json:"election_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

type CandidacyApplication struct {
	ID          uint              `json:"id"`
	ElectionID  uint              `json:"election_id"`
	RoleID      uint              `json:"role_id"`
	ApplicantID uint              `json:"applicant_id"`
	Statement   string            `json:"statement"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (a CandidacyApplication) IsDecided() bool {
	return a.Status == ApplicationApproved || a.Status == ApplicationRejected
}

type Candidate struct {
	ID         uint      `json:"id"`
	ElectionID uint      `json:"election_id"`
	UserID     uint      `json:"user_id"`
	RoleID     *uint     `json:"role_id,omitempty"`
	Position   string    `json:"position"`
	Statement  string    `json:"statement"`
	VoteCount  int       `json:"vote_count"`
	CreatedAt  time.Time `json:"created_at"`
}

type Vote struct {
	ID          uint      `json:"id"`
	ElectionID  uint      `json:"election_id"`
	CandidateID uint      `json:"candidate_id"`
	VoterID     uint      `json:"voter_id"`
	CastAt      time.Time `json:"cast_at"`
}

// VoteReceipt is the confirmation returned to the voter. It echoes only the
// acting voter's own choice.
type VoteReceipt struct {
	ReceiptID   string    `json:"receipt_id"`
	ElectionID  uint      `json:"election_id"`
	CandidateID uint      `json:"candidate_id"`
	CastAt      time.Time `json:"cast_at"`
}

type CandidateResult struct {
	CandidateID uint   `json:"candidate_id"`
	UserID      uint   `json:"user_id"`
	Name        string `json:"name"`
	Position    string `json:"position"`
	VoteCount   int    `json:"vote_count"`
	Percentage  int    `json:"percentage"`
}

// ElectionResults is computed on read, never persisted. Ties are reported
// as-is; declaring a winner is the caller's business.
type ElectionResults struct {
	ElectionID uint              `json:"election_id"`
	TotalVotes int               `json:"total_votes"`
	Candidates []CandidateResult `json:"candidates"`
	ComputedAt time.Time         `json:"computed_at"`
}

// VoteShare returns count/total as a rounded whole percentage, 0 when no
// votes were cast.
func VoteShare(count, total int) int {
	if total == 0 {
		return 0
	}

	return int(math.Round(float64(count) / float64(total) * 100))
}

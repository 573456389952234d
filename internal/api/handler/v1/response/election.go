package response

import (
	"time"

	"github.com/clubhub/clubhub-api/internal/domain"
)

type VoteReceiptResponse struct {
	ReceiptID   string    `json:"receipt_id"`
	ElectionID  uint      `json:"election_id"`
	CandidateID uint      `json:"candidate_id"`
	CastAt      time.Time `json:"cast_at"`
}

func NewVoteReceiptResponse(receipt domain.VoteReceipt) VoteReceiptResponse {
	return VoteReceiptResponse{
		ReceiptID:   receipt.ReceiptID,
		ElectionID:  receipt.ElectionID,
		CandidateID: receipt.CandidateID,
		CastAt:      receipt.CastAt,
	}
}

type VoteStatusResponse struct {
	ElectionID uint `json:"election_id"`
	HasVoted   bool `json:"has_voted"`
}

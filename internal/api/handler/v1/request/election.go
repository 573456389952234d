package request

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// MinStatementLength mirrors the service-level rule so obviously bad
// requests never reach it.
const MinStatementLength = 10

type CreateElectionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ClubID      uint   `json:"club_id"`
	StartsAt    string `json:"starts_at" format:"RFC3339"`
	EndsAt      string `json:"ends_at" format:"RFC3339"`
}

func (req *CreateElectionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 1000)),
		validation.Field(&req.ClubID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.StartsAt, validation.Required, validation.By(validateRFC3339)),
		validation.Field(&req.EndsAt, validation.Required, validation.By(validateRFC3339)),
	)
}

// Window parses the voting window. Call after Validate.
func (req *CreateElectionRequest) Window() (startsAt, endsAt time.Time, err error) {
	startsAt, err = time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("time.Parse(starts_at) -> %w", err)
	}

	endsAt, err = time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("time.Parse(ends_at) -> %w", err)
	}

	return startsAt, endsAt, nil
}

func validateRFC3339(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("invalid timestamp")
	}

	if _, err := time.Parse(time.RFC3339, s); err != nil {
		return fmt.Errorf("timestamp must be RFC3339")
	}

	return nil
}

type AddRoleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (req *AddRoleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
	)
}

type ApplyRequest struct {
	RoleID    uint   `json:"role_id"`
	Statement string `json:"statement"`
}

func (req *ApplyRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RoleID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Statement, validation.Required, validation.Length(MinStatementLength, 2000)),
	)
}

type ReviewApplicationRequest struct {
	Decision string `json:"decision"`
}

func (req *ReviewApplicationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Decision, validation.Required, validation.In("approve", "reject")),
	)
}

type AddCandidateRequest struct {
	UserID    uint   `json:"user_id"`
	Position  string `json:"position"`
	Statement string `json:"statement"`
}

func (req *AddCandidateRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.UserID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Position, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Statement, validation.Length(0, 2000)),
	)
}

type CastVoteRequest struct {
	CandidateID uint `json:"candidate_id"`
}

func (req *CastVoteRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CandidateID, validation.Required, validation.Min(uint(1))),
	)
}

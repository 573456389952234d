package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/clubhub/clubhub-api/internal/domain"
	"github.com/clubhub/clubhub-api/internal/repository/dao"
)

var (
	ErrElectionNotFound     = dao.ErrElectionNotFound
	ErrRoleNotFound         = dao.ErrRoleNotFound
	ErrDuplicateRole        = dao.ErrDuplicateRole
	ErrRoleInUse            = dao.ErrRoleInUse
	ErrApplicationNotFound  = dao.ErrApplicationNotFound
	ErrDuplicateApplication = dao.ErrDuplicateApplication
	ErrApplicationDecided   = dao.ErrApplicationDecided
	ErrCandidateNotFound    = dao.ErrCandidateNotFound
	ErrDuplicateCandidate   = dao.ErrDuplicateCandidate
	ErrAlreadyVoted         = dao.ErrAlreadyVoted
	ErrStorageUnavailable   = dao.ErrStorageUnavailable
)

type ElectionDAO interface {
	Insert(ctx context.Context, election dao.Election) (dao.Election, error)
	FindByID(ctx context.Context, id uint) (dao.Election, error)
	Find(ctx context.Context, clubID *uint, status string, now time.Time) ([]dao.Election, error)
	Delete(ctx context.Context, id uint) error
	InsertRole(ctx context.Context, role dao.Role) (dao.Role, error)
	FindRoleByID(ctx context.Context, id uint) (dao.Role, error)
	FindRolesByElectionID(ctx context.Context, electionID uint) ([]dao.Role, error)
	CountRoles(ctx context.Context, electionID uint) (int64, error)
	DeleteRole(ctx context.Context, roleID uint) error
	InsertApplication(ctx context.Context, application dao.CandidacyApplication) (dao.CandidacyApplication, error)
	FindApplicationByID(ctx context.Context, id uint) (dao.CandidacyApplication, error)
	FindApplicationsByElectionID(ctx context.Context, electionID uint) ([]dao.CandidacyApplication, error)
	FindOpenApplication(ctx context.Context, electionID, applicantID uint) (dao.CandidacyApplication, error)
	ApproveApplication(ctx context.Context, applicationID uint) (dao.Candidate, error)
	RejectApplication(ctx context.Context, applicationID uint) error
	InsertCandidate(ctx context.Context, candidate dao.Candidate) (dao.Candidate, error)
	FindCandidateByID(ctx context.Context, id uint) (dao.Candidate, error)
	FindCandidatesByElectionID(ctx context.Context, electionID uint) ([]dao.Candidate, error)
	InsertVote(ctx context.Context, vote dao.Vote) (dao.Vote, error)
	HasVoted(ctx context.Context, electionID, voterID uint) (bool, error)
	CountVotes(ctx context.Context, electionID uint) (int64, error)
	TallyVotes(ctx context.Context, electionID uint) ([]dao.CandidateTally, error)
}

type ElectionRepository struct {
	dao ElectionDAO
}

func NewElectionRepository(dao ElectionDAO) *ElectionRepository {
	return &ElectionRepository{
		dao: dao,
	}
}

func (r *ElectionRepository) Create(ctx context.Context, election domain.Election) (domain.Election, error) {
	created, err := r.dao.Insert(ctx, dao.Election{
		ClubID:      election.ClubID,
		Title:       election.Title,
		Description: election.Description,
		StartsAt:    election.StartsAt,
		EndsAt:      election.EndsAt,
	})
	if err != nil {
		return domain.Election{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ElectionRepository) FindByID(ctx context.Context, id uint) (domain.Election, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Election{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ElectionRepository) Find(ctx context.Context, clubID *uint, status domain.ElectionStatus, now time.Time) ([]domain.Election, error) {
	found, err := r.dao.Find(ctx, clubID, string(status), now)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Find -> %w", err)
	}

	elections := make([]domain.Election, len(found))
	for i, e := range found {
		elections[i] = r.daoToDomain(e)
	}

	return elections, nil
}

func (r *ElectionRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ElectionRepository) CreateRole(ctx context.Context, role domain.Role) (domain.Role, error) {
	created, err := r.dao.InsertRole(ctx, dao.Role{
		ElectionID:  role.ElectionID,
		Name:        role.Name,
		Description: role.Description,
	})
	if err != nil {
		return domain.Role{}, fmt.Errorf("r.dao.InsertRole -> %w", err)
	}

	return r.roleDaoToDomain(created), nil
}

func (r *ElectionRepository) FindRoleByID(ctx context.Context, id uint) (domain.Role, error) {
	found, err := r.dao.FindRoleByID(ctx, id)
	if err != nil {
		return domain.Role{}, fmt.Errorf("r.dao.FindRoleByID -> %w", err)
	}

	return r.roleDaoToDomain(found), nil
}

func (r *ElectionRepository) FindRolesByElectionID(ctx context.Context, electionID uint) ([]domain.Role, error) {
	found, err := r.dao.FindRolesByElectionID(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindRolesByElectionID -> %w", err)
	}

	roles := make([]domain.Role, len(found))
	for i, role := range found {
		roles[i] = r.roleDaoToDomain(role)
	}

	return roles, nil
}

func (r *ElectionRepository) CountRoles(ctx context.Context, electionID uint) (int64, error) {
	count, err := r.dao.CountRoles(ctx, electionID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountRoles -> %w", err)
	}

	return count, nil
}

func (r *ElectionRepository) DeleteRole(ctx context.Context, roleID uint) error {
	if err := r.dao.DeleteRole(ctx, roleID); err != nil {
		return fmt.Errorf("r.dao.DeleteRole -> %w", err)
	}

	return nil
}

func (r *ElectionRepository) CreateApplication(ctx context.Context, application domain.CandidacyApplication) (domain.CandidacyApplication, error) {
	created, err := r.dao.InsertApplication(ctx, dao.CandidacyApplication{
		ElectionID:  application.ElectionID,
		ApplicantID: application.ApplicantID,
		RoleID:      application.RoleID,
		Statement:   application.Statement,
		Status:      string(domain.ApplicationPending),
	})
	if err != nil {
		return domain.CandidacyApplication{}, fmt.Errorf("r.dao.InsertApplication -> %w", err)
	}

	return r.applicationDaoToDomain(created), nil
}

func (r *ElectionRepository) FindApplicationByID(ctx context.Context, id uint) (domain.CandidacyApplication, error) {
	found, err := r.dao.FindApplicationByID(ctx, id)
	if err != nil {
		return domain.CandidacyApplication{}, fmt.Errorf("r.dao.FindApplicationByID -> %w", err)
	}

	return r.applicationDaoToDomain(found), nil
}

func (r *ElectionRepository) FindApplicationsByElectionID(ctx context.Context, electionID uint) ([]domain.CandidacyApplication, error) {
	found, err := r.dao.FindApplicationsByElectionID(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindApplicationsByElectionID -> %w", err)
	}

	applications := make([]domain.CandidacyApplication, len(found))
	for i, a := range found {
		applications[i] = r.applicationDaoToDomain(a)
	}

	return applications, nil
}

func (r *ElectionRepository) FindOpenApplication(ctx context.Context, electionID, applicantID uint) (domain.CandidacyApplication, error) {
	found, err := r.dao.FindOpenApplication(ctx, electionID, applicantID)
	if err != nil {
		return domain.CandidacyApplication{}, fmt.Errorf("r.dao.FindOpenApplication -> %w", err)
	}

	return r.applicationDaoToDomain(found), nil
}

func (r *ElectionRepository) ApproveApplication(ctx context.Context, applicationID uint) (domain.Candidate, error) {
	candidate, err := r.dao.ApproveApplication(ctx, applicationID)
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("r.dao.ApproveApplication -> %w", err)
	}

	return r.candidateDaoToDomain(candidate), nil
}

func (r *ElectionRepository) RejectApplication(ctx context.Context, applicationID uint) error {
	if err := r.dao.RejectApplication(ctx, applicationID); err != nil {
		return fmt.Errorf("r.dao.RejectApplication -> %w", err)
	}

	return nil
}

func (r *ElectionRepository) CreateCandidate(ctx context.Context, candidate domain.Candidate) (domain.Candidate, error) {
	created, err := r.dao.InsertCandidate(ctx, dao.Candidate{
		ElectionID: candidate.ElectionID,
		UserID:     candidate.UserID,
		RoleID:     candidate.RoleID,
		Position:   candidate.Position,
		Statement:  candidate.Statement,
	})
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("r.dao.InsertCandidate -> %w", err)
	}

	return r.candidateDaoToDomain(created), nil
}

func (r *ElectionRepository) FindCandidateByID(ctx context.Context, id uint) (domain.Candidate, error) {
	found, err := r.dao.FindCandidateByID(ctx, id)
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("r.dao.FindCandidateByID -> %w", err)
	}

	return r.candidateDaoToDomain(found), nil
}

func (r *ElectionRepository) FindCandidatesByElectionID(ctx context.Context, electionID uint) ([]domain.Candidate, error) {
	found, err := r.dao.FindCandidatesByElectionID(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindCandidatesByElectionID -> %w", err)
	}

	candidates := make([]domain.Candidate, len(found))
	for i, c := range found {
		candidates[i] = r.candidateDaoToDomain(c)
	}

	return candidates, nil
}

func (r *ElectionRepository) CreateVote(ctx context.Context, vote domain.Vote) (domain.Vote, error) {
	created, err := r.dao.InsertVote(ctx, dao.Vote{
		ElectionID:  vote.ElectionID,
		VoterID:     vote.VoterID,
		CandidateID: vote.CandidateID,
		CastAt:      vote.CastAt,
	})
	if err != nil {
		return domain.Vote{}, fmt.Errorf("r.dao.InsertVote -> %w", err)
	}

	return r.voteDaoToDomain(created), nil
}

func (r *ElectionRepository) HasVoted(ctx context.Context, electionID, voterID uint) (bool, error) {
	voted, err := r.dao.HasVoted(ctx, electionID, voterID)
	if err != nil {
		return false, fmt.Errorf("r.dao.HasVoted -> %w", err)
	}

	return voted, nil
}

func (r *ElectionRepository) CountVotes(ctx context.Context, electionID uint) (int64, error) {
	count, err := r.dao.CountVotes(ctx, electionID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountVotes -> %w", err)
	}

	return count, nil
}

func (r *ElectionRepository) TallyVotes(ctx context.Context, electionID uint) ([]domain.CandidateResult, error) {
	rows, err := r.dao.TallyVotes(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.TallyVotes -> %w", err)
	}

	results := make([]domain.CandidateResult, len(rows))
	for i, row := range rows {
		results[i] = domain.CandidateResult{
			CandidateID: row.CandidateID,
			UserID:      row.UserID,
			Name:        row.Name,
			Position:    row.Position,
			VoteCount:   row.VoteCount,
		}
	}

	return results, nil
}

func (r *ElectionRepository) daoToDomain(e dao.Election) domain.Election {
	election := domain.Election{
		ID:          e.ID,
		ClubID:      e.ClubID,
		Title:       e.Title,
		Description: e.Description,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}

	for _, role := range e.Roles {
		election.Roles = append(election.Roles, r.roleDaoToDomain(role))
	}
	for _, candidate := range e.Candidates {
		election.Candidates = append(election.Candidates, r.candidateDaoToDomain(candidate))
	}

	return election
}

func (r *ElectionRepository) roleDaoToDomain(role dao.Role) domain.Role {
	return domain.Role{
		ID:          role.ID,
		ElectionID:  role.ElectionID,
		Name:        role.Name,
		Description: role.Description,
		CreatedAt:   role.CreatedAt,
	}
}

func (r *ElectionRepository) applicationDaoToDomain(a dao.CandidacyApplication) domain.CandidacyApplication {
	return domain.CandidacyApplication{
		ID:          a.ID,
		ElectionID:  a.ElectionID,
		RoleID:      a.RoleID,
		ApplicantID: a.ApplicantID,
		Statement:   a.Statement,
		Status:      domain.ApplicationStatus(a.Status),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (r *ElectionRepository) candidateDaoToDomain(c dao.Candidate) domain.Candidate {
	return domain.Candidate{
		ID:         c.ID,
		ElectionID: c.ElectionID,
		UserID:     c.UserID,
		RoleID:     c.RoleID,
		Position:   c.Position,
		Statement:  c.Statement,
		CreatedAt:  c.CreatedAt,
	}
}

func (r *ElectionRepository) voteDaoToDomain(v dao.Vote) domain.Vote {
	return domain.Vote{
		ID:          v.ID,
		ElectionID:  v.ElectionID,
		CandidateID: v.CandidateID,
		VoterID:     v.VoterID,
		CastAt:      v.CastAt,
	}
}

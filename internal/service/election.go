package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clubhub/clubhub-api/internal/domain"
	"github.com/clubhub/clubhub-api/internal/events"
	"github.com/clubhub/clubhub-api/internal/repository"
)

var (
	ErrElectionNotFound     = repository.ErrElectionNotFound
	ErrRoleNotFound         = repository.ErrRoleNotFound
	ErrDuplicateRole        = repository.ErrDuplicateRole
	ErrRoleInUse            = repository.ErrRoleInUse
	ErrApplicationNotFound  = repository.ErrApplicationNotFound
	ErrDuplicateApplication = repository.ErrDuplicateApplication
	ErrApplicationDecided   = repository.ErrApplicationDecided
	ErrCandidateNotFound    = repository.ErrCandidateNotFound
	ErrDuplicateCandidate   = repository.ErrDuplicateCandidate
	ErrAlreadyVoted         = repository.ErrAlreadyVoted
	ErrStorageUnavailable   = repository.ErrStorageUnavailable

	ErrNotAdmin               = errors.New("admin privileges required")
	ErrInvalidTimeRange       = errors.New("election must end after it starts")
	ErrElectionNotActive      = errors.New("election is not active")
	ErrElectionCompleted      = errors.New("election is already completed")
	ErrNotClubMember          = errors.New("user is not an approved member of this club")
	ErrNoRolesDefined         = errors.New("election has no roles, applications are disabled")
	ErrRoleNotInElection      = errors.New("role does not belong to this election")
	ErrStatementTooShort      = errors.New("statement must be at least 10 characters")
	ErrCandidateNotInElection = errors.New("candidate does not belong to this election")
	ErrResultsNotAvailable    = errors.New("results are not available until the election completes")
)

// MinStatementLength is the minimum length of a candidacy statement.
const MinStatementLength = 10

type ElectionRepository interface {
	Create(ctx context.Context, election domain.Election) (domain.Election, error)
	FindByID(ctx context.Context, id uint) (domain.Election, error)
	Find(ctx context.Context, clubID *uint, status domain.ElectionStatus, now time.Time) ([]domain.Election, error)
	Delete(ctx context.Context, id uint) error
	CreateRole(ctx context.Context, role domain.Role) (domain.Role, error)
	FindRoleByID(ctx context.Context, id uint) (domain.Role, error)
	FindRolesByElectionID(ctx context.Context, electionID uint) ([]domain.Role, error)
	CountRoles(ctx context.Context, electionID uint) (int64, error)
	DeleteRole(ctx context.Context, roleID uint) error
	CreateApplication(ctx context.Context, application domain.CandidacyApplication) (domain.CandidacyApplication, error)
	FindApplicationByID(ctx context.Context, id uint) (domain.CandidacyApplication, error)
	FindApplicationsByElectionID(ctx context.Context, electionID uint) ([]domain.CandidacyApplication, error)
	FindOpenApplication(ctx context.Context, electionID, applicantID uint) (domain.CandidacyApplication, error)
	ApproveApplication(ctx context.Context, applicationID uint) (domain.Candidate, error)
	RejectApplication(ctx context.Context, applicationID uint) error
	CreateCandidate(ctx context.Context, candidate domain.Candidate) (domain.Candidate, error)
	FindCandidateByID(ctx context.Context, id uint) (domain.Candidate, error)
	FindCandidatesByElectionID(ctx context.Context, electionID uint) ([]domain.Candidate, error)
	CreateVote(ctx context.Context, vote domain.Vote) (domain.Vote, error)
	HasVoted(ctx context.Context, electionID, voterID uint) (bool, error)
	CountVotes(ctx context.Context, electionID uint) (int64, error)
	TallyVotes(ctx context.Context, electionID uint) ([]domain.CandidateResult, error)
}

type EventPublisher interface {
	Publish(event events.Event)
}

type ResultsCache interface {
	Get(ctx context.Context, electionID uint) (domain.ElectionResults, bool)
	Set(ctx context.Context, results domain.ElectionResults)
	Invalidate(ctx context.Context, electionID uint)
}

type ElectionService struct {
	repo      ElectionRepository
	clubRepo  ClubRepository
	userRepo  UserRepository
	publisher EventPublisher
	cache     ResultsCache

	now func() time.Time
}

func NewElectionService(repo ElectionRepository, clubRepo ClubRepository, userRepo UserRepository, publisher EventPublisher, cache ResultsCache) *ElectionService {
	return &ElectionService{
		repo:      repo,
		clubRepo:  clubRepo,
		userRepo:  userRepo,
		publisher: publisher,
		cache:     cache,
		now:       time.Now,
	}
}

// CreateElection opens an election for a club. Only the club's president or
// an admin may create it, and the voting window must be non-empty.
func (s *ElectionService) CreateElection(ctx context.Context, election domain.Election, actor domain.User) (domain.Election, error) {
	club, err := s.clubRepo.FindByID(ctx, election.ClubID)
	if err != nil {
		return domain.Election{}, fmt.Errorf("s.clubRepo.FindByID -> %w", err)
	}

	if !actor.IsAdmin() && club.PresidentID != actor.ID {
		return domain.Election{}, ErrNotClubPresident
	}

	if !election.EndsAt.After(election.StartsAt) {
		return domain.Election{}, ErrInvalidTimeRange
	}

	created, err := s.repo.Create(ctx, election)
	if err != nil {
		return domain.Election{}, fmt.Errorf("s.repo.Create -> %w", err)
	}
	created.Status = created.StatusAt(s.now())

	s.publish(events.Event{
		Type:       events.ElectionCreated,
		ElectionID: created.ID,
		ClubID:     created.ClubID,
	})

	return created, nil
}

func (s *ElectionService) GetElection(ctx context.Context, id uint) (domain.Election, error) {
	election, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Election{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	election.Status = election.StatusAt(s.now())

	return election, nil
}

// ListElections returns elections holding the given status right now,
// optionally scoped to a club. An empty status returns everything.
func (s *ElectionService) ListElections(ctx context.Context, clubID *uint, status domain.ElectionStatus) ([]domain.Election, error) {
	now := s.now()

	elections, err := s.repo.Find(ctx, clubID, status, now)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Find -> %w", err)
	}

	for i := range elections {
		elections[i].Status = elections[i].StatusAt(now)
	}

	return elections, nil
}

// DeleteElection destroys an election and all its roles, candidates,
// applications and votes. Admin only.
func (s *ElectionService) DeleteElection(ctx context.Context, id uint, actor domain.User) error {
	if !actor.IsAdmin() {
		return ErrNotAdmin
	}

	election, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}

	s.publish(events.Event{
		Type:       events.ElectionDeleted,
		ElectionID: id,
		ClubID:     election.ClubID,
	})

	return nil
}

func (s *ElectionService) AddRole(ctx context.Context, role domain.Role, actor domain.User) (domain.Role, error) {
	election, err := s.repo.FindByID(ctx, role.ElectionID)
	if err != nil {
		return domain.Role{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = s.authorizeOwner(ctx, election, actor); err != nil {
		return domain.Role{}, err
	}

	created, err := s.repo.CreateRole(ctx, role)
	if err != nil {
		return domain.Role{}, fmt.Errorf("s.repo.CreateRole -> %w", err)
	}

	return created, nil
}

func (s *ElectionService) RemoveRole(ctx context.Context, electionID, roleID uint, actor domain.User) error {
	election, err := s.repo.FindByID(ctx, electionID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = s.authorizeOwner(ctx, election, actor); err != nil {
		return err
	}

	role, err := s.repo.FindRoleByID(ctx, roleID)
	if err != nil {
		return fmt.Errorf("s.repo.FindRoleByID -> %w", err)
	}
	if role.ElectionID != electionID {
		return ErrRoleNotInElection
	}

	if err = s.repo.DeleteRole(ctx, roleID); err != nil {
		return fmt.Errorf("s.repo.DeleteRole -> %w", err)
	}

	return nil
}

func (s *ElectionService) ListRoles(ctx context.Context, electionID uint) ([]domain.Role, error) {
	roles, err := s.repo.FindRolesByElectionID(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindRolesByElectionID -> %w", err)
	}

	return roles, nil
}

// Apply submits a candidacy application. The applicant must be an approved
// member of the election's club, the election must not be completed, the
// role must belong to the election, and at most one non-rejected
// application may exist per (election, applicant).
func (s *ElectionService) Apply(ctx context.Context, electionID, roleID, applicantID uint, statement string) (domain.CandidacyApplication, error) {
	election, err := s.repo.FindByID(ctx, electionID)
	if err != nil {
		return domain.CandidacyApplication{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if election.StatusAt(s.now()) == domain.StatusCompleted {
		return domain.CandidacyApplication{}, ErrElectionCompleted
	}

	roleCount, err := s.repo.CountRoles(ctx, electionID)
	if err != nil {
		return domain.CandidacyApplication{}, fmt.Errorf("s.repo.CountRoles -> %w", err)
	}
	if roleCount == 0 {
		return domain.CandidacyApplication{}, ErrNoRolesDefined
	}

	role, err := s.repo.FindRoleByID(ctx, roleID)
	if err != nil {
		return domain.CandidacyApplication{}, fmt.Errorf("s.repo.FindRoleByID -> %w", err)
	}
	if role.ElectionID != electionID {
		return domain.CandidacyApplication{}, ErrRoleNotInElection
	}

	if len(strings.TrimSpace(statement)) < MinStatementLength {
		return domain.CandidacyApplication{}, ErrStatementTooShort
	}

	isMember, err := s.clubRepo.IsApprovedMember(ctx, election.ClubID, applicantID)
	if err != nil {
		return domain.CandidacyApplication{}, fmt.Errorf("s.clubRepo.IsApprovedMember -> %w", err)
	}
	if !isMember {
		return domain.CandidacyApplication{}, ErrNotClubMember
	}

	application, err := s.repo.CreateApplication(ctx, domain.CandidacyApplication{
		ElectionID:  electionID,
		RoleID:      roleID,
		ApplicantID: applicantID,
		Statement:   statement,
	})
	if err != nil {
		return domain.CandidacyApplication{}, fmt.Errorf("s.repo.CreateApplication -> %w", err)
	}

	return application, nil
}

// ReviewApplication approves or rejects a pending application. Approval
// materializes the candidate atomically with the status change.
func (s *ElectionService) ReviewApplication(ctx context.Context, applicationID uint, approve bool, actor domain.User) (domain.Candidate, error) {
	application, err := s.repo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("s.repo.FindApplicationByID -> %w", err)
	}

	election, err := s.repo.FindByID(ctx, application.ElectionID)
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = s.authorizeOwner(ctx, election, actor); err != nil {
		return domain.Candidate{}, err
	}

	if !approve {
		if err = s.repo.RejectApplication(ctx, applicationID); err != nil {
			return domain.Candidate{}, fmt.Errorf("s.repo.RejectApplication -> %w", err)
		}

		s.publish(events.Event{
			Type:       events.ApplicationDecided,
			ElectionID: election.ID,
			ClubID:     election.ClubID,
		})

		return domain.Candidate{}, nil
	}

	candidate, err := s.repo.ApproveApplication(ctx, applicationID)
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("s.repo.ApproveApplication -> %w", err)
	}

	s.publish(events.Event{
		Type:       events.CandidateAdded,
		ElectionID: election.ID,
		ClubID:     election.ClubID,
	})

	return candidate, nil
}

// AddCandidateDirectly registers a candidate without an application, for
// presidents who curate the slate by hand. Authorization and uniqueness
// rules match the application path.
func (s *ElectionService) AddCandidateDirectly(ctx context.Context, electionID, userID uint, position, statement string, actor domain.User) (domain.Candidate, error) {
	election, err := s.repo.FindByID(ctx, electionID)
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = s.authorizeOwner(ctx, election, actor); err != nil {
		return domain.Candidate{}, err
	}

	if election.StatusAt(s.now()) == domain.StatusCompleted {
		return domain.Candidate{}, ErrElectionCompleted
	}

	if _, err = s.userRepo.FindByID(ctx, userID); err != nil {
		return domain.Candidate{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	candidate, err := s.repo.CreateCandidate(ctx, domain.Candidate{
		ElectionID: electionID,
		UserID:     userID,
		Position:   position,
		Statement:  statement,
	})
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("s.repo.CreateCandidate -> %w", err)
	}

	s.publish(events.Event{
		Type:       events.CandidateAdded,
		ElectionID: election.ID,
		ClubID:     election.ClubID,
	})

	return candidate, nil
}

func (s *ElectionService) ListApplications(ctx context.Context, electionID uint, actor domain.User) ([]domain.CandidacyApplication, error) {
	election, err := s.repo.FindByID(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = s.authorizeOwner(ctx, election, actor); err != nil {
		return nil, err
	}

	applications, err := s.repo.FindApplicationsByElectionID(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindApplicationsByElectionID -> %w", err)
	}

	return applications, nil
}

func (s *ElectionService) GetMyApplication(ctx context.Context, electionID, applicantID uint) (domain.CandidacyApplication, error) {
	application, err := s.repo.FindOpenApplication(ctx, electionID, applicantID)
	if err != nil {
		return domain.CandidacyApplication{}, fmt.Errorf("s.repo.FindOpenApplication -> %w", err)
	}

	return application, nil
}

// CastVote records the voter's single ballot for the election. The
// (election, voter) uniqueness is enforced by the storage layer, so two
// concurrent casts from the same voter yield exactly one vote and one
// ErrAlreadyVoted. Votes are immutable; there is no re-cast.
func (s *ElectionService) CastVote(ctx context.Context, electionID, voterID, candidateID uint) (domain.VoteReceipt, error) {
	election, err := s.repo.FindByID(ctx, electionID)
	if err != nil {
		return domain.VoteReceipt{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if election.StatusAt(s.now()) != domain.StatusActive {
		return domain.VoteReceipt{}, ErrElectionNotActive
	}

	candidate, err := s.repo.FindCandidateByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, ErrCandidateNotFound) {
			return domain.VoteReceipt{}, ErrCandidateNotInElection
		}

		return domain.VoteReceipt{}, fmt.Errorf("s.repo.FindCandidateByID -> %w", err)
	}
	if candidate.ElectionID != electionID {
		return domain.VoteReceipt{}, ErrCandidateNotInElection
	}

	isMember, err := s.clubRepo.IsApprovedMember(ctx, election.ClubID, voterID)
	if err != nil {
		return domain.VoteReceipt{}, fmt.Errorf("s.clubRepo.IsApprovedMember -> %w", err)
	}
	if !isMember {
		return domain.VoteReceipt{}, ErrNotClubMember
	}

	vote, err := s.repo.CreateVote(ctx, domain.Vote{
		ElectionID:  electionID,
		VoterID:     voterID,
		CandidateID: candidateID,
		CastAt:      s.now().UTC(),
	})
	if err != nil {
		return domain.VoteReceipt{}, fmt.Errorf("s.repo.CreateVote -> %w", err)
	}

	return domain.VoteReceipt{
		ReceiptID:   uuid.NewString(),
		ElectionID:  vote.ElectionID,
		CandidateID: vote.CandidateID,
		CastAt:      vote.CastAt,
	}, nil
}

func (s *ElectionService) HasVoted(ctx context.Context, electionID, voterID uint) (bool, error) {
	voted, err := s.repo.HasVoted(ctx, electionID, voterID)
	if err != nil {
		return false, fmt.Errorf("s.repo.HasVoted -> %w", err)
	}

	return voted, nil
}

// Results tallies the election. Available only once the election has
// completed; ties are reported as-is and no winner is declared here.
func (s *ElectionService) Results(ctx context.Context, electionID uint) (domain.ElectionResults, error) {
	election, err := s.repo.FindByID(ctx, electionID)
	if err != nil {
		return domain.ElectionResults{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if election.StatusAt(s.now()) != domain.StatusCompleted {
		return domain.ElectionResults{}, ErrResultsNotAvailable
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, electionID); ok {
			return cached, nil
		}
	}

	candidates, err := s.repo.TallyVotes(ctx, electionID)
	if err != nil {
		return domain.ElectionResults{}, fmt.Errorf("s.repo.TallyVotes -> %w", err)
	}

	total := 0
	for _, c := range candidates {
		total += c.VoteCount
	}
	for i := range candidates {
		candidates[i].Percentage = domain.VoteShare(candidates[i].VoteCount, total)
	}

	results := domain.ElectionResults{
		ElectionID: electionID,
		TotalVotes: total,
		Candidates: candidates,
		ComputedAt: s.now().UTC(),
	}

	if s.cache != nil {
		s.cache.Set(ctx, results)
	}

	return results, nil
}

// authorizeOwner checks that actor owns the election: the president of the
// owning club, or an admin.
func (s *ElectionService) authorizeOwner(ctx context.Context, election domain.Election, actor domain.User) error {
	if actor.IsAdmin() {
		return nil
	}

	club, err := s.clubRepo.FindByID(ctx, election.ClubID)
	if err != nil {
		return fmt.Errorf("s.clubRepo.FindByID -> %w", err)
	}

	if club.PresidentID != actor.ID {
		return ErrNotClubPresident
	}

	return nil
}

func (s *ElectionService) publish(event events.Event) {
	if s.publisher == nil {
		return
	}

	event.At = s.now().UTC()
	s.publisher.Publish(event)
}

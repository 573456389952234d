package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/clubhub/clubhub-api/internal/domain"
	"github.com/clubhub/clubhub-api/internal/repository"
)

var (
	ErrClubNotFound       = repository.ErrClubNotFound
	ErrAlreadyMember      = repository.ErrAlreadyMember
	ErrMembershipNotFound = repository.ErrMembershipNotFound
	ErrNotClubPresident   = errors.New("user is not the president of this club")
)

type ClubRepository interface {
	Create(ctx context.Context, club domain.Club) (domain.Club, error)
	FindByID(ctx context.Context, id uint) (domain.Club, error)
	FindAll(ctx context.Context) ([]domain.Club, error)
	AddMember(ctx context.Context, clubID, userID uint) (domain.ClubMembership, error)
	FindMembership(ctx context.Context, clubID, userID uint) (domain.ClubMembership, error)
	ApproveMember(ctx context.Context, membershipID uint) error
	IsApprovedMember(ctx context.Context, clubID, userID uint) (bool, error)
	FindMembershipsByClubID(ctx context.Context, clubID uint) ([]domain.ClubMembership, error)
}

type ClubService struct {
	repo     ClubRepository
	userRepo UserRepository
}

func NewClubService(repo ClubRepository, userRepo UserRepository) *ClubService {
	return &ClubService{
		repo:     repo,
		userRepo: userRepo,
	}
}

// CreateClub founds a club with the creator as president. Students are
// promoted to club_president; admins keep their role.
func (s *ClubService) CreateClub(ctx context.Context, club domain.Club, creator domain.User) (domain.Club, error) {
	club.PresidentID = creator.ID

	created, err := s.repo.Create(ctx, club)
	if err != nil {
		return domain.Club{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if creator.Role == domain.RoleStudent {
		if err = s.userRepo.UpdateRole(ctx, creator.ID, domain.RolePresident); err != nil {
			return domain.Club{}, fmt.Errorf("s.userRepo.UpdateRole -> %w", err)
		}
	}

	return created, nil
}

func (s *ClubService) GetClub(ctx context.Context, id uint) (domain.Club, error) {
	club, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Club{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return club, nil
}

func (s *ClubService) ListClubs(ctx context.Context) ([]domain.Club, error) {
	clubs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return clubs, nil
}

// JoinClub records a pending membership request for the user.
func (s *ClubService) JoinClub(ctx context.Context, clubID, userID uint) (domain.ClubMembership, error) {
	if _, err := s.repo.FindByID(ctx, clubID); err != nil {
		return domain.ClubMembership{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	membership, err := s.repo.AddMember(ctx, clubID, userID)
	if err != nil {
		return domain.ClubMembership{}, fmt.Errorf("s.repo.AddMember -> %w", err)
	}

	return membership, nil
}

// ApproveMember approves a pending membership. Only the club president or
// an admin may approve.
func (s *ClubService) ApproveMember(ctx context.Context, clubID, userID uint, actor domain.User) error {
	club, err := s.repo.FindByID(ctx, clubID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !actor.IsAdmin() && club.PresidentID != actor.ID {
		return ErrNotClubPresident
	}

	membership, err := s.repo.FindMembership(ctx, clubID, userID)
	if err != nil {
		return fmt.Errorf("s.repo.FindMembership -> %w", err)
	}

	if err = s.repo.ApproveMember(ctx, membership.ID); err != nil {
		return fmt.Errorf("s.repo.ApproveMember -> %w", err)
	}

	return nil
}

func (s *ClubService) ListMembers(ctx context.Context, clubID uint) ([]domain.ClubMembership, error) {
	memberships, err := s.repo.FindMembershipsByClubID(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindMembershipsByClubID -> %w", err)
	}

	return memberships, nil
}

func (s *ClubService) IsApprovedMember(ctx context.Context, clubID, userID uint) (bool, error) {
	isMember, err := s.repo.IsApprovedMember(ctx, clubID, userID)
	if err != nil {
		return false, fmt.Errorf("s.repo.IsApprovedMember -> %w", err)
	}

	return isMember, nil
}

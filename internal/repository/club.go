package repository

import (
	"context"
	"fmt"

	"github.com/clubhub/clubhub-api/internal/domain"
	"github.com/clubhub/clubhub-api/internal/repository/dao"
)

var (
	ErrClubNotFound       = dao.ErrClubNotFound
	ErrAlreadyMember      = dao.ErrAlreadyMember
	ErrMembershipNotFound = dao.ErrMembershipNotFound
)

type ClubDAO interface {
	Insert(ctx context.Context, club dao.Club) (dao.Club, error)
	FindByID(ctx context.Context, id uint) (dao.Club, error)
	FindAll(ctx context.Context) ([]dao.Club, error)
	InsertMembership(ctx context.Context, membership dao.ClubMembership) (dao.ClubMembership, error)
	FindMembership(ctx context.Context, clubID, userID uint) (dao.ClubMembership, error)
	UpdateMembershipStatus(ctx context.Context, membershipID uint, status string) error
	IsApprovedMember(ctx context.Context, clubID, userID uint) (bool, error)
	FindMembershipsByClubID(ctx context.Context, clubID uint) ([]dao.ClubMembership, error)
}

type ClubRepository struct {
	dao ClubDAO
}

func NewClubRepository(dao ClubDAO) *ClubRepository {
	return &ClubRepository{
		dao: dao,
	}
}

func (r *ClubRepository) Create(ctx context.Context, club domain.Club) (domain.Club, error) {
	created, err := r.dao.Insert(ctx, dao.Club{
		Name:        club.Name,
		Description: club.Description,
		PresidentID: club.PresidentID,
	})
	if err != nil {
		return domain.Club{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ClubRepository) FindByID(ctx context.Context, id uint) (domain.Club, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Club{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ClubRepository) FindAll(ctx context.Context) ([]domain.Club, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	clubs := make([]domain.Club, len(found))
	for i, c := range found {
		clubs[i] = r.daoToDomain(c)
	}

	return clubs, nil
}

func (r *ClubRepository) AddMember(ctx context.Context, clubID, userID uint) (domain.ClubMembership, error) {
	created, err := r.dao.InsertMembership(ctx, dao.ClubMembership{
		ClubID: clubID,
		UserID: userID,
		Status: string(domain.MembershipPending),
	})
	if err != nil {
		return domain.ClubMembership{}, fmt.Errorf("r.dao.InsertMembership -> %w", err)
	}

	return r.membershipDaoToDomain(created), nil
}

func (r *ClubRepository) FindMembership(ctx context.Context, clubID, userID uint) (domain.ClubMembership, error) {
	found, err := r.dao.FindMembership(ctx, clubID, userID)
	if err != nil {
		return domain.ClubMembership{}, fmt.Errorf("r.dao.FindMembership -> %w", err)
	}

	return r.membershipDaoToDomain(found), nil
}

func (r *ClubRepository) ApproveMember(ctx context.Context, membershipID uint) error {
	if err := r.dao.UpdateMembershipStatus(ctx, membershipID, string(domain.MembershipApproved)); err != nil {
		return fmt.Errorf("r.dao.UpdateMembershipStatus -> %w", err)
	}

	return nil
}

func (r *ClubRepository) IsApprovedMember(ctx context.Context, clubID, userID uint) (bool, error) {
	isMember, err := r.dao.IsApprovedMember(ctx, clubID, userID)
	if err != nil {
		return false, fmt.Errorf("r.dao.IsApprovedMember -> %w", err)
	}

	return isMember, nil
}

func (r *ClubRepository) FindMembershipsByClubID(ctx context.Context, clubID uint) ([]domain.ClubMembership, error) {
	found, err := r.dao.FindMembershipsByClubID(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindMembershipsByClubID -> %w", err)
	}

	memberships := make([]domain.ClubMembership, len(found))
	for i, m := range found {
		memberships[i] = r.membershipDaoToDomain(m)
	}

	return memberships, nil
}

func (r *ClubRepository) daoToDomain(c dao.Club) domain.Club {
	return domain.Club{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		PresidentID: c.PresidentID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (r *ClubRepository) membershipDaoToDomain(m dao.ClubMembership) domain.ClubMembership {
	return domain.ClubMembership{
		ID:       m.ID,
		ClubID:   m.ClubID,
		UserID:   m.UserID,
		Status:   domain.MembershipStatus(m.Status),
		JoinedAt: m.CreatedAt,
	}
}

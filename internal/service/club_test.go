package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubhub/clubhub-api/internal/domain"
)

func TestCreateClubPromotesStudentToPresident(t *testing.T) {
	clubRepo := newFakeClubRepo()
	userRepo := &fakeUserRepo{users: map[uint]domain.User{
		1: {ID: 1, Name: "Marco", Role: domain.RoleStudent},
	}}
	svc := NewClubService(clubRepo, userRepo)

	club, err := svc.CreateClub(context.Background(), domain.Club{Name: "Robotics"}, userRepo.users[1])
	require.NoError(t, err)
	assert.Equal(t, uint(1), club.PresidentID)
	assert.Equal(t, domain.RolePresident, userRepo.users[1].Role)
}

func TestCreateClubKeepsAdminRole(t *testing.T) {
	clubRepo := newFakeClubRepo()
	userRepo := &fakeUserRepo{users: map[uint]domain.User{
		4: {ID: 4, Name: "Root", Role: domain.RoleAdmin},
	}}
	svc := NewClubService(clubRepo, userRepo)

	_, err := svc.CreateClub(context.Background(), domain.Club{Name: "Debate"}, userRepo.users[4])
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, userRepo.users[4].Role)
}

func TestApproveMemberAuthorization(t *testing.T) {
	clubRepo := newFakeClubRepo()
	userRepo := &fakeUserRepo{users: map[uint]domain.User{
		1: {ID: 1, Role: domain.RolePresident},
		2: {ID: 2, Role: domain.RoleStudent},
		3: {ID: 3, Role: domain.RoleStudent},
	}}
	svc := NewClubService(clubRepo, userRepo)

	club, err := clubRepo.Create(context.Background(), domain.Club{Name: "Chess", PresidentID: 1})
	require.NoError(t, err)

	_, err = svc.JoinClub(context.Background(), club.ID, 2)
	require.NoError(t, err)

	err = svc.ApproveMember(context.Background(), club.ID, 2, userRepo.users[3])
	assert.ErrorIs(t, err, ErrNotClubPresident)

	err = svc.ApproveMember(context.Background(), club.ID, 2, userRepo.users[1])
	assert.NoError(t, err)
}

func TestJoinClubUnknownClub(t *testing.T) {
	svc := NewClubService(newFakeClubRepo(), &fakeUserRepo{users: map[uint]domain.User{}})

	_, err := svc.JoinClub(context.Background(), 99, 1)
	assert.ErrorIs(t, err, ErrClubNotFound)
}

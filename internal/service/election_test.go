package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubhub/clubhub-api/internal/domain"
	"github.com/clubhub/clubhub-api/internal/events"
	"github.com/clubhub/clubhub-api/internal/repository"
)

type voteKey struct {
	electionID uint
	voterID    uint
}

// fakeElectionRepo mirrors the storage contract in memory, including the
// uniqueness rules the real schema enforces with indexes.
type fakeElectionRepo struct {
	nextID       uint
	elections    map[uint]domain.Election
	roles        map[uint]domain.Role
	applications map[uint]domain.CandidacyApplication
	candidates   map[uint]domain.Candidate
	votes        map[voteKey]domain.Vote
	tally        []domain.CandidateResult
}

func newFakeElectionRepo() *fakeElectionRepo {
	return &fakeElectionRepo{
		elections:    make(map[uint]domain.Election),
		roles:        make(map[uint]domain.Role),
		applications: make(map[uint]domain.CandidacyApplication),
		candidates:   make(map[uint]domain.Candidate),
		votes:        make(map[voteKey]domain.Vote),
	}
}

func (f *fakeElectionRepo) id() uint {
	f.nextID++

	return f.nextID
}

func (f *fakeElectionRepo) Create(_ context.Context, election domain.Election) (domain.Election, error) {
	election.ID = f.id()
	f.elections[election.ID] = election

	return election, nil
}

func (f *fakeElectionRepo) FindByID(_ context.Context, id uint) (domain.Election, error) {
	election, ok := f.elections[id]
	if !ok {
		return domain.Election{}, repository.ErrElectionNotFound
	}

	return election, nil
}

func (f *fakeElectionRepo) Find(_ context.Context, clubID *uint, status domain.ElectionStatus, now time.Time) ([]domain.Election, error) {
	var out []domain.Election
	for _, e := range f.elections {
		if clubID != nil && e.ClubID != *clubID {
			continue
		}
		if status != "" && e.StatusAt(now) != status {
			continue
		}
		out = append(out, e)
	}

	return out, nil
}

func (f *fakeElectionRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.elections[id]; !ok {
		return repository.ErrElectionNotFound
	}
	delete(f.elections, id)

	return nil
}

func (f *fakeElectionRepo) CreateRole(_ context.Context, role domain.Role) (domain.Role, error) {
	for _, r := range f.roles {
		if r.ElectionID == role.ElectionID && r.Name == role.Name {
			return domain.Role{}, repository.ErrDuplicateRole
		}
	}
	role.ID = f.id()
	f.roles[role.ID] = role

	return role, nil
}

func (f *fakeElectionRepo) FindRoleByID(_ context.Context, id uint) (domain.Role, error) {
	role, ok := f.roles[id]
	if !ok {
		return domain.Role{}, repository.ErrRoleNotFound
	}

	return role, nil
}

func (f *fakeElectionRepo) FindRolesByElectionID(_ context.Context, electionID uint) ([]domain.Role, error) {
	var out []domain.Role
	for _, r := range f.roles {
		if r.ElectionID == electionID {
			out = append(out, r)
		}
	}

	return out, nil
}

func (f *fakeElectionRepo) CountRoles(_ context.Context, electionID uint) (int64, error) {
	var n int64
	for _, r := range f.roles {
		if r.ElectionID == electionID {
			n++
		}
	}

	return n, nil
}

func (f *fakeElectionRepo) DeleteRole(_ context.Context, roleID uint) error {
	role, ok := f.roles[roleID]
	if !ok {
		return repository.ErrRoleNotFound
	}
	for _, c := range f.candidates {
		if (c.RoleID != nil && *c.RoleID == roleID) || (c.ElectionID == role.ElectionID && c.Position == role.Name) {
			return repository.ErrRoleInUse
		}
	}
	delete(f.roles, roleID)

	return nil
}

func (f *fakeElectionRepo) CreateApplication(_ context.Context, application domain.CandidacyApplication) (domain.CandidacyApplication, error) {
	for _, a := range f.applications {
		if a.ElectionID == application.ElectionID && a.ApplicantID == application.ApplicantID && a.Status != domain.ApplicationRejected {
			return domain.CandidacyApplication{}, repository.ErrDuplicateApplication
		}
	}
	application.ID = f.id()
	application.Status = domain.ApplicationPending
	f.applications[application.ID] = application

	return application, nil
}

func (f *fakeElectionRepo) FindApplicationByID(_ context.Context, id uint) (domain.CandidacyApplication, error) {
	application, ok := f.applications[id]
	if !ok {
		return domain.CandidacyApplication{}, repository.ErrApplicationNotFound
	}

	return application, nil
}

func (f *fakeElectionRepo) FindApplicationsByElectionID(_ context.Context, electionID uint) ([]domain.CandidacyApplication, error) {
	var out []domain.CandidacyApplication
	for _, a := range f.applications {
		if a.ElectionID == electionID {
			out = append(out, a)
		}
	}

	return out, nil
}

func (f *fakeElectionRepo) FindOpenApplication(_ context.Context, electionID, applicantID uint) (domain.CandidacyApplication, error) {
	for _, a := range f.applications {
		if a.ElectionID == electionID && a.ApplicantID == applicantID && a.Status != domain.ApplicationRejected {
			return a, nil
		}
	}

	return domain.CandidacyApplication{}, repository.ErrApplicationNotFound
}

func (f *fakeElectionRepo) ApproveApplication(ctx context.Context, applicationID uint) (domain.Candidate, error) {
	application, ok := f.applications[applicationID]
	if !ok {
		return domain.Candidate{}, repository.ErrApplicationNotFound
	}
	if application.Status != domain.ApplicationPending {
		return domain.Candidate{}, repository.ErrApplicationDecided
	}

	role, ok := f.roles[application.RoleID]
	if !ok {
		return domain.Candidate{}, repository.ErrRoleNotFound
	}

	roleID := application.RoleID
	candidate, err := f.CreateCandidate(ctx, domain.Candidate{
		ElectionID: application.ElectionID,
		UserID:     application.ApplicantID,
		RoleID:     &roleID,
		Position:   role.Name,
		Statement:  application.Statement,
	})
	if err != nil {
		return domain.Candidate{}, err
	}

	application.Status = domain.ApplicationApproved
	f.applications[applicationID] = application

	return candidate, nil
}

func (f *fakeElectionRepo) RejectApplication(_ context.Context, applicationID uint) error {
	application, ok := f.applications[applicationID]
	if !ok {
		return repository.ErrApplicationNotFound
	}
	if application.Status != domain.ApplicationPending {
		return repository.ErrApplicationDecided
	}

	application.Status = domain.ApplicationRejected
	f.applications[applicationID] = application

	return nil
}

func (f *fakeElectionRepo) CreateCandidate(_ context.Context, candidate domain.Candidate) (domain.Candidate, error) {
	for _, c := range f.candidates {
		if c.ElectionID == candidate.ElectionID && c.UserID == candidate.UserID && c.Position == candidate.Position {
			return domain.Candidate{}, repository.ErrDuplicateCandidate
		}
	}
	candidate.ID = f.id()
	f.candidates[candidate.ID] = candidate

	return candidate, nil
}

func (f *fakeElectionRepo) FindCandidateByID(_ context.Context, id uint) (domain.Candidate, error) {
	candidate, ok := f.candidates[id]
	if !ok {
		return domain.Candidate{}, repository.ErrCandidateNotFound
	}

	return candidate, nil
}

func (f *fakeElectionRepo) FindCandidatesByElectionID(_ context.Context, electionID uint) ([]domain.Candidate, error) {
	var out []domain.Candidate
	for _, c := range f.candidates {
		if c.ElectionID == electionID {
			out = append(out, c)
		}
	}

	return out, nil
}

func (f *fakeElectionRepo) CreateVote(_ context.Context, vote domain.Vote) (domain.Vote, error) {
	key := voteKey{vote.ElectionID, vote.VoterID}
	if _, ok := f.votes[key]; ok {
		return domain.Vote{}, repository.ErrAlreadyVoted
	}
	vote.ID = f.id()
	f.votes[key] = vote

	return vote, nil
}

func (f *fakeElectionRepo) HasVoted(_ context.Context, electionID, voterID uint) (bool, error) {
	_, ok := f.votes[voteKey{electionID, voterID}]

	return ok, nil
}

func (f *fakeElectionRepo) CountVotes(_ context.Context, electionID uint) (int64, error) {
	var n int64
	for key := range f.votes {
		if key.electionID == electionID {
			n++
		}
	}

	return n, nil
}

func (f *fakeElectionRepo) TallyVotes(_ context.Context, _ uint) ([]domain.CandidateResult, error) {
	return f.tally, nil
}

type membershipKey struct {
	clubID uint
	userID uint
}

type fakeClubRepo struct {
	clubs   map[uint]domain.Club
	members map[membershipKey]bool
}

func newFakeClubRepo() *fakeClubRepo {
	return &fakeClubRepo{
		clubs:   make(map[uint]domain.Club),
		members: make(map[membershipKey]bool),
	}
}

func (f *fakeClubRepo) Create(_ context.Context, club domain.Club) (domain.Club, error) {
	club.ID = uint(len(f.clubs) + 1)
	f.clubs[club.ID] = club

	return club, nil
}

func (f *fakeClubRepo) FindByID(_ context.Context, id uint) (domain.Club, error) {
	club, ok := f.clubs[id]
	if !ok {
		return domain.Club{}, repository.ErrClubNotFound
	}

	return club, nil
}

func (f *fakeClubRepo) FindAll(_ context.Context) ([]domain.Club, error) {
	var out []domain.Club
	for _, c := range f.clubs {
		out = append(out, c)
	}

	return out, nil
}

func (f *fakeClubRepo) AddMember(_ context.Context, clubID, userID uint) (domain.ClubMembership, error) {
	key := membershipKey{clubID, userID}
	if _, ok := f.members[key]; ok {
		return domain.ClubMembership{}, repository.ErrAlreadyMember
	}
	f.members[key] = false

	return domain.ClubMembership{ClubID: clubID, UserID: userID, Status: domain.MembershipPending}, nil
}

func (f *fakeClubRepo) FindMembership(_ context.Context, clubID, userID uint) (domain.ClubMembership, error) {
	approved, ok := f.members[membershipKey{clubID, userID}]
	if !ok {
		return domain.ClubMembership{}, repository.ErrMembershipNotFound
	}

	status := domain.MembershipPending
	if approved {
		status = domain.MembershipApproved
	}

	return domain.ClubMembership{ClubID: clubID, UserID: userID, Status: status}, nil
}

func (f *fakeClubRepo) ApproveMember(_ context.Context, _ uint) error {
	return nil
}

func (f *fakeClubRepo) IsApprovedMember(_ context.Context, clubID, userID uint) (bool, error) {
	if club, ok := f.clubs[clubID]; ok && club.PresidentID == userID {
		return true, nil
	}

	return f.members[membershipKey{clubID, userID}], nil
}

func (f *fakeClubRepo) FindMembershipsByClubID(_ context.Context, _ uint) ([]domain.ClubMembership, error) {
	return nil, nil
}

func (f *fakeClubRepo) approve(clubID, userID uint) {
	f.members[membershipKey{clubID, userID}] = true
}

type fakeUserRepo struct {
	users map[uint]domain.User
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id uint, role string) error {
	user, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.Role = role
	f.users[id] = user

	return nil
}

type fakePublisher struct {
	published []events.Event
}

func (f *fakePublisher) Publish(event events.Event) {
	f.published = append(f.published, event)
}

type fakeResultsCache struct {
	stored      map[uint]domain.ElectionResults
	invalidated []uint
	hits        int
}

func newFakeResultsCache() *fakeResultsCache {
	return &fakeResultsCache{stored: make(map[uint]domain.ElectionResults)}
}

func (f *fakeResultsCache) Get(_ context.Context, electionID uint) (domain.ElectionResults, bool) {
	results, ok := f.stored[electionID]
	if ok {
		f.hits++
	}

	return results, ok
}

func (f *fakeResultsCache) Set(_ context.Context, results domain.ElectionResults) {
	f.stored[results.ElectionID] = results
}

func (f *fakeResultsCache) Invalidate(_ context.Context, electionID uint) {
	f.invalidated = append(f.invalidated, electionID)
}

type electionFixture struct {
	svc       *ElectionService
	repo      *fakeElectionRepo
	clubRepo  *fakeClubRepo
	userRepo  *fakeUserRepo
	publisher *fakePublisher
	cache     *fakeResultsCache

	president domain.User
	member    domain.User
	outsider  domain.User
	admin     domain.User
	club      domain.Club
	now       time.Time
}

func newElectionFixture(t *testing.T) *electionFixture {
	t.Helper()

	f := &electionFixture{
		repo:      newFakeElectionRepo(),
		clubRepo:  newFakeClubRepo(),
		publisher: &fakePublisher{},
		cache:     newFakeResultsCache(),
		now:       time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC),
	}

	f.president = domain.User{ID: 1, Name: "Priya", Role: domain.RolePresident}
	f.member = domain.User{ID: 2, Name: "Marco", Role: domain.RoleStudent}
	f.outsider = domain.User{ID: 3, Name: "Noor", Role: domain.RoleStudent}
	f.admin = domain.User{ID: 4, Name: "Root", Role: domain.RoleAdmin}

	f.userRepo = &fakeUserRepo{users: map[uint]domain.User{
		f.president.ID: f.president,
		f.member.ID:    f.member,
		f.outsider.ID:  f.outsider,
		f.admin.ID:     f.admin,
	}}

	club, err := f.clubRepo.Create(context.Background(), domain.Club{Name: "Chess Club", PresidentID: f.president.ID})
	require.NoError(t, err)
	f.club = club
	f.clubRepo.approve(club.ID, f.member.ID)

	f.svc = NewElectionService(f.repo, f.clubRepo, f.userRepo, f.publisher, f.cache)
	f.svc.now = func() time.Time { return f.now }

	return f
}

// activeElection seeds an election whose window straddles the fixture clock.
func (f *electionFixture) activeElection(t *testing.T) domain.Election {
	t.Helper()

	election, err := f.svc.CreateElection(context.Background(), domain.Election{
		ClubID:   f.club.ID,
		Title:    "Spring Board",
		StartsAt: f.now.Add(-24 * time.Hour),
		EndsAt:   f.now.Add(24 * time.Hour),
	}, f.president)
	require.NoError(t, err)

	return election
}

func (f *electionFixture) addRole(t *testing.T, electionID uint, name string) domain.Role {
	t.Helper()

	role, err := f.svc.AddRole(context.Background(), domain.Role{ElectionID: electionID, Name: name}, f.president)
	require.NoError(t, err)

	return role
}

func TestCreateElection(t *testing.T) {
	t.Run("rejects a window that ends before it starts", func(t *testing.T) {
		f := newElectionFixture(t)

		_, err := f.svc.CreateElection(context.Background(), domain.Election{
			ClubID:   f.club.ID,
			Title:    "Backwards",
			StartsAt: f.now.Add(48 * time.Hour),
			EndsAt:   f.now.Add(24 * time.Hour),
		}, f.president)

		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("rejects a zero-length window", func(t *testing.T) {
		f := newElectionFixture(t)
		at := f.now.Add(24 * time.Hour)

		_, err := f.svc.CreateElection(context.Background(), domain.Election{
			ClubID:   f.club.ID,
			Title:    "Instant",
			StartsAt: at,
			EndsAt:   at,
		}, f.president)

		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("only the club president or an admin may create", func(t *testing.T) {
		f := newElectionFixture(t)

		_, err := f.svc.CreateElection(context.Background(), domain.Election{
			ClubID:   f.club.ID,
			Title:    "Coup",
			StartsAt: f.now,
			EndsAt:   f.now.Add(24 * time.Hour),
		}, f.member)
		assert.ErrorIs(t, err, ErrNotClubPresident)

		_, err = f.svc.CreateElection(context.Background(), domain.Election{
			ClubID:   f.club.ID,
			Title:    "Sanctioned",
			StartsAt: f.now,
			EndsAt:   f.now.Add(24 * time.Hour),
		}, f.admin)
		assert.NoError(t, err)
	})

	t.Run("computes status and publishes an event", func(t *testing.T) {
		f := newElectionFixture(t)

		election, err := f.svc.CreateElection(context.Background(), domain.Election{
			ClubID:   f.club.ID,
			Title:    "Autumn Board",
			StartsAt: f.now.Add(24 * time.Hour),
			EndsAt:   f.now.Add(48 * time.Hour),
		}, f.president)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusUpcoming, election.Status)
		require.Len(t, f.publisher.published, 1)
		assert.Equal(t, events.ElectionCreated, f.publisher.published[0].Type)
		assert.Equal(t, election.ID, f.publisher.published[0].ElectionID)
	})
}

func TestListElectionsComputesStatus(t *testing.T) {
	f := newElectionFixture(t)
	f.activeElection(t)

	_, err := f.svc.CreateElection(context.Background(), domain.Election{
		ClubID:   f.club.ID,
		Title:    "Next Term",
		StartsAt: f.now.Add(48 * time.Hour),
		EndsAt:   f.now.Add(96 * time.Hour),
	}, f.president)
	require.NoError(t, err)

	active, err := f.svc.ListElections(context.Background(), nil, domain.StatusActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, domain.StatusActive, active[0].Status)

	upcoming, err := f.svc.ListElections(context.Background(), nil, domain.StatusUpcoming)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, domain.StatusUpcoming, upcoming[0].Status)

	all, err := f.svc.ListElections(context.Background(), nil, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestApply(t *testing.T) {
	t.Run("statement must be at least 10 characters", func(t *testing.T) {
		f := newElectionFixture(t)
		election := f.activeElection(t)
		role := f.addRole(t, election.ID, "Treasurer")

		_, err := f.svc.Apply(context.Background(), election.ID, role.ID, f.member.ID, "nine chrs")
		assert.ErrorIs(t, err, ErrStatementTooShort)

		_, err = f.svc.Apply(context.Background(), election.ID, role.ID, f.member.ID, "ten chars!")
		assert.NoError(t, err)
	})

	t.Run("whitespace does not count toward the minimum", func(t *testing.T) {
		f := newElectionFixture(t)
		election := f.activeElection(t)
		role := f.addRole(t, election.ID, "Treasurer")

		_, err := f.svc.Apply(context.Background(), election.ID, role.ID, f.member.ID, "   short    ")
		assert.ErrorIs(t, err, ErrStatementTooShort)
	})

	t.Run("applications are disabled with zero roles", func(t *testing.T) {
		f := newElectionFixture(t)
		election := f.activeElection(t)

		_, err := f.svc.Apply(context.Background(), election.ID, 99, f.member.ID, "a perfectly fine statement")
		assert.ErrorIs(t, err, ErrNoRolesDefined)
	})

	t.Run("role must belong to the election", func(t *testing.T) {
		f := newElectionFixture(t)
		election := f.activeElection(t)
		f.addRole(t, election.ID, "Treasurer")

		other := f.activeElection(t)
		otherRole := f.addRole(t, other.ID, "Secretary")

		_, err := f.svc.Apply(context.Background(), election.ID, otherRole.ID, f.member.ID, "a perfectly fine statement")
		assert.ErrorIs(t, err, ErrRoleNotInElection)
	})

	t.Run("only approved members may apply", func(t *testing.T) {
		f := newElectionFixture(t)
		election := f.activeElection(t)
		role := f.addRole(t, election.ID, "Treasurer")

		_, err := f.svc.Apply(context.Background(), election.ID, role.ID, f.outsider.ID, "a perfectly fine statement")
		assert.ErrorIs(t, err, ErrNotClubMember)
	})

	t.Run("completed elections take no applications", func(t *testing.T) {
		f := newElectionFixture(t)
		election := f.activeElection(t)
		role := f.addRole(t, election.ID, "Treasurer")

		f.now = election.EndsAt.Add(time.Hour)

		_, err := f.svc.Apply(context.Background(), election.ID, role.ID, f.member.ID, "a perfectly fine statement")
		assert.ErrorIs(t, err, ErrElectionCompleted)
	})

	t.Run("one open application per applicant", func(t *testing.T) {
		f := newElectionFixture(t)
		election := f.activeElection(t)
		role := f.addRole(t, election.ID, "Treasurer")

		_, err := f.svc.Apply(context.Background(), election.ID, role.ID, f.member.ID, "a perfectly fine statement")
		require.NoError(t, err)

		_, err = f.svc.Apply(context.Background(), election.ID, role.ID, f.member.ID, "another perfectly fine one")
		assert.ErrorIs(t, err, ErrDuplicateApplication)
	})

	t.Run("rejection frees the applicant to apply again", func(t *testing.T) {
		f := newElectionFixture(t)
		election := f.activeElection(t)
		role := f.addRole(t, election.ID, "Treasurer")

		application, err := f.svc.Apply(context.Background(), election.ID, role.ID, f.member.ID, "a perfectly fine statement")
		require.NoError(t, err)

		_, err = f.svc.ReviewApplication(context.Background(), application.ID, false, f.president)
		require.NoError(t, err)

		_, err = f.svc.Apply(context.Background(), election.ID, role.ID, f.member.ID, "a second, better statement")
		assert.NoError(t, err)
	})
}

func TestReviewApplication(t *testing.T) {
	t.Run("approval creates the candidate with the role's position", func(t *testing.T) {
		f := newElectionFixture(t)
		election := f.activeElection(t)
		role := f.addRole(t, election.ID, "Treasurer")

		application, err := f.svc.Apply(context.Background(), election.ID, role.ID, f.member.ID, "a perfectly fine statement")
		require.NoError(t, err)

		candidate, err := f.svc.ReviewApplication(context.Background(), application.ID, true, f.president)
		require.NoError(t, err)
		assert.Equal(t, f.member.ID, candidate.UserID)
		assert.Equal(t, "Treasurer", candidate.Position)
		assert.Equal(t, application.Statement, candidate.Statement)

		stored, err := f.repo.FindApplicationByID(context.Background(), application.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationApproved, stored.Status)
	})

	t.Run("a decided application cannot be reviewed again", func(t *testing.T) {
		f := newElectionFixture(t)
		election := f.activeElection(t)
		role := f.addRole(t, election.ID, "Treasurer")

		application, err := f.svc.Apply(context.Background(), election.ID, role.ID, f.member.ID, "a perfectly fine statement")
		require.NoError(t, err)

		_, err = f.svc.ReviewApplication(context.Background(), application.ID, true, f.president)
		require.NoError(t, err)

		_, err = f.svc.ReviewApplication(context.Background(), application.ID, true, f.president)
		assert.ErrorIs(t, err, ErrApplicationDecided)

		_, err = f.svc.ReviewApplication(context.Background(), application.ID, false, f.president)
		assert.ErrorIs(t, err, ErrApplicationDecided)
	})

	t.Run("only the owning president or an admin may review", func(t *testing.T) {
		f := newElectionFixture(t)
		election := f.activeElection(t)
		role := f.addRole(t, election.ID, "Treasurer")

		application, err := f.svc.Apply(context.Background(), election.ID, role.ID, f.member.ID, "a perfectly fine statement")
		require.NoError(t, err)

		_, err = f.svc.ReviewApplication(context.Background(), application.ID, true, f.member)
		assert.ErrorIs(t, err, ErrNotClubPresident)

		_, err = f.svc.ReviewApplication(context.Background(), application.ID, true, f.admin)
		assert.NoError(t, err)
	})
}

func TestAddCandidateDirectly(t *testing.T) {
	t.Run("president can curate the slate by hand", func(t *testing.T) {
		f := newElectionFixture(t)
		election := f.activeElection(t)

		candidate, err := f.svc.AddCandidateDirectly(context.Background(), election.ID, f.member.ID, "Secretary", "", f.president)
		require.NoError(t, err)
		assert.Equal(t, "Secretary", candidate.Position)
		assert.Nil(t, candidate.RoleID)
	})

	t.Run("duplicate candidacy for the same position is rejected", func(t *testing.T) {
		f := newElectionFixture(t)
		election := f.activeElection(t)

		_, err := f.svc.AddCandidateDirectly(context.Background(), election.ID, f.member.ID, "Secretary", "", f.president)
		require.NoError(t, err)

		_, err = f.svc.AddCandidateDirectly(context.Background(), election.ID, f.member.ID, "Secretary", "", f.president)
		assert.ErrorIs(t, err, ErrDuplicateCandidate)
	})

	t.Run("unknown users cannot be added", func(t *testing.T) {
		f := newElectionFixture(t)
		election := f.activeElection(t)

		_, err := f.svc.AddCandidateDirectly(context.Background(), election.ID, 999, "Secretary", "", f.president)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestCastVote(t *testing.T) {
	setup := func(t *testing.T) (*electionFixture, domain.Election, domain.Candidate) {
		f := newElectionFixture(t)
		election := f.activeElection(t)
		candidate, err := f.svc.AddCandidateDirectly(context.Background(), election.ID, f.member.ID, "Treasurer", "", f.president)
		require.NoError(t, err)

		return f, election, candidate
	}

	t.Run("member casts exactly one vote and gets a receipt", func(t *testing.T) {
		f, election, candidate := setup(t)

		receipt, err := f.svc.CastVote(context.Background(), election.ID, f.member.ID, candidate.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, receipt.ReceiptID)
		assert.Equal(t, election.ID, receipt.ElectionID)
		assert.Equal(t, candidate.ID, receipt.CandidateID)
		assert.Equal(t, f.now.UTC(), receipt.CastAt)

		voted, err := f.svc.HasVoted(context.Background(), election.ID, f.member.ID)
		require.NoError(t, err)
		assert.True(t, voted)
	})

	t.Run("second cast fails, first vote stands", func(t *testing.T) {
		f, election, candidate := setup(t)
		other, err := f.svc.AddCandidateDirectly(context.Background(), election.ID, f.president.ID, "Treasurer", "", f.president)
		require.NoError(t, err)

		_, err = f.svc.CastVote(context.Background(), election.ID, f.member.ID, candidate.ID)
		require.NoError(t, err)

		_, err = f.svc.CastVote(context.Background(), election.ID, f.member.ID, other.ID)
		assert.ErrorIs(t, err, ErrAlreadyVoted)

		vote := f.repo.votes[voteKey{election.ID, f.member.ID}]
		assert.Equal(t, candidate.ID, vote.CandidateID)
	})

	t.Run("voting requires an active window", func(t *testing.T) {
		f, election, candidate := setup(t)

		f.now = election.StartsAt.Add(-time.Hour)
		_, err := f.svc.CastVote(context.Background(), election.ID, f.member.ID, candidate.ID)
		assert.ErrorIs(t, err, ErrElectionNotActive)

		f.now = election.EndsAt
		_, err = f.svc.CastVote(context.Background(), election.ID, f.member.ID, candidate.ID)
		assert.ErrorIs(t, err, ErrElectionNotActive)
	})

	t.Run("candidate must belong to the election", func(t *testing.T) {
		f, election, _ := setup(t)
		other := f.activeElection(t)
		foreign, err := f.svc.AddCandidateDirectly(context.Background(), other.ID, f.member.ID, "Treasurer", "", f.president)
		require.NoError(t, err)

		_, err = f.svc.CastVote(context.Background(), election.ID, f.member.ID, foreign.ID)
		assert.ErrorIs(t, err, ErrCandidateNotInElection)

		_, err = f.svc.CastVote(context.Background(), election.ID, f.member.ID, 999)
		assert.ErrorIs(t, err, ErrCandidateNotInElection)
	})

	t.Run("outsiders cannot vote", func(t *testing.T) {
		f, election, candidate := setup(t)

		_, err := f.svc.CastVote(context.Background(), election.ID, f.outsider.ID, candidate.ID)
		assert.ErrorIs(t, err, ErrNotClubMember)
	})
}

func TestResults(t *testing.T) {
	t.Run("gated until the election completes", func(t *testing.T) {
		f := newElectionFixture(t)
		election := f.activeElection(t)

		_, err := f.svc.Results(context.Background(), election.ID)
		assert.ErrorIs(t, err, ErrResultsNotAvailable)

		f.now = election.StartsAt.Add(-time.Hour)
		_, err = f.svc.Results(context.Background(), election.ID)
		assert.ErrorIs(t, err, ErrResultsNotAvailable)
	})

	t.Run("percentages derive from the tally", func(t *testing.T) {
		f := newElectionFixture(t)
		election := f.activeElection(t)
		f.repo.tally = []domain.CandidateResult{
			{CandidateID: 11, Name: "Ana", VoteCount: 5},
			{CandidateID: 12, Name: "Ben", VoteCount: 3},
			{CandidateID: 13, Name: "Cal", VoteCount: 2},
		}

		f.now = election.EndsAt.Add(time.Hour)

		results, err := f.svc.Results(context.Background(), election.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, results.TotalVotes)
		require.Len(t, results.Candidates, 3)
		assert.Equal(t, 50, results.Candidates[0].Percentage)
		assert.Equal(t, 30, results.Candidates[1].Percentage)
		assert.Equal(t, 20, results.Candidates[2].Percentage)
	})

	t.Run("zero votes yields zero percentages", func(t *testing.T) {
		f := newElectionFixture(t)
		election := f.activeElection(t)
		f.repo.tally = []domain.CandidateResult{
			{CandidateID: 11, Name: "Ana", VoteCount: 0},
		}

		f.now = election.EndsAt.Add(time.Hour)

		results, err := f.svc.Results(context.Background(), election.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, results.TotalVotes)
		assert.Equal(t, 0, results.Candidates[0].Percentage)
	})

	t.Run("second read is served from the cache", func(t *testing.T) {
		f := newElectionFixture(t)
		election := f.activeElection(t)
		f.repo.tally = []domain.CandidateResult{
			{CandidateID: 11, Name: "Ana", VoteCount: 4},
		}

		f.now = election.EndsAt.Add(time.Hour)

		first, err := f.svc.Results(context.Background(), election.ID)
		require.NoError(t, err)

		second, err := f.svc.Results(context.Background(), election.ID)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, f.cache.hits)
	})
}

func TestDeleteElection(t *testing.T) {
	t.Run("admin only", func(t *testing.T) {
		f := newElectionFixture(t)
		election := f.activeElection(t)

		err := f.svc.DeleteElection(context.Background(), election.ID, f.president)
		assert.ErrorIs(t, err, ErrNotAdmin)

		err = f.svc.DeleteElection(context.Background(), election.ID, f.admin)
		require.NoError(t, err)

		_, err = f.svc.GetElection(context.Background(), election.ID)
		assert.ErrorIs(t, err, ErrElectionNotFound)
	})

	t.Run("invalidates the cache and publishes", func(t *testing.T) {
		f := newElectionFixture(t)
		election := f.activeElection(t)

		require.NoError(t, f.svc.DeleteElection(context.Background(), election.ID, f.admin))

		assert.Contains(t, f.cache.invalidated, election.ID)
		last := f.publisher.published[len(f.publisher.published)-1]
		assert.Equal(t, events.ElectionDeleted, last.Type)
	})
}

func TestRoles(t *testing.T) {
	t.Run("duplicate role names are rejected", func(t *testing.T) {
		f := newElectionFixture(t)
		election := f.activeElection(t)
		f.addRole(t, election.ID, "Treasurer")

		_, err := f.svc.AddRole(context.Background(), domain.Role{ElectionID: election.ID, Name: "Treasurer"}, f.president)
		assert.ErrorIs(t, err, ErrDuplicateRole)
	})

	t.Run("a role with candidates cannot be removed", func(t *testing.T) {
		f := newElectionFixture(t)
		election := f.activeElection(t)
		role := f.addRole(t, election.ID, "Treasurer")

		application, err := f.svc.Apply(context.Background(), election.ID, role.ID, f.member.ID, "a perfectly fine statement")
		require.NoError(t, err)
		_, err = f.svc.ReviewApplication(context.Background(), application.ID, true, f.president)
		require.NoError(t, err)

		err = f.svc.RemoveRole(context.Background(), election.ID, role.ID, f.president)
		assert.ErrorIs(t, err, ErrRoleInUse)
	})

	t.Run("role removal is scoped to the election", func(t *testing.T) {
		f := newElectionFixture(t)
		election := f.activeElection(t)
		other := f.activeElection(t)
		otherRole := f.addRole(t, other.ID, "Secretary")

		err := f.svc.RemoveRole(context.Background(), election.ID, otherRole.ID, f.president)
		assert.ErrorIs(t, err, ErrRoleNotInElection)
	})
}

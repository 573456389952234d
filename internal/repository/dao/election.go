package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrElectionNotFound     = errors.New("election not found")
	ErrRoleNotFound         = errors.New("role not found")
	ErrDuplicateRole        = errors.New("role name already exists in this election")
	ErrRoleInUse            = errors.New("role is referenced by a candidate")
	ErrApplicationNotFound  = errors.New("candidacy application not found")
	ErrDuplicateApplication = errors.New("a non-rejected application already exists")
	ErrApplicationDecided   = errors.New("candidacy application is already decided")
	ErrCandidateNotFound    = errors.New("candidate not found")
	ErrDuplicateCandidate   = errors.New("user is already a candidate for this position")
	ErrAlreadyVoted         = errors.New("voter has already cast a ballot in this election")
)

type Election struct {
	ID          uint   `gorm:"primaryKey"`
	ClubID      uint   `gorm:"not null;index"`
	Club        Club   `gorm:"foreignKey:ClubID"`
	Title       string `gorm:"not null"`
	Description string
	StartsAt    time.Time `gorm:"not null;index"`
	EndsAt      time.Time `gorm:"not null;index"`

	Roles      []Role      `gorm:"foreignKey:ElectionID"`
	Candidates []Candidate `gorm:"foreignKey:ElectionID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Role struct {
	ID          uint   `gorm:"primaryKey"`
	ElectionID  uint   `gorm:"not null;uniqueIndex:uni_roles_election_name"`
	Name        string `gorm:"not null;uniqueIndex:uni_roles_election_name"`
	Description string

	CreatedAt time.Time
}

type CandidacyApplication struct {
	ID          uint `gorm:"primaryKey"`
	ElectionID  uint `gorm:"not null;index:uni_applications_election_applicant,unique,where:status <> 'rejected'"`
	ApplicantID uint `gorm:"not null;index:uni_applications_election_applicant,unique,where:status <> 'rejected'"`
	RoleID      uint `gorm:"not null;index"`
	Statement   string
	Status      string `gorm:"not null;default:pending"` // "pending", "approved" or "rejected"

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Candidate struct {
	ID         uint  `gorm:"primaryKey"`
	ElectionID uint  `gorm:"not null;uniqueIndex:uni_candidates_election_user_position"`
	UserID     uint  `gorm:"not null;uniqueIndex:uni_candidates_election_user_position"`
	RoleID     *uint `gorm:"index"`
	Position   string `gorm:"not null;uniqueIndex:uni_candidates_election_user_position"`
	Statement  string
	User       User `gorm:"foreignKey:UserID"`

	CreatedAt time.Time
}

type Vote struct {
	ID          uint      `gorm:"primaryKey"`
	ElectionID  uint      `gorm:"not null;uniqueIndex:uni_votes_election_voter"`
	VoterID     uint      `gorm:"not null;uniqueIndex:uni_votes_election_voter"`
	CandidateID uint      `gorm:"not null;index"`
	CastAt      time.Time `gorm:"not null"`
}

// CandidateTally is one row of the results query.
type CandidateTally struct {
	CandidateID uint
	UserID      uint
	Name        string
	Position    string
	VoteCount   int
}

type ElectionDAO struct {
	db *gorm.DB
}

func NewElectionDAO(db *gorm.DB) *ElectionDAO {
	return &ElectionDAO{
		db: db,
	}
}

func (d *ElectionDAO) Insert(ctx context.Context, election Election) (Election, error) {
	err := withRetry(ctx, func() error {
		return d.db.WithContext(ctx).Create(&election).Error
	})
	if err != nil {
		return Election{}, err
	}

	return election, nil
}

func (d *ElectionDAO) FindByID(ctx context.Context, id uint) (Election, error) {
	var election Election

	err := withRetry(ctx, func() error {
		result := d.db.WithContext(ctx).
			Preload("Roles").
			Preload("Candidates").
			First(&election, id)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrElectionNotFound
			}

			return result.Error
		}

		return nil
	})
	if err != nil {
		return Election{}, err
	}

	return election, nil
}

// Find lists elections, optionally filtered by club and by the status they
// hold at the given instant. The status filter is expressed against
// starts_at/ends_at so it can never disagree with the computed status.
func (d *ElectionDAO) Find(ctx context.Context, clubID *uint, status string, now time.Time) ([]Election, error) {
	var elections []Election

	err := withRetry(ctx, func() error {
		query := d.db.WithContext(ctx).Model(&Election{})

		if clubID != nil {
			query = query.Where("club_id = ?", *clubID)
		}

		switch status {
		case "upcoming":
			query = query.Where("starts_at > ?", now)
		case "active":
			query = query.Where("starts_at <= ? AND ends_at > ?", now, now)
		case "completed":
			query = query.Where("ends_at <= ?", now)
		}

		return query.Order("starts_at").Find(&elections).Error
	})
	if err != nil {
		return nil, err
	}

	return elections, nil
}

// Delete removes an election and everything hanging off it in one
// transaction. Destructive; the service restricts it to admins.
func (d *ElectionDAO) Delete(ctx context.Context, id uint) error {
	return withRetry(ctx, func() error {
		return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			result := tx.First(&Election{}, id)
			if result.Error != nil {
				if errors.Is(result.Error, gorm.ErrRecordNotFound) {
					return ErrElectionNotFound
				}

				return result.Error
			}

			for _, model := range []interface{}{&Vote{}, &Candidate{}, &CandidacyApplication{}, &Role{}} {
				if err := tx.Where("election_id = ?", id).Delete(model).Error; err != nil {
					return err
				}
			}

			return tx.Delete(&Election{}, id).Error
		})
	})
}

func (d *ElectionDAO) InsertRole(ctx context.Context, role Role) (Role, error) {
	err := withRetry(ctx, func() error {
		result := d.db.WithContext(ctx).Create(&role)
		if result.Error != nil {
			if isUniqueViolation(result.Error, "uni_roles_election_name") {
				return ErrDuplicateRole
			}

			return result.Error
		}

		return nil
	})
	if err != nil {
		return Role{}, err
	}

	return role, nil
}

func (d *ElectionDAO) FindRoleByID(ctx context.Context, id uint) (Role, error) {
	var role Role

	err := withRetry(ctx, func() error {
		result := d.db.WithContext(ctx).First(&role, id)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrRoleNotFound
			}

			return result.Error
		}

		return nil
	})
	if err != nil {
		return Role{}, err
	}

	return role, nil
}

func (d *ElectionDAO) FindRolesByElectionID(ctx context.Context, electionID uint) ([]Role, error) {
	var roles []Role

	err := withRetry(ctx, func() error {
		return d.db.WithContext(ctx).
			Where("election_id = ?", electionID).
			Order("id").
			Find(&roles).Error
	})
	if err != nil {
		return nil, err
	}

	return roles, nil
}

func (d *ElectionDAO) CountRoles(ctx context.Context, electionID uint) (int64, error) {
	var count int64

	err := withRetry(ctx, func() error {
		return d.db.WithContext(ctx).
			Model(&Role{}).
			Where("election_id = ?", electionID).
			Count(&count).Error
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

// DeleteRole removes a role unless a candidate occupies it. The occupancy
// check and the delete run in one transaction.
func (d *ElectionDAO) DeleteRole(ctx context.Context, roleID uint) error {
	return withRetry(ctx, func() error {
		return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var role Role
			result := tx.First(&role, roleID)
			if result.Error != nil {
				if errors.Is(result.Error, gorm.ErrRecordNotFound) {
					return ErrRoleNotFound
				}

				return result.Error
			}

			var occupied int64
			err := tx.Model(&Candidate{}).
				Where("role_id = ? OR (election_id = ? AND position = ?)", role.ID, role.ElectionID, role.Name).
				Count(&occupied).Error
			if err != nil {
				return err
			}
			if occupied > 0 {
				return ErrRoleInUse
			}

			return tx.Delete(&Role{}, roleID).Error
		})
	})
}

func (d *ElectionDAO) InsertApplication(ctx context.Context, application CandidacyApplication) (CandidacyApplication, error) {
	err := withRetry(ctx, func() error {
		result := d.db.WithContext(ctx).Create(&application)
		if result.Error != nil {
			if isUniqueViolation(result.Error, "uni_applications_election_applicant") {
				return ErrDuplicateApplication
			}

			return result.Error
		}

		return nil
	})
	if err != nil {
		return CandidacyApplication{}, err
	}

	return application, nil
}

func (d *ElectionDAO) FindApplicationByID(ctx context.Context, id uint) (CandidacyApplication, error) {
	var application CandidacyApplication

	err := withRetry(ctx, func() error {
		result := d.db.WithContext(ctx).First(&application, id)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}

			return result.Error
		}

		return nil
	})
	if err != nil {
		return CandidacyApplication{}, err
	}

	return application, nil
}

func (d *ElectionDAO) FindApplicationsByElectionID(ctx context.Context, electionID uint) ([]CandidacyApplication, error) {
	var applications []CandidacyApplication

	err := withRetry(ctx, func() error {
		return d.db.WithContext(ctx).
			Where("election_id = ?", electionID).
			Order("id").
			Find(&applications).Error
	})
	if err != nil {
		return nil, err
	}

	return applications, nil
}

// FindOpenApplication returns the applicant's non-rejected application for
// the election, if any.
func (d *ElectionDAO) FindOpenApplication(ctx context.Context, electionID, applicantID uint) (CandidacyApplication, error) {
	var application CandidacyApplication

	err := withRetry(ctx, func() error {
		result := d.db.WithContext(ctx).
			Where("election_id = ? AND applicant_id = ? AND status <> ?", electionID, applicantID, "rejected").
			First(&application)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}

			return result.Error
		}

		return nil
	})
	if err != nil {
		return CandidacyApplication{}, err
	}

	return application, nil
}

// ApproveApplication marks the application approved and materializes the
// candidate in the same transaction: either both rows commit or neither
// does. The application row is locked so two concurrent reviews cannot both
// proceed past the pending check.
func (d *ElectionDAO) ApproveApplication(ctx context.Context, applicationID uint) (Candidate, error) {
	var candidate Candidate

	err := withRetry(ctx, func() error {
		return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var application CandidacyApplication
			result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&application, applicationID)
			if result.Error != nil {
				if errors.Is(result.Error, gorm.ErrRecordNotFound) {
					return ErrApplicationNotFound
				}

				return result.Error
			}

			if application.Status != "pending" {
				return ErrApplicationDecided
			}

			var role Role
			if err := tx.First(&role, application.RoleID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrRoleNotFound
				}

				return err
			}

			err := tx.Model(&CandidacyApplication{}).
				Where("id = ?", applicationID).
				Update("status", "approved").Error
			if err != nil {
				return err
			}

			roleID := role.ID
			candidate = Candidate{
				ElectionID: application.ElectionID,
				UserID:     application.ApplicantID,
				RoleID:     &roleID,
				Position:   role.Name,
				Statement:  application.Statement,
			}

			if err = tx.Create(&candidate).Error; err != nil {
				if isUniqueViolation(err, "uni_candidates_election_user_position") {
					return ErrDuplicateCandidate
				}

				return err
			}

			return nil
		})
	})
	if err != nil {
		return Candidate{}, err
	}

	return candidate, nil
}

func (d *ElectionDAO) RejectApplication(ctx context.Context, applicationID uint) error {
	return withRetry(ctx, func() error {
		result := d.db.WithContext(ctx).
			Model(&CandidacyApplication{}).
			Where("id = ? AND status = ?", applicationID, "pending").
			Update("status", "rejected")
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var application CandidacyApplication
			if err := d.db.WithContext(ctx).First(&application, applicationID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrApplicationNotFound
				}

				return err
			}

			return ErrApplicationDecided
		}

		return nil
	})
}

func (d *ElectionDAO) InsertCandidate(ctx context.Context, candidate Candidate) (Candidate, error) {
	err := withRetry(ctx, func() error {
		result := d.db.WithContext(ctx).Create(&candidate)
		if result.Error != nil {
			if isUniqueViolation(result.Error, "uni_candidates_election_user_position") {
				return ErrDuplicateCandidate
			}

			return result.Error
		}

		return nil
	})
	if err != nil {
		return Candidate{}, err
	}

	return candidate, nil
}

func (d *ElectionDAO) FindCandidateByID(ctx context.Context, id uint) (Candidate, error) {
	var candidate Candidate

	err := withRetry(ctx, func() error {
		result := d.db.WithContext(ctx).First(&candidate, id)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrCandidateNotFound
			}

			return result.Error
		}

		return nil
	})
	if err != nil {
		return Candidate{}, err
	}

	return candidate, nil
}

func (d *ElectionDAO) FindCandidatesByElectionID(ctx context.Context, electionID uint) ([]Candidate, error) {
	var candidates []Candidate

	err := withRetry(ctx, func() error {
		return d.db.WithContext(ctx).
			Where("election_id = ?", electionID).
			Order("id").
			Find(&candidates).Error
	})
	if err != nil {
		return nil, err
	}

	return candidates, nil
}

// InsertVote is insert-or-fail against the (election_id, voter_id) unique
// index. There is deliberately no prior existence check: the constraint is
// the arbiter under concurrency.
func (d *ElectionDAO) InsertVote(ctx context.Context, vote Vote) (Vote, error) {
	err := withRetry(ctx, func() error {
		result := d.db.WithContext(ctx).Create(&vote)
		if result.Error != nil {
			if isUniqueViolation(result.Error, "uni_votes_election_voter") {
				return ErrAlreadyVoted
			}

			return result.Error
		}

		return nil
	})
	if err != nil {
		return Vote{}, err
	}

	return vote, nil
}

func (d *ElectionDAO) HasVoted(ctx context.Context, electionID, voterID uint) (bool, error) {
	var count int64

	err := withRetry(ctx, func() error {
		return d.db.WithContext(ctx).
			Model(&Vote{}).
			Where("election_id = ? AND voter_id = ?", electionID, voterID).
			Count(&count).Error
	})
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (d *ElectionDAO) CountVotes(ctx context.Context, electionID uint) (int64, error) {
	var count int64

	err := withRetry(ctx, func() error {
		return d.db.WithContext(ctx).
			Model(&Vote{}).
			Where("election_id = ?", electionID).
			Count(&count).Error
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

// TallyVotes aggregates votes per candidate. Candidates without votes are
// included with a zero count.
func (d *ElectionDAO) TallyVotes(ctx context.Context, electionID uint) ([]CandidateTally, error) {
	var rows []CandidateTally

	err := withRetry(ctx, func() error {
		return d.db.WithContext(ctx).Raw(`
			SELECT c.id AS candidate_id, c.user_id, u.name, c.position, COUNT(v.id) AS vote_count
			FROM candidates c
			JOIN users u ON u.id = c.user_id
			LEFT JOIN votes v ON v.candidate_id = c.id
			WHERE c.election_id = ?
			GROUP BY c.id, c.user_id, u.name, c.position
			ORDER BY vote_count DESC, c.id`, electionID).
			Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}

	return rows, nil
}

package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrClubNotFound       = errors.New("club not found")
	ErrAlreadyMember      = errors.New("user already joined this club")
	ErrMembershipNotFound = errors.New("membership not found")
)

type Club struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	PresidentID uint `gorm:"not null;index"`
	President   User `gorm:"foreignKey:PresidentID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ClubMembership struct {
	ID     uint   `gorm:"primaryKey"`
	ClubID uint   `gorm:"not null;uniqueIndex:uni_club_memberships_club_user"`
	UserID uint   `gorm:"not null;uniqueIndex:uni_club_memberships_club_user"`
	Status string `gorm:"not null;default:pending"` // "pending" or "approved"
	Club   Club   `gorm:"foreignKey:ClubID"`
	User   User   `gorm:"foreignKey:UserID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ClubDAO struct {
	db *gorm.DB
}

func NewClubDAO(db *gorm.DB) *ClubDAO {
	return &ClubDAO{
		db: db,
	}
}

func (d *ClubDAO) Insert(ctx context.Context, club Club) (Club, error) {
	err := withRetry(ctx, func() error {
		return d.db.WithContext(ctx).Create(&club).Error
	})
	if err != nil {
		return Club{}, err
	}

	return club, nil
}

func (d *ClubDAO) FindByID(ctx context.Context, id uint) (Club, error) {
	var club Club

	err := withRetry(ctx, func() error {
		result := d.db.WithContext(ctx).First(&club, id)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrClubNotFound
			}

			return result.Error
		}

		return nil
	})
	if err != nil {
		return Club{}, err
	}

	return club, nil
}

func (d *ClubDAO) FindAll(ctx context.Context) ([]Club, error) {
	var clubs []Club

	err := withRetry(ctx, func() error {
		return d.db.WithContext(ctx).Order("id").Find(&clubs).Error
	})
	if err != nil {
		return nil, err
	}

	return clubs, nil
}

func (d *ClubDAO) InsertMembership(ctx context.Context, membership ClubMembership) (ClubMembership, error) {
	err := withRetry(ctx, func() error {
		result := d.db.WithContext(ctx).Create(&membership)
		if result.Error != nil {
			if isUniqueViolation(result.Error, "uni_club_memberships_club_user") {
				return ErrAlreadyMember
			}

			return result.Error
		}

		return nil
	})
	if err != nil {
		return ClubMembership{}, err
	}

	return membership, nil
}

func (d *ClubDAO) FindMembership(ctx context.Context, clubID, userID uint) (ClubMembership, error) {
	var membership ClubMembership

	err := withRetry(ctx, func() error {
		result := d.db.WithContext(ctx).
			First(&membership, "club_id = ? AND user_id = ?", clubID, userID)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrMembershipNotFound
			}

			return result.Error
		}

		return nil
	})
	if err != nil {
		return ClubMembership{}, err
	}

	return membership, nil
}

func (d *ClubDAO) UpdateMembershipStatus(ctx context.Context, membershipID uint, status string) error {
	return withRetry(ctx, func() error {
		result := d.db.WithContext(ctx).
			Model(&ClubMembership{}).
			Where("id = ?", membershipID).
			Update("status", status)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrMembershipNotFound
		}

		return nil
	})
}

// IsApprovedMember reports whether userID holds an approved membership of
// clubID. The club president counts as a member of their own club.
func (d *ClubDAO) IsApprovedMember(ctx context.Context, clubID, userID uint) (bool, error) {
	var count int64

	err := withRetry(ctx, func() error {
		return d.db.WithContext(ctx).
			Model(&ClubMembership{}).
			Where("club_id = ? AND user_id = ? AND status = ?", clubID, userID, "approved").
			Count(&count).Error
	})
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	var presidentCount int64
	err = withRetry(ctx, func() error {
		return d.db.WithContext(ctx).
			Model(&Club{}).
			Where("id = ? AND president_id = ?", clubID, userID).
			Count(&presidentCount).Error
	})
	if err != nil {
		return false, err
	}

	return presidentCount > 0, nil
}

func (d *ClubDAO) FindMembershipsByClubID(ctx context.Context, clubID uint) ([]ClubMembership, error) {
	var memberships []ClubMembership

	err := withRetry(ctx, func() error {
		return d.db.WithContext(ctx).
			Where("club_id = ?", clubID).
			Order("id").
			Find(&memberships).Error
	})
	if err != nil {
		return nil, err
	}

	return memberships, nil
}

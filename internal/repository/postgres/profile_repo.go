package postgres

import (
	"context"

	"github.com/devconnect/devconnect-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *profileRepository {
	return &profileRepository{db: db}
}

// Upsert collapses the find-then-create/update of the profile into a single
// ON CONFLICT statement keyed on user_id, so two concurrent first-time upserts
// for the same user cannot create duplicate rows or lose each other's write.
func (r *profileRepository) Upsert(ctx context.Context, profile *domain.Profile, updates map[string]interface{}) (*domain.Profile, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(updates),
		}).
		Create(profile).Error
	if err != nil {
		return nil, err
	}
	return r.GetByUserID(ctx, profile.UserID)
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetAll(ctx context.Context) ([]*domain.Profile, error) {
	var profiles []*domain.Profile
	err := r.db.WithContext(ctx).Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *profileRepository) DeleteWithUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.Profile{}, "user_id = ?", userID).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.User{}, "id = ?", userID).Error
	})
}

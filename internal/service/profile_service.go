package service

import (
	"context"
	"errors"
	"time"

	"github.com/devconnect/devconnect-api/internal/domain"
	"github.com/devconnect/devconnect-api/internal/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

// UpsertProfileInput carries the mutable profile fields. Status and Skills are
// required; the rest count as provided when non-empty, in which case they
// overwrite the stored value. Social links are rebuilt from scratch on every
// upsert, so omitting a link removes it.
type UpsertProfileInput struct {
	Status         string
	Skills         string // comma separated
	Company        string
	Website        string
	Location       string
	Bio            string
	GithubUsername string

	Youtube   string
	Twitter   string
	Facebook  string
	Linkedin  string
	Instagram string
}

// Upsert creates the caller's profile or updates it in place. The write is a
// single atomic upsert keyed on the user id; embedded experience and education
// lists are never touched by it.
func (s *ProfileService) Upsert(ctx context.Context, userID uuid.UUID, input UpsertProfileInput) (*domain.Profile, error) {
	var fields []FieldError
	if input.Status == "" {
		fields = append(fields, FieldError{Param: "status", Message: "Status is required"})
	}
	if input.Skills == "" {
		fields = append(fields, FieldError{Param: "skills", Message: "Skills is required"})
	}
	if len(fields) > 0 {
		return nil, newValidationError(fields)
	}

	skills := datatypes.NewJSONSlice(domain.ParseSkills(input.Skills))
	social := datatypes.NewJSONType(domain.SocialLinks{
		Youtube:   input.Youtube,
		Twitter:   input.Twitter,
		Facebook:  input.Facebook,
		Linkedin:  input.Linkedin,
		Instagram: input.Instagram,
	})

	now := time.Now()
	profile := &domain.Profile{
		ID:             uuid.New(),
		UserID:         userID,
		Company:        input.Company,
		Website:        input.Website,
		Location:       input.Location,
		Bio:            input.Bio,
		Status:         input.Status,
		GithubUsername: input.GithubUsername,
		Skills:         skills,
		Social:         social,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	updates := map[string]interface{}{
		"status":     input.Status,
		"skills":     skills,
		"social":     social,
		"updated_at": now,
	}
	if input.Company != "" {
		updates["company"] = input.Company
	}
	if input.Website != "" {
		updates["website"] = input.Website
	}
	if input.Location != "" {
		updates["location"] = input.Location
	}
	if input.Bio != "" {
		updates["bio"] = input.Bio
	}
	if input.GithubUsername != "" {
		updates["github_username"] = input.GithubUsername
	}

	return s.profileRepo.Upsert(ctx, profile, updates)
}

// GetByUser returns a user's profile enriched with the owning user's name and
// avatar for display.
func (s *ProfileService) GetByUser(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	profile, err := s.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.enrich(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ListAll returns every profile, each enriched with its owner.
func (s *ProfileService) ListAll(ctx context.Context) ([]*domain.Profile, error) {
	profiles, err := s.profileRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return profiles, nil
	}

	ids := make([]uuid.UUID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}
	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, p := range profiles {
		if u, ok := users[p.UserID]; ok {
			p.User = &domain.ProfileUser{ID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL}
		}
	}
	return profiles, nil
}

// Delete removes the profile and its owning user together. Repeating the call
// for an already-deleted account succeeds with nothing left to remove.
func (s *ProfileService) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.profileRepo.DeleteWithUser(ctx, userID)
}

func (s *ProfileService) AddExperience(ctx context.Context, userID uuid.UUID, exp domain.Experience) (*domain.Profile, error) {
	var fields []FieldError
	if exp.Title == "" {
		fields = append(fields, FieldError{Param: "title", Message: "Title is required"})
	}
	if exp.Company == "" {
		fields = append(fields, FieldError{Param: "company", Message: "Company is required"})
	}
	if exp.From == "" {
		fields = append(fields, FieldError{Param: "from", Message: "From date is required"})
	}
	if len(fields) > 0 {
		return nil, newValidationError(fields)
	}

	profile, err := s.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	exp.ID = uuid.NewString()
	profile.AddExperience(exp)
	profile.UpdatedAt = time.Now()

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RemoveExperience deletes the entry with the given id. Removing an id that
// is not present is a no-op that still returns the profile.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID uuid.UUID, entryID string) (*domain.Profile, error) {
	profile, err := s.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.RemoveExperience(entryID)
	profile.UpdatedAt = time.Now()

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) AddEducation(ctx context.Context, userID uuid.UUID, edu domain.Education) (*domain.Profile, error) {
	var fields []FieldError
	if edu.School == "" {
		fields = append(fields, FieldError{Param: "school", Message: "School is required"})
	}
	if edu.Degree == "" {
		fields = append(fields, FieldError{Param: "degree", Message: "Degree is required"})
	}
	if edu.FieldOfStudy == "" {
		fields = append(fields, FieldError{Param: "fieldofstudy", Message: "Field of study is required"})
	}
	if edu.From == "" {
		fields = append(fields, FieldError{Param: "from", Message: "From date is required"})
	}
	if len(fields) > 0 {
		return nil, newValidationError(fields)
	}

	profile, err := s.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	edu.ID = uuid.NewString()
	profile.AddEducation(edu)
	profile.UpdatedAt = time.Now()

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RemoveEducation mirrors RemoveExperience for the education list.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID uuid.UUID, entryID string) (*domain.Profile, error) {
	profile, err := s.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.RemoveEducation(entryID)
	profile.UpdatedAt = time.Now()

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) getProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) enrich(ctx context.Context, profile *domain.Profile) error {
	user, err := s.userRepo.GetByID(ctx, profile.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	profile.User = &domain.ProfileUser{ID: user.ID, Name: user.Name, AvatarURL: user.AvatarURL}
	return nil
}

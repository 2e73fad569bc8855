package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/devconnector/api/internal/domain"
	"github.com/devconnector/api/internal/repository"
	apperrors "github.com/devconnector/api/pkg/util"
)

const (
	MessageNoProfile          = "There is no profile for this user"
	MessageProfileNotFound    = "Profile not found"
	MessageExperienceNotFound = "Experience not found"
	MessageEducationNotFound  = "Education not found"
)

// ProfileInput carries the editable scalar fields of a profile.
type ProfileInput struct {
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         string
	Bio            string
	GitHubUsername string
	Social         domain.Social
}

// ProfileService manages developer profiles.
type ProfileService struct {
	profiles repository.ProfileRepository
}

// NewProfileService creates the service.
func NewProfileService(profiles repository.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// GetMine returns the caller's profile.
func (s *ProfileService) GetMine(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.ownProfile(ctx, userID)
}

// Upsert creates the caller's profile or replaces its scalar fields.
func (s *ProfileService) Upsert(ctx context.Context, userID string, input ProfileInput) (*domain.Profile, error) {
	profile := &domain.Profile{
		UserID:         userID,
		Company:        input.Company,
		Website:        input.Website,
		Location:       input.Location,
		Status:         input.Status,
		Skills:         ParseSkills(input.Skills),
		Bio:            input.Bio,
		GitHubUsername: input.GitHubUsername,
		Social:         input.Social,
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return s.ownProfile(ctx, userID)
}

// List returns every profile.
func (s *ProfileService) List(ctx context.Context) ([]domain.Profile, error) {
	return s.profiles.List(ctx)
}

// GetByUserID returns another user's profile. Malformed ids read as missing.
func (s *ProfileService) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, apperrors.NewBadRequest(MessageProfileNotFound)
	}
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewBadRequest(MessageProfileNotFound)
	}
	return profile, err
}

// AddExperience prepends an experience entry.
func (s *ProfileService) AddExperience(ctx context.Context, userID string, exp domain.Experience) (*domain.Profile, error) {
	profile, err := s.ownProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	exp.ID = uuid.NewString()
	profile.Experience = append([]domain.Experience{exp}, profile.Experience...)
	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RemoveExperience deletes an experience entry by id.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, expID string) (*domain.Profile, error) {
	profile, err := s.ownProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.RemoveExperience(expID) {
		return nil, apperrors.NewNotFound(MessageExperienceNotFound)
	}
	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// AddEducation prepends an education entry.
func (s *ProfileService) AddEducation(ctx context.Context, userID string, edu domain.Education) (*domain.Profile, error) {
	profile, err := s.ownProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	edu.ID = uuid.NewString()
	profile.Education = append([]domain.Education{edu}, profile.Education...)
	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RemoveEducation deletes an education entry by id.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, eduID string) (*domain.Profile, error) {
	profile, err := s.ownProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.RemoveEducation(eduID) {
		return nil, apperrors.NewNotFound(MessageEducationNotFound)
	}
	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) ownProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewBadRequest(MessageNoProfile)
	}
	return profile, err
}

// ParseSkills splits a comma separated skill list, dropping blanks.
func ParseSkills(raw string) []string {
	skills := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if skill := strings.TrimSpace(part); skill != "" {
			skills = append(skills, skill)
		}
	}
	return skills
}

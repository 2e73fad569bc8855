package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devconnector/api/internal/domain"
)

// ProfileRepository manages developer profiles. Reads populate Profile.User.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
	// Upsert writes the scalar fields of the caller's profile, keeping any
	// existing experience and education entries.
	Upsert(ctx context.Context, profile *domain.Profile) error
	// Save replaces the whole profile row, nested entries included.
	Save(ctx context.Context, profile *domain.Profile) error
	DeleteByUserID(ctx context.Context, userID string) error
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository builds repository.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

const profileColumns = `
        p.id, p.user_id, u.name, u.avatar, p.company, p.website, p.location, p.status,
        p.skills, p.bio, p.github_username, p.experience, p.education, p.social, p.created_at`

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `SELECT` + profileColumns + `
        FROM profiles p JOIN users u ON u.id = p.user_id
        WHERE p.user_id=$1`

	return scanProfile(r.pool.QueryRow(ctx, query, userID))
}

func (r *profileRepository) List(ctx context.Context) ([]domain.Profile, error) {
	query := `SELECT` + profileColumns + `
        FROM profiles p JOIN users u ON u.id = p.user_id
        ORDER BY p.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Profile, 0)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *profile)
	}
	return result, rows.Err()
}

func (r *profileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	const query = `
        INSERT INTO profiles (id, user_id, company, website, location, status, skills, bio, github_username, social)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        ON CONFLICT (user_id) DO UPDATE SET
            company=EXCLUDED.company, website=EXCLUDED.website, location=EXCLUDED.location,
            status=EXCLUDED.status, skills=EXCLUDED.skills, bio=EXCLUDED.bio,
            github_username=EXCLUDED.github_username, social=EXCLUDED.social
        RETURNING id, experience, education, created_at`

	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	return r.pool.QueryRow(ctx, query,
		profile.ID,
		profile.UserID,
		profile.Company,
		profile.Website,
		profile.Location,
		profile.Status,
		nonNilStrings(profile.Skills),
		profile.Bio,
		profile.GitHubUsername,
		profile.Social,
	).Scan(&profile.ID, &profile.Experience, &profile.Education, &profile.CreatedAt)
}

func (r *profileRepository) Save(ctx context.Context, profile *domain.Profile) error {
	const query = `
        UPDATE profiles SET company=$1, website=$2, location=$3, status=$4, skills=$5, bio=$6,
            github_username=$7, experience=$8, education=$9, social=$10
        WHERE user_id=$11`

	experience := profile.Experience
	if experience == nil {
		experience = []domain.Experience{}
	}
	education := profile.Education
	if education == nil {
		education = []domain.Education{}
	}
	cmd, err := r.pool.Exec(ctx, query,
		profile.Company,
		profile.Website,
		profile.Location,
		profile.Status,
		nonNilStrings(profile.Skills),
		profile.Bio,
		profile.GitHubUsername,
		experience,
		education,
		profile.Social,
		profile.UserID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *profileRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE user_id=$1`, userID)
	return err
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var (
		profile domain.Profile
		user    domain.UserSummary
	)
	if err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&user.Name,
		&user.Avatar,
		&profile.Company,
		&profile.Website,
		&profile.Location,
		&profile.Status,
		&profile.Skills,
		&profile.Bio,
		&profile.GitHubUsername,
		&profile.Experience,
		&profile.Education,
		&profile.Social,
		&profile.CreatedAt,
	); err != nil {
		return nil, err
	}
	user.ID = profile.UserID
	profile.User = &user
	return &profile, nil
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

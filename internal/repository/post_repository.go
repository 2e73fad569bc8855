package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devconnector/api/internal/domain"
)

// PostRepository manages posts together with their likes and comments.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	List(ctx context.Context) ([]domain.Post, error)
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	// UpdateReactions persists the likes and comments of a post.
	UpdateReactions(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID string) (int64, error)
}

type postRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository builds repository.
func NewPostRepository(pool *pgxpool.Pool) PostRepository {
	return &postRepository{pool: pool}
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	const query = `
        INSERT INTO posts (id, user_id, text, name, avatar)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING created_at`

	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	post.Likes = []domain.Like{}
	post.Comments = []domain.Comment{}
	return r.pool.QueryRow(ctx, query,
		post.ID,
		post.UserID,
		post.Text,
		post.Name,
		post.Avatar,
	).Scan(&post.CreatedAt)
}

func (r *postRepository) List(ctx context.Context) ([]domain.Post, error) {
	const query = `
        SELECT id, user_id, text, name, avatar, likes, comments, created_at
        FROM posts ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *post)
	}
	return result, rows.Err()
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	const query = `
        SELECT id, user_id, text, name, avatar, likes, comments, created_at
        FROM posts WHERE id=$1`

	return scanPost(r.pool.QueryRow(ctx, query, id))
}

func (r *postRepository) UpdateReactions(ctx context.Context, post *domain.Post) error {
	likes := post.Likes
	if likes == nil {
		likes = []domain.Like{}
	}
	comments := post.Comments
	if comments == nil {
		comments = []domain.Comment{}
	}
	cmd, err := r.pool.Exec(ctx, `UPDATE posts SET likes=$1, comments=$2 WHERE id=$3`, likes, comments, post.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *postRepository) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE user_id=$1`, userID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var post domain.Post
	if err := row.Scan(
		&post.ID,
		&post.UserID,
		&post.Text,
		&post.Name,
		&post.Avatar,
		&post.Likes,
		&post.Comments,
		&post.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &post, nil
}

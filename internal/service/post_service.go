package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/devconnector/api/internal/domain"
	"github.com/devconnector/api/internal/events"
	"github.com/devconnector/api/internal/repository"
	apperrors "github.com/devconnector/api/pkg/util"
)

const (
	MessagePostNotFound    = "Post not found"
	MessageNotAuthorized   = "User not authorized"
	MessageAlreadyLiked    = "Post already liked"
	MessageNotLiked        = "Post has not yet been liked"
	MessageCommentNotFound = "Comment does not exist"
)

// PostService handles posts, likes and comments.
type PostService struct {
	posts      repository.PostRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// NewPostService creates the service.
func NewPostService(posts repository.PostRepository, users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *PostService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostService{posts: posts, users: users, dispatcher: dispatcher, logger: logger, now: time.Now}
}

// RegisterHandlers subscribes to events that affect posts.
func (s *PostService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventUserDeleted, s.handleUserDeleted)
}

// Create publishes a new post on behalf of userID.
func (s *PostService) Create(ctx context.Context, userID, text string) (*domain.Post, error) {
	user, err := s.author(ctx, userID)
	if err != nil {
		return nil, err
	}
	post := &domain.Post{
		UserID: user.ID,
		Text:   text,
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventPostCreated,
			UserID:    userID,
			Timestamp: s.now().UTC(),
			Payload:   events.PostCreatedPayload{PostID: post.ID},
		})
	}
	return post, nil
}

// List returns all posts, newest first.
func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	return s.posts.List(ctx)
}

// Get returns a single post.
func (s *PostService) Get(ctx context.Context, postID string) (*domain.Post, error) {
	if _, err := uuid.Parse(postID); err != nil {
		return nil, apperrors.NewNotFound(MessagePostNotFound)
	}
	post, err := s.posts.GetByID(ctx, postID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound(MessagePostNotFound)
	}
	return post, err
}

// Delete removes a post. Only its author may do so.
func (s *PostService) Delete(ctx context.Context, userID, postID string) error {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return apperrors.NewUnauthorized(MessageNotAuthorized)
	}
	if err := s.posts.Delete(ctx, post.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound(MessagePostNotFound)
		}
		return err
	}
	return nil
}

// Like adds the caller's like, newest first.
func (s *PostService) Like(ctx context.Context, userID, postID string) ([]domain.Like, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.LikedBy(userID) {
		return nil, apperrors.NewBadRequest(MessageAlreadyLiked)
	}
	post.Likes = append([]domain.Like{{ID: uuid.NewString(), UserID: userID}}, post.Likes...)
	if err := s.posts.UpdateReactions(ctx, post); err != nil {
		return nil, err
	}
	return post.Likes, nil
}

// Unlike removes the caller's like.
func (s *PostService) Unlike(ctx context.Context, userID, postID string) ([]domain.Like, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.RemoveLike(userID) {
		return nil, apperrors.NewBadRequest(MessageNotLiked)
	}
	if err := s.posts.UpdateReactions(ctx, post); err != nil {
		return nil, err
	}
	return post.Likes, nil
}

// Comment prepends a comment by the caller.
func (s *PostService) Comment(ctx context.Context, userID, postID, text string) ([]domain.Comment, error) {
	user, err := s.author(ctx, userID)
	if err != nil {
		return nil, err
	}
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	comment := domain.Comment{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Text:      text,
		Name:      user.Name,
		Avatar:    user.Avatar,
		CreatedAt: s.now().UTC(),
	}
	post.Comments = append([]domain.Comment{comment}, post.Comments...)
	if err := s.posts.UpdateReactions(ctx, post); err != nil {
		return nil, err
	}
	return post.Comments, nil
}

// Uncomment removes a comment. Only its author may do so.
func (s *PostService) Uncomment(ctx context.Context, userID, postID, commentID string) ([]domain.Comment, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	comment, ok := post.FindComment(commentID)
	if !ok {
		return nil, apperrors.NewNotFound(MessageCommentNotFound)
	}
	if comment.UserID != userID {
		return nil, apperrors.NewUnauthorized(MessageNotAuthorized)
	}
	post.RemoveComment(commentID)
	if err := s.posts.UpdateReactions(ctx, post); err != nil {
		return nil, err
	}
	return post.Comments, nil
}

func (s *PostService) author(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("User not found")
	}
	return user, err
}

func (s *PostService) handleUserDeleted(ctx context.Context, event events.Event) error {
	removed, err := s.posts.DeleteByUserID(ctx, event.UserID)
	if err != nil {
		return err
	}
	s.logger.Info("removed posts of deleted user", zap.String("user_id", event.UserID), zap.Int64("count", removed))
	return nil
}
